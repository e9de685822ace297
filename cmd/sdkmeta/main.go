package main

import "sdkmeta/internal/cli"

func main() {
	cli.Execute()
}
