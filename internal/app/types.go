package app

import "sdkmeta/internal/types"

// Selection carries the global SDK context shared by every command.
type Selection struct {
	SDKRoot string
	Device  string
	Package string
	Core    string
}

type SourcesRequest struct {
	Selection
	Drivers    []string
	CMSIS      bool
	OutputPath string
}

type SourcesResult struct {
	Device  string
	Drivers []string
	Sources []string
}

type DefinesRequest struct {
	Selection
	OutputPath string
}

type DefinesResult struct {
	Device  string
	Defines []string
}

type IncludesRequest struct {
	Selection
	CMSIS      bool
	OutputPath string
}

type IncludesResult struct {
	Device   string
	Includes []string
}

type ListRequest struct {
	Selection
	Target     string
	Format     string
	OutputPath string
}

type ListResult struct {
	Listing types.Listing
}
