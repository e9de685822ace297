package adapters

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"sdkmeta/internal/ports"
	"sdkmeta/internal/types"
)

// Delimiter joins values consumed by build tools.
const Delimiter = ";"

// OutputFileAdapter writes results to Path when set, otherwise to Out.
type OutputFileAdapter struct {
	Out  io.Writer
	Path string
}

func NewOutputFileAdapter(out io.Writer, path string) OutputFileAdapter {
	return OutputFileAdapter{Out: out, Path: strings.TrimSpace(path)}
}

func (a OutputFileAdapter) WriteValues(values []string) error {
	return a.write([]byte(strings.Join(values, Delimiter) + "\n"))
}

func (a OutputFileAdapter) WriteListing(listing types.Listing, format types.ListFormat) error {
	switch format {
	case types.ListFormatYAML:
		var buf bytes.Buffer
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(listing); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to encode listing").
				WithCause(err)
		}
		if err := encoder.Close(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to encode listing").
				WithCause(err)
		}
		return a.write(buf.Bytes())
	case types.ListFormatText, "":
		values := listing.Values()
		if len(values) == 0 {
			return a.write(nil)
		}
		return a.write([]byte(strings.Join(values, "\n") + "\n"))
	default:
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported list format %q", format))
	}
}

func (a OutputFileAdapter) write(content []byte) error {
	if a.Path == "" {
		if a.Out == nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("output writer is not set")
		}
		if _, err := a.Out.Write(content); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to write output").
				WithCause(err)
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(a.Path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}
	if err := os.WriteFile(a.Path, content, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write output file").
			WithCause(err)
	}
	return nil
}

var _ ports.OutputPort = OutputFileAdapter{}
