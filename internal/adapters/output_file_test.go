package adapters

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"sdkmeta/internal/types"
)

func TestOutputFileAdapterWritesValues(t *testing.T) {
	tests := []struct {
		name     string
		values   []string
		expected string
	}{
		{name: "several values", values: []string{"/sdk/a.c", "/sdk/b.c"}, expected: "/sdk/a.c;/sdk/b.c\n"},
		{name: "single value", values: []string{"CPU_MK64FN1M0VLL12"}, expected: "CPU_MK64FN1M0VLL12\n"},
		{name: "no values", values: nil, expected: "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, NewOutputFileAdapter(&out, "").WriteValues(tt.values))
			if diff := cmp.Diff(tt.expected, out.String()); diff != "" {
				t.Fatalf("unexpected output (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOutputFileAdapterWritesFile(t *testing.T) {
	var out bytes.Buffer
	path := filepath.Join(t.TempDir(), "nested", "defines.txt")
	adapter := NewOutputFileAdapter(&out, path)

	require.NoError(t, adapter.WriteValues([]string{"A", "B=1"}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "A;B=1\n", string(data))
	assert.Empty(t, out.String(), "stdout must stay empty when a path is set")
}

func TestOutputFileAdapterListingText(t *testing.T) {
	var out bytes.Buffer
	listing := types.Listing{
		Target: types.ListTargetDrivers,
		Device: "MK64F12",
		Drivers: []types.DriverListing{
			{Name: "clock", Version: "2.5.1"},
			{Name: "uart", Version: "2.5.0", Dependencies: []string{"common", "clock"}},
		},
	}
	require.NoError(t, NewOutputFileAdapter(&out, "").WriteListing(listing, types.ListFormatText))
	assert.Equal(t, "clock\nuart\n", out.String())

	out.Reset()
	require.NoError(t, NewOutputFileAdapter(&out, "").WriteListing(types.Listing{Target: types.ListTargetCores}, types.ListFormatText))
	assert.Empty(t, out.String())
}

func TestOutputFileAdapterListingYAML(t *testing.T) {
	var out bytes.Buffer
	listing := types.Listing{
		Target: types.ListTargetCores,
		Device: "LPC55S69",
		Cores: []types.CoreListing{
			{Name: "cm33_core0", Type: "cm33", FPU: true, DSP: true},
			{Name: "cm33_core1", Type: "cm33"},
		},
	}
	require.NoError(t, NewOutputFileAdapter(&out, "").WriteListing(listing, types.ListFormatYAML))

	var decoded types.Listing
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &decoded))
	if diff := cmp.Diff(listing, decoded); diff != "" {
		t.Fatalf("unexpected listing (-want +got):\n%s", diff)
	}
	assert.Contains(t, out.String(), "target: cores\n")
	assert.Contains(t, out.String(), "  - name: cm33_core0\n")
}

func TestOutputFileAdapterErrors(t *testing.T) {
	err := NewOutputFileAdapter(nil, "").WriteValues([]string{"a"})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))

	var out bytes.Buffer
	err = NewOutputFileAdapter(&out, "").WriteListing(types.Listing{Target: types.ListTargetDevices}, types.ListFormat("json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported list format "json"`)
}
