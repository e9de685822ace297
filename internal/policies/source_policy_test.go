package policies

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourcePolicyDefaultsToCSources(t *testing.T) {
	policy := DefaultSourcePolicy()

	assert.True(t, policy.AcceptSource("devices/MK64F12/drivers/fsl_uart.c"))
	assert.False(t, policy.AcceptSource("devices/MK64F12/drivers/fsl_uart.h"))
	assert.False(t, policy.AcceptSource("devices/MK64F12/gcc/startup_MK64F12.S"))
	assert.False(t, policy.AcceptSource(""))
	if diff := cmp.Diff([]string{"*.c"}, policy.Patterns); diff != "" {
		t.Fatalf("unexpected default patterns (-want +got):\n%s", diff)
	}
}

func TestSourcePolicyPatterns(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		entry    string
		expected bool
	}{
		{name: "suffix match", patterns: []string{"*.c", "*.S"}, entry: "gcc/startup.S", expected: true},
		{name: "exact basename", patterns: []string{"fsl_common_arm.c"}, entry: "drivers/fsl_common_arm.c", expected: true},
		{name: "exact basename mismatch", patterns: []string{"fsl_common_arm.c"}, entry: "drivers/fsl_common.c", expected: false},
		{name: "wildcard accepts anything", patterns: []string{"*"}, entry: "drivers/fsl_uart.h", expected: true},
		{name: "windows separators", patterns: []string{"*.c"}, entry: "drivers\\fsl_gpio.c", expected: true},
		{name: "prefix glob", patterns: []string{"fsl_*.c"}, entry: "drivers/fsl_gpio.c", expected: true},
		{name: "prefix glob mismatch", patterns: []string{"fsl_*.c"}, entry: "drivers/system_MK64F12.c", expected: false},
		{name: "character class", patterns: []string{"*.[cS]"}, entry: "gcc/startup.S", expected: true},
		{name: "suffix does not match directory", patterns: []string{"*.c"}, entry: "drivers.c/readme", expected: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy, err := NewSourcePolicy(tt.patterns)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, policy.AcceptSource(tt.entry))
		})
	}
}

func TestSourcePolicyRejectsInvalidPatterns(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
	}{
		{name: "blank", patterns: []string{"*.c", "  "}},
		{name: "unterminated class", patterns: []string{"fsl_[a.c"}},
		{name: "directory component", patterns: []string{"drivers/*.c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSourcePolicy(tt.patterns)
			require.Error(t, err)
			assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
			assert.Contains(t, err.Error(), "invalid source pattern")
		})
	}
}
