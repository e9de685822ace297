package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sdkmeta/internal/types"
)

// ---------- Command tree tests ----------

func TestRootCommandHasSubcommands(t *testing.T) {
	root := newRootCommand()
	names := make([]string, 0, len(root.Commands()))
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, name := range []string{"sources", "defines", "includes", "list"} {
		assert.Contains(t, names, name, "missing subcommand: %s", name)
	}
}

func TestRootCommandVersion(t *testing.T) {
	root := newRootCommand()
	assert.Equal(t, "dev", root.Version)
}

func TestRootCommandPersistentFlags(t *testing.T) {
	root := newRootCommand()
	flags := []string{
		"config", "log-level", "sdk-root", "device",
		"package", "core", "output", "manifest-pattern",
	}
	for _, name := range flags {
		assert.NotNil(t, root.PersistentFlags().Lookup(name), "missing flag: %s", name)
	}
	// snake_case spellings normalize onto the same flag.
	assert.NotNil(t, root.PersistentFlags().Lookup("sdk_root"))
	assert.NotNil(t, root.PersistentFlags().Lookup("log_level"))
}

func TestSubcommandFlags(t *testing.T) {
	cfg := &RootConfig{}
	sources := newSourcesCommand(cfg)
	assert.NotNil(t, sources.Flags().Lookup("cmsis"))
	assert.NotNil(t, sources.Flags().Lookup("source-pattern"))
	assert.NotNil(t, newIncludesCommand(cfg).Flags().Lookup("cmsis"))
	assert.NotNil(t, newListCommand(cfg).Flags().Lookup("format"))
}

// ---------- Helper function tests ----------

func TestResolveString(t *testing.T) {
	tests := []struct {
		name     string
		cmd      *cobra.Command
		value    string
		expected string
	}{
		{
			name:     "nil cmd with value returns value",
			cmd:      nil,
			value:    "explicit",
			expected: "explicit",
		},
		{
			name:     "nil cmd empty value returns empty",
			cmd:      nil,
			value:    "",
			expected: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveString(tt.cmd, tt.value, "test_key", "test-flag")
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolveStrings(t *testing.T) {
	got := resolveStrings(nil, []string{"*.c", "*.S"}, "test_key", "test-flag")
	assert.Equal(t, []string{"*.c", "*.S"}, got)
}

func TestResolveBool(t *testing.T) {
	assert.True(t, resolveBool(nil, true, "test_key", "test-flag"))
	assert.False(t, resolveBool(nil, false, "test_key", "test-flag"))
}

func TestFlagChanged(t *testing.T) {
	assert.False(t, flagChanged(nil, "anything"), "nil cmd should return false")
	assert.False(t, flagChanged(nil, ""), "nil cmd with empty name")

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("myflag", "", "test flag")
	assert.False(t, flagChanged(cmd, "myflag"), "unchanged flag")
	assert.False(t, flagChanged(cmd, "nonexistent"), "nonexistent flag")

	require.NoError(t, cmd.Flags().Set("myflag", "val"))
	assert.True(t, flagChanged(cmd, "myflag"))
}

// ---------- Exit code tests ----------

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name: "invalid argument",
			err: errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("at least one driver is required"),
			expected: 2,
		},
		{
			name: "invalid selection",
			err: errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(types.MsgInvalidSelection + ": unknown package"),
			expected: 2,
		},
		{
			name: "metadata not found",
			err: errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg(types.MsgMetadataNotFound + ": no file matching *_manifest*.xml"),
			expected: 3,
		},
		{
			name: "parse error",
			err: errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(types.MsgParseError + `: core node missing required attribute "type"`),
			expected: 3,
		},
		{
			name: "device not found",
			err: errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg(types.MsgDeviceNotFound + ": MK66F18"),
			expected: 4,
		},
		{
			name: "ambiguous selection",
			err: errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(types.MsgAmbiguousSelection + ": device"),
			expected: 4,
		},
		{
			name: "driver not found",
			err: errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg(types.MsgDriverNotFound + `: "enet"`),
			expected: 5,
		},
		{
			name: "internal error",
			err: errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to write output"),
			expected: 6,
		},
		{
			name:     "unknown error",
			err:      assert.AnError,
			expected: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, exitCodeForError(tt.err))
		})
	}
}

// ---------- End-to-end command tests ----------

func fixtureRoot(t *testing.T, name string) string {
	t.Helper()
	root, err := filepath.Abs(filepath.Join("..", "..", "fixtures", name))
	require.NoError(t, err)
	return root
}

// runRoot executes the command tree and returns the content written to the
// --output file.
func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	output := filepath.Join(t.TempDir(), "out.txt")
	root := newRootCommand()
	var discard bytes.Buffer
	root.SetOut(&discard)
	root.SetErr(&discard)
	root.SetArgs(append(args, "--output", output))
	if err := run(root); err != nil {
		return "", err
	}
	data, err := os.ReadFile(output)
	require.NoError(t, err)
	return string(data), nil
}

func TestDefinesCommand(t *testing.T) {
	out, err := runRoot(t, "defines", "--sdk_root", fixtureRoot(t, "sdk-single"))
	require.NoError(t, err)
	assert.Equal(t, "CPU_MK64FN1M0VLL12;CPU_MK64FN1M0VLL12_core0;ARM_MATH_cm4;SDK_DEBUGCONSOLE=1\n", out)
}

func TestSourcesCommand(t *testing.T) {
	root := fixtureRoot(t, "sdk-multi")
	out, err := runRoot(t, "sources", "--sdk-root", root, "--device", "LPC55S69", "--core", "cm33_core0", "--cmsis", "usart")
	require.NoError(t, err)
	values := strings.Split(strings.TrimSuffix(out, "\n"), ";")
	expected := []string{
		filepath.Join(root, "devices", "LPC55S69", "system_LPC55S69_cm33_core0.c"),
		filepath.Join(root, "devices", "LPC55S69", "drivers", "fsl_common.c"),
		filepath.Join(root, "devices", "LPC55S69", "drivers", "fsl_usart.c"),
		filepath.Join(root, "devices", "LPC55S6x", "drivers", "fsl_flexcomm.c"),
	}
	assert.Equal(t, expected, values)
}

func TestSourcesCommandSourcePattern(t *testing.T) {
	root := fixtureRoot(t, "sdk-single")
	out, err := runRoot(t, "sources", "--sdk-root", root, "--source-pattern", "fsl_c*.c", "uart")
	require.NoError(t, err)
	drivers := filepath.Join(root, "devices", "MK64F12", "drivers")
	expected := strings.Join([]string{
		filepath.Join(drivers, "fsl_clock.c"),
		filepath.Join(drivers, "fsl_common.c"),
		filepath.Join(drivers, "fsl_common_arm.c"),
	}, ";") + "\n"
	assert.Equal(t, expected, out)
}

func TestIncludesCommand(t *testing.T) {
	root := fixtureRoot(t, "sdk-single")
	out, err := runRoot(t, "includes", "--sdk-root", root)
	require.NoError(t, err)
	expected := filepath.Join(root, "devices", "MK64F12") + ";" + filepath.Join(root, "devices", "MK64F12", "drivers") + "\n"
	assert.Equal(t, expected, out)
}

func TestListCommand(t *testing.T) {
	out, err := runRoot(t, "list", "devices", "--sdk-root", fixtureRoot(t, "sdk-multi"))
	require.NoError(t, err)
	assert.Equal(t, "LPC55S66\nLPC55S69\n", out)
}

func TestCommandExitCodes(t *testing.T) {
	single := fixtureRoot(t, "sdk-single")
	multi := fixtureRoot(t, "sdk-multi")
	tests := []struct {
		name     string
		args     []string
		expected int
	}{
		{name: "unknown command", args: []string{"sourcez", "uart", "--sdk-root", single}, expected: 2},
		{name: "invalid source pattern", args: []string{"sources", "--sdk-root", single, "--source-pattern", "fsl_[a.c", "uart"}, expected: 2},
		{name: "unknown flag", args: []string{"defines", "--sdk-root", single, "--bogus"}, expected: 2},
		{name: "missing list target", args: []string{"list", "--sdk-root", single}, expected: 2},
		{name: "unknown list target", args: []string{"list", "boards", "--sdk-root", single}, expected: 2},
		{name: "no manifest", args: []string{"defines", "--sdk-root", t.TempDir()}, expected: 3},
		{name: "ambiguous device", args: []string{"includes", "--sdk-root", multi}, expected: 4},
		{name: "unknown device", args: []string{"includes", "--sdk-root", multi, "--device", "MK66F18"}, expected: 4},
		{name: "unknown driver", args: []string{"sources", "--sdk-root", single, "enet"}, expected: 5},
		{name: "invalid package", args: []string{"defines", "--sdk-root", single, "--package", "MK64FX512VLL12"}, expected: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runRoot(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.expected, exitCodeForError(err))
		})
	}
}
