package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"sdkmeta/internal/app"
	"sdkmeta/internal/shared"
	"sdkmeta/internal/types"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "SDKMETA"

type RootConfig struct {
	ConfigFile      string
	LogLevel        string
	SDKRoot         string
	Device          string
	Package         string
	Core            string
	Output          string
	ManifestPattern string
}

func Execute() {
	if err := run(newRootCommand()); err != nil {
		os.Exit(exitCodeForError(err))
	}
}

// run executes the command tree. Errors raised by cobra itself, such as an
// unknown command, carry no code and are reported as invalid arguments.
func run(root *cobra.Command) error {
	err := root.Execute()
	if err == nil {
		return nil
	}
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) {
		return err
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(err.Error()).
		WithCause(err)
}

func newRootCommand() *cobra.Command {
	cfg := &RootConfig{}
	cmd := &cobra.Command{
		Use:     "sdkmeta",
		Short:   "Resolve driver sources, defines and include paths from an SDK manifest",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(cfg.ConfigFile); err != nil {
				return err
			}
			setupLogging(viper.GetString("log_level"))
			return nil
		},
	}
	cmd.SetGlobalNormalizationFunc(normalizeFlagName)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(err.Error()).
			WithCause(err)
	})

	flags := cmd.PersistentFlags()
	flags.StringVar(&cfg.ConfigFile, "config", "", "Config file path")
	flags.StringVar(&cfg.LogLevel, "log-level", "info", "Log level")
	flags.StringVar(&cfg.SDKRoot, "sdk-root", "", "SDK root directory containing exactly one manifest")
	flags.StringVar(&cfg.Device, "device", "", "Device name (optional when the SDK has one device)")
	flags.StringVar(&cfg.Package, "package", "", "Package name (optional when the device has one package)")
	flags.StringVar(&cfg.Core, "core", "", "Core name (optional when the device has one core)")
	flags.StringVar(&cfg.Output, "output", "", "Write the result to this file instead of stdout")
	flags.StringVar(&cfg.ManifestPattern, "manifest-pattern", "", "Glob used to locate the manifest in the SDK root")
	_ = viper.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("sdk_root", flags.Lookup("sdk-root"))
	_ = viper.BindPFlag("device", flags.Lookup("device"))
	_ = viper.BindPFlag("package", flags.Lookup("package"))
	_ = viper.BindPFlag("core", flags.Lookup("core"))
	_ = viper.BindPFlag("output", flags.Lookup("output"))
	_ = viper.BindPFlag("manifest_pattern", flags.Lookup("manifest-pattern"))

	cmd.AddCommand(newSourcesCommand(cfg))
	cmd.AddCommand(newDefinesCommand(cfg))
	cmd.AddCommand(newIncludesCommand(cfg))
	cmd.AddCommand(newListCommand(cfg))
	return cmd
}

// normalizeFlagName accepts snake_case spellings such as --sdk_root.
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func initConfig(configFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
		return nil
	}

	viper.SetConfigName("sdkmeta")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/sdkmeta")
	if err := viper.ReadInConfig(); err != nil {
		return nil
	}
	return nil
}

// setupLogging sends logs to stderr; stdout carries the resolved values.
func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func newService() (app.Service, error) {
	return app.NewService(app.Config{
		ManifestPattern: viper.GetString("manifest_pattern"),
		SourcePatterns:  viper.GetStringSlice("source_patterns"),
	})
}

func selection(cmd *cobra.Command, cfg *RootConfig) app.Selection {
	return app.Selection{
		SDKRoot: resolveString(cmd, cfg.SDKRoot, "sdk_root", "sdk-root"),
		Device:  resolveString(cmd, cfg.Device, "device", "device"),
		Package: resolveString(cmd, cfg.Package, "package", "package"),
		Core:    resolveString(cmd, cfg.Core, "core", "core"),
	}
}

func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("expected %s", usage))
		}
		return nil
	}
}

func exitCodeForError(err error) int {
	code := errbuilder.CodeOf(err)
	message := shared.ErrorMessage(err)
	switch {
	case strings.HasPrefix(message, types.MsgMetadataNotFound),
		strings.HasPrefix(message, types.MsgParseError):
		return 3
	case strings.HasPrefix(message, types.MsgDeviceNotFound),
		strings.HasPrefix(message, types.MsgCoreNotFound),
		strings.HasPrefix(message, types.MsgAmbiguousSelection):
		return 4
	case strings.HasPrefix(message, types.MsgDriverNotFound):
		return 5
	}
	switch code {
	case errbuilder.CodeInvalidArgument:
		return 2
	case errbuilder.CodeNotFound, errbuilder.CodeFailedPrecondition:
		return 4
	case errbuilder.CodeInternal:
		return 6
	default:
		return 1
	}
}
