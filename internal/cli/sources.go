package cli

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sdkmeta/internal/app"
)

type sourcesOptions struct {
	CMSIS          bool
	SourcePatterns []string
}

func newSourcesCommand(cfg *RootConfig) *cobra.Command {
	opts := sourcesOptions{}
	cmd := &cobra.Command{
		Use:   "sources [--cmsis] <driver>...",
		Short: "Print the source files of the given drivers and their dependencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := log.Logger.WithContext(cmd.Context())
			return runSources(ctx, cmd, cfg, opts, args)
		},
	}
	cmd.Flags().BoolVar(&opts.CMSIS, "cmsis", false, "Prepend the CMSIS system source of the selected core")
	cmd.Flags().StringSliceVar(&opts.SourcePatterns, "source-pattern", nil, "Source file patterns to keep (default *.c)")
	_ = viper.BindPFlag("cmsis", cmd.Flags().Lookup("cmsis"))
	_ = viper.BindPFlag("source_patterns", cmd.Flags().Lookup("source-pattern"))
	return cmd
}

func runSources(ctx context.Context, cmd *cobra.Command, cfg *RootConfig, opts sourcesOptions, drivers []string) error {
	service, err := newService()
	if err != nil {
		return err
	}
	result, err := service.Sources(ctx, app.SourcesRequest{
		Selection:  selection(cmd, cfg),
		Drivers:    drivers,
		CMSIS:      resolveBool(cmd, opts.CMSIS, "cmsis", "cmsis"),
		OutputPath: resolveString(cmd, cfg.Output, "output", "output"),
	})
	if err != nil {
		return err
	}
	log.Ctx(ctx).Debug().
		Str("device", result.Device).
		Strs("drivers", result.Drivers).
		Int("sources", len(result.Sources)).
		Msg("sources resolved")
	return nil
}
