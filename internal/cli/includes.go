package cli

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"sdkmeta/internal/app"
)

type includesOptions struct {
	CMSIS bool
}

func newIncludesCommand(cfg *RootConfig) *cobra.Command {
	opts := includesOptions{}
	cmd := &cobra.Command{
		Use:   "includes [--cmsis]",
		Short: "Print the include directories of the selected device",
		Args:  exactArgs(0, "no arguments"),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := log.Logger.WithContext(cmd.Context())
			return runIncludes(ctx, cmd, cfg, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.CMSIS, "cmsis", false, "Add the CMSIS core include directory")
	return cmd
}

func runIncludes(ctx context.Context, cmd *cobra.Command, cfg *RootConfig, opts includesOptions) error {
	service, err := newService()
	if err != nil {
		return err
	}
	result, err := service.Includes(ctx, app.IncludesRequest{
		Selection:  selection(cmd, cfg),
		CMSIS:      resolveBool(cmd, opts.CMSIS, "cmsis", "cmsis"),
		OutputPath: resolveString(cmd, cfg.Output, "output", "output"),
	})
	if err != nil {
		return err
	}
	log.Ctx(ctx).Debug().Str("device", result.Device).Int("includes", len(result.Includes)).Msg("includes resolved")
	return nil
}
