package cli

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"sdkmeta/internal/app"
)

func newDefinesCommand(cfg *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "defines",
		Short: "Print the preprocessor defines of the selected device, package and core",
		Args:  exactArgs(0, "no arguments"),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := log.Logger.WithContext(cmd.Context())
			return runDefines(ctx, cmd, cfg)
		},
	}
}

func runDefines(ctx context.Context, cmd *cobra.Command, cfg *RootConfig) error {
	service, err := newService()
	if err != nil {
		return err
	}
	result, err := service.Defines(ctx, app.DefinesRequest{
		Selection:  selection(cmd, cfg),
		OutputPath: resolveString(cmd, cfg.Output, "output", "output"),
	})
	if err != nil {
		return err
	}
	log.Ctx(ctx).Debug().Str("device", result.Device).Int("defines", len(result.Defines)).Msg("defines resolved")
	return nil
}
