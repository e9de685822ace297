package cli

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"sdkmeta/internal/app"
)

type listOptions struct {
	Format string
}

func newListCommand(cfg *RootConfig) *cobra.Command {
	opts := listOptions{}
	cmd := &cobra.Command{
		Use:       "list <drivers|devices|packages|cores>",
		Short:     "List the drivers, devices, packages or cores declared by the SDK",
		Args:      exactArgs(1, "one target: drivers, devices, packages or cores"),
		ValidArgs: []string{"drivers", "devices", "packages", "cores"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := log.Logger.WithContext(cmd.Context())
			return runList(ctx, cmd, cfg, opts, args[0])
		},
	}
	cmd.Flags().StringVar(&opts.Format, "format", "text", "Output format (text or yaml)")
	return cmd
}

func runList(ctx context.Context, cmd *cobra.Command, cfg *RootConfig, opts listOptions, target string) error {
	service, err := newService()
	if err != nil {
		return err
	}
	result, err := service.List(ctx, app.ListRequest{
		Selection:  selection(cmd, cfg),
		Target:     target,
		Format:     opts.Format,
		OutputPath: resolveString(cmd, cfg.Output, "output", "output"),
	})
	if err != nil {
		return err
	}
	log.Ctx(ctx).Debug().Str("target", string(result.Listing.Target)).Int("values", len(result.Listing.Values())).Msg("listing written")
	return nil
}
