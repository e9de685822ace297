package app

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"sdkmeta/internal/core"
	"sdkmeta/internal/types"
)

// Sources resolves the dependency closure of the requested drivers and
// writes their absolute source paths. Nothing is written when any driver in
// the closure is missing.
func (s Service) Sources(ctx context.Context, req SourcesRequest) (SourcesResult, error) {
	if len(req.Drivers) == 0 {
		return SourcesResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("at least one driver is required")
	}
	sdk, device, err := s.loadDevice(ctx, req.Selection)
	if err != nil {
		return SourcesResult{}, err
	}

	closure, err := core.NewClosureResolver(device).Resolve(ctx, req.Drivers)
	if err != nil {
		return SourcesResult{}, err
	}

	var selected *types.Core
	if req.CMSIS {
		cpu, err := core.SelectCore(device, req.Core)
		if err != nil {
			return SourcesResult{}, err
		}
		selected = &cpu
	}
	sources, err := core.NewProjector(sdk.Root).Sources(ctx, device, closure, selected)
	if err != nil {
		return SourcesResult{}, err
	}
	if err := s.output(req.OutputPath).WriteValues(sources); err != nil {
		return SourcesResult{}, err
	}
	return SourcesResult{
		Device:  device.Name,
		Drivers: closure.Names(),
		Sources: sources,
	}, nil
}
