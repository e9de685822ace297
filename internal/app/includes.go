package app

import (
	"context"

	"sdkmeta/internal/core"
)

func (s Service) Includes(ctx context.Context, req IncludesRequest) (IncludesResult, error) {
	sdk, device, err := s.loadDevice(ctx, req.Selection)
	if err != nil {
		return IncludesResult{}, err
	}
	includes, err := core.NewProjector(sdk.Root).Includes(ctx, device, req.CMSIS)
	if err != nil {
		return IncludesResult{}, err
	}
	if err := s.output(req.OutputPath).WriteValues(includes); err != nil {
		return IncludesResult{}, err
	}
	return IncludesResult{Device: device.Name, Includes: includes}, nil
}
