package app

import (
	"context"

	"sdkmeta/internal/core"
)

func (s Service) Defines(ctx context.Context, req DefinesRequest) (DefinesResult, error) {
	_, device, err := s.loadDevice(ctx, req.Selection)
	if err != nil {
		return DefinesResult{}, err
	}
	defines, err := core.ResolveDefines(device, req.Package, req.Core)
	if err != nil {
		return DefinesResult{}, err
	}
	if err := s.output(req.OutputPath).WriteValues(defines); err != nil {
		return DefinesResult{}, err
	}
	return DefinesResult{Device: device.Name, Defines: defines}, nil
}
