package app

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"sdkmeta/internal/core"
	"sdkmeta/internal/types"
)

var listTargets = []types.ListTarget{
	types.ListTargetDrivers,
	types.ListTargetDevices,
	types.ListTargetPackages,
	types.ListTargetCores,
}

func (s Service) List(ctx context.Context, req ListRequest) (ListResult, error) {
	target, err := parseListTarget(req.Target)
	if err != nil {
		return ListResult{}, err
	}
	format, err := parseListFormat(req.Format)
	if err != nil {
		return ListResult{}, err
	}

	sdk, err := s.loadSDK(ctx, req.Selection)
	if err != nil {
		return ListResult{}, err
	}
	listing := types.Listing{Target: target}
	if !target.DeviceScoped() {
		listing.Devices = sdk.DeviceNames()
		sort.Strings(listing.Devices)
	} else {
		device, err := core.SelectDevice(sdk, req.Device)
		if err != nil {
			return ListResult{}, err
		}
		listing.Device = device.Name
		switch target {
		case types.ListTargetPackages:
			listing.Packages = append([]string(nil), device.Packages...)
			sort.Strings(listing.Packages)
		case types.ListTargetCores:
			for _, cpu := range device.Cores {
				listing.Cores = append(listing.Cores, types.CoreListing{
					Name: cpu.Name,
					Type: cpu.Type,
					FPU:  cpu.FPU,
					DSP:  cpu.DSP,
				})
			}
			sort.Slice(listing.Cores, func(i, j int) bool {
				return listing.Cores[i].Name < listing.Cores[j].Name
			})
		case types.ListTargetDrivers:
			for _, name := range device.DriverNames() {
				driver, _ := device.Driver(name)
				listing.Drivers = append(listing.Drivers, types.DriverListing{
					Name:         driver.Name,
					Version:      driver.Version,
					Dependencies: append([]string(nil), driver.Dependencies...),
				})
			}
		}
	}

	if err := s.output(req.OutputPath).WriteListing(listing, format); err != nil {
		return ListResult{}, err
	}
	return ListResult{Listing: listing}, nil
}

func parseListTarget(value string) (types.ListTarget, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	names := make([]string, 0, len(listTargets))
	for _, target := range listTargets {
		if string(target) == normalized {
			return target, nil
		}
		names = append(names, string(target))
	}
	return "", errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("unknown list target %q (available: %s)", value, strings.Join(names, ", ")))
}

func parseListFormat(value string) (types.ListFormat, error) {
	switch types.ListFormat(strings.ToLower(strings.TrimSpace(value))) {
	case "", types.ListFormatText:
		return types.ListFormatText, nil
	case types.ListFormatYAML:
		return types.ListFormatYAML, nil
	default:
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported list format %q", value))
	}
}
