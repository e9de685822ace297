package core

import (
	"context"
	"fmt"
	"path/filepath"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"sdkmeta/internal/shared"
	"sdkmeta/internal/types"
)

// CMSISIncludeDir is the CMSIS core header directory, relative to the SDK root.
const CMSISIncludeDir = "CMSIS/Core/Include"

type Projector struct {
	Root string
}

func NewProjector(root string) Projector {
	return Projector{Root: root}
}

// Sources maps a resolved closure to absolute source paths. Duplicates across
// drivers collapse to one entry; the result is sorted, with the CMSIS system
// source (when core is non-nil) placed first.
func (p Projector) Sources(ctx context.Context, device types.Device, closure types.DriverSet, core *types.Core) ([]string, error) {
	assert.NotEmpty(ctx, p.Root, "sdk root must be set")
	assert.NotEmpty(ctx, device.Name, "device name must be set")

	unique := map[string]struct{}{}
	for _, name := range closure.Names() {
		driver, ok := device.Driver(name)
		if !ok {
			return nil, driverNotFound(name, "")
		}
		for _, source := range driver.Sources {
			path, err := p.absolute(source)
			if err != nil {
				return nil, err
			}
			unique[path] = struct{}{}
		}
	}
	sources := shared.SortedKeys(unique)

	if core != nil {
		system, err := p.absolute(SystemSourcePath(device, *core))
		if err != nil {
			return nil, err
		}
		if _, dup := unique[system]; dup {
			sources = shared.RemoveValue(sources, system)
		}
		sources = append([]string{system}, sources...)
	}

	log.Ctx(ctx).Debug().
		Str("device", device.Name).
		Int("drivers", len(closure)).
		Int("sources", len(sources)).
		Msg("sources projected")
	return sources, nil
}

// Includes returns the device include directories, plus the CMSIS core
// headers when cmsis is set.
func (p Projector) Includes(ctx context.Context, device types.Device, cmsis bool) ([]string, error) {
	assert.NotEmpty(ctx, p.Root, "sdk root must be set")
	assert.NotEmpty(ctx, device.Name, "device name must be set")

	relative := []string{
		DeviceDir(device),
		filepath.Join(DeviceDir(device), "drivers"),
	}
	if cmsis {
		relative = append(relative, CMSISIncludeDir)
	}
	includes := make([]string, 0, len(relative))
	for _, dir := range relative {
		path, err := p.absolute(dir)
		if err != nil {
			return nil, err
		}
		includes = append(includes, path)
	}
	return includes, nil
}

func DeviceDir(device types.Device) string {
	return filepath.Join("devices", device.Name)
}

// SystemSourcePath is the CMSIS system source of a device. Multicore devices
// carry one system file per core.
func SystemSourcePath(device types.Device, core types.Core) string {
	file := fmt.Sprintf("system_%s.c", device.Name)
	if len(device.Cores) > 1 {
		file = fmt.Sprintf("system_%s_%s.c", device.Name, core.Name)
	}
	return filepath.Join(DeviceDir(device), file)
}

func (p Projector) absolute(relative string) (string, error) {
	path, err := filepath.Abs(filepath.Join(p.Root, filepath.FromSlash(relative)))
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to resolve path %s", relative)).
			WithCause(err)
	}
	return path, nil
}
