package core

import (
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"sdkmeta/internal/shared"
	"sdkmeta/internal/types"
)

// Placeholder tokens recognised in define templates.
const (
	TokenPackage  = "$|package|"
	TokenCoreName = "$|core_name|"
	TokenCoreType = "$|core|"
)

// ResolveDefines renders the device's define templates for the selected
// package and core. An empty package or core falls back to the device's only
// one; anything that cannot be resolved is an invalid selection.
func ResolveDefines(device types.Device, pkg string, coreName string) ([]string, error) {
	selectedPackage, err := SelectPackage(device, pkg)
	if err != nil {
		return nil, err
	}
	core, err := SelectCore(device, coreName)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(types.MsgInvalidSelection + ": " + shared.ErrorMessage(err)).
			WithCause(err)
	}

	replacer := strings.NewReplacer(
		TokenPackage, selectedPackage,
		TokenCoreName, core.Name,
		TokenCoreType, core.Type,
	)
	defines := make([]string, 0, len(device.Defines))
	for _, template := range device.Defines {
		rendered := types.DefineTemplate{
			Name:  replacer.Replace(template.Name),
			Value: replacer.Replace(template.Value),
		}
		defines = append(defines, rendered.String())
	}
	return defines, nil
}
