package core

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"sdkmeta/internal/types"
)

// SelectDevice looks a device up by name. With no name it succeeds only when
// the SDK declares exactly one device.
func SelectDevice(sdk types.SDK, name string) (types.Device, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		names := sdk.DeviceNames()
		if len(names) != 1 {
			return types.Device{}, ambiguous("device", names)
		}
		device, _ := sdk.Device(names[0])
		return device, nil
	}
	device, ok := sdk.Device(name)
	if !ok {
		return types.Device{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("%s: %q (available: %s)", types.MsgDeviceNotFound, name, alternatives(sdk.DeviceNames())))
	}
	return device, nil
}

// SelectCore applies the same single-default rule to the cores of a device.
func SelectCore(device types.Device, name string) (types.Core, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		if len(device.Cores) != 1 {
			return types.Core{}, ambiguous("core of device "+device.Name, device.CoreNames())
		}
		return device.Cores[0], nil
	}
	for _, core := range device.Cores {
		if core.Name == name {
			return core, nil
		}
	}
	return types.Core{}, errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("%s: %q on device %s (available: %s)", types.MsgCoreNotFound, name, device.Name, alternatives(device.CoreNames())))
}

// PackageExists reports whether name is a package of the device, or, for an
// empty name, whether the device has exactly one package.
func PackageExists(device types.Device, name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return len(device.Packages) == 1
	}
	for _, pkg := range device.Packages {
		if pkg == name {
			return true
		}
	}
	return false
}

// SelectPackage resolves the package used for define substitution.
func SelectPackage(device types.Device, name string) (string, error) {
	name = strings.TrimSpace(name)
	if !PackageExists(device, name) {
		detail := fmt.Sprintf("package %q", name)
		if name == "" {
			detail = "package must be set"
		}
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("%s: %s for device %s (available: %s)", types.MsgInvalidSelection, detail, device.Name, alternatives(device.Packages)))
	}
	if name == "" {
		return device.Packages[0], nil
	}
	return name, nil
}

func ambiguous(what string, names []string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("%s: %s must be set (available: %s)", types.MsgAmbiguousSelection, what, alternatives(names)))
}

func alternatives(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}
