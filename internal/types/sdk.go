package types

import "sort"

type Core struct {
	Name string
	Type string
	FPU  bool
	DSP  bool
}

// Driver is a buildable module declared for exactly one device.
type Driver struct {
	ID           string
	Name         string
	Version      string
	Dependencies []string
	// Sources are path fragments relative to the SDK root.
	Sources []string
}

// DefineTemplate is a preprocessor define that may carry placeholder tokens
// in both its name and value.
type DefineTemplate struct {
	Name  string
	Value string
}

func (d DefineTemplate) String() string {
	if d.Value == "" {
		return d.Name
	}
	return d.Name + "=" + d.Value
}

// DriverMap indexes drivers by name.
type DriverMap map[string]Driver

func (m DriverMap) Driver(name string) (Driver, bool) {
	driver, ok := m[name]
	return driver, ok
}

func (m DriverMap) DriverNames() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Device is the top-level selectable unit. Its driver map is copied on
// construction and only exposed through read accessors.
type Device struct {
	Name     string
	Cores    []Core
	Packages []string
	Defines  []DefineTemplate
	drivers  DriverMap
}

func NewDevice(name string, cores []Core, packages []string, defines []DefineTemplate, drivers DriverMap) Device {
	owned := make(DriverMap, len(drivers))
	for key, driver := range drivers {
		driver.Dependencies = append([]string(nil), driver.Dependencies...)
		driver.Sources = append([]string(nil), driver.Sources...)
		owned[key] = driver
	}
	return Device{
		Name:     name,
		Cores:    append([]Core(nil), cores...),
		Packages: append([]string(nil), packages...),
		Defines:  append([]DefineTemplate(nil), defines...),
		drivers:  owned,
	}
}

func (d Device) Driver(name string) (Driver, bool) {
	return d.drivers.Driver(name)
}

func (d Device) DriverNames() []string {
	return d.drivers.DriverNames()
}

func (d Device) DriverCount() int {
	return len(d.drivers)
}

func (d Device) CoreNames() []string {
	names := make([]string, 0, len(d.Cores))
	for _, core := range d.Cores {
		names = append(names, core.Name)
	}
	return names
}

// SDK is the root container built once per invocation from one manifest.
type SDK struct {
	Root          string
	ManifestPath  string
	FormatVersion string
	devices       map[string]Device
	order         []string
}

// NewSDK keeps devices in declaration order. Callers are expected to have
// rejected duplicate names already; a later duplicate replaces the earlier.
func NewSDK(root string, manifestPath string, formatVersion string, devices []Device) SDK {
	sdk := SDK{
		Root:          root,
		ManifestPath:  manifestPath,
		FormatVersion: formatVersion,
		devices:       make(map[string]Device, len(devices)),
	}
	for _, device := range devices {
		if _, exists := sdk.devices[device.Name]; !exists {
			sdk.order = append(sdk.order, device.Name)
		}
		sdk.devices[device.Name] = device
	}
	return sdk
}

func (s SDK) Device(name string) (Device, bool) {
	device, ok := s.devices[name]
	return device, ok
}

func (s SDK) DeviceNames() []string {
	return append([]string(nil), s.order...)
}

func (s SDK) DeviceCount() int {
	return len(s.devices)
}

// DriverSet is a deduplicated set of driver names.
type DriverSet map[string]struct{}

func NewDriverSet(names ...string) DriverSet {
	set := make(DriverSet, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

func (s DriverSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

func (s DriverSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
