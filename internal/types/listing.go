package types

// Listing is the structured form of a `list` result. Field order matches the
// YAML output order.
type Listing struct {
	Target   ListTarget      `yaml:"target"`
	Device   string          `yaml:"device,omitempty"`
	Devices  []string        `yaml:"devices,omitempty"`
	Packages []string        `yaml:"packages,omitempty"`
	Cores    []CoreListing   `yaml:"cores,omitempty"`
	Drivers  []DriverListing `yaml:"drivers,omitempty"`
}

type CoreListing struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	FPU  bool   `yaml:"fpu"`
	DSP  bool   `yaml:"dsp"`
}

type DriverListing struct {
	Name         string   `yaml:"name"`
	Version      string   `yaml:"version,omitempty"`
	Dependencies []string `yaml:"dependencies,omitempty"`
}

// Values returns the flat, one-per-line representation of the listing.
func (l Listing) Values() []string {
	switch l.Target {
	case ListTargetDevices:
		return append([]string(nil), l.Devices...)
	case ListTargetPackages:
		return append([]string(nil), l.Packages...)
	case ListTargetCores:
		values := make([]string, 0, len(l.Cores))
		for _, core := range l.Cores {
			values = append(values, core.Name)
		}
		return values
	case ListTargetDrivers:
		values := make([]string, 0, len(l.Drivers))
		for _, driver := range l.Drivers {
			values = append(values, driver.Name)
		}
		return values
	default:
		return nil
	}
}
