package types

type ListTarget string

const (
	ListTargetDrivers  ListTarget = "drivers"
	ListTargetDevices  ListTarget = "devices"
	ListTargetPackages ListTarget = "packages"
	ListTargetCores    ListTarget = "cores"
)

// DeviceScoped reports whether listing the target requires a selected device.
func (t ListTarget) DeviceScoped() bool {
	return t != ListTargetDevices
}

type ListFormat string

const (
	ListFormatText ListFormat = "text"
	ListFormatYAML ListFormat = "yaml"
)

type SourceKind string

const (
	SourceKindSrc      SourceKind = "src"
	SourceKindCInclude SourceKind = "c_include"
)

type ComponentType string

const ComponentTypeDriver ComponentType = "driver"
