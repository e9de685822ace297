package ports

import "sdkmeta/internal/types"

// SourcePolicyPort decides which source entries of a driver are compiled.
type SourcePolicyPort interface {
	AcceptSource(path string) bool
}

// DriverCatalogPort exposes the drivers of one device by name.
type DriverCatalogPort interface {
	Driver(name string) (types.Driver, bool)
}
