package ports

import "sdkmeta/internal/types"

// OutputPort renders results for a build tool.
type OutputPort interface {
	WriteValues(values []string) error
	WriteListing(listing types.Listing, format types.ListFormat) error
}
