package types

// Message prefixes identifying each failure class. Every error built by the
// resolver starts its message with one of these so callers can classify it
// without inspecting the cause chain.
const (
	MsgMetadataNotFound   = "metadata document not found"
	MsgParseError         = "failed to parse metadata document"
	MsgDeviceNotFound     = "device not found"
	MsgCoreNotFound       = "core not found"
	MsgAmbiguousSelection = "ambiguous selection"
	MsgDriverNotFound     = "driver not found"
	MsgInvalidSelection   = "invalid selection"
)
