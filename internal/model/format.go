package model

// Format identifies the wire format of a raw message blob.
type Format string

const (
	FormatJSON    Format = "JSON"
	FormatXML     Format = "XML"
	FormatHL7     Format = "HL7"
	FormatUnknown Format = "Unknown"
)

// Formats lists the learnable format labels in a stable order.
// FormatUnknown is a valid training label: the heuristic labeler emits it
// for blobs it cannot place, and the classifier learns it like any other.
func Formats() []Format {
	return []Format{FormatJSON, FormatXML, FormatHL7, FormatUnknown}
}

// Valid reports whether f is one of the known format labels.
func (f Format) Valid() bool {
	switch f {
	case FormatJSON, FormatXML, FormatHL7, FormatUnknown:
		return true
	}
	return false
}
