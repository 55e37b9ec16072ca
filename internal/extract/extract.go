// Package extract maps raw format-specific blobs onto the normalized
// patient record. One extractor per format; each distinguishes
// well-formed-but-partial input (defaulted record, nil error) from input
// that could not be parsed at all (zero record, ErrMalformed).
package extract

import (
	"errors"
	"fmt"

	"github.com/crimson-sun/triage/internal/model"
)

// ErrMalformed marks input that failed to parse as its claimed format.
var ErrMalformed = errors.New("extract: malformed input")

// ErrShortSegment marks an HL7 PID segment with too few pipe-delimited
// fields to carry a patient ID.
var ErrShortSegment = errors.New("extract: PID segment too short")

// ErrUnknownFormat marks a dispatch request for a format with no extractor.
var ErrUnknownFormat = errors.New("extract: no extractor for format")

// Func is the shared extractor signature.
type Func func(data string) (model.PatientRecord, error)

// ByFormat returns the extractor for the given format label. FormatUnknown
// has no extractor.
func ByFormat(f model.Format) (Func, error) {
	switch f {
	case model.FormatJSON:
		return JSON, nil
	case model.FormatXML:
		return XML, nil
	case model.FormatHL7:
		return HL7, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, f)
}
