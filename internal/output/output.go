package output

import (
	"context"

	"github.com/crimson-sun/triage/internal/model"
)

// Output defines the interface for detection result destinations.
type Output interface {
	Write(ctx context.Context, det model.Detection) error
	Close() error
}

// Verbosity controls how much of the original blob rides along with each
// detection result.
type Verbosity int

const (
	Minimal  Verbosity = iota // strip raw blobs and confidence
	Standard                  // retain raw blobs, truncated
	Full                      // retain everything
)

// ParseVerbosity converts a config string to a Verbosity. Unknown strings
// default to Standard.
func ParseVerbosity(s string) Verbosity {
	switch s {
	case "minimal":
		return Minimal
	case "full":
		return Full
	default:
		return Standard
	}
}
