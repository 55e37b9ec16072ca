// Package source abstracts where raw records come from. Implementations
// register themselves by provider name; the pipeline resolves one by
// configuration, the same way log connectors are resolved in our other
// ingestion tools.
package source

import (
	"context"

	"github.com/crimson-sun/triage/internal/model"
)

// Source loads a batch of raw records from some backing input.
type Source interface {
	Load(ctx context.Context, cfg Config) ([]model.RawRecord, error)
}

// Config holds provider-specific input settings.
type Config struct {
	Provider string
	Path     string            // file path, where the provider reads files
	Column   string            // CSV column holding the blob text (default "Data")
	Extra    map[string]string // provider-specific knobs
}
