// Package stdin loads a single raw record from standard input, for piping
// one blob through the detect+extract path without staging a CSV.
package stdin

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/crimson-sun/triage/internal/model"
	"github.com/crimson-sun/triage/internal/source"
)

func init() {
	source.Register("stdin", func() source.Source { return &Stdin{} })
}

// Stdin reads all of standard input as one blob. Blobs span lines (HL7
// messages are multi-line), so input is not split.
type Stdin struct {
	Reader io.Reader // defaults to os.Stdin; settable for tests
}

func (s *Stdin) Load(_ context.Context, _ source.Config) ([]model.RawRecord, error) {
	r := s.Reader
	if r == nil {
		r = os.Stdin
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("stdin: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("stdin: no input")
	}
	return []model.RawRecord{{Data: string(data), Source: "stdin", Line: 1}}, nil
}
