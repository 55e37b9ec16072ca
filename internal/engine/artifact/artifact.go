// Package artifact persists a trained model as a single file. The
// vectorizer's vocabulary and the classifier's centroids are coupled — the
// model's feature space is defined entirely by the vocabulary — so they are
// always written and loaded together.
package artifact

import (
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/crimson-sun/triage/internal/model"
)

// Version is bumped whenever the on-disk layout changes. Loading an
// artifact with a different version fails loudly instead of degrading.
const Version = 1

// ErrVersionMismatch marks an artifact written by an incompatible layout.
var ErrVersionMismatch = errors.New("artifact: version mismatch")

// Artifact is the serialized (classifier, vectorizer) pair plus the
// metadata needed to reproduce the training run.
type Artifact struct {
	Version   int
	RunID     string
	TrainedAt time.Time
	Seed      int64

	Vocabulary map[string]int
	Centroids  map[model.Format][]float32
	Threshold  float64
}

// Save gob-encodes the artifact to path, creating or truncating the file.
func Save(path string, a Artifact) error {
	a.Version = Version

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("artifact: create: %w", err)
	}

	if err := gob.NewEncoder(f).Encode(a); err != nil {
		f.Close()
		return fmt.Errorf("artifact: encode: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("artifact: close: %w", err)
	}
	return nil
}

// Load reads an artifact from path. Missing files, undecodable content,
// and layout version mismatches are all errors — a model that cannot be
// fully restored must not serve predictions.
func Load(path string) (Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		return Artifact{}, fmt.Errorf("artifact: open: %w", err)
	}
	defer f.Close()

	var a Artifact
	if err := gob.NewDecoder(f).Decode(&a); err != nil {
		return Artifact{}, fmt.Errorf("artifact: decode %s: %w", path, err)
	}
	if a.Version != Version {
		return Artifact{}, fmt.Errorf("%w: file %s has version %d, want %d",
			ErrVersionMismatch, path, a.Version, Version)
	}
	if len(a.Vocabulary) == 0 || len(a.Centroids) == 0 {
		return Artifact{}, fmt.Errorf("artifact: %s is incomplete (empty vocabulary or centroids)", path)
	}
	return a, nil
}
