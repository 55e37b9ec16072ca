package triage

import (
	"fmt"

	"github.com/crimson-sun/triage/internal/engine"
	"github.com/crimson-sun/triage/internal/engine/artifact"
	"github.com/crimson-sun/triage/internal/extract"
	"github.com/crimson-sun/triage/internal/model"
	"github.com/crimson-sun/triage/internal/sniff"
)

// Triage is a trained format detector plus the per-format field
// extractors. Obtain one from Train or Load.
type Triage struct {
	eng *engine.Engine
}

// Train labels the corpus with the built-in heuristic and fits the bigram
// model on it. Training is deterministic over a fixed corpus.
func Train(corpus []string, opts ...Option) (*Triage, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	labels := make([]model.Format, len(corpus))
	for i, text := range corpus {
		labels[i] = sniff.Detect(text)
	}

	eng := engine.New(o.confidenceThreshold)
	if err := eng.Train(corpus, labels); err != nil {
		return nil, fmt.Errorf("triage: %w", err)
	}
	return &Triage{eng: eng}, nil
}

// Load restores a trained instance from a persisted artifact file.
func Load(path string) (*Triage, error) {
	a, err := artifact.Load(path)
	if err != nil {
		return nil, fmt.Errorf("triage: %w", err)
	}
	return &Triage{eng: engine.FromArtifact(a)}, nil
}

// Save persists the trained model (vectorizer and classifier together) as
// a single artifact file.
func (t *Triage) Save(path string) error {
	a, err := t.eng.ToArtifact("", 0)
	if err != nil {
		return fmt.Errorf("triage: %w", err)
	}
	if err := artifact.Save(path, a); err != nil {
		return fmt.Errorf("triage: %w", err)
	}
	return nil
}

// Detect predicts the blob's format with the trained model.
func (t *Triage) Detect(text string) (Format, float64, error) {
	res, err := t.eng.Detect(text)
	if err != nil {
		return Unknown, 0, fmt.Errorf("triage: %w", err)
	}
	return Format(res.Format), res.Confidence, nil
}

// Process predicts the blob's format and extracts the patient record.
// Unknown blobs yield a zero record; blobs that predict a format but fail
// to parse as it return an error.
func (t *Triage) Process(text string) (Detection, error) {
	det, err := t.eng.Process(model.RawRecord{Data: text})
	if err != nil {
		return Detection{}, fmt.Errorf("triage: %w", err)
	}
	return Detection{
		Format:     Format(det.Format),
		Confidence: det.Confidence,
		Record:     recordFromInternal(det.Record),
	}, nil
}

// Sniff labels a blob with the hand-written heuristic the model learns
// from. Use it when you want the reference labeling rather than the
// learned surrogate.
func Sniff(text string) Format {
	return Format(sniff.Detect(text))
}

// Extract runs the extractor for a known format directly, without
// detection. Returns an error for Unknown and for unparseable input.
func Extract(f Format, text string) (Record, error) {
	fn, err := extract.ByFormat(model.Format(f))
	if err != nil {
		return Record{}, fmt.Errorf("triage: %w", err)
	}
	rec, err := fn(text)
	if err != nil {
		return Record{}, fmt.Errorf("triage: %w", err)
	}
	return recordFromInternal(rec), nil
}
