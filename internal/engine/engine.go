// Package engine wires the vectorizer, the trained classifier, and the
// field extractors into the vectorize → predict → extract path.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/crimson-sun/triage/internal/engine/artifact"
	"github.com/crimson-sun/triage/internal/engine/classifier"
	"github.com/crimson-sun/triage/internal/engine/vectorizer"
	"github.com/crimson-sun/triage/internal/extract"
	"github.com/crimson-sun/triage/internal/model"
)

// ErrNotTrained is returned by prediction paths before Train or a restored
// artifact has populated the engine.
var ErrNotTrained = errors.New("engine: model not trained")

// Engine holds a fitted vectorizer and classifier pair. The two are
// coupled: a classifier only makes sense against the vocabulary it was
// trained on.
type Engine struct {
	vec *vectorizer.Vectorizer
	cls *classifier.Centroid
}

// New creates an untrained Engine that will classify with the given
// confidence threshold once trained.
func New(threshold float64) *Engine {
	return &Engine{cls: classifier.New(threshold)}
}

// FromArtifact restores an Engine from a persisted artifact.
func FromArtifact(a artifact.Artifact) *Engine {
	return &Engine{
		vec: vectorizer.Restore(a.Vocabulary),
		cls: classifier.Restore(a.Threshold, a.Centroids),
	}
}

// Train fits the bigram vocabulary over the texts, then fits the
// classifier against the given labels. Any previous fit is replaced.
func (e *Engine) Train(texts []string, labels []model.Format) error {
	if len(texts) != len(labels) {
		return fmt.Errorf("engine: %d texts but %d labels", len(texts), len(labels))
	}
	vec := vectorizer.Fit(texts)
	cls := classifier.New(e.cls.Threshold)
	if err := cls.Fit(vec.TransformBatch(texts), labels); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	e.vec = vec
	e.cls = cls
	return nil
}

// Detect predicts the format of a single text blob.
func (e *Engine) Detect(text string) (classifier.Result, error) {
	if e.vec == nil {
		return classifier.Result{}, ErrNotTrained
	}
	return e.cls.Predict(e.vec.Transform(text)), nil
}

// Process runs the full path for one record: predict the format, then
// dispatch the matching extractor. A FormatUnknown prediction yields an
// empty record; extraction failures propagate so callers can distinguish
// wrong-format blobs from unparseable ones.
func (e *Engine) Process(raw model.RawRecord) (model.Detection, error) {
	result, err := e.Detect(raw.Data)
	if err != nil {
		return model.Detection{}, err
	}

	det := model.Detection{
		Format:     result.Format,
		Confidence: result.Confidence,
		DetectedAt: time.Now(),
		Raw:        raw.Data,
	}
	if result.Format == model.FormatUnknown {
		return det, nil
	}

	extractor, err := extract.ByFormat(result.Format)
	if err != nil {
		return model.Detection{}, fmt.Errorf("engine: %w", err)
	}
	rec, err := extractor(raw.Data)
	if err != nil {
		return model.Detection{}, fmt.Errorf("engine: extract %s: %w", result.Format, err)
	}
	det.Record = rec
	return det, nil
}

// ProcessBatch runs Process over a slice of records.
func (e *Engine) ProcessBatch(raws []model.RawRecord) ([]model.Detection, error) {
	dets := make([]model.Detection, 0, len(raws))
	for _, raw := range raws {
		d, err := e.Process(raw)
		if err != nil {
			return nil, err
		}
		dets = append(dets, d)
	}
	return dets, nil
}

// ToArtifact packages the trained state for persistence.
func (e *Engine) ToArtifact(runID string, seed int64) (artifact.Artifact, error) {
	if e.vec == nil {
		return artifact.Artifact{}, ErrNotTrained
	}
	return artifact.Artifact{
		Version:    artifact.Version,
		RunID:      runID,
		TrainedAt:  time.Now().UTC(),
		Seed:       seed,
		Vocabulary: e.vec.Vocabulary(),
		Centroids:  e.cls.Centroids(),
		Threshold:  e.cls.Threshold,
	}, nil
}
