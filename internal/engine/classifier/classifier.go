// Package classifier learns and applies a nearest-centroid model over
// bigram count vectors. Training averages the vectors of each label into a
// centroid; prediction scores a vector against every centroid by cosine
// similarity and takes the best match.
package classifier

import (
	"fmt"
	"math"
	"sort"

	"github.com/crimson-sun/triage/internal/model"
)

// Result holds the outcome of classifying a single vector.
type Result struct {
	Format     model.Format
	Confidence float64
}

// Centroid is a per-label mean vector classifier with a confidence floor.
// Matches scoring below Threshold resolve to FormatUnknown.
type Centroid struct {
	Threshold float64
	centroids map[model.Format][]float32
}

// New creates an untrained Centroid classifier with the given threshold.
func New(threshold float64) *Centroid {
	return &Centroid{Threshold: threshold, centroids: make(map[model.Format][]float32)}
}

// Restore rebuilds a trained classifier from persisted centroids.
func Restore(threshold float64, centroids map[model.Format][]float32) *Centroid {
	return &Centroid{Threshold: threshold, centroids: centroids}
}

// Fit computes one centroid per label from the given vectors. Training is
// deterministic: the same inputs always produce the same centroids.
func (c *Centroid) Fit(vectors [][]float32, labels []model.Format) error {
	if len(vectors) == 0 {
		return fmt.Errorf("classifier: no training vectors")
	}
	if len(vectors) != len(labels) {
		return fmt.Errorf("classifier: %d vectors but %d labels", len(vectors), len(labels))
	}

	dim := len(vectors[0])
	sums := make(map[model.Format][]float64)
	counts := make(map[model.Format]int)
	for i, vec := range vectors {
		if len(vec) != dim {
			return fmt.Errorf("classifier: vector %d has dim %d, want %d", i, len(vec), dim)
		}
		lbl := labels[i]
		if sums[lbl] == nil {
			sums[lbl] = make([]float64, dim)
		}
		for j, x := range vec {
			sums[lbl][j] += float64(x)
		}
		counts[lbl]++
	}

	c.centroids = make(map[model.Format][]float32, len(sums))
	for lbl, sum := range sums {
		centroid := make([]float32, dim)
		n := float64(counts[lbl])
		for j, s := range sum {
			centroid[j] = float32(s / n)
		}
		c.centroids[lbl] = centroid
	}
	return nil
}

// Predict scores the vector against every centroid and returns the best
// match. Below-threshold confidence resolves to FormatUnknown; an untrained
// classifier always returns FormatUnknown.
func (c *Centroid) Predict(vector []float32) Result {
	if len(c.centroids) == 0 {
		return Result{Format: model.FormatUnknown, Confidence: 0}
	}

	best := Result{Format: model.FormatUnknown, Confidence: -1}
	for _, lbl := range sortedLabels(c.centroids) {
		sim := cosineSimilarity(vector, c.centroids[lbl])
		if sim > best.Confidence {
			best = Result{Format: lbl, Confidence: sim}
		}
	}

	if best.Confidence < c.Threshold {
		return Result{Format: model.FormatUnknown, Confidence: best.Confidence}
	}
	return best
}

// Centroids returns the trained per-label centroids for persistence.
// Callers must not mutate them.
func (c *Centroid) Centroids() map[model.Format][]float32 {
	return c.centroids
}

// sortedLabels fixes the iteration order so ties break deterministically.
func sortedLabels(centroids map[model.Format][]float32) []model.Format {
	labels := make([]model.Format, 0, len(centroids))
	for lbl := range centroids {
		labels = append(labels, lbl)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })
	return labels
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
