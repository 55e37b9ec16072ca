// Package dataset prepares labeled training data: heuristic labeling,
// duplicate removal, and the seeded train/holdout split.
package dataset

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"

	"github.com/crimson-sun/triage/internal/model"
	"github.com/crimson-sun/triage/internal/sniff"
)

// Example is one labeled training row.
type Example struct {
	Text  string
	Label model.Format
}

// Label runs the heuristic labeler over raw records. This is the only
// place training labels come from: the classifier is a surrogate for the
// labeler, nothing more.
func Label(records []model.RawRecord) []Example {
	examples := make([]Example, len(records))
	for i, r := range records {
		examples[i] = Example{Text: r.Data, Label: sniff.Detect(r.Data)}
	}
	return examples
}

// Dedup removes rows whose text already appeared, keeping first-occurrence
// order. Exact duplicates that land on both sides of the split would leak
// holdout rows into training and inflate the evaluation.
func Dedup(examples []Example) []Example {
	if len(examples) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(examples))
	out := make([]Example, 0, len(examples))
	for _, ex := range examples {
		if _, ok := seen[ex.Text]; ok {
			continue
		}
		seen[ex.Text] = struct{}{}
		out = append(out, ex)
	}
	return out
}

// Split shuffles the examples with the given seed and cuts off the trailing
// holdout fraction for evaluation. The same seed over the same input always
// produces the same split. Fractions outside (0, 1) put everything in the
// training set.
func Split(examples []Example, holdout float64, seed int64) (train, eval []Example) {
	shuffled := make([]Example, len(examples))
	copy(shuffled, examples)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if holdout <= 0 || holdout >= 1 {
		return shuffled, nil
	}
	cut := len(shuffled) - int(float64(len(shuffled))*holdout)
	return shuffled[:cut], shuffled[cut:]
}

// SaveLabeled writes examples as a two-column CSV (Data, Label), the shape
// downstream labeling reviews expect.
func SaveLabeled(path string, examples []Example) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dataset: create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Data", "Label"}); err != nil {
		f.Close()
		return fmt.Errorf("dataset: write header: %w", err)
	}
	for _, ex := range examples {
		if err := w.Write([]string{ex.Text, string(ex.Label)}); err != nil {
			f.Close()
			return fmt.Errorf("dataset: write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("dataset: flush: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("dataset: close: %w", err)
	}
	return nil
}

// TextsAndLabels splits examples into the parallel slices the engine
// trains on.
func TextsAndLabels(examples []Example) (texts []string, labels []model.Format) {
	texts = make([]string, len(examples))
	labels = make([]model.Format, len(examples))
	for i, ex := range examples {
		texts[i] = ex.Text
		labels[i] = ex.Label
	}
	return texts, labels
}
