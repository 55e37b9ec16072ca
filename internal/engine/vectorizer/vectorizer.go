// Package vectorizer turns text into character-bigram count vectors. The
// vocabulary is learned once at fit time; the classifier's feature space is
// defined entirely by it, so a vectorizer and the model trained on top of
// it must always travel together.
package vectorizer

import (
	"sort"

	"golang.org/x/text/unicode/norm"
)

// Vectorizer maps character bigrams to feature columns. The zero value is
// unusable; obtain one from Fit or Restore.
type Vectorizer struct {
	vocab map[string]int // bigram → column index
}

// Fit learns the bigram vocabulary from the given corpus. Column indexes
// are assigned in sorted bigram order so repeated fits over the same corpus
// produce identical feature spaces.
func Fit(corpus []string) *Vectorizer {
	seen := make(map[string]struct{})
	for _, text := range corpus {
		for _, bg := range bigrams(text) {
			seen[bg] = struct{}{}
		}
	}

	ordered := make([]string, 0, len(seen))
	for bg := range seen {
		ordered = append(ordered, bg)
	}
	sort.Strings(ordered)

	vocab := make(map[string]int, len(ordered))
	for i, bg := range ordered {
		vocab[bg] = i
	}
	return &Vectorizer{vocab: vocab}
}

// Restore rebuilds a Vectorizer from a persisted vocabulary.
func Restore(vocab map[string]int) *Vectorizer {
	return &Vectorizer{vocab: vocab}
}

// Transform counts the text's bigrams against the learned vocabulary.
// Bigrams unseen at fit time are ignored, so prediction degrades on
// out-of-vocabulary input but never fails.
func (v *Vectorizer) Transform(text string) []float32 {
	vec := make([]float32, len(v.vocab))
	for _, bg := range bigrams(text) {
		if col, ok := v.vocab[bg]; ok {
			vec[col]++
		}
	}
	return vec
}

// TransformBatch transforms multiple texts.
func (v *Vectorizer) TransformBatch(texts []string) [][]float32 {
	vecs := make([][]float32, len(texts))
	for i, text := range texts {
		vecs[i] = v.Transform(text)
	}
	return vecs
}

// Vocabulary returns the learned bigram→column mapping for persistence.
// Callers must not mutate it.
func (v *Vectorizer) Vocabulary() map[string]int {
	return v.vocab
}

// Dim returns the feature-space dimensionality.
func (v *Vectorizer) Dim() int {
	return len(v.vocab)
}

// bigrams returns the overlapping two-rune substrings of the NFC-normalized
// text. Texts shorter than two runes have no bigrams.
func bigrams(text string) []string {
	runes := []rune(norm.NFC.String(text))
	if len(runes) < 2 {
		return nil
	}
	out := make([]string, 0, len(runes)-1)
	for i := 0; i+1 < len(runes); i++ {
		out = append(out, string(runes[i:i+2]))
	}
	return out
}
