package testdata

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed corpus.json
var corpusJSON []byte

// CorpusEntry is a labeled message blob for detection validation.
type CorpusEntry struct {
	Raw            string `json:"raw"`
	ExpectedFormat string `json:"expected_format"`
	Description    string `json:"description"`
}

// LoadCorpus parses the embedded corpus.json and returns all entries.
func LoadCorpus() ([]CorpusEntry, error) {
	var entries []CorpusEntry
	if err := json.Unmarshal(corpusJSON, &entries); err != nil {
		return nil, fmt.Errorf("parse corpus.json: %w", err)
	}
	return entries, nil
}

// Texts returns the raw blobs of all entries, for training.
func Texts(entries []CorpusEntry) []string {
	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = e.Raw
	}
	return texts
}
