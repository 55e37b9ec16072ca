// Package sniff labels raw text blobs with their apparent wire format.
// It is the hand-written heuristic the classifier learns to reproduce:
// training labels come from Detect, so its exact behavior — quirks
// included — is load-bearing and must not drift.
package sniff

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/crimson-sun/triage/internal/model"
)

// Detect returns exactly one of {JSON, XML, HL7, Unknown} for the given
// blob. It never fails: malformed input degrades to Unknown.
//
// Rules, first match wins:
//  1. trimmed text wrapped in { } → JSON (no structural validation)
//  2. trimmed text wrapped in < > → XML if it parses as well-formed XML,
//     Unknown otherwise (never falls through to the HL7 check)
//  3. a '|' anywhere, or a newline together with "PID" → HL7
//  4. otherwise Unknown
//
// Note on rule 3: a lone pipe is sufficient — the PID check only guards the
// newline arm, so "a|b" is labeled HL7. Almost certainly a bug in the
// labeling rule, but every persisted model was trained against it; changing
// it silently would relabel training data out from under existing artifacts.
func Detect(data string) model.Format {
	trimmed := strings.TrimSpace(data)

	if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
		return model.FormatJSON
	}

	if strings.HasPrefix(trimmed, "<") && strings.HasSuffix(trimmed, ">") {
		if wellFormedXML(trimmed) {
			return model.FormatXML
		}
		return model.FormatUnknown
	}

	if strings.Contains(data, "|") || (strings.Contains(data, "\n") && strings.Contains(data, "PID")) {
		return model.FormatHL7
	}

	return model.FormatUnknown
}

// wellFormedXML reports whether s parses as XML end to end.
func wellFormedXML(s string) bool {
	dec := xml.NewDecoder(strings.NewReader(s))
	for {
		_, err := dec.Token()
		if err != nil {
			return errors.Is(err, io.EOF)
		}
	}
}
