package output

import "github.com/crimson-sun/triage/internal/model"

const standardRawLimit = 2000

// FormatDetection returns a copy of the detection with fields stripped
// according to verbosity.
// At Minimal: Raw and Confidence are zeroed (omitted from JSON via omitempty).
// At Standard: Raw is truncated to a readable length.
// At Full: all fields preserved.
func FormatDetection(d model.Detection, verbosity Verbosity) model.Detection {
	switch verbosity {
	case Minimal:
		d.Raw = ""
		d.Confidence = 0
	case Standard:
		d.Raw = truncate(d.Raw, standardRawLimit)
	}
	return d
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
