package model

import "time"

// DefaultValue fills any patient field that is absent from the source blob.
const DefaultValue = "Unknown"

// RawRecord is one input row: a free-form text blob that may contain JSON,
// XML, or HL7 pipe-delimited content. Produced by the dataset loader,
// discarded after labeling or extraction.
type RawRecord struct {
	Data   string         // original blob text
	Source string         // where the row came from ("csvfile", "stdin")
	Line   int            // 1-based row number within the source
	Meta   map[string]any // source-specific metadata
}

// PatientRecord is the normalized output shape shared by every extractor.
// String fields default to "Unknown" when the source omits them. Timestamp
// is the exception: HL7 PID segments carry no timestamp, so HL7-derived
// records leave it empty and JSON output omits it.
type PatientRecord struct {
	PatientID string `json:"patient_id"`
	Name      string `json:"name"`
	Gender    string `json:"gender"`
	Timestamp string `json:"timestamp,omitempty"`
	BirthDate string `json:"birthdate"`
}

// NewPatientRecord returns a record with every field defaulted except
// Timestamp, which stays empty until a source provides one.
func NewPatientRecord() PatientRecord {
	return PatientRecord{
		PatientID: DefaultValue,
		Name:      DefaultValue,
		Gender:    DefaultValue,
		BirthDate: DefaultValue,
	}
}

// Detection is the end-to-end result for one blob: the predicted format,
// the classifier's confidence, and the extracted record (zero-valued when
// the format is Unknown).
type Detection struct {
	Format     Format        `json:"format"`
	Confidence float64       `json:"confidence,omitempty"`
	Record     PatientRecord `json:"record"`
	DetectedAt time.Time     `json:"detected_at"`
	// Raw is the original blob, retained at standard/full verbosity.
	Raw string `json:"raw,omitempty"`
}
