package triage

import (
	"github.com/crimson-sun/triage/internal/model"
)

// Format identifies a blob's wire format.
// These are the stable public values — internal representations may evolve
// independently without breaking consumers.
type Format string

const (
	JSON    Format = "JSON"
	XML     Format = "XML"
	HL7     Format = "HL7"
	Unknown Format = "Unknown"
)

// Record is the normalized patient record shared by every format. Fields
// absent from the source hold "Unknown"; Timestamp is empty for HL7 input,
// whose PID segments carry no timestamp.
type Record struct {
	PatientID string `json:"patient_id"`
	Name      string `json:"name"`
	Gender    string `json:"gender"`
	Timestamp string `json:"timestamp,omitempty"`
	BirthDate string `json:"birthdate"`
}

// Detection is the result of running one blob through the trained model:
// the predicted format, the model's confidence, and the extracted record
// (zero-valued when the format is Unknown).
type Detection struct {
	Format     Format  `json:"format"`
	Confidence float64 `json:"confidence,omitempty"`
	Record     Record  `json:"record"`
}

func recordFromInternal(r model.PatientRecord) Record {
	return Record{
		PatientID: r.PatientID,
		Name:      r.Name,
		Gender:    r.Gender,
		Timestamp: r.Timestamp,
		BirthDate: r.BirthDate,
	}
}
