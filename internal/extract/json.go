package extract

import (
	"encoding/json"
	"fmt"

	"github.com/crimson-sun/triage/internal/model"
)

// JSON extracts the patient record from a JSON object. Input that does not
// parse as a JSON object returns ErrMalformed; parsed objects missing
// fields get "Unknown" defaults. Only string values are taken — a numeric
// patient_id is treated as absent rather than coerced.
func JSON(data string) (model.PatientRecord, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(data), &obj); err != nil {
		return model.PatientRecord{}, fmt.Errorf("%w: json: %v", ErrMalformed, err)
	}

	rec := model.NewPatientRecord()
	rec.PatientID = stringField(obj, "patient_id")
	rec.Name = stringField(obj, "name")
	rec.Gender = stringField(obj, "gender")
	rec.BirthDate = stringField(obj, "birthdate")
	if ts, ok := obj["timestamp"].(string); ok {
		rec.Timestamp = ts
	} else {
		rec.Timestamp = model.DefaultValue
	}
	return rec, nil
}

func stringField(obj map[string]any, key string) string {
	if s, ok := obj[key].(string); ok {
		return s
	}
	return model.DefaultValue
}
