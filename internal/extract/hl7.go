package extract

import (
	"fmt"
	"strings"

	"github.com/crimson-sun/triage/internal/model"
)

// PID segment field positions (pipe-delimited, 0-indexed from the segment
// identifier).
const (
	pidFieldID        = 3
	pidFieldName      = 5
	pidFieldBirthDate = 7
	pidFieldGender    = 8
)

// HL7 extracts the patient record from pipe-delimited HL7 text. Every line
// starting with "PID" is read at fixed field positions; when a message
// carries several PID segments the last one wins. A PID segment too short
// to hold a patient ID is an ErrShortSegment — short of that, missing
// trailing fields default to "Unknown".
//
// PID segments carry no timestamp (HL7 puts message time in the MSH
// header), so the record's Timestamp is always left empty.
func HL7(data string) (model.PatientRecord, error) {
	rec := model.NewPatientRecord()

	for i, line := range strings.Split(data, "\n") {
		if !strings.HasPrefix(line, "PID") {
			continue
		}
		fields := strings.Split(line, "|")
		if len(fields) <= pidFieldID {
			return model.PatientRecord{}, fmt.Errorf("%w: line %d has %d fields, need at least %d",
				ErrShortSegment, i+1, len(fields), pidFieldID+1)
		}
		rec.PatientID = fields[pidFieldID]
		rec.Name = strings.ReplaceAll(fieldOrDefault(fields, pidFieldName), "^", " ")
		rec.BirthDate = fieldOrDefault(fields, pidFieldBirthDate)
		rec.Gender = fieldOrDefault(fields, pidFieldGender)
	}

	return rec, nil
}

// fieldOrDefault is the bounds-checked positional accessor: indexes past
// the end of the segment read as "Unknown" instead of panicking.
func fieldOrDefault(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return model.DefaultValue
}
