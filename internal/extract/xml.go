package extract

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/crimson-sun/triage/internal/model"
)

// xmlElement captures one level of child elements and their text content.
type xmlElement struct {
	XMLName  xml.Name
	Children []xmlChild `xml:",any"`
}

type xmlChild struct {
	XMLName xml.Name
	Text    string `xml:",chardata"`
}

// XML extracts the patient record from a flat XML document: the root's
// immediate children become a tag→text mapping read the same way as the
// JSON object keys. Documents that fail to parse return ErrMalformed.
func XML(data string) (model.PatientRecord, error) {
	var root xmlElement
	if err := xml.Unmarshal([]byte(data), &root); err != nil {
		return model.PatientRecord{}, fmt.Errorf("%w: xml: %v", ErrMalformed, err)
	}

	fields := make(map[string]string, len(root.Children))
	for _, c := range root.Children {
		fields[c.XMLName.Local] = strings.TrimSpace(c.Text)
	}

	rec := model.NewPatientRecord()
	rec.PatientID = tagOrDefault(fields, "patient_id")
	rec.Name = tagOrDefault(fields, "name")
	rec.Gender = tagOrDefault(fields, "gender")
	rec.Timestamp = tagOrDefault(fields, "timestamp")
	rec.BirthDate = tagOrDefault(fields, "birthdate")
	return rec, nil
}

func tagOrDefault(fields map[string]string, tag string) string {
	if v, ok := fields[tag]; ok {
		return v
	}
	return model.DefaultValue
}
