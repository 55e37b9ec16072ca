// Package triage detects the wire format of healthcare message blobs
// (JSON, XML, or HL7 pipe-delimited) and extracts a normalized patient
// record from them.
//
// Quick start:
//
//	t, err := triage.Train(corpus)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := t.Save("triage_model.gob"); err != nil {
//	    log.Fatal(err)
//	}
//
//	det, _ := t.Process(`{"patient_id": "P145", "name": "Ada"}`)
//	fmt.Println(det.Format, det.Record.PatientID) // JSON P145
//
// Training labels come from the built-in heuristic (see Sniff); the trained
// model reproduces it from character bigrams alone, so inference never
// re-runs the parse-validation logic. A trained instance is safe for
// concurrent reads.
package triage
