package engine

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/crimson-sun/triage/internal/engine/artifact"
	"github.com/crimson-sun/triage/internal/engine/testdata"
	"github.com/crimson-sun/triage/internal/model"
	"github.com/crimson-sun/triage/internal/sniff"
)

// trainedEngine fits an engine on the embedded corpus using heuristic labels.
func trainedEngine(t *testing.T) (*Engine, []testdata.CorpusEntry) {
	t.Helper()
	entries, err := testdata.LoadCorpus()
	if err != nil {
		t.Fatalf("load corpus: %v", err)
	}

	texts := testdata.Texts(entries)
	labels := make([]model.Format, len(texts))
	for i, text := range texts {
		labels[i] = sniff.Detect(text)
	}

	eng := New(0.1)
	if err := eng.Train(texts, labels); err != nil {
		t.Fatalf("train: %v", err)
	}
	return eng, entries
}

func TestCorpusLabelsMatchHeuristic(t *testing.T) {
	entries, err := testdata.LoadCorpus()
	if err != nil {
		t.Fatalf("load corpus: %v", err)
	}
	for _, e := range entries {
		if got := sniff.Detect(e.Raw); string(got) != e.ExpectedFormat {
			t.Fatalf("%s: heuristic labels %q as %v, corpus expects %s", e.Description, e.Raw, got, e.ExpectedFormat)
		}
	}
}

func TestTrain_RecoversTrainingLabels(t *testing.T) {
	eng, entries := trainedEngine(t)

	// Training-set accuracy verifies the train→predict wiring, not
	// generalization. The three concrete formats have strongly separated
	// punctuation signatures and should be near-perfect; the Unknown
	// class is a grab bag, so it only needs to beat a loose floor.
	correct, total := 0, 0
	correctAll := 0
	for _, e := range entries {
		res, err := eng.Detect(e.Raw)
		if err != nil {
			t.Fatalf("detect: %v", err)
		}
		if string(res.Format) == e.ExpectedFormat {
			correctAll++
		}
		if e.ExpectedFormat == string(model.FormatUnknown) {
			continue
		}
		total++
		if string(res.Format) == e.ExpectedFormat {
			correct++
		}
	}
	if acc := float64(correct) / float64(total); acc < 0.9 {
		t.Fatalf("training-set accuracy %.2f on concrete formats, want > 0.9 (%d/%d)", acc, correct, total)
	}
	if acc := float64(correctAll) / float64(len(entries)); acc < 0.7 {
		t.Fatalf("overall training-set accuracy %.2f, want > 0.7 (%d/%d)", acc, correctAll, len(entries))
	}
}

func TestDetect_Untrained(t *testing.T) {
	_, err := New(0.5).Detect("{}")
	if !errors.Is(err, ErrNotTrained) {
		t.Fatalf("expected ErrNotTrained, got %v", err)
	}
}

func TestProcess_EndToEnd(t *testing.T) {
	eng, _ := trainedEngine(t)

	data := `{"patient_id": "P145", "name": "Patient_56", "gender": "F", "timestamp": "2022-12-01T13:38:00Z", "birthdate": "1976-01-01"}`
	det, err := eng.Process(model.RawRecord{Data: data})
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	if det.Format != model.FormatJSON {
		t.Fatalf("expected JSON, got %v", det.Format)
	}
	want := model.PatientRecord{
		PatientID: "P145",
		Name:      "Patient_56",
		Gender:    "F",
		Timestamp: "2022-12-01T13:38:00Z",
		BirthDate: "1976-01-01",
	}
	if det.Record != want {
		t.Fatalf("record = %+v, want %+v", det.Record, want)
	}
	if det.Raw != data {
		t.Fatalf("expected raw blob to be retained")
	}
}

func TestProcess_UnknownYieldsEmptyRecord(t *testing.T) {
	eng, _ := trainedEngine(t)

	// Bigrams unseen at fit time score zero against every centroid, so
	// this lands below any threshold and resolves to Unknown.
	det, err := eng.Process(model.RawRecord{Data: "@@@@"})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if det.Format != model.FormatUnknown {
		t.Fatalf("expected Unknown, got %v", det.Format)
	}
	if det.Record != (model.PatientRecord{}) {
		t.Fatalf("expected empty record for Unknown, got %+v", det.Record)
	}
}

func TestArtifact_RoundTripPreservesPredictions(t *testing.T) {
	eng, entries := trainedEngine(t)

	art, err := eng.ToArtifact("run-test", 7)
	if err != nil {
		t.Fatalf("to artifact: %v", err)
	}
	path := filepath.Join(t.TempDir(), "model.gob")
	if err := artifact.Save(path, art); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := artifact.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	restored := FromArtifact(loaded)

	for _, e := range entries {
		orig, err := eng.Detect(e.Raw)
		if err != nil {
			t.Fatalf("detect: %v", err)
		}
		got, err := restored.Detect(e.Raw)
		if err != nil {
			t.Fatalf("restored detect: %v", err)
		}
		if got.Format != orig.Format {
			t.Fatalf("restored engine predicts %v, original %v for %q", got.Format, orig.Format, e.Raw)
		}
	}
}

func TestTrain_LengthMismatch(t *testing.T) {
	eng := New(0.5)
	err := eng.Train([]string{"a"}, []model.Format{model.FormatJSON, model.FormatXML})
	if err == nil {
		t.Fatal("expected error for mismatched texts and labels")
	}
}
