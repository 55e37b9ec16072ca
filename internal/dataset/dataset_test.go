package dataset

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/crimson-sun/triage/internal/model"
)

func TestLabel(t *testing.T) {
	records := []model.RawRecord{
		{Data: `{"patient_id": "P1"}`},
		{Data: `<patient><name>X</name></patient>`},
		{Data: "PID|||P2||A^B||19700101|M"},
		{Data: "free text"},
	}
	examples := Label(records)

	want := []model.Format{model.FormatJSON, model.FormatXML, model.FormatHL7, model.FormatUnknown}
	for i, ex := range examples {
		if ex.Label != want[i] {
			t.Fatalf("row %d labeled %v, want %v", i, ex.Label, want[i])
		}
		if ex.Text != records[i].Data {
			t.Fatalf("row %d text changed during labeling", i)
		}
	}
}

func TestDedup(t *testing.T) {
	examples := []Example{
		{Text: "a", Label: model.FormatUnknown},
		{Text: "b", Label: model.FormatUnknown},
		{Text: "a", Label: model.FormatUnknown},
		{Text: "c", Label: model.FormatUnknown},
		{Text: "b", Label: model.FormatUnknown},
	}
	got := Dedup(examples)

	if len(got) != 3 {
		t.Fatalf("expected 3 unique rows, got %d", len(got))
	}
	for i, text := range []string{"a", "b", "c"} {
		if got[i].Text != text {
			t.Fatalf("expected first-occurrence order, got %v", got)
		}
	}
}

func TestDedup_Empty(t *testing.T) {
	if got := Dedup(nil); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
}

func TestSplit_Deterministic(t *testing.T) {
	examples := make([]Example, 10)
	for i := range examples {
		examples[i] = Example{Text: string(rune('a' + i)), Label: model.FormatUnknown}
	}

	train1, eval1 := Split(examples, 0.3, 42)
	train2, eval2 := Split(examples, 0.3, 42)

	if !reflect.DeepEqual(train1, train2) || !reflect.DeepEqual(eval1, eval2) {
		t.Fatal("same seed produced different splits")
	}
	if len(train1) != 7 || len(eval1) != 3 {
		t.Fatalf("expected 7/3 split, got %d/%d", len(train1), len(eval1))
	}
}

func TestSplit_SeedChangesShuffle(t *testing.T) {
	examples := make([]Example, 20)
	for i := range examples {
		examples[i] = Example{Text: string(rune('a' + i)), Label: model.FormatUnknown}
	}

	train1, _ := Split(examples, 0.2, 1)
	train2, _ := Split(examples, 0.2, 2)
	if reflect.DeepEqual(train1, train2) {
		t.Fatal("different seeds produced identical shuffles")
	}
}

func TestSplit_NoHoldout(t *testing.T) {
	examples := []Example{{Text: "a"}, {Text: "b"}}
	train, eval := Split(examples, 0, 42)
	if len(train) != 2 || len(eval) != 0 {
		t.Fatalf("expected everything in train, got %d/%d", len(train), len(eval))
	}
}

func TestSplit_DoesNotMutateInput(t *testing.T) {
	examples := []Example{{Text: "a"}, {Text: "b"}, {Text: "c"}, {Text: "d"}}
	snapshot := make([]Example, len(examples))
	copy(snapshot, examples)

	Split(examples, 0.5, 99)
	if !reflect.DeepEqual(examples, snapshot) {
		t.Fatal("Split mutated its input")
	}
}

func TestSaveLabeled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labeled.csv")
	examples := []Example{
		{Text: "PID|||P1||A^B||19700101|M", Label: model.FormatHL7},
		{Text: "row with \"quotes\" and\nnewline", Label: model.FormatUnknown},
	}
	if err := SaveLabeled(path, examples); err != nil {
		t.Fatalf("save: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if !reflect.DeepEqual(rows[0], []string{"Data", "Label"}) {
		t.Fatalf("unexpected header %v", rows[0])
	}
	if rows[1][1] != "HL7" {
		t.Fatalf("expected HL7 label, got %q", rows[1][1])
	}
	if rows[2][0] != examples[1].Text {
		t.Fatalf("CSV quoting mangled the text: %q", rows[2][0])
	}
}

func TestTextsAndLabels(t *testing.T) {
	examples := []Example{
		{Text: "a", Label: model.FormatJSON},
		{Text: "b", Label: model.FormatHL7},
	}
	texts, labels := TextsAndLabels(examples)
	if texts[0] != "a" || texts[1] != "b" || labels[0] != model.FormatJSON || labels[1] != model.FormatHL7 {
		t.Fatalf("unexpected slices: %v %v", texts, labels)
	}
}
