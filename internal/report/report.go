// Package report computes and renders classification quality metrics.
package report

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/crimson-sun/triage/internal/model"
)

// ClassMetrics holds per-label precision, recall, and F1.
type ClassMetrics struct {
	Label     model.Format
	Support   int // number of true instances of this label
	Precision float64
	Recall    float64
	F1        float64
}

// Report summarises predicted-vs-expected labels over an evaluation set.
type Report struct {
	Total    int
	Correct  int
	Accuracy float64
	Classes  []ClassMetrics
}

// Build computes the report from parallel expected/predicted slices.
func Build(expected, predicted []model.Format) (Report, error) {
	if len(expected) != len(predicted) {
		return Report{}, fmt.Errorf("report: %d expected labels but %d predictions", len(expected), len(predicted))
	}
	if len(expected) == 0 {
		return Report{}, fmt.Errorf("report: empty evaluation set")
	}

	truePos := make(map[model.Format]int)
	falsePos := make(map[model.Format]int)
	falseNeg := make(map[model.Format]int)
	labels := make(map[model.Format]struct{})
	correct := 0

	for i, exp := range expected {
		pred := predicted[i]
		labels[exp] = struct{}{}
		labels[pred] = struct{}{}
		if exp == pred {
			truePos[exp]++
			correct++
		} else {
			falseNeg[exp]++
			falsePos[pred]++
		}
	}

	ordered := make([]model.Format, 0, len(labels))
	for lbl := range labels {
		ordered = append(ordered, lbl)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	r := Report{
		Total:    len(expected),
		Correct:  correct,
		Accuracy: float64(correct) / float64(len(expected)),
	}
	for _, lbl := range ordered {
		tp := truePos[lbl]
		m := ClassMetrics{
			Label:     lbl,
			Support:   tp + falseNeg[lbl],
			Precision: ratio(tp, tp+falsePos[lbl]),
			Recall:    ratio(tp, tp+falseNeg[lbl]),
		}
		if m.Precision+m.Recall > 0 {
			m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
		}
		r.Classes = append(r.Classes, m)
	}
	return r, nil
}

// String renders the report as an aligned table.
func (r Report) String() string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "label\tprecision\trecall\tf1\tsupport")
	for _, c := range r.Classes {
		fmt.Fprintf(w, "%s\t%.3f\t%.3f\t%.3f\t%d\n", c.Label, c.Precision, c.Recall, c.F1, c.Support)
	}
	fmt.Fprintf(w, "\t\t\t\t\naccuracy\t%.3f\t(%d/%d)\t\t\n", r.Accuracy, r.Correct, r.Total)
	w.Flush()
	return b.String()
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
