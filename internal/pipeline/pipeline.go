// Package pipeline runs the batch training flow: Load → Label → Train →
// Evaluate → Demonstrate. Stages are strictly sequential; a failure at any
// stage aborts the run and nothing upstream is replayed.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/crimson-sun/triage/internal/config"
	"github.com/crimson-sun/triage/internal/dataset"
	"github.com/crimson-sun/triage/internal/engine"
	"github.com/crimson-sun/triage/internal/engine/artifact"
	"github.com/crimson-sun/triage/internal/logging"
	"github.com/crimson-sun/triage/internal/model"
	"github.com/crimson-sun/triage/internal/output"
	"github.com/crimson-sun/triage/internal/report"
	"github.com/crimson-sun/triage/internal/source"
)

// defaultDemo is the blob run through the trained model when no demo file
// is configured.
const defaultDemo = `{"patient_id": "P145", "name": "Patient_56", "gender": "F", "timestamp": "2022-12-01T13:38:00Z", "birthdate": "1976-01-01"}`

// Pipeline connects a source, the training engine, and an output into the
// one-shot batch flow.
type Pipeline struct {
	cfg    config.Config
	src    source.Source
	out    output.Output
	report io.Writer // evaluation report destination; stderr by default
	runID  string
}

// New creates a Pipeline from the given components.
func New(cfg config.Config, src source.Source, out output.Output) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		src:    src,
		out:    out,
		report: os.Stderr,
		runID:  uuid.NewString(),
	}
}

// RunID returns the identifier stamped on this run's logs and artifact.
func (p *Pipeline) RunID() string {
	return p.runID
}

// Run executes all stages in order. Each stage's output feeds the next;
// there is no checkpointing or retry.
func (p *Pipeline) Run(ctx context.Context) error {
	log := logging.ForRun(p.runID)

	examples, err := p.loadAndLabel(ctx, log)
	if err != nil {
		return err
	}

	eng, seed, err := p.train(ctx, log, examples)
	if err != nil {
		return err
	}

	if err := p.evaluate(ctx, log, eng, examples, seed); err != nil {
		return err
	}

	return p.demonstrate(ctx, log, eng)
}

// loadAndLabel reads the training CSV and derives heuristic labels.
func (p *Pipeline) loadAndLabel(ctx context.Context, log *slog.Logger) ([]dataset.Example, error) {
	records, err := p.src.Load(ctx, source.Config{
		Provider: p.cfg.Data.Provider,
		Path:     p.cfg.Data.TrainPath,
		Column:   p.cfg.Data.Column,
	})
	if err != nil {
		return nil, fmt.Errorf("pipeline load: %w", err)
	}
	log.Info("loaded training data", "path", p.cfg.Data.TrainPath, "rows", len(records))

	examples := dataset.Label(records)
	if path := p.cfg.Data.LabeledPath; path != "" {
		if err := dataset.SaveLabeled(path, examples); err != nil {
			return nil, fmt.Errorf("pipeline label: %w", err)
		}
		log.Info("wrote labeled dataset", "path", path)
	}

	deduped := dataset.Dedup(examples)
	if dropped := len(examples) - len(deduped); dropped > 0 {
		log.Info("dropped duplicate rows", "count", dropped)
	}
	return deduped, nil
}

// train fits the model on the non-holdout rows, persists the artifact, and
// reloads it so evaluation and demonstration exercise the persisted form.
func (p *Pipeline) train(ctx context.Context, log *slog.Logger, examples []dataset.Example) (*engine.Engine, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	seed := p.cfg.Model.Seed
	train, _ := dataset.Split(examples, p.cfg.Model.Holdout, seed)
	if len(train) == 0 {
		return nil, 0, fmt.Errorf("pipeline train: no training rows after split")
	}

	eng := engine.New(p.cfg.Model.ConfidenceThreshold)
	texts, labels := dataset.TextsAndLabels(train)
	if err := eng.Train(texts, labels); err != nil {
		return nil, 0, fmt.Errorf("pipeline train: %w", err)
	}

	art, err := eng.ToArtifact(p.runID, seed)
	if err != nil {
		return nil, 0, fmt.Errorf("pipeline train: %w", err)
	}
	if err := artifact.Save(p.cfg.Model.ArtifactPath, art); err != nil {
		return nil, 0, fmt.Errorf("pipeline train: %w", err)
	}
	log.Info("model trained and saved", "path", p.cfg.Model.ArtifactPath, "train_rows", len(train))

	// Read the artifact back: everything downstream must run on the
	// persisted model, not the in-memory one, so a broken save surfaces
	// here and not at the next inference run.
	loaded, err := artifact.Load(p.cfg.Model.ArtifactPath)
	if err != nil {
		return nil, 0, fmt.Errorf("pipeline train: reload: %w", err)
	}
	return engine.FromArtifact(loaded), seed, nil
}

// evaluate scores the persisted model on the holdout rows and, when
// configured, on a separate evaluation CSV.
func (p *Pipeline) evaluate(ctx context.Context, log *slog.Logger, eng *engine.Engine, examples []dataset.Example, seed int64) error {
	_, holdout := dataset.Split(examples, p.cfg.Model.Holdout, seed)

	if path := p.cfg.Data.EvalPath; path != "" {
		records, err := p.src.Load(ctx, source.Config{
			Provider: p.cfg.Data.Provider,
			Path:     path,
			Column:   p.cfg.Data.Column,
		})
		if err != nil {
			return fmt.Errorf("pipeline evaluate: %w", err)
		}
		holdout = append(holdout, dataset.Label(records)...)
	}

	if len(holdout) == 0 {
		log.Warn("no evaluation rows; skipping evaluation")
		return nil
	}

	expected := make([]model.Format, len(holdout))
	predicted := make([]model.Format, len(holdout))
	for i, ex := range holdout {
		if err := ctx.Err(); err != nil {
			return err
		}
		expected[i] = ex.Label
		res, err := eng.Detect(ex.Text)
		if err != nil {
			return fmt.Errorf("pipeline evaluate: %w", err)
		}
		predicted[i] = res.Format
	}

	rep, err := report.Build(expected, predicted)
	if err != nil {
		return fmt.Errorf("pipeline evaluate: %w", err)
	}
	log.Info("evaluation complete", "rows", rep.Total, "accuracy", rep.Accuracy)
	fmt.Fprint(p.report, rep.String())
	return nil
}

// demonstrate runs one blob through the learned detect → extract path and
// writes the detection to the configured output.
func (p *Pipeline) demonstrate(ctx context.Context, log *slog.Logger, eng *engine.Engine) error {
	data := defaultDemo
	if path := p.cfg.Data.DemoPath; path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("pipeline demonstrate: %w", err)
		}
		data = string(b)
	}

	det, err := eng.Process(model.RawRecord{Data: data, Source: "demo", Line: 1})
	if err != nil {
		return fmt.Errorf("pipeline demonstrate: %w", err)
	}
	log.Info("demonstration", "format", det.Format, "confidence", det.Confidence)

	if err := p.out.Write(ctx, det); err != nil {
		return fmt.Errorf("pipeline output: %w", err)
	}
	return nil
}

// Close shuts down the output.
func (p *Pipeline) Close() error {
	return p.out.Close()
}
