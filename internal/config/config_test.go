package config

import (
	"os"
	"path/filepath"
	"testing"
)

var triageEnvVars = []string{
	"TRIAGE_CONFIG", "TRIAGE_SOURCE", "TRIAGE_TRAIN_PATH", "TRIAGE_EVAL_PATH",
	"TRIAGE_DATA_COLUMN", "TRIAGE_LABELED_PATH", "TRIAGE_DEMO_PATH",
	"TRIAGE_ARTIFACT_PATH", "TRIAGE_HOLDOUT", "TRIAGE_SEED",
	"TRIAGE_CONFIDENCE_THRESHOLD", "TRIAGE_OUTPUT", "TRIAGE_OUTPUT_PATH",
	"TRIAGE_OUTPUT_PRETTY", "TRIAGE_VERBOSITY", "TRIAGE_LOG_LEVEL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range triageEnvVars {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRIAGE_TRAIN_PATH", "train.csv")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Data.Provider != "csvfile" {
		t.Fatalf("expected default provider 'csvfile', got %q", cfg.Data.Provider)
	}
	if cfg.Data.Column != "Data" {
		t.Fatalf("expected default column 'Data', got %q", cfg.Data.Column)
	}
	if cfg.Model.Holdout != 0.2 {
		t.Fatalf("expected default holdout 0.2, got %v", cfg.Model.Holdout)
	}
	if cfg.Model.Seed != 42 {
		t.Fatalf("expected default seed 42, got %v", cfg.Model.Seed)
	}
	if cfg.Model.ConfidenceThreshold != 0.5 {
		t.Fatalf("expected default threshold 0.5, got %v", cfg.Model.ConfidenceThreshold)
	}
	if cfg.Output.Format != "stdout" || cfg.Output.Pretty {
		t.Fatalf("unexpected output defaults: %+v", cfg.Output)
	}
}

func TestLoad_RequiresTrainPath(t *testing.T) {
	clearEnv(t)
	if _, err := Load(); err == nil {
		t.Fatal("expected error without a training dataset path")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRIAGE_TRAIN_PATH", "train.csv")
	t.Setenv("TRIAGE_SEED", "7")
	t.Setenv("TRIAGE_HOLDOUT", "0.3")
	t.Setenv("TRIAGE_OUTPUT_PRETTY", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Model.Seed != 7 {
		t.Fatalf("expected seed 7, got %v", cfg.Model.Seed)
	}
	if cfg.Model.Holdout != 0.3 {
		t.Fatalf("expected holdout 0.3, got %v", cfg.Model.Holdout)
	}
	if !cfg.Output.Pretty {
		t.Fatal("expected pretty output")
	}
}

func TestLoad_YAMLFileLayeredUnderEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "triage.yaml")
	yaml := `
data:
  train_path: from-yaml.csv
model:
  seed: 99
  holdout: 0.1
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	t.Setenv("TRIAGE_CONFIG", path)
	t.Setenv("TRIAGE_SEED", "7") // env wins over file

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Data.TrainPath != "from-yaml.csv" {
		t.Fatalf("expected train path from yaml, got %q", cfg.Data.TrainPath)
	}
	if cfg.Model.Holdout != 0.1 {
		t.Fatalf("expected holdout from yaml, got %v", cfg.Model.Holdout)
	}
	if cfg.Model.Seed != 7 {
		t.Fatalf("expected env seed 7 to win, got %v", cfg.Model.Seed)
	}
}

func TestLoad_ValidatesHoldout(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRIAGE_TRAIN_PATH", "train.csv")
	t.Setenv("TRIAGE_HOLDOUT", "1.5")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for holdout outside [0, 1)")
	}
}

func TestLoad_ValidatesOutputFormat(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRIAGE_TRAIN_PATH", "train.csv")
	t.Setenv("TRIAGE_OUTPUT", "carrier-pigeon")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown output format")
	}
}

func TestLoad_FileOutputRequiresPath(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRIAGE_TRAIN_PATH", "train.csv")
	t.Setenv("TRIAGE_OUTPUT", "file")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for file output without a path")
	}
}
