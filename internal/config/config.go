// Package config assembles runtime configuration from an optional YAML
// file layered under TRIAGE_* environment variables. Env vars win, so a
// checked-in config file can carry team defaults while a shell exports
// per-run overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all triage configuration.
type Config struct {
	Data   DataConfig   `yaml:"data"`
	Model  ModelConfig  `yaml:"model"`
	Output OutputConfig `yaml:"output"`
	Log    LogConfig    `yaml:"log"`
}

// DataConfig holds input dataset settings.
type DataConfig struct {
	Provider    string `yaml:"provider"`     // source provider ("csvfile", "stdin")
	TrainPath   string `yaml:"train_path"`   // primary labeled-training CSV
	EvalPath    string `yaml:"eval_path"`    // optional separate evaluation CSV
	Column      string `yaml:"column"`       // CSV column holding blob text
	LabeledPath string `yaml:"labeled_path"` // optional: write the labeled dataset here
	DemoPath    string `yaml:"demo_path"`    // optional: file with the demonstration blob
}

// ModelConfig holds training and artifact settings.
type ModelConfig struct {
	ArtifactPath        string  `yaml:"artifact_path"`
	Holdout             float64 `yaml:"holdout"` // evaluation fraction of the training set
	Seed                int64   `yaml:"seed"`
	ConfidenceThreshold float64 `yaml:"confidence_threshold"`
}

// OutputConfig holds result destination settings.
type OutputConfig struct {
	Format    string `yaml:"format"`    // "stdout", "file", or "both"
	Path      string `yaml:"path"`      // NDJSON results file (when format includes "file")
	Pretty    bool   `yaml:"pretty"`    // indent stdout JSON
	Verbosity string `yaml:"verbosity"` // "minimal", "standard", "full"
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load builds the configuration: defaults, then the YAML file named by
// TRIAGE_CONFIG (if any), then environment variables.
func Load() (Config, error) {
	cfg := defaults()

	if path := os.Getenv("TRIAGE_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func defaults() Config {
	return Config{
		Data: DataConfig{
			Provider: "csvfile",
			Column:   "Data",
		},
		Model: ModelConfig{
			ArtifactPath:        "triage_model.gob",
			Holdout:             0.2,
			Seed:                42,
			ConfidenceThreshold: 0.5,
		},
		Output: OutputConfig{
			Format:    "stdout",
			Verbosity: "standard",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func applyEnv(cfg *Config) {
	setString(&cfg.Data.Provider, "TRIAGE_SOURCE")
	setString(&cfg.Data.TrainPath, "TRIAGE_TRAIN_PATH")
	setString(&cfg.Data.EvalPath, "TRIAGE_EVAL_PATH")
	setString(&cfg.Data.Column, "TRIAGE_DATA_COLUMN")
	setString(&cfg.Data.LabeledPath, "TRIAGE_LABELED_PATH")
	setString(&cfg.Data.DemoPath, "TRIAGE_DEMO_PATH")

	setString(&cfg.Model.ArtifactPath, "TRIAGE_ARTIFACT_PATH")
	setFloat(&cfg.Model.Holdout, "TRIAGE_HOLDOUT")
	setInt64(&cfg.Model.Seed, "TRIAGE_SEED")
	setFloat(&cfg.Model.ConfidenceThreshold, "TRIAGE_CONFIDENCE_THRESHOLD")

	setString(&cfg.Output.Format, "TRIAGE_OUTPUT")
	setString(&cfg.Output.Path, "TRIAGE_OUTPUT_PATH")
	setBool(&cfg.Output.Pretty, "TRIAGE_OUTPUT_PRETTY")
	setString(&cfg.Output.Verbosity, "TRIAGE_VERBOSITY")

	setString(&cfg.Log.Level, "TRIAGE_LOG_LEVEL")
}

func (c Config) validate() error {
	if c.Data.TrainPath == "" {
		return fmt.Errorf("config: training dataset path is required (TRIAGE_TRAIN_PATH or data.train_path)")
	}
	if c.Model.Holdout < 0 || c.Model.Holdout >= 1 {
		return fmt.Errorf("config: holdout must be in [0, 1), got %v", c.Model.Holdout)
	}
	switch c.Output.Format {
	case "stdout", "file", "both":
	default:
		return fmt.Errorf("config: unknown output format %q", c.Output.Format)
	}
	if c.Output.Format != "stdout" && c.Output.Path == "" {
		return fmt.Errorf("config: output format %q requires an output path", c.Output.Format)
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setFloat(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
