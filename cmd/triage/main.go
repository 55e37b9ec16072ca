package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/crimson-sun/triage/internal/config"
	"github.com/crimson-sun/triage/internal/logging"
	"github.com/crimson-sun/triage/internal/output"
	fileout "github.com/crimson-sun/triage/internal/output/file"
	"github.com/crimson-sun/triage/internal/output/multi"
	"github.com/crimson-sun/triage/internal/output/stdout"
	"github.com/crimson-sun/triage/internal/pipeline"
	"github.com/crimson-sun/triage/internal/source"

	// Register source implementations.
	_ "github.com/crimson-sun/triage/internal/source/csvfile"
	_ "github.com/crimson-sun/triage/internal/source/stdin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	resultsOnStdout := cfg.Output.Format != "file"
	logging.Init(resultsOnStdout, logging.ParseLevel(cfg.Log.Level))

	// Resolve source.
	ctor, err := source.Get(cfg.Data.Provider)
	if err != nil {
		log.Fatalf("failed to get source: %v", err)
	}
	src := ctor()

	// Build output.
	out, err := buildOutput(cfg)
	if err != nil {
		log.Fatalf("failed to create output: %v", err)
	}

	// Build pipeline.
	p := pipeline.New(cfg, src, out)
	defer p.Close()

	// Set up graceful shutdown.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(os.Stderr, "\nreceived %v, shutting down...\n", sig)
		cancel()
	}()

	fmt.Fprintf(os.Stderr, "triage: starting run %s with source=%s\n", p.RunID(), cfg.Data.Provider)
	if err := p.Run(ctx); err != nil && err != context.Canceled {
		log.Fatalf("pipeline error: %v", err)
	}
}

// buildOutput assembles the detection result destination from config:
// stdout NDJSON, an NDJSON file, or a fan-out to both.
func buildOutput(cfg config.Config) (output.Output, error) {
	verbosity := output.ParseVerbosity(cfg.Output.Verbosity)

	var outs []output.Output
	if cfg.Output.Format == "stdout" || cfg.Output.Format == "both" {
		outs = append(outs, stdout.New(verbosity, cfg.Output.Pretty))
	}
	if cfg.Output.Format == "file" || cfg.Output.Format == "both" {
		f, err := fileout.New(cfg.Output.Path, verbosity)
		if err != nil {
			return nil, err
		}
		outs = append(outs, f)
	}
	if len(outs) == 1 {
		return outs[0], nil
	}
	return multi.New(outs...), nil
}
