// Command bundler consolidates the per-version schema definition files into
// two bundles per version: one preserving $id identifiers and one with
// identifiers stripped and all references rewritten to local pointers.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/vhavlena/schemabundle/pkg/bundle"
)

func main() {
	// Define command line flags
	definitionsDir := flag.String("definitions", "definitions", "Root directory of per-version schema definitions")
	bindingsDir := flag.String("bindings", "bindings", "Root directory of protocol binding definitions")
	examplesDir := flag.String("examples", "examples", "Directory external example references resolve against")
	outputDir := flag.String("output", "schemas", "Directory receiving the bundled schema files")
	verbose := flag.Bool("verbose", false, "Enable debug logging")

	// Parse flags
	flag.Parse()

	// Validate required arguments
	if *definitionsDir == "" || *bindingsDir == "" || *examplesDir == "" || *outputDir == "" {
		fmt.Println("Error: all directory flags must be non-empty")
		fmt.Println("Usage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	bundler, err := bundle.New(bundle.Config{
		DefinitionsDir: *definitionsDir,
		BindingsDir:    *bindingsDir,
		ExamplesDir:    *examplesDir,
		OutputDir:      *outputDir,
		Logger:         logger,
	})
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := bundler.Run(); err != nil {
		logger.Error("bundling failed", "error", err)
		os.Exit(1)
	}
}
