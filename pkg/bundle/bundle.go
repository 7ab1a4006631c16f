// Package bundle drives the per-version bundling pipeline: load all
// definition and binding fragments, merge them into the identifier-preserving
// bundle, then derive the identifier-stripped bundle by renaming definitions,
// rewriting references and fixing up the embedded foreign schemas.
package bundle

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	berr "github.com/vhavlena/schemabundle/pkg/err"
	"github.com/vhavlena/schemabundle/pkg/loader"
	"github.com/vhavlena/schemabundle/pkg/merge"
	"github.com/vhavlena/schemabundle/pkg/rewrite"
	"github.com/vhavlena/schemabundle/pkg/schema"
)

// generatedMarker prefixes the description of every produced bundle so that
// generated files are never edited by hand.
const generatedMarker = "!!Auto generated!! \n Do not manually edit. "

// Config carries the directory layout and logging for one batch run. All
// directories are required; there is no package-level default.
type Config struct {
	// DefinitionsDir holds one subdirectory per spec version.
	DefinitionsDir string
	// BindingsDir holds protocol/version subdirectories of binding
	// fragments.
	BindingsDir string
	// ExamplesDir is the root that externally-referenced example files
	// resolve against.
	ExamplesDir string
	// OutputDir receives the two bundle files per version.
	OutputDir string
	// Logger defaults to slog.Default when nil.
	Logger *slog.Logger
}

// Bundler produces the two bundle variants for every schema version found
// under the configured definitions root.
type Bundler struct {
	cfg Config
	log *slog.Logger
}

// New validates the configuration and returns a ready Bundler.
//
// Parameters:
//
//	cfg Config: The directory layout for the run.
//
// Returns:
//
//	*Bundler: The configured bundler.
//	error: A validation error naming the missing directory field, or nil.
func New(cfg Config) (*Bundler, error) {
	required := []struct {
		name string
		dir  string
	}{
		{"definitions", cfg.DefinitionsDir},
		{"bindings", cfg.BindingsDir},
		{"examples", cfg.ExamplesDir},
		{"output", cfg.OutputDir},
	}
	for _, field := range required {
		if field.dir == "" {
			return nil, fmt.Errorf("bundle: %s directory is required", field.name)
		}
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Bundler{cfg: cfg, log: log}, nil
}

// Run processes every version sequentially: one version is fully loaded,
// merged, rewritten and written before the next starts. The first failure
// aborts the run with a wrapped error; already-written sibling outputs are
// left in place and nothing is retried.
func (b *Bundler) Run() error {
	versions, err := loader.Versions(b.cfg.DefinitionsDir)
	if err != nil {
		return err
	}
	for _, version := range versions {
		if err := b.ProcessVersion(version); err != nil {
			return berr.ErrProcessVersion(version, err)
		}
	}
	return nil
}

// ProcessVersion bundles a single schema version. It writes the
// identifier-preserving bundle to <version>.json and the identifier-stripped
// bundle to <version>-without-$id.json; on error the version produces both
// files or neither completed file.
//
// Parameters:
//
//	version string: The version subdirectory to bundle.
//
// Returns:
//
//	error: The first load, merge, rewrite, verification or write failure.
func (b *Bundler) ProcessVersion(version string) error {
	log := b.log.With("version", version)
	log.Info("bundling schema version")

	root, fragments, err := loader.Definitions(filepath.Join(b.cfg.DefinitionsDir, version), b.cfg.ExamplesDir)
	if err != nil {
		return err
	}
	bindings, err := loader.Bindings(b.cfg.BindingsDir)
	if err != nil {
		return err
	}
	log.Debug("loaded fragments", "definitions", len(fragments), "bindings", len(bindings))

	set := merge.NewSet()
	for _, fragment := range fragments {
		if err := set.Add(fragment); err != nil {
			return err
		}
	}
	for _, fragment := range bindings {
		if err := set.Add(fragment); err != nil {
			return err
		}
	}
	if err := set.Add(root); err != nil {
		return err
	}

	rootID, _ := root[schema.KeyID].(string)
	handle, ok := set.Fragment(rootID)
	if !ok {
		return berr.ErrMergeSchema(rootID, berr.ErrUnresolvedRef)
	}
	bundled, err := set.Bundle(handle)
	if err != nil {
		return err
	}
	annotateGenerated(bundled)

	if err := b.writeDocument(version+".json", bundled); err != nil {
		return err
	}

	stripped, _ := schema.DeepCopy(bundled).(map[string]any)
	if err := rewrite.RenameDefinitions(stripped); err != nil {
		return err
	}
	rewrite.StripRefs(stripped)
	defs := schema.Definitions(stripped)
	for _, target := range rewrite.ForeignSchemas {
		rewrite.FixupForeign(defs, target)
	}
	if err := verifyStripped(stripped); err != nil {
		return berr.ErrVerifyBundle(err)
	}

	return b.writeDocument(version+"-without-$id.json", stripped)
}

// annotateGenerated prefixes the bundle description with the generated-file
// marker, preserving any pre-existing description text.
func annotateGenerated(root map[string]any) {
	desc, _ := root["description"].(string)
	root["description"] = generatedMarker + desc
}

// writeDocument pretty-prints a bundle with 4-space indentation into the
// output directory.
func (b *Bundler) writeDocument(name string, doc map[string]any) error {
	if err := os.MkdirAll(b.cfg.OutputDir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(b.cfg.OutputDir, name)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	b.log.Debug("wrote bundle", "path", path)
	return nil
}
