// Package loader reads schema fragments from the on-disk layout: one
// directory per spec version holding definition files plus a root schema, and
// a bindings tree of protocol/version subdirectories. Fragment files within
// one load are read concurrently; results are aggregated before the caller
// merges them.
package loader

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	lerr "github.com/vhavlena/schemabundle/pkg/err"
)

// rootNameFragment identifies the root/entry schema file of a version
// directory by its base name.
const rootNameFragment = "asyncapi"

// Versions lists the version subdirectories of a definitions root in sorted
// order.
//
// Parameters:
//
//	dir string: The definitions root directory.
//
// Returns:
//
//	[]string: The version directory names.
//	error: A filesystem error, or nil.
func Versions(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var versions []string
	for _, entry := range entries {
		if entry.IsDir() {
			versions = append(versions, entry.Name())
		}
	}
	sort.Strings(versions)
	return versions, nil
}

// Definitions loads every definition fragment of one version directory. The
// file whose base name contains the fixed root fragment is returned
// separately as the root schema; all other .json files are non-root
// fragments. Fragments carrying a single-reference example field get it
// expanded against the examples directory.
//
// Parameters:
//
//	dir string: The version directory to load.
//	examplesDir string: The directory external example references resolve
//	against.
//
// Returns:
//
//	map[string]any: The root schema document.
//	[]map[string]any: The non-root fragments.
//	error: A load error, or ErrMissingRoot when no file matches the root
//	name fragment.
func Definitions(dir string, examplesDir string) (map[string]any, []map[string]any, error) {
	paths, err := jsonFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	docs, err := readAll(paths)
	if err != nil {
		return nil, nil, err
	}

	var root map[string]any
	var fragments []map[string]any
	for i, doc := range docs {
		if err := expandExample(doc, examplesDir); err != nil {
			return nil, nil, lerr.ErrLoadFragment(paths[i], err)
		}
		base := strings.TrimSuffix(filepath.Base(paths[i]), ".json")
		if strings.Contains(base, rootNameFragment) {
			root = doc
			continue
		}
		fragments = append(fragments, doc)
	}
	if root == nil {
		return nil, nil, lerr.ErrMissingRoot
	}
	return root, fragments, nil
}

// Bindings loads every binding fragment under a bindings root laid out as
// <dir>/<protocol>/<version>/*.json. Non-JSON files are ignored.
func Bindings(dir string) ([]map[string]any, error) {
	protocols, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, protocol := range protocols {
		if !protocol.IsDir() {
			continue
		}
		versions, err := os.ReadDir(filepath.Join(dir, protocol.Name()))
		if err != nil {
			return nil, err
		}
		for _, version := range versions {
			if !version.IsDir() {
				continue
			}
			versionDir := filepath.Join(dir, protocol.Name(), version.Name())
			files, err := jsonFiles(versionDir)
			if err != nil {
				return nil, err
			}
			paths = append(paths, files...)
		}
	}
	return readAll(paths)
}

// jsonFiles lists the .json files directly inside a directory, sorted by
// name.
func jsonFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// readAll reads and parses all given files concurrently. The documents come
// back in path order; the synchronization barrier here is what lets callers
// treat the load phase as complete before merging.
func readAll(paths []string) ([]map[string]any, error) {
	docs := make([]map[string]any, len(paths))
	errs := make([]error, len(paths))

	var wg sync.WaitGroup
	for i, path := range paths {
		i, path := i, path
		wg.Add(1)
		go func() {
			defer wg.Done()
			docs[i], errs[i] = readDocument(path)
		}()
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, lerr.ErrLoadFragment(paths[i], err)
		}
	}
	return docs, nil
}

// readDocument parses one JSON schema document, preserving number precision.
func readDocument(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := decodeJSON(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// decodeJSON unmarshals with json.Number so numeric literals survive the
// bundle round-trip unchanged.
func decodeJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}
