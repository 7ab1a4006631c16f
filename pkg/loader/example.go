package loader

import (
	"os"
	"path/filepath"
	"strings"

	"sigs.k8s.io/yaml"

	lerr "github.com/vhavlena/schemabundle/pkg/err"
	"github.com/vhavlena/schemabundle/pkg/schema"
)

// expandExample resolves a fragment's externally-referenced example. JSON
// Schema does not permit a singular "example" field to carry a referenced
// array, so a top-level example of the form {"$ref": "<file>"} is expanded at
// bundle time: the target file is read relative to the examples directory,
// parsed (JSON, or YAML for .yaml/.yml targets) and must hold an array, which
// replaces the field as "examples". Fragments without such an example field
// are left untouched.
func expandExample(doc map[string]any, examplesDir string) error {
	example, ok := doc["example"].(map[string]any)
	if !ok || len(example) != 1 {
		return nil
	}
	ref, ok := example[schema.KeyRef].(string)
	if !ok {
		return nil
	}

	path := filepath.Join(examplesDir, ref)
	data, err := os.ReadFile(path)
	if err != nil {
		return lerr.ErrLoadExample(path, err)
	}

	var examples []any
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		err = yaml.Unmarshal(data, &examples)
	} else {
		err = decodeJSON(data, &examples)
	}
	if err != nil {
		return lerr.ErrLoadExample(path, err)
	}
	if examples == nil {
		return lerr.ErrLoadExample(path, lerr.ErrExampleNotArray)
	}

	delete(doc, "example")
	doc["examples"] = examples
	return nil
}
