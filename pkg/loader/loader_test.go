package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	lerr "github.com/vhavlena/schemabundle/pkg/err"
)

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestVersions(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "2.5.0"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "2.4.0"), 0o755))
	writeFile(t, filepath.Join(dir, "README.md"), "not a version")

	versions, err := Versions(dir)
	require.NoError(t, err)
	require.Equal(t, []string{"2.4.0", "2.5.0"}, versions)
}

func TestDefinitionsSplitsRootFromFragments(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "asyncapi.json"), `{"$id": "http://asyncapi.com/definitions/2.4.0/asyncapi.json"}`)
	writeFile(t, filepath.Join(dir, "info.json"), `{"$id": "http://asyncapi.com/definitions/2.4.0/info.json"}`)
	writeFile(t, filepath.Join(dir, "contact.json"), `{"$id": "http://asyncapi.com/definitions/2.4.0/contact.json"}`)
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	root, fragments, err := Definitions(dir, t.TempDir())
	require.NoError(t, err)
	require.Equal(t, "http://asyncapi.com/definitions/2.4.0/asyncapi.json", root["$id"])
	require.Len(t, fragments, 2)
}

func TestDefinitionsMissingRoot(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "info.json"), `{"$id": "http://asyncapi.com/definitions/2.4.0/info.json"}`)

	_, _, err := Definitions(dir, t.TempDir())
	require.ErrorIs(t, err, lerr.ErrMissingRoot)
}

func TestDefinitionsParseFailure(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "asyncapi.json"), `{"$id": "http://asyncapi.com/definitions/2.4.0/asyncapi.json"}`)
	writeFile(t, filepath.Join(dir, "broken.json"), `{"$id": `)

	_, _, err := Definitions(dir, t.TempDir())
	require.Error(t, err)
	require.ErrorContains(t, err, "broken.json")
}

func TestExampleExpansionJSON(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	examples := t.TempDir()
	writeFile(t, filepath.Join(dir, "asyncapi.json"), `{"$id": "http://asyncapi.com/definitions/2.4.0/asyncapi.json"}`)
	writeFile(t, filepath.Join(dir, "info.json"),
		`{"$id": "http://asyncapi.com/definitions/2.4.0/info.json", "example": {"$ref": "info.json"}}`)
	writeFile(t, filepath.Join(examples, "info.json"), `[{"title": "Sample"}]`)

	_, fragments, err := Definitions(dir, examples)
	require.NoError(t, err)
	require.Len(t, fragments, 1)

	doc := fragments[0]
	require.NotContains(t, doc, "example")
	require.Equal(t, []any{map[string]any{"title": "Sample"}}, doc["examples"])
}

func TestExampleExpansionYAML(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	examples := t.TempDir()
	writeFile(t, filepath.Join(dir, "asyncapi.json"), `{"$id": "http://asyncapi.com/definitions/2.4.0/asyncapi.json"}`)
	writeFile(t, filepath.Join(dir, "info.json"),
		`{"$id": "http://asyncapi.com/definitions/2.4.0/info.json", "example": {"$ref": "info.yaml"}}`)
	writeFile(t, filepath.Join(examples, "info.yaml"), "- title: Sample\n  version: \"1.0\"\n")

	_, fragments, err := Definitions(dir, examples)
	require.NoError(t, err)
	doc := fragments[0]
	require.Equal(t, []any{map[string]any{"title": "Sample", "version": "1.0"}}, doc["examples"])
}

func TestExampleExpansionMissingFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "asyncapi.json"), `{"$id": "http://asyncapi.com/definitions/2.4.0/asyncapi.json"}`)
	writeFile(t, filepath.Join(dir, "info.json"),
		`{"$id": "http://asyncapi.com/definitions/2.4.0/info.json", "example": {"$ref": "gone.json"}}`)

	_, _, err := Definitions(dir, t.TempDir())
	require.Error(t, err)
	require.ErrorContains(t, err, "gone.json")
}

func TestExampleExpansionRejectsNonArray(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	examples := t.TempDir()
	writeFile(t, filepath.Join(dir, "asyncapi.json"), `{"$id": "http://asyncapi.com/definitions/2.4.0/asyncapi.json"}`)
	writeFile(t, filepath.Join(dir, "info.json"),
		`{"$id": "http://asyncapi.com/definitions/2.4.0/info.json", "example": {"$ref": "obj.json"}}`)
	writeFile(t, filepath.Join(examples, "obj.json"), `{"title": "not an array"}`)

	_, _, err := Definitions(dir, examples)
	require.Error(t, err)
}

func TestExampleFieldWithoutReferenceIsKept(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "asyncapi.json"), `{"$id": "http://asyncapi.com/definitions/2.4.0/asyncapi.json"}`)
	writeFile(t, filepath.Join(dir, "info.json"),
		`{"$id": "http://asyncapi.com/definitions/2.4.0/info.json", "example": {"title": "inline"}}`)

	_, fragments, err := Definitions(dir, t.TempDir())
	require.NoError(t, err)
	require.Contains(t, fragments[0], "example")
}

func TestBindingsWalksProtocolVersionTree(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "kafka", "0.1.0", "channel.json"),
		`{"$id": "http://asyncapi.com/bindings/kafka/0.1.0/channel.json"}`)
	writeFile(t, filepath.Join(dir, "kafka", "0.1.0", "message.json"),
		`{"$id": "http://asyncapi.com/bindings/kafka/0.1.0/message.json"}`)
	writeFile(t, filepath.Join(dir, "websockets", "0.1.0", "channel.json"),
		`{"$id": "http://asyncapi.com/bindings/websockets/0.1.0/channel.json"}`)
	writeFile(t, filepath.Join(dir, "kafka", "0.1.0", "README.md"), "ignored")

	fragments, err := Bindings(dir)
	require.NoError(t, err)
	require.Len(t, fragments, 3)
}
