package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleTree() map[string]any {
	return map[string]any{
		"$id":         "http://asyncapi.com/definitions/2.4.0/schema.json",
		"title":       "sample",
		"definitions": map[string]any{"inner": map[string]any{"type": "string"}},
		"oneOf": []any{
			map[string]any{"$ref": "#/definitions/inner"},
			map[string]any{"items": map[string]any{"type": "number"}},
		},
	}
}

func TestDeepCopyIndependence(t *testing.T) {
	t.Parallel()
	original := sampleTree()
	copied, ok := DeepCopy(original).(map[string]any)
	if !ok {
		t.Fatalf("DeepCopy did not return an object")
	}
	if diff := cmp.Diff(original, copied); diff != "" {
		t.Fatalf("copy differs from original (-want +got):\n%s", diff)
	}

	copied["title"] = "changed"
	delete(copied["definitions"].(map[string]any), "inner")
	copied["oneOf"].([]any)[0].(map[string]any)["$ref"] = "#"

	want := sampleTree()
	if diff := cmp.Diff(want, original); diff != "" {
		t.Fatalf("mutating the copy changed the original (-want +got):\n%s", diff)
	}
}

func TestWalkVisitsEveryObjectOnce(t *testing.T) {
	t.Parallel()
	tree := sampleTree()
	count := 0
	Walk(tree, func(map[string]any) { count++ })
	// sampleTree holds 6 object nodes: root, the definitions container,
	// definitions.inner, both oneOf members and the items schema of the
	// second member.
	if count != 6 {
		t.Errorf("Expected 6 visits, got %d", count)
	}
}

func TestWalkSkipsScalars(t *testing.T) {
	t.Parallel()
	calls := 0
	Walk("just a string", func(map[string]any) { calls++ })
	Walk([]any{1.0, "two", true, nil}, func(map[string]any) { calls++ })
	if calls != 0 {
		t.Errorf("Expected no visits for scalar trees, got %d", calls)
	}
}
