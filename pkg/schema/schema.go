// Package schema provides the untyped JSON tree model shared by the bundler's
// transformation passes, together with the traversal and copy primitives they
// rely on.
package schema

// Well-known JSON Schema keywords handled by the bundler. Everything else is
// opaque payload carried through the passes untouched.
const (
	// KeyID is the identifier-assignment field asserting a global
	// identifier for a node.
	KeyID = "$id"
	// KeyRef is the reference field pointing at another schema location.
	KeyRef = "$ref"
	// KeyDefinitions is the definitions map keyword.
	KeyDefinitions = "definitions"

	// FragmentSigil marks a fragment-only (document-local) reference.
	FragmentSigil = "#"
	// LocalDefinitionsPrefix is the local-pointer prefix into the bundle's
	// top-level definitions map.
	LocalDefinitionsPrefix = "#/definitions/"
)

// DeepCopy returns a structural copy of a JSON tree decoded into interface
// values. Objects and arrays are copied recursively; scalars (strings,
// numbers, booleans, null) are immutable and returned as-is.
//
// Parameters:
//
//	v any: The tree to copy. May be nil.
//
// Returns:
//
//	any: A copy sharing no mutable structure with the input.
func DeepCopy(v any) any {
	switch n := v.(type) {
	case map[string]any:
		cp := make(map[string]any, len(n))
		for k, child := range n {
			cp[k] = DeepCopy(child)
		}
		return cp
	case []any:
		cp := make([]any, len(n))
		for i, child := range n {
			cp[i] = DeepCopy(child)
		}
		return cp
	default:
		return n
	}
}

// Definitions returns the definitions map of a schema object, or nil when the
// node carries no object-valued definitions field.
func Definitions(node map[string]any) map[string]any {
	defs, _ := node[KeyDefinitions].(map[string]any)
	return defs
}
