package schema

// Visitor is called once for every object node encountered during a walk.
// The callback may mutate or delete fields of the node it receives, but must
// not restructure the tree (add or remove child objects) while the walk is in
// progress; sibling visit order is unspecified and visits must stay
// independent of each other.
type Visitor func(node map[string]any)

// Walk traverses a JSON tree depth-first, invoking the visitor exactly once
// for every object node reachable from the root. Arrays are descended,
// scalars are skipped. The visitor sees a parent before any of its children.
//
// Parameters:
//
//	v any: The tree to traverse. Non-container values are ignored.
//	visit Visitor: The callback invoked per object node.
func Walk(v any, visit Visitor) {
	switch n := v.(type) {
	case map[string]any:
		visit(n)
		for _, child := range n {
			Walk(child, visit)
		}
	case []any:
		for _, child := range n {
			Walk(child, visit)
		}
	}
}
