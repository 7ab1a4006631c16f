// Package rewrite turns an identifier-preserving bundle into an
// identifier-stripped one: definitions are renamed to canonical short names,
// every $id is removed, and every remote reference is rewritten to a local
// pointer.
package rewrite

import (
	"sort"
	"strings"

	"github.com/vhavlena/schemabundle/pkg/classify"
	rerr "github.com/vhavlena/schemabundle/pkg/err"
	"github.com/vhavlena/schemabundle/pkg/schema"
)

// RenameDefinitions renames every key of the root definitions map from
// absolute identifier to canonical name. It must fully complete before
// StripRefs runs: StripRefs rewrites reference fields only and assumes the
// canonical names are already the effective definition keys.
//
// A canonical-name collision between two distinct identifiers is a
// silent-corruption risk (the later definition would overwrite the earlier
// one), so it fails fast instead. Keys are processed in sorted order to keep
// the reported collision deterministic.
//
// Parameters:
//
//	root map[string]any: The bundle root. A missing or non-object
//	definitions field is left untouched.
//
// Returns:
//
//	error: A collision error naming both identifiers, or nil.
func RenameDefinitions(root map[string]any) error {
	defs := schema.Definitions(root)
	if defs == nil {
		return nil
	}

	ids := make([]string, 0, len(defs))
	for id := range defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	origin := make(map[string]string, len(ids))
	renamed := make(map[string]any, len(ids))
	for _, id := range ids {
		name := classify.Name(id)
		if prev, clash := origin[name]; clash {
			return rerr.ErrNameCollision(name, prev, id)
		}
		origin[name] = id
		renamed[name] = defs[id]
	}
	root[schema.KeyDefinitions] = renamed
	return nil
}

// StripRefs visits every node reachable from the root exactly once and, per
// node, removes the $id field unconditionally and rewrites any remote
// reference to a local pointer into the top-level definitions map. References
// that already start with the fragment sigil resolve within the bundle and
// are left unchanged. The classifier preserves an identifier's own fragment
// suffix, so a remote reference into a fragment's interior keeps its trailing
// sub-path.
//
// The pass mutates the tree in place; node visits are independent of each
// other and of sibling order.
func StripRefs(v any) {
	schema.Walk(v, func(node map[string]any) {
		delete(node, schema.KeyID)
		ref, ok := node[schema.KeyRef].(string)
		if !ok {
			return
		}
		if strings.HasPrefix(ref, schema.FragmentSigil) {
			return
		}
		node[schema.KeyRef] = schema.LocalDefinitionsPrefix + classify.Name(ref)
	})
}
