// Package merge implements the bundling primitive: a set of schema fragments
// registered by identifier, merged into a single tree by transitively
// inlining every remotely-referenced fragment under the root's definitions
// map.
//
// Merging preserves identifiers. Reference fields are left textually
// untouched and every inlined fragment keeps its $id, so the merged tree is
// the identifier-preserving bundle variant; stripping is a separate pass.
package merge

import (
	"sort"
	"strings"

	merr "github.com/vhavlena/schemabundle/pkg/err"
	"github.com/vhavlena/schemabundle/pkg/schema"
)

// Set collects schema fragments keyed by locator until they are bundled.
type Set struct {
	fragments map[string]map[string]any
}

// NewSet returns an empty fragment set.
func NewSet() *Set {
	return &Set{fragments: make(map[string]map[string]any)}
}

// Locator reduces an identifier or reference to the locator of the document
// it points into: the fragment suffix, including a bare trailing sigil, is
// cut off.
//
// Parameters:
//
//	identifier string: An absolute identifier or reference value.
//
// Returns:
//
//	string: The identifier's authority+path portion.
func Locator(identifier string) string {
	if i := strings.Index(identifier, schema.FragmentSigil); i >= 0 {
		return identifier[:i]
	}
	return identifier
}

// Add registers a fragment under the locator of its $id.
//
// Parameters:
//
//	fragment map[string]any: A parsed schema document carrying a string $id.
//
// Returns:
//
//	error: ErrMissingID when the $id is absent or not a string, a duplicate
//	error when the locator is already taken, nil otherwise.
func (s *Set) Add(fragment map[string]any) error {
	id, ok := fragment[schema.KeyID].(string)
	if !ok || id == "" {
		return merr.ErrMissingID
	}
	loc := Locator(id)
	if _, dup := s.fragments[loc]; dup {
		return merr.ErrDuplicateFragment(loc)
	}
	s.fragments[loc] = fragment
	return nil
}

// Fragment fetches a registered fragment by locator. Any fragment suffix on
// the locator is ignored.
func (s *Set) Fragment(locator string) (map[string]any, bool) {
	fragment, ok := s.fragments[Locator(locator)]
	return fragment, ok
}

// Bundle merges the set into a single tree rooted at the given fragment. The
// root is deep-copied, then every remote reference reachable from it is
// resolved transitively: the referenced fragment is copied into the root's
// definitions map keyed by its absolute locator, and its own remote
// references are resolved in turn. A remote reference to an unregistered
// locator is fatal.
//
// Parameters:
//
//	root map[string]any: The fragment to bundle, typically obtained via
//	Fragment. It is not mutated.
//
// Returns:
//
//	map[string]any: The merged tree.
//	error: A merge error naming the unresolvable locator, or nil.
func (s *Set) Bundle(root map[string]any) (map[string]any, error) {
	rootLoc := ""
	if id, ok := root[schema.KeyID].(string); ok {
		rootLoc = Locator(id)
	}

	bundled, ok := schema.DeepCopy(root).(map[string]any)
	if !ok {
		bundled = map[string]any{}
	}

	pending := []any{bundled}
	for len(pending) > 0 {
		tree := pending[0]
		pending = pending[1:]

		locators, err := s.remoteLocators(tree, rootLoc)
		if err != nil {
			return nil, err
		}
		for _, loc := range locators {
			defs := schema.Definitions(bundled)
			if defs == nil {
				defs = make(map[string]any)
				bundled[schema.KeyDefinitions] = defs
			}
			if _, done := defs[loc]; done {
				continue
			}
			inlined := schema.DeepCopy(s.fragments[loc])
			defs[loc] = inlined
			pending = append(pending, inlined)
		}
	}
	return bundled, nil
}

// remoteLocators collects the locators of all remote references in one tree,
// sorted for deterministic merge order, and fails on the first reference the
// set cannot serve.
func (s *Set) remoteLocators(tree any, rootLoc string) ([]string, error) {
	seen := make(map[string]bool)
	var unresolved error
	schema.Walk(tree, func(node map[string]any) {
		ref, ok := node[schema.KeyRef].(string)
		if !ok || strings.HasPrefix(ref, schema.FragmentSigil) {
			return
		}
		loc := Locator(ref)
		if loc == rootLoc || seen[loc] {
			return
		}
		seen[loc] = true
		if _, ok := s.fragments[loc]; !ok && unresolved == nil {
			unresolved = merr.ErrMergeSchema(loc, merr.ErrUnresolvedRef)
		}
	})
	if unresolved != nil {
		return nil, unresolved
	}
	locators := make([]string, 0, len(seen))
	for loc := range seen {
		locators = append(locators, loc)
	}
	sort.Strings(locators)
	return locators, nil
}
