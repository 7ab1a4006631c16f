// Package classify derives canonical definition names from absolute schema
// identifiers.
//
// Four identifier shapes are recognized, in priority order: the generic JSON
// Schema meta-schema authority, AsyncAPI spec definitions, AsyncAPI protocol
// bindings, and a fallback for anything else (including names that are
// already canonical). Authority and protocol tokens match case-insensitively
// because the source data mixes cases; captured groups keep their original
// casing.
package classify

import (
	"regexp"
	"strings"
)

// MetaSchemaName is the reserved canonical name for the generic JSON Schema
// meta-schema. Only one such schema is ever embedded in a bundle, so a single
// constant suffices.
const MetaSchemaName = "json-schema-draft-07-schema"

var (
	metaSchemaRe = regexp.MustCompile(`(?i)^https?://json-schema\.org`)
	definitionRe = regexp.MustCompile(`(?i)^https?://asyncapi\.com/definitions/[^/]+/(.+)\.json(#.*)?$`)
	bindingRe    = regexp.MustCompile(`(?i)^https?://asyncapi\.com/bindings/([^/]+)/([^/]+)/(.+)\.json(#.*)?$`)
)

// Name classifies an absolute schema identifier and derives its canonical
// definition name. The function is pure and total: the fallback rule always
// produces a name, so classification cannot fail. Passing an already
// canonical name through returns it unchanged.
//
// Parameters:
//
//	identifier string: An absolute schema identifier, optionally carrying a
//	fragment suffix, or a bare local name.
//
// Returns:
//
//	string: The canonical definition name. Any fragment suffix of the
//	identifier is preserved verbatim at the end of the name.
func Name(identifier string) string {
	if metaSchemaRe.MatchString(identifier) {
		return MetaSchemaName
	}
	if m := definitionRe.FindStringSubmatch(identifier); m != nil {
		// A nested definition keeps its path separator as a hyphen so
		// that e.g. "a/b" and "b" stay distinct names.
		return strings.ReplaceAll(m[1], "/", "-") + m[2]
	}
	if m := bindingRe.FindStringSubmatch(identifier); m != nil {
		return "bindings-" + m[1] + "-" + m[2] + "-" + m[3] + m[4]
	}
	base, fragment := identifier, ""
	if i := strings.Index(base, "#"); i >= 0 {
		base, fragment = base[:i], base[i:]
	}
	if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[i+1:]
	}
	return strings.TrimSuffix(base, ".json") + fragment
}
