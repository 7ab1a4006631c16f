package rewrite

import (
	"strings"

	"github.com/vhavlena/schemabundle/pkg/classify"
	"github.com/vhavlena/schemabundle/pkg/schema"
)

// ForeignSchemas lists the canonical names of the three embedded third-party
// schemas whose internal references need redirecting into their own nested
// definitions namespace: the Avro schema, the OpenAPI 3.0 schema-object
// schema, and the generic JSON Schema meta-schema.
var ForeignSchemas = []string{
	"avroSchema_v1",
	"openapiSchema_3_0",
	classify.MetaSchemaName,
}

// FixupForeign redirects an embedded foreign schema's internal references
// into its own nested definitions namespace. It must run strictly after
// StripRefs has completed on the whole tree (it depends on references already
// being in local-pointer form) and is scoped to the target's subtree only;
// running it over the whole bundle would rewrite unrelated local references.
//
// Within the subtree, a bare fragment sigil (the foreign schema's
// self-reference) becomes a pointer to the schema's own top-level entry, and
// a pointer into the top-level definitions map gets the nested namespace
// segment reinserted. The second rewrite triggers on any local definitions
// prefix, so applying the fixup twice prefixes again; the driver runs it
// exactly once per foreign schema.
//
// Parameters:
//
//	defs map[string]any: The bundle's renamed definitions map.
//	target string: The canonical name of the foreign schema entry. A
//	missing entry is a no-op.
func FixupForeign(defs map[string]any, target string) {
	subtree, ok := defs[target]
	if !ok {
		return
	}
	schema.Walk(subtree, func(node map[string]any) {
		ref, ok := node[schema.KeyRef].(string)
		if !ok {
			return
		}
		switch {
		case ref == schema.FragmentSigil:
			node[schema.KeyRef] = schema.LocalDefinitionsPrefix + target
		case strings.HasPrefix(ref, schema.LocalDefinitionsPrefix):
			name := strings.TrimPrefix(ref, schema.LocalDefinitionsPrefix)
			node[schema.KeyRef] = schema.LocalDefinitionsPrefix + target + "/" + schema.KeyDefinitions + "/" + name
		}
	})
}
