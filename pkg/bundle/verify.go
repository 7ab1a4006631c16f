package bundle

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	jptr "github.com/qri-io/jsonpointer"
	qjsonschema "github.com/qri-io/jsonschema"

	berr "github.com/vhavlena/schemabundle/pkg/err"
	"github.com/vhavlena/schemabundle/pkg/schema"
)

var errNotLocal = errors.New("reference is not a local pointer")

// verifyStripped checks the identifier-stripped bundle before it is written:
// no node may retain a $id field, every reference must be a local pointer
// resolving to an existing location, and the document must still parse as a
// schema. Violations are fatal for the version being processed.
func verifyStripped(root map[string]any) error {
	var failure error
	schema.Walk(root, func(node map[string]any) {
		if failure != nil {
			return
		}
		if _, ok := node[schema.KeyID]; ok {
			failure = berr.ErrResidualID
			return
		}
		ref, ok := node[schema.KeyRef].(string)
		if !ok {
			return
		}
		if err := resolveLocal(root, ref); err != nil {
			failure = err
		}
	})
	if failure != nil {
		return failure
	}

	data, err := json.Marshal(root)
	if err != nil {
		return err
	}
	rs := &qjsonschema.Schema{}
	return json.Unmarshal(data, rs)
}

// resolveLocal evaluates a local pointer against the bundle. A rewritten
// reference may carry a second fragment when the original identifier pointed
// into a fragment's interior ("#/definitions/<name>#/<sub-path>"); each
// fragment segment is evaluated against the result of the previous one.
//
// Pointer tokens are parsed (and ~-escapes decoded) with qri-io/jsonpointer
// but evaluated token by token here: Pointer.Eval yields a nil result rather
// than an error for a missing map key, which would let dangling references
// slip through.
func resolveLocal(root map[string]any, ref string) error {
	if !strings.HasPrefix(ref, schema.FragmentSigil) {
		return berr.ErrDanglingPointer(ref, errNotLocal)
	}
	current := any(root)
	for _, segment := range strings.Split(ref, schema.FragmentSigil) {
		if segment == "" {
			continue
		}
		ptr, err := jptr.Parse(segment)
		if err != nil {
			return berr.ErrDanglingPointer(ref, err)
		}
		current, err = evalPointer(ptr, current)
		if err != nil {
			return berr.ErrDanglingPointer(ref, err)
		}
	}
	return nil
}

// evalPointer walks parsed pointer tokens through objects and arrays,
// erroring on an absent key, a bad index or a scalar in the path.
func evalPointer(ptr jptr.Pointer, data any) (any, error) {
	current := data
	for _, token := range ptr {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[token]
			if !ok {
				return nil, fmt.Errorf("no key %q", token)
			}
			current = next
		case []any:
			index, err := strconv.Atoi(token)
			if err != nil || index < 0 || index >= len(node) {
				return nil, fmt.Errorf("no index %q", token)
			}
			current = node[index]
		default:
			return nil, fmt.Errorf("cannot descend into %T at %q", current, token)
		}
	}
	return current, nil
}
