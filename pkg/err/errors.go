// Package err defines common errors for the schemabundle project.
package err

import (
	"errors"
	"fmt"
)

var (
	ErrMissingID       = errors.New("fragment has no $id")
	ErrUnresolvedRef   = errors.New("unresolvable remote reference")
	ErrExampleNotArray = errors.New("referenced example is not an array")
	ErrMissingRoot     = errors.New("no root schema in version directory")
	ErrResidualID      = errors.New("stripped bundle retains a $id field")
)

// ErrDuplicateFragment returns an error for two fragments registered under
// the same locator.
//
// Parameters:
//
//	locator string: The conflicting locator.
//
// Returns:
//
//	error: The formatted error.
func ErrDuplicateFragment(locator string) error {
	return fmt.Errorf("duplicate fragment for %s", locator)
}

// ErrNameCollision returns an error for two distinct absolute identifiers
// classifying to the same canonical definition name.
//
// Parameters:
//
//	name string: The colliding canonical name.
//	first string: The identifier already holding the name.
//	second string: The identifier that collided with it.
//
// Returns:
//
//	error: The formatted error.
func ErrNameCollision(name, first, second string) error {
	return fmt.Errorf("canonical name %q collides: %s and %s", name, first, second)
}

// ErrLoadFragment returns an error for a schema fragment that could not be
// read or parsed.
//
// Parameters:
//
//	path string: The fragment file path.
//	cause error: The underlying error.
//
// Returns:
//
//	error: The formatted error.
func ErrLoadFragment(path string, cause error) error {
	return fmt.Errorf("failed to load fragment %s: %w", path, cause)
}

// ErrLoadExample returns an error for an externally-referenced example file
// that could not be resolved.
//
// Parameters:
//
//	path string: The example file path.
//	cause error: The underlying error.
//
// Returns:
//
//	error: The formatted error.
func ErrLoadExample(path string, cause error) error {
	return fmt.Errorf("failed to load example %s: %w", path, cause)
}

// ErrMergeSchema returns an error for a merge failure while bundling a
// version's fragments.
//
// Parameters:
//
//	locator string: The locator whose resolution failed.
//	cause error: The underlying error.
//
// Returns:
//
//	error: The formatted error.
func ErrMergeSchema(locator string, cause error) error {
	return fmt.Errorf("failed to merge %s: %w", locator, cause)
}

// ErrDanglingPointer reports a local reference in the stripped bundle that
// does not resolve to an existing definition.
func ErrDanglingPointer(ref string, cause error) error {
	return fmt.Errorf("dangling local pointer %q: %w", ref, cause)
}

// ErrVerifyBundle reports a stripped bundle failing its post-rewrite
// verification.
func ErrVerifyBundle(cause error) error {
	return fmt.Errorf("bundle verification failed: %w", cause)
}

// ErrProcessVersion returns the fatal error aborting one version's
// processing.
//
// Parameters:
//
//	version string: The schema version being processed.
//	cause error: The underlying error.
//
// Returns:
//
//	error: The formatted error.
func ErrProcessVersion(version string, cause error) error {
	return fmt.Errorf("failed to bundle version %s: %w", version, cause)
}
