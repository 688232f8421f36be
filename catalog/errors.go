package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Common catalog errors.
var (
	// ErrNotFound is returned when an entry lookup misses.
	ErrNotFound = errors.New("entry not found")

	// ErrCatalogLoading is returned when a query runs before Finalize.
	ErrCatalogLoading = errors.New("catalog is still loading")

	// ErrCatalogReady is returned when a mutation runs after Finalize.
	ErrCatalogReady = errors.New("catalog is finalized and read-only")
)

// DuplicateIDError reports an insertion with an id that is already present.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate entry id: %s", e.ID)
}

// SelfRelationError reports an entry that lists itself as related.
type SelfRelationError struct {
	ID string
}

func (e *SelfRelationError) Error() string {
	return fmt.Sprintf("entry %s relates to itself", e.ID)
}

// SchemaProblem describes one missing required field on one entry.
type SchemaProblem struct {
	ID    string
	Field string
}

func (p SchemaProblem) String() string {
	if p.ID == "" {
		return "entry with empty id"
	}
	return fmt.Sprintf("%s: missing %s", p.ID, p.Field)
}

// SchemaError aggregates every schema violation found in a validation pass,
// so all problems surface in one failed finalize instead of one at a time.
type SchemaError struct {
	Problems []SchemaProblem
}

func (e *SchemaError) Error() string {
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		parts = append(parts, p.String())
	}
	return fmt.Sprintf("schema violations: %s", strings.Join(parts, "; "))
}

// DanglingReferenceError reports a relation pointing at a non-existent entry.
type DanglingReferenceError struct {
	// Referrer is the id of the entry holding the bad relation.
	Referrer string

	// Missing is the id that failed to resolve.
	Missing string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("entry %s references unknown entry %s", e.Referrer, e.Missing)
}
