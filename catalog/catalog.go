package catalog

import (
	"fmt"
	"iter"
	"strings"
)

// state tracks the catalog lifecycle.
type state int

const (
	stateLoading state = iota
	stateReady
)

// Catalog is the query facade over the entry store and relationship index.
// It has exactly two states: Loading, during which entries may be inserted
// and queries are refused, and Ready, entered once by a successful Finalize,
// after which the catalog is immutable and safe for concurrent readers.
type Catalog struct {
	store     *Store
	index     *Index
	validator *Validator
	report    *Report
	state     state
}

// New creates an empty catalog in the Loading state, validated with the
// default validator.
func New() *Catalog {
	return NewWithValidator(NewValidator())
}

// NewWithValidator creates an empty Loading catalog using the given
// validator at finalize time.
func NewWithValidator(v *Validator) *Catalog {
	if v == nil {
		v = NewValidator()
	}
	return &Catalog{
		store:     NewStore(),
		validator: v,
	}
}

// Put inserts an entry during the Loading phase. It fails with
// ErrCatalogReady once the catalog is finalized. Insertion failures are
// local: prior entries remain intact.
func (c *Catalog) Put(e *Entry) error {
	if c.state == stateReady {
		return ErrCatalogReady
	}
	return c.store.Put(e)
}

// Finalize runs validation and transitions Loading to Ready. When the
// report contains errors the transition is refused and the catalog stays
// in Loading; the returned report lists every problem found. A later
// Finalize may succeed once the problems are fixed. Finalizing a Ready
// catalog returns the existing report.
func (c *Catalog) Finalize() (*Report, error) {
	if c.state == stateReady {
		return c.report, nil
	}

	index := NewIndex(c.store)
	report := c.validator.Validate(c.store, index)
	if !report.OK() {
		return report, fmt.Errorf("finalize catalog: %d validation error(s)", len(report.Errors))
	}

	c.index = index
	c.report = report
	c.state = stateReady
	return report, nil
}

// Ready reports whether the catalog has been finalized.
func (c *Catalog) Ready() bool {
	return c.state == stateReady
}

// Report returns the validation report from the successful finalize, or
// nil while Loading.
func (c *Catalog) Report() *Report {
	return c.report
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return c.store.Len()
}

// FindByID returns the entry for id. It fails with ErrCatalogLoading
// before Finalize and ErrNotFound for unknown ids.
func (c *Catalog) FindByID(id string) (*Entry, error) {
	if c.state != stateReady {
		return nil, ErrCatalogLoading
	}
	return c.store.Get(id)
}

// Related returns the entries directly related to id, resolved through the
// store, sorted by id.
func (c *Catalog) Related(id string) ([]*Entry, error) {
	if c.state != stateReady {
		return nil, ErrCatalogLoading
	}

	ids, err := c.index.RelatedTo(id)
	if err != nil {
		return nil, err
	}

	entries := make([]*Entry, 0, len(ids))
	for _, r := range ids {
		e, err := c.store.Get(r)
		if err != nil {
			// Referential integrity held at finalize, so this cannot
			// happen on a Ready catalog.
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// All returns a lazy sequence over every entry in insertion order.
func (c *Catalog) All() (iter.Seq[*Entry], error) {
	if c.state != stateReady {
		return nil, ErrCatalogLoading
	}
	return c.store.All(), nil
}

// ByCategory returns a lazy sequence over entries of one category in
// insertion order.
func (c *Catalog) ByCategory(cat Category) (iter.Seq[*Entry], error) {
	if c.state != stateReady {
		return nil, ErrCatalogLoading
	}
	return c.store.ByCategory(cat), nil
}

// Search scans title and summary for a case-insensitive substring match.
// Exact title matches are yielded first, then the remaining hits in
// insertion order. The keyword is trimmed; an empty keyword matches
// nothing.
func (c *Catalog) Search(keyword string) (iter.Seq[*Entry], error) {
	if c.state != stateReady {
		return nil, ErrCatalogLoading
	}

	needle := strings.ToLower(strings.TrimSpace(keyword))
	return func(yield func(*Entry) bool) {
		if needle == "" {
			return
		}

		// Exact title matches first.
		for e := range c.store.All() {
			if strings.ToLower(e.Title) == needle {
				if !yield(e) {
					return
				}
			}
		}

		// Then substring hits in insertion order, skipping the exact
		// matches already yielded.
		for e := range c.store.All() {
			title := strings.ToLower(e.Title)
			if title == needle {
				continue
			}
			if strings.Contains(title, needle) || strings.Contains(strings.ToLower(e.Summary), needle) {
				if !yield(e) {
					return
				}
			}
		}
	}, nil
}
