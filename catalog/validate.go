package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Warning is a non-fatal validation finding. Warnings never block the
// Loading to Ready transition.
type Warning interface {
	Warning() string
}

// AsymmetricRelationWarning reports a one-directional relation: From lists
// To as related but To does not list From back.
type AsymmetricRelationWarning struct {
	From string
	To   string
}

func (w AsymmetricRelationWarning) Warning() string {
	return fmt.Sprintf("asymmetric relation: %s relates to %s but not back", w.From, w.To)
}

// DuplicateContentWarning reports two entries with identical source content.
// The catalog content has historically carried near-duplicate documents;
// whether a duplicate is intentional is an editorial call, so this is
// informational only.
type DuplicateContentWarning struct {
	First  string
	Second string
}

func (w DuplicateContentWarning) Warning() string {
	return fmt.Sprintf("entries %s and %s have identical content", w.First, w.Second)
}

// SnippetSyntaxWarning reports an example snippet that failed a syntax scan.
type SnippetSyntaxWarning struct {
	ID     string
	Part   string // "before" or "after"
	Detail string
}

func (w SnippetSyntaxWarning) Warning() string {
	return fmt.Sprintf("entry %s: %s snippet has syntax errors: %s", w.ID, w.Part, w.Detail)
}

// Report is the combined validator output. The catalog is usable when
// Errors is empty; Warnings are informational.
type Report struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`
	Errors      []error   `json:"-"`
	Warnings    []Warning `json:"-"`
}

// OK reports whether validation found no fatal errors.
func (r *Report) OK() bool {
	return len(r.Errors) == 0
}

// Format renders the report as human-readable feedback listing every
// problem found, so all issues can be fixed in one pass.
func (r *Report) Format() string {
	var sb strings.Builder

	if r.OK() {
		sb.WriteString("Catalog valid")
		if len(r.Warnings) > 0 {
			fmt.Fprintf(&sb, " with %d warning(s)", len(r.Warnings))
		}
		sb.WriteString(".\n")
	} else {
		fmt.Fprintf(&sb, "Catalog validation failed with %d error(s).\n", len(r.Errors))
	}

	if len(r.Errors) > 0 {
		sb.WriteString("\nErrors:\n")
		for _, err := range r.Errors {
			fmt.Fprintf(&sb, "  - %s\n", err.Error())
		}
	}

	if len(r.Warnings) > 0 {
		sb.WriteString("\nWarnings:\n")
		for _, w := range r.Warnings {
			fmt.Fprintf(&sb, "  - %s\n", w.Warning())
		}
	}

	return sb.String()
}

// SnippetChecker syntax-scans an example snippet. Implementations report
// nil for well-formed source; any error becomes a SnippetSyntaxWarning.
type SnippetChecker interface {
	Check(language, src string) error
}

// Validator enforces catalog-wide consistency before the catalog is
// considered ready for queries.
type Validator struct {
	// Snippets optionally syntax-checks example code. Nil disables the
	// snippet pass.
	Snippets SnippetChecker
}

// NewValidator creates a validator without snippet checking.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate runs the validation passes over the store and index and returns
// the combined report. Passes run in order: schema, referential integrity,
// relation symmetry, then the informational content passes.
func (v *Validator) Validate(store *Store, index *Index) *Report {
	report := &Report{
		ID:          uuid.New().String(),
		GeneratedAt: time.Now(),
	}

	v.schemaPass(store, report)
	v.referentialPass(store, report)
	v.symmetryPass(index, report)
	v.duplicateContentPass(store, report)
	v.snippetPass(store, report)

	return report
}

// schemaPass checks that every entry carries the required fields. All
// violations are aggregated into a single SchemaError.
func (v *Validator) schemaPass(store *Store, report *Report) {
	var problems []SchemaProblem
	for e := range store.All() {
		if e.ID == "" {
			problems = append(problems, SchemaProblem{Field: "id"})
		}
		if !e.Category.Valid() {
			problems = append(problems, SchemaProblem{ID: e.ID, Field: "category"})
		}
		if e.Title == "" {
			problems = append(problems, SchemaProblem{ID: e.ID, Field: "title"})
		}
		if e.Summary == "" {
			problems = append(problems, SchemaProblem{ID: e.ID, Field: "summary"})
		}
	}
	if len(problems) > 0 {
		report.Errors = append(report.Errors, &SchemaError{Problems: problems})
	}
}

// referentialPass checks that every related id resolves to a stored entry.
func (v *Validator) referentialPass(store *Store, report *Report) {
	for e := range store.All() {
		for _, r := range e.Related {
			if !store.Has(r) {
				report.Errors = append(report.Errors, &DanglingReferenceError{
					Referrer: e.ID,
					Missing:  r,
				})
			}
		}
	}
}

// symmetryPass collects a warning for every one-directional relation.
func (v *Validator) symmetryPass(index *Index, report *Report) {
	for _, pair := range index.AsymmetricPairs() {
		report.Warnings = append(report.Warnings, AsymmetricRelationWarning{
			From: pair.From,
			To:   pair.To,
		})
	}
}

// duplicateContentPass warns when two entries share a content hash.
func (v *Validator) duplicateContentPass(store *Store, report *Report) {
	seen := make(map[string]string)
	for e := range store.All() {
		if e.ContentHash == "" {
			continue
		}
		if first, ok := seen[e.ContentHash]; ok {
			report.Warnings = append(report.Warnings, DuplicateContentWarning{
				First:  first,
				Second: e.ID,
			})
			continue
		}
		seen[e.ContentHash] = e.ID
	}
}

// snippetPass syntax-scans example snippets when a checker is configured.
func (v *Validator) snippetPass(store *Store, report *Report) {
	if v.Snippets == nil {
		return
	}
	for e := range store.All() {
		if e.Example.Empty() {
			continue
		}
		lang := e.Example.Language
		if lang == "" {
			lang = "php"
		}
		if e.Example.Before != "" {
			if err := v.Snippets.Check(lang, e.Example.Before); err != nil {
				report.Warnings = append(report.Warnings, SnippetSyntaxWarning{
					ID: e.ID, Part: "before", Detail: err.Error(),
				})
			}
		}
		if e.Example.After != "" {
			if err := v.Snippets.Check(lang, e.Example.After); err != nil {
				report.Warnings = append(report.Warnings, SnippetSyntaxWarning{
					ID: e.ID, Part: "after", Detail: err.Error(),
				})
			}
		}
	}
}
