// Package catalog provides the pattern/smell catalog engine: an entry
// store, a relationship index, a validator, and a read-only query facade
// over a finalized catalog.
package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
)

// Category classifies a catalog entry.
type Category string

const (
	// CategoryPattern identifies a design pattern entry.
	CategoryPattern Category = "pattern"

	// CategorySmell identifies a code smell entry.
	CategorySmell Category = "smell"
)

// Valid reports whether the category is a known value.
func (c Category) Valid() bool {
	switch c {
	case CategoryPattern, CategorySmell:
		return true
	}
	return false
}

// Example holds the illustrative before/after snippets for an entry.
type Example struct {
	// Language is the snippet language tag (default "php").
	Language string `json:"language,omitempty" yaml:"language,omitempty"`

	// Before shows the code prior to applying the pattern or fixing the smell.
	Before string `json:"before" yaml:"before"`

	// After shows the improved code.
	After string `json:"after" yaml:"after"`
}

// Empty reports whether the example carries no snippet text.
func (e *Example) Empty() bool {
	return e == nil || (e.Before == "" && e.After == "")
}

// Entry is a single catalog record describing one design pattern or one
// code smell. Entries are immutable once the catalog is finalized.
type Entry struct {
	// ID is the stable slug identifying this entry (e.g. "feature-envy").
	ID string `json:"id" yaml:"id"`

	// Category discriminates patterns from smells.
	Category Category `json:"category" yaml:"category"`

	// Title is the display name.
	Title string `json:"title" yaml:"title"`

	// Summary is a short description of the entry.
	Summary string `json:"summary" yaml:"summary"`

	// Related lists the ids of related entries. The relation is intended
	// to be symmetric; one-way links are reported as warnings.
	Related []string `json:"related,omitempty" yaml:"related,omitempty"`

	// Example is the optional before/after illustration.
	Example *Example `json:"example,omitempty" yaml:"example,omitempty"`

	// SourcePath records the content file this entry was loaded from,
	// empty for built-in definitions.
	SourcePath string `json:"source_path,omitempty" yaml:"-"`

	// ContentHash is a sha256 hash of the source content, used for
	// duplicate-content detection.
	ContentHash string `json:"content_hash,omitempty" yaml:"-"`
}

// Relates reports whether the entry lists id among its related entries.
func (e *Entry) Relates(id string) bool {
	for _, r := range e.Related {
		if r == id {
			return true
		}
	}
	return false
}

// clone returns a copy of the entry with its own Related slice, so callers
// holding the original cannot mutate stored state.
func (e *Entry) clone() *Entry {
	cp := *e
	if len(e.Related) > 0 {
		cp.Related = append([]string(nil), e.Related...)
	}
	if e.Example != nil {
		ex := *e.Example
		cp.Example = &ex
	}
	return &cp
}

var (
	slugInvalidRe = regexp.MustCompile(`[^a-z0-9-]`)
	slugHyphensRe = regexp.MustCompile(`-+`)
)

// Slugify converts a title to a stable slug suitable as an entry ID.
func Slugify(title string) string {
	slug := strings.ToLower(title)

	slug = strings.ReplaceAll(slug, " ", "-")
	slug = strings.ReplaceAll(slug, "_", "-")
	slug = slugInvalidRe.ReplaceAllString(slug, "")
	slug = slugHyphensRe.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	if len(slug) > 50 {
		slug = slug[:50]
		slug = strings.TrimRight(slug, "-")
	}

	return slug
}

// ContentHash computes a sha256 hash of content, hex encoded.
func ContentHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}
