package catalog

import (
	"fmt"
	"sort"
)

// Index is the relationship index: a one-hop adjacency mapping derived
// from each entry's Related list. The relation is not transitively closed,
// matching the shallow "see also" structure of the catalog content.
type Index struct {
	adjacency map[string]map[string]bool
}

// NewIndex builds the relationship index from the store in a single pass.
func NewIndex(store *Store) *Index {
	idx := &Index{
		adjacency: make(map[string]map[string]bool, store.Len()),
	}
	for e := range store.All() {
		set := make(map[string]bool, len(e.Related))
		for _, r := range e.Related {
			set[r] = true
		}
		idx.adjacency[e.ID] = set
	}
	return idx
}

// RelatedTo returns the ids directly related to id, sorted for stable
// output. It fails with ErrNotFound when id is unknown.
func (idx *Index) RelatedTo(id string) ([]string, error) {
	set, ok := idx.adjacency[id]
	if !ok {
		return nil, fmt.Errorf("related to %s: %w", id, ErrNotFound)
	}
	ids := make([]string, 0, len(set))
	for r := range set {
		ids = append(ids, r)
	}
	sort.Strings(ids)
	return ids, nil
}

// IsSymmetric reports whether every entry related to id also lists id back.
// Unknown ids and relations to unknown ids count as asymmetric; the
// validator reports those separately as dangling references.
func (idx *Index) IsSymmetric(id string) bool {
	set, ok := idx.adjacency[id]
	if !ok {
		return false
	}
	for r := range set {
		back, ok := idx.adjacency[r]
		if !ok || !back[id] {
			return false
		}
	}
	return true
}

// AsymmetricPair is a one-directional relation: From relates to To but
// To does not relate back.
type AsymmetricPair struct {
	From string
	To   string
}

// AsymmetricPairs returns every one-directional relation between known
// entries, in a deterministic order.
func (idx *Index) AsymmetricPairs() []AsymmetricPair {
	ids := make([]string, 0, len(idx.adjacency))
	for id := range idx.adjacency {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var pairs []AsymmetricPair
	for _, id := range ids {
		targets := make([]string, 0, len(idx.adjacency[id]))
		for r := range idx.adjacency[id] {
			targets = append(targets, r)
		}
		sort.Strings(targets)

		for _, r := range targets {
			back, ok := idx.adjacency[r]
			if !ok {
				// Dangling reference, reported by the referential pass.
				continue
			}
			if !back[id] {
				pairs = append(pairs, AsymmetricPair{From: id, To: r})
			}
		}
	}
	return pairs
}
