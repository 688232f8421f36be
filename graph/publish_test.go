package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/patternbook/catalog"
)

func testEntry() *catalog.Entry {
	return &catalog.Entry{
		ID:       "builder",
		Category: catalog.CategoryPattern,
		Title:    "Builder",
		Summary:  "Construct complex objects step by step.",
		Related:  []string{"factory", "long-parameter-list"},
	}
}

func TestEntryEntityID(t *testing.T) {
	assert.Equal(t, "patternbook.catalog.pattern.builder", EntryEntityID(testEntry()))

	smell := &catalog.Entry{ID: "feature-envy", Category: catalog.CategorySmell}
	assert.Equal(t, "patternbook.catalog.smell.feature-envy", EntryEntityID(smell))
}

func TestEntryMessage(t *testing.T) {
	msg := EntryMessage(testEntry())

	assert.Equal(t, "patternbook.catalog.pattern.builder", msg.ID)
	require.Len(t, msg.Triples, 5)

	predicates := make(map[string]int)
	for _, tr := range msg.Triples {
		assert.Equal(t, msg.ID, tr.Subject)
		assert.Equal(t, "patternbook.catalog", tr.Source)
		assert.Equal(t, 1.0, tr.Confidence)
		predicates[tr.Predicate]++
	}

	assert.Equal(t, 1, predicates[PredicateTitle])
	assert.Equal(t, 1, predicates[PredicateCategory])
	assert.Equal(t, 1, predicates[PredicateSummary])
	assert.Equal(t, 2, predicates[PredicateRelated])
}

func TestNilConnectionIsNoOp(t *testing.T) {
	p := NewPublisher(nil, "")

	assert.False(t, p.Enabled())
	assert.NoError(t, p.PublishEntry(testEntry()))

	c := catalog.New()
	require.NoError(t, c.Put(testEntry()))
	// Not finalized, but the nil publisher must return before touching it.
	n, err := p.PublishCatalog(c)
	assert.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestNewPublisherDefaultSubject(t *testing.T) {
	p := NewPublisher(nil, "")
	assert.Equal(t, DefaultIngestSubject, p.subject)

	p = NewPublisher(nil, "custom.subject")
	assert.Equal(t, "custom.subject", p.subject)
}
