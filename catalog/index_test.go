package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildIndex(t *testing.T, entries ...*Entry) (*Store, *Index) {
	t.Helper()
	s := NewStore()
	for _, e := range entries {
		require.NoError(t, s.Put(e))
	}
	return s, NewIndex(s)
}

func TestIndexRelatedTo(t *testing.T) {
	_, idx := buildIndex(t,
		testEntry("builder", CategoryPattern, "factory", "abstract-factory"),
		testEntry("factory", CategoryPattern, "builder"),
		testEntry("abstract-factory", CategoryPattern, "builder"),
	)

	ids, err := idx.RelatedTo("builder")
	require.NoError(t, err)
	assert.Equal(t, []string{"abstract-factory", "factory"}, ids)

	ids, err = idx.RelatedTo("factory")
	require.NoError(t, err)
	assert.Equal(t, []string{"builder"}, ids)
}

func TestIndexRelatedToUnknown(t *testing.T) {
	_, idx := buildIndex(t, testEntry("adapter", CategoryPattern))

	_, err := idx.RelatedTo("missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestIndexIsSymmetric(t *testing.T) {
	_, idx := buildIndex(t,
		testEntry("builder", CategoryPattern, "factory"),
		testEntry("factory", CategoryPattern, "builder"),
		testEntry("feature-envy", CategorySmell, "tell-dont-ask"),
		testEntry("tell-dont-ask", CategorySmell),
	)

	assert.True(t, idx.IsSymmetric("builder"))
	assert.True(t, idx.IsSymmetric("factory"))
	assert.False(t, idx.IsSymmetric("feature-envy"))
	// No outgoing relations is trivially symmetric.
	assert.True(t, idx.IsSymmetric("tell-dont-ask"))
	// Unknown ids are not symmetric.
	assert.False(t, idx.IsSymmetric("missing"))
}

func TestIndexAsymmetricPairs(t *testing.T) {
	_, idx := buildIndex(t,
		testEntry("builder", CategoryPattern, "factory"),
		testEntry("factory", CategoryPattern, "builder"),
		testEntry("feature-envy", CategorySmell, "tell-dont-ask"),
		testEntry("tell-dont-ask", CategorySmell),
	)

	pairs := idx.AsymmetricPairs()
	require.Len(t, pairs, 1)
	assert.Equal(t, AsymmetricPair{From: "feature-envy", To: "tell-dont-ask"}, pairs[0])
}

func TestIndexAsymmetricPairsSkipsDangling(t *testing.T) {
	// A relation to an unknown id is a referential problem, not an
	// asymmetry; the pairs list must not include it.
	_, idx := buildIndex(t,
		testEntry("data-clumps", CategorySmell, "long-parameter-list"),
	)

	assert.Empty(t, idx.AsymmetricPairs())
}
