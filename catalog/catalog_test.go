package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readyCatalog(t *testing.T, entries ...*Entry) *Catalog {
	t.Helper()
	c := New()
	for _, e := range entries {
		require.NoError(t, c.Put(e))
	}
	_, err := c.Finalize()
	require.NoError(t, err)
	return c
}

func TestCatalogQueriesBeforeFinalize(t *testing.T) {
	c := New()
	require.NoError(t, c.Put(testEntry("builder", CategoryPattern)))

	_, err := c.FindByID("builder")
	assert.True(t, errors.Is(err, ErrCatalogLoading))

	_, err = c.Search("builder")
	assert.True(t, errors.Is(err, ErrCatalogLoading))

	_, err = c.Related("builder")
	assert.True(t, errors.Is(err, ErrCatalogLoading))

	_, err = c.All()
	assert.True(t, errors.Is(err, ErrCatalogLoading))
}

func TestCatalogPutAfterFinalize(t *testing.T) {
	c := readyCatalog(t, testEntry("builder", CategoryPattern))

	err := c.Put(testEntry("factory", CategoryPattern))
	assert.True(t, errors.Is(err, ErrCatalogReady))
	assert.Equal(t, 1, c.Len())
}

func TestCatalogFinalizeFailureKeepsLoading(t *testing.T) {
	c := New()
	require.NoError(t, c.Put(testEntry("feature-envy", CategorySmell, "tell-dont-ask")))

	report, err := c.Finalize()
	require.Error(t, err)
	require.NotNil(t, report)
	assert.False(t, report.OK())
	assert.False(t, c.Ready())
	assert.Nil(t, c.Report())

	// Still Loading: queries refused, mutations allowed. Adding the
	// missing entry lets a later Finalize succeed.
	_, err = c.FindByID("feature-envy")
	assert.True(t, errors.Is(err, ErrCatalogLoading))

	require.NoError(t, c.Put(testEntry("tell-dont-ask", CategorySmell, "feature-envy")))
	report, err = c.Finalize()
	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.True(t, c.Ready())
}

func TestCatalogFinalizeIdempotentOnceReady(t *testing.T) {
	c := readyCatalog(t, testEntry("builder", CategoryPattern))
	first := c.Report()

	report, err := c.Finalize()
	require.NoError(t, err)
	assert.Same(t, first, report)
}

func TestCatalogSymmetricPair(t *testing.T) {
	// A mutually related pair finalizes with zero errors and zero
	// warnings, and related("builder") resolves to factory.
	c := readyCatalog(t,
		testEntry("builder", CategoryPattern, "factory"),
		testEntry("factory", CategoryPattern, "builder"),
	)

	report := c.Report()
	assert.Empty(t, report.Errors)
	assert.Empty(t, report.Warnings)

	related, err := c.Related("builder")
	require.NoError(t, err)
	require.Len(t, related, 1)
	assert.Equal(t, "factory", related[0].ID)
}

func TestCatalogReferentialIntegrityInReady(t *testing.T) {
	c := readyCatalog(t,
		testEntry("composite", CategoryPattern, "decorator"),
		testEntry("decorator", CategoryPattern, "composite"),
	)

	all, err := c.All()
	require.NoError(t, err)
	for e := range all {
		for _, r := range e.Related {
			_, err := c.FindByID(r)
			assert.NoError(t, err, "relation %s -> %s must resolve", e.ID, r)
		}
	}
}

func TestCatalogFindByIDUnknown(t *testing.T) {
	c := readyCatalog(t, testEntry("adapter", CategoryPattern))

	_, err := c.FindByID("missing")
	assert.True(t, errors.Is(err, ErrNotFound))

	// A lookup failure is local: the catalog keeps serving.
	got, err := c.FindByID("adapter")
	require.NoError(t, err)
	assert.Equal(t, "adapter", got.ID)
}

func TestCatalogAllIdempotent(t *testing.T) {
	c := readyCatalog(t,
		testEntry("strategy", CategoryPattern),
		testEntry("command", CategoryPattern),
	)

	collect := func() []string {
		seq, err := c.All()
		require.NoError(t, err)
		var out []string
		for e := range seq {
			out = append(out, e.ID)
		}
		return out
	}

	assert.Equal(t, collect(), collect())
}

func TestCatalogSearchRanking(t *testing.T) {
	builder := testEntry("builder", CategoryPattern)
	builder.Title = "Builder"
	builder.Summary = "Constructs complex objects step by step."

	factory := testEntry("factory", CategoryPattern)
	factory.Title = "Factory"
	factory.Summary = "Creates objects without exposing construction, unlike Builder."

	telescoping := testEntry("long-parameter-list", CategorySmell)
	telescoping.Title = "Long Parameter List"
	telescoping.Summary = "Often fixed by introducing a builder."

	c := readyCatalog(t, factory, telescoping, builder)

	seq, err := c.Search("builder")
	require.NoError(t, err)

	var ids []string
	for e := range seq {
		ids = append(ids, e.ID)
	}

	// Exact title match first, then substring hits in insertion order.
	assert.Equal(t, []string{"builder", "factory", "long-parameter-list"}, ids)
}

func TestCatalogSearchCaseInsensitive(t *testing.T) {
	e := testEntry("magic-numbers", CategorySmell)
	e.Title = "Magic Numbers"
	c := readyCatalog(t, e)

	seq, err := c.Search("MAGIC")
	require.NoError(t, err)

	count := 0
	for range seq {
		count++
	}
	assert.Equal(t, 1, count)
}

func TestCatalogSearchEmptyKeyword(t *testing.T) {
	c := readyCatalog(t, testEntry("observer", CategoryPattern))

	seq, err := c.Search("   ")
	require.NoError(t, err)

	count := 0
	for range seq {
		count++
	}
	assert.Zero(t, count)
}

func TestCatalogByCategory(t *testing.T) {
	c := readyCatalog(t,
		testEntry("builder", CategoryPattern),
		testEntry("feature-envy", CategorySmell),
	)

	seq, err := c.ByCategory(CategorySmell)
	require.NoError(t, err)

	var ids []string
	for e := range seq {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"feature-envy"}, ids)
}

func TestCatalogPutGetRoundTrip(t *testing.T) {
	c := New()
	e := testEntry("command", CategoryPattern, "strategy")
	e.Example = &Example{Language: "php", Before: "before", After: "after"}
	require.NoError(t, c.Put(e))
	require.NoError(t, c.Put(testEntry("strategy", CategoryPattern, "command")))

	_, err := c.Finalize()
	require.NoError(t, err)

	got, err := c.FindByID("command")
	require.NoError(t, err)
	assert.Equal(t, e.Title, got.Title)
	assert.Equal(t, e.Summary, got.Summary)
	assert.Equal(t, e.Related, got.Related)
	require.NotNil(t, got.Example)
	assert.Equal(t, "before", got.Example.Before)
	assert.Equal(t, "after", got.Example.After)
}
