package collect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"immojobs-engine/internal/classify"
	"immojobs-engine/internal/domain"
	"immojobs-engine/internal/vocab"
)

func newTestCollector() *Collector {
	v := vocab.Default()
	return New(classify.New(v), v.StopWords)
}

func TestAddGatesClassifyThenDedup(t *testing.T) {
	c := newTestCollector()

	assert.Equal(t, Accepted, c.Add(domain.Job{
		Title: "Agent immobilier", Company: "Century 21", Location: "Paris",
	}))
	assert.Equal(t, NotRelevant, c.Add(domain.Job{
		Title: "Software Engineer", Company: "TechCo", Location: "Paris",
	}))
	assert.Equal(t, Duplicate, c.Add(domain.Job{
		Title: "agent immobilier", Company: "century 21", Location: "Paris",
	}))

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, Stats{Accepted: 1, NotRelevant: 1, Duplicates: 1}, c.Stats())
}

func TestSeedBypassesGate(t *testing.T) {
	c := newTestCollector()

	// Failsafe recovery must not re-filter what a previous run kept.
	c.Seed([]domain.Job{
		{Title: "Software Engineer", Company: "TechCo"},
		{Title: "Agent immobilier", Company: "ABC"},
	})
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, Stats{}, c.Stats())

	// But seeded records still count for dedup on later adds.
	assert.Equal(t, Duplicate, c.Add(domain.Job{Title: "Agent immobilier", Company: "ABC"}))
}

func TestFinalizeReportsRemoved(t *testing.T) {
	c := newTestCollector()
	c.Seed([]domain.Job{
		{Title: "Gestionnaire de patrimoine", Company: "Foncia"},
		{Title: "gestionnaire patrimoine", Company: "FONCIA"},
		{Title: "Négociateur immobilier", Company: "Orpi"},
	})

	removed := c.Finalize()
	assert.Equal(t, 1, removed)
	assert.Equal(t, 2, c.Len())
}

func TestSnapshotIsACopy(t *testing.T) {
	c := newTestCollector()
	require.Equal(t, Accepted, c.Add(domain.Job{Title: "Agent immobilier", Company: "ABC"}))

	snap := c.Snapshot()
	snap[0].Title = "mutated"

	fresh := c.Snapshot()
	assert.Equal(t, "Agent immobilier", fresh[0].Title)
}

func TestEnrich(t *testing.T) {
	c := newTestCollector()
	require.Equal(t, Accepted, c.Add(domain.Job{Title: "Agent immobilier", Company: "ABC"}))

	assert.True(t, c.Enrich(0, 45000, 11250))
	assert.False(t, c.Enrich(1, 1, 1))
	assert.False(t, c.Enrich(-1, 1, 1))

	j := c.Snapshot()[0]
	assert.Equal(t, 45000.0, j.EstimatedSalary)
	assert.Equal(t, 11250.0, j.EstimatedFee)
	assert.Equal(t, "Agent immobilier", j.Title)
}
