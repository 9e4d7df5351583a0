package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"storefront-scraper/internal/types"
)

func TestAggregator_DedupesByID(t *testing.T) {
	agg := NewAggregator()

	first := []types.RawProduct{
		{ID: 1, Handle: "alpha", Title: "Alpha"},
		{ID: 2, Handle: "beta", Title: "Beta"},
	}
	second := []types.RawProduct{
		{ID: 2, Handle: "beta-renamed", Title: "Beta Renamed"},
		{ID: 3, Handle: "gamma", Title: "Gamma"},
	}

	assert.Equal(t, 2, agg.Add(first))
	assert.Equal(t, 1, agg.Add(second))

	products := agg.Products()
	require.Len(t, products, 3)
	// The first method to deliver a product wins
	assert.Equal(t, "beta", products[1].Handle)
}

func TestAggregator_FallsBackToHandle(t *testing.T) {
	agg := NewAggregator()

	agg.Add([]types.RawProduct{{Handle: "alpha", Title: "Alpha"}})
	added := agg.Add([]types.RawProduct{
		{Handle: "alpha", Title: "Alpha Again"},
		{Handle: "beta", Title: "Beta"},
	})

	assert.Equal(t, 1, added)
	assert.Len(t, agg.Products(), 2)
}

func TestAggregator_FallsBackToTitleComposite(t *testing.T) {
	agg := NewAggregator()

	// HTML-scraped records carry neither id nor handle
	agg.Add([]types.RawProduct{{Title: "Scraped Product"}})
	added := agg.Add([]types.RawProduct{
		{Title: "Scraped Product"},
		{Title: "Other Product"},
	})

	assert.Equal(t, 1, added)
	assert.Len(t, agg.Products(), 2)
}

func TestAggregator_Idempotent(t *testing.T) {
	agg := NewAggregator()

	products := []types.RawProduct{
		{ID: 1, Handle: "alpha"},
		{ID: 2, Handle: "beta"},
	}

	assert.Equal(t, 2, agg.Add(products))
	assert.Equal(t, 0, agg.Add(products))
	assert.Len(t, agg.Products(), 2)
}

func TestAggregator_MergesCollectionCountsBySum(t *testing.T) {
	agg := NewAggregator()

	agg.AddCounts(map[string]int{"Summer": 3, "Winter": 2})
	agg.AddCounts(map[string]int{"Summer": 4, "Sale": 1})

	counts := agg.CollectionCounts()
	assert.Equal(t, 7, counts["Summer"])
	assert.Equal(t, 2, counts["Winter"])
	assert.Equal(t, 1, counts["Sale"])
}
