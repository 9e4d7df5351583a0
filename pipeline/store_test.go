package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"storefront-scraper/internal/types"
)

func sampleResult() *RunResult {
	return &RunResult{
		ID:       "run-1",
		StoreURL: "https://example.com",
		Products: []types.RawProduct{{ID: 1}, {ID: 2}},
		Rows: []types.OutputRow{
			{Handle: "tee", Vendor: "Acme", Type: "Shirt", VariantPrice: "10.00", Available: "TRUE"},
			{Handle: "tee", Vendor: "Acme", Type: "Shirt", VariantPrice: "20.00", Available: "FALSE"},
			{Handle: "mug", Vendor: "Borealis", Type: "Mug", VariantPrice: "30.00", Available: "TRUE"},
			// image-only row: no variant fields
			{Handle: "mug", Vendor: "Borealis", Type: "Mug", ImageSrc: "https://example.com/2.jpg", ImagePosition: "2"},
		},
	}
}

func TestStore_PutGetDeleteReset(t *testing.T) {
	store := NewStore()
	result := sampleResult()

	store.Put(result)
	assert.Equal(t, 1, store.Len())

	got, ok := store.Get("run-1")
	require.True(t, ok)
	assert.Equal(t, result, got)

	_, ok = store.Get("missing")
	assert.False(t, ok)

	store.Delete("run-1")
	assert.Equal(t, 0, store.Len())

	store.Put(result)
	store.Reset()
	assert.Equal(t, 0, store.Len())
}

func TestFilter_Empty_ReturnsEverything(t *testing.T) {
	rows := sampleResult().Rows

	filtered := Filter{}.Apply(rows)

	assert.Len(t, filtered, 4)
}

func TestFilter_ByVendor(t *testing.T) {
	rows := sampleResult().Rows

	filtered := Filter{Vendors: []string{"Acme"}}.Apply(rows)

	require.Len(t, filtered, 2)
	for _, row := range filtered {
		assert.Equal(t, "Acme", row.Vendor)
	}
}

func TestFilter_ByProductType(t *testing.T) {
	rows := sampleResult().Rows

	filtered := Filter{ProductTypes: []string{"Mug"}}.Apply(rows)

	assert.Len(t, filtered, 2)
}

func TestFilter_VendorAndTypeIntersect(t *testing.T) {
	rows := sampleResult().Rows

	filtered := Filter{Vendors: []string{"Acme"}, ProductTypes: []string{"Mug"}}.Apply(rows)

	assert.Empty(t, filtered)
}

func TestSummarize(t *testing.T) {
	summary := Summarize(sampleResult())

	assert.Equal(t, 2, summary.TotalProducts)
	assert.Equal(t, 4, summary.TotalRows)
	// Image-only rows are not variant rows
	assert.Equal(t, 3, summary.VariantRows)
	assert.Equal(t, 2, summary.AvailableRows)
	assert.Equal(t, 2, summary.UniqueVendors)
	assert.Equal(t, "20.00", summary.AveragePrice)
}

func TestSummarize_NoVariantRows(t *testing.T) {
	result := &RunResult{Rows: []types.OutputRow{{Handle: "x", ImagePosition: "2"}}}

	summary := Summarize(result)

	assert.Equal(t, 0, summary.VariantRows)
	assert.Empty(t, summary.AveragePrice)
}
