package pipeline

import (
	"strconv"

	"storefront-scraper/internal/types"
)

// Aggregator merges products arriving from multiple fetch methods into one
// deduplicated list. Methods run in priority order, so the first method to
// deliver a product wins and later duplicates are dropped.
type Aggregator struct {
	seen             map[string]struct{}
	products         []types.RawProduct
	collectionCounts map[string]int
}

// NewAggregator creates an empty aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{
		seen:             make(map[string]struct{}),
		collectionCounts: make(map[string]int),
	}
}

// Add appends products whose identity has not been seen yet and returns how
// many were new. Adding the same list twice is a no-op the second time.
func (a *Aggregator) Add(products []types.RawProduct) int {
	added := 0
	for _, p := range products {
		key := identityKey(p)
		if _, ok := a.seen[key]; ok {
			continue
		}
		a.seen[key] = struct{}{}
		a.products = append(a.products, p)
		added++
	}
	return added
}

// AddCounts merges a collection-name-to-count map into the running totals,
// summing counts when a collection name appears from more than one method.
func (a *Aggregator) AddCounts(counts map[string]int) {
	for name, count := range counts {
		a.collectionCounts[name] += count
	}
}

// Products returns the merged, deduplicated product list in arrival order.
func (a *Aggregator) Products() []types.RawProduct {
	return a.products
}

// CollectionCounts returns the merged per-collection product counts.
func (a *Aggregator) CollectionCounts() map[string]int {
	return a.collectionCounts
}

// identityKey derives a stable identity for deduplication: the numeric id
// when the platform provides one, the handle when it does not, and the
// title+handle composite for fully degraded records such as HTML scrapes.
func identityKey(p types.RawProduct) string {
	if p.ID != 0 {
		return "id:" + strconv.FormatInt(p.ID, 10)
	}
	if p.Handle != "" {
		return "handle:" + p.Handle
	}
	return "composite:" + p.Title + "|" + p.Handle
}
