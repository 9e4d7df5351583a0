package pipeline

import (
	"sync"

	"storefront-scraper/internal/types"

	"github.com/shopspring/decimal"
)

// Store holds finished runs keyed by run ID. It replaces the implicit
// session state of interactive use with an explicit, clearable registry.
// The API server reads it from HTTP handlers, so access is locked.
type Store struct {
	mu   sync.RWMutex
	runs map[string]*RunResult
}

// NewStore creates an empty run store
func NewStore() *Store {
	return &Store{runs: make(map[string]*RunResult)}
}

// Put registers a finished run under its ID.
func (s *Store) Put(result *RunResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[result.ID] = result
}

// Get returns the run with the given ID, or false when it does not exist.
func (s *Store) Get(id string) (*RunResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.runs[id]
	return result, ok
}

// Delete removes one run.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.runs, id)
}

// Reset drops every stored run.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = make(map[string]*RunResult)
}

// Len returns the number of stored runs.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.runs)
}

// Filter selects rows by base-field values. Empty slices match everything.
type Filter struct {
	Vendors      []string
	ProductTypes []string
}

// Apply returns the rows passing the filter, preserving order.
func (f Filter) Apply(rows []types.OutputRow) []types.OutputRow {
	if len(f.Vendors) == 0 && len(f.ProductTypes) == 0 {
		return rows
	}

	vendorSet := toSet(f.Vendors)
	typeSet := toSet(f.ProductTypes)

	filtered := make([]types.OutputRow, 0, len(rows))
	for _, row := range rows {
		if len(vendorSet) > 0 {
			if _, ok := vendorSet[row.Vendor]; !ok {
				continue
			}
		}
		if len(typeSet) > 0 {
			if _, ok := typeSet[row.Type]; !ok {
				continue
			}
		}
		filtered = append(filtered, row)
	}
	return filtered
}

// Summary aggregates the headline numbers of a run for the operator.
type Summary struct {
	TotalProducts int    `json:"total_products"`
	TotalRows     int    `json:"total_rows"`
	VariantRows   int    `json:"variant_rows"`
	AvailableRows int    `json:"available_rows"`
	UniqueVendors int    `json:"unique_vendors"`
	AveragePrice  string `json:"average_price"`
}

// Summarize computes a run's summary. The average price covers variant rows
// only; image-only rows carry no price.
func Summarize(result *RunResult) Summary {
	summary := Summary{
		TotalProducts: len(result.Products),
		TotalRows:     len(result.Rows),
	}

	vendors := make(map[string]struct{})
	priceSum := decimal.Zero
	priced := 0

	for _, row := range result.Rows {
		if row.Vendor != "" {
			vendors[row.Vendor] = struct{}{}
		}
		if row.VariantPrice == "" {
			continue
		}
		summary.VariantRows++
		if row.Available == "TRUE" {
			summary.AvailableRows++
		}
		if price, err := decimal.NewFromString(row.VariantPrice); err == nil {
			priceSum = priceSum.Add(price)
			priced++
		}
	}

	summary.UniqueVendors = len(vendors)
	if priced > 0 {
		summary.AveragePrice = priceSum.Div(decimal.NewFromInt(int64(priced))).StringFixed(2)
	}

	return summary
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
