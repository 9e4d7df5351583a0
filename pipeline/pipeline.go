package pipeline

import (
	"context"
	"errors"
	"time"

	"storefront-scraper/adapters"
	"storefront-scraper/internal/types"
	"storefront-scraper/normalizer"

	"github.com/google/uuid"
)

// ErrNoProducts is returned when every attempted fetch method came back
// empty. Individual method failures are recovered; only the all-empty case
// surfaces to the caller.
var ErrNoProducts = errors.New("no products found; site may be inaccessible, empty, or unsupported")

// Method names one way of fetching catalog data from a storefront.
type Method string

const (
	MethodShopifyStandard    Method = "shopify-standard"
	MethodShopifyPaginated   Method = "shopify-paginated"
	MethodShopifyCollections Method = "shopify-collections"
	MethodWooAPI             Method = "woo-api"
	MethodWooHTML            Method = "woo-html"
)

// MethodsForPlatform returns the fetch methods for a platform in priority
// order. An unknown platform gets everything.
func MethodsForPlatform(platform types.Platform) []Method {
	switch platform {
	case types.PlatformShopify:
		return []Method{MethodShopifyStandard, MethodShopifyPaginated, MethodShopifyCollections}
	case types.PlatformWordPress:
		return []Method{MethodWooAPI, MethodWooHTML}
	default:
		return []Method{
			MethodShopifyStandard, MethodShopifyPaginated, MethodShopifyCollections,
			MethodWooAPI, MethodWooHTML,
		}
	}
}

// RunResult is everything one scrape run produced. Rows are immutable once
// the run finishes; filtering works on copies.
type RunResult struct {
	ID               string             `json:"id"`
	StoreURL         string             `json:"store_url"`
	CreatedAt        time.Time          `json:"created_at"`
	Products         []types.RawProduct `json:"products"`
	Rows             []types.OutputRow  `json:"rows"`
	MethodCounts     map[string]int     `json:"method_counts"`
	CollectionCounts map[string]int     `json:"collection_counts,omitempty"`
	SkippedNoImage   int                `json:"skipped_no_image"`
}

// Pipeline wires adapters, aggregator and normalizer into one sequential
// scrape run. Everything executes on the calling goroutine; the only
// pauses are the polite inter-request delays inside the HTTP client.
type Pipeline struct {
	config     *types.Config
	logger     types.Logger
	shopify    *adapters.ShopifyAdapter
	woo        *adapters.WooCommerceAdapter
	sitemap    *adapters.SitemapAdapter
	normalizer *normalizer.Normalizer
}

// New creates a pipeline with its own adapter instances.
func New(config *types.Config, logger types.Logger) *Pipeline {
	return &Pipeline{
		config:     config,
		logger:     logger,
		shopify:    adapters.NewShopifyAdapter(config, logger),
		woo:        adapters.NewWooCommerceAdapter(config, logger),
		sitemap:    adapters.NewSitemapAdapter(config, logger),
		normalizer: normalizer.New(logger),
	}
}

// Run executes the given fetch methods in order, merges their results and
// normalizes every product into output rows. A method that fails or
// returns nothing is logged and skipped; ErrNoProducts is returned only
// when all of them came back empty.
func (p *Pipeline) Run(ctx context.Context, storeURL string, methods []Method) (*RunResult, error) {
	start := time.Now()
	p.logger.Infof("Starting scrape of %s with %d methods", storeURL, len(methods))

	agg := NewAggregator()
	methodCounts := make(map[string]int)

	for _, method := range methods {
		products, counts, err := p.fetch(ctx, storeURL, method)
		if err != nil {
			p.logger.Warnf("Method %s produced no data: %v", method, err)
			continue
		}

		added := agg.Add(products)
		methodCounts[string(method)] = added
		if counts != nil {
			agg.AddCounts(counts)
		}

		p.logger.Infof("Method %s: %d products (%d new)", method, len(products), added)
	}

	products := agg.Products()
	if len(products) == 0 {
		// Probe the sitemap so the operator can tell an empty store from
		// blocked catalog endpoints.
		if urls, err := p.sitemap.FetchProductURLs(ctx, storeURL); err == nil && len(urls) > 0 {
			p.logger.Warnf("No method returned products, but the sitemap lists %d product URLs; catalog endpoints may be blocked", len(urls))
		}
		return nil, ErrNoProducts
	}

	var rows []types.OutputRow
	skipped := 0
	for _, product := range products {
		productRows := p.normalizer.Normalize(product)
		if len(productRows) == 0 {
			skipped++
			continue
		}
		rows = append(rows, productRows...)
	}

	result := &RunResult{
		ID:               uuid.NewString(),
		StoreURL:         storeURL,
		CreatedAt:        time.Now().UTC(),
		Products:         products,
		Rows:             rows,
		MethodCounts:     methodCounts,
		CollectionCounts: agg.CollectionCounts(),
		SkippedNoImage:   skipped,
	}

	p.logger.Infof("Scrape %s finished in %v: %d products, %d rows, %d skipped without images",
		result.ID, time.Since(start), len(products), len(rows), skipped)

	return result, nil
}

// fetch dispatches one method to its adapter.
func (p *Pipeline) fetch(ctx context.Context, storeURL string, method Method) ([]types.RawProduct, map[string]int, error) {
	switch method {
	case MethodShopifyStandard:
		products, err := p.shopify.FetchStandard(ctx, storeURL)
		return products, nil, err
	case MethodShopifyPaginated:
		products, err := p.shopify.FetchPaginated(ctx, storeURL, p.config.PageSize)
		return products, nil, err
	case MethodShopifyCollections:
		return p.shopify.FetchByCollections(ctx, storeURL)
	case MethodWooAPI:
		products, err := p.woo.FetchAPI(ctx, storeURL)
		return products, nil, err
	case MethodWooHTML:
		products, err := p.woo.FetchViaHTML(ctx, storeURL)
		return products, nil, err
	default:
		p.logger.Warnf("Unknown method: %s, skipping", method)
		return nil, nil, nil
	}
}

// Close cleans up adapter resources
func (p *Pipeline) Close() {
	p.shopify.Close()
	p.woo.Close()
	p.sitemap.Close()
}
