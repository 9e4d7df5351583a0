package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"storefront-scraper/internal/types"

	"github.com/PuerkitoBio/goquery"
)

// WooCommerceAdapter fetches catalog data from WordPress/WooCommerce sites,
// first through the REST API and, failing that, by scraping shop pages.
type WooCommerceAdapter struct {
	*BaseAdapter
}

// NewWooCommerceAdapter creates a new WooCommerce adapter
func NewWooCommerceAdapter(config *types.Config, logger types.Logger) *WooCommerceAdapter {
	return &WooCommerceAdapter{
		BaseAdapter: NewBaseAdapter(config, logger),
	}
}

// wooProduct mirrors the WooCommerce REST API product payload.
type wooProduct struct {
	ID               int64         `json:"id"`
	Name             string        `json:"name"`
	Slug             string        `json:"slug"`
	Permalink        string        `json:"permalink"`
	DateCreated      string        `json:"date_created"`
	DateModified     string        `json:"date_modified"`
	Description      string        `json:"description"`
	ShortDescription string        `json:"short_description"`
	Price            string        `json:"price"`
	RegularPrice     string        `json:"regular_price"`
	StockStatus      string        `json:"stock_status"`
	StockQuantity    *int          `json:"stock_quantity"`
	Weight           string        `json:"weight"`
	Categories       []wooTerm     `json:"categories"`
	Tags             []wooTerm     `json:"tags"`
	Images           []wooImage    `json:"images"`
	Variations       []json.Number `json:"variations"`
}

type wooTerm struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type wooImage struct {
	ID  int64  `json:"id"`
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// htmlProduct is the confidence-tagged partial record produced by the
// selector-based shop page scrape. It is best-effort by nature and never
// carries the exactness guarantees of the API paths.
type htmlProduct struct {
	Title       string
	Price       string
	URL         string
	ImageURL    string
	Description string
	Confidence  float64
}

// wooAPIVersions is tried in order; newest first.
var wooAPIVersions = []string{"v3", "v2", "v1"}

// shopPagePaths are the common WooCommerce shop listing locations.
var shopPagePaths = []string{"/shop", "/products", "/store", "/product-category/all"}

// productSelectors are tried in order against a shop page; the first
// selector that matches anything wins.
var productSelectors = []string{
	".woocommerce ul.products li.product",
	".products .product",
	".wc-products .product",
	".product-item",
	".woocommerce-LoopProduct-link",
	"article.product",
}

var priceRe = regexp.MustCompile(`[\d]+\.?\d*`)

// FetchAPI fetches products through the WooCommerce REST API, trying the
// v3, v2 and v1 endpoints in turn.
func (w *WooCommerceAdapter) FetchAPI(ctx context.Context, storeURL string) ([]types.RawProduct, error) {
	baseURL := NormalizeBaseURL(storeURL)

	var lastErr error
	for _, version := range wooAPIVersions {
		endpoint := fmt.Sprintf("%s/wp-json/wc/%s/products?per_page=100", baseURL, version)

		body, err := w.GetJSON(ctx, endpoint)
		if err != nil {
			lastErr = err
			w.logger.Debugf("WooCommerce %s endpoint failed: %v", version, err)
			continue
		}

		var wooProducts []wooProduct
		if err := json.Unmarshal(body, &wooProducts); err != nil {
			lastErr = fmt.Errorf("failed to decode WooCommerce %s response: %w", version, err)
			continue
		}

		if len(wooProducts) == 0 {
			continue
		}

		products := make([]types.RawProduct, 0, len(wooProducts))
		for _, wp := range wooProducts {
			products = append(products, wp.toRawProduct())
		}

		w.logger.Infof("WooCommerce API (%s) returned %d products from %s", version, len(products), baseURL)
		return products, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("all WooCommerce API versions failed: %w", lastErr)
	}
	return nil, nil
}

// FetchViaHTML scrapes shop listing pages with cascading CSS selectors.
// Records are degraded by design: no variants beyond a synthesized default,
// possibly no price or description, and a confidence score instead of a
// correctness guarantee.
func (w *WooCommerceAdapter) FetchViaHTML(ctx context.Context, storeURL string) ([]types.RawProduct, error) {
	baseURL := NormalizeBaseURL(storeURL)

	for _, path := range shopPagePaths {
		shopURL := baseURL + path

		html, err := w.GetPageContent(ctx, shopURL)
		if err != nil {
			w.logger.Debugf("Shop page %s not reachable: %v", shopURL, err)
			continue
		}

		doc, err := w.ParseHTML(html)
		if err != nil {
			w.logger.Warnf("Failed to parse shop page %s: %v", shopURL, err)
			continue
		}

		scraped := w.extractProducts(doc, baseURL)
		if len(scraped) == 0 {
			continue
		}

		products := make([]types.RawProduct, 0, len(scraped))
		for _, hp := range scraped {
			w.logger.Debugf("Scraped %q (confidence %.1f)", hp.Title, hp.Confidence)
			products = append(products, hp.toRawProduct())
		}

		w.logger.Infof("HTML scrape found %d products on %s", len(products), shopURL)
		return products, nil
	}

	w.logger.Info("HTML scrape found no products on any shop page")
	return nil, nil
}

// extractProducts runs the selector cascade over a shop page document.
func (w *WooCommerceAdapter) extractProducts(doc *goquery.Document, baseURL string) []htmlProduct {
	var products []htmlProduct

	for _, selector := range productSelectors {
		elements := doc.Find(selector)
		if elements.Length() == 0 {
			continue
		}

		elements.EachWithBreak(func(i int, s *goquery.Selection) bool {
			if i >= w.config.MaxHTMLProducts {
				return false
			}
			if hp, ok := w.extractProduct(s, baseURL); ok {
				products = append(products, hp)
			}
			return true
		})
		break
	}

	return products
}

// extractProduct pulls whatever fields the markup offers out of a single
// product element. A record without a title is discarded.
func (w *WooCommerceAdapter) extractProduct(s *goquery.Selection, baseURL string) (htmlProduct, bool) {
	var hp htmlProduct

	titleSelectors := []string{
		".woocommerce-loop-product__title",
		".product-title",
		"h2 a",
		"h3 a",
		".entry-title",
		"a[href*='product']",
	}
	for _, sel := range titleSelectors {
		elem := s.Find(sel).First()
		if elem.Length() == 0 {
			continue
		}
		hp.Title = strings.TrimSpace(elem.Text())
		if href, ok := elem.Attr("href"); ok {
			hp.URL = AbsoluteURL(baseURL, href)
		} else if href, ok := elem.Closest("a").Attr("href"); ok {
			hp.URL = AbsoluteURL(baseURL, href)
		}
		if hp.Title != "" {
			break
		}
	}

	if hp.Title == "" {
		return htmlProduct{}, false
	}

	priceSelectors := []string{
		".price .amount",
		".woocommerce-Price-amount",
		".price",
		".product-price",
		".cost",
	}
	for _, sel := range priceSelectors {
		elem := s.Find(sel).First()
		if elem.Length() == 0 {
			continue
		}
		text := strings.ReplaceAll(elem.Text(), ",", "")
		if match := priceRe.FindString(text); match != "" {
			hp.Price = match
		}
		break
	}

	if img := s.Find("img").First(); img.Length() > 0 {
		src, ok := img.Attr("src")
		if !ok || src == "" {
			src, _ = img.Attr("data-src")
		}
		if src != "" {
			hp.ImageURL = AbsoluteURL(baseURL, src)
		}
	}

	descSelectors := []string{
		".woocommerce-product-details__short-description",
		".product-excerpt",
		".entry-summary",
		"p",
	}
	for _, sel := range descSelectors {
		elem := s.Find(sel).First()
		if elem.Length() == 0 {
			continue
		}
		hp.Description = strings.TrimSpace(elem.Text())
		break
	}

	hp.Confidence = scoreConfidence(hp)
	return hp, true
}

// scoreConfidence weighs which fields the scrape actually recovered.
func scoreConfidence(hp htmlProduct) float64 {
	score := 0.0
	if hp.Title != "" {
		score += 0.4
	}
	if hp.Price != "" {
		score += 0.2
	}
	if hp.ImageURL != "" {
		score += 0.2
	}
	if hp.URL != "" {
		score += 0.1
	}
	if hp.Description != "" {
		score += 0.1
	}
	return score
}

// toRawProduct converts the REST API shape, synthesizing a single variant
// from the product-level price and stock fields. The list endpoint never
// expands variations, so one variant per product is the correct shape for
// downstream formatting.
func (wp wooProduct) toRawProduct() types.RawProduct {
	var categoryNames, tagNames []string
	for _, c := range wp.Categories {
		if c.Name != "" {
			categoryNames = append(categoryNames, c.Name)
		}
	}
	for _, t := range wp.Tags {
		if t.Name != "" {
			tagNames = append(tagNames, t.Name)
		}
	}

	raw := types.RawProduct{
		ID:          wp.ID,
		Handle:      wp.Slug,
		Title:       wp.Name,
		ProductType: strings.Join(categoryNames, ", "),
		Tags:        tagNames,
		BodyHTML:    firstNonEmpty(wp.ShortDescription, wp.Description),
		PublishedAt: wp.DateCreated,
		CreatedAt:   wp.DateCreated,
		UpdatedAt:   wp.DateModified,
		SourceURL:   wp.Permalink,
		Platform:    types.PlatformWordPress,
	}

	for _, wi := range wp.Images {
		raw.Images = append(raw.Images, types.RawImage{
			ID:  wi.ID,
			Src: wi.Src,
			Alt: wi.Alt,
		})
	}

	quantity := 0
	if wp.StockQuantity != nil {
		quantity = *wp.StockQuantity
	}

	raw.Variants = []types.RawVariant{{
		Title:             types.DefaultVariantTitle,
		SKU:               "",
		Grams:             weightToGrams(wp.Weight),
		InventoryQuantity: quantity,
		Price:             firstNonEmpty(wp.Price, "0"),
		CompareAtPrice:    wp.RegularPrice,
		RequiresShipping:  true,
		Taxable:           true,
		WeightUnit:        "kg",
		Available:         wp.StockStatus == "instock",
	}}

	return raw
}

// toRawProduct converts a scraped shop page record into a degraded
// RawProduct with a synthesized default variant.
func (hp htmlProduct) toRawProduct() types.RawProduct {
	raw := types.RawProduct{
		Title:      hp.Title,
		BodyHTML:   hp.Description,
		SourceURL:  hp.URL,
		Platform:   types.PlatformWordPress,
		Confidence: hp.Confidence,
	}

	if hp.ImageURL != "" {
		raw.Images = []types.RawImage{{Src: hp.ImageURL, Position: 1}}
	}

	raw.Variants = []types.RawVariant{{
		Title:            types.DefaultVariantTitle,
		Price:            firstNonEmpty(hp.Price, "0"),
		RequiresShipping: true,
		Taxable:          true,
		WeightUnit:       "kg",
		Available:        true,
	}}

	return raw
}

// weightToGrams parses a WooCommerce weight string (kilograms) into grams.
func weightToGrams(weight string) int {
	if weight == "" {
		return 0
	}
	kg, err := strconv.ParseFloat(weight, 64)
	if err != nil {
		return 0
	}
	return int(kg * 1000)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
