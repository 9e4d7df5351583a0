package adapters

import (
	"context"
	"encoding/json"
	"fmt"

	"storefront-scraper/internal/types"
)

// ShopifyAdapter fetches catalog data from a Shopify storefront's public
// JSON endpoints (/products.json, /collections.json).
type ShopifyAdapter struct {
	*BaseAdapter
}

// NewShopifyAdapter creates a new Shopify adapter
func NewShopifyAdapter(config *types.Config, logger types.Logger) *ShopifyAdapter {
	return &ShopifyAdapter{
		BaseAdapter: NewBaseAdapter(config, logger),
	}
}

// shopifyProductsResponse mirrors the /products.json payload.
type shopifyProductsResponse struct {
	Products []shopifyProduct `json:"products"`
}

type shopifyCollectionsResponse struct {
	Collections []shopifyCollection `json:"collections"`
}

type shopifyCollection struct {
	ID     int64  `json:"id"`
	Handle string `json:"handle"`
	Title  string `json:"title"`
}

type shopifyProduct struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Handle      string           `json:"handle"`
	BodyHTML    string           `json:"body_html"`
	PublishedAt string           `json:"published_at"`
	CreatedAt   string           `json:"created_at"`
	UpdatedAt   string           `json:"updated_at"`
	Vendor      string           `json:"vendor"`
	ProductType string           `json:"product_type"`
	Tags        []string         `json:"tags"`
	Variants    []shopifyVariant `json:"variants"`
	Images      []shopifyImage   `json:"images"`
}

// shopifyVariant uses pointers for fields whose absence must fall back to a
// default rather than a zero value.
type shopifyVariant struct {
	ID                int64          `json:"id"`
	Title             string         `json:"title"`
	Option1           *string        `json:"option1"`
	Option2           *string        `json:"option2"`
	Option3           *string        `json:"option3"`
	SKU               string         `json:"sku"`
	Grams             int            `json:"grams"`
	InventoryQuantity int            `json:"inventory_quantity"`
	Price             string         `json:"price"`
	CompareAtPrice    *string        `json:"compare_at_price"`
	RequiresShipping  *bool          `json:"requires_shipping"`
	Taxable           *bool          `json:"taxable"`
	WeightUnit        string         `json:"weight_unit"`
	Available         bool           `json:"available"`
	FeaturedImage     *shopifyRefImg `json:"featured_image"`
}

type shopifyRefImg struct {
	ID int64 `json:"id"`
}

type shopifyImage struct {
	ID       int64  `json:"id"`
	Src      string `json:"src"`
	Alt      string `json:"alt"`
	Position int    `json:"position"`
}

// FetchStandard fetches a single page of products from /products.json.
func (s *ShopifyAdapter) FetchStandard(ctx context.Context, storeURL string) ([]types.RawProduct, error) {
	baseURL := NormalizeBaseURL(storeURL)
	productsURL := fmt.Sprintf("%s/products.json?limit=%d", baseURL, s.config.PageSize)

	products, err := s.fetchProductsPage(ctx, productsURL, "")
	if err != nil {
		return nil, fmt.Errorf("standard fetch failed: %w", err)
	}

	s.logger.Infof("Standard fetch returned %d products from %s", len(products), baseURL)
	return products, nil
}

// FetchPaginated walks /products.json page by page until a page returns
// fewer products than the page size. The page count is capped at
// Config.MaxPages so a misbehaving server cannot keep us looping.
func (s *ShopifyAdapter) FetchPaginated(ctx context.Context, storeURL string, pageSize int) ([]types.RawProduct, error) {
	baseURL := NormalizeBaseURL(storeURL)

	var allProducts []types.RawProduct
	for page := 1; page <= s.config.MaxPages; page++ {
		productsURL := fmt.Sprintf("%s/products.json?limit=%d&page=%d", baseURL, pageSize, page)

		products, err := s.fetchProductsPage(ctx, productsURL, "")
		if err != nil {
			if page == 1 {
				return nil, fmt.Errorf("paginated fetch failed: %w", err)
			}
			s.logger.Warnf("Page %d failed, stopping pagination: %v", page, err)
			break
		}

		if len(products) == 0 {
			break
		}

		allProducts = append(allProducts, products...)
		s.logger.Debugf("Page %d returned %d products", page, len(products))

		if len(products) < pageSize {
			break
		}

		if page == s.config.MaxPages {
			s.logger.Warnf("Reached maximum pagination limit (%d pages)", s.config.MaxPages)
		}
	}

	s.logger.Infof("Paginated fetch returned %d products from %s", len(allProducts), baseURL)
	return allProducts, nil
}

// FetchByCollections lists /collections.json and fetches every collection's
// products, tagging each product with its collection name. The returned map
// holds the product count per collection title.
func (s *ShopifyAdapter) FetchByCollections(ctx context.Context, storeURL string) ([]types.RawProduct, map[string]int, error) {
	baseURL := NormalizeBaseURL(storeURL)
	collectionsURL := baseURL + "/collections.json"

	body, err := s.GetJSON(ctx, collectionsURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch collections: %w", err)
	}

	var collResp shopifyCollectionsResponse
	if err := json.Unmarshal(body, &collResp); err != nil {
		return nil, nil, fmt.Errorf("failed to decode collections response: %w", err)
	}

	var allProducts []types.RawProduct
	collectionCounts := make(map[string]int)

	for _, coll := range collResp.Collections {
		if coll.Handle == "" {
			continue
		}

		name := coll.Title
		if name == "" {
			name = coll.Handle
		}

		productsURL := fmt.Sprintf("%s/collections/%s/products.json", baseURL, coll.Handle)
		products, err := s.fetchProductsPage(ctx, productsURL, name)
		if err != nil {
			s.logger.Warnf("Failed to fetch collection %s: %v", coll.Handle, err)
			continue
		}

		collectionCounts[name] = len(products)
		allProducts = append(allProducts, products...)
		s.logger.Debugf("Collection %s returned %d products", coll.Handle, len(products))
	}

	s.logger.Infof("Collection fetch returned %d products across %d collections", len(allProducts), len(collectionCounts))
	return allProducts, collectionCounts, nil
}

// fetchProductsPage retrieves and decodes one products.json payload.
// collectionName, when non-empty, is attached to every returned product.
func (s *ShopifyAdapter) fetchProductsPage(ctx context.Context, productsURL string, collectionName string) ([]types.RawProduct, error) {
	body, err := s.GetJSON(ctx, productsURL)
	if err != nil {
		return nil, err
	}

	var resp shopifyProductsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode products response: %w", err)
	}

	products := make([]types.RawProduct, 0, len(resp.Products))
	for _, sp := range resp.Products {
		raw := sp.toRawProduct()
		raw.CollectionName = collectionName
		products = append(products, raw)
	}

	return products, nil
}

// toRawProduct converts the Shopify wire shape into the platform-agnostic
// record, applying the documented field defaults.
func (sp shopifyProduct) toRawProduct() types.RawProduct {
	raw := types.RawProduct{
		ID:          sp.ID,
		Handle:      sp.Handle,
		Title:       sp.Title,
		Vendor:      sp.Vendor,
		ProductType: sp.ProductType,
		Tags:        sp.Tags,
		BodyHTML:    sp.BodyHTML,
		PublishedAt: sp.PublishedAt,
		CreatedAt:   sp.CreatedAt,
		UpdatedAt:   sp.UpdatedAt,
		Platform:    types.PlatformShopify,
	}

	for _, si := range sp.Images {
		raw.Images = append(raw.Images, types.RawImage{
			ID:       si.ID,
			Src:      si.Src,
			Alt:      si.Alt,
			Position: si.Position,
		})
	}

	for _, sv := range sp.Variants {
		v := types.RawVariant{
			ID:                sv.ID,
			Title:             sv.Title,
			Option1:           sv.Option1,
			Option2:           sv.Option2,
			Option3:           sv.Option3,
			SKU:               sv.SKU,
			Grams:             sv.Grams,
			InventoryQuantity: sv.InventoryQuantity,
			Price:             sv.Price,
			RequiresShipping:  true,
			Taxable:           true,
			WeightUnit:        sv.WeightUnit,
			Available:         sv.Available,
		}

		if v.Title == "" {
			v.Title = types.DefaultVariantTitle
		}
		if v.Price == "" {
			v.Price = "0"
		}
		if v.WeightUnit == "" {
			v.WeightUnit = "kg"
		}
		if sv.RequiresShipping != nil {
			v.RequiresShipping = *sv.RequiresShipping
		}
		if sv.Taxable != nil {
			v.Taxable = *sv.Taxable
		}
		if sv.CompareAtPrice != nil {
			v.CompareAtPrice = *sv.CompareAtPrice
		}
		if sv.FeaturedImage != nil {
			v.ImageID = sv.FeaturedImage.ID
		}

		raw.Variants = append(raw.Variants, v)
	}

	return raw
}
