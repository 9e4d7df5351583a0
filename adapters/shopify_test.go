package adapters

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"storefront-scraper/internal/types"
)

func testConfig() *types.Config {
	config := types.DefaultConfig()
	config.RequestDelay = 5 * time.Millisecond
	config.MaxRetries = 0
	config.PageSize = 2
	return config
}

const shopifyPageOne = `{
	"products": [
		{
			"id": 1001,
			"title": "Classic Tee",
			"handle": "classic-tee",
			"body_html": "<p>Soft cotton tee.</p>",
			"published_at": "2024-01-10T00:00:00-05:00",
			"created_at": "2024-01-01T00:00:00-05:00",
			"updated_at": "2024-02-01T00:00:00-05:00",
			"vendor": "Acme",
			"product_type": "T-Shirt",
			"tags": ["cotton", "summer"],
			"variants": [
				{
					"id": 1,
					"title": "Red",
					"option1": "Red",
					"sku": "TEE-R",
					"grams": 200,
					"inventory_quantity": 5,
					"price": "19.99",
					"compare_at_price": "24.99",
					"requires_shipping": false,
					"taxable": false,
					"weight_unit": "g",
					"available": true,
					"featured_image": {"id": 9001}
				},
				{
					"id": 2,
					"price": "",
					"compare_at_price": null,
					"available": false
				}
			],
			"images": [
				{"id": 9001, "src": "https://cdn.example.com/red.jpg", "alt": "red", "position": 1}
			]
		}
	]
}`

func TestShopifyAdapter_FetchStandard(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products.json", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("limit"))
		w.Write([]byte(shopifyPageOne))
	}))
	defer server.Close()

	adapter := NewShopifyAdapter(testConfig(), logrus.New())
	defer adapter.Close()

	products, err := adapter.FetchStandard(context.Background(), server.URL)
	require.NoError(t, err)
	require.Len(t, products, 1)

	p := products[0]
	assert.Equal(t, int64(1001), p.ID)
	assert.Equal(t, "classic-tee", p.Handle)
	assert.Equal(t, types.PlatformShopify, p.Platform)
	assert.Equal(t, []string{"cotton", "summer"}, p.Tags)
	require.Len(t, p.Variants, 2)
	require.Len(t, p.Images, 1)

	// First variant comes through as-is, including explicit false booleans.
	v := p.Variants[0]
	assert.Equal(t, "Red", v.Title)
	require.NotNil(t, v.Option1)
	assert.Equal(t, "Red", *v.Option1)
	assert.Equal(t, "19.99", v.Price)
	assert.Equal(t, "24.99", v.CompareAtPrice)
	assert.False(t, v.RequiresShipping)
	assert.False(t, v.Taxable)
	assert.Equal(t, "g", v.WeightUnit)
	assert.Equal(t, int64(9001), v.ImageID)

	// Missing fields fall back to the documented defaults.
	v = p.Variants[1]
	assert.Equal(t, types.DefaultVariantTitle, v.Title)
	assert.Nil(t, v.Option1)
	assert.Equal(t, "0", v.Price)
	assert.Equal(t, "", v.CompareAtPrice)
	assert.True(t, v.RequiresShipping)
	assert.True(t, v.Taxable)
	assert.Equal(t, "kg", v.WeightUnit)
	assert.Equal(t, int64(0), v.ImageID)
}

func TestShopifyAdapter_FetchPaginated(t *testing.T) {
	pages := map[string]string{
		"1": `{"products": [{"id": 1, "handle": "a"}, {"id": 2, "handle": "b"}]}`,
		"2": `{"products": [{"id": 3, "handle": "c"}]}`,
	}

	var requested []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		requested = append(requested, page)
		body, ok := pages[page]
		if !ok {
			body = `{"products": []}`
		}
		w.Write([]byte(body))
	}))
	defer server.Close()

	adapter := NewShopifyAdapter(testConfig(), logrus.New())
	defer adapter.Close()

	products, err := adapter.FetchPaginated(context.Background(), server.URL, 2)
	require.NoError(t, err)
	assert.Len(t, products, 3)

	// Page 2 was short, so page 3 is never requested.
	assert.Equal(t, []string{"1", "2"}, requested)
}

func TestShopifyAdapter_FetchPaginated_FirstPageFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	adapter := NewShopifyAdapter(testConfig(), logrus.New())
	defer adapter.Close()

	_, err := adapter.FetchPaginated(context.Background(), server.URL, 2)
	assert.Error(t, err)
}

func TestShopifyAdapter_FetchByCollections(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/collections.json":
			w.Write([]byte(`{"collections": [
				{"id": 1, "handle": "summer", "title": "Summer Sale"},
				{"id": 2, "handle": "basics", "title": ""},
				{"id": 3, "handle": "", "title": "Broken"}
			]}`))
		case "/collections/summer/products.json":
			w.Write([]byte(`{"products": [{"id": 10, "handle": "tee"}, {"id": 11, "handle": "hat"}]}`))
		case "/collections/basics/products.json":
			w.Write([]byte(`{"products": [{"id": 12, "handle": "sock"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	adapter := NewShopifyAdapter(testConfig(), logrus.New())
	defer adapter.Close()

	products, counts, err := adapter.FetchByCollections(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Len(t, products, 3)
	assert.Equal(t, map[string]int{"Summer Sale": 2, "basics": 1}, counts)

	for _, p := range products {
		assert.NotEmpty(t, p.CollectionName, fmt.Sprintf("product %d missing collection name", p.ID))
	}
}
