package adapters

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"storefront-scraper/internal/types"
)

func detectPage(t *testing.T, html string) types.Platform {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(html))
	}))
	defer server.Close()

	detector := NewDetector(testConfig(), logrus.New())
	defer detector.Close()

	return detector.Detect(context.Background(), server.URL)
}

func TestDetector_Detect(t *testing.T) {
	shopify := `<html><head><script src="https://cdn.shopify.com/assets/app.js"></script></head></html>`
	assert.Equal(t, types.PlatformShopify, detectPage(t, shopify))

	wordpress := `<html><head><link href="/wp-content/themes/storefront/style.css"></head></html>`
	assert.Equal(t, types.PlatformWordPress, detectPage(t, wordpress))

	woo := `<html><body class="woocommerce-page"></body></html>`
	assert.Equal(t, types.PlatformWordPress, detectPage(t, woo))

	plain := `<html><body><h1>Hello</h1></body></html>`
	assert.Equal(t, types.PlatformUnknown, detectPage(t, plain))
}

func TestDetector_Detect_FetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	detector := NewDetector(testConfig(), logrus.New())
	defer detector.Close()

	assert.Equal(t, types.PlatformUnknown, detector.Detect(context.Background(), server.URL))
}
