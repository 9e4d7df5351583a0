package adapters

import (
	"context"
	"strings"

	"storefront-scraper/internal/types"
)

// Detector sniffs which e-commerce platform a site runs on by searching the
// landing page markup for platform fingerprints. It is a best-effort
// heuristic; callers should treat PlatformUnknown as "try everything".
type Detector struct {
	*BaseAdapter
}

// NewDetector creates a new platform detector
func NewDetector(config *types.Config, logger types.Logger) *Detector {
	return &Detector{
		BaseAdapter: NewBaseAdapter(config, logger),
	}
}

var wordpressMarkers = []string{"wp-content", "wordpress", "wp-json", "/wp-", "woocommerce"}

// Detect fetches the landing page and classifies the platform.
func (d *Detector) Detect(ctx context.Context, storeURL string) types.Platform {
	baseURL := NormalizeBaseURL(storeURL)

	html, err := d.GetPageContent(ctx, baseURL)
	if err != nil {
		d.logger.Warnf("Platform detection fetch failed for %s: %v", baseURL, err)
		return types.PlatformUnknown
	}

	content := strings.ToLower(html)

	if strings.Contains(content, "shopify") || strings.Contains(content, "cdn.shopify.com") {
		return types.PlatformShopify
	}

	for _, marker := range wordpressMarkers {
		if strings.Contains(content, marker) {
			return types.PlatformWordPress
		}
	}

	return types.PlatformUnknown
}
