package adapters

import (
	"context"
	"encoding/xml"
	"strings"

	"storefront-scraper/internal/types"
)

// SitemapAdapter discovers product page URLs through the storefront's
// sitemap. It only yields URLs; fetching the pages themselves is left to
// the caller.
type SitemapAdapter struct {
	*BaseAdapter
}

// NewSitemapAdapter creates a new sitemap adapter
func NewSitemapAdapter(config *types.Config, logger types.Logger) *SitemapAdapter {
	return &SitemapAdapter{
		BaseAdapter: NewBaseAdapter(config, logger),
	}
}

// sitemapPaths are tried in order; the first sitemap containing product
// URLs wins.
var sitemapPaths = []string{"/sitemap.xml", "/sitemap_products_1.xml", "/products.xml"}

type sitemapURLSet struct {
	URLs []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc string `xml:"loc"`
}

// FetchProductURLs returns product page URLs found in the sitemap, capped at
// Config.MaxSitemapURLs.
func (s *SitemapAdapter) FetchProductURLs(ctx context.Context, storeURL string) ([]string, error) {
	baseURL := NormalizeBaseURL(storeURL)

	for _, path := range sitemapPaths {
		sitemapURL := baseURL + path

		body, err := s.httpClient.Get(ctx, sitemapURL)
		if err != nil {
			s.logger.Debugf("Sitemap %s not reachable: %v", sitemapURL, err)
			continue
		}

		var urlSet sitemapURLSet
		if err := xml.Unmarshal(body, &urlSet); err != nil {
			s.logger.Debugf("Failed to parse sitemap %s: %v", sitemapURL, err)
			continue
		}

		var productURLs []string
		for _, u := range urlSet.URLs {
			loc := strings.TrimSpace(u.Loc)
			if strings.Contains(loc, "/products/") {
				productURLs = append(productURLs, loc)
			}
			if len(productURLs) >= s.config.MaxSitemapURLs {
				break
			}
		}

		if len(productURLs) > 0 {
			s.logger.Infof("Found %d product URLs in %s", len(productURLs), sitemapURL)
			return s.RemoveDuplicateURLs(productURLs), nil
		}
	}

	return nil, nil
}
