package adapters

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T) *BaseAdapter {
	t.Helper()
	config := testConfig()
	adapter := NewBaseAdapter(config, logrus.New())
	t.Cleanup(adapter.Close)
	return adapter
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"bare domain", "example.com", "https://example.com"},
		{"https kept", "https://example.com", "https://example.com"},
		{"http kept", "http://example.com", "http://example.com"},
		{"trailing slash trimmed", "https://example.com/", "https://example.com"},
		{"whitespace trimmed", "  example.com  ", "https://example.com"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeBaseURL(tt.input))
		})
	}
}

func TestAbsoluteURL(t *testing.T) {
	base := "https://example.com"

	assert.Equal(t, "https://example.com/products/tee", AbsoluteURL(base, "/products/tee"))
	assert.Equal(t, "https://example.com/shop", AbsoluteURL(base, "shop"))
	assert.Equal(t, "https://other.com/p/1", AbsoluteURL(base, "https://other.com/p/1"))
	assert.Equal(t, "", AbsoluteURL(base, ""))
	assert.Equal(t, "", AbsoluteURL(base, "   "))
}

func TestBaseAdapter_ParseAndExtract(t *testing.T) {
	adapter := newTestAdapter(t)

	doc, err := adapter.ParseHTML(`<div class="product"><h2 class="title">Classic Tee</h2><a class="link" href="/products/classic-tee">view</a></div>`)
	require.NoError(t, err)

	text, err := adapter.ExtractText(doc, ".title")
	require.NoError(t, err)
	assert.Equal(t, "Classic Tee", text)

	href, err := adapter.ExtractAttribute(doc, ".link", "href")
	require.NoError(t, err)
	assert.Equal(t, "/products/classic-tee", href)

	_, err = adapter.ExtractText(doc, ".missing")
	assert.Error(t, err)

	_, err = adapter.ExtractAttribute(doc, ".link", "data-id")
	assert.Error(t, err)
}

func TestBaseAdapter_RemoveDuplicateURLs(t *testing.T) {
	adapter := newTestAdapter(t)

	urls := []string{"a", "b", "a", "c", "b"}
	assert.Equal(t, []string{"a", "b", "c"}, adapter.RemoveDuplicateURLs(urls))
}

func TestBaseAdapter_Config(t *testing.T) {
	config := testConfig()
	adapter := NewBaseAdapter(config, logrus.New())
	defer adapter.Close()

	assert.Equal(t, config, adapter.Config())
}
