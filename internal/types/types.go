package types

import "time"

// Platform identifies the e-commerce platform a storefront runs on.
type Platform string

const (
	PlatformShopify   Platform = "shopify"
	PlatformWordPress Platform = "wordpress"
	PlatformUnknown   Platform = "unknown"
)

// DefaultVariantTitle is the placeholder Shopify assigns to the sole
// variant of a product that has no real options.
const DefaultVariantTitle = "Default Title"

// RawProduct is a platform-agnostic product as fetched from a storefront.
// Fields missing upstream stay at their zero value; the normalizer applies
// per-field defaults instead of rejecting the product.
type RawProduct struct {
	ID             int64        `json:"id"`
	Handle         string       `json:"handle"`
	Title          string       `json:"title"`
	Vendor         string       `json:"vendor"`
	ProductType    string       `json:"product_type"`
	Tags           []string     `json:"tags"`
	BodyHTML       string       `json:"body_html"`
	PublishedAt    string       `json:"published_at"`
	CreatedAt      string       `json:"created_at"`
	UpdatedAt      string       `json:"updated_at"`
	CollectionName string       `json:"collection,omitempty"`
	SourceURL      string       `json:"source_url,omitempty"`
	Platform       Platform     `json:"platform"`
	Confidence     float64      `json:"confidence,omitempty"`
	Variants       []RawVariant `json:"variants"`
	Images         []RawImage   `json:"images"`
}

// RawVariant is one purchasable configuration of a product.
// Option fields are pointers so that "absent" and "empty string" stay
// distinguishable for the meaningful-option rules.
type RawVariant struct {
	ID                int64   `json:"id"`
	Title             string  `json:"title"`
	Option1           *string `json:"option1"`
	Option2           *string `json:"option2"`
	Option3           *string `json:"option3"`
	SKU               string  `json:"sku"`
	Grams             int     `json:"grams"`
	InventoryQuantity int     `json:"inventory_quantity"`
	Price             string  `json:"price"`
	CompareAtPrice    string  `json:"compare_at_price"`
	RequiresShipping  bool    `json:"requires_shipping"`
	Taxable           bool    `json:"taxable"`
	WeightUnit        string  `json:"weight_unit"`
	Available         bool    `json:"available"`
	ImageID           int64   `json:"image_id"`
}

// RawImage is a product gallery image.
type RawImage struct {
	ID       int64  `json:"id"`
	Src      string `json:"src"`
	Alt      string `json:"alt"`
	Position int    `json:"position"`
}

// OutputRow is one flat row of the export table. Every field is a string,
// booleans included ("TRUE"/"FALSE"), so CSV and JSON exports carry
// identical values. JSON field names match the CSV column headers.
type OutputRow struct {
	Handle                    string `json:"Handle"`
	Title                     string `json:"Title"`
	BodyHTML                  string `json:"Body (HTML)"`
	Vendor                    string `json:"Vendor"`
	ProductCategory           string `json:"Product Category"`
	Type                      string `json:"Type"`
	Tags                      string `json:"Tags"`
	Published                 string `json:"Published"`
	Collection                string `json:"Collection"`
	CreatedAt                 string `json:"Created At"`
	UpdatedAt                 string `json:"Updated At"`
	Option1Name               string `json:"Option1 Name"`
	Option1Value              string `json:"Option1 Value"`
	Option2Name               string `json:"Option2 Name"`
	Option2Value              string `json:"Option2 Value"`
	Option3Name               string `json:"Option3 Name"`
	Option3Value              string `json:"Option3 Value"`
	VariantSKU                string `json:"Variant SKU"`
	VariantGrams              string `json:"Variant Grams"`
	VariantInventoryTracker   string `json:"Variant Inventory Tracker"`
	VariantInventoryQty       string `json:"Variant Inventory Qty"`
	VariantInventoryPolicy    string `json:"Variant Inventory Policy"`
	VariantFulfillmentService string `json:"Variant Fulfillment Service"`
	VariantPrice              string `json:"Variant Price"`
	VariantCompareAtPrice     string `json:"Variant Compare At Price"`
	VariantRequiresShipping   string `json:"Variant Requires Shipping"`
	VariantTaxable            string `json:"Variant Taxable"`
	VariantWeightUnit         string `json:"Variant Weight Unit"`
	Available                 string `json:"Available"`
	VariantsCount             string `json:"Variants Count"`
	VariantTitle              string `json:"Variant Title"`
	ImageSrc                  string `json:"Image Src"`
	ImagePosition             string `json:"Image Position"`
	ImageAltText              string `json:"Image Alt Text"`
	VariantImage              string `json:"Variant Image"`
	Description               string `json:"Description"`
}

// Config holds the configuration for the scraper
type Config struct {
	RequestDelay       time.Duration
	MaxRetries         int
	Timeout            time.Duration
	PageSize           int
	MaxPages           int
	MaxHTMLProducts    int
	MaxSitemapURLs     int
	UseHeadlessBrowser bool
	UserAgent          string
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		RequestDelay:       1 * time.Second,
		MaxRetries:         3,
		Timeout:            30 * time.Second,
		PageSize:           250,
		MaxPages:           50,
		MaxHTMLProducts:    50,
		MaxSitemapURLs:     100,
		UseHeadlessBrowser: false,
		UserAgent:          "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
	}
}

// Logger defines the logging interface
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}
