package export

import "storefront-scraper/internal/types"

// Columns is the fixed, order-significant column set of the export table.
// The CSV header and the JSON field names both come from this list.
var Columns = []string{
	"Handle",
	"Title",
	"Body (HTML)",
	"Vendor",
	"Product Category",
	"Type",
	"Tags",
	"Published",
	"Collection",
	"Created At",
	"Updated At",
	"Option1 Name",
	"Option1 Value",
	"Option2 Name",
	"Option2 Value",
	"Option3 Name",
	"Option3 Value",
	"Variant SKU",
	"Variant Grams",
	"Variant Inventory Tracker",
	"Variant Inventory Qty",
	"Variant Inventory Policy",
	"Variant Fulfillment Service",
	"Variant Price",
	"Variant Compare At Price",
	"Variant Requires Shipping",
	"Variant Taxable",
	"Variant Weight Unit",
	"Available",
	"Variants Count",
	"Variant Title",
	"Image Src",
	"Image Position",
	"Image Alt Text",
	"Variant Image",
	"Description",
}

// rowValues flattens a row into the Columns order.
func rowValues(r types.OutputRow) []string {
	return []string{
		r.Handle,
		r.Title,
		r.BodyHTML,
		r.Vendor,
		r.ProductCategory,
		r.Type,
		r.Tags,
		r.Published,
		r.Collection,
		r.CreatedAt,
		r.UpdatedAt,
		r.Option1Name,
		r.Option1Value,
		r.Option2Name,
		r.Option2Value,
		r.Option3Name,
		r.Option3Value,
		r.VariantSKU,
		r.VariantGrams,
		r.VariantInventoryTracker,
		r.VariantInventoryQty,
		r.VariantInventoryPolicy,
		r.VariantFulfillmentService,
		r.VariantPrice,
		r.VariantCompareAtPrice,
		r.VariantRequiresShipping,
		r.VariantTaxable,
		r.VariantWeightUnit,
		r.Available,
		r.VariantsCount,
		r.VariantTitle,
		r.ImageSrc,
		r.ImagePosition,
		r.ImageAltText,
		r.VariantImage,
		r.Description,
	}
}
