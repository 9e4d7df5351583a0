package normalizer

import (
	"strconv"
	"strings"

	"storefront-scraper/internal/types"

	"github.com/shopspring/decimal"
)

// Fixed import defaults; these are never derived from source data.
const (
	inventoryTracker   = "shopify"
	inventoryPolicy    = "deny"
	fulfillmentService = "manual"
)

// optionLabels are the fixed OptionN Name values for slots 1-3, mirroring
// the common storefront convention.
var optionLabels = [3]string{"Title", "Color", "Size"}

// Normalizer converts one raw product record into the ordered flat rows of
// the import table. It owns the variant/image expansion rules; adapters
// only have to deliver a RawProduct with sane defaults.
type Normalizer struct {
	logger types.Logger
	mapper *TypeMapper
}

// New creates a Normalizer with the embedded category taxonomy.
func New(logger types.Logger) *Normalizer {
	return &Normalizer{
		logger: logger,
		mapper: NewTypeMapper(),
	}
}

// Normalize expands a raw product into its row group: one row per variant,
// then one row per gallery image beyond the first. Products without any
// image yield no rows at all, since the import format requires at least one
// image per product.
func (n *Normalizer) Normalize(p types.RawProduct) []types.OutputRow {
	if len(p.Images) == 0 {
		n.logger.Debugf("Skipping product %q: no images", p.Title)
		return nil
	}

	variants := p.Variants
	if len(variants) == 0 {
		variants = []types.RawVariant{defaultVariant()}
	}

	realOptions := hasRealOptions(variants)
	base := n.baseRow(p)
	mainImage := p.Images[0]

	imageByID := make(map[int64]types.RawImage, len(p.Images))
	for _, img := range p.Images {
		imageByID[img.ID] = img
	}

	rows := make([]types.OutputRow, 0, len(variants)+len(p.Images)-1)

	for i, v := range variants {
		row := base

		if realOptions {
			assignOption(&row.Option1Name, &row.Option1Value, 0, v.Option1)
			assignOption(&row.Option2Name, &row.Option2Value, 1, v.Option2)
			assignOption(&row.Option3Name, &row.Option3Value, 2, v.Option3)
		}

		row.VariantSKU = Clean(v.SKU)
		row.VariantGrams = strconv.Itoa(v.Grams)
		row.VariantInventoryTracker = inventoryTracker
		row.VariantInventoryQty = strconv.Itoa(v.InventoryQuantity)
		row.VariantInventoryPolicy = inventoryPolicy
		row.VariantFulfillmentService = fulfillmentService
		row.VariantPrice = normalizePrice(v.Price)
		row.VariantCompareAtPrice = normalizeOptionalPrice(v.CompareAtPrice)
		row.VariantRequiresShipping = boolString(v.RequiresShipping)
		row.VariantTaxable = boolString(v.Taxable)
		row.VariantWeightUnit = weightUnit(v.WeightUnit)
		row.Available = boolString(v.Available)
		row.VariantsCount = strconv.Itoa(len(variants))
		row.VariantTitle = variantTitle(v.Title)

		mapped, ok := resolveImage(imageByID, v.ImageID)

		if i == 0 {
			// The first variant row carries the main image
			row.ImageSrc = mainImage.Src
			row.ImagePosition = "1"
			row.ImageAltText = Clean(mainImage.Alt)
			if ok {
				row.VariantImage = mapped.Src
			} else {
				row.VariantImage = mainImage.Src
			}
		} else if ok {
			row.VariantImage = mapped.Src
		}

		rows = append(rows, row)
	}

	// Extra gallery images become rows of their own, with every option and
	// variant field blank so they cannot be mistaken for purchasable
	// variants.
	for idx, img := range p.Images[1:] {
		row := base
		row.ImageSrc = img.Src
		row.ImagePosition = strconv.Itoa(idx + 2)
		row.ImageAltText = Clean(img.Alt)
		rows = append(rows, row)
	}

	return rows
}

// baseRow builds the fields shared by every row of a product's row group.
// Option, variant and image fields all stay empty here.
func (n *Normalizer) baseRow(p types.RawProduct) types.OutputRow {
	return types.OutputRow{
		Handle:          Clean(p.Handle),
		Title:           Clean(p.Title),
		BodyHTML:        CleanHTML(p.BodyHTML),
		Vendor:          Clean(p.Vendor),
		ProductCategory: n.mapper.Map(p.ProductType),
		Type:            Clean(p.ProductType),
		Tags:            Clean(strings.Join(p.Tags, ", ")),
		Published:       boolString(p.PublishedAt != ""),
		Collection:      Clean(p.CollectionName),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		Description:     SanitizeText(p.BodyHTML),
	}
}

// defaultVariant is synthesized for products with no variants at all, so
// every product with an image yields at least one row.
func defaultVariant() types.RawVariant {
	return types.RawVariant{
		Title:            types.DefaultVariantTitle,
		Price:            "0",
		RequiresShipping: true,
		Taxable:          true,
		WeightUnit:       "kg",
		Available:        true,
	}
}

// meaningful reports whether an option value carries real information:
// present and not the "Default Title" placeholder.
func meaningful(opt *string) bool {
	return opt != nil && *opt != "" && *opt != types.DefaultVariantTitle
}

// hasRealOptions decides whether the product is multi-variant for
// formatting purposes. The rule is strict: the distinct (option1, option2,
// option3) tuples across variants with at least one meaningful option must
// number more than one. A single repeated option value leaves nothing to
// disambiguate, and single-variant products must export empty option
// columns.
func hasRealOptions(variants []types.RawVariant) bool {
	tuples := make(map[[3]string]struct{})

	for _, v := range variants {
		if !meaningful(v.Option1) && !meaningful(v.Option2) && !meaningful(v.Option3) {
			continue
		}
		tuples[[3]string{deref(v.Option1), deref(v.Option2), deref(v.Option3)}] = struct{}{}
	}

	return len(tuples) > 1
}

// assignOption fills one option slot's Name/Value pair, or leaves both
// empty when the variant has no meaningful value for that slot.
func assignOption(name *string, value *string, slot int, opt *string) {
	if !meaningful(opt) {
		return
	}
	*name = optionLabels[slot]
	*value = *opt
}

// resolveImage looks up a variant's own image. An ImageID of zero means the
// variant has none.
func resolveImage(imageByID map[int64]types.RawImage, imageID int64) (types.RawImage, bool) {
	if imageID == 0 {
		return types.RawImage{}, false
	}
	img, ok := imageByID[imageID]
	return img, ok
}

func variantTitle(title string) string {
	if title == "" {
		return types.DefaultVariantTitle
	}
	return Clean(title)
}

func weightUnit(unit string) string {
	if unit == "" {
		return "kg"
	}
	return unit
}

// normalizePrice formats a decimal-as-string price to two places; anything
// unparseable falls back to "0.00".
func normalizePrice(price string) string {
	d, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil {
		return "0.00"
	}
	return d.StringFixed(2)
}

// normalizeOptionalPrice is normalizePrice but keeps absence empty.
func normalizeOptionalPrice(price string) string {
	if strings.TrimSpace(price) == "" {
		return ""
	}
	return normalizePrice(price)
}

func boolString(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
