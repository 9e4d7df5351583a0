package normalizer

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed taxonomy.yaml
var taxonomyYAML []byte

type taxonomyEntry struct {
	Match    string `yaml:"match"`
	Category string `yaml:"category"`
}

type taxonomyTable struct {
	Default string          `yaml:"default"`
	Entries []taxonomyEntry `yaml:"entries"`
}

// TypeMapper maps free-text product types onto the constrained category
// taxonomy via an ordered lowercase substring-match table.
type TypeMapper struct {
	table taxonomyTable
}

// NewTypeMapper builds a mapper from the embedded taxonomy table.
// The table ships with the binary, so a parse failure is a build defect
// and panics rather than returning an error.
func NewTypeMapper() *TypeMapper {
	var table taxonomyTable
	if err := yaml.Unmarshal(taxonomyYAML, &table); err != nil {
		panic(fmt.Sprintf("embedded taxonomy table is invalid: %v", err))
	}
	return &TypeMapper{table: table}
}

// Map returns the category for a product type. The first table entry whose
// key is a substring of the lowercased type wins; an unmatched non-empty
// type falls back to the default category; an empty type maps to an empty
// category.
func (m *TypeMapper) Map(productType string) string {
	productType = strings.TrimSpace(productType)
	if productType == "" {
		return ""
	}

	lower := strings.ToLower(productType)
	for _, entry := range m.table.Entries {
		if strings.Contains(lower, entry.Match) {
			return entry.Category
		}
	}

	return m.table.Default
}
