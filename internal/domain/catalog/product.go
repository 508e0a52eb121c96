package catalog

import (
	"strings"
	"time"
)

// Product is a catalog entity keyed by a case-insensitive-unique SKU.
type Product struct {
	ID          int64
	SKU         string
	Name        string
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NormalizeSKU produces the canonical form used for natural-key lookups.
func NormalizeSKU(sku string) string {
	return strings.ToLower(strings.TrimSpace(sku))
}

// ProductFilter narrows catalog list queries. String fields match as
// substrings, case-insensitively; a nil Active matches both flags.
type ProductFilter struct {
	SKU         string
	Name        string
	Description string
	Active      *bool
	Offset      int
	Limit       int
}
