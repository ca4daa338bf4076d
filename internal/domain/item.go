package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Variant is a selectable variation of a base product, e.g. a rice grain length
// or an incense fragrance. Its name is folded into the cart/wishlist line id so
// two variants of the same base product occupy independent lines.
type Variant struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// LineID composes the unique addressable key for a collection line. It is the
// single composition point used by both the cart and wishlist services.
func LineID(baseID string, variant *Variant) string {
	if variant == nil {
		return baseID
	}
	return baseID + "-" + variant.Name
}

// Categories treated as grain products for variant labeling.
const categoryGrains = "Grains"

// VariantLabel derives the user-facing variant label for a collection line.
//
// Two paths must both be supported: lines carrying a structured variant, and
// legacy lines where the variant is baked into the display name as a
// " - "-separated suffix. Grain products (or anything named like rice) label
// their variants "Variety"; everything else uses "Fragrance".
func VariantLabel(category, name string, variant *Variant) string {
	kind := "Fragrance"
	if category == categoryGrains || strings.Contains(name, "Rice") {
		kind = "Variety"
	}

	if variant != nil {
		return kind + ": " + variant.Name
	}

	if idx := strings.Index(name, " - "); idx >= 0 {
		return kind + ": " + name[idx+3:]
	}

	return ""
}

// ItemSnapshot is the denormalized product data captured when an item enters a
// collection. It is not re-synchronized against the catalog afterwards.
type ItemSnapshot struct {
	ProductID   string          `json:"productId"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	IsOrganic   *bool           `json:"isOrganic,omitempty"`
	InStock     *bool           `json:"inStock,omitempty"`
	Variant     *Variant        `json:"selectedVariant,omitempty"`

	// StockQuantity feeds the stock-derived fallback in NormalizeStock when the
	// source record carries no explicit flag. Nil means unknown.
	StockQuantity *int `json:"-"`
}

// NormalizeOrganic resolves a possibly-absent organic flag. Absent means false.
func NormalizeOrganic(explicit *bool) bool {
	if explicit != nil {
		return *explicit
	}
	return false
}

// NormalizeStock resolves a possibly-absent in-stock flag. The priority order
// is a single auditable rule applied once at the service boundary:
// explicit flag, then legacy flag, then stock-quantity-derived, then true.
func NormalizeStock(explicit, legacy *bool, stockQuantity *int) bool {
	if explicit != nil {
		return *explicit
	}
	if legacy != nil {
		return *legacy
	}
	if stockQuantity != nil {
		return *stockQuantity > 0
	}
	return true
}
