package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestLineID_NoVariant(t *testing.T) {
	if got := LineID("rice", nil); got != "rice" {
		t.Errorf("expected 'rice', got '%s'", got)
	}
}

func TestLineID_WithVariant(t *testing.T) {
	v := &Variant{Name: "Indrayani Full", Price: decimal.NewFromInt(100)}
	if got := LineID("rice", v); got != "rice-Indrayani Full" {
		t.Errorf("expected 'rice-Indrayani Full', got '%s'", got)
	}
}

func TestLineID_Deterministic(t *testing.T) {
	v := &Variant{Name: "Shakti Full", Price: decimal.NewFromInt(100)}
	first := LineID("rice", v)
	second := LineID("rice", v)
	if first != second {
		t.Errorf("expected identical line ids, got '%s' and '%s'", first, second)
	}
}

func TestLineID_DistinctVariantsDistinctLines(t *testing.T) {
	a := LineID("rice", &Variant{Name: "Indrayani Full"})
	b := LineID("rice", &Variant{Name: "Shakti Full"})
	if a == b {
		t.Errorf("expected distinct line ids for distinct variants, both were '%s'", a)
	}
}

func TestVariantLabel_GrainsCategory(t *testing.T) {
	v := &Variant{Name: "Indrayani Full"}
	got := VariantLabel("Grains", "Premium Rice", v)
	if got != "Variety: Indrayani Full" {
		t.Errorf("expected 'Variety: Indrayani Full', got '%s'", got)
	}
}

func TestVariantLabel_RiceNameOutsideGrains(t *testing.T) {
	v := &Variant{Name: "Shakti Half"}
	got := VariantLabel("Specials", "Nareshwadi Rice", v)
	if got != "Variety: Shakti Half" {
		t.Errorf("expected 'Variety: Shakti Half', got '%s'", got)
	}
}

func TestVariantLabel_FragranceFallback(t *testing.T) {
	v := &Variant{Name: "Sandalwood"}
	got := VariantLabel("Incense", "Agarbatti", v)
	if got != "Fragrance: Sandalwood" {
		t.Errorf("expected 'Fragrance: Sandalwood', got '%s'", got)
	}
}

func TestVariantLabel_LegacyCompositeName(t *testing.T) {
	got := VariantLabel("Incense", "Agarbatti - Lavender", nil)
	if got != "Fragrance: Lavender" {
		t.Errorf("expected 'Fragrance: Lavender', got '%s'", got)
	}
}

func TestVariantLabel_LegacyCompositeSplitsOnFirstSeparator(t *testing.T) {
	got := VariantLabel("Grains", "Rice - Indrayani - Full", nil)
	if got != "Variety: Indrayani - Full" {
		t.Errorf("expected 'Variety: Indrayani - Full', got '%s'", got)
	}
}

func TestVariantLabel_NoVariantNoSuffix(t *testing.T) {
	if got := VariantLabel("Vegetables", "Tomato", nil); got != "" {
		t.Errorf("expected empty label, got '%s'", got)
	}
}

func TestNormalizeOrganic(t *testing.T) {
	truth := true
	if !NormalizeOrganic(&truth) {
		t.Error("explicit true should stay true")
	}
	if NormalizeOrganic(nil) {
		t.Error("absent organic flag should default to false")
	}
}

func TestNormalizeStock_ExplicitWins(t *testing.T) {
	explicit := false
	legacy := true
	qty := 5
	if NormalizeStock(&explicit, &legacy, &qty) {
		t.Error("explicit false should win over legacy and quantity")
	}
}

func TestNormalizeStock_LegacyFallback(t *testing.T) {
	legacy := false
	qty := 5
	if NormalizeStock(nil, &legacy, &qty) {
		t.Error("legacy false should win over quantity")
	}
}

func TestNormalizeStock_QuantityDerived(t *testing.T) {
	zero := 0
	five := 5
	if NormalizeStock(nil, nil, &zero) {
		t.Error("zero stock quantity should derive false")
	}
	if !NormalizeStock(nil, nil, &five) {
		t.Error("positive stock quantity should derive true")
	}
}

func TestNormalizeStock_DefaultTrue(t *testing.T) {
	if !NormalizeStock(nil, nil, nil) {
		t.Error("fully absent stock information should default to true")
	}
}
