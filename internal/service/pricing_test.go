package service

import (
	"testing"

	"github.com/duka-admin/internal/constants"
	"github.com/duka-admin/internal/models"

	"github.com/shopspring/decimal"
)

func TestLineTotalGrossFirst(t *testing.T) {
	pricer := NewPricer(16, false)
	total := pricer.LineTotal(3, models.NewMoneyFromDecimal(decimal.NewFromInt(100)), constants.TaxClassStandard16)
	if !total.Decimal.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("expected 300, got %s", total.String())
	}
}

func TestLineTotalAdditiveMode(t *testing.T) {
	pricer := NewPricer(16, true)
	total := pricer.LineTotal(1, models.NewMoneyFromDecimal(decimal.NewFromInt(100)), constants.TaxClassStandard16)
	if !total.Decimal.Equal(decimal.NewFromInt(116)) {
		t.Fatalf("expected 116, got %s", total.String())
	}
	// 零税率行在加税模式下不受影响
	total = pricer.LineTotal(1, models.NewMoneyFromDecimal(decimal.NewFromInt(100)), constants.TaxClassZeroRated)
	if !total.Decimal.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected 100, got %s", total.String())
	}
}

func TestDecomposeStandardRate(t *testing.T) {
	pricer := NewPricer(16, false)
	breakdown := pricer.Decompose(models.NewMoneyFromDecimal(decimal.NewFromInt(300)), constants.TaxClassStandard16)

	expectedNet := decimal.RequireFromString("258.62")
	expectedTax := decimal.RequireFromString("41.38")
	if !breakdown.Net.Decimal.Equal(expectedNet) {
		t.Fatalf("expected net %s, got %s", expectedNet.String(), breakdown.Net.String())
	}
	if !breakdown.Tax.Decimal.Equal(expectedTax) {
		t.Fatalf("expected tax %s, got %s", expectedTax.String(), breakdown.Tax.String())
	}
	if !breakdown.Net.Decimal.Add(breakdown.Tax.Decimal).Equal(breakdown.Gross.Decimal) {
		t.Fatalf("net + tax must reconcile to gross, got %s + %s != %s",
			breakdown.Net.String(), breakdown.Tax.String(), breakdown.Gross.String())
	}
}

func TestDecomposeZeroRatedAndExempted(t *testing.T) {
	pricer := NewPricer(16, false)
	for _, taxClass := range []string{constants.TaxClassZeroRated, constants.TaxClassExempted} {
		breakdown := pricer.Decompose(models.NewMoneyFromDecimal(decimal.NewFromInt(300)), taxClass)
		if !breakdown.Net.Decimal.Equal(decimal.NewFromInt(300)) {
			t.Fatalf("tax class %s: expected net 300, got %s", taxClass, breakdown.Net.String())
		}
		if !breakdown.Tax.Decimal.IsZero() {
			t.Fatalf("tax class %s: expected zero tax, got %s", taxClass, breakdown.Tax.String())
		}
	}
}

func TestPriceItemsMixedTaxClasses(t *testing.T) {
	pricer := NewPricer(16, false)
	items := []models.OrderItem{
		{Quantity: 3, UnitPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(100)), TaxClass: constants.TaxClassStandard16},
		{Quantity: 2, UnitPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(50)), TaxClass: constants.TaxClassZeroRated},
	}
	totals := pricer.PriceItems(items)

	if !items[0].LineTotal.Decimal.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("expected line total 300, got %s", items[0].LineTotal.String())
	}
	if !items[1].LineTotal.Decimal.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected line total 100, got %s", items[1].LineTotal.String())
	}
	if !totals.GrossTotal.Decimal.Equal(decimal.NewFromInt(400)) {
		t.Fatalf("expected gross total 400, got %s", totals.GrossTotal.String())
	}
	expectedNet := decimal.RequireFromString("358.62")
	expectedTax := decimal.RequireFromString("41.38")
	if !totals.NetSubtotal.Decimal.Equal(expectedNet) {
		t.Fatalf("expected net subtotal %s, got %s", expectedNet.String(), totals.NetSubtotal.String())
	}
	if !totals.TaxTotal.Decimal.Equal(expectedTax) {
		t.Fatalf("expected tax total %s, got %s", expectedTax.String(), totals.TaxTotal.String())
	}
}

func TestDecomposeRoundsToTwoPlaces(t *testing.T) {
	pricer := NewPricer(16, false)
	breakdown := pricer.Decompose(models.NewMoneyFromDecimal(decimal.NewFromInt(100)), constants.TaxClassStandard16)
	if !breakdown.Net.Decimal.Equal(decimal.RequireFromString("86.21")) {
		t.Fatalf("expected net 86.21, got %s", breakdown.Net.String())
	}
	if !breakdown.Tax.Decimal.Equal(decimal.RequireFromString("13.79")) {
		t.Fatalf("expected tax 13.79, got %s", breakdown.Tax.String())
	}
}
