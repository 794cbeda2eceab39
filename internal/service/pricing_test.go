package service

import (
	"testing"

	"github.com/furniro/storefront/internal/config"
	"github.com/furniro/storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func priceLine(price string, qty int) PriceLine {
	return PriceLine{UnitPrice: models.MustMoney(price), Quantity: qty}
}

func TestPricingCalculatorOrderExample(t *testing.T) {
	got := NewDefaultPricingCalculator().Calculate([]PriceLine{priceLine("50", 3)})

	assert.Equal(t, "150.00", got.ItemsPrice.String())
	assert.Equal(t, "50.00", got.ShippingPrice.String())
	assert.Equal(t, "22.50", got.TaxPrice.String())
	assert.Equal(t, "222.50", got.TotalPrice.String())
}

func TestPricingCalculatorShippingBoundary(t *testing.T) {
	calc := NewDefaultPricingCalculator()

	atThreshold := calc.Calculate([]PriceLine{priceLine("200", 1)})
	assert.Equal(t, "50.00", atThreshold.ShippingPrice.String(), "exactly 200 still pays shipping")

	aboveThreshold := calc.Calculate([]PriceLine{priceLine("200.01", 1)})
	assert.Equal(t, "0.00", aboveThreshold.ShippingPrice.String(), "above 200 ships free")
	assert.Equal(t, "230.01", aboveThreshold.TotalPrice.String())
}

func TestPricingCalculatorTaxRoundsHalfUp(t *testing.T) {
	calc := NewDefaultPricingCalculator()

	assert.Equal(t, "15.00", calc.Calculate([]PriceLine{priceLine("100", 1)}).TaxPrice.String())
	// 33.33 * 0.15 = 4.9995
	assert.Equal(t, "5.00", calc.Calculate([]PriceLine{priceLine("33.33", 1)}).TaxPrice.String())
	// 0.10 * 0.15 = 0.015
	assert.Equal(t, "0.02", calc.Calculate([]PriceLine{priceLine("0.10", 1)}).TaxPrice.String())
}

func TestPricingCalculatorIsOrderIndependent(t *testing.T) {
	calc := NewDefaultPricingCalculator()
	lines := []PriceLine{priceLine("19.99", 3), priceLine("120.50", 1), priceLine("0.33", 7), priceLine("45", 2)}
	reversed := make([]PriceLine, len(lines))
	for i := range lines {
		reversed[len(lines)-1-i] = lines[i]
	}

	first := calc.Calculate(lines)
	second := calc.Calculate(reversed)
	again := calc.Calculate(lines)

	assert.True(t, first.Matches(second))
	assert.True(t, first.Matches(again), "identical inputs yield identical outputs")
	assert.Equal(t, "272.78", first.ItemsPrice.String())
}

func TestPricingCalculatorEmptyAndNonPositiveLines(t *testing.T) {
	got := NewDefaultPricingCalculator().Calculate([]PriceLine{priceLine("10", 0), priceLine("10", -2)})
	assert.Equal(t, "0.00", got.ItemsPrice.String())
	assert.Equal(t, "50.00", got.ShippingPrice.String())
	assert.Equal(t, "50.00", got.TotalPrice.String())
}

func TestNewPricingCalculatorFromConfig(t *testing.T) {
	calc := NewPricingCalculator(config.PricingConfig{TaxRate: "0.10", FreeShippingThreshold: "100", FlatShipping: "9.99"})
	got := calc.Calculate([]PriceLine{priceLine("40", 2)})
	assert.Equal(t, "8.00", got.TaxPrice.String())
	assert.Equal(t, "9.99", got.ShippingPrice.String())
	assert.Equal(t, "97.99", got.TotalPrice.String())

	fallback := NewPricingCalculator(config.PricingConfig{TaxRate: "abc", FreeShippingThreshold: "-1"})
	require.NotNil(t, fallback)
	assert.True(t, fallback.taxRate.Equal(defaultTaxRate))
	assert.True(t, fallback.freeShippingThreshold.Equal(defaultFreeShippingThreshold))
	assert.True(t, fallback.flatShipping.Equal(defaultFlatShipping))
}

func TestPricingCalculatorCalculateCart(t *testing.T) {
	items := []models.CartItem{
		{ProductID: 1, Price: models.MustMoney("150"), Quantity: 1},
		{ProductID: 2, Price: models.MustMoney("30"), Quantity: 2},
	}
	got := NewDefaultPricingCalculator().CalculateCart(items)
	assert.Equal(t, "210.00", got.ItemsPrice.String())
	assert.Equal(t, "0.00", got.ShippingPrice.String())
	assert.Equal(t, "31.50", got.TaxPrice.String())
	assert.Equal(t, "241.50", got.TotalPrice.String())
}
