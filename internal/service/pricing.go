package service

import (
	"strings"

	"github.com/furniro/storefront/internal/config"
	"github.com/furniro/storefront/internal/logger"
	"github.com/furniro/storefront/internal/models"

	"github.com/shopspring/decimal"
)

var (
	defaultTaxRate               = decimal.RequireFromString("0.15")
	defaultFreeShippingThreshold = decimal.NewFromInt(200)
	defaultFlatShipping          = decimal.NewFromInt(50)
)

// PriceLine 计价行
type PriceLine struct {
	UnitPrice models.Money
	Quantity  int
}

// PriceBreakdown 订单金额明细
type PriceBreakdown struct {
	ItemsPrice    models.Money `json:"itemsPrice"`
	ShippingPrice models.Money `json:"shippingPrice"`
	TaxPrice      models.Money `json:"taxPrice"`
	TotalPrice    models.Money `json:"totalPrice"`
}

// PricingCalculator 订单计价（纯函数，无副作用）
type PricingCalculator struct {
	taxRate               decimal.Decimal
	freeShippingThreshold decimal.Decimal
	flatShipping          decimal.Decimal
}

// NewPricingCalculator 根据配置创建计价器，非法配置回退默认值
func NewPricingCalculator(cfg config.PricingConfig) *PricingCalculator {
	return &PricingCalculator{
		taxRate:               parsePricingDecimal("tax_rate", cfg.TaxRate, defaultTaxRate),
		freeShippingThreshold: parsePricingDecimal("free_shipping_threshold", cfg.FreeShippingThreshold, defaultFreeShippingThreshold),
		flatShipping:          parsePricingDecimal("flat_shipping", cfg.FlatShipping, defaultFlatShipping),
	}
}

// NewDefaultPricingCalculator 使用默认税率与运费规则
func NewDefaultPricingCalculator() *PricingCalculator {
	return &PricingCalculator{
		taxRate:               defaultTaxRate,
		freeShippingThreshold: defaultFreeShippingThreshold,
		flatShipping:          defaultFlatShipping,
	}
}

// Calculate 计算金额明细
// 商品小计不做中间取整；税费按 2 位小数四舍五入（half-up）；超过包邮门槛免运费
func (p *PricingCalculator) Calculate(lines []PriceLine) PriceBreakdown {
	itemsPrice := decimal.Zero
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		itemsPrice = itemsPrice.Add(line.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	shippingPrice := p.flatShipping
	if itemsPrice.GreaterThan(p.freeShippingThreshold) {
		shippingPrice = decimal.Zero
	}
	taxPrice := itemsPrice.Mul(p.taxRate).Round(2)
	totalPrice := itemsPrice.Add(shippingPrice).Add(taxPrice).Round(2)

	return PriceBreakdown{
		ItemsPrice:    models.NewMoneyFromDecimal(itemsPrice),
		ShippingPrice: models.NewMoneyFromDecimal(shippingPrice),
		TaxPrice:      models.NewMoneyFromDecimal(taxPrice),
		TotalPrice:    models.NewMoneyFromDecimal(totalPrice),
	}
}

// CalculateCart 计算购物车金额明细
func (p *PricingCalculator) CalculateCart(items []models.CartItem) PriceBreakdown {
	lines := make([]PriceLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, PriceLine{UnitPrice: item.Price, Quantity: item.Quantity})
	}
	return p.Calculate(lines)
}

// Matches 判断客户端提交的金额是否与服务端一致
func (b PriceBreakdown) Matches(other PriceBreakdown) bool {
	return b.ItemsPrice.Equal(other.ItemsPrice.Decimal) &&
		b.ShippingPrice.Equal(other.ShippingPrice.Decimal) &&
		b.TaxPrice.Equal(other.TaxPrice.Decimal) &&
		b.TotalPrice.Equal(other.TotalPrice.Decimal)
}

func parsePricingDecimal(field, raw string, fallback decimal.Decimal) decimal.Decimal {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return fallback
	}
	value, err := decimal.NewFromString(trimmed)
	if err != nil || value.IsNegative() {
		logger.Warnw("pricing_config_invalid", "field", field, "value", raw, "fallback", fallback.String())
		return fallback
	}
	return value
}
