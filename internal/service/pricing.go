package service

import (
	"github.com/duka-admin/internal/constants"
	"github.com/duka-admin/internal/models"

	"github.com/shopspring/decimal"
)

// Pricer 价格计算器。
// 行总额以含税价为准：line_total = round2(quantity * unit_price)，
// 净额与税额仅作为报表维度按税率反算，不参与存储金额。
type Pricer struct {
	rate     decimal.Decimal // 标准税率（如 0.16）
	additive bool            // true 时改为税外加税（显式配置的偏离行为）
}

// NewPricer 创建价格计算器，ratePercent 为标准税率百分数（如 16）。
func NewPricer(ratePercent int, additive bool) *Pricer {
	if ratePercent < 0 {
		ratePercent = 0
	}
	return &Pricer{
		rate:     decimal.NewFromInt(int64(ratePercent)).Div(decimal.NewFromInt(100)),
		additive: additive,
	}
}

// LineBreakdown 单行金额分解
type LineBreakdown struct {
	Gross models.Money
	Net   models.Money
	Tax   models.Money
}

// OrderTotals 订单级金额汇总
type OrderTotals struct {
	NetSubtotal models.Money
	TaxTotal    models.Money
	GrossTotal  models.Money
}

// LineTotal 计算行总额（含税）。
func (p *Pricer) LineTotal(quantity int, unitPrice models.Money, taxClass string) models.Money {
	gross := unitPrice.Decimal.Mul(decimal.NewFromInt(int64(quantity)))
	if p.additive && taxClass == constants.TaxClassStandard16 {
		gross = gross.Mul(decimal.NewFromInt(1).Add(p.rate))
	}
	return models.NewMoneyFromDecimal(gross)
}

// Decompose 将含税行总额按税类反算为净额与税额。
func (p *Pricer) Decompose(gross models.Money, taxClass string) LineBreakdown {
	g := gross.Decimal.Round(2)
	if taxClass != constants.TaxClassStandard16 || p.rate.IsZero() {
		return LineBreakdown{
			Gross: models.NewMoneyFromDecimal(g),
			Net:   models.NewMoneyFromDecimal(g),
			Tax:   models.NewMoneyFromDecimal(decimal.Zero),
		}
	}
	net := g.Div(decimal.NewFromInt(1).Add(p.rate)).Round(2)
	tax := g.Sub(net).Round(2)
	return LineBreakdown{
		Gross: models.NewMoneyFromDecimal(g),
		Net:   models.NewMoneyFromDecimal(net),
		Tax:   models.NewMoneyFromDecimal(tax),
	}
}

// PriceItems 为订单项计算行总额并返回订单级汇总。
// 每行的 LineTotal 就地写回 items。
func (p *Pricer) PriceItems(items []models.OrderItem) OrderTotals {
	net := decimal.Zero
	tax := decimal.Zero
	gross := decimal.Zero
	for i := range items {
		items[i].LineTotal = p.LineTotal(items[i].Quantity, items[i].UnitPrice, items[i].TaxClass)
		breakdown := p.Decompose(items[i].LineTotal, items[i].TaxClass)
		net = net.Add(breakdown.Net.Decimal)
		tax = tax.Add(breakdown.Tax.Decimal)
		gross = gross.Add(items[i].LineTotal.Decimal)
	}
	return OrderTotals{
		NetSubtotal: models.NewMoneyFromDecimal(net),
		TaxTotal:    models.NewMoneyFromDecimal(tax),
		GrossTotal:  models.NewMoneyFromDecimal(gross),
	}
}

// TotalsOf 对已定价的订单项计算订单级汇总（不改写行总额）。
func (p *Pricer) TotalsOf(items []models.OrderItem) OrderTotals {
	net := decimal.Zero
	tax := decimal.Zero
	gross := decimal.Zero
	for i := range items {
		breakdown := p.Decompose(items[i].LineTotal, items[i].TaxClass)
		net = net.Add(breakdown.Net.Decimal)
		tax = tax.Add(breakdown.Tax.Decimal)
		gross = gross.Add(items[i].LineTotal.Decimal)
	}
	return OrderTotals{
		NetSubtotal: models.NewMoneyFromDecimal(net),
		TaxTotal:    models.NewMoneyFromDecimal(tax),
		GrossTotal:  models.NewMoneyFromDecimal(gross),
	}
}
