package zakat

import (
	"github.com/amirasaad/zakat/pkg/money"
	"github.com/amirasaad/zakat/pkg/units"
	"github.com/shopspring/decimal"
)

// Threshold is the Nisab in the base currency.
type Threshold struct {
	// Value is the threshold for the basis actually used.
	Value decimal.Decimal `json:"value"`
	// Basis is silver or gold, never auto.
	Basis  NisabBasis      `json:"basis"`
	Silver decimal.Decimal `json:"silver"`
	Gold   decimal.Decimal `json:"gold"`
}

// Nisab computes both metal thresholds and selects one by basis.
// Auto picks the lower of the two and prefers silver on a tie.
func Nisab(basis NisabBasis, prices PriceSnapshot, usdToBase decimal.Decimal) Threshold {
	silver := money.Mul(money.Mul(money.Parse(prices.SilverPerGramUSD), usdToBase), units.SilverNisabGrams)
	gold := money.Mul(money.Mul(money.Parse(prices.GoldPerGramUSD), usdToBase), units.GoldNisabGrams)

	t := Threshold{Silver: silver, Gold: gold}
	switch basis {
	case NisabGold:
		t.Value, t.Basis = gold, NisabGold
	case NisabAuto:
		if silver.LessThanOrEqual(gold) {
			t.Value, t.Basis = silver, NisabSilver
		} else {
			t.Value, t.Basis = gold, NisabGold
		}
	default:
		t.Value, t.Basis = silver, NisabSilver
	}
	return t
}
