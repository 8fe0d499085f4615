package zakat

import (
	"github.com/amirasaad/zakat/pkg/currency"
	"github.com/amirasaad/zakat/pkg/money"
	"github.com/amirasaad/zakat/pkg/units"
	"github.com/shopspring/decimal"
)

// SimplifiedZakatableRatio is the asset-proxy share of a long-term stock
// holding used by some estimation methods. It is not applied by any mode.
var SimplifiedZakatableRatio = decimal.RequireFromString("0.30")

// GoldDetail is the valuation of one gold holding.
type GoldDetail struct {
	units.GoldGrams
	ValueInBase decimal.Decimal `json:"value_in_base"`
	Zakatable   bool            `json:"zakatable"`
}

// GoldValue values one holding with the embedded purity table.
func GoldValue(h GoldHolding, goldPerGramUSD, usdToBase decimal.Decimal, jm JewelryMethod) GoldDetail {
	return goldValue(units.DefaultPurityTable(), h, goldPerGramUSD, usdToBase, jm)
}

// GoldTotal sums the zakatable value of all gold holdings with the embedded purity table.
func GoldTotal(holdings []GoldHolding, goldPerGramUSD, usdToBase decimal.Decimal, jm JewelryMethod) decimal.Decimal {
	return goldTotal(units.DefaultPurityTable(), holdings, goldPerGramUSD, usdToBase, jm)
}

func goldValue(
	table *units.PurityTable,
	h GoldHolding,
	goldPerGramUSD, usdToBase decimal.Decimal,
	jm JewelryMethod,
) GoldDetail {
	weight := money.Parse(h.Weight)
	if !weight.IsPositive() {
		return GoldDetail{GoldGrams: units.GoldGrams{Gross: money.Zero, Purity: money.Zero, Pure: money.Zero}}
	}

	karat := h.Karat
	if karat <= 0 {
		karat = units.DefaultKarat
	}
	var custom decimal.NullDecimal
	if h.PuritySource == units.Custom {
		if ratio := money.Parse(h.CustomRatio); ratio.IsPositive() {
			custom = decimal.NewNullDecimal(ratio)
		}
	}

	grams := table.PureGoldGrams(weight, h.Unit, h.PuritySource, karat, custom)
	return GoldDetail{
		GoldGrams:   grams,
		ValueInBase: money.Mul(money.Mul(grams.Pure, goldPerGramUSD), usdToBase),
		// Under "other" the whole set is treated as customary-use jewelry.
		Zakatable: jm != JewelryOther,
	}
}

func goldTotal(
	table *units.PurityTable,
	holdings []GoldHolding,
	goldPerGramUSD, usdToBase decimal.Decimal,
	jm JewelryMethod,
) decimal.Decimal {
	total := money.Zero
	for _, h := range holdings {
		if d := goldValue(table, h, goldPerGramUSD, usdToBase, jm); d.Zakatable {
			total = money.Add(total, d.ValueInBase)
		}
	}
	return total
}

// SilverTotal values every silver holding in full.
func SilverTotal(holdings []SilverHolding, silverPerGramUSD, usdToBase decimal.Decimal) decimal.Decimal {
	total := money.Zero
	for _, h := range holdings {
		grams := money.Parse(h.WeightGrams)
		total = money.Add(total, money.Mul(money.Mul(grams, silverPerGramUSD), usdToBase))
	}
	return total
}

// CashTotal converts every account to base and sums them.
func CashTotal(accounts []CashAccount, base string, rates currency.Rates) decimal.Decimal {
	pairs := make([]currency.Pair, len(accounts))
	for i, a := range accounts {
		pairs[i] = currency.Pair{Amount: a.Amount, Currency: a.Currency}
	}
	return currency.Total(pairs, base, rates)
}

// CryptoValue values one holding. Lost wallets are worth zero.
func CryptoValue(h CryptoHolding, prices CryptoPrices, usdToBase decimal.Decimal) decimal.Decimal {
	if h.WalletType == WalletLost {
		return money.Zero
	}
	price, ok := prices[h.CoinID]
	if !ok {
		price = h.PriceUSD
	}
	return money.Mul(money.Mul(money.Parse(h.Amount), money.Parse(price)), usdToBase)
}

// CryptoTotal sums the value of all crypto holdings.
func CryptoTotal(holdings []CryptoHolding, prices CryptoPrices, usdToBase decimal.Decimal) decimal.Decimal {
	total := money.Zero
	for _, h := range holdings {
		total = money.Add(total, CryptoValue(h, prices, usdToBase))
	}
	return total
}

// StockDetail is the zakatable amount and the zakat due on one stock holding.
type StockDetail struct {
	Zakatable decimal.Decimal `json:"zakatable"`
	Due       decimal.Decimal `json:"zakat_due"`
}

func stockMode(h StockHolding, fallback StockInputMode) StockInputMode {
	if h.Mode.Valid() {
		return h.Mode
	}
	if fallback.Valid() {
		return fallback
	}
	return StockQuick
}

// stockValue is the declared value read for the holding's mode.
func stockValue(h StockHolding, fallback StockInputMode) decimal.Decimal {
	if stockMode(h, fallback) == StockQuick {
		return money.Parse(h.TotalValue)
	}
	return money.Parse(h.MarketValue)
}

// StockZakat values one holding. The whole declared value is zakatable in
// both modes regardless of the holding type. fallback is used when the
// holding does not carry its own mode.
func StockZakat(h StockHolding, fallback StockInputMode) StockDetail {
	zakatable := stockValue(h, fallback)
	return StockDetail{Zakatable: zakatable, Due: money.Mul(zakatable, money.ZakatRate)}
}

// StockTotals sums zakatable value and zakat due across holdings.
func StockTotals(holdings []StockHolding, fallback StockInputMode) StockDetail {
	total := StockDetail{Zakatable: money.Zero, Due: money.Zero}
	for _, h := range holdings {
		d := StockZakat(h, fallback)
		total.Zakatable = money.Add(total.Zakatable, d.Zakatable)
		total.Due = money.Add(total.Due, d.Due)
	}
	return total
}

// StockMarketValue sums the declared value of all holdings.
func StockMarketValue(holdings []StockHolding, fallback StockInputMode) decimal.Decimal {
	total := money.Zero
	for _, h := range holdings {
		total = money.Add(total, stockValue(h, fallback))
	}
	return total
}

// RetirementNet is the balance left after the withdrawal penalty and tax.
// A combined deduction of 100% or more leaves nothing.
func RetirementNet(a RetirementAccount) decimal.Decimal {
	combined := money.Add(money.Percent(money.Parse(a.PenaltyPercent)), money.Percent(money.Parse(a.TaxPercent)))
	if combined.GreaterThanOrEqual(money.One) {
		return money.Zero
	}
	return money.Mul(money.Parse(a.Balance), money.Sub(money.One, combined))
}

// RetirementTotal sums the net value of accessible accounts. The delayed
// method defers everything to withdrawal.
func RetirementTotal(accounts []RetirementAccount, method RetirementMethod) decimal.Decimal {
	if method == RetirementDelayed {
		return money.Zero
	}
	total := money.Zero
	for _, a := range accounts {
		if !a.Accessible {
			continue
		}
		total = money.Add(total, RetirementNet(a))
	}
	return total
}

// ReceivablesTotal sums strong receivables converted to base. Doubtful debts count zero.
func ReceivablesTotal(receivables []Receivable, base string, rates currency.Rates) decimal.Decimal {
	total := money.Zero
	for _, r := range receivables {
		if r.Reliability == ReliabilityDoubtful {
			continue
		}
		total = money.Add(total, currency.ConvertToBase(money.Parse(r.Amount), r.Currency, base, rates).Converted)
	}
	return total
}
