// Package zakat computes the Zakat obligation from declared assets and
// liabilities in a single base currency.
//
// Every function in this package is pure: it reads its arguments, never
// performs I/O, never logs, and never fails. Malformed numeric input is
// treated as zero and a missing exchange rate converts to zero. The only
// state a Calculator holds is its purity table and clock.
package zakat

import (
	"time"

	"github.com/amirasaad/zakat/pkg/currency"
	"github.com/amirasaad/zakat/pkg/money"
	"github.com/amirasaad/zakat/pkg/units"
)

// Input is everything one calculation needs.
type Input struct {
	BaseCurrency string `json:"base_currency"`
	// HomeCurrency is an optional display currency.
	HomeCurrency string               `json:"home_currency,omitempty"`
	Assets       Assets               `json:"assets"`
	Liabilities  []Liability          `json:"liabilities,omitempty"`
	Methodology  Methodology          `json:"methodology"`
	Prices       PriceSnapshot        `json:"prices"`
	Rates        ExchangeRateSnapshot `json:"rates"`
	CryptoPrices CryptoPrices         `json:"crypto_prices,omitempty"`
}

// Calculator runs the aggregation pipeline.
type Calculator struct {
	purity *units.PurityTable
	now    func() time.Time
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithPurityTable replaces the embedded purity table.
func WithPurityTable(t *units.PurityTable) Option {
	return func(c *Calculator) {
		if t != nil {
			c.purity = t
		}
	}
}

// WithClock sets the clock used to stamp results.
func WithClock(now func() time.Time) Option {
	return func(c *Calculator) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates a Calculator with the embedded purity table and the wall clock.
func New(opts ...Option) *Calculator {
	c := &Calculator{
		purity: units.DefaultPurityTable(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Calculate runs the pipeline with a default Calculator.
func Calculate(in Input) Result {
	return New().Calculate(in)
}

// PurityTable returns the table gold holdings are valued with.
func (c *Calculator) PurityTable() *units.PurityTable {
	return c.purity
}

// GoldValue values one holding with the calculator's purity table.
func (c *Calculator) GoldValue(h GoldHolding, goldPerGramUSD, usdToBase string, jm JewelryMethod) GoldDetail {
	return goldValue(c.purity, h, money.Parse(goldPerGramUSD), money.Parse(usdToBase), jm)
}

// Calculate computes the obligation for in.
//
// The USD to base rate is resolved once and shared by every USD-priced
// category. Zakat is due on net wealth when it reaches the Nisab and the
// Hawl check is not "no".
func (c *Calculator) Calculate(in Input) Result {
	m := in.Methodology.WithDefaults()
	base := money.NormalizeCode(in.BaseCurrency).String()
	rates := in.Rates.Rates

	usdToBase := currency.ConvertToBase(money.One, currency.DefaultCurrency, base, rates).Converted
	goldPrice := money.Parse(in.Prices.GoldPerGramUSD)
	silverPrice := money.Parse(in.Prices.SilverPerGramUSD)

	gold := goldTotal(c.purity, in.Assets.Gold, goldPrice, usdToBase, m.JewelryMethod)
	silver := SilverTotal(in.Assets.Silver, silverPrice, usdToBase)
	cash := CashTotal(in.Assets.Cash, base, rates)
	crypto := CryptoTotal(in.Assets.Crypto, in.CryptoPrices, usdToBase)
	stocks := StockTotals(in.Assets.Stocks, m.StockInputMode).Zakatable
	retirement := RetirementTotal(in.Assets.Retirement, m.RetirementMethod)
	receivables := ReceivablesTotal(in.Assets.Receivables, base, rates)

	totalAssets := money.Sum(gold, silver, cash, crypto, stocks, retirement, receivables)
	totalLiabilities := LiabilitiesTotal(in.Liabilities, m.DebtDeduction, base, rates)
	netWealth := money.Max(money.Zero, money.Sub(totalAssets, totalLiabilities))

	nisab := Nisab(m.NisabBasis, in.Prices, usdToBase)
	nisabMet := netWealth.GreaterThanOrEqual(nisab.Value)

	due := money.Zero
	if nisabMet && m.HawlCheck != HawlNo {
		due = money.Mul(netWealth, money.ZakatRate)
	}

	r := Result{
		BaseCurrency:     base,
		TotalAssets:      money.Fixed2(totalAssets),
		TotalLiabilities: money.Fixed2(totalLiabilities),
		NetWealth:        money.Fixed2(netWealth),
		NisabValue:       money.Fixed2(nisab.Value),
		NisabBasis:       nisab.Basis,
		NisabMet:         nisabMet,
		ZakatDue:         money.Fixed2(due),
		ZakatRate:        money.ZakatRate.String(),
		Methodology:      m,
		Breakdown: Breakdown{
			Gold:        money.Fixed2(gold),
			Silver:      money.Fixed2(silver),
			Cash:        money.Fixed2(cash),
			Crypto:      money.Fixed2(crypto),
			Stocks:      money.Fixed2(stocks),
			Retirement:  money.Fixed2(retirement),
			Receivables: money.Fixed2(receivables),
			Liabilities: money.Fixed2(totalLiabilities),
		},
		Timestamp: c.now().UTC(),
	}

	if home := money.NormalizeCode(in.HomeCurrency).String(); home != "" && home != base {
		conv := currency.ConvertToHome(money.One, base, home, rates)
		r.Home = &HomeSummary{
			Currency:   home,
			Rate:       money.Fixed(conv.Rate, 6),
			NetWealth:  money.Fixed2(money.Mul(netWealth, conv.Rate)),
			NisabValue: money.Fixed2(money.Mul(nisab.Value, conv.Rate)),
			ZakatDue:   money.Fixed2(money.Mul(due, conv.Rate)),
		}
	}
	return r
}
