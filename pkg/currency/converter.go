package currency

import (
	"time"

	"github.com/amirasaad/zakat/pkg/money"
	"github.com/shopspring/decimal"
)

// Rates maps a currency code to the number of units one USD buys.
type Rates map[string]string

// Rate returns the USD-pivot rate for code, or zero when it is missing.
func (r Rates) Rate(code string) decimal.Decimal {
	if r == nil {
		return money.Zero
	}
	return money.Parse(r[money.NormalizeCode(code).String()])
}

// Conversion is the result of converting an amount between two currencies.
type Conversion struct {
	Converted decimal.Decimal
	Rate      decimal.Decimal
}

// ConvertToBase converts amount from one currency to base.
// The cross rate is rates[base] / rates[from]; a missing or zero rate
// yields a zero conversion with a zero rate.
func ConvertToBase(amount decimal.Decimal, from, base string, rates Rates) Conversion {
	from = money.NormalizeCode(from).String()
	base = money.NormalizeCode(base).String()
	if from == base {
		return Conversion{Converted: amount, Rate: money.One}
	}

	fromRate := rates.Rate(from)
	baseRate := rates.Rate(base)
	if fromRate.IsZero() || baseRate.IsZero() {
		return Conversion{Converted: money.Zero, Rate: money.Zero}
	}

	cross := money.Div(baseRate, fromRate)
	return Conversion{Converted: money.Mul(amount, cross), Rate: cross}
}

// ConvertToHome converts an amount already in base to the home currency.
func ConvertToHome(amountInBase decimal.Decimal, base, home string, rates Rates) Conversion {
	return ConvertToBase(amountInBase, base, home, rates)
}

// Pair is an amount in a given currency.
type Pair struct {
	Amount   string
	Currency string
}

// Total sums pairs converted to base.
func Total(pairs []Pair, base string, rates Rates) decimal.Decimal {
	sum := money.Zero
	for _, p := range pairs {
		sum = money.Add(sum, ConvertToBase(money.Parse(p.Amount), p.Currency, base, rates).Converted)
	}
	return sum
}

// RateSource records where an exchange rate came from.
type RateSource string

const (
	RateSourceAPI       RateSource = "api"
	RateSourceCached    RateSource = "cached"
	RateSourceCommitted RateSource = "committed"
	RateSourceManual    RateSource = "manual"
)

// Valid reports whether s is a known rate source.
func (s RateSource) Valid() bool {
	switch s {
	case RateSourceAPI, RateSourceCached, RateSourceCommitted, RateSourceManual:
		return true
	}
	return false
}

// Refreshed holds the display projection of a converted amount.
type Refreshed struct {
	ConvertedToBase string     `json:"converted_to_base"`
	ExchangeRate    string     `json:"exchange_rate"`
	RateSource      RateSource `json:"rate_source"`
	RateTimestamp   time.Time  `json:"rate_timestamp"`
}

// Refresh recomputes the display projection of amount in from converted to base.
func Refresh(amount, from, base string, rates Rates, source RateSource, now time.Time) Refreshed {
	c := ConvertToBase(money.Parse(amount), from, base, rates)
	return Refreshed{
		ConvertedToBase: money.Fixed2(c.Converted),
		ExchangeRate:    money.Fixed(c.Rate, 6),
		RateSource:      source,
		RateTimestamp:   now.UTC(),
	}
}
