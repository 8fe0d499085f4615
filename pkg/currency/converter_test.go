package currency_test

import (
	"testing"
	"time"

	"github.com/amirasaad/zakat/pkg/currency"
	"github.com/amirasaad/zakat/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRates = currency.Rates{
	"USD": "1",
	"SGD": "1.35",
	"INR": "83.33",
	"EUR": "0.92",
	"GBP": "0.79",
}

func TestConvertToBase(t *testing.T) {
	tests := []struct {
		name      string
		amount    string
		from      string
		base      string
		rates     currency.Rates
		converted string
		rate      string
	}{
		{"same currency short-circuits", "100000", "SGD", "SGD", testRates, "100000.00", "1.000000"},
		{"same currency ignores empty table", "42.5", "XYZ", "XYZ", nil, "42.50", "1.000000"},
		{"usd to sgd", "5000", "USD", "SGD", testRates, "6750.00", "1.350000"},
		{"codes are case-insensitive", "5000", "usd", " sgd", testRates, "6750.00", "1.350000"},
		{"inr to sgd", "800000", "INR", "SGD", testRates, "12960.52", "0.016201"},
		{"eur to sgd", "2500", "EUR", "SGD", testRates, "3668.48", "1.467391"},
		{"missing from rate", "100", "JPY", "SGD", testRates, "0.00", "0.000000"},
		{"missing base rate", "100", "SGD", "JPY", testRates, "0.00", "0.000000"},
		{"zero rate", "100", "USD", "SGD", currency.Rates{"USD": "1", "SGD": "0"}, "0.00", "0.000000"},
		{"nil table", "100", "USD", "SGD", nil, "0.00", "0.000000"},
		{"malformed amount", "abc", "USD", "SGD", testRates, "0.00", "1.350000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := currency.ConvertToBase(money.Parse(tt.amount), tt.from, tt.base, tt.rates)
			assert.Equal(t, tt.converted, money.Fixed2(got.Converted))
			assert.Equal(t, tt.rate, money.Fixed(got.Rate, 6))
		})
	}
}

func TestConvertToBase_IdentityForAnyTable(t *testing.T) {
	amounts := []string{"0", "0.01", "123456789.123456789", "-5"}
	tables := []currency.Rates{nil, {}, testRates, {"SGD": "0"}}

	for _, a := range amounts {
		for _, table := range tables {
			x := money.Parse(a)
			got := currency.ConvertToBase(x, "SGD", "SGD", table)
			assert.True(t, got.Converted.Equal(x), "amount %s", a)
			assert.True(t, got.Rate.Equal(money.One))
		}
	}
}

func TestConvertToBase_ConsistentWithUSDPivot(t *testing.T) {
	pairs := [][2]string{{"INR", "SGD"}, {"EUR", "GBP"}, {"SGD", "INR"}, {"GBP", "EUR"}}
	for _, p := range pairs {
		t.Run(p[0]+"->"+p[1], func(t *testing.T) {
			amount := money.Parse("98765.4321")
			direct := currency.ConvertToBase(amount, p[0], p[1], testRates).Converted
			viaUSD := currency.ConvertToBase(
				currency.ConvertToBase(amount, p[0], "USD", testRates).Converted,
				"USD", p[1], testRates,
			).Converted
			assert.True(t, money.Equal(direct.String(), viaUSD.String(), "0.000001"),
				"direct %s via USD %s", direct, viaUSD)
		})
	}
}

func TestConvertToHome(t *testing.T) {
	got := currency.ConvertToHome(money.Parse("1000"), "SGD", "INR", testRates)
	assert.Equal(t, "61725.93", money.Fixed2(got.Converted))

	same := currency.ConvertToHome(money.Parse("1000"), "SGD", "SGD", testRates)
	assert.Equal(t, "1000", same.Converted.String())
}

func TestTotal_MultiCurrencyScenario(t *testing.T) {
	pairs := []currency.Pair{
		{Amount: "100000", Currency: "SGD"},
		{Amount: "800000", Currency: "INR"},
		{Amount: "5000", Currency: "USD"},
		{Amount: "2500", Currency: "EUR"},
	}

	total := currency.Total(pairs, "SGD", testRates)
	assert.Equal(t, "123379.00", money.Fixed2(total))

	reversed := []currency.Pair{pairs[3], pairs[2], pairs[1], pairs[0]}
	assert.True(t, total.Equal(currency.Total(reversed, "SGD", testRates)), "total must not depend on order")

	assert.True(t, currency.Total(nil, "SGD", testRates).IsZero())
}

func TestTotal_ManySmallAmountsDoNotDrift(t *testing.T) {
	pairs := make([]currency.Pair, 10000)
	for i := range pairs {
		pairs[i] = currency.Pair{Amount: "0.01", Currency: "USD"}
	}
	assert.Equal(t, "100", currency.Total(pairs, "USD", testRates).String())
}

func TestRefresh(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.FixedZone("SGT", 8*3600))

	got := currency.Refresh("800000", "INR", "SGD", testRates, currency.RateSourceCommitted, now)
	assert.Equal(t, "12960.52", got.ConvertedToBase)
	assert.Equal(t, "0.016201", got.ExchangeRate)
	assert.Equal(t, currency.RateSourceCommitted, got.RateSource)
	assert.Equal(t, time.UTC, got.RateTimestamp.Location())
	assert.True(t, got.RateTimestamp.Equal(now))

	missing := currency.Refresh("10", "JPY", "SGD", testRates, currency.RateSourceManual, now)
	assert.Equal(t, "0.00", missing.ConvertedToBase)
	assert.Equal(t, "0.000000", missing.ExchangeRate)
}

func TestRateSource(t *testing.T) {
	for _, s := range []currency.RateSource{
		currency.RateSourceAPI,
		currency.RateSourceCached,
		currency.RateSourceCommitted,
		currency.RateSourceManual,
	} {
		require.True(t, s.Valid(), string(s))
	}
	assert.False(t, currency.RateSource("live").Valid())
}
