package zakat

import (
	"github.com/amirasaad/zakat/pkg/zakat"
)

// CalculateRequest represents the request body for a calculation.
// Prices, rates and crypto prices are optional; missing ones are taken
// from the server snapshot.
type CalculateRequest struct {
	Preset       string                      `json:"preset,omitempty" validate:"omitempty,max=32"`
	BaseCurrency string                      `json:"base_currency,omitempty" validate:"omitempty,len=3,alpha"`
	HomeCurrency string                      `json:"home_currency,omitempty" validate:"omitempty,len=3,alpha"`
	Assets       zakat.Assets                `json:"assets"`
	Liabilities  []zakat.Liability           `json:"liabilities,omitempty" validate:"max=500"`
	Methodology  zakat.Methodology           `json:"methodology"`
	Prices       *zakat.PriceSnapshot        `json:"prices,omitempty"`
	Rates        *zakat.ExchangeRateSnapshot `json:"rates,omitempty"`
	CryptoPrices zakat.CryptoPrices          `json:"crypto_prices,omitempty"`
}

// ToInput builds the engine input. A preset supplies currencies and the
// stock input mode; explicit request fields win over it.
func (r CalculateRequest) ToInput() (zakat.Input, error) {
	var in zakat.Input
	if r.Preset != "" {
		p, err := zakat.PresetByID(r.Preset)
		if err != nil {
			return zakat.Input{}, err
		}
		in = p.Apply(in)
	}
	if r.BaseCurrency != "" {
		in.BaseCurrency = r.BaseCurrency
	}
	if r.HomeCurrency != "" {
		in.HomeCurrency = r.HomeCurrency
	}

	presetMode := in.Methodology.StockInputMode
	in.Methodology = r.Methodology
	if in.Methodology.StockInputMode == "" {
		in.Methodology.StockInputMode = presetMode
	}

	in.Assets = r.Assets
	in.Liabilities = r.Liabilities
	if r.Prices != nil {
		in.Prices = *r.Prices
	}
	if r.Rates != nil {
		in.Rates = *r.Rates
	}
	in.CryptoPrices = r.CryptoPrices
	return in, nil
}

// NisabQuery is the query string of the Nisab endpoint.
type NisabQuery struct {
	Currency string `query:"currency" validate:"omitempty,len=3,alpha"`
	Basis    string `query:"basis" validate:"omitempty,oneof=silver gold auto"`
}

// DefaultsResponse reports the server-side defaults a request falls back to.
type DefaultsResponse struct {
	BaseCurrency string            `json:"base_currency"`
	HomeCurrency string            `json:"home_currency,omitempty"`
	Methodology  zakat.Methodology `json:"methodology"`
	ZakatRate    string            `json:"zakat_rate"`
}
