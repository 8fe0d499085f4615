package zakat

import (
	"time"

	"github.com/amirasaad/zakat/pkg/currency"
)

// PriceSnapshot holds metal spot prices per gram in USD.
type PriceSnapshot struct {
	GoldPerGramUSD   string    `json:"gold_per_gram_usd" yaml:"gold_per_gram_usd"`
	SilverPerGramUSD string    `json:"silver_per_gram_usd" yaml:"silver_per_gram_usd"`
	Timestamp        time.Time `json:"timestamp" yaml:"timestamp"`
}

// IsZero reports whether neither metal has a price.
func (p PriceSnapshot) IsZero() bool {
	return p.GoldPerGramUSD == "" && p.SilverPerGramUSD == ""
}

// ExchangeRateSnapshot is a USD-pivot rate table: 1 USD buys Rates[code] units.
type ExchangeRateSnapshot struct {
	Rates     currency.Rates      `json:"rates" yaml:"rates"`
	Source    currency.RateSource `json:"source,omitempty" yaml:"source"`
	Timestamp time.Time           `json:"timestamp" yaml:"timestamp"`
}

// CryptoPrices maps a coin id to its USD price.
type CryptoPrices map[string]string
