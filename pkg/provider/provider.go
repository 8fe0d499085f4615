// Package provider supplies the prices and exchange rates a calculation
// consumes. Sources are plain values the caller composes: a committed
// snapshot, a file re-read on demand, a manual snapshot, an ordered fallback
// chain and a TTL cache in front of any of them.
package provider

import (
	"context"
	"errors"
	"time"

	"github.com/amirasaad/zakat/pkg/currency"
	"github.com/amirasaad/zakat/pkg/zakat"
)

// Common errors for provider operations
var (
	ErrProviderUnavailable = errors.New("provider unavailable")
	ErrSnapshotUnavailable = errors.New("price snapshot unavailable")
	ErrInvalidSnapshot     = errors.New("invalid price snapshot")
)

// DefaultMaxAge is how old a snapshot may be before it is reported stale.
const DefaultMaxAge = 24 * time.Hour

// Snapshot bundles everything priced in USD that a calculation needs.
type Snapshot struct {
	Prices zakat.PriceSnapshot        `json:"prices" yaml:"prices"`
	Rates  zakat.ExchangeRateSnapshot `json:"rates" yaml:"rates"`
	Crypto zakat.CryptoPrices         `json:"crypto,omitempty" yaml:"crypto"`
}

// Validate checks that the snapshot can price metals and convert from USD.
// Rates must carry a positive USD entry since every conversion pivots on it.
func (s *Snapshot) Validate() error {
	var errs []error
	if s.Prices.GoldPerGramUSD == "" || s.Prices.SilverPerGramUSD == "" {
		errs = append(errs, errors.New("metal prices missing"))
	}
	if len(s.Rates.Rates) == 0 {
		errs = append(errs, errors.New("exchange rates missing"))
	} else if !s.Rates.Rates.Rate(currency.DefaultCurrency).IsPositive() {
		errs = append(errs, errors.New("exchange rates missing the USD pivot"))
	}
	if s.Rates.Source != "" && !s.Rates.Source.Valid() {
		errs = append(errs, errors.New("unknown rate source "+string(s.Rates.Source)))
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidSnapshot}, errs...)...)
	}
	return nil
}

// Timestamp is the older of the metal and rate timestamps.
func (s *Snapshot) Timestamp() time.Time {
	if s.Prices.Timestamp.Before(s.Rates.Timestamp) {
		return s.Prices.Timestamp
	}
	return s.Rates.Timestamp
}

// clone returns a deep copy so cached snapshots cannot be mutated by callers.
func (s *Snapshot) clone() *Snapshot {
	out := *s
	out.Rates.Rates = make(currency.Rates, len(s.Rates.Rates))
	for k, v := range s.Rates.Rates {
		out.Rates.Rates[k] = v
	}
	if s.Crypto != nil {
		out.Crypto = make(zakat.CryptoPrices, len(s.Crypto))
		for k, v := range s.Crypto {
			out.Crypto[k] = v
		}
	}
	return &out
}

// Metadata contains metadata about a source
type Metadata struct {
	Name     string              `json:"name"`
	Source   currency.RateSource `json:"source"`
	IsActive bool                `json:"is_active"`
}

// Source produces price snapshots.
type Source interface {
	// Snapshot returns the current best-known prices and rates.
	Snapshot(ctx context.Context) (*Snapshot, error)

	// Metadata returns the source's metadata
	Metadata() Metadata
}

// IsStale reports whether ts is older than maxAge at now. A zero ts is stale.
func IsStale(ts time.Time, maxAge time.Duration, now time.Time) bool {
	if ts.IsZero() {
		return true
	}
	return now.Sub(ts) > maxAge
}
