// Package zakat orchestrates a calculation: it applies configured defaults,
// validates the request, fills prices and rates from the snapshot source,
// runs the engine and annotates the result with the age of the prices.
package zakat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/zakat/pkg/config"
	"github.com/amirasaad/zakat/pkg/currency"
	"github.com/amirasaad/zakat/pkg/money"
	"github.com/amirasaad/zakat/pkg/provider"
	"github.com/amirasaad/zakat/pkg/units"
	"github.com/amirasaad/zakat/pkg/zakat"
	"github.com/google/uuid"
)

// ErrMissingRate is returned when the snapshot cannot convert USD into a
// requested currency.
var ErrMissingRate = errors.New("missing exchange rate")

// Calculation is an engine result plus where its prices came from.
type Calculation struct {
	zakat.Result
	PriceSource currency.RateSource `json:"price_source"`
	PricesAsOf  time.Time           `json:"prices_as_of"`
	Stale       bool                `json:"stale"`
}

// NisabQuote is the current Nisab threshold in one currency.
type NisabQuote struct {
	BaseCurrency string              `json:"base_currency"`
	Basis        zakat.NisabBasis    `json:"basis"`
	Value        string              `json:"value"`
	Silver       string              `json:"silver"`
	Gold         string              `json:"gold"`
	SilverGrams  string              `json:"silver_grams"`
	GoldGrams    string              `json:"gold_grams"`
	PriceSource  currency.RateSource `json:"price_source"`
	PricesAsOf   time.Time           `json:"prices_as_of"`
	Stale        bool                `json:"stale"`
}

// Service provides business logic for Zakat calculations.
type Service struct {
	source   provider.Source
	registry *currency.Registry
	calc     *zakat.Calculator
	logger   *slog.Logger
	now      func() time.Time

	baseCurrency string
	homeCurrency string
	methodology  zakat.Methodology
	maxAge       time.Duration
}

// NewService creates a new Service with the provided dependencies.
func NewService(deps config.Deps) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		source:       deps.Source,
		registry:     deps.CurrencyRegistry,
		calc:         deps.Calculator,
		logger:       logger.With("service", "zakat"),
		now:          time.Now,
		baseCurrency: currency.DefaultCurrency,
		methodology:  zakat.DefaultMethodology(),
		maxAge:       provider.DefaultMaxAge,
	}
	if s.registry == nil {
		s.registry = currency.Default()
	}
	if s.calc == nil {
		s.calc = zakat.New()
	}

	if cfg := deps.Config; cfg != nil {
		if z := cfg.Zakat; z != nil {
			if z.BaseCurrency != "" {
				s.baseCurrency = money.NormalizeCode(z.BaseCurrency).String()
			}
			s.homeCurrency = money.NormalizeCode(z.HomeCurrency).String()
			m, err := z.Methodology()
			if err != nil {
				s.logger.Warn("Invalid default methodology, using built-in defaults", "error", err)
			} else {
				s.methodology = m
			}
		}
		if cfg.Snapshot != nil && cfg.Snapshot.MaxAge > 0 {
			s.maxAge = cfg.Snapshot.MaxAge
		}
	}
	return s
}

// Calculate runs one calculation. Prices, rates and crypto prices the
// caller leaves out are taken from the snapshot source.
func (s *Service) Calculate(ctx context.Context, in zakat.Input) (*Calculation, error) {
	logger := s.logger.With("method", "Calculate")

	in = s.withDefaults(in)
	if err := in.Validate(); err != nil {
		logger.Warn("Rejected calculation input", "error", err)
		return nil, err
	}
	codes := currencies(in)
	if err := s.checkSupported(codes...); err != nil {
		logger.Warn("Rejected calculation currency", "error", err)
		return nil, err
	}

	out := &Calculation{PriceSource: currency.RateSourceManual}
	if needsSnapshot(in) {
		snap, err := s.snapshot(ctx)
		if err != nil {
			logger.Error("Failed to load price snapshot", "error", err)
			return nil, err
		}
		in = fill(in, snap)
		out.PriceSource = snap.Rates.Source
	} else if in.Rates.Source.Valid() {
		out.PriceSource = in.Rates.Source
	}

	if err := checkRates(in.Rates.Rates, codes...); err != nil {
		logger.Warn("Exchange rate missing", "base", in.BaseCurrency, "home", in.HomeCurrency, "error", err)
		return nil, err
	}

	out.PricesAsOf = older(in.Prices.Timestamp, in.Rates.Timestamp)
	out.Stale = !out.PricesAsOf.IsZero() && provider.IsStale(out.PricesAsOf, s.maxAge, s.now())
	if out.PriceSource != currency.RateSourceManual && out.PricesAsOf.IsZero() {
		out.Stale = true
	}

	out.Result = s.calc.Calculate(in)
	out.ID = uuid.New().String()

	logger.Info("Zakat calculated",
		"id", out.ID,
		"base", out.BaseCurrency,
		"net_wealth", out.NetWealth,
		"nisab_basis", out.NisabBasis,
		"nisab_met", out.NisabMet,
		"zakat_due", out.ZakatDue,
		"price_source", out.PriceSource,
		"stale", out.Stale,
	)
	if out.Stale {
		logger.Warn("Calculation used stale prices", "id", out.ID, "prices_as_of", out.PricesAsOf)
	}
	return out, nil
}

// Nisab quotes the threshold for basis in base using the snapshot source.
// Empty arguments take the configured defaults.
func (s *Service) Nisab(ctx context.Context, base string, basis zakat.NisabBasis) (*NisabQuote, error) {
	code := money.NormalizeCode(base).String()
	if code == "" {
		code = s.baseCurrency
	}
	if basis == "" {
		basis = s.methodology.NisabBasis
	}
	if !basis.Valid() {
		return nil, fmt.Errorf("%w: nisab basis %q", zakat.ErrInvalidMethodology, basis)
	}
	if err := s.checkSupported(code, ""); err != nil {
		return nil, err
	}

	snap, err := s.snapshot(ctx)
	if err != nil {
		s.logger.Error("Failed to load price snapshot", "method", "Nisab", "error", err)
		return nil, err
	}
	if err := checkRates(snap.Rates.Rates, code, ""); err != nil {
		return nil, err
	}

	usdToBase := currency.ConvertToBase(money.One, currency.DefaultCurrency, code, snap.Rates.Rates).Converted
	t := zakat.Nisab(basis, snap.Prices, usdToBase)
	asOf := snap.Timestamp()
	return &NisabQuote{
		BaseCurrency: code,
		Basis:        t.Basis,
		Value:        money.Fixed2(t.Value),
		Silver:       money.Fixed2(t.Silver),
		Gold:         money.Fixed2(t.Gold),
		SilverGrams:  units.SilverNisabGrams.String(),
		GoldGrams:    units.GoldNisabGrams.String(),
		PriceSource:  snap.Rates.Source,
		PricesAsOf:   asOf,
		Stale:        provider.IsStale(asOf, s.maxAge, s.now()),
	}, nil
}

// Defaults returns the configured base currency, home currency and methodology.
func (s *Service) Defaults() (base, home string, m zakat.Methodology) {
	return s.baseCurrency, s.homeCurrency, s.methodology
}

func (s *Service) withDefaults(in zakat.Input) zakat.Input {
	if in.BaseCurrency == "" {
		in.BaseCurrency = s.baseCurrency
	}
	if in.HomeCurrency == "" {
		in.HomeCurrency = s.homeCurrency
	}
	in.BaseCurrency = money.NormalizeCode(in.BaseCurrency).String()
	in.HomeCurrency = money.NormalizeCode(in.HomeCurrency).String()

	m, d := in.Methodology, s.methodology
	if m.NisabBasis == "" {
		m.NisabBasis = d.NisabBasis
	}
	if m.DebtDeduction == "" {
		m.DebtDeduction = d.DebtDeduction
	}
	if m.RetirementMethod == "" {
		m.RetirementMethod = d.RetirementMethod
	}
	if m.JewelryMethod == "" {
		m.JewelryMethod = d.JewelryMethod
	}
	if m.StockValuation == "" {
		m.StockValuation = d.StockValuation
	}
	if m.StockInputMode == "" {
		m.StockInputMode = d.StockInputMode
	}
	if m.HawlCheck == "" {
		m.HawlCheck = d.HawlCheck
	}
	in.Methodology = m.WithDefaults()

	in.Assets.EnsureIDs()
	zakat.EnsureLiabilityIDs(in.Liabilities)

	// Holdings without a currency are in the base currency.
	for i := range in.Assets.Cash {
		if in.Assets.Cash[i].Currency == "" {
			in.Assets.Cash[i].Currency = in.BaseCurrency
		}
	}
	for i := range in.Assets.Receivables {
		if in.Assets.Receivables[i].Currency == "" {
			in.Assets.Receivables[i].Currency = in.BaseCurrency
		}
	}
	for i := range in.Liabilities {
		if in.Liabilities[i].Currency == "" {
			in.Liabilities[i].Currency = in.BaseCurrency
		}
	}
	return in
}

// currencies lists every distinct currency code in, base first.
func currencies(in zakat.Input) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(code string) {
		code = money.NormalizeCode(code).String()
		if code == "" {
			return
		}
		if _, ok := seen[code]; ok {
			return
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}

	add(in.BaseCurrency)
	add(in.HomeCurrency)
	for _, c := range in.Assets.Cash {
		add(c.Currency)
	}
	for _, r := range in.Assets.Receivables {
		add(r.Currency)
	}
	for _, l := range in.Liabilities {
		add(l.Currency)
	}
	return out
}

func (s *Service) checkSupported(codes ...string) error {
	for _, code := range codes {
		if code == "" {
			continue
		}
		if !s.registry.IsSupported(code) {
			return fmt.Errorf("%w: %s", currency.ErrUnsupportedCurrency, code)
		}
	}
	return nil
}

func (s *Service) snapshot(ctx context.Context) (*provider.Snapshot, error) {
	if s.source == nil {
		return nil, fmt.Errorf("%w: no source configured", provider.ErrSnapshotUnavailable)
	}
	return s.source.Snapshot(ctx)
}

// needsSnapshot reports whether any price the engine reads is absent from in.
func needsSnapshot(in zakat.Input) bool {
	if in.Prices.IsZero() || len(in.Rates.Rates) == 0 {
		return true
	}
	for _, c := range in.Assets.Crypto {
		if c.PriceUSD != "" {
			continue
		}
		if _, ok := in.CryptoPrices[c.CoinID]; !ok {
			return true
		}
	}
	return false
}

// fill copies what in lacks from snap. Caller values win.
func fill(in zakat.Input, snap *provider.Snapshot) zakat.Input {
	if in.Prices.IsZero() {
		in.Prices = snap.Prices
	}
	if len(in.Rates.Rates) == 0 {
		in.Rates = snap.Rates
	}
	if len(snap.Crypto) > 0 {
		merged := make(zakat.CryptoPrices, len(snap.Crypto)+len(in.CryptoPrices))
		for id, p := range snap.Crypto {
			merged[id] = p
		}
		for id, p := range in.CryptoPrices {
			merged[id] = p
		}
		in.CryptoPrices = merged
	}
	return in
}

// checkRates requires a USD rate for every code. Conversions pivot on USD,
// so its own entry must be present once any other currency is involved.
func checkRates(rates currency.Rates, codes ...string) error {
	pivot := false
	for _, code := range codes {
		if code == "" || code == currency.DefaultCurrency {
			continue
		}
		pivot = true
		if !rates.Rate(code).IsPositive() {
			return fmt.Errorf("%w: USD to %s", ErrMissingRate, code)
		}
	}
	if pivot && !rates.Rate(currency.DefaultCurrency).IsPositive() {
		return fmt.Errorf("%w: USD pivot", ErrMissingRate)
	}
	return nil
}

func older(a, b time.Time) time.Time {
	switch {
	case a.IsZero():
		return b
	case b.IsZero():
		return a
	case a.Before(b):
		return a
	default:
		return b
	}
}

// PriceQuote is the snapshot the service would use right now.
type PriceQuote struct {
	provider.Snapshot
	Provider string    `json:"provider"`
	AsOf     time.Time `json:"as_of"`
	Stale    bool      `json:"stale"`
}

// Prices returns the current snapshot from the source.
func (s *Service) Prices(ctx context.Context) (*PriceQuote, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		s.logger.Error("Failed to load price snapshot", "method", "Prices", "error", err)
		return nil, err
	}
	asOf := snap.Timestamp()
	return &PriceQuote{
		Snapshot: *snap,
		Provider: s.source.Metadata().Name,
		AsOf:     asOf,
		Stale:    provider.IsStale(asOf, s.maxAge, s.now()),
	}, nil
}

// Registry returns the currency registry calculations are checked against.
func (s *Service) Registry() *currency.Registry {
	return s.registry
}

// PurityTable returns the purity table gold is valued with.
func (s *Service) PurityTable() *units.PurityTable {
	return s.calc.PurityTable()
}
