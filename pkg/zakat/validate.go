package zakat

import (
	"errors"
	"fmt"

	"github.com/amirasaad/zakat/pkg/money"
	"github.com/amirasaad/zakat/pkg/units"
)

var (
	// ErrInvalidHolding is returned when a holding names an unknown enumeration value.
	ErrInvalidHolding = errors.New("invalid holding")

	// ErrInvalidBaseCurrency is returned when the base currency is not a currency code.
	ErrInvalidBaseCurrency = errors.New("invalid base currency")
)

// Validate reports structural problems the engine would otherwise read as
// zero. Numeric strings are not checked: they degrade to zero by contract.
func (in Input) Validate() error {
	var errs []error
	bad := func(kind string, i int, field, v string) {
		errs = append(errs, fmt.Errorf("%w: %s[%d] %s %q", ErrInvalidHolding, kind, i, field, v))
	}
	code := func(kind string, i int, v string) {
		if c := money.NormalizeCode(v); c != "" && !c.IsValid() {
			bad(kind, i, "currency", v)
		}
	}

	if !money.NormalizeCode(in.BaseCurrency).IsValid() {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidBaseCurrency, in.BaseCurrency))
	}
	if home := money.NormalizeCode(in.HomeCurrency); home != "" && !home.IsValid() {
		errs = append(errs, fmt.Errorf("%w: home currency %q", money.ErrInvalidCurrency, in.HomeCurrency))
	}
	if err := in.Methodology.Validate(); err != nil {
		errs = append(errs, err)
	}

	for i, g := range in.Assets.Gold {
		if !g.Unit.Valid() {
			bad("gold", i, "unit", string(g.Unit))
		}
		if _, err := units.ParsePuritySource(string(g.PuritySource)); err != nil {
			bad("gold", i, "purity_source", string(g.PuritySource))
		}
		if g.PuritySource == units.Custom && g.CustomRatio != "" {
			if r := money.Parse(g.CustomRatio); !r.IsPositive() || r.GreaterThan(money.One) {
				bad("gold", i, "custom_ratio", g.CustomRatio)
			}
		}
	}
	for i, c := range in.Assets.Cash {
		code("cash", i, c.Currency)
	}
	for i, c := range in.Assets.Crypto {
		switch c.WalletType {
		case WalletExchange, WalletHardware, WalletLost:
		default:
			bad("crypto", i, "wallet_type", string(c.WalletType))
		}
	}
	for i, s := range in.Assets.Stocks {
		if s.Mode != "" && !s.Mode.Valid() {
			bad("stocks", i, "mode", string(s.Mode))
		}
	}
	for i, r := range in.Assets.Receivables {
		code("receivables", i, r.Currency)
		switch r.Reliability {
		case ReliabilityStrong, ReliabilityDoubtful:
		default:
			bad("receivables", i, "reliability", string(r.Reliability))
		}
	}
	for i, l := range in.Liabilities {
		code("liabilities", i, l.Currency)
		switch l.Term {
		case TermShort, TermLong:
		default:
			bad("liabilities", i, "term", string(l.Term))
		}
	}
	return errors.Join(errs...)
}
