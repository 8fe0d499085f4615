package config

import (
	"encoding"
	"errors"

	"github.com/amirasaad/zakat/pkg/zakat"
)

// Methodology parses the configured default methodology. Empty axes take
// the engine defaults.
func (z *Zakat) Methodology() (zakat.Methodology, error) {
	if z == nil {
		return zakat.DefaultMethodology(), nil
	}

	var m zakat.Methodology
	fields := []struct {
		dst encoding.TextUnmarshaler
		raw string
	}{
		{&m.NisabBasis, z.NisabBasis},
		{&m.DebtDeduction, z.DebtDeduction},
		{&m.RetirementMethod, z.RetirementMethod},
		{&m.JewelryMethod, z.JewelryMethod},
		{&m.StockValuation, z.StockValuation},
		{&m.StockInputMode, z.StockInputMode},
		{&m.HawlCheck, z.HawlCheck},
	}
	var errs []error
	for _, f := range fields {
		if err := f.dst.UnmarshalText([]byte(f.raw)); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return zakat.Methodology{}, errors.Join(errs...)
	}
	return m.WithDefaults(), nil
}
