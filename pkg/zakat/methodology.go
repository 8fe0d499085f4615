package zakat

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMethodology is returned for a methodology value outside its enumeration.
var ErrInvalidMethodology = errors.New("invalid methodology")

// NisabBasis selects the metal that sets the Nisab threshold.
type NisabBasis string

const (
	NisabSilver NisabBasis = "silver"
	NisabGold   NisabBasis = "gold"
	// NisabAuto picks the lower of the silver and gold thresholds.
	NisabAuto NisabBasis = "auto"
)

// DebtDeduction selects which liabilities reduce zakatable wealth.
type DebtDeduction string

const (
	// DebtMajority deducts only short-term debts (the next twelve months).
	DebtMajority DebtDeduction = "majority"
	// DebtHanafi deducts all debts.
	DebtHanafi DebtDeduction = "hanafi"
)

// RetirementMethod selects how retirement accounts are treated.
type RetirementMethod string

const (
	// RetirementFCNA counts the net accessible value now.
	RetirementFCNA RetirementMethod = "fcna"
	// RetirementDelayed defers the obligation to withdrawal.
	RetirementDelayed RetirementMethod = "delayed"
)

// JewelryMethod selects whether gold in customary personal use is exempt.
type JewelryMethod string

const (
	JewelryHanafi JewelryMethod = "hanafi"
	JewelryOther  JewelryMethod = "other"
)

// StockValuation selects how equities are valued.
type StockValuation string

const (
	StockAssetBased StockValuation = "asset-based"
	StockMarket     StockValuation = "market"
)

// StockInputMode selects how stock holdings are entered.
type StockInputMode string

const (
	StockQuick    StockInputMode = "quick"
	StockDetailed StockInputMode = "detailed"
)

// HawlStatus records whether a lunar year has passed on the wealth.
type HawlStatus string

const (
	HawlYes     HawlStatus = "yes"
	HawlNo      HawlStatus = "no"
	HawlUnknown HawlStatus = "unknown"
)

func (b NisabBasis) Valid() bool {
	switch b {
	case NisabSilver, NisabGold, NisabAuto:
		return true
	}
	return false
}

func (d DebtDeduction) Valid() bool {
	switch d {
	case DebtMajority, DebtHanafi:
		return true
	}
	return false
}

func (r RetirementMethod) Valid() bool {
	switch r {
	case RetirementFCNA, RetirementDelayed:
		return true
	}
	return false
}

func (j JewelryMethod) Valid() bool {
	switch j {
	case JewelryHanafi, JewelryOther:
		return true
	}
	return false
}

func (s StockValuation) Valid() bool {
	switch s {
	case StockAssetBased, StockMarket:
		return true
	}
	return false
}

func (m StockInputMode) Valid() bool {
	switch m {
	case StockQuick, StockDetailed:
		return true
	}
	return false
}

func (h HawlStatus) Valid() bool {
	switch h {
	case HawlYes, HawlNo, HawlUnknown:
		return true
	}
	return false
}

type enum interface {
	~string
	Valid() bool
}

// parseEnum normalizes s and checks it against the enumeration of T.
func parseEnum[T enum](axis, s string) (T, error) {
	v := T(strings.ToLower(strings.TrimSpace(s)))
	if !v.Valid() {
		return "", fmt.Errorf("%w: %s %q", ErrInvalidMethodology, axis, s)
	}
	return v, nil
}

// unmarshalEnum accepts an empty value so defaults can be applied later.
func unmarshalEnum[T enum](axis string, text []byte, dst *T) error {
	if len(text) == 0 {
		*dst = ""
		return nil
	}
	v, err := parseEnum[T](axis, string(text))
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func ParseNisabBasis(s string) (NisabBasis, error) { return parseEnum[NisabBasis]("nisab basis", s) }

func ParseDebtDeduction(s string) (DebtDeduction, error) {
	return parseEnum[DebtDeduction]("debt deduction", s)
}

func ParseRetirementMethod(s string) (RetirementMethod, error) {
	return parseEnum[RetirementMethod]("retirement method", s)
}

func ParseJewelryMethod(s string) (JewelryMethod, error) {
	return parseEnum[JewelryMethod]("jewelry method", s)
}

func ParseStockValuation(s string) (StockValuation, error) {
	return parseEnum[StockValuation]("stock valuation", s)
}

func ParseStockInputMode(s string) (StockInputMode, error) {
	return parseEnum[StockInputMode]("stock input mode", s)
}

func ParseHawlStatus(s string) (HawlStatus, error) { return parseEnum[HawlStatus]("hawl", s) }

func (b *NisabBasis) UnmarshalText(text []byte) error {
	return unmarshalEnum("nisab basis", text, b)
}

func (d *DebtDeduction) UnmarshalText(text []byte) error {
	return unmarshalEnum("debt deduction", text, d)
}

func (r *RetirementMethod) UnmarshalText(text []byte) error {
	return unmarshalEnum("retirement method", text, r)
}

func (j *JewelryMethod) UnmarshalText(text []byte) error {
	return unmarshalEnum("jewelry method", text, j)
}

func (s *StockValuation) UnmarshalText(text []byte) error {
	return unmarshalEnum("stock valuation", text, s)
}

func (m *StockInputMode) UnmarshalText(text []byte) error {
	return unmarshalEnum("stock input mode", text, m)
}

func (h *HawlStatus) UnmarshalText(text []byte) error {
	return unmarshalEnum("hawl", text, h)
}

// Methodology is the set of scholarly choices applied to one calculation.
type Methodology struct {
	NisabBasis       NisabBasis       `json:"nisab_basis" yaml:"nisab_basis"`
	DebtDeduction    DebtDeduction    `json:"debt_deduction" yaml:"debt_deduction"`
	RetirementMethod RetirementMethod `json:"retirement_method" yaml:"retirement_method"`
	JewelryMethod    JewelryMethod    `json:"jewelry_method" yaml:"jewelry_method"`
	StockValuation   StockValuation   `json:"stock_valuation" yaml:"stock_valuation"`
	StockInputMode   StockInputMode   `json:"stock_input_mode" yaml:"stock_input_mode"`
	HawlCheck        HawlStatus       `json:"hawl_check" yaml:"hawl_check"`
}

// DefaultMethodology returns the conservative defaults.
func DefaultMethodology() Methodology {
	return Methodology{
		NisabBasis:       NisabSilver,
		DebtDeduction:    DebtMajority,
		RetirementMethod: RetirementFCNA,
		JewelryMethod:    JewelryHanafi,
		StockValuation:   StockAssetBased,
		StockInputMode:   StockQuick,
		HawlCheck:        HawlYes,
	}
}

// WithDefaults fills every empty axis from DefaultMethodology.
func (m Methodology) WithDefaults() Methodology {
	d := DefaultMethodology()
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
	return m
}

// Validate reports every axis that is set to an unknown value.
// Empty axes are accepted.
func (m Methodology) Validate() error {
	var errs []error
	check := func(axis string, set, valid bool, v string) {
		if set && !valid {
			errs = append(errs, fmt.Errorf("%w: %s %q", ErrInvalidMethodology, axis, v))
		}
	}
	check("nisab basis", m.NisabBasis != "", m.NisabBasis.Valid(), string(m.NisabBasis))
	check("debt deduction", m.DebtDeduction != "", m.DebtDeduction.Valid(), string(m.DebtDeduction))
	check("retirement method", m.RetirementMethod != "", m.RetirementMethod.Valid(), string(m.RetirementMethod))
	check("jewelry method", m.JewelryMethod != "", m.JewelryMethod.Valid(), string(m.JewelryMethod))
	check("stock valuation", m.StockValuation != "", m.StockValuation.Valid(), string(m.StockValuation))
	check("stock input mode", m.StockInputMode != "", m.StockInputMode.Valid(), string(m.StockInputMode))
	check("hawl", m.HawlCheck != "", m.HawlCheck.Valid(), string(m.HawlCheck))
	return errors.Join(errs...)
}
