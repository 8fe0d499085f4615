package zakat

import (
	"time"

	"github.com/amirasaad/zakat/pkg/currency"
	"github.com/amirasaad/zakat/pkg/units"
	"github.com/google/uuid"
)

// JewelryType describes the form of a silver holding. Informational only.
type JewelryType string

const (
	JewelryBullion JewelryType = "bullion"
	JewelryCoins   JewelryType = "coins"
	JewelryPieces  JewelryType = "jewelry"
)

// WalletType is where a crypto holding is kept.
type WalletType string

const (
	WalletExchange WalletType = "exchange"
	WalletHardware WalletType = "hardware"
	// WalletLost holdings are unreachable and never zakatable.
	WalletLost WalletType = "lost"
)

// StockHoldingType distinguishes active trading from long-term investment.
type StockHoldingType string

const (
	StockTrading  StockHoldingType = "trading"
	StockLongTerm StockHoldingType = "long-term"
)

// RetirementAccountType is the kind of retirement plan.
type RetirementAccountType string

const (
	Retirement401k          RetirementAccountType = "401k"
	RetirementIRA           RetirementAccountType = "ira"
	RetirementPension       RetirementAccountType = "pension"
	RetirementProvidentFund RetirementAccountType = "provident-fund"
	RetirementOtherAccount  RetirementAccountType = "other"
)

// Reliability is how likely a receivable is to be repaid.
type Reliability string

const (
	ReliabilityStrong   Reliability = "strong"
	ReliabilityDoubtful Reliability = "doubtful"
)

// DebtTerm separates debts due within twelve months from longer ones.
type DebtTerm string

const (
	TermShort DebtTerm = "short-term"
	TermLong  DebtTerm = "long-term"
)

// GoldHolding is an amount of gold in a regional unit.
type GoldHolding struct {
	ID           string             `json:"id"`
	Unit         units.Unit         `json:"unit"`
	Weight       string             `json:"weight"`
	PuritySource units.PuritySource `json:"purity_source"`
	// Karat defaults to 22 when zero.
	Karat int `json:"karat,omitempty"`
	// CustomRatio is the fine-gold ratio in (0, 1]; read only when PuritySource is custom.
	CustomRatio string `json:"custom_ratio,omitempty"`
}

// SilverHolding is silver measured in grams.
type SilverHolding struct {
	ID          string      `json:"id"`
	Type        JewelryType `json:"type"`
	WeightGrams string      `json:"weight_grams"`
}

// CashAccount is a balance in any currency. The converted fields are a
// display projection produced by Refreshed and never read by the engine.
type CashAccount struct {
	ID              string              `json:"id"`
	AccountName     string              `json:"account_name"`
	Amount          string              `json:"amount"`
	Currency        string              `json:"currency"`
	ConvertedToBase string              `json:"converted_to_base,omitempty"`
	ExchangeRate    string              `json:"exchange_rate,omitempty"`
	RateSource      currency.RateSource `json:"rate_source,omitempty"`
	RateTimestamp   *time.Time          `json:"rate_timestamp,omitempty"`
}

// Refreshed returns a copy of the account with its converted fields recomputed.
func (a CashAccount) Refreshed(
	base string,
	rates currency.Rates,
	source currency.RateSource,
	now time.Time,
) CashAccount {
	r := currency.Refresh(a.Amount, a.Currency, base, rates, source, now)
	a.ConvertedToBase = r.ConvertedToBase
	a.ExchangeRate = r.ExchangeRate
	a.RateSource = r.RateSource
	a.RateTimestamp = &r.RateTimestamp
	return a
}

// CryptoHolding is an amount of a coin identified by its price-feed id.
type CryptoHolding struct {
	ID         string     `json:"id"`
	CoinID     string     `json:"coin_id"`
	CoinSymbol string     `json:"coin_symbol,omitempty"`
	CoinName   string     `json:"coin_name,omitempty"`
	Amount     string     `json:"amount"`
	WalletType WalletType `json:"wallet_type"`
	// PriceUSD is used when the price map has no entry for CoinID.
	PriceUSD string `json:"price_usd,omitempty"`
}

// StockHolding is an equity position already valued in the base currency.
// Quick mode reads TotalValue; detailed mode reads MarketValue.
type StockHolding struct {
	ID          string           `json:"id"`
	Mode        StockInputMode   `json:"mode,omitempty"`
	TotalValue  string           `json:"total_value,omitempty"`
	HoldingType StockHoldingType `json:"holding_type,omitempty"`
	Symbol      string           `json:"symbol,omitempty"`
	Shares      string           `json:"shares,omitempty"`
	MarketValue string           `json:"market_value,omitempty"`
}

// RetirementAccount is a balance in the base currency with early-withdrawal costs.
type RetirementAccount struct {
	ID             string                `json:"id"`
	AccountType    RetirementAccountType `json:"account_type"`
	Balance        string                `json:"balance"`
	PenaltyPercent string                `json:"penalty_percent"`
	TaxPercent     string                `json:"tax_percent"`
	Accessible     bool                  `json:"accessible"`
}

// Receivable is money owed to the payer.
type Receivable struct {
	ID           string      `json:"id"`
	Description  string      `json:"description,omitempty"`
	Amount       string      `json:"amount"`
	Currency     string      `json:"currency"`
	Reliability  Reliability `json:"reliability"`
	ExpectedDate string      `json:"expected_date,omitempty"`
}

// Liability is money the payer owes.
type Liability struct {
	ID           string   `json:"id"`
	Description  string   `json:"description,omitempty"`
	Amount       string   `json:"amount"`
	Currency     string   `json:"currency"`
	Term         DebtTerm `json:"term"`
	DueDate      string   `json:"due_date,omitempty"`
	BankTemplate string   `json:"bank_template,omitempty"`
}

// Assets groups every asset category.
type Assets struct {
	Gold        []GoldHolding       `json:"gold,omitempty"`
	Silver      []SilverHolding     `json:"silver,omitempty"`
	Cash        []CashAccount       `json:"cash,omitempty"`
	Crypto      []CryptoHolding     `json:"crypto,omitempty"`
	Stocks      []StockHolding      `json:"stocks,omitempty"`
	Retirement  []RetirementAccount `json:"retirement,omitempty"`
	Receivables []Receivable        `json:"receivables,omitempty"`
}

// NewID returns a fresh holding id.
func NewID() string { return uuid.NewString() }

func ensureID(id *string) {
	if *id == "" {
		*id = NewID()
	}
}

// EnsureIDs assigns an id to every holding that has none.
func (a *Assets) EnsureIDs() {
	for i := range a.Gold {
		ensureID(&a.Gold[i].ID)
	}
	for i := range a.Silver {
		ensureID(&a.Silver[i].ID)
	}
	for i := range a.Cash {
		ensureID(&a.Cash[i].ID)
	}
	for i := range a.Crypto {
		ensureID(&a.Crypto[i].ID)
	}
	for i := range a.Stocks {
		ensureID(&a.Stocks[i].ID)
	}
	for i := range a.Retirement {
		ensureID(&a.Retirement[i].ID)
	}
	for i := range a.Receivables {
		ensureID(&a.Receivables[i].ID)
	}
}

// EnsureLiabilityIDs assigns an id to every liability that has none.
func EnsureLiabilityIDs(ls []Liability) {
	for i := range ls {
		ensureID(&ls[i].ID)
	}
}
