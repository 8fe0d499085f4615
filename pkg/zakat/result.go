package zakat

import "time"

// Breakdown is the total of each category in the base currency.
type Breakdown struct {
	Gold        string `json:"gold"`
	Silver      string `json:"silver"`
	Cash        string `json:"cash"`
	Crypto      string `json:"crypto"`
	Stocks      string `json:"stocks"`
	Retirement  string `json:"retirement"`
	Receivables string `json:"receivables"`
	Liabilities string `json:"liabilities"`
}

// HomeSummary restates the headline figures in the home currency.
type HomeSummary struct {
	Currency   string `json:"currency"`
	Rate       string `json:"rate"`
	NetWealth  string `json:"net_wealth"`
	NisabValue string `json:"nisab_value"`
	ZakatDue   string `json:"zakat_due"`
}

// Result is the outcome of one calculation. Monetary fields carry two
// decimal places. A Result is recomputed in full on every input change.
type Result struct {
	ID               string       `json:"id,omitempty"`
	BaseCurrency     string       `json:"base_currency"`
	TotalAssets      string       `json:"total_assets"`
	TotalLiabilities string       `json:"total_liabilities"`
	NetWealth        string       `json:"net_wealth"`
	NisabValue       string       `json:"nisab_value"`
	NisabBasis       NisabBasis   `json:"nisab_basis"`
	NisabMet         bool         `json:"nisab_met"`
	ZakatDue         string       `json:"zakat_due"`
	ZakatRate        string       `json:"zakat_rate"`
	Methodology      Methodology  `json:"methodology"`
	Breakdown        Breakdown    `json:"breakdown"`
	Home             *HomeSummary `json:"home,omitempty"`
	Timestamp        time.Time    `json:"timestamp"`
}
