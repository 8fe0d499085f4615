package zakat

import (
	"github.com/amirasaad/zakat/pkg/currency"
	"github.com/amirasaad/zakat/pkg/money"
	"github.com/shopspring/decimal"
)

// Deductible reports whether a liability reduces wealth under method.
// The majority view deducts only debts due within twelve months.
func Deductible(l Liability, method DebtDeduction) bool {
	return !(method == DebtMajority && l.Term == TermLong)
}

// LiabilitiesTotal sums deductible liabilities converted to base.
func LiabilitiesTotal(liabilities []Liability, method DebtDeduction, base string, rates currency.Rates) decimal.Decimal {
	total := money.Zero
	for _, l := range liabilities {
		if !Deductible(l, method) {
			continue
		}
		total = money.Add(total, currency.ConvertToBase(money.Parse(l.Amount), l.Currency, base, rates).Converted)
	}
	return total
}
