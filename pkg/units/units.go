// Package units converts regional gold weight units to grams and derives
// pure metal content from regional purity standards.
package units

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrUnknownUnit is returned when a weight unit is not in the catalog.
var ErrUnknownUnit = errors.New("unknown weight unit")

// Unit is a regional weight unit for precious metals.
type Unit string

const (
	Gram      Unit = "gram"
	Sovereign Unit = "sovereign"
	Tola      Unit = "tola"
	Baht      Unit = "baht"
	Tael      Unit = "tael"
	Ratti     Unit = "ratti"
	Ounce     Unit = "ounce" // troy ounce
)

// Info describes a unit and its exact gram equivalent.
type Info struct {
	Unit         Unit            `json:"unit"`
	Label        string          `json:"label"`
	Region       string          `json:"region"`
	Description  string          `json:"description"`
	GramsPerUnit decimal.Decimal `json:"grams_per_unit"`
}

// Nisab weights in grams.
var (
	SilverNisabGrams = decimal.RequireFromString("612.36")
	GoldNisabGrams   = decimal.RequireFromString("87.48")
)

// catalog order is the display order.
var catalog = []Info{
	{Gram, "Grams (International)", "International", "1g = 1g", decimal.RequireFromString("1")},
	{Sovereign, "Sovereign (India/UK)", "India, UK", "1 sovereign = 7.988g", decimal.RequireFromString("7.988")},
	{Tola, "Tola (South Asia)", "India, Pakistan, Bangladesh", "1 tola = 11.664g", decimal.RequireFromString("11.664")},
	{Baht, "Baht (Thailand)", "Thailand", "1 baht = 15.244g", decimal.RequireFromString("15.244")},
	{Tael, "Tael (China/HK)", "China, Hong Kong", "1 tael = 37.799g", decimal.RequireFromString("37.799")},
	{Ratti, "Ratti (India Traditional)", "India", "1 ratti = 0.182g", decimal.RequireFromString("0.182")},
	{Ounce, "Troy Ounce (Global)", "Global", "1 troy oz = 31.1035g", decimal.RequireFromString("31.1035")},
}

var byUnit = func() map[Unit]Info {
	m := make(map[Unit]Info, len(catalog))
	for _, info := range catalog {
		m[info.Unit] = info
	}
	return m
}()

// Units lists every supported unit in display order.
func Units() []Info {
	out := make([]Info, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the catalog entry for u.
func Lookup(u Unit) (Info, bool) {
	info, ok := byUnit[u]
	return info, ok
}

// ParseUnit validates a unit name. Matching is case-insensitive.
func ParseUnit(s string) (Unit, error) {
	u := Unit(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := byUnit[u]; !ok {
		return "", ErrUnknownUnit
	}
	return u, nil
}

// Valid reports whether u is in the catalog.
func (u Unit) Valid() bool {
	_, ok := byUnit[u]
	return ok
}

// GramsPerUnit returns the exact conversion factor, or zero for an unknown unit.
func GramsPerUnit(u Unit) decimal.Decimal {
	return byUnit[u].GramsPerUnit
}

// ToGrams converts weight in unit u to grams. An unknown unit converts to zero.
func ToGrams(weight decimal.Decimal, u Unit) decimal.Decimal {
	info, ok := byUnit[u]
	if !ok {
		return decimal.Zero
	}
	return weight.Mul(info.GramsPerUnit)
}
