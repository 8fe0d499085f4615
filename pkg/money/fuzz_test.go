package money_test

import (
	"testing"

	"github.com/amirasaad/zakat/pkg/money"
)

// FuzzParse checks that Parse is total over arbitrary form input.
func FuzzParse(f *testing.F) {
	f.Add("100.50")
	f.Add("")
	f.Add("NaN")
	f.Add("-1e400")
	f.Add("1,000")
	f.Add("  7.988 ")

	f.Fuzz(func(t *testing.T, s string) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("Parse panicked: %v (input=%q)", r, s)
			}
		}()

		d := money.Parse(s)

		// Round trip through the fixed representation must be stable.
		again := money.Parse(money.Fixed2(d))
		if money.Fixed2(again) != money.Fixed2(d) {
			t.Errorf("Fixed2 not stable: %q -> %q", money.Fixed2(d), money.Fixed2(again))
		}
	})
}
