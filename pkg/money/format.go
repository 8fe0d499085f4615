package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Grouping selects how integer digits are grouped for display.
type Grouping string

const (
	// GroupingInternational groups every three digits: 100,000.
	GroupingInternational Grouping = "international"
	// GroupingIndian groups the last three digits, then pairs: 1,00,000.
	GroupingIndian Grouping = "indian"
)

// ParseGrouping validates a numbering format name.
func ParseGrouping(s string) (Grouping, error) {
	switch g := Grouping(strings.ToLower(strings.TrimSpace(s))); g {
	case GroupingInternational, GroupingIndian:
		return g, nil
	case "":
		return GroupingInternational, nil
	default:
		return "", ErrInvalidGrouping
	}
}

// Format renders d with places fractional digits and the requested digit grouping.
func Format(d decimal.Decimal, places int32, g Grouping) string {
	fixed := d.StringFixed(places)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	intPart, fracPart, hasFrac := strings.Cut(fixed, ".")

	var grouped string
	if g == GroupingIndian {
		grouped = groupIndian(intPart)
	} else {
		grouped = groupEvery(intPart, 3)
	}
	if hasFrac {
		return sign + grouped + "." + fracPart
	}
	return sign + grouped
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, lastThree := digits[:len(digits)-3], digits[len(digits)-3:]
	return groupEvery(head, 2) + "," + lastThree
}

func groupEvery(digits string, size int) string {
	if len(digits) <= size {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % size
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += size {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+size])
	}
	return b.String()
}
