package lib

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBDT renders an amount as "BDT 1234.50" with two decimals and no
// thousands separators. This is the form used in receipt line-item tables.
func FormatBDT(amount decimal.Decimal) string {
	return "BDT " + amount.StringFixed(2)
}

// FormatBDTGrouped renders an amount with comma grouping, e.g.
// "BDT 12,500.00". Used for larger displayed totals.
func FormatBDTGrouped(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	neg := strings.HasPrefix(fixed, "-")
	if neg {
		fixed = fixed[1:]
	}

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("BDT %s%s.%s", sign, b.String(), fracPart)
}
