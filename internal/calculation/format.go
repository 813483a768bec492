package calculation

import (
	"strings"

	"github.com/shopspring/decimal"
)

// formatMoney renders a whole-dollar CAD amount for narrative strings,
// e.g. "$4,800". Fractions round half-up.
func formatMoney(v decimal.Decimal) string {
	sign := ""
	if v.IsNegative() {
		sign = "-"
	}
	digits := v.Abs().Round(0).String()

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return sign + "$" + b.String()
}
