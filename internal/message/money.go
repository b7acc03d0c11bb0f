package message

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatRupees renders an amount as "₹1,250" or "₹1,250.50".
func FormatRupees(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	out := sign + "₹" + formatNumber(whole)
	if frac != "00" {
		out += "." + frac
	}
	return out
}

// formatNumber inserts comma separators into a string of digits
func formatNumber(str string) string {
	if len(str) <= 3 {
		return str
	}

	var result strings.Builder
	remainder := len(str) % 3
	if remainder > 0 {
		result.WriteString(str[:remainder])
		result.WriteString(",")
	}

	for i := remainder; i < len(str); i += 3 {
		result.WriteString(str[i : i+3])
		if i+3 < len(str) {
			result.WriteString(",")
		}
	}

	return result.String()
}
