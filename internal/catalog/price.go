package catalog

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

var ErrInvalidPrice = errors.New("invalid price")

// ParsePrice reads a display price such as "₹3,500" or "Rs. 1,299.50".
// Currency symbols, grouping commas and whitespace are ignored.
func ParsePrice(s string) (decimal.Decimal, error) {
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsDigit(r), r == '.':
			b.WriteRune(r)
		case r == ',', unicode.IsSpace(r):
		default:
			// drop currency prefixes like "₹" or "Rs"
			if b.Len() > 0 {
				return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
			}
		}
	}
	digits := strings.TrimPrefix(b.String(), ".")
	if digits == "" {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	d, err := decimal.NewFromString(digits)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	return d, nil
}
