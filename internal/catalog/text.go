package catalog

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Slugify lowercases s and joins its whitespace-separated words with "-".
// "Graduation Party" becomes "graduation-party".
func Slugify(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}

// Capitalize upper-cases the first character and leaves the rest untouched.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
