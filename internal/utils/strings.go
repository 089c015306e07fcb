// Package utils holds small helpers shared by the type inference packages.
package utils

import (
	"strings"
	"unicode"
)

// ToSnakeCase converts a CamelCase identifier to snake_case.
// Runs of upper-case letters (acronyms like FFT) are kept as one word.
func ToSnakeCase(s string) string {
	var res strings.Builder
	res.Grow(len(s) + 5)
	for i, r := range s {
		if !unicode.IsUpper(r) {
			res.WriteRune(r)
			continue
		}
		if i > 0 {
			prev := rune(s[i-1])
			var next rune
			if i < len(s)-1 {
				next = rune(s[i+1])
			}
			startsWord := !unicode.IsUpper(prev) && prev != '_'
			endsAcronym := unicode.IsUpper(prev) && next != 0 && !unicode.IsUpper(next) && next != '_'
			if startsWord || endsAcronym {
				res.WriteRune('_')
			}
		}
		res.WriteRune(unicode.ToLower(r))
	}
	return res.String()
}
