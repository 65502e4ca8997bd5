package score

import "strings"

// maxDecimalExponent bounds exponent magnitude so canonicalization never
// materializes absurdly long digit strings from inputs like "1e999999".
const maxDecimalExponent = 10000

// canonicalDecimal reports whether s is a finite decimal number and, if so,
// returns its exact canonical form: no exponent, no leading zeros, no
// trailing fraction zeros, no trailing decimal point. Precision is never
// lost; this is pure digit-string arithmetic, not float parsing.
func canonicalDecimal(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	i := 0
	negative := false
	if s[i] == '+' || s[i] == '-' {
		negative = s[i] == '-'
		i++
	}

	intStart := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	intPart := s[intStart:i]

	fracPart := ""
	if i < len(s) && s[i] == '.' {
		i++
		fracStart := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		fracPart = s[fracStart:i]
	}
	if intPart == "" && fracPart == "" {
		return "", false
	}

	exponent := 0
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		expNegative := false
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			expNegative = s[i] == '-'
			i++
		}
		expStart := i
		for i < len(s) && isDigit(s[i]) {
			if exponent <= maxDecimalExponent {
				exponent = exponent*10 + int(s[i]-'0')
			}
			i++
		}
		if expStart == i || exponent > maxDecimalExponent {
			return "", false
		}
		if expNegative {
			exponent = -exponent
		}
	}
	if i != len(s) {
		return "", false
	}

	digits := intPart + fracPart
	// Position of the decimal point within the digit string after
	// applying the exponent.
	point := len(intPart) + exponent

	var integer, fraction string
	switch {
	case point <= 0:
		integer = "0"
		fraction = strings.Repeat("0", -point) + digits
	case point >= len(digits):
		integer = digits + strings.Repeat("0", point-len(digits))
		fraction = ""
	default:
		integer = digits[:point]
		fraction = digits[point:]
	}

	integer = strings.TrimLeft(integer, "0")
	if integer == "" {
		integer = "0"
	}
	fraction = strings.TrimRight(fraction, "0")

	out := integer
	if fraction != "" {
		out += "." + fraction
	}
	if negative && out != "0" {
		out = "-" + out
	}
	return out, true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
