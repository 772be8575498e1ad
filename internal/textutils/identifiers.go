// Package textutils holds the text primitives shared by the statement
// parsers: tax identifier extraction, line splitting, accent folding and
// keyword sets.
package textutils

import (
	"regexp"
	"strings"
)

var (
	cpfCnpjPattern = regexp.MustCompile(`\d{3}\.\d{3}\.\d{3}-\d{2}|\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2}`)
	cpfShape       = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$`)
	cnpjShape      = regexp.MustCompile(`^\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2}$`)
)

// ExtractCpfCnpj returns the first formatted CPF or CNPJ in text, exactly as
// written.
func ExtractCpfCnpj(text string) (string, bool) {
	m := cpfCnpjPattern.FindString(text)
	return m, m != ""
}

// IsCPF reports whether s is shaped like ###.###.###-##.
func IsCPF(s string) bool {
	return cpfShape.MatchString(s)
}

// IsCNPJ reports whether s is shaped like ##.###.###/####-##.
func IsCNPJ(s string) bool {
	return cnpjShape.MatchString(s)
}

// HasValidCheckDigits verifies the two mod-11 check digits of a formatted CPF
// or CNPJ.
func HasValidCheckDigits(s string) bool {
	digits := Digits(s)
	switch {
	case IsCPF(s):
		return checkDigit(digits[:9], []int{10, 9, 8, 7, 6, 5, 4, 3, 2}) == digits[9] &&
			checkDigit(digits[:10], []int{11, 10, 9, 8, 7, 6, 5, 4, 3, 2}) == digits[10]
	case IsCNPJ(s):
		return checkDigit(digits[:12], []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}) == digits[12] &&
			checkDigit(digits[:13], []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}) == digits[13]
	}
	return false
}

// Digits returns the decimal digits of s.
func Digits(s string) []int {
	out := make([]int, 0, len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			out = append(out, int(r-'0'))
		}
	}
	return out
}

func checkDigit(digits, weights []int) int {
	sum := 0
	for i, d := range digits {
		sum += d * weights[i]
	}
	if r := sum % 11; r >= 2 {
		return 11 - r
	}
	return 0
}

// SplitLines splits text into trimmed, non-empty lines.
func SplitLines(text string) []string {
	raw := strings.FieldsFunc(text, func(r rune) bool { return r == '\n' || r == '\r' })
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Truncate cuts s to at most max bytes without splitting a UTF-8 sequence.
// It reports whether anything was cut.
func Truncate(s string, max int) (string, bool) {
	if max <= 0 || len(s) <= max {
		return s, false
	}
	cut := max
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut], true
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
