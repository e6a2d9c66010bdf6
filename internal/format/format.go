// Package format provides Brazilian-locale formatting for currency, numbers
// and dates as they appear throughout reports and tables.
package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultCurrencySymbol is the symbol used when none is given.
const DefaultCurrencySymbol = "R$"

// Currency formats a value as Brazilian currency, e.g. "R$ 1.234,56".
func Currency(value float64) string {
	return CurrencyWithSymbol(value, DefaultCurrencySymbol)
}

// CurrencyWithSymbol formats a value with an explicit currency symbol.
func CurrencyWithSymbol(value float64, symbol string) string {
	return fmt.Sprintf("%s %s", symbol, Number(value, 2))
}

// Number formats a number with Brazilian separators: "." for thousands and
// "," for decimals, e.g. Number(1234.567, 2) == "1.234,57".
func Number(value float64, decimals int) string {
	neg := value < 0
	if neg {
		value = -value
	}

	s := strconv.FormatFloat(value, 'f', decimals, 64)

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	if fracPart != "" {
		b.WriteByte(',')
		b.WriteString(fracPart)
	}
	return b.String()
}

// Date converts an ISO date or timestamp string to DD/MM/YYYY.
func Date(iso string) (string, error) {
	// Strip time, zone and fractional parts the way upstream data may
	// carry them.
	s := iso
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSuffix(s, "Z")
	if i := strings.IndexByte(s, '+'); i >= 0 {
		s = s[:i]
	}

	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", iso, err)
	}
	return t.Format("02/01/2006"), nil
}

// DateOrPlaceholder is Date with a fixed fallback for display contexts
// where an error cannot surface.
func DateOrPlaceholder(iso string) string {
	d, err := Date(iso)
	if err != nil {
		return "-"
	}
	return d
}

// ParseCurrency converts Brazilian currency input back to a float,
// accepting forms like "R$ 1.234,56" and "1.234,56".
func ParseCurrency(input string) (float64, error) {
	cleaned := strings.TrimSpace(input)
	cleaned = strings.ReplaceAll(cleaned, DefaultCurrencySymbol, "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	if cleaned == "" {
		return 0, fmt.Errorf("empty currency value")
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid currency %q: %w", input, err)
	}
	return v, nil
}
