// Package money parses and formats Brazilian real amounts as they appear in
// pasted Pix notifications.
package money

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Prefix precedes every formatted amount.
const Prefix = "R$ "

var ErrInvalidAmount = errors.New("invalid amount")

var (
	// 1.234.567.89: every separator is a dot, the last one is really the
	// decimal point.
	allDotsPattern = regexp.MustCompile(`^\d{1,3}(?:\.\d{3})*\.\d{2}$`)
	// 1.234.567,89 or 1234567,89
	brlPattern = regexp.MustCompile(`^(?:\d{1,3}(?:\.\d{3})*|\d+),\d{2}$`)
)

// Parse converts a captured amount such as "1.234,56", "100,00" or
// "1.234.567.89" into a decimal. Mixed separators in US order ("1,234.56")
// and comma grouping ("1,234,56") are rejected with ErrInvalidAmount.
func Parse(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if allDotsPattern.MatchString(s) {
		i := strings.LastIndex(s, ".")
		s = s[:i] + "," + s[i+1:]
	}
	if !brlPattern.MatchString(s) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.Replace(s, ",", ".", 1)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q: %v", ErrInvalidAmount, raw, err)
	}
	return d, nil
}

// Format renders d as "R$ 1.234,56", rounded to cents.
func Format(d decimal.Decimal) string {
	d = d.Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	fixed := d.Abs().StringFixed(2)
	intPart, frac := fixed[:len(fixed)-3], fixed[len(fixed)-2:]
	return Prefix + sign + group(intPart) + "," + frac
}

// ParseDisplay reverses Format.
func ParseDisplay(display string) (decimal.Decimal, error) {
	s := strings.TrimSpace(display)
	s = strings.TrimSpace(strings.TrimPrefix(s, strings.TrimSpace(Prefix)))
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	d, err := Parse(s)
	if err != nil {
		return decimal.Zero, err
	}
	if neg {
		d = d.Neg()
	}
	return d, nil
}

// Sum adds amounts; an empty list sums to zero.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

func group(digits string) string {
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return b.String()
}
