package pricing

import (
	"errors"
	"fmt"
	"strings"
)

// Money represents a monetary value stored in minor units.
type Money = int64

// RoundingMode selects how a fractional cent of computed tax is resolved.
type RoundingMode int

const (
	// RoundHalfUp rounds a half cent away from zero. Retail default.
	RoundHalfUp RoundingMode = iota
	// RoundHalfEven rounds a half cent to the nearest even cent.
	RoundHalfEven
)

// ErrInvalidTaxRate is returned when a policy is built with a negative rate.
var ErrInvalidTaxRate = errors.New("pricing: tax rate must not be negative")

// String returns the configuration name of the mode.
func (m RoundingMode) String() string {
	switch m {
	case RoundHalfEven:
		return "half_even"
	default:
		return "half_up"
	}
}

// ParseRoundingMode maps a configuration value onto a RoundingMode.
func ParseRoundingMode(value string) (RoundingMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "half_up", "half-up", "halfup":
		return RoundHalfUp, nil
	case "half_even", "half-even", "halfeven", "bankers":
		return RoundHalfEven, nil
	default:
		return RoundHalfUp, fmt.Errorf("pricing: unknown rounding mode %q", value)
	}
}

// Policy holds the tax rate and rounding rule applied to order totals.
// It is immutable after construction and safe for concurrent reads.
type Policy struct {
	taxRateBps int
	mode       RoundingMode
}

// NewPolicy constructs a Policy. The rate is expressed in basis points
// (825 = 8.25%).
func NewPolicy(taxRateBps int, mode RoundingMode) (Policy, error) {
	if taxRateBps < 0 {
		return Policy{}, ErrInvalidTaxRate
	}
	return Policy{taxRateBps: taxRateBps, mode: mode}, nil
}

// TaxRateBps returns the configured tax rate in basis points.
func (p Policy) TaxRateBps() int { return p.taxRateBps }

// Mode returns the configured rounding mode.
func (p Policy) Mode() RoundingMode { return p.mode }

// RoundTax computes subtotal × rate rounded to a whole minor unit under the
// policy's mode. Subtotals are never negative in a well-formed order, so the
// rounding only needs to resolve the non-negative case.
func (p Policy) RoundTax(subtotal Money) Money {
	if subtotal <= 0 || p.taxRateBps == 0 {
		return 0
	}
	numerator := subtotal * Money(p.taxRateBps)
	quotient := numerator / 10000
	remainder := numerator % 10000
	switch p.mode {
	case RoundHalfEven:
		if remainder*2 > 10000 || (remainder*2 == 10000 && quotient%2 == 1) {
			quotient++
		}
	default:
		if remainder*2 >= 10000 {
			quotient++
		}
	}
	return quotient
}

// Format renders a minor-unit amount as a decimal string, e.g. 475 -> "4.75".
func Format(amount Money) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d", sign, amount/100, amount%100)
}
