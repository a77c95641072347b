// Package shipping computes delivery fees from the order subtotal, the
// free-shipping threshold and, in the extended rule, destination and
// weight. Fees are derived values: they are recomputed from the current
// subtotal on every call, never cached.
package shipping

import (
	"math"
	"strings"

	"github.com/smarttools-ng/storefront/internal/money"
)

type Calculator struct {
	Threshold             money.Money
	BaseFee               money.Money
	RemoteStateMultiplier float64
	RemoteStates          []string
	WeightAllowanceGrams  int
	SurchargePerKg        money.Money
}

// NewCalculator returns a calculator with the standard storefront rules:
// free shipping at ₦50,000, ₦5,000 base fee, 1.5x for remote states and
// ₦500 per kilogram past the first.
func NewCalculator() *Calculator {
	return &Calculator{
		Threshold:             5_000_000,
		BaseFee:               500_000,
		RemoteStateMultiplier: 1.5,
		RemoteStates:          []string{"borno", "yobe", "adamawa", "taraba", "gombe", "bauchi"},
		WeightAllowanceGrams:  1000,
		SurchargePerKg:        50_000,
	}
}

// Fee is the core rule: zero at or above the free-shipping threshold,
// the base fee below it.
func (c *Calculator) Fee(subtotal money.Money) money.Money {
	if subtotal >= c.Threshold {
		return 0
	}

	return c.BaseFee
}

// FeeFor applies the extended rule: the base fee adjusted for a remote
// destination and for weight past the free allowance. The free-shipping
// threshold still wins outright.
func (c *Calculator) FeeFor(subtotal money.Money, state string, totalWeightGrams int) money.Money {
	if subtotal >= c.Threshold {
		return 0
	}

	fee := c.BaseFee

	if c.isRemoteState(state) {
		fee = money.Money(math.Round(float64(fee) * c.RemoteStateMultiplier))
	}

	extra := totalWeightGrams - c.WeightAllowanceGrams
	if extra > 0 {
		fee += money.Money(math.Ceil(float64(extra)/1000)) * c.SurchargePerKg
	}

	return fee
}

// Progress is how far the subtotal has come toward free shipping, as a
// percentage in [0,100].
func (c *Calculator) Progress(subtotal money.Money) float64 {
	if c.Threshold <= 0 {
		return 100
	}

	return math.Min(float64(subtotal)/float64(c.Threshold), 1) * 100
}

// Remaining is the amount still needed to reach free shipping.
func (c *Calculator) Remaining(subtotal money.Money) money.Money {
	if remaining := c.Threshold - subtotal; remaining > 0 {
		return remaining
	}

	return 0
}

func (c *Calculator) isRemoteState(state string) bool {
	state = strings.ToLower(state)
	for _, remote := range c.RemoteStates {
		if strings.Contains(state, remote) {
			return true
		}
	}

	return false
}

// EstimateWeight guesses an item's shipping weight in grams from its
// name. The catalog carries no weight data, so this heuristic stands in.
func EstimateWeight(productName string) int {
	name := strings.ToLower(productName)

	switch {
	case containsAny(name, "drill", "saw", "grinder"):
		return 2000
	case containsAny(name, "hammer", "wrench", "pliers"):
		return 500
	case containsAny(name, "screw", "nail", "bolt"):
		return 100
	case containsAny(name, "helmet", "glove", "safety"):
		return 300
	}

	return 1000
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}

	return false
}
