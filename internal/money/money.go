// Package money holds all monetary arithmetic for the storefront.
// Amounts are integer counts of kobo (minor units of the naira);
// float major-unit values only ever appear at the formatting boundary.
package money

import (
	"errors"
	"math"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Money is an amount in kobo.
type Money int64

var ErrInvalidAmount = errors.New("money: invalid amount")

var (
	naira   = currency.MustParseISO("NGN")
	printer = message.NewPrinter(language.MustParse("en-NG"))
)

// Format renders an amount as a localized currency string, e.g. "₦1,399.97".
func Format(amount Money) (string, error) {
	major, err := toMajor(amount)
	if err != nil {
		return "", err
	}

	return printer.Sprintf("%v", currency.NarrowSymbol(naira.Amount(major))), nil
}

// FormatValue renders an amount without the currency symbol, e.g. "1,399.97".
func FormatValue(amount Money) (string, error) {
	major, err := toMajor(amount)
	if err != nil {
		return "", err
	}

	return printer.Sprintf("%.2f", major), nil
}

func toMajor(amount Money) (float64, error) {
	if amount < 0 {
		return 0, ErrInvalidAmount
	}

	major := float64(amount) / 100

	if math.IsNaN(major) || math.IsInf(major, 0) {
		return 0, ErrInvalidAmount
	}

	return major, nil
}

// Savings is the strike-through delta against the original price, zero
// when there is no original price or no markdown.
func Savings(originalPrice, currentPrice Money, quantity int) Money {
	if originalPrice <= currentPrice {
		return 0
	}

	return (originalPrice - currentPrice) * Money(quantity)
}

// DiscountPercent is the rounded markdown percentage for badge display.
func DiscountPercent(originalPrice, currentPrice Money) int {
	if originalPrice <= 0 || originalPrice <= currentPrice {
		return 0
	}

	return int(math.Round(float64(originalPrice-currentPrice) / float64(originalPrice) * 100))
}
