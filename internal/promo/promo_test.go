package promo_test

import (
	"testing"
	"time"

	"github.com/smarttools-ng/storefront/internal/money"
	"github.com/smarttools-ng/storefront/internal/promo"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	resolver := promo.NewResolver(promo.DefaultRules())

	t.Run("Success - Known Code", func(t *testing.T) {
		result := resolver.Validate("WELCOME5")

		assert.True(t, result.Valid)
		assert.Equal(t, promo.KindFixed, result.Kind)
		assert.Equal(t, int64(500_000), result.Value)
		assert.NotEmpty(t, result.Message)
	})

	t.Run("Success - Lookup Is Case Insensitive", func(t *testing.T) {
		assert.True(t, resolver.Validate("welcome5").Valid)
		assert.True(t, resolver.Validate("  Tools20 ").Valid)
	})

	t.Run("Negative Result - Unknown Code", func(t *testing.T) {
		result := resolver.Validate("NOPE")

		assert.False(t, result.Valid)
		assert.Equal(t, "Invalid promo code.", result.Message)
	})

	t.Run("Negative Result - Inactive Code", func(t *testing.T) {
		inactive := promo.NewResolver([]promo.Rule{
			{Code: "OLD", Kind: promo.KindFixed, Value: 100, Active: false},
		})

		assert.False(t, inactive.Validate("OLD").Valid)
	})

	t.Run("Negative Result - Expired Code", func(t *testing.T) {
		expired := promo.NewResolver([]promo.Rule{
			{
				Code:       "XMAS",
				Kind:       promo.KindFixed,
				Value:      100,
				Active:     true,
				ValidUntil: time.Now().Add(-24 * time.Hour),
			},
		})

		assert.False(t, expired.Validate("XMAS").Valid)
	})
}

func TestApply(t *testing.T) {
	resolver := promo.NewResolver(promo.DefaultRules())

	t.Run("Fixed Discount", func(t *testing.T) {
		assert.Equal(t, money.Money(500_000), resolver.Apply(2_000_000, "WELCOME5"))
	})

	t.Run("Fixed Discount Clamped To Subtotal", func(t *testing.T) {
		// a ₦10,000 discount on a ₦5,000 order can only ever be ₦5,000
		assert.Equal(t, money.Money(500_000), resolver.Apply(500_000, "SAVE10"))
	})

	t.Run("Percentage Discount", func(t *testing.T) {
		assert.Equal(t, money.Money(400_000), resolver.Apply(2_000_000, "TOOLS20"))
	})

	t.Run("Percentage Discount Rounds", func(t *testing.T) {
		// 20% of 139,997 kobo is 27,999.4, rounded to 27,999
		assert.Equal(t, money.Money(27_999), resolver.Apply(139_997, "TOOLS20"))
	})

	t.Run("Invalid Code Yields Zero", func(t *testing.T) {
		assert.Equal(t, money.Money(0), resolver.Apply(2_000_000, "NOPE"))
	})

	t.Run("Minimum Order Amount Gate", func(t *testing.T) {
		gated := promo.NewResolver([]promo.Rule{
			{Code: "BIG", Kind: promo.KindFixed, Value: 200_000, MinOrderAmount: 1_000_000, Active: true},
		})

		assert.Equal(t, money.Money(0), gated.Apply(999_999, "BIG"))
		assert.Equal(t, money.Money(200_000), gated.Apply(1_000_000, "BIG"))
	})

	t.Run("Maximum Discount Cap", func(t *testing.T) {
		capped := promo.NewResolver([]promo.Rule{
			{Code: "HALF", Kind: promo.KindPercentage, Value: 50, MaxDiscount: 100_000, Active: true},
		})

		assert.Equal(t, money.Money(100_000), capped.Apply(2_000_000, "HALF"))
	})
}
