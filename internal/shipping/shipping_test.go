package shipping_test

import (
	"testing"

	"github.com/smarttools-ng/storefront/internal/money"
	"github.com/smarttools-ng/storefront/internal/shipping"
	"github.com/stretchr/testify/assert"
)

func TestFee(t *testing.T) {
	calc := shipping.NewCalculator()

	t.Run("Base Fee Below Threshold", func(t *testing.T) {
		assert.Equal(t, money.Money(500_000), calc.Fee(4_999_999))
	})

	t.Run("Free At Threshold", func(t *testing.T) {
		assert.Equal(t, money.Money(0), calc.Fee(5_000_000))
	})

	t.Run("Free Above Threshold", func(t *testing.T) {
		assert.Equal(t, money.Money(0), calc.Fee(9_000_000))
	})

	t.Run("Base Fee On Empty Cart", func(t *testing.T) {
		assert.Equal(t, money.Money(500_000), calc.Fee(0))
	})
}

func TestFeeFor(t *testing.T) {
	calc := shipping.NewCalculator()

	t.Run("Remote State Multiplier", func(t *testing.T) {
		fee := calc.FeeFor(1_000_000, "Borno", 500)

		assert.Equal(t, money.Money(750_000), fee)
	})

	t.Run("Remote Match Is Case Insensitive And Partial", func(t *testing.T) {
		fee := calc.FeeFor(1_000_000, "YOBE STATE", 500)

		assert.Equal(t, money.Money(750_000), fee)
	})

	t.Run("Weight Surcharge Per Started Kilogram", func(t *testing.T) {
		// 2,500g is 1,500g past the allowance, billed as 2 kilograms
		fee := calc.FeeFor(1_000_000, "Lagos", 2500)

		assert.Equal(t, money.Money(600_000), fee)
	})

	t.Run("No Surcharge Within Allowance", func(t *testing.T) {
		fee := calc.FeeFor(1_000_000, "Lagos", 1000)

		assert.Equal(t, money.Money(500_000), fee)
	})

	t.Run("Remote And Heavy Combine", func(t *testing.T) {
		fee := calc.FeeFor(1_000_000, "Adamawa", 3000)

		assert.Equal(t, money.Money(850_000), fee)
	})

	t.Run("Threshold Wins Outright", func(t *testing.T) {
		fee := calc.FeeFor(5_000_000, "Borno", 9000)

		assert.Equal(t, money.Money(0), fee)
	})
}

func TestProgress(t *testing.T) {
	calc := shipping.NewCalculator()

	assert.InDelta(t, 0, calc.Progress(0), 0.001)
	assert.InDelta(t, 50, calc.Progress(2_500_000), 0.001)
	assert.InDelta(t, 100, calc.Progress(5_000_000), 0.001)
	assert.InDelta(t, 100, calc.Progress(8_000_000), 0.001)
}

func TestRemaining(t *testing.T) {
	calc := shipping.NewCalculator()

	assert.Equal(t, money.Money(5_000_000), calc.Remaining(0))
	assert.Equal(t, money.Money(1), calc.Remaining(4_999_999))
	assert.Equal(t, money.Money(0), calc.Remaining(5_000_000))
	assert.Equal(t, money.Money(0), calc.Remaining(6_000_000))
}

func TestEstimateWeight(t *testing.T) {
	tests := []struct {
		name     string
		expected int
	}{
		{"Bosch Cordless Drill", 2000},
		{"Circular Saw Blade", 2000},
		{"Claw Hammer 16oz", 500},
		{"Adjustable Wrench", 500},
		{"Wood Screws Pack", 100},
		{"Safety Helmet", 300},
		{"Work Gloves", 300},
		{"Measuring Tape", 1000},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, shipping.EstimateWeight(tc.name))
		})
	}
}
