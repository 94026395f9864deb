package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundCents(t *testing.T) {
	assert.Equal(t, 10.01, RoundCents(10.006))
	assert.Equal(t, 10.0, RoundCents(10.004))
	assert.Equal(t, -800.0, RoundCents(-800))
	assert.Equal(t, 0.0, RoundCents(0))
}

func TestSplitAmount(t *testing.T) {
	fee, payout := SplitAmount(800)
	assert.Equal(t, 40.0, fee)
	assert.Equal(t, 760.0, payout)

	fee, payout = SplitAmount(1000)
	assert.Equal(t, 50.0, fee)
	assert.Equal(t, 950.0, payout)

	// an amount where the raw fee needs rounding
	fee, payout = SplitAmount(123.45)
	assert.Equal(t, 6.17, fee)
	assert.Equal(t, 117.28, payout)
}

func TestSplitAmountReconciles(t *testing.T) {
	// fee + payout must equal the amount exactly at cent precision
	for _, amount := range []float64{0.01, 1, 19.99, 123.45, 250, 800, 999.99, 10000} {
		fee, payout := SplitAmount(amount)
		assert.Equal(t, RoundCents(amount), RoundCents(fee+payout), "amount %v", amount)
		assert.GreaterOrEqual(t, fee, 0.0)
		assert.GreaterOrEqual(t, payout, 0.0)
	}
}

func TestAgreedAmount(t *testing.T) {
	job := Job{Budget: 1000}
	assert.Equal(t, 1000.0, job.AgreedAmount())
	price := 800.0
	job.AgreedPrice = &price
	assert.Equal(t, 800.0, job.AgreedAmount())
}
