package domain

import "math"

// FeeRate is the platform's cut of every released escrow.
const FeeRate = 0.05

// RoundCents rounds an amount to the smallest currency unit.
func RoundCents(n float64) float64 {
	return math.Round(n*100) / 100
}

// SplitAmount computes the fee/payout split for a released escrow. The payout
// is derived by subtraction from the rounded fee, so fee + payout always
// reconciles with the amount exactly at cent precision.
func SplitAmount(amount float64) (fee, payout float64) {
	fee = RoundCents(amount * FeeRate)
	payout = RoundCents(amount - fee)
	return fee, payout
}
