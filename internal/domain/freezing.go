package domain

import "math"

// FreezingParams is the collateral reservation computed once, at trader
// assignment, for an IN transaction. Values are stored on the transaction
// and never recomputed, even if the trader's fee parameters change later.
type FreezingParams struct {
	AdjustedRate         float64
	FrozenUsdtAmount     float64
	CalculatedCommission float64
	TotalRequired        float64
}

// CalculateFreezing computes how much settlement-currency collateral must
// be reserved to cover a fiat obligation. The quoted rate is marked down
// by kkkPercent so the reservation survives slippage; the commission is
// taken on the settlement amount at the undiscounted rate.
func CalculateFreezing(amountFiat, rate, kkkPercent, feeInPercent float64) FreezingParams {
	adjustedRate := rate * (1 - kkkPercent/100)
	frozen := amountFiat / adjustedRate
	base := amountFiat / rate
	commission := base * (feeInPercent / 100)

	return FreezingParams{
		AdjustedRate:         adjustedRate,
		FrozenUsdtAmount:     frozen,
		CalculatedCommission: commission,
		TotalRequired:        frozen + commission,
	}
}

// RoundDown2 truncates to two decimal places. Truncation, not
// rounding-to-nearest: amounts extracted from notification noise and
// profit increments must never over-credit.
func RoundDown2(v float64) float64 {
	return math.Trunc(v*100) / 100
}
