package service

import "math"

// PayinFee is the gross -> {fee, net} split for a collection.
type PayinFee struct {
	Fee       float64
	NetAmount float64
}

// PayoutFee is the disbursement fee and the total ledger deduction.
type PayoutFee struct {
	Fee            float64
	TotalDeduction float64
}

// Round2 rounds half away from zero to two decimals. All monetary results
// pass through here so replayed ledgers reproduce stored values exactly.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CalculatePayinFee splits a gross pay-in by the frozen per-order rate.
func CalculatePayinFee(amount, rate float64) PayinFee {
	fee := Round2(amount * rate)
	return PayinFee{
		Fee:       fee,
		NetAmount: Round2(amount - fee),
	}
}

// CalculatePayoutFee computes the payout fee (rate share plus a fixed
// channel fee) and the total amount reserved from the merchant balance.
// Minimum-amount thresholds are channel-specific and enforced by callers.
func CalculatePayoutFee(amount, rate, fixedFee float64) PayoutFee {
	fee := Round2(amount*rate) + fixedFee
	return PayoutFee{
		Fee:            fee,
		TotalDeduction: amount + fee,
	}
}

// AdminProfit is the operator's take on a settled pay-in: the merchant fee
// minus the operator's own channel cost. It may be negative when a
// merchant override rate undercuts the channel cost rate.
func AdminProfit(gross, fee, costRate float64) float64 {
	return Round2(fee - gross*costRate)
}
