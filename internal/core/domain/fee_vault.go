package domain

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// FeeVault holds the percentage fee applied to every sale and the fees
// accumulated so far. The counter only increases on sales and is zeroed by a
// full withdrawal.
type FeeVault struct {
	PercentageFee uint32
	CollectedFees uint64
}

// NewFeeVault returns a vault with the given starting percentage fee.
func NewFeeVault(percentageFee uint32) (*FeeVault, error) {
	if percentageFee > 100 {
		return nil, ErrFeeOutOfRange
	}
	return &FeeVault{PercentageFee: percentageFee}, nil
}

// SetPercentageFee updates the fee applied to future sales. Already active
// listings are charged at the rate in force when they are fulfilled.
func (v *FeeVault) SetPercentageFee(pct uint32) error {
	if pct > 100 {
		return ErrFeeOutOfRange
	}
	v.PercentageFee = pct
	return nil
}

// SplitPrice returns the fee cut and the seller proceeds for a sale at the
// given price. The fee is floor(price * pct / 100), so fee + proceeds always
// equals price and fee never exceeds it.
func (v *FeeVault) SplitPrice(price uint64) (fee, proceeds uint64) {
	priceAmount := decimal.NewFromBigInt(new(big.Int).SetUint64(price), 0)
	feeAmount := priceAmount.
		Mul(decimal.NewFromInt(int64(v.PercentageFee))).
		Div(decimal.NewFromInt(100)).
		Floor()
	fee = feeAmount.BigInt().Uint64()
	return fee, price - fee
}

// Collect adds the fee cut of a sale to the accumulated counter.
func (v *FeeVault) Collect(fee uint64) {
	v.CollectedFees += fee
}

// Drain zeroes the counter and returns the prior balance. It must be called
// before the payout push so that a reentrant withdrawal observes an empty
// vault; the caller restores the balance with Collect if the push fails.
func (v *FeeVault) Drain() uint64 {
	collected := v.CollectedFees
	v.CollectedFees = 0
	return collected
}
