package contract

import (
	"math/bits"

	"defai_contracts/sdk"
)

// -----------------------------------------------------------------------------
// Arithmetic & split engine
// -----------------------------------------------------------------------------
// Every fee/refund/profit split funnels through here. Multiplications widen to
// 128 bit before dividing; balance adds/subs abort instead of wrapping.

// splitBps returns (fee, remainder) for a basis-point cut of total.
// fee = floor(total*feeBps/10000), remainder = total - fee.
func splitBps(total uint64, feeBps uint16) (uint64, uint64) {
	fee := mulDivU64(total, uint64(feeBps), BpsDenominator)
	return fee, total - fee
}

// mulDivU64 computes floor(a*b/den) with a 128-bit intermediate.
func mulDivU64(a, b, den uint64) uint64 {
	if den == 0 {
		sdk.Abort("division by zero")
	}
	hi, lo := bits.Mul64(a, b)
	if hi >= den {
		sdk.Abort("arithmetic overflow")
	}
	quo, _ := bits.Div64(hi, lo, den)
	return quo
}

// checkedAdd aborts on signed overflow instead of wrapping a balance.
func checkedAdd(a, b int64) int64 {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		sdk.Abort("arithmetic overflow")
	}
	return sum
}

// checkedSub aborts when the subtraction would wrap.
func checkedSub(a, b int64) int64 {
	diff := a - b
	if (b > 0 && diff > a) || (b < 0 && diff < a) {
		sdk.Abort("arithmetic overflow")
	}
	return diff
}

// checkedAddU64 is the unsigned flavour for escrow/vesting totals.
func checkedAddU64(a, b uint64) uint64 {
	sum := a + b
	if sum < a {
		sdk.Abort("arithmetic overflow")
	}
	return sum
}

// checkedSubU64 aborts rather than wrapping below zero.
func checkedSubU64(a, b uint64) uint64 {
	if b > a {
		sdk.Abort("arithmetic overflow")
	}
	return a - b
}

// shareOf computes floor(total*pct/100) for beneficiary percentages.
func shareOf(total uint64, pct uint8) uint64 {
	return mulDivU64(total, uint64(pct), 100)
}
