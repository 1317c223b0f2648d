package contract

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitBpsConserves(t *testing.T) {
	cases := []struct {
		total  uint64
		feeBps uint16
	}{
		{0, 0},
		{0, 10000},
		{1, 1},
		{999, 250},
		{1000, 250},
		{12345678, 9999},
		{math.MaxUint64, 0},
		{math.MaxUint64, 10000},
		{math.MaxUint64, 5000},
	}
	for _, c := range cases {
		fee, rem := splitBps(c.total, c.feeBps)
		assert.Equal(t, c.total, fee+rem, "total=%d fee_bps=%d", c.total, c.feeBps)
	}
}

func TestSplitBpsFloor(t *testing.T) {
	fee, rem := splitBps(1000, 250)
	assert.Equal(t, uint64(25), fee)
	assert.Equal(t, uint64(975), rem)

	// 999 * 250 / 10000 = 24.975 floors to 24
	fee, rem = splitBps(999, 250)
	assert.Equal(t, uint64(24), fee)
	assert.Equal(t, uint64(975), rem)

	fee, _ = splitBps(math.MaxUint64, 10000)
	assert.Equal(t, uint64(math.MaxUint64), fee)
}

func TestMulDivU64Aborts(t *testing.T) {
	requireAbort(t, "division by zero", func() {
		mulDivU64(1, 1, 0)
	})
	requireAbort(t, "arithmetic overflow", func() {
		mulDivU64(math.MaxUint64, math.MaxUint64, 1)
	})
}

func TestCheckedArithmetic(t *testing.T) {
	assert.Equal(t, int64(3), checkedAdd(1, 2))
	assert.Equal(t, int64(-1), checkedSub(1, 2))
	requireAbort(t, "arithmetic overflow", func() {
		checkedAdd(math.MaxInt64, 1)
	})
	requireAbort(t, "arithmetic overflow", func() {
		checkedSub(math.MinInt64, 1)
	})
	requireAbort(t, "arithmetic overflow", func() {
		checkedAddU64(math.MaxUint64, 1)
	})
	requireAbort(t, "arithmetic overflow", func() {
		checkedSubU64(0, 1)
	})
}

func TestShareOf(t *testing.T) {
	assert.Equal(t, uint64(600), shareOf(1000, 60))
	assert.Equal(t, uint64(400), shareOf(1000, 40))
	assert.Equal(t, uint64(0), shareOf(1, 50))
	assert.Equal(t, uint64(1000), shareOf(1000, 100))
}
