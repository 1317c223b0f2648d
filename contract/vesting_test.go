package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVestedToDate(t *testing.T) {
	start := baseTime
	cliff := start + CliffDuration
	end := start + VestingDuration
	total := uint64(90_000)

	assert.Equal(t, uint64(0), vestedToDate(total, start, end, cliff, start))
	assert.Equal(t, uint64(0), vestedToDate(total, start, end, cliff, cliff-1))
	// right after the cliff vesting picks up from start, not from the cliff
	assert.Equal(t, uint64(2000), vestedToDate(total, start, end, cliff, cliff))
	assert.Equal(t, uint64(45_000), vestedToDate(total, start, end, cliff, start+VestingDuration/2))
	assert.Equal(t, total, vestedToDate(total, start, end, cliff, end))
	assert.Equal(t, total, vestedToDate(total, start, end, cliff, end+1))
}

func TestVestingMonotonic(t *testing.T) {
	start := baseTime
	cliff := start + CliffDuration
	end := start + VestingDuration
	total := uint64(123_457)

	prev := uint64(0)
	for now := start; now <= end; now += VestingDuration / 20 {
		v := vestedToDate(total, start, end, cliff, now)
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
	assert.Equal(t, total, prev)
}

func TestClaimableAmount(t *testing.T) {
	start := baseTime
	cliff := start + CliffDuration
	end := start + VestingDuration
	total := uint64(10_000)

	half := start + VestingDuration/2
	assert.Equal(t, uint64(5000), claimableAmount(total, 0, start, end, cliff, half))
	assert.Equal(t, uint64(2000), claimableAmount(total, 3000, start, end, cliff, half))
	// fully released leaves nothing
	assert.Equal(t, uint64(0), claimableAmount(total, total, start, end, cliff, end+1))
	// released beyond vested clamps to zero instead of wrapping
	assert.Equal(t, uint64(0), claimableAmount(total, 9000, start, end, cliff, half))
}
