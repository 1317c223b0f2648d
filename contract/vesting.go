package contract

// -----------------------------------------------------------------------------
// Vesting schedule engine
// -----------------------------------------------------------------------------
// Cliff + linear release. Pure math; the claim handlers layer the
// still-in-cliff / nothing-to-claim aborts on top.

// vestedToDate returns how much of total has vested at now. Zero before the
// cliff, linear between start and end, total at or past end.
func vestedToDate(total uint64, start, end, cliffEnd, now int64) uint64 {
	if now < cliffEnd {
		return 0
	}
	if now >= end {
		return total
	}
	if end <= start {
		return total
	}
	elapsed := uint64(now - start)
	window := uint64(end - start)
	return mulDivU64(total, elapsed, window)
}

// claimableAmount subtracts what was already released.
func claimableAmount(total, released uint64, start, end, cliffEnd, now int64) uint64 {
	vested := vestedToDate(total, start, end, cliffEnd, now)
	if vested <= released {
		return 0
	}
	return vested - released
}
