package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveBonusFixedTier(t *testing.T) {
	setupTest()
	// tier 0 has a fixed zero bonus and must not touch any entropy source
	assert.Equal(t, uint16(0), deriveBonusBps(0, aliceAddr, "1", true))
}

func TestDeriveBonusCommitmentNotReady(t *testing.T) {
	setupTest()
	requireAbort(t, "randomness not ready", func() {
		deriveBonusBps(1, aliceAddr, "1", true)
	})
}

func TestDeriveBonusConsumesCommitment(t *testing.T) {
	setupTest()
	commitment := keccak256([]byte("oracle entropy"))
	saveRandomness(&RandomnessState{Commitment: encodeHash32(commitment), CommittedAt: baseTime})

	bonus := deriveBonusBps(1, aliceAddr, "1", true)
	assert.LessOrEqual(t, bonus, uint16(1500))

	// the commitment is spent, a second derivation needs a fresh commit
	requireAbort(t, "randomness not ready", func() {
		deriveBonusBps(1, aliceAddr, "2", true)
	})
}

func TestDeriveBonusFallbackInRange(t *testing.T) {
	_, env, _ := setupTest()
	for tier := uint8(1); tier < TierCount; tier++ {
		env.NextTx()
		bonus := deriveBonusBps(tier, aliceAddr, "7", false)
		assert.GreaterOrEqual(t, bonus, tierBonusRanges[tier][0], "tier %d", tier)
		assert.LessOrEqual(t, bonus, tierBonusRanges[tier][1], "tier %d", tier)
	}
}

func TestDeriveBonusInvalidTier(t *testing.T) {
	setupTest()
	requireAbort(t, "invalid tier", func() {
		deriveBonusBps(TierCount, aliceAddr, "1", false)
	})
}
