package contract

import (
	"encoding/binary"

	"defai_contracts/sdk"
)

// -----------------------------------------------------------------------------
// Randomized bonus generator
// -----------------------------------------------------------------------------
// Two entropy sources behind the swap config flag: an oracle commitment that a
// prior transaction stored, or a fallback hash over caller, subject, clock,
// block height and block id. The fallback is validator influenceable and is
// NOT a cryptographic VRF; it only keeps the bonus unpredictable to casual
// callers.

// RandomnessState holds the oracle commitment. A zero commitment means no
// randomness is ready; consuming a commitment zeroes it again so every
// derivation uses fresh entropy.
type RandomnessState struct {
	Commitment  string `json:"commitment"`
	CommittedAt int64  `json:"committed_at"`
}

func loadRandomness() *RandomnessState {
	ptr := stateGet(RandomnessKey)
	if ptr == nil || *ptr == "" {
		return &RandomnessState{Commitment: encodeHash32([32]byte{})}
	}
	return FromJSON[RandomnessState](*ptr, "randomness state")
}

func saveRandomness(rs *RandomnessState) {
	stateSet(RandomnessKey, ToJSON(rs, "randomness state"))
}

// zeroCommitment reports whether the stored commitment is still all zero.
func zeroCommitment(commitment [32]byte) bool {
	return commitment == [32]byte{}
}

// deriveBonusBps maps fresh entropy into the tier's bonus range.
func deriveBonusBps(tier uint8, caller sdk.Address, subject string, useCommitment bool) uint16 {
	requireTier(tier)
	min := tierBonusRanges[tier][0]
	max := tierBonusRanges[tier][1]
	if min == max {
		return min
	}

	var digest [32]byte
	if useCommitment {
		rs := loadRandomness()
		commitment := decodeHash32(rs.Commitment, "randomness commitment")
		if zeroCommitment(commitment) {
			sdk.Abort("randomness not ready")
		}
		digest = keccak256(commitment[:], []byte(caller.String()), []byte(subject))
		// consume so a reroll cannot replay the same entropy
		rs.Commitment = encodeHash32([32]byte{})
		saveRandomness(rs)
	} else {
		env := currentEnv()
		var height [8]byte
		packU64LEInline(env.BlockHeight, height[:])
		var clock [8]byte
		packU64LEInline(uint64(nowUnix()), clock[:])
		digest = keccak256(
			[]byte(caller.String()),
			[]byte(subject),
			clock[:],
			height[:],
			[]byte(env.BlockId),
			[]byte(env.TxId),
		)
	}

	value := binary.LittleEndian.Uint64(digest[:8])
	span := uint64(max-min) + 1
	return min + uint16(value%span)
}
