package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"defai_contracts/sdk"
)

// setupOgVesting gives bob a 90000 OG schedule and a funded escrow, so the
// linear math lands on whole numbers: 1000 per vesting day.
func setupOgVesting(t *testing.T) (*MockENV, *MockHost) {
	_, env, host := setupSwap(t)
	root := encodeHash32(whitelistLeaf(sdk.Address(bobAddr), 90000))
	asUser(env, ownerAddr)
	callOK(t, SwapSetWhitelist, `{"og_root":"`+root+`"}`)
	allowTransfer(env, 100000, "hive")
	callOK(t, SwapFundEscrow, `{"amount":100000}`)
	asUser(env, bobAddr)
	callOK(t, SwapOgTier0, `{"amount":90000,"proof":[]}`)
	return env, host
}

func TestVestingClaimCliff(t *testing.T) {
	env, host := setupOgVesting(t)

	atTime(env, baseTime+CliffDuration-1)
	requireAbort(t, "still in cliff", func() {
		VestingClaim(strptr(`{"nft_id":1}`))
	})

	// at the cliff two of ninety days have linearly vested
	atTime(env, baseTime+CliffDuration)
	callOK(t, VestingClaim, `{"nft_id":1}`)
	assert.Equal(t, int64(2000), host.LastTransfer().Amount)
	assert.Equal(t, uint64(2000), loadNftVesting(1).Released)
}

func TestVestingClaimLinear(t *testing.T) {
	env, host := setupOgVesting(t)

	atTime(env, baseTime+CliffDuration)
	callOK(t, VestingClaim, `{"nft_id":1}`)

	// halfway point: 45000 vested, 2000 already released
	atTime(env, baseTime+VestingDuration/2)
	callOK(t, VestingClaim, `{"nft_id":1}`)
	assert.Equal(t, int64(43000), host.LastTransfer().Amount)

	requireAbort(t, "nothing to claim", func() {
		VestingClaim(strptr(`{"nft_id":1}`))
	})

	// the tail pays out whatever is left, never more than the total
	atTime(env, baseTime+VestingDuration+3600)
	callOK(t, VestingClaim, `{"nft_id":1}`)
	assert.Equal(t, int64(45000), host.LastTransfer().Amount)
	assert.Equal(t, uint64(90000), loadNftVesting(1).Released)
}

func TestVestingClaimNeedsEscrow(t *testing.T) {
	env, _ := setupOgVesting(t)
	setSwapEscrow(100)
	atTime(env, baseTime+CliffDuration)
	requireAbort(t, "insufficient escrow funds", func() {
		VestingClaim(strptr(`{"nft_id":1}`))
	})
}

func TestVestingClaimOwnerOnly(t *testing.T) {
	env, _ := setupOgVesting(t)
	asUser(env, carolAddr)
	atTime(env, baseTime+CliffDuration)
	requireAbort(t, "not nft owner", func() {
		VestingClaim(strptr(`{"nft_id":1}`))
	})
}

func TestVestingPaysBonusRedeemPaysBase(t *testing.T) {
	_, env, host := setupSwap(t)
	asUser(env, bobAddr)
	allowTransfer(env, 2100, "hive")
	callOK(t, SwapDefai, `{"tier":2}`)
	bonusTotal := int64(loadNftVesting(1).Total)
	assert.True(t, bonusTotal >= 300)

	asUser(env, ownerAddr)
	allowTransfer(env, 10000, "hive")
	callOK(t, SwapFundEscrow, `{"amount":10000}`)

	// the fully vested schedule pays out exactly the bonus
	asUser(env, bobAddr)
	atTime(env, baseTime+VestingDuration)
	callOK(t, VestingClaim, `{"nft_id":1}`)
	assert.Equal(t, bonusTotal, host.LastTransfer().Amount)

	// and the base price is still redeemable afterwards
	callOK(t, SwapRedeem, `{"nft_id":1}`)
	assert.Equal(t, int64(2000), host.LastTransfer().Amount)
}

func TestAirdropClaimLifecycle(t *testing.T) {
	_, env, host := setupSwap(t)
	root := encodeHash32(whitelistLeaf(sdk.Address(carolAddr), 9000))
	asUser(env, ownerAddr)
	callOK(t, SwapSetWhitelist, `{"airdrop_root":"`+root+`"}`)
	allowTransfer(env, 10000, "hive")
	callOK(t, SwapFundEscrow, `{"amount":10000}`)

	asUser(env, carolAddr)
	requireAbort(t, "no airdrop vesting", func() {
		AirdropVestingClaim(strptr(``))
	})
	requireAbort(t, "merkle proof invalid", func() {
		AirdropClaim(strptr(`{"amount":9001,"proof":[]}`))
	})
	callOK(t, AirdropClaim, `{"amount":9000,"proof":[]}`)
	requireAbort(t, "airdrop already claimed", func() {
		AirdropClaim(strptr(`{"amount":9000,"proof":[]}`))
	})

	// no NFT is minted on the airdrop path
	assert.Nil(t, stateGet(nftKey(1)))

	atTime(env, baseTime+CliffDuration-1)
	requireAbort(t, "still in cliff", func() {
		AirdropVestingClaim(strptr(``))
	})

	atTime(env, baseTime+VestingDuration)
	callOK(t, AirdropVestingClaim, ``)
	assert.Equal(t, int64(9000), host.LastTransfer().Amount)
	assert.Equal(t, uint64(9000), loadAirdropVesting(sdk.Address(carolAddr)).Released)

	requireAbort(t, "nothing to claim", func() {
		AirdropVestingClaim(strptr(``))
	})
}
