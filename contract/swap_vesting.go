package contract

import (
	"defai_contracts/sdk"
)

// -----------------------------------------------------------------------------
// Vesting and airdrop claims
// -----------------------------------------------------------------------------

// payVestedAmount computes the claimable slice, checks escrow liquidity and
// pays it out. Returns the paid amount with the schedule's Released advanced.
func payVestedAmount(v *VestingSchedule, to sdk.Address, now int64) int64 {
	if now < v.CliffEnd {
		sdk.Abort("still in cliff")
	}
	amount := claimableAmount(v.Total, v.Released, v.Start, v.End, v.CliffEnd, now)
	if amount == 0 {
		sdk.Abort("nothing to claim")
	}
	payout := int64(amount)
	escrow := getSwapEscrow()
	if escrow < payout {
		sdk.Abort("insufficient escrow funds")
	}
	v.Released = checkedAddU64(v.Released, amount)
	setSwapEscrow(escrow - payout)
	getHost().Transfer(to, payout, nativeAsset())
	return payout
}

// VestingClaim releases the vested slice of an NFT's bonus schedule. Reroll
// fees never touch this path; they come off the redemption payout.
//
//go:wasmexport vesting_claim
func VestingClaim(payload *string) *string {
	requireSwapLive()
	args := decodeArgs[SwapNftArgs](payload, "vesting claim")
	user := getSenderAddress()
	nft := loadNft(args.NftID)
	if nft.Owner != user.String() {
		sdk.Abort("not nft owner")
	}
	if nft.Claimed {
		sdk.Abort("nft already redeemed")
	}
	v := loadNftVesting(nft.ID)
	if v == nil {
		sdk.Abort("no vesting schedule")
	}

	paid := payVestedAmount(v, user, nowUnix())
	saveNftVesting(nft.ID, v)
	emitVestingClaimed(nft.ID, user.String(), paid, int64(v.Released))
	return okResult("claimed", "amount", Int64ToString(paid))
}

// AirdropClaimArgs proves membership in the airdrop whitelist.
type AirdropClaimArgs struct {
	Amount uint64   `json:"amount"`
	Proof  []string `json:"proof"`
}

// AirdropClaim verifies the caller against the airdrop root and opens their
// vesting schedule. No NFT is minted on this path.
//
//go:wasmexport airdrop_claim
func AirdropClaim(payload *string) *string {
	requireSwapLive()
	args := decodeArgs[AirdropClaimArgs](payload, "airdrop claim")
	user := getSenderAddress()
	if args.Amount == 0 {
		sdk.Abort("amount must be positive")
	}
	root := getWhitelistRoot(AirdropRootKey)
	if root == "" {
		sdk.Abort("airdrop whitelist not set")
	}
	if loadAirdropVesting(user) != nil {
		sdk.Abort("airdrop already claimed")
	}
	leaf := whitelistLeaf(user, args.Amount)
	if !verifyMerkleProof(leaf, decodeProof(args.Proof), decodeHash32(root, "airdrop root")) {
		sdk.Abort("merkle proof invalid")
	}

	now := nowUnix()
	saveAirdropVesting(user, &VestingSchedule{
		Total:    args.Amount,
		Start:    now,
		End:      now + VestingDuration,
		CliffEnd: now + CliffDuration,
	})
	emitAirdropClaimed(user.String(), int64(args.Amount))
	return okResult("airdrop claimed")
}

// AirdropVestingClaim releases the vested slice of the caller's airdrop.
//
//go:wasmexport airdrop_vesting_claim
func AirdropVestingClaim(payload *string) *string {
	requireSwapLive()
	user := getSenderAddress()
	v := loadAirdropVesting(user)
	if v == nil {
		sdk.Abort("no airdrop vesting")
	}

	paid := payVestedAmount(v, user, nowUnix())
	saveAirdropVesting(user, v)
	emitAirdropVested(user.String(), paid, int64(v.Released))
	return okResult("claimed", "amount", Int64ToString(paid))
}
