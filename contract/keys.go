package contract

import "defai_contracts/sdk"

// packU64LEInline sprinkles a uint64 into dst in little-endian order so our keys stay compact.
func packU64LEInline(x uint64, dst []byte) {
	dst[0] = byte(x)
	dst[1] = byte(x >> 8)
	dst[2] = byte(x >> 16)
	dst[3] = byte(x >> 24)
	dst[4] = byte(x >> 32)
	dst[5] = byte(x >> 40)
	dst[6] = byte(x >> 48)
	dst[7] = byte(x >> 56)
}

// packU64LE appends the encoded number to dst and returns the new slice.
func packU64LE(x uint64, dst []byte) []byte {
	return append(dst,
		byte(x),
		byte(x>>8),
		byte(x>>16),
		byte(x>>24),
		byte(x>>32),
		byte(x>>40),
		byte(x>>48),
		byte(x>>56),
	)
}

// idKey builds prefix|id keys for records addressed by a single counter id.
func idKey(prefix byte, id uint64) string {
	var buf [9]byte
	buf[0] = prefix
	packU64LEInline(id, buf[1:])
	return string(buf[:])
}

// idAddrKey mixes an id plus address bytes to avoid nested maps in host storage.
func idAddrKey(prefix byte, id uint64, addr sdk.Address) string {
	addrStr := addr.String()
	buf := make([]byte, 0, 1+8+len(addrStr))
	buf = append(buf, prefix)
	buf = packU64LE(id, buf)
	buf = append(buf, addrStr...)
	return string(buf)
}

// idStrKey mixes an id plus an arbitrary string part (asset symbol, nft id).
func idStrKey(prefix byte, id uint64, part string) string {
	buf := make([]byte, 0, 1+8+len(part))
	buf = append(buf, prefix)
	buf = packU64LE(id, buf)
	buf = append(buf, part...)
	return string(buf)
}

// marketplace

func appKey(id uint64) string {
	return idKey(kApp, id)
}

func accessGrantKey(appID uint64, user sdk.Address) string {
	return idAddrKey(kAccessGrant, appID, user)
}

func reviewKey(appID uint64, reviewer sdk.Address) string {
	return idAddrKey(kReview, appID, reviewer)
}

func creatorEarningsKey(creator sdk.Address) string {
	return string(kCreatorEarnings) + creator.String()
}

// estate vault

func estateKey(id uint64) string {
	return idKey(kEstate, id)
}

func estateVaultKey(estateID uint64, asset string) string {
	return idStrKey(kEstateVault, estateID, asset)
}

func estateAssetKey(estateID uint64, identifier string) string {
	return idStrKey(kEstateAsset, estateID, identifier)
}

func beneficiaryClaimKey(estateID uint64, beneficiary sdk.Address) string {
	return idAddrKey(kBeneficiaryClm, estateID, beneficiary)
}

func emergencyLockKey(estateID uint64) string {
	return idKey(kEmergencyLock, estateID)
}

func recoveryKey(estateID uint64) string {
	return idKey(kRecovery, estateID)
}

func withdrawRequestKey(estateID uint64) string {
	return idKey(kWithdrawRequest, estateID)
}

// governance

func multisigKey(id uint64) string {
	return idKey(kMultisig, id)
}

func multisigByAdminKey(admin sdk.Address) string {
	return string(kMultisigByAdmin) + admin.String()
}

// proposalKey scopes proposals inside their multisig via a second packed id.
func proposalKey(multisigID uint64, proposalID uint64) string {
	var buf [17]byte
	buf[0] = kProposal
	packU64LEInline(multisigID, buf[1:9])
	packU64LEInline(proposalID, buf[9:])
	return string(buf[:])
}

// swap / minting

func nftKey(id uint64) string {
	return idKey(kNft, id)
}

func bonusRecordKey(nftID uint64) string {
	return idKey(kBonusRecord, nftID)
}

func vestingRecordKey(nftID uint64) string {
	return idKey(kVestingRecord, nftID)
}

func userTaxKey(user sdk.Address) string {
	return string(kUserTax) + user.String()
}

func ogClaimKey(user sdk.Address) string {
	return string(kOgClaim) + user.String()
}

func airdropVestingKey(user sdk.Address) string {
	return string(kAirdropVesting) + user.String()
}
