package contract

import (
	"strconv"

	"defai_contracts/sdk"
)

// -----------------------------------------------------------------------------
// Swap program entities and persistence
// -----------------------------------------------------------------------------

// SwapConfig is the singleton swap/minting configuration.
type SwapConfig struct {
	Admin           string           `json:"admin"`
	PendingAdmin    string           `json:"pending_admin,omitempty"`
	AdminProposedAt int64            `json:"admin_proposed_at,omitempty"`
	Oracle          string           `json:"oracle,omitempty"`
	UseCommitment   bool             `json:"use_commitment"`
	Paused          bool             `json:"paused"`
	OldAsset        string           `json:"old_asset"`
	TierPrices      [TierCount]int64 `json:"tier_prices"`
	TierSupply      [TierCount]uint64 `json:"tier_supply"`
	TierMinted      [TierCount]uint64 `json:"tier_minted"`
	OgReserve       uint64           `json:"og_reserve"`
	OgMinted        uint64           `json:"og_minted"`
	TotalSwaps      uint64           `json:"total_swaps"`
}

func loadSwapConfig() *SwapConfig {
	ptr := stateGet(SwapConfigKey)
	if ptr == nil || *ptr == "" {
		return nil
	}
	return FromJSON[SwapConfig](*ptr, "swap config")
}

func saveSwapConfig(cfg *SwapConfig) {
	stateSet(SwapConfigKey, ToJSON(cfg, "swap config"))
}

func requireSwapConfig() *SwapConfig {
	cfg := loadSwapConfig()
	if cfg == nil {
		sdk.Abort("swap not initialized")
	}
	return cfg
}

func requireSwapAdmin() *SwapConfig {
	cfg := requireSwapConfig()
	if getSenderAddress().String() != cfg.Admin {
		sdk.Abort("not swap admin")
	}
	return cfg
}

// NftRecord is one minted swap NFT held in contract state.
type NftRecord struct {
	ID          uint64    `json:"id"`
	Owner       string    `json:"owner"`
	Tier        uint8     `json:"tier"`
	Source      NftSource `json:"source"`
	BonusBps    uint16    `json:"bonus_bps"`
	PricePaid   int64     `json:"price_paid"`
	FeeDeducted int64     `json:"fee_deducted"`
	Claimed     bool      `json:"claimed"`
	MintedAt    int64     `json:"minted_at"`
}

func saveNft(n *NftRecord) {
	stateSet(nftKey(n.ID), ToJSON(n, "nft record"))
}

func loadNft(id uint64) *NftRecord {
	ptr := stateGet(nftKey(id))
	if ptr == nil || *ptr == "" {
		sdk.Abort("nft not found")
	}
	return FromJSON[NftRecord](*ptr, "nft record")
}

// BonusRecord keeps the derivation trail per NFT for indexers.
type BonusRecord struct {
	NftID    uint64 `json:"nft_id"`
	BonusBps uint16 `json:"bonus_bps"`
	Fallback bool   `json:"fallback"`
	Rolls    uint32 `json:"rolls"`
	RolledAt int64  `json:"rolled_at"`
}

func saveBonusRecord(b *BonusRecord) {
	stateSet(bonusRecordKey(b.NftID), ToJSON(b, "bonus record"))
}

func loadBonusRecord(nftID uint64) *BonusRecord {
	ptr := stateGet(bonusRecordKey(nftID))
	if ptr == nil || *ptr == "" {
		return nil
	}
	return FromJSON[BonusRecord](*ptr, "bonus record")
}

// VestingSchedule is the linear release attached to an NFT or airdrop claim.
type VestingSchedule struct {
	Total    uint64 `json:"total"`
	Released uint64 `json:"released"`
	Start    int64  `json:"start"`
	End      int64  `json:"end"`
	CliffEnd int64  `json:"cliff_end"`
}

func saveNftVesting(nftID uint64, v *VestingSchedule) {
	stateSet(vestingRecordKey(nftID), ToJSON(v, "vesting schedule"))
}

func loadNftVesting(nftID uint64) *VestingSchedule {
	ptr := stateGet(vestingRecordKey(nftID))
	if ptr == nil || *ptr == "" {
		return nil
	}
	return FromJSON[VestingSchedule](*ptr, "vesting schedule")
}

func deleteNftVesting(nftID uint64) {
	stateDelete(vestingRecordKey(nftID))
}

func saveAirdropVesting(user sdk.Address, v *VestingSchedule) {
	stateSet(airdropVestingKey(user), ToJSON(v, "airdrop vesting"))
}

func loadAirdropVesting(user sdk.Address) *VestingSchedule {
	ptr := stateGet(airdropVestingKey(user))
	if ptr == nil || *ptr == "" {
		return nil
	}
	return FromJSON[VestingSchedule](*ptr, "airdrop vesting")
}

// UserTax is the per-user anti-whale escalation record.
type UserTax struct {
	TaxRateBps uint16 `json:"tax_rate_bps"`
	LastSwapAt int64  `json:"last_swap_at"`
	SwapCount  uint64 `json:"swap_count"`
}

func saveUserTax(user sdk.Address, t *UserTax) {
	stateSet(userTaxKey(user), ToJSON(t, "user tax"))
}

func loadUserTax(user sdk.Address) *UserTax {
	ptr := stateGet(userTaxKey(user))
	if ptr == nil || *ptr == "" {
		return nil
	}
	return FromJSON[UserTax](*ptr, "user tax")
}

// swap escrow, one decimal string ledger funding vesting and redemptions

func getSwapEscrow() int64 {
	ptr := stateGet(SwapEscrowKey)
	if ptr == nil || *ptr == "" {
		return 0
	}
	n, _ := strconv.ParseInt(*ptr, 10, 64)
	return n
}

func setSwapEscrow(amount int64) {
	stateSet(SwapEscrowKey, strconv.FormatInt(amount, 10))
}

// whitelist roots, stored as hex

func getWhitelistRoot(key string) string {
	ptr := stateGet(key)
	if ptr == nil {
		return ""
	}
	return *ptr
}

func setWhitelistRoot(key string, root string) {
	stateSet(key, root)
}

// og claim markers, one per user

func hasOgClaim(user sdk.Address) bool {
	ptr := stateGet(ogClaimKey(user))
	return ptr != nil && *ptr != ""
}

func markOgClaim(user sdk.Address, nftID uint64) {
	stateSet(ogClaimKey(user), UInt64ToString(nftID))
}
