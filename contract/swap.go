package contract

import (
	"strings"

	"defai_contracts/sdk"
)

// -----------------------------------------------------------------------------
// Swap / minting entry points
// -----------------------------------------------------------------------------

// SwapInitArgs configures the tier sale at creation.
type SwapInitArgs struct {
	OldAsset      string             `json:"old_asset"`
	TierPrices    [TierCount]int64   `json:"tier_prices"`
	TierSupply    [TierCount]uint64  `json:"tier_supply"`
	OgReserve     uint64             `json:"og_reserve"`
	UseCommitment bool               `json:"use_commitment"`
}

// SwapInit creates the swap config with the caller as admin.
//
//go:wasmexport swap_init
func SwapInit(payload *string) *string {
	requireInitialized()
	if loadSwapConfig() != nil {
		sdk.Abort("swap already initialized")
	}
	args := decodeArgs[SwapInitArgs](payload, "swap init")
	oldAsset := strings.TrimSpace(args.OldAsset)
	if oldAsset == "" {
		sdk.Abort("old asset symbol empty")
	}
	for _, p := range args.TierPrices {
		if p < 0 {
			sdk.Abort("tier price must not be negative")
		}
	}

	cfg := SwapConfig{
		Admin:         getSenderAddress().String(),
		UseCommitment: args.UseCommitment,
		OldAsset:      oldAsset,
		TierPrices:    args.TierPrices,
		TierSupply:    args.TierSupply,
		OgReserve:     args.OgReserve,
	}
	saveSwapConfig(&cfg)
	emitSwapInit(cfg.Admin)
	return okResult("swap initialized")
}

// SwapUpdateConfigArgs mutates the sale; nil fields stay untouched.
type SwapUpdateConfigArgs struct {
	TierPrices *[TierCount]int64  `json:"tier_prices,omitempty"`
	TierSupply *[TierCount]uint64 `json:"tier_supply,omitempty"`
	OldAsset   *string            `json:"old_asset,omitempty"`
	OgReserve  *uint64            `json:"og_reserve,omitempty"`
}

// SwapUpdateConfig is the admin-only tuning path.
//
//go:wasmexport swap_update_config
func SwapUpdateConfig(payload *string) *string {
	cfg := requireSwapAdmin()
	args := decodeArgs[SwapUpdateConfigArgs](payload, "swap config")
	field := ""
	if args.TierPrices != nil {
		for _, p := range args.TierPrices {
			if p < 0 {
				sdk.Abort("tier price must not be negative")
			}
		}
		cfg.TierPrices = *args.TierPrices
		field = "prices"
	}
	if args.TierSupply != nil {
		for i, s := range args.TierSupply {
			if s > 0 && s < cfg.TierMinted[i] {
				sdk.Abort("tier supply below minted")
			}
		}
		cfg.TierSupply = *args.TierSupply
		field = "supply"
	}
	if args.OldAsset != nil {
		if strings.TrimSpace(*args.OldAsset) == "" {
			sdk.Abort("old asset symbol empty")
		}
		cfg.OldAsset = strings.TrimSpace(*args.OldAsset)
		field = "old_asset"
	}
	if args.OgReserve != nil {
		if *args.OgReserve < cfg.OgMinted {
			sdk.Abort("og reserve below minted")
		}
		cfg.OgReserve = *args.OgReserve
		field = "og_reserve"
	}
	if field == "" {
		sdk.Abort("nothing to update")
	}
	saveSwapConfig(cfg)
	emitSwapConfigUpdated(field)
	return okResult("swap config updated")
}

// SwapPause suspends every swap and claim path.
//
//go:wasmexport swap_pause
func SwapPause(payload *string) *string {
	cfg := requireSwapAdmin()
	if cfg.Paused {
		sdk.Abort("swap already paused")
	}
	cfg.Paused = true
	saveSwapConfig(cfg)
	emitSwapPaused(true)
	return okResult("swap paused")
}

// SwapResume lifts a pause.
//
//go:wasmexport swap_resume
func SwapResume(payload *string) *string {
	cfg := requireSwapAdmin()
	if !cfg.Paused {
		sdk.Abort("swap not paused")
	}
	cfg.Paused = false
	saveSwapConfig(cfg)
	emitSwapPaused(false)
	return okResult("swap resumed")
}

func requireSwapLive() *SwapConfig {
	cfg := requireSwapConfig()
	if cfg.Paused {
		sdk.Abort("swap paused")
	}
	return cfg
}

// SwapSetWhitelistArgs carries the merkle roots as hex.
type SwapSetWhitelistArgs struct {
	OgRoot      string `json:"og_root,omitempty"`
	AirdropRoot string `json:"airdrop_root,omitempty"`
}

// SwapSetWhitelist publishes the OG and airdrop merkle roots.
//
//go:wasmexport swap_set_whitelist
func SwapSetWhitelist(payload *string) *string {
	requireSwapAdmin()
	args := decodeArgs[SwapSetWhitelistArgs](payload, "swap whitelist")
	if args.OgRoot == "" && args.AirdropRoot == "" {
		sdk.Abort("nothing to update")
	}
	if args.OgRoot != "" {
		decodeHash32(args.OgRoot, "og root")
		setWhitelistRoot(OgWhitelistKey, args.OgRoot)
	}
	if args.AirdropRoot != "" {
		decodeHash32(args.AirdropRoot, "airdrop root")
		setWhitelistRoot(AirdropRootKey, args.AirdropRoot)
	}
	emitSwapConfigUpdated("whitelist")
	return okResult("whitelist set")
}

// SwapAdminArgs names the proposed next admin.
type SwapAdminArgs struct {
	NewAdmin string `json:"new_admin"`
}

// SwapAdminPropose starts the timelocked admin rotation.
//
//go:wasmexport swap_admin_propose
func SwapAdminPropose(payload *string) *string {
	cfg := requireSwapAdmin()
	args := decodeArgs[SwapAdminArgs](payload, "swap admin propose")
	next := requireAddressField(args.NewAdmin, "admin")
	if next.String() == cfg.Admin {
		sdk.Abort("already the admin")
	}
	cfg.PendingAdmin = next.String()
	cfg.AdminProposedAt = nowUnix()
	saveSwapConfig(cfg)
	emitSwapConfigUpdated("admin_proposed")
	return okResult("admin proposed")
}

// SwapAdminAccept completes the rotation after the timelock.
//
//go:wasmexport swap_admin_accept
func SwapAdminAccept(payload *string) *string {
	cfg := requireSwapConfig()
	sender := getSenderAddress()
	if cfg.PendingAdmin == "" || sender.String() != cfg.PendingAdmin {
		sdk.Abort("no pending admin rotation for sender")
	}
	if nowUnix() < cfg.AdminProposedAt+AdminTimelockDelay {
		sdk.Abort("admin timelock not elapsed")
	}
	cfg.Admin = sender.String()
	cfg.PendingAdmin = ""
	cfg.AdminProposedAt = 0
	saveSwapConfig(cfg)
	emitSwapConfigUpdated("admin_accepted")
	return okResult("admin accepted")
}

// SwapSetRandomnessArgs designates the oracle and the derivation mode.
type SwapSetRandomnessArgs struct {
	Oracle        string `json:"oracle"`
	UseCommitment bool   `json:"use_commitment"`
}

// SwapSetRandomness designates which key may commit randomness and whether
// bonus derivation requires a commitment.
//
//go:wasmexport swap_set_randomness
func SwapSetRandomness(payload *string) *string {
	cfg := requireSwapAdmin()
	args := decodeArgs[SwapSetRandomnessArgs](payload, "swap randomness")
	oracle := requireAddressField(args.Oracle, "oracle")
	cfg.Oracle = oracle.String()
	cfg.UseCommitment = args.UseCommitment
	saveSwapConfig(cfg)
	emitSwapConfigUpdated("randomness")
	return okResult("randomness configured")
}

// SwapCommitRandomnessArgs carries the oracle's 32-byte commitment.
type SwapCommitRandomnessArgs struct {
	Commitment string `json:"commitment"`
}

// SwapCommitRandomness stores a fresh oracle commitment. Each derivation
// consumes it, so every bonus roll needs a new commit.
//
//go:wasmexport swap_commit_randomness
func SwapCommitRandomness(payload *string) *string {
	cfg := requireSwapConfig()
	sender := getSenderAddress()
	if cfg.Oracle == "" || sender.String() != cfg.Oracle {
		sdk.Abort("not randomness oracle")
	}
	args := decodeArgs[SwapCommitRandomnessArgs](payload, "randomness commit")
	commitment := decodeHash32(args.Commitment, "commitment")
	if zeroCommitment(commitment) {
		sdk.Abort("commitment must not be zero")
	}
	saveRandomness(&RandomnessState{
		Commitment:  args.Commitment,
		CommittedAt: nowUnix(),
	})
	emitRandomnessCommitted(sender.String())
	return okResult("randomness committed")
}

// -----------------------------------------------------------------------------
// Tax escalator
// -----------------------------------------------------------------------------

// effectiveTaxRate resolves the rate a swap pays right now: the stored rate,
// or the initial rate when the record is missing or the cooldown has lapsed.
func effectiveTaxRate(t *UserTax, now int64) uint16 {
	if t == nil || t.LastSwapAt == 0 {
		return InitialTaxBps
	}
	if now-t.LastSwapAt >= TaxResetSeconds {
		return InitialTaxBps
	}
	return t.TaxRateBps
}

// escalateTax charges the effective rate and stores the escalated follow-up
// rate with a fresh swap timestamp. Returns the rate the current swap pays.
func escalateTax(user sdk.Address, now int64) uint16 {
	t := loadUserTax(user)
	rate := effectiveTaxRate(t, now)
	next := rate + TaxStepBps
	if next > MaxTaxBps {
		next = MaxTaxBps
	}
	if t == nil {
		t = &UserTax{}
	}
	t.TaxRateBps = next
	t.LastSwapAt = now
	t.SwapCount++
	saveUserTax(user, t)
	return rate
}

// TaxInit creates the caller's tax record at the initial rate.
//
//go:wasmexport tax_init
func TaxInit(payload *string) *string {
	requireSwapConfig()
	user := getSenderAddress()
	if loadUserTax(user) != nil {
		sdk.Abort("tax record already exists")
	}
	saveUserTax(user, &UserTax{TaxRateBps: InitialTaxBps})
	return okResult("tax record created")
}

// TaxReset drops the caller's rate back to the initial value once the
// cooldown has lapsed.
//
//go:wasmexport tax_reset
func TaxReset(payload *string) *string {
	requireSwapConfig()
	user := getSenderAddress()
	t := loadUserTax(user)
	if t == nil {
		sdk.Abort("no tax record")
	}
	now := nowUnix()
	if t.LastSwapAt != 0 && now-t.LastSwapAt < TaxResetSeconds {
		sdk.Abort("tax cooldown active")
	}
	old := t.TaxRateBps
	if old == InitialTaxBps {
		sdk.Abort("tax already at initial rate")
	}
	t.TaxRateBps = InitialTaxBps
	saveUserTax(user, t)
	emitTaxReset(user.String(), old, InitialTaxBps)
	return okResult("tax reset")
}

// -----------------------------------------------------------------------------
// Swap paths
// -----------------------------------------------------------------------------

// SwapTierArgs names the tier to buy into.
type SwapTierArgs struct {
	Tier uint8 `json:"tier"`
}

// mintSwapNft creates the NFT, bonus and vesting records for one swap. The
// base price stays redeemable on the NFT; only the bonus vests.
func mintSwapNft(cfg *SwapConfig, owner sdk.Address, tier uint8, source NftSource, price int64, feeDeducted int64, now int64) (uint64, uint16) {
	id := nextCount(NftsCount)
	bonus := deriveBonusBps(tier, owner, UInt64ToString(id), cfg.UseCommitment)
	vestTotal := mulDivU64(uint64(price), uint64(bonus), BpsDenominator)

	saveNft(&NftRecord{
		ID:          id,
		Owner:       owner.String(),
		Tier:        tier,
		Source:      source,
		BonusBps:    bonus,
		PricePaid:   price,
		FeeDeducted: feeDeducted,
		MintedAt:    now,
	})
	saveBonusRecord(&BonusRecord{
		NftID:    id,
		BonusBps: bonus,
		Fallback: !cfg.UseCommitment,
		Rolls:    1,
		RolledAt: now,
	})
	saveNftVesting(id, &VestingSchedule{
		Total:    vestTotal,
		Start:    now,
		End:      now + VestingDuration,
		CliffEnd: now + CliffDuration,
	})
	return id, bonus
}

// requireTierForSale checks price and free supply for a tier.
func requireTierForSale(cfg *SwapConfig, tier uint8) int64 {
	requireTier(tier)
	price := cfg.TierPrices[tier]
	if price <= 0 {
		sdk.Abort("tier not for sale")
	}
	if cfg.TierSupply[tier] > 0 && cfg.TierMinted[tier] >= cfg.TierSupply[tier] {
		sdk.Abort("tier supply exhausted")
	}
	return price
}

// SwapDefai is the taxed fresh-token path: pay the tier price plus the
// escalating tax, receive an NFT with a randomized bonus vesting schedule.
//
//go:wasmexport swap_defai
func SwapDefai(payload *string) *string {
	cfg := requireSwapLive()
	args := decodeArgs[SwapTierArgs](payload, "swap")
	price := requireTierForSale(cfg, args.Tier)
	user := getSenderAddress()
	now := nowUnix()

	rate := escalateTax(user, now)
	tax := int64(mulDivU64(uint64(price), uint64(rate), BpsDenominator))
	total := checkedAdd(price, tax)

	asset := nativeAsset()
	allow := getFirstTransferAllow(asset)
	if allow == nil || allow.Limit < total {
		sdk.Abort("missing transfer.allow intent covering price and tax")
	}
	getHost().Draw(total, asset)
	setSwapEscrow(checkedAdd(getSwapEscrow(), total))

	id, bonus := mintSwapNft(cfg, user, args.Tier, NftSourceSwap, price, 0, now)
	cfg.TierMinted[args.Tier]++
	cfg.TotalSwaps++
	saveSwapConfig(cfg)
	emitSwapExecuted(id, user.String(), args.Tier, price, tax, bonus)
	return okResult("swapped", "nft", UInt64ToString(id), "bonus_bps", UInt64ToString(uint64(bonus)))
}

// SwapOldDefai is the tax-exempt legacy-token path. It must not touch the
// escalation timestamp; it only bumps the informational swap counter.
//
//go:wasmexport swap_old_defai
func SwapOldDefai(payload *string) *string {
	cfg := requireSwapLive()
	args := decodeArgs[SwapTierArgs](payload, "old swap")
	price := requireTierForSale(cfg, args.Tier)
	user := getSenderAddress()
	now := nowUnix()

	oldAsset := sdk.Asset(cfg.OldAsset)
	allow := getFirstTransferAllow(oldAsset)
	if allow == nil || allow.Limit < price {
		sdk.Abort("missing transfer.allow intent covering the price")
	}
	getHost().Draw(price, oldAsset)

	t := loadUserTax(user)
	if t == nil {
		t = &UserTax{TaxRateBps: InitialTaxBps}
	}
	t.SwapCount++
	saveUserTax(user, t)

	id, bonus := mintSwapNft(cfg, user, args.Tier, NftSourceOldSwap, price, 0, now)
	cfg.TierMinted[args.Tier]++
	cfg.TotalSwaps++
	saveSwapConfig(cfg)
	emitSwapExecuted(id, user.String(), args.Tier, price, 0, bonus)
	return okResult("swapped", "nft", UInt64ToString(id))
}

// SwapOgClaimArgs proves membership in the OG whitelist.
type SwapOgClaimArgs struct {
	Amount uint64   `json:"amount"`
	Proof  []string `json:"proof"`
}

// SwapOgTier0 grants a whitelisted user a free tier-0 NFT vesting 1:1.
//
//go:wasmexport swap_og_tier0
func SwapOgTier0(payload *string) *string {
	cfg := requireSwapLive()
	args := decodeArgs[SwapOgClaimArgs](payload, "og claim")
	user := getSenderAddress()
	if args.Amount == 0 {
		sdk.Abort("amount must be positive")
	}
	root := getWhitelistRoot(OgWhitelistKey)
	if root == "" {
		sdk.Abort("og whitelist not set")
	}
	if hasOgClaim(user) {
		sdk.Abort("og allocation already claimed")
	}
	if cfg.OgReserve > 0 && cfg.OgMinted >= cfg.OgReserve {
		sdk.Abort("og reserve exhausted")
	}
	leaf := whitelistLeaf(user, args.Amount)
	if !verifyMerkleProof(leaf, decodeProof(args.Proof), decodeHash32(root, "og root")) {
		sdk.Abort("merkle proof invalid")
	}

	now := nowUnix()
	id := nextCount(NftsCount)
	saveNft(&NftRecord{
		ID:       id,
		Owner:    user.String(),
		Tier:     0,
		Source:   NftSourceOgClaim,
		MintedAt: now,
	})
	saveNftVesting(id, &VestingSchedule{
		Total:    args.Amount,
		Start:    now,
		End:      now + VestingDuration,
		CliffEnd: now + CliffDuration,
	})
	markOgClaim(user, id)
	cfg.OgMinted++
	saveSwapConfig(cfg)
	emitOgClaimed(id, user.String(), int64(args.Amount))
	return okResult("og claimed", "nft", UInt64ToString(id))
}

// SwapNftArgs names one NFT record.
type SwapNftArgs struct {
	NftID uint64 `json:"nft_id"`
}

// SwapRedeem pays back the base price minus accumulated fees and retires the
// NFT. One-way. The bonus is only reachable through the vesting schedule, so
// redeeming forfeits whatever bonus has not vested and been claimed yet.
//
//go:wasmexport swap_redeem
func SwapRedeem(payload *string) *string {
	requireSwapLive()
	args := decodeArgs[SwapNftArgs](payload, "redeem")
	user := getSenderAddress()
	nft := loadNft(args.NftID)
	if nft.Owner != user.String() {
		sdk.Abort("not nft owner")
	}
	if nft.Claimed {
		sdk.Abort("nft already redeemed")
	}
	payout := nft.PricePaid - nft.FeeDeducted
	if payout <= 0 {
		sdk.Abort("nothing to redeem")
	}
	escrow := getSwapEscrow()
	if escrow < payout {
		sdk.Abort("insufficient escrow funds")
	}

	nft.Claimed = true
	saveNft(nft)
	deleteNftVesting(nft.ID)
	setSwapEscrow(escrow - payout)
	getHost().Transfer(user, payout, nativeAsset())
	emitRedeemed(nft.ID, user.String(), payout, nft.FeeDeducted)
	return okResult("redeemed", "amount", Int64ToString(payout))
}

// SwapReroll re-derives the bonus with fresh entropy. Only allowed while some
// vested bonus remains unclaimed, which the reroll forfeits: the schedule
// restarts from now with the new bonus. The fee is the tax on the tier base
// price at the caller's current escalated rate, deducted from the eventual
// redemption payout.
//
//go:wasmexport swap_reroll
func SwapReroll(payload *string) *string {
	cfg := requireSwapLive()
	args := decodeArgs[SwapNftArgs](payload, "reroll")
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
	requireTier(nft.Tier)
	if tierBonusRanges[nft.Tier][0] == tierBonusRanges[nft.Tier][1] {
		sdk.Abort("tier has a fixed bonus")
	}
	price := cfg.TierPrices[nft.Tier]
	if price <= 0 {
		sdk.Abort("tier not for sale")
	}
	if getHost().Balance(user, nativeAsset()) < price {
		sdk.Abort("insufficient balance for reroll fee")
	}

	now := nowUnix()
	// a reroll trades vested-but-unclaimed bonus for a fresh roll; with
	// nothing at stake it would be a free re-draw
	if claimableAmount(v.Total, v.Released, v.Start, v.End, v.CliffEnd, now) == 0 {
		sdk.Abort("nothing vested to reroll")
	}

	rate := escalateTax(user, now)
	fee := int64(mulDivU64(uint64(price), uint64(rate), BpsDenominator))

	oldBonus := nft.BonusBps
	bonus := deriveBonusBps(nft.Tier, user, UInt64ToString(nft.ID), cfg.UseCommitment)
	nft.BonusBps = bonus
	nft.FeeDeducted = checkedAdd(nft.FeeDeducted, fee)
	saveNft(nft)

	vestTotal := mulDivU64(uint64(nft.PricePaid), uint64(bonus), BpsDenominator)
	saveNftVesting(nft.ID, &VestingSchedule{
		Total:    vestTotal,
		Start:    now,
		End:      now + VestingDuration,
		CliffEnd: now + CliffDuration,
	})
	if b := loadBonusRecord(nft.ID); b != nil {
		b.BonusBps = bonus
		b.Fallback = !cfg.UseCommitment
		b.Rolls++
		b.RolledAt = now
		saveBonusRecord(b)
	}
	emitRerolled(nft.ID, user.String(), oldBonus, bonus, fee)
	return okResult("rerolled", "bonus_bps", UInt64ToString(uint64(bonus)))
}

// SwapFundEscrowArgs tops up the payout ledger.
type SwapFundEscrowArgs struct {
	Amount int64 `json:"amount"`
}

// SwapFundEscrow draws native funds into the escrow that pays vesting claims
// and redemptions.
//
//go:wasmexport swap_fund_escrow
func SwapFundEscrow(payload *string) *string {
	requireSwapConfig()
	args := decodeArgs[SwapFundEscrowArgs](payload, "fund escrow")
	requirePositive(args.Amount, "amount")
	asset := nativeAsset()
	allow := getFirstTransferAllow(asset)
	if allow == nil || allow.Limit < args.Amount {
		sdk.Abort("missing transfer.allow intent covering the amount")
	}
	getHost().Draw(args.Amount, asset)
	setSwapEscrow(checkedAdd(getSwapEscrow(), args.Amount))
	emitEscrowFunded(getSenderAddress().String(), args.Amount)
	return okResult("escrow funded")
}

// SwapAdminWithdrawArgs moves escrow funds to the platform treasury.
type SwapAdminWithdrawArgs struct {
	Amount int64 `json:"amount"`
}

// SwapAdminWithdraw pays escrow funds out to the platform treasury.
//
//go:wasmexport swap_admin_withdraw
func SwapAdminWithdraw(payload *string) *string {
	requireSwapAdmin()
	args := decodeArgs[SwapAdminWithdrawArgs](payload, "admin withdraw")
	requirePositive(args.Amount, "amount")
	escrow := getSwapEscrow()
	if escrow < args.Amount {
		sdk.Abort("insufficient escrow funds")
	}
	setSwapEscrow(escrow - args.Amount)
	treasury := loadContractConfig().Treasury
	getHost().Transfer(treasury, args.Amount, nativeAsset())
	emitAdminWithdraw(treasury.String(), args.Amount)
	return okResult("withdrawn", "amount", Int64ToString(args.Amount))
}
