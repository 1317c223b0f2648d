package contract

import (
	"strings"

	"defai_contracts/sdk"
)

// -----------------------------------------------------------------------------
// Estate vault entry points
// -----------------------------------------------------------------------------

func estateOwnerCountKey(owner sdk.Address) string {
	return "count:est:" + owner.String()
}

// EstateCreateArgs configures the liveness windows at creation.
type EstateCreateArgs struct {
	InactivityPeriod int64 `json:"inactivity_period"`
	GracePeriod      int64 `json:"grace_period"`
}

// EstateCreate opens a vault owned by the caller. The estate number counts
// per owner so an owner's estates stay addressable without a global scan.
//
//go:wasmexport estate_create
func EstateCreate(payload *string) *string {
	requireInitialized()
	args := decodeArgs[EstateCreateArgs](payload, "estate create")
	validatePeriods(args.InactivityPeriod, args.GracePeriod)

	owner := getSenderAddress()
	id := nextCount(EstatesCount)
	number := nextCount(estateOwnerCountKey(owner))
	now := nowUnix()
	e := Estate{
		ID:               id,
		Number:           number,
		Owner:            owner,
		LastActive:       now,
		InactivityPeriod: args.InactivityPeriod,
		GracePeriod:      args.GracePeriod,
		Status:           EstateActive,
		CreatedAt:        now,
	}
	saveEstate(&e)
	emitEstateCreated(id, owner.String())
	return okResult("estate created", "id", UInt64ToString(id))
}

func validatePeriods(inactivity, grace int64) {
	if inactivity < MinInactivityPeriod || inactivity > MaxInactivityPeriod {
		sdk.Abort("inactivity period out of range")
	}
	if grace < MinGracePeriod || grace > MaxGracePeriod {
		sdk.Abort("grace period out of range")
	}
}

// EstateIDArgs names an estate for single-target operations.
type EstateIDArgs struct {
	EstateID uint64 `json:"estate_id"`
}

// EstateCheckin resets the liveness clock and clears a pending claimable state.
//
//go:wasmexport estate_checkin
func EstateCheckin(payload *string) *string {
	args := decodeArgs[EstateIDArgs](payload, "estate checkin")
	e := requireEstateOwner(args.EstateID)
	requireUnlocked(e)
	requireOpen(e)

	now := nowUnix()
	e.LastActive = now
	if e.Status == EstateClaimable {
		e.Status = EstateActive
		e.ClaimableSince = 0
		e.ClaimBase = 0
	}
	saveEstate(e)
	emitEstateCheckin(e.ID, now)
	return okResult("checked in")
}

// EstateDepositArgs moves funds into the vault. Asset defaults to the native
// asset; other symbols require a registered token asset and land in the
// per-asset vault instead of the native balance.
type EstateDepositArgs struct {
	EstateID uint64 `json:"estate_id"`
	Amount   int64  `json:"amount"`
	Asset    string `json:"asset,omitempty"`
}

// EstateDeposit draws funds from the sender into the estate.
//
//go:wasmexport estate_deposit
func EstateDeposit(payload *string) *string {
	args := decodeArgs[EstateDepositArgs](payload, "estate deposit")
	e := loadEstate(args.EstateID)
	requireUnlocked(e)
	requireOpen(e)
	requirePositive(args.Amount, "amount")

	asset := nativeAsset()
	if trimmed := strings.TrimSpace(args.Asset); trimmed != "" {
		asset = sdk.Asset(trimmed)
	}
	allow := getFirstTransferAllow(asset)
	if allow == nil || allow.Limit < args.Amount {
		sdk.Abort("missing transfer.allow intent covering the deposit")
	}

	if asset == nativeAsset() {
		getHost().Draw(args.Amount, asset)
		e.Balance = checkedAdd(e.Balance, args.Amount)
		saveEstate(e)
	} else {
		if loadEstateAsset(e.ID, asset.String()) == nil {
			sdk.Abort("asset not registered for estate")
		}
		getHost().Draw(args.Amount, asset)
		setEstateVault(e.ID, asset.String(), checkedAdd(getEstateVault(e.ID, asset.String()), args.Amount))
	}
	emitEstateDeposit(e.ID, getSenderAddress().String(), args.Amount, asset.String())
	return okResult("deposited")
}

// BeneficiaryInput is one entry of a beneficiary-set update.
type BeneficiaryInput struct {
	Address  string `json:"address"`
	SharePct uint8  `json:"share_pct"`
}

// EstateSetBeneficiariesArgs replaces the payout list. The multisig fields
// authorize the update through an executed governance proposal when the
// caller is not the owner.
type EstateSetBeneficiariesArgs struct {
	EstateID      uint64             `json:"estate_id"`
	Beneficiaries []BeneficiaryInput `json:"beneficiaries"`
	ProposalID    uint64             `json:"proposal_id,omitempty"`
}

// EstateSetBeneficiaries replaces the payout list while the estate is active.
//
//go:wasmexport estate_set_beneficiaries
func EstateSetBeneficiaries(payload *string) *string {
	args := decodeArgs[EstateSetBeneficiariesArgs](payload, "set beneficiaries")
	e := loadEstate(args.EstateID)
	requireUnlocked(e)
	requireOpen(e)
	if e.Status == EstateClaimable {
		sdk.Abort("estate already claimable")
	}
	sender := getSenderAddress()
	if sender != e.Owner {
		if e.MultisigID == 0 {
			sdk.Abort("not estate owner")
		}
		requireExecutedProposal(e.MultisigID, args.ProposalID, ActionSetBeneficiaries, e.ID, sender)
	}

	list := validateBeneficiaries(args.Beneficiaries)
	e.Beneficiaries = list
	saveEstate(e)
	emitBeneficiariesSet(e.ID, len(list))
	return okResult("beneficiaries set")
}

// validateBeneficiaries checks count, addresses, duplicates and that the
// shares sum to exactly 100.
func validateBeneficiaries(inputs []BeneficiaryInput) []Beneficiary {
	if len(inputs) == 0 {
		sdk.Abort("beneficiary list empty")
	}
	if len(inputs) > MaxBeneficiaries {
		sdk.Abort("too many beneficiaries")
	}
	total := 0
	seen := map[string]bool{}
	out := make([]Beneficiary, 0, len(inputs))
	for _, in := range inputs {
		addr := requireAddressField(in.Address, "beneficiary")
		if seen[addr.String()] {
			sdk.Abort("duplicate beneficiary")
		}
		seen[addr.String()] = true
		if in.SharePct == 0 {
			sdk.Abort("beneficiary share must be positive")
		}
		total += int(in.SharePct)
		out = append(out, Beneficiary{Address: addr, SharePct: in.SharePct})
	}
	if total != 100 {
		sdk.Abort("beneficiary shares must sum to 100")
	}
	return out
}

// EstateUpdatePeriodsArgs adjusts the liveness windows.
type EstateUpdatePeriodsArgs struct {
	EstateID         uint64 `json:"estate_id"`
	InactivityPeriod int64  `json:"inactivity_period"`
	GracePeriod      int64  `json:"grace_period"`
}

// EstateUpdatePeriods lets the owner retune the inactivity and grace windows.
//
//go:wasmexport estate_update_periods
func EstateUpdatePeriods(payload *string) *string {
	args := decodeArgs[EstateUpdatePeriodsArgs](payload, "update periods")
	e := requireEstateOwner(args.EstateID)
	requireUnlocked(e)
	requireOpen(e)
	if e.Status == EstateClaimable {
		sdk.Abort("estate already claimable")
	}
	validatePeriods(args.InactivityPeriod, args.GracePeriod)
	e.InactivityPeriod = args.InactivityPeriod
	e.GracePeriod = args.GracePeriod
	saveEstate(e)
	emitPeriodsUpdated(e.ID, e.InactivityPeriod, e.GracePeriod)
	return okResult("periods updated")
}

// EstateAttachMultisigArgs binds a governance multisig to the estate.
type EstateAttachMultisigArgs struct {
	EstateID   uint64 `json:"estate_id"`
	MultisigID uint64 `json:"multisig_id"`
}

// EstateAttachMultisig binds an existing multisig for force-unlock and
// beneficiary governance.
//
//go:wasmexport estate_attach_multisig
func EstateAttachMultisig(payload *string) *string {
	args := decodeArgs[EstateAttachMultisigArgs](payload, "attach multisig")
	e := requireEstateOwner(args.EstateID)
	requireUnlocked(e)
	requireOpen(e)
	loadMultisig(args.MultisigID)
	e.MultisigID = args.MultisigID
	saveEstate(e)
	emitMultisigAttached(e.ID, e.MultisigID)
	return okResult("multisig attached")
}

// EstateTrigger flips the estate claimable once the liveness window has fully
// lapsed. Anyone may call it; the payout base is snapshotted here so later
// claims split the same pool.
//
//go:wasmexport estate_trigger
func EstateTrigger(payload *string) *string {
	args := decodeArgs[EstateIDArgs](payload, "estate trigger")
	e := loadEstate(args.EstateID)
	requireUnlocked(e)
	requireOpen(e)
	if e.Status == EstateClaimable {
		sdk.Abort("estate already claimable")
	}
	now := nowUnix()
	if now <= e.LastActive+e.InactivityPeriod+e.GracePeriod {
		sdk.Abort("liveness window has not lapsed")
	}
	if len(e.Beneficiaries) == 0 {
		sdk.Abort("no beneficiaries configured")
	}
	e.Status = EstateClaimable
	e.ClaimableSince = now
	if e.Balance > MinRentReserve {
		e.ClaimBase = e.Balance - MinRentReserve
	} else {
		e.ClaimBase = 0
	}
	saveEstate(e)
	emitEstateTriggered(e.ID, now)
	return okResult("estate claimable")
}

// EstateClaim pays the calling beneficiary their share of the snapshotted
// pool, exactly once.
//
//go:wasmexport estate_claim
func EstateClaim(payload *string) *string {
	args := decodeArgs[EstateIDArgs](payload, "estate claim")
	e := loadEstate(args.EstateID)
	requireUnlocked(e)
	if e.Status != EstateClaimable {
		sdk.Abort("estate not claimable")
	}
	sender := getSenderAddress()
	idx := -1
	for i := range e.Beneficiaries {
		if e.Beneficiaries[i].Address == sender {
			idx = i
			break
		}
	}
	if idx < 0 {
		sdk.Abort("not a beneficiary")
	}
	if e.Beneficiaries[idx].Claimed {
		sdk.Abort("share already claimed")
	}
	if e.ClaimBase <= 0 {
		sdk.Abort("insufficient estate balance")
	}
	share := int64(shareOf(uint64(e.ClaimBase), e.Beneficiaries[idx].SharePct))
	if share <= 0 {
		sdk.Abort("share rounds to zero")
	}
	if e.Balance < share {
		sdk.Abort("insufficient estate balance")
	}

	e.Beneficiaries[idx].Claimed = true
	e.Balance -= share
	saveEstate(e)
	saveBeneficiaryClaim(&BeneficiaryClaim{
		EstateID:    e.ID,
		Beneficiary: sender,
		SolShare:    share,
		ClaimedAt:   nowUnix(),
	})
	getHost().Transfer(sender, share, nativeAsset())
	emitInheritanceClaimed(e.ID, sender.String(), share)
	return okResult("claimed", "amount", Int64ToString(share))
}

// EstateClaimAssetArgs names the registered holding to claim.
type EstateClaimAssetArgs struct {
	EstateID   uint64 `json:"estate_id"`
	Identifier string `json:"identifier"`
}

// EstateClaimToken pays the beneficiary their share of a registered token
// vault. Requires the native claim first and de-duplicates per asset.
//
//go:wasmexport estate_claim_token
func EstateClaimToken(payload *string) *string {
	args := decodeArgs[EstateClaimAssetArgs](payload, "claim token")
	e := loadEstate(args.EstateID)
	requireUnlocked(e)
	if e.Status != EstateClaimable {
		sdk.Abort("estate not claimable")
	}
	sender := getSenderAddress()
	claim := loadBeneficiaryClaim(e.ID, sender)
	if claim == nil {
		sdk.Abort("claim native share first")
	}
	asset := loadEstateAsset(e.ID, args.Identifier)
	if asset == nil || asset.Kind != AssetKindToken {
		sdk.Abort("token asset not registered")
	}
	for _, done := range claim.ClaimedTokens {
		if done == args.Identifier {
			sdk.Abort("token already claimed")
		}
	}
	pct := beneficiarySharePct(e, sender)
	vault := getEstateVault(e.ID, args.Identifier)
	if vault <= 0 {
		sdk.Abort("token vault empty")
	}
	share := int64(shareOf(uint64(vault), pct))
	if share <= 0 {
		sdk.Abort("share rounds to zero")
	}

	claim.ClaimedTokens = append(claim.ClaimedTokens, args.Identifier)
	saveBeneficiaryClaim(claim)
	setEstateVault(e.ID, args.Identifier, vault-share)
	getHost().Transfer(sender, share, sdk.Asset(args.Identifier))
	emitTokenClaimed(e.ID, sender.String(), args.Identifier, share)
	return okResult("token claimed", "amount", Int64ToString(share))
}

// EstateClaimNft reassigns a registered NFT record to the beneficiary.
// Requires the native claim first; an NFT goes to exactly one claimant.
//
//go:wasmexport estate_claim_nft
func EstateClaimNft(payload *string) *string {
	args := decodeArgs[EstateClaimAssetArgs](payload, "claim nft")
	e := loadEstate(args.EstateID)
	requireUnlocked(e)
	if e.Status != EstateClaimable {
		sdk.Abort("estate not claimable")
	}
	sender := getSenderAddress()
	claim := loadBeneficiaryClaim(e.ID, sender)
	if claim == nil {
		sdk.Abort("claim native share first")
	}
	asset := loadEstateAsset(e.ID, args.Identifier)
	if asset == nil || asset.Kind != AssetKindNft {
		sdk.Abort("nft asset not registered")
	}
	if asset.ClaimedBy != "" {
		sdk.Abort("nft already claimed")
	}
	for _, done := range claim.ClaimedNfts {
		if done == args.Identifier {
			sdk.Abort("nft already claimed")
		}
	}
	beneficiarySharePct(e, sender)

	asset.ClaimedBy = sender.String()
	saveEstateAsset(asset)
	claim.ClaimedNfts = append(claim.ClaimedNfts, args.Identifier)
	saveBeneficiaryClaim(claim)
	emitNftClaimed(e.ID, sender.String(), args.Identifier)
	return okResult("nft claimed")
}

// beneficiarySharePct returns the sender's share or aborts.
func beneficiarySharePct(e *Estate, sender sdk.Address) uint8 {
	for i := range e.Beneficiaries {
		if e.Beneficiaries[i].Address == sender {
			return e.Beneficiaries[i].SharePct
		}
	}
	sdk.Abort("not a beneficiary")
	return 0
}

// EstateRegisterAssetArgs registers one external holding with the estate.
type EstateRegisterAssetArgs struct {
	EstateID   uint64 `json:"estate_id"`
	Kind       string `json:"kind"`
	Identifier string `json:"identifier"`
}

// EstateRegisterAsset records a token symbol or NFT id as part of the estate.
//
//go:wasmexport estate_register_asset
func EstateRegisterAsset(payload *string) *string {
	args := decodeArgs[EstateRegisterAssetArgs](payload, "register asset")
	e := requireEstateOwner(args.EstateID)
	requireUnlocked(e)
	requireOpen(e)
	if e.Status == EstateClaimable {
		sdk.Abort("estate already claimable")
	}
	identifier := strings.TrimSpace(args.Identifier)
	if identifier == "" {
		sdk.Abort("asset identifier empty")
	}
	var kind AssetKind
	switch strings.ToLower(strings.TrimSpace(args.Kind)) {
	case "token":
		kind = AssetKindToken
	case "nft":
		kind = AssetKindNft
	default:
		sdk.Abort("unknown asset kind")
	}
	if loadEstateAsset(e.ID, identifier) != nil {
		sdk.Abort("asset already registered")
	}

	saveEstateAsset(&EstateAsset{
		EstateID:     e.ID,
		Kind:         kind,
		Identifier:   identifier,
		RegisteredAt: nowUnix(),
	})
	e.TotalRwas++
	saveEstate(e)
	emitAssetRegistered(e.ID, kind.String(), identifier)
	return okResult("asset registered")
}

// EstateClose returns the native balance to the owner and retires the estate.
//
//go:wasmexport estate_close
func EstateClose(payload *string) *string {
	args := decodeArgs[EstateIDArgs](payload, "estate close")
	e := requireEstateOwner(args.EstateID)
	requireUnlocked(e)
	requireOpen(e)
	if e.Status == EstateClaimable {
		sdk.Abort("estate already claimable")
	}
	if e.TotalRwas > 0 {
		sdk.Abort("registered assets remain")
	}
	if e.Trading != nil && e.Trading.Enabled {
		sdk.Abort("trading still enabled")
	}

	returned := e.Balance
	e.Balance = 0
	e.Status = EstateClosed
	saveEstate(e)
	if returned > 0 {
		getHost().Transfer(e.Owner, returned, nativeAsset())
	}
	emitEstateClosed(e.ID, returned)
	return okResult("estate closed", "returned", Int64ToString(returned))
}
