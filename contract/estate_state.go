package contract

import (
	"strconv"

	"defai_contracts/sdk"
)

// -----------------------------------------------------------------------------
// Estate entities and persistence
// -----------------------------------------------------------------------------

// Beneficiary is one slot in the estate's payout list.
type Beneficiary struct {
	Address  sdk.Address `json:"address"`
	SharePct uint8       `json:"share_pct"`
	Claimed  bool        `json:"claimed"`
}

// TradingState is the embedded joint human/AI trading sub-ledger.
type TradingState struct {
	Enabled        bool        `json:"enabled"`
	Paused         bool        `json:"paused"`
	HumanSharePct  uint8       `json:"human_share_pct"`
	Agent          sdk.Address `json:"agent"`
	EmergencyDelay int64       `json:"emergency_delay"`
	HumanContrib   int64       `json:"human_contrib"`
	AiContrib      int64       `json:"ai_contrib"`
	CurrentValue   int64       `json:"current_value"`
	HighWaterMark  int64       `json:"high_water_mark"`
	EnabledAt      int64       `json:"enabled_at"`
}

// Estate is one inheritance vault.
type Estate struct {
	ID               uint64        `json:"id"`
	Number           uint64        `json:"number"`
	Owner            sdk.Address   `json:"owner"`
	Beneficiaries    []Beneficiary `json:"beneficiaries,omitempty"`
	LastActive       int64         `json:"last_active"`
	InactivityPeriod int64         `json:"inactivity_period"`
	GracePeriod      int64         `json:"grace_period"`
	Locked           bool          `json:"locked"`
	Status           EstateStatus  `json:"status"`
	ClaimableSince   int64         `json:"claimable_since,omitempty"`
	ClaimBase        int64         `json:"claim_base,omitempty"`
	Balance          int64         `json:"balance"`
	TotalRwas        uint64        `json:"total_rwas"`
	MultisigID       uint64        `json:"multisig_id,omitempty"`
	LastLockAt       int64         `json:"last_lock_at,omitempty"`
	Trading          *TradingState `json:"trading,omitempty"`
	CreatedAt        int64         `json:"created_at"`
}

// BeneficiaryClaim records one beneficiary's payout and later token/NFT claims.
type BeneficiaryClaim struct {
	EstateID      uint64      `json:"estate_id"`
	Beneficiary   sdk.Address `json:"beneficiary"`
	SolShare      int64       `json:"sol_share"`
	ClaimedAt     int64       `json:"claimed_at"`
	ClaimedTokens []string    `json:"claimed_tokens,omitempty"`
	ClaimedNfts   []string    `json:"claimed_nfts,omitempty"`
}

// EstateAsset is one registered RWA-style holding (token vault or single NFT).
type EstateAsset struct {
	EstateID     uint64    `json:"estate_id"`
	Kind         AssetKind `json:"kind"`
	Identifier   string    `json:"identifier"`
	RegisteredAt int64     `json:"registered_at"`
	ClaimedBy    string    `json:"claimed_by,omitempty"`
}

// EmergencyLockState tracks the active challenge-code lock.
type EmergencyLockState struct {
	EstateID         uint64 `json:"estate_id"`
	LockedAt         int64  `json:"locked_at"`
	Reason           string `json:"reason"`
	VerificationHash string `json:"verification_hash"`
	EmailHash        string `json:"email_hash"`
	FailedAttempts   uint8  `json:"failed_attempts"`
}

// WithdrawRequest is the pending first phase of an emergency trading withdrawal.
type WithdrawRequest struct {
	EstateID     uint64 `json:"estate_id"`
	RequestedAt  int64  `json:"requested_at"`
	ExecuteAfter int64  `json:"execute_after"`
}

// RecoveryState is the timelocked ownership override.
type RecoveryState struct {
	EstateID        uint64 `json:"estate_id"`
	RecoveryAddress string `json:"recovery_address"`
	InitiatedAt     int64  `json:"initiated_at"`
	ExecuteAfter    int64  `json:"execute_after"`
}

func saveEstate(e *Estate) {
	stateSet(estateKey(e.ID), ToJSON(e, "estate"))
}

func loadEstate(id uint64) *Estate {
	ptr := stateGet(estateKey(id))
	if ptr == nil || *ptr == "" {
		sdk.Abort("estate not found")
	}
	return FromJSON[Estate](*ptr, "estate")
}

// requireEstateOwner loads the estate and aborts unless the sender owns it.
func requireEstateOwner(id uint64) *Estate {
	e := loadEstate(id)
	if getSenderAddress() != e.Owner {
		sdk.Abort("not estate owner")
	}
	return e
}

// requireUnlocked gates mutations behind the emergency lock flag.
func requireUnlocked(e *Estate) {
	if e.Locked {
		sdk.Abort("estate is locked")
	}
}

func requireOpen(e *Estate) {
	if e.Status == EstateClosed {
		sdk.Abort("estate is closed")
	}
}

func saveBeneficiaryClaim(c *BeneficiaryClaim) {
	stateSet(beneficiaryClaimKey(c.EstateID, c.Beneficiary), ToJSON(c, "beneficiary claim"))
}

func loadBeneficiaryClaim(estateID uint64, beneficiary sdk.Address) *BeneficiaryClaim {
	ptr := stateGet(beneficiaryClaimKey(estateID, beneficiary))
	if ptr == nil || *ptr == "" {
		return nil
	}
	return FromJSON[BeneficiaryClaim](*ptr, "beneficiary claim")
}

func saveEstateAsset(a *EstateAsset) {
	stateSet(estateAssetKey(a.EstateID, a.Identifier), ToJSON(a, "estate asset"))
}

func loadEstateAsset(estateID uint64, identifier string) *EstateAsset {
	ptr := stateGet(estateAssetKey(estateID, identifier))
	if ptr == nil || *ptr == "" {
		return nil
	}
	return FromJSON[EstateAsset](*ptr, "estate asset")
}

// estate token vaults, decimal string balances per (estate, asset)

func getEstateVault(estateID uint64, asset string) int64 {
	ptr := stateGet(estateVaultKey(estateID, asset))
	if ptr == nil || *ptr == "" {
		return 0
	}
	n, _ := strconv.ParseInt(*ptr, 10, 64)
	return n
}

func setEstateVault(estateID uint64, asset string, amount int64) {
	if amount == 0 {
		stateDelete(estateVaultKey(estateID, asset))
		return
	}
	stateSet(estateVaultKey(estateID, asset), strconv.FormatInt(amount, 10))
}

func saveEmergencyLock(l *EmergencyLockState) {
	stateSet(emergencyLockKey(l.EstateID), ToJSON(l, "emergency lock"))
}

func loadEmergencyLock(estateID uint64) *EmergencyLockState {
	ptr := stateGet(emergencyLockKey(estateID))
	if ptr == nil || *ptr == "" {
		return nil
	}
	return FromJSON[EmergencyLockState](*ptr, "emergency lock")
}

func deleteEmergencyLock(estateID uint64) {
	stateDelete(emergencyLockKey(estateID))
}

func saveWithdrawRequest(r *WithdrawRequest) {
	stateSet(withdrawRequestKey(r.EstateID), ToJSON(r, "withdraw request"))
}

func loadWithdrawRequest(estateID uint64) *WithdrawRequest {
	ptr := stateGet(withdrawRequestKey(estateID))
	if ptr == nil || *ptr == "" {
		return nil
	}
	return FromJSON[WithdrawRequest](*ptr, "withdraw request")
}

func deleteWithdrawRequest(estateID uint64) {
	stateDelete(withdrawRequestKey(estateID))
}

func saveRecovery(r *RecoveryState) {
	stateSet(recoveryKey(r.EstateID), ToJSON(r, "recovery"))
}

func loadRecovery(estateID uint64) *RecoveryState {
	ptr := stateGet(recoveryKey(estateID))
	if ptr == nil || *ptr == "" {
		return nil
	}
	return FromJSON[RecoveryState](*ptr, "recovery")
}

func deleteRecovery(estateID uint64) {
	stateDelete(recoveryKey(estateID))
}
