package contract

import (
	"defai_contracts/sdk"
)

// -----------------------------------------------------------------------------
// Timelocked ownership recovery
// -----------------------------------------------------------------------------
// The override path of last resort. Platform-owner gated, only reachable for
// estates that have sat claimable for a month, and still delayed a week so a
// compromised admin key cannot seize an estate in one move.

// RecoveryInitArgs names where ownership goes on execution.
type RecoveryInitArgs struct {
	EstateID        uint64 `json:"estate_id"`
	RecoveryAddress string `json:"recovery_address"`
}

// RecoveryInit starts the override clock for a long-claimable estate.
//
//go:wasmexport recovery_init
func RecoveryInit(payload *string) *string {
	requireContractOwner()
	args := decodeArgs[RecoveryInitArgs](payload, "recovery init")
	e := loadEstate(args.EstateID)
	requireOpen(e)
	if e.Status != EstateClaimable {
		sdk.Abort("estate not claimable")
	}
	now := nowUnix()
	if now-e.ClaimableSince < RecoveryClaimableAge {
		sdk.Abort("estate not claimable long enough")
	}
	if loadRecovery(e.ID) != nil {
		sdk.Abort("recovery already pending")
	}
	target := requireAddressField(args.RecoveryAddress, "recovery")

	saveRecovery(&RecoveryState{
		EstateID:        e.ID,
		RecoveryAddress: target.String(),
		InitiatedAt:     now,
		ExecuteAfter:    now + RecoveryExecuteDelay,
	})
	emitRecovery(e.ID, "init", target.String())
	return okResult("recovery initiated")
}

// RecoveryExecute reassigns ownership and wipes lock, claimable state and the
// beneficiary list.
//
//go:wasmexport recovery_execute
func RecoveryExecute(payload *string) *string {
	requireContractOwner()
	args := decodeArgs[EstateIDArgs](payload, "recovery execute")
	e := loadEstate(args.EstateID)
	rec := loadRecovery(e.ID)
	if rec == nil {
		sdk.Abort("no pending recovery")
	}
	now := nowUnix()
	if now < rec.ExecuteAfter {
		sdk.Abort("recovery delay not elapsed")
	}

	e.Owner = sdk.Address(rec.RecoveryAddress)
	e.Locked = false
	e.Status = EstateActive
	e.ClaimableSince = 0
	e.ClaimBase = 0
	e.Beneficiaries = nil
	e.LastActive = now
	saveEstate(e)
	deleteEmergencyLock(e.ID)
	deleteRecovery(e.ID)
	emitRecovery(e.ID, "exec", rec.RecoveryAddress)
	return okResult("recovery executed", "owner", rec.RecoveryAddress)
}

// RecoveryCancel drops a pending recovery before the delay runs out.
//
//go:wasmexport recovery_cancel
func RecoveryCancel(payload *string) *string {
	requireContractOwner()
	args := decodeArgs[EstateIDArgs](payload, "recovery cancel")
	e := loadEstate(args.EstateID)
	rec := loadRecovery(e.ID)
	if rec == nil {
		sdk.Abort("no pending recovery")
	}
	deleteRecovery(e.ID)
	emitRecovery(e.ID, "cancel", rec.RecoveryAddress)
	return okResult("recovery cancelled")
}
