package contract

import (
	"strings"

	"defai_contracts/sdk"
)

// -----------------------------------------------------------------------------
// Emergency lock with a hash-committed challenge code
// -----------------------------------------------------------------------------

// lockVerificationHash commits the unlock code at lock time. The unlocker has
// to reproduce the exact same digest.
func lockVerificationHash(estateID uint64, emailHash [32]byte, lockedAt int64, code string) [32]byte {
	var idBuf, tsBuf []byte
	idBuf = packU64LE(estateID, idBuf)
	tsBuf = packU64LE(uint64(lockedAt), tsBuf)
	return keccak256(idBuf, emailHash[:], tsBuf, []byte(code))
}

// EmergencyLockArgs freezes the estate behind a challenge code.
type EmergencyLockArgs struct {
	EstateID  uint64 `json:"estate_id"`
	Reason    string `json:"reason"`
	EmailHash string `json:"email_hash"`
	Code      string `json:"code"`
}

// EmergencyLock freezes all mutating estate operations. Re-locking is rate
// limited by a cooldown; the unlock code is stored only as a keccak
// commitment.
//
//go:wasmexport emergency_lock
func EmergencyLock(payload *string) *string {
	args := decodeArgs[EmergencyLockArgs](payload, "emergency lock")
	e := requireEstateOwner(args.EstateID)
	requireOpen(e)
	if e.Locked {
		sdk.Abort("estate already locked")
	}
	now := nowUnix()
	if e.LastLockAt != 0 && now-e.LastLockAt < LockCooldownSeconds {
		sdk.Abort("lock cooldown active")
	}
	reason := strings.TrimSpace(args.Reason)
	if len(reason) < MinLockReasonLen || len(reason) > MaxLockReasonLen {
		sdk.Abort("lock reason length out of range")
	}
	if strings.TrimSpace(args.Code) == "" {
		sdk.Abort("unlock code empty")
	}
	emailHash := decodeHash32(args.EmailHash, "email hash")

	hash := lockVerificationHash(e.ID, emailHash, now, args.Code)
	e.Locked = true
	e.LastLockAt = now
	saveEstate(e)
	saveEmergencyLock(&EmergencyLockState{
		EstateID:         e.ID,
		LockedAt:         now,
		Reason:           reason,
		VerificationHash: encodeHash32(hash),
		EmailHash:        args.EmailHash,
	})
	emitEstateLocked(e.ID, e.Owner.String(), now)
	return okResult("estate locked")
}

// EmergencyUnlockArgs presents the challenge code.
type EmergencyUnlockArgs struct {
	EstateID uint64 `json:"estate_id"`
	Code     string `json:"code"`
}

// EmergencyUnlock verifies the challenge code. A wrong code records the
// failed attempt and returns a non-ok envelope so the counter persists; after
// the attempt cap only a multisig force-unlock remains.
//
//go:wasmexport emergency_unlock
func EmergencyUnlock(payload *string) *string {
	args := decodeArgs[EmergencyUnlockArgs](payload, "emergency unlock")
	e := requireEstateOwner(args.EstateID)
	if !e.Locked {
		sdk.Abort("estate not locked")
	}
	lock := loadEmergencyLock(e.ID)
	if lock == nil {
		sdk.Abort("no lock record")
	}
	now := nowUnix()
	if now < lock.LockedAt+MinUnlockDelay {
		sdk.Abort("unlock delay not elapsed")
	}
	if lock.FailedAttempts >= MaxUnlockAttempts {
		sdk.Abort("unlock attempts exhausted")
	}

	emailHash := decodeHash32(lock.EmailHash, "email hash")
	expected := lockVerificationHash(e.ID, emailHash, lock.LockedAt, args.Code)
	if encodeHash32(expected) != lock.VerificationHash {
		lock.FailedAttempts++
		saveEmergencyLock(lock)
		emitUnlockFailed(e.ID, lock.FailedAttempts)
		return returnResult(false, "verification failed",
			"attempts", UInt64ToString(uint64(lock.FailedAttempts)))
	}

	e.Locked = false
	saveEstate(e)
	deleteEmergencyLock(e.ID)
	emitEstateUnlocked(e.ID, e.Owner.String(), false)
	return okResult("estate unlocked")
}

// EmergencyForceUnlockArgs references the executed governance proposal.
type EmergencyForceUnlockArgs struct {
	EstateID   uint64 `json:"estate_id"`
	ProposalID uint64 `json:"proposal_id"`
}

// EmergencyForceUnlock is the governance path once the attempt cap is hit or
// the code is lost. It demands an executed unlock proposal from the attached
// multisig, targeting this estate, executed by the caller.
//
//go:wasmexport emergency_force_unlock
func EmergencyForceUnlock(payload *string) *string {
	args := decodeArgs[EmergencyForceUnlockArgs](payload, "force unlock")
	e := loadEstate(args.EstateID)
	if !e.Locked {
		sdk.Abort("estate not locked")
	}
	if e.MultisigID == 0 {
		sdk.Abort("no multisig attached")
	}
	sender := getSenderAddress()
	requireExecutedProposal(e.MultisigID, args.ProposalID, ActionEmergencyUnlock, e.ID, sender)

	e.Locked = false
	saveEstate(e)
	deleteEmergencyLock(e.ID)
	emitEstateUnlocked(e.ID, sender.String(), true)
	return okResult("estate force unlocked")
}
