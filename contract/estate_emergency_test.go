package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const unlockCode = "magenta-otter-9931"

// lockEstate locks estate 1 as alice with a committed challenge code.
func lockEstate(t *testing.T, env *MockENV) string {
	asUser(env, aliceAddr)
	emailHash := encodeHash32(keccak256([]byte("alice@example.com")))
	callOK(t, EmergencyLock, ToJSON(map[string]any{
		"estate_id":  1,
		"reason":     "suspicious login from unknown device",
		"email_hash": emailHash,
		"code":       unlockCode,
	}, "payload"))
	return emailHash
}

func TestEmergencyLockValidation(t *testing.T) {
	_, env, _ := setupEstate(t)
	emailHash := encodeHash32(keccak256([]byte("alice@example.com")))

	asUser(env, bobAddr)
	requireAbort(t, "not estate owner", func() {
		EmergencyLock(strptr(`{"estate_id":1,"reason":"suspicious login attempt","email_hash":"` + emailHash + `","code":"x"}`))
	})

	asUser(env, aliceAddr)
	requireAbort(t, "lock reason length out of range", func() {
		EmergencyLock(strptr(`{"estate_id":1,"reason":"too short","email_hash":"` + emailHash + `","code":"x"}`))
	})
	requireAbort(t, "invalid email hash", func() {
		EmergencyLock(strptr(`{"estate_id":1,"reason":"suspicious login attempt","email_hash":"nothex","code":"x"}`))
	})
}

func TestEmergencyUnlockWithCode(t *testing.T) {
	_, env, _ := setupEstate(t)
	lockEstate(t, env)
	assert.True(t, loadEstate(1).Locked)

	requireAbort(t, "unlock delay not elapsed", func() {
		EmergencyUnlock(strptr(`{"estate_id":1,"code":"` + unlockCode + `"}`))
	})

	atTime(env, baseTime+MinUnlockDelay)
	res := ParseCallResult(*EmergencyUnlock(strptr(`{"estate_id":1,"code":"wrong-code"}`)))
	assert.False(t, res.OK)
	assert.Equal(t, "1", res.Data["attempts"])
	lock := loadEmergencyLock(1)
	if assert.NotNil(t, lock) {
		assert.Equal(t, uint8(1), lock.FailedAttempts)
	}

	callOK(t, EmergencyUnlock, `{"estate_id":1,"code":"`+unlockCode+`"}`)
	assert.False(t, loadEstate(1).Locked)
	assert.Nil(t, loadEmergencyLock(1))
}

func TestEmergencyUnlockAttemptCap(t *testing.T) {
	_, env, _ := setupEstate(t)
	lockEstate(t, env)
	atTime(env, baseTime+MinUnlockDelay)

	for i := 0; i < MaxUnlockAttempts; i++ {
		env.NextTx()
		res := ParseCallResult(*EmergencyUnlock(strptr(`{"estate_id":1,"code":"wrong"}`)))
		assert.False(t, res.OK)
	}
	// once the cap is hit even the right code is refused
	requireAbort(t, "unlock attempts exhausted", func() {
		EmergencyUnlock(strptr(`{"estate_id":1,"code":"` + unlockCode + `"}`))
	})
	assert.True(t, loadEstate(1).Locked)
}

func TestEmergencyRelockCooldown(t *testing.T) {
	_, env, _ := setupEstate(t)
	lockEstate(t, env)
	atTime(env, baseTime+MinUnlockDelay)
	callOK(t, EmergencyUnlock, `{"estate_id":1,"code":"`+unlockCode+`"}`)

	emailHash := encodeHash32(keccak256([]byte("alice@example.com")))
	requireAbort(t, "lock cooldown active", func() {
		EmergencyLock(strptr(`{"estate_id":1,"reason":"suspicious login attempt","email_hash":"` + emailHash + `","code":"x2"}`))
	})
	atTime(env, baseTime+LockCooldownSeconds)
	callOK(t, EmergencyLock, `{"estate_id":1,"reason":"suspicious login attempt","email_hash":"`+emailHash+`","code":"x2"}`)
}

func TestForceUnlockRequiresExecutedProposal(t *testing.T) {
	_, env, _ := setupEstate(t)

	// governance: carol and dave run a 2-of-2 multisig attached to the estate
	asUser(env, carolAddr)
	callOK(t, MultisigCreate, `{"signers":["`+carolAddr+`","`+daveAddr+`"],"threshold":2}`)
	asUser(env, aliceAddr)
	callOK(t, EstateAttachMultisig, `{"estate_id":1,"multisig_id":1}`)
	lockEstate(t, env)

	asUser(env, carolAddr)
	callOK(t, MultisigPropose, `{"multisig_id":1,"action":"unlock","target":1}`)

	// not executed yet
	requireAbort(t, "proposal not executed", func() {
		EmergencyForceUnlock(strptr(`{"estate_id":1,"proposal_id":1}`))
	})

	asUser(env, daveAddr)
	callOK(t, MultisigApprove, `{"multisig_id":1,"proposal_id":1}`)

	// dave executing does not let dave consume carol's proposal
	callOK(t, MultisigExecute, `{"multisig_id":1,"proposal_id":1}`)
	requireAbort(t, "proposal executor mismatch", func() {
		EmergencyForceUnlock(strptr(`{"estate_id":1,"proposal_id":1}`))
	})

	// a proposal both proposed and executed by carol unlocks
	asUser(env, carolAddr)
	callOK(t, MultisigPropose, `{"multisig_id":1,"action":"unlock","target":1}`)
	asUser(env, daveAddr)
	callOK(t, MultisigApprove, `{"multisig_id":1,"proposal_id":2}`)
	asUser(env, carolAddr)
	callOK(t, MultisigExecute, `{"multisig_id":1,"proposal_id":2}`)
	callOK(t, EmergencyForceUnlock, `{"estate_id":1,"proposal_id":2}`)
	assert.False(t, loadEstate(1).Locked)
}

func TestForceUnlockWrongActionOrTarget(t *testing.T) {
	_, env, _ := setupEstate(t)
	asUser(env, carolAddr)
	callOK(t, MultisigCreate, `{"signers":["`+carolAddr+`","`+daveAddr+`"],"threshold":2}`)
	asUser(env, aliceAddr)
	callOK(t, EstateAttachMultisig, `{"estate_id":1,"multisig_id":1}`)
	lockEstate(t, env)

	// wrong action variant
	asUser(env, carolAddr)
	callOK(t, MultisigPropose, `{"multisig_id":1,"action":"benef","target":1}`)
	asUser(env, daveAddr)
	callOK(t, MultisigApprove, `{"multisig_id":1,"proposal_id":1}`)
	asUser(env, carolAddr)
	callOK(t, MultisigExecute, `{"multisig_id":1,"proposal_id":1}`)
	requireAbort(t, "wrong proposal action", func() {
		EmergencyForceUnlock(strptr(`{"estate_id":1,"proposal_id":1}`))
	})

	// right action, wrong target estate
	callOK(t, MultisigPropose, `{"multisig_id":1,"action":"unlock","target":99}`)
	asUser(env, daveAddr)
	callOK(t, MultisigApprove, `{"multisig_id":1,"proposal_id":2}`)
	asUser(env, carolAddr)
	callOK(t, MultisigExecute, `{"multisig_id":1,"proposal_id":2}`)
	requireAbort(t, "wrong proposal target", func() {
		EmergencyForceUnlock(strptr(`{"estate_id":1,"proposal_id":2}`))
	})
}
