package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"defai_contracts/sdk"
)

// setupMultisig creates a 2-of-3 group [carol, dave, alice] with carol as admin.
func setupMultisig(t *testing.T) (*MockState, *MockENV, *MockHost) {
	st, env, host := setupTest()
	initPlatform(t, env)
	asUser(env, carolAddr)
	callOK(t, MultisigCreate, `{"signers":["`+carolAddr+`","`+daveAddr+`","`+aliceAddr+`"],"threshold":2}`)
	return st, env, host
}

func TestMultisigCreateValidation(t *testing.T) {
	_, env, _ := setupTest()
	initPlatform(t, env)
	asUser(env, carolAddr)

	requireAbort(t, "signer count out of range", func() {
		MultisigCreate(strptr(`{"signers":["` + carolAddr + `"],"threshold":1}`))
	})
	requireAbort(t, "threshold out of range", func() {
		MultisigCreate(strptr(`{"signers":["` + carolAddr + `","` + daveAddr + `"],"threshold":0}`))
	})
	requireAbort(t, "threshold out of range", func() {
		MultisigCreate(strptr(`{"signers":["` + carolAddr + `","` + daveAddr + `"],"threshold":3}`))
	})
	requireAbort(t, "duplicate signer", func() {
		MultisigCreate(strptr(`{"signers":["` + carolAddr + `","` + carolAddr + `"],"threshold":2}`))
	})
	requireAbort(t, "creator must be a signer", func() {
		MultisigCreate(strptr(`{"signers":["` + daveAddr + `","` + aliceAddr + `"],"threshold":2}`))
	})

	res := callOK(t, MultisigCreate, `{"signers":["`+carolAddr+`","`+daveAddr+`"],"threshold":2}`)
	assert.Equal(t, "1", res.Data["id"])
	ms := loadMultisig(1)
	assert.Equal(t, carolAddr, ms.Admin)
	assert.Equal(t, uint8(2), ms.Threshold)
}

func TestProposalQuorum(t *testing.T) {
	_, env, _ := setupMultisig(t)

	asUser(env, bobAddr)
	requireAbort(t, "not a multisig signer", func() {
		MultisigPropose(strptr(`{"multisig_id":1,"action":"unlock","target":7}`))
	})

	asUser(env, carolAddr)
	callOK(t, MultisigPropose, `{"multisig_id":1,"action":"unlock","target":7}`)
	p := loadProposal(1, 1)
	assert.Equal(t, []string{carolAddr}, p.Approvals)

	// proposer cannot approve twice, outsiders not at all
	requireAbort(t, "already approved", func() {
		MultisigApprove(strptr(`{"multisig_id":1,"proposal_id":1}`))
	})
	asUser(env, bobAddr)
	requireAbort(t, "not a multisig signer", func() {
		MultisigApprove(strptr(`{"multisig_id":1,"proposal_id":1}`))
	})

	// one approval is below the 2-of-3 threshold
	asUser(env, carolAddr)
	requireAbort(t, "approvals below threshold", func() {
		MultisigExecute(strptr(`{"multisig_id":1,"proposal_id":1}`))
	})

	asUser(env, daveAddr)
	callOK(t, MultisigApprove, `{"multisig_id":1,"proposal_id":1}`)
	asUser(env, carolAddr)
	callOK(t, MultisigExecute, `{"multisig_id":1,"proposal_id":1}`)

	p = loadProposal(1, 1)
	assert.True(t, p.Executed)
	assert.Equal(t, carolAddr, p.ExecutedBy)

	// terminal: no re-approval, no re-execution
	asUser(env, aliceAddr)
	requireAbort(t, "proposal already executed", func() {
		MultisigApprove(strptr(`{"multisig_id":1,"proposal_id":1}`))
	})
	requireAbort(t, "proposal already executed", func() {
		MultisigExecute(strptr(`{"multisig_id":1,"proposal_id":1}`))
	})
}

func TestProposeUnknownAction(t *testing.T) {
	_, env, _ := setupMultisig(t)
	asUser(env, carolAddr)
	requireAbort(t, "unknown proposal action", func() {
		MultisigPropose(strptr(`{"multisig_id":1,"action":"mint","target":1}`))
	})
}

func TestProposalIDsPerMultisig(t *testing.T) {
	_, env, _ := setupMultisig(t)
	asUser(env, carolAddr)
	res := callOK(t, MultisigPropose, `{"multisig_id":1,"action":"unlock","target":1}`)
	assert.Equal(t, "1", res.Data["id"])
	res = callOK(t, MultisigPropose, `{"multisig_id":1,"action":"benef","target":2}`)
	assert.Equal(t, "2", res.Data["id"])
	assert.Equal(t, uint64(2), loadMultisig(1).ProposalCount)
}

func TestAdminRotationTimelock(t *testing.T) {
	st, env, _ := setupMultisig(t)

	asUser(env, daveAddr)
	requireAbort(t, "not multisig admin", func() {
		MultisigAdminPropose(strptr(`{"multisig_id":1,"new_admin":"` + daveAddr + `"}`))
	})

	asUser(env, carolAddr)
	requireAbort(t, "already the admin", func() {
		MultisigAdminPropose(strptr(`{"multisig_id":1,"new_admin":"` + carolAddr + `"}`))
	})
	callOK(t, MultisigAdminPropose, `{"multisig_id":1,"new_admin":"`+daveAddr+`"}`)

	// only the proposed admin may accept, and only after the timelock
	requireAbort(t, "no pending admin rotation", func() {
		MultisigAdminAccept(strptr(`{"multisig_id":1}`))
	})
	asUser(env, daveAddr)
	requireAbort(t, "admin timelock not elapsed", func() {
		MultisigAdminAccept(strptr(`{"multisig_id":1}`))
	})
	atTime(env, baseTime+AdminTimelockDelay-1)
	requireAbort(t, "admin timelock not elapsed", func() {
		MultisigAdminAccept(strptr(`{"multisig_id":1}`))
	})

	atTime(env, baseTime+AdminTimelockDelay)
	callOK(t, MultisigAdminAccept, `{"multisig_id":1}`)
	ms := loadMultisig(1)
	assert.Equal(t, daveAddr, ms.Admin)
	assert.Empty(t, ms.PendingAdmin)

	// byAdmin index moved from carol to dave
	assert.Nil(t, st.Get(multisigByAdminKey(sdk.Address(carolAddr))))
	assert.Equal(t, "1", *st.Get(multisigByAdminKey(sdk.Address(daveAddr))))
}
