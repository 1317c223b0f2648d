package contract

import (
	"defai_contracts/sdk"
)

// -----------------------------------------------------------------------------
// Multisig governance
// -----------------------------------------------------------------------------
// Executing a proposal only marks it. Consuming operations re-validate the
// action variant, target and executor before applying any side effect, so a
// stale executed proposal cannot authorize a different operation.

// Multisig is one signer group with a rotating admin.
type Multisig struct {
	ID              uint64   `json:"id"`
	Admin           string   `json:"admin"`
	PendingAdmin    string   `json:"pending_admin,omitempty"`
	AdminProposedAt int64    `json:"admin_proposed_at,omitempty"`
	Signers         []string `json:"signers"`
	Threshold       uint8    `json:"threshold"`
	ProposalCount   uint64   `json:"proposal_count"`
	CreatedAt       int64    `json:"created_at"`
}

// Proposal is one governance action working toward quorum.
type Proposal struct {
	MultisigID uint64         `json:"multisig_id"`
	ID         uint64         `json:"id"`
	Action     ProposalAction `json:"action"`
	Target     uint64         `json:"target"`
	Proposer   string         `json:"proposer"`
	Approvals  []string       `json:"approvals"`
	Executed   bool           `json:"executed"`
	ExecutedBy string         `json:"executed_by,omitempty"`
	CreatedAt  int64          `json:"created_at"`
	ExecutedAt int64          `json:"executed_at,omitempty"`
}

func saveMultisig(ms *Multisig) {
	stateSet(multisigKey(ms.ID), ToJSON(ms, "multisig"))
}

func loadMultisig(id uint64) *Multisig {
	ptr := stateGet(multisigKey(id))
	if ptr == nil || *ptr == "" {
		sdk.Abort("multisig not found")
	}
	return FromJSON[Multisig](*ptr, "multisig")
}

func saveProposal(p *Proposal) {
	stateSet(proposalKey(p.MultisigID, p.ID), ToJSON(p, "proposal"))
}

func loadProposal(multisigID, proposalID uint64) *Proposal {
	ptr := stateGet(proposalKey(multisigID, proposalID))
	if ptr == nil || *ptr == "" {
		sdk.Abort("proposal not found")
	}
	return FromJSON[Proposal](*ptr, "proposal")
}

func (ms *Multisig) isSigner(addr sdk.Address) bool {
	for _, s := range ms.Signers {
		if s == addr.String() {
			return true
		}
	}
	return false
}

func (p *Proposal) hasApproved(addr sdk.Address) bool {
	for _, a := range p.Approvals {
		if a == addr.String() {
			return true
		}
	}
	return false
}

// requireExecutedProposal validates an executed proposal strictly before a
// consumer applies its side effect: action variant, target, quorum, and
// proposer == executor == caller.
func requireExecutedProposal(multisigID, proposalID uint64, action ProposalAction, target uint64, caller sdk.Address) {
	ms := loadMultisig(multisigID)
	p := loadProposal(multisigID, proposalID)
	if !p.Executed {
		sdk.Abort("proposal not executed")
	}
	if p.Action != action {
		sdk.Abort("wrong proposal action")
	}
	if p.Target != target {
		sdk.Abort("wrong proposal target")
	}
	if len(p.Approvals) < int(ms.Threshold) {
		sdk.Abort("proposal below threshold")
	}
	if p.Proposer != caller.String() || p.ExecutedBy != caller.String() {
		sdk.Abort("proposal executor mismatch")
	}
}

// MultisigCreateArgs configures the signer group.
type MultisigCreateArgs struct {
	Signers   []string `json:"signers"`
	Threshold uint8    `json:"threshold"`
}

// MultisigCreate registers a signer group with the caller as admin.
//
//go:wasmexport multisig_create
func MultisigCreate(payload *string) *string {
	requireInitialized()
	args := decodeArgs[MultisigCreateArgs](payload, "multisig create")
	if len(args.Signers) < MinSigners || len(args.Signers) > MaxSigners {
		sdk.Abort("signer count out of range")
	}
	if args.Threshold == 0 || int(args.Threshold) > len(args.Signers) {
		sdk.Abort("threshold out of range")
	}
	sender := getSenderAddress()
	seen := map[string]bool{}
	signers := make([]string, 0, len(args.Signers))
	for _, s := range args.Signers {
		addr := requireAddressField(s, "signer")
		if seen[addr.String()] {
			sdk.Abort("duplicate signer")
		}
		seen[addr.String()] = true
		signers = append(signers, addr.String())
	}
	if !seen[sender.String()] {
		sdk.Abort("creator must be a signer")
	}

	id := nextCount(MultisigsCount)
	ms := Multisig{
		ID:        id,
		Admin:     sender.String(),
		Signers:   signers,
		Threshold: args.Threshold,
		CreatedAt: nowUnix(),
	}
	saveMultisig(&ms)
	stateSet(multisigByAdminKey(sender), UInt64ToString(id))
	emitMultisigCreated(id, sender.String(), args.Threshold)
	return okResult("multisig created", "id", UInt64ToString(id))
}

// MultisigProposeArgs opens a proposal for one governance action.
type MultisigProposeArgs struct {
	MultisigID uint64 `json:"multisig_id"`
	Action     string `json:"action"`
	Target     uint64 `json:"target"`
}

// MultisigPropose opens a proposal and auto-approves the proposer.
//
//go:wasmexport multisig_propose
func MultisigPropose(payload *string) *string {
	args := decodeArgs[MultisigProposeArgs](payload, "multisig propose")
	ms := loadMultisig(args.MultisigID)
	sender := getSenderAddress()
	if !ms.isSigner(sender) {
		sdk.Abort("not a multisig signer")
	}
	action := parseProposalAction(args.Action)

	ms.ProposalCount++
	saveMultisig(ms)
	p := Proposal{
		MultisigID: ms.ID,
		ID:         ms.ProposalCount,
		Action:     action,
		Target:     args.Target,
		Proposer:   sender.String(),
		Approvals:  []string{sender.String()},
		CreatedAt:  nowUnix(),
	}
	saveProposal(&p)
	emitProposalCreated(ms.ID, p.ID, action.String(), sender.String())
	return okResult("proposal created", "id", UInt64ToString(p.ID))
}

// ProposalRefArgs addresses one proposal within its multisig.
type ProposalRefArgs struct {
	MultisigID uint64 `json:"multisig_id"`
	ProposalID uint64 `json:"proposal_id"`
}

// MultisigApprove adds one signer approval.
//
//go:wasmexport multisig_approve
func MultisigApprove(payload *string) *string {
	args := decodeArgs[ProposalRefArgs](payload, "multisig approve")
	ms := loadMultisig(args.MultisigID)
	sender := getSenderAddress()
	if !ms.isSigner(sender) {
		sdk.Abort("not a multisig signer")
	}
	p := loadProposal(args.MultisigID, args.ProposalID)
	if p.Executed {
		sdk.Abort("proposal already executed")
	}
	if p.hasApproved(sender) {
		sdk.Abort("already approved")
	}
	p.Approvals = append(p.Approvals, sender.String())
	saveProposal(p)
	emitProposalApproved(ms.ID, p.ID, sender.String(), len(p.Approvals))
	return okResult("approved", "approvals", UInt64ToString(uint64(len(p.Approvals))))
}

// MultisigExecute marks a proposal executed once quorum is reached. Terminal.
//
//go:wasmexport multisig_execute
func MultisigExecute(payload *string) *string {
	args := decodeArgs[ProposalRefArgs](payload, "multisig execute")
	ms := loadMultisig(args.MultisigID)
	sender := getSenderAddress()
	if !ms.isSigner(sender) {
		sdk.Abort("not a multisig signer")
	}
	p := loadProposal(args.MultisigID, args.ProposalID)
	if p.Executed {
		sdk.Abort("proposal already executed")
	}
	if len(p.Approvals) < int(ms.Threshold) {
		sdk.Abort("approvals below threshold")
	}
	p.Executed = true
	p.ExecutedBy = sender.String()
	p.ExecutedAt = nowUnix()
	saveProposal(p)
	emitProposalExecuted(ms.ID, p.ID, sender.String())
	return okResult("executed")
}

// MultisigAdminArgs names the proposed next admin.
type MultisigAdminArgs struct {
	MultisigID uint64 `json:"multisig_id"`
	NewAdmin   string `json:"new_admin"`
}

// MultisigAdminPropose starts the timelocked admin rotation.
//
//go:wasmexport multisig_admin_propose
func MultisigAdminPropose(payload *string) *string {
	args := decodeArgs[MultisigAdminArgs](payload, "admin propose")
	ms := loadMultisig(args.MultisigID)
	sender := getSenderAddress()
	if sender.String() != ms.Admin {
		sdk.Abort("not multisig admin")
	}
	next := requireAddressField(args.NewAdmin, "admin")
	if next.String() == ms.Admin {
		sdk.Abort("already the admin")
	}
	ms.PendingAdmin = next.String()
	ms.AdminProposedAt = nowUnix()
	saveMultisig(ms)
	emitAdminRotation(ms.ID, "proposed", next.String())
	return okResult("admin proposed")
}

// MultisigAdminAcceptArgs names the multisig whose rotation completes.
type MultisigAdminAcceptArgs struct {
	MultisigID uint64 `json:"multisig_id"`
}

// MultisigAdminAccept completes the rotation after the timelock. Only the
// proposed address may call it.
//
//go:wasmexport multisig_admin_accept
func MultisigAdminAccept(payload *string) *string {
	args := decodeArgs[MultisigAdminAcceptArgs](payload, "admin accept")
	ms := loadMultisig(args.MultisigID)
	sender := getSenderAddress()
	if ms.PendingAdmin == "" || sender.String() != ms.PendingAdmin {
		sdk.Abort("no pending admin rotation for sender")
	}
	if nowUnix() < ms.AdminProposedAt+AdminTimelockDelay {
		sdk.Abort("admin timelock not elapsed")
	}
	previous := ms.Admin
	ms.Admin = sender.String()
	ms.PendingAdmin = ""
	ms.AdminProposedAt = 0
	saveMultisig(ms)
	stateDelete(multisigByAdminKey(sdk.Address(previous)))
	stateSet(multisigByAdminKey(sender), UInt64ToString(ms.ID))
	emitAdminRotation(ms.ID, "accepted", sender.String())
	return okResult("admin accepted")
}
