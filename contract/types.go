package contract

import (
	"defai_contracts/sdk"
)

// -----------------------------------------------------------------------------
// Shared enums
// -----------------------------------------------------------------------------

// ProposalAction tags what a governance proposal wants to happen. Each action
// carries its target in the proposal record; consumers re-validate both.
type ProposalAction uint8

const (
	ActionUnspecified        ProposalAction = 0
	ActionEmergencyUnlock    ProposalAction = 1
	ActionSetBeneficiaries   ProposalAction = 2
	ActionAdminWithdraw      ProposalAction = 3
)

// String prints the action as a short code for events and logs.
// Example payload: ActionEmergencyUnlock.String()
func (a ProposalAction) String() string {
	switch a {
	case ActionEmergencyUnlock:
		return "unlock"
	case ActionSetBeneficiaries:
		return "benef"
	case ActionAdminWithdraw:
		return "withdraw"
	default:
		return "unspecified"
	}
}

// parseProposalAction maps the payload code back to the enum.
func parseProposalAction(s string) ProposalAction {
	switch s {
	case "unlock":
		return ActionEmergencyUnlock
	case "benef":
		return ActionSetBeneficiaries
	case "withdraw":
		return ActionAdminWithdraw
	default:
		sdk.Abort("unknown proposal action")
		return ActionUnspecified
	}
}

// EstateStatus captures the vault lifecycle.
type EstateStatus uint8

const (
	EstateActive    EstateStatus = 0
	EstateClaimable EstateStatus = 1
	EstateClosed    EstateStatus = 2
)

// String prints the estate status as lower-case text for events.
func (s EstateStatus) String() string {
	switch s {
	case EstateClaimable:
		return "claimable"
	case EstateClosed:
		return "closed"
	default:
		return "active"
	}
}

// AssetKind distinguishes fungible token vaults from single NFT records in an
// estate's registered-asset list.
type AssetKind uint8

const (
	AssetKindToken AssetKind = 0
	AssetKindNft   AssetKind = 1
)

func (k AssetKind) String() string {
	if k == AssetKindNft {
		return "nft"
	}
	return "token"
}

// NftSource records which swap path minted an NFT.
type NftSource uint8

const (
	NftSourceSwap    NftSource = 0
	NftSourceOldSwap NftSource = 1
	NftSourceOgClaim NftSource = 2
)

func (s NftSource) String() string {
	switch s {
	case NftSourceOldSwap:
		return "old"
	case NftSourceOgClaim:
		return "og"
	default:
		return "swap"
	}
}
