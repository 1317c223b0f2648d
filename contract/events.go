package contract

import (
	"fmt"
	"strconv"
)

// -----------------------------------------------------------------------------
// Event log lines
// -----------------------------------------------------------------------------
// One terse pipe-delimited line per successful mutation so indexers never have
// to diff storage. Tag first, then fields.

// marketplace

func emitFactoryInit(authority string, feeBps uint16) {
	emit(fmt.Sprintf("fi|auth:%s|fee:%d", authority, feeBps))
}

func emitAppRegistered(appID uint64, creator string, price int64) {
	emit(fmt.Sprintf("ar|id:%d|by:%s|p:%d", appID, creator, price))
}

func emitAppUpdated(appID uint64, field string) {
	emit(fmt.Sprintf("au|id:%d|f:%s", appID, field))
}

// emitAppPurchased includes the split so revenue can be replayed from logs only.
func emitAppPurchased(appID uint64, buyer string, price int64, fee int64) {
	emit(fmt.Sprintf("ap|id:%d|by:%s|p:%d|fee:%d", appID, buyer, price, fee))
}

func emitAppRefunded(appID uint64, buyer string, amount int64) {
	emit(fmt.Sprintf("arf|id:%d|by:%s|am:%d", appID, buyer, amount))
}

func emitReviewSubmitted(appID uint64, reviewer string, rating uint8) {
	emit(fmt.Sprintf("rv|id:%d|by:%s|r:%d", appID, reviewer, rating))
}

func emitReviewUpdated(appID uint64, reviewer string, rating uint8) {
	emit(fmt.Sprintf("rvu|id:%d|by:%s|r:%d", appID, reviewer, rating))
}

func emitAuthorityChange(stage string, addr string) {
	emit(fmt.Sprintf("fa|s:%s|a:%s", stage, addr))
}

func emitEarningsWithdrawn(who string, amount int64) {
	emit(fmt.Sprintf("ew|to:%s|am:%d", who, amount))
}

// estate vault

func emitEstateCreated(estateID uint64, owner string) {
	emit(fmt.Sprintf("ec|id:%d|by:%s", estateID, owner))
}

func emitEstateCheckin(estateID uint64, at int64) {
	emit(fmt.Sprintf("eci|id:%d|t:%d", estateID, at))
}

func emitEstateDeposit(estateID uint64, from string, amount int64, asset string) {
	emit(fmt.Sprintf("ed|id:%d|by:%s|am:%d|as:%s", estateID, from, amount, asset))
}

func emitPeriodsUpdated(estateID uint64, inactivity int64, grace int64) {
	emit(fmt.Sprintf("ep|id:%d|i:%d|g:%d", estateID, inactivity, grace))
}

func emitBeneficiariesSet(estateID uint64, count int) {
	emit(fmt.Sprintf("eb|id:%d|n:%d", estateID, count))
}

func emitMultisigAttached(estateID uint64, multisigID uint64) {
	emit(fmt.Sprintf("em|id:%d|ms:%d", estateID, multisigID))
}

func emitEstateTriggered(estateID uint64, at int64) {
	emit(fmt.Sprintf("et|id:%d|t:%d", estateID, at))
}

// emitInheritanceClaimed logs the payout per beneficiary so shares can be audited.
func emitInheritanceClaimed(estateID uint64, beneficiary string, amount int64) {
	emit(fmt.Sprintf("eic|id:%d|by:%s|am:%d", estateID, beneficiary, amount))
}

func emitTokenClaimed(estateID uint64, beneficiary string, asset string, amount int64) {
	emit(fmt.Sprintf("etc|id:%d|by:%s|as:%s|am:%d", estateID, beneficiary, asset, amount))
}

func emitNftClaimed(estateID uint64, beneficiary string, nft string) {
	emit(fmt.Sprintf("enc|id:%d|by:%s|n:%s", estateID, beneficiary, nft))
}

func emitAssetRegistered(estateID uint64, kind string, identifier string) {
	emit(fmt.Sprintf("era|id:%d|k:%s|a:%s", estateID, kind, identifier))
}

func emitEstateClosed(estateID uint64, returned int64) {
	emit(fmt.Sprintf("ecl|id:%d|am:%d", estateID, returned))
}

func emitEstateLocked(estateID uint64, by string, at int64) {
	emit(fmt.Sprintf("el|id:%d|by:%s|t:%d", estateID, by, at))
}

func emitEstateUnlocked(estateID uint64, by string, forced bool) {
	emit(fmt.Sprintf("eu|id:%d|by:%s|f:%s", estateID, by, strconv.FormatBool(forced)))
}

func emitUnlockFailed(estateID uint64, attempts uint8) {
	emit(fmt.Sprintf("euf|id:%d|n:%d", estateID, attempts))
}

// trading sub-ledger

func emitTradingEnabled(estateID uint64, humanShare uint8, agent string) {
	emit(fmt.Sprintf("te|id:%d|h:%d|ai:%s", estateID, humanShare, agent))
}

func emitTradingContribution(estateID uint64, from string, amount int64, human bool) {
	emit(fmt.Sprintf("tc|id:%d|by:%s|am:%d|h:%s", estateID, from, amount, strconv.FormatBool(human)))
}

func emitTradingValue(estateID uint64, value int64, profit int64) {
	emit(fmt.Sprintf("tv|id:%d|v:%d|p:%d", estateID, value, profit))
}

// emitTradingDistribution records both cuts plus the advanced high-water mark.
func emitTradingDistribution(estateID uint64, humanCut int64, aiCut int64, hwm int64) {
	emit(fmt.Sprintf("td|id:%d|h:%d|ai:%d|hwm:%d", estateID, humanCut, aiCut, hwm))
}

func emitTradingPaused(estateID uint64, paused bool) {
	emit(fmt.Sprintf("tp|id:%d|p:%s", estateID, strconv.FormatBool(paused)))
}

func emitEmergencyWithdraw(estateID uint64, stage string, amount int64) {
	emit(fmt.Sprintf("tew|id:%d|s:%s|am:%d", estateID, stage, amount))
}

// recovery

func emitRecovery(estateID uint64, stage string, target string) {
	emit(fmt.Sprintf("rc|id:%d|s:%s|to:%s", estateID, stage, target))
}

// multisig

func emitMultisigCreated(multisigID uint64, admin string, threshold uint8) {
	emit(fmt.Sprintf("mc|id:%d|by:%s|th:%d", multisigID, admin, threshold))
}

func emitProposalCreated(multisigID uint64, proposalID uint64, action string, by string) {
	emit(fmt.Sprintf("mp|ms:%d|id:%d|a:%s|by:%s", multisigID, proposalID, action, by))
}

func emitProposalApproved(multisigID uint64, proposalID uint64, by string, approvals int) {
	emit(fmt.Sprintf("ma|ms:%d|id:%d|by:%s|n:%d", multisigID, proposalID, by, approvals))
}

func emitProposalExecuted(multisigID uint64, proposalID uint64, by string) {
	emit(fmt.Sprintf("mx|ms:%d|id:%d|by:%s", multisigID, proposalID, by))
}

func emitAdminRotation(multisigID uint64, stage string, addr string) {
	emit(fmt.Sprintf("mr|ms:%d|s:%s|a:%s", multisigID, stage, addr))
}

// swap / minting

func emitSwapInit(admin string) {
	emit(fmt.Sprintf("si|by:%s", admin))
}

func emitSwapConfigUpdated(field string) {
	emit(fmt.Sprintf("sc|f:%s", field))
}

func emitSwapPaused(paused bool) {
	emit(fmt.Sprintf("sp|p:%s", strconv.FormatBool(paused)))
}

// emitSwapExecuted carries tier, payment, tax and the rolled bonus in one line.
func emitSwapExecuted(nftID uint64, user string, tier uint8, price int64, tax int64, bonusBps uint16) {
	emit(fmt.Sprintf("sx|id:%d|by:%s|t:%d|p:%d|tax:%d|b:%d", nftID, user, tier, price, tax, bonusBps))
}

func emitRedeemed(nftID uint64, user string, amount int64, fees int64) {
	emit(fmt.Sprintf("sr|id:%d|by:%s|am:%d|fee:%d", nftID, user, amount, fees))
}

func emitRerolled(nftID uint64, user string, oldBps uint16, newBps uint16, fee int64) {
	emit(fmt.Sprintf("srr|id:%d|by:%s|old:%d|new:%d|fee:%d", nftID, user, oldBps, newBps, fee))
}

func emitVestingClaimed(nftID uint64, user string, amount int64, released int64) {
	emit(fmt.Sprintf("sv|id:%d|by:%s|am:%d|rel:%d", nftID, user, amount, released))
}

func emitTaxReset(user string, oldBps uint16, newBps uint16) {
	emit(fmt.Sprintf("st|by:%s|old:%d|new:%d", user, oldBps, newBps))
}

func emitOgClaimed(nftID uint64, user string, amount int64) {
	emit(fmt.Sprintf("so|id:%d|by:%s|am:%d", nftID, user, amount))
}

func emitAirdropClaimed(user string, amount int64) {
	emit(fmt.Sprintf("sa|by:%s|am:%d", user, amount))
}

func emitAirdropVested(user string, amount int64, released int64) {
	emit(fmt.Sprintf("sav|by:%s|am:%d|rel:%d", user, amount, released))
}

func emitRandomnessCommitted(by string) {
	emit(fmt.Sprintf("srn|by:%s", by))
}

func emitEscrowFunded(by string, amount int64) {
	emit(fmt.Sprintf("se|by:%s|am:%d", by, amount))
}

func emitAdminWithdraw(to string, amount int64) {
	emit(fmt.Sprintf("sw|to:%s|am:%d", to, amount))
}
