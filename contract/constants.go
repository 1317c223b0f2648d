package contract

// -----------------------------------------------------------------------------
// Storage key prefixes
// -----------------------------------------------------------------------------
// Entity records live under single-byte prefixes with packed ids so related
// blobs stay contiguous in the host kv. Singleton records use short named keys.

const (
	// marketplace
	kApp             byte = 0x01
	kAccessGrant     byte = 0x02
	kReview          byte = 0x03
	kCreatorEarnings byte = 0x04

	// estate vault
	kEstate          byte = 0x10
	kEstateVault     byte = 0x11
	kEstateAsset     byte = 0x12
	kBeneficiaryClm  byte = 0x13
	kEmergencyLock   byte = 0x14
	kRecovery        byte = 0x15
	kWithdrawRequest byte = 0x16

	// governance
	kMultisig        byte = 0x20
	kMultisigByAdmin byte = 0x21
	kProposal        byte = 0x22

	// swap / minting
	kNft            byte = 0x30
	kBonusRecord    byte = 0x31
	kVestingRecord  byte = 0x32
	kUserTax        byte = 0x33
	kOgClaim        byte = 0x34
	kAirdropVesting byte = 0x35
)

// Singleton state keys.
const (
	ContractConfigKey = "cfg:contract"
	FactoryConfigKey  = "cfg:factory"
	SwapConfigKey     = "cfg:swap"
	SwapEscrowKey     = "swap:escrow"
	RandomnessKey     = "swap:rand"
	OgWhitelistKey    = "wl:og"
	AirdropRootKey    = "wl:air"
)

// Counter keys.
const (
	AppsCount      = "count:apps"
	EstatesCount   = "count:est"
	MultisigsCount = "count:ms"
	NftsCount      = "count:nft"
)

// -----------------------------------------------------------------------------
// Domain constants
// -----------------------------------------------------------------------------

const (
	// shared bps domain
	BpsDenominator = 10000

	// marketplace
	MaxFeeBps           = 10000
	MaxMetadataURILen   = 100
	MaxCommentRefLen    = 46
	RefundWindowSeconds = int64(24 * 60 * 60)
	MinRating           = 1
	MaxRating           = 5

	// estate liveness windows (seconds)
	MinInactivityPeriod = int64(24 * 60 * 60)
	MaxInactivityPeriod = int64(300 * 365 * 24 * 60 * 60)
	MinGracePeriod      = int64(24 * 60 * 60)
	MaxGracePeriod      = int64(90 * 24 * 60 * 60)
	MaxBeneficiaries    = 10
	MinRentReserve      = int64(890880)

	// estate trading
	MinHumanSharePct  = 50
	MaxHumanSharePct  = 100
	MinEmergencyDelay = int64(24 * 60 * 60)
	MaxEmergencyDelay = int64(168 * 60 * 60)

	// emergency lock (challenge-code design)
	LockCooldownSeconds  = int64(3600)
	MinLockReasonLen     = 11
	MaxLockReasonLen     = 128
	MinUnlockDelay       = int64(300)
	MaxUnlockAttempts    = 5
	EmergencyLockTimeout = int64(72 * 60 * 60)

	// recovery
	RecoveryClaimableAge  = int64(30 * 24 * 60 * 60)
	RecoveryExecuteDelay  = int64(7 * 24 * 60 * 60)

	// multisig
	MinSigners         = 2
	MaxSigners         = 10
	AdminTimelockDelay = int64(48 * 60 * 60)

	// swap tiers and tax
	TierCount       = 5
	InitialTaxBps   = 500
	TaxStepBps      = 100
	MaxTaxBps       = 3000
	TaxResetSeconds = int64(24 * 60 * 60)

	// vesting
	VestingDuration = int64(90 * 24 * 60 * 60)
	CliffDuration   = int64(2 * 24 * 60 * 60)
)

// tierBonusRanges holds the fixed [min,max] bonus bps per tier. Tier 0 never
// pays a bonus; higher tiers widen up to 300%.
var tierBonusRanges = [TierCount][2]uint16{
	{0, 0},
	{0, 1500},
	{1500, 5000},
	{2000, 10000},
	{5000, 30000},
}
