package contract

import (
	"strconv"

	"defai_contracts/sdk"
)

// -----------------------------------------------------------------------------
// Marketplace entities and persistence
// -----------------------------------------------------------------------------

// FactoryConfig carries the marketplace-wide settings plus the running
// counters scoped to it.
type FactoryConfig struct {
	Authority        sdk.Address `json:"authority"`
	PendingAuthority string      `json:"pending_authority,omitempty"`
	FeeBps           uint16      `json:"fee_bps"`
	TotalApps        uint64      `json:"total_apps"`
	TreasuryAccrued  int64       `json:"treasury_accrued"`
}

// AppListing is one purchasable application.
type AppListing struct {
	ID            uint64      `json:"id"`
	Creator       sdk.Address `json:"creator"`
	Price         int64       `json:"price"`
	MaxSupply     uint64      `json:"max_supply"` // 0 = unlimited
	CurrentSupply uint64      `json:"current_supply"`
	IsActive      bool        `json:"is_active"`
	MetadataURI   string      `json:"metadata_uri"`
	CreatedAt     int64       `json:"created_at"`
}

// AccessGrant proves a user purchased an app. The paid split is stored so a
// refund reverses exactly what moved, even if the fee changed since.
type AccessGrant struct {
	AppID       uint64      `json:"app_id"`
	User        sdk.Address `json:"user"`
	PurchasedAt int64       `json:"purchased_at"`
	PricePaid   int64       `json:"price_paid"`
	FeePaid     int64       `json:"fee_paid"`
}

// Review is a purchaser's rating, one per (user, app), mutable in place.
type Review struct {
	AppID      uint64      `json:"app_id"`
	Reviewer   sdk.Address `json:"reviewer"`
	Rating     uint8       `json:"rating"`
	CommentRef string      `json:"comment_ref,omitempty"`
	CreatedAt  int64       `json:"created_at"`
	UpdatedAt  int64       `json:"updated_at"`
}

func loadFactoryConfig() *FactoryConfig {
	ptr := stateGet(FactoryConfigKey)
	if ptr == nil || *ptr == "" {
		return nil
	}
	return FromJSON[FactoryConfig](*ptr, "factory config")
}

func saveFactoryConfig(cfg *FactoryConfig) {
	stateSet(FactoryConfigKey, ToJSON(cfg, "factory config"))
}

// requireFactory aborts when the marketplace was never initialized.
func requireFactory() *FactoryConfig {
	cfg := loadFactoryConfig()
	if cfg == nil {
		sdk.Abort("factory not initialized")
	}
	return cfg
}

func saveApp(app *AppListing) {
	stateSet(appKey(app.ID), ToJSON(app, "app listing"))
}

func loadApp(id uint64) *AppListing {
	ptr := stateGet(appKey(id))
	if ptr == nil || *ptr == "" {
		sdk.Abort("app not found")
	}
	return FromJSON[AppListing](*ptr, "app listing")
}

func saveAccessGrant(grant *AccessGrant) {
	stateSet(accessGrantKey(grant.AppID, grant.User), ToJSON(grant, "access grant"))
}

func loadAccessGrant(appID uint64, user sdk.Address) *AccessGrant {
	ptr := stateGet(accessGrantKey(appID, user))
	if ptr == nil || *ptr == "" {
		return nil
	}
	return FromJSON[AccessGrant](*ptr, "access grant")
}

func deleteAccessGrant(appID uint64, user sdk.Address) {
	stateDelete(accessGrantKey(appID, user))
}

func saveReview(review *Review) {
	stateSet(reviewKey(review.AppID, review.Reviewer), ToJSON(review, "review"))
}

func loadReview(appID uint64, reviewer sdk.Address) *Review {
	ptr := stateGet(reviewKey(appID, reviewer))
	if ptr == nil || *ptr == "" {
		return nil
	}
	return FromJSON[Review](*ptr, "review")
}

// creator earnings ledger, decimal strings like counters

func getCreatorEarnings(creator sdk.Address) int64 {
	ptr := stateGet(creatorEarningsKey(creator))
	if ptr == nil || *ptr == "" {
		return 0
	}
	n, _ := strconv.ParseInt(*ptr, 10, 64)
	return n
}

func setCreatorEarnings(creator sdk.Address, amount int64) {
	if amount == 0 {
		stateDelete(creatorEarningsKey(creator))
		return
	}
	stateSet(creatorEarningsKey(creator), strconv.FormatInt(amount, 10))
}
