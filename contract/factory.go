package contract

import (
	"strconv"
	"strings"

	"defai_contracts/sdk"
)

// -----------------------------------------------------------------------------
// Marketplace entry points
// -----------------------------------------------------------------------------

// FactoryInitArgs sets the platform fee at creation.
type FactoryInitArgs struct {
	FeeBps uint16 `json:"fee_bps"`
}

// FactoryInit creates the marketplace config with the caller as authority.
//
//go:wasmexport factory_init
func FactoryInit(payload *string) *string {
	requireInitialized()
	if loadFactoryConfig() != nil {
		sdk.Abort("factory already initialized")
	}
	args := decodeArgs[FactoryInitArgs](payload, "factory init")
	requireBps(args.FeeBps, "fee")

	cfg := FactoryConfig{
		Authority: getSenderAddress(),
		FeeBps:    args.FeeBps,
	}
	saveFactoryConfig(&cfg)
	emitFactoryInit(cfg.Authority.String(), cfg.FeeBps)
	return okResult("factory initialized")
}

// FactoryUpdateFeeArgs carries the new platform cut.
type FactoryUpdateFeeArgs struct {
	FeeBps uint16 `json:"fee_bps"`
}

// FactoryUpdateFee lets the authority adjust the platform cut within bounds.
//
//go:wasmexport factory_update_fee
func FactoryUpdateFee(payload *string) *string {
	cfg := requireFactory()
	if getSenderAddress() != cfg.Authority {
		sdk.Abort("not factory authority")
	}
	args := decodeArgs[FactoryUpdateFeeArgs](payload, "factory fee")
	requireBps(args.FeeBps, "fee")
	cfg.FeeBps = args.FeeBps
	saveFactoryConfig(cfg)
	emitAppUpdated(0, "fee")
	return okResult("fee updated")
}

// AppRegisterArgs describes a new listing.
type AppRegisterArgs struct {
	Price       int64  `json:"price"`
	MaxSupply   uint64 `json:"max_supply"`
	MetadataURI string `json:"metadata_uri"`
}

// AppRegister creates a listing owned by the caller.
//
//go:wasmexport app_register
func AppRegister(payload *string) *string {
	cfg := requireFactory()
	args := decodeArgs[AppRegisterArgs](payload, "app register")
	requirePositive(args.Price, "price")
	if len(args.MetadataURI) > MaxMetadataURILen {
		sdk.Abort("metadata uri too long")
	}

	id := nextCount(AppsCount)
	app := AppListing{
		ID:          id,
		Creator:     getSenderAddress(),
		Price:       args.Price,
		MaxSupply:   args.MaxSupply,
		IsActive:    true,
		MetadataURI: args.MetadataURI,
		CreatedAt:   nowUnix(),
	}
	saveApp(&app)
	cfg.TotalApps++
	saveFactoryConfig(cfg)
	emitAppRegistered(id, app.Creator.String(), app.Price)
	return okResult("app registered", "id", UInt64ToString(id))
}

// AppUpdateArgs mutates a listing; nil fields stay untouched.
type AppUpdateArgs struct {
	AppID       uint64  `json:"app_id"`
	Price       *int64  `json:"price,omitempty"`
	MetadataURI *string `json:"metadata_uri,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// AppUpdate is the creator-only toggle/update path.
//
//go:wasmexport app_update
func AppUpdate(payload *string) *string {
	requireFactory()
	args := decodeArgs[AppUpdateArgs](payload, "app update")
	app := loadApp(args.AppID)
	if getSenderAddress() != app.Creator {
		sdk.Abort("not app creator")
	}
	field := ""
	if args.Price != nil {
		requirePositive(*args.Price, "price")
		app.Price = *args.Price
		field = "price"
	}
	if args.MetadataURI != nil {
		if len(*args.MetadataURI) > MaxMetadataURILen {
			sdk.Abort("metadata uri too long")
		}
		app.MetadataURI = *args.MetadataURI
		field = "metadata"
	}
	if args.IsActive != nil {
		app.IsActive = *args.IsActive
		field = "active"
	}
	if field == "" {
		sdk.Abort("nothing to update")
	}
	saveApp(app)
	emitAppUpdated(app.ID, field)
	return okResult("app updated")
}

// AppPurchaseArgs names the listing to buy.
type AppPurchaseArgs struct {
	AppID uint64 `json:"app_id"`
}

// AppPurchase draws the price from the buyer, splits it between treasury
// accrual and creator earnings, and issues the access grant.
//
//go:wasmexport app_purchase
func AppPurchase(payload *string) *string {
	cfg := requireFactory()
	args := decodeArgs[AppPurchaseArgs](payload, "app purchase")
	app := loadApp(args.AppID)
	buyer := getSenderAddress()

	if !app.IsActive {
		sdk.Abort("app is not active")
	}
	if app.MaxSupply > 0 && app.CurrentSupply >= app.MaxSupply {
		sdk.Abort("max supply reached")
	}
	if loadAccessGrant(app.ID, buyer) != nil {
		sdk.Abort("already purchased")
	}
	asset := nativeAsset()
	allow := getFirstTransferAllow(asset)
	if allow == nil || allow.Limit < app.Price {
		sdk.Abort("missing transfer.allow intent covering the price")
	}
	if getHost().Balance(buyer, asset) < app.Price {
		sdk.Abort("insufficient buyer balance")
	}

	fee64, creator64 := splitBps(uint64(app.Price), cfg.FeeBps)
	fee := int64(fee64)
	creatorAmount := int64(creator64)

	getHost().Draw(app.Price, asset)
	cfg.TreasuryAccrued = checkedAdd(cfg.TreasuryAccrued, fee)
	saveFactoryConfig(cfg)
	setCreatorEarnings(app.Creator, checkedAdd(getCreatorEarnings(app.Creator), creatorAmount))

	app.CurrentSupply++
	saveApp(app)
	saveAccessGrant(&AccessGrant{
		AppID:       app.ID,
		User:        buyer,
		PurchasedAt: nowUnix(),
		PricePaid:   app.Price,
		FeePaid:     fee,
	})
	emitAppPurchased(app.ID, buyer.String(), app.Price, fee)
	return okResult("purchased", "app", UInt64ToString(app.ID))
}

// AppRefundArgs names the listing to refund.
type AppRefundArgs struct {
	AppID uint64 `json:"app_id"`
}

// AppRefund reverses the recorded split within the refund window and burns
// the access grant. Counterparty shortfalls are liquidity errors, not
// authorization errors.
//
//go:wasmexport app_refund
func AppRefund(payload *string) *string {
	cfg := requireFactory()
	args := decodeArgs[AppRefundArgs](payload, "app refund")
	app := loadApp(args.AppID)
	buyer := getSenderAddress()

	grant := loadAccessGrant(app.ID, buyer)
	if grant == nil {
		sdk.Abort("no access grant to refund")
	}
	now := nowUnix()
	if now-grant.PurchasedAt > RefundWindowSeconds {
		sdk.Abort("refund window expired")
	}

	creatorAmount := checkedSub(grant.PricePaid, grant.FeePaid)
	earnings := getCreatorEarnings(app.Creator)
	if earnings < creatorAmount {
		sdk.Abort("insufficient creator funds for refund")
	}
	if cfg.TreasuryAccrued < grant.FeePaid {
		sdk.Abort("insufficient treasury funds for refund")
	}

	setCreatorEarnings(app.Creator, earnings-creatorAmount)
	cfg.TreasuryAccrued -= grant.FeePaid
	saveFactoryConfig(cfg)
	deleteAccessGrant(app.ID, buyer)
	if app.CurrentSupply > 0 {
		app.CurrentSupply--
	}
	saveApp(app)
	getHost().Transfer(buyer, grant.PricePaid, nativeAsset())
	emitAppRefunded(app.ID, buyer.String(), grant.PricePaid)
	return okResult("refunded", "amount", Int64ToString(grant.PricePaid))
}

// ReviewSubmitArgs carries the rating and optional comment ref.
type ReviewSubmitArgs struct {
	AppID      uint64 `json:"app_id"`
	Rating     uint8  `json:"rating"`
	CommentRef string `json:"comment_ref,omitempty"`
}

// ReviewSubmit creates the one review a purchaser gets per app.
//
//go:wasmexport review_submit
func ReviewSubmit(payload *string) *string {
	requireFactory()
	args := decodeArgs[ReviewSubmitArgs](payload, "review submit")
	app := loadApp(args.AppID)
	reviewer := getSenderAddress()

	if loadAccessGrant(app.ID, reviewer) == nil {
		sdk.Abort("review requires an access grant")
	}
	if loadReview(app.ID, reviewer) != nil {
		sdk.Abort("review already exists")
	}
	validateReviewFields(args.Rating, args.CommentRef)

	now := nowUnix()
	saveReview(&Review{
		AppID:      app.ID,
		Reviewer:   reviewer,
		Rating:     args.Rating,
		CommentRef: args.CommentRef,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	emitReviewSubmitted(app.ID, reviewer.String(), args.Rating)
	return okResult("review submitted")
}

// ReviewUpdateArgs mutates an existing review in place.
type ReviewUpdateArgs struct {
	AppID      uint64 `json:"app_id"`
	Rating     uint8  `json:"rating"`
	CommentRef string `json:"comment_ref,omitempty"`
}

// ReviewUpdate lets the original reviewer adjust rating/comment.
//
//go:wasmexport review_update
func ReviewUpdate(payload *string) *string {
	requireFactory()
	args := decodeArgs[ReviewUpdateArgs](payload, "review update")
	reviewer := getSenderAddress()
	review := loadReview(args.AppID, reviewer)
	if review == nil {
		sdk.Abort("review not found")
	}
	validateReviewFields(args.Rating, args.CommentRef)

	review.Rating = args.Rating
	review.CommentRef = args.CommentRef
	review.UpdatedAt = nowUnix()
	saveReview(review)
	emitReviewUpdated(args.AppID, reviewer.String(), args.Rating)
	return okResult("review updated")
}

func validateReviewFields(rating uint8, commentRef string) {
	if rating < MinRating || rating > MaxRating {
		sdk.Abort("rating out of range")
	}
	if len(commentRef) > MaxCommentRefLen {
		sdk.Abort("comment ref too long")
	}
}

// AuthorityArgs names the proposed next authority.
type AuthorityArgs struct {
	NewAuthority string `json:"new_authority"`
}

// AuthorityPropose starts the two-phase handover.
//
//go:wasmexport authority_propose
func AuthorityPropose(payload *string) *string {
	cfg := requireFactory()
	if getSenderAddress() != cfg.Authority {
		sdk.Abort("not factory authority")
	}
	args := decodeArgs[AuthorityArgs](payload, "authority propose")
	next := requireAddressField(args.NewAuthority, "authority")
	if next == cfg.Authority {
		sdk.Abort("already the authority")
	}
	cfg.PendingAuthority = next.String()
	saveFactoryConfig(cfg)
	emitAuthorityChange("proposed", next.String())
	return okResult("authority proposed")
}

// AuthorityAccept completes the handover; only the proposed address may call it.
//
//go:wasmexport authority_accept
func AuthorityAccept(payload *string) *string {
	cfg := requireFactory()
	sender := getSenderAddress()
	if cfg.PendingAuthority == "" || sender.String() != cfg.PendingAuthority {
		sdk.Abort("no pending authority transfer for sender")
	}
	cfg.Authority = sender
	cfg.PendingAuthority = ""
	saveFactoryConfig(cfg)
	emitAuthorityChange("accepted", sender.String())
	return okResult("authority accepted")
}

// AuthorityCancel aborts a pending handover.
//
//go:wasmexport authority_cancel
func AuthorityCancel(payload *string) *string {
	cfg := requireFactory()
	if getSenderAddress() != cfg.Authority {
		sdk.Abort("not factory authority")
	}
	if cfg.PendingAuthority == "" {
		sdk.Abort("no pending authority transfer")
	}
	cancelled := cfg.PendingAuthority
	cfg.PendingAuthority = ""
	saveFactoryConfig(cfg)
	emitAuthorityChange("cancelled", cancelled)
	return okResult("authority transfer cancelled")
}

// FactoryWithdrawTreasury pays the accrued platform fees out to the treasury account.
//
//go:wasmexport factory_withdraw_treasury
func FactoryWithdrawTreasury(payload *string) *string {
	cfg := requireFactory()
	if getSenderAddress() != cfg.Authority {
		sdk.Abort("not factory authority")
	}
	if cfg.TreasuryAccrued <= 0 {
		sdk.Abort("nothing to withdraw")
	}
	amount := cfg.TreasuryAccrued
	cfg.TreasuryAccrued = 0
	saveFactoryConfig(cfg)
	treasury := loadContractConfig().Treasury
	getHost().Transfer(treasury, amount, nativeAsset())
	emitEarningsWithdrawn(treasury.String(), amount)
	return okResult("treasury withdrawn", "amount", Int64ToString(amount))
}

// FactoryWithdrawEarnings pays a creator their accumulated sales revenue.
//
//go:wasmexport factory_withdraw_earnings
func FactoryWithdrawEarnings(payload *string) *string {
	requireFactory()
	creator := getSenderAddress()
	amount := getCreatorEarnings(creator)
	if amount <= 0 {
		sdk.Abort("nothing to withdraw")
	}
	setCreatorEarnings(creator, 0)
	getHost().Transfer(creator, amount, nativeAsset())
	emitEarningsWithdrawn(creator.String(), amount)
	return okResult("earnings withdrawn", "amount", Int64ToString(amount))
}

// GetApp returns a listing as JSON for read-only callers.
//
//go:wasmexport app_get
func GetApp(payload *string) *string {
	raw := unwrapPayload(payload, "app id missing")
	id, err := parseUint(raw)
	if err != nil {
		sdk.Abort("invalid app id")
	}
	app := loadApp(id)
	return strptr(ToJSON(app, "app listing"))
}

func parseUint(s string) (uint64, error) {
	return strconv.ParseUint(strings.TrimSpace(s), 10, 64)
}
