package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"defai_contracts/sdk"
)

// setupFactory initializes the platform and the marketplace with a 2.5% fee.
func setupFactory(t *testing.T) (*MockState, *MockENV, *MockHost) {
	st, env, host := setupTest()
	initPlatform(t, env)
	callOK(t, FactoryInit, `{"fee_bps":250}`)
	return st, env, host
}

func registerApp(t *testing.T, env *MockENV, creator string, price int64, maxSupply uint64) string {
	asUser(env, creator)
	res := callOK(t, AppRegister, ToJSON(map[string]any{
		"price":        price,
		"max_supply":   maxSupply,
		"metadata_uri": "ipfs://app-meta",
	}, "payload"))
	return res.Data["id"]
}

func purchaseApp(t *testing.T, env *MockENV, host *MockHost, buyer string, appID string, price int64) {
	asUser(env, buyer)
	host.SetBalance(buyer, sdk.AssetHive, price*10)
	allowTransfer(env, price, "hive")
	callOK(t, AppPurchase, `{"app_id":`+appID+`}`)
}

func TestFactoryInitOnce(t *testing.T) {
	_, env, _ := setupFactory(t)
	asUser(env, ownerAddr)
	requireAbort(t, "factory already initialized", func() {
		FactoryInit(strptr(`{"fee_bps":100}`))
	})
}

func TestFactoryFeeBounds(t *testing.T) {
	_, env, _ := setupFactory(t)
	asUser(env, ownerAddr)
	requireAbort(t, "exceeds 10000 bps", func() {
		FactoryUpdateFee(strptr(`{"fee_bps":10001}`))
	})
	asUser(env, aliceAddr)
	requireAbort(t, "not factory authority", func() {
		FactoryUpdateFee(strptr(`{"fee_bps":100}`))
	})
}

func TestAppPurchaseSplitsPrice(t *testing.T) {
	_, env, host := setupFactory(t)
	appID := registerApp(t, env, aliceAddr, 1000, 0)
	purchaseApp(t, env, host, bobAddr, appID, 1000)

	assert.Equal(t, []MockDraw{{Amount: 1000, Asset: "hive"}}, host.Draws)
	cfg := loadFactoryConfig()
	assert.Equal(t, int64(25), cfg.TreasuryAccrued)
	assert.Equal(t, int64(975), getCreatorEarnings(aliceAddr))

	grant := loadAccessGrant(1, bobAddr)
	if assert.NotNil(t, grant) {
		assert.Equal(t, int64(1000), grant.PricePaid)
		assert.Equal(t, int64(25), grant.FeePaid)
	}
}

// Scenario: one-copy listing sells out after the first purchase.
func TestAppSupplyExhaustion(t *testing.T) {
	_, env, host := setupFactory(t)
	appID := registerApp(t, env, aliceAddr, 1000, 1)
	purchaseApp(t, env, host, bobAddr, appID, 1000)

	app := loadApp(1)
	assert.Equal(t, uint64(1), app.CurrentSupply)

	asUser(env, carolAddr)
	host.SetBalance(carolAddr, sdk.AssetHive, 10_000)
	allowTransfer(env, 1000, "hive")
	requireAbort(t, "max supply reached", func() {
		AppPurchase(strptr(`{"app_id":` + appID + `}`))
	})
}

func TestAppPurchaseRequiresIntent(t *testing.T) {
	_, env, host := setupFactory(t)
	appID := registerApp(t, env, aliceAddr, 1000, 0)

	asUser(env, bobAddr)
	host.SetBalance(bobAddr, sdk.AssetHive, 10_000)
	requireAbort(t, "transfer.allow", func() {
		AppPurchase(strptr(`{"app_id":` + appID + `}`))
	})

	allowTransfer(env, 999, "hive")
	requireAbort(t, "transfer.allow", func() {
		AppPurchase(strptr(`{"app_id":` + appID + `}`))
	})
}

func TestAppPurchaseNoDuplicateGrant(t *testing.T) {
	_, env, host := setupFactory(t)
	appID := registerApp(t, env, aliceAddr, 1000, 0)
	purchaseApp(t, env, host, bobAddr, appID, 1000)

	allowTransfer(env, 1000, "hive")
	requireAbort(t, "already purchased", func() {
		AppPurchase(strptr(`{"app_id":` + appID + `}`))
	})
}

func TestAppRefundReversesSplit(t *testing.T) {
	_, env, host := setupFactory(t)
	appID := registerApp(t, env, aliceAddr, 1000, 0)
	purchaseApp(t, env, host, bobAddr, appID, 1000)

	atTime(env, baseTime+3600)
	callOK(t, AppRefund, `{"app_id":`+appID+`}`)

	cfg := loadFactoryConfig()
	assert.Equal(t, int64(0), cfg.TreasuryAccrued)
	assert.Equal(t, int64(0), getCreatorEarnings(aliceAddr))
	assert.Nil(t, loadAccessGrant(1, bobAddr))
	assert.Equal(t, uint64(0), loadApp(1).CurrentSupply)

	last := host.LastTransfer()
	if assert.NotNil(t, last) {
		assert.Equal(t, bobAddr, last.To)
		assert.Equal(t, int64(1000), last.Amount)
	}
}

func TestAppRefundWindowExpires(t *testing.T) {
	_, env, host := setupFactory(t)
	appID := registerApp(t, env, aliceAddr, 1000, 0)
	purchaseApp(t, env, host, bobAddr, appID, 1000)

	atTime(env, baseTime+RefundWindowSeconds+1)
	requireAbort(t, "refund window expired", func() {
		AppRefund(strptr(`{"app_id":` + appID + `}`))
	})
}

func TestAppRefundLiquidityFailure(t *testing.T) {
	_, env, host := setupFactory(t)
	appID := registerApp(t, env, aliceAddr, 1000, 0)
	purchaseApp(t, env, host, bobAddr, appID, 1000)

	// the creator drained their earnings, the refund is now a liquidity failure
	asUser(env, aliceAddr)
	callOK(t, FactoryWithdrawEarnings, `{}`)

	asUser(env, bobAddr)
	atTime(env, baseTime+60)
	requireAbort(t, "insufficient creator funds", func() {
		AppRefund(strptr(`{"app_id":` + appID + `}`))
	})
}

func TestReviewLifecycle(t *testing.T) {
	_, env, host := setupFactory(t)
	appID := registerApp(t, env, aliceAddr, 1000, 0)

	asUser(env, carolAddr)
	requireAbort(t, "requires an access grant", func() {
		ReviewSubmit(strptr(`{"app_id":` + appID + `,"rating":5}`))
	})

	purchaseApp(t, env, host, bobAddr, appID, 1000)
	requireAbort(t, "rating out of range", func() {
		ReviewSubmit(strptr(`{"app_id":` + appID + `,"rating":6}`))
	})
	callOK(t, ReviewSubmit, `{"app_id":`+appID+`,"rating":4,"comment_ref":"great app"}`)
	requireAbort(t, "review already exists", func() {
		ReviewSubmit(strptr(`{"app_id":` + appID + `,"rating":2}`))
	})

	callOK(t, ReviewUpdate, `{"app_id":`+appID+`,"rating":2,"comment_ref":"broke after update"}`)
	review := loadReview(1, bobAddr)
	if assert.NotNil(t, review) {
		assert.Equal(t, uint8(2), review.Rating)
	}

	asUser(env, carolAddr)
	requireAbort(t, "review not found", func() {
		ReviewUpdate(strptr(`{"app_id":` + appID + `,"rating":1}`))
	})
}

func TestAuthorityHandover(t *testing.T) {
	_, env, _ := setupFactory(t)

	asUser(env, bobAddr)
	requireAbort(t, "not factory authority", func() {
		AuthorityPropose(strptr(`{"new_authority":"` + bobAddr + `"}`))
	})

	asUser(env, ownerAddr)
	callOK(t, AuthorityPropose, `{"new_authority":"`+bobAddr+`"}`)

	asUser(env, carolAddr)
	requireAbort(t, "no pending authority transfer", func() {
		AuthorityAccept(strptr(`{}`))
	})

	asUser(env, bobAddr)
	callOK(t, AuthorityAccept, `{}`)
	assert.Equal(t, sdk.Address(bobAddr), loadFactoryConfig().Authority)
}

func TestAuthorityCancel(t *testing.T) {
	_, env, _ := setupFactory(t)
	asUser(env, ownerAddr)
	callOK(t, AuthorityPropose, `{"new_authority":"`+bobAddr+`"}`)
	callOK(t, AuthorityCancel, `{}`)

	asUser(env, bobAddr)
	requireAbort(t, "no pending authority transfer", func() {
		AuthorityAccept(strptr(`{}`))
	})
}

func TestTreasuryWithdraw(t *testing.T) {
	_, env, host := setupFactory(t)
	appID := registerApp(t, env, aliceAddr, 1000, 0)
	purchaseApp(t, env, host, bobAddr, appID, 1000)

	asUser(env, ownerAddr)
	callOK(t, FactoryWithdrawTreasury, `{}`)
	last := host.LastTransfer()
	if assert.NotNil(t, last) {
		assert.Equal(t, treasuryAddr, last.To)
		assert.Equal(t, int64(25), last.Amount)
	}
	assert.Equal(t, int64(0), loadFactoryConfig().TreasuryAccrued)
}
