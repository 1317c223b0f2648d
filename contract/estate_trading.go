package contract

import (
	"defai_contracts/sdk"
)

// -----------------------------------------------------------------------------
// Joint human/AI trading sub-ledger
// -----------------------------------------------------------------------------

// TradingEnableArgs configures the joint trading split and the agent key.
type TradingEnableArgs struct {
	EstateID       uint64 `json:"estate_id"`
	HumanSharePct  uint8  `json:"human_share_pct"`
	Agent          string `json:"agent"`
	EmergencyDelay int64  `json:"emergency_delay"`
}

// TradingEnable turns on the trading sub-ledger for an active estate.
//
//go:wasmexport trading_enable
func TradingEnable(payload *string) *string {
	args := decodeArgs[TradingEnableArgs](payload, "trading enable")
	e := requireEstateOwner(args.EstateID)
	requireUnlocked(e)
	requireOpen(e)
	if e.Status == EstateClaimable {
		sdk.Abort("estate already claimable")
	}
	if e.Trading != nil && e.Trading.Enabled {
		sdk.Abort("trading already enabled")
	}
	if args.HumanSharePct < MinHumanSharePct || args.HumanSharePct > MaxHumanSharePct {
		sdk.Abort("human share out of range")
	}
	if args.EmergencyDelay < MinEmergencyDelay || args.EmergencyDelay > MaxEmergencyDelay {
		sdk.Abort("emergency delay out of range")
	}
	agent := requireAddressField(args.Agent, "agent")
	if agent == e.Owner {
		sdk.Abort("agent must differ from owner")
	}

	e.Trading = &TradingState{
		Enabled:        true,
		HumanSharePct:  args.HumanSharePct,
		Agent:          agent,
		EmergencyDelay: args.EmergencyDelay,
		EnabledAt:      nowUnix(),
	}
	saveEstate(e)
	emitTradingEnabled(e.ID, args.HumanSharePct, agent.String())
	return okResult("trading enabled")
}

// requireTrading loads the estate and its enabled, unpaused trading state.
func requireTrading(estateID uint64) (*Estate, *TradingState) {
	e := loadEstate(estateID)
	requireUnlocked(e)
	requireOpen(e)
	if e.Trading == nil || !e.Trading.Enabled {
		sdk.Abort("trading not enabled")
	}
	return e, e.Trading
}

// TradingContributeArgs funds the trading pool.
type TradingContributeArgs struct {
	EstateID uint64 `json:"estate_id"`
	Amount   int64  `json:"amount"`
}

// TradingContribute draws funds into the pool. The owner's deposits count as
// the human side, the agent's as the AI side. Contributions raise the
// high-water mark so deposits never read as profit.
//
//go:wasmexport trading_contribute
func TradingContribute(payload *string) *string {
	args := decodeArgs[TradingContributeArgs](payload, "trading contribute")
	e, t := requireTrading(args.EstateID)
	if t.Paused {
		sdk.Abort("trading paused")
	}
	requirePositive(args.Amount, "amount")

	sender := getSenderAddress()
	human := false
	switch sender {
	case e.Owner:
		human = true
	case t.Agent:
	default:
		sdk.Abort("not a trading participant")
	}

	asset := nativeAsset()
	allow := getFirstTransferAllow(asset)
	if allow == nil || allow.Limit < args.Amount {
		sdk.Abort("missing transfer.allow intent covering the contribution")
	}
	getHost().Draw(args.Amount, asset)

	if human {
		t.HumanContrib = checkedAdd(t.HumanContrib, args.Amount)
	} else {
		t.AiContrib = checkedAdd(t.AiContrib, args.Amount)
	}
	t.CurrentValue = checkedAdd(t.CurrentValue, args.Amount)
	t.HighWaterMark = checkedAdd(t.HighWaterMark, args.Amount)
	saveEstate(e)
	emitTradingContribution(e.ID, sender.String(), args.Amount, human)
	return okResult("contributed")
}

// TradingUpdateValueArgs reports the pool's marked value.
type TradingUpdateValueArgs struct {
	EstateID uint64 `json:"estate_id"`
	Value    int64  `json:"value"`
}

// TradingUpdateValue marks the pool to its current value. Restricted to the
// designated agent key.
//
//go:wasmexport trading_update_value
func TradingUpdateValue(payload *string) *string {
	args := decodeArgs[TradingUpdateValueArgs](payload, "trading value")
	e, t := requireTrading(args.EstateID)
	if t.Paused {
		sdk.Abort("trading paused")
	}
	if getSenderAddress() != t.Agent {
		sdk.Abort("not trading agent")
	}
	if args.Value < 0 {
		sdk.Abort("value must not be negative")
	}
	profit := args.Value - checkedAdd(t.HumanContrib, t.AiContrib)
	t.CurrentValue = args.Value
	saveEstate(e)
	emitTradingValue(e.ID, args.Value, profit)
	return okResult("value updated")
}

// TradingDistribute pays out the gain above the high-water mark, split by the
// configured shares, then advances the mark to the pre-distribution value.
//
//go:wasmexport trading_distribute
func TradingDistribute(payload *string) *string {
	args := decodeArgs[EstateIDArgs](payload, "trading distribute")
	e, t := requireTrading(args.EstateID)
	if t.Paused {
		sdk.Abort("trading paused")
	}
	sender := getSenderAddress()
	if sender != e.Owner && sender != t.Agent {
		sdk.Abort("not a trading participant")
	}
	if t.CurrentValue <= t.HighWaterMark {
		sdk.Abort("no profit above high-water mark")
	}

	gain := t.CurrentValue - t.HighWaterMark
	humanCut := int64(shareOf(uint64(gain), t.HumanSharePct))
	aiCut := gain - humanCut

	t.HighWaterMark = t.CurrentValue
	t.CurrentValue -= gain
	saveEstate(e)

	asset := nativeAsset()
	if humanCut > 0 {
		getHost().Transfer(e.Owner, humanCut, asset)
	}
	if aiCut > 0 {
		getHost().Transfer(t.Agent, aiCut, asset)
	}
	emitTradingDistribution(e.ID, humanCut, aiCut, t.HighWaterMark)
	return okResult("distributed", "human", Int64ToString(humanCut), "ai", Int64ToString(aiCut))
}

// TradingPause suspends contributions, value updates and distributions.
//
//go:wasmexport trading_pause
func TradingPause(payload *string) *string {
	args := decodeArgs[EstateIDArgs](payload, "trading pause")
	e, t := requireTrading(args.EstateID)
	if getSenderAddress() != e.Owner {
		sdk.Abort("not estate owner")
	}
	if t.Paused {
		sdk.Abort("trading already paused")
	}
	t.Paused = true
	saveEstate(e)
	emitTradingPaused(e.ID, true)
	return okResult("trading paused")
}

// TradingResume lifts a pause.
//
//go:wasmexport trading_resume
func TradingResume(payload *string) *string {
	args := decodeArgs[EstateIDArgs](payload, "trading resume")
	e, t := requireTrading(args.EstateID)
	if getSenderAddress() != e.Owner {
		sdk.Abort("not estate owner")
	}
	if !t.Paused {
		sdk.Abort("trading not paused")
	}
	t.Paused = false
	saveEstate(e)
	emitTradingPaused(e.ID, false)
	return okResult("trading resumed")
}

// EmergencyWithdrawInit opens the timelocked exit. Only the owner may start
// it; execution waits out the delay configured at enable time.
//
//go:wasmexport emergency_withdraw_init
func EmergencyWithdrawInit(payload *string) *string {
	args := decodeArgs[EstateIDArgs](payload, "withdraw init")
	e, t := requireTrading(args.EstateID)
	if getSenderAddress() != e.Owner {
		sdk.Abort("not estate owner")
	}
	if loadWithdrawRequest(e.ID) != nil {
		sdk.Abort("withdrawal already pending")
	}
	now := nowUnix()
	saveWithdrawRequest(&WithdrawRequest{
		EstateID:     e.ID,
		RequestedAt:  now,
		ExecuteAfter: now + t.EmergencyDelay,
	})
	emitEmergencyWithdraw(e.ID, "init", 0)
	return okResult("withdrawal initiated")
}

// EmergencyWithdrawExecute pays the human contributor their proportional
// share of the current pool value and resets trading to disabled.
//
//go:wasmexport emergency_withdraw_execute
func EmergencyWithdrawExecute(payload *string) *string {
	args := decodeArgs[EstateIDArgs](payload, "withdraw execute")
	e, t := requireTrading(args.EstateID)
	if getSenderAddress() != e.Owner {
		sdk.Abort("not estate owner")
	}
	req := loadWithdrawRequest(e.ID)
	if req == nil {
		sdk.Abort("no pending withdrawal")
	}
	if nowUnix() < req.ExecuteAfter {
		sdk.Abort("withdrawal delay not elapsed")
	}
	totalContrib := checkedAdd(t.HumanContrib, t.AiContrib)
	if totalContrib <= 0 || t.CurrentValue <= 0 {
		sdk.Abort("nothing to withdraw")
	}
	amount := int64(mulDivU64(uint64(t.CurrentValue), uint64(t.HumanContrib), uint64(totalContrib)))

	e.Trading = nil
	saveEstate(e)
	deleteWithdrawRequest(e.ID)
	if amount > 0 {
		getHost().Transfer(e.Owner, amount, nativeAsset())
	}
	emitEmergencyWithdraw(e.ID, "exec", amount)
	return okResult("withdrawn", "amount", Int64ToString(amount))
}

// EmergencyWithdrawCancel drops a pending request without touching the pool.
//
//go:wasmexport emergency_withdraw_cancel
func EmergencyWithdrawCancel(payload *string) *string {
	args := decodeArgs[EstateIDArgs](payload, "withdraw cancel")
	e, _ := requireTrading(args.EstateID)
	if getSenderAddress() != e.Owner {
		sdk.Abort("not estate owner")
	}
	if loadWithdrawRequest(e.ID) == nil {
		sdk.Abort("no pending withdrawal")
	}
	deleteWithdrawRequest(e.ID)
	emitEmergencyWithdraw(e.ID, "cancel", 0)
	return okResult("withdrawal cancelled")
}
