package contract

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"defai_contracts/sdk"
)

// Run with -tags test so sdk aborts panic instead of trapping.

const (
	ownerAddr    = "hive:platform"
	treasuryAddr = "hive:treasury"
	aliceAddr    = "hive:alice"
	bobAddr      = "hive:bob"
	carolAddr    = "hive:carol"
	daveAddr     = "hive:dave"
	agentAddr    = "hive:aibot"

	baseTime = int64(1_750_000_000)
)

// setupTest resets state, env and host mocks and returns them for assertions.
func setupTest() (*MockState, *MockENV, *MockHost) {
	InitState(true)
	InitENV(true)
	InitHost(true)
	cachedEnvLoaded = false
	cachedTransfer = nil
	st := state.(*MockState)
	env := envInterface.(*MockENV)
	host := hostInterface.(*MockHost)
	env.Timestamp = strconv.FormatInt(baseTime, 10)
	return st, env, host
}

// asUser switches the calling identity for the next transaction.
func asUser(env *MockENV, addr string) {
	env.SenderAddress = addr
	env.CallerAddress = addr
	env.IntentsList = nil
	env.NextTx()
}

// atTime moves the block clock for the next transaction.
func atTime(env *MockENV, unix int64) {
	env.Timestamp = strconv.FormatInt(unix, 10)
	env.NextTx()
}

// allowTransfer attaches a transfer.allow intent for the next call.
func allowTransfer(env *MockENV, limit int64, token string) {
	env.IntentsList = []sdk.Intent{{
		Type: "transfer.allow",
		Args: map[string]string{"limit": strconv.FormatInt(limit, 10), "token": token},
	}}
	env.NextTx()
}

// requireAbort asserts that fn aborts with a message containing msg.
func requireAbort(t *testing.T, msg string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if assert.NotNil(t, r, "expected abort containing %q", msg) {
			assert.Contains(t, fmt.Sprint(r), msg)
		}
	}()
	fn()
}

// callOK runs an entry point and asserts the ok envelope.
func callOK(t *testing.T, fn func(*string) *string, payload string) *CallResult {
	t.Helper()
	res := ParseCallResult(*fn(strptr(payload)))
	assert.True(t, res.OK, "expected ok result, got: %s", res.Msg)
	return res
}

// initPlatform runs contract_init as the platform owner.
func initPlatform(t *testing.T, env *MockENV) {
	t.Helper()
	asUser(env, ownerAddr)
	callOK(t, ContractInit, `{"treasury":"`+treasuryAddr+`","asset":"hive"}`)
}
