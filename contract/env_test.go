package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowanceScopedToTransaction(t *testing.T) {
	_, env, _ := setupSwap(t)
	asUser(env, bobAddr)
	allowTransfer(env, 5000, "hive")
	callOK(t, SwapFundEscrow, `{"amount":4000}`)

	// the next transaction carries no intent; the earlier allowance is gone
	env.IntentsList = nil
	env.NextTx()
	requireAbort(t, "missing transfer.allow intent", func() {
		SwapFundEscrow(strptr(`{"amount":4000}`))
	})
	assert.Equal(t, int64(4000), getSwapEscrow())

	// and a fresh larger allowance in a new transaction is honored, not
	// shadowed by the memoized 5000 limit
	allowTransfer(env, 10000, "hive")
	callOK(t, SwapFundEscrow, `{"amount":10000}`)
	assert.Equal(t, int64(14000), getSwapEscrow())
}
