package contract

import (
	"strconv"

	"defai_contracts/sdk"
)

// ENVInterface abstracts the execution environment so tests can vary sender,
// timestamp and intents without a wasm host.
type ENVInterface interface {
	GetEnv() sdk.Env
	GetEnvKey(key string) *string
}

// RealENV implements ENVInterface against the actual host sdk.
type RealENV struct{}

func (r *RealENV) GetEnv() sdk.Env {
	return sdk.GetEnv()
}

// GetEnvKey returns a single env value by key.
func (r *RealENV) GetEnvKey(key string) *string {
	e := sdk.GetEnv()
	switch key {
	case "block.timestamp":
		return &e.Timestamp
	case "tx.id":
		return &e.TxId
	default:
		return nil
	}
}

var envInterface ENVInterface

func InitENV(mock bool) {
	if mock {
		envInterface = NewMockENV()
	} else {
		envInterface = &RealENV{}
	}
}

func getEnvInterface() ENVInterface {
	if envInterface == nil {
		envInterface = &RealENV{}
	}
	return envInterface
}

// MockENV is a settable environment for tests. Bump the tx id (NextTx) after
// changing sender or timestamp so the per-tx env cache refreshes.
type MockENV struct {
	SenderAddress string
	CallerAddress string
	Timestamp     string
	TxCounter     uint64
	IntentsList   []sdk.Intent
}

func NewMockENV() *MockENV {
	return &MockENV{
		SenderAddress: "hive:test_sender",
		CallerAddress: "hive:test_sender",
		Timestamp:     "2025-01-01T00:00:00",
		TxCounter:     1,
	}
}

func (m *MockENV) GetEnvKey(key string) *string {
	switch key {
	case "block.timestamp":
		ts := m.Timestamp
		return &ts
	case "tx.id":
		tx := m.txId()
		return &tx
	default:
		return nil
	}
}

func (m *MockENV) GetEnv() sdk.Env {
	return sdk.Env{
		ContractId:  "contract:defai",
		TxId:        m.txId(),
		BlockId:     "mock_block",
		BlockHeight: m.TxCounter,
		Timestamp:   m.Timestamp,
		Sender:      sdk.Sender{Address: sdk.Address(m.SenderAddress)},
		Caller:      sdk.Caller{Address: sdk.Address(m.CallerAddress)},
		Payer:       m.CallerAddress,
		Intents:     m.IntentsList,
	}
}

func (m *MockENV) txId() string {
	return "mock_tx_" + strconv.FormatUint(m.TxCounter, 10)
}

// NextTx starts a fresh mock transaction so the env cache drops.
func (m *MockENV) NextTx() {
	m.TxCounter++
}

// -----------------------------------------------------------------------------
// Per-transaction env cache
// -----------------------------------------------------------------------------

// cachedEnv/cachedTransfer are scoped to the currently executing transaction.
// Whenever the tx.id changes we refresh the env and drop memoized data so
// reads stay consistent.
var (
	cachedEnv       sdk.Env
	cachedEnvLoaded bool
	cachedTransfer  *TransferAllow
)

// currentEnv caches the env per tx.id so we dont poke the host api every few lines.
func currentEnv() *sdk.Env {
	var currentTx string
	if txPtr := getEnvInterface().GetEnvKey("tx.id"); txPtr != nil {
		currentTx = *txPtr
	}
	if !cachedEnvLoaded || cachedEnv.TxId != currentTx {
		cachedEnv = getEnvInterface().GetEnv()
		cachedEnvLoaded = true
		cachedTransfer = nil
	}
	return &cachedEnv
}

// currentIntents is just a tiny helper to access intents already pulled above.
func currentIntents() []sdk.Intent {
	return currentEnv().Intents
}

// TransferAllow represents arguments extracted from a transfer.allow intent.
// It specifies the allowed transfer amount (`Limit`) and the asset (`Token`).
type TransferAllow struct {
	Limit int64
	Token sdk.Asset
}

// getFirstTransferAllow scans the intents and returns the first transfer.allow
// for the wanted asset. The env refresh comes first: a memoized allowance from
// an earlier transaction must never authorize the current one.
func getFirstTransferAllow(asset sdk.Asset) *TransferAllow {
	currentEnv()
	if cachedTransfer != nil && cachedTransfer.Token == asset {
		return cachedTransfer
	}
	for _, intent := range currentIntents() {
		if intent.Type != "transfer.allow" {
			continue
		}
		if sdk.Asset(intent.Args["token"]) != asset {
			continue
		}
		limit, err := strconv.ParseInt(intent.Args["limit"], 10, 64)
		if err != nil {
			sdk.Abort("invalid intent limit")
		}
		ta := &TransferAllow{
			Limit: limit,
			Token: asset,
		}
		cachedTransfer = ta
		return ta
	}
	return nil
}

// getSenderAddress returns the address of the current transaction sender.
func getSenderAddress() sdk.Address {
	return currentEnv().Sender.Address
}
