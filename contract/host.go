package contract

import (
	"defai_contracts/sdk"
)

// HostInterface wraps the host side effects (logging and token movement) so
// tests can record them instead of trapping on missing wasm imports.
type HostInterface interface {
	Log(msg string)
	Draw(amount int64, asset sdk.Asset)
	Transfer(to sdk.Address, amount int64, asset sdk.Asset)
	Balance(addr sdk.Address, asset sdk.Asset) int64
}

// RealHost forwards to the actual host sdk.
type RealHost struct{}

func (r *RealHost) Log(msg string) {
	sdk.Log(msg)
}

func (r *RealHost) Draw(amount int64, asset sdk.Asset) {
	sdk.HiveDraw(amount, asset)
}

func (r *RealHost) Transfer(to sdk.Address, amount int64, asset sdk.Asset) {
	sdk.HiveTransfer(to, amount, asset)
}

func (r *RealHost) Balance(addr sdk.Address, asset sdk.Asset) int64 {
	return sdk.GetBalance(addr, asset)
}

var hostInterface HostInterface

func InitHost(mock bool) {
	if mock {
		hostInterface = NewMockHost()
	} else {
		hostInterface = &RealHost{}
	}
}

func getHost() HostInterface {
	if hostInterface == nil {
		hostInterface = &RealHost{}
	}
	return hostInterface
}

// MockTransfer records one outbound transfer for assertions.
type MockTransfer struct {
	To     string
	Amount int64
	Asset  string
}

// MockDraw records one inbound draw for assertions.
type MockDraw struct {
	Amount int64
	Asset  string
}

// MockHost records side effects and serves configured ledger balances.
type MockHost struct {
	Logs      []string
	Draws     []MockDraw
	Transfers []MockTransfer
	Balances  map[string]int64
}

func NewMockHost() *MockHost {
	return &MockHost{Balances: map[string]int64{}}
}

func (m *MockHost) Log(msg string) {
	m.Logs = append(m.Logs, msg)
}

func (m *MockHost) Draw(amount int64, asset sdk.Asset) {
	m.Draws = append(m.Draws, MockDraw{Amount: amount, Asset: asset.String()})
}

func (m *MockHost) Transfer(to sdk.Address, amount int64, asset sdk.Asset) {
	m.Transfers = append(m.Transfers, MockTransfer{To: to.String(), Amount: amount, Asset: asset.String()})
}

func (m *MockHost) Balance(addr sdk.Address, asset sdk.Asset) int64 {
	return m.Balances[addr.String()+"|"+asset.String()]
}

// SetBalance configures the ledger balance returned for addr+asset.
func (m *MockHost) SetBalance(addr string, asset sdk.Asset, amount int64) {
	m.Balances[addr+"|"+asset.String()] = amount
}

// LastTransfer returns the most recent transfer or nil.
func (m *MockHost) LastTransfer() *MockTransfer {
	if len(m.Transfers) == 0 {
		return nil
	}
	return &m.Transfers[len(m.Transfers)-1]
}
