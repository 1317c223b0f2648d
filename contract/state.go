package contract

import "defai_contracts/sdk"

// State is the kv surface every stored record goes through. The wasm build
// talks to the host, tests swap in the in-memory mock.
type State interface {
	Set(key, value string)
	Get(key string) *string
	Delete(key string)
}

// singleton state used everywhere
var state State

func InitState(localDebug bool) {
	if localDebug {
		state = NewMockState()
	} else {
		state = WasmState{}
	}
}

func getState() State {
	if state == nil {
		state = WasmState{}
	}
	return state
}

// WasmState routes kv access to the host sdk.
type WasmState struct{}

func (WasmState) Set(key, value string) {
	sdk.StateSetObject(key, value)
}

func (WasmState) Get(key string) *string {
	return sdk.StateGetObject(key)
}

func (WasmState) Delete(key string) {
	sdk.StateDeleteObject(key)
}

// stateSet stores a value under key.
func stateSet(key, value string) {
	getState().Set(key, value)
}

// stateGet returns nil when the key is missing.
func stateGet(key string) *string {
	return getState().Get(key)
}

// stateDelete removes the key entirely, handy for cleanup.
func stateDelete(key string) {
	getState().Delete(key)
}

// stateSetIfChanged avoids unnecessary writes so we dont thrash storage fees.
func stateSetIfChanged(key, value string) {
	if existing := stateGet(key); existing != nil && *existing == value {
		return
	}
	stateSet(key, value)
}
