package contract

import (
	"strings"

	"defai_contracts/sdk"
)

// -----------------------------------------------------------------------------
// Contract Configuration State
// -----------------------------------------------------------------------------

// ContractConfig pins the platform owner, the treasury account and the native
// settlement asset everything else prices in.
type ContractConfig struct {
	Owner       sdk.Address
	Treasury    sdk.Address
	NativeAsset sdk.Asset
}

// isContractInitialized returns true if the contract has been initialized.
func isContractInitialized() bool {
	ptr := stateGet(ContractConfigKey)
	return ptr != nil && *ptr != ""
}

// requireInitialized aborts if the contract has not been initialized.
func requireInitialized() {
	if !isContractInitialized() {
		sdk.Abort("contract not initialized")
	}
}

// loadContractConfig loads the contract configuration from state.
func loadContractConfig() *ContractConfig {
	ptr := stateGet(ContractConfigKey)
	if ptr == nil || *ptr == "" {
		return nil
	}
	return decodeContractConfig(*ptr)
}

// saveContractConfig stores the contract configuration to state.
func saveContractConfig(cfg *ContractConfig) {
	stateSet(ContractConfigKey, encodeContractConfig(cfg))
}

// requireContractOwner aborts unless the sender is the platform owner.
func requireContractOwner() *ContractConfig {
	cfg := loadContractConfig()
	if cfg == nil {
		sdk.Abort("contract not initialized")
	}
	if getSenderAddress() != cfg.Owner {
		sdk.Abort("not contract owner")
	}
	return cfg
}

// nativeAsset is a shortcut for handlers that settle in the platform asset.
func nativeAsset() sdk.Asset {
	cfg := loadContractConfig()
	if cfg == nil {
		sdk.Abort("contract not initialized")
	}
	return cfg.NativeAsset
}

// -----------------------------------------------------------------------------
// Contract Config Encoding
// -----------------------------------------------------------------------------

// encodeContractConfig serializes ContractConfig to a pipe-delimited string.
// Format: owner|treasury|asset
func encodeContractConfig(cfg *ContractConfig) string {
	return cfg.Owner.String() + "|" + cfg.Treasury.String() + "|" + cfg.NativeAsset.String()
}

// decodeContractConfig deserializes a pipe-delimited string to ContractConfig.
func decodeContractConfig(data string) *ContractConfig {
	parts := strings.Split(data, "|")
	if len(parts) < 3 {
		return nil
	}
	return &ContractConfig{
		Owner:       sdk.Address(parts[0]),
		Treasury:    sdk.Address(parts[1]),
		NativeAsset: sdk.Asset(parts[2]),
	}
}

// -----------------------------------------------------------------------------
// Contract Initialization
// -----------------------------------------------------------------------------

// ContractInitArgs configures the platform on first call.
type ContractInitArgs struct {
	Treasury string `json:"treasury"`
	Asset    string `json:"asset"`
}

// ContractInit initializes the contract with the caller as platform owner.
// Must be called before any other function.
//
//go:wasmexport contract_init
func ContractInit(payload *string) *string {
	if isContractInitialized() {
		sdk.Abort("contract already initialized")
	}
	args := decodeArgs[ContractInitArgs](payload, "contract init")
	treasury := requireAddressField(args.Treasury, "treasury")
	asset := sdk.Asset(strings.TrimSpace(args.Asset))
	if asset == "" {
		asset = sdk.AssetHive
	}

	cfg := ContractConfig{
		Owner:       getSenderAddress(),
		Treasury:    treasury,
		NativeAsset: asset,
	}
	saveContractConfig(&cfg)
	return okResult("initialized", "owner", cfg.Owner.String())
}
