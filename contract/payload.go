package contract

import (
	"strings"

	"defai_contracts/sdk"
)

// unwrapPayload trims quotes and whitespace, aborting if the payload is empty.
func unwrapPayload(payload *string, errMsg string) string {
	if payload == nil {
		sdk.Abort(errMsg)
	}
	raw := strings.TrimSpace(*payload)
	if raw == "" {
		sdk.Abort(errMsg)
	}
	if len(raw) >= 2 {
		first := raw[0]
		last := raw[len(raw)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			raw = raw[1 : len(raw)-1]
		}
	}
	return raw
}

// decodeArgs unmarshals the payload into the given args struct, aborting on
// missing or malformed input.
func decodeArgs[T any](payload *string, objectType string) *T {
	raw := unwrapPayload(payload, objectType+" payload missing")
	return FromJSON[T](raw, objectType)
}

// requireAddressField validates an address argument and aborts with a field-named error.
func requireAddressField(val string, field string) sdk.Address {
	addr := sdk.Address(strings.TrimSpace(val))
	if !addr.IsValid() {
		sdk.Abort("invalid " + field + " address")
	}
	return addr
}

// requirePositive aborts unless the amount is strictly positive.
func requirePositive(amount int64, field string) {
	if amount <= 0 {
		sdk.Abort(field + " must be positive")
	}
}

// requireBps bounds a basis-point argument at configuration time.
func requireBps(bps uint16, field string) {
	if bps > BpsDenominator {
		sdk.Abort(field + " exceeds 10000 bps")
	}
}

// requireTier aborts on tier indexes outside the five configured tiers.
func requireTier(tier uint8) {
	if tier >= TierCount {
		sdk.Abort("invalid tier")
	}
}
