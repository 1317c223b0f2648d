package contract

import (
	"bytes"
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	"defai_contracts/sdk"
)

// -----------------------------------------------------------------------------
// Merkle whitelist verifier
// -----------------------------------------------------------------------------
// Sorted-pair keccak folding so proofs are order independent. A single-leaf
// tree has root == leaf and an empty proof.

// keccak256 hashes the concatenation of the given byte slices.
func keccak256(parts ...[]byte) [32]byte {
	h := sha3.NewLegacyKeccak256()
	for _, p := range parts {
		h.Write(p)
	}
	var out [32]byte
	h.Sum(out[:0])
	return out
}

// whitelistLeaf hashes claimant identity plus the claimed amount (LE bytes).
func whitelistLeaf(claimant sdk.Address, amount uint64) [32]byte {
	var amt [8]byte
	packU64LEInline(amount, amt[:])
	return keccak256([]byte(claimant.String()), amt[:])
}

// verifyMerkleProof folds the proof with sorted-pair hashing and compares the root.
func verifyMerkleProof(leaf [32]byte, proof [][32]byte, root [32]byte) bool {
	acc := leaf
	for _, sibling := range proof {
		if bytes.Compare(acc[:], sibling[:]) <= 0 {
			acc = keccak256(acc[:], sibling[:])
		} else {
			acc = keccak256(sibling[:], acc[:])
		}
	}
	return acc == root
}

// decodeHash32 parses a 32-byte hex string, aborting on malformed input.
func decodeHash32(s string, field string) [32]byte {
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != 32 {
		sdk.Abort("invalid " + field)
	}
	var out [32]byte
	copy(out[:], raw)
	return out
}

// decodeProof parses a list of 32-byte hex nodes.
func decodeProof(nodes []string) [][32]byte {
	proof := make([][32]byte, 0, len(nodes))
	for _, n := range nodes {
		proof = append(proof, decodeHash32(n, "proof node"))
	}
	return proof
}

// encodeHash32 renders a node back to hex for storage and events.
func encodeHash32(h [32]byte) string {
	return hex.EncodeToString(h[:])
}
