package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// buildPair folds two nodes the same sorted-pair way the verifier does.
func buildPair(a, b [32]byte) [32]byte {
	if string(a[:]) <= string(b[:]) {
		return keccak256(a[:], b[:])
	}
	return keccak256(b[:], a[:])
}

func TestMerkleSingleLeaf(t *testing.T) {
	leaf := whitelistLeaf(aliceAddr, 500)
	assert.True(t, verifyMerkleProof(leaf, nil, leaf))
}

func TestMerkleTwoLeaves(t *testing.T) {
	leafA := whitelistLeaf(aliceAddr, 500)
	leafB := whitelistLeaf(bobAddr, 700)
	root := buildPair(leafA, leafB)

	assert.True(t, verifyMerkleProof(leafA, [][32]byte{leafB}, root))
	assert.True(t, verifyMerkleProof(leafB, [][32]byte{leafA}, root))

	// wrong amount changes the leaf
	badLeaf := whitelistLeaf(aliceAddr, 501)
	assert.False(t, verifyMerkleProof(badLeaf, [][32]byte{leafB}, root))
}

func TestMerkleFourLeaves(t *testing.T) {
	leaves := [][32]byte{
		whitelistLeaf(aliceAddr, 100),
		whitelistLeaf(bobAddr, 200),
		whitelistLeaf(carolAddr, 300),
		whitelistLeaf(daveAddr, 400),
	}
	left := buildPair(leaves[0], leaves[1])
	right := buildPair(leaves[2], leaves[3])
	root := buildPair(left, right)

	assert.True(t, verifyMerkleProof(leaves[0], [][32]byte{leaves[1], right}, root))
	assert.True(t, verifyMerkleProof(leaves[3], [][32]byte{leaves[2], left}, root))

	// flipping any single proof byte must fail verification
	proof := [][32]byte{leaves[1], right}
	proof[0][5] ^= 0x01
	assert.False(t, verifyMerkleProof(leaves[0], proof, root))
}

func TestMerkleEmptyProofAgainstOtherRoot(t *testing.T) {
	leafA := whitelistLeaf(aliceAddr, 500)
	leafB := whitelistLeaf(bobAddr, 700)
	root := buildPair(leafA, leafB)
	assert.False(t, verifyMerkleProof(leafA, nil, root))
}

func TestDecodeHash32Rejects(t *testing.T) {
	requireAbort(t, "invalid og root", func() {
		decodeHash32("zz", "og root")
	})
	requireAbort(t, "invalid og root", func() {
		decodeHash32("abcd", "og root")
	})
}
