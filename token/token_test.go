package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var salt = []byte("unit-test-salt-0123456789")

func TestComputeDeterministic(t *testing.T) {
	first := Compute(salt, "alice", "p1")
	second := Compute(salt, "alice", "p1")
	assert.Equal(t, first, second)
}

func TestComputeDistinctPairs(t *testing.T) {
	base := Compute(salt, "alice", "p1")
	assert.NotEqual(t, base, Compute(salt, "bob", "p1"), "different voters must differ")
	assert.NotEqual(t, base, Compute(salt, "alice", "p2"), "different polls must differ")
}

// Length-prefixing must keep field boundaries fixed: concatenation alone
// would let ("ab","c") and ("a","bc") produce the same digest input.
func TestComputeBoundarySafety(t *testing.T) {
	assert.NotEqual(t, Compute(salt, "ab", "c"), Compute(salt, "a", "bc"))
}

func TestComputeSaltChangesToken(t *testing.T) {
	other := []byte("a-different-secret-salt")
	assert.NotEqual(t, Compute(salt, "alice", "p1"), Compute(other, "alice", "p1"))
}

func TestComputeOutputShape(t *testing.T) {
	tok := Compute(salt, "alice", "p1")
	assert.Len(t, tok, 64, "hex of a 256-bit digest")
	assert.Equal(t, strings.ToLower(tok), tok)
}

// The token must not echo any part of its inputs.
func TestComputeDoesNotLeakInputs(t *testing.T) {
	voterID := "alice@example.com"
	tok := Compute(salt, voterID, "p1")
	assert.NotContains(t, tok, voterID)
	assert.NotContains(t, tok, "alice")
	assert.NotContains(t, tok, "p1")
}
