// Package token derives the duplicate-vote-prevention token that stands in
// for a voter's identity in the vote store.
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
)

// Compute derives the token for a (voter, poll) pair. It is deterministic:
// the same inputs always produce the same token, which is what makes the
// unique key on the vote table detect duplicates. It is keyed by the
// server-held salt, so tokens cannot be recomputed (and voters enumerated)
// by anyone who only holds the vote table.
//
// Each input is length-prefixed before hashing so that distinct pairs can
// never collide by shifting bytes across the field boundary:
// ("ab","c") and ("a","bc") hash different messages.
func Compute(salt []byte, voterID, pollID string) string {
	mac := hmac.New(sha256.New, salt)
	writeField(mac, voterID)
	writeField(mac, pollID)
	return hex.EncodeToString(mac.Sum(nil))
}

func writeField(h hash.Hash, field string) {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], uint64(len(field)))
	h.Write(buf[:n])
	h.Write([]byte(field))
}
