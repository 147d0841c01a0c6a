package core

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// Domain-specific hash types
type (
	RecordHash Hash
	BatchHash  Hash
)

// Constructors
func NewRecordHash(data []byte) RecordHash { return RecordHash(NewHash(data)) }
func NewBatchHash(data []byte) BatchHash   { return BatchHash(NewHash(data)) }

// String conversions
func (h RecordHash) String() string { return Hash(h).String() }
func (h BatchHash) String() string  { return Hash(h).String() }

// ComputeRecordHash derives a stable record identity from its parts.
// Parts are joined with a separator that cannot occur inside any part's
// meaning, so ("ab","c") and ("a","bc") produce distinct hashes.
func ComputeRecordHash(parts ...string) RecordHash {
	var data strings.Builder
	for i, p := range parts {
		if i > 0 {
			data.WriteByte(0x1f)
		}
		data.WriteString(p)
	}
	return NewRecordHash([]byte(data.String()))
}

// ComputeBatchHash produces an order-independent fingerprint of a record batch
// from the individual record identities.
func ComputeBatchHash(recordIDs []string) BatchHash {
	ids := make([]string, len(recordIDs))
	copy(ids, recordIDs)
	sort.Strings(ids)

	var data strings.Builder
	for _, id := range ids {
		data.WriteString(id)
		data.WriteByte('\n')
	}
	return NewBatchHash([]byte(data.String()))
}
