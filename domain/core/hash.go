package core

import (
	"crypto/sha256"
	"encoding/hex"
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

// Checksum fingerprints uploaded file content
type Checksum Hash

// NewChecksum computes the checksum of uploaded bytes
func NewChecksum(data []byte) Checksum { return Checksum(NewHash(data)) }

// String returns the string representation
func (c Checksum) String() string { return Hash(c).String() }

// IsEmpty checks if the checksum is empty
func (c Checksum) IsEmpty() bool { return Hash(c).IsEmpty() }

// Short returns a truncated form suitable for log lines
func (c Checksum) Short() string {
	s := string(c)
	if len(s) > 12 {
		return s[:12]
	}
	return s
}
