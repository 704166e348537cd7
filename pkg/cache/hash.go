package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash returns the hex SHA-256 of data. FileStore uses it to derive file
// names from cache keys, and the registry client uses a prefix of it to
// namespace keys per base URL.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
