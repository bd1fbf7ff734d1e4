package id

import (
	"crypto/rand"
	"encoding/hex"
)

// New32 returns exactly 32 hex characters (no separators/prefixes). Used for
// search-index document ids, room names and image file stems.
func New32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
