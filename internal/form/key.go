package form

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// NewInstanceKey generates a fresh opaque key scoping one widget's fields
// within a submission. Keys are never reused across renders; collisions
// within one form are treated as negligible and not defended against.
func NewInstanceKey() string {
	return prefixedKey("w", 12)
}

func prefixedKey(prefix string, hexLen int) string {
	b := make([]byte, (hexLen+1)/2)
	if _, err := rand.Read(b); err != nil {
		// Fallback to timestamp-based key if crypto/rand fails
		return fmt.Sprintf("%s-%x", prefix, time.Now().UnixNano())
	}
	return fmt.Sprintf("%s-%s", prefix, hex.EncodeToString(b)[:hexLen])
}
