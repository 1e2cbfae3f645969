package util

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateRandomString returns n random hex characters, used to keep
// generated storage keys collision-free within a timestamp second.
func GenerateRandomString(n int) string {
	b := make([]byte, (n+1)/2)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return hex.EncodeToString(b)[:n]
}
