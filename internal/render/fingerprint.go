package render

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint computes the deterministic content digest used for
// idempotence and drift checks: sha256 over the exact file bytes,
// hex-encoded. Same template and parameters always yield the same
// fingerprint.
func Fingerprint(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
