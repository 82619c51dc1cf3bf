package credentials

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// fingerprintLength is the number of hex characters in a fingerprint.
// Enough uniqueness for debugging while keeping logs short.
const fingerprintLength = 16

// Fingerprint returns a short, deterministic, log-safe identifier for a
// secret value. The secret cannot be recovered from it, and equal secrets
// always produce equal fingerprints, so it is also usable for credential
// equality checks.
func Fingerprint(secret string) string {
	sum := blake2b.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])[:fingerprintLength]
}
