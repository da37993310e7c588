// Package trackingcode generates the short public identifiers used in place
// of internal delivery ids for unauthenticated lookups.
package trackingcode

import (
	"crypto/rand"
	"fmt"
)

// Length is the fixed size of every tracking code.
const Length = 10

// alphabet is URL-safe and already upper-case, so codes can be embedded in
// share links verbatim. Comparison is case-insensitive; storage is upper-case.
const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-_"

// Generate returns a 10-character code drawn from crypto-strong randomness.
// With 38^10 possible codes, collisions are negligible at any realistic
// delivery volume; the caller still enforces uniqueness at persistence time
// and retries on conflict.
func Generate() string {
	b := make([]byte, Length)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand only fails when the platform entropy source is broken.
		panic(fmt.Sprintf("trackingcode: read entropy: %v", err))
	}
	for i := range b {
		b[i] = alphabet[int(b[i])%len(alphabet)]
	}
	return string(b)
}
