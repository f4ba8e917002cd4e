package macaroon

import "github.com/google/uuid"

// NewIdentifier returns a fresh random identifier suitable for a root
// macaroon, so callers don't have to invent their own scheme for small
// deployments that don't need identifiers to encode anything.
func NewIdentifier() ByteString {
	return ByteString(uuid.New().String())
}
