package macaroon

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"io"
)

// Key is a 32-octet value used both as HMAC key material and, since every
// signature in the chain is reused as the next HMAC key, as the
// representation of a macaroon signature. Keys are plain values: copy them
// freely.
type Key [keyLen]byte

// GenerateRandomKey returns a fresh Key drawn from a CSPRNG. Use it to mint
// root keys for new macaroons and for third-party caveat root keys.
func GenerateRandomKey() Key {
	var k Key
	if _, err := io.ReadFull(rand.Reader, k[:]); err != nil {
		panic("macaroon: cannot read random bytes: " + err.Error())
	}
	return k
}

// GenerateKey derives a Key from a seed of arbitrary length via
// HMAC(KEY_GENERATOR, seed). Use it when the caller already has secret
// material of some other length and wants a uniform-strength macaroon key.
func GenerateKey(seed []byte) Key {
	return deriveKey(seed)
}

// KeyFromBytes interprets 32 raw octets as a Key verbatim, with no
// derivation. It is the inverse of Key.Bytes, used for importing keys from
// storage or reinterpreting a macaroon signature as the key for the next
// step of verification.
func KeyFromBytes(b [keyLen]byte) Key {
	return Key(b)
}

// Bytes returns a copy of the key's 32 octets.
func (k Key) Bytes() []byte {
	return append([]byte(nil), k[:]...)
}

// Equal reports whether two keys are identical, in constant time. Keys are
// secrets; comparing them should never leak timing information.
func (k Key) Equal(other Key) bool {
	return subtle.ConstantTimeCompare(k[:], other[:]) == 1
}

// String renders the key as hex, for logging and debug output. Since a Key
// doubles as a macaroon signature, this is also how signatures print.
func (k Key) String() string {
	return hex.EncodeToString(k[:])
}
