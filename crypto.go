package macaroon

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"hash"
	"io"
	"sync"

	"golang.org/x/crypto/nacl/secretbox"

	"github.com/quaycrest/macaroon/internal/obslog"
)

const (
	keyLen   = 32
	nonceLen = 24
)

// keyGenerator is the fixed seed used to turn an arbitrary-length caller
// secret into a uniform-strength 32-octet key. It is published as part of
// the wire contract: every conforming implementation derives keys the same
// way, so derived keys are portable between implementations.
var keyGenerator = Key{
	'm', 'a', 'c', 'a', 'r', 'o', 'o', 'n', 's', '-', 'k', 'e', 'y', '-',
	'g', 'e', 'n', 'e', 'r', 'a', 't', 'o', 'r', 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

var initOnce sync.Once
var initErr error

// Initialize runs a one-time self-test of the cryptographic primitives this
// package relies on. It is idempotent and safe to call concurrently; most
// callers never need to call it, since the standard library's HMAC and
// golang.org/x/crypto's secretbox implementations require no setup, but it
// is provided so that a
// future primitive swap (or an alternate build using cgo-backed crypto) has
// somewhere to hook initialization without changing the public API.
func Initialize() error {
	initOnce.Do(func() {
		defer func() {
			if r := recover(); r != nil {
				initErr = newError(ErrInitialization, "")
			}
		}()
		k := Key{}
		got := hmacSum(k, []byte("self-test"))
		if len(got) != keyLen {
			initErr = newError(ErrInitialization, "")
			return
		}
		obslog.Logger().Debug("macaroon: crypto self-test passed")
	})
	return initErr
}

func keyedHasher(key Key) hash.Hash {
	return hmac.New(sha256.New, key[:])
}

// hmacSum computes HMAC-SHA-256(key, msg) and returns it as a Key, since a
// signature is reused verbatim as the next HMAC key in the chain.
func hmacSum(key Key, msg []byte) Key {
	h := keyedHasher(key)
	h.Write(msg)
	return keyFromSum(h.Sum(nil))
}

// hmac2 computes HMAC(key, HMAC(key,a) || HMAC(key,b)), the primitive used
// both for third-party caveat signing and for binding a discharge.
func hmac2(key Key, a, b []byte) Key {
	t1 := hmacSum(key, a)
	t2 := hmacSum(key, b)
	buf := make([]byte, 0, 2*keyLen)
	buf = append(buf, t1[:]...)
	buf = append(buf, t2[:]...)
	return hmacSum(key, buf)
}

// deriveKey normalizes an arbitrary-length seed into a uniform-strength Key.
func deriveKey(seed []byte) Key {
	return hmacSum(keyGenerator, seed)
}

func keyFromSum(sum []byte) Key {
	var k Key
	copy(k[:], sum)
	return k
}

// encryptKey seals plaintext (a 32-octet key) under key using
// XSalsa20-Poly1305 (NaCl secretbox) with a freshly random nonce, producing
// nonce||ciphertext+tag. Encryption has no failure mode short of exhausting
// the system RNG, which panics rather than returning an error, matching
// crypto/rand's own contract.
func encryptKey(key Key, plaintext Key) []byte {
	var nonce [nonceLen]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		panic("macaroon: cannot read random bytes: " + err.Error())
	}
	var secretboxKey [keyLen]byte
	copy(secretboxKey[:], key[:])
	out := make([]byte, 0, nonceLen+secretbox.Overhead+keyLen)
	out = append(out, nonce[:]...)
	return secretbox.Seal(out, plaintext[:], &nonce, &secretboxKey)
}

// decryptKey is the inverse of encryptKey. It fails if the ciphertext is
// too short to contain a nonce and auth tag, if the tag does not verify, or
// if the recovered plaintext is not exactly 32 octets.
func decryptKey(key Key, ciphertext []byte) (Key, error) {
	if len(ciphertext) <= nonceLen+secretbox.Overhead {
		return Key{}, newError(ErrCrypto, "ciphertext too short")
	}
	var nonce [nonceLen]byte
	copy(nonce[:], ciphertext[:nonceLen])
	var secretboxKey [keyLen]byte
	copy(secretboxKey[:], key[:])
	plain, ok := secretbox.Open(nil, ciphertext[nonceLen:], &nonce, &secretboxKey)
	if !ok {
		return Key{}, newError(ErrCrypto, "message authentication failed")
	}
	if len(plain) != keyLen {
		return Key{}, newError(ErrCrypto, "decrypted key has wrong length")
	}
	return keyFromSum(plain), nil
}
