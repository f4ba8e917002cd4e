package macaroon

import "fmt"

// ErrorKind identifies which of the taxonomy's failure conditions an Error
// represents. Callers that need to distinguish, say, a missing discharge
// from a tampered signature should switch on Kind, not on the message text.
type ErrorKind int

const (
	// ErrInitialization indicates the crypto self-test failed.
	ErrInitialization ErrorKind = iota
	// ErrCrypto indicates a primitive-level failure: AEAD tag mismatch,
	// wrong key length, or a short ciphertext.
	ErrCrypto
	// ErrIncompleteMacaroon indicates a builder was asked to finish a
	// macaroon missing a required field.
	ErrIncompleteMacaroon
	// ErrIncompleteCaveat indicates a builder was asked to finish a
	// caveat that is neither a valid first-party nor third-party shape.
	ErrIncompleteCaveat
	// ErrDeserialization indicates a malformed token at any wire layer.
	ErrDeserialization
	// ErrCaveatNotSatisfied indicates a first-party predicate matched
	// neither the exact set nor any general callback, or a third-party
	// caveat had no matching discharge.
	ErrCaveatNotSatisfied
	// ErrDischargeNotUsed indicates the discharge bag contained a
	// macaroon the verifier never consumed.
	ErrDischargeNotUsed
	// ErrInvalidSignature indicates the final chained signature did not
	// match the macaroon's stored signature.
	ErrInvalidSignature
)

func (k ErrorKind) String() string {
	switch k {
	case ErrInitialization:
		return "InitializationError"
	case ErrCrypto:
		return "CryptoError"
	case ErrIncompleteMacaroon:
		return "IncompleteMacaroon"
	case ErrIncompleteCaveat:
		return "IncompleteCaveat"
	case ErrDeserialization:
		return "DeserializationError"
	case ErrCaveatNotSatisfied:
		return "CaveatNotSatisfied"
	case ErrDischargeNotUsed:
		return "DischargeNotUsed"
	case ErrInvalidSignature:
		return "InvalidSignature"
	default:
		return "UnknownError"
	}
}

// Error is the single error type returned by every operation in this
// package. The taxonomy is intentionally flat: one Kind per condition in
// the spec, never a wrapped stack of causes.
type Error struct {
	Kind   ErrorKind
	Detail string
}

func newError(kind ErrorKind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

func newErrorf(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// Is allows errors.Is(err, macaroon.ErrSentinelInvalidSignature) style
// comparisons against the sentinel errors exported below, without callers
// having to type-assert *Error themselves.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinel errors for use with errors.Is. Only Kind is compared; Detail is
// ignored.
var (
	ErrSentinelInitialization     = &Error{Kind: ErrInitialization}
	ErrSentinelCrypto             = &Error{Kind: ErrCrypto}
	ErrSentinelIncompleteMacaroon = &Error{Kind: ErrIncompleteMacaroon}
	ErrSentinelIncompleteCaveat   = &Error{Kind: ErrIncompleteCaveat}
	ErrSentinelDeserialization    = &Error{Kind: ErrDeserialization}
	ErrSentinelCaveatNotSatisfied = &Error{Kind: ErrCaveatNotSatisfied}
	ErrSentinelDischargeNotUsed   = &Error{Kind: ErrDischargeNotUsed}
	ErrSentinelInvalidSignature   = &Error{Kind: ErrInvalidSignature}
)
