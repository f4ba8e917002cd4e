package macaroon

import (
	"sort"

	"golang.org/x/exp/maps"

	"github.com/quaycrest/macaroon/internal/obslog"
)

// GeneralCheck is a callback that reports whether a first-party predicate
// is satisfied. It is consulted only after the exact-match set fails to
// satisfy a predicate, so a verifier that only ever uses SatisfyExact pays
// no callback overhead.
type GeneralCheck func(predicate ByteString) bool

// Verifier holds the policy a macaroon is checked against: a set of
// predicates accepted verbatim, and an ordered list of general callbacks
// consulted when no exact match applies. A Verifier carries no state
// between calls to Verify; it is safe to share across goroutines once
// configuration (SatisfyExact/SatisfyGeneral) has stopped changing.
type Verifier struct {
	exact   map[string]struct{}
	general []GeneralCheck
}

// NewVerifier returns an empty Verifier.
func NewVerifier() *Verifier {
	return &Verifier{exact: make(map[string]struct{})}
}

// SatisfyExact adds predicate to the set of first-party predicates accepted
// by byte-for-byte equality.
func (v *Verifier) SatisfyExact(predicate ByteString) {
	v.exact[string(predicate)] = struct{}{}
}

// SatisfyGeneral appends a callback consulted for first-party predicates
// that don't match the exact set.
func (v *Verifier) SatisfyGeneral(check GeneralCheck) {
	v.general = append(v.general, check)
}

func (v *Verifier) satisfies(predicate ByteString) bool {
	if _, ok := v.exact[string(predicate)]; ok {
		return true
	}
	for _, check := range v.general {
		if check(predicate) {
			return true
		}
	}
	return false
}

// Verify checks that m is authorized under rootKey, given a bag of
// discharge macaroons for its third-party caveats. Every discharge supplied
// must be consumed by some (possibly transitively nested) third-party
// caveat in m, or verification fails with DischargeNotUsed — this keeps a
// bearer from padding the discharge bag to confuse policy.
func (v *Verifier) Verify(m *Macaroon, rootKey Key, discharges []*Macaroon) error {
	remaining := make(map[string]*Macaroon, len(discharges))
	for _, d := range discharges {
		remaining[string(d.identifier)] = d
	}
	if err := v.verifyWithSig(m.signature, m, rootKey, remaining); err != nil {
		return err
	}
	if len(remaining) > 0 {
		unused := maps.Keys(remaining)
		sort.Strings(unused)
		obslog.Logger().WithField("count", len(unused)).WithField("identifiers", unused).Debug("macaroon: unused discharges remain")
		return newErrorf(ErrDischargeNotUsed, "%d discharge(s) never consumed", len(unused))
	}
	return nil
}

// verifyWithSig is the recursive core of §4.D: rootSig is the signature of
// the token at the top of the current discharge chain (the primary, for
// every recursive call), m is the macaroon currently being checked, key is
// the HMAC key for m (the root key for the primary, a decrypted caveat key
// for a discharge), and remaining is the shared, mutated discharge bag.
func (v *Verifier) verifyWithSig(rootSig Key, m *Macaroon, key Key, remaining map[string]*Macaroon) error {
	sig := hmacSum(key, m.identifier)
	for _, cav := range m.caveats {
		switch c := cav.(type) {
		case FirstPartyCaveat:
			if !v.satisfies(c.Predicate) {
				return newErrorf(ErrCaveatNotSatisfied, "%s", c.Predicate)
			}
		case ThirdPartyCaveat:
			caveatKey, err := decryptKey(sig, c.VerifierId)
			if err != nil {
				return err
			}
			discharge, ok := remaining[string(c.Id)]
			if !ok {
				return newError(ErrCaveatNotSatisfied, "no discharge")
			}
			// Removing the discharge before recursing is what makes a
			// self-referential (or mutually referential) discharge chain
			// terminate: the second visit finds nothing left to consume.
			delete(remaining, string(c.Id))
			if err := v.verifyWithSig(rootSig, discharge, caveatKey, remaining); err != nil {
				return err
			}
		}
		sig = cav.sign(sig)
	}
	if sig.Equal(rootSig) {
		return nil
	}
	bound := hmac2(Key{}, rootSig[:], sig[:])
	if bound.Equal(m.signature) {
		return nil
	}
	return newError(ErrInvalidSignature, "")
}
