// Package macaroon implements macaroons as described in the paper
// "Macaroons: Cookies with Contextual Caveats for Decentralized
// Authorization in the Cloud"
// (http://theory.stanford.edu/~ataly/Papers/macaroons.pdf), plus the V2
// and V2JSON wire formats that later implementations standardized on.
package macaroon

// Macaroon is a bearer token: an identifier, an optional location hint, a
// rolling HMAC signature, and an ordered list of caveats. Caveat order is
// significant — the signature is a fold over the caveat list in order, and
// every operation in this package preserves that order.
//
// A Macaroon produced by New is immutable from a verifier's point of view:
// AddFirstPartyCaveat and AddThirdPartyCaveat are the only methods that
// change m, and Bind changes only the discharge passed to it. Each derives
// the new signature from the prior signature and its arguments;
// AddThirdPartyCaveat also draws a fresh random nonce for the verifier id.
// Clone before mutating if you need to keep the original.
type Macaroon struct {
	location   string
	hasLoc     bool
	identifier ByteString
	signature  Key
	caveats    []Caveat
}

// New creates a macaroon bound to rootKey, with the given identifier and
// optional location hint. The identifier must be non-empty (invariant I1).
func New(location string, hasLocation bool, rootKey Key, identifier ByteString) (*Macaroon, error) {
	if len(identifier) == 0 {
		return nil, newError(ErrIncompleteMacaroon, "identifier")
	}
	return &Macaroon{
		location:   location,
		hasLoc:     hasLocation,
		identifier: identifier.Clone(),
		signature:  hmacSum(rootKey, identifier),
	}, nil
}

// Create is a convenience wrapper over New for the common case of a
// macaroon with a location hint.
func Create(location string, rootKey Key, identifier ByteString) (*Macaroon, error) {
	return New(location, true, rootKey, identifier)
}

// CreateWithoutLocation creates a macaroon with no location hint.
func CreateWithoutLocation(rootKey Key, identifier ByteString) (*Macaroon, error) {
	return New("", false, rootKey, identifier)
}

// Identifier returns the macaroon's identifier.
func (m *Macaroon) Identifier() ByteString {
	return m.identifier.Clone()
}

// Location returns the macaroon's location hint and whether one is set.
// The location is never verified; it is purely advisory for routing
// discharge requests.
func (m *Macaroon) Location() (string, bool) {
	return m.location, m.hasLoc
}

// Signature returns the macaroon's current rolling signature.
func (m *Macaroon) Signature() Key {
	return m.signature
}

// Caveats returns the macaroon's caveats in order. The returned slice is a
// copy; mutating it does not affect m.
func (m *Macaroon) Caveats() []Caveat {
	out := make([]Caveat, len(m.caveats))
	copy(out, m.caveats)
	return out
}

// Clone returns an independent copy of m.
func (m *Macaroon) Clone() *Macaroon {
	clone := *m
	clone.identifier = m.identifier.Clone()
	clone.caveats = make([]Caveat, len(m.caveats))
	copy(clone.caveats, m.caveats)
	return &clone
}

// Equal reports whether m and other have identical identifier, location,
// signature, and caveat sequence.
func (m *Macaroon) Equal(other *Macaroon) bool {
	if other == nil {
		return false
	}
	if !m.identifier.Equal(other.identifier) {
		return false
	}
	if m.hasLoc != other.hasLoc || (m.hasLoc && m.location != other.location) {
		return false
	}
	if !m.signature.Equal(other.signature) {
		return false
	}
	if len(m.caveats) != len(other.caveats) {
		return false
	}
	for i := range m.caveats {
		if !caveatsEqual(m.caveats[i], other.caveats[i]) {
			return false
		}
	}
	return true
}

func caveatsEqual(a, b Caveat) bool {
	switch av := a.(type) {
	case FirstPartyCaveat:
		bv, ok := b.(FirstPartyCaveat)
		return ok && av.Predicate.Equal(bv.Predicate)
	case ThirdPartyCaveat:
		bv, ok := b.(ThirdPartyCaveat)
		return ok && av.Id.Equal(bv.Id) && av.VerifierId.Equal(bv.VerifierId) && av.Location == bv.Location
	default:
		return false
	}
}

// AddFirstPartyCaveat attenuates m by a predicate that the verifier checks
// directly. Any holder of m may call this; no secret key is required.
func (m *Macaroon) AddFirstPartyCaveat(predicate ByteString) {
	cav := FirstPartyCaveat{Predicate: predicate.Clone()}
	m.signature = cav.sign(m.signature)
	m.caveats = append(m.caveats, cav)
}

// AddThirdPartyCaveat attenuates m with a caveat that must be discharged by
// the service at location. caveatRootKey is the root key the third party
// will use to mint the discharge macaroon; it is sealed into the caveat's
// verifier id under m's current signature, so only a holder of this exact
// macaroon state can recover it.
func (m *Macaroon) AddThirdPartyCaveat(location string, caveatRootKey Key, id ByteString) {
	vid := encryptKey(m.signature, caveatRootKey)
	cav := ThirdPartyCaveat{
		Id:         id.Clone(),
		VerifierId: ByteString(vid),
		Location:   location,
	}
	m.signature = cav.sign(m.signature)
	m.caveats = append(m.caveats, cav)
}

// Bind prepares discharge for use in the discharges argument to Verify,
// cryptographically pinning it to the primary macaroon m so it cannot be
// reused to discharge a different token.
func (m *Macaroon) Bind(discharge *Macaroon) {
	discharge.signature = hmac2(Key{}, m.signature[:], discharge.signature[:])
}
