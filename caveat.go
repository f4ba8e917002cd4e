package macaroon

// Caveat is a closed sum type with exactly two shapes: a first-party
// caveat, checked locally by a predicate, and a third-party caveat,
// discharged by some other service. The interface's sign method is
// unexported, which seals it — no type outside this package can implement
// Caveat, so a type switch over the two types below, or IsThirdParty, is
// always exhaustive.
type Caveat interface {
	sign(key Key) Key
}

// FirstPartyCaveat restricts a macaroon by a predicate the verifier checks
// directly, either against an exact set or a general callback.
type FirstPartyCaveat struct {
	Predicate ByteString
}

func (c FirstPartyCaveat) sign(key Key) Key {
	return hmacSum(key, c.Predicate)
}

// ThirdPartyCaveat restricts a macaroon by requiring a discharge macaroon
// from the service at Location, matched by Id. VerifierId is the
// authenticated-encryption of the caveat's root key under the macaroon's
// signature at the moment the caveat was added.
type ThirdPartyCaveat struct {
	Id         ByteString
	VerifierId ByteString
	Location   string
}

func (c ThirdPartyCaveat) sign(key Key) Key {
	return hmac2(key, c.VerifierId, c.Id)
}

// IsThirdParty reports whether c requires a discharge macaroon.
func IsThirdParty(c Caveat) bool {
	_, ok := c.(ThirdPartyCaveat)
	return ok
}
