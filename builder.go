package macaroon

// caveatBuilder assembles a Caveat field-by-field for the deserializers,
// which must read wire fields in whatever order the format delivers them
// before they know which variant they're building.
type caveatBuilder struct {
	id         ByteString
	hasID      bool
	verifierID ByteString
	hasVID     bool
	location   string
	hasLoc     bool
}

func (b *caveatBuilder) addID(id ByteString) {
	b.id = id
	b.hasID = true
}

func (b *caveatBuilder) addVerifierID(vid ByteString) {
	b.verifierID = vid
	b.hasVID = true
}

func (b *caveatBuilder) addLocation(loc string) {
	b.location = loc
	b.hasLoc = true
}

// build finishes the caveat. An id alone yields a FirstPartyCaveat; an id
// plus verifier id plus location yields a ThirdPartyCaveat; any other
// combination is incomplete.
func (b *caveatBuilder) build() (Caveat, error) {
	if !b.hasID {
		return nil, newError(ErrIncompleteCaveat, "id")
	}
	if !b.hasVID && !b.hasLoc {
		return FirstPartyCaveat{Predicate: b.id}, nil
	}
	if b.hasVID && b.hasLoc {
		return ThirdPartyCaveat{Id: b.id, VerifierId: b.verifierID, Location: b.location}, nil
	}
	if !b.hasVID {
		return nil, newError(ErrIncompleteCaveat, "verifier id")
	}
	return nil, newError(ErrIncompleteCaveat, "location")
}

// macaroonBuilder assembles a Macaroon field-by-field for the
// deserializers. Unlike New/Create, it never derives a signature from a
// root key: the decoded signature is taken as given, since the wire format
// carries it directly.
type macaroonBuilder struct {
	location   string
	hasLoc     bool
	identifier ByteString
	hasID      bool
	signature  Key
	hasSig     bool
	caveats    []Caveat
}

func (b *macaroonBuilder) setLocation(loc string) {
	b.location = loc
	b.hasLoc = true
}

func (b *macaroonBuilder) setIdentifier(id ByteString) {
	b.identifier = id
	b.hasID = true
}

func (b *macaroonBuilder) setSignature(sig Key) {
	b.signature = sig
	b.hasSig = true
}

func (b *macaroonBuilder) addCaveat(c Caveat) {
	b.caveats = append(b.caveats, c)
}

func (b *macaroonBuilder) build() (*Macaroon, error) {
	if !b.hasID {
		return nil, newError(ErrIncompleteMacaroon, "identifier")
	}
	if len(b.identifier) == 0 {
		return nil, newError(ErrIncompleteMacaroon, "identifier")
	}
	if !b.hasSig {
		return nil, newError(ErrIncompleteMacaroon, "signature")
	}
	return &Macaroon{
		location:   b.location,
		hasLoc:     b.hasLoc,
		identifier: b.identifier,
		signature:  b.signature,
		caveats:    b.caveats,
	}, nil
}
