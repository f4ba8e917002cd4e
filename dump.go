package macaroon

import "github.com/kr/pretty"

// dumpView is the shape Dump prints: unexported fields of Macaroon
// reflected into something readable, since kr/pretty only sees what it's
// handed.
type dumpView struct {
	Location   string
	HasLoc     bool
	Identifier string
	Signature  string
	Caveats    []Caveat
}

// Dump renders a macaroon's full internal state for debugging, including
// fields that Serialize encodes or leaves implicit.
func Dump(m *Macaroon) string {
	loc, hasLoc := m.Location()
	v := dumpView{
		Location:   loc,
		HasLoc:     hasLoc,
		Identifier: m.identifier.String(),
		Signature:  m.signature.String(),
		Caveats:    m.Caveats(),
	}
	return pretty.Sprint(v)
}
