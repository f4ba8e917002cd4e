package macaroon

import (
	"encoding/base64"
	"encoding/json"
)

// jsonCaveat mirrors the dual raw/base64 field contract of the V2JSON wire
// format: a field may be carried as UTF-8 text in the plain key or as
// base64 in the "64"-suffixed key, but never both.
type jsonCaveat struct {
	ID    string `json:"i,omitempty"`
	ID64  string `json:"i64,omitempty"`
	Loc   string `json:"l,omitempty"`
	Loc64 string `json:"l64,omitempty"`
	VID   string `json:"v,omitempty"`
	VID64 string `json:"v64,omitempty"`
}

type jsonMacaroon struct {
	Version      int          `json:"v"`
	Identifier   string       `json:"i,omitempty"`
	Identifier64 string       `json:"i64,omitempty"`
	Location     string       `json:"l,omitempty"`
	Location64   string       `json:"l64,omitempty"`
	Caveats      []jsonCaveat `json:"c,omitempty"`
	Signature    string       `json:"s,omitempty"`
	Signature64  string       `json:"s64,omitempty"`
}

const v2jsonVersion = 2

func encodeDualField(b []byte, isText bool) (raw, b64 string) {
	if isText {
		return string(b), ""
	}
	return "", base64.RawURLEncoding.EncodeToString(b)
}

func isPrintableASCII(b []byte) bool {
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			return false
		}
	}
	return true
}

func serializeV2JSON(m *Macaroon) (string, error) {
	jm := jsonMacaroon{Version: v2jsonVersion}
	if loc, ok := m.Location(); ok {
		jm.Location = loc
	}
	jm.Identifier, jm.Identifier64 = encodeDualField(m.identifier, isPrintableASCII(m.identifier))
	jm.Signature64 = base64.RawURLEncoding.EncodeToString(m.signature[:])
	for _, cav := range m.caveats {
		var jc jsonCaveat
		switch c := cav.(type) {
		case FirstPartyCaveat:
			jc.ID, jc.ID64 = encodeDualField(c.Predicate, isPrintableASCII(c.Predicate))
		case ThirdPartyCaveat:
			jc.ID, jc.ID64 = encodeDualField(c.Id, isPrintableASCII(c.Id))
			jc.VID64 = base64.RawURLEncoding.EncodeToString(c.VerifierId)
			jc.Loc = c.Location
		}
		jm.Caveats = append(jm.Caveats, jc)
	}
	buf, err := json.Marshal(jm)
	if err != nil {
		return "", newErrorf(ErrDeserialization, "%v", err)
	}
	return string(buf), nil
}

// decodeDualField resolves a raw/base64 field pair, erroring if both or
// neither are present.
func decodeDualField(raw, b64 string, required bool) (ByteString, error) {
	hasRaw := raw != ""
	hasB64 := b64 != ""
	if hasRaw && hasB64 {
		return nil, newError(ErrDeserialization, "both raw and base64 forms of a field present")
	}
	if hasRaw {
		return ByteString(raw), nil
	}
	if hasB64 {
		b, err := base64.RawURLEncoding.DecodeString(b64)
		if err != nil {
			return nil, newErrorf(ErrDeserialization, "%v", err)
		}
		return ByteString(b), nil
	}
	if required {
		return nil, newError(ErrDeserialization, "missing required field")
	}
	return nil, nil
}

func deserializeV2JSON(data []byte) (*Macaroon, error) {
	var jm jsonMacaroon
	if err := json.Unmarshal(data, &jm); err != nil {
		return nil, newErrorf(ErrDeserialization, "%v", err)
	}
	if jm.Version != v2jsonVersion {
		return nil, newErrorf(ErrDeserialization, "unsupported v2json version %d", jm.Version)
	}

	mb := &macaroonBuilder{}
	if jm.Location != "" || jm.Location64 != "" {
		loc, err := decodeDualField(jm.Location, jm.Location64, false)
		if err != nil {
			return nil, err
		}
		mb.setLocation(string(loc))
	}
	id, err := decodeDualField(jm.Identifier, jm.Identifier64, true)
	if err != nil {
		return nil, err
	}
	mb.setIdentifier(id)

	sig, err := decodeDualField(jm.Signature, jm.Signature64, true)
	if err != nil {
		return nil, err
	}
	if len(sig) != keyLen {
		return nil, newError(ErrDeserialization, "bad signature length")
	}
	var key Key
	copy(key[:], sig)
	mb.setSignature(key)

	for _, jc := range jm.Caveats {
		cb := &caveatBuilder{}
		cid, err := decodeDualField(jc.ID, jc.ID64, true)
		if err != nil {
			return nil, err
		}
		cb.addID(cid)
		if jc.VID != "" || jc.VID64 != "" {
			vid, err := decodeDualField(jc.VID, jc.VID64, false)
			if err != nil {
				return nil, err
			}
			cb.addVerifierID(vid)
		}
		if jc.Loc != "" || jc.Loc64 != "" {
			cl, err := decodeDualField(jc.Loc, jc.Loc64, false)
			if err != nil {
				return nil, err
			}
			cb.addLocation(string(cl))
		}
		c, err := cb.build()
		if err != nil {
			return nil, err
		}
		mb.addCaveat(c)
	}
	return mb.build()
}
