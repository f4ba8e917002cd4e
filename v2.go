package macaroon

import (
	"encoding/base64"

	"github.com/quaycrest/macaroon/internal/wire"
)

const (
	fieldEOSV2        = 0
	fieldLocationV2   = 1
	fieldIdentifierV2 = 2
	fieldVIDV2        = 4
	fieldSignatureV2  = 6
	versionV2         = 2
)

func appendFieldV2(buf []byte, tag byte, value []byte) []byte {
	buf = append(buf, tag)
	buf = wire.AppendVarint(buf, len(value))
	buf = append(buf, value...)
	return buf
}

func serializeV2(m *Macaroon) (string, error) {
	buf := serializeV2Bytes(m)
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func serializeV2Bytes(m *Macaroon) []byte {
	buf := []byte{versionV2}
	if loc, ok := m.Location(); ok {
		buf = appendFieldV2(buf, fieldLocationV2, []byte(loc))
	}
	buf = appendFieldV2(buf, fieldIdentifierV2, m.identifier)
	buf = append(buf, fieldEOSV2)
	for _, cav := range m.caveats {
		switch c := cav.(type) {
		case FirstPartyCaveat:
			buf = appendFieldV2(buf, fieldIdentifierV2, c.Predicate)
		case ThirdPartyCaveat:
			buf = appendFieldV2(buf, fieldLocationV2, []byte(c.Location))
			buf = appendFieldV2(buf, fieldIdentifierV2, c.Id)
			buf = appendFieldV2(buf, fieldVIDV2, c.VerifierId)
		}
		buf = append(buf, fieldEOSV2)
	}
	buf = append(buf, fieldEOSV2)
	buf = appendFieldV2(buf, fieldSignatureV2, m.signature[:])
	return buf
}

type v2Reader struct {
	data []byte
}

func (r *v2Reader) byte() (byte, error) {
	if len(r.data) == 0 {
		return 0, newError(ErrDeserialization, "buffer overrun")
	}
	b := r.data[0]
	r.data = r.data[1:]
	return b, nil
}

func (r *v2Reader) eos() error {
	b, err := r.byte()
	if err != nil {
		return err
	}
	if b != fieldEOSV2 {
		return newError(ErrDeserialization, "expected EOS")
	}
	return nil
}

func (r *v2Reader) field() ([]byte, error) {
	size, rest, err := wire.ReadVarint(r.data)
	if err != nil {
		return nil, newErrorf(ErrDeserialization, "%v", err)
	}
	r.data = rest
	if size > len(r.data) {
		return nil, newError(ErrDeserialization, "unexpected end of field")
	}
	field := append([]byte(nil), r.data[:size]...)
	r.data = r.data[size:]
	return field, nil
}

func deserializeV2(data []byte) (*Macaroon, error) {
	r := &v2Reader{data: data}
	return deserializeV2FromReader(r)
}

// deserializeV2FromReader decodes one V2 macaroon starting at r's current
// position, leaving r positioned just past it. This lets Slice.UnmarshalBinary
// decode a concatenated stream of macaroons without knowing their individual
// lengths in advance.
func deserializeV2FromReader(r *v2Reader) (*Macaroon, error) {
	version, err := r.byte()
	if err != nil {
		return nil, err
	}
	if version != versionV2 {
		return nil, newErrorf(ErrDeserialization, "wrong version number %d", version)
	}

	mb := &macaroonBuilder{}
	tag, err := r.byte()
	if err != nil {
		return nil, err
	}
	switch tag {
	case fieldLocationV2:
		field, err := r.field()
		if err != nil {
			return nil, err
		}
		mb.setLocation(string(field))
	case fieldIdentifierV2:
		field, err := r.field()
		if err != nil {
			return nil, err
		}
		mb.setIdentifier(ByteString(field))
	default:
		return nil, newError(ErrDeserialization, "identifier not found")
	}
	if mb.hasLoc {
		tag, err = r.byte()
		if err != nil {
			return nil, err
		}
		if tag != fieldIdentifierV2 {
			return nil, newError(ErrDeserialization, "identifier not found")
		}
		field, err := r.field()
		if err != nil {
			return nil, err
		}
		mb.setIdentifier(ByteString(field))
	}
	if err := r.eos(); err != nil {
		return nil, err
	}

	tag, err = r.byte()
	if err != nil {
		return nil, err
	}
	for tag != fieldEOSV2 {
		cb := &caveatBuilder{}
		switch tag {
		case fieldLocationV2:
			field, err := r.field()
			if err != nil {
				return nil, err
			}
			cb.addLocation(string(field))
		case fieldIdentifierV2:
			field, err := r.field()
			if err != nil {
				return nil, err
			}
			cb.addID(ByteString(field))
		default:
			return nil, newError(ErrDeserialization, "caveat identifier not found")
		}
		if cb.hasLoc {
			tag, err = r.byte()
			if err != nil {
				return nil, err
			}
			if tag != fieldIdentifierV2 {
				return nil, newError(ErrDeserialization, "caveat identifier not found")
			}
			field, err := r.field()
			if err != nil {
				return nil, err
			}
			cb.addID(ByteString(field))
		}
		tag, err = r.byte()
		if err != nil {
			return nil, err
		}
		switch tag {
		case fieldVIDV2:
			field, err := r.field()
			if err != nil {
				return nil, err
			}
			cb.addVerifierID(ByteString(field))
			c, err := cb.build()
			if err != nil {
				return nil, err
			}
			mb.addCaveat(c)
			if err := r.eos(); err != nil {
				return nil, err
			}
			tag, err = r.byte()
			if err != nil {
				return nil, err
			}
		case fieldEOSV2:
			c, err := cb.build()
			if err != nil {
				return nil, err
			}
			mb.addCaveat(c)
			tag, err = r.byte()
			if err != nil {
				return nil, err
			}
		default:
			return nil, newError(ErrDeserialization, "unexpected caveat tag found")
		}
	}

	tag, err = r.byte()
	if err != nil {
		return nil, err
	}
	if tag != fieldSignatureV2 {
		return nil, newError(ErrDeserialization, "unexpected tag found")
	}
	sig, err := r.field()
	if err != nil {
		return nil, err
	}
	if len(sig) != keyLen {
		return nil, newError(ErrDeserialization, "bad signature length")
	}
	var key Key
	copy(key[:], sig)
	mb.setSignature(key)
	return mb.build()
}
