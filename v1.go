package macaroon

import (
	"encoding/base64"

	"github.com/quaycrest/macaroon/internal/wire"
)

const (
	fieldLocation   = "location"
	fieldIdentifier = "identifier"
	fieldSignature  = "signature"
	fieldCID        = "cid"
	fieldVID        = "vid"
	fieldCL         = "cl"
)

func serializeV1(m *Macaroon) (string, error) {
	var buf []byte
	var err error
	if loc, ok := m.Location(); ok {
		if buf, err = wire.AppendPacketV1(buf, fieldLocation, []byte(loc)); err != nil {
			return "", newErrorf(ErrDeserialization, "%v", err)
		}
	}
	if buf, err = wire.AppendPacketV1(buf, fieldIdentifier, m.identifier); err != nil {
		return "", newErrorf(ErrDeserialization, "%v", err)
	}
	for _, cav := range m.caveats {
		switch c := cav.(type) {
		case FirstPartyCaveat:
			if buf, err = wire.AppendPacketV1(buf, fieldCID, c.Predicate); err != nil {
				return "", newErrorf(ErrDeserialization, "%v", err)
			}
		case ThirdPartyCaveat:
			if buf, err = wire.AppendPacketV1(buf, fieldCID, c.Id); err != nil {
				return "", newErrorf(ErrDeserialization, "%v", err)
			}
			if buf, err = wire.AppendPacketV1(buf, fieldVID, c.VerifierId); err != nil {
				return "", newErrorf(ErrDeserialization, "%v", err)
			}
			if buf, err = wire.AppendPacketV1(buf, fieldCL, []byte(c.Location)); err != nil {
				return "", newErrorf(ErrDeserialization, "%v", err)
			}
		}
	}
	if buf, err = wire.AppendPacketV1(buf, fieldSignature, m.signature[:]); err != nil {
		return "", newErrorf(ErrDeserialization, "%v", err)
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

func deserializeV1(data []byte) (*Macaroon, error) {
	raw, err := decodeFlexibleBase64(string(data))
	if err != nil {
		return nil, err
	}
	packets, err := wire.ParsePacketsV1(raw)
	if err != nil {
		return nil, newErrorf(ErrDeserialization, "%v", err)
	}

	mb := &macaroonBuilder{}
	var cb *caveatBuilder
	flush := func() error {
		if cb == nil {
			return nil
		}
		c, err := cb.build()
		if err != nil {
			return err
		}
		mb.addCaveat(c)
		cb = nil
		return nil
	}

	for _, p := range packets {
		switch p.Field {
		case fieldLocation:
			if mb.hasLoc || mb.hasID {
				return nil, newError(ErrDeserialization, "location must precede identifier")
			}
			mb.setLocation(string(p.Value))
		case fieldIdentifier:
			if mb.hasID {
				return nil, newError(ErrDeserialization, "repeated identifier")
			}
			mb.setIdentifier(ByteString(p.Value))
		case fieldCID:
			if err := flush(); err != nil {
				return nil, err
			}
			cb = &caveatBuilder{}
			cb.addID(ByteString(p.Value))
		case fieldVID:
			if cb == nil {
				return nil, newError(ErrDeserialization, "vid without preceding cid")
			}
			cb.addVerifierID(ByteString(p.Value))
		case fieldCL:
			if cb == nil {
				return nil, newError(ErrDeserialization, "cl without preceding cid")
			}
			cb.addLocation(string(p.Value))
		case fieldSignature:
			if err := flush(); err != nil {
				return nil, err
			}
			if len(p.Value) != keyLen {
				return nil, newErrorf(ErrDeserialization, "signature has length %d, want %d", len(p.Value), keyLen)
			}
			var sig Key
			copy(sig[:], p.Value)
			mb.setSignature(sig)
		default:
			return nil, newErrorf(ErrDeserialization, "unknown v1 field %q", p.Field)
		}
	}
	return mb.build()
}
