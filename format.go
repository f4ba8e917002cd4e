package macaroon

import (
	"github.com/quaycrest/macaroon/internal/obslog"
)

// Format identifies one of the three wire encodings this package speaks.
type Format int

const (
	// V1 is the original base64-encoded packet stream.
	V1 Format = iota
	// V2 is the compact varint-tagged binary format.
	V2
	// V2JSON is the JSON rendering of the V2 field set.
	V2JSON
)

// Serialize encodes m in the given format. V1 and V2 return base64 text
// (V1 standard, V2 URL-safe without padding); V2JSON returns a JSON
// document.
func (m *Macaroon) Serialize(format Format) (string, error) {
	switch format {
	case V1:
		return serializeV1(m)
	case V2:
		return serializeV2(m)
	case V2JSON:
		return serializeV2JSON(m)
	default:
		return "", newErrorf(ErrDeserialization, "unknown format %d", format)
	}
}

// Deserialize decodes a macaroon from any of the three supported wire
// formats, sniffing the format from the leading byte: '{' is V2JSON, 0x02
// is V2, and any base64 alphabet character is base64 text, which is decoded
// as V2 if its first decoded byte is 0x02 (the form Serialize(V2) returns)
// and as V1 otherwise. The '{' branch is strict about leading whitespace: a
// V2JSON token may not be padded.
func Deserialize(data []byte) (*Macaroon, error) {
	if len(data) == 0 {
		return nil, newError(ErrDeserialization, "empty input")
	}
	switch {
	case data[0] == '{':
		obslog.Logger().Debug("macaroon: sniffed v2json")
		return deserializeV2JSON(data)
	case data[0] == 0x02:
		obslog.Logger().Debug("macaroon: sniffed v2 binary")
		return deserializeV2(data)
	case isBase64Byte(data[0]):
		raw, err := decodeFlexibleBase64(string(data))
		if err != nil {
			return nil, err
		}
		if len(raw) > 0 && raw[0] == versionV2 {
			obslog.Logger().Debug("macaroon: sniffed base64 v2 binary")
			return deserializeV2(raw)
		}
		obslog.Logger().Debug("macaroon: sniffed v1")
		return deserializeV1(data)
	default:
		return nil, newErrorf(ErrDeserialization, "unrecognized leading byte 0x%02x", data[0])
	}
}

func isBase64Byte(b byte) bool {
	switch {
	case b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z', b >= '0' && b <= '9':
		return true
	case b == '+' || b == '/' || b == '-' || b == '_':
		return true
	}
	return false
}
