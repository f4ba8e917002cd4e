package macaroon

import "encoding/base64"

// decodeFlexibleBase64 accepts base64 text in either the standard or
// URL-safe alphabet, with or without padding, since different macaroon
// implementations in the wild are inconsistent about which they emit.
func decodeFlexibleBase64(s string) ([]byte, error) {
	encodings := []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	}
	var lastErr error
	for _, enc := range encodings {
		if data, err := enc.DecodeString(s); err == nil {
			return data, nil
		} else {
			lastErr = err
		}
	}
	return nil, newErrorf(ErrDeserialization, "invalid base64: %v", lastErr)
}
