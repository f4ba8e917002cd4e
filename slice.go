package macaroon

import "bytes"

// Slice is an ordered bundle of macaroons: conventionally a primary
// macaroon followed by the discharges that satisfy its third-party
// caveats, as produced by a client assembling a request.
type Slice []*Macaroon

// MarshalBinary concatenates the V2 binary encoding of each macaroon in
// the slice, in order. It is the wire form used when a bundle travels as
// a single opaque blob (an HTTP header or cookie value, say) rather than
// as separate fields.
func (s Slice) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	for _, m := range s {
		buf.Write(serializeV2Bytes(m))
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary splits data into consecutive V2-encoded macaroons and
// replaces s with the result. Each macaroon in the stream is
// self-delimiting (its signature field ends it), so no outer framing is
// needed.
func (s *Slice) UnmarshalBinary(data []byte) error {
	var out Slice
	for len(data) > 0 {
		m, n, err := decodeV2Prefix(data)
		if err != nil {
			return err
		}
		out = append(out, m)
		data = data[n:]
	}
	*s = out
	return nil
}

// decodeV2Prefix decodes one V2-encoded macaroon from the start of data
// and reports how many bytes it consumed.
func decodeV2Prefix(data []byte) (*Macaroon, int, error) {
	r := &v2Reader{data: data}
	m, err := deserializeV2FromReader(r)
	if err != nil {
		return nil, 0, err
	}
	return m, len(data) - len(r.data), nil
}
