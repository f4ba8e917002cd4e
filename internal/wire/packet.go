package wire

import "fmt"

// V1 packets are laid out as: four ASCII hex digits giving the total packet
// size (including the header itself), the field name, a single space, the
// value bytes, and a trailing newline.

const (
	headerLenV1  = 4
	maxPacketLen = 0xffff
)

var hexDigits = []byte("0123456789abcdef")

// AppendPacketV1 appends a V1 packet with the given field name and value to
// buf, returning the extended slice.
func AppendPacketV1(buf []byte, field string, value []byte) ([]byte, error) {
	size := headerLenV1 + len(field) + 1 + len(value) + 1
	if size > maxPacketLen {
		return nil, fmt.Errorf("wire: field %q is too big for a v1 packet", field)
	}
	buf = appendSizeV1(buf, size)
	buf = append(buf, field...)
	buf = append(buf, ' ')
	buf = append(buf, value...)
	buf = append(buf, '\n')
	return buf, nil
}

func appendSizeV1(buf []byte, size int) []byte {
	return append(buf,
		hexDigits[(size>>12)&0xf],
		hexDigits[(size>>8)&0xf],
		hexDigits[(size>>4)&0xf],
		hexDigits[size&0xf],
	)
}

// PacketV1 is one decoded V1 packet: a field name and its value, stripped
// of the header and trailing newline.
type PacketV1 struct {
	Field string
	Value []byte
}

// ParsePacketsV1 decodes the entire packet stream in data.
func ParsePacketsV1(data []byte) ([]PacketV1, error) {
	var packets []PacketV1
	for len(data) > 0 {
		if len(data) < headerLenV1+2 {
			return nil, fmt.Errorf("wire: packet too short")
		}
		size, ok := parseSizeV1(data)
		if !ok {
			return nil, fmt.Errorf("wire: cannot parse packet size")
		}
		if size > len(data) || size < headerLenV1+2 {
			return nil, fmt.Errorf("wire: invalid packet size")
		}
		body := data[headerLenV1 : size-1]
		if data[size-1] != '\n' {
			return nil, fmt.Errorf("wire: packet missing trailing newline")
		}
		i := indexByte(body, ' ')
		if i <= 0 {
			return nil, fmt.Errorf("wire: cannot find field/value separator")
		}
		packets = append(packets, PacketV1{
			Field: string(body[:i]),
			Value: append([]byte(nil), body[i+1:]...),
		})
		data = data[size:]
	}
	return packets, nil
}

func indexByte(b []byte, c byte) int {
	for i, x := range b {
		if x == c {
			return i
		}
	}
	return -1
}

func parseSizeV1(data []byte) (int, bool) {
	d0, ok0 := asciiHex(data[0])
	d1, ok1 := asciiHex(data[1])
	d2, ok2 := asciiHex(data[2])
	d3, ok3 := asciiHex(data[3])
	return d0<<12 | d1<<8 | d2<<4 | d3, ok0 && ok1 && ok2 && ok3
}

func asciiHex(b byte) (int, bool) {
	switch {
	case b >= '0' && b <= '9':
		return int(b) - '0', true
	case b >= 'a' && b <= 'f':
		return int(b) - 'a' + 0xa, true
	case b >= 'A' && b <= 'F':
		return int(b) - 'A' + 0xa, true
	}
	return 0, false
}
