package numeric

import "github.com/KickingAnimal/SDAL-Builder/internal/sdalerr"

// Type4Max is the largest value representable by the Type-4 variable-length
// unsigned integer encoding, used for coordinate deltas in node blocks.
const Type4Max = 61439 + 0xFFFFF

// EncodeType4 encodes n as a Type-4 variable-length unsigned integer.
//
//	n <= 61439: 2 bytes, big-endian n
//	otherwise:  3 bytes, 0xF0|(x>>16)&0x0F, (x>>8)&0xFF, x&0xFF  (x = n-61440)
func EncodeType4(n int) ([]byte, error) {
	if n < 0 || n > Type4Max {
		return nil, &sdalerr.OverflowError{Value: int64(n), MaxValue: Type4Max, Codec: "type4"}
	}
	if n <= 61439 {
		return []byte{byte(n >> 8), byte(n & 0xFF)}, nil
	}
	x := n - 61440
	return []byte{0xF0 | byte((x>>16)&0x0F), byte((x >> 8) & 0xFF), byte(x & 0xFF)}, nil
}

// DecodeType4 decodes a Type-4 variable-length unsigned integer. The 2-byte
// form's leading byte is always <= 0xEF (61439 == 0xEFFF); the 3-byte form's
// leading byte is always >= 0xF0, so the two are told apart by the first byte.
func DecodeType4(b []byte) (int, int, error) {
	if len(b) == 0 {
		return 0, 0, shortRead("type4")
	}
	if b[0] <= 0xEF {
		if len(b) < 2 {
			return 0, 0, shortRead("type4")
		}
		return int(b[0])<<8 | int(b[1]), 2, nil
	}
	if len(b) < 3 {
		return 0, 0, shortRead("type4")
	}
	x := int(b[0]&0x0F)<<16 | int(b[1])<<8 | int(b[2])
	return x + 61440, 3, nil
}
