package numeric

import "github.com/KickingAnimal/SDAL-Builder/internal/sdalerr"

// Type1Max is the largest value representable by the Type-1 variable-length
// unsigned integer encoding.
const Type1Max = 1114095

// EncodeType1 encodes n as a Type-1 variable-length unsigned integer.
//
//	n <= 239:     1 byte,  n
//	n <= 4079:    2 bytes, 0xF0|(x>>8)&0x0F, x&0xFF         (x = n-240)
//	n <= 65519:   3 bytes, 0xFF, (x>>8)&0xFF, x&0xFF        (x = n-4080)
//	n <= 1114095: 4 bytes, 0xFF, 0xF0|(x>>16)&0x0F, (x>>8)&0xFF, x&0xFF (x = n-65520)
func EncodeType1(n int) ([]byte, error) {
	switch {
	case n < 0 || n > Type1Max:
		return nil, &sdalerr.OverflowError{Value: int64(n), MaxValue: Type1Max, Codec: "type1"}
	case n <= 239:
		return []byte{byte(n)}, nil
	case n <= 4079:
		x := n - 240
		return []byte{0xF0 | byte((x>>8)&0x0F), byte(x & 0xFF)}, nil
	case n <= 65519:
		x := n - 4080
		return []byte{0xFF, byte((x >> 8) & 0xFF), byte(x & 0xFF)}, nil
	default:
		x := n - 65520
		return []byte{0xFF, 0xF0 | byte((x>>16)&0x0F), byte((x >> 8) & 0xFF), byte(x & 0xFF)}, nil
	}
}

// DecodeType1 decodes a Type-1 variable-length unsigned integer from the
// start of b, returning the value and the number of bytes consumed.
//
// The leading byte alone is enough to tell apart the 1- and 2-byte forms
// (first byte <= 0xEF vs. 0xF0-0xFE); the 3- and 4-byte forms both start
// with 0xFF and are told apart by the second byte (< 0xF0 means 3-byte,
// the 3-byte form's high byte of x never exceeds 239, i.e. 0xEF).
func DecodeType1(b []byte) (int, int, error) {
	if len(b) == 0 {
		return 0, 0, shortRead("type1")
	}
	switch {
	case b[0] <= 0xEF:
		return int(b[0]), 1, nil
	case b[0] <= 0xFE:
		if len(b) < 2 {
			return 0, 0, shortRead("type1")
		}
		x := int(b[0]&0x0F)<<8 | int(b[1])
		return x + 240, 2, nil
	default: // b[0] == 0xFF
		if len(b) < 2 {
			return 0, 0, shortRead("type1")
		}
		if b[1] < 0xF0 {
			if len(b) < 3 {
				return 0, 0, shortRead("type1")
			}
			x := int(b[1])<<8 | int(b[2])
			return x + 4080, 3, nil
		}
		if len(b) < 4 {
			return 0, 0, shortRead("type1")
		}
		x := int(b[1]&0x0F)<<16 | int(b[2])<<8 | int(b[3])
		return x + 65520, 4, nil
	}
}

func shortRead(codec string) error {
	return &sdalerr.OverflowError{Codec: codec, Value: -1, MaxValue: -1}
}
