package numeric

import "github.com/KickingAnimal/SDAL-Builder/internal/sdalerr"

// Type-5 values are signed 19-bit coordinate deltas (§4.6): one sign bit
// followed by an 18-bit magnitude, bit-packed into a continuous stream
// shared by the whole node block rather than byte-aligned per value. The
// block's Type-5 stream is flushed once, after the last delta.

// Type5Bits is the fixed width of one Type-5 value.
const Type5Bits = 19

// Type5MaxMagnitude bounds the 18-bit magnitude field.
const Type5MaxMagnitude = 1<<18 - 1

// EncodeType5 appends v to w as a sign bit plus 18-bit magnitude.
func EncodeType5(w *BitWriter, v int32) error {
	if v < -Type5MaxMagnitude || v > Type5MaxMagnitude {
		return &sdalerr.OverflowError{Value: int64(v), MaxValue: Type5MaxMagnitude, Codec: "type5"}
	}
	sign := uint32(0)
	mag := v
	if v < 0 {
		sign = 1
		mag = -v
	}
	w.WriteBits(sign, 1)
	w.WriteBits(uint32(mag), Type5Bits-1)
	return nil
}

// DecodeType5 reads the next sign+magnitude value from r.
func DecodeType5(r *BitReader) (int32, error) {
	sign, err := r.ReadBit()
	if err != nil {
		return 0, err
	}
	mag, err := r.ReadBits(Type5Bits - 1)
	if err != nil {
		return 0, err
	}
	v := int32(mag)
	if sign != 0 {
		v = -v
	}
	return v, nil
}
