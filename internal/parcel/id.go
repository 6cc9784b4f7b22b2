// Package parcel implements the 20-byte SDAL parcel container: header
// encode/decode and the 32-bit composite ParcelID (§4.2).
package parcel

// ParcelID is the decoded form of the 32-bit composite ParcelID (§3):
// bits 0-23 offset_units, 24-29 size_index, 30 redundancy flag, 31 external flag.
type ParcelID struct {
	OffsetUnits uint32
	SizeIndex   uint8
	Redundancy  bool
	External    bool
}

// EncodeParcelID packs a ParcelID into its 32-bit wire form.
func EncodeParcelID(id ParcelID) uint32 {
	v := id.OffsetUnits & 0x00FFFFFF
	v |= uint32(id.SizeIndex&0x3F) << 24
	if id.Redundancy {
		v |= 1 << 30
	}
	if id.External {
		v |= 1 << 31
	}
	return v
}

// DecodeParcelID unpacks the 32-bit composite ParcelID per §3's bit layout.
func DecodeParcelID(v uint32) ParcelID {
	return ParcelID{
		OffsetUnits: v & 0x00FFFFFF,
		SizeIndex:   uint8((v >> 24) & 0x3F),
		Redundancy:  v&(1<<30) != 0,
		External:    v&(1<<31) != 0,
	}
}
