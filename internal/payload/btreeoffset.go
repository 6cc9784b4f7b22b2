package payload

import "encoding/binary"

// OffsetEntry maps a 32-bit id (way-id or POI index) to a 64-bit byte offset.
type OffsetEntry struct {
	ID     uint32
	Offset uint64
}

// EncodeOffsetPayload encodes the B-tree-offset / POI-index payload (§4.3):
// they share a layout — u32 count, u16 version=1, count*(u32 id, u64 offset).
func EncodeOffsetPayload(entries []OffsetEntry) []byte {
	out := make([]byte, 6+12*len(entries))
	binary.BigEndian.PutUint32(out[0:4], uint32(len(entries)))
	binary.BigEndian.PutUint16(out[4:6], 1)
	for i, e := range entries {
		base := 6 + 12*i
		binary.BigEndian.PutUint32(out[base:base+4], e.ID)
		binary.BigEndian.PutUint64(out[base+4:base+12], e.Offset)
	}
	return out
}
