// Package global assembles the global-index SDL files that sit above the
// per-region files: CARTOTOP.SDL, REGION.SDL/REGIONS.SDL, INIT.SDL and
// MTOC.SDL (§4.8).
package global

import (
	"encoding/binary"

	"github.com/KickingAnimal/SDAL-Builder/internal/region"
)

// EncodeCartotop serializes the accumulated topology vector into the single
// CARTOTOP.SDL parcel payload (§4.8). Empty input yields an empty-MBR,
// zero-count payload rather than an error — an empty build is valid.
func EncodeCartotop(entries []region.TopologyEntry) []byte {
	mbr := region.Rect{}
	if len(entries) > 0 {
		mbr = entries[0].Rect
		for _, e := range entries[1:] {
			if e.Rect.MinLon < mbr.MinLon {
				mbr.MinLon = e.Rect.MinLon
			}
			if e.Rect.MinLat < mbr.MinLat {
				mbr.MinLat = e.Rect.MinLat
			}
			if e.Rect.MaxLon > mbr.MaxLon {
				mbr.MaxLon = e.Rect.MaxLon
			}
			if e.Rect.MaxLat > mbr.MaxLat {
				mbr.MaxLat = e.Rect.MaxLat
			}
		}
	}

	// The header is the 18 bytes named in §4.8 plus 2 bytes of reserved
	// padding so the following 28-byte entry records start 4-byte aligned.
	out := make([]byte, 20)
	binary.BigEndian.PutUint32(out[0:4], uint32(mbr.MinLon))
	binary.BigEndian.PutUint32(out[4:8], uint32(mbr.MinLat))
	binary.BigEndian.PutUint32(out[8:12], uint32(mbr.MaxLon))
	binary.BigEndian.PutUint32(out[12:16], uint32(mbr.MaxLat))
	binary.BigEndian.PutUint16(out[16:18], uint16(len(entries)))

	for _, e := range entries {
		rec := make([]byte, 28)
		binary.BigEndian.PutUint32(rec[0:4], uint32(e.Rect.MinLon))
		binary.BigEndian.PutUint32(rec[4:8], uint32(e.Rect.MinLat))
		binary.BigEndian.PutUint32(rec[8:12], uint32(e.Rect.MaxLon))
		binary.BigEndian.PutUint32(rec[12:16], uint32(e.Rect.MaxLat))
		binary.BigEndian.PutUint16(rec[16:18], uint16(e.DBID))
		binary.BigEndian.PutUint16(rec[18:20], uint16(e.ParcelID&0xFFFF))
		binary.BigEndian.PutUint16(rec[20:22], e.LayerType)
		binary.BigEndian.PutUint16(rec[22:24], e.ScaleMin)
		binary.BigEndian.PutUint16(rec[24:26], e.ScaleMax)
		// rec[26:28] reserved, zero
		out = append(out, rec...)
	}
	return out
}
