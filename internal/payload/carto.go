package payload

import (
	"encoding/binary"
	"math"

	"github.com/KickingAnimal/SDAL-Builder/internal/numeric"
)

// CartoChunkSize is the maximum number of way records per cartography
// parcel (§4.3).
const CartoChunkSize = 200

// CartoRecord is a single way's geometry, coordinates already in NTU.
type CartoRecord struct {
	WayID  uint32
	Coords [][2]int32 // [lon_ntu, lat_ntu] per vertex, in order
}

// ChunkCartoRecords splits records into CartoChunkSize-sized groups; the
// record count of every group fits in a u16 by construction.
func ChunkCartoRecords(records []CartoRecord) [][]CartoRecord {
	if len(records) == 0 {
		return nil
	}
	var chunks [][]CartoRecord
	for start := 0; start < len(records); start += CartoChunkSize {
		end := start + CartoChunkSize
		if end > len(records) {
			end = len(records)
		}
		chunks = append(chunks, records[start:end])
	}
	return chunks
}

// CartoBounds computes the MBR, in NTU, over a set of cartography records.
func CartoBounds(records []CartoRecord) (minLon, minLat, maxLon, maxLat int32) {
	minLon, minLat = math.MaxInt32, math.MaxInt32
	maxLon, maxLat = math.MinInt32, math.MinInt32
	for _, rec := range records {
		for _, c := range rec.Coords {
			if c[0] < minLon {
				minLon = c[0]
			}
			if c[0] > maxLon {
				maxLon = c[0]
			}
			if c[1] < minLat {
				minLat = c[1]
			}
			if c[1] > maxLat {
				maxLat = c[1]
			}
		}
	}
	if len(records) == 0 || minLon > maxLon {
		return 0, 0, 0, 0
	}
	return minLon, minLat, maxLon, maxLat
}

// EncodeCartoPayload encodes one cartography-parcel payload (§4.3):
//
//	i32 min_lon, i32 min_lat, i32 max_lon, i32 max_lat, u16 record_count || records
//	record = u32 way_id, u16 coord_count, coord_count*(i32 lon_ntu, i32 lat_ntu)
func EncodeCartoPayload(records []CartoRecord) []byte {
	minLon, minLat, maxLon, maxLat := CartoBounds(records)

	out := make([]byte, 18)
	binary.BigEndian.PutUint32(out[0:4], uint32(minLon))
	binary.BigEndian.PutUint32(out[4:8], uint32(minLat))
	binary.BigEndian.PutUint32(out[8:12], uint32(maxLon))
	binary.BigEndian.PutUint32(out[12:16], uint32(maxLat))
	binary.BigEndian.PutUint16(out[16:18], uint16(len(records)))

	for _, rec := range records {
		rb := make([]byte, 6)
		binary.BigEndian.PutUint32(rb[0:4], rec.WayID)
		binary.BigEndian.PutUint16(rb[4:6], uint16(len(rec.Coords)))
		out = append(out, rb...)
		for _, c := range rec.Coords {
			cb := make([]byte, 8)
			binary.BigEndian.PutUint32(cb[0:4], uint32(c[0]))
			binary.BigEndian.PutUint32(cb[4:8], uint32(c[1]))
			out = append(out, cb...)
		}
	}
	return out
}

// ToNTUCoords converts a slice of (lon,lat) degree pairs to NTU pairs.
func ToNTUCoords(lonLat [][2]float64) [][2]int32 {
	out := make([][2]int32, len(lonLat))
	for i, p := range lonLat {
		out[i] = [2]int32{numeric.ToNTU(p[0]), numeric.ToNTU(p[1])}
	}
	return out
}
