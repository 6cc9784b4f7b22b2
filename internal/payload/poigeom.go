package payload

import "encoding/binary"

// poiGeomRecordSize is the encoded size of one POI geometry record:
// u32 index, i32 lon_ntu, i32 lat_ntu.
const poiGeomRecordSize = 12

// POIGeomChunkSize is the record count per POIGEOM parcel, sized so a full
// chunk stays under the 65,000-byte parcel ceiling alongside the u32 count
// prefix.
const POIGeomChunkSize = (65000 - 4) / poiGeomRecordSize

// POIGeomRecord is one POI's on-disc geometry record. Index is the POI's
// position in the global dense sequence (§3); the coordinate is in NTU.
type POIGeomRecord struct {
	Index  uint32
	LonNTU int32
	LatNTU int32
}

// ChunkPOIGeomRecords splits records into POIGeomChunkSize-sized groups.
// An empty input yields a single empty chunk so the caller still emits a
// zero-record POIGEOM parcel.
func ChunkPOIGeomRecords(records []POIGeomRecord) [][]POIGeomRecord {
	if len(records) == 0 {
		return [][]POIGeomRecord{{}}
	}
	var chunks [][]POIGeomRecord
	for start := 0; start < len(records); start += POIGeomChunkSize {
		end := start + POIGeomChunkSize
		if end > len(records) {
			end = len(records)
		}
		chunks = append(chunks, records[start:end])
	}
	return chunks
}

// EncodePOIGeomPayload encodes one POIGEOM parcel payload:
// u32 count || count*(u32 index, i32 lon_ntu, i32 lat_ntu), big-endian.
func EncodePOIGeomPayload(records []POIGeomRecord) []byte {
	out := make([]byte, 4+poiGeomRecordSize*len(records))
	binary.BigEndian.PutUint32(out[0:4], uint32(len(records)))
	for i, r := range records {
		base := 4 + poiGeomRecordSize*i
		binary.BigEndian.PutUint32(out[base:base+4], r.Index)
		binary.BigEndian.PutUint32(out[base+4:base+8], uint32(r.LonNTU))
		binary.BigEndian.PutUint32(out[base+8:base+12], uint32(r.LatNTU))
	}
	return out
}
