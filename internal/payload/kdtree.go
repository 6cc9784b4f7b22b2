package payload

import (
	"encoding/binary"
	"math"
)

// IDxPclHdrSize is the fixed size of the index-parcel header prefixed to
// the first KD-tree parcel (§4.3): u16 index_id, u16 index_type, u32
// offset, u32 length, i32 min_lat, i32 min_lon, 8 reserved bytes.
const IDxPclHdrSize = 28

// kdNodeSize is the encoded size of one (index, lon_e6, lat_e6) KD node.
const kdNodeSize = 12

// KDNodeChunkSize is the node count per parcel: (65000-28)/12, applied
// uniformly to every chunk (the spec only requires the first chunk to fit
// alongside the header; using the same cap for later chunks keeps chunk
// sizing simple and uniformly well under the ceiling).
const KDNodeChunkSize = (65000 - IDxPclHdrSize) / kdNodeSize

// KDNode is one flattened KD-tree leaf: a POI index and its coordinate in
// 1e6-scaled degrees.
type KDNode struct {
	Index int32
	LonE6 int32
	LatE6 int32
}

// POIToKDNode converts a POI (lon,lat in degrees) to its KD node form.
func POIToKDNode(index int, lon, lat float64) KDNode {
	return KDNode{
		Index: int32(index),
		LonE6: int32(math.Round(lon * 1e6)),
		LatE6: int32(math.Round(lat * 1e6)),
	}
}

// ChunkKDNodes splits nodes into KDNodeChunkSize-sized groups.
func ChunkKDNodes(nodes []KDNode) [][]KDNode {
	if len(nodes) == 0 {
		return [][]KDNode{{}}
	}
	var chunks [][]KDNode
	for start := 0; start < len(nodes); start += KDNodeChunkSize {
		end := start + KDNodeChunkSize
		if end > len(nodes) {
			end = len(nodes)
		}
		chunks = append(chunks, nodes[start:end])
	}
	return chunks
}

// EncodeKDNodeBlock encodes the node block: u32 poi_count || poi_count*(u32
// index, i32 lon_e6, i32 lat_e6).
func EncodeKDNodeBlock(nodes []KDNode) []byte {
	out := make([]byte, 4+kdNodeSize*len(nodes))
	binary.BigEndian.PutUint32(out[0:4], uint32(len(nodes)))
	for i, n := range nodes {
		base := 4 + kdNodeSize*i
		binary.BigEndian.PutUint32(out[base:base+4], uint32(n.Index))
		binary.BigEndian.PutUint32(out[base+4:base+8], uint32(n.LonE6))
		binary.BigEndian.PutUint32(out[base+8:base+12], uint32(n.LatE6))
	}
	return out
}

// EncodeIDxPclHdr encodes the 28-byte index-parcel header for KDTREE.SDL.
func EncodeIDxPclHdr(length uint32, minLatNTU, minLonNTU int32) []byte {
	out := make([]byte, IDxPclHdrSize)
	binary.BigEndian.PutUint16(out[0:2], 1) // index_id
	binary.BigEndian.PutUint16(out[2:4], 1) // index_type
	binary.BigEndian.PutUint32(out[4:8], 0) // offset
	binary.BigEndian.PutUint32(out[8:12], length)
	binary.BigEndian.PutUint32(out[12:16], uint32(minLatNTU))
	binary.BigEndian.PutUint32(out[16:20], uint32(minLonNTU))
	// out[20:28] stays zero (reserved)
	return out
}

// EncodeKDTreeFirstPayload encodes the first KD-tree parcel's payload:
// IDxPclHdr || node block.
func EncodeKDTreeFirstPayload(nodes []KDNode, minLatNTU, minLonNTU int32) []byte {
	block := EncodeKDNodeBlock(nodes)
	hdr := EncodeIDxPclHdr(uint32(len(block)), minLatNTU, minLonNTU)
	return append(hdr, block...)
}
