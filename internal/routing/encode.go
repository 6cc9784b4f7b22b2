package routing

import (
	"encoding/binary"
	"math"

	"github.com/KickingAnimal/SDAL-Builder/internal/numeric"
)

// MaxNodesPerParcel bounds each routing parcel's node partition (§4.6
// "Chunking").
const MaxNodesPerParcel = 1000

// DefaultScaleShift suffices for regional extracts (§4.6 "Scale-shift
// selection").
const DefaultScaleShift = 12

// ntuPoint is a node's position already converted to NavTech units.
type ntuPoint struct{ Lat, Lon int32 }

// ScaleShiftFor returns the smallest shift such that every consecutive
// delta along nodes — the previous node starting at anchor, exactly the
// chain encodeNodesBlock walks — fits a Type-5 value, starting from
// DefaultScaleShift (§4.6 "Scale-shift selection").
func ScaleShiftFor(nodes []ntuPoint, anchor ntuPoint) uint8 {
	shift := uint8(DefaultScaleShift)
	for {
		ok := true
		prev := anchor
		for _, n := range nodes {
			if !fitsType5(int64(n.Lat-prev.Lat)>>shift) || !fitsType5(int64(n.Lon-prev.Lon)>>shift) {
				ok = false
				break
			}
			prev = n
		}
		if ok {
			return shift
		}
		shift++
		if shift > 31 {
			return shift
		}
	}
}

func fitsType5(v int64) bool {
	return v >= -numeric.Type5MaxMagnitude && v <= numeric.Type5MaxMagnitude
}

// dbRect is the 16-byte (min_lon, min_lat, max_lon, max_lat) NTU rectangle
// used throughout the header blocks.
type dbRect struct{ MinLon, MinLat, MaxLon, MaxLat int32 }

func (r dbRect) marshal() []byte {
	buf := make([]byte, 16)
	binary.BigEndian.PutUint32(buf[0:4], uint32(r.MinLon))
	binary.BigEndian.PutUint32(buf[4:8], uint32(r.MinLat))
	binary.BigEndian.PutUint32(buf[8:12], uint32(r.MaxLon))
	binary.BigEndian.PutUint32(buf[12:16], uint32(r.MaxLat))
	return buf
}

// sptlPclHdr builds the 128-byte SptlPclHdr: three equal DBRects (bounding,
// tile, ancestor), a 20-byte zeroed cross-reference header, sixteen zeroed
// u16 KD/B-tree offset slots, then the scale/layer/count fields and 16
// bytes of padding (§4.6).
func sptlPclHdr(rect dbRect, scaleShift uint8, nodeCount, segCount uint32) []byte {
	buf := make([]byte, 128)
	off := 0
	for i := 0; i < 3; i++ {
		copy(buf[off:off+16], rect.marshal())
		off += 16
	}
	off += 20 // cross-reference header, zeros
	off += 32 // sixteen u16 offset slots, zeros
	buf[off] = scaleShift
	buf[off+1] = 1 // layer
	// buf[off+2:off+4] reserved, zero
	binary.BigEndian.PutUint32(buf[off+4:off+8], nodeCount)
	binary.BigEndian.PutUint32(buf[off+8:off+12], segCount)
	return buf
}

// routingParcelHeader0 builds the fixed 32-byte RoutingParcelHeader0
// (§4.6).
func routingParcelHeader0(totalSegs, totalNodes uint32) []byte {
	buf := make([]byte, 32)
	binary.BigEndian.PutUint16(buf[0:2], 0xFFFF) // max_arm_to_arm
	binary.BigEndian.PutUint32(buf[2:6], totalSegs)
	buf[6] = 0xFF // max_segs_per_node
	buf[7] = 0    // flags
	binary.BigEndian.PutUint32(buf[8:12], totalNodes)
	binary.BigEndian.PutUint16(buf[12:14], 0xFFFF) // max_nodes
	binary.BigEndian.PutUint16(buf[14:16], 0xFFFF) // max_segs
	binary.BigEndian.PutUint16(buf[16:18], 1)      // max_tile_layers
	// buf[18:22] reserved, zero
	binary.BigEndian.PutUint16(buf[22:24], 0xFFFF) // max_coord_delta_x
	binary.BigEndian.PutUint16(buf[24:26], 0xFFFF) // max_coord_delta_y
	return buf
}

func blockOffsetArray(nodeBlockOff, segBlockOff uint32) []byte {
	buf := make([]byte, 16)
	binary.BigEndian.PutUint32(buf[0:4], nodeBlockOff)
	binary.BigEndian.PutUint32(buf[4:8], segBlockOff)
	binary.BigEndian.PutUint32(buf[8:12], 0) // conditions
	binary.BigEndian.PutUint32(buf[12:16], 0)
	return buf
}

func blkDesc(blockID uint16, entryCount uint32) []byte {
	buf := make([]byte, 6)
	binary.BigEndian.PutUint16(buf[0:2], blockID)
	binary.BigEndian.PutUint32(buf[2:6], entryCount)
	return buf
}

// partition is one ≤MaxNodesPerParcel-node slice of the graph plus the
// segments whose From endpoint falls in that slice (§4.6: segments are
// assigned to the partition owning their From node, so every segment is
// emitted exactly once across the parcel set).
type partition struct {
	nodes    []Node
	segments []Segment
}

// partitionGraph splits g's nodes into chunks of at most MaxNodesPerParcel
// and assigns each segment to the partition containing its From node.
func partitionGraph(g *Graph) []partition {
	numParts := (len(g.Nodes) + MaxNodesPerParcel - 1) / MaxNodesPerParcel
	if numParts == 0 {
		numParts = 1
	}
	parts := make([]partition, numParts)
	partOf := make([]int, len(g.Nodes))
	for i, n := range g.Nodes {
		p := i / MaxNodesPerParcel
		partOf[i] = p
		parts[p].nodes = append(parts[p].nodes, n)
	}
	for _, seg := range g.Segments {
		p := partOf[seg.From]
		parts[p].segments = append(parts[p].segments, seg)
	}
	return parts
}

// EncodeRoutingParcels converts g to NTU and serializes it into one or more
// routing parcel payloads (§4.6). rect is the region's bounding DBRect in
// NTU, reused verbatim as the tile and ancestor rects.
func EncodeRoutingParcels(g *Graph, rect [4]int32) ([][]byte, error) {
	if len(g.Nodes) == 0 {
		return nil, nil
	}

	ntus := make([]ntuPoint, len(g.Nodes))
	for i, n := range g.Nodes {
		ntus[i] = ntuPoint{Lat: numeric.ToNTU(n.Lat), Lon: numeric.ToNTU(n.Lon)}
	}
	anchor := ntuPoint{Lat: ntus[0].Lat, Lon: ntus[0].Lon}
	parts := partitionGraph(g)

	// One shift for the whole parcel set: the widest any partition's delta
	// chain needs, each chain restarting at the anchor the way its block is
	// encoded.
	scaleShift := uint8(DefaultScaleShift)
	for _, part := range parts {
		chain := make([]ntuPoint, len(part.nodes))
		for i, n := range part.nodes {
			chain[i] = ntus[n.ID]
		}
		if s := ScaleShiftFor(chain, anchor); s > scaleShift {
			scaleShift = s
		}
	}
	dbr := dbRect{MinLon: rect[0], MinLat: rect[1], MaxLon: rect[2], MaxLat: rect[3]}

	out := make([][]byte, 0, len(parts))
	for _, part := range parts {
		nodesBlock, err := encodeNodesBlock(part.nodes, ntus, anchor, scaleShift)
		if err != nil {
			return nil, err
		}
		segsBlock, err := encodeSegmentsBlock(part.segments)
		if err != nil {
			return nil, err
		}

		hdr := sptlPclHdr(dbr, scaleShift, uint32(len(part.nodes)), uint32(len(part.segments)))
		hdr0 := routingParcelHeader0(uint32(len(g.Segments)), uint32(len(g.Nodes)))
		boa := blockOffsetArray(16, uint32(16+len(nodesBlock)))

		payload := make([]byte, 0, 128+32+16+len(nodesBlock)+len(segsBlock))
		payload = append(payload, hdr...)
		payload = append(payload, hdr0...)
		payload = append(payload, boa...)
		payload = append(payload, nodesBlock...)
		payload = append(payload, segsBlock...)
		out = append(out, payload)
	}
	return out, nil
}

// encodeNodesBlock encodes one partition's nodes: a BlkDesc, the anchor NTU
// position, the Type-1 node ids in order, then one continuous bit-packed
// stream of Type-5 (Δlon, Δlat) pairs — each delta scale-shifted and taken
// from the previous node's NTU position, the previous node starting at the
// anchor. The Type-5 stream is flushed once, after the last node, so the
// values are not individually byte-aligned.
func encodeNodesBlock(nodes []Node, ntus []ntuPoint, anchor ntuPoint, scaleShift uint8) ([]byte, error) {
	out := blkDesc(0x0100, uint32(len(nodes)))
	anchorBuf := make([]byte, 8)
	binary.BigEndian.PutUint32(anchorBuf[0:4], uint32(anchor.Lat))
	binary.BigEndian.PutUint32(anchorBuf[4:8], uint32(anchor.Lon))
	out = append(out, anchorBuf...)

	deltas := numeric.NewBitWriter()
	prev := anchor
	for _, n := range nodes {
		cur := ntus[n.ID]
		idBytes, err := numeric.EncodeType1(n.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, idBytes...)

		dLon := int32(int64(cur.Lon-prev.Lon) >> scaleShift)
		dLat := int32(int64(cur.Lat-prev.Lat) >> scaleShift)
		if err := numeric.EncodeType5(deltas, dLon); err != nil {
			return nil, err
		}
		if err := numeric.EncodeType5(deltas, dLat); err != nil {
			return nil, err
		}
		prev = cur
	}
	return append(out, deltas.Flush()...), nil
}

// encodeSegmentsBlock encodes one partition's segments: a BlkDesc, then per
// segment Type-1 seg_id/from/to and a big-endian f32 length (§4.6).
func encodeSegmentsBlock(segs []Segment) ([]byte, error) {
	out := blkDesc(0x0200, uint32(len(segs)))
	for _, s := range segs {
		for _, v := range []int{s.ID, s.From, s.To} {
			b, err := numeric.EncodeType1(v)
			if err != nil {
				return nil, err
			}
			out = append(out, b...)
		}
		lenBuf := make([]byte, 4)
		binary.BigEndian.PutUint32(lenBuf, math.Float32bits(s.LengthM))
		out = append(out, lenBuf...)
	}
	return out, nil
}
