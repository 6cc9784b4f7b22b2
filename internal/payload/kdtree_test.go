package payload

import (
	"encoding/binary"
	"testing"
)

func TestPOIToKDNode(t *testing.T) {
	n := POIToKDNode(5, 1.234567, -2.345678)
	if n.Index != 5 {
		t.Errorf("Index = %d, want 5", n.Index)
	}
	if n.LonE6 != 1234567 {
		t.Errorf("LonE6 = %d, want 1234567", n.LonE6)
	}
	if n.LatE6 != -2345678 {
		t.Errorf("LatE6 = %d, want -2345678", n.LatE6)
	}
}

func TestChunkKDNodes(t *testing.T) {
	nodes := make([]KDNode, KDNodeChunkSize+1)
	chunks := ChunkKDNodes(nodes)
	if len(chunks) != 2 {
		t.Fatalf("len(chunks) = %d, want 2", len(chunks))
	}
	if len(chunks[0]) != KDNodeChunkSize || len(chunks[1]) != 1 {
		t.Errorf("chunk sizes = %d, %d", len(chunks[0]), len(chunks[1]))
	}
}

func TestChunkKDNodesEmptyStillYieldsOneChunk(t *testing.T) {
	chunks := ChunkKDNodes(nil)
	if len(chunks) != 1 || len(chunks[0]) != 0 {
		t.Errorf("ChunkKDNodes(nil) = %v, want one empty chunk", chunks)
	}
}

func TestEncodeKDNodeBlockRoundTrip(t *testing.T) {
	nodes := []KDNode{{Index: 1, LonE6: 100, LatE6: -200}}
	out := EncodeKDNodeBlock(nodes)
	if len(out) != 4+kdNodeSize {
		t.Fatalf("len = %d, want %d", len(out), 4+kdNodeSize)
	}
	if count := binary.BigEndian.Uint32(out[0:4]); count != 1 {
		t.Errorf("poi_count = %d, want 1", count)
	}
	if idx := binary.BigEndian.Uint32(out[4:8]); idx != 1 {
		t.Errorf("index = %d, want 1", idx)
	}
	if lon := int32(binary.BigEndian.Uint32(out[8:12])); lon != 100 {
		t.Errorf("lon_e6 = %d, want 100", lon)
	}
	if lat := int32(binary.BigEndian.Uint32(out[12:16])); lat != -200 {
		t.Errorf("lat_e6 = %d, want -200", lat)
	}
}

func TestEncodeIDxPclHdrSize(t *testing.T) {
	hdr := EncodeIDxPclHdr(123, -10, 20)
	if len(hdr) != IDxPclHdrSize {
		t.Fatalf("len(hdr) = %d, want %d", len(hdr), IDxPclHdrSize)
	}
	if length := binary.BigEndian.Uint32(hdr[8:12]); length != 123 {
		t.Errorf("length = %d, want 123", length)
	}
}

func TestEncodeKDTreeFirstPayload(t *testing.T) {
	nodes := []KDNode{{Index: 1, LonE6: 1, LatE6: 2}}
	out := EncodeKDTreeFirstPayload(nodes, -1, -2)
	if len(out) != IDxPclHdrSize+4+kdNodeSize {
		t.Fatalf("len = %d, want %d", len(out), IDxPclHdrSize+4+kdNodeSize)
	}
}
