package global

import (
	"encoding/binary"
	"testing"

	"github.com/KickingAnimal/SDAL-Builder/internal/region"
	"github.com/KickingAnimal/SDAL-Builder/internal/topoindex"
)

func TestEncodeCartotopEmpty(t *testing.T) {
	out := EncodeCartotop(nil)
	if len(out) != 20 {
		t.Fatalf("len(out) = %d, want 20", len(out))
	}
	if count := binary.BigEndian.Uint16(out[16:18]); count != 0 {
		t.Errorf("entry_count = %d, want 0", count)
	}
}

func TestEncodeCartotopComputesMBR(t *testing.T) {
	entries := []region.TopologyEntry{
		{DBID: 1, ParcelID: 100, Rect: region.Rect{MinLon: -10, MinLat: 0, MaxLon: 5, MaxLat: 20}},
		{DBID: 2, ParcelID: 200, Rect: region.Rect{MinLon: 0, MinLat: -5, MaxLon: 30, MaxLat: 10}},
	}
	out := EncodeCartotop(entries)

	minLon := int32(binary.BigEndian.Uint32(out[0:4]))
	minLat := int32(binary.BigEndian.Uint32(out[4:8]))
	maxLon := int32(binary.BigEndian.Uint32(out[8:12]))
	maxLat := int32(binary.BigEndian.Uint32(out[12:16]))
	if minLon != -10 || minLat != -5 || maxLon != 30 || maxLat != 20 {
		t.Errorf("MBR = (%d,%d,%d,%d), want (-10,-5,30,20)", minLon, minLat, maxLon, maxLat)
	}

	count := binary.BigEndian.Uint16(out[16:18])
	if count != 2 {
		t.Fatalf("entry_count = %d, want 2", count)
	}

	if len(out) != 20+2*28 {
		t.Fatalf("len(out) = %d, want %d", len(out), 20+56)
	}
	firstRecDBID := binary.BigEndian.Uint16(out[20+16 : 20+18])
	if firstRecDBID != 1 {
		t.Errorf("first record db_id = %d, want 1", firstRecDBID)
	}
}

// Every entry the spatial index finds inside the global MBR must appear as
// a record in the serialized payload.
func TestEncodeCartotopCoversAllIndexedEntries(t *testing.T) {
	entries := []region.TopologyEntry{
		{DBID: 1, ParcelID: 10, Rect: region.Rect{MinLon: 0, MinLat: 0, MaxLon: 10, MaxLat: 10}},
		{DBID: 2, ParcelID: 20, Rect: region.Rect{MinLon: 20, MinLat: 20, MaxLon: 40, MaxLat: 40}},
		{DBID: 3, ParcelID: 30, Rect: region.Rect{MinLon: -5, MinLat: -5, MaxLon: 5, MaxLat: 5}},
	}
	idx := topoindex.Build(entries)
	out := EncodeCartotop(idx.All())

	hits := idx.Query(region.Rect{MinLon: -5, MinLat: -5, MaxLon: 40, MaxLat: 40})
	if len(hits) != len(entries) {
		t.Fatalf("Query over the global MBR returned %d entries, want %d", len(hits), len(entries))
	}

	decoded := make(map[uint16]bool)
	count := int(binary.BigEndian.Uint16(out[16:18]))
	for i := 0; i < count; i++ {
		rec := out[20+i*28:]
		decoded[binary.BigEndian.Uint16(rec[16:18])] = true
	}
	for _, h := range hits {
		if !decoded[uint16(h.DBID)] {
			t.Errorf("indexed entry db_id=%d missing from CARTOTOP payload", h.DBID)
		}
	}
}
