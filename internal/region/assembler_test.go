package region

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KickingAnimal/SDAL-Builder/internal/parcel"
)

func TestAssembleRegionFileSDALMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "0001.SDL")

	var topology []TopologyEntry
	builders := []ParcelBuilder{
		{
			Desc: 1, Type: 1, Region: 0,
			CompressType: parcel.CompressNone,
			Rect:         Rect{MinLon: 0, MinLat: 0, MaxLon: 10, MaxLat: 10},
			Build: func(offsetUnits uint32) ([]byte, error) {
				return []byte{1, 2, 3, 4}, nil
			},
		},
		{
			Desc: 2, Type: 1, Region: 0,
			CompressType: parcel.CompressSZIP,
			Rect:         Rect{MinLon: 5, MinLat: 5, MaxLon: 15, MaxLat: 15},
			Build: func(offsetUnits uint32) ([]byte, error) {
				return []byte("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"), nil
			},
		},
	}

	if err := AssembleRegionFile(path, ModeSDAL, 7, "0001.SDL", builders, &topology); err != nil {
		t.Fatalf("AssembleRegionFile: %v", err)
	}

	if len(topology) != 2 {
		t.Fatalf("len(topology) = %d, want 2", len(topology))
	}
	for i, e := range topology {
		if e.DBID != 7 || e.FileName != "0001.SDL" {
			t.Errorf("topology[%d] = %+v, unexpected DBID/FileName", i, e)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(data) < RgnHdrSize {
		t.Fatalf("file too short to contain RgnHdr: %d bytes", len(data))
	}

	firstParcelOffset := int(topology[0].OffsetUnits) * parcel.UnitSize
	hdr, err := parcel.UnmarshalHeader(data[firstParcelOffset:])
	if err != nil {
		t.Fatalf("UnmarshalHeader at first parcel: %v", err)
	}
	if hdr.Desc != 1 {
		t.Errorf("first parcel Desc = %d, want 1", hdr.Desc)
	}
}

func TestAssembleRegionFileOEMModeHasNoHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "0001.SDL")

	var topology []TopologyEntry
	builders := []ParcelBuilder{
		{
			Desc: 1, Type: 1,
			Build: func(offsetUnits uint32) ([]byte, error) { return []byte{9, 9}, nil },
		},
	}
	if err := AssembleRegionFile(path, ModeOEM, 1, "0001.SDL", builders, &topology); err != nil {
		t.Fatalf("AssembleRegionFile: %v", err)
	}
	if topology[0].OffsetUnits != 0 {
		t.Errorf("OEM mode's first parcel OffsetUnits = %d, want 0 (no RgnHdr)", topology[0].OffsetUnits)
	}
}

func TestAssembleRegionFileBuildError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.SDL")
	var topology []TopologyEntry
	builders := []ParcelBuilder{
		{
			Desc: 1,
			Build: func(offsetUnits uint32) ([]byte, error) {
				return nil, errBoom{}
			},
		},
	}
	if err := AssembleRegionFile(path, ModeSDAL, 1, "broken.SDL", builders, &topology); err == nil {
		t.Fatal("expected an error when a parcel builder fails")
	}
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }
