package parcel

import "testing"

func TestParcelIDRoundTrip(t *testing.T) {
	tests := []ParcelID{
		{OffsetUnits: 0, SizeIndex: 0, Redundancy: false, External: false},
		{OffsetUnits: 0x00FFFFFF, SizeIndex: 0x3F, Redundancy: true, External: true},
		{OffsetUnits: 1234, SizeIndex: 5, Redundancy: true, External: false},
		{OffsetUnits: 999999, SizeIndex: 0, Redundancy: false, External: true},
	}
	for _, id := range tests {
		v := EncodeParcelID(id)
		got := DecodeParcelID(v)
		if got != id {
			t.Errorf("round trip: encoded %+v, decoded %+v", id, got)
		}
	}
}

func TestEncodeParcelIDBitLayout(t *testing.T) {
	v := EncodeParcelID(ParcelID{OffsetUnits: 1, SizeIndex: 0, Redundancy: true, External: false})
	if v&(1<<30) == 0 {
		t.Error("redundancy bit not set at bit 30")
	}
	if v&(1<<31) != 0 {
		t.Error("external bit unexpectedly set")
	}
}

func TestOffsetUnitsMasking(t *testing.T) {
	id := DecodeParcelID(EncodeParcelID(ParcelID{OffsetUnits: 0xFFFFFFFF}))
	if id.OffsetUnits != 0x00FFFFFF {
		t.Errorf("OffsetUnits = %#x, want masked to 24 bits", id.OffsetUnits)
	}
}
