package sdal

// Parcel descriptor codes distinguishing payload schema within a region
// file (§3, §4.3). These are local symbolic PIDs, not wire constants named
// by the format itself.
const (
	descCarto       uint16 = 1
	descPOINames    uint16 = 2
	descPOIIndex    uint16 = 3
	descKDTree      uint16 = 4
	descBTreeOffset uint16 = 5
	descRouting     uint16 = 6
	descDensity     uint16 = 7
	descPOIGeom     uint16 = 8
)
