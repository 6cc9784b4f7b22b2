package sdal

import (
	"github.com/paulmach/orb"

	"github.com/KickingAnimal/SDAL-Builder/internal/geoext"
)

// Region is one build unit: a slug (e.g. "europe/cyprus"), its destination
// SDL file name, naming metadata for the global index, and the road/POI
// features a geo-extractor already pulled for it.
type Region struct {
	Slug      string
	DBID      uint32
	FileName  string
	Continent string

	NativeName   string
	Translations map[string]string

	Roads []geoext.RoadFeature
	POIs  []geoext.POI

	// Bounds is this region's NTU bounding rectangle, reused verbatim as
	// the routing parcel's bounding/tile/ancestor rects.
	Bounds [4]int32 // min_lon, min_lat, max_lon, max_lat
}

func (r Region) roadLines() []orb.LineString {
	lines := make([]orb.LineString, 0, len(r.Roads))
	for _, road := range r.Roads {
		switch g := road.Geometry.(type) {
		case orb.LineString:
			lines = append(lines, g)
		case orb.MultiLineString:
			lines = append(lines, g...)
		}
	}
	return lines
}
