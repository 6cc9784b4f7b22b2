// Package geoext declares the external collaborators the SDAL encoding core
// consumes but does not implement (§6): the geo-extractor (OSM/PBF parsing
// and POI extraction), the projection service (UTM reprojection), and the
// image writer (ISO9660 authoring). Geometry types are expressed with
// paulmach/orb, the idiomatic Go representation for this interchange.
package geoext

import "github.com/paulmach/orb"

// RoadFeature is a road line-string yielded by the geo-extractor.
type RoadFeature struct {
	WayID    uint32
	Name     string
	Geometry orb.Geometry // orb.LineString or orb.MultiLineString
}

// POI is a point-of-interest record yielded by the geo-extractor. Index is
// assigned by the caller: POIs form a single dense global sequence shared
// across all input regions (§3).
type POI struct {
	Index int
	Name  string
	Point orb.Point
}

// DefaultPOITagSet is the default OSM tag set extracted as POIs (§6).
var DefaultPOITagSet = []string{
	"amenity", "shop", "tourism", "leisure", "historic", "office", "craft",
	"man_made", "healthcare", "sport", "emergency", "public_transport",
	"railway", "aeroway", "natural",
}

// RoadExtractor loads road line-strings from an OSM region extract.
//
// Implementations live outside this module (the "geo-extractor", §6); the
// core only calls this interface.
type RoadExtractor interface {
	LoadRoads(pbfPath string) ([]RoadFeature, error)
}

// POIExtractor loads point-of-interest records from an OSM region extract,
// filtered to the given tag set. A nil or empty tag set means DefaultPOITagSet.
type POIExtractor interface {
	LoadPOIs(pbfPath string, tagSet []string) ([]POI, error)
}

// Extractor is the full geo-extractor surface (§6).
type Extractor interface {
	RoadExtractor
	POIExtractor
}

// ProjectionService reprojects a geometry collection into the UTM zone
// covering a bounding box (§6). z = floor((center_lon+180)/6) + 1, EPSG =
// 32600+z for the northern hemisphere convention used by density rasterization.
type ProjectionService interface {
	// UTMZone selects the EPSG code for the UTM zone containing bbox's center.
	UTMZone(bbox orb.Bound) (epsg int, err error)

	// Reproject transforms geoms from WGS84 into the given EPSG-coded CRS.
	Reproject(epsg int, geoms []orb.Geometry) ([]orb.Geometry, error)
}

// ImageWriter produces the final ISO9660 disc image from a finished SDL file
// set (§6). Volume identifier and file-naming conventions are the writer's
// responsibility, not the encoding core's.
type ImageWriter interface {
	WriteISO(filePaths []string, outPath string) error
}
