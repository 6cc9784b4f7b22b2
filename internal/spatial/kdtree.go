// Package spatial builds the two in-memory spatial structures the encoder
// needs before serialization (§4.5): a KD-tree over POI points and a
// B+-tree ordered map from way-id to byte offset.
package spatial

import "sort"

// KDPoint is one POI point carried through the KD-tree build.
type KDPoint struct {
	Index int
	Lon   float64
	Lat   float64
}

// BuildKDTree orders points by a standard alternating-axis balanced-median
// split (§4.5). The tree's structure is implicit in the returned order —
// callers serialize it flat (§4.3) and a reader range-scans or rebuilds as
// it prefers.
func BuildKDTree(points []KDPoint) []KDPoint {
	pts := make([]KDPoint, len(points))
	copy(pts, points)
	out := make([]KDPoint, 0, len(pts))
	buildRec(pts, 0, &out)
	return out
}

func buildRec(pts []KDPoint, depth int, out *[]KDPoint) {
	if len(pts) == 0 {
		return
	}
	if len(pts) == 1 {
		*out = append(*out, pts[0])
		return
	}

	axis := depth % 2 // 0 = lon, 1 = lat
	sort.Slice(pts, func(i, j int) bool {
		if axis == 0 {
			return pts[i].Lon < pts[j].Lon
		}
		return pts[i].Lat < pts[j].Lat
	})

	mid := len(pts) / 2
	*out = append(*out, pts[mid])
	buildRec(pts[:mid], depth+1, out)
	buildRec(pts[mid+1:], depth+1, out)
}
