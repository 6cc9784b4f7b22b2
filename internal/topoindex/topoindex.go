// Package topoindex provides fast spatial queries over the TopologyEntry
// records accumulated while assembling regional files (§4.7, §4.8).
//
// CARTOTOP assembly and its tests need to answer "which parcels intersect
// this rectangle" without a linear scan over every parcel in the build;
// the index stores each entry's NTU rect and supports R-tree range queries
// the same way a chart catalog indexes charts by geographic bounds.
package topoindex

import (
	"github.com/dhconnelly/rtreego"

	"github.com/KickingAnimal/SDAL-Builder/internal/region"
)

// minExtent keeps degenerate (point-like) rects valid: rtreego.NewRect
// rejects zero-length sides.
const minExtent = 1e-6

// entry wraps a region.TopologyEntry so it can satisfy rtreego.Spatial
// without region itself depending on rtreego.
type entry struct {
	region.TopologyEntry
}

// Bounds converts the entry's NTU rect to an rtreego.Rect: a southwest
// corner point plus non-negative (width, height) lengths.
func (e entry) Bounds() rtreego.Rect {
	point := rtreego.Point{float64(e.Rect.MinLon), float64(e.Rect.MinLat)}
	lengths := []float64{
		maxf(float64(e.Rect.MaxLon-e.Rect.MinLon), minExtent),
		maxf(float64(e.Rect.MaxLat-e.Rect.MinLat), minExtent),
	}
	rect, _ := rtreego.NewRect(point, lengths)
	return rect
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Index is an in-memory spatial index over TopologyEntry rectangles.
type Index struct {
	entries []region.TopologyEntry
	rtree   *rtreego.Rtree
}

// Build constructs an Index over the given entries.
func Build(entries []region.TopologyEntry) *Index {
	rt := rtreego.NewTree(2, 25, 50)
	for _, e := range entries {
		rt.Insert(entry{e})
	}
	return &Index{entries: entries, rtree: rt}
}

// Query returns every TopologyEntry whose rect intersects rect.
func (idx *Index) Query(rect region.Rect) []region.TopologyEntry {
	point := rtreego.Point{float64(rect.MinLon), float64(rect.MinLat)}
	lengths := []float64{
		maxf(float64(rect.MaxLon-rect.MinLon), minExtent),
		maxf(float64(rect.MaxLat-rect.MinLat), minExtent),
	}
	queryRect, err := rtreego.NewRect(point, lengths)
	if err != nil {
		return nil
	}

	hits := idx.rtree.SearchIntersect(queryRect)
	out := make([]region.TopologyEntry, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.(entry).TopologyEntry)
	}
	return out
}

// Count returns the number of indexed entries.
func (idx *Index) Count() int {
	return len(idx.entries)
}

// All returns every indexed entry, in insertion order.
func (idx *Index) All() []region.TopologyEntry {
	return idx.entries
}
