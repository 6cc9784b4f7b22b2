// Package routing builds the node/segment graph for a region's roads and
// serializes it into routing parcels (§4.6).
package routing

import (
	"math"

	"github.com/paulmach/orb"
)

// vertexKey identifies a node by its exact (lon, lat) float pair, matching
// how line-strings share endpoints in the source geometry.
type vertexKey struct {
	Lon, Lat float64
}

// Node is one graph vertex, assigned an ID in insertion order.
type Node struct {
	ID         int
	Lon, Lat   float64
	SegmentIDs []int
}

// Segment connects two nodes with a precomputed length in meters.
type Segment struct {
	ID       int
	From, To int
	LengthM  float32
}

// Graph is the in-memory road network built from a region's line-strings,
// ready for NTU conversion and parcel encoding.
type Graph struct {
	Nodes    []Node
	Segments []Segment
}

// BuildGraph constructs a Graph from a set of road line-strings: each
// distinct vertex becomes a node, and each consecutive vertex pair within a
// line-string becomes a segment appended to both endpoints' SegmentIDs
// (§4.6).
func BuildGraph(lines []orb.LineString) *Graph {
	g := &Graph{}
	index := make(map[vertexKey]int)

	nodeFor := func(pt orb.Point) int {
		key := vertexKey{Lon: pt[0], Lat: pt[1]}
		if id, ok := index[key]; ok {
			return id
		}
		id := len(g.Nodes)
		index[key] = id
		g.Nodes = append(g.Nodes, Node{ID: id, Lon: pt[0], Lat: pt[1]})
		return id
	}

	for _, line := range lines {
		for i := 0; i+1 < len(line); i++ {
			from := nodeFor(line[i])
			to := nodeFor(line[i+1])
			segID := len(g.Segments)
			length := haversineApprox(g.Nodes[from].Lon, g.Nodes[from].Lat, g.Nodes[to].Lon, g.Nodes[to].Lat)
			g.Segments = append(g.Segments, Segment{ID: segID, From: from, To: to, LengthM: length})
			g.Nodes[from].SegmentIDs = append(g.Nodes[from].SegmentIDs, segID)
			g.Nodes[to].SegmentIDs = append(g.Nodes[to].SegmentIDs, segID)
		}
	}
	return g
}

// haversineApprox computes the flat-earth approximate distance between two
// WGS84 points in meters, per the fixed coefficients in §4.6.
func haversineApprox(lon1, lat1, lon2, lat2 float64) float32 {
	meanLat := (lat1 + lat2) / 2 * math.Pi / 180
	dLon := (lon2 - lon1) * 111320 * math.Cos(meanLat)
	dLat := (lat2 - lat1) * 110540
	return float32(math.Sqrt(dLon*dLon + dLat*dLat))
}
