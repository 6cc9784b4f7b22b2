package payload

import (
	"encoding/binary"
	"math"
)

// DensityGridSize is the side length of every density raster tile (§4.3).
const DensityGridSize = 256

// DensityTileBytes is the serialized size of one tile: 256*256 little-endian u16.
const DensityTileBytes = DensityGridSize * DensityGridSize * 2

// TileRect is one zoom-level tile's bounds in the projected (UTM) CRS.
type TileRect struct {
	Z, Tx, Ty              int
	MinX, MinY, MaxX, MaxY float64
}

// TileGrid computes the 2^Z x 2^Z tiles covering a projected bounding box
// at zoom level z, in tx-then-ty order — the order tiles are concatenated
// into DENS{code}1.SDL (§4.3).
func TileGrid(minX, minY, maxX, maxY float64, z int) []TileRect {
	n := 1 << uint(z)
	width := (maxX - minX) / float64(n)
	height := (maxY - minY) / float64(n)
	tiles := make([]TileRect, 0, n*n)
	for tx := 0; tx < n; tx++ {
		for ty := 0; ty < n; ty++ {
			tiles = append(tiles, TileRect{
				Z: z, Tx: tx, Ty: ty,
				MinX: minX + float64(tx)*width,
				MinY: minY + float64(ty)*height,
				MaxX: minX + float64(tx+1)*width,
				MaxY: minY + float64(ty+1)*height,
			})
		}
	}
	return tiles
}

// clipSegmentToRect clips a segment (p0,p1) to an axis-aligned rectangle
// using the Liang-Barsky algorithm, returning the clipped endpoints and
// whether any part of the segment survives.
func clipSegmentToRect(x0, y0, x1, y1, minX, minY, maxX, maxY float64) (cx0, cy0, cx1, cy1 float64, ok bool) {
	dx := x1 - x0
	dy := y1 - y0
	tMin, tMax := 0.0, 1.0

	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		t := q / p
		if p < 0 {
			if t > tMax {
				return false
			}
			if t > tMin {
				tMin = t
			}
		} else {
			if t < tMin {
				return false
			}
			if t < tMax {
				tMax = t
			}
		}
		return true
	}

	if !clip(-dx, x0-minX) || !clip(dx, maxX-x0) || !clip(-dy, y0-minY) || !clip(dy, maxY-y0) {
		return 0, 0, 0, 0, false
	}
	if tMin > tMax {
		return 0, 0, 0, 0, false
	}
	return x0 + tMin*dx, y0 + tMin*dy, x0 + tMax*dx, y0 + tMax*dy, true
}

// RasterizeTile accumulates road length into a 256x256 grid of meter
// contributions. lines holds road line-strings already reprojected into the
// same CRS as the tile rect, in meters.
//
// Each clipped piece is sub-sampled into segments no longer than
// min(dx,dy)/2; the midpoint of each sub-segment contributes its length to
// the covering cell (§4.3).
func RasterizeTile(lines [][][2]float64, t TileRect) [DensityGridSize * DensityGridSize]float64 {
	var grid [DensityGridSize * DensityGridSize]float64

	dx := (t.MaxX - t.MinX) / DensityGridSize
	dy := (t.MaxY - t.MinY) / DensityGridSize
	if dx <= 0 || dy <= 0 {
		return grid
	}
	maxStep := math.Min(dx, dy) / 2
	if maxStep <= 0 {
		return grid
	}

	for _, line := range lines {
		for i := 0; i+1 < len(line); i++ {
			x0, y0 := line[i][0], line[i][1]
			x1, y1 := line[i+1][0], line[i+1][1]
			cx0, cy0, cx1, cy1, ok := clipSegmentToRect(x0, y0, x1, y1, t.MinX, t.MinY, t.MaxX, t.MaxY)
			if !ok {
				continue
			}
			segLen := math.Hypot(cx1-cx0, cy1-cy0)
			if segLen == 0 {
				continue
			}
			steps := int(math.Ceil(segLen / maxStep))
			if steps < 1 {
				steps = 1
			}
			subLen := segLen / float64(steps)
			for s := 0; s < steps; s++ {
				f0 := float64(s) / float64(steps)
				f1 := float64(s+1) / float64(steps)
				midX := cx0 + (f0+f1)/2*(cx1-cx0)
				midY := cy0 + (f0+f1)/2*(cy1-cy0)
				cellX := int((midX - t.MinX) / dx)
				cellY := int((midY - t.MinY) / dy)
				if cellX < 0 {
					cellX = 0
				}
				if cellX >= DensityGridSize {
					cellX = DensityGridSize - 1
				}
				if cellY < 0 {
					cellY = 0
				}
				if cellY >= DensityGridSize {
					cellY = DensityGridSize - 1
				}
				grid[cellY*DensityGridSize+cellX] += subLen
			}
		}
	}
	return grid
}

// NormalizeDensityTile scales a raw accumulator grid to u16 by its own
// maximum (scale = 65535/max if max>0, else 0), per §4.3.
func NormalizeDensityTile(grid [DensityGridSize * DensityGridSize]float64) [DensityGridSize * DensityGridSize]uint16 {
	var out [DensityGridSize * DensityGridSize]uint16
	max := 0.0
	for _, v := range grid {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		return out
	}
	scale := 65535.0 / max
	for i, v := range grid {
		out[i] = uint16(math.Round(v * scale))
	}
	return out
}

// SerializeDensityTile packs a normalized grid as little-endian u16,
// row-major, 131072 bytes (§4.3).
func SerializeDensityTile(cells [DensityGridSize * DensityGridSize]uint16) []byte {
	out := make([]byte, DensityTileBytes)
	for i, v := range cells {
		binary.LittleEndian.PutUint16(out[i*2:i*2+2], v)
	}
	return out
}

// ContinentDiscCode maps a continent name to its disc code per §4.3's
// "small lookup map, falling back to the first two letters of the continent
// name" rule.
var ContinentDiscCode = map[string]string{
	"europe":        "EU",
	"north-america": "NA",
	"south-america": "SA",
	"asia":          "AS",
	"africa":        "AF",
	"australia":     "AU",
	"oceania":       "OC",
	"antarctica":    "AN",
}

// EncodeDensityCountPayload encodes DENS{code}0.SDL's single parcel: a u32
// big-endian tile count.
func EncodeDensityCountPayload(tileCount int) []byte {
	out := make([]byte, 4)
	binary.BigEndian.PutUint32(out, uint32(tileCount))
	return out
}

// DiscCodeForContinent resolves a continent name to its disc code.
func DiscCodeForContinent(continent string) string {
	if code, ok := ContinentDiscCode[continent]; ok {
		return code
	}
	if len(continent) >= 2 {
		return continent[:2]
	}
	return continent
}
