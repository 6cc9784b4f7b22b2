package sdal

import (
	"os"
	"path/filepath"

	"github.com/paulmach/orb"

	"github.com/KickingAnimal/SDAL-Builder/internal/numeric"
	"github.com/KickingAnimal/SDAL-Builder/internal/payload"
	"github.com/KickingAnimal/SDAL-Builder/internal/sdalerr"
)

// densityZoomLevels is the fixed zoom pyramid every region is rasterized at
// (§4.3): 1 + 4 + 16 + 64 tiles per region.
var densityZoomLevels = []int{0, 1, 2, 3}

// writeDensityFiles rasterizes every region's road network into the shared
// DENS{code}0/1.SDL pair (§4.3): DENS{code}1.SDL is the raw tile data for
// all regions concatenated in region, zoom, tx, ty order; DENS{code}0.SDL
// is a single parcel carrying the total tile count. The disc code derives
// from the first region's continent.
//
// Tiles are rasterized, serialized and dropped one at a time (§5: peak
// memory stays at one tile), streaming straight into the DENS1 file.
func (b *Builder) writeDensityFiles(regions []Region) ([]string, []string, error) {
	code := payload.DiscCodeForContinent(regions[0].Continent)
	dens1Name := "DENS" + code + "1.SDL"
	dens0Name := "DENS" + code + "0.SDL"
	dens1Path := filepath.Join(b.opts.WorkDir, dens1Name)
	dens0Path := filepath.Join(b.opts.WorkDir, dens0Name)

	out, err := os.Create(dens1Path)
	if err != nil {
		return nil, nil, &sdalerr.IOError{Op: "create " + dens1Path, Err: err}
	}
	defer out.Close()

	tileCount := 0
	for _, r := range regions {
		lines, minX, minY, maxX, maxY, err := b.projectRegion(r)
		if err != nil {
			return nil, nil, err
		}
		for _, z := range densityZoomLevels {
			for _, tile := range payload.TileGrid(minX, minY, maxX, maxY, z) {
				grid := payload.RasterizeTile(lines, tile)
				cells := payload.NormalizeDensityTile(grid)
				if _, err := out.Write(payload.SerializeDensityTile(cells)); err != nil {
					return nil, nil, &sdalerr.IOError{Op: "write " + dens1Path, Err: err}
				}
				tileCount++
			}
		}
	}
	if err := out.Close(); err != nil {
		return nil, nil, &sdalerr.IOError{Op: "close " + dens1Path, Err: err}
	}

	countFile, err := encodeParcelFile([]globalParcel{{desc: descDensity, payload: payload.EncodeDensityCountPayload(tileCount)}})
	if err != nil {
		return nil, nil, err
	}
	if err := writeFile(dens0Path, countFile); err != nil {
		return nil, nil, err
	}

	return []string{dens0Path, dens1Path}, []string{dens0Name, dens1Name}, nil
}

// projectRegion reprojects a region's road line-strings and bounding box
// into the UTM zone covering the region's centroid (§6), returning the
// projected lines and bounding rectangle in meters.
func (b *Builder) projectRegion(r Region) (lines [][][2]float64, minX, minY, maxX, maxY float64, err error) {
	bound := orb.Bound{
		Min: orb.Point{numeric.FromNTU(r.Bounds[0]), numeric.FromNTU(r.Bounds[1])},
		Max: orb.Point{numeric.FromNTU(r.Bounds[2]), numeric.FromNTU(r.Bounds[3])},
	}
	epsg, err := b.opts.Projection.UTMZone(bound)
	if err != nil {
		return nil, 0, 0, 0, 0, &sdalerr.ExtractorError{Region: r.Slug, Err: err}
	}

	roadLines := r.roadLines()
	geoms := make([]orb.Geometry, 0, len(roadLines)+2)
	geoms = append(geoms, bound.Min, bound.Max)
	for _, ls := range roadLines {
		geoms = append(geoms, ls)
	}
	projected, err := b.opts.Projection.Reproject(epsg, geoms)
	if err != nil {
		return nil, 0, 0, 0, 0, &sdalerr.ExtractorError{Region: r.Slug, Err: err}
	}
	if len(projected) != len(geoms) {
		return nil, 0, 0, 0, 0, &sdalerr.ExtractorError{Region: r.Slug, Err: errProjectionCount{}}
	}

	min, okMin := projected[0].(orb.Point)
	max, okMax := projected[1].(orb.Point)
	if !okMin || !okMax {
		return nil, 0, 0, 0, 0, &sdalerr.ExtractorError{Region: r.Slug, Err: errProjectionCount{}}
	}

	lines = make([][][2]float64, 0, len(projected)-2)
	for _, g := range projected[2:] {
		ls, ok := g.(orb.LineString)
		if !ok {
			continue
		}
		pts := make([][2]float64, len(ls))
		for i, p := range ls {
			pts[i] = [2]float64{p[0], p[1]}
		}
		lines = append(lines, pts)
	}
	return lines, min[0], min[1], max[0], max[1], nil
}

type errProjectionCount struct{}

func (errProjectionCount) Error() string {
	return "projection service returned a mismatched geometry collection"
}
