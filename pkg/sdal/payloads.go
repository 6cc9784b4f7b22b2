package sdal

import (
	"github.com/paulmach/orb"

	"github.com/KickingAnimal/SDAL-Builder/internal/parcel"
	"github.com/KickingAnimal/SDAL-Builder/internal/payload"
	"github.com/KickingAnimal/SDAL-Builder/internal/region"
	"github.com/KickingAnimal/SDAL-Builder/internal/routing"
	"github.com/KickingAnimal/SDAL-Builder/internal/spatial"
)

func rectOf(r Region) region.Rect {
	return region.Rect{MinLon: r.Bounds[0], MinLat: r.Bounds[1], MaxLon: r.Bounds[2], MaxLat: r.Bounds[3]}
}

// cartoBuilders produces one compressed cartography parcel per
// CartoChunkSize-sized group of road way geometries (§4.3).
func cartoBuilders(r Region) []region.ParcelBuilder {
	var records []payload.CartoRecord
	for _, road := range r.Roads {
		var pts []orb.Point
		switch g := road.Geometry.(type) {
		case orb.LineString:
			pts = g
		case orb.MultiLineString:
			for _, ls := range g {
				pts = append(pts, ls...)
			}
		default:
			continue
		}
		lonLat := make([][2]float64, len(pts))
		for i, p := range pts {
			lonLat[i] = [2]float64{p[0], p[1]}
		}
		records = append(records, payload.CartoRecord{WayID: road.WayID, Coords: payload.ToNTUCoords(lonLat)})
	}

	var builders []region.ParcelBuilder
	for _, chunk := range payload.ChunkCartoRecords(records) {
		chunk := chunk
		minLon, minLat, maxLon, maxLat := payload.CartoBounds(chunk)
		builders = append(builders, region.ParcelBuilder{
			Desc:         descCarto,
			CompressType: parcel.CompressSZIP,
			Rect:         region.Rect{MinLon: minLon, MinLat: minLat, MaxLon: maxLon, MaxLat: maxLat},
			LayerType:    1,
			Build: func(offsetUnits uint32) ([]byte, error) {
				return payload.EncodeCartoPayload(chunk), nil
			},
		})
	}
	return builders
}

// btreeOffsetBuilders flattens an in-memory B+-tree ordered map from way-id
// to the way's cumulative byte position within its concatenated coordinate
// stream, then encodes the single offset parcel (§4.3, §4.5).
func btreeOffsetBuilders(r Region) []region.ParcelBuilder {
	bt := spatial.NewBTree()
	var cursor uint64
	for _, road := range r.Roads {
		bt.Insert(road.WayID, cursor)
		switch g := road.Geometry.(type) {
		case orb.LineString:
			cursor += uint64(len(g)) * 8
		case orb.MultiLineString:
			for _, ls := range g {
				cursor += uint64(len(ls)) * 8
			}
		}
	}
	pairs := bt.Pairs()
	entries := make([]payload.OffsetEntry, len(pairs))
	for i, p := range pairs {
		entries[i] = payload.OffsetEntry{ID: p.ID, Offset: p.Offset}
	}

	rect := rectOf(r)
	return []region.ParcelBuilder{{
		Desc:      descBTreeOffset,
		Rect:      rect,
		LayerType: 1,
		Build: func(offsetUnits uint32) ([]byte, error) {
			return payload.EncodeOffsetPayload(entries), nil
		},
	}}
}

// routingBuilders builds the road graph and produces its routing parcels
// (§4.6).
func routingBuilders(r Region) ([]region.ParcelBuilder, error) {
	g := routing.BuildGraph(r.roadLines())
	payloads, err := routing.EncodeRoutingParcels(g, r.Bounds)
	if err != nil {
		return nil, err
	}

	rect := rectOf(r)
	builders := make([]region.ParcelBuilder, len(payloads))
	for i, p := range payloads {
		p := p
		builders[i] = region.ParcelBuilder{
			Desc:      descRouting,
			Rect:      rect,
			LayerType: 3,
			Build: func(offsetUnits uint32) ([]byte, error) {
				return p, nil
			},
		}
	}
	return builders, nil
}
