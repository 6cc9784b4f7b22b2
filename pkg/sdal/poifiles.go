package sdal

import (
	"path/filepath"

	"github.com/KickingAnimal/SDAL-Builder/internal/geoext"
	"github.com/KickingAnimal/SDAL-Builder/internal/numeric"
	"github.com/KickingAnimal/SDAL-Builder/internal/parcel"
	"github.com/KickingAnimal/SDAL-Builder/internal/payload"
	"github.com/KickingAnimal/SDAL-Builder/internal/spatial"
	"github.com/KickingAnimal/SDAL-Builder/internal/szip"
)

// globalParcel is one parcel destined for a global-index SDL file. Unlike
// region files, global files carry their parcels back to back with no unit
// padding between them.
type globalParcel struct {
	desc     uint16
	compress bool
	payload  []byte
}

// encodeParcelFile lays out a sequence of parcels into one byte stream,
// stamping each ParcelID with its unit-quantized position.
func encodeParcelFile(parcels []globalParcel) ([]byte, error) {
	var out []byte
	for _, p := range parcels {
		payloadBytes := p.payload
		compressType := uint16(parcel.CompressNone)
		if p.compress && len(p.payload) > 0 {
			compressed, err := szip.Encode(p.payload)
			if err != nil {
				return nil, err
			}
			payloadBytes = compressed
			compressType = parcel.CompressSZIP
		}
		encoded, err := parcel.EncodeParcel(parcel.EncodeParcelParams{
			OffsetUnits:     parcel.OffsetUnits(int64(len(out))),
			Desc:            p.desc,
			CompressType:    compressType,
			Payload:         payloadBytes,
			UncompressedLen: len(p.payload),
		})
		if err != nil {
			return nil, err
		}
		out = append(out, encoded...)
	}
	return out, nil
}

// writePOIFiles assembles the global POI file family (§4.8): POINAMES.SDL
// (name strings), POIGEOM.SDL (geometry records), POIINDEX.SDL (index →
// geometry-record offset) and KDTREE.SDL (the global spatial index). POIs
// form a single dense sequence shared across all regions (§3), so these are
// built once from the concatenated set, not per region.
func (b *Builder) writePOIFiles(pois []geoext.POI) ([]string, []string, error) {
	var paths, names []string

	write := func(name string, parcels []globalParcel) error {
		data, err := encodeParcelFile(parcels)
		if err != nil {
			return err
		}
		path := filepath.Join(b.opts.WorkDir, name)
		if err := writeFile(path, data); err != nil {
			return err
		}
		paths = append(paths, path)
		names = append(names, name)
		return nil
	}

	// POINAMES: one strings parcel per chunk; an empty POI set still emits
	// a single header-only parcel so the file always exists.
	var nameParcels []globalParcel
	poiNames := make([]string, len(pois))
	for i, p := range pois {
		poiNames[i] = p.Name
	}
	for _, chunk := range payload.ChunkStrings(poiNames) {
		nameParcels = append(nameParcels, globalParcel{desc: descPOINames, compress: true, payload: payload.EncodeStringsPayload(chunk)})
	}
	if len(nameParcels) == 0 {
		nameParcels = []globalParcel{{desc: descPOINames}}
	}
	if err := write("POINAMES.SDL", nameParcels); err != nil {
		return nil, nil, err
	}

	// POIGEOM: geometry records in global index order; POIINDEX: an offset
	// parcel mapping each POI index to its record's byte position within the
	// concatenated record stream, ordered through the B+-tree (§4.5).
	records := make([]payload.POIGeomRecord, len(pois))
	bt := spatial.NewBTree()
	for i, p := range pois {
		records[i] = payload.POIGeomRecord{
			Index:  uint32(p.Index),
			LonNTU: numeric.ToNTU(p.Point[0]),
			LatNTU: numeric.ToNTU(p.Point[1]),
		}
		bt.Insert(uint32(p.Index), uint64(i)*12)
	}
	var geomParcels []globalParcel
	for _, chunk := range payload.ChunkPOIGeomRecords(records) {
		geomParcels = append(geomParcels, globalParcel{desc: descPOIGeom, payload: payload.EncodePOIGeomPayload(chunk)})
	}
	if err := write("POIGEOM.SDL", geomParcels); err != nil {
		return nil, nil, err
	}

	pairs := bt.Pairs()
	entries := make([]payload.OffsetEntry, len(pairs))
	for i, p := range pairs {
		entries[i] = payload.OffsetEntry{ID: p.ID, Offset: p.Offset}
	}
	indexParcels := []globalParcel{{desc: descPOIIndex, payload: payload.EncodeOffsetPayload(entries)}}
	if err := write("POIINDEX.SDL", indexParcels); err != nil {
		return nil, nil, err
	}

	if err := write("KDTREE.SDL", kdTreeParcels(pois)); err != nil {
		return nil, nil, err
	}

	return paths, names, nil
}

// kdTreeParcels flattens the balanced KD-tree over all POI points into the
// KDTREE.SDL parcel chain: the first parcel carries the IDxPclHdr, later
// parcels are bare node blocks (§4.3, §4.5). An empty POI set yields one
// parcel whose payload is just the header, with length 0 and zero bounds.
func kdTreeParcels(pois []geoext.POI) []globalParcel {
	if len(pois) == 0 {
		return []globalParcel{{desc: descKDTree, payload: payload.EncodeIDxPclHdr(0, 0, 0)}}
	}

	points := make([]spatial.KDPoint, len(pois))
	minLat, minLon := pois[0].Point[1], pois[0].Point[0]
	for i, p := range pois {
		points[i] = spatial.KDPoint{Index: p.Index, Lon: p.Point[0], Lat: p.Point[1]}
		if p.Point[1] < minLat {
			minLat = p.Point[1]
		}
		if p.Point[0] < minLon {
			minLon = p.Point[0]
		}
	}
	ordered := spatial.BuildKDTree(points)
	nodes := make([]payload.KDNode, len(ordered))
	for i, p := range ordered {
		nodes[i] = payload.POIToKDNode(p.Index, p.Lon, p.Lat)
	}

	var parcels []globalParcel
	for i, chunk := range payload.ChunkKDNodes(nodes) {
		if i == 0 {
			parcels = append(parcels, globalParcel{
				desc:    descKDTree,
				payload: payload.EncodeKDTreeFirstPayload(chunk, numeric.ToNTU(minLat), numeric.ToNTU(minLon)),
			})
			continue
		}
		parcels = append(parcels, globalParcel{desc: descKDTree, payload: payload.EncodeKDNodeBlock(chunk)})
	}
	return parcels
}
