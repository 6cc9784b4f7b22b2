package sdal

import (
	"path/filepath"

	"github.com/KickingAnimal/SDAL-Builder/internal/geoext"
	"github.com/KickingAnimal/SDAL-Builder/internal/global"
	"github.com/KickingAnimal/SDAL-Builder/internal/parcel"
	"github.com/KickingAnimal/SDAL-Builder/internal/region"
	"github.com/KickingAnimal/SDAL-Builder/internal/sdalerr"
	"github.com/KickingAnimal/SDAL-Builder/internal/topoindex"
)

// Builder assembles a full SDAL file set from a set of input regions and
// hands it to an image writer for ISO9660 packaging (§2).
type Builder struct {
	opts        BuildOptions
	imageWriter geoext.ImageWriter
}

// NewBuilder returns a Builder configured by opts. imageWriter may be nil
// if the caller only wants the SDL file set on disc (e.g. in tests) and
// does not need the final ISO.
func NewBuilder(opts BuildOptions, imageWriter geoext.ImageWriter) *Builder {
	return &Builder{opts: opts, imageWriter: imageWriter}
}

// Build assembles every region's file, then the global index, then (if an
// image writer was configured) the final ISO (§2, §5: single-threaded and
// synchronous; a failure aborts without promoting a partial output).
func (b *Builder) Build(regions []Region) error {
	var topology []region.TopologyEntry
	var filePaths []string
	var fileNames []string

	for i, r := range regions {
		b.opts.report("region:"+r.Slug, i, len(regions))

		builders, err := b.regionParcelBuilders(r)
		if err != nil {
			return &sdalerr.ExtractorError{Region: r.Slug, Err: err}
		}

		path := filepath.Join(b.opts.WorkDir, r.FileName)
		if err := region.AssembleRegionFile(path, b.opts.FormatMode, r.DBID, r.FileName, builders, &topology); err != nil {
			return err
		}
		filePaths = append(filePaths, path)
		fileNames = append(fileNames, r.FileName)
	}
	b.opts.report("region", len(regions), len(regions))

	indexPaths, indexNames, err := b.writeGlobalIndex(regions, topology, fileNames)
	if err != nil {
		return err
	}
	filePaths = append(filePaths, indexPaths...)
	fileNames = append(fileNames, indexNames...)
	b.opts.report("global-index", 1, 1)

	if b.imageWriter != nil {
		if err := b.imageWriter.WriteISO(filePaths, b.opts.OutPath); err != nil {
			return &sdalerr.IOError{Op: "write_iso", Err: err}
		}
	}
	return nil
}

// regionParcelBuilders lays out every parcel kind for one region, in a
// fixed, deterministic order (§5: parcel order within a region file is
// exactly the order supplied here). POI, KD-tree and density payloads are
// not per-region concerns — they are assembled globally by writeGlobalIndex.
func (b *Builder) regionParcelBuilders(r Region) ([]region.ParcelBuilder, error) {
	var out []region.ParcelBuilder
	out = append(out, cartoBuilders(r)...)
	out = append(out, btreeOffsetBuilders(r)...)

	routeBuilders, err := routingBuilders(r)
	if err != nil {
		return nil, err
	}
	out = append(out, routeBuilders...)
	return out, nil
}

// writeGlobalIndex assembles CARTOTOP, the global POI file family, the
// DENS pair, REGION(S).SDL / INIT.SDL, and MTOC, returning their file paths
// and names in write order (§4.8). regionFileNames lists the already-written
// per-region files so MTOC can cover the full set.
func (b *Builder) writeGlobalIndex(regions []Region, topology []region.TopologyEntry, regionFileNames []string) ([]string, []string, error) {
	var paths, names []string

	// The R-tree is built over the accumulated topology; its insertion-order
	// view feeds the CARTOTOP payload.
	topo := topoindex.Build(topology)

	cartotopPath := filepath.Join(b.opts.WorkDir, "CARTOTOP.SDL")
	cartotopPayload := global.EncodeCartotop(topo.All())
	cartotopParcel, err := parcel.EncodeParcel(parcel.EncodeParcelParams{
		Desc:            1,
		Payload:         cartotopPayload,
		UncompressedLen: len(cartotopPayload),
	})
	if err != nil {
		return nil, nil, err
	}
	if err := writeFile(cartotopPath, cartotopParcel); err != nil {
		return nil, nil, err
	}
	paths = append(paths, cartotopPath)
	names = append(names, "CARTOTOP.SDL")

	var allPOIs []geoext.POI
	for _, r := range regions {
		allPOIs = append(allPOIs, r.POIs...)
	}
	b.opts.report("POI", 0, len(allPOIs))
	poiPaths, poiNames, err := b.writePOIFiles(allPOIs)
	if err != nil {
		return nil, nil, err
	}
	paths = append(paths, poiPaths...)
	names = append(names, poiNames...)
	b.opts.report("POI", len(allPOIs), len(allPOIs))

	if b.opts.Projection != nil && len(regions) > 0 {
		densPaths, densNames, err := b.writeDensityFiles(regions)
		if err != nil {
			return nil, nil, err
		}
		paths = append(paths, densPaths...)
		names = append(names, densNames...)
	}

	regionInfos := make([]global.RegionInfo, len(regions))
	for i, r := range regions {
		regionInfos[i] = global.RegionInfo{NativeName: r.NativeName, Translations: r.Translations}
	}

	// Data files written so far — region files plus the index family. The
	// OEM INIT region-entry table covers these but not the control files
	// (REGION, REGIONS, INIT, MTOC) written below.
	dataFileNames := append(append([]string{}, regionFileNames...), names...)
	dataFilePaths := append(append([]string{}, filePathsOf(b.opts.WorkDir, regionFileNames)...), paths...)

	if b.opts.FormatMode == region.ModeOEM {
		continent := ""
		if len(regions) > 0 {
			continent = regions[0].Continent
		}
		regionSDL, err := global.EncodeRegionSDL(continent, b.opts.SupportedLangs, regionInfos)
		if err != nil {
			return nil, nil, err
		}
		regionSDLPath := filepath.Join(b.opts.WorkDir, "REGION.SDL")
		if err := writeFile(regionSDLPath, regionSDL); err != nil {
			return nil, nil, err
		}
		paths = append(paths, regionSDLPath)
		names = append(names, "REGION.SDL")

		regionsSDL, err := global.EncodeRegionsSDL(regionInfos, b.opts.SupportedLangs)
		if err != nil {
			return nil, nil, err
		}
		regionsSDLPath := filepath.Join(b.opts.WorkDir, "REGIONS.SDL")
		if err := writeFile(regionsSDLPath, regionsSDL); err != nil {
			return nil, nil, err
		}
		paths = append(paths, regionsSDLPath)
		names = append(names, "REGIONS.SDL")

		countryRefs := make([][32]byte, len(regions))
		for i, r := range regions {
			countryRefs[i] = global.OEMCountryRef(r.Slug, r.NativeName)
		}
		regionEntries := make([][68]byte, len(dataFileNames))
		for i, name := range dataFileNames {
			size, err := fileSize(dataFilePaths[i])
			if err != nil {
				return nil, nil, err
			}
			regionEntries[i] = global.OEMRegionEntry(name, uint32(size))
		}
		initSDL, err := global.EncodeInitSDLOEM(countryRefs, nil, regionEntries)
		if err != nil {
			return nil, nil, err
		}
		initSDLPath := filepath.Join(b.opts.WorkDir, "INIT.SDL")
		if err := writeFile(initSDLPath, initSDL); err != nil {
			return nil, nil, err
		}
		paths = append(paths, initSDLPath)
		names = append(names, "INIT.SDL")
	} else {
		var sizeIdx [256]byte
		countries := make([]global.CountryEntry, len(regions))
		for i, r := range regions {
			countries[i] = global.CountryEntry{Code: r.Slug, Translations: r.Translations}
		}
		initSDL, err := global.EncodeInitSDLStandard(uint32(len(regions)), sizeIdx, countries, b.opts.SupportedLangs, 0)
		if err != nil {
			return nil, nil, err
		}
		initSDLPath := filepath.Join(b.opts.WorkDir, "0.SDL")
		if err := writeFile(initSDLPath, initSDL); err != nil {
			return nil, nil, err
		}
		paths = append(paths, initSDLPath)
		names = append(names, "0.SDL")
	}

	mtocNames := append(append([]string{}, regionFileNames...), names...)
	mtocNames = append(mtocNames, "MTOC.SDL")
	mtoc, err := global.EncodeMTOC(mtocNames)
	if err != nil {
		return nil, nil, err
	}
	mtocPath := filepath.Join(b.opts.WorkDir, "MTOC.SDL")
	if err := writeFile(mtocPath, mtoc); err != nil {
		return nil, nil, err
	}
	paths = append(paths, mtocPath)
	names = append(names, "MTOC.SDL")

	return paths, names, nil
}
