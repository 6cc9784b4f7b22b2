package global

import (
	"golang.org/x/text/unicode/norm"

	"github.com/KickingAnimal/SDAL-Builder/internal/sdalerr"
)

// RegionFileSize is the fixed size of both REGION.SDL and REGIONS.SDL
// (OEM mode, §4.8).
const RegionFileSize = 4096

const nameSlotSize = 16
const nameSlotsPerRegion = 10

// RegionInfo is one input region's naming metadata for the OEM region
// files.
type RegionInfo struct {
	NativeName   string
	Translations map[string]string // 3-char lang code -> localized name
}

// MaxRegionsInFile bounds how many RegionInfo entries fit in the fixed-size
// region table shared by both files (§4.8): the table must zero-pad to
// RegionFileSize, so overflow is rejected rather than silently truncated.
func MaxRegionsInFile(tableStart int) int {
	return (RegionFileSize - tableStart) / (nameSlotsPerRegion * nameSlotSize)
}

func encodeNameSlot(name string) [nameSlotSize]byte {
	var slot [nameSlotSize]byte
	copy(slot[:], asciiFold(name))
	return slot
}

// asciiFold strips combining marks (NFKD decomposition) and drops any
// remaining non-ASCII byte, matching the Latin-1-ish fold used for on-disc
// string payloads elsewhere in this encoder.
func asciiFold(s string) []byte {
	decomposed := norm.NFKD.String(s)
	out := make([]byte, 0, len(decomposed))
	for _, r := range decomposed {
		if r < 0x80 {
			out = append(out, byte(r))
		}
	}
	return out
}

// resolveName applies the fallback chain requested lang -> "UKE" -> native
// (§4.8).
func resolveName(r RegionInfo, lang string) string {
	if name, ok := r.Translations[lang]; ok {
		return name
	}
	if name, ok := r.Translations["UKE"]; ok {
		return name
	}
	return r.NativeName
}

func regionTable(regions []RegionInfo, supportedLangs []string) []byte {
	out := make([]byte, 0, len(regions)*nameSlotsPerRegion*nameSlotSize)
	for _, r := range regions {
		slots := make([][nameSlotSize]byte, nameSlotsPerRegion)
		slots[0] = encodeNameSlot(r.NativeName)
		for i := 0; i < nameSlotsPerRegion-1 && i < len(supportedLangs); i++ {
			slots[i+1] = encodeNameSlot(resolveName(r, supportedLangs[i]))
		}
		for _, s := range slots {
			out = append(out, s[:]...)
		}
	}
	return out
}

// EncodeRegionSDL builds the OEM REGION.SDL payload: magic, continent
// label, language field, then the region name table, zero-padded to
// RegionFileSize (§4.8).
func EncodeRegionSDL(continent string, supportedLangs []string, regions []RegionInfo) ([]byte, error) {
	const tableStart = 16 + 15 + 31
	if max := MaxRegionsInFile(tableStart); len(regions) > max {
		return nil, &sdalerr.CodecError{Reason: "too many regions for fixed REGION.SDL table"}
	}

	out := make([]byte, 0, RegionFileSize)
	out = append(out, []byte("SDAL")...)
	out = append(out, make([]byte, 12)...)

	var contLabel [15]byte
	copy(contLabel[:14], asciiFold(continent))
	out = append(out, contLabel[:]...)

	var langField [31]byte
	joined := ""
	for _, l := range supportedLangs {
		joined += l
	}
	copy(langField[:30], asciiFold(joined))
	out = append(out, langField[:]...)

	out = append(out, regionTable(regions, supportedLangs)...)

	if len(out) > RegionFileSize {
		return nil, &sdalerr.CodecError{Reason: "REGION.SDL content exceeds fixed file size"}
	}
	out = append(out, make([]byte, RegionFileSize-len(out))...)
	return out, nil
}

// EncodeRegionsSDL builds the OEM REGIONS.SDL payload: the same fixed file
// as REGION.SDL minus the continent label and language fields (§4.8).
func EncodeRegionsSDL(regions []RegionInfo, supportedLangs []string) ([]byte, error) {
	const tableStart = 16
	if max := MaxRegionsInFile(tableStart); len(regions) > max {
		return nil, &sdalerr.CodecError{Reason: "too many regions for fixed REGIONS.SDL table"}
	}

	out := make([]byte, 0, RegionFileSize)
	out = append(out, []byte("SDAL")...)
	out = append(out, make([]byte, 12)...)
	out = append(out, regionTable(regions, supportedLangs)...)

	if len(out) > RegionFileSize {
		return nil, &sdalerr.CodecError{Reason: "REGIONS.SDL content exceeds fixed file size"}
	}
	out = append(out, make([]byte, RegionFileSize-len(out))...)
	return out, nil
}
