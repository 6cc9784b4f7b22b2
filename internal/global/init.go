package global

import (
	"encoding/binary"
	"hash/crc32"
	"strings"

	"github.com/KickingAnimal/SDAL-Builder/internal/parcel"
	"github.com/KickingAnimal/SDAL-Builder/internal/sdalerr"
)

// GlbMediaHeaderSize is the fixed payload size of the standard-mode
// GLB_MEDIA_HEADER parcel (§4.8).
const GlbMediaHeaderSize = 512

// CountryEntry is one locale row: a native name plus per-language
// translations, shared by both INIT.SDL LOCALE encoding and the OEM
// region files' naming scheme.
type CountryEntry struct {
	Code         string
	Translations map[string]string
}

// EncodeGlbMediaHeader builds the GLB_MEDIA_HEADER payload: version triple,
// region count, the 256-byte parcel-size-index table, and unit-offset
// pointers to the LOCALE and SYMBOL parcels (§4.8).
func EncodeGlbMediaHeader(regionCount uint32, sizeIndexTable [256]byte, localeOffsetUnits, symbolOffsetUnits uint32) []byte {
	buf := make([]byte, GlbMediaHeaderSize)
	buf[0], buf[1], buf[2] = 1, 7, 0 // major, minor, patch
	binary.BigEndian.PutUint32(buf[4:8], regionCount)
	copy(buf[8:8+256], sizeIndexTable[:])
	binary.BigEndian.PutUint32(buf[264:268], localeOffsetUnits)
	binary.BigEndian.PutUint32(buf[268:272], symbolOffsetUnits)
	return buf
}

// EncodeLocalePayload builds the LOCALE parcel payload: a country count
// followed by, per country, a 4-byte code slot and up to nine translated
// name slots (native-first, same fallback chain as the OEM region files).
func EncodeLocalePayload(countries []CountryEntry, supportedLangs []string) []byte {
	out := make([]byte, 4)
	binary.BigEndian.PutUint32(out[0:4], uint32(len(countries)))
	for _, c := range countries {
		var codeSlot [4]byte
		copy(codeSlot[:], c.Code)
		out = append(out, codeSlot[:]...)

		native := c.Translations["UKE"]
		if native == "" {
			native = c.Code
		}
		slot := encodeNameSlot(native)
		out = append(out, slot[:]...)
		for i := 0; i < nameSlotsPerRegion-1 && i < len(supportedLangs); i++ {
			lang := supportedLangs[i]
			name, ok := c.Translations[lang]
			if !ok {
				name = native
			}
			s := encodeNameSlot(name)
			out = append(out, s[:]...)
		}
	}
	return out
}

// SymbolTableEntrySize is the per-symbol record size in the SYMBOL parcel
// (§4.8: "256-byte-per-symbol table — may be a stub").
const SymbolTableEntrySize = 256

// EncodeSymbolPayload builds a stub SYMBOL parcel payload of symbolCount
// zeroed 256-byte entries.
func EncodeSymbolPayload(symbolCount int) []byte {
	return make([]byte, symbolCount*SymbolTableEntrySize)
}

// EncodeInitSDLStandard assembles the three-parcel standard-mode INIT.SDL
// ("0.SDL", §4.8): GLB_MEDIA_HEADER, LOCALE, SYMBOL, each padded to the
// unit boundary.
func EncodeInitSDLStandard(regionCount uint32, sizeIndexTable [256]byte, countries []CountryEntry, supportedLangs []string, symbolCount int) ([]byte, error) {
	var out []byte

	locale := EncodeLocalePayload(countries, supportedLangs)
	symbol := EncodeSymbolPayload(symbolCount)

	// GLB_MEDIA_HEADER is written first but must already know the other
	// two parcels' unit offsets, so compute layout before encoding it.
	mediaHdrParcelLen := parcel.HeaderSize + GlbMediaHeaderSize
	mediaHdrPadded := mediaHdrParcelLen + parcel.PadLen(int64(mediaHdrParcelLen))
	localeOffsetUnits := parcel.OffsetUnits(int64(mediaHdrPadded))

	localeParcelLen := parcel.HeaderSize + len(locale)
	localePadded := localeParcelLen + parcel.PadLen(int64(mediaHdrPadded+localeParcelLen))
	symbolOffsetUnits := parcel.OffsetUnits(int64(mediaHdrPadded + localePadded))

	mediaHdr := EncodeGlbMediaHeader(regionCount, sizeIndexTable, uint32(localeOffsetUnits), uint32(symbolOffsetUnits))

	for _, p := range []struct {
		desc    uint16
		typ     uint8
		payload []byte
	}{
		{desc: 1, typ: 0, payload: mediaHdr},
		{desc: 2, typ: 0, payload: locale},
		{desc: 3, typ: 0, payload: symbol},
	} {
		offsetUnits := parcel.OffsetUnits(int64(len(out)))
		encoded, err := parcel.EncodeParcel(parcel.EncodeParcelParams{
			OffsetUnits:     offsetUnits,
			Desc:            p.desc,
			Type:            p.typ,
			Payload:         p.payload,
			UncompressedLen: len(p.payload),
		})
		if err != nil {
			return nil, err
		}
		out = append(out, encoded...)
		out = append(out, make([]byte, parcel.PadLen(int64(len(out))))...)
	}
	return out, nil
}

// OEM INIT.SDL config block layout (§4.8).
const (
	oemConfigBlockSize      = 0x12048
	oemCountryTableOffset   = 0x100
	oemCountryRefSize       = 32
	oemFeatureSetEntrySize  = 20
	oemRegionEntrySize      = 68
	oemPadGranularity       = 2048
	crcRangeStart           = 0x10
	oemMagic         uint32 = 0x4C414453
	oemVersion       uint32 = 0x00010000
)

// OEMCountryRef packs one 32-byte country-ref entry for the OEM config
// block: a 16-byte country/region code slot followed by a 16-byte native
// name slot, both NUL-padded.
func OEMCountryRef(code, nativeName string) [oemCountryRefSize]byte {
	var out [oemCountryRefSize]byte
	copy(out[0:16], code)
	copy(out[16:32], nativeName)
	return out
}

// OEMRegionEntry packs one 68-byte region-entry record: the uppercased file
// name in the first 16 bytes, then the file's byte size as a little-endian
// u32. The remainder is reserved.
func OEMRegionEntry(fileName string, size uint32) [oemRegionEntrySize]byte {
	var out [oemRegionEntrySize]byte
	copy(out[0:16], strings.ToUpper(fileName))
	binary.LittleEndian.PutUint32(out[16:20], size)
	return out
}

// EncodeInitSDLOEM assembles the OEM-mode INIT.SDL config block plus
// region-entry table (§4.8), including the IEEE CRC32 self-check patched at
// offset 0x0C.
func EncodeInitSDLOEM(countryRefs [][oemCountryRefSize]byte, featureSets [][oemFeatureSetEntrySize]byte, regionEntries [][oemRegionEntrySize]byte) ([]byte, error) {
	offsetFeaturePayload := oemCountryTableOffset + len(countryRefs)*oemCountryRefSize
	featureEnd := offsetFeaturePayload + len(featureSets)*oemFeatureSetEntrySize
	if featureEnd > oemConfigBlockSize {
		return nil, &sdalerr.CodecError{Reason: "OEM INIT.SDL country/feature tables exceed fixed config block size"}
	}

	buf := make([]byte, oemConfigBlockSize)
	binary.LittleEndian.PutUint32(buf[0x00:0x04], oemMagic)
	binary.LittleEndian.PutUint32(buf[0x04:0x08], oemVersion)
	binary.LittleEndian.PutUint32(buf[0x08:0x0C], oemConfigBlockSize)
	// buf[0x0C:0x10] CRC32 placeholder, patched below
	binary.LittleEndian.PutUint32(buf[0x10:0x14], uint32(len(countryRefs)))
	binary.LittleEndian.PutUint32(buf[0x14:0x18], oemCountryTableOffset)
	binary.LittleEndian.PutUint32(buf[0x18:0x1C], uint32(offsetFeaturePayload))

	off := oemCountryTableOffset
	for _, ref := range countryRefs {
		copy(buf[off:off+oemCountryRefSize], ref[:])
		off += oemCountryRefSize
	}
	off = offsetFeaturePayload
	for _, fs := range featureSets {
		copy(buf[off:off+oemFeatureSetEntrySize], fs[:])
		off += oemFeatureSetEntrySize
	}

	sum := crc32.ChecksumIEEE(buf[crcRangeStart:oemConfigBlockSize])
	binary.LittleEndian.PutUint32(buf[0x0C:0x10], sum)

	for _, re := range regionEntries {
		buf = append(buf, re[:]...)
	}

	if pad := oemPadGranularity - len(buf)%oemPadGranularity; pad != oemPadGranularity {
		buf = append(buf, make([]byte, pad)...)
	}
	return buf, nil
}

// VerifyInitSDLOEMCRC recomputes the CRC32 over an encoded OEM INIT.SDL
// config block and reports whether it matches the stored value (§4.8
// "Failure semantics": CRC32 must be self-consistent).
func VerifyInitSDLOEMCRC(buf []byte) bool {
	if len(buf) < oemConfigBlockSize {
		return false
	}
	stored := binary.LittleEndian.Uint32(buf[0x0C:0x10])
	sum := crc32.ChecksumIEEE(buf[crcRangeStart:oemConfigBlockSize])
	return sum == stored
}
