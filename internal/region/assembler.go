package region

import (
	"encoding/binary"
	"os"

	"github.com/KickingAnimal/SDAL-Builder/internal/parcel"
	"github.com/KickingAnimal/SDAL-Builder/internal/sdalerr"
	"github.com/KickingAnimal/SDAL-Builder/internal/szip"
)

// FormatMode selects between the OEM and standard (SDAL) region-file
// layouts (§4.7).
type FormatMode int

const (
	ModeSDAL FormatMode = iota
	ModeOEM
)

// RgnHdrSize is the fixed 512-byte region header size (standard mode only).
const RgnHdrSize = 512

// ParcelBuilder describes one parcel to be laid out into a region file
// (§4.7, and the tagged-variant note in §9: Build dispatches to whichever
// payload-encoder concern — cartography, B-tree, routing, ... — produced
// this parcel's bytes).
type ParcelBuilder struct {
	Desc         uint16
	Type         uint8
	Region       uint8
	CompressType uint16 // parcel.CompressNone or parcel.CompressSZIP
	SizeIndex    uint8  // always 0 in practice (§9 open question)

	LayerType uint16
	Rect      Rect
	ScaleMin  uint16
	ScaleMax  uint16

	// Build produces the raw, uncompressed payload bytes. offsetUnits is
	// the unit-quantized position this parcel will be written at, in case
	// the payload needs to embed its own offset (e.g. routing headers).
	Build func(offsetUnits uint32) ([]byte, error)
}

// rgnHdr encodes the 512-byte RgnHdr (standard mode, §4.7):
// u32 db_id, 12 reserved, u16 major=1, u16 minor=7, u16 year=1999, u16
// reserved, 256-byte layer-parcel-descriptor table, zero padding to 512.
func rgnHdr(dbID uint32, sizeIndexByDesc map[uint16]uint8) []byte {
	buf := make([]byte, RgnHdrSize)
	binary.BigEndian.PutUint32(buf[0:4], dbID)
	binary.BigEndian.PutUint16(buf[16:18], 1)    // major
	binary.BigEndian.PutUint16(buf[18:20], 7)    // minor
	binary.BigEndian.PutUint16(buf[20:22], 1999) // year
	table := buf[24 : 24+256]
	for desc, idx := range sizeIndexByDesc {
		if int(desc) < len(table) {
			table[desc] = idx
		}
	}
	return buf
}

// AssembleRegionFile writes one region's parcel sequence to path, per
// §4.7. Topology entries are appended to *topology in write order
// (§5: "Topology entries are appended in the order parcels are written").
func AssembleRegionFile(path string, mode FormatMode, dbID uint32, fileName string, builders []ParcelBuilder, topology *[]TopologyEntry) error {
	var out []byte

	if mode == ModeSDAL {
		sizeIdx := make(map[uint16]uint8, len(builders))
		for _, b := range builders {
			sizeIdx[b.Desc] = b.SizeIndex
		}
		out = append(out, rgnHdr(dbID, sizeIdx)...)
		out = append(out, make([]byte, parcel.PadLen(int64(len(out))))...)
	}

	for _, b := range builders {
		offsetUnits := parcel.OffsetUnits(int64(len(out)))

		raw, err := b.Build(offsetUnits)
		if err != nil {
			return &sdalerr.IOError{Op: "build parcel pid=" + itoa(int(b.Desc)), Err: err}
		}

		payload := raw
		if b.CompressType == parcel.CompressSZIP {
			compressed, err := szip.Encode(raw)
			if err != nil {
				return err
			}
			payload = compressed
		}

		parcelBytes, err := parcel.EncodeParcel(parcel.EncodeParcelParams{
			OffsetUnits:     offsetUnits,
			SizeIndex:       b.SizeIndex,
			Desc:            b.Desc,
			Type:            b.Type,
			Region:          b.Region,
			CompressType:    b.CompressType,
			Payload:         payload,
			UncompressedLen: len(raw),
		})
		if err != nil {
			return err
		}

		out = append(out, parcelBytes...)
		out = append(out, make([]byte, parcel.PadLen(int64(len(out))))...)

		pid := parcel.EncodeParcelID(parcel.ParcelID{OffsetUnits: offsetUnits, SizeIndex: b.SizeIndex})
		*topology = append(*topology, TopologyEntry{
			DBID:        dbID,
			FileName:    fileName,
			ParcelID:    pid,
			OffsetUnits: offsetUnits,
			Rect:        b.Rect,
			ScaleMin:    b.ScaleMin,
			ScaleMax:    b.ScaleMax,
			LayerType:   b.LayerType,
		})
	}

	return os.WriteFile(path, out, 0o644)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
