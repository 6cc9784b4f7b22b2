package global

import (
	"path/filepath"
	"strings"

	"github.com/KickingAnimal/SDAL-Builder/internal/sdalerr"
)

// MTOCSize is the fixed, zero-padded size of MTOC.SDL (§4.8).
const MTOCSize = 4096

const mtocRecordSize = 64
const mtocHeaderSize = 64

// mtocTypeMarker looks up the one-byte type marker for a known base name,
// falling back to a generic marker for anything unrecognized.
var mtocTypeMarker = map[string]byte{
	"CARTOTOP": 0x01,
	"REGION":   0x02,
	"REGIONS":  0x02,
	"LOCALE":   0x03,
	"SYMBOL":   0x04,
	"MTOC":     0x05,
	"POINAMES": 0x06,
	"POIGEOM":  0x07,
	"POIINDEX": 0x08,
	"KDTREE":   0x09,
	"INIT":     0x0A,
}

const mtocMapMarker = 0x10 // *0.SDL / *1.SDL ("MAP") files

// isMapFile reports whether name ends in "0.SDL" or "1.SDL".
func isMapFile(name string) bool {
	upper := strings.ToUpper(name)
	return strings.HasSuffix(upper, "0.SDL") || strings.HasSuffix(upper, "1.SDL")
}

// EncodeMTOC builds MTOC.SDL: 64 leading zero bytes, then one 64-byte
// record per included SDL file in order, zero-padded to MTOCSize (§4.8).
func EncodeMTOC(fileNames []string) ([]byte, error) {
	if len(fileNames)+1 > (MTOCSize-mtocHeaderSize)/mtocRecordSize {
		return nil, &sdalerr.CodecError{Reason: "too many SDL files for fixed MTOC.SDL table"}
	}

	out := make([]byte, mtocHeaderSize)
	for i, name := range fileNames {
		rec := make([]byte, mtocRecordSize)

		upper := strings.ToUpper(name)
		nameBytes := []byte(upper)
		if len(nameBytes) > 16 {
			nameBytes = nameBytes[:16]
		}
		copy(rec[8:24], nameBytes)

		var marker byte
		if isMapFile(name) {
			marker = mtocMapMarker
		} else {
			base := strings.ToUpper(strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)))
			marker = mtocTypeMarker[base]
		}
		rec[28] = marker

		seq := i + 1
		rec[29] = byte(seq >> 16)
		rec[30] = byte(seq >> 8)
		rec[31] = byte(seq)

		out = append(out, rec...)
	}

	out = append(out, make([]byte, MTOCSize-len(out))...)
	return out, nil
}
