package szip

// Test-only SZIP reader: §9 frames a reader as part of the test harness,
// not the core encoder, so this decoder exists purely to let the round-trip
// property (§8 invariant 4) be exercised without shipping decode logic in
// the production build.

import (
	"encoding/binary"

	"github.com/KickingAnimal/SDAL-Builder/internal/numeric"
	"github.com/KickingAnimal/SDAL-Builder/internal/sdalerr"
)

func parseOffsets(b []byte) HuffOffsets {
	return HuffOffsets{
		Tree1Offset: binary.LittleEndian.Uint32(b[0:4]),
		Tree2Offset: binary.LittleEndian.Uint32(b[4:8]),
		Tree3Offset: binary.LittleEndian.Uint32(b[8:12]),
		WindowSize:  binary.LittleEndian.Uint32(b[12:16]),
		DataOffset:  binary.LittleEndian.Uint32(b[16:20]),
	}
}

type huffTable map[uint64]int

func tableKey(code uint32, length int) uint64 {
	return uint64(length)<<32 | uint64(code)
}

func buildTable(codes []numeric.HuffCode) huffTable {
	t := make(huffTable, len(codes))
	for sym, c := range codes {
		if c.Length > 0 {
			t[tableKey(c.Code, int(c.Length))] = sym
		}
	}
	return t
}

func decodeCanonicalSymbol(r *numeric.BitReader, table huffTable, maxLen int) (int, error) {
	var code uint32
	for length := 1; length <= maxLen; length++ {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		code = code<<1 | uint32(bit)
		if sym, ok := table[tableKey(code, length)]; ok {
			return sym, nil
		}
	}
	return 0, &sdalerr.CodecError{Reason: "no matching huffman code for bit sequence"}
}

func decodeLengthsRLE(r *numeric.BitReader, clenTable huffTable, total int) ([]int, error) {
	lengths := make([]int, total)
	i, prev := 0, 0
	for i < total {
		sym, err := decodeCanonicalSymbol(r, clenTable, numeric.MaxCodeLength)
		if err != nil {
			return nil, err
		}
		switch {
		case sym <= 15:
			lengths[i] = sym
			prev = sym
			i++
		case sym == 16:
			extra, err := r.ReadBits(2)
			if err != nil {
				return nil, err
			}
			rep := 3 + int(extra)
			for k := 0; k < rep && i < total; k++ {
				lengths[i] = prev
				i++
			}
		case sym == 17:
			extra, err := r.ReadBits(3)
			if err != nil {
				return nil, err
			}
			rep := 3 + int(extra)
			for k := 0; k < rep && i < total; k++ {
				lengths[i] = 0
				i++
			}
			prev = 0
		case sym == 18:
			extra, err := r.ReadBits(7)
			if err != nil {
				return nil, err
			}
			rep := 11 + int(extra)
			for k := 0; k < rep && i < total; k++ {
				lengths[i] = 0
				i++
			}
			prev = 0
		default:
			return nil, &sdalerr.CodecError{Reason: "code-length symbol out of range"}
		}
	}
	return lengths, nil
}

// decodeSZIP reverses Encode, for tests only.
func decodeSZIP(data []byte) ([]byte, error) {
	if len(data) < HuffOffsetsSize {
		return nil, &sdalerr.IOError{Op: "szip decode", Err: errShortBlock{}}
	}
	off := parseOffsets(data)

	tree1 := data[off.Tree1Offset : off.Tree1Offset+NumCLenSymbols]
	clenLengths := make([]int, NumCLenSymbols)
	for i, sym := range clenOrder {
		clenLengths[sym] = int(tree1[i])
	}
	clenTable := buildTable(numeric.CodesFromLengths(clenLengths))

	litLens, err := decodeLengthsRLE(numeric.NewBitReader(data[off.Tree2Offset:off.Tree3Offset]), clenTable, NumLitLenSymbols)
	if err != nil {
		return nil, err
	}
	distLens, err := decodeLengthsRLE(numeric.NewBitReader(data[off.Tree3Offset:off.DataOffset]), clenTable, NumDistSymbols)
	if err != nil {
		return nil, err
	}

	litTable := buildTable(numeric.CodesFromLengths(litLens))
	distSymTable := buildTable(numeric.CodesFromLengths(distLens))

	r := numeric.NewBitReader(data[off.DataOffset:])
	var out []byte
	for {
		sym, err := decodeCanonicalSymbol(r, litTable, numeric.MaxCodeLength)
		if err != nil {
			return nil, err
		}
		if sym == EndOfBlock {
			break
		}
		if sym < EndOfBlock {
			out = append(out, byte(sym))
			continue
		}

		idx := sym - 257
		if idx < 0 || idx >= len(lengthTable) {
			return nil, &sdalerr.CodecError{Reason: "length symbol out of range"}
		}
		var extraVal int
		if lengthTable[idx].extra > 0 {
			v, err := r.ReadBits(lengthTable[idx].extra)
			if err != nil {
				return nil, err
			}
			extraVal = int(v)
		}
		length, err := decodeLengthSymbol(sym, extraVal)
		if err != nil {
			return nil, err
		}

		distSym, err := decodeCanonicalSymbol(r, distSymTable, numeric.MaxCodeLength)
		if err != nil {
			return nil, err
		}
		var distExtraVal int
		if distTable[distSym].extra > 0 {
			v, err := r.ReadBits(distTable[distSym].extra)
			if err != nil {
				return nil, err
			}
			distExtraVal = int(v)
		}
		distance, err := decodeDistSymbol(distSym, distExtraVal)
		if err != nil {
			return nil, err
		}

		start := len(out) - distance
		if start < 0 {
			return nil, &sdalerr.CodecError{Reason: "match distance exceeds decoded output so far"}
		}
		for k := 0; k < length; k++ {
			out = append(out, out[start+k])
		}
	}
	return out, nil
}

type errShortBlock struct{}

func (errShortBlock) Error() string { return "szip block shorter than HuffOffsets header" }
