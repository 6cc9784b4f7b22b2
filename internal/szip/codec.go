package szip

import (
	"encoding/binary"

	"github.com/KickingAnimal/SDAL-Builder/internal/numeric"
	"github.com/KickingAnimal/SDAL-Builder/internal/sdalerr"
)

// HuffOffsetsSize is the fixed 20-byte little-endian offsets header that
// precedes every SZIP block (§4.4).
const HuffOffsetsSize = 20

// HuffOffsets records where each section of an SZIP block begins, as byte
// offsets from the start of the block (i.e. from the first byte of
// HuffOffsets itself).
//
// This build's fixed layout (§9 invariant: an ambiguous wire layout must be
// fixed and documented): Tree1Offset marks the code-length-code's own
// 19-byte length table; Tree2Offset marks the bit-packed, byte-padded RLE
// stream for the literal/length tree's lengths; Tree3Offset marks the same
// for the distance tree; DataOffset marks the LZ-token bitstream. Each
// section is independently byte-aligned so a reader can seek directly to it.
type HuffOffsets struct {
	Tree1Offset uint32
	Tree2Offset uint32
	Tree3Offset uint32
	WindowSize  uint32
	DataOffset  uint32
}

func (h HuffOffsets) marshal() []byte {
	buf := make([]byte, HuffOffsetsSize)
	binary.LittleEndian.PutUint32(buf[0:4], h.Tree1Offset)
	binary.LittleEndian.PutUint32(buf[4:8], h.Tree2Offset)
	binary.LittleEndian.PutUint32(buf[8:12], h.Tree3Offset)
	binary.LittleEndian.PutUint32(buf[12:16], h.WindowSize)
	binary.LittleEndian.PutUint32(buf[16:20], h.DataOffset)
	return buf
}

// Encode compresses data into one SZIP block (§4.4). Any symbol with zero
// frequency that nevertheless appears during emission is a fatal CodecError
// (§4.4's failure clause) — this can only happen if Encode's own bookkeeping
// is inconsistent, since the trees are built from the exact token stream
// being emitted.
func Encode(data []byte) ([]byte, error) {
	tokens := lz77Encode(data)

	var litFreq [NumLitLenSymbols]int
	var distFreq [NumDistSymbols]int
	litFreq[EndOfBlock] = 1
	for _, t := range tokens {
		if t.IsMatch {
			lsym, _, _ := lengthToCode(t.Length)
			dsym, _, _ := distanceToCode(t.Distance)
			litFreq[lsym]++
			distFreq[dsym]++
		} else {
			litFreq[t.Literal]++
		}
	}

	litCodes := numeric.BuildCanonicalHuffman(litFreq[:])
	distCodes := numeric.BuildCanonicalHuffman(distFreq[:])
	litLens := numeric.LengthsFromCodes(litCodes)
	distLens := numeric.LengthsFromCodes(distCodes)

	litRLE := encodeLengthRLE(litLens)
	distRLE := encodeLengthRLE(distLens)

	var clenFreq [NumCLenSymbols]int
	for _, s := range litRLE {
		clenFreq[s.Symbol]++
	}
	for _, s := range distRLE {
		clenFreq[s.Symbol]++
	}
	clenCodes := numeric.BuildCanonicalHuffman(clenFreq[:])

	// Section 1: code-length-code lengths, one byte per symbol, fixed order.
	tree1 := make([]byte, NumCLenSymbols)
	for i, sym := range clenOrder {
		tree1[i] = byte(clenCodes[sym].Length)
	}

	tree2, err := emitRLESection(litRLE, clenCodes)
	if err != nil {
		return nil, err
	}
	tree3, err := emitRLESection(distRLE, clenCodes)
	if err != nil {
		return nil, err
	}

	tokenBits, err := emitTokenStream(tokens, litCodes, distCodes)
	if err != nil {
		return nil, err
	}

	offsets := HuffOffsets{
		Tree1Offset: HuffOffsetsSize,
		Tree2Offset: HuffOffsetsSize + uint32(len(tree1)),
		Tree3Offset: HuffOffsetsSize + uint32(len(tree1)) + uint32(len(tree2)),
		WindowSize:  windowSize,
		DataOffset:  HuffOffsetsSize + uint32(len(tree1)) + uint32(len(tree2)) + uint32(len(tree3)),
	}

	out := make([]byte, 0, int(offsets.DataOffset)+len(tokenBits))
	out = append(out, offsets.marshal()...)
	out = append(out, tree1...)
	out = append(out, tree2...)
	out = append(out, tree3...)
	out = append(out, tokenBits...)
	return out, nil
}

func emitRLESection(symbols []RLESymbol, clenCodes []numeric.HuffCode) ([]byte, error) {
	w := numeric.NewBitWriter()
	for _, s := range symbols {
		code := clenCodes[s.Symbol]
		if code.Length == 0 {
			return nil, &sdalerr.CodecError{Reason: "code-length symbol has zero-length huffman code at emit time"}
		}
		w.WriteBits(code.Code, int(code.Length))
		if s.ExtraBits > 0 {
			w.WriteBits(uint32(s.Extra), s.ExtraBits)
		}
	}
	return w.Flush(), nil
}

func emitTokenStream(tokens []Token, litCodes, distCodes []numeric.HuffCode) ([]byte, error) {
	w := numeric.NewBitWriter()
	emit := func(codes []numeric.HuffCode, symbol int) error {
		code := codes[symbol]
		if code.Length == 0 {
			return &sdalerr.CodecError{Reason: "literal/length or distance symbol has zero-length huffman code at emit time"}
		}
		w.WriteBits(code.Code, int(code.Length))
		return nil
	}

	for _, t := range tokens {
		if t.IsMatch {
			lsym, lextraBits, lextraVal := lengthToCode(t.Length)
			if err := emit(litCodes, lsym); err != nil {
				return nil, err
			}
			if lextraBits > 0 {
				w.WriteBits(uint32(lextraVal), lextraBits)
			}
			dsym, dextraBits, dextraVal := distanceToCode(t.Distance)
			if err := emit(distCodes, dsym); err != nil {
				return nil, err
			}
			if dextraBits > 0 {
				w.WriteBits(uint32(dextraVal), dextraBits)
			}
		} else {
			if err := emit(litCodes, int(t.Literal)); err != nil {
				return nil, err
			}
		}
	}
	if err := emit(litCodes, EndOfBlock); err != nil {
		return nil, err
	}
	return w.Flush(), nil
}
