// Package szip implements the SDAL dialect of LZ77 + canonical-Huffman
// compression (§4.4). The length/literal alphabet (286 symbols), distance
// alphabet (30 symbols), and code-length alphabet (19 symbols) follow the
// DEFLATE-family layout the spec calls out by name (§9: "MSB-first is the
// canonical DEFLATE-family choice").
package szip

import "github.com/KickingAnimal/SDAL-Builder/internal/sdalerr"

// EndOfBlock is the literal/length alphabet's end-of-block symbol.
const EndOfBlock = 256

// NumLitLenSymbols and NumDistSymbols size the two main alphabets (§4.4).
const (
	NumLitLenSymbols = 286
	NumDistSymbols   = 30
	NumCLenSymbols   = 19
)

type lenEntry struct {
	base  int
	extra int
}

// lengthTable maps code 257..285 (index 0..28) to (base length, extra bits).
// Code 285 is the special "exactly 258" code with zero extra bits.
var lengthTable = [29]lenEntry{
	{3, 0}, {4, 0}, {5, 0}, {6, 0}, {7, 0}, {8, 0}, {9, 0}, {10, 0},
	{11, 1}, {13, 1}, {15, 1}, {17, 1},
	{19, 2}, {23, 2}, {27, 2}, {31, 2},
	{35, 3}, {43, 3}, {51, 3}, {59, 3},
	{67, 4}, {83, 4}, {99, 4}, {115, 4},
	{131, 5}, {163, 5}, {195, 5}, {227, 5},
	{258, 0},
}

// distTable maps distance code 0..29 to (base distance, extra bits).
var distTable = [30]lenEntry{
	{1, 0}, {2, 0}, {3, 0}, {4, 0},
	{5, 1}, {7, 1},
	{9, 2}, {13, 2},
	{17, 3}, {25, 3},
	{33, 4}, {49, 4},
	{65, 5}, {97, 5},
	{129, 6}, {193, 6},
	{257, 7}, {385, 7},
	{513, 8}, {769, 8},
	{1025, 9}, {1537, 9},
	{2049, 10}, {3073, 10},
	{4097, 11}, {6145, 11},
	{8193, 12}, {12289, 12},
	{16385, 13}, {24577, 13},
}

// lengthToCode maps a match length (3..258) to (symbol 257..285, extra bits, extra value).
func lengthToCode(length int) (symbol, extraBits, extraValue int) {
	if length == 258 {
		return 285, 0, 0
	}
	for i := len(lengthTable) - 2; i >= 0; i-- {
		if length >= lengthTable[i].base {
			return 257 + i, lengthTable[i].extra, length - lengthTable[i].base
		}
	}
	return 257, 0, length - 3
}

// distanceToCode maps a match distance (1..32768) to (code 0..29, extra bits, extra value).
func distanceToCode(dist int) (symbol, extraBits, extraValue int) {
	for i := len(distTable) - 1; i >= 0; i-- {
		if dist >= distTable[i].base {
			return i, distTable[i].extra, dist - distTable[i].base
		}
	}
	return 0, 0, dist - 1
}

func decodeLengthSymbol(symbol, extraValue int) (int, error) {
	idx := symbol - 257
	if idx < 0 || idx >= len(lengthTable) {
		return 0, &sdalerr.CodecError{Reason: "length symbol out of range"}
	}
	return lengthTable[idx].base + extraValue, nil
}

func decodeDistSymbol(symbol, extraValue int) (int, error) {
	if symbol < 0 || symbol >= len(distTable) {
		return 0, &sdalerr.CodecError{Reason: "distance symbol out of range"}
	}
	return distTable[symbol].base + extraValue, nil
}

// clenOrder is the fixed header order the code-length code's own lengths
// are emitted in (§4.4: "own lengths are emitted first in a fixed header
// order"), following the standard DEFLATE permutation so the common case
// (few non-zero high-index entries) serializes small.
var clenOrder = [NumCLenSymbols]int{16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15}
