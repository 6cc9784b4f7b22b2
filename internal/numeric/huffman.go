package numeric

import (
	"container/heap"
	"sort"
)

// MaxCodeLength is the longest canonical-Huffman code length the SZIP
// dialect's code-length alphabet (four bits of length, see §4.4) can carry.
const MaxCodeLength = 15

// HuffCode is a symbol's canonical code: Length bits of Code, MSB first.
type HuffCode struct {
	Code   uint32
	Length uint8
}

type huffNode struct {
	freq        int
	symbol      int // valid only if leaf
	leaf        bool
	left, right *huffNode
	order       int // tie-break: insertion order, for deterministic merges
}

type nodeHeap []*huffNode

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].freq != h[j].freq {
		return h[i].freq < h[j].freq
	}
	return h[i].order < h[j].order
}
func (h nodeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x any)        { *h = append(*h, x.(*huffNode)) }
func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// BuildCanonicalHuffman constructs canonical-Huffman code lengths and codes
// for the given symbol frequencies (index = symbol, value = frequency).
// Symbols with zero frequency receive length 0 (excluded from the code).
//
// Steps, per §4.1:
//  1. repeatedly merge the two lowest-weight nodes into a standard tree
//  2. clamp any length exceeding MaxCodeLength (accepted as suboptimal)
//  3. sort symbols by (length, symbol) ascending, skipping length 0
//  4. assign next_code[L] = (next_code[L-1]+count[L-1])<<1, incrementing per symbol
func BuildCanonicalHuffman(freq []int) []HuffCode {
	codes := make([]HuffCode, len(freq))

	nonZero := 0
	for _, f := range freq {
		if f > 0 {
			nonZero++
		}
	}
	if nonZero == 0 {
		return codes
	}
	if nonZero == 1 {
		// A single symbol still needs a 1-bit code so the bitstream is
		// well-formed (an all-zero-length encode would never emit it).
		for sym, f := range freq {
			if f > 0 {
				codes[sym] = HuffCode{Code: 0, Length: 1}
			}
		}
		return codes
	}

	h := &nodeHeap{}
	heap.Init(h)
	order := 0
	for sym, f := range freq {
		if f > 0 {
			heap.Push(h, &huffNode{freq: f, symbol: sym, leaf: true, order: order})
			order++
		}
	}
	for h.Len() > 1 {
		a := heap.Pop(h).(*huffNode)
		b := heap.Pop(h).(*huffNode)
		merged := &huffNode{freq: a.freq + b.freq, left: a, right: b, order: order}
		order++
		heap.Push(h, merged)
	}
	root := heap.Pop(h).(*huffNode)

	lengths := make([]int, len(freq))
	var walk func(n *huffNode, depth int)
	walk = func(n *huffNode, depth int) {
		if n.leaf {
			d := depth
			if d == 0 {
				d = 1 // the lone surviving root from a depth-0 merge still needs 1 bit
			}
			if d > MaxCodeLength {
				d = MaxCodeLength
			}
			lengths[n.symbol] = d
			return
		}
		walk(n.left, depth+1)
		walk(n.right, depth+1)
	}
	walk(root, 0)

	assignCanonicalCodes(lengths, codes)
	return codes
}

// assignCanonicalCodes fills in codes given a per-symbol length array,
// following the canonical ordering rule of §4.1 steps 3-5.
func assignCanonicalCodes(lengths []int, codes []HuffCode) {
	type symLen struct {
		sym int
		len int
	}
	var syms []symLen
	maxLen := 0
	for sym, l := range lengths {
		if l > 0 {
			syms = append(syms, symLen{sym, l})
			if l > maxLen {
				maxLen = l
			}
		}
	}
	if len(syms) == 0 {
		return
	}
	sort.Slice(syms, func(i, j int) bool {
		if syms[i].len != syms[j].len {
			return syms[i].len < syms[j].len
		}
		return syms[i].sym < syms[j].sym
	})

	count := make([]int, maxLen+1)
	for _, sl := range syms {
		count[sl.len]++
	}
	nextCode := make([]uint32, maxLen+1)
	var code uint32
	for l := 1; l <= maxLen; l++ {
		code = (code + uint32(count[l-1])) << 1
		nextCode[l] = code
	}
	for _, sl := range syms {
		codes[sl.sym] = HuffCode{Code: nextCode[sl.len], Length: uint8(sl.len)}
		nextCode[sl.len]++
	}
}

// CodesFromLengths reconstructs canonical codes from a per-symbol length
// array alone — what a decoder does after reading just the lengths table
// off the wire, using the same assignment rule as BuildCanonicalHuffman.
func CodesFromLengths(lengths []int) []HuffCode {
	codes := make([]HuffCode, len(lengths))
	assignCanonicalCodes(lengths, codes)
	return codes
}

// LengthsFromCodes extracts the per-symbol length array from a code slice,
// used when serializing the code-length alphabet (§4.4).
func LengthsFromCodes(codes []HuffCode) []int {
	lens := make([]int, len(codes))
	for i, c := range codes {
		lens[i] = int(c.Length)
	}
	return lens
}
