package numeric

import "testing"

func TestBuildCanonicalHuffmanEmpty(t *testing.T) {
	codes := BuildCanonicalHuffman(make([]int, 5))
	for i, c := range codes {
		if c.Length != 0 {
			t.Errorf("symbol %d: length %d, want 0 for all-zero frequencies", i, c.Length)
		}
	}
}

func TestBuildCanonicalHuffmanSingleSymbol(t *testing.T) {
	freq := make([]int, 5)
	freq[2] = 10
	codes := BuildCanonicalHuffman(freq)
	if codes[2].Length != 1 {
		t.Fatalf("lone symbol length = %d, want 1", codes[2].Length)
	}
	for i, c := range codes {
		if i != 2 && c.Length != 0 {
			t.Errorf("symbol %d: length %d, want 0", i, c.Length)
		}
	}
}

func TestBuildCanonicalHuffmanIsPrefixFree(t *testing.T) {
	freq := []int{50, 20, 15, 10, 4, 1}
	codes := BuildCanonicalHuffman(freq)

	var present []HuffCode
	for _, c := range codes {
		if c.Length > 0 {
			present = append(present, c)
		}
	}
	if len(present) != len(freq) {
		t.Fatalf("got %d non-zero-length codes, want %d", len(present), len(freq))
	}

	for i := range present {
		for j := range present {
			if i == j {
				continue
			}
			if isPrefix(present[i], present[j]) {
				t.Errorf("code %v is a prefix of code %v", present[i], present[j])
			}
		}
	}
}

func TestBuildCanonicalHuffmanAssignsShorterCodesToHigherFrequency(t *testing.T) {
	freq := []int{1, 100}
	codes := BuildCanonicalHuffman(freq)
	if codes[1].Length > codes[0].Length {
		t.Errorf("higher-frequency symbol got longer code: sym0=%d bits, sym1=%d bits", codes[0].Length, codes[1].Length)
	}
}

func TestLengthsFromCodes(t *testing.T) {
	codes := []HuffCode{{Code: 0, Length: 2}, {Code: 1, Length: 3}}
	lens := LengthsFromCodes(codes)
	if lens[0] != 2 || lens[1] != 3 {
		t.Errorf("LengthsFromCodes = %v, want [2 3]", lens)
	}
}

// isPrefix reports whether a's bit pattern is a prefix of b's.
func isPrefix(a, b HuffCode) bool {
	if a.Length == 0 || a.Length >= b.Length {
		return false
	}
	shift := b.Length - a.Length
	return (b.Code >> shift) == a.Code
}
