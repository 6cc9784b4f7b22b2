package numeric

import "testing"

func TestType1RoundTrip(t *testing.T) {
	values := []int{0, 1, 239, 240, 241, 4079, 4080, 4081, 65519, 65520, 65521, Type1Max}
	for _, v := range values {
		enc, err := EncodeType1(v)
		if err != nil {
			t.Fatalf("EncodeType1(%d): %v", v, err)
		}
		got, n, err := DecodeType1(enc)
		if err != nil {
			t.Fatalf("DecodeType1(%d encoding): %v", v, err)
		}
		if got != v {
			t.Errorf("round trip: encoded %d, decoded %d", v, got)
		}
		if n != len(enc) {
			t.Errorf("DecodeType1 consumed %d bytes, encoding is %d bytes", n, len(enc))
		}
	}
}

func TestType1EncodingLength(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 1}, {239, 1},
		{240, 2}, {4079, 2},
		{4080, 3}, {65519, 3},
		{65520, 4}, {Type1Max, 4},
	}
	for _, tt := range tests {
		enc, err := EncodeType1(tt.n)
		if err != nil {
			t.Fatalf("EncodeType1(%d): %v", tt.n, err)
		}
		if len(enc) != tt.want {
			t.Errorf("EncodeType1(%d) produced %d bytes, want %d", tt.n, len(enc), tt.want)
		}
	}
}

func TestType1BoundaryEncodings(t *testing.T) {
	tests := []struct {
		n    int
		want []byte
	}{
		{0, []byte{0x00}},
		{239, []byte{0xEF}},
		{240, []byte{0xF0, 0x00}},
		{4079, []byte{0xFE, 0xFF}},
		{4080, []byte{0xFF, 0x00, 0x00}},
		{65519, []byte{0xFF, 0xEF, 0xFF}},
		{65520, []byte{0xFF, 0xF0, 0x00, 0x00}},
	}
	for _, tt := range tests {
		enc, err := EncodeType1(tt.n)
		if err != nil {
			t.Fatalf("EncodeType1(%d): %v", tt.n, err)
		}
		if len(enc) != len(tt.want) {
			t.Fatalf("EncodeType1(%d) = % x, want % x", tt.n, enc, tt.want)
		}
		for i := range enc {
			if enc[i] != tt.want[i] {
				t.Errorf("EncodeType1(%d) = % x, want % x", tt.n, enc, tt.want)
				break
			}
		}
	}
}

func TestType1Overflow(t *testing.T) {
	for _, n := range []int{-1, Type1Max + 1} {
		if _, err := EncodeType1(n); err == nil {
			t.Errorf("EncodeType1(%d): expected error, got nil", n)
		}
	}
}

func TestDecodeType1ShortRead(t *testing.T) {
	tests := [][]byte{
		{},
		{0xF0},
		{0xFF},
		{0xFF, 0x10},
		{0xFF, 0xF0, 0x00},
	}
	for _, b := range tests {
		if _, _, err := DecodeType1(b); err == nil {
			t.Errorf("DecodeType1(% x): expected error, got nil", b)
		}
	}
}
