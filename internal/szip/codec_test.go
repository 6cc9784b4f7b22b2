package szip

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"single byte", []byte{0x42}},
		{"short ascii", []byte("hello, world")},
		{"highly repetitive", bytes.Repeat([]byte("abcabcabc"), 500)},
		{"all same byte", bytes.Repeat([]byte{0xFF}, 4096)},
		{"binary with nulls", append([]byte{0, 0, 0, 1, 2, 3, 0, 0}, bytes.Repeat([]byte{9, 8, 7}, 100)...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := Encode(tt.data)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			decoded, err := decodeSZIP(encoded)
			if err != nil {
				t.Fatalf("decodeSZIP: %v", err)
			}
			if !bytes.Equal(decoded, tt.data) {
				t.Errorf("round trip mismatch: got %d bytes, want %d bytes", len(decoded), len(tt.data))
			}
		})
	}
}

func TestEncodeDecodeRoundTripAcrossWindow(t *testing.T) {
	// Exceeds the 32KB LZ77 window so back-references must wrap correctly.
	data := make([]byte, 70000)
	for i := range data {
		data[i] = byte(i % 251)
	}
	encoded, err := Encode(data)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := decodeSZIP(encoded)
	if err != nil {
		t.Fatalf("decodeSZIP: %v", err)
	}
	if !bytes.Equal(decoded, data) {
		t.Error("round trip mismatch across window-sized input")
	}
}
