// Package payload implements the SDAL payload encoders of §4.3: each
// function returns raw payload bytes for the caller to wrap with
// parcel.EncodeParcel.
package payload

import (
	"encoding/binary"

	"golang.org/x/text/unicode/norm"
)

// StringsChunkSize is the maximum number of strings packed into a single
// strings parcel (§4.3).
const StringsChunkSize = 2000

// ChunkStrings splits a string list into StringsChunkSize-sized groups.
func ChunkStrings(values []string) [][]string {
	if len(values) == 0 {
		return nil
	}
	var chunks [][]string
	for start := 0; start < len(values); start += StringsChunkSize {
		end := start + StringsChunkSize
		if end > len(values) {
			end = len(values)
		}
		chunks = append(chunks, values[start:end])
	}
	return chunks
}

// normalizeToLatin1 applies compatibility decomposition (NFKD), strips
// non-ASCII code points, and returns the remaining bytes. Since only code
// points <128 survive the strip, Latin-1 encoding of the result is
// identical to ASCII.
func normalizeToLatin1(s string) []byte {
	decomposed := norm.NFKD.String(s)
	out := make([]byte, 0, len(decomposed))
	for _, r := range decomposed {
		if r < 0x80 {
			out = append(out, byte(r))
		}
	}
	return out
}

// EncodeStringsPayload encodes one strings-parcel payload (§4.3):
// u32 count || count*u32 offset || concatenated NUL-terminated bytes.
// Offsets are relative to the start of the string-data block (i.e. the
// first byte following the offset table).
func EncodeStringsPayload(values []string) []byte {
	encoded := make([][]byte, len(values))
	for i, v := range values {
		encoded[i] = normalizeToLatin1(v)
	}

	header := make([]byte, 4+4*len(values))
	binary.BigEndian.PutUint32(header[0:4], uint32(len(values)))

	var data []byte
	offset := uint32(0)
	for i, b := range encoded {
		binary.BigEndian.PutUint32(header[4+4*i:8+4*i], offset)
		data = append(data, b...)
		data = append(data, 0)
		offset += uint32(len(b)) + 1
	}

	return append(header, data...)
}
