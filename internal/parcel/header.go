package parcel

import (
	"encoding/binary"

	"github.com/KickingAnimal/SDAL-Builder/internal/sdalerr"
)

// HeaderSize is the fixed 20-byte size of every PclHdr.
const HeaderSize = 20

// MaxCompressedPayloadBytes is the implementation ceiling below the 16-bit
// usCmpDataSizeLo limit (§3's invariant): any encoder producing more must
// chunk its input.
const MaxCompressedPayloadBytes = 65000

// CompressNone and CompressSZIP are the two compress_type values §3 defines.
const (
	CompressNone = 0
	CompressSZIP = 4
)

// DataOffset is always 20: the payload immediately follows the header.
const DataOffset = 20

// PclHdr is the decoded form of the 20-byte parcel header (§4.2).
type PclHdr struct {
	ParcelID        uint32
	Desc            uint16
	Type            uint8
	Region          uint8
	EndianSwap      uint8 // always 0 (big-endian)
	CmpSizeHi       uint8
	CmpSizeLo       uint16
	CompressType    uint16
	DataOffset      uint16
	UncompSizeSat   uint16
	ExtensionOffset uint16
}

// Marshal packs a PclHdr into its 20-byte big-endian wire form.
func (h PclHdr) Marshal() []byte {
	buf := make([]byte, HeaderSize)
	binary.BigEndian.PutUint32(buf[0:4], h.ParcelID)
	binary.BigEndian.PutUint16(buf[4:6], h.Desc)
	buf[6] = h.Type
	buf[7] = h.Region
	buf[8] = h.EndianSwap
	buf[9] = h.CmpSizeHi
	binary.BigEndian.PutUint16(buf[10:12], h.CmpSizeLo)
	binary.BigEndian.PutUint16(buf[12:14], h.CompressType)
	binary.BigEndian.PutUint16(buf[14:16], h.DataOffset)
	binary.BigEndian.PutUint16(buf[16:18], h.UncompSizeSat)
	binary.BigEndian.PutUint16(buf[18:20], h.ExtensionOffset)
	return buf
}

// UnmarshalHeader decodes a 20-byte PclHdr from the start of b.
func UnmarshalHeader(b []byte) (PclHdr, error) {
	if len(b) < HeaderSize {
		return PclHdr{}, &sdalerr.IOError{Op: "parcel header decode", Err: errShortHeader{}}
	}
	return PclHdr{
		ParcelID:        binary.BigEndian.Uint32(b[0:4]),
		Desc:            binary.BigEndian.Uint16(b[4:6]),
		Type:            b[6],
		Region:          b[7],
		EndianSwap:      b[8],
		CmpSizeHi:       b[9],
		CmpSizeLo:       binary.BigEndian.Uint16(b[10:12]),
		CompressType:    binary.BigEndian.Uint16(b[12:14]),
		DataOffset:      binary.BigEndian.Uint16(b[14:16]),
		UncompSizeSat:   binary.BigEndian.Uint16(b[16:18]),
		ExtensionOffset: binary.BigEndian.Uint16(b[18:20]),
	}, nil
}

type errShortHeader struct{}

func (errShortHeader) Error() string { return "parcel header: fewer than 20 bytes available" }

// CompressedSizeBits returns the combined 24-bit cmp_size_hi:cmp_size_lo
// field interpreted as a bit count.
func (h PclHdr) CompressedSizeBits() uint32 {
	return uint32(h.CmpSizeHi)<<16 | uint32(h.CmpSizeLo)
}

// EncodeParcelParams bundles the inputs to EncodeParcel.
type EncodeParcelParams struct {
	// PID, if non-zero, is used verbatim as the 32-bit ParcelID. If zero,
	// the ParcelID is synthesized from OffsetUnits/SizeIndex/Flags.
	PID uint32

	OffsetUnits uint32
	SizeIndex   uint8
	Redundancy  bool
	External    bool

	Desc         uint16
	Type         uint8
	Region       uint8
	CompressType uint16

	// Payload is the bytes to place after the header: already-compressed
	// SZIP output when CompressType == CompressSZIP, or raw bytes when
	// CompressType == CompressNone.
	Payload []byte

	// UncompressedLen is the size of the payload before compression; equal
	// to len(Payload) when CompressType == CompressNone.
	UncompressedLen int
}

// EncodeParcel emits a 20-byte header followed by payload, per §4.2.
//
// If the payload exceeds MaxCompressedPayloadBytes, fails with
// sdalerr.ParcelTooLarge — callers must chunk (§3's invariant, §8 property 3).
func EncodeParcel(p EncodeParcelParams) ([]byte, error) {
	if len(p.Payload) > MaxCompressedPayloadBytes {
		return nil, &sdalerr.ParcelTooLarge{PID: p.Desc, Size: len(p.Payload)}
	}

	pid := p.PID
	if pid == 0 {
		pid = EncodeParcelID(ParcelID{
			OffsetUnits: p.OffsetUnits,
			SizeIndex:   p.SizeIndex,
			Redundancy:  p.Redundancy,
			External:    p.External,
		})
	}

	// Open question (§9) resolved: populate cmp_size_hi/lo (in bits) for
	// uncompressed parcels too, rather than leaving it at 0.
	sizeBits := uint32(len(p.Payload)) * 8

	uncompTotal := DataOffset + p.UncompressedLen
	uncompSat := uncompTotal
	if uncompSat > 0xFFFF {
		uncompSat = 0xFFFF
	}

	hdr := PclHdr{
		ParcelID:        pid,
		Desc:            p.Desc,
		Type:            p.Type,
		Region:          p.Region,
		EndianSwap:      0,
		CmpSizeHi:       uint8(sizeBits >> 16),
		CmpSizeLo:       uint16(sizeBits & 0xFFFF),
		CompressType:    p.CompressType,
		DataOffset:      DataOffset,
		UncompSizeSat:   uint16(uncompSat),
		ExtensionOffset: 0,
	}

	out := make([]byte, 0, HeaderSize+len(p.Payload))
	out = append(out, hdr.Marshal()...)
	out = append(out, p.Payload...)
	return out, nil
}
