// Package numeric implements the low-level numeric primitives shared by
// every SDAL payload encoder: NTU coordinate conversion, the Type-1/Type-4/
// Type-5 variable-length integer codecs, the MSB-first bit writer, and
// canonical-Huffman code-length balancing.
package numeric

import "math"

// MinI32 and MaxI32 bound the clamp applied by ToNTU.
const (
	MinI32 = math.MinInt32
	MaxI32 = math.MaxInt32
)

// ToNTU converts a coordinate in decimal degrees to NavTech Units: the
// rounded value of degrees*100000, clamped to the int32 range.
func ToNTU(deg float64) int32 {
	scaled := math.Round(deg * 100000)
	if scaled > MaxI32 {
		return MaxI32
	}
	if scaled < MinI32 {
		return MinI32
	}
	return int32(scaled)
}

// FromNTU converts a NavTech Unit value back to decimal degrees. Used by
// tests and by delta computations that need the degree-space midpoint.
func FromNTU(ntu int32) float64 {
	return float64(ntu) / 100000
}
