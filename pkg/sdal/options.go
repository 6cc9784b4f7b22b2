// Package sdal is the public build API: given a set of input regions, it
// assembles the full SDAL file set (region files, CARTOTOP, REGION(S).SDL,
// INIT.SDL, MTOC.SDL) and hands the result to an image writer (§2, §6).
package sdal

import (
	"github.com/KickingAnimal/SDAL-Builder/internal/geoext"
	"github.com/KickingAnimal/SDAL-Builder/internal/region"
)

// Progress reports build progress; stage names are stable identifiers such
// as "region:europe/cyprus" or "global-index".
type Progress func(stage string, done, total int)

// BuildOptions configures a Builder.
type BuildOptions struct {
	// WorkDir holds the SDL file set before ISO assembly. B+-trees and
	// density tiles are kept in memory; no .bpt or buffer files are written.
	WorkDir string

	// OutPath is the final ISO9660 image path.
	OutPath string

	// SupportedLangs lists the 3-character language codes translations
	// are requested in, beyond each region's native name.
	// Default: ["ENG"]
	SupportedLangs []string

	// FormatMode selects OEM or standard SDAL output layout.
	// Default: region.ModeSDAL
	FormatMode region.FormatMode

	// Progress, if set, is called as the build advances.
	Progress Progress

	// Projection reprojects road networks to UTM for density rasterization
	// (§6). When nil, the DENS{code}0/1.SDL pair is omitted from the build.
	Projection geoext.ProjectionService
}

// DefaultBuildOptions returns build options with defaults (§6: SupportedLangs
// defaults to English-only, FormatMode defaults to standard SDAL).
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		SupportedLangs: []string{"ENG"},
		FormatMode:     region.ModeSDAL,
	}
}

func (o BuildOptions) report(stage string, done, total int) {
	if o.Progress != nil {
		o.Progress(stage, done, total)
	}
}
