package display

// Palette256 is the standard 256-color palette: 16 named colors (0-15), a
// 216-entry 6x6x6 color cube (16-231), and 24 grayscale steps (232-255).
//
// Grounded on the teacher's colors.go (DefaultPalette), which builds the
// identical layout with image/color.RGBA; this module uses the local Rgb
// type instead so the display package has no dependency on image/color
// for a value it only ever compares/copies, never draws.
var Palette256 = buildPalette256()

func buildPalette256() [256]Rgb {
	var p [256]Rgb
	named := [16]Rgb{
		{0, 0, 0}, {205, 49, 49}, {13, 188, 121}, {229, 229, 16},
		{36, 114, 200}, {188, 63, 188}, {17, 168, 205}, {229, 229, 229},
		{102, 102, 102}, {241, 76, 76}, {35, 209, 139}, {245, 245, 67},
		{59, 142, 234}, {214, 112, 214}, {41, 184, 219}, {255, 255, 255},
	}
	copy(p[:16], named[:])

	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				p[i] = Rgb{R: uint8(r * 51), G: uint8(g * 51), B: uint8(b * 51)}
				i++
			}
		}
	}
	for j := 0; j < 24; j++ {
		gray := uint8(8 + j*10)
		p[232+j] = Rgb{R: gray, G: gray, B: gray}
	}
	return p
}

// DefaultForeground and DefaultBackground match the teacher's defaults.
var (
	DefaultForeground = Rgb{229, 229, 229}
	DefaultBackground = Rgb{0, 0, 0}
)

// ColourFromTable looks an index up in Palette256, clamping out-of-range
// indices to the table's bounds. Grounded on
// original_source/src/terminal/src/terminal_core.rs's
// display.get_colour_from_table, called from SetForegroundColourTable /
// SetBackgroundColourTable.
func ColourFromTable(index int) Rgb {
	if index < 0 {
		index = 0
	}
	if index > 255 {
		index = 255
	}
	return Palette256[index]
}
