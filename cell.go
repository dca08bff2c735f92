package headlessterm

import (
	"image/color"

	"github.com/danielgatis/go-vt100-core/display"
)

// CellFlags is a bitmask of cell rendering attributes, a superset of
// display.StyleFlags plus the wide-character bookkeeping uniwidth-based
// writing needs at the public-API layer.
type CellFlags uint16

const (
	CellFlagBold CellFlags = 1 << iota
	CellFlagDim
	CellFlagItalic
	CellFlagUnderline
	CellFlagBlinking
	CellFlagInverse
	CellFlagHidden
	CellFlagStrike
	CellFlagWideChar
	CellFlagWideCharSpacer
)

// Cell stores the character, colors, and formatting attributes for one grid
// position. Wide characters (2 columns) use a spacer cell in the second
// position; width.go's uniwidth-backed helpers decide which runes need one.
//
// Grounded on the teacher's cell.go, trimmed of the Image and Hyperlink
// fields: this module's display.Cell (C4) carries no per-cell image or
// hyperlink payload, and SPEC_FULL.md section 4's treatment of SetHyperlink
// routes the link as a whole-terminal TitleProvider notification rather
// than a per-cell tag, so there is nothing to populate those fields with.
type Cell struct {
	Char  rune
	Fg    color.Color
	Bg    color.Color
	Flags CellFlags
}

// NewCell returns a cell initialized with a space and the default colors.
func NewCell() Cell {
	return Cell{
		Char: ' ',
		Fg:   &NamedColor{Name: NamedColorForeground},
		Bg:   &NamedColor{Name: NamedColorBackground},
	}
}

// HasFlag returns true if the specified flag is set.
func (c *Cell) HasFlag(flag CellFlags) bool { return c.Flags&flag != 0 }

// SetFlag enables the specified flag without affecting others.
func (c *Cell) SetFlag(flag CellFlags) { c.Flags |= flag }

// ClearFlag disables the specified flag without affecting others.
func (c *Cell) ClearFlag(flag CellFlags) { c.Flags &^= flag }

// IsWide returns true if this cell contains a wide character (CJK, emoji,
// etc.) that occupies 2 columns.
func (c *Cell) IsWide() bool { return c.HasFlag(CellFlagWideChar) }

// IsWideSpacer returns true if this is the second cell of a wide character
// (should be skipped during rendering).
func (c *Cell) IsWideSpacer() bool { return c.HasFlag(CellFlagWideCharSpacer) }

// cellFromDisplay converts a display.Cell plus whether it trails a wide
// character into the public Cell representation, wrapping its Rgb pair
// as image/color RGBA values.
func cellFromDisplay(dc display.Cell, isWideSpacer bool) Cell {
	c := Cell{
		Char: dc.Character,
		Fg:   rgbToColor(dc.Foreground),
		Bg:   rgbToColor(dc.Background),
	}
	if dc.StyleFlags.Has(display.StyleFlagBold) {
		c.SetFlag(CellFlagBold)
	}
	if dc.StyleFlags.Has(display.StyleFlagDim) {
		c.SetFlag(CellFlagDim)
	}
	if dc.StyleFlags.Has(display.StyleFlagItalic) {
		c.SetFlag(CellFlagItalic)
	}
	if dc.StyleFlags.Has(display.StyleFlagUnderline) {
		c.SetFlag(CellFlagUnderline)
	}
	if dc.StyleFlags.Has(display.StyleFlagBlinking) {
		c.SetFlag(CellFlagBlinking)
	}
	if dc.StyleFlags.Has(display.StyleFlagInverse) {
		c.SetFlag(CellFlagInverse)
	}
	if dc.StyleFlags.Has(display.StyleFlagHidden) {
		c.SetFlag(CellFlagHidden)
	}
	if dc.StyleFlags.Has(display.StyleFlagStrikethrough) {
		c.SetFlag(CellFlagStrike)
	}
	if isWideRune(dc.Character) {
		c.SetFlag(CellFlagWideChar)
	}
	if isWideSpacer {
		c.SetFlag(CellFlagWideCharSpacer)
	}
	return c
}
