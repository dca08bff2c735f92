// Package display implements the scrollback-backed viewport grid described
// by SPEC_FULL.md component C4: a fixed-size, circularly-addressed cell
// grid for the visible screen, backed by a ring-of-lines scrollback for
// content scrolled out of view.
package display

// StyleFlags is a bitset of SGR text attributes, one bit per style.
//
// Grounded on original_source/src/terminal/src/primitives.rs's
// bitflags!-derived StyleFlags, translated to a plain Go bitmask type since
// Go has no bitflags macro; the teacher's cell.go uses the same
// has/set/clear accessor naming this mirrors.
type StyleFlags uint8

const (
	StyleFlagNone          StyleFlags = 0b0000_0000
	StyleFlagBold          StyleFlags = 0b0000_0001
	StyleFlagDim           StyleFlags = 0b0000_0010
	StyleFlagItalic        StyleFlags = 0b0000_0100
	StyleFlagUnderline     StyleFlags = 0b0000_1000
	StyleFlagBlinking      StyleFlags = 0b0001_0000
	StyleFlagInverse       StyleFlags = 0b0010_0000
	StyleFlagHidden        StyleFlags = 0b0100_0000
	StyleFlagStrikethrough StyleFlags = 0b1000_0000
)

// Has reports whether every bit in flag is set.
func (f StyleFlags) Has(flag StyleFlags) bool { return f&flag == flag }

// Set returns f with flag's bits set.
func (f StyleFlags) Set(flag StyleFlags) StyleFlags { return f | flag }

// Clear returns f with flag's bits cleared.
func (f StyleFlags) Clear(flag StyleFlags) StyleFlags { return f &^ flag }

// Rgb is a true-color triple with no implicit scaling.
type Rgb struct {
	R, G, B uint8
}

// Pen is the "current" rendering attributes applied to every newly written
// cell, analogous to a text cursor's active style in a word processor.
//
// Grounded on primitives.rs's Pen.
type Pen struct {
	Background Rgb
	Foreground Rgb
	StyleFlags StyleFlags
}

// Cell is one grid/scrollback cell: a rune plus the rendering attributes it
// was written with. The reference pads this to 16 bytes so it packs evenly
// into its double-mapped ring; Go's GC-managed rune (int32) plus two
// Rgb structs and a one-byte flag set serialises to the same 4+3+3+1=11
// logical bytes (padded by the compiler to whatever alignment it chooses) -
// no manual padding is added here since ring.Ring[T]'s unsafe.Sizeof-based
// sizing works for whatever layout the Go compiler picks.
//
// Grounded on primitives.rs's Cell; teacher's cell.go contributes the
// colour.RGBA-flavoured accessor naming adapted to the Rgb type above.
type Cell struct {
	Character  rune
	Background Rgb
	Foreground Rgb
	StyleFlags StyleFlags
}

// ColourFromPen copies pen's colours and style flags onto the cell,
// leaving Character untouched. Grounded on primitives.rs's
// Cell::colour_from_pen.
func (c *Cell) ColourFromPen(pen Pen) {
	c.Background = pen.Background
	c.Foreground = pen.Foreground
	c.StyleFlags = pen.StyleFlags
}

// BlankCell returns a space cell painted with pen, used to fill erased or
// newly-inserted regions.
func BlankCell(pen Pen) Cell {
	c := Cell{Character: ' '}
	c.ColourFromPen(pen)
	return c
}
