package display

// DefaultViewportSize is the grid allocated before the first resize, large
// enough that most shells never need to resize before their first prompt.
var DefaultViewportSize = Vector2{X: 128, Y: 128}

// Vector2 is a simple (x, y) pair used for sizes and positions.
type Vector2 struct {
	X, Y int
}

// LineStatus tracks the live length of a visible row and whether its end
// was a hard linebreak (as opposed to a wrap forced by hitting the right
// margin). Grounded on original_source/src/terminal/src/viewport.rs's
// LineStatus.
type LineStatus struct {
	Length      int
	IsLinebreak bool
}

// ScrollRegion is a 0-based, inclusive row range that ScrollUp/ScrollDown
// and the linefeed-at-bottom-margin path are confined to. A nil
// *ScrollRegion on Viewport means "the whole grid".
type ScrollRegion struct {
	Top, Bottom int
}

// Viewport is one fixed-size, circularly row-addressed character grid: the
// primary screen or the alternate screen. Writing past the last row
// doesn't memmove anything; it ejects the oldest row into a
// ScrollbackBuffer and advances a row_offset instead.
//
// Grounded 1:1 on original_source/src/terminal/src/viewport.rs's Viewport:
// write_ascii/write_utf8/write_cell, wrap_cursor, next_line_cursor,
// eject_oldest_line_into_scrollbuffer, and set_size's copy-reflow-replay
// resize algorithm all carry over. Scroll-region-aware ScrollUp/ScrollDown
// and the scroll-region override of next_line_cursor are a SPEC_FULL.md
// section 4.4 supplement resolving the reference's TODO-stubbed
// ScrollUp/ScrollDown.
type Viewport struct {
	cursor      Vector2
	size        Vector2
	rowOffset   int
	pen         Pen
	cells       []Cell
	rowStatus   []LineStatus
	scrollback  *ScrollbackBuffer
	scrollRegion *ScrollRegion
	lineDrawing bool
}

// SetLineDrawingCharset toggles whether WriteRune/WriteASCII translate
// incoming bytes through LineDrawingTable, mirroring the effect of
// designating the DEC special-graphics charset via "ESC ( 0" / "ESC ( B".
func (v *Viewport) SetLineDrawingCharset(enabled bool) { v.lineDrawing = enabled }

// NewViewport allocates a viewport of DefaultViewportSize backed by a fresh
// ScrollbackBuffer with room for 4096 scrollback lines and 128x that many
// cells, mirroring the reference's ScrollbackBuffer::default allocation
// granularity multiplier.
func NewViewport() (*Viewport, error) {
	sb, err := NewScrollbackBuffer(4096, 4096*128)
	if err != nil {
		return nil, err
	}
	v := &Viewport{size: DefaultViewportSize, scrollback: sb}
	v.allocateGrid()
	return v, nil
}

// NewAlternateViewport allocates a viewport with no scrollback, as the
// alternate screen never accumulates history.
func NewAlternateViewport() *Viewport {
	v := &Viewport{size: DefaultViewportSize}
	v.allocateGrid()
	return v
}

func (v *Viewport) allocateGrid() {
	v.cells = make([]Cell, v.size.X*v.size.Y)
	v.rowStatus = make([]LineStatus, v.size.Y)
}

func (v *Viewport) GetScrollbackBuffer() *ScrollbackBuffer { return v.scrollback }

// SetSize resizes the grid to newSize, reflowing live content the way the
// reference does: copy into a temporary buffer in logical row order, reset
// the grid, and replay each row's live cells through write_cell, inserting
// a line break only where the source row had IsLinebreak set (so
// wrap-induced breaks reflow instead of staying fixed).
func (v *Viewport) SetSize(newSize Vector2) {
	if newSize.X < 2 || newSize.Y < 1 {
		panic("display: viewport size must be at least 2x1")
	}
	if newSize == v.size {
		return
	}
	oldRowOffset := v.rowOffset
	oldCursor := v.cursor
	oldSize := v.size
	oldCells := v.cells
	oldRowStatus := v.rowStatus

	v.size = newSize
	v.allocateGrid()
	v.rowOffset = 0
	v.cursor = Vector2{}

	for rowIndex := 0; rowIndex < oldSize.Y; rowIndex++ {
		physicalRow := (rowIndex + oldRowOffset) % oldSize.Y
		line := oldRowStatus[physicalRow]
		if line.Length == 0 && !line.IsLinebreak {
			break
		}
		rowStart := physicalRow * oldSize.X
		for col := 0; col < line.Length; col++ {
			v.writeCell(oldCells[rowStart+col])
		}
		if line.IsLinebreak {
			v.nextLineCursor(true)
		}
	}
	v.SetCursor(oldCursor)
}

func (v *Viewport) GetSize() Vector2 { return v.size }

// SetCursor clamps cursor into [0,size.X-1]x[0,size.Y-1] and assigns it.
func (v *Viewport) SetCursor(cursor Vector2) {
	if cursor.X > v.size.X-1 {
		cursor.X = v.size.X - 1
	}
	if cursor.Y > v.size.Y-1 {
		cursor.Y = v.size.Y - 1
	}
	if cursor.X < 0 {
		cursor.X = 0
	}
	if cursor.Y < 0 {
		cursor.Y = 0
	}
	v.cursor = cursor
}

func (v *Viewport) GetCursor() Vector2 { return v.cursor }

// GetRow returns the live cell span and status for logical row.
func (v *Viewport) GetRow(row int) ([]Cell, *LineStatus) {
	physical := v.rowIndex(row)
	i := v.size.X * physical
	return v.cells[i : i+v.size.X], &v.rowStatus[physical]
}

func (v *Viewport) GetPen() Pen      { return v.pen }
func (v *Viewport) SetPen(pen Pen)   { v.pen = pen }
func (v *Viewport) GetPenPtr() *Pen  { return &v.pen }

// SetScrollRegion stores a 0-based inclusive scroll region, or clears it
// (nil) to mean the full grid.
func (v *Viewport) SetScrollRegion(region *ScrollRegion) { v.scrollRegion = region }
func (v *Viewport) GetScrollRegion() *ScrollRegion       { return v.scrollRegion }

func (v *Viewport) regionBounds() (top, bottom int) {
	if v.scrollRegion == nil {
		return 0, v.size.Y - 1
	}
	return v.scrollRegion.Top, v.scrollRegion.Bottom
}

// WriteASCII mirrors write_ascii: control bytes move the cursor or ring the
// bell; printable ASCII is written as a cell via WriteRune.
func (v *Viewport) WriteASCII(b byte) {
	switch {
	case b == '\n':
		v.nextLineCursorWithRegion(true)
	case b == '\r':
		v.cursor.X = 0
	case b == '\x08':
		if v.cursor.X > 0 {
			v.cursor.X--
		}
	case b >= ' ' && b <= '~':
		v.WriteRune(rune(b))
	case b == '\x07':
		// bell; forwarded to the bell provider by the executor, not here
	default:
		// unhandled control byte; ignored at this layer
	}
}

// WriteRune stamps r at the cursor with the current pen and advances,
// translating through LineDrawingTable first if the line-drawing charset
// is designated.
func (v *Viewport) WriteRune(r rune) {
	if v.lineDrawing {
		r = TranslateLineDrawing(r)
	}
	cell := Cell{Character: r}
	cell.ColourFromPen(v.pen)
	v.writeCell(cell)
}

// WriteUTF8 is WriteRune under the name the reference uses for
// non-ASCII-path writes; both funnel into the same writeCell.
func (v *Viewport) WriteUTF8(r rune) { v.WriteRune(r) }

func (v *Viewport) writeCell(cell Cell) {
	v.wrapCursor()
	row := v.currentRowIndex()
	status := &v.rowStatus[row]
	if v.cursor.X+1 > status.Length {
		status.Length = v.cursor.X + 1
	}
	index := row*v.size.X + v.cursor.X
	v.cells[index] = cell
	v.cursor.X++
}

func (v *Viewport) wrapCursor() {
	if v.cursor.X == v.size.X {
		v.nextLineCursorWithRegion(false)
	}
}

// nextLineCursorWithRegion is next_line_cursor, generalised per SPEC_FULL.md
// section 4.4: if the cursor sits on the scroll region's bottom row, a
// linefeed performs a region-scoped ScrollUp(1) instead of the normal
// eject/advance path.
func (v *Viewport) nextLineCursorWithRegion(isLinebreak bool) {
	_, bottom := v.regionBounds()
	if isLinebreak && v.cursor.Y == bottom && v.hasRestrictedRegion() {
		v.scrollRegionRows(1, true)
		if isLinebreak {
			row := v.currentRowIndex()
			v.rowStatus[row].IsLinebreak = true
		}
		v.cursor.X = 0
		return
	}
	v.nextLineCursor(isLinebreak)
}

func (v *Viewport) hasRestrictedRegion() bool {
	if v.scrollRegion == nil {
		return false
	}
	top, bottom := v.regionBounds()
	return top > 0 || bottom < v.size.Y-1
}

func (v *Viewport) nextLineCursor(isLinebreak bool) {
	currRow := v.currentRowIndex()
	if isLinebreak {
		v.rowStatus[currRow].IsLinebreak = true
	}
	v.cursor.X = 0
	v.cursor.Y++
	if v.cursor.Y == v.size.Y {
		v.ejectOldestLineIntoScrollback()
		v.cursor.Y = v.size.Y - 1
		v.rowOffset = (v.rowOffset + 1) % v.size.Y
	}
}

func (v *Viewport) rowIndex(row int) int {
	return (v.rowOffset + row) % v.size.Y
}

func (v *Viewport) currentRowIndex() int {
	return (v.rowOffset + v.cursor.Y) % v.size.Y
}

func (v *Viewport) ejectOldestLineIntoScrollback() {
	if v.scrollback == nil {
		// alternate viewport: discard, matching the reference's choice to
		// give the alternate screen no scrollback at all
		ejectRow := v.rowOffset
		i := v.size.X * ejectRow
		for j := 0; j < v.size.X; j++ {
			v.cells[i+j] = Cell{}
		}
		v.rowStatus[ejectRow] = LineStatus{}
		return
	}
	ejectRow := v.rowOffset
	i := v.size.X * ejectRow
	status := v.rowStatus[ejectRow]
	line := v.cells[i : i+status.Length]
	v.scrollback.ExtendCurrentLine(line)
	if status.IsLinebreak {
		v.scrollback.AdvanceLine()
	}
	for j := 0; j < v.size.X; j++ {
		v.cells[i+j] = Cell{}
	}
	v.rowStatus[ejectRow] = LineStatus{}
}

// ScrollUp shifts rows [top+1,bottom] up into [top,bottom-1] and blanks row
// bottom, n times (clamped to the region height); content scrolled off the
// region's top is discarded, never ejected into scrollback.
func (v *Viewport) ScrollUp(n int) { v.scrollRegionRows(n, true) }

// ScrollDown is ScrollUp's mirror: shifts [top,bottom-1] down into
// [top+1,bottom] and blanks row top.
func (v *Viewport) ScrollDown(n int) { v.scrollRegionRows(n, false) }

func (v *Viewport) scrollRegionRows(n int, up bool) {
	top, bottom := v.regionBounds()
	height := bottom - top + 1
	if height <= 0 {
		return
	}
	if n > height {
		n = height
	}
	for step := 0; step < n; step++ {
		if up {
			for row := top; row < bottom; row++ {
				v.copyRow(row+1, row)
			}
			v.blankRow(bottom)
		} else {
			for row := bottom; row > top; row-- {
				v.copyRow(row-1, row)
			}
			v.blankRow(top)
		}
	}
}

// CopyRowsWithin copies count logical rows starting at srcStart to start at
// dstStart, in the direction that keeps an overlapping shift correct (a
// forward shift copies high-to-low, a backward shift low-to-high).
// Grounded on viewport.rs's copy_lines_within, used by InsertLines/
// DeleteLines in the executor.
func (v *Viewport) CopyRowsWithin(srcStart, dstStart, count int) {
	if dstStart > srcStart {
		for i := count - 1; i >= 0; i-- {
			v.copyRow(srcStart+i, dstStart+i)
		}
		return
	}
	for i := 0; i < count; i++ {
		v.copyRow(srcStart+i, dstStart+i)
	}
}

func (v *Viewport) copyRow(srcRow, dstRow int) {
	src := v.rowIndex(srcRow)
	dst := v.rowIndex(dstRow)
	copy(v.cells[dst*v.size.X:(dst+1)*v.size.X], v.cells[src*v.size.X:(src+1)*v.size.X])
	v.rowStatus[dst] = v.rowStatus[src]
}

func (v *Viewport) blankRow(row int) {
	physical := v.rowIndex(row)
	i := physical * v.size.X
	for j := 0; j < v.size.X; j++ {
		v.cells[i+j] = Cell{}
	}
	v.rowStatus[physical] = LineStatus{}
}
