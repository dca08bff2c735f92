package executor

import (
	"github.com/danielgatis/go-vt100-core/display"
	"github.com/danielgatis/go-vt100-core/parser"
)

// applyGraphicStyles folds every GraphicStyle in styles into v's pen,
// in order, so a single SGR sequence with multiple parameters (e.g.
// "1;31" bold+red) applies them left to right the way a real terminal
// would. Grounded on terminal_core.rs's Pen::apply_style (not retrieved
// verbatim in the reference pack; reconstructed from command.rs's
// GraphicStyle variants and SPEC_FULL.md section 4.5's per-style table).
func applyGraphicStyles(v *display.Viewport, styles []parser.GraphicStyle) {
	pen := v.GetPen()
	for _, s := range styles {
		switch s {
		case parser.StyleResetAll:
			pen = display.Pen{Foreground: display.DefaultForeground, Background: display.DefaultBackground}
		case parser.StyleEnableBold:
			pen.StyleFlags = pen.StyleFlags.Set(display.StyleFlagBold)
		case parser.StyleEnableDim:
			pen.StyleFlags = pen.StyleFlags.Set(display.StyleFlagDim)
		case parser.StyleEnableItalic:
			pen.StyleFlags = pen.StyleFlags.Set(display.StyleFlagItalic)
		case parser.StyleEnableUnderline:
			pen.StyleFlags = pen.StyleFlags.Set(display.StyleFlagUnderline)
		case parser.StyleEnableBlinking:
			pen.StyleFlags = pen.StyleFlags.Set(display.StyleFlagBlinking)
		case parser.StyleEnableInverse:
			pen.StyleFlags = pen.StyleFlags.Set(display.StyleFlagInverse)
		case parser.StyleEnableHidden:
			pen.StyleFlags = pen.StyleFlags.Set(display.StyleFlagHidden)
		case parser.StyleEnableStrikethrough:
			pen.StyleFlags = pen.StyleFlags.Set(display.StyleFlagStrikethrough)
		case parser.StyleDisableWeight:
			pen.StyleFlags = pen.StyleFlags.Clear(display.StyleFlagBold).Clear(display.StyleFlagDim)
		case parser.StyleDisableItalic:
			pen.StyleFlags = pen.StyleFlags.Clear(display.StyleFlagItalic)
		case parser.StyleDisableUnderline:
			pen.StyleFlags = pen.StyleFlags.Clear(display.StyleFlagUnderline)
		case parser.StyleDisableBlinking:
			pen.StyleFlags = pen.StyleFlags.Clear(display.StyleFlagBlinking)
		case parser.StyleDisableInverse:
			pen.StyleFlags = pen.StyleFlags.Clear(display.StyleFlagInverse)
		case parser.StyleDisableHidden:
			pen.StyleFlags = pen.StyleFlags.Clear(display.StyleFlagHidden)
		case parser.StyleDisableStrikethrough:
			pen.StyleFlags = pen.StyleFlags.Clear(display.StyleFlagStrikethrough)
		case parser.StyleForegroundDefault:
			pen.Foreground = display.DefaultForeground
		case parser.StyleBackgroundDefault:
			pen.Background = display.DefaultBackground
		default:
			if rgb, ok := namedForeground(s); ok {
				pen.Foreground = rgb
				break
			}
			if rgb, ok := namedBackground(s); ok {
				pen.Background = rgb
			}
		}
	}
	v.SetPen(pen)
}

func namedForeground(s parser.GraphicStyle) (display.Rgb, bool) {
	idx, ok := standardColourIndex[s]
	if !ok {
		return display.Rgb{}, false
	}
	if _, isForeground := foregroundStyles[s]; !isForeground {
		return display.Rgb{}, false
	}
	return display.ColourFromTable(idx), true
}

func namedBackground(s parser.GraphicStyle) (display.Rgb, bool) {
	idx, ok := standardColourIndex[s]
	if !ok {
		return display.Rgb{}, false
	}
	if _, isBackground := backgroundStyles[s]; !isBackground {
		return display.Rgb{}, false
	}
	return display.ColourFromTable(idx), true
}

var foregroundStyles = map[parser.GraphicStyle]struct{}{
	parser.StyleForegroundBlack: {}, parser.StyleForegroundRed: {}, parser.StyleForegroundGreen: {},
	parser.StyleForegroundYellow: {}, parser.StyleForegroundBlue: {}, parser.StyleForegroundMagenta: {},
	parser.StyleForegroundCyan: {}, parser.StyleForegroundWhite: {},
	parser.StyleBrightForegroundBlack: {}, parser.StyleBrightForegroundRed: {}, parser.StyleBrightForegroundGreen: {},
	parser.StyleBrightForegroundYellow: {}, parser.StyleBrightForegroundBlue: {}, parser.StyleBrightForegroundMagenta: {},
	parser.StyleBrightForegroundCyan: {}, parser.StyleBrightForegroundWhite: {},
}

var backgroundStyles = map[parser.GraphicStyle]struct{}{
	parser.StyleBackgroundBlack: {}, parser.StyleBackgroundRed: {}, parser.StyleBackgroundGreen: {},
	parser.StyleBackgroundYellow: {}, parser.StyleBackgroundBlue: {}, parser.StyleBackgroundMagenta: {},
	parser.StyleBackgroundCyan: {}, parser.StyleBackgroundWhite: {},
	parser.StyleBrightBackgroundBlack: {}, parser.StyleBrightBackgroundRed: {}, parser.StyleBrightBackgroundGreen: {},
	parser.StyleBrightBackgroundYellow: {}, parser.StyleBrightBackgroundBlue: {}, parser.StyleBrightBackgroundMagenta: {},
	parser.StyleBrightBackgroundCyan: {}, parser.StyleBrightBackgroundWhite: {},
}

// standardColourIndex maps the 8 normal + 8 bright named SGR colours onto
// Palette256's first 16 slots, the same table every ANSI terminal uses.
var standardColourIndex = map[parser.GraphicStyle]int{
	parser.StyleForegroundBlack: 0, parser.StyleForegroundRed: 1, parser.StyleForegroundGreen: 2,
	parser.StyleForegroundYellow: 3, parser.StyleForegroundBlue: 4, parser.StyleForegroundMagenta: 5,
	parser.StyleForegroundCyan: 6, parser.StyleForegroundWhite: 7,
	parser.StyleBackgroundBlack: 0, parser.StyleBackgroundRed: 1, parser.StyleBackgroundGreen: 2,
	parser.StyleBackgroundYellow: 3, parser.StyleBackgroundBlue: 4, parser.StyleBackgroundMagenta: 5,
	parser.StyleBackgroundCyan: 6, parser.StyleBackgroundWhite: 7,
	parser.StyleBrightForegroundBlack: 8, parser.StyleBrightForegroundRed: 9, parser.StyleBrightForegroundGreen: 10,
	parser.StyleBrightForegroundYellow: 11, parser.StyleBrightForegroundBlue: 12, parser.StyleBrightForegroundMagenta: 13,
	parser.StyleBrightForegroundCyan: 14, parser.StyleBrightForegroundWhite: 15,
	parser.StyleBrightBackgroundBlack: 8, parser.StyleBrightBackgroundRed: 9, parser.StyleBrightBackgroundGreen: 10,
	parser.StyleBrightBackgroundYellow: 11, parser.StyleBrightBackgroundBlue: 12, parser.StyleBrightBackgroundMagenta: 13,
	parser.StyleBrightBackgroundCyan: 14, parser.StyleBrightBackgroundWhite: 15,
}

// eraseInDisplay mirrors terminal.rs's EraseInDisplay match arm: blank from
// the cursor to the end of the screen, from the start to the cursor, or the
// whole screen (SavedLines is treated the same as EntireDisplay here, as
// the reference does, since this layer has no separate "clear scrollback"
// signal).
func eraseInDisplay(v *display.Viewport, mode parser.EraseMode) {
	size := v.GetSize()
	cursor := v.GetCursor()
	pen := v.GetPen()
	switch mode {
	case parser.EraseFromCursorToEnd:
		for y := cursor.Y + 1; y < size.Y; y++ {
			blankRow(v, y, pen, size.X)
		}
		blankRange(v, cursor.Y, cursor.X, size.X, pen)
	case parser.EraseFromCursorToStart:
		for y := 0; y < cursor.Y; y++ {
			blankRow(v, y, pen, size.X)
		}
		blankRange(v, cursor.Y, 0, cursor.X+1, pen)
	case parser.EraseEntireDisplay, parser.EraseSavedLines:
		for y := 0; y < size.Y; y++ {
			blankRow(v, y, pen, size.X)
		}
	}
}

// eraseInLine mirrors terminal.rs's EraseInLine match arm.
func eraseInLine(v *display.Viewport, mode parser.EraseMode) {
	size := v.GetSize()
	cursor := v.GetCursor()
	pen := v.GetPen()
	switch mode {
	case parser.EraseFromCursorToEnd:
		blankRange(v, cursor.Y, cursor.X, size.X, pen)
	case parser.EraseFromCursorToStart:
		blankRange(v, cursor.Y, 0, cursor.X+1, pen)
	case parser.EraseEntireDisplay, parser.EraseSavedLines:
		blankRow(v, cursor.Y, pen, size.X)
	}
}

func blankRow(v *display.Viewport, row int, pen display.Pen, width int) {
	line, status := v.GetRow(row)
	for i := range line {
		line[i] = display.BlankCell(pen)
	}
	status.Length = width
	status.IsLinebreak = true
}

func blankRange(v *display.Viewport, row, from, to int, pen display.Pen) {
	line, _ := v.GetRow(row)
	if to > len(line) {
		to = len(line)
	}
	for i := from; i < to; i++ {
		line[i] = display.BlankCell(pen)
	}
}

// replaceWithSpaces mirrors ReplaceWithSpaces (ECH): overwrite total cells
// from the cursor rightward with blanks, without shifting anything.
func replaceWithSpaces(v *display.Viewport, total int) {
	cursor := v.GetCursor()
	pen := v.GetPen()
	line, _ := v.GetRow(cursor.Y)
	region := line[cursor.X:]
	if total > len(region) {
		total = len(region)
	}
	for i := 0; i < total; i++ {
		region[i] = display.BlankCell(pen)
	}
}

// insertSpaces mirrors InsertSpaces (ICH): shift the row's tail right by
// total, backfilling the gap with blanks.
func insertSpaces(v *display.Viewport, total int) {
	cursor := v.GetCursor()
	pen := v.GetPen()
	line, status := v.GetRow(cursor.Y)
	region := line[cursor.X:]
	if total > len(region) {
		total = len(region)
	}
	shift := len(region) - total
	copy(region[total:], region[:shift])
	for i := 0; i < total; i++ {
		region[i] = display.BlankCell(pen)
	}
	if status.Length+total > len(line) {
		status.Length = len(line)
	} else {
		status.Length += total
	}
}

// deleteCharacters mirrors DeleteCharacters (DCH): shift the row's tail
// left over the deleted span, shrinking the row's live length.
func deleteCharacters(v *display.Viewport, total int) {
	cursor := v.GetCursor()
	line, status := v.GetRow(cursor.Y)
	if cursor.X+1 >= len(line) {
		return
	}
	region := line[cursor.X+1:]
	if total > len(region) {
		total = len(region)
	}
	copy(region, region[total:])
	if status.Length < total {
		status.Length = 0
	} else {
		status.Length -= total
	}
}

// insertLines mirrors InsertLines (IL): push rows at and below the cursor
// down by total, clamped to the rows available below the cursor, and blank
// the newly opened rows.
func insertLines(v *display.Viewport, total int) {
	cursor := v.GetCursor()
	size := v.GetSize()
	linesAtCursor := size.Y - cursor.Y
	if total > linesAtCursor {
		total = linesAtCursor
	}
	totalCopy := linesAtCursor - total
	v.CopyRowsWithin(cursor.Y, cursor.Y+total, totalCopy)
	pen := v.GetPen()
	for i := 0; i < total; i++ {
		line, status := v.GetRow(cursor.Y + i)
		for j := range line {
			line[j] = display.BlankCell(pen)
		}
		status.Length = 0
		status.IsLinebreak = true
	}
}

// deleteLines mirrors DeleteLines (DL): pull rows below the deleted span
// up to the cursor, clamped the same way as insertLines, and blank the
// rows left empty at the bottom.
func deleteLines(v *display.Viewport, total int) {
	cursor := v.GetCursor()
	size := v.GetSize()
	linesAtCursor := size.Y - cursor.Y
	if total > linesAtCursor {
		total = linesAtCursor
	}
	totalCopy := linesAtCursor - total
	v.CopyRowsWithin(cursor.Y+total, cursor.Y, totalCopy)
	pen := v.GetPen()
	for i := 0; i < total; i++ {
		line, status := v.GetRow(cursor.Y + totalCopy + i)
		for j := range line {
			line[j] = display.BlankCell(pen)
		}
		status.Length = 0
		status.IsLinebreak = true
	}
}
