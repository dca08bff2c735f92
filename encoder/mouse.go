package encoder

import (
	"strconv"
	"unicode/utf8"
)

// MouseTrackingMode selects which mouse events, if any, are reported.
type MouseTrackingMode int

const (
	MouseTrackingDisabled MouseTrackingMode = iota
	MouseTrackingX10
	MouseTrackingNormal
	MouseTrackingHighlight
	MouseTrackingMotion
	MouseTrackingAny
)

// MouseCoordinateFormat selects how a reported event's coordinates and
// button code are serialized.
//
// https://invisible-island.net/xterm/ctlseqs/ctlseqs.html#h2-Mouse-Tracking
// https://invisible-island.net/xterm/ctlseqs/ctlseqs.html#h3-Extended-coordinates
type MouseCoordinateFormat int

const (
	MouseCoordinateX10 MouseCoordinateFormat = iota
	MouseCoordinateUtf8
	MouseCoordinateSgr
	MouseCoordinateUrxvt
	MouseCoordinateSgrPixel
)

// MouseButton identifies a physical mouse button or wheel direction.
type MouseButton int

const (
	MouseButtonLeftClick MouseButton = iota
	MouseButtonRightClick
	MouseButtonMiddleClick
	MouseButtonWheelUp
	MouseButtonWheelDown
	MouseButtonWheelLeft
	MouseButtonWheelRight
)

// activeMouseButtons tracks which buttons are currently held, needed to
// gate Motion-mode move reporting (report only while a button is down).
//
// Grounded on encoder.rs's bitflags! ActiveMouseButtons.
type activeMouseButtons uint8

const (
	activeNone        activeMouseButtons = 0
	activeLeftClick   activeMouseButtons = 0b0000_0001
	activeRightClick  activeMouseButtons = 0b0000_0010
	activeMiddleClick activeMouseButtons = 0b0000_0100
	activeWheelUp     activeMouseButtons = 0b0000_1000
	activeWheelDown   activeMouseButtons = 0b0001_0000
	activeWheelLeft   activeMouseButtons = 0b0010_0000
	activeWheelRight  activeMouseButtons = 0b0100_0000
)

func mouseButtonFlag(button MouseButton) activeMouseButtons {
	switch button {
	case MouseButtonLeftClick:
		return activeLeftClick
	case MouseButtonRightClick:
		return activeRightClick
	case MouseButtonMiddleClick:
		return activeMiddleClick
	case MouseButtonWheelUp:
		return activeWheelUp
	case MouseButtonWheelDown:
		return activeWheelDown
	case MouseButtonWheelLeft:
		return activeWheelLeft
	case MouseButtonWheelRight:
		return activeWheelRight
	}
	return activeNone
}

// MouseEventKind tags which field of MouseEvent applies. Move is a
// supplement over the reference, which only models ButtonPress/
// ButtonRelease - see SPEC_FULL.md section 4.6's motion-reporting note.
type MouseEventKind int

const (
	MouseEventPress MouseEventKind = iota
	MouseEventRelease
	MouseEventMove
)

// MouseEvent is one mouse interaction, in pixel coordinates.
type MouseEvent struct {
	Kind     MouseEventKind
	Button   MouseButton
	Position Vector2
}

// OnMouseEvent encodes event per the active tracking mode and coordinate
// format, writing the result to output. Events the current tracking mode
// doesn't report (e.g. any event under Disabled, a plain move under
// Normal) produce no output.
//
// Grounded on encoder.rs's Encoder::on_mouse_event.
func (e *Encoder) OnMouseEvent(event MouseEvent, output func([]byte)) {
	e.encodeBuffer = e.encodeBuffer[:0]

	switch event.Kind {
	case MouseEventPress:
		e.activeMouseButtons |= mouseButtonFlag(event.Button)
	case MouseEventRelease:
		e.activeMouseButtons &^= mouseButtonFlag(event.Button)
	}

	switch e.MouseTrackingMode {
	case MouseTrackingDisabled:
		// nothing reports

	case MouseTrackingX10:
		if event.Kind != MouseEventPress {
			return
		}
		e.encodeX10ButtonEvent(event, output)

	case MouseTrackingNormal, MouseTrackingMotion, MouseTrackingAny:
		e.encodeNormalModeEvent(event, output)

	case MouseTrackingHighlight:
		// Highlight-mode tracking requires a cooperating program that
		// responds with its own highlight-region report; left
		// unimplemented, matching the reference (see SPEC_FULL.md §9).
	}
}

func (e *Encoder) encodeX10ButtonEvent(event MouseEvent, output func([]byte)) {
	var eventCode byte
	switch event.Button {
	// https://invisible-island.net/xterm/ctlseqs/ctlseqs.html#h3-X10-compatibility-mode
	case MouseButtonLeftClick:
		eventCode = 0
	case MouseButtonRightClick:
		eventCode = 1
	case MouseButtonMiddleClick:
		eventCode = 2
	// https://invisible-island.net/xterm/ctlseqs/ctlseqs.html#h3-Wheel-mice
	case MouseButtonWheelUp:
		eventCode = 64
	case MouseButtonWheelDown:
		eventCode = 64 + 1
	case MouseButtonWheelLeft:
		eventCode = 64 + 2
	case MouseButtonWheelRight:
		eventCode = 64 + 3
	}
	e.encodeBuffer = append(e.encodeBuffer, "\x1b[M"...)
	e.encodeBuffer = append(e.encodeBuffer, eventCode+32)
	format := e.MouseCoordinateFormat
	if format != MouseCoordinateUtf8 {
		format = MouseCoordinateX10
	}
	e.appendMousePosition(event.Position, format)
	output(e.encodeBuffer)
}

// encodeNormalModeEvent handles Normal/Motion/Any tracking. A motion
// report (event.Kind == MouseEventMove) is only emitted under Motion
// while a button is held, or unconditionally under Any - the
// "supplemented" behavior SPEC_FULL.md calls for in place of the
// reference's disabled report_motion_event branch.
func (e *Encoder) encodeNormalModeEvent(event MouseEvent, output func([]byte)) {
	var buttonEventCode byte
	isPressed := true
	isMotion := false

	switch event.Kind {
	case MouseEventPress:
		switch event.Button {
		case MouseButtonLeftClick:
			buttonEventCode |= 0b0000_0000
		case MouseButtonRightClick:
			buttonEventCode |= 0b0000_0001
		case MouseButtonMiddleClick:
			buttonEventCode |= 0b0000_0010
		case MouseButtonWheelUp:
			buttonEventCode = 64
		case MouseButtonWheelDown:
			buttonEventCode = 64 + 1
		case MouseButtonWheelLeft:
			buttonEventCode = 64 + 2
		case MouseButtonWheelRight:
			buttonEventCode = 64 + 3
		default:
			return
		}
	case MouseEventRelease:
		buttonEventCode = 0b0000_0011
		isPressed = false
	case MouseEventMove:
		reportMotion := e.MouseTrackingMode == MouseTrackingAny ||
			(e.MouseTrackingMode == MouseTrackingMotion && e.activeMouseButtons != activeNone)
		if !reportMotion {
			return
		}
		isMotion = true
		buttonEventCode = e.heldButtonCode()
	}

	if e.ModifierKey.has(ModifierShift) {
		buttonEventCode |= 0b0000_0100
	}
	if e.ModifierKey.has(ModifierMeta) {
		buttonEventCode |= 0b0000_1000
	}
	if e.ModifierKey.has(ModifierCtrl) {
		buttonEventCode |= 0b0001_0000
	}
	if isMotion {
		buttonEventCode |= 0b0010_0000
	}

	switch e.MouseCoordinateFormat {
	case MouseCoordinateX10, MouseCoordinateUtf8:
		e.encodeBuffer = append(e.encodeBuffer, "\x1b[M"...)
		code := buttonEventCode + 32 // ensure an ASCII-range byte
		e.encodeBuffer = append(e.encodeBuffer, code)
		e.appendMousePosition(event.Position, e.MouseCoordinateFormat)
		output(e.encodeBuffer)

	case MouseCoordinateSgr, MouseCoordinateSgrPixel:
		e.encodeBuffer = append(e.encodeBuffer, "\x1b[<"...)
		e.encodeBuffer = strconv.AppendInt(e.encodeBuffer, int64(buttonEventCode), 10)
		e.encodeBuffer = append(e.encodeBuffer, ';')
		e.appendMousePosition(event.Position, e.MouseCoordinateFormat)
		if isPressed {
			e.encodeBuffer = append(e.encodeBuffer, 'M')
		} else {
			e.encodeBuffer = append(e.encodeBuffer, 'm')
		}
		output(e.encodeBuffer)

	case MouseCoordinateUrxvt:
		e.encodeBuffer = append(e.encodeBuffer, "\x1b["...)
		e.encodeBuffer = strconv.AppendInt(e.encodeBuffer, int64(buttonEventCode), 10)
		e.encodeBuffer = append(e.encodeBuffer, ';')
		e.appendMousePosition(event.Position, e.MouseCoordinateFormat)
		e.encodeBuffer = append(e.encodeBuffer, 'M')
		output(e.encodeBuffer)
	}
}

// heldButtonCode reports the lowest-numbered held button's event code,
// or 3 ("no button") when none is held - xterm's convention for
// any-event motion reports with nothing pressed.
func (e *Encoder) heldButtonCode() byte {
	switch {
	case e.activeMouseButtons&activeLeftClick != 0:
		return 0
	case e.activeMouseButtons&activeRightClick != 0:
		return 1
	case e.activeMouseButtons&activeMiddleClick != 0:
		return 2
	default:
		return 3
	}
}

// appendMousePosition appends pos, converted from pixels to a 1-based
// grid cell via glyph size = ceil(window/grid), in format.
//
// Grounded on encoder.rs's Encoder::encode_mouse_position, with the Utf8
// branch implemented (the reference leaves it empty) per SPEC_FULL.md
// section 4.6: coordinates of 96 and up (128 or more once +32'd) are
// UTF-8-encoded as a 2-byte sequence rather than truncated, extending
// the addressable range from 223 to 2015.
func (e *Encoder) appendMousePosition(pos Vector2, format MouseCoordinateFormat) {
	glyphX := ceilDiv(e.WindowSize.X, max(e.GridSize.X, 1))
	glyphY := ceilDiv(e.WindowSize.Y, max(e.GridSize.Y, 1))
	glyphX, glyphY = max(glyphX, 1), max(glyphY, 1)

	gridX := pos.X/glyphX + 1
	gridY := pos.Y/glyphY + 1

	switch format {
	case MouseCoordinateX10:
		// X10 adds 32 to everything to land in a printable ASCII byte.
		e.encodeBuffer = append(e.encodeBuffer, clampByte(gridX+32), clampByte(gridY+32))

	case MouseCoordinateUtf8:
		e.encodeBuffer = appendUTF8MouseCoord(e.encodeBuffer, gridX+32)
		e.encodeBuffer = appendUTF8MouseCoord(e.encodeBuffer, gridY+32)

	case MouseCoordinateSgr, MouseCoordinateUrxvt:
		e.encodeBuffer = strconv.AppendInt(e.encodeBuffer, int64(gridX), 10)
		e.encodeBuffer = append(e.encodeBuffer, ';')
		e.encodeBuffer = strconv.AppendInt(e.encodeBuffer, int64(gridY), 10)

	case MouseCoordinateSgrPixel:
		e.encodeBuffer = strconv.AppendInt(e.encodeBuffer, int64(pos.X), 10)
		e.encodeBuffer = append(e.encodeBuffer, ';')
		e.encodeBuffer = strconv.AppendInt(e.encodeBuffer, int64(pos.Y), 10)
	}
}

// appendUTF8MouseCoord appends value as a single byte when it fits in
// ASCII range, or as a 2-byte UTF-8 sequence otherwise, capped at 2047
// (the largest value a 2-byte UTF-8 sequence can carry), i.e. a
// column/row of up to 2015 once the +32 offset is subtracted back out.
func appendUTF8MouseCoord(buf []byte, value int) []byte {
	if value < 128 {
		return append(buf, byte(value))
	}
	if value > 2047 {
		value = 2047
	}
	var encoded [utf8.UTFMax]byte
	n := utf8.EncodeRune(encoded[:], rune(value))
	return append(buf, encoded[:n]...)
}

func clampByte(v int) byte {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return byte(v)
}

func ceilDiv(a, b int) int {
	if b == 0 {
		return a
	}
	return (a + b - 1) / b
}
