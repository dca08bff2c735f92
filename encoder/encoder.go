// Package encoder translates keyboard, mouse, focus, paste, and resize
// events into the outbound byte sequences a VT100-speaking child process
// expects, honoring whatever input modes are currently in effect.
//
// Grounded on original_source/src/vt100/src/encoder.rs's Encoder.
package encoder

import (
	"strconv"
	"unicode/utf8"
)

// Vector2 is a plain integer 2D point/size, kept local to this package the
// way parser.Vector2 is kept local to parser rather than shared, so encoder
// has no compile-time dependency on display or parser for a value it only
// ever carries through.
type Vector2 struct {
	X, Y int
}

// InputMode selects how cursor/keypad keys are encoded.
type InputMode int

const (
	InputModeNumeric InputMode = iota
	InputModeApplication
)

// ModifierKey is a bitset of held modifier keys.
//
// Grounded on encoder.rs's bitflags! ModifierKey.
type ModifierKey uint8

const (
	ModifierNone  ModifierKey = 0b0000_0000
	ModifierCtrl  ModifierKey = 0b0000_0001
	ModifierShift ModifierKey = 0b0000_0010
	ModifierAlt   ModifierKey = 0b0000_0100
	ModifierMeta  ModifierKey = 0b0000_1000
)

func (m ModifierKey) has(flag ModifierKey) bool { return m&flag == flag }

// ArrowKey identifies one of the four cursor-movement keys.
type ArrowKey int

const (
	ArrowUp ArrowKey = iota
	ArrowDown
	ArrowLeft
	ArrowRight
)

// FunctionKey identifies a fixed-sequence control key.
type FunctionKey int

const (
	FunctionKeyEscape FunctionKey = iota
	FunctionKeyTab
	FunctionKeyBackspace
	FunctionKeyEnter
	FunctionKeyLineFeed
	FunctionKeyDelete
)

// KeyCodeKind tags which field of KeyCode is populated; Go has no sum
// types, so KeyCode carries every payload field behind a discriminant,
// the same pattern parser.Command uses for parser.CommandKind.
type KeyCodeKind int

const (
	KeyCodeChar KeyCodeKind = iota
	KeyCodeArrow
	KeyCodeFunction
	KeyCodeModifier
)

// KeyCode is one key-press/release event.
type KeyCode struct {
	Kind     KeyCodeKind
	Char     rune
	Arrow    ArrowKey
	Function FunctionKey
	Modifier ModifierKey
}

// Encoder holds the mode state that shapes how key and mouse events are
// encoded, plus a reusable output buffer.
//
// Grounded on encoder.rs's Encoder struct; KeyType and its try_from_u16
// decoder are not carried over since nothing in this spec's command set
// reaches into per-key-class routing - only the four KeyCode payload
// kinds above are dispatched on.
type Encoder struct {
	ModifierKey           ModifierKey
	KeypadInputMode       InputMode
	CursorKeyInputMode    InputMode
	MouseTrackingMode     MouseTrackingMode
	MouseCoordinateFormat MouseCoordinateFormat
	WindowSize            Vector2
	GridSize              Vector2
	IsBracketedPasteMode  bool
	IsReportFocus         bool

	activeMouseButtons activeMouseButtons
	encodeBuffer       []byte
}

// New returns an Encoder with the reference's default mode state: no
// modifiers held, numeric keypad/cursor-key modes, mouse tracking
// disabled, X10 coordinate format, and a 1x1 window/grid size.
func New() *Encoder {
	return &Encoder{
		KeypadInputMode:       InputModeNumeric,
		CursorKeyInputMode:    InputModeNumeric,
		MouseTrackingMode:     MouseTrackingDisabled,
		MouseCoordinateFormat: MouseCoordinateX10,
		WindowSize:            Vector2{X: 1, Y: 1},
		GridSize:              Vector2{X: 1, Y: 1},
		encodeBuffer:          make([]byte, 0, 256),
	}
}

// OnKeyPress encodes key and writes the resulting bytes to output, or
// (for a modifier key) merges it into the held-modifier set without
// emitting anything.
func (e *Encoder) OnKeyPress(key KeyCode, output func([]byte)) {
	switch key.Kind {
	case KeyCodeChar:
		e.onCharacter(key.Char, output)
	case KeyCodeArrow:
		e.onArrowKey(key.Arrow, output)
	case KeyCodeFunction:
		e.onFunctionKey(key.Function, output)
	case KeyCodeModifier:
		e.ModifierKey |= key.Modifier
	}
}

// OnKeyRelease clears a released modifier from the held set; every other
// KeyCode kind has no release behavior (matches the reference, which
// ignores _output on release entirely).
func (e *Encoder) OnKeyRelease(key KeyCode) {
	if key.Kind == KeyCodeModifier {
		e.ModifierKey &^= key.Modifier
	}
}

func (e *Encoder) onCharacter(c rune, output func([]byte)) {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], c)
	data := buf[:n]
	if e.ModifierKey.has(ModifierCtrl) && n == 1 {
		if ctrl, ok := characterCtrlKey(data[0]); ok {
			output([]byte{ctrl})
			return
		}
	}
	output(data)
}

func (e *Encoder) onFunctionKey(key FunctionKey, output func([]byte)) {
	// Figure C-2: Function key control codes.
	var data []byte
	switch key {
	case FunctionKeyEscape:
		data = []byte{0x1b}
	case FunctionKeyTab:
		data = []byte{0x09}
	case FunctionKeyBackspace:
		data = []byte{0x08}
	case FunctionKeyEnter:
		data = []byte{0x0d}
	case FunctionKeyLineFeed:
		data = []byte{0x0a}
	case FunctionKeyDelete:
		data = []byte{0x7f}
	}
	output(data)
}

// characterCtrlKey maps a single ASCII byte to its VT220 control-key
// equivalent. Grounded on encoder.rs's get_character_ctrl_key /
// https://vt100.net/docs/vt220-rm/chapter3.html#T3-5.
func characterCtrlKey(b byte) (byte, bool) {
	switch b {
	case ' ', '2':
		return 0x00, true
	case '[', '3':
		return 0x1b, true
	case '\\', '4':
		return 0x1c, true
	case ']', '5':
		return 0x1d, true
	case '`', '6':
		return 0x1e, true
	case '/', '7':
		return 0x1f, true
	case '8':
		return 0x7f, true
	}
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 1, true
	}
	return 0, false
}

func (e *Encoder) onArrowKey(key ArrowKey, output func([]byte)) {
	// The extra-semicolon "CSI 1;5;A" form (rather than the more common
	// "CSI 1;5A") is preserved verbatim from the reference in both input
	// modes when Ctrl is held - a deliberately kept non-standard quirk,
	// not a bug (see DESIGN.md).
	if e.ModifierKey.has(ModifierCtrl) {
		switch key {
		case ArrowUp:
			output([]byte("\x1b[1;5;A"))
		case ArrowDown:
			output([]byte("\x1b[1;5;B"))
		case ArrowRight:
			output([]byte("\x1b[1;5;C"))
		case ArrowLeft:
			output([]byte("\x1b[1;5;D"))
		}
		return
	}
	if e.CursorKeyInputMode == InputModeApplication {
		switch key {
		case ArrowUp:
			output([]byte("\x1bOA"))
		case ArrowDown:
			output([]byte("\x1bOB"))
		case ArrowRight:
			output([]byte("\x1bOC"))
		case ArrowLeft:
			output([]byte("\x1bOD"))
		}
		return
	}
	switch key {
	case ArrowUp:
		output([]byte("\x1b[A"))
	case ArrowDown:
		output([]byte("\x1b[B"))
	case ArrowRight:
		output([]byte("\x1b[C"))
	case ArrowLeft:
		output([]byte("\x1b[D"))
	}
}

// OnWindowFocus reports a focus change, if focus reporting is enabled.
func (e *Encoder) OnWindowFocus(isFocus bool, output func([]byte)) {
	if !e.IsReportFocus {
		return
	}
	if isFocus {
		output([]byte("\x1b[I"))
	} else {
		output([]byte("\x1b[O"))
	}
}

// SetWindowSizeCharacters reports the grid size in characters via the
// xterm window-ops "report" sequence (CSI 18 ; cols ; rows t, i.e.
// size.X then size.Y).
func (e *Encoder) SetWindowSizeCharacters(size Vector2, output func([]byte)) {
	e.encodeBuffer = e.encodeBuffer[:0]
	e.encodeBuffer = append(e.encodeBuffer, "\x1b[18;"...)
	e.encodeBuffer = strconv.AppendInt(e.encodeBuffer, int64(size.X), 10)
	e.encodeBuffer = append(e.encodeBuffer, ';')
	e.encodeBuffer = strconv.AppendInt(e.encodeBuffer, int64(size.Y), 10)
	e.encodeBuffer = append(e.encodeBuffer, 't')
	output(e.encodeBuffer)
}

// PasteText writes buf to output, bracketed by CSI 200~/201~ when
// bracketed-paste mode is enabled.
func (e *Encoder) PasteText(buf []byte, output func([]byte)) {
	if !e.IsBracketedPasteMode {
		output(buf)
		return
	}
	output([]byte("\x1b[200~"))
	output(buf)
	output([]byte("\x1b[201~"))
}

