package headlessterm

import "github.com/danielgatis/go-vt100-core/display"

// CursorStyle determines how the cursor is rendered. Mirrors the xterm
// DECSCUSR numbering the teacher's original enum followed.
type CursorStyle int

const (
	CursorStyleBlinkingBlock CursorStyle = iota
	CursorStyleSteadyBlock
	CursorStyleBlinkingUnderline
	CursorStyleSteadyUnderline
	CursorStyleBlinkingBar
	CursorStyleSteadyBar
)

// Cursor is a read-only snapshot of the cursor's position and rendering
// style (0-based coordinates), returned by Terminal.Cursor. The live state
// lives on display.TerminalDisplay/display.Viewport; this is a copy taken
// under the display's lock.
type Cursor struct {
	Row     int
	Col     int
	Style   CursorStyle
	Visible bool
}

func cursorStyleFromDisplay(status display.CursorStatus) CursorStyle {
	switch status.Style {
	case display.CursorStyleUnderline:
		if status.IsBlinking {
			return CursorStyleBlinkingUnderline
		}
		return CursorStyleSteadyUnderline
	case display.CursorStyleBar:
		if status.IsBlinking {
			return CursorStyleBlinkingBar
		}
		return CursorStyleSteadyBar
	default:
		if status.IsBlinking {
			return CursorStyleBlinkingBlock
		}
		return CursorStyleSteadyBlock
	}
}
