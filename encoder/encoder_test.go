package encoder

import "testing"

func collect(fn func(output func([]byte))) []byte {
	var got []byte
	fn(func(b []byte) { got = append(got, b...) })
	return got
}

func TestOnCharacterPlainEmitsUTF8(t *testing.T) {
	e := New()
	got := collect(func(out func([]byte)) { e.OnKeyPress(KeyCode{Kind: KeyCodeChar, Char: 'h'}, out) })
	if string(got) != "h" {
		t.Fatalf("got %q, want \"h\"", got)
	}
}

func TestOnCharacterCtrlMapsControlTable(t *testing.T) {
	e := New()
	e.OnKeyPress(KeyCode{Kind: KeyCodeModifier, Modifier: ModifierCtrl}, func([]byte) {})
	got := collect(func(out func([]byte)) { e.OnKeyPress(KeyCode{Kind: KeyCodeChar, Char: 'a'}, out) })
	if len(got) != 1 || got[0] != 0x01 {
		t.Fatalf("got %v, want [0x01] (Ctrl-a)", got)
	}
}

func TestOnCharacterCtrlMultiByteRuneIgnoresControlTable(t *testing.T) {
	e := New()
	e.OnKeyPress(KeyCode{Kind: KeyCodeModifier, Modifier: ModifierCtrl}, func([]byte) {})
	got := collect(func(out func([]byte)) { e.OnKeyPress(KeyCode{Kind: KeyCodeChar, Char: '€'}, out) })
	if string(got) != "€" {
		t.Fatalf("got %q, want raw UTF-8 for a multi-byte rune under Ctrl", got)
	}
}

func TestOnKeyReleaseClearsModifier(t *testing.T) {
	e := New()
	e.OnKeyPress(KeyCode{Kind: KeyCodeModifier, Modifier: ModifierCtrl}, func([]byte) {})
	e.OnKeyRelease(KeyCode{Kind: KeyCodeModifier, Modifier: ModifierCtrl})
	got := collect(func(out func([]byte)) { e.OnKeyPress(KeyCode{Kind: KeyCodeChar, Char: 'a'}, out) })
	if string(got) != "a" {
		t.Fatalf("got %q, want plain 'a' after Ctrl released", got)
	}
}

func TestOnFunctionKeySequences(t *testing.T) {
	e := New()
	cases := map[FunctionKey]byte{
		FunctionKeyEscape:    0x1b,
		FunctionKeyTab:       0x09,
		FunctionKeyBackspace: 0x08,
		FunctionKeyEnter:     0x0d,
		FunctionKeyLineFeed:  0x0a,
		FunctionKeyDelete:    0x7f,
	}
	for key, want := range cases {
		got := collect(func(out func([]byte)) { e.OnKeyPress(KeyCode{Kind: KeyCodeFunction, Function: key}, out) })
		if len(got) != 1 || got[0] != want {
			t.Fatalf("function key %v: got %v, want [%#x]", key, got, want)
		}
	}
}

func TestArrowKeyNumericMode(t *testing.T) {
	e := New()
	got := collect(func(out func([]byte)) { e.OnKeyPress(KeyCode{Kind: KeyCodeArrow, Arrow: ArrowUp}, out) })
	if string(got) != "\x1b[A" {
		t.Fatalf("got %q, want CSI A", got)
	}
}

func TestArrowKeyApplicationMode(t *testing.T) {
	e := New()
	e.CursorKeyInputMode = InputModeApplication
	got := collect(func(out func([]byte)) { e.OnKeyPress(KeyCode{Kind: KeyCodeArrow, Arrow: ArrowDown}, out) })
	if string(got) != "\x1bOB" {
		t.Fatalf("got %q, want SS3 B", got)
	}
}

func TestArrowKeyCtrlOverridesBothModes(t *testing.T) {
	for _, mode := range []InputMode{InputModeNumeric, InputModeApplication} {
		e := New()
		e.CursorKeyInputMode = mode
		e.OnKeyPress(KeyCode{Kind: KeyCodeModifier, Modifier: ModifierCtrl}, func([]byte) {})
		got := collect(func(out func([]byte)) { e.OnKeyPress(KeyCode{Kind: KeyCodeArrow, Arrow: ArrowLeft}, out) })
		if string(got) != "\x1b[1;5;D" {
			t.Fatalf("mode %v: got %q, want the non-standard extra-semicolon Ctrl form", mode, got)
		}
	}
}

func TestWindowFocusReportingGated(t *testing.T) {
	e := New()
	if got := collect(func(out func([]byte)) { e.OnWindowFocus(true, out) }); got != nil {
		t.Fatalf("got %q, want no report when IsReportFocus is false", got)
	}
	e.IsReportFocus = true
	if got := collect(func(out func([]byte)) { e.OnWindowFocus(true, out) }); string(got) != "\x1b[I" {
		t.Fatalf("got %q, want CSI I", got)
	}
	if got := collect(func(out func([]byte)) { e.OnWindowFocus(false, out) }); string(got) != "\x1b[O" {
		t.Fatalf("got %q, want CSI O", got)
	}
}

func TestPasteTextBracketed(t *testing.T) {
	e := New()
	e.IsBracketedPasteMode = true
	got := collect(func(out func([]byte)) { e.PasteText([]byte("hi"), out) })
	if string(got) != "\x1b[200~hi\x1b[201~" {
		t.Fatalf("got %q, want bracketed paste", got)
	}
}

func TestPasteTextUnbracketed(t *testing.T) {
	e := New()
	got := collect(func(out func([]byte)) { e.PasteText([]byte("hi"), out) })
	if string(got) != "hi" {
		t.Fatalf("got %q, want raw paste", got)
	}
}

func TestMouseX10ModeReportsOnlyPress(t *testing.T) {
	e := New()
	e.MouseTrackingMode = MouseTrackingX10
	e.WindowSize = Vector2{X: 80, Y: 40}
	e.GridSize = Vector2{X: 8, Y: 4}
	got := collect(func(out func([]byte)) {
		e.OnMouseEvent(MouseEvent{Kind: MouseEventPress, Button: MouseButtonLeftClick, Position: Vector2{X: 10, Y: 10}}, out)
	})
	if len(got) != 6 || got[0] != 0x1b || got[1] != '[' || got[2] != 'M' {
		t.Fatalf("got %v, want CSI M <btn> <col> <row>", got)
	}
	if released := collect(func(out func([]byte)) {
		e.OnMouseEvent(MouseEvent{Kind: MouseEventRelease, Button: MouseButtonLeftClick, Position: Vector2{X: 10, Y: 10}}, out)
	}); released != nil {
		t.Fatalf("got %v, want no report for release under X10 mode", released)
	}
}

func TestMouseNormalModeSgrFormat(t *testing.T) {
	e := New()
	e.MouseTrackingMode = MouseTrackingNormal
	e.MouseCoordinateFormat = MouseCoordinateSgr
	e.WindowSize = Vector2{X: 80, Y: 40}
	e.GridSize = Vector2{X: 8, Y: 4}
	got := collect(func(out func([]byte)) {
		e.OnMouseEvent(MouseEvent{Kind: MouseEventPress, Button: MouseButtonLeftClick, Position: Vector2{X: 25, Y: 15}}, out)
	})
	// glyph size = ceil(80/8) x ceil(40/4) = 10x10; grid cell = (25/10+1, 15/10+1) = (3, 2).
	if string(got) != "\x1b[<0;3;2M" {
		t.Fatalf("got %q, want SGR press report", got)
	}
	got = collect(func(out func([]byte)) {
		e.OnMouseEvent(MouseEvent{Kind: MouseEventRelease, Button: MouseButtonLeftClick, Position: Vector2{X: 25, Y: 15}}, out)
	})
	if string(got) != "\x1b[<3;3;2m" {
		t.Fatalf("got %q, want SGR release report", got)
	}
}

func TestMouseMotionModeOnlyReportsWithButtonHeld(t *testing.T) {
	e := New()
	e.MouseTrackingMode = MouseTrackingMotion
	e.MouseCoordinateFormat = MouseCoordinateSgr
	e.WindowSize = Vector2{X: 80, Y: 40}
	e.GridSize = Vector2{X: 8, Y: 4}

	if got := collect(func(out func([]byte)) {
		e.OnMouseEvent(MouseEvent{Kind: MouseEventMove, Position: Vector2{X: 0, Y: 0}}, out)
	}); got != nil {
		t.Fatalf("got %q, want no report with no button held", got)
	}

	e.OnMouseEvent(MouseEvent{Kind: MouseEventPress, Button: MouseButtonLeftClick, Position: Vector2{X: 0, Y: 0}}, func([]byte) {})
	if got := collect(func(out func([]byte)) {
		e.OnMouseEvent(MouseEvent{Kind: MouseEventMove, Position: Vector2{X: 8, Y: 0}}, out)
	}); got == nil {
		t.Fatal("want a motion report once a button is held")
	}
}

func TestMouseAnyModeReportsMoveUnconditionally(t *testing.T) {
	e := New()
	e.MouseTrackingMode = MouseTrackingAny
	e.MouseCoordinateFormat = MouseCoordinateSgr
	got := collect(func(out func([]byte)) {
		e.OnMouseEvent(MouseEvent{Kind: MouseEventMove, Position: Vector2{X: 0, Y: 0}}, out)
	})
	if got == nil {
		t.Fatal("want a motion report under Any mode with no button held")
	}
}

func TestMouseUtf8CoordinateExtendsRange(t *testing.T) {
	e := New()
	e.MouseTrackingMode = MouseTrackingX10
	e.MouseCoordinateFormat = MouseCoordinateUtf8
	e.WindowSize = Vector2{X: 1, Y: 1}
	e.GridSize = Vector2{X: 1, Y: 1}
	got := collect(func(out func([]byte)) {
		e.OnMouseEvent(MouseEvent{Kind: MouseEventPress, Button: MouseButtonLeftClick, Position: Vector2{X: 300, Y: 0}}, out)
	})
	// col = 300+1+32 = 333, which must be UTF-8 encoded as 2 bytes rather
	// than truncated to a single byte.
	if len(got) < 4 {
		t.Fatalf("got %v, too short", got)
	}
	rest := got[4:] // skip CSI M and the button byte
	if len(rest) < 2 || rest[0] < 0x80 {
		t.Fatalf("got %v, want a multi-byte UTF-8 lead byte for the out-of-ASCII-range column", rest)
	}
}

func TestHighlightModeNeverReports(t *testing.T) {
	e := New()
	e.MouseTrackingMode = MouseTrackingHighlight
	got := collect(func(out func([]byte)) {
		e.OnMouseEvent(MouseEvent{Kind: MouseEventPress, Button: MouseButtonLeftClick, Position: Vector2{X: 0, Y: 0}}, out)
	})
	if got != nil {
		t.Fatalf("got %v, want no report (Highlight mode is unimplemented by design)", got)
	}
}
