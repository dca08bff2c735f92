package display

import "testing"

func newTestDisplay(t *testing.T) *TerminalDisplay {
	t.Helper()
	d, err := NewTerminalDisplay()
	if err != nil {
		t.Fatalf("NewTerminalDisplay: %v", err)
	}
	d.SetSize(Vector2{X: 4, Y: 3})
	return d
}

func TestCurrentViewportSwitchesOnAlternate(t *testing.T) {
	d := newTestDisplay(t)
	primary := d.GetCurrentViewport()
	if primary != d.GetPrimaryViewport() {
		t.Fatal("expected primary viewport to be active by default")
	}
	d.SetIsAlternate(true)
	if d.GetCurrentViewport() != d.GetAlternateViewport() {
		t.Fatal("expected alternate viewport to be active after SetIsAlternate(true)")
	}
	if !d.IsAlternateActive() {
		t.Fatal("IsAlternateActive should report true")
	}
}

func TestAlternateBufferContentsPersistAcrossSwitch(t *testing.T) {
	d := newTestDisplay(t)
	d.SetIsAlternate(true)
	d.WithCurrentViewport(func(v *Viewport) { v.WriteASCII('x') })
	d.SetIsAlternate(false)
	d.WithCurrentViewport(func(v *Viewport) { v.WriteASCII('y') })
	d.SetIsAlternate(true)

	row, _ := d.GetAlternateViewport().GetRow(0)
	if row[0].Character != 'x' {
		t.Fatalf("alternate row0[0] = %q, want 'x' preserved across switch", row[0].Character)
	}
}

func TestSaveRestoreCursor(t *testing.T) {
	d := newTestDisplay(t)
	d.WithCurrentViewport(func(v *Viewport) {
		v.WriteASCII('a')
		v.WriteASCII('b')
	})
	d.SaveCursor()
	d.WithCurrentViewport(func(v *Viewport) { v.SetCursor(Vector2{}) })
	if got := d.GetCurrentViewport().GetCursor(); got.X != 0 {
		t.Fatalf("cursor.X after reset = %d, want 0", got.X)
	}
	d.RestoreCursor()
	if got := d.GetCurrentViewport().GetCursor(); got != (Vector2{X: 2, Y: 0}) {
		t.Fatalf("cursor after restore = %+v, want {2 0}", got)
	}
}

func TestRestoreCursorWithoutSaveIsNoop(t *testing.T) {
	d := newTestDisplay(t)
	d.WithCurrentViewport(func(v *Viewport) { v.SetCursor(Vector2{X: 1, Y: 1}) })
	d.RestoreCursor()
	if got := d.GetCurrentViewport().GetCursor(); got != (Vector2{X: 1, Y: 1}) {
		t.Fatalf("cursor = %+v, want unchanged {1 1}", got)
	}
}

func TestCursorStatusDefaults(t *testing.T) {
	d := newTestDisplay(t)
	status := d.GetCursorStatus()
	if !status.IsVisible || !status.IsBlinking {
		t.Fatalf("default status = %+v, want visible+blinking", status)
	}
	d.SetCursorVisible(false)
	if d.GetCursorStatus().IsVisible {
		t.Fatal("expected cursor to be hidden")
	}
}

func TestSetDefaultPenAppliesToBothViewports(t *testing.T) {
	d := newTestDisplay(t)
	pen := Pen{Foreground: Rgb{1, 2, 3}, Background: Rgb{4, 5, 6}}
	d.SetDefaultPen(pen)
	if d.GetPrimaryViewport().GetPen() != pen {
		t.Fatal("primary viewport pen not updated")
	}
	if d.GetAlternateViewport().GetPen() != pen {
		t.Fatal("alternate viewport pen not updated")
	}
}

func TestGetColourFromTable(t *testing.T) {
	d := newTestDisplay(t)
	if got := d.GetColourFromTable(15); got != Palette256[15] {
		t.Fatalf("GetColourFromTable(15) = %+v, want %+v", got, Palette256[15])
	}
}
