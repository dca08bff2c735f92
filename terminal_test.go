package headlessterm

import (
	"strings"
	"testing"

	"github.com/danielgatis/go-vt100-core/encoder"
	"github.com/danielgatis/go-vt100-core/parser"
)

func TestWriteStringAndString(t *testing.T) {
	term := New(WithSize(3, 10))
	term.WriteString("hello")
	if got := term.LineContent(0); got != "hello" {
		t.Fatalf("LineContent(0) = %q, want %q", got, "hello")
	}
	if got := term.String(); !strings.HasPrefix(got, "hello\n") {
		t.Fatalf("String() = %q, want prefix %q", got, "hello\n")
	}
}

func TestCursorPosAdvancesOnWrite(t *testing.T) {
	term := New(WithSize(5, 20))
	term.WriteString("abc")
	row, col := term.CursorPos()
	if row != 0 || col != 3 {
		t.Fatalf("CursorPos() = (%d, %d), want (0, 3)", row, col)
	}
}

func TestCellReflectsSGR(t *testing.T) {
	term := New(WithSize(3, 10))
	term.WriteString("\x1b[1mX")
	cell, ok := term.Cell(0, 0)
	if !ok {
		t.Fatal("Cell(0, 0) out of range")
	}
	if cell.Char != 'X' {
		t.Fatalf("Char = %q, want 'X'", cell.Char)
	}
	if !cell.HasFlag(CellFlagBold) {
		t.Fatal("expected CellFlagBold set after CSI 1m")
	}
}

func TestCellOutOfRange(t *testing.T) {
	term := New(WithSize(3, 10))
	if _, ok := term.Cell(0, 100); ok {
		t.Fatal("Cell(0, 100) should be out of range")
	}
}

func TestResize(t *testing.T) {
	term := New(WithSize(10, 40))
	term.Resize(20, 100)
	if term.Rows() != 20 || term.Cols() != 100 {
		t.Fatalf("Rows/Cols = %d/%d, want 20/100", term.Rows(), term.Cols())
	}
	if term.Encoder.GridSize != (encoder.Vector2{X: 100, Y: 20}) {
		t.Fatalf("Encoder.GridSize = %+v, want {100 20}", term.Encoder.GridSize)
	}
}

type fakeBell struct{ rings int }

func (f *fakeBell) Ring() { f.rings++ }

func TestBellProviderFromBareBEL(t *testing.T) {
	bell := &fakeBell{}
	term := New(WithSize(3, 10), WithBell(bell))
	term.WriteString("a\x07b\x07\x07c")
	if bell.rings != 3 {
		t.Fatalf("rings = %d, want 3", bell.rings)
	}
	if got := term.LineContent(0); got != "abc" {
		t.Fatalf("LineContent(0) = %q, want %q (BEL bytes should not appear as cells)", got, "abc")
	}
}

func TestBellDoesNotFireForOSCTerminator(t *testing.T) {
	bell := &fakeBell{}
	term := New(WithSize(3, 10), WithBell(bell))
	term.WriteString("\x1b]0;title\x07")
	if bell.rings != 0 {
		t.Fatalf("rings = %d, want 0 (BEL used as OSC terminator must not ring the bell)", bell.rings)
	}
}

type fakeTitle struct {
	titles []string
}

func (f *fakeTitle) SetTitle(title string) { f.titles = append(f.titles, title) }
func (f *fakeTitle) PushTitle()            {}
func (f *fakeTitle) PopTitle()             {}

func TestTitleProviderFromOSC(t *testing.T) {
	title := &fakeTitle{}
	term := New(WithSize(3, 10), WithTitle(title))
	term.WriteString("\x1b]0;my title\x07")
	if term.Title() != "my title" {
		t.Fatalf("Title() = %q, want %q", term.Title(), "my title")
	}
	if len(title.titles) != 1 || title.titles[0] != "my title" {
		t.Fatalf("titles = %v, want [my title]", title.titles)
	}
}

func TestRefreshSinkFiresOnWrite(t *testing.T) {
	refreshes := 0
	term := New(WithSize(3, 10), WithRefresh(func() { refreshes++ }))
	term.WriteString("x")
	if refreshes == 0 {
		t.Fatal("expected at least one refresh after writing a printable character")
	}
}

func TestKeypadAndCursorKeyModeReachEncoder(t *testing.T) {
	term := New(WithSize(3, 10))
	term.WriteString("\x1b=")
	if term.Encoder.KeypadInputMode != encoder.InputModeApplication {
		t.Fatalf("KeypadInputMode = %v, want InputModeApplication", term.Encoder.KeypadInputMode)
	}
	term.WriteString("\x1b>")
	if term.Encoder.KeypadInputMode != encoder.InputModeNumeric {
		t.Fatalf("KeypadInputMode = %v, want InputModeNumeric", term.Encoder.KeypadInputMode)
	}

	term.WriteString("\x1b[?1h")
	if term.Encoder.CursorKeyInputMode != encoder.InputModeApplication {
		t.Fatalf("CursorKeyInputMode = %v, want InputModeApplication", term.Encoder.CursorKeyInputMode)
	}
	term.WriteString("\x1b[?1l")
	if term.Encoder.CursorKeyInputMode != encoder.InputModeNumeric {
		t.Fatalf("CursorKeyInputMode = %v, want InputModeNumeric", term.Encoder.CursorKeyInputMode)
	}
}

func TestBracketedPasteModeReachesEncoder(t *testing.T) {
	term := New(WithSize(3, 10))
	term.WriteString("\x1b[?2004h")
	if !term.Encoder.IsBracketedPasteMode {
		t.Fatal("expected IsBracketedPasteMode true after CSI ?2004h")
	}
	term.WriteString("\x1b[?2004l")
	if term.Encoder.IsBracketedPasteMode {
		t.Fatal("expected IsBracketedPasteMode false after CSI ?2004l")
	}
}

func TestMouseTrackingModeAndEncodingReachEncoder(t *testing.T) {
	term := New(WithSize(3, 10))
	term.WriteString("\x1b[?1000h")
	if term.Encoder.MouseTrackingMode != encoder.MouseTrackingNormal {
		t.Fatalf("MouseTrackingMode = %v, want MouseTrackingNormal", term.Encoder.MouseTrackingMode)
	}
	term.WriteString("\x1b[?1006h")
	if term.Encoder.MouseCoordinateFormat != encoder.MouseCoordinateSgr {
		t.Fatalf("MouseCoordinateFormat = %v, want MouseCoordinateSgr", term.Encoder.MouseCoordinateFormat)
	}
	term.WriteString("\x1b[?1000l")
	if term.Encoder.MouseTrackingMode != encoder.MouseTrackingDisabled {
		t.Fatalf("MouseTrackingMode = %v, want MouseTrackingDisabled", term.Encoder.MouseTrackingMode)
	}
}

func TestConsoleWidthResizesGridAndEncoder(t *testing.T) {
	term := New(WithSize(24, 80))
	term.WriteString("\x1b[?3h")
	if term.Cols() != 132 {
		t.Fatalf("Cols() = %d, want 132 after CSI ?3h", term.Cols())
	}
	if term.Encoder.GridSize.X != 132 {
		t.Fatalf("Encoder.GridSize.X = %d, want 132", term.Encoder.GridSize.X)
	}
	term.WriteString("\x1b[?3l")
	if term.Cols() != 80 {
		t.Fatalf("Cols() = %d, want 80 after CSI ?3l", term.Cols())
	}
}

type fakeWindowAction struct {
	calls int
	last  parser.WindowAction
}

func (f *fakeWindowAction) WindowAction(action parser.WindowAction, vec parser.Vector2, text bool) {
	f.calls++
	f.last = action
}

func TestWindowActionSinkForwarded(t *testing.T) {
	sink := &fakeWindowAction{}
	term := New(WithSize(3, 10), WithWindowAction(sink))
	term.OnVT100(parser.Command{Kind: parser.CmdWindowAction, Window: parser.WindowActionIconify})
	if sink.calls != 1 {
		t.Fatalf("calls = %d, want 1", sink.calls)
	}
	if sink.last != parser.WindowActionIconify {
		t.Fatalf("last action = %v, want WindowActionIconify", sink.last)
	}
}

func TestAlternateScreenToggle(t *testing.T) {
	term := New(WithSize(5, 20))
	if term.IsAlternateScreen() {
		t.Fatal("expected primary screen active initially")
	}
	term.WriteString("\x1b[?1049h")
	if !term.IsAlternateScreen() {
		t.Fatal("expected alternate screen active after CSI ?1049h")
	}
	term.WriteString("\x1b[?1049l")
	if term.IsAlternateScreen() {
		t.Fatal("expected primary screen active after CSI ?1049l")
	}
}

func TestSearch(t *testing.T) {
	term := New(WithSize(5, 20))
	term.WriteString("foo\r\nbar\r\nfoobar")
	hits := term.Search("foo")
	if len(hits) != 2 {
		t.Fatalf("Search(\"foo\") = %v, want 2 hits", hits)
	}
}

func TestScrollbackAccumulatesOnPrimaryScreen(t *testing.T) {
	term := New(WithSize(3, 10))
	for i := 0; i < 10; i++ {
		term.WriteString("line\r\n")
	}
	if term.ScrollbackLen() == 0 {
		t.Fatal("expected scrollback to accumulate after scrolling past the bottom of a 3-row screen")
	}
	if got := term.ScrollbackLine(0); got != "line" {
		t.Fatalf("ScrollbackLine(0) = %q, want %q", got, "line")
	}
}

func TestSearchScrollback(t *testing.T) {
	term := New(WithSize(3, 10))
	term.WriteString("alpha\r\nbeta\r\ngamma\r\ndelta\r\n")
	hits := term.SearchScrollback("beta")
	if len(hits) != 1 {
		t.Fatalf("SearchScrollback(\"beta\") = %v, want 1 hit", hits)
	}
}

type fakeRecording struct {
	data []byte
}

func (f *fakeRecording) Record(p []byte) { f.data = append(f.data, p...) }
func (f *fakeRecording) Data() []byte    { return f.data }
func (f *fakeRecording) Clear()          { f.data = nil }

func TestRecordingProviderCapturesRawBytes(t *testing.T) {
	rec := &fakeRecording{}
	term := New(WithSize(3, 10), WithRecording(rec))
	term.WriteString("\x1b[1mhi\x1b[0m")
	if string(term.RecordedData()) != "\x1b[1mhi\x1b[0m" {
		t.Fatalf("RecordedData() = %q, want the raw written bytes", term.RecordedData())
	}
}

type fakeResponse struct {
	written []byte
}

func (f *fakeResponse) Write(p []byte) (int, error) {
	f.written = append(f.written, p...)
	return len(p), nil
}

func TestWriteResponseGoesToResponseProvider(t *testing.T) {
	resp := &fakeResponse{}
	term := New(WithSize(3, 10), WithResponse(resp))
	term.WriteResponse("\x1b[1;1R")
	if string(resp.written) != "\x1b[1;1R" {
		t.Fatalf("response.written = %q, want cursor position report", resp.written)
	}
}
