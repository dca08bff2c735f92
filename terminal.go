package headlessterm

import (
	"strings"
	"sync"

	"github.com/danielgatis/go-vt100-core/display"
	"github.com/danielgatis/go-vt100-core/encoder"
	"github.com/danielgatis/go-vt100-core/executor"
	"github.com/danielgatis/go-vt100-core/parser"
)

// DefaultRows and DefaultCols match the conventional 80x24 terminal a shell
// assumes before its first resize.
const (
	DefaultRows = 24
	DefaultCols = 80
)

var _ parser.Handler = (*Terminal)(nil)

// Terminal is a headless VT100-compatible terminal emulator: feed it raw
// bytes via Write, read back screen state through its Cell/LineContent/
// String/Cursor accessors, and encode host input (keys, mouse, paste,
// resize) back out to the child through its Encoder.
//
// Grounded on the teacher's terminal.go: the same functional-options
// constructor, pluggable-provider, and sync.RWMutex-guarded-state idioms,
// rewritten to delegate screen state to display.TerminalDisplay and byte
// decoding to parser.StreamParser/executor.Executor instead of
// github.com/danielgatis/go-ansicode.
type Terminal struct {
	mu sync.RWMutex

	display  *display.TerminalDisplay
	parser   *parser.StreamParser
	executor *executor.Executor
	Encoder  *encoder.Encoder

	response   ResponseProvider
	bell       BellProvider
	title      TitleProvider
	apc        APCProvider
	pm         PMProvider
	sos        SOSProvider
	clipboard  ClipboardProvider
	scrollback ScrollbackProvider
	recording  RecordingProvider

	refreshSink      RefreshSink
	windowActionSink WindowActionSink

	titleStack []string
}

// Option configures a Terminal at construction time.
type Option func(*Terminal)

// WithSize sets the initial grid size. Defaults to DefaultRows x DefaultCols.
func WithSize(rows, cols int) Option {
	return func(t *Terminal) { t.display.SetSize(display.Vector2{X: cols, Y: rows}) }
}

// WithResponse directs in-band terminal responses (cursor position
// reports, DA replies) to w, typically the PTY's write end.
func WithResponse(w ResponseProvider) Option {
	return func(t *Terminal) { t.response = w }
}

// WithBell directs bare-BEL (0x07) notifications to b.
func WithBell(b BellProvider) Option { return func(t *Terminal) { t.bell = b } }

// WithTitle directs OSC 0/1/2 window-title changes to p.
func WithTitle(p TitleProvider) Option { return func(t *Terminal) { t.title = p } }

// WithAPC directs APC sequence payloads to p. See APCProvider's doc comment
// for why nothing currently calls it.
func WithAPC(p APCProvider) Option { return func(t *Terminal) { t.apc = p } }

// WithPM directs Privacy Message payloads to p. See PMProvider's doc
// comment for why nothing currently calls it.
func WithPM(p PMProvider) Option { return func(t *Terminal) { t.pm = p } }

// WithSOS directs Start-of-String payloads to p. See SOSProvider's doc
// comment for why nothing currently calls it.
func WithSOS(p SOSProvider) Option { return func(t *Terminal) { t.sos = p } }

// WithClipboard directs OSC 52 clipboard requests to p. See
// ClipboardProvider's doc comment for why nothing currently calls it.
func WithClipboard(p ClipboardProvider) Option { return func(t *Terminal) { t.clipboard = p } }

// WithScrollback stores p as the Terminal's ScrollbackProvider. Terminal
// never pushes lines to it or reads from it: ScrollbackLen, ScrollbackLine
// and SearchScrollback read the primary screen's built-in ring-buffer
// scrollback.
func WithScrollback(p ScrollbackProvider) Option { return func(t *Terminal) { t.scrollback = p } }

// WithRecording captures every raw byte written to the terminal, before
// parsing, into p.
func WithRecording(p RecordingProvider) Option { return func(t *Terminal) { t.recording = p } }

// WithRefresh registers fn to be called after every command that changes
// what's on screen - the signal a host uses to know when to repaint.
func WithRefresh(fn func()) Option {
	return func(t *Terminal) { t.refreshSink = RefreshFunc(fn) }
}

// WithWindowAction directs CmdWindowAction commands (move, resize-to,
// report-state, ...) to sink. The parser has no CSI t case, so bytes given
// to Write never produce one; only a Command passed to OnVT100 reaches sink.
func WithWindowAction(sink WindowActionSink) Option {
	return func(t *Terminal) { t.windowActionSink = sink }
}

// New builds a Terminal at DefaultRows x DefaultCols with every provider
// defaulting to its Noop implementation, then applies opts.
func New(opts ...Option) *Terminal {
	disp, err := display.NewTerminalDisplay()
	if err != nil {
		// NewTerminalDisplay only fails if the ring allocator can't satisfy
		// DefaultViewportSize, which is a fixed, small, compile-time
		// constant - this should never happen in practice. Panicking here
		// mirrors the teacher's constructor, which never returns an error.
		panic(err)
	}
	disp.SetSize(display.Vector2{X: DefaultCols, Y: DefaultRows})

	t := &Terminal{
		display:    disp,
		parser:     parser.NewStreamParser(),
		Encoder:    encoder.New(),
		response:   NoopResponse{},
		bell:       NoopBell{},
		title:      NoopTitle{},
		apc:        NoopAPC{},
		pm:         NoopPM{},
		sos:        NoopSOS{},
		clipboard:  NoopClipboard{},
		scrollback: NoopScrollback{},
		recording:  NoopRecording{},
	}
	t.Encoder.GridSize = encoder.Vector2{X: DefaultCols, Y: DefaultRows}

	for _, opt := range opts {
		opt(t)
	}
	t.executor = executor.New(disp, t.refreshSink, t.windowActionSink)
	return t
}

// Write feeds raw bytes (as read from a child process) through the parser,
// applying every decoded command to the screen and routing responses,
// titles, and mode changes to their providers.
func (t *Terminal) Write(p []byte) (int, error) {
	t.recording.Record(p)
	t.parser.ParseBytes(p, t)
	return len(p), nil
}

// WriteString is a convenience wrapper around Write.
func (t *Terminal) WriteString(s string) (int, error) { return t.Write([]byte(s)) }

// --- parser.Handler ---
//
// Terminal is its own parser.Handler rather than handing the parser its
// inner *executor.Executor directly: a handful of CommandKinds (window
// title, keypad/cursor-key/bracketed-paste mode, console width, mouse
// tracking mode/encoding) have no screen-state effect and so are no-ops in
// executor.Executor.Apply (see executor.go's default switch arm) - they
// belong to the provider/encoder boundary Terminal owns instead. A bare
// BEL byte arriving as ASCII data is intercepted here too, since the
// parser classifies it as ordinary data rather than a distinct command.

// OnASCIIData splits buf around any bare BEL (0x07) bytes, ringing the
// bell provider for each one and forwarding the rest to the executor.
func (t *Terminal) OnASCIIData(buf []byte) {
	start := 0
	for i, b := range buf {
		if b != 0x07 {
			continue
		}
		if i > start {
			t.executor.OnASCIIData(buf[start:i])
		}
		t.bell.Ring()
		start = i + 1
	}
	if start < len(buf) {
		t.executor.OnASCIIData(buf[start:])
	}
}

func (t *Terminal) OnUTF8(r rune)                          { t.executor.OnUTF8(r) }
func (t *Terminal) OnUnhandledByte(b byte)                  { t.executor.OnUnhandledByte(b) }
func (t *Terminal) OnUTF8Error(err error)                   { t.executor.OnUTF8Error(err) }
func (t *Terminal) OnVT100Error(err error, p *parser.Parser) { t.executor.OnVT100Error(err, p) }

func (t *Terminal) OnVT100(cmd parser.Command) {
	t.executor.Apply(cmd)

	switch cmd.Kind {
	case parser.CmdSetWindowTitle:
		title := string(cmd.Title)
		t.mu.Lock()
		if len(t.titleStack) == 0 {
			t.titleStack = append(t.titleStack, title)
		} else {
			t.titleStack[len(t.titleStack)-1] = title
		}
		t.mu.Unlock()
		t.title.SetTitle(title)

	case parser.CmdSetKeypadMode:
		t.mu.Lock()
		t.Encoder.KeypadInputMode = inputModeFromParser(cmd.Mode)
		t.mu.Unlock()

	case parser.CmdSetCursorKeyInputMode:
		t.mu.Lock()
		t.Encoder.CursorKeyInputMode = inputModeFromParser(cmd.Mode)
		t.mu.Unlock()

	case parser.CmdSetBracketedPasteMode:
		t.mu.Lock()
		t.Encoder.IsBracketedPasteMode = cmd.N != 0
		t.mu.Unlock()

	case parser.CmdSetMouseTrackingMode:
		t.mu.Lock()
		t.Encoder.MouseTrackingMode = mouseTrackingFromParser(cmd.MouseTracking)
		t.mu.Unlock()

	case parser.CmdSetMouseEncoding:
		t.mu.Lock()
		t.Encoder.MouseCoordinateFormat = mouseEncodingFromParser(cmd.MouseEncoding)
		t.mu.Unlock()

	case parser.CmdSetConsoleWidth:
		size := t.display.GetSize()
		t.display.SetSize(display.Vector2{X: cmd.N, Y: size.Y})
		t.mu.Lock()
		t.Encoder.GridSize = encoder.Vector2{X: cmd.N, Y: size.Y}
		t.mu.Unlock()
	}
}

func inputModeFromParser(m parser.InputMode) encoder.InputMode {
	if m == parser.InputModeApplication {
		return encoder.InputModeApplication
	}
	return encoder.InputModeNumeric
}

func mouseTrackingFromParser(m parser.MouseTrackingMode) encoder.MouseTrackingMode {
	switch m {
	case parser.MouseTrackingX10:
		return encoder.MouseTrackingX10
	case parser.MouseTrackingNormal:
		return encoder.MouseTrackingNormal
	case parser.MouseTrackingButtonEvent:
		return encoder.MouseTrackingMotion
	case parser.MouseTrackingAnyEvent:
		return encoder.MouseTrackingAny
	default:
		return encoder.MouseTrackingDisabled
	}
}

func mouseEncodingFromParser(m parser.MouseEncoding) encoder.MouseCoordinateFormat {
	switch m {
	case parser.MouseEncodingUtf8:
		return encoder.MouseCoordinateUtf8
	case parser.MouseEncodingSgr:
		return encoder.MouseCoordinateSgr
	default:
		return encoder.MouseCoordinateX10
	}
}

// --- read API ---

// Rows and Cols report the current grid size.
func (t *Terminal) Rows() int { return t.display.GetSize().Y }
func (t *Terminal) Cols() int { return t.display.GetSize().X }

// Resize changes the grid size, reflowing both the primary and alternate
// screens, and keeps the encoder's reported grid size in sync so mouse
// coordinate translation stays correct.
func (t *Terminal) Resize(rows, cols int) {
	t.display.SetSize(display.Vector2{X: cols, Y: rows})
	t.mu.Lock()
	t.Encoder.GridSize = encoder.Vector2{X: cols, Y: rows}
	t.mu.Unlock()
}

// SetWindowSizePixels updates the encoder's notion of the host window's
// pixel size, used to translate mouse-event pixel coordinates into grid
// cells.
func (t *Terminal) SetWindowSizePixels(width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Encoder.WindowSize = encoder.Vector2{X: width, Y: height}
}

// Cell returns the cell at (row, col) in the active screen, and whether
// coordinates were in range.
func (t *Terminal) Cell(row, col int) (Cell, bool) {
	v := t.display.GetCurrentViewport()
	cells, _ := v.GetRow(row)
	if col < 0 || col >= len(cells) {
		return Cell{}, false
	}
	isSpacer := col > 0 && isWideRune(cells[col-1].Character)
	return cellFromDisplay(cells[col], isSpacer), true
}

// CursorPos returns the active screen's cursor position, 0-based.
func (t *Terminal) CursorPos() (row, col int) {
	pos := t.display.GetCurrentViewport().GetCursor()
	return pos.Y, pos.X
}

// Cursor returns a full snapshot of the cursor's position and style.
func (t *Terminal) Cursor() Cursor {
	status := t.display.GetCursorStatus()
	row, col := t.CursorPos()
	return Cursor{Row: row, Col: col, Style: cursorStyleFromDisplay(status), Visible: status.IsVisible}
}

// CursorVisible reports whether the cursor is currently shown.
func (t *Terminal) CursorVisible() bool { return t.display.GetCursorStatus().IsVisible }

// Title returns the most recently set window title, or "" if none was set.
func (t *Terminal) Title() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if len(t.titleStack) == 0 {
		return ""
	}
	return t.titleStack[len(t.titleStack)-1]
}

// IsAlternateScreen reports whether the alternate screen buffer is active.
func (t *Terminal) IsAlternateScreen() bool { return t.display.IsAlternateActive() }

// LineContent returns row's text, trimmed of trailing spaces, skipping the
// spacer half of any wide character.
func (t *Terminal) LineContent(row int) string {
	v := t.display.GetCurrentViewport()
	cells, _ := v.GetRow(row)
	return lineString(cells)
}

func lineString(cells []display.Cell) string {
	var b strings.Builder
	for i, c := range cells {
		if i > 0 && isWideRune(cells[i-1].Character) {
			continue
		}
		b.WriteRune(c.Character)
	}
	return strings.TrimRight(b.String(), " ")
}

// String renders every row of the active screen, newline-joined.
func (t *Terminal) String() string {
	rows := t.Rows()
	lines := make([]string, rows)
	for r := 0; r < rows; r++ {
		lines[r] = t.LineContent(r)
	}
	return strings.Join(lines, "\n")
}

// ScrollbackLen returns the number of lines held in the primary screen's
// scrollback (always 0 for the alternate screen, which keeps none).
func (t *Terminal) ScrollbackLen() int {
	sb := t.display.GetPrimaryViewport().GetScrollbackBuffer()
	if sb == nil {
		return 0
	}
	return len(sb.GetLines())
}

// ScrollbackLine returns scrollback line index (0 is the oldest), or "" if
// out of range.
func (t *Terminal) ScrollbackLine(index int) string {
	sb := t.display.GetPrimaryViewport().GetScrollbackBuffer()
	if sb == nil {
		return ""
	}
	lines := sb.GetLines()
	if index < 0 || index >= len(lines) {
		return ""
	}
	return lineString(sb.GetRow(lines[index]))
}

// Search returns the 0-based row indices of every visible line containing
// substr.
func (t *Terminal) Search(substr string) []int {
	var hits []int
	for r := 0; r < t.Rows(); r++ {
		if strings.Contains(t.LineContent(r), substr) {
			hits = append(hits, r)
		}
	}
	return hits
}

// SearchScrollback returns the 0-based scrollback indices of every line
// containing substr.
func (t *Terminal) SearchScrollback(substr string) []int {
	var hits []int
	for i := 0; i < t.ScrollbackLen(); i++ {
		if strings.Contains(t.ScrollbackLine(i), substr) {
			hits = append(hits, i)
		}
	}
	return hits
}

// RecordedData returns every byte captured by the configured
// RecordingProvider since its last Clear.
func (t *Terminal) RecordedData() []byte { return t.recording.Data() }

// WriteResponse sends s to the configured ResponseProvider, the path
// in-band terminal responses (cursor position reports, DA replies) use.
func (t *Terminal) WriteResponse(s string) {
	t.response.Write([]byte(s))
}
