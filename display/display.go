package display

import "sync"

// CursorStyle mirrors parser.CursorStyle's three shapes (block, underline,
// bar); blink-vs-steady is tracked separately on CursorStatus.IsBlinking,
// matching how CmdSetCursorStyle and CmdEnable/DisableCursorBlinking arrive
// as distinct commands from the parser.
type CursorStyle int

const (
	CursorStyleBlock CursorStyle = iota
	CursorStyleUnderline
	CursorStyleBar
)

// CursorStatus is the cursor's visual state, independent of its position
// (which lives on the active Viewport).
//
// Grounded on original_source/src/terminal/src/terminal_display.rs's
// CursorStatus.
type CursorStatus struct {
	IsVisible  bool
	IsBlinking bool
	Style      CursorStyle
}

// DefaultCursorStatus matches the conventional terminal default: a visible,
// blinking block cursor.
func DefaultCursorStatus() CursorStatus {
	return CursorStatus{IsVisible: true, IsBlinking: true, Style: CursorStyleBlock}
}

// savedCursor is the snapshot DECSC/DECRC push and pop.
type savedCursor struct {
	position Vector2
	pen      Pen
	valid    bool
}

// TerminalDisplay owns the primary and alternate Viewports plus the
// cursor's visual status, all behind one lock, the way the teacher's
// terminal.go guards its buffer with a sync.RWMutex.
//
// Grounded on original_source/src/terminal/src/terminal_display.rs's
// TerminalDisplay (primary_viewport/alternate_viewport/is_alternate_viewport/
// size/cursor_status), with SaveCursor/RestoreCursor/GetColourFromTable
// designed locally (no definition was present in the retrieved reference
// material) following the locking idiom of the teacher's terminal.go.
type TerminalDisplay struct {
	mu                 sync.RWMutex
	primaryViewport    *Viewport
	alternateViewport  *Viewport
	isAlternateActive  bool
	size               Vector2
	cursorStatus       CursorStatus
	defaultPen         Pen
	saved              savedCursor
}

// NewTerminalDisplay allocates both viewports at DefaultViewportSize with a
// default pen of DefaultForeground-on-DefaultBackground.
func NewTerminalDisplay() (*TerminalDisplay, error) {
	primary, err := NewViewport()
	if err != nil {
		return nil, err
	}
	alternate := NewAlternateViewport()
	pen := Pen{Foreground: DefaultForeground, Background: DefaultBackground}
	primary.SetPen(pen)
	alternate.SetPen(pen)
	return &TerminalDisplay{
		primaryViewport:   primary,
		alternateViewport: alternate,
		size:              DefaultViewportSize,
		cursorStatus:      DefaultCursorStatus(),
		defaultPen:        pen,
	}, nil
}

// GetCurrentViewport returns the active viewport (primary unless the
// alternate buffer is in effect) under a read lock.
func (d *TerminalDisplay) GetCurrentViewport() *Viewport {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.currentViewportLocked()
}

// WithCurrentViewport runs fn against the active viewport under a write
// lock, the pattern every executor command uses to mutate display state.
func (d *TerminalDisplay) WithCurrentViewport(fn func(v *Viewport)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(d.currentViewportLocked())
}

func (d *TerminalDisplay) currentViewportLocked() *Viewport {
	if d.isAlternateActive {
		return d.alternateViewport
	}
	return d.primaryViewport
}

// GetPrimaryViewport and GetAlternateViewport expose both grids directly,
// for callers (snapshotting, rendering) that need to read the inactive one
// too.
func (d *TerminalDisplay) GetPrimaryViewport() *Viewport {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.primaryViewport
}

func (d *TerminalDisplay) GetAlternateViewport() *Viewport {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.alternateViewport
}

// IsAlternateActive reports whether the alternate screen buffer is
// currently selected.
func (d *TerminalDisplay) IsAlternateActive() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.isAlternateActive
}

// SetIsAlternate switches between the primary and alternate viewport.
// Switching away from the alternate screen does not clear it, so toggling
// back and forth without an explicit erase preserves its prior contents,
// matching xterm's 1049/47/1047 behaviour.
func (d *TerminalDisplay) SetIsAlternate(isAlternate bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.isAlternateActive = isAlternate
}

// SetDefaultPen updates the pen new cells inherit; existing cells are
// unaffected, only the Pen each Viewport writes through from here on.
func (d *TerminalDisplay) SetDefaultPen(pen Pen) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.defaultPen = pen
	d.primaryViewport.SetPen(pen)
	d.alternateViewport.SetPen(pen)
}

func (d *TerminalDisplay) GetDefaultPen() Pen {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.defaultPen
}

// SetSize resizes both viewports. The inactive one reflows too, so
// switching buffers after a resize doesn't require replaying the resize.
func (d *TerminalDisplay) SetSize(size Vector2) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.size = size
	d.primaryViewport.SetSize(size)
	d.alternateViewport.SetSize(size)
}

func (d *TerminalDisplay) GetSize() Vector2 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.size
}

// GetCursorStatus and SetCursorStatus manage the cursor's visibility,
// blink, and shape, independent of its row/column (which lives on the
// active Viewport).
func (d *TerminalDisplay) GetCursorStatus() CursorStatus {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cursorStatus
}

func (d *TerminalDisplay) SetCursorStatus(status CursorStatus) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cursorStatus = status
}

func (d *TerminalDisplay) SetCursorVisible(visible bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cursorStatus.IsVisible = visible
}

func (d *TerminalDisplay) SetCursorBlinking(blinking bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cursorStatus.IsBlinking = blinking
}

func (d *TerminalDisplay) SetCursorStyle(style CursorStyle) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cursorStatus.Style = style
}

// SaveCursor snapshots the active viewport's cursor position and pen, for
// DECSC (ESC 7) / "s" to later restore via RestoreCursor. No literal
// reference definition was retrieved for this pair; the snapshot shape
// follows DEC's documented DECSC/DECRC semantics (position plus graphic
// rendition, not full parser state) applied through the same locking
// idiom as every other mutator here.
func (d *TerminalDisplay) SaveCursor() {
	d.mu.Lock()
	defer d.mu.Unlock()
	v := d.currentViewportLocked()
	d.saved = savedCursor{position: v.GetCursor(), pen: v.GetPen(), valid: true}
}

// RestoreCursor restores the last SaveCursor snapshot for the currently
// active viewport. A restore with no prior save is a no-op, matching
// xterm's behaviour of leaving the cursor untouched.
func (d *TerminalDisplay) RestoreCursor() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.saved.valid {
		return
	}
	v := d.currentViewportLocked()
	v.SetCursor(d.saved.position)
	v.SetPen(d.saved.pen)
}

// GetColourFromTable resolves a 256-color palette index against
// Palette256. Kept as a TerminalDisplay method (rather than a bare
// package function) so callers that only hold a *TerminalDisplay don't
// need a second import just to translate an SGR 38;5;n / 48;5;n index.
func (d *TerminalDisplay) GetColourFromTable(index int) Rgb {
	return ColourFromTable(index)
}
