package headlessterm

import (
	"github.com/danielgatis/go-vt100-core/executor"
)

// ReadSource is the blocking byte source a host drives a parser goroutine
// from (typically a PTY's read end). Read returns io.EOF at end of stream.
//
// Modeled as its own single-method interface per SPEC_FULL.md section 9's
// "independent capability interfaces" note, rather than folded into
// Terminal itself: the parser goroutine holds this, separately from
// whichever goroutine holds WriteSink/IOControlSink.
type ReadSource interface {
	Read(p []byte) (int, error)
}

// WriteSink is the blocking, best-effort byte sink a host writes encoded
// input (keystrokes, mouse reports, resize reports) to - typically a PTY's
// write end. Errors are the caller's to log; WriteSink itself does not
// retry or swallow them.
type WriteSink interface {
	Write(p []byte) error
}

// IOControlSink is notified when the terminal's grid size changes, so a
// host can propagate it to the underlying pty (TIOCSWINSZ or equivalent).
type IOControlSink interface {
	SetSize(cols, rows int)
}

// RefreshSink is notified after any command that changes what's on screen.
// Terminal forwards this straight through to its internal executor.
type RefreshSink = executor.RefreshSink

// RefreshFunc adapts a plain func() to a RefreshSink.
type RefreshFunc func()

func (f RefreshFunc) Refresh() { f() }

// WindowActionSink receives CmdWindowAction commands (iconify, move,
// resize-to, report-state, ...). The parser has no CSI t case, so these
// arrive only from Commands handed to Terminal.OnVT100 or Executor.Apply.
// Refresh and SetWindowTitle are the two cases a typical host implements;
// the rest are usually ignored.
type WindowActionSink = executor.WindowActionSink
