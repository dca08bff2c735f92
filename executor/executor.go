// Package executor applies parser.Command values to a display.TerminalDisplay,
// the bridge between the byte-stream parser and the screen state it drives.
//
// Grounded 1:1 on original_source/src/terminal/src/terminal.rs's
// ParserHandler::on_vt100 match arms, minus the RGB-scaling workaround that
// match arm applied to SetForegroundColourRgb/SetBackgroundColourRgb (see
// SPEC_FULL.md section 4.5 and DESIGN.md's Open Question resolutions), and
// with CmdScrollUp/CmdScrollDown wired to display.Viewport's scroll-region-
// aware ScrollUp/ScrollDown instead of being left as `// TODO:` stubs.
package executor

import (
	"github.com/danielgatis/go-vt100-core/display"
	"github.com/danielgatis/go-vt100-core/parser"
)

var _ parser.Handler = (*Executor)(nil)

// RefreshSink is notified after every command that changes what's on
// screen, standing in for the reference's `window_action(WindowAction::Refresh)`
// callback threaded through every display-mutating match arm.
type RefreshSink interface {
	Refresh()
}

// WindowActionSink receives CmdWindowAction payloads the executor itself
// doesn't interpret (iconify, move, resize-to, report-state, ...),
// mirring the reference's `Vt100Command::WindowAction(action) => window_action(action)`.
type WindowActionSink interface {
	WindowAction(action parser.WindowAction, vec parser.Vector2, text bool)
}

// Executor owns the display it mutates and the sinks it reports to.
type Executor struct {
	display      *display.TerminalDisplay
	refresh      RefreshSink
	windowAction WindowActionSink
}

// New builds an Executor over disp, reporting to refresh after every
// screen-affecting command and forwarding window actions to windowAction.
// Either sink may be nil.
func New(disp *display.TerminalDisplay, refresh RefreshSink, windowAction WindowActionSink) *Executor {
	return &Executor{display: disp, refresh: refresh, windowAction: windowAction}
}

func (e *Executor) notifyRefresh() {
	if e.refresh != nil {
		e.refresh.Refresh()
	}
}

// OnASCIIData writes every byte in buf to the active viewport, translating
// through the designated character set, and reports one refresh for the
// whole batch (the reference reports one per on_ascii_data call, not per
// byte).
func (e *Executor) OnASCIIData(buf []byte) {
	e.display.WithCurrentViewport(func(v *display.Viewport) {
		for _, b := range buf {
			v.WriteASCII(b)
		}
	})
	e.notifyRefresh()
}

// OnUTF8 writes a single decoded rune to the active viewport.
func (e *Executor) OnUTF8(r rune) {
	e.display.WithCurrentViewport(func(v *display.Viewport) { v.WriteUTF8(r) })
	e.notifyRefresh()
}

// OnVT100 applies a fully decoded command. Executor satisfies
// parser.Handler so it can be handed directly to
// parser.StreamParser.ParseBytes as the callback target.
func (e *Executor) OnVT100(cmd parser.Command) {
	e.Apply(cmd)
}

// OnUnhandledByte drops a byte the parser's outer loop couldn't classify
// as ASCII, a UTF-8 lead byte, or an escape - there's no display-layer
// action for it, matching the reference's equivalent log-only arm.
func (e *Executor) OnUnhandledByte(b byte) {}

// OnUTF8Error drops a malformed UTF-8 sequence; the stream resyncs to
// byte mode on the next call, so there's nothing further to do here.
func (e *Executor) OnUTF8Error(err error) {}

// OnVT100Error drops a malformed or unsupported VT100 sequence; the
// stream resyncs to byte mode on the next call.
func (e *Executor) OnVT100Error(err error, p *parser.Parser) {}

// Apply dispatches one parsed Command to the display, mirroring
// terminal.rs's ParserHandler::on_vt100 match. Unhandled Kinds are no-ops,
// matching the reference's catch-all `_ => log::info!(...)` arm.
func (e *Executor) Apply(c parser.Command) {
	switch c.Kind {
	case parser.CmdSetHyperlink:
		// logged only in the reference; nothing to paint

	case parser.CmdSetGraphicStyles:
		e.display.WithCurrentViewport(func(v *display.Viewport) { applyGraphicStyles(v, c.Styles) })
		e.notifyRefresh()

	case parser.CmdSetBackgroundColourRgb:
		e.display.WithCurrentViewport(func(v *display.Viewport) {
			pen := v.GetPen()
			pen.Background = display.Rgb{R: c.Rgb.R, G: c.Rgb.G, B: c.Rgb.B}
			v.SetPen(pen)
		})
		e.notifyRefresh()

	case parser.CmdSetForegroundColourRgb:
		e.display.WithCurrentViewport(func(v *display.Viewport) {
			pen := v.GetPen()
			pen.Foreground = display.Rgb{R: c.Rgb.R, G: c.Rgb.G, B: c.Rgb.B}
			v.SetPen(pen)
		})
		e.notifyRefresh()

	case parser.CmdSetBackgroundColourTable:
		e.display.WithCurrentViewport(func(v *display.Viewport) {
			pen := v.GetPen()
			pen.Background = e.display.GetColourFromTable(c.ColourIndex)
			v.SetPen(pen)
		})
		e.notifyRefresh()

	case parser.CmdSetForegroundColourTable:
		e.display.WithCurrentViewport(func(v *display.Viewport) {
			pen := v.GetPen()
			pen.Foreground = e.display.GetColourFromTable(c.ColourIndex)
			v.SetPen(pen)
		})
		e.notifyRefresh()

	case parser.CmdEraseInDisplay:
		e.display.WithCurrentViewport(func(v *display.Viewport) { eraseInDisplay(v, c.Erase) })
		e.notifyRefresh()

	case parser.CmdEraseInLine:
		e.display.WithCurrentViewport(func(v *display.Viewport) { eraseInLine(v, c.Erase) })
		e.notifyRefresh()

	case parser.CmdReplaceWithSpaces:
		e.display.WithCurrentViewport(func(v *display.Viewport) { replaceWithSpaces(v, c.N) })
		e.notifyRefresh()

	case parser.CmdInsertSpaces:
		e.display.WithCurrentViewport(func(v *display.Viewport) { insertSpaces(v, c.N) })
		e.notifyRefresh()

	case parser.CmdDeleteCharacters:
		e.display.WithCurrentViewport(func(v *display.Viewport) { deleteCharacters(v, c.N) })
		e.notifyRefresh()

	case parser.CmdInsertLines:
		e.display.WithCurrentViewport(func(v *display.Viewport) { insertLines(v, c.N) })
		e.notifyRefresh()

	case parser.CmdDeleteLines:
		e.display.WithCurrentViewport(func(v *display.Viewport) { deleteLines(v, c.N) })
		e.notifyRefresh()

	case parser.CmdMoveCursorPositionViewport:
		e.display.WithCurrentViewport(func(v *display.Viewport) {
			v.SetCursor(display.Vector2{X: c.Position.X - 1, Y: c.Position.Y - 1})
		})
		e.notifyRefresh()

	case parser.CmdMoveCursorUp:
		e.display.WithCurrentViewport(func(v *display.Viewport) {
			cursor := v.GetCursor()
			cursor.Y = subClamp(cursor.Y, c.N)
			v.SetCursor(cursor)
		})
		e.notifyRefresh()

	case parser.CmdMoveCursorDown:
		e.display.WithCurrentViewport(func(v *display.Viewport) {
			cursor := v.GetCursor()
			cursor.Y += c.N
			v.SetCursor(cursor)
		})
		e.notifyRefresh()

	case parser.CmdMoveCursorRight:
		e.display.WithCurrentViewport(func(v *display.Viewport) {
			cursor := v.GetCursor()
			cursor.X += c.N
			v.SetCursor(cursor)
		})
		e.notifyRefresh()

	case parser.CmdMoveCursorLeft:
		e.display.WithCurrentViewport(func(v *display.Viewport) {
			cursor := v.GetCursor()
			cursor.X = subClamp(cursor.X, c.N)
			v.SetCursor(cursor)
		})
		e.notifyRefresh()

	case parser.CmdMoveCursorReverseIndex:
		e.display.WithCurrentViewport(func(v *display.Viewport) {
			cursor := v.GetCursor()
			cursor.Y = subClamp(cursor.Y, 1)
			v.SetCursor(cursor)
		})
		e.notifyRefresh()

	case parser.CmdMoveCursorNextLine, parser.CmdMoveCursorPreviousLine, parser.CmdMoveCursorVerticalAbsolute:
		e.display.WithCurrentViewport(func(v *display.Viewport) {
			cursor := v.GetCursor()
			cursor.Y = subClamp(c.N, 1)
			v.SetCursor(cursor)
		})
		e.notifyRefresh()

	case parser.CmdMoveCursorHorizontalAbsolute:
		e.display.WithCurrentViewport(func(v *display.Viewport) {
			cursor := v.GetCursor()
			cursor.X = subClamp(c.N, 1)
			v.SetCursor(cursor)
		})
		e.notifyRefresh()

	case parser.CmdScrollUp:
		e.display.WithCurrentViewport(func(v *display.Viewport) { v.ScrollUp(c.N) })
		e.notifyRefresh()

	case parser.CmdScrollDown:
		e.display.WithCurrentViewport(func(v *display.Viewport) { v.ScrollDown(c.N) })
		e.notifyRefresh()

	case parser.CmdSaveCursorToMemory:
		e.display.SaveCursor()

	case parser.CmdRestoreCursorFromMemory:
		e.display.RestoreCursor()
		e.notifyRefresh()

	case parser.CmdEnableCursorBlinking:
		e.display.SetCursorBlinking(true)
		e.notifyRefresh()

	case parser.CmdDisableCursorBlinking:
		e.display.SetCursorBlinking(false)
		e.notifyRefresh()

	case parser.CmdShowCursor:
		e.display.SetCursorVisible(true)
		e.notifyRefresh()

	case parser.CmdHideCursor:
		e.display.SetCursorVisible(false)
		e.notifyRefresh()

	case parser.CmdSetCursorStyle:
		e.display.SetCursorStyle(display.CursorStyle(c.CursorStyle))
		e.notifyRefresh()

	case parser.CmdSetScrollRegion:
		e.display.WithCurrentViewport(func(v *display.Viewport) {
			if c.Region == nil || c.Region.Top >= c.Region.Bottom {
				v.SetScrollRegion(nil)
				return
			}
			v.SetScrollRegion(&display.ScrollRegion{Top: c.Region.Top - 1, Bottom: c.Region.Bottom - 1})
		})

	case parser.CmdDesignateCharacterSet:
		e.display.WithCurrentViewport(func(v *display.Viewport) {
			v.SetLineDrawingCharset(c.CharSet == parser.CharacterSetLineDrawing)
		})

	case parser.CmdEnableAlternateBuffer, parser.CmdSaveScreen:
		e.display.SetIsAlternate(true)
		e.notifyRefresh()

	case parser.CmdDisableAlternateBuffer, parser.CmdRestoreScreen:
		e.display.SetIsAlternate(false)
		e.notifyRefresh()

	case parser.CmdWindowAction:
		if e.windowAction != nil {
			e.windowAction.WindowAction(c.Window, c.WindowVec, c.WindowBool)
		}

	case parser.CmdSoftReset:
		e.softReset()
		e.notifyRefresh()

	default:
		// query/keyboard-mode/tab/OSC-title/screen-mode/console-width/mouse
		// commands either have no screen-state effect here or are consumed
		// by the encoder/ioctl layer instead of the executor.
	}
}

func (e *Executor) softReset() {
	e.display.WithCurrentViewport(func(v *display.Viewport) {
		v.SetScrollRegion(nil)
		v.SetLineDrawingCharset(false)
	})
	e.display.SetCursorStatus(display.DefaultCursorStatus())
}

func subClamp(v, n int) int {
	if n > v {
		return 0
	}
	return v - n
}
