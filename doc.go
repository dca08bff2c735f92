// Package headlessterm provides a headless VT100/VT220-compatible terminal
// emulator: no rendering, no PTY spawn, just the screen-state machine.
//
// This makes it useful for:
//   - Testing terminal applications without a GUI
//   - Building terminal multiplexers and recorders
//   - Creating terminal-based web applications
//   - Automated testing of CLI tools
//   - Screen scraping and automation
//
// # Quick Start
//
// Create a terminal and write ANSI sequences to it:
//
//	term := headlessterm.New()
//	term.WriteString("\x1b[31mHello \x1b[32mWorld\x1b[0m!")
//	fmt.Println(term.LineContent(0)) // "Hello World!"
//
// # Architecture
//
// Terminal is a thin façade over four independent subpackages, each
// responsible for one layer of the pipeline:
//
//   - [parser]: decodes a raw byte stream into ASCII runs, UTF-8 runes, and
//     fully-parsed VT100/ANSI commands
//   - [executor]: applies decoded commands to a [display.TerminalDisplay]
//   - [display]: owns the primary/alternate screen grids and their
//     scrollback, backed by a fixed-capacity [ring.Ring]
//   - [encoder]: translates host-side input (keys, mouse, paste, resize)
//     back into the byte sequences a VT100-speaking child expects
//
// Terminal wires these together and adds the ambient layer the teacher
// codebase this module grew out of is built around: pluggable
// single-method provider interfaces (BellProvider, TitleProvider, ...)
// with Noop zero-value defaults, a functional-options constructor, and a
// public Cell/Cursor surface independent of the internal display package's
// representation.
//
// # Terminal
//
// Terminal implements [io.Writer] so raw child-process output can be piped
// straight in:
//
//	term := headlessterm.New(
//	    headlessterm.WithSize(24, 80),
//	    headlessterm.WithResponse(ptyWriter),
//	    headlessterm.WithRefresh(func() { repaint() }),
//	)
//
//	cmd := exec.Command("bash")
//	cmd.Stdout = term
//
// Host-side input goes back out through Terminal.Encoder:
//
//	term.Encoder.OnKeyPress(encoder.KeyCode{Kind: encoder.KeyCodeChar, Char: 'q'}, func(b []byte) {
//	    ptyWriter.Write(b)
//	})
//
// See cmd/termdemo for a complete example wiring both directions against a
// real PTY.
package headlessterm
