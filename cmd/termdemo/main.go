// Command termdemo wires a headlessterm.Terminal to a real child process
// over a PTY: it is the domain-integration example SPEC_FULL.md describes,
// not part of the module's specified core.
//
// It demonstrates the four capability boundaries Terminal exposes:
//   - ReadSource / WriteSink: the PTY's read and write ends
//   - IOControlSink: propagating a host resize to the PTY via TIOCSWINSZ
//   - WindowActionSink: printing the rendered grid to stdout on refresh
//
// Run it against a shell:
//
//	go run ./cmd/termdemo -- bash
package main

import (
	"io"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/creack/pty"
	"golang.org/x/term"

	headlessterm "github.com/danielgatis/go-vt100-core"
	"github.com/danielgatis/go-vt100-core/parser"
)

// ptyIO adapts an *os.File (the PTY master) to headlessterm.ReadSource,
// headlessterm.WriteSink, and headlessterm.IOControlSink.
type ptyIO struct {
	f *os.File
}

func (p *ptyIO) Read(b []byte) (int, error) { return p.f.Read(b) }

func (p *ptyIO) Write(b []byte) error {
	_, err := p.f.Write(b)
	return err
}

func (p *ptyIO) SetSize(cols, rows int) {
	_ = pty.Setsize(p.f, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
}

// stdoutWindowAction implements headlessterm.WindowActionSink by printing a
// rendered snapshot of the grid to stdout whenever the terminal refreshes.
// This is the "Refresh" case SPEC_FULL.md section 9 names as the one a
// typical host actually implements; every other CSI t action is logged.
type stdoutWindowAction struct {
	vt *headlessterm.Terminal
}

func (s *stdoutWindowAction) Refresh() {
	os.Stdout.WriteString("\x1b[H\x1b[2J")
	os.Stdout.WriteString(s.vt.String())
}

func (s *stdoutWindowAction) WindowAction(action parser.WindowAction, vec parser.Vector2, text bool) {
	log.Printf("window action %v (vec=%+v text=%v) ignored by this demo", action, vec, text)
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		args = []string{"sh"}
	}

	cmd := exec.Command(args[0], args[1:]...)
	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(headlessterm.DefaultRows),
		Cols: uint16(headlessterm.DefaultCols),
	})
	if err != nil {
		log.Fatalf("start pty: %v", err)
	}
	defer ptmx.Close()

	ioctl := &ptyIO{f: ptmx}
	windowAction := &stdoutWindowAction{}
	vt := headlessterm.New(
		headlessterm.WithSize(headlessterm.DefaultRows, headlessterm.DefaultCols),
		headlessterm.WithResponse(ioctl.f),
		headlessterm.WithRefresh(windowAction.Refresh),
		headlessterm.WithWindowAction(windowAction),
	)
	windowAction.vt = vt

	if stdinState, err := term.MakeRaw(int(os.Stdin.Fd())); err == nil {
		defer term.Restore(int(os.Stdin.Fd()), stdinState)
	}

	resizeCh := make(chan os.Signal, 1)
	signal.Notify(resizeCh, syscall.SIGWINCH)
	go watchResize(resizeCh, vt, ioctl)
	resizeCh <- syscall.SIGWINCH // sync to the host's current size before the child produces output

	go pipeOutput(vt, ioctl)
	pipeInput(ioctl, os.Stdin)
}

// pipeOutput feeds PTY output into the terminal until the child exits or
// the PTY read end errs (typically io.EOF after the child dies).
func pipeOutput(vt *headlessterm.Terminal, src headlessterm.ReadSource) {
	buf := make([]byte, 4096)
	for {
		n, err := src.Read(buf)
		if n > 0 {
			vt.Write(buf[:n])
		}
		if err != nil {
			if err != io.EOF {
				log.Printf("pty read: %v", err)
			}
			return
		}
	}
}

// pipeInput reads raw bytes from in and forwards them to the PTY as-is.
// A production host would run these through Terminal.Encoder instead of
// forwarding raw bytes straight through; this demo keeps stdin in raw
// passthrough mode to stay short.
func pipeInput(sink headlessterm.WriteSink, in io.Reader) {
	buf := make([]byte, 256)
	for {
		n, err := in.Read(buf)
		if n > 0 {
			if werr := sink.Write(buf[:n]); werr != nil {
				log.Printf("pty write: %v", werr)
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// watchResize propagates the host terminal's size to both the emulated
// grid and the child PTY whenever the host delivers SIGWINCH.
func watchResize(ch <-chan os.Signal, vt *headlessterm.Terminal, ioctl headlessterm.IOControlSink) {
	for range ch {
		cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil {
			continue
		}
		vt.Resize(rows, cols)
		ioctl.SetSize(cols, rows)
	}
}
