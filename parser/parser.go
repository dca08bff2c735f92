// Package parser implements the three-layer byte decoder described by
// SPEC_FULL.md component C3: a byte-classifying outer loop that routes each
// incoming byte to either ASCII passthrough, a UTF-8 rune accumulator, or
// the VT100 control-sequence sub-parser (Parser, in vt100.go), and calls
// back into a Handler with the result.
//
// Grounded on original_source/src/terminal/src/parser.rs's Parser/State,
// with the callback shape kept close to the reference's Handler trait so
// that executor.Executor (the terminal-side implementation) reads like the
// reference's ParserHandler.
package parser

type byteState int

const (
	byteStateByte byteState = iota
	byteStateUtf8
	byteStateVt100
)

// Handler receives the decoded output of StreamParser.ParseBytes. Exactly
// one method is called per completed unit: a contiguous run of bytes below
// 0x80 other than ESC (control bytes included), one decoded rune, one
// decoded VT100 Command, or an error from either of the latter two
// sub-parsers.
type Handler interface {
	OnUnhandledByte(b byte)
	OnASCIIData(buf []byte)
	OnUTF8(r rune)
	OnUTF8Error(err error)
	OnVT100(cmd Command)
	OnVT100Error(err error, p *Parser)
}

// StreamParser is the outer byte/utf8/vt100 dispatcher. Use NewStreamParser
// to obtain one; the zero value has a nil vt100 sub-parser and is not
// usable.
type StreamParser struct {
	state byteState
	utf8  utf8Accumulator
	vt100 *Parser
}

// NewStreamParser returns a StreamParser ready to accept its first byte.
func NewStreamParser() *StreamParser {
	return &StreamParser{vt100: NewParser()}
}

// ParseBytes decodes buf, invoking handler's callbacks as each unit
// completes. It may be called repeatedly across reads from a PTY or socket;
// all state (a partial UTF-8 rune, a partial VT100 sequence) carries over
// between calls.
func (s *StreamParser) ParseBytes(buf []byte, handler Handler) {
	for len(buf) > 0 {
		switch s.state {
		case byteStateByte:
			buf = s.stepByte(buf, handler)
		case byteStateUtf8:
			buf = s.stepUtf8(buf, handler)
		case byteStateVt100:
			buf = s.stepVt100(buf, handler)
		}
	}
}

func (s *StreamParser) stepByte(buf []byte, handler Handler) []byte {
	totalASCII := 0
	totalRead := 0
	for _, b := range buf {
		totalRead++
		if b == EscapeCode {
			s.state = byteStateVt100
			s.vt100.Reset()
			break
		}
		if b&0b1000_0000 == 0b0000_0000 {
			totalASCII++
			continue
		}
		if s.utf8.parseHeaderByte(b) {
			s.state = byteStateUtf8
			break
		}
		handler.OnUnhandledByte(b)
		break
	}
	asciiBuf := buf[:totalASCII]
	rest := buf[totalRead:]
	if len(asciiBuf) > 0 {
		handler.OnASCIIData(asciiBuf)
	}
	return rest
}

func (s *StreamParser) stepUtf8(buf []byte, handler Handler) []byte {
	totalRead := 0
	for _, b := range buf {
		totalRead++
		r, err := s.utf8.parseBodyByte(b)
		switch {
		case err == ErrUtf8Pending:
			continue
		case err != nil:
			handler.OnUTF8Error(err)
			s.state = byteStateByte
		default:
			handler.OnUTF8(r)
			s.state = byteStateByte
		}
		break
	}
	return buf[totalRead:]
}

func (s *StreamParser) stepVt100(buf []byte, handler Handler) []byte {
	totalRead := 0
	for _, b := range buf {
		totalRead++
		cmd, err := s.vt100.Feed(b)
		switch {
		case err == ErrPending:
			continue
		case err != nil:
			handler.OnVT100Error(err, s.vt100)
			s.state = byteStateByte
		default:
			handler.OnVT100(cmd)
			s.state = byteStateByte
		}
		break
	}
	return buf[totalRead:]
}
