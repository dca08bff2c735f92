package parser

import "errors"

// ErrUtf8Pending means parseBodyByte needs more continuation bytes before a
// rune is complete.
var ErrUtf8Pending = errors.New("parser: utf8 sequence pending")

// ErrUtf8InvalidBody means a byte expected to be a UTF-8 continuation byte
// (10xxxxxx) was not one; the accumulator resets to ReadingHeader.
var ErrUtf8InvalidBody = errors.New("parser: invalid utf8 continuation byte")

type utf8State int

const (
	utf8ReadingHeader utf8State = iota
	utf8ReadingBody
)

// utf8Accumulator rebuilds a rune from a multi-byte UTF-8 sequence one byte
// at a time, so the outer Parser can feed it PTY output a chunk at a time
// without ever needing a full sequence buffered contiguously.
//
// Grounded on original_source/src/terminal/src/utf8_parser.rs: the bit
// layout (accumulate into the high bits of a uint32, shift down once
// complete) is copied exactly, translated from unsafe
// char::from_u32_unchecked into Go's rune(uint32) conversion.
type utf8Accumulator struct {
	data        uint32
	currBit     int
	currPoint   int
	totalPoints int
	state       utf8State
}

// parseHeaderByte inspects a lead byte; it reports whether b begins a
// multi-byte sequence (2, 3 or 4 bytes). ASCII bytes and stray continuation
// bytes are the caller's responsibility to route elsewhere (see parser.go).
func (p *utf8Accumulator) parseHeaderByte(b byte) bool {
	switch {
	case b&0b1110_0000 == 0b1100_0000:
		p.setTotalPoints(2)
		p.pushCodePoint(b, 5)
		p.state = utf8ReadingBody
		return true
	case b&0b1111_0000 == 0b1110_0000:
		p.setTotalPoints(3)
		p.pushCodePoint(b, 4)
		p.state = utf8ReadingBody
		return true
	case b&0b1111_1000 == 0b1111_0000:
		p.setTotalPoints(4)
		p.pushCodePoint(b, 3)
		p.state = utf8ReadingBody
		return true
	default:
		return false
	}
}

func (p *utf8Accumulator) parseBodyByte(b byte) (rune, error) {
	if b&0b1100_0000 != 0b1000_0000 {
		p.state = utf8ReadingHeader
		return 0, ErrUtf8InvalidBody
	}
	p.pushCodePoint(b, 6)
	if !p.isComplete() {
		return 0, ErrUtf8Pending
	}
	c := p.getChar()
	p.state = utf8ReadingHeader
	return c, nil
}

func (p *utf8Accumulator) pushCodePoint(b byte, totalBits int) {
	mask := byte(0xFF) >> (8 - totalBits)
	bits := b & mask
	shiftAmount := 32 - p.currBit - totalBits
	p.data |= uint32(bits) << shiftAmount
	p.currPoint++
	p.currBit += totalBits
}

func (p *utf8Accumulator) isComplete() bool { return p.totalPoints == p.currPoint }

func (p *utf8Accumulator) getChar() rune {
	shiftAmount := 32 - p.currBit
	return rune(p.data >> shiftAmount)
}

func (p *utf8Accumulator) setTotalPoints(totalPoints int) {
	p.data = 0
	p.currBit = 0
	p.currPoint = 0
	p.totalPoints = totalPoints
}
