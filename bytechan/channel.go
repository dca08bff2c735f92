// Package bytechan implements the bounded, blocking, multi-producer/
// multi-consumer byte channel described by SPEC_FULL.md component C2. It is
// built directly on ring.Ring[byte] so that a single Send/Receive call
// copies a contiguous span even when the logical range wraps.
//
// Grounded on original_source/src/circular_buffer_channel/src/channel.rs:
// one mutex-guarded buffer plus two condition variables (space/data),
// refcounted senders and receivers standing in for Rust's Drop-based
// close detection.
package bytechan

import (
	"errors"
	"sync"

	"github.com/danielgatis/go-vt100-core/ring"
)

var (
	ErrClosed   = errors.New("bytechan: channel closed")
	ErrPoisoned = errors.New("bytechan: channel lock poisoned") // unreachable in Go; kept for parity with the reference's error taxonomy
)

type core struct {
	mu            sync.Mutex
	cvSpace       *sync.Cond
	cvData        *sync.Cond
	data          ring.Ring[byte]
	length        int
	writeIndex    int
	readIndex     int
	totalUsed     int
	totalSenders  int
	totalReceivers int
}

func (c *core) totalUnused() int { return c.length - c.totalUsed }
func (c *core) isFull() bool     { return c.totalUsed == c.length }
func (c *core) isEmpty() bool    { return c.totalUsed == 0 }

// Channel is the shared handle from which Sender and Receiver values are
// minted; it owns the underlying ring and is not itself used to move data.
type Channel struct {
	c *core
}

// gcd/lcm pick the channel's aligned capacity exactly as the reference's
// Channel::new does: round the requested minimum up to a multiple of
// lcm(allocation granularity, element size).
func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm(a, b int) int {
	if a > b {
		return a / gcd(a, b) * b
	}
	return b / gcd(a, b) * a
}

const assumedByteGranularity = 4096

// New creates a Channel whose capacity is at least minimumSize bytes,
// rounded up per the reference's alignment rule. byte is a 1-byte element,
// so in practice the aligned capacity is just minimumSize rounded up to the
// platform allocation granularity, but the lcm computation is kept general
// in case this is ever instantiated over a larger element type.
func New(minimumSize int) (*Channel, error) {
	if minimumSize <= 0 {
		minimumSize = 1
	}
	alignedUnit := lcm(assumedByteGranularity, 1)
	multiple := minimumSize / alignedUnit
	if minimumSize%alignedUnit != 0 || multiple == 0 {
		multiple++
	}
	size := multiple * alignedUnit

	data, err := ring.New[byte](size)
	if err != nil {
		return nil, err
	}
	c := &core{data: data, length: data.Len()}
	c.cvSpace = sync.NewCond(&c.mu)
	c.cvData = sync.NewCond(&c.mu)
	return &Channel{c: c}, nil
}

// Size reports the effective channel capacity in bytes.
func (ch *Channel) Size() int { return ch.c.length }

// NewSender mints an additional sender handle over this channel, analogous
// to cloning a Sender in the reference: it increments the sender refcount
// under the lock.
func (ch *Channel) NewSender() *Sender {
	ch.c.mu.Lock()
	ch.c.totalSenders++
	ch.c.mu.Unlock()
	return &Sender{c: ch.c}
}

// NewReceiver mints an additional receiver handle, mirroring NewSender.
func (ch *Channel) NewReceiver() *Receiver {
	ch.c.mu.Lock()
	ch.c.totalReceivers++
	ch.c.mu.Unlock()
	return &Receiver{c: ch.c}
}

// Sender is one producer handle on a Channel. The zero value is not usable;
// obtain one via New or Channel.NewSender.
type Sender struct {
	c      *core
	closed bool
}

// Close releases this sender handle. Go has no destructors, so callers
// must call Close explicitly (typically via defer) where the reference
// relies on Drop; closing the last sender wakes every blocked receiver.
func (s *Sender) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.c.mu.Lock()
	s.c.totalSenders--
	if s.c.totalSenders == 0 {
		s.c.cvData.Broadcast()
	}
	s.c.mu.Unlock()
}

// Send copies min(len(buf), unused capacity) bytes into the channel and
// returns the count actually sent. It blocks while the channel is full and
// at least one receiver remains; it returns ErrClosed once no receiver
// remains.
func (s *Sender) Send(buf []byte) (int, error) {
	c := s.c
	c.mu.Lock()
	defer c.mu.Unlock()
	for {
		if c.totalReceivers == 0 {
			return 0, ErrClosed
		}
		if !c.isFull() {
			break
		}
		c.cvSpace.Wait()
	}
	totalSend := len(buf)
	if unused := c.totalUnused(); totalSend > unused {
		totalSend = unused
	}
	dst := c.data.Slice(c.writeIndex, c.writeIndex+totalSend)
	copy(dst, buf[:totalSend])
	c.totalUsed += totalSend
	c.writeIndex += totalSend
	if c.writeIndex > c.length {
		c.writeIndex -= c.length
	}
	c.cvData.Signal()
	return totalSend, nil
}

// SendAll loops Send until the entire buffer has been delivered or the
// channel closes partway through.
func (s *Sender) SendAll(buf []byte) error {
	for len(buf) > 0 {
		n, err := s.Send(buf)
		if err != nil {
			return err
		}
		buf = buf[n:]
	}
	return nil
}

// Receiver is one consumer handle on a Channel.
type Receiver struct {
	c      *core
	closed bool
}

// Close releases this receiver handle; closing the last receiver wakes
// every blocked sender.
func (r *Receiver) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.c.mu.Lock()
	r.c.totalReceivers--
	if r.c.totalReceivers == 0 {
		r.c.cvSpace.Broadcast()
	}
	r.c.mu.Unlock()
}

// Receive copies min(len(buf), bytes available) bytes out of the channel
// and returns the count actually received. It blocks while the channel is
// empty and at least one sender remains; it returns ErrClosed once the
// channel is both senderless and empty.
func (r *Receiver) Receive(buf []byte) (int, error) {
	c := r.c
	c.mu.Lock()
	defer c.mu.Unlock()
	for {
		if c.totalSenders == 0 && c.isEmpty() {
			return 0, ErrClosed
		}
		if !c.isEmpty() {
			break
		}
		c.cvData.Wait()
	}
	totalReceive := len(buf)
	if c.totalUsed < totalReceive {
		totalReceive = c.totalUsed
	}
	src := c.data.Slice(c.readIndex, c.readIndex+totalReceive)
	copy(buf[:totalReceive], src)
	c.totalUsed -= totalReceive
	c.readIndex += totalReceive
	if c.readIndex > c.length {
		c.readIndex -= c.length
	}
	c.cvSpace.Signal()
	return totalReceive, nil
}

// ReceiveAll loops Receive until buf is completely filled or the channel
// closes partway through.
func (r *Receiver) ReceiveAll(buf []byte) error {
	for len(buf) > 0 {
		n, err := r.Receive(buf)
		if err != nil {
			return err
		}
		buf = buf[n:]
	}
	return nil
}
