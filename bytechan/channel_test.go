package bytechan

import (
	"bytes"
	"testing"
)

func TestSendReceiveRoundTrip(t *testing.T) {
	ch, err := New(64)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	sender := ch.NewSender()
	receiver := ch.NewReceiver()
	defer sender.Close()
	defer receiver.Close()

	msg := []byte("hello, terminal")
	if err := sender.SendAll(msg); err != nil {
		t.Fatalf("SendAll failed: %v", err)
	}

	got := make([]byte, len(msg))
	if err := receiver.ReceiveAll(got); err != nil {
		t.Fatalf("ReceiveAll failed: %v", err)
	}
	if !bytes.Equal(got, msg) {
		t.Errorf("got %q, want %q", got, msg)
	}
}

func TestReceiveAfterSendersClosedDrainsThenCloses(t *testing.T) {
	ch, err := New(16)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	sender := ch.NewSender()
	receiver := ch.NewReceiver()
	defer receiver.Close()

	if err := sender.SendAll([]byte("ab")); err != nil {
		t.Fatalf("SendAll failed: %v", err)
	}
	sender.Close()

	buf := make([]byte, 2)
	if _, err := receiver.Receive(buf); err != nil {
		t.Fatalf("Receive before drain failed: %v", err)
	}
	if string(buf) != "ab" {
		t.Errorf("got %q, want %q", buf, "ab")
	}

	if _, err := receiver.Receive(buf); err != ErrClosed {
		t.Errorf("Receive after drain = %v, want ErrClosed", err)
	}
}

func TestSendAfterReceiversClosedFails(t *testing.T) {
	ch, err := New(16)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	sender := ch.NewSender()
	defer sender.Close()
	receiver := ch.NewReceiver()
	receiver.Close()

	if _, err := sender.Send([]byte("x")); err != ErrClosed {
		t.Errorf("Send after receivers closed = %v, want ErrClosed", err)
	}
}

func TestSendWrapsAroundRingCapacity(t *testing.T) {
	ch, err := New(8)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	sender := ch.NewSender()
	receiver := ch.NewReceiver()
	defer sender.Close()
	defer receiver.Close()

	size := ch.Size()
	first := bytes.Repeat([]byte{0xAA}, size-2)
	if err := sender.SendAll(first); err != nil {
		t.Fatalf("SendAll(first) failed: %v", err)
	}
	drained := make([]byte, size-2)
	if err := receiver.ReceiveAll(drained); err != nil {
		t.Fatalf("ReceiveAll(first) failed: %v", err)
	}

	second := []byte("wraparound!")
	if len(second) > size {
		t.Fatalf("test fixture too large for channel capacity %d", size)
	}
	if err := sender.SendAll(second); err != nil {
		t.Fatalf("SendAll(second) failed: %v", err)
	}
	got := make([]byte, len(second))
	if err := receiver.ReceiveAll(got); err != nil {
		t.Fatalf("ReceiveAll(second) failed: %v", err)
	}
	if !bytes.Equal(got, second) {
		t.Errorf("got %q, want %q", got, second)
	}
}
