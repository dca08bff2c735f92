// Package ring implements the fixed-capacity, wrap-around addressable
// buffer that the rest of this module builds on: the byte-stream channel
// and the scrollback buffer both need "a contiguous span for any range,
// even one that straddles the logical end" rather than a plain slice with
// manual split-copy logic.
package ring

import "errors"

// Construction/allocation failures. These mirror the reference
// implementation's CreateError/AlignmentError variants as sentinel errors
// rather than a closed Rust-style enum, since Go has no sum types.
var (
	ErrAlignment        = errors.New("ring: aligned size is not a multiple of the element size")
	ErrVirtualAlloc     = errors.New("ring: virtual memory reservation failed")
	ErrMapping          = errors.New("ring: failed to map a view of the backing memory")
	ErrNonAdjacentViews = errors.New("ring: double-mapped views are not adjacent in virtual memory")
)

// Ring is a fixed-capacity sequence of Len() elements of type T addressable
// over [0, 2*Len()) such that index i and index i+Len() refer to the same
// element. Any range [a, b) is returned as a single contiguous slice of
// length min(b-a, Len()), regardless of whether it straddles the wrap
// point.
//
// Implementations are not safe for concurrent use without an external
// lock; bytechan.Channel supplies that lock for the byte-stream use case.
type Ring[T any] interface {
	Len() int
	At(i int) T
	SetAt(i int, v T)
	// Slice returns a contiguous view over [a, b), clamped to length
	// min(b-a, Len()). The returned slice aliases the ring's storage;
	// mutating it mutates the ring.
	Slice(a, b int) []T
	Close() error
}

// alignedElementCount rounds totalElements up so that the resulting byte
// size is a multiple of granularity, per the construction rule in C1: `size_bytes
// = ceil(N*sizeof(T) / granularity) * granularity`.
func alignedElementCount(totalElements, elemSize, granularity int) (sizeBytes, aligned int) {
	if totalElements <= 0 {
		totalElements = 1
	}
	requested := elemSize * totalElements
	multiple := requested / granularity
	if requested%granularity != 0 || multiple == 0 {
		multiple++
	}
	sizeBytes = multiple * granularity
	aligned = sizeBytes / elemSize
	return sizeBytes, aligned
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
