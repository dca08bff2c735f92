//go:build !linux && !windows

package ring

import (
	"fmt"
	"unsafe"
)

// copybufRing is the non-mmap fallback named in SPEC_FULL.md's double-mapped
// buffer design note: platforms that cannot offer virtual-memory aliasing
// (this module treats everything except linux and windows that way, since
// the reference's mremap trick is Linux-specific and its Windows trick needs
// MapViewOfFile3) get a plain double-length slice with a split copy at the
// wrap boundary instead of a single memcpy. Callers see the same Ring[T]
// contract either way.
type copybufRing[T any] struct {
	data          []T // length 2*totalElements, kept in sync by hand
	totalElements int
}

func allocationGranularity() int {
	return 4096
}

func New[T any](totalElements int) (Ring[T], error) {
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	granularity := allocationGranularity()
	sizeBytes, aligned := alignedElementCount(totalElements, elemSize, granularity)
	if sizeBytes%elemSize != 0 {
		return nil, fmt.Errorf("%w: %d element(s) of size %d do not evenly divide %d bytes", ErrAlignment, aligned, elemSize, sizeBytes)
	}
	return &copybufRing[T]{
		data:          make([]T, aligned*2),
		totalElements: aligned,
	}, nil
}

func (r *copybufRing[T]) Len() int { return r.totalElements }

func (r *copybufRing[T]) At(i int) T {
	if i < 0 || i >= 2*r.totalElements {
		panic("ring: index out of range")
	}
	return r.data[i]
}

// SetAt writes through both aliases so that reads via either half observe
// the same value, emulating the double mapping with an explicit mirror
// write instead of the OS doing it for free.
func (r *copybufRing[T]) SetAt(i int, v T) {
	if i < 0 || i >= 2*r.totalElements {
		panic("ring: index out of range")
	}
	r.data[i] = v
	mirror := i + r.totalElements
	if mirror >= 2*r.totalElements {
		mirror -= 2 * r.totalElements
	}
	r.data[mirror] = v
}

func (r *copybufRing[T]) Slice(a, b int) []T {
	if a < 0 || b < a || b > 2*r.totalElements {
		panic("ring: slice range out of bounds")
	}
	end := a + min(b-a, r.totalElements)
	return r.data[a:end]
}

func (r *copybufRing[T]) Close() error {
	return nil
}
