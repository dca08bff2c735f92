//go:build linux

package ring

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// mmapRing double-maps a single anonymous shared mapping so that the
// second half of the virtual address range aliases the same physical
// pages as the first half, via mmap+mremap. Grounded on
// original_source/src/circular_buffer/src/unix.rs.
type mmapRing[T any] struct {
	data          []T // length 2*totalElements, aliasing the double-mapped region
	totalElements int
	elemSize      int
	closed        bool
}

func allocationGranularity() int {
	return unix.Getpagesize()
}

// New reserves a double-mapped region of at least totalElements elements
// of T. The effective length (Len()) may be larger than requested once
// rounded up to the platform's allocation granularity.
func New[T any](totalElements int) (Ring[T], error) {
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	granularity := allocationGranularity()
	sizeBytes, aligned := alignedElementCount(totalElements, elemSize, granularity)
	if sizeBytes%elemSize != 0 {
		return nil, fmt.Errorf("%w: %d element(s) of size %d do not evenly divide %d bytes", ErrAlignment, aligned, elemSize, sizeBytes)
	}

	region, err := unix.Mmap(-1, 0, sizeBytes*2, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("%w: mmap: %v", ErrVirtualAlloc, err)
	}

	baseAddr := uintptr(unsafe.Pointer(&region[0]))
	upperAddr := baseAddr + uintptr(sizeBytes)
	// old_size=0 with MREMAP_MAYMOVE creates a fresh mapping of the same
	// physical pages as old_address; MREMAP_FIXED pins it at new_address,
	// aliasing the lower half's pages onto the upper half.
	remapped, err := unix.Mremap(unsafe.Slice((*byte)(unsafe.Pointer(baseAddr)), sizeBytes), sizeBytes, unix.MREMAP_MAYMOVE|unix.MREMAP_FIXED, unsafe.Pointer(upperAddr))
	if err != nil {
		_ = unix.Munmap(region)
		return nil, fmt.Errorf("%w: mremap: %v", ErrMapping, err)
	}
	if uintptr(unsafe.Pointer(&remapped[0])) != upperAddr {
		_ = unix.Munmap(region)
		return nil, ErrNonAdjacentViews
	}

	data := unsafe.Slice((*T)(unsafe.Pointer(baseAddr)), aligned*2)
	r := &mmapRing[T]{data: data, totalElements: aligned, elemSize: elemSize}
	var empty T
	for i := range r.data {
		r.data[i] = empty
	}
	return r, nil
}

func (r *mmapRing[T]) Len() int { return r.totalElements }

func (r *mmapRing[T]) At(i int) T {
	if i < 0 || i >= 2*r.totalElements {
		panic("ring: index out of range")
	}
	return r.data[i]
}

func (r *mmapRing[T]) SetAt(i int, v T) {
	if i < 0 || i >= 2*r.totalElements {
		panic("ring: index out of range")
	}
	r.data[i] = v
}

func (r *mmapRing[T]) Slice(a, b int) []T {
	if a < 0 || b < a || b > 2*r.totalElements {
		panic("ring: slice range out of bounds")
	}
	end := a + min(b-a, r.totalElements)
	return r.data[a:end]
}

func (r *mmapRing[T]) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	totalBytes := r.totalElements * r.elemSize * 2
	raw := unsafe.Slice((*byte)(unsafe.Pointer(&r.data[0])), totalBytes)
	return unix.Munmap(raw)
}
