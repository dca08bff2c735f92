//go:build windows

package ring

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// ring_windows.go double-maps a single pagefile-backed file mapping onto two
// adjacent placeholder reservations via VirtualAlloc2 + split +
// MapViewOfFile3, mirroring CreateFileMapping/MapViewOfFile3 in
// original_source/src/circular_buffer/src/circular_buffer.rs. VirtualAlloc2
// and MapViewOfFile3 postdate golang.org/x/sys/windows's generated
// bindings, so they are resolved at runtime the same way x/sys/windows
// itself wraps newer kernel32 exports.
var (
	modkernel32        = windows.NewLazySystemDLL("kernel32.dll")
	procVirtualAlloc2  = modkernel32.NewProc("VirtualAlloc2")
	procMapViewOfFile3 = modkernel32.NewProc("MapViewOfFile3")
)

const (
	memReservePlaceholder = 0x00040000
	memReplacePlaceholder = 0x00004000
	memPreservePlaceholder = 0x00000002
	memReserve            = 0x00002000
	memRelease            = 0x00008000
	pageNoAccess          = 0x01
	pageReadWrite         = 0x04
)

type mmapRing[T any] struct {
	data          []T
	totalElements int
	elemSize      int
	fileMapping   windows.Handle
	closed        bool
}

func allocationGranularity() int {
	var info windows.SystemInfo
	windows.GetSystemInfo(&info)
	return int(info.AllocationGranularity)
}

func virtualAlloc2(size uintptr) (uintptr, error) {
	addr, _, err := procVirtualAlloc2.Call(
		0, 0, size,
		uintptr(memReserve|memReservePlaceholder),
		uintptr(pageNoAccess),
		0, 0,
	)
	if addr == 0 {
		return 0, fmt.Errorf("VirtualAlloc2: %w", err)
	}
	return addr, nil
}

func mapViewOfFile3(fileMapping windows.Handle, baseAddr uintptr, size uintptr) (uintptr, error) {
	addr, _, err := procMapViewOfFile3.Call(
		uintptr(fileMapping), 0,
		baseAddr, 0, size,
		uintptr(memReplacePlaceholder),
		uintptr(pageReadWrite),
		0, 0,
	)
	if addr == 0 {
		return 0, fmt.Errorf("MapViewOfFile3: %w", err)
	}
	return addr, nil
}

// New reserves a double-mapped region of at least totalElements elements of
// T, following the same placeholder-split-then-map sequence as the
// reference's Windows backend.
func New[T any](totalElements int) (Ring[T], error) {
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	granularity := allocationGranularity()
	sizeBytes, aligned := alignedElementCount(totalElements, elemSize, granularity)
	if sizeBytes%elemSize != 0 {
		return nil, fmt.Errorf("%w: %d element(s) of size %d do not evenly divide %d bytes", ErrAlignment, aligned, elemSize, sizeBytes)
	}

	base, err := virtualAlloc2(uintptr(sizeBytes) * 2)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVirtualAlloc, err)
	}
	// split the reservation in two, preserving the placeholder so the
	// upper half can be independently replaced by its own mapped view
	if err := windows.VirtualFree(base, uintptr(sizeBytes), memRelease|memPreservePlaceholder); err != nil {
		return nil, fmt.Errorf("%w: split reservation: %v", ErrVirtualAlloc, err)
	}
	upper := base + uintptr(sizeBytes)

	fileMapping, err := windows.CreateFileMapping(windows.InvalidHandle, nil, pageReadWrite, 0, uint32(sizeBytes), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateFileMapping: %v", ErrMapping, err)
	}

	view0, err := mapViewOfFile3(fileMapping, base, uintptr(sizeBytes))
	if err != nil {
		windows.CloseHandle(fileMapping)
		return nil, fmt.Errorf("%w: %v", ErrMapping, err)
	}
	view1, err := mapViewOfFile3(fileMapping, upper, uintptr(sizeBytes))
	if err != nil {
		windows.UnmapViewOfFile(view0)
		windows.CloseHandle(fileMapping)
		return nil, fmt.Errorf("%w: %v", ErrMapping, err)
	}
	if view0+uintptr(sizeBytes) != view1 {
		windows.UnmapViewOfFile(view0)
		windows.UnmapViewOfFile(view1)
		windows.CloseHandle(fileMapping)
		return nil, ErrNonAdjacentViews
	}

	data := unsafe.Slice((*T)(unsafe.Pointer(view0)), aligned*2)
	r := &mmapRing[T]{data: data, totalElements: aligned, elemSize: elemSize, fileMapping: fileMapping}
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
	view0 := windows.Pointer(unsafe.Pointer(&r.data[0]))
	upperPtr := unsafe.Add(unsafe.Pointer(&r.data[0]), r.totalElements*r.elemSize)
	view1 := windows.Pointer(upperPtr)
	err0 := windows.UnmapViewOfFile(uintptr(view0))
	err1 := windows.UnmapViewOfFile(uintptr(view1))
	if err := windows.CloseHandle(r.fileMapping); err != nil {
		return err
	}
	if err0 != nil {
		return err0
	}
	return err1
}
