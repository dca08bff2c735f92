package ring

import "testing"

func TestWrapAroundAliasing(t *testing.T) {
	r, err := New[byte](16)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer r.Close()

	n := r.Len()
	for i := 0; i < n; i++ {
		r.SetAt(i, byte(i))
		if got := r.At(i + n); got != byte(i) {
			t.Errorf("At(%d+%d) = %d, want %d", i, n, got, i)
		}
	}
	for i := 0; i < n; i++ {
		r.SetAt(i+n, byte(255-i))
		if got := r.At(i); got != byte(255-i) {
			t.Errorf("At(%d) = %d, want %d", i, got, 255-i)
		}
	}
}

func TestSliceClampsToOneWrap(t *testing.T) {
	r, err := New[byte](8)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer r.Close()

	n := r.Len()
	for i := 0; i < n; i++ {
		r.SetAt(i, byte(i))
	}

	s := r.Slice(n-2, 2*n)
	if len(s) != n {
		t.Fatalf("len(Slice) = %d, want %d", len(s), n)
	}
	want := []byte{byte(n - 2), byte(n - 1), 0, 1, 2, 3, 4, 5}
	for i, w := range want {
		if s[i] != w {
			t.Errorf("s[%d] = %d, want %d", i, s[i], w)
		}
	}
}

func TestSliceSpanningWrapIsContiguous(t *testing.T) {
	r, err := New[byte](8)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer r.Close()

	n := r.Len()
	for i := 0; i < n; i++ {
		r.SetAt(i, byte(10+i))
	}
	s := r.Slice(n-3, n+3)
	if len(s) != 6 {
		t.Fatalf("len(Slice) = %d, want 6", len(s))
	}
	for i := 0; i < 3; i++ {
		if s[i] != byte(10+n-3+i) {
			t.Errorf("s[%d] = %d, want %d", i, s[i], 10+n-3+i)
		}
	}
	for i := 0; i < 3; i++ {
		if s[3+i] != byte(10+i) {
			t.Errorf("s[%d] = %d, want %d", 3+i, s[3+i], 10+i)
		}
	}
}
