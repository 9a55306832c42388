package cache

import (
	"errors"
	"testing"
)

func TestGetOrCreate(t *testing.T) {
	c := New[string, int](nil)

	calls := 0
	create := func() (int, error) {
		calls++
		return 42, nil
	}

	v, err := c.GetOrCreate("a", create)
	if err != nil || v != 42 {
		t.Fatalf("GetOrCreate() = %d, %v; want 42, nil", v, err)
	}
	v, err = c.GetOrCreate("a", create)
	if err != nil || v != 42 {
		t.Fatalf("second GetOrCreate() = %d, %v; want 42, nil", v, err)
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestGetOrCreateError(t *testing.T) {
	c := New[string, int](nil)
	boom := errors.New("boom")

	_, err := c.GetOrCreate("a", func() (int, error) { return 0, boom })
	if !errors.Is(err, boom) {
		t.Fatalf("GetOrCreate() error = %v, want boom", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after failed create, want 0", c.Len())
	}
}

func TestNoEviction(t *testing.T) {
	var released []int
	c := New[int, int](func(v int) { released = append(released, v) })

	for i := range 64 {
		_, _ = c.GetOrCreate(i, func() (int, error) { return i, nil })
	}
	if c.Len() != 64 {
		t.Errorf("Len() = %d, want 64", c.Len())
	}
	if len(released) != 0 {
		t.Errorf("released %d values before Clear", len(released))
	}
}

func TestReleaseOnClear(t *testing.T) {
	var released []int
	c := New[string, int](func(v int) { released = append(released, v) })

	for i, k := range []string{"a", "b", "c"} {
		_, _ = c.GetOrCreate(k, func() (int, error) { return i, nil })
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d", c.Len())
	}
	if len(released) != 3 {
		t.Errorf("released = %v, want 3 values", released)
	}

	// The cache is usable again after Clear.
	if v, err := c.GetOrCreate("a", func() (int, error) { return 7, nil }); err != nil || v != 7 {
		t.Errorf("GetOrCreate after Clear = %d, %v", v, err)
	}
}
