package batch

import (
	"errors"
	"testing"
)

func TestAppendPreservesOrder(t *testing.T) {
	b := NewBatch[int](WithName("order"))
	if err := b.Append(1, 2, 3); err != nil {
		t.Fatal(err)
	}
	if err := b.Append(4); err != nil {
		t.Fatal(err)
	}
	got := b.Items()
	want := []int{1, 2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("Len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Items()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestResetRetainsCapacity(t *testing.T) {
	b := NewBatch[int](WithInitialCapacity(4))
	for i := range 100 {
		if err := b.Append(i); err != nil {
			t.Fatal(err)
		}
	}
	before := cap(b.Items())
	b.Reset()
	if b.Len() != 0 {
		t.Fatalf("Len after reset = %d", b.Len())
	}
	if err := b.Append(7); err != nil {
		t.Fatal(err)
	}
	if got := cap(b.Items()); got != before {
		t.Errorf("capacity changed across reset: %d -> %d", before, got)
	}
	if b.Items()[0] != 7 {
		t.Errorf("stale data after reset: %v", b.Items())
	}
}

func TestCapacityLimitDropsExcess(t *testing.T) {
	b := NewBatch[int](WithName("capped"), WithCapacityLimit(3))
	err := b.Append(1, 2, 3, 4, 5)
	var capErr *CapacityError
	if !errors.As(err, &capErr) {
		t.Fatalf("expected *CapacityError, got %v", err)
	}
	if capErr.Dropped != 2 {
		t.Errorf("Dropped = %d, want 2", capErr.Dropped)
	}
	got := b.Items()
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Errorf("kept items wrong: %v", got)
	}

	// Batch remains usable after the frame resets.
	b.Reset()
	if err := b.Append(9); err != nil {
		t.Fatalf("append after reset: %v", err)
	}
}

func TestCapacityLimitAtBoundary(t *testing.T) {
	b := NewBatch[int](WithCapacityLimit(2))
	if err := b.Append(1, 2); err != nil {
		t.Fatalf("exact fit must not error: %v", err)
	}
	if err := b.Append(3); err == nil {
		t.Fatal("expected capacity error for overflow")
	}
	if b.Len() != 2 {
		t.Errorf("Len = %d, want 2", b.Len())
	}
}
