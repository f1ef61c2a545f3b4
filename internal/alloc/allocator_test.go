package alloc

import (
	"strings"
	"testing"
)

func TestAllocatorBasic(t *testing.T) {
	a := New(4)

	p0 := a.Alloc(96)
	if p0 != 4 {
		t.Errorf("first block: got %d, want 4", p0)
	}

	p1 := a.Alloc(108)
	if p1 != 100 {
		t.Errorf("second block: got %d, want 100", p1)
	}

	if a.Next() != 208 {
		t.Errorf("next: got %d, want 208", a.Next())
	}
	if a.Base() != 4 {
		t.Errorf("base: got %d, want 4", a.Base())
	}
}

func TestAllocatorZeroSize(t *testing.T) {
	a := New(3)

	p := a.Alloc(0)
	if p != 3 {
		t.Errorf("zero block: got %d, want 3", p)
	}
	if a.Next() != 3 {
		t.Errorf("next after zero block: got %d, want 3", a.Next())
	}

	// Zero-size blocks still count, since an empty unit still has a pointer.
	if got := len(a.Blocks()); got != 1 {
		t.Errorf("expected 1 block, got %d", got)
	}
}

func TestAllocatorStats(t *testing.T) {
	a := New(0)

	a.Alloc(10)
	a.Alloc(25)
	a.Alloc(5)

	stats := a.Stats()
	if stats.Blocks != 3 {
		t.Errorf("Blocks: got %d, want 3", stats.Blocks)
	}
	if stats.Lines != 40 {
		t.Errorf("Lines: got %d, want 40", stats.Lines)
	}
	if stats.Largest != 25 {
		t.Errorf("Largest: got %d, want 25", stats.Largest)
	}
}

func TestAllocatorTagged(t *testing.T) {
	a := New(5)

	a.AllocTagged(12, "unit 0")
	a.AllocTagged(7, "unit 1")

	blocks := a.Blocks()
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[1].Tag != "unit 1" || blocks[1].Start != 17 || blocks[1].End() != 24 {
		t.Errorf("unexpected block: %+v", blocks[1])
	}

	// The returned slice is a copy.
	blocks[0].Start = 99
	if a.Blocks()[0].Start != 5 {
		t.Error("Blocks returned internal storage")
	}
}

func TestAllocatorValidate(t *testing.T) {
	a := New(4)
	a.Alloc(10)
	a.Alloc(0)
	a.Alloc(3)

	if err := a.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}

	// Corrupt the bookkeeping to produce a gap.
	a.blocks[1].Start = 20
	err := a.Validate()
	if err == nil {
		t.Fatal("expected validation error for gap")
	}
	if !strings.Contains(err.Error(), "block 1") {
		t.Errorf("error should name the block: %v", err)
	}
}

func TestAllocatorNegativeSizePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for negative size")
		}
	}()
	New(0).Alloc(-1)
}
