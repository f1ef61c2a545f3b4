package alloc

import (
	"fmt"
)

// Allocator assigns consecutive line positions to blocks.
// It is not safe for concurrent use.
type Allocator struct {
	// next is the position the next block will start at.
	next int

	// base is the position of the first block.
	base int

	blocks []Block
	stats  Stats
}

// Block is a single allocated run of lines.
type Block struct {
	Start int
	Size  int
	Tag   string // optional, for diagnostics
}

// End returns the position just past the block.
func (b Block) End() int {
	return b.Start + b.Size
}

// Stats summarizes what has been allocated.
type Stats struct {
	Blocks  int // number of blocks allocated
	Lines   int // total lines allocated
	Largest int // largest single block
}

// New creates an Allocator whose first block starts at base.
func New(base int) *Allocator {
	return &Allocator{
		next: base,
		base: base,
	}
}

// Alloc reserves size lines and returns the position they start at.
// A zero-size block is recorded and starts where the next block will.
func (a *Allocator) Alloc(size int) int {
	return a.AllocTagged(size, "")
}

// AllocTagged is like Alloc but labels the block for diagnostics.
func (a *Allocator) AllocTagged(size int, tag string) int {
	if size < 0 {
		panic(fmt.Sprintf("alloc: negative block size %d", size))
	}

	start := a.next
	a.next += size
	a.blocks = append(a.blocks, Block{Start: start, Size: size, Tag: tag})

	a.stats.Blocks++
	a.stats.Lines += size
	if size > a.stats.Largest {
		a.stats.Largest = size
	}
	return start
}

// Next returns the position at which the next block would start.
func (a *Allocator) Next() int {
	return a.next
}

// Base returns the position of the first block.
func (a *Allocator) Base() int {
	return a.base
}

// Stats returns allocation statistics.
func (a *Allocator) Stats() Stats {
	return a.stats
}

// Blocks returns a copy of all blocks allocated so far, in order.
func (a *Allocator) Blocks() []Block {
	result := make([]Block, len(a.blocks))
	copy(result, a.blocks)
	return result
}

// Validate checks that the blocks tile the range [base, next) with no gaps
// or overlaps.
func (a *Allocator) Validate() error {
	pos := a.base
	for i, b := range a.blocks {
		if b.Start != pos {
			return fmt.Errorf("block %d (%q) starts at %d, expected %d", i, b.Tag, b.Start, pos)
		}
		pos = b.End()
	}
	if pos != a.next {
		return fmt.Errorf("blocks end at %d but next position is %d", pos, a.next)
	}
	return nil
}
