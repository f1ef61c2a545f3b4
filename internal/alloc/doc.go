// Package alloc hands out line positions for unit blocks in a toe_lis document.
//
// A toe_lis header carries one pointer per unit: the virtual line index at
// which that unit's block of trial counts and event values begins. Blocks are
// laid out back to back, so pointers are a running total starting after the
// header. The writer uses an [Allocator] to compute the pointers it emits and
// the reader uses one to compute the positions it expects, which keeps both
// sides of the format on the same arithmetic.
//
// # Usage
//
//	a := alloc.New(3 + nUnits)      // first block starts after the header
//	p0 := a.Alloc(nTrials + nEvents0) // pointer for unit 0
//	p1 := a.Alloc(nTrials + nEvents1) // pointer for unit 1
//	next := a.Next()                  // where a further unit would start
//
// Each block may carry a tag for diagnostics; [Allocator.Blocks] and
// [Allocator.Validate] report on everything allocated so far.
package alloc
