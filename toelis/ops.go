package toelis

import (
	"iter"
)

// Count returns the total number of events in x.
func Count[T Number](x Unit[T]) int {
	n := 0
	for _, t := range x {
		n += t.Len()
	}
	return n
}

// CountSeq is Count for a lazy sequence of trials. It consumes seq.
func CountSeq[T Number](seq iter.Seq[Trial[T]]) int {
	n := 0
	for t := range seq {
		n += t.Len()
	}
	return n
}

// Range returns the smallest and largest event in x. If x holds no events
// at all, ok is false and lo and hi are zero; empty trials are otherwise
// skipped.
func Range[T Number](x Unit[T]) (lo, hi T, ok bool) {
	for _, t := range x {
		lo, hi, ok = extend(t, lo, hi, ok)
	}
	return lo, hi, ok
}

// RangeSeq is Range for a lazy sequence of trials. It consumes seq.
func RangeSeq[T Number](seq iter.Seq[Trial[T]]) (lo, hi T, ok bool) {
	for t := range seq {
		lo, hi, ok = extend(t, lo, hi, ok)
	}
	return lo, hi, ok
}

func extend[T Number](t Trial[T], lo, hi T, ok bool) (T, T, bool) {
	for _, v := range t {
		if !ok {
			lo, hi, ok = v, v, true
			continue
		}
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi, ok
}

// Offset returns a lazy copy of x with v subtracted from every event.
func Offset[T Number](x Unit[T], v T) iter.Seq[Trial[T]] {
	return generate(len(x), func(i int) Trial[T] {
		return x[i].Sub(v)
	})
}

// Subrange returns a lazy copy of x keeping only the events e with
// onset <= e <= offset.
func Subrange[T Number](x Unit[T], onset, offset T) iter.Seq[Trial[T]] {
	return generate(len(x), func(i int) Trial[T] {
		return x[i].Between(onset, offset)
	})
}

// Merge returns a lazy unit whose trial i holds the events of trial i of
// every input, in argument order. Inputs with fewer trials contribute
// nothing at the missing indices, so the result is as long as the longest
// input. Merged trials are not sorted.
func Merge[T Number](xs ...Unit[T]) iter.Seq[Trial[T]] {
	n := 0
	for _, x := range xs {
		n = max(n, x.Len())
	}
	return generate(n, func(i int) Trial[T] {
		size := 0
		for _, x := range xs {
			if i < len(x) {
				size += x[i].Len()
			}
		}
		out := make(Trial[T], 0, size)
		for _, x := range xs {
			if i < len(x) {
				out = append(out, x[i]...)
			}
		}
		return out
	})
}

// Rasterize returns a lazy sequence of (trial index, event) pairs, trial 0
// first and events in their original order. The sequence is single-pass.
func Rasterize[T Number](x Unit[T]) iter.Seq2[int, T] {
	i, j := 0, 0
	return func(yield func(int, T) bool) {
		for ; i < len(x); i, j = i+1, 0 {
			for j < len(x[i]) {
				v := x[i][j]
				j++
				if !yield(i, v) {
					return
				}
			}
		}
	}
}
