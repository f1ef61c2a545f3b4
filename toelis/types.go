package toelis

import (
	"iter"
)

// Number is the set of element types a trial can hold.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// Trial is an ordered sequence of event times from one presentation.
// Events need not be sorted.
type Trial[T Number] []T

// Len returns the number of events in the trial.
func (t Trial[T]) Len() int {
	return len(t)
}

// Sub returns a new trial with v subtracted from every event.
func (t Trial[T]) Sub(v T) Trial[T] {
	out := make(Trial[T], len(t))
	for i, e := range t {
		out[i] = e - v
	}
	return out
}

// Between returns a new trial holding the events e with lo <= e <= hi,
// in their original order.
func (t Trial[T]) Between(lo, hi T) Trial[T] {
	out := make(Trial[T], 0, len(t))
	for _, e := range t {
		if e >= lo && e <= hi {
			out = append(out, e)
		}
	}
	return out
}

// Clone returns a copy of the trial.
func (t Trial[T]) Clone() Trial[T] {
	if t == nil {
		return nil
	}
	out := make(Trial[T], len(t))
	copy(out, t)
	return out
}

// Unit is the full set of trials recorded for one channel or condition.
// The index of a trial is its row in a raster.
type Unit[T Number] []Trial[T]

// Len returns the number of trials in the unit.
func (u Unit[T]) Len() int {
	return len(u)
}

// Clone returns a deep copy of the unit.
func (u Unit[T]) Clone() Unit[T] {
	if u == nil {
		return nil
	}
	out := make(Unit[T], len(u))
	for i, t := range u {
		out[i] = t.Clone()
	}
	return out
}

// Collect drains a lazy sequence of trials into a Unit.
func Collect[T Number](seq iter.Seq[Trial[T]]) Unit[T] {
	out := Unit[T]{}
	for t := range seq {
		out = append(out, t)
	}
	return out
}

// generate returns a single-pass sequence of the values f(0) .. f(n-1).
// Like a generator, a value handed out is never produced again: ranging a
// second time resumes where the previous loop stopped and yields nothing
// once the sequence is exhausted.
func generate[V any](n int, f func(i int) V) iter.Seq[V] {
	i := 0
	return func(yield func(V) bool) {
		for i < n {
			v := f(i)
			i++
			if !yield(v) {
				return
			}
		}
	}
}
