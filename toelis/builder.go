package toelis

import (
	"fmt"
)

// Builder accumulates trials and produces an independent Unit.
// The zero value is ready to use.
type Builder[T Number] struct {
	trials []Trial[T]
}

// NewBuilder returns a Builder with room for n trials.
func NewBuilder[T Number](n int) *Builder[T] {
	return &Builder[T]{trials: make([]Trial[T], 0, n)}
}

// Add appends a trial holding a copy of events.
func (b *Builder[T]) Add(events ...T) *Builder[T] {
	b.trials = append(b.trials, append(make(Trial[T], 0, len(events)), events...))
	return b
}

// Append adds events to the end of trial i, creating empty trials up to i
// if the builder is shorter. It panics if i is negative.
func (b *Builder[T]) Append(i int, events ...T) *Builder[T] {
	if i < 0 {
		panic(fmt.Sprintf("toelis: negative trial index %d", i))
	}
	b.grow(i + 1)
	b.trials[i] = append(b.trials[i], events...)
	return b
}

// Merge appends the events of each trial of x to the corresponding trial of
// the builder, with the same padding rule as the Merge function.
func (b *Builder[T]) Merge(x Unit[T]) *Builder[T] {
	b.grow(x.Len())
	for i, t := range x {
		b.trials[i] = append(b.trials[i], t...)
	}
	return b
}

func (b *Builder[T]) grow(n int) {
	for len(b.trials) < n {
		b.trials = append(b.trials, Trial[T]{})
	}
}

// Len returns the number of trials accumulated so far.
func (b *Builder[T]) Len() int {
	return len(b.trials)
}

// Unit returns a copy of the accumulated trials. Later changes to the
// builder do not affect the returned unit.
func (b *Builder[T]) Unit() Unit[T] {
	out := make(Unit[T], len(b.trials))
	for i, t := range b.trials {
		out[i] = append(make(Trial[T], 0, len(t)), t...)
	}
	return out
}

// Reset discards all trials.
func (b *Builder[T]) Reset() {
	b.trials = b.trials[:0]
}
