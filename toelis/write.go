package toelis

import (
	"fmt"
	"io"
	"reflect"

	"github.com/robert-malhotra/go-toelis/internal/alloc"
	"github.com/robert-malhotra/go-toelis/internal/lines"
)

// Write encodes units to w as a toe_lis document. Every unit must have the
// same number of trials; otherwise a *TrialCountError is returned before
// anything is written. Writing no units produces the single line "0".
// w is not closed.
func Write[T Number](w io.Writer, units ...Unit[T]) error {
	return WriteWith(w, nil, units...)
}

// WriteWith is like Write but accepts options.
func WriteWith[T Number](w io.Writer, opts []Option, units ...Unit[T]) error {
	o := applyOptions(opts)

	nTrials := 0
	if len(units) > 0 {
		nTrials = units[0].Len()
	}
	for i, u := range units {
		if u.Len() != nTrials {
			return &TrialCountError{Unit: i, Want: nTrials, Got: u.Len()}
		}
	}

	a := alloc.New(3 + len(units))
	pointers := make([]int, len(units))
	for i, u := range units {
		pointers[i] = a.AllocTagged(u.Len()+Count(u), fmt.Sprintf("unit %d", i))
	}
	if err := a.Validate(); err != nil {
		return fmt.Errorf("laying out units: %w", err)
	}
	o.logger.Debug("write toe_lis header", "units", len(units), "repeats", nTrials, "pointers", pointers)
	for _, b := range a.Blocks() {
		o.logger.Debug("write toe_lis unit", "unit", b.Tag, "start", b.Start, "lines", b.Size)
	}

	lw := lines.NewWriter(w)
	lw.WriteInt(int64(len(units)))
	if len(units) > 0 {
		lw.WriteInt(int64(nTrials))
		for _, p := range pointers {
			lw.WriteInt(int64(p))
		}
	}

	enc := newEventEncoder[T](lw, o.converter)
	for i, u := range units {
		for _, t := range u {
			lw.WriteInt(int64(t.Len()))
		}
		for _, t := range u {
			for _, v := range t {
				enc.write(v)
			}
		}
		if err := lw.Err(); err != nil {
			return fmt.Errorf("writing unit %d: %w", i, err)
		}
	}

	if err := lw.Flush(); err != nil {
		return fmt.Errorf("flushing toe_lis data: %w", err)
	}
	return nil
}

// eventEncoder writes events of type T in a form that reads back exactly.
type eventEncoder[T Number] struct {
	lw      *lines.Writer
	conv    Converter
	integer bool
	bitSize int
}

func newEventEncoder[T Number](lw *lines.Writer, conv Converter) *eventEncoder[T] {
	e := &eventEncoder[T]{lw: lw, conv: conv, bitSize: 64}
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Float32:
		e.bitSize = 32
	case reflect.Float64:
	default:
		e.integer = true
	}
	return e
}

func (e *eventEncoder[T]) write(v T) {
	switch {
	case e.conv != nil:
		e.lw.WriteFloat(e.conv.ToNative(float64(v)), 64)
	case e.integer:
		e.lw.WriteInt(int64(v))
	default:
		e.lw.WriteFloat(float64(v), e.bitSize)
	}
}
