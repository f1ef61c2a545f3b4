package toelis

import (
	"errors"
	"fmt"
	"io"

	"github.com/robert-malhotra/go-toelis/internal/alloc"
	"github.com/robert-malhotra/go-toelis/internal/lines"
)

// Read parses r as a toe_lis document and returns one Unit per unit in the
// header, in header order. Every unit has the number of trials declared by
// the header. Lines past the last unit are ignored. r is not closed.
func Read(r io.Reader, opts ...Option) ([]Unit[float64], error) {
	o := applyOptions(opts)
	d := &decoder{lr: lines.NewReader(r), opts: o}

	nUnits, err := d.readCount("unit count")
	if err != nil {
		return nil, err
	}
	nRepeats, err := d.readCount("repeat count")
	if err != nil {
		// A document with no units may end right after its first line.
		if nUnits == 0 && errors.Is(err, ErrUnexpectedEOF) {
			return []Unit[float64]{}, nil
		}
		return nil, err
	}

	pointers := make([]int, 0, min(nUnits, maxPrealloc))
	for u := range nUnits {
		p, err := d.readInt(fmt.Sprintf("pointer %d", u))
		if err != nil {
			return nil, err
		}
		pointers = append(pointers, p)
	}
	o.logger.Debug("read toe_lis header", "units", nUnits, "repeats", nRepeats, "pointers", pointers)

	pos := alloc.New(2 + nUnits + 1)
	out := make([]Unit[float64], 0, len(pointers))
	for u, declared := range pointers {
		if actual := pos.Next(); actual != declared {
			return nil, &CorruptionError{Unit: u, Declared: declared, Actual: actual}
		}

		unit, events, err := d.unit(u, nRepeats)
		if err != nil {
			return nil, err
		}
		start := pos.Alloc(events + nRepeats)
		o.logger.Debug("read toe_lis unit", "unit", u, "start", start, "events", events)
		out = append(out, unit)
	}

	stats := pos.Stats()
	o.logger.Debug("read toe_lis data", "units", stats.Blocks, "first", pos.Base(), "lines", stats.Lines, "largest", stats.Largest)
	return out, nil
}

// maxPrealloc bounds slice capacity taken from header values, which are
// untrusted until the data behind them has been read.
const maxPrealloc = 1 << 12

type decoder struct {
	lr   *lines.Reader
	opts *options
}

// unit reads the trial counts and events of one unit.
func (d *decoder) unit(u, nRepeats int) (Unit[float64], int, error) {
	counts := make([]int, 0, min(nRepeats, maxPrealloc))
	total := 0
	for t := range nRepeats {
		n, err := d.readCount(fmt.Sprintf("unit %d trial %d event count", u, t))
		if err != nil {
			return nil, 0, err
		}
		counts = append(counts, n)
		total += n
	}

	unit := make(Unit[float64], 0, len(counts))
	for t, n := range counts {
		trial, err := d.lr.ReadFloats(make(Trial[float64], 0, min(n, maxPrealloc)), n)
		if err != nil {
			return nil, 0, d.wrap(err, fmt.Sprintf("unit %d trial %d events", u, t))
		}
		if d.opts.converter != nil {
			for i, v := range trial {
				trial[i] = d.opts.fromNative(v)
			}
		}
		unit = append(unit, trial)
	}
	return unit, total, nil
}

func (d *decoder) readInt(field string) (int, error) {
	v, err := d.lr.ReadInt()
	if err != nil {
		return 0, d.wrap(err, field)
	}
	return v, nil
}

// readCount reads an integer field that may not be negative.
func (d *decoder) readCount(field string) (int, error) {
	v, err := d.readInt(field)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, &SyntaxError{Line: d.lr.Line(), Field: field, Text: d.lr.Text(), Err: ErrNegativeCount}
	}
	return v, nil
}

// wrap converts line-level errors into the package's error types.
func (d *decoder) wrap(err error, field string) error {
	if err == io.EOF {
		return fmt.Errorf("%w: reading %s after line %d: %w", ErrUnexpectedEOF, field, d.lr.Line(), io.ErrUnexpectedEOF)
	}
	var tokErr *lines.TokenError
	if errors.As(err, &tokErr) {
		return &SyntaxError{
			Line:  tokErr.Line,
			Field: field,
			Text:  tokErr.Text,
			Err:   fmt.Errorf("%w: %w", ErrMalformedNumber, tokErr.Err),
		}
	}
	return fmt.Errorf("reading %s: %w", field, err)
}
