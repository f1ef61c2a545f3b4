package lines

import (
	"bufio"
	"io"
	"strconv"
)

// Writer writes one number per line to an underlying stream.
// The first write error is retained and returned by Flush and Err;
// later writes become no-ops. It never closes the stream.
type Writer struct {
	bw   *bufio.Writer
	buf  []byte
	line int
	err  error
}

// NewWriter creates a buffered line writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		bw:  bufio.NewWriter(w),
		buf: make([]byte, 0, 32),
	}
}

// Line returns the number of lines written so far.
func (w *Writer) Line() int {
	return w.line
}

// Err returns the first error encountered, if any.
func (w *Writer) Err() error {
	return w.err
}

// WriteInt writes v as a decimal integer line.
func (w *Writer) WriteInt(v int64) {
	w.writeLine(strconv.AppendInt(w.buf[:0], v, 10))
}

// WriteFloat writes v in the shortest form that parses back to the same
// value at the given bit size (32 or 64).
func (w *Writer) WriteFloat(v float64, bitSize int) {
	w.writeLine(strconv.AppendFloat(w.buf[:0], v, 'g', -1, bitSize))
}

func (w *Writer) writeLine(b []byte) {
	w.buf = append(b, '\n')
	if w.err != nil {
		return
	}
	if _, err := w.bw.Write(w.buf); err != nil {
		w.err = err
		return
	}
	w.line++
}

// Flush writes any buffered data to the underlying stream.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if err := w.bw.Flush(); err != nil {
		w.err = err
	}
	return w.err
}
