package lines

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ErrNotFinite is returned when an integer field holds NaN or an infinity.
var ErrNotFinite = errors.New("value is not finite")

// TokenError describes a line that could not be converted to a number.
type TokenError struct {
	Line int    // 1-based line number
	Text string // raw line contents
	Err  error  // underlying conversion error
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("line %d: invalid number %q: %v", e.Line, e.Text, e.Err)
}

func (e *TokenError) Unwrap() error {
	return e.Err
}

// Reader reads one number per line from an underlying stream.
// It never closes the stream.
type Reader struct {
	sc   *bufio.Scanner
	line int
	text string
}

// MaxLineLength is the longest line a Reader accepts, in bytes.
const MaxLineLength = 1 << 20

// NewReader creates a line reader over r.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), MaxLineLength)
	return &Reader{sc: sc}
}

// Line returns the number of lines consumed so far, which is also the
// 1-based number of the most recently read line.
func (r *Reader) Line() int {
	return r.line
}

// Text returns the raw contents of the most recently read line.
func (r *Reader) Text() string {
	return r.text
}

// next advances to the next line. It returns io.EOF at the end of input.
func (r *Reader) next() (string, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			if errors.Is(err, bufio.ErrTooLong) {
				return "", &TokenError{Line: r.line + 1, Err: err}
			}
			return "", err
		}
		return "", io.EOF
	}
	r.line++
	r.text = r.sc.Text()
	return r.text, nil
}

// ReadFloat reads the next line as a float64.
func (r *Reader) ReadFloat() (float64, error) {
	text, err := r.next()
	if err != nil {
		return 0, err
	}
	return r.parse(text)
}

func (r *Reader) parse(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		// Out-of-range values parse as ±Inf.
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && numErr.Err == strconv.ErrRange {
			return v, nil
		}
		return 0, &TokenError{Line: r.line, Text: text, Err: err}
	}
	return v, nil
}

// ReadInt reads the next line as a float64 and truncates it to an int.
func (r *Reader) ReadInt() (int, error) {
	v, err := r.ReadFloat()
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &TokenError{Line: r.line, Text: r.text, Err: ErrNotFinite}
	}
	v = math.Trunc(v)
	if v >= math.MaxInt || v < math.MinInt {
		return 0, &TokenError{Line: r.line, Text: r.text, Err: strconv.ErrRange}
	}
	return int(v), nil
}

// ReadFloats reads n consecutive lines as float64 values, appending them to dst.
// Storage grows as values arrive, so a bogus n cannot force a huge allocation.
func (r *Reader) ReadFloats(dst []float64, n int) ([]float64, error) {
	for range n {
		v, err := r.ReadFloat()
		if err != nil {
			return dst, err
		}
		dst = append(dst, v)
	}
	return dst, nil
}
