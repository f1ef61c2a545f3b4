// Package timescale converts event times between physical time units.
//
// toe_lis files hold times in milliseconds. A [Scale] names the unit a
// caller works in, and [From] turns it into a toelis.Converter so values are
// rescaled on their way into and out of the file:
//
//	conv, err := timescale.From(timescale.Seconds)
//	if err != nil {
//		return err
//	}
//	units, err := toelis.ReadFile(path, toelis.WithConverter(conv))
package timescale

import (
	"fmt"
	"strings"

	"github.com/robert-malhotra/go-toelis/toelis"
)

// Scale is a unit of time.
type Scale string

// Scale constants
const (
	Milliseconds Scale = "ms"
	Seconds      Scale = "s"
	Microseconds Scale = "us"
)

// Native is the scale toe_lis files are written in.
const Native = Milliseconds

// ValidScales contains all valid scale values
var ValidScales = []Scale{Milliseconds, Seconds, Microseconds}

// millis is the length of one tick of each scale in milliseconds.
var millis = map[Scale]float64{
	Milliseconds: 1,
	Seconds:      1000,
	Microseconds: 0.001,
}

var aliases = map[string]Scale{
	"ms":           Milliseconds,
	"msec":         Milliseconds,
	"millisecond":  Milliseconds,
	"milliseconds": Milliseconds,
	"s":            Seconds,
	"sec":          Seconds,
	"second":       Seconds,
	"seconds":      Seconds,
	"us":           Microseconds,
	"µs":           Microseconds,
	"usec":         Microseconds,
	"microsecond":  Microseconds,
	"microseconds": Microseconds,
}

// Valid reports whether s is a known scale.
func (s Scale) Valid() bool {
	_, ok := millis[s]
	return ok
}

// ValidString returns a comma-separated list of valid scales for error messages
func ValidString() string {
	names := make([]string, len(ValidScales))
	for i, s := range ValidScales {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// Parse returns the scale named by name. Common spellings such as "sec"
// and "msec" are accepted.
func Parse(name string) (Scale, error) {
	if s, ok := aliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return s, nil
	}
	return "", fmt.Errorf("unknown time scale %q (valid: %s)", name, ValidString())
}

// Factor returns the number to multiply a value in s by to express it in to.
// Unknown scales are treated as milliseconds, so names from user input
// should go through Parse first.
func (s Scale) Factor(to Scale) float64 {
	return tick(s) / tick(to)
}

func tick(s Scale) float64 {
	if m, ok := millis[s]; ok {
		return m
	}
	return 1
}

// ConvertValue converts a single value from one scale to another.
func ConvertValue(v float64, from, to Scale) float64 {
	if from == to {
		return v
	}
	return v * from.Factor(to)
}

// Convert returns a copy of x with every event converted from one scale to
// another.
func Convert(x toelis.Unit[float64], from, to Scale) toelis.Unit[float64] {
	out := make(toelis.Unit[float64], len(x))
	for i, t := range x {
		out[i] = make(toelis.Trial[float64], len(t))
		for j, v := range t {
			out[i][j] = ConvertValue(v, from, to)
		}
	}
	return out
}

// From returns a converter between s and the native file scale. It fails
// for a scale that is not one of ValidScales.
func From(s Scale) (toelis.Converter, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("unknown time scale %q (valid: %s)", s, ValidString())
	}
	return converter{scale: s}, nil
}

type converter struct {
	scale Scale
}

func (c converter) ToNative(v float64) float64 {
	return ConvertValue(v, c.scale, Native)
}

func (c converter) FromNative(v float64) float64 {
	return ConvertValue(v, Native, c.scale)
}
