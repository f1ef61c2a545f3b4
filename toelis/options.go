package toelis

import (
	"log/slog"
)

// Converter rescales event times at the format boundary. ToNative is applied
// to every event before it is written and FromNative to every event after it
// is read, so the file always holds values in its native unit.
type Converter interface {
	ToNative(v float64) float64
	FromNative(v float64) float64
}

// Option configures Read and Write.
type Option func(*options)

type options struct {
	logger    *slog.Logger
	converter Converter
}

func defaultOptions() *options {
	return &options{
		logger: slog.New(slog.DiscardHandler),
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets a logger for debug tracing of header and unit positions.
// A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithConverter rescales events between the caller's unit and the file's
// native unit. When writing with a converter, events are written as float64.
func WithConverter(c Converter) Option {
	return func(o *options) {
		o.converter = c
	}
}

func (o *options) fromNative(v float64) float64 {
	if o.converter == nil {
		return v
	}
	return o.converter.FromNative(v)
}
