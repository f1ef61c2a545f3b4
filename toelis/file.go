package toelis

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"
)

// Compression is the container a toe_lis file is wrapped in.
type Compression int

const (
	// CompressionNone is a plain text file.
	CompressionNone Compression = iota
	// CompressionGzip is a gzip stream (".gz").
	CompressionGzip
	// CompressionXZ is an xz stream (".xz").
	CompressionXZ
)

func (c Compression) String() string {
	switch c {
	case CompressionGzip:
		return "gzip"
	case CompressionXZ:
		return "xz"
	default:
		return "none"
	}
}

// CompressionFor picks the compression from the file name suffix.
func CompressionFor(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return CompressionGzip
	case ".xz":
		return CompressionXZ
	default:
		return CompressionNone
	}
}

// ReadFile reads the toe_lis document at path, decompressing ".gz" and ".xz"
// files on the fly.
func ReadFile(path string, opts ...Option) ([]Unit[float64], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	switch CompressionFor(path) {
	case CompressionGzip:
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		defer zr.Close()
		r = zr
	case CompressionXZ:
		xr, err := xz.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening xz stream: %w", err)
		}
		r = xr
	}

	units, err := Read(r, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return units, nil
}

// WriteFile writes units to path as a toe_lis document, compressing when the
// name ends in ".gz" or ".xz". On failure the partial file is removed.
func WriteFile(path string, units []Unit[float64], opts ...Option) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing file: %w", cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	var w io.Writer = f
	var zw io.Closer
	switch CompressionFor(path) {
	case CompressionGzip:
		gw := gzip.NewWriter(f)
		w, zw = gw, gw
	case CompressionXZ:
		xw, err := xz.NewWriter(f)
		if err != nil {
			return fmt.Errorf("opening xz stream: %w", err)
		}
		w, zw = xw, xw
	}

	if err := WriteWith(w, opts, units...); err != nil {
		if zw != nil {
			err = errors.Join(err, zw.Close())
		}
		return fmt.Errorf("%s: %w", path, err)
	}
	if zw != nil {
		if err := zw.Close(); err != nil {
			return fmt.Errorf("finishing compressed stream: %w", err)
		}
	}
	return nil
}
