package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-toelis/toelis"
)

const (
	toe1 = "../../toelis/testdata/toe1.toe_lis"
	toe2 = "../../toelis/testdata/toe2.toe_lis"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout bytes.Buffer
	err := run(args, &stdout, io.Discard)
	return stdout.String(), err
}

func readUnits(t *testing.T, path string) []toelis.Unit[float64] {
	t.Helper()
	units, err := toelis.ReadFile(path)
	require.NoError(t, err)
	return units
}

func TestInfo(t *testing.T) {
	out, err := runCLI(t, "info", toe1, toe2)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"FILE", "UNIT", "TRIALS", "EVENTS", "RANGE"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{toe1, "0", "10", "86", "-1813.94999695", "12782.9501953"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{toe2, "0", "10", "98", "-977.150024414", "11242.2001953"}, strings.Fields(lines[2]))
}

func TestInfoEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.toe_lis")
	require.NoError(t, os.WriteFile(path, []byte("0\n"), 0o644))

	out, err := runCLI(t, "info", path)
	require.NoError(t, err)
	assert.Contains(t, out, "empty")
}

func TestInfoMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.toe_lis")
	_, err := runCLI(t, "info", missing)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.ErrorContains(t, err, missing)
}

func TestCatCompressed(t *testing.T) {
	for _, ext := range []string{".gz", ".xz"} {
		t.Run(ext, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "copy.toe_lis"+ext)
			_, err := runCLI(t, "cat", toe1, "-o", out)
			require.NoError(t, err)
			assert.Equal(t, readUnits(t, toe1), readUnits(t, out))
		})
	}
}

func TestCatRescale(t *testing.T) {
	out := filepath.Join(t.TempDir(), "seconds.toe_lis")
	_, err := runCLI(t, "cat", toe1, "-o", out, "--to", "s")
	require.NoError(t, err)

	units := readUnits(t, out)
	require.Len(t, units, 1)
	lo, hi, ok := toelis.Range(units[0])
	require.True(t, ok)
	assert.InDelta(t, -1.81394999695, lo, 1e-9)
	assert.InDelta(t, 12.7829501953, hi, 1e-9)
}

func TestCatBadScale(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.toe_lis")
	_, err := runCLI(t, "cat", toe1, "-o", out, "--to", "fortnights")
	assert.ErrorContains(t, err, "unknown time scale")
}

func TestMerge(t *testing.T) {
	out := filepath.Join(t.TempDir(), "merged.toe_lis")
	_, err := runCLI(t, "merge", toe1, toe2, "-o", out)
	require.NoError(t, err)

	units := readUnits(t, out)
	require.Len(t, units, 1)
	assert.Equal(t, 10, units[0].Len())
	assert.Equal(t, 86+98, toelis.Count(units[0]))

	lo, hi, ok := toelis.Range(units[0])
	require.True(t, ok)
	assert.Equal(t, -1813.94999695, lo)
	assert.Equal(t, 12782.9501953, hi)
}

func TestMergePadsUnits(t *testing.T) {
	dir := t.TempDir()
	two := filepath.Join(dir, "two.toe_lis")
	units := []toelis.Unit[float64]{
		{{1}, {2}, {3}},
		{{4}, {}, {5}},
	}
	require.NoError(t, toelis.WriteFile(two, units))

	out := filepath.Join(dir, "merged.toe_lis")
	_, err := runCLI(t, "merge", two, toe1, "-o", out)
	require.NoError(t, err)

	merged := readUnits(t, out)
	require.Len(t, merged, 2)
	assert.Equal(t, 10, merged[0].Len())
	assert.Equal(t, 10, merged[1].Len())
	assert.Equal(t, 3+86, toelis.Count(merged[0]))
	assert.Equal(t, toelis.Unit[float64]{{4}, {}, {5}, {}, {}, {}, {}, {}, {}, {}}, merged[1])
}

func TestShift(t *testing.T) {
	out := filepath.Join(t.TempDir(), "shifted.toe_lis")
	_, err := runCLI(t, "shift", toe1, "--by=1000", "-o", out)
	require.NoError(t, err)

	units := readUnits(t, out)
	lo, hi, ok := toelis.Range(units[0])
	require.True(t, ok)
	assert.InDelta(t, -2813.94999695, lo, 1e-9)
	assert.InDelta(t, 11782.9501953, hi, 1e-9)
	assert.Equal(t, 86, toelis.Count(units[0]))
}

func TestShiftScaleFromConfig(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "toelis.json")
	require.NoError(t, os.WriteFile(config, []byte(`{"scale": "s"}`), 0o644))

	out := filepath.Join(dir, "shifted.toe_lis")
	_, err := runCLI(t, "--config", config, "shift", toe1, "--by=1", "-o", out)
	require.NoError(t, err)

	lo, _, ok := toelis.Range(readUnits(t, out)[0])
	require.True(t, ok)
	assert.InDelta(t, -2813.94999695, lo, 1e-9)
}

func TestWindow(t *testing.T) {
	out := filepath.Join(t.TempDir(), "window.toe_lis")
	_, err := runCLI(t, "window", toe1, "--onset=0", "--offset=1000", "-o", out)
	require.NoError(t, err)

	units := readUnits(t, out)
	require.Len(t, units, 1)
	assert.Equal(t, 10, units[0].Len())
	for _, trial := range units[0] {
		for _, v := range trial {
			assert.True(t, v >= 0 && v <= 1000, "event %v outside window", v)
		}
	}
}

func TestWindowReversed(t *testing.T) {
	out := filepath.Join(t.TempDir(), "window.toe_lis")
	_, err := runCLI(t, "window", toe1, "--onset=1000", "--offset=0", "-o", out)
	assert.Error(t, err)
}

func TestRaster(t *testing.T) {
	for _, ext := range []string{".svg", ".html"} {
		t.Run(ext, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "raster"+ext)
			_, err := runCLI(t, "raster", toe1, "-o", out)
			require.NoError(t, err)

			info, err := os.Stat(out)
			require.NoError(t, err)
			assert.Positive(t, info.Size())
		})
	}
}

func TestRasterBadUnit(t *testing.T) {
	out := filepath.Join(t.TempDir(), "raster.svg")
	_, err := runCLI(t, "raster", toe1, "-o", out, "--unit", "3")
	assert.ErrorContains(t, err, "no unit 3")
}

func TestPsth(t *testing.T) {
	out, err := runCLI(t, "psth", toe1, "--bin=1000")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 16)
	assert.Contains(t, lines[0], "RATE (1/ms)")

	// Every event falls in some bin: rate * trials * width sums to the count.
	var total float64
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		require.Len(t, fields, 3)
		r, err := strconv.ParseFloat(fields[2], 64)
		require.NoError(t, err)
		total += r * 10 * 1000
	}
	assert.InDelta(t, 86, total, 1e-6)
}

func TestPsthEventsAtZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zero.toe_lis")
	require.NoError(t, os.WriteFile(path, []byte("1\n1\n4\n1\n0\n"), 0o644))

	out, err := runCLI(t, "psth", path, "--bin=10")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"0", "10", "0.1"}, strings.Fields(lines[1]))
}

func TestPsthTooManyBins(t *testing.T) {
	_, err := runCLI(t, "psth", toe1, "--bin=1e-300")
	assert.ErrorIs(t, err, toelis.ErrBadBins)
}

func TestPsthBadBin(t *testing.T) {
	_, err := runCLI(t, "psth", toe1, "--bin=0")
	assert.ErrorIs(t, err, toelis.ErrBadBins)
}

func TestBadLogLevel(t *testing.T) {
	_, err := runCLI(t, "--log-level", "loud", "version")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "toelis dev"), out)
}
