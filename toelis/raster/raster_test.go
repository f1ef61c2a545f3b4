package raster

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/robert-malhotra/go-toelis/toelis"
)

func loadFixture(t *testing.T) toelis.Unit[float64] {
	t.Helper()
	units, err := toelis.ReadFile(filepath.Join("..", "testdata", "toe1.toe_lis"))
	require.NoError(t, err)
	require.Len(t, units, 1)
	return units[0]
}

func TestPoints(t *testing.T) {
	pts := Points(toelis.Unit[float64]{{3, 1}, {}, {2}})

	assert.Equal(t, plotter.XYs{{X: 3, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 2}}, pts)
}

func TestPointsFixture(t *testing.T) {
	u := loadFixture(t)
	pts := Points(u)

	require.Len(t, pts, toelis.Count(u))
	xmin, xmax, ymin, ymax := plotter.XYRange(pts)
	assert.Equal(t, -1813.94999695, xmin)
	assert.Equal(t, 12782.9501953, xmax)
	assert.Equal(t, 0.0, ymin)
	assert.Equal(t, 9.0, ymax)
}

func TestPlot(t *testing.T) {
	p, err := Plot(loadFixture(t), WithTitle("cell 3"), WithXLabel("Time (s)"))
	require.NoError(t, err)

	assert.Equal(t, "cell 3", p.Title.Text)
	assert.Equal(t, "Time (s)", p.X.Label.Text)
	assert.Equal(t, -0.5, p.Y.Min)
	assert.Equal(t, 9.5, p.Y.Max)
}

func TestPlotEmpty(t *testing.T) {
	p, err := Plot(toelis.Unit[float64]{{}, {}})
	require.NoError(t, err)
	assert.Equal(t, "Raster", p.Title.Text)
}

func TestSaveImage(t *testing.T) {
	u := loadFixture(t)
	dir := t.TempDir()

	for _, name := range []string{"raster.png", "raster.svg"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, Save(path, u, WithSize(4*vg.Inch, 2*vg.Inch), WithMarker(vg.Points(1))))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Greater(t, info.Size(), int64(0))
		})
	}
}

func TestSaveUnsupportedFormat(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "raster.bogus"), loadFixture(t))
	assert.Error(t, err)
}

func TestRenderHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, loadFixture(t), WithTitle("toe1")))

	out := buf.String()
	assert.Contains(t, out, "echarts")
	assert.Contains(t, out, "toe1")
	assert.Contains(t, out, "trials=10 events=86")
}

func TestSaveHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raster.html")
	require.NoError(t, Save(path, loadFixture(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<html")
}
