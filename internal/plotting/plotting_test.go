package plotting

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/spectral-calibration/internal/colorimetry"
	"github.com/RyanBlaney/spectral-calibration/internal/spectral"
	"github.com/RyanBlaney/spectral-calibration/internal/testutil"
)

func TestSpectralOverlayWritesFile(t *testing.T) {
	g, err := spectral.Inclusive(400, 700, 5)
	require.NoError(t, err)
	ws := []float64(g)

	series := []Series{
		{Name: "red", Grid: g, Values: testutil.Gaussian(ws, 615, 40)},
		{Name: "V(λ)", Grid: g, Values: testutil.Gaussian(ws, 555, 100), Dashed: true},
	}
	series[0].Values[3] = math.NaN()

	for _, ext := range []string{"png", "svg"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", "overlay."+ext)
			require.NoError(t, SpectralOverlay("Responses", "Normalized", series, path, Size{}))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Greater(t, info.Size(), int64(0))
		})
	}
}

func TestSpectralOverlayRejectsBadInput(t *testing.T) {
	dir := t.TempDir()

	err := SpectralOverlay("x", "y", nil, filepath.Join(dir, "a.png"), DefaultSize)
	assert.ErrorIs(t, err, ErrNoData)

	bad := []Series{{Name: "short", Grid: spectral.Grid{1, 2, 3}, Values: []float64{1}}}
	err = SpectralOverlay("x", "y", bad, filepath.Join(dir, "b.png"), DefaultSize)
	assert.Error(t, err)

	ok := []Series{{Name: "ok", Grid: spectral.Grid{1, 2}, Values: []float64{1, 2}}}
	err = SpectralOverlay("x", "y", ok, filepath.Join(dir, "c.bmp"), DefaultSize)
	assert.ErrorContains(t, err, "unsupported plot format")
}

func TestChromaticityDiagram(t *testing.T) {
	locus := []colorimetry.LocusPoint{
		{Wavelength: 450, Chromaticity: colorimetry.Chromaticity{X: 0.1566, Y: 0.0177}},
		{Wavelength: 500, Chromaticity: colorimetry.Chromaticity{X: 0.0082, Y: 0.5384}},
		{Wavelength: 520, Chromaticity: colorimetry.Chromaticity{X: 0.0743, Y: 0.8338}},
		{Wavelength: 560, Chromaticity: colorimetry.Chromaticity{X: 0.3731, Y: 0.6245}},
		{Wavelength: 650, Chromaticity: colorimetry.Chromaticity{X: 0.7260, Y: 0.2740}},
	}
	sensor := colorimetry.Gamut{
		Name: "Sensor",
		R:    colorimetry.Chromaticity{X: 0.62, Y: 0.33},
		G:    colorimetry.Chromaticity{X: 0.28, Y: 0.58},
		B:    colorimetry.Chromaticity{X: 0.16, Y: 0.10},
	}

	path := filepath.Join(t.TempDir(), "gamut.png")
	require.NoError(t, Chromaticity(locus, sensor, colorimetry.ReferenceGamuts(), path, DefaultSize))
	_, err := os.Stat(path)
	require.NoError(t, err)

	err = Chromaticity(locus[:1], sensor, nil, path, DefaultSize)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("out/chart.PNG"))
	assert.True(t, IsSupported("chart.pdf"))
	assert.False(t, IsSupported("chart"))
	assert.False(t, IsSupported("chart.gif"))
}
