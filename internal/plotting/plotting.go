// Package plotting renders the calibration charts: spectral curve overlays and
// the CIE 1931 chromaticity diagram with the sensor gamut.
package plotting

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/RyanBlaney/spectral-calibration/internal/colorimetry"
	"github.com/RyanBlaney/spectral-calibration/internal/spectral"
)

var ErrNoData = errors.New("nothing to plot")

// Size is the physical size of a saved chart.
type Size struct {
	Width  vg.Length
	Height vg.Length
}

// DefaultSize is used when a zero Size is passed.
var DefaultSize = Size{Width: 8 * vg.Inch, Height: 6 * vg.Inch}

// SupportedFormats lists the file extensions Save understands.
var SupportedFormats = []string{"png", "svg", "pdf", "eps", "jpg", "jpeg", "tif", "tiff"}

// Series is one named curve on a shared wavelength axis.
type Series struct {
	Name   string
	Grid   spectral.Grid
	Values []float64
	Color  color.Color
	Dashed bool
}

// SpectralOverlay draws every series as a line against wavelength and writes
// the chart to path. The image format follows the file extension.
func SpectralOverlay(title, ylabel string, series []Series, path string, size Size) error {
	if len(series) == 0 {
		return ErrNoData
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Wavelength (nm)"
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	for i, s := range series {
		if len(s.Grid) != len(s.Values) {
			return fmt.Errorf("series %q: %d wavelengths for %d values", s.Name, len(s.Grid), len(s.Values))
		}
		line, err := plotter.NewLine(seriesXYs(s))
		if err != nil {
			return fmt.Errorf("series %q: %w", s.Name, err)
		}
		line.Color = s.Color
		if line.Color == nil {
			line.Color = plotutil.Color(i)
		}
		line.Width = vg.Points(1.5)
		if s.Dashed {
			line.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		}
		p.Add(line)
		p.Legend.Add(s.Name, line)
	}

	return save(p, path, size)
}

// Chromaticity draws the spectral locus, the sensor gamut and the reference
// gamuts on the xy diagram. Sensor primaries are marked in their own colour.
func Chromaticity(locus []colorimetry.LocusPoint, sensor colorimetry.Gamut, refs []colorimetry.Gamut, path string, size Size) error {
	if len(locus) < 2 {
		return ErrNoData
	}

	p := plot.New()
	p.Title.Text = "CIE 1931 Chromaticity Diagram"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.X.Min, p.X.Max = 0, 0.8
	p.Y.Min, p.Y.Max = 0, 0.9
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(locus)+1)
	for i, lp := range locus {
		pts[i].X, pts[i].Y = lp.X, lp.Y
	}
	// Close the locus along the line of purples.
	pts[len(locus)] = pts[0]

	locusLine, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("spectral locus: %w", err)
	}
	locusLine.Color = color.Black
	locusLine.Width = vg.Points(1)
	p.Add(locusLine)
	p.Legend.Add("Spectral locus", locusLine)

	for i, ref := range refs {
		tri, err := plotter.NewLine(triangle(ref))
		if err != nil {
			return fmt.Errorf("gamut %s: %w", ref.Name, err)
		}
		tri.Color = plotutil.Color(i + 1)
		tri.Dashes = plotutil.Dashes(i + 1)
		p.Add(tri)
		p.Legend.Add(ref.Name, tri)
	}

	sensorLine, err := plotter.NewLine(triangle(sensor))
	if err != nil {
		return fmt.Errorf("sensor gamut: %w", err)
	}
	sensorLine.Color = color.Black
	sensorLine.Width = vg.Points(2.5)
	p.Add(sensorLine)
	p.Legend.Add(sensor.Name, sensorLine)

	for _, v := range sensor.Vertices() {
		marker, err := plotter.NewScatter(plotter.XYs{{X: v.X, Y: v.Y}})
		if err != nil {
			return fmt.Errorf("sensor primary %s: %w", v, err)
		}
		marker.GlyphStyle.Color = colorimetry.DisplayColor(v)
		marker.GlyphStyle.Radius = vg.Points(5)
		marker.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(marker)
	}

	return save(p, path, size)
}

func seriesXYs(s Series) plotter.XYs {
	xy := make(plotter.XYs, 0, len(s.Values))
	for i, v := range s.Values {
		if math.IsNaN(v) {
			continue
		}
		xy = append(xy, plotter.XY{X: s.Grid[i], Y: v})
	}
	return xy
}

func triangle(g colorimetry.Gamut) plotter.XYs {
	vs := g.Vertices()
	xy := make(plotter.XYs, len(vs)+1)
	for i, v := range vs {
		xy[i].X, xy[i].Y = v.X, v.Y
	}
	xy[len(vs)] = xy[0]
	return xy
}

func save(p *plot.Plot, path string, size Size) error {
	if !IsSupported(path) {
		return fmt.Errorf("unsupported plot format %q", filepath.Ext(path))
	}
	if size.Width <= 0 || size.Height <= 0 {
		size = DefaultSize
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create plot directory: %w", err)
		}
	}
	if err := p.Save(size.Width, size.Height, path); err != nil {
		return fmt.Errorf("failed to save plot %s: %w", path, err)
	}
	return nil
}

// IsSupported reports whether path has an extension Save can render.
func IsSupported(path string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	for _, f := range SupportedFormats {
		if ext == f {
			return true
		}
	}
	return false
}
