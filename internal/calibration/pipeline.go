package calibration

import (
	"fmt"
	"path/filepath"

	"github.com/RyanBlaney/latency-benchmark-common/logging"

	"github.com/RyanBlaney/spectral-calibration/internal/colorimetry"
	"github.com/RyanBlaney/spectral-calibration/internal/dataset"
	"github.com/RyanBlaney/spectral-calibration/internal/spectral"
)

// TableLoader reads the reference tables a profile points at.
type TableLoader interface {
	Load(name string, layout dataset.Layout) (*dataset.Table, error)
}

// DirLoader loads tables from disk, resolving relative names against Dir.
type DirLoader struct {
	Dir string
}

// Load implements TableLoader.
func (l DirLoader) Load(name string, layout dataset.Layout) (*dataset.Table, error) {
	path := name
	if !filepath.IsAbs(path) && l.Dir != "" {
		path = filepath.Join(l.Dir, path)
	}
	return dataset.Load(path, layout)
}

// Pipeline runs the calibration analyses for one profile. Input tables are
// loaded on first use and kept for the lifetime of the pipeline.
type Pipeline struct {
	profile Profile
	loader  TableLoader
	logger  logging.Logger

	sensor   map[Channel]*spectral.Curve
	cmf      *colorimetry.ColorMatchingFunctions
	photopic *spectral.Curve
}

// NewPipeline validates profile and returns a pipeline reading its tables
// through loader.
func NewPipeline(profile Profile, loader TableLoader, logger logging.Logger) (*Pipeline, error) {
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid calibration profile: %w", err)
	}
	if loader == nil {
		loader = DirLoader{}
	}
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}

	return &Pipeline{
		profile: profile,
		loader:  loader,
		logger:  logger.WithFields(logging.Fields{
			"component": "calibration_pipeline",
			"profile":   profile.Name,
		}),
	}, nil
}

// Profile returns the profile the pipeline was built with.
func (p *Pipeline) Profile() Profile {
	return p.profile
}

// sensorCurves returns the four responsivity curves of the sensor export.
func (p *Pipeline) sensorCurves() (map[Channel]*spectral.Curve, error) {
	if p.sensor != nil {
		return p.sensor, nil
	}

	cfg := p.profile.Sensor
	table, err := p.loader.Load(cfg.File, dataset.Headered)
	if err != nil {
		return nil, fmt.Errorf("failed to load sensor responsivity: %w", err)
	}

	curves := make(map[Channel]*spectral.Curve, len(AllChannels))
	for _, ch := range AllChannels {
		c, err := table.Curve(cfg.Columns.Wavelength, cfg.Columns.Column(ch))
		if err != nil {
			return nil, fmt.Errorf("sensor %s channel: %w", ch, err)
		}
		curves[ch] = c
	}

	p.logger.Debug("Loaded sensor responsivity", logging.Fields{
		"file": cfg.File,
		"rows": table.Rows(),
	})

	p.sensor = curves
	return curves, nil
}

// colorMatchingFunctions returns the CIE 1931 2° observer.
func (p *Pipeline) colorMatchingFunctions() (*colorimetry.ColorMatchingFunctions, error) {
	if p.cmf != nil {
		return p.cmf, nil
	}

	table, err := p.loader.Load(p.profile.CIE.XYZFile,
		dataset.Positional("Wavelength", "x_bar", "y_bar", "z_bar"))
	if err != nil {
		return nil, fmt.Errorf("failed to load CIE colour-matching functions: %w", err)
	}
	curves, err := table.Curves("Wavelength", "x_bar", "y_bar", "z_bar")
	if err != nil {
		return nil, fmt.Errorf("CIE colour-matching functions: %w", err)
	}

	p.cmf = &colorimetry.ColorMatchingFunctions{
		X: curves["x_bar"],
		Y: curves["y_bar"],
		Z: curves["z_bar"],
	}
	return p.cmf, nil
}

// photopicCurve returns the CIE photopic luminous efficiency V(λ).
func (p *Pipeline) photopicCurve() (*spectral.Curve, error) {
	if p.photopic != nil {
		return p.photopic, nil
	}

	table, err := p.loader.Load(p.profile.CIE.PhotopicFile, dataset.Positional("Wavelength", "V_lambda"))
	if err != nil {
		return nil, fmt.Errorf("failed to load CIE photopic curve: %w", err)
	}
	c, err := table.Curve("Wavelength", "V_lambda")
	if err != nil {
		return nil, fmt.Errorf("CIE photopic curve: %w", err)
	}

	p.photopic = c
	return c, nil
}

// sensorGrid is the inclusive 1 nm grid spanning the sensor export. It stops
// at the last lattice point inside the export; numpy's arange(min, max+1, 1)
// adds one more sample past a non-integer max, which the Reject edge policy
// would refuse since it lies outside the measured data.
func (p *Pipeline) sensorGrid(curves map[Channel]*spectral.Curve) (spectral.Grid, error) {
	lo, hi := curves[Clear].Domain()
	return spectral.Inclusive(lo, hi, 1)
}

// profileGrid is the grid configured in the profile.
func (p *Pipeline) profileGrid() (spectral.Grid, error) {
	g := p.profile.Grid
	return spectral.Inclusive(g.Start, g.Stop, g.Step)
}

// resampleSensor resamples the given channels on the sensor's own grid.
func (p *Pipeline) resampleSensor(channels []Channel) (map[Channel]*spectral.Resampled, error) {
	curves, err := p.sensorCurves()
	if err != nil {
		return nil, err
	}
	grid, err := p.sensorGrid(curves)
	if err != nil {
		return nil, fmt.Errorf("failed to build sensor grid: %w", err)
	}

	out := make(map[Channel]*spectral.Resampled, len(channels))
	for _, ch := range channels {
		r, err := spectral.Resample(curves[ch], grid)
		if err != nil {
			return nil, fmt.Errorf("failed to resample %s channel: %w", ch, err)
		}
		out[ch] = r
	}
	return out, nil
}
