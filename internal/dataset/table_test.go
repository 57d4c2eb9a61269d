package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/spectral-calibration/internal/spectral"
)

const sensorCSV = `Wavelength,Clear,Red,Green,Blue
400, 0.20, 0.01, 0.02, 0.30

410, 0.30, 0.01, 0.05, 0.45
420, 0.40, 0.02, 0.10, 0.60
`

func TestReadHeadered(t *testing.T) {
	tbl, err := Read(strings.NewReader(sensorCSV), Headered)
	require.NoError(t, err)

	assert.Equal(t, []string{"Wavelength", "Clear", "Red", "Green", "Blue"}, tbl.Columns)
	assert.Equal(t, 3, tbl.Rows())
	assert.True(t, tbl.Has("Green"))
	assert.False(t, tbl.Has("IR"))

	blue, err := tbl.Column("Blue")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.30, 0.45, 0.60}, blue)

	c, err := tbl.Curve("Wavelength", "Clear")
	require.NoError(t, err)
	assert.Equal(t, []float64{400, 410, 420}, c.Wavelengths())
}

func TestReadPositional(t *testing.T) {
	in := "360,0.0001,0.00001,0.0006\n361,0.0002,0.00002,0.0007\n"
	tbl, err := Read(strings.NewReader(in), Positional("Wavelength", "x_bar", "y_bar", "z_bar"))
	require.NoError(t, err)

	curves, err := tbl.Curves("Wavelength", "x_bar", "y_bar", "z_bar")
	require.NoError(t, err)
	require.Len(t, curves, 3)
	assert.Equal(t, []float64{0.00001, 0.00002}, curves["y_bar"].Values())
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		layout Layout
		want   string
	}{
		{name: "non numeric cell", in: "Wavelength,Clear\n400,abc\n", layout: Headered, want: `"Clear"`},
		{name: "nan cell", in: "Wavelength,Clear\n400,NaN\n", layout: Headered, want: "not a finite number"},
		{name: "infinite cell", in: "Wavelength,Clear\n400,+Inf\n", layout: Headered, want: "line 2"},
		{name: "ragged row", in: "Wavelength,Clear\n400,1,2\n", layout: Headered, want: "line 2"},
		{name: "empty headered", in: "", layout: Headered, want: "header"},
		{name: "no names", in: "1,2\n", layout: Layout{}, want: "no column names"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.in), tt.layout)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedTable)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestUnknownColumn(t *testing.T) {
	tbl, err := Read(strings.NewReader(sensorCSV), Headered)
	require.NoError(t, err)

	_, err = tbl.Column("Infrared")
	assert.ErrorIs(t, err, ErrUnknownColumn)

	_, err = tbl.Curve("Wavelength", "Infrared")
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestCurveValidatesOrdering(t *testing.T) {
	in := "Wavelength,V\n500,1\n490,2\n"
	tbl, err := Read(strings.NewReader(in), Headered)
	require.NoError(t, err)

	_, err = tbl.Curve("Wavelength", "V")
	assert.ErrorIs(t, err, spectral.ErrMalformedCurve)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sensor.csv")
	require.NoError(t, os.WriteFile(path, []byte(sensorCSV), 0o644))

	tbl, err := Load(path, Headered)
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Rows())

	_, err = Load(filepath.Join(dir, "missing.csv"), Headered)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
