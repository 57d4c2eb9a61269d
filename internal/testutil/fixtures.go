package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// CSV renders columns as CSV text, with a header row when header is non-nil.
func CSV(header []string, columns ...[]float64) string {
	var b strings.Builder
	if header != nil {
		b.WriteString(strings.Join(header, ",") + "\n")
	}
	for i := range columns[0] {
		cells := make([]string, len(columns))
		for j, col := range columns {
			cells[j] = fmt.Sprintf("%g", col[i])
		}
		b.WriteString(strings.Join(cells, ",") + "\n")
	}
	return b.String()
}

// WriteSyntheticTables writes a sensor responsivity export and CIE tables
// built from Gaussians into dir under the given file names.
//
// Sensor channel FWHMs are clear 240 nm, red 60 nm, green 80 nm and blue
// 100 nm. The CIE tables have no header row.
func WriteSyntheticTables(t *testing.T, dir, sensorFile, xyzFile, photopicFile string) {
	t.Helper()

	ws := Wavelengths(380, 780, 10)
	sensor := CSV([]string{"Wavelength", "Clear", "Red", "Green", "Blue"},
		ws,
		Gaussian(ws, 580, 240),
		Gaussian(ws, 620, 60),
		Gaussian(ws, 530, 80),
		Gaussian(ws, 460, 100),
	)

	cie := Wavelengths(360, 830, 5)
	xbar := Gaussian(cie, 600, 80)
	for i, v := range Gaussian(cie, 445, 40) {
		xbar[i] += 0.35 * v
	}
	ybar := Gaussian(cie, 555, 100)
	zbar := Gaussian(cie, 450, 50)
	for i := range zbar {
		zbar[i] *= 1.7
	}

	files := map[string]string{
		sensorFile:   sensor,
		xyzFile:      CSV(nil, cie, xbar, ybar, zbar),
		photopicFile: CSV(nil, cie, ybar),
	}
	for name, text := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(text), 0644))
	}
}
