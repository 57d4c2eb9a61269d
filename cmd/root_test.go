package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/spectral-calibration/internal/app"
	"github.com/RyanBlaney/spectral-calibration/internal/calibration"
	"github.com/RyanBlaney/spectral-calibration/internal/testutil"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	return buf.String()
}

func TestEveryAnalysisHasACommand(t *testing.T) {
	for _, a := range app.Analyses {
		c, _, err := rootCmd.Find([]string{a.Name})
		require.NoError(t, err, a.Name)
		assert.Equal(t, a.Name, c.Name())
		assert.NotEmpty(t, c.Long, a.Name)
	}
}

func TestProfileCommandPrintsBuiltInProfile(t *testing.T) {
	out := execute(t, "profile", "--format", "json")
	assert.Contains(t, out, `"name": "tcs34725"`)
	assert.Contains(t, out, `"tristimulus_matrix"`)
}

func TestWidthsCommand(t *testing.T) {
	dir := t.TempDir()
	p := calibration.DefaultProfile()
	testutil.WriteSyntheticTables(t, dir, p.Sensor.File, p.CIE.XYZFile, p.CIE.PhotopicFile)

	out := execute(t, "widths", "--data-dir", dir)
	assert.Contains(t, out, "Width Factors")
	assert.Contains(t, out, "Green FWHM:")
}
