package calibration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/spectral-calibration/internal/colorimetry"
	"github.com/RyanBlaney/spectral-calibration/internal/spectral"
	"github.com/RyanBlaney/spectral-calibration/internal/testutil"
)

// Step responses sampled every nanometre from 500 to 510 nm, so the sensor
// grid coincides with the table and every band can be worked out by hand.
//
//	clear  0 1 2 2 2 2 2 2 2 1 0   band 501-509, width 8, trapezoid 15
//	red    0 0 0 0 1 2 1 0 0 0 0   band 504-506, width 2, trapezoid 3
//	green  0 0 0 1 2 2 2 1 0 0 0   band 503-507, width 4, trapezoid 7
//	blue   0 0 1 2 2 2 2 2 1 0 0   band 502-508, width 6, trapezoid 11
var (
	stepClear = []float64{0, 1, 2, 2, 2, 2, 2, 2, 2, 1, 0}
	stepRed   = []float64{0, 0, 0, 0, 1, 2, 1, 0, 0, 0, 0}
	stepGreen = []float64{0, 0, 0, 1, 2, 2, 2, 1, 0, 0, 0}
	stepBlue  = []float64{0, 0, 1, 2, 2, 2, 2, 2, 1, 0, 0}
	spike     = []float64{0, 0, 0, 0, 0, 2, 0, 0, 0, 0, 0}
)

func stepLoader(red, green, blue []float64) memLoader {
	ws := testutil.Wavelengths(500, 510, 1)
	xyz, _ := syntheticCIE()
	p := DefaultProfile()
	return memLoader{
		p.Sensor.File: testutil.CSV([]string{"Wavelength", "Clear", "Red", "Green", "Blue"},
			ws, stepClear, red, green, blue),
		p.CIE.XYZFile:      xyz,
		p.CIE.PhotopicFile: testutil.CSV(nil, ws, testutil.Constant(1, len(ws))),
	}
}

func stepProfile() Profile {
	p := DefaultProfile()
	p.Constants.AvgResponseConversion = 10
	p.Constants.WidthFactors = RGB{Red: 4, Green: 2, Blue: 1}
	p.Constants.ClearConversion = 20
	return p
}

func newStepPipeline(t *testing.T, red, green, blue []float64) *Pipeline {
	t.Helper()
	p, err := NewPipeline(stepProfile(), stepLoader(red, green, blue), nil)
	require.NoError(t, err)
	return p
}

func TestKnownWidthFactors(t *testing.T) {
	report, err := newStepPipeline(t, stepRed, stepGreen, stepBlue).WidthFactors()
	require.NoError(t, err)
	require.Len(t, report.Channels, 4)

	tests := []struct {
		channel     Channel
		left, right float64
		width       float64
		clearRatio  float64
	}{
		{Clear, 501, 509, 8, 1},
		{Red, 504, 506, 2, 4},
		{Green, 503, 507, 4, 2},
		{Blue, 502, 508, 6, 4.0 / 3},
	}
	for i, tt := range tests {
		t.Run(string(tt.channel), func(t *testing.T) {
			got := report.Channels[i]
			assert.Equal(t, tt.channel, got.Channel)
			assert.InDelta(t, tt.left, got.Band.Left, 1e-9)
			assert.InDelta(t, tt.right, got.Band.Right, 1e-9)
			assert.InDelta(t, tt.width, got.WidthNm, 1e-9)
			assert.InDelta(t, tt.clearRatio, got.ClearRatio, 1e-9)
		})
	}
}

func TestKnownAverageResponse(t *testing.T) {
	report, err := newStepPipeline(t, stepRed, stepGreen, stepBlue).AverageResponse()
	require.NoError(t, err)
	require.Len(t, report.Channels, 3)
	assert.Equal(t, 10.0, report.Conversion)

	// counts = mean in band × 10 / width factor
	tests := []struct {
		channel Channel
		mean    float64
		counts  float64
	}{
		{Red, 4.0 / 3, 4.0 / 3 * 10 / 4},
		{Green, 8.0 / 5, 8.0 / 5 * 10 / 2},
		{Blue, 12.0 / 7, 12.0 / 7 * 10 / 1},
	}
	for i, tt := range tests {
		t.Run(string(tt.channel), func(t *testing.T) {
			got := report.Channels[i]
			assert.Equal(t, tt.channel, got.Channel)
			assert.InDelta(t, tt.mean, got.MeanResponse, 1e-9)
			assert.InDelta(t, 2.0, got.PeakResponse, 1e-9)
			assert.InDelta(t, tt.counts, got.CountsPerMicrowatt, 1e-9)
		})
	}
}

func TestKnownIrradianceFactors(t *testing.T) {
	report, err := newStepPipeline(t, stepRed, stepGreen, stepBlue).IrradianceFactors()
	require.NoError(t, err)
	require.Len(t, report.Channels, 3)

	assert.InDelta(t, 15.0, report.ClearTotal, 1e-9)
	assert.Equal(t, 1.0/16, report.GainRatio)
	assert.InDelta(t, 0.1, report.IntegrationRatio, 1e-12)

	tests := []struct {
		channel Channel
		total   float64
	}{
		{Red, 3},
		{Green, 7},
		{Blue, 11},
	}
	for i, tt := range tests {
		t.Run(string(tt.channel), func(t *testing.T) {
			got := report.Channels[i]
			ratio := tt.total / 15
			assert.InDelta(t, tt.total, got.TotalResponse, 1e-9)
			assert.InDelta(t, ratio, got.ClearRatio, 1e-9)
			assert.InDelta(t, 20*ratio, got.ReferenceFactor, 1e-9)
			assert.InDelta(t, 20*ratio/16*0.1, got.Factor, 1e-9)
		})
	}
	assert.InDelta(t, 0.025, report.Channels[0].Factor, 1e-9)
}

func TestKnownClearConversion(t *testing.T) {
	ws := testutil.Wavelengths(380, 780, 10)
	loader := syntheticLoader()
	loader[DefaultProfile().Sensor.File] = syntheticSensor(testutil.Constant(0.5, len(ws)))

	p, err := NewPipeline(DefaultProfile(), loader, nil)
	require.NoError(t, err)

	report, err := p.ClearConversionFactors()
	require.NoError(t, err)
	require.Len(t, report.LEDs, 3)

	// A flat 0.5 response halves every LED, doubling the factor.
	want := map[string]float64{"blue": 27.6, "green": 33.2, "red": 39.0}
	for _, led := range report.LEDs {
		assert.InDelta(t, 0.5, led.UnitlessResponse, 1e-9, led.LED)
		assert.InDelta(t, want[led.LED], led.Factor, 1e-9, led.LED)
	}
	assert.InDelta(t, 33.2, report.Stats.Median, 1e-9)
	assert.InDelta(t, (27.6+33.2+39.0)/3, report.Stats.Mean, 1e-9)
	assert.InDelta(t, 27.6, report.Stats.Min, 1e-9)
	assert.InDelta(t, 39.0, report.Stats.Max, 1e-9)
}

func TestKnownLuxFactors(t *testing.T) {
	k := DefaultProfile().Constants.CountsPerIrradiance
	kTotal := 1 / (0.0079 * 100)

	tests := []struct {
		name    string
		red     []float64
		weights RGB
		noBand  []Channel
	}{
		{
			name: "all channels",
			red:  stepRed,
			// in-band sums of the step responses divided by their counts
			// per irradiance
			weights: RGB{Red: 4 / k.Red, Green: 8 / k.Green, Blue: 12 / k.Blue},
		},
		{
			name:    "single point red band",
			red:     spike,
			weights: RGB{Red: 0, Green: 8 / k.Green, Blue: 12 / k.Blue},
			noBand:  []Channel{Red},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := newStepPipeline(t, tt.red, stepGreen, stepBlue).LuxFactors()
			require.NoError(t, err)
			require.Len(t, report.Channels, 3)

			assert.Equal(t, 500.0, report.GridStart)
			assert.Equal(t, 510.0, report.GridStop)
			assert.InDelta(t, kTotal, report.KTotal, 1e-12)
			assert.InDelta(t, 1.2658227848101267, report.KTotal, 1e-12)

			total := tt.weights.Red + tt.weights.Green + tt.weights.Blue
			for _, ch := range report.Channels {
				share := tt.weights.Get(ch.Channel) / total
				assert.InDelta(t, share, ch.Normalized, 1e-9, ch.Channel)
				assert.InDelta(t, kTotal*share, ch.LuxPerMicrowatt, 1e-9, ch.Channel)
			}
			for _, ch := range tt.noBand {
				entry := report.Channels[0]
				assert.Equal(t, ch, entry.Channel)
				assert.Nil(t, entry.Band)
				assert.Equal(t, 0.0, entry.Weight)
			}
		})
	}
}

func TestLuxFactorsWithoutAnyUsableBand(t *testing.T) {
	_, err := newStepPipeline(t, spike, spike, spike).LuxFactors()
	assert.ErrorIs(t, err, spectral.ErrDivideByZero)
	assert.ErrorContains(t, err, "no channel overlaps the photopic curve")
}

func TestGamutRejectsSinglePointBand(t *testing.T) {
	_, err := newStepPipeline(t, spike, stepGreen, stepBlue).Gamut()
	assert.ErrorIs(t, err, colorimetry.ErrNarrowBand)
	assert.ErrorContains(t, err, "red channel")
}
