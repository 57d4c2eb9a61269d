package app

import (
	"fmt"

	"github.com/RyanBlaney/spectral-calibration/internal/calibration"
)

// Analysis is one calibration computation the CLI can run on its own.
type Analysis struct {
	Name  string
	Title string

	run  func(*calibration.Pipeline) (any, error)
	text func(*textWriter, any)
}

func newAnalysis[T any](name, title string, run func(*calibration.Pipeline) (T, error), text func(*textWriter, T)) Analysis {
	return Analysis{
		Name:  name,
		Title: title,
		run: func(p *calibration.Pipeline) (any, error) {
			return run(p)
		},
		text: func(w *textWriter, v any) {
			text(w, v.(T))
		},
	}
}

// Analyses lists every analysis in the order the full run performs them.
var Analyses = []Analysis{
	newAnalysis("widths", "Width Factors", (*calibration.Pipeline).WidthFactors, writeWidths),
	newAnalysis("avg-response", "Average Response Factors", (*calibration.Pipeline).AverageResponse, writeAverageResponse),
	newAnalysis("irradiance", "Irradiance Conversion Factors", (*calibration.Pipeline).IrradianceFactors, writeIrradiance),
	newAnalysis("clear-factors", "Clear Channel Conversion Factors", (*calibration.Pipeline).ClearConversionFactors, writeClearConversion),
	newAnalysis("channel-counts", "Channel Counts per LED", (*calibration.Pipeline).ChannelCounts, writeChannelCounts),
	newAnalysis("tristimulus", "LED Tristimulus Values", (*calibration.Pipeline).LEDTristimulus, writeTristimulus),
	newAnalysis("normalize", "Normalized LED Responses", (*calibration.Pipeline).NormalizeResponses, writeNormalized),
	newAnalysis("matrix", "RGB to XYZ Conversion Matrix", (*calibration.Pipeline).ConversionMatrix, writeMatrix),
	newAnalysis("gamut", "Sensor Colour Gamut", (*calibration.Pipeline).Gamut, writeGamut),
	newAnalysis("lux", "Irradiance to Lux Conversion", (*calibration.Pipeline).LuxFactors, writeLux),
	newAnalysis("run", "Full Calibration Report", (*calibration.Pipeline).RunAll, writeReport),
}

// LookupAnalysis returns the analysis registered under name.
func LookupAnalysis(name string) (Analysis, error) {
	for _, a := range Analyses {
		if a.Name == name {
			return a, nil
		}
	}
	return Analysis{}, fmt.Errorf("unknown analysis %q", name)
}
