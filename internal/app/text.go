package app

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/RyanBlaney/spectral-calibration/internal/calibration"
	"github.com/RyanBlaney/spectral-calibration/internal/colorimetry"
)

var titleCaser = cases.Title(language.English)

// textWriter renders reports as plain console text.
type textWriter struct {
	w         io.Writer
	precision int
}

func (t *textWriter) header(title string) {
	fmt.Fprintf(t.w, "\n%s\n%s\n", title, strings.Repeat("=", len(title)))
}

func (t *textWriter) section(title string) {
	fmt.Fprintf(t.w, "\n%s\n%s\n", title, strings.Repeat("-", len(title)))
}

func (t *textWriter) line(format string, args ...any) {
	fmt.Fprintf(t.w, format+"\n", args...)
}

func (t *textWriter) keyValue(key, value string) {
	fmt.Fprintf(t.w, "  %-30s %s\n", key+":", value)
}

func (t *textWriter) num(v float64) string {
	return fmt.Sprintf("%.*f", t.precision, v)
}

func (t *textWriter) sci(v float64) string {
	return fmt.Sprintf("%.*e", t.precision, v)
}

func (t *textWriter) percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

func (t *textWriter) matrix(m colorimetry.Matrix3) {
	for _, row := range m {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = fmt.Sprintf("%12s", t.num(v))
		}
		t.line("  [%s ]", strings.Join(cells, ""))
	}
}

func label(s string) string {
	return titleCaser.String(s)
}

func channelLabel(ch calibration.Channel) string {
	return label(string(ch))
}

func writeWidths(t *textWriter, r *calibration.WidthReport) {
	for _, c := range r.Channels {
		t.keyValue(channelLabel(c.Channel)+" FWHM", fmt.Sprintf("%s (%s nm)", c.Band, t.num(c.WidthNm)))
		if c.Channel != calibration.Clear {
			t.keyValue("Clear width / "+string(c.Channel)+" width", t.num(c.ClearRatio))
		}
	}
}

func writeAverageResponse(t *textWriter, r *calibration.ResponseReport) {
	t.keyValue("Clear conversion", t.num(r.Conversion))
	for _, c := range r.Channels {
		t.section(channelLabel(c.Channel))
		t.keyValue("FWHM band", c.Band.String())
		t.keyValue("Mean response", t.num(c.MeanResponse))
		t.keyValue("Peak response", t.num(c.PeakResponse))
		t.keyValue("Counts per µW/cm²", t.num(c.CountsPerMicrowatt))
	}
}

func writeIrradiance(t *textWriter, r *calibration.IrradianceReport) {
	t.keyValue("Clear FWHM band", r.ClearBand.String())
	t.keyValue("Clear integrated response", t.num(r.ClearTotal))
	t.keyValue("Gain ratio", t.num(r.GainRatio))
	t.keyValue("Integration time ratio", t.num(r.IntegrationRatio))
	t.keyValue("Target settings", fmt.Sprintf("gain %gx, %g ms", r.TargetGain, r.TargetTimeMs))
	for _, c := range r.Channels {
		t.section(channelLabel(c.Channel))
		t.keyValue("FWHM band", c.Band.String())
		t.keyValue("Integrated response", t.num(c.TotalResponse))
		t.keyValue("Ratio to clear", t.num(c.ClearRatio))
		t.keyValue("Reference factor", t.sci(c.ReferenceFactor))
		t.keyValue("Counts per µW/cm²", t.num(c.Factor))
	}
}

func writeClearConversion(t *textWriter, r *calibration.ClearConversionReport) {
	for _, led := range r.LEDs {
		t.section(label(led.LED) + " LED")
		t.keyValue("Unitless clear response", t.num(led.UnitlessResponse))
		t.keyValue("Measured counts per µW/cm²", t.num(led.CountsPerMicrowatt))
		t.keyValue("Conversion factor", t.num(led.Factor))
	}
	t.section("Summary")
	writeStats(t, r.Stats)
}

func writeStats(t *textWriter, s calibration.Stats) {
	t.keyValue("Mean", t.num(s.Mean))
	t.keyValue("Median", t.num(s.Median))
	t.keyValue("Min", t.num(s.Min))
	t.keyValue("Max", t.num(s.Max))
	t.keyValue("Std dev", t.num(s.StdDev))
}

func writeChannelCounts(t *textWriter, r *calibration.ChannelCountsReport) {
	for _, led := range r.LEDs {
		t.section(label(led.LED) + " LED")
		t.keyValue("Conversion factor", t.num(led.Factor))
		for _, ch := range calibration.AllChannels {
			t.keyValue(channelLabel(ch), fmt.Sprintf("%s unitless, %s counts per µW/cm²",
				t.num(led.Unitless.Get(ch)), t.num(led.Counts.Get(ch))))
		}
	}
}

func writeTristimulus(t *textWriter, r *calibration.TristimulusReport) {
	for _, led := range r.LEDs {
		t.section(label(led.LED) + " LED")
		t.keyValue("XYZ", fmt.Sprintf("%s, %s, %s", t.num(led.XYZ.X), t.num(led.XYZ.Y), t.num(led.XYZ.Z)))
		t.keyValue("Chromaticity (x, y)", led.Chromaticity.String())
	}
}

func writeNormalized(t *textWriter, r *calibration.NormalizeReport) {
	for _, led := range r.LEDs {
		t.keyValue(label(led.LED)+" LED", fmt.Sprintf("R %s  G %s  B %s",
			t.num(led.Red), t.num(led.Green), t.num(led.Blue)))
	}
}

func writeMatrix(t *textWriter, r *calibration.MatrixReport) {
	source := "profile"
	if r.Derived {
		source = "derived from " + strings.Join(r.LEDs, ", ")
	}
	t.keyValue("Inputs", source)
	t.section("Tristimulus matrix T")
	t.matrix(r.Tristimulus)
	t.section("Sensor response matrix S")
	t.matrix(r.Response)
	t.section("Conversion matrix C = T·S⁻¹")
	t.matrix(r.Conversion)
}

func writeGamut(t *textWriter, r *calibration.GamutReport) {
	for _, p := range r.Primaries {
		t.keyValue(channelLabel(p.Channel)+" primary", fmt.Sprintf("%s over %s", p.Chromaticity, p.Band))
	}
	t.keyValue("Sensor gamut area", t.num(r.SensorArea))
	t.section("Reference gamuts")
	t.line("  %-12s %10s %14s %10s", "Gamut", "Area", "Sensor/Ref", "Coverage")
	for _, ref := range r.References {
		t.line("  %-12s %10s %14s %10s", ref.Gamut.Name, t.num(ref.Area),
			t.percent(ref.RelativeArea), t.percent(ref.Coverage))
	}
}

func writeLux(t *textWriter, r *calibration.LuxReport) {
	t.keyValue("Grid", fmt.Sprintf("%g nm to %g nm", r.GridStart, r.GridStop))
	t.keyValue("Lux per µW/cm² (total)", t.num(r.KTotal))
	for _, c := range r.Channels {
		t.section(channelLabel(c.Channel))
		band := "none"
		if c.Band != nil {
			band = c.Band.String()
		}
		t.keyValue("FWHM band", band)
		t.keyValue("V(λ) weight", t.num(c.Weight))
		t.keyValue("Normalized weight", t.num(c.Normalized))
		t.keyValue("Lux per µW/cm²", t.num(c.LuxPerMicrowatt))
	}
}

func writeReport(t *textWriter, r *calibration.Report) {
	t.keyValue("Profile", r.Profile)
	t.keyValue("Generated", r.GeneratedAt.Format("2006-01-02 15:04:05 MST"))

	t.header("Width Factors")
	writeWidths(t, r.Widths)
	t.header("Average Response Factors")
	writeAverageResponse(t, r.AverageResponse)
	t.header("Irradiance Conversion Factors")
	writeIrradiance(t, r.Irradiance)
	t.header("Clear Channel Conversion Factors")
	writeClearConversion(t, r.ClearConversion)
	t.header("Channel Counts per LED")
	writeChannelCounts(t, r.ChannelCounts)
	t.header("LED Tristimulus Values")
	writeTristimulus(t, r.Tristimulus)
	t.header("Normalized LED Responses")
	writeNormalized(t, r.Normalized)
	t.header("RGB to XYZ Conversion Matrix")
	writeMatrix(t, r.Matrix)
	t.header("Sensor Colour Gamut")
	writeGamut(t, r.Gamut)
	t.header("Irradiance to Lux Conversion")
	writeLux(t, r.Lux)
}
