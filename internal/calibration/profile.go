package calibration

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/RyanBlaney/spectral-calibration/internal/colorimetry"
)

// Channel names one of the sensor's four photodiode channels.
type Channel string

const (
	Clear Channel = "clear"
	Red   Channel = "red"
	Green Channel = "green"
	Blue  Channel = "blue"
)

// ColorChannels are the filtered channels, in output order.
var ColorChannels = []Channel{Red, Green, Blue}

// AllChannels adds the unfiltered clear channel in front of ColorChannels.
var AllChannels = []Channel{Clear, Red, Green, Blue}

// ChannelValues holds one number per sensor channel.
type ChannelValues struct {
	Clear float64 `json:"clear" yaml:"clear"`
	Red   float64 `json:"red" yaml:"red"`
	Green float64 `json:"green" yaml:"green"`
	Blue  float64 `json:"blue" yaml:"blue"`
}

// Get returns the value for ch.
func (v ChannelValues) Get(ch Channel) float64 {
	switch ch {
	case Clear:
		return v.Clear
	case Red:
		return v.Red
	case Green:
		return v.Green
	case Blue:
		return v.Blue
	}
	return 0
}

// Set stores x for ch.
func (v *ChannelValues) Set(ch Channel, x float64) {
	switch ch {
	case Clear:
		v.Clear = x
	case Red:
		v.Red = x
	case Green:
		v.Green = x
	case Blue:
		v.Blue = x
	}
}

// GridSpec describes an evenly spaced, inclusive wavelength grid.
type GridSpec struct {
	Start float64 `json:"start" yaml:"start"`
	Stop  float64 `json:"stop" yaml:"stop"`
	Step  float64 `json:"step" yaml:"step"`
}

// SensorColumns maps channels to the column names of the responsivity file.
type SensorColumns struct {
	Wavelength string `json:"wavelength" yaml:"wavelength"`
	Clear      string `json:"clear" yaml:"clear"`
	Red        string `json:"red" yaml:"red"`
	Green      string `json:"green" yaml:"green"`
	Blue       string `json:"blue" yaml:"blue"`
}

// Column returns the column name holding ch.
func (c SensorColumns) Column(ch Channel) string {
	switch ch {
	case Clear:
		return c.Clear
	case Red:
		return c.Red
	case Green:
		return c.Green
	case Blue:
		return c.Blue
	}
	return ""
}

// SensorConfig locates the sensor's relative spectral responsivity export.
type SensorConfig struct {
	File    string        `json:"file" yaml:"file"`
	Columns SensorColumns `json:"columns" yaml:"columns"`
}

// CIEConfig locates the CIE reference tables. Both are header-less.
type CIEConfig struct {
	XYZFile      string `json:"xyz_file" yaml:"xyz_file"`
	PhotopicFile string `json:"photopic_file" yaml:"photopic_file"`
}

// LED is a reference light from the sensor datasheet.
type LED struct {
	Name               string  `json:"name" yaml:"name"`
	Center             float64 `json:"center_nm" yaml:"center_nm"`
	HalfWidth          float64 `json:"half_width_nm" yaml:"half_width_nm"`
	CountsPerMicrowatt float64 `json:"counts_per_uw_cm2" yaml:"counts_per_uw_cm2"`
}

// Emission returns the Gaussian emission model of the LED.
func (l LED) Emission() colorimetry.Emission {
	return colorimetry.Emission{Center: l.Center, HalfWidth: l.HalfWidth}
}

// RGB holds one number per filtered channel.
type RGB struct {
	Red   float64 `json:"red" yaml:"red"`
	Green float64 `json:"green" yaml:"green"`
	Blue  float64 `json:"blue" yaml:"blue"`
}

// Get returns the value for ch; the clear channel has none.
func (v RGB) Get(ch Channel) float64 {
	switch ch {
	case Red:
		return v.Red
	case Green:
		return v.Green
	case Blue:
		return v.Blue
	}
	return 0
}

// Constants are the empirical conversion numbers the analyses scale by.
type Constants struct {
	// AvgResponseConversion turns a mean relative response into
	// counts/µW/cm² at 1× gain.
	AvgResponseConversion float64 `json:"avg_response_conversion" yaml:"avg_response_conversion"`
	// WidthFactors are the clear/channel FWHM ratios of a reference sensor.
	WidthFactors RGB `json:"width_factors" yaml:"width_factors"`
	// ClearConversion is counts/µW/cm² of the clear channel at the
	// reference gain and integration time.
	ClearConversion        float64 `json:"clear_conversion" yaml:"clear_conversion"`
	ReferenceGain          float64 `json:"reference_gain" yaml:"reference_gain"`
	ReferenceIntegrationMs float64 `json:"reference_integration_ms" yaml:"reference_integration_ms"`
	TargetGain             float64 `json:"target_gain" yaml:"target_gain"`
	TargetIntegrationMs    float64 `json:"target_integration_ms" yaml:"target_integration_ms"`
	// CountsPerIrradiance are counts per µW/cm² per channel at the target
	// gain and integration time.
	CountsPerIrradiance RGB `json:"counts_per_irradiance" yaml:"counts_per_irradiance"`
	// IrradiancePerLux is W/m² per lux of a daylight-like source.
	IrradiancePerLux float64 `json:"irradiance_per_lux" yaml:"irradiance_per_lux"`
}

// LEDResponse is the sensor's measured or simulated response to one LED in
// counts per µW/cm².
type LEDResponse struct {
	LED string `json:"led" yaml:"led"`

	ChannelValues `yaml:",inline"`
}

// Profile is the complete, read-only configuration of a calibration run.
type Profile struct {
	Name                string              `json:"name" yaml:"name"`
	Grid                GridSpec            `json:"grid" yaml:"grid"`
	Sensor              SensorConfig        `json:"sensor" yaml:"sensor"`
	CIE                 CIEConfig           `json:"cie" yaml:"cie"`
	LEDs                []LED               `json:"leds" yaml:"leds"`
	ClearConversionLEDs []LED               `json:"clear_conversion_leds" yaml:"clear_conversion_leds"`
	Constants           Constants           `json:"constants" yaml:"constants"`
	LEDResponses        []LEDResponse       `json:"led_responses" yaml:"led_responses"`
	TristimulusMatrix   colorimetry.Matrix3 `json:"tristimulus_matrix" yaml:"tristimulus_matrix"`
	ResponseMatrix      colorimetry.Matrix3 `json:"response_matrix" yaml:"response_matrix"`
	DeriveMatrix        bool                `json:"derive_matrix" yaml:"derive_matrix"`
	Gamuts              []colorimetry.Gamut `json:"gamuts" yaml:"gamuts"`
}

// DefaultProfile returns the TCS34725 calibration as published with the
// sensor datasheet's reference LEDs.
func DefaultProfile() Profile {
	return Profile{
		Name: "tcs34725",
		Grid: GridSpec{Start: 360, Stop: 830, Step: 1},
		Sensor: SensorConfig{
			File: "TCS34725_spectral_responsivity.csv",
			Columns: SensorColumns{
				Wavelength: "Wavelength",
				Clear:      "Clear",
				Red:        "Red",
				Green:      "Green",
				Blue:       "Blue",
			},
		},
		CIE: CIEConfig{
			XYZFile:      "CIE_xyz_1931_2deg.csv",
			PhotopicFile: "CIE_sle_photopic.csv",
		},
		LEDs: []LED{
			{Name: "blue", Center: 465, HalfWidth: 22, CountsPerMicrowatt: 16.6},
			{Name: "green", Center: 525, HalfWidth: 35, CountsPerMicrowatt: 20.0},
			{Name: "red", Center: 615, HalfWidth: 15, CountsPerMicrowatt: 23.4},
		},
		ClearConversionLEDs: []LED{
			{Name: "blue", Center: 465, HalfWidth: 11, CountsPerMicrowatt: 13.8},
			{Name: "green", Center: 525, HalfWidth: 17.5, CountsPerMicrowatt: 16.6},
			{Name: "red", Center: 615, HalfWidth: 7.5, CountsPerMicrowatt: 19.5},
		},
		Constants: Constants{
			AvgResponseConversion: 20.90876186340115,
			WidthFactors: RGB{
				Red:   3.9464285714285716,
				Green: 2.7974683544303796,
				Blue:  2.1666666666666665,
			},
			ClearConversion:        20.797879440786556,
			ReferenceGain:          16,
			ReferenceIntegrationMs: 24,
			TargetGain:             1,
			TargetIntegrationMs:    2.4,
			CountsPerIrradiance: RGB{
				Red:   0.030895152730118627,
				Green: 0.032402966993759885,
				Blue:  0.03695911040578352,
			},
			IrradiancePerLux: 0.0079,
		},
		LEDResponses: []LEDResponse{
			{LED: "blue", ChannelValues: ChannelValues{Clear: 16.6, Red: 0.13077824868528654, Green: 4.117461207346864, Blue: 13.524622639228118}},
			{LED: "green", ChannelValues: ChannelValues{Clear: 20.0, Red: 1.3764989327915196, Green: 13.986639904427568, Blue: 4.9541234880159815}},
			{LED: "red", ChannelValues: ChannelValues{Clear: 23.4, Red: 20.996322843190026, Green: 1.594786260065259, Blue: 2.1993912841509156}},
		},
		TristimulusMatrix: colorimetry.Matrix3{
			{0.2360, 0.0796, 1.4286},
			{0.1481, 0.7430, 0.0882},
			{0.9225, 0.4424, 0.0003},
		},
		ResponseMatrix: colorimetry.Matrix3{
			{0.00788, 0.24832, 0.81474},
			{0.06882, 0.69933, 0.24771},
			{0.89728, 0.06816, 0.09401},
		},
		Gamuts: colorimetry.ReferenceGamuts(),
	}
}

// Validate reports every field that would make an analysis meaningless.
func (p Profile) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if p.Grid.Step <= 0 {
		add("grid.step must be positive, got %g", p.Grid.Step)
	}
	if p.Grid.Stop <= p.Grid.Start {
		add("grid.stop (%g) must be above grid.start (%g)", p.Grid.Stop, p.Grid.Start)
	}

	if strings.TrimSpace(p.Sensor.File) == "" {
		add("sensor.file is required")
	}
	if p.Sensor.Columns.Wavelength == "" {
		add("sensor.columns.wavelength is required")
	}
	for _, ch := range AllChannels {
		if p.Sensor.Columns.Column(ch) == "" {
			add("sensor.columns.%s is required", ch)
		}
	}
	if p.CIE.XYZFile == "" {
		add("cie.xyz_file is required")
	}
	if p.CIE.PhotopicFile == "" {
		add("cie.photopic_file is required")
	}

	validateLEDs := func(field string, leds []LED) {
		if len(leds) == 0 {
			add("%s must list at least one LED", field)
		}
		seen := make(map[string]bool, len(leds))
		for i, l := range leds {
			if l.Name == "" {
				add("%s[%d].name is required", field, i)
			} else if seen[l.Name] {
				add("%s[%d]: duplicate LED %q", field, i, l.Name)
			}
			seen[l.Name] = true
			if l.HalfWidth <= 0 {
				add("%s[%d].half_width_nm must be positive", field, i)
			}
			if l.CountsPerMicrowatt <= 0 {
				add("%s[%d].counts_per_uw_cm2 must be positive", field, i)
			}
		}
	}
	validateLEDs("leds", p.LEDs)
	validateLEDs("clear_conversion_leds", p.ClearConversionLEDs)
	if p.DeriveMatrix && len(p.LEDs) != 3 {
		add("derive_matrix needs exactly 3 leds, got %d", len(p.LEDs))
	}

	c := p.Constants
	if !finite(c.AvgResponseConversion, c.ClearConversion, c.ReferenceGain, c.ReferenceIntegrationMs,
		c.TargetGain, c.TargetIntegrationMs, c.IrradiancePerLux,
		c.WidthFactors.Red, c.WidthFactors.Green, c.WidthFactors.Blue,
		c.CountsPerIrradiance.Red, c.CountsPerIrradiance.Green, c.CountsPerIrradiance.Blue) {
		add("constants must be finite numbers")
	}
	for _, ch := range ColorChannels {
		if c.WidthFactors.Get(ch) <= 0 {
			add("constants.width_factors.%s must be positive", ch)
		}
		if c.CountsPerIrradiance.Get(ch) <= 0 {
			add("constants.counts_per_irradiance.%s must be positive", ch)
		}
	}
	if c.ReferenceGain <= 0 || c.TargetGain <= 0 {
		add("constants: gains must be positive")
	}
	if c.ReferenceIntegrationMs <= 0 || c.TargetIntegrationMs <= 0 {
		add("constants: integration times must be positive")
	}
	if c.IrradiancePerLux <= 0 {
		add("constants.irradiance_per_lux must be positive")
	}

	for i, r := range p.LEDResponses {
		if r.LED == "" {
			add("led_responses[%d].led is required", i)
		}
	}

	return errors.Join(errs...)
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
