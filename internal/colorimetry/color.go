package colorimetry

import (
	"github.com/lucasb-eyer/go-colorful"
)

// DisplayColor renders a chromaticity as an sRGB colour at full luminance,
// clamped into the displayable range. It is only meant for chart markers.
func DisplayColor(c Chromaticity) colorful.Color {
	return colorful.Xyy(c.X, c.Y, 1.0).Clamped()
}
