// Package colorimetry holds the CIE 1931 side of the calibration: LED
// emission models, tristimulus integration, chromaticity coordinates,
// RGB to XYZ conversion matrices and gamut triangles.
package colorimetry
