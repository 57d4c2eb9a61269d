// Package calibration derives the TCS34725 conversion factors from the
// sensor's spectral responsivity and the CIE reference tables.
//
// Every analysis is a method on Pipeline, which is driven by a read-only
// Profile. The analyses share the same resampling, half-maximum band and
// integration primitives from the spectral package, with the edge policy
// chosen per analysis:
//
//   - width factors, average response, irradiance, clear conversion and
//     channel counts resample the sensor on its own inclusive 1 nm grid
//     and reject anything outside it;
//   - LED tristimulus interpolates the CIE functions linearly and treats
//     missing wavelengths as zero;
//   - the gamut analysis marks sensor wavelengths outside the export as
//     no-data;
//   - the lux analysis zero-fills outside the shared sensor/V(λ) range.
package calibration
