// Package spectral resamples tabulated spectral curves onto a shared wavelength
// grid and extracts the quantities every calibration step needs from them:
// the half-maximum band of a response and weighted integrals between curves.
//
// Every function is pure. Inputs are validated up front and failures are
// reported with the sentinel errors in errors.go so callers can tell malformed
// data, degenerate numerics and out-of-range requests apart.
package spectral
