// Package analysis characterizes recorded telemetry series.
//
//   - [PowerSpectrum]: FFT magnitude of a series zero-padded to a power of two
//   - [DominantFrequency]: strongest non-DC frequency of a sampled series
//   - [PhasePortrait]: paired series plotted as ASCII
//   - [PoincareSection]: samples taken at upward threshold crossings
//
// A particle orbiting a central force has a dominant frequency equal to its
// orbital frequency:
//
//	f, err := analysis.DominantFrequency(rec.Series(id, "x"), dt)
package analysis
