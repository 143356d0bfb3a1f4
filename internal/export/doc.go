// Package export writes runs and telemetry to files: CSV and JSON of the
// recorded series, SVG of a world snapshot, a trajectory or a terminal
// canvas. Every writer takes an io.Writer or returns a string; opening
// files is left to the caller.
package export
