// Package metrics provides scalar summaries of a run. Every metric is
// reset at the start of a run, observes the world before the first step
// and after every step, and reports a single value at the end.
package metrics
