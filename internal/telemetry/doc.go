// Package telemetry records bounded time series of kinematic quantities for
// every entity of a world, measured relative to a chosen observer.
//
// The world itself is an entity: it sits at the center of its rectangle,
// at rest, and its series hold the total kinetic energy and momentum of
// all particles as seen by the observer. Each particle has series for its
// position, velocity and acceleration relative to the observer.
package telemetry
