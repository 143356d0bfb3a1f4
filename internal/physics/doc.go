// Package physics provides point-mass mechanics for the world simulation.
//
//   - [Particle]: punctual mass integrated with explicit Euler
//   - [Force]: contributor to a particle's net force
//   - [CentralForce]: inverse-distance attraction towards a fixed center
//   - [ConstantForce]: uniform force field
//
// # Integration
//
// [Particle.Update] performs one fixed step, with no sub-stepping:
//
//	a = f / m
//	v += a * dt
//	r += v * dt
//
// The stored acceleration is kept for inspection and plotting only; it is
// recomputed from the forces on every tick.
package physics
