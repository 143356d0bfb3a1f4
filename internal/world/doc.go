// Package world owns the simulated rectangle and advances it in time.
//
// A [World] holds particles, the forces acting on them and the plane
// mirrors that reflect the rays each particle emits. One call to
// [World.Update] runs a full step:
//
//  1. the clock advances by dt
//  2. the net force on every particle is computed from the pre-step state
//  3. every particle is integrated with explicit Euler and the boundary
//     policy is applied
//  4. rays are re-emitted from every surviving particle
//
// The world is not safe for concurrent mutation. Readers that observe it
// between two Update calls see a consistent snapshot.
package world
