// Package orbit implements the force-directed affinity simulation core.
//
// A [Cluster] owns a set of [Body] values orbiting a single sun. Planets are
// pulled toward a compatibility-derived orbital radius around the sun while
// attracting similar peers and repelling dissimilar ones at close range:
//
//   - [PreferredCompatibility]: sun preference vs. body attributes, in [0,1]
//   - [AttributeCompatibility]: body vs. body attribute distance, in [0,1]
//   - [TotalForce]: sun spring + peer attraction + peer repulsion, damped
//
// The sun is kinematically fixed and receives no forces. Promoting a new sun
// via [Cluster.SetAsSun] flips roles immediately and starts a timed position
// swap on both bodies; while a swap is active a body's position is a pure
// interpolation and force integration is suspended.
//
// # Time Base
//
// All updates take explicit timestamps (nowMs) rather than reading a clock,
// so runs are deterministic under test. Force integration advances by a
// fixed per-tick increment with no delta-time scaling; only swap animations
// consume the timestamp.
//
// # Thread Safety
//
// Cluster instances are NOT thread-safe. The whole body set is mutated in
// place during a single synchronous Tick pass driven by one goroutine.
package orbit
