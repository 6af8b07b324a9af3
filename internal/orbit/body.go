package orbit

import "gonum.org/v1/gonum/spatial/r3"

// Role distinguishes the two genuinely different update algorithms a body
// can follow: suns idle, planets integrate forces.
type Role uint8

const (
	RolePlanet Role = iota
	RoleSun
)

func (r Role) String() string {
	if r == RoleSun {
		return "sun"
	}
	return "planet"
}

// Swap is a timed position transition played during a sun handoff. While
// set, the body's position is a pure clamped-linear interpolation between
// Start and End and force integration is suspended; on completion velocity
// is zeroed and the swap cleared.
type Swap struct {
	Start      r3.Vec
	End        r3.Vec
	StartMs    float64
	DurationMs float64
}

// progress maps nowMs onto [0,1]. A non-positive duration counts as done.
func (s *Swap) progress(nowMs float64) float64 {
	if s.DurationMs <= 0 {
		return 1
	}
	p := (nowMs - s.StartMs) / s.DurationMs
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Body is one simulated entity: a person orbiting the sun, or the sun
// itself. Kinematic state is owned exclusively by the body; it is mutated
// only by its own Tick or by cluster operations (handoff, edits).
type Body struct {
	ID   int64
	Name string
	// Color is carried for the presentation layer, the physics never
	// reads it.
	Color string

	Role Role
	Pos  r3.Vec
	Vel  r3.Vec

	// Attributes are the body's own traits in [AttrMin, AttrMax].
	// Preferences describe the desired counterpart and are only
	// meaningful while the body is sun.
	Attributes  []float64
	Preferences []float64

	// Swap is non-nil only during a handoff transition.
	Swap *Swap
}

// Tick advances the body one frame. A swapping body only plays its
// animation; a sun holds still; a planet integrates the force model with a
// fixed per-call increment (no delta-time scaling, the frame is the time
// base).
func (b *Body) Tick(nowMs float64, bodies []*Body, cfg *SimulationConfig) {
	if b.Swap != nil {
		b.advanceSwap(nowMs)
		return
	}

	switch b.Role {
	case RoleSun:
		// Kinematically fixed. The visual pulse lives in the
		// presentation layer.
	case RolePlanet:
		f := TotalForce(b, bodies, cfg)
		b.Vel = r3.Add(b.Vel, f)
		b.Vel = clampNorm(b.Vel, cfg.MaxVelocity)
		b.Vel = r3.Scale(cfg.VelocityDamping, b.Vel)
		b.Pos = r3.Add(b.Pos, b.Vel)
	}
}

func (b *Body) advanceSwap(nowMs float64) {
	p := b.Swap.progress(nowMs)
	if p >= 1 {
		b.Pos = b.Swap.End
		b.Vel = r3.Vec{}
		b.Swap = nil
		return
	}
	b.Pos = lerp(b.Swap.Start, b.Swap.End, p)
}

// Swapping reports whether a handoff transition is in flight.
func (b *Body) Swapping() bool { return b.Swap != nil }

// Valid reports whether the body's kinematic state is free of NaN/Inf.
func (b *Body) Valid() bool { return finite(b.Pos) && finite(b.Vel) }
