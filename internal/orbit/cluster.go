package orbit

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"
)

// sunAnchor is where an incoming sun animates to during a handoff.
var sunAnchor = r3.Vec{}

// Cluster owns the live body collection and the shared simulation config.
// Exactly one body should hold the sun role after setup and after any
// handoff completes; the invariant is protected by the operations here, not
// enforced at the data level.
type Cluster struct {
	cfg    *SimulationConfig
	bodies []*Body
	rng    *rand.Rand
	dims   int
	nextID int64
}

// NewCluster builds a cluster from an initial descriptor list. Every
// provided trait vector must have dims components; missing vectors are
// filled from rng. The random source is also used later for edit impulses
// and random additions, so a seeded rng makes whole sessions reproducible.
func NewCluster(cfg *SimulationConfig, dims int, descs []Descriptor, rng *rand.Rand) (*Cluster, error) {
	if cfg == nil {
		cfg = DefaultSimulationConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if dims <= 0 {
		return nil, fmt.Errorf("%w: trait dimension %d must be positive", ErrInvalidConfig, dims)
	}

	c := &Cluster{cfg: cfg, rng: rng, dims: dims, nextID: 1}
	for _, d := range descs {
		if _, err := c.insert(d); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Cluster) insert(d Descriptor) (*Body, error) {
	if d.Attributes != nil && len(d.Attributes) != c.dims {
		return nil, fmt.Errorf("%w: %q has %d attributes, want %d", ErrDimensionMismatch, d.Name, len(d.Attributes), c.dims)
	}
	if d.Preferences != nil && len(d.Preferences) != c.dims {
		return nil, fmt.Errorf("%w: %q has %d preferences, want %d", ErrDimensionMismatch, d.Name, len(d.Preferences), c.dims)
	}

	if d.ID == 0 {
		d.ID = c.nextID
	}
	if d.ID >= c.nextID {
		c.nextID = d.ID + 1
	}

	b := newBody(d, c.rng, c.dims)
	c.bodies = append(c.bodies, b)
	return b, nil
}

// Bodies returns the live collection. The slice is the cluster's own; the
// presentation layer reads it between ticks and must not reorder it.
func (c *Cluster) Bodies() []*Body { return c.bodies }

// Len reports the live body count.
func (c *Cluster) Len() int { return len(c.bodies) }

// Dims reports the shared trait vector dimension.
func (c *Cluster) Dims() int { return c.dims }

// Config returns the shared simulation tunables.
func (c *Cluster) Config() *SimulationConfig { return c.cfg }

// Sun returns the current sun, or nil when none exists; a sunless cluster
// still ticks, planets just feel no sun force.
func (c *Cluster) Sun() *Body {
	for _, b := range c.bodies {
		if b.Role == RoleSun {
			return b
		}
	}
	return nil
}

// Find returns the live body with the given id, or nil.
func (c *Cluster) Find(id int64) *Body {
	for _, b := range c.bodies {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// AddBody constructs a body from the descriptor and appends it to the live
// collection. The new body is always a planet regardless of the descriptor's
// Sun flag; promotion goes through SetAsSun. Ids are caller discipline, no
// uniqueness check beyond auto-assignment of zero ids.
func (c *Cluster) AddBody(d Descriptor) (*Body, error) {
	d.Sun = false
	return c.insert(d)
}

// RemoveBody takes a body out of the live collection and returns it for the
// caller to archive. Removing the sun is silently refused (a cluster must
// not be left sunless) and returns nil, as does an unknown id.
func (c *Cluster) RemoveBody(id int64) *Body {
	for i, b := range c.bodies {
		if b.ID != id {
			continue
		}
		if b.Role == RoleSun {
			return nil
		}
		c.bodies = append(c.bodies[:i], c.bodies[i+1:]...)
		return b
	}
	return nil
}

// SetAsSun promotes the named body to sun, starting the position swap
// animation on both it and the outgoing sun. The role flip is immediate, so
// force computation for every other body changes this tick; only the visual
// position lags, converging over SwapDurationMs. A handoff mid-animation
// overwrites the previous swap, discarding its progress. No-op when the
// target is missing or already the sun.
func (c *Cluster) SetAsSun(id int64, nowMs float64) {
	newSun := c.Find(id)
	oldSun := c.Sun()
	if newSun == nil || oldSun == nil || newSun == oldSun {
		return
	}

	oldPos := oldSun.Pos
	newPos := newSun.Pos

	oldSun.Swap = &Swap{Start: oldPos, End: newPos, StartMs: nowMs, DurationMs: c.cfg.SwapDurationMs}
	newSun.Swap = &Swap{Start: newPos, End: sunAnchor, StartMs: nowMs, DurationMs: c.cfg.SwapDurationMs}

	oldSun.Role = RolePlanet
	newSun.Role = RoleSun
}

// SetAttribute edits one component of a body's own traits, clamping to
// [AttrMin, AttrMax] at this boundary so the compatibility math downstream
// stays in [0,1]. Planets get a small random velocity kick so the edit is
// visible in the simulation; suns carry no physics and get none.
func (c *Cluster) SetAttribute(id int64, index int, value float64) error {
	b := c.Find(id)
	if b == nil {
		return fmt.Errorf("%w: id %d", ErrBodyNotFound, id)
	}
	if index < 0 || index >= len(b.Attributes) {
		return fmt.Errorf("%w: attribute %d of %d", ErrIndexOutOfRange, index, len(b.Attributes))
	}
	b.Attributes[index] = clampTrait(value)
	c.nudge(b)
	return nil
}

// SetPreference edits one component of a body's preference vector; only
// meaningful on the sun but applied to whichever body is named.
func (c *Cluster) SetPreference(id int64, index int, value float64) error {
	b := c.Find(id)
	if b == nil {
		return fmt.Errorf("%w: id %d", ErrBodyNotFound, id)
	}
	if index < 0 || index >= len(b.Preferences) {
		return fmt.Errorf("%w: preference %d of %d", ErrIndexOutOfRange, index, len(b.Preferences))
	}
	b.Preferences[index] = clampTrait(value)
	if b.Role == RoleSun {
		// The edit shifts every planet's desired radius instead; kick
		// nothing, the whole cluster reacts on the next tick.
		return nil
	}
	c.nudge(b)
	return nil
}

func (c *Cluster) nudge(b *Body) {
	if b.Role != RolePlanet || c.rng == nil || c.cfg.EditImpulse == 0 {
		return
	}
	b.Vel = r3.Add(b.Vel, r3.Scale(c.cfg.EditImpulse, randomUnit(c.rng)))
}

// Tick advances every live body one frame. The pass is single and in
// place: bodies later in slice order see the already-updated positions of
// earlier ones within the same tick. This Gauss-Seidel-style ordering is a
// property of the dynamics, kept deliberately.
func (c *Cluster) Tick(nowMs, deltaMs float64) {
	_ = deltaMs // physics advances a fixed per-tick increment; see Body.Tick
	for _, b := range c.bodies {
		b.Tick(nowMs, c.bodies, c.cfg)
	}
}

// Valid reports whether every live body's kinematic state is finite.
func (c *Cluster) Valid() bool {
	for _, b := range c.bodies {
		if !b.Valid() {
			return false
		}
	}
	return true
}

func clampTrait(v float64) float64 {
	if v < AttrMin {
		return AttrMin
	}
	if v > AttrMax {
		return AttrMax
	}
	return v
}
