package orbit

import "fmt"

// Attribute and preference components live on this scale. The compatibility
// normalization divides by AttrMax, so edits must stay inside these bounds.
const (
	AttrMin = 0.0
	AttrMax = 100.0
)

const (
	DefaultSunAttraction        = 0.002
	DefaultSunRepulsion         = 0.01
	DefaultPeerAttraction       = 0.0015
	DefaultPeerAttractionOffset = 0.0014
	DefaultPeerRepulsion        = 0.01
	DefaultRepulsionThreshold   = 1.2
	DefaultForceNudge           = 0.001
	DefaultMaxVelocity          = 0.1
	DefaultVelocityDamping      = 0.92
	DefaultSwapDurationMs       = 5000.0
	DefaultEditImpulse          = 0.05
)

// SimulationConfig holds the force and integration tunables shared by every
// body in a cluster. Treat values as immutable once a cluster is running;
// swap in a fresh config instead of mutating fields mid-flight.
type SimulationConfig struct {
	// SunAttraction scales the spring pull toward the desired orbital
	// radius when a planet sits beyond it.
	SunAttraction float64

	// SunRepulsion scales the push back out when a planet sits inside its
	// desired radius. Despite the name this is spring correction toward
	// the target distance, not true repulsion away from the sun.
	SunRepulsion float64

	// PeerAttraction scales attraction between similar planets. The offset
	// is subtracted from every pair term, so low-compatibility pairs go
	// net-negative and drift apart.
	PeerAttraction       float64
	PeerAttractionOffset float64

	// PeerRepulsion is a short-range separation term active only within
	// RepulsionThreshold, strongest for dissimilar neighbors.
	PeerRepulsion      float64
	RepulsionThreshold float64

	// ForceNudge is a tiny always-on additive keeping forces from reaching
	// exact zero and stalling at branch boundaries.
	ForceNudge float64

	// MaxVelocity caps speed with a direction-preserving rescale.
	MaxVelocity float64

	// VelocityDamping in (0,1] multiplies both the summed force and the
	// post-clamp velocity each tick. The double application is deliberate
	// and load-bearing for the observed dynamics.
	VelocityDamping float64

	// SwapDurationMs is the wall-clock length of a sun handoff animation.
	SwapDurationMs float64

	// EditImpulse is the speed of the random velocity kick injected when
	// an attribute or preference is edited, so the simulation visibly
	// reacts to manual changes.
	EditImpulse float64
}

func DefaultSimulationConfig() *SimulationConfig {
	return &SimulationConfig{
		SunAttraction:        DefaultSunAttraction,
		SunRepulsion:         DefaultSunRepulsion,
		PeerAttraction:       DefaultPeerAttraction,
		PeerAttractionOffset: DefaultPeerAttractionOffset,
		PeerRepulsion:        DefaultPeerRepulsion,
		RepulsionThreshold:   DefaultRepulsionThreshold,
		ForceNudge:           DefaultForceNudge,
		MaxVelocity:          DefaultMaxVelocity,
		VelocityDamping:      DefaultVelocityDamping,
		SwapDurationMs:       DefaultSwapDurationMs,
		EditImpulse:          DefaultEditImpulse,
	}
}

func (c *SimulationConfig) Validate() error {
	if c.VelocityDamping <= 0 || c.VelocityDamping > 1 {
		return fmt.Errorf("%w: velocity damping %f not in (0,1]", ErrInvalidConfig, c.VelocityDamping)
	}
	if c.MaxVelocity <= 0 {
		return fmt.Errorf("%w: max velocity %f must be positive", ErrInvalidConfig, c.MaxVelocity)
	}
	if c.RepulsionThreshold < 0 {
		return fmt.Errorf("%w: repulsion threshold %f must be non-negative", ErrInvalidConfig, c.RepulsionThreshold)
	}
	if c.SwapDurationMs <= 0 {
		return fmt.Errorf("%w: swap duration %f must be positive", ErrInvalidConfig, c.SwapDurationMs)
	}
	return nil
}
