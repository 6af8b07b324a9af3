// Package metrics provides run-level observables for cluster simulations.
// Each metric satisfies the sim.Metric interface: observed once per tick,
// reduced to one number at the end of a run.
package metrics

import (
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"

	"github.com/kav-sh/orbitals/internal/orbit"
)

// RadiusError averages |distance - desired distance| across all planets and
// ticks. It trends toward zero as the cluster settles into its
// compatibility-determined orbits.
type RadiusError struct {
	samples int
	total   float64
}

func NewRadiusError() *RadiusError { return &RadiusError{} }

func (m *RadiusError) Name() string { return "radius_error" }

func (m *RadiusError) Observe(c *orbit.Cluster, tick int, nowMs float64) {
	sun := c.Sun()
	if sun == nil {
		return
	}
	for _, b := range c.Bodies() {
		if b.Role != orbit.RolePlanet || b.Swapping() {
			continue
		}
		d := r3.Norm(r3.Sub(b.Pos, sun.Pos))
		err := d - orbit.DesiredDistance(sun, b)
		if err < 0 {
			err = -err
		}
		m.total += err
		m.samples++
	}
}

func (m *RadiusError) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *RadiusError) Reset() {
	m.samples = 0
	m.total = 0
}

// MeanCompatibility averages each planet's preferred compatibility with the
// sun over the run. Constant unless attributes or the sun change mid-run.
type MeanCompatibility struct {
	samples int
	total   float64
}

func NewMeanCompatibility() *MeanCompatibility { return &MeanCompatibility{} }

func (m *MeanCompatibility) Name() string { return "mean_compatibility" }

func (m *MeanCompatibility) Observe(c *orbit.Cluster, tick int, nowMs float64) {
	sun := c.Sun()
	if sun == nil {
		return
	}
	for _, b := range c.Bodies() {
		if b.Role != orbit.RolePlanet {
			continue
		}
		m.total += orbit.PreferredCompatibility(sun, b)
		m.samples++
	}
}

func (m *MeanCompatibility) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanCompatibility) Reset() {
	m.samples = 0
	m.total = 0
}

// KineticEnergy averages 0.5|v|² per planet per tick; a proxy for how
// agitated the cluster is. Settled clusters sit near the damping floor.
type KineticEnergy struct {
	samples int
	total   float64
}

func NewKineticEnergy() *KineticEnergy { return &KineticEnergy{} }

func (m *KineticEnergy) Name() string { return "kinetic_energy" }

func (m *KineticEnergy) Observe(c *orbit.Cluster, tick int, nowMs float64) {
	for _, b := range c.Bodies() {
		if b.Role != orbit.RolePlanet {
			continue
		}
		v := r3.Norm(b.Vel)
		m.total += 0.5 * v * v
		m.samples++
	}
}

func (m *KineticEnergy) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *KineticEnergy) Reset() {
	m.samples = 0
	m.total = 0
}

// Spread tracks the per-tick standard deviation of planet orbital radii,
// averaged over the run: how ring-like versus scattered the cluster is.
type Spread struct {
	ticks int
	total float64
	radii []float64
}

func NewSpread() *Spread { return &Spread{} }

func (m *Spread) Name() string { return "radius_spread" }

func (m *Spread) Observe(c *orbit.Cluster, tick int, nowMs float64) {
	sun := c.Sun()
	if sun == nil {
		return
	}
	m.radii = m.radii[:0]
	for _, b := range c.Bodies() {
		if b.Role != orbit.RolePlanet {
			continue
		}
		m.radii = append(m.radii, r3.Norm(r3.Sub(b.Pos, sun.Pos)))
	}
	if len(m.radii) < 2 {
		return
	}
	m.total += stat.StdDev(m.radii, nil)
	m.ticks++
}

func (m *Spread) Value() float64 {
	if m.ticks == 0 {
		return 0
	}
	return m.total / float64(m.ticks)
}

func (m *Spread) Reset() {
	m.ticks = 0
	m.total = 0
	m.radii = m.radii[:0]
}
