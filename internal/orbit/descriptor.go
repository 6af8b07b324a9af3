package orbit

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"
)

// Descriptor is the construction input for one body. Zero ID means the
// cluster assigns one; nil Preferences are filled with a random vector so
// any body can later be promoted to sun.
type Descriptor struct {
	ID          int64
	Name        string
	Color       string
	Sun         bool
	Position    [3]float64
	Attributes  []float64
	Preferences []float64
}

var palette = []string{
	"#f4a259", "#5b8e7d", "#bc4b51", "#8cb369", "#f4e285",
	"#6d9dc5", "#b185a7", "#e07a5f", "#81b29a", "#f2cc8f",
}

// RandomDescriptor generates a fully random planet descriptor with dims
// trait components in [AttrMin, AttrMax] and a starting position on a shell
// between radius 2 and 5. The random source is injected so seeded runs are
// reproducible.
func RandomDescriptor(rng *rand.Rand, dims int) Descriptor {
	attrs := make([]float64, dims)
	prefs := make([]float64, dims)
	for i := 0; i < dims; i++ {
		attrs[i] = AttrMin + rng.Float64()*(AttrMax-AttrMin)
		prefs[i] = AttrMin + rng.Float64()*(AttrMax-AttrMin)
	}

	dir := randomUnit(rng)
	radius := 2 + rng.Float64()*3
	pos := r3.Scale(radius, dir)

	return Descriptor{
		Name:        fmt.Sprintf("wanderer-%03d", rng.Intn(1000)),
		Color:       palette[rng.Intn(len(palette))],
		Position:    [3]float64{pos.X, pos.Y, pos.Z},
		Attributes:  attrs,
		Preferences: prefs,
	}
}

// randomUnit samples a uniformly distributed direction on the unit sphere.
func randomUnit(rng *rand.Rand) r3.Vec {
	z := 2*rng.Float64() - 1
	phi := 2 * math.Pi * rng.Float64()
	r := math.Sqrt(1 - z*z)
	return r3.Vec{X: r * math.Cos(phi), Y: r * math.Sin(phi), Z: z}
}

func newBody(d Descriptor, rng *rand.Rand, dims int) *Body {
	attrs := d.Attributes
	if attrs == nil {
		attrs = randomTraits(rng, dims)
	}
	prefs := d.Preferences
	if prefs == nil {
		prefs = randomTraits(rng, dims)
	}

	role := RolePlanet
	if d.Sun {
		role = RoleSun
	}

	return &Body{
		ID:          d.ID,
		Name:        d.Name,
		Color:       d.Color,
		Role:        role,
		Pos:         r3.Vec{X: d.Position[0], Y: d.Position[1], Z: d.Position[2]},
		Attributes:  attrs,
		Preferences: prefs,
	}
}

func randomTraits(rng *rand.Rand, dims int) []float64 {
	t := make([]float64, dims)
	for i := range t {
		t[i] = AttrMin + rng.Float64()*(AttrMax-AttrMin)
	}
	return t
}
