package sim_test

import (
	"context"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/kav-sh/orbitals/internal/orbit"
	"github.com/kav-sh/orbitals/internal/sim"
)

func distanceToSun(c *orbit.Cluster, id int64) float64 {
	return r3.Norm(r3.Sub(c.Find(id).Pos, c.Sun().Pos))
}

var _ = Describe("orbital convergence", func() {
	var c *orbit.Cluster

	BeforeEach(func() {
		// Two planets whose attributes exactly match the sun's
		// preferences: compatibility 1, desired radius 1.
		traits := []float64{70, 40, 90}
		descs := []orbit.Descriptor{
			{Name: "sol", Sun: true, Attributes: traits, Preferences: traits},
			{Name: "vega", Position: [3]float64{3, 0, 0}, Attributes: traits},
			{Name: "lyra", Position: [3]float64{0, 0, -3}, Attributes: traits},
		}
		var err error
		c, err = orbit.NewCluster(nil, 3, descs, rand.New(rand.NewSource(21)))
		Expect(err).NotTo(HaveOccurred())
	})

	It("settles perfectly matched planets near radius 1", func() {
		r := sim.New(c)
		result, err := r.Run(context.Background(), sim.RunConfig{
			Ticks: 4000, TickMs: 1000.0 / 60, SampleEvery: 100, ValidateState: true,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Errors).To(BeEmpty())

		for _, id := range []int64{2, 3} {
			Expect(distanceToSun(c, id)).To(BeNumerically("~", 1.0, 0.35))
			Expect(r3.Norm(c.Find(id).Vel)).To(BeNumerically("<", 0.05))
		}
	})

	It("never diverges", func() {
		r := sim.New(c)
		result, err := r.Run(context.Background(), sim.RunConfig{
			Ticks: 4000, TickMs: 1000.0 / 60, SampleEvery: 50, ValidateState: true,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Errors).To(BeEmpty())

		for _, snap := range result.Snapshots {
			for _, b := range snap.Bodies {
				Expect(r3.Norm(b.Position)).To(BeNumerically("<", 10.0))
			}
		}
	})
})

var _ = Describe("sun handoff", func() {
	var c *orbit.Cluster

	BeforeEach(func() {
		traits := []float64{50, 50}
		descs := []orbit.Descriptor{
			{Name: "sol", Sun: true, Attributes: traits, Preferences: traits},
			{Name: "vega", Position: [3]float64{2, 0, 0}, Attributes: traits, Preferences: traits},
		}
		var err error
		c, err = orbit.NewCluster(nil, 2, descs, rand.New(rand.NewSource(13)))
		Expect(err).NotTo(HaveOccurred())
	})

	It("flips roles immediately but swaps positions over the full duration", func() {
		sunPos := c.Find(1).Pos
		planetPos := c.Find(2).Pos

		c.SetAsSun(2, 0)

		// Logical roles have already changed.
		Expect(c.Sun().ID).To(Equal(int64(2)))
		// Visually nothing has moved yet.
		Expect(c.Find(1).Pos).To(Equal(sunPos))
		Expect(c.Find(2).Pos).To(Equal(planetPos))

		// Midway through the 5000 ms window both bodies are still in
		// transit.
		r := sim.New(c)
		err := r.RunWithCallback(context.Background(), sim.RunConfig{
			Ticks: 125, TickMs: 20, SampleEvery: 1,
		}, func(tick int, nowMs float64) bool { return true })
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Find(1).Swapping()).To(BeTrue())
		Expect(c.Find(2).Swapping()).To(BeTrue())

		// After the window closes positions have exactly exchanged:
		// the demoted sun sits where the planet was, the new sun sits
		// at the anchor.
		for i := 125; i < 260; i++ {
			c.Tick(float64(i)*20, 20)
		}
		Expect(c.Find(2).Swapping()).To(BeFalse())
		Expect(c.Find(2).Pos).To(Equal(r3.Vec{}))
		Expect(c.Find(1).Pos.X).To(BeNumerically("~", planetPos.X, 0.2))
	})

	It("keeps exactly one sun through repeated handoffs", func() {
		r := sim.New(c)
		r.Schedule(
			sim.Op{Tick: 10, Kind: sim.OpSetSun, BodyID: 2},
			sim.Op{Tick: 50, Kind: sim.OpSetSun, BodyID: 1},
			sim.Op{Tick: 90, Kind: sim.OpSetSun, BodyID: 2},
		)
		_, err := r.Run(context.Background(), sim.RunConfig{
			Ticks: 200, TickMs: 20, SampleEvery: 10, ValidateState: true,
		})
		Expect(err).NotTo(HaveOccurred())

		suns := 0
		for _, b := range c.Bodies() {
			if b.Role == orbit.RoleSun {
				suns++
			}
		}
		Expect(suns).To(Equal(1))
		Expect(c.Sun().ID).To(Equal(int64(2)))
	})
})

var _ = Describe("membership", func() {
	It("grows by one on add and refuses to remove the sun", func() {
		traits := []float64{60, 60}
		c, err := orbit.NewCluster(nil, 2, []orbit.Descriptor{
			{Name: "sol", Sun: true, Attributes: traits, Preferences: traits},
		}, rand.New(rand.NewSource(3)))
		Expect(err).NotTo(HaveOccurred())

		b, err := c.AddBody(orbit.RandomDescriptor(rand.New(rand.NewSource(4)), 2))
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Len()).To(Equal(2))
		Expect(b.Role).To(Equal(orbit.RolePlanet))

		Expect(c.RemoveBody(c.Sun().ID)).To(BeNil())
		Expect(c.Len()).To(Equal(2))
		Expect(c.Sun()).NotTo(BeNil())
	})
})
