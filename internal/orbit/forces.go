package orbit

import "gonum.org/v1/gonum/spatial/r3"

// DesiredDistance is the compatibility-derived orbital radius the sun force
// pulls a planet toward: 1 for a perfect match, up to 4 for a total mismatch.
func DesiredDistance(sun, body *Body) float64 {
	return 1 + (1-PreferredCompatibility(sun, body))*3
}

// TotalForce computes the damped force on planet b given the full live body
// list: sun spring force plus peer repulsion plus peer attraction, scaled by
// the velocity damping factor. The caller integrates the result; the sun
// itself never receives forces.
func TotalForce(b *Body, bodies []*Body, cfg *SimulationConfig) r3.Vec {
	var sun *Body
	for _, o := range bodies {
		if o.Role == RoleSun {
			sun = o
			break
		}
	}

	f := peerForces(b, bodies, cfg)
	if sun != nil && sun != b {
		f = r3.Add(f, sunForce(b, sun, cfg))
	}
	return r3.Scale(cfg.VelocityDamping, f)
}

// sunForce is a damped spring holding b at its desired distance from the
// sun. Inside the target radius the push back out scales with compatibility;
// the closer the match, the harder the proximity correction. Beyond it the
// pull back in carries a small always-on nudge so the force never reaches
// exact zero at the boundary.
func sunForce(b, sun *Body, cfg *SimulationConfig) r3.Vec {
	toSun, ok := unitBetween(b.Pos, sun.Pos)
	if !ok {
		return r3.Vec{}
	}

	compat := PreferredCompatibility(sun, b)
	desired := DesiredDistance(sun, b)
	d := r3.Norm(r3.Sub(sun.Pos, b.Pos))

	var mag float64
	if d < desired {
		mag = -cfg.SunRepulsion * (desired - d) * compat
	} else {
		mag = 2*cfg.SunAttraction*(d-desired)*compat + cfg.ForceNudge
	}
	return r3.Scale(mag, toSun)
}

// peerForces accumulates attraction and repulsion from every other planet.
// Attraction is offset so incompatible pairs drift apart even from the
// attraction term; repulsion only fires inside the threshold radius and
// grows with dissimilarity.
func peerForces(b *Body, bodies []*Body, cfg *SimulationConfig) r3.Vec {
	var total r3.Vec
	for _, o := range bodies {
		if o == b || o.Role == RoleSun {
			continue
		}
		toPeer, ok := unitBetween(b.Pos, o.Pos)
		if !ok {
			continue
		}

		compat := AttributeCompatibility(b, o)
		attract := cfg.PeerAttraction*compat - cfg.PeerAttractionOffset
		total = r3.Add(total, r3.Scale(attract, toPeer))

		d := r3.Norm(r3.Sub(o.Pos, b.Pos))
		if d < cfg.RepulsionThreshold {
			repel := cfg.PeerRepulsion*(cfg.RepulsionThreshold-d)*(1-compat) + cfg.ForceNudge
			total = r3.Add(total, r3.Scale(-repel, toPeer))
		}
	}
	return total
}
