package sim

import "github.com/kav-sh/orbitals/internal/orbit"

// OpKind enumerates the external operations a run script can replay against
// the cluster: everything the UI boundary can do.
type OpKind int

const (
	OpSetSun OpKind = iota
	OpAddBody
	OpRemoveBody
	OpSetAttribute
	OpSetPreference
)

// Op is one scheduled operation. Descriptor is only read for OpAddBody;
// Index and Value only for the edit kinds.
type Op struct {
	Tick       int
	Kind       OpKind
	BodyID     int64
	Index      int
	Value      float64
	Descriptor *orbit.Descriptor
}

// Schedule is an unordered script of operations keyed by tick. Scripts are
// small; a linear scan per tick beats keeping them sorted.
type Schedule []Op

func (s Schedule) applyAt(c *orbit.Cluster, tick int, nowMs float64) {
	for _, op := range s {
		if op.Tick != tick {
			continue
		}
		switch op.Kind {
		case OpSetSun:
			c.SetAsSun(op.BodyID, nowMs)
		case OpAddBody:
			if op.Descriptor != nil {
				// Scripted adds share the cluster invariants with
				// interactive ones; errors mean a malformed script
				// and are dropped like any other invalid input.
				_, _ = c.AddBody(*op.Descriptor)
			}
		case OpRemoveBody:
			c.RemoveBody(op.BodyID)
		case OpSetAttribute:
			_ = c.SetAttribute(op.BodyID, op.Index, op.Value)
		case OpSetPreference:
			_ = c.SetPreference(op.BodyID, op.Index, op.Value)
		}
	}
}
