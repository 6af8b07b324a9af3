package orbit

import (
	"math"
	"math/rand"
	"testing"
)

func bodyWith(attrs, prefs []float64) *Body {
	return &Body{Attributes: attrs, Preferences: prefs}
}

func TestAttributeCompatibility(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		expected float64
	}{
		{"identical", []float64{50, 50, 50}, []float64{50, 50, 50}, 1.0},
		{"opposite extremes", []float64{0, 0, 0}, []float64{100, 100, 100}, 0.0},
		{"half off", []float64{0, 0}, []float64{100, 0}, 0.5},
		{"mixed", []float64{10, 90, 40, 60}, []float64{20, 80, 50, 50}, 0.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AttributeCompatibility(bodyWith(tt.a, nil), bodyWith(tt.b, nil))
			if math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("AttributeCompatibility = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestAttributeCompatibilityCommutative(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		a := bodyWith(randomTraits(rng, 5), nil)
		b := bodyWith(randomTraits(rng, 5), nil)

		ab := AttributeCompatibility(a, b)
		ba := AttributeCompatibility(b, a)
		if ab != ba {
			t.Fatalf("not commutative: %v vs %v", ab, ba)
		}
		if ab < 0 || ab > 1 {
			t.Fatalf("result %v outside [0,1] for in-range traits", ab)
		}
	}
}

func TestAttributeCompatibilitySelf(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 20; i++ {
		a := bodyWith(randomTraits(rng, 4), nil)
		if got := AttributeCompatibility(a, a); got != 1.0 {
			t.Fatalf("self-compatibility = %v, want 1.0", got)
		}
	}
}

func TestPreferredCompatibility(t *testing.T) {
	sun := bodyWith(nil, []float64{70, 30, 50})
	body := bodyWith([]float64{70, 30, 50}, nil)

	if got := PreferredCompatibility(sun, body); got != 1.0 {
		t.Errorf("perfect match = %v, want 1.0", got)
	}

	// Order matters: the sun's preferences are compared to the body's
	// attributes, never the reverse.
	sun2 := bodyWith([]float64{0, 0, 0}, []float64{70, 30, 50})
	body2 := bodyWith([]float64{70, 30, 50}, []float64{100, 100, 100})
	forward := PreferredCompatibility(sun2, body2)
	reversed := PreferredCompatibility(body2, sun2)
	if forward == reversed {
		t.Errorf("expected asymmetric scores, both were %v", forward)
	}
	if forward != 1.0 {
		t.Errorf("forward score = %v, want 1.0", forward)
	}
}

func TestPreferredCompatibilityRange(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		sun := bodyWith(nil, randomTraits(rng, 6))
		body := bodyWith(randomTraits(rng, 6), nil)
		got := PreferredCompatibility(sun, body)
		if got < 0 || got > 1 {
			t.Fatalf("result %v outside [0,1] for in-range inputs", got)
		}
	}
}

func TestTraitSimilarityDimensionMismatch(t *testing.T) {
	a := bodyWith([]float64{50, 50}, nil)
	b := bodyWith([]float64{50, 50, 50}, nil)
	if got := AttributeCompatibility(a, b); got != 0 {
		t.Errorf("mismatched dimensions = %v, want 0", got)
	}
	if got := AttributeCompatibility(bodyWith(nil, nil), bodyWith(nil, nil)); got != 0 {
		t.Errorf("empty vectors = %v, want 0", got)
	}
}
