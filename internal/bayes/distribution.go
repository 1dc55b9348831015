package bayes

import (
	"fmt"
	"math"
)

// Distribution is a probability per hypothesis, in the model's declaration
// order. It is a value: no method modifies the receiver, and every
// transformation returns a new Distribution.
type Distribution struct {
	hypotheses []Hypothesis // shared with the model, read only
	probs      []float64
}

// Uniform returns the distribution giving every hypothesis 1/|H|.
func (m *Model) Uniform() Distribution {
	n := float64(len(m.hypotheses))
	return m.distribution(func(Hypothesis) float64 { return 1 / n })
}

// Distribution builds a distribution from explicit values. Hypotheses
// missing from probs get zero; the result is not normalized.
func (m *Model) Distribution(probs map[Hypothesis]float64) (Distribution, error) {
	for h := range probs {
		if _, ok := m.index[h]; !ok {
			return Distribution{}, fmt.Errorf("%w: %q", ErrUnknownHypothesis, h)
		}
	}
	return m.distribution(func(h Hypothesis) float64 { return probs[h] }), nil
}

func (m *Model) distribution(fn func(Hypothesis) float64) Distribution {
	probs := make([]float64, len(m.hypotheses))
	for i, h := range m.hypotheses {
		probs[i] = fn(h)
	}
	return Distribution{hypotheses: m.hypotheses, probs: probs}
}

func (d Distribution) Len() int {
	return len(d.probs)
}

// At returns the i-th hypothesis and its probability.
func (d Distribution) At(i int) (Hypothesis, float64) {
	return d.hypotheses[i], d.probs[i]
}

// Prob returns the probability of h. Asking for a hypothesis the
// distribution was not built over panics.
func (d Distribution) Prob(h Hypothesis) float64 {
	for i, x := range d.hypotheses {
		if x == h {
			return d.probs[i]
		}
	}
	panic(fmt.Sprintf("bayes: unknown hypothesis %q", h))
}

func (d Distribution) Sum() float64 {
	var total float64
	for _, p := range d.probs {
		total += p
	}
	return total
}

// Normalize rescales the values so they sum to one.
func (d Distribution) Normalize() Distribution {
	total := d.Sum()
	probs := make([]float64, len(d.probs))
	for i, p := range d.probs {
		probs[i] = p / total
	}
	return Distribution{hypotheses: d.hypotheses, probs: probs}
}

// Map copies the distribution into a map keyed by hypothesis.
func (d Distribution) Map() map[Hypothesis]float64 {
	out := make(map[Hypothesis]float64, len(d.probs))
	for i, h := range d.hypotheses {
		out[h] = d.probs[i]
	}
	return out
}

func (d Distribution) finite() bool {
	for _, p := range d.probs {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return false
		}
	}
	return true
}
