// Package bayes applies Bayes' rule one observation at a time over a fixed
// set of hypotheses.
package bayes

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

type Hypothesis string

// Observation is the flavor of one cookie drawn from a bowl.
type Observation string

const (
	Vanilla   Observation = "vanilla"
	Chocolate Observation = "chocolate"
)

var (
	ErrUnknownObservation = errors.New("unknown observation")
	ErrUnknownHypothesis  = errors.New("unknown hypothesis")
	ErrInvalidModel       = errors.New("invalid model")
	ErrImpossible         = errors.New("observation is impossible under every hypothesis")
)

// ParseObservation accepts the full flavor name or its first letter, in any case.
func ParseObservation(s string) (Observation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vanilla", "v":
		return Vanilla, nil
	case "chocolate", "c":
		return Chocolate, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownObservation, s)
}

// Entry declares one hypothesis and the probability that a draw under it
// yields vanilla.
type Entry struct {
	Hypothesis Hypothesis
	Vanilla    float64
}

// Model is the fixed hypothesis set together with its likelihood table.
// A Model is immutable once built; hypotheses keep their declaration order.
type Model struct {
	hypotheses []Hypothesis
	vanilla    []float64
	index      map[Hypothesis]int
}

func NewModel(entries ...Entry) (*Model, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no hypotheses", ErrInvalidModel)
	}

	m := &Model{
		hypotheses: make([]Hypothesis, 0, len(entries)),
		vanilla:    make([]float64, 0, len(entries)),
		index:      make(map[Hypothesis]int, len(entries)),
	}
	for _, e := range entries {
		if strings.TrimSpace(string(e.Hypothesis)) == "" {
			return nil, fmt.Errorf("%w: empty hypothesis name", ErrInvalidModel)
		}
		if _, dup := m.index[e.Hypothesis]; dup {
			return nil, fmt.Errorf("%w: duplicate hypothesis %q", ErrInvalidModel, e.Hypothesis)
		}
		if math.IsNaN(e.Vanilla) || e.Vanilla < 0 || e.Vanilla > 1 {
			return nil, fmt.Errorf("%w: vanilla probability of %q is %v, want a value in [0, 1]",
				ErrInvalidModel, e.Hypothesis, e.Vanilla)
		}
		m.index[e.Hypothesis] = len(m.hypotheses)
		m.hypotheses = append(m.hypotheses, e.Hypothesis)
		m.vanilla = append(m.vanilla, e.Vanilla)
	}
	return m, nil
}

// MustModel is like NewModel but panics on an invalid table. It is meant for
// tables fixed at compile time.
func MustModel(entries ...Entry) *Model {
	m, err := NewModel(entries...)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Model) Hypotheses() []Hypothesis {
	out := make([]Hypothesis, len(m.hypotheses))
	copy(out, m.hypotheses)
	return out
}

func (m *Model) Entries() []Entry {
	out := make([]Entry, len(m.hypotheses))
	for i, h := range m.hypotheses {
		out[i] = Entry{Hypothesis: h, Vanilla: m.vanilla[i]}
	}
	return out
}

// Lookup resolves a user supplied name to one of the model's hypotheses.
func (m *Model) Lookup(name string) (Hypothesis, error) {
	h := Hypothesis(strings.TrimSpace(name))
	if _, ok := m.index[h]; !ok {
		return "", fmt.Errorf("%w: %q (known: %s)", ErrUnknownHypothesis, name, m.names())
	}
	return h, nil
}

// Degenerate lists the hypotheses under which one of the observations can
// never occur.
func (m *Model) Degenerate() []Hypothesis {
	var out []Hypothesis
	for i, p := range m.vanilla {
		if p == 0 || p == 1 {
			out = append(out, m.hypotheses[i])
		}
	}
	return out
}

// Likelihood returns P(o | h). An unknown hypothesis or observation is a
// programming error and panics.
func (m *Model) Likelihood(o Observation, h Hypothesis) float64 {
	i, ok := m.index[h]
	if !ok {
		panic(fmt.Sprintf("bayes: unknown hypothesis %q", h))
	}
	return flavorProb(o, m.vanilla[i])
}

// DataProb returns P(o) from the flat average of the vanilla probabilities.
// The average is not weighted by the current prior; Update normalizes
// afterwards, so the denominator cancels out of every posterior.
func (m *Model) DataProb(o Observation) float64 {
	var sum float64
	for _, p := range m.vanilla {
		sum += p
	}
	return flavorProb(o, sum/float64(len(m.vanilla)))
}

// HypothesisProb returns P(h | o) = P(h) * P(o | h) / P(o) for a single
// hypothesis. Values across hypotheses need not sum to one.
func (m *Model) HypothesisProb(prior Distribution, h Hypothesis, o Observation) float64 {
	return prior.Prob(h) * m.Likelihood(o, h) / m.DataProb(o)
}

func (m *Model) names() string {
	names := make([]string, len(m.hypotheses))
	for i, h := range m.hypotheses {
		names[i] = string(h)
	}
	return strings.Join(names, ", ")
}

func flavorProb(o Observation, vanilla float64) float64 {
	switch o {
	case Vanilla:
		return vanilla
	case Chocolate:
		return 1 - vanilla
	}
	panic(fmt.Sprintf("bayes: unknown observation %q", o))
}
