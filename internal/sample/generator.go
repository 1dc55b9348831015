// Package sample draws synthetic cookie observations from a chosen bowl.
package sample

import (
	"math/rand/v2"

	"github.com/trknhr/diachronic/internal/bayes"
)

type Generator struct {
	model *bayes.Model
	rng   *rand.Rand
}

func New(model *bayes.Model, src rand.Source) *Generator {
	return &Generator{model: model, rng: rand.New(src)}
}

// NewSeeded returns a generator whose output depends only on seed.
func NewSeeded(model *bayes.Model, seed uint64) *Generator {
	return New(model, rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewUnseeded returns a generator seeded from the runtime's random source,
// so two processes produce different data.
func NewUnseeded(model *bayes.Model) *Generator {
	return New(model, rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Draw returns one observation, vanilla with probability P(vanilla | truth).
func (g *Generator) Draw(truth bayes.Hypothesis) bayes.Observation {
	if g.rng.Float64() < g.model.Likelihood(bayes.Vanilla, truth) {
		return bayes.Vanilla
	}
	return bayes.Chocolate
}

// Generate returns exactly n independent draws; n <= 0 yields none.
func (g *Generator) Generate(truth bayes.Hypothesis, n int) []bayes.Observation {
	if n <= 0 {
		return []bayes.Observation{}
	}
	data := make([]bayes.Observation, n)
	for i := range data {
		data[i] = g.Draw(truth)
	}
	return data
}
