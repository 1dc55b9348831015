package sample_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trknhr/diachronic/internal/bayes"
	"github.com/trknhr/diachronic/internal/sample"
)

func cookieModel() *bayes.Model {
	return bayes.MustModel(
		bayes.Entry{Hypothesis: "bowl1", Vanilla: 0.75},
		bayes.Entry{Hypothesis: "bowl2", Vanilla: 0.5},
	)
}

func TestGenerate_Length(t *testing.T) {
	g := sample.NewUnseeded(cookieModel())

	for _, n := range []int{0, 1, 2, 20, 137} {
		data := g.Generate("bowl1", n)
		assert.Len(t, data, n)
		for _, o := range data {
			assert.Contains(t, []bayes.Observation{bayes.Vanilla, bayes.Chocolate}, o)
		}
	}
	assert.Empty(t, g.Generate("bowl1", -3))
}

func TestGenerate_SeededIsReproducible(t *testing.T) {
	m := cookieModel()
	a := sample.NewSeeded(m, 42).Generate("bowl1", 50)
	b := sample.NewSeeded(m, 42).Generate("bowl1", 50)
	assert.Equal(t, a, b)

	c := sample.NewSeeded(m, 43).Generate("bowl1", 50)
	assert.NotEqual(t, a, c)
}

func TestGenerate_Frequency(t *testing.T) {
	m := cookieModel()
	g := sample.New(m, rand.NewPCG(1, 2))

	const n = 20000
	tests := map[bayes.Hypothesis]float64{"bowl1": 0.75, "bowl2": 0.5}
	for h, want := range tests {
		var vanilla int
		for _, o := range g.Generate(h, n) {
			if o == bayes.Vanilla {
				vanilla++
			}
		}
		assert.InDelta(t, want, float64(vanilla)/n, 0.02, "hypothesis %s", h)
	}
}

func TestDraw_DegenerateBowls(t *testing.T) {
	m := bayes.MustModel(
		bayes.Entry{Hypothesis: "vanilla-only", Vanilla: 1},
		bayes.Entry{Hypothesis: "chocolate-only", Vanilla: 0},
	)
	g := sample.NewSeeded(m, 9)
	for i := 0; i < 100; i++ {
		assert.Equal(t, bayes.Vanilla, g.Draw("vanilla-only"))
		assert.Equal(t, bayes.Chocolate, g.Draw("chocolate-only"))
	}
}
