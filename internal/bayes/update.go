package bayes

import (
	"context"
	"fmt"
)

// Update performs one diachronic step: the posterior of every hypothesis
// given o, normalized, with prior as the starting belief. prior is left
// untouched.
func (m *Model) Update(prior Distribution, o Observation) Distribution {
	return m.distribution(func(h Hypothesis) float64 {
		return m.HypothesisProb(prior, h, o)
	}).Normalize()
}

// Step records one transition of Run.
type Step struct {
	// Index is 1-based.
	Index       int
	Observation Observation
	Prior       Distribution
	Posterior   Distribution
}

//go:generate mockgen -source=update.go -destination=mock_observer.go -package=bayes

// Observer receives every step of a Run, in order.
type Observer interface {
	Observe(step Step) error
}

type ObserverFunc func(step Step) error

func (f ObserverFunc) Observe(step Step) error {
	return f(step)
}

// Run folds Update over data starting from prior and returns the last
// distribution computed. observer may be nil.
//
// Run stops early when the context is done, when an observation cannot be
// explained by any hypothesis, or when the observer fails.
func (m *Model) Run(ctx context.Context, prior Distribution, data []Observation, observer Observer) (Distribution, error) {
	for i, o := range data {
		if err := ctx.Err(); err != nil {
			return prior, err
		}

		posterior := m.Update(prior, o)
		if !posterior.finite() {
			return prior, fmt.Errorf("step %d (%s): %w", i+1, o, ErrImpossible)
		}

		if observer != nil {
			step := Step{Index: i + 1, Observation: o, Prior: prior, Posterior: posterior}
			if err := observer.Observe(step); err != nil {
				return posterior, fmt.Errorf("failed to report step %d: %w", i+1, err)
			}
		}
		prior = posterior
	}
	return prior, nil
}
