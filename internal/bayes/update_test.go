package bayes_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trknhr/diachronic/internal/bayes"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestUniform(t *testing.T) {
	m := cookieModel()
	u := m.Uniform()

	want := map[bayes.Hypothesis]float64{"bowl1": 0.5, "bowl2": 0.5}
	if diff := cmp.Diff(want, u.Map(), approx); diff != "" {
		t.Errorf("Uniform() mismatch (-want +got):\n%s", diff)
	}
	assert.InDelta(t, 1.0, u.Sum(), 1e-12)
}

func TestUpdate_SingleVanilla(t *testing.T) {
	m := cookieModel()

	got := m.Update(m.Uniform(), bayes.Vanilla)

	want := map[bayes.Hypothesis]float64{"bowl1": 0.6, "bowl2": 0.4}
	if diff := cmp.Diff(want, got.Map(), approx); diff != "" {
		t.Errorf("Update() mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdate_ThenChocolate(t *testing.T) {
	m := cookieModel()
	prior, err := m.Distribution(map[bayes.Hypothesis]float64{"bowl1": 0.6, "bowl2": 0.4})
	require.NoError(t, err)

	got := m.Update(prior, bayes.Chocolate)

	want := map[bayes.Hypothesis]float64{"bowl1": 0.15 / 0.35, "bowl2": 0.20 / 0.35}
	if diff := cmp.Diff(want, got.Map(), approx); diff != "" {
		t.Errorf("Update() mismatch (-want +got):\n%s", diff)
	}
	assert.InDelta(t, 0.4286, got.Prob("bowl1"), 1e-4)
	assert.InDelta(t, 0.5714, got.Prob("bowl2"), 1e-4)
}

func TestUpdate_DoesNotMutatePrior(t *testing.T) {
	m := cookieModel()
	prior := m.Uniform()

	_ = m.Update(prior, bayes.Vanilla)
	_ = m.Update(prior, bayes.Chocolate)

	assert.Equal(t, 0.5, prior.Prob("bowl1"))
	assert.Equal(t, 0.5, prior.Prob("bowl2"))
}

func TestUpdate_AlwaysSumsToOne(t *testing.T) {
	m := bayes.MustModel(
		bayes.Entry{Hypothesis: "a", Vanilla: 0.9},
		bayes.Entry{Hypothesis: "b", Vanilla: 0.5},
		bayes.Entry{Hypothesis: "c", Vanilla: 0.05},
	)
	rng := rand.New(rand.NewPCG(7, 11))

	d := m.Uniform()
	for i := 0; i < 500; i++ {
		o := bayes.Chocolate
		if rng.IntN(2) == 0 {
			o = bayes.Vanilla
		}
		d = m.Update(d, o)
		require.InDelta(t, 1.0, d.Sum(), 1e-9, "step %d", i+1)
	}
}

func TestRun_ReportsEveryStepInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := cookieModel()
	data := []bayes.Observation{bayes.Vanilla, bayes.Chocolate, bayes.Vanilla}

	var steps []bayes.Step
	record := func(s bayes.Step) { steps = append(steps, s) }

	observer := bayes.NewMockObserver(ctrl)
	gomock.InOrder(
		observer.EXPECT().Observe(gomock.Any()).Do(record).Return(nil),
		observer.EXPECT().Observe(gomock.Any()).Do(record).Return(nil),
		observer.EXPECT().Observe(gomock.Any()).Do(record).Return(nil),
	)

	final, err := m.Run(context.Background(), m.Uniform(), data, observer)
	require.NoError(t, err)
	require.Len(t, steps, 3)

	for i, s := range steps {
		assert.Equal(t, i+1, s.Index)
		assert.Equal(t, data[i], s.Observation)
		assert.InDelta(t, 1.0, s.Posterior.Sum(), 1e-9)
		if i > 0 {
			assert.Equal(t, steps[i-1].Posterior.Map(), s.Prior.Map())
		}
	}
	assert.InDelta(t, 0.6, steps[0].Posterior.Prob("bowl1"), 1e-9)
	assert.InDelta(t, 0.15/0.35, steps[1].Posterior.Prob("bowl1"), 1e-9)
	assert.Equal(t, steps[2].Posterior.Map(), final.Map())
}

func TestRun_ObserverErrorStopsTheFold(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := cookieModel()
	boom := errors.New("write failed")

	observer := bayes.NewMockObserver(ctrl)
	gomock.InOrder(
		observer.EXPECT().Observe(gomock.Any()).Return(nil),
		observer.EXPECT().Observe(gomock.Any()).Return(boom),
	)

	data := []bayes.Observation{bayes.Vanilla, bayes.Vanilla, bayes.Vanilla, bayes.Vanilla}
	_, err := m.Run(context.Background(), m.Uniform(), data, observer)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "step 2")
}

func TestRun_NilObserver(t *testing.T) {
	m := cookieModel()
	final, err := m.Run(context.Background(), m.Uniform(), []bayes.Observation{bayes.Vanilla}, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.6, final.Prob("bowl1"), 1e-9)
}

func TestRun_EmptySequenceReturnsPrior(t *testing.T) {
	m := cookieModel()
	final, err := m.Run(context.Background(), m.Uniform(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, m.Uniform().Map(), final.Map())
}

func TestRun_ImpossibleObservation(t *testing.T) {
	m := bayes.MustModel(
		bayes.Entry{Hypothesis: "only-vanilla", Vanilla: 1},
		bayes.Entry{Hypothesis: "also-vanilla", Vanilla: 1},
	)
	observer := bayes.ObserverFunc(func(bayes.Step) error {
		t.Fatal("observer must not see an impossible step")
		return nil
	})

	final, err := m.Run(context.Background(), m.Uniform(), []bayes.Observation{bayes.Chocolate}, observer)
	assert.ErrorIs(t, err, bayes.ErrImpossible)
	assert.Equal(t, m.Uniform().Map(), final.Map())
}

func TestRun_ImpossibleAfterBeliefCollapses(t *testing.T) {
	m := bayes.MustModel(
		bayes.Entry{Hypothesis: "vanilla-only", Vanilla: 1},
		bayes.Entry{Hypothesis: "chocolate-only", Vanilla: 0},
	)
	data := []bayes.Observation{bayes.Vanilla, bayes.Chocolate}

	final, err := m.Run(context.Background(), m.Uniform(), data, nil)
	assert.ErrorIs(t, err, bayes.ErrImpossible)
	assert.Contains(t, err.Error(), "step 2")
	assert.Equal(t, 1.0, final.Prob("vanilla-only"))
}

func TestRun_Cancelled(t *testing.T) {
	m := cookieModel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Run(ctx, m.Uniform(), []bayes.Observation{bayes.Vanilla}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDistribution_UnknownHypothesis(t *testing.T) {
	m := cookieModel()
	_, err := m.Distribution(map[bayes.Hypothesis]float64{"bowl9": 1})
	assert.ErrorIs(t, err, bayes.ErrUnknownHypothesis)

	assert.Panics(t, func() { m.Uniform().Prob("bowl9") })
}

func TestDistribution_Normalize(t *testing.T) {
	m := cookieModel()
	raw, err := m.Distribution(map[bayes.Hypothesis]float64{"bowl1": 3, "bowl2": 1})
	require.NoError(t, err)

	n := raw.Normalize()
	assert.InDelta(t, 0.75, n.Prob("bowl1"), 1e-12)
	assert.InDelta(t, 0.25, n.Prob("bowl2"), 1e-12)
	assert.Equal(t, 3.0, raw.Prob("bowl1"))

	h, p := n.At(1)
	assert.Equal(t, bayes.Hypothesis("bowl2"), h)
	assert.InDelta(t, 0.25, p, 1e-12)
}
