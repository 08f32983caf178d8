package sssp

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gnc_sssp/pkg/graph"
	"gnc_sssp/pkg/metrics"
)

func TestBenchmarkWithSteppingClock(t *testing.T) {
	reg := metrics.NewRegistry()
	clock := &stepClock{step: time.Millisecond}

	report, err := Benchmark(context.Background(), buildExampleGraph(), 0, 5,
		WithClock(clock), WithMetrics(reg))
	require.NoError(t, err)

	// Five solves read the clock twice each, plus one read at each end of
	// the loop: 11ms over 5 iterations.
	assert.InDelta(t, 2.2, report.EnhancedTimeMs, 1e-9)
	assert.InDelta(t, 2.2, report.DijkstraTimeMs, 1e-9)
	assert.InDelta(t, 1.0, report.SpeedupFactor, 1e-9)
	assert.Equal(t, 5, report.Iterations)
	assert.True(t, report.Preprocessed)

	_, err = uuid.Parse(report.RunID)
	assert.NoError(t, err)

	assert.InDelta(t, 1.0, testutil.ToFloat64(reg.BenchmarkSpeedup), 1e-9)
	assert.Equal(t, 5.0, testutil.ToFloat64(
		reg.SolvesTotal.WithLabelValues(string(AlgorithmEnhanced), metrics.StatusOK)))
	assert.Equal(t, 5.0, testutil.ToFloat64(
		reg.SolvesTotal.WithLabelValues(string(AlgorithmDijkstra), metrics.StatusOK)))
}

func TestBenchmarkRunIDsDiffer(t *testing.T) {
	g := buildExampleGraph()

	a, err := Benchmark(context.Background(), g, 0, 1)
	require.NoError(t, err)
	b, err := Benchmark(context.Background(), g, 0, 1)
	require.NoError(t, err)

	assert.NotEqual(t, a.RunID, b.RunID)
	assert.GreaterOrEqual(t, a.SpeedupFactor, 0.0)
}

func TestBenchmarkZeroElapsedSpeedup(t *testing.T) {
	clock := &stepClock{} // never advances

	report, err := Benchmark(context.Background(), buildExampleGraph(), 1, 3, WithClock(clock))
	require.NoError(t, err)

	assert.Equal(t, 0.0, report.EnhancedTimeMs)
	assert.Equal(t, 0.0, report.DijkstraTimeMs)
	assert.Equal(t, 1.0, report.SpeedupFactor)
}

func TestBenchmarkRejectsBadInput(t *testing.T) {
	g := buildExampleGraph()

	_, err := Benchmark(context.Background(), g, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidIterations)

	_, err = Benchmark(context.Background(), g, 4, 10)
	assert.ErrorIs(t, err, ErrInvalidSource)

	_, err = Benchmark(context.Background(), g, -3, 10)
	assert.ErrorIs(t, err, ErrInvalidSource)
}

func TestBenchmarkContinuesAfterFailedPreprocess(t *testing.T) {
	logger, hook := test.NewNullLogger()
	g := graph.New(2, []uint32{0, 1, 1}, []uint32{1}, []float64{-1})

	report, err := Benchmark(context.Background(), g, 0, 2, WithLogger(logger))
	require.NoError(t, err)
	assert.False(t, report.Preprocessed)

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Message == "preprocess failed, timing both solvers without a decomposition" {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestBenchmarkStopsWhenContextDone(t *testing.T) {
	reg := metrics.NewRegistry()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := Benchmark(ctx, buildExampleGraph(), 0, 50, WithMetrics(reg))
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, report)
	assert.Equal(t, 0.0, testutil.ToFloat64(
		reg.SolvesTotal.WithLabelValues(string(AlgorithmEnhanced), metrics.StatusOK)))
}

// cancelClock cancels a context on its n-th reading.
type cancelClock struct {
	calls  int
	n      int
	cancel context.CancelFunc
}

func (c *cancelClock) Now() time.Time {
	c.calls++
	if c.calls == c.n {
		c.cancel()
	}
	return time.Unix(0, 0)
}

func TestBenchmarkStopsBetweenSolves(t *testing.T) {
	reg := metrics.NewRegistry()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Preprocess reads the clock twice, the loop once, then each solve twice:
	// the fifth reading ends the first solve.
	clock := &cancelClock{n: 5, cancel: cancel}

	_, err := Benchmark(ctx, buildExampleGraph(), 0, 50, WithClock(clock), WithMetrics(reg))
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1.0, testutil.ToFloat64(
		reg.SolvesTotal.WithLabelValues(string(AlgorithmEnhanced), metrics.StatusOK)))
	assert.Equal(t, 0.0, testutil.ToFloat64(
		reg.SolvesTotal.WithLabelValues(string(AlgorithmDijkstra), metrics.StatusOK)))
}
