package observability_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/Sumatoshi-tech/intervaltree/pkg/alg/interval"
	"github.com/Sumatoshi-tech/intervaltree/pkg/observability"
)

// fixtureTree builds the seven-interval fixture used across packages.
func fixtureTree() *interval.Tree[int, string] {
	tree := interval.New[int, string]()

	for _, e := range []struct {
		start, end int
		value      string
	}{
		{17, 19, "A"}, {5, 8, "B"}, {21, 24, "C"}, {4, 8, "D"},
		{15, 18, "E"}, {7, 10, "F"}, {16, 22, "G"},
	} {
		tree.Insert(interval.Interval[int]{Start: e.start, End: e.end}, e.value)
	}

	return tree
}

// setupReader returns a provider backed by a manual reader, shut down on cleanup.
func setupReader(t *testing.T) (*sdkmetric.MeterProvider, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	t.Cleanup(func() { require.NoError(t, mp.Shutdown(context.Background())) })

	return mp, reader
}

// collectMetrics runs one collection cycle.
func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()

	var rm metricdata.ResourceMetrics

	require.NoError(t, reader.Collect(context.Background(), &rm))

	return rm
}

// findMetric returns the named metric or nil.
func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for idx := range rm.ScopeMetrics {
		for midx := range rm.ScopeMetrics[idx].Metrics {
			if rm.ScopeMetrics[idx].Metrics[midx].Name == name {
				return &rm.ScopeMetrics[idx].Metrics[midx]
			}
		}
	}

	return nil
}

// gaugeValue returns the single data point of an int64 gauge.
func gaugeValue(t *testing.T, rm metricdata.ResourceMetrics, name string) int64 {
	t.Helper()

	m := findMetric(rm, name)
	require.NotNil(t, m, "%s not found", name)

	gauge, ok := m.Data.(metricdata.Gauge[int64])
	require.True(t, ok, "%s is %T, want Gauge[int64]", name, m.Data)
	require.Len(t, gauge.DataPoints, 1)

	return gauge.DataPoints[0].Value
}

// sumValue returns the single data point of an int64 monotonic sum.
func sumValue(t *testing.T, rm metricdata.ResourceMetrics, name string) int64 {
	t.Helper()

	m := findMetric(rm, name)
	require.NotNil(t, m, "%s not found", name)

	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "%s is %T, want Sum[int64]", name, m.Data)
	require.True(t, sum.IsMonotonic)
	require.Len(t, sum.DataPoints, 1)

	return sum.DataPoints[0].Value
}

func TestRegisterTreeMetrics_Exported(t *testing.T) {
	t.Parallel()

	mp, reader := setupReader(t)
	tree := fixtureTree()

	_, err := observability.RegisterTreeMetrics(mp.Meter("test"), "fixture", tree)
	require.NoError(t, err)

	for range tree.Find(interval.Interval[int]{Start: 7, End: 20}).All() {
	}

	rm := collectMetrics(t, reader)

	assert.Equal(t, int64(7), gaugeValue(t, rm, "intervaltree.tree.size"))
	assert.Equal(t, int64(3), gaugeValue(t, rm, "intervaltree.tree.height"))
	assert.Equal(t, int64(7), sumValue(t, rm, "intervaltree.tree.inserts"))
	assert.Equal(t, int64(2), sumValue(t, rm, "intervaltree.tree.rotations"))
	assert.Equal(t, int64(1), sumValue(t, rm, "intervaltree.tree.double_rotations"))
	assert.Equal(t, int64(1), sumValue(t, rm, "intervaltree.tree.finds"))
	assert.Equal(t, int64(7), sumValue(t, rm, "intervaltree.tree.nodes.visited"))
	assert.Equal(t, int64(0), sumValue(t, rm, "intervaltree.tree.nodes.pruned"))
	assert.Equal(t, int64(6), sumValue(t, rm, "intervaltree.tree.matches"))
}

func TestRegisterTreeMetrics_TreeAttribute(t *testing.T) {
	t.Parallel()

	mp, reader := setupReader(t)

	_, err := observability.RegisterTreeMetrics(mp.Meter("test"), "fixture", fixtureTree())
	require.NoError(t, err)

	rm := collectMetrics(t, reader)

	m := findMetric(rm, "intervaltree.tree.size")
	require.NotNil(t, m)

	gauge, ok := m.Data.(metricdata.Gauge[int64])
	require.True(t, ok)
	require.Len(t, gauge.DataPoints, 1)

	val, found := gauge.DataPoints[0].Attributes.Value("tree")
	require.True(t, found)
	assert.Equal(t, "fixture", val.AsString())
}

func TestRegisterTreeMetrics_TracksGrowth(t *testing.T) {
	t.Parallel()

	mp, reader := setupReader(t)
	tree := interval.New[int, string]()

	_, err := observability.RegisterTreeMetrics(mp.Meter("test"), "growing", tree)
	require.NoError(t, err)

	rm := collectMetrics(t, reader)
	assert.Equal(t, int64(0), gaugeValue(t, rm, "intervaltree.tree.size"))

	tree.Insert(interval.Interval[int]{Start: 1, End: 2}, "a")
	tree.Insert(interval.Interval[int]{Start: 2, End: 3}, "b")

	rm = collectMetrics(t, reader)
	assert.Equal(t, int64(2), gaugeValue(t, rm, "intervaltree.tree.size"))
	assert.Equal(t, int64(2), gaugeValue(t, rm, "intervaltree.tree.height"))
}

func TestRegisterTreeMetrics_Unregister(t *testing.T) {
	t.Parallel()

	mp, reader := setupReader(t)

	tm, err := observability.RegisterTreeMetrics(mp.Meter("test"), "fixture", fixtureTree())
	require.NoError(t, err)
	require.NoError(t, tm.Unregister())

	rm := collectMetrics(t, reader)

	m := findMetric(rm, "intervaltree.tree.size")
	if m != nil {
		gauge, ok := m.Data.(metricdata.Gauge[int64])
		require.True(t, ok)
		assert.Empty(t, gauge.DataPoints)
	}
}

func TestRegisterTreeMetrics_NilProvider(t *testing.T) {
	t.Parallel()

	mp, _ := setupReader(t)

	_, err := observability.RegisterTreeMetrics(mp.Meter("test"), "none", nil)
	require.ErrorIs(t, err, observability.ErrNilStatsProvider)
}
