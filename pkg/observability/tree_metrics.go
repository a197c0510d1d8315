package observability

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Sumatoshi-tech/intervaltree/pkg/alg/interval"
)

const (
	metricTreeSize            = "intervaltree.tree.size"
	metricTreeHeight          = "intervaltree.tree.height"
	metricTreeInserts         = "intervaltree.tree.inserts"
	metricTreeRotations       = "intervaltree.tree.rotations"
	metricTreeDoubleRotations = "intervaltree.tree.double_rotations"
	metricTreeFinds           = "intervaltree.tree.finds"
	metricTreeVisited         = "intervaltree.tree.nodes.visited"
	metricTreePruned          = "intervaltree.tree.nodes.pruned"
	metricTreeMatches         = "intervaltree.tree.matches"

	attrTree = "tree"
)

// ErrNilStatsProvider is returned when RegisterTreeMetrics receives no provider.
var ErrNilStatsProvider = errors.New("observability: nil stats provider")

// StatsProvider exposes interval tree counters. *interval.Tree satisfies it.
type StatsProvider interface {
	Stats() interval.Stats
}

// TreeMetrics exposes interval tree statistics as OTel instruments.
// Values are read from the provider on each collection cycle.
type TreeMetrics struct {
	provider StatsProvider
	attrs    metric.MeasurementOption

	size            metric.Int64ObservableGauge
	height          metric.Int64ObservableGauge
	inserts         metric.Int64ObservableCounter
	rotations       metric.Int64ObservableCounter
	doubleRotations metric.Int64ObservableCounter
	finds           metric.Int64ObservableCounter
	visited         metric.Int64ObservableCounter
	pruned          metric.Int64ObservableCounter
	matches         metric.Int64ObservableCounter

	registration metric.Registration
}

// RegisterTreeMetrics creates observable instruments for the tree identified
// by name and registers a callback that samples provider.Stats.
// Call Unregister to stop observing the tree.
func RegisterTreeMetrics(mt metric.Meter, name string, provider StatsProvider) (*TreeMetrics, error) {
	if provider == nil {
		return nil, ErrNilStatsProvider
	}

	tm := &TreeMetrics{
		provider: provider,
		attrs:    metric.WithAttributes(attribute.String(attrTree, name)),
	}

	var err error

	gauges := []struct {
		dst  *metric.Int64ObservableGauge
		name string
		desc string
		unit string
	}{
		{&tm.size, metricTreeSize, "Number of intervals stored in the tree", "{interval}"},
		{&tm.height, metricTreeHeight, "Height of the tree", "{node}"},
	}

	for _, g := range gauges {
		*g.dst, err = mt.Int64ObservableGauge(g.name, metric.WithDescription(g.desc), metric.WithUnit(g.unit))
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", g.name, err)
		}
	}

	counters := []struct {
		dst  *metric.Int64ObservableCounter
		name string
		desc string
		unit string
	}{
		{&tm.inserts, metricTreeInserts, "Total intervals inserted", "{interval}"},
		{&tm.rotations, metricTreeRotations, "Total single rotations performed while rebalancing", "{rotation}"},
		{&tm.doubleRotations, metricTreeDoubleRotations, "Total rebalances that needed a double rotation", "{rotation}"},
		{&tm.finds, metricTreeFinds, "Total overlap searches started", "{search}"},
		{&tm.visited, metricTreeVisited, "Total nodes popped by overlap searches", "{node}"},
		{&tm.pruned, metricTreePruned, "Total nodes discarded by the subtree max bound", "{node}"},
		{&tm.matches, metricTreeMatches, "Total intervals yielded by overlap searches", "{interval}"},
	}

	for _, c := range counters {
		*c.dst, err = mt.Int64ObservableCounter(c.name, metric.WithDescription(c.desc), metric.WithUnit(c.unit))
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", c.name, err)
		}
	}

	tm.registration, err = mt.RegisterCallback(tm.observe,
		tm.size, tm.height,
		tm.inserts, tm.rotations, tm.doubleRotations,
		tm.finds, tm.visited, tm.pruned, tm.matches,
	)
	if err != nil {
		return nil, fmt.Errorf("register tree metrics callback: %w", err)
	}

	return tm, nil
}

// Unregister stops reporting the tree's statistics.
func (tm *TreeMetrics) Unregister() error {
	err := tm.registration.Unregister()
	if err != nil {
		return fmt.Errorf("unregister tree metrics: %w", err)
	}

	return nil
}

// observe samples the provider and reports every instrument.
func (tm *TreeMetrics) observe(_ context.Context, obs metric.Observer) error {
	s := tm.provider.Stats()

	obs.ObserveInt64(tm.size, int64(s.Len), tm.attrs)
	obs.ObserveInt64(tm.height, int64(s.Height), tm.attrs)
	obs.ObserveInt64(tm.inserts, s.Inserts, tm.attrs)
	obs.ObserveInt64(tm.rotations, s.Rotations, tm.attrs)
	obs.ObserveInt64(tm.doubleRotations, s.DoubleRotations, tm.attrs)
	obs.ObserveInt64(tm.finds, s.Finds, tm.attrs)
	obs.ObserveInt64(tm.visited, s.Visited, tm.attrs)
	obs.ObserveInt64(tm.pruned, s.Pruned, tm.attrs)
	obs.ObserveInt64(tm.matches, s.Matches, tm.attrs)

	return nil
}
