package interval

import (
	"fmt"
	"sync/atomic"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Stats holds tree shape and operation counters.
type Stats struct {
	Len             int
	Height          int
	Inserts         int64
	Rotations       int64 // Single rotations; a double rotation counts twice.
	DoubleRotations int64 // Rebalances that needed a pre-rotation of the child.
	Finds           int64
	Visited         int64 // Nodes popped by Find cursors.
	Pruned          int64 // Nodes discarded because their subtree max did not reach the query.
	Matches         int64
}

// PruneRate returns the fraction of visited nodes that were pruned (0.0 to 1.0).
func (s Stats) PruneRate() float64 {
	if s.Visited == 0 {
		return 0
	}

	return float64(s.Pruned) / float64(s.Visited)
}

// String returns a one-line summary of the counters.
func (s Stats) String() string {
	return fmt.Sprintf("len=%s height=%d inserts=%s rotations=%s (double=%s) finds=%s visited=%s pruned=%s matches=%s",
		humanize.Comma(int64(s.Len)), s.Height,
		humanize.Comma(s.Inserts), humanize.Comma(s.Rotations), humanize.Comma(s.DoubleRotations),
		humanize.Comma(s.Finds), humanize.Comma(s.Visited), humanize.Comma(s.Pruned), humanize.Comma(s.Matches),
	)
}

// Table renders the counters as a two-column text table.
func (s Stats) Table() string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Counter", "Value"})
	tw.AppendRows([]table.Row{
		{"len", humanize.Comma(int64(s.Len))},
		{"height", s.Height},
		{"inserts", humanize.Comma(s.Inserts)},
		{"rotations", humanize.Comma(s.Rotations)},
		{"double rotations", humanize.Comma(s.DoubleRotations)},
		{"finds", humanize.Comma(s.Finds)},
		{"visited", humanize.Comma(s.Visited)},
		{"pruned", humanize.Comma(s.Pruned)},
		{"matches", humanize.Comma(s.Matches)},
	})

	return tw.Render()
}

// Stats returns the current counters. With statistics disabled only Len and
// Height are filled in.
//
// Stats reads only atomic fields when statistics are enabled, so it may be
// called while another goroutine holds the tree's write lock.
func (t *Tree[K, V]) Stats() Stats {
	c := t.stats
	if c == nil {
		return Stats{Len: t.size, Height: t.Height()}
	}

	return Stats{
		Len:             int(c.size.Load()),
		Height:          int(c.height.Load()),
		Inserts:         c.inserts.Load(),
		Rotations:       c.rotations.Load(),
		DoubleRotations: c.doubleRotations.Load(),
		Finds:           c.finds.Load(),
		Visited:         c.visited.Load(),
		Pruned:          c.pruned.Load(),
		Matches:         c.matched.Load(),
	}
}

// counters holds the tree metrics. Methods are no-ops on a nil receiver.
type counters struct {
	size            atomic.Int64
	height          atomic.Int64
	inserts         atomic.Int64
	rotations       atomic.Int64
	doubleRotations atomic.Int64
	finds           atomic.Int64
	visited         atomic.Int64
	pruned          atomic.Int64
	matched         atomic.Int64
}

func (c *counters) inserted(size int, h uint32) {
	if c == nil {
		return
	}

	c.inserts.Add(1)
	c.size.Store(int64(size))
	c.height.Store(int64(h))
}

func (c *counters) rotated(double bool) {
	if c == nil {
		return
	}

	if double {
		c.doubleRotations.Add(1)
		c.rotations.Add(2)

		return
	}

	c.rotations.Add(1)
}

func (c *counters) searched() {
	if c != nil {
		c.finds.Add(1)
	}
}

func (c *counters) visit() {
	if c != nil {
		c.visited.Add(1)
	}
}

func (c *counters) prune() {
	if c != nil {
		c.pruned.Add(1)
	}
}

func (c *counters) match() {
	if c != nil {
		c.matched.Add(1)
	}
}
