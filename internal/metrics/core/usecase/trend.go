package usecase

import (
	"time"

	"recruitment-metrics-service/internal/metrics/core/catalog"
	"recruitment-metrics-service/internal/metrics/core/domain"
)

// trend buckets qualifying events by period. Placements whose qualifying event has no
// timestamp cannot be bucketed and are reported as excluded.
func trend(desc catalog.Descriptor, q domain.CanonicalQuery, sc scope, dims *dimensions, placements []*placement) ([]domain.AggregationRow, int) {
	g := newGrid(domain.DimensionPeriod, q.SecondaryGroup, desc.ValueColumn)
	excluded := 0
	var first, last time.Time
	for _, p := range placements {
		e, ok := qualifying(desc, sc, p)
		if !ok {
			continue
		}
		pv, ok := dims.value(domain.DimensionPeriod, p, e)
		if !ok {
			excluded++
			continue
		}
		sv, _ := dims.value(q.SecondaryGroup, p, e)
		g.add(pv, sv, desc.ValueColumn, 1)

		start := bucketStart(e.Timestamp, q.Interval)
		if first.IsZero() || start.Before(first) {
			first = start
		}
		if start.After(last) {
			last = start
		}
	}

	// empty buckets read as zero only when there is a single series
	if q.SecondaryGroup == domain.DimensionNone && !first.IsZero() {
		for t := first; !t.After(last); t = nextBucket(t, q.Interval) {
			cell := g.cell(periodValue(t, q.Interval), domain.AllGroup)
			if _, ok := cell[desc.ValueColumn]; !ok {
				cell[desc.ValueColumn] = 0
			}
		}
	}
	return g.rows(dims), excluded
}
