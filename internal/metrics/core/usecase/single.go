package usecase

import (
	"time"

	"recruitment-metrics-service/internal/metrics/core/catalog"
	"recruitment-metrics-service/internal/metrics/core/domain"
)

// single computes one-row metrics: mean durations between two event points, or the hire rate.
func single(desc catalog.Descriptor, q domain.CanonicalQuery, sc scope, placements []*placement) (domain.AggregationRow, int) {
	row := domain.AggregationRow{Group: domain.GroupKey{Primary: domain.AllGroup}, Metrics: map[string]float64{}}
	if !desc.IsTimeBased() {
		hireRate(sc, placements, row.Metrics)
		return row, 0
	}

	var (
		sum      float64
		n        int
		excluded int
	)
	for _, p := range placements {
		if !sc.admitsPlacement(p) {
			continue
		}
		end, ok := pointEvent(p, q.EndPoint, sc, true)
		if !ok || !sc.admitsEvent(end) {
			continue
		}
		startAt, ok := pointTime(p, q.StartPoint, sc)
		if !ok {
			continue
		}
		if !end.HasTimestamp() || startAt.IsZero() || end.Timestamp.Before(startAt) {
			excluded++
			continue
		}
		sum += end.Timestamp.Sub(startAt).Seconds()
		n++
	}

	row.Metrics["sample_size"] = float64(n)
	if n > 0 {
		row.Metrics[desc.ValueColumn] = sum / float64(n)
	}
	return row, excluded
}

func hireRate(sc scope, placements []*placement, m map[string]float64) {
	var candidates, hires float64
	isHire := func(t domain.EventType) bool { return t == domain.EventHired }
	anyType := func(domain.EventType) bool { return true }
	for _, p := range placements {
		if !sc.admitsPlacement(p) {
			continue
		}
		if _, ok := p.pick(anyType, false, sc); !ok {
			continue
		}
		candidates++
		if _, ok := p.pick(isHire, false, sc); ok {
			hires++
		}
	}
	m["candidates"] = candidates
	m["hires"] = hires
	m["hire_rate"] = 0
	if candidates > 0 {
		m["hire_rate"] = hires / candidates
	}
}

// pointEvent finds the event marking point: the earliest hire or the latest disqualification.
func pointEvent(p *placement, point domain.EventPoint, sc scope, inRange bool) (domain.CandidateEvent, bool) {
	rsc := sc
	if !inRange {
		rsc.dateRange = domain.DateRange{}
	}
	switch point {
	case domain.PointCandidateHired:
		return p.pick(func(t domain.EventType) bool { return t == domain.EventHired }, false, rsc)
	case domain.PointCandidateDisqualified:
		return p.pick(func(t domain.EventType) bool { return t == domain.EventDisqualified }, true, rsc)
	}
	return domain.CandidateEvent{}, false
}

// pointTime resolves a start point. A zero time with ok set means the point exists but has no timestamp.
func pointTime(p *placement, point domain.EventPoint, sc scope) (time.Time, bool) {
	if point == domain.PointCandidateApplied {
		return p.applied, len(p.events) > 0
	}
	e, ok := pointEvent(p, point, sc, false)
	if !ok {
		return time.Time{}, false
	}
	return e.Timestamp, true
}
