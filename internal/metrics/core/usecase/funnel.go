package usecase

import (
	"recruitment-metrics-service/internal/metrics/core/domain"
)

const (
	colEntered          = "entered"
	colProceeded        = "proceeded"
	colProceedRate      = "proceed_rate"
	colDropoffRate      = "dropoff_rate"
	colReached          = "reached"
	colTimeToReachStage = "time_to_reach_stage"
	colLeft             = "left"
	colTimeSpentInStage = "time_spent_in_stage"

	sumReach = "_reach_seconds"
	sumSpent = "_spent_seconds"
)

// funnel walks one offer's pipeline. On re-entry the latest entry into a stage is authoritative,
// except for time_to_reach_stage, which measures the first entry.
// A stage is left by the first later event that enters another stage, disqualifies or hires;
// it counts as proceeded when that event moves the candidate forward in the pipeline.
func funnel(q domain.CanonicalQuery, sc scope, dims *dimensions, stages []domain.Stage, placements []*placement) ([]domain.AggregationRow, int) {
	g := newGrid(domain.DimensionStage, q.SecondaryGroup, colEntered)
	pos := make(map[int64]int, len(stages))
	for i, s := range stages {
		pos[s.ID] = i
	}

	if q.SecondaryGroup == domain.DimensionNone {
		for _, s := range stages {
			cell := g.cell(dims.stageValue(s.ID), domain.AllGroup)
			cell[colEntered] += 0
			cell[colProceeded] += 0
		}
	}

	excluded := 0
	for _, p := range placements {
		if !sc.admitsPlacement(p) {
			continue
		}
		for _, s := range stages {
			idx := latestEntry(p, s.ID)
			if idx < 0 || !sc.inRange(p.events[idx]) {
				continue
			}
			entry := p.events[idx]
			sv, _ := dims.value(q.SecondaryGroup, p, entry)
			pv := dims.stageValue(s.ID)
			cell := g.cell(pv, sv)
			cell[colProceeded] += 0
			g.add(pv, sv, colEntered, 1)

			leave, proceeded := leaving(p, idx, s.ID, pos)
			if proceeded {
				cell[colProceeded]++
			}

			untimed := false
			if first, ok := firstTimedEntry(p, s.ID, sc); ok && !p.applied.IsZero() {
				cell[colReached]++
				cell[sumReach] += first.Timestamp.Sub(p.applied).Seconds()
			} else {
				untimed = true
			}
			if leave >= 0 {
				left := p.events[leave]
				if entry.HasTimestamp() && left.HasTimestamp() {
					cell[colLeft]++
					cell[sumSpent] += left.Timestamp.Sub(entry.Timestamp).Seconds()
				} else {
					untimed = true
				}
			}
			if untimed {
				excluded++
			}
		}
	}

	rows := g.rows(dims)
	for _, r := range rows {
		finishFunnelRow(r.Metrics)
	}
	return rows, excluded
}

func isEntry(t domain.EventType) bool {
	return t == domain.EventEntered || t == domain.EventProceeded
}

func latestEntry(p *placement, stageID int64) int {
	idx := -1
	for i, e := range p.events {
		if isEntry(e.Type) && e.StageID == stageID {
			idx = i
		}
	}
	return idx
}

// firstTimedEntry returns the earliest timestamped entry into stageID inside the date range.
func firstTimedEntry(p *placement, stageID int64, sc scope) (domain.CandidateEvent, bool) {
	var (
		first domain.CandidateEvent
		found bool
	)
	for _, e := range p.events {
		if !isEntry(e.Type) || e.StageID != stageID || !e.HasTimestamp() || !sc.inRange(e) {
			continue
		}
		if !found || e.Timestamp.Before(first.Timestamp) {
			first, found = e, true
		}
	}
	return first, found
}

// leaving returns the index of the event that ended the stay at stageID, or -1 while still in the stage.
func leaving(p *placement, idx int, stageID int64, pos map[int64]int) (int, bool) {
	for j := idx + 1; j < len(p.events); j++ {
		e := p.events[j]
		switch {
		case isEntry(e.Type) && e.StageID != stageID:
			to, known := pos[e.StageID]
			return j, known && to > pos[stageID]
		case e.Type == domain.EventDisqualified:
			return j, false
		case e.Type == domain.EventHired && e.StageID != stageID:
			return j, true
		}
	}
	return -1, false
}

func finishFunnelRow(m map[string]float64) {
	entered := m[colEntered]
	m[colProceedRate], m[colDropoffRate] = 0, 0
	if entered > 0 {
		m[colProceedRate] = m[colProceeded] / entered
		m[colDropoffRate] = 1 - m[colProceedRate]
	}

	m[colReached] += 0
	if n := m[colReached]; n > 0 {
		m[colTimeToReachStage] = m[sumReach] / n
	}
	m[colLeft] += 0
	if n := m[colLeft]; n > 0 {
		m[colTimeSpentInStage] = m[sumSpent] / n
	}
	delete(m, sumReach)
	delete(m, sumSpent)
}
