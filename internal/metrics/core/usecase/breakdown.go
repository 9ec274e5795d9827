package usecase

import (
	"recruitment-metrics-service/internal/metrics/core/catalog"
	"recruitment-metrics-service/internal/metrics/core/domain"
)

// breakdown counts distinct candidates per group cell. Each placement lands in exactly one cell,
// the one of its qualifying event. Grouped by offer, a candidate is one placement per cell; otherwise
// a candidate with several placements in the same cell counts once.
func breakdown(desc catalog.Descriptor, q domain.CanonicalQuery, sc scope, dims *dimensions, placements []*placement) []domain.AggregationRow {
	g := newGrid(q.PrimaryGroup, q.SecondaryGroup, desc.ValueColumn)
	type seenKey struct {
		candidate int64
		cell      [2]string
	}
	seen := map[seenKey]bool{}
	perCandidate := !groupedByOffer(q)
	for _, p := range placements {
		e, ok := qualifying(desc, sc, p)
		if !ok {
			continue
		}
		pv, _ := dims.value(q.PrimaryGroup, p, e)
		sv, _ := dims.value(q.SecondaryGroup, p, e)
		if perCandidate {
			k := seenKey{candidate: p.candidateID, cell: [2]string{pv.Key, sv.Key}}
			if seen[k] {
				continue
			}
			seen[k] = true
		}
		g.add(pv, sv, desc.ValueColumn, 1)
	}
	return g.rows(dims)
}

func groupedByOffer(q domain.CanonicalQuery) bool {
	return q.PrimaryGroup == domain.DimensionOffer || q.SecondaryGroup == domain.DimensionOffer
}

func qualifying(desc catalog.Descriptor, sc scope, p *placement) (domain.CandidateEvent, bool) {
	if !sc.admitsPlacement(p) {
		return domain.CandidateEvent{}, false
	}
	e, ok := p.pick(desc.HasEventType, desc.Pick == catalog.PickLatest, sc)
	if !ok || !sc.admitsEvent(e) {
		return domain.CandidateEvent{}, false
	}
	return e, true
}
