package usecase

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"recruitment-metrics-service/internal/metrics/core/domain"
)

// placement is one candidate on one offer, the counting unit of every count metric.
type placement struct {
	candidateID int64
	offerID     int64
	events      []domain.CandidateEvent
	// applied is the earliest timestamped event, zero if none has a timestamp.
	applied time.Time
	source  string
}

func buildPlacements(events []domain.CandidateEvent) []*placement {
	type key struct{ candidate, offer int64 }
	byKey := map[key]*placement{}
	for _, e := range events {
		k := key{e.CandidateID, e.OfferID}
		p, ok := byKey[k]
		if !ok {
			p = &placement{candidateID: e.CandidateID, offerID: e.OfferID}
			byKey[k] = p
		}
		p.events = append(p.events, e)
		if e.HasTimestamp() && (p.applied.IsZero() || e.Timestamp.Before(p.applied)) {
			p.applied = e.Timestamp
		}
		if p.source == "" && strings.TrimSpace(e.SourceTag) != "" {
			p.source = strings.TrimSpace(e.SourceTag)
		}
	}

	out := make([]*placement, 0, len(byKey))
	for _, p := range byKey {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].candidateID != out[j].candidateID {
			return out[i].candidateID < out[j].candidateID
		}
		return out[i].offerID < out[j].offerID
	})
	return out
}

// pick returns the qualifying event among events of the given types inside the date range.
// Timestamped events win over events without one.
func (p *placement) pick(types func(domain.EventType) bool, latest bool, sc scope) (domain.CandidateEvent, bool) {
	var (
		best  domain.CandidateEvent
		found bool
	)
	for _, e := range p.events {
		if !types(e.Type) || !sc.inRange(e) {
			continue
		}
		switch {
		case !found:
			best, found = e, true
		case !best.HasTimestamp() && e.HasTimestamp():
			best = e
		case !e.HasTimestamp():
		case latest && !e.Timestamp.Before(best.Timestamp):
			best = e
		case !latest && e.Timestamp.Before(best.Timestamp):
			best = e
		}
	}
	return best, found
}

func (p *placement) hasTag(tags map[int64]bool) bool {
	for _, e := range p.events {
		for _, id := range e.TagIDs {
			if tags[id] {
				return true
			}
		}
	}
	return false
}

func (p *placement) hasParticipant(participants map[string]bool) bool {
	for _, e := range p.events {
		if e.ParticipantID != 0 && participants[strconv.FormatInt(e.ParticipantID, 10)] {
			return true
		}
		if name := strings.ToLower(strings.TrimSpace(e.ParticipantName)); name != "" && participants[name] {
			return true
		}
	}
	return false
}

// scope is the resolved filter set of a query.
type scope struct {
	dateRange    domain.DateRange
	applied      *domain.DateRange
	tags         map[int64]bool
	sources      map[string]bool
	participants map[string]bool
	stages       map[int64]bool
	reasons      map[int64]bool
}

func newScope(q domain.CanonicalQuery) scope {
	sc := scope{dateRange: q.DateRange}
	for _, f := range q.Filters {
		switch f.Field {
		case domain.FilterAppliedAt:
			sc.applied = f.Range
		case domain.FilterTag:
			sc.tags = idSet(f.Values)
		case domain.FilterStage:
			sc.stages = idSet(f.Values)
		case domain.FilterDisqualifyReason:
			sc.reasons = idSet(f.Values)
		case domain.FilterSource:
			sc.sources = lowerSet(f.Values)
		case domain.FilterParticipant:
			sc.participants = lowerSet(f.Values)
		}
	}
	return sc
}

// inRange lets events without a timestamp through; upstream already scoped them.
func (sc scope) inRange(e domain.CandidateEvent) bool {
	return !e.HasTimestamp() || sc.dateRange.IsUnbounded() || sc.dateRange.Contains(e.Timestamp)
}

// admitsPlacement applies the placement-level filters.
func (sc scope) admitsPlacement(p *placement) bool {
	if sc.tags != nil && !p.hasTag(sc.tags) {
		return false
	}
	if sc.sources != nil && !sc.sources[strings.ToLower(p.source)] {
		return false
	}
	if sc.participants != nil && !p.hasParticipant(sc.participants) {
		return false
	}
	if sc.applied != nil && !sc.applied.Contains(p.applied) {
		return false
	}
	return true
}

// admitsEvent applies the filters on the qualifying event.
func (sc scope) admitsEvent(e domain.CandidateEvent) bool {
	if sc.stages != nil && !sc.stages[e.StageID] {
		return false
	}
	if sc.reasons != nil && !sc.reasons[e.DisqualifyReasonID] {
		return false
	}
	return true
}

func idSet(values []string) map[int64]bool {
	out := make(map[int64]bool, len(values))
	for _, id := range parseIDs(values) {
		out[id] = true
	}
	return out
}

func lowerSet(values []string) map[string]bool {
	out := make(map[string]bool, len(values))
	for _, v := range values {
		out[strings.ToLower(strings.TrimSpace(v))] = true
	}
	return out
}
