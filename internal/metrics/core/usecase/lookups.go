package usecase

import (
	"context"
	"sort"
	"strings"

	"recruitment-metrics-service/internal/metrics/core/domain"
	"recruitment-metrics-service/internal/metrics/core/ports"
)

// lookups memoizes reference data for the lifetime of one request.
type lookups struct {
	resources ports.ResourcePort

	offers  []domain.Offer
	stages  map[int64][]domain.Stage
	tags    []domain.Tag
	reasons []domain.DisqualifyReason

	offersLoaded, tagsLoaded, reasonsLoaded bool
}

func newLookups(r ports.ResourcePort) *lookups {
	return &lookups{resources: r, stages: map[int64][]domain.Stage{}}
}

// allOffers returns every offer, archived ones included, ordered by title then id.
func (l *lookups) allOffers(ctx context.Context) ([]domain.Offer, error) {
	if l.offersLoaded {
		return l.offers, nil
	}
	offers, err := l.resources.ListOffers(ctx, ports.OfferFilter{IncludeArchived: true})
	if err != nil {
		return nil, err
	}
	offers = append([]domain.Offer(nil), offers...)
	sort.SliceStable(offers, func(i, j int) bool {
		a, b := strings.ToLower(offers[i].Title), strings.ToLower(offers[j].Title)
		if a != b {
			return a < b
		}
		return offers[i].ID < offers[j].ID
	})
	l.offers, l.offersLoaded = offers, true
	return offers, nil
}

// offersInScope returns offers visible for the archived flag.
func (l *lookups) offersInScope(ctx context.Context, includeArchived bool) ([]domain.Offer, error) {
	all, err := l.allOffers(ctx)
	if err != nil {
		return nil, err
	}
	if includeArchived {
		return all, nil
	}
	out := make([]domain.Offer, 0, len(all))
	for _, o := range all {
		if !o.Archived() {
			out = append(out, o)
		}
	}
	return out, nil
}

func (l *lookups) offer(ctx context.Context, id int64) (domain.Offer, bool, error) {
	all, err := l.allOffers(ctx)
	if err != nil {
		return domain.Offer{}, false, err
	}
	for _, o := range all {
		if o.ID == id {
			return o, true, nil
		}
	}
	return domain.Offer{}, false, nil
}

// stagesOf returns the offer's pipeline in position order.
func (l *lookups) stagesOf(ctx context.Context, offerID int64) ([]domain.Stage, error) {
	if s, ok := l.stages[offerID]; ok {
		return s, nil
	}
	stages, err := l.resources.ListStages(ctx, offerID)
	if err != nil {
		return nil, err
	}
	stages = append([]domain.Stage(nil), stages...)
	sort.SliceStable(stages, func(i, j int) bool { return stages[i].Position < stages[j].Position })
	l.stages[offerID] = stages
	return stages, nil
}

func (l *lookups) allTags(ctx context.Context) ([]domain.Tag, error) {
	if l.tagsLoaded {
		return l.tags, nil
	}
	tags, err := l.resources.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	l.tags, l.tagsLoaded = tags, true
	return tags, nil
}

func (l *lookups) allReasons(ctx context.Context) ([]domain.DisqualifyReason, error) {
	if l.reasonsLoaded {
		return l.reasons, nil
	}
	reasons, err := l.resources.ListDisqualifyReasons(ctx)
	if err != nil {
		return nil, err
	}
	l.reasons, l.reasonsLoaded = reasons, true
	return reasons, nil
}
