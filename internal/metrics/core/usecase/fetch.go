package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"recruitment-metrics-service/internal/metrics/core/domain"
	"recruitment-metrics-service/internal/metrics/core/ports"
)

type fetchResult struct {
	events   []domain.CandidateEvent
	skipped  int
	offerIDs []int64
}

// fetchEvents drains the candidate events of every offer in scope, a bounded number of offers at a time.
// The merged order depends only on the events, never on which fetch finished first.
func (a *Aggregator) fetchEvents(ctx context.Context, q domain.CanonicalQuery, lk *lookups) (fetchResult, error) {
	var offerIDs []int64
	if f, ok := q.Filter(domain.FilterOffer); ok {
		offerIDs = parseIDs(f.Values)
	} else {
		offers, err := lk.offersInScope(ctx, q.IncludeArchivedJobs)
		if err != nil {
			return fetchResult{}, err
		}
		for _, o := range offers {
			offerIDs = append(offerIDs, o.ID)
		}
	}

	perOffer := make([][]domain.CandidateEvent, len(offerIDs))
	skipped := make([]int, len(offerIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i, offerID := range offerIDs {
		g.Go(func() error {
			seq := a.resources.FetchCandidateEvents(ports.EventsQuery{
				OfferID:         offerID,
				DateRange:       q.DateRange,
				IncludeArchived: q.IncludeArchivedJobs,
			})
			events, n, reasons, err := drain(gctx, seq, a.maxPages)
			if err != nil {
				return err
			}
			for _, r := range reasons {
				a.logger.Warn("skipped malformed candidate event", "offer_id", offerID, "reason", r)
			}
			perOffer[i], skipped[i] = events, n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fetchResult{}, err
	}

	out := fetchResult{offerIDs: offerIDs}
	for i := range perOffer {
		out.events = append(out.events, perOffer[i]...)
		out.skipped += skipped[i]
	}
	sortEvents(out.events)
	return out, nil
}

// drain reads a sequence to its end. maxPages bounds sequences whose cursor never terminates.
func drain(ctx context.Context, seq ports.EventSequence, maxPages int) ([]domain.CandidateEvent, int, []string, error) {
	var (
		events  []domain.CandidateEvent
		skipped int
		reasons []string
	)
	cursor := 1
	for pages := 0; cursor != 0; pages++ {
		if maxPages > 0 && pages >= maxPages {
			return nil, 0, nil, &domain.MalformedDataError{Reason: fmt.Sprintf("pagination did not end after %d pages", maxPages)}
		}
		page, err := seq.Page(ctx, cursor)
		if err != nil {
			return nil, 0, nil, err
		}
		for _, e := range page.Events {
			e.Seq = len(events)
			events = append(events, e)
		}
		skipped += page.Skipped
		reasons = append(reasons, page.SkipReasons...)

		if page.Next != 0 && page.Next <= cursor {
			return nil, 0, nil, &domain.MalformedDataError{Reason: fmt.Sprintf("page cursor went from %d to %d", cursor, page.Next)}
		}
		cursor = page.Next
	}
	return events, skipped, reasons, nil
}

// sortEvents orders by candidate, then time, then offer, then upstream position.
// An event without a timestamp takes the time of the closest earlier timed event of the same
// placement in upstream order, so it stays next to its neighbours. With no such event it sorts first.
func sortEvents(events []domain.CandidateEvent) {
	type placementKey struct{ candidate, offer int64 }
	upstream := make([]int, len(events))
	for i := range upstream {
		upstream[i] = i
	}
	sort.SliceStable(upstream, func(i, j int) bool {
		a, b := events[upstream[i]], events[upstream[j]]
		if a.CandidateID != b.CandidateID {
			return a.CandidateID < b.CandidateID
		}
		if a.OfferID != b.OfferID {
			return a.OfferID < b.OfferID
		}
		return a.Seq < b.Seq
	})

	effective := make([]time.Time, len(events))
	var (
		last    placementKey
		carried time.Time
	)
	for n, i := range upstream {
		e := events[i]
		k := placementKey{e.CandidateID, e.OfferID}
		if n == 0 || k != last {
			last, carried = k, time.Time{}
		}
		if e.HasTimestamp() {
			carried = e.Timestamp
		}
		effective[i] = carried
	}

	order := make([]int, len(events))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := events[order[i]], events[order[j]]
		if a.CandidateID != b.CandidateID {
			return a.CandidateID < b.CandidateID
		}
		ta, tb := effective[order[i]], effective[order[j]]
		if !ta.Equal(tb) {
			return ta.Before(tb)
		}
		if a.OfferID != b.OfferID {
			return a.OfferID < b.OfferID
		}
		if a.Seq != b.Seq {
			return a.Seq < b.Seq
		}
		if a.StageID != b.StageID {
			return a.StageID < b.StageID
		}
		return a.Type < b.Type
	})

	sorted := make([]domain.CandidateEvent, len(events))
	for n, i := range order {
		sorted[n] = events[i]
	}
	copy(events, sorted)
}
