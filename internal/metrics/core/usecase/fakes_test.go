package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"recruitment-metrics-service/internal/metrics/core/domain"
	"recruitment-metrics-service/internal/metrics/core/ports"
)

// fakeResources implements ports.ResourcePort over in-memory fixtures.
type fakeResources struct {
	mu sync.Mutex

	offers  []domain.Offer
	stages  map[int64][]domain.Stage
	tags    []domain.Tag
	reasons []domain.DisqualifyReason
	// pages per offer; Next is filled in unless stuckCursor is set
	pages       map[int64][]ports.EventPage
	stuckCursor bool

	PageFn func(offerID int64, cursor int) (ports.EventPage, error)

	calls      int
	pageCalls  map[int64]int
	eventQuery []ports.EventsQuery
}

func newFakeResources() *fakeResources {
	return &fakeResources{
		stages:    map[int64][]domain.Stage{},
		pages:     map[int64][]ports.EventPage{},
		pageCalls: map[int64]int{},
	}
}

func (f *fakeResources) hit() {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
}

func (f *fakeResources) upstreamCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeResources) ListOffers(_ context.Context, flt ports.OfferFilter) ([]domain.Offer, error) {
	f.hit()
	var out []domain.Offer
	for _, o := range f.offers {
		if flt.IncludeArchived || !o.Archived() {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeResources) ListStages(_ context.Context, offerID int64) ([]domain.Stage, error) {
	f.hit()
	s, ok := f.stages[offerID]
	if !ok {
		return nil, &domain.NotFoundError{Field: "offer", Value: fmt.Sprint(offerID)}
	}
	return s, nil
}

func (f *fakeResources) ListTags(context.Context) ([]domain.Tag, error) {
	f.hit()
	return f.tags, nil
}

func (f *fakeResources) ListDisqualifyReasons(context.Context) ([]domain.DisqualifyReason, error) {
	f.hit()
	return f.reasons, nil
}

func (f *fakeResources) FetchCandidateEvents(q ports.EventsQuery) ports.EventSequence {
	f.mu.Lock()
	f.eventQuery = append(f.eventQuery, q)
	f.mu.Unlock()
	return &fakeSequence{f: f, offerID: q.OfferID}
}

type fakeSequence struct {
	f       *fakeResources
	offerID int64
}

func (s *fakeSequence) Page(_ context.Context, cursor int) (ports.EventPage, error) {
	s.f.hit()
	s.f.mu.Lock()
	s.f.pageCalls[s.offerID]++
	s.f.mu.Unlock()

	if s.f.PageFn != nil {
		return s.f.PageFn(s.offerID, cursor)
	}
	pages := s.f.pages[s.offerID]
	if len(pages) == 0 {
		return ports.EventPage{}, nil
	}
	if cursor < 1 || cursor > len(pages) {
		return ports.EventPage{}, fmt.Errorf("cursor %d out of range", cursor)
	}
	p := pages[cursor-1]
	switch {
	case s.f.stuckCursor:
		p.Next = 1
	case cursor < len(pages):
		p.Next = cursor + 1
	default:
		p.Next = 0
	}
	return p, nil
}

// addEvents appends events for an offer as a new page.
func (f *fakeResources) addEvents(offerID int64, events ...domain.CandidateEvent) {
	f.pages[offerID] = append(f.pages[offerID], ports.EventPage{Events: events})
}

var t0 = time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)

func at(offset time.Duration) time.Time { return t0.Add(offset) }

func ev(candidate, offer, stage int64, typ domain.EventType, ts time.Time) domain.CandidateEvent {
	return domain.CandidateEvent{
		CandidateID:   candidate,
		CandidateName: fmt.Sprintf("Candidate %d", candidate),
		OfferID:       offer,
		StageID:       stage,
		Type:          typ,
		Timestamp:     ts,
	}
}

func withSource(e domain.CandidateEvent, source string) domain.CandidateEvent {
	e.SourceTag = source
	return e
}

func withParticipant(e domain.CandidateEvent, id int64, name string) domain.CandidateEvent {
	e.ParticipantID = id
	e.ParticipantName = name
	return e
}

func withReason(e domain.CandidateEvent, id int64) domain.CandidateEvent {
	e.DisqualifyReasonID = id
	return e
}

const (
	offerBackend  int64 = 10
	offerFrontend int64 = 20
	offerBackend2 int64 = 30
	offerOld      int64 = 40

	stApplied   int64 = 101
	stScreening int64 = 102
	stInterview int64 = 103
	stOffer     int64 = 104
	stHired     int64 = 105
)

func pipeline(base int64) []domain.Stage {
	names := []string{"Applied", "Screening", "Interview", "Offer", "Hired"}
	out := make([]domain.Stage, len(names))
	for i, n := range names {
		out[i] = domain.Stage{ID: base + int64(i), Name: n, Position: i}
	}
	return out
}

// recruitingFixture has one backend offer with a five-stage pipeline plus a frontend offer.
func recruitingFixture() *fakeResources {
	f := newFakeResources()
	f.offers = []domain.Offer{
		{ID: offerBackend, Title: "Backend Engineer", Status: "published"},
		{ID: offerFrontend, Title: "Frontend Engineer", Status: "published"},
		{ID: offerOld, Title: "Data Analyst", Status: "archived"},
	}
	f.stages[offerBackend] = pipeline(stApplied)
	f.stages[offerFrontend] = pipeline(201)
	f.stages[offerOld] = pipeline(401)
	f.tags = []domain.Tag{{ID: 7, Name: "Remote"}, {ID: 8, Name: "Senior"}}
	f.reasons = []domain.DisqualifyReason{{ID: 1, Name: "Not a fit"}, {ID: 2, Name: "Salary"}}
	return f
}

// fakeDirectory implements ports.DirectoryPort over in-memory profiles.
type fakeDirectory struct {
	mu sync.Mutex

	candidates map[int64]domain.Record
	hits       []domain.CandidateSummary
	pools      []domain.TalentPool
	notes      map[int64][]domain.Record

	SearchFn func(s ports.CandidateSearch) ([]domain.CandidateSummary, error)

	searches []ports.CandidateSearch
	fetched  []int64
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		candidates: map[int64]domain.Record{
			1: {"id": 1, "name": "Jane Doe", "emails": []string{"jane@example.com"}, "source": "LinkedIn"},
			2: {"id": 2, "name": "John Roe", "emails": []string{}, "source": "Referral"},
			3: {"id": 3, "name": "Jane Doe Smith", "emails": []string{}},
		},
		hits: []domain.CandidateSummary{
			{ID: 1, Name: "Jane Doe", Emails: []string{"jane@example.com"}},
			{ID: 3, Name: "Jane Doe Smith", Emails: []string{}},
		},
		pools: []domain.TalentPool{
			{ID: 7, Title: "Silver medalists", Status: "active"},
			{ID: 8, Title: "2023 interns", Status: "archived"},
		},
		notes: map[int64][]domain.Record{1: {{"id": 5, "body": "Strong Go background"}}},
	}
}

func (f *fakeDirectory) SearchCandidates(_ context.Context, s ports.CandidateSearch) ([]domain.CandidateSummary, error) {
	f.mu.Lock()
	f.searches = append(f.searches, s)
	f.mu.Unlock()
	if f.SearchFn != nil {
		return f.SearchFn(s)
	}
	return append([]domain.CandidateSummary(nil), f.hits...), nil
}

func (f *fakeDirectory) GetCandidate(_ context.Context, id int64) (domain.Record, error) {
	f.mu.Lock()
	f.fetched = append(f.fetched, id)
	f.mu.Unlock()
	rec, ok := f.candidates[id]
	if !ok {
		return nil, &domain.NotFoundError{Field: "candidate", Value: fmt.Sprint(id)}
	}
	return rec, nil
}

func (f *fakeDirectory) ListCandidateFields(context.Context) ([]string, error) {
	return []string{"emails", "id", "name", "source"}, nil
}

func (f *fakeDirectory) ListCandidateNotes(_ context.Context, id int64, limit, offset int) ([]domain.Record, error) {
	if _, ok := f.candidates[id]; !ok {
		return nil, &domain.NotFoundError{Field: "candidate", Value: fmt.Sprint(id)}
	}
	return f.notes[id], nil
}

func (f *fakeDirectory) GetOffer(_ context.Context, id int64) (domain.Record, error) {
	if id != offerBackend {
		return nil, &domain.NotFoundError{Field: "offer", Value: fmt.Sprint(id)}
	}
	return domain.Record{"id": offerBackend, "title": "Backend Engineer", "location": "Berlin"}, nil
}

func (f *fakeDirectory) ListTalentPools(context.Context) ([]domain.TalentPool, error) {
	return append([]domain.TalentPool(nil), f.pools...), nil
}

func (f *fakeDirectory) GetTalentPool(_ context.Context, id int64) (domain.Record, error) {
	for _, p := range f.pools {
		if p.ID == id {
			return domain.Record{"id": p.ID, "title": p.Title}, nil
		}
	}
	return nil, &domain.NotFoundError{Field: "talent_pool", Value: fmt.Sprint(id)}
}
