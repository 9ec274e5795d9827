package ports

import (
	"context"
	"time"

	"recruitment-metrics-service/internal/metrics/core/domain"
)

type OfferFilter struct {
	IncludeArchived bool
}

type EventsQuery struct {
	OfferID         int64
	DateRange       domain.DateRange
	IncludeArchived bool
}

// EventPage is one page of candidate events. Skipped counts records that could not be decoded.
type EventPage struct {
	Events      []domain.CandidateEvent
	Skipped     int
	SkipReasons []string
	// Next is the cursor of the following page, 0 on the last page.
	Next int
}

// EventSequence is a finite, lazily fetched sequence of pages starting at cursor 1.
// Fetching a page has no hidden state: a failed cursor can be fetched again.
type EventSequence interface {
	Page(ctx context.Context, cursor int) (EventPage, error)
}

// ResourcePort is the read-only view of the recruitment platform.
type ResourcePort interface {
	ListOffers(ctx context.Context, f OfferFilter) ([]domain.Offer, error)
	// ListStages returns the offer's pipeline stages in pipeline order.
	ListStages(ctx context.Context, offerID int64) ([]domain.Stage, error)
	ListTags(ctx context.Context) ([]domain.Tag, error)
	ListDisqualifyReasons(ctx context.Context) ([]domain.DisqualifyReason, error)
	FetchCandidateEvents(q EventsQuery) EventSequence
}

// CandidateSearch is a structured candidate search. Zero fields do not filter.
type CandidateSearch struct {
	// Query is a full-text query over name, email and other fields.
	Query string

	OfferIDs          []int64
	DisqualifyReasons []string
	Disqualified      *bool
	TagIDs            []int64

	Skills         []string
	SkillsCombiner string

	TalentPoolIDs       []int64
	TalentPoolsCombiner string

	HasStage *bool
	OnStages []string

	CreatedFrom, CreatedTo         time.Time
	GDPRExpiresFrom, GDPRExpiresTo time.Time

	CustomField         string
	CustomFieldCombiner string

	Limit  int
	Offset int
}

// DirectoryPort reads candidate, offer and talent pool profiles.
type DirectoryPort interface {
	SearchCandidates(ctx context.Context, s CandidateSearch) ([]domain.CandidateSummary, error)
	GetCandidate(ctx context.Context, candidateID int64) (domain.Record, error)
	// ListCandidateFields returns the field names of a full candidate profile.
	ListCandidateFields(ctx context.Context) ([]string, error)
	ListCandidateNotes(ctx context.Context, candidateID int64, limit, offset int) ([]domain.Record, error)
	GetOffer(ctx context.Context, offerID int64) (domain.Record, error)
	ListTalentPools(ctx context.Context) ([]domain.TalentPool, error)
	GetTalentPool(ctx context.Context, talentPoolID int64) (domain.Record, error)
}
