package usecase

import (
	"context"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"recruitment-metrics-service/internal/metrics/core/domain"
	"recruitment-metrics-service/internal/metrics/core/ports"
)

const (
	defaultSearchLimit = 100
	// maxDetailIDs bounds one candidate details request.
	maxDetailIDs      = 100
	detailConcurrency = 4
)

// LookupUseCase exposes the reference data agents need to phrase filters,
// plus the candidate, offer and talent pool profiles behind the numbers.
type LookupUseCase struct {
	resources ports.ResourcePort
	directory ports.DirectoryPort
}

func NewLookupUseCase(resources ports.ResourcePort, directory ports.DirectoryPort) *LookupUseCase {
	return &LookupUseCase{resources: resources, directory: directory}
}

func (uc *LookupUseCase) ListOffers(ctx context.Context, includeArchived bool) ([]domain.Offer, error) {
	lk := newLookups(uc.resources)
	return lk.offersInScope(ctx, includeArchived)
}

func (uc *LookupUseCase) OfferStages(ctx context.Context, offerID int64) ([]domain.Stage, error) {
	if err := positiveID("offer_id", offerID); err != nil {
		return nil, err
	}
	return newLookups(uc.resources).stagesOf(ctx, offerID)
}

func (uc *LookupUseCase) ListTags(ctx context.Context) ([]domain.Tag, error) {
	return uc.resources.ListTags(ctx)
}

func (uc *LookupUseCase) ListDisqualifyReasons(ctx context.Context) ([]domain.DisqualifyReason, error) {
	return uc.resources.ListDisqualifyReasons(ctx)
}

func (uc *LookupUseCase) OfferDetails(ctx context.Context, offerID int64) (domain.Record, error) {
	if err := positiveID("offer_id", offerID); err != nil {
		return nil, err
	}
	return uc.directory.GetOffer(ctx, offerID)
}

// ListTalentPools filters talent pools by status. An empty scope lists the ones not archived.
func (uc *LookupUseCase) ListTalentPools(ctx context.Context, scope domain.TalentPoolScope) ([]domain.TalentPool, error) {
	if scope == "" {
		scope = domain.TalentPoolsActive
	}
	switch scope {
	case domain.TalentPoolsActive, domain.TalentPoolsArchived, domain.TalentPoolsAll:
	default:
		return nil, &domain.InvalidFilterError{Field: "scope", Reason: "expected not_archived, archived or all"}
	}

	pools, err := uc.directory.ListTalentPools(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.TalentPool, 0, len(pools))
	for _, p := range pools {
		switch {
		case scope == domain.TalentPoolsAll,
			scope == domain.TalentPoolsArchived && p.Archived(),
			scope == domain.TalentPoolsActive && !p.Archived():
			out = append(out, p)
		}
	}
	return out, nil
}

func (uc *LookupUseCase) TalentPoolDetails(ctx context.Context, talentPoolID int64) (domain.Record, error) {
	if err := positiveID("talent_pool_id", talentPoolID); err != nil {
		return nil, err
	}
	return uc.directory.GetTalentPool(ctx, talentPoolID)
}

// SearchCandidates validates a structured search and returns the matching candidates.
func (uc *LookupUseCase) SearchCandidates(ctx context.Context, s ports.CandidateSearch) ([]domain.CandidateSummary, error) {
	s, err := normalizeSearch(s)
	if err != nil {
		return nil, err
	}
	return uc.directory.SearchCandidates(ctx, s)
}

// SearchCandidatesByQuery runs a full-text search. With exactName only candidates whose name equals
// the query are kept. An empty query finds nothing.
func (uc *LookupUseCase) SearchCandidatesByQuery(ctx context.Context, query string, exactName bool, limit, offset int) ([]domain.CandidateSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.CandidateSummary{}, nil
	}
	s, err := normalizeSearch(ports.CandidateSearch{Query: query, Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	hits, err := uc.directory.SearchCandidates(ctx, s)
	if err != nil || !exactName {
		return hits, err
	}
	out := make([]domain.CandidateSummary, 0, len(hits))
	for _, h := range hits {
		if h.Name == query {
			out = append(out, h)
		}
	}
	return out, nil
}

// CandidateDetails fetches the profiles of the given candidates, in request order, projected onto fields.
// No fields returns every field.
func (uc *LookupUseCase) CandidateDetails(ctx context.Context, candidateIDs []int64, fields []string) ([]domain.Record, error) {
	if len(candidateIDs) > maxDetailIDs {
		return nil, &domain.InvalidFilterError{Field: "candidate_ids", Reason: "at most " + strconv.Itoa(maxDetailIDs) + " candidates per request"}
	}
	for _, id := range candidateIDs {
		if err := positiveID("candidate_ids", id); err != nil {
			return nil, err
		}
	}

	out := make([]domain.Record, len(candidateIDs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(detailConcurrency)
	for i, id := range candidateIDs {
		g.Go(func() error {
			rec, err := uc.directory.GetCandidate(gctx, id)
			if err != nil {
				return err
			}
			out[i] = rec.Project(fields)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *LookupUseCase) CandidateFields(ctx context.Context) ([]string, error) {
	return uc.directory.ListCandidateFields(ctx)
}

func (uc *LookupUseCase) CandidateNotes(ctx context.Context, candidateID int64, limit, offset int) ([]domain.Record, error) {
	if err := positiveID("candidate_id", candidateID); err != nil {
		return nil, err
	}
	limit, offset, err := page(limit, offset)
	if err != nil {
		return nil, err
	}
	return uc.directory.ListCandidateNotes(ctx, candidateID, limit, offset)
}

func normalizeSearch(s ports.CandidateSearch) (ports.CandidateSearch, error) {
	var err error
	if s.Limit, s.Offset, err = page(s.Limit, s.Offset); err != nil {
		return s, err
	}

	if len(s.Skills) > 0 {
		if s.SkillsCombiner == "" {
			s.SkillsCombiner = domain.CombineIn
		}
		if !oneOf(s.SkillsCombiner, domain.CombineIn, domain.CombineNotIn, domain.CombineContains, domain.CombineNotContains, domain.CombineHasAllOf) {
			return s, &domain.InvalidFilterError{Field: "skills_combiner", Reason: "expected in, not_in, contains, not_contains or has_all_of"}
		}
	}
	if len(s.TalentPoolIDs) > 0 {
		if s.TalentPoolsCombiner == "" {
			s.TalentPoolsCombiner = domain.CombineIn
		}
		if !oneOf(s.TalentPoolsCombiner, domain.CombineIn, domain.CombineNotIn, domain.CombineAllIn) {
			return s, &domain.InvalidFilterError{Field: "talent_pools_combiner", Reason: "expected in, not_in or all_in"}
		}
	}

	s.CustomField = strings.TrimSpace(s.CustomField)
	switch {
	case s.CustomField == "" && s.CustomFieldCombiner != "":
		return s, &domain.InvalidFilterError{Field: "custom_field", Reason: "a combiner needs a custom field search key"}
	case s.CustomField != "" && !oneOf(s.CustomFieldCombiner, domain.CombineHasAny, domain.CombineHasNone):
		return s, &domain.InvalidFilterError{Field: "custom_field_combiner", Reason: "expected has_any or has_none"}
	}

	if !s.CreatedFrom.IsZero() && !s.CreatedTo.IsZero() && s.CreatedTo.Before(s.CreatedFrom) {
		return s, &domain.InvalidFilterError{Field: "created_to", Reason: "before created_from"}
	}
	if !s.GDPRExpiresFrom.IsZero() && !s.GDPRExpiresTo.IsZero() && s.GDPRExpiresTo.Before(s.GDPRExpiresFrom) {
		return s, &domain.InvalidFilterError{Field: "gdpr_expires_to", Reason: "before gdpr_expires_from"}
	}
	return s, nil
}

// page applies the default limit and the upstream page cap.
func page(limit, offset int) (int, int, error) {
	switch {
	case limit == 0:
		limit = defaultSearchLimit
	case limit < 0 || limit > domain.MaxSearchLimit:
		return 0, 0, &domain.InvalidFilterError{Field: "limit", Reason: "must be between 1 and " + strconv.Itoa(domain.MaxSearchLimit)}
	}
	if offset < 0 {
		return 0, 0, &domain.InvalidFilterError{Field: "offset", Reason: "must not be negative"}
	}
	return limit, offset, nil
}

func positiveID(field string, id int64) error {
	if id <= 0 {
		return &domain.InvalidFilterError{Field: field, Reason: "must be a positive id"}
	}
	return nil
}

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
