package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruitment-metrics-service/internal/metrics/core/domain"
	"recruitment-metrics-service/internal/metrics/core/ports"
	"recruitment-metrics-service/internal/metrics/core/usecase"
)

func newLookupUseCase() (*usecase.LookupUseCase, *fakeDirectory) {
	dir := newFakeDirectory()
	return usecase.NewLookupUseCase(recruitingFixture(), dir), dir
}

func TestLookupUseCase(t *testing.T) {
	uc, _ := newLookupUseCase()

	offers, err := uc.ListOffers(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, offers, 2)

	offers, err = uc.ListOffers(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, offers, 3)

	stages, err := uc.OfferStages(context.Background(), offerBackend)
	require.NoError(t, err)
	assert.Equal(t, "Applied", stages[0].Name)

	_, err = uc.OfferStages(context.Background(), 0)
	assert.True(t, errors.Is(err, domain.ErrInvalidFilter))

	_, err = uc.OfferStages(context.Background(), 999)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// ------------------------------------------------------------
// OFFERS AND TALENT POOLS
// ------------------------------------------------------------

func TestLookupUseCase_OfferDetails(t *testing.T) {
	uc, _ := newLookupUseCase()

	offer, err := uc.OfferDetails(context.Background(), offerBackend)
	require.NoError(t, err)
	assert.Equal(t, "Berlin", offer["location"])

	_, err = uc.OfferDetails(context.Background(), -1)
	assert.True(t, errors.Is(err, domain.ErrInvalidFilter))

	_, err = uc.OfferDetails(context.Background(), 999)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestLookupUseCase_TalentPoolScopes(t *testing.T) {
	uc, _ := newLookupUseCase()

	titles := func(pools []domain.TalentPool) []string {
		var out []string
		for _, p := range pools {
			out = append(out, p.Title)
		}
		return out
	}

	active, err := uc.ListTalentPools(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Silver medalists"}, titles(active))

	archived, err := uc.ListTalentPools(context.Background(), domain.TalentPoolsArchived)
	require.NoError(t, err)
	assert.Equal(t, []string{"2023 interns"}, titles(archived))

	all, err := uc.ListTalentPools(context.Background(), domain.TalentPoolsAll)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = uc.ListTalentPools(context.Background(), "deleted")
	var invalid *domain.InvalidFilterError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "scope", invalid.Field)

	pool, err := uc.TalentPoolDetails(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Silver medalists", pool["title"])

	_, err = uc.TalentPoolDetails(context.Background(), 0)
	assert.True(t, errors.Is(err, domain.ErrInvalidFilter))
}

// ------------------------------------------------------------
// CANDIDATES
// ------------------------------------------------------------

func TestLookupUseCase_SearchCandidatesDefaults(t *testing.T) {
	uc, dir := newLookupUseCase()

	_, err := uc.SearchCandidates(context.Background(), ports.CandidateSearch{
		Skills:        []string{"go"},
		TalentPoolIDs: []int64{7},
	})
	require.NoError(t, err)

	require.Len(t, dir.searches, 1)
	s := dir.searches[0]
	assert.Equal(t, 100, s.Limit)
	assert.Equal(t, domain.CombineIn, s.SkillsCombiner)
	assert.Equal(t, domain.CombineIn, s.TalentPoolsCombiner)
}

func TestLookupUseCase_SearchCandidatesValidation(t *testing.T) {
	uc, dir := newLookupUseCase()
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		in    ports.CandidateSearch
		field string
	}{
		{"limit above cap", ports.CandidateSearch{Limit: domain.MaxSearchLimit + 1}, "limit"},
		{"negative offset", ports.CandidateSearch{Offset: -1}, "offset"},
		{"unknown skills combiner", ports.CandidateSearch{Skills: []string{"go"}, SkillsCombiner: "all_in"}, "skills_combiner"},
		{"unknown pool combiner", ports.CandidateSearch{TalentPoolIDs: []int64{7}, TalentPoolsCombiner: "contains"}, "talent_pools_combiner"},
		{"custom field without combiner", ports.CandidateSearch{CustomField: "salary"}, "custom_field_combiner"},
		{"combiner without custom field", ports.CandidateSearch{CustomFieldCombiner: domain.CombineHasAny}, "custom_field"},
		{"created range reversed", ports.CandidateSearch{CreatedFrom: now, CreatedTo: now.Add(-day)}, "created_to"},
		{"gdpr range reversed", ports.CandidateSearch{GDPRExpiresFrom: now, GDPRExpiresTo: now.Add(-day)}, "gdpr_expires_to"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.SearchCandidates(context.Background(), tc.in)
			var invalid *domain.InvalidFilterError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tc.field, invalid.Field)
		})
	}
	assert.Empty(t, dir.searches, "invalid searches never reach upstream")
}

func TestLookupUseCase_SearchByQuery(t *testing.T) {
	uc, dir := newLookupUseCase()

	hits, err := uc.SearchCandidatesByQuery(context.Background(), " Jane Doe ", false, 0, 0)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
	require.Len(t, dir.searches, 1)
	assert.Equal(t, "Jane Doe", dir.searches[0].Query)

	exact, err := uc.SearchCandidatesByQuery(context.Background(), "Jane Doe", true, 0, 0)
	require.NoError(t, err)
	require.Len(t, exact, 1)
	assert.Equal(t, int64(1), exact[0].ID)

	none, err := uc.SearchCandidatesByQuery(context.Background(), "   ", false, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.Len(t, dir.searches, 2, "blank queries are not sent")
}

func TestLookupUseCase_CandidateDetails(t *testing.T) {
	uc, _ := newLookupUseCase()

	recs, err := uc.CandidateDetails(context.Background(), []int64{2, 1}, []string{"name", "unknown"})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, domain.Record{"name": "John Roe"}, recs[0], "request order, projected fields")
	assert.Equal(t, domain.Record{"name": "Jane Doe"}, recs[1])

	full, err := uc.CandidateDetails(context.Background(), []int64{1}, nil)
	require.NoError(t, err)
	assert.Equal(t, "LinkedIn", full[0]["source"])

	_, err = uc.CandidateDetails(context.Background(), []int64{1, 404}, nil)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = uc.CandidateDetails(context.Background(), []int64{0}, nil)
	assert.True(t, errors.Is(err, domain.ErrInvalidFilter))

	tooMany := make([]int64, 101)
	for i := range tooMany {
		tooMany[i] = int64(i + 1)
	}
	_, err = uc.CandidateDetails(context.Background(), tooMany, nil)
	assert.True(t, errors.Is(err, domain.ErrInvalidFilter))

	empty, err := uc.CandidateDetails(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestLookupUseCase_CandidateNotesAndFields(t *testing.T) {
	uc, _ := newLookupUseCase()

	notes, err := uc.CandidateNotes(context.Background(), 1, 0, 0)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Strong Go background", notes[0]["body"])

	_, err = uc.CandidateNotes(context.Background(), 1, -5, 0)
	assert.True(t, errors.Is(err, domain.ErrInvalidFilter))

	_, err = uc.CandidateNotes(context.Background(), 999, 0, 0)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	fields, err := uc.CandidateFields(context.Background())
	require.NoError(t, err)
	assert.Contains(t, fields, "source")
}
