package fiber

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"recruitment-metrics-service/internal/metrics/core/domain"
	"recruitment-metrics-service/internal/metrics/core/ports"
	"recruitment-metrics-service/internal/metrics/core/usecase"

	"github.com/gofiber/fiber/v2"
)

// OfferDetails godoc
// @Summary Full profile of a job offer
// @Tags Directory
// @Produce json
// @Param id path int true "Offer id"
// @Success 200 {object} OfferDetailsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /offers/{id} [get]
func (h *MetricsHandler) OfferDetails(c *fiber.Ctx) error {
	id, err := pathID(c, "offer_id")
	if err != nil {
		return writeError(c, err)
	}
	offer, err := h.lookups.OfferDetails(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(OfferDetailsResponse{Offer: offer})
}

// ListTalentPools godoc
// @Summary List talent pools
// @Tags Directory
// @Produce json
// @Param scope query string false "not_archived (default) | archived | all"
// @Success 200 {object} TalentPoolsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /talent-pools [get]
func (h *MetricsHandler) ListTalentPools(c *fiber.Ctx) error {
	scope := domain.TalentPoolScope(strings.ToLower(strings.TrimSpace(c.Query("scope"))))
	pools, err := h.lookups.ListTalentPools(c.UserContext(), scope)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(TalentPoolsResponse{TalentPools: pools})
}

// TalentPoolDetails godoc
// @Summary Full profile of a talent pool
// @Tags Directory
// @Produce json
// @Param id path int true "Talent pool id"
// @Success 200 {object} TalentPoolDetailsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /talent-pools/{id} [get]
func (h *MetricsHandler) TalentPoolDetails(c *fiber.Ctx) error {
	id, err := pathID(c, "talent_pool_id")
	if err != nil {
		return writeError(c, err)
	}
	pool, err := h.lookups.TalentPoolDetails(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(TalentPoolDetailsResponse{TalentPool: pool})
}

// SearchCandidates godoc
// @Summary Search candidates by structured filters
// @Description List parameters are comma separated. Dates are YYYY-MM-DD or RFC 3339.
// @Tags Directory
// @Produce json
// @Param offer_ids query string false "Offer ids"
// @Param disqualify_reasons query string false "Disqualify reason names"
// @Param is_disqualified query bool false "Only disqualified (true) or not disqualified (false) candidates"
// @Param candidate_tag_ids query string false "Tag ids"
// @Param skills query string false "Skill keywords"
// @Param skills_combiner query string false "in | not_in | contains | not_contains | has_all_of"
// @Param talent_pools query string false "Talent pool ids"
// @Param talent_pools_combiner query string false "in | not_in | all_in"
// @Param has_stage query bool false "Candidates with (true) or without (false) a stage"
// @Param on_stage query string false "Stage names"
// @Param gdpr_expires_from query string false "Earliest GDPR expiry"
// @Param gdpr_expires_to query string false "Latest GDPR expiry"
// @Param created_from query string false "Earliest creation date"
// @Param created_to query string false "Latest creation date"
// @Param custom_fields query string false "Custom field search key"
// @Param custom_fields_combiner query string false "has_any | has_none"
// @Param limit query int false "Page size (1..10000, default 100)"
// @Param offset query int false "Paging offset"
// @Success 200 {object} CandidatesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /candidates [get]
func (h *MetricsHandler) SearchCandidates(c *fiber.Ctx) error {
	s, err := candidateSearch(c)
	if err != nil {
		return writeError(c, err)
	}
	hits, err := h.lookups.SearchCandidates(c.UserContext(), s)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(CandidatesResponse{Candidates: hits})
}

// SearchCandidatesByQuery godoc
// @Summary Full-text candidate search
// @Tags Directory
// @Produce json
// @Param q query string true "Query over name, email and other fields"
// @Param exact_name query bool false "Keep only candidates whose name equals the query"
// @Param limit query int false "Page size (1..10000, default 100)"
// @Param offset query int false "Paging offset"
// @Success 200 {object} CandidatesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /candidates/search [get]
func (h *MetricsHandler) SearchCandidatesByQuery(c *fiber.Ctx) error {
	limit, offset, err := paging(c)
	if err != nil {
		return writeError(c, err)
	}
	hits, err := h.lookups.SearchCandidatesByQuery(c.UserContext(), c.Query("q"), c.QueryBool("exact_name", false), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(CandidatesResponse{Candidates: hits})
}

// CandidateDetails godoc
// @Summary Candidate profiles by id
// @Tags Directory
// @Produce json
// @Param ids query string true "Comma separated candidate ids, at most 100"
// @Param fields query string false "Comma separated fields, see /candidates/fields; empty returns every field"
// @Success 200 {object} CandidateDetailsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /candidates/details [get]
func (h *MetricsHandler) CandidateDetails(c *fiber.Ctx) error {
	ids, err := idList("ids", c.Query("ids"))
	if err != nil {
		return writeError(c, err)
	}
	recs, err := h.lookups.CandidateDetails(c.UserContext(), ids, stringList(c.Query("fields")))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(CandidateDetailsResponse{Candidates: recs})
}

// CandidateFields godoc
// @Summary Field names of a candidate profile
// @Tags Directory
// @Produce json
// @Success 200 {object} CandidateFieldsResponse
// @Failure 503 {object} ErrorResponse
// @Router /candidates/fields [get]
func (h *MetricsHandler) CandidateFields(c *fiber.Ctx) error {
	fields, err := h.lookups.CandidateFields(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(CandidateFieldsResponse{Fields: fields})
}

// CandidateNotes godoc
// @Summary Notes attached to a candidate
// @Tags Directory
// @Produce json
// @Param id path int true "Candidate id"
// @Param limit query int false "Page size (default 100)"
// @Param offset query int false "Paging offset"
// @Success 200 {object} CandidateNotesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /candidates/{id}/notes [get]
func (h *MetricsHandler) CandidateNotes(c *fiber.Ctx) error {
	id, err := pathID(c, "candidate_id")
	if err != nil {
		return writeError(c, err)
	}
	limit, offset, err := paging(c)
	if err != nil {
		return writeError(c, err)
	}
	notes, err := h.lookups.CandidateNotes(c.UserContext(), id, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(CandidateNotesResponse{CandidateID: id, Notes: notes})
}

func candidateSearch(c *fiber.Ctx) (ports.CandidateSearch, error) {
	var (
		s   ports.CandidateSearch
		err error
	)
	if s.OfferIDs, err = idList("offer_ids", c.Query("offer_ids")); err != nil {
		return s, err
	}
	if s.TagIDs, err = idList("candidate_tag_ids", c.Query("candidate_tag_ids")); err != nil {
		return s, err
	}
	if s.TalentPoolIDs, err = idList("talent_pools", c.Query("talent_pools")); err != nil {
		return s, err
	}
	if s.Disqualified, err = optionalBool("is_disqualified", c.Query("is_disqualified")); err != nil {
		return s, err
	}
	if s.HasStage, err = optionalBool("has_stage", c.Query("has_stage")); err != nil {
		return s, err
	}
	if s.Limit, s.Offset, err = paging(c); err != nil {
		return s, err
	}

	bounds := []struct {
		field string
		dst   *time.Time
	}{
		{"gdpr_expires_from", &s.GDPRExpiresFrom},
		{"gdpr_expires_to", &s.GDPRExpiresTo},
		{"created_from", &s.CreatedFrom},
		{"created_to", &s.CreatedTo},
	}
	for _, b := range bounds {
		if *b.dst, err = usecase.ParseSearchTime(b.field, c.Query(b.field)); err != nil {
			return s, err
		}
	}

	s.DisqualifyReasons = stringList(c.Query("disqualify_reasons"))
	s.Skills = stringList(c.Query("skills"))
	s.SkillsCombiner = strings.TrimSpace(c.Query("skills_combiner"))
	s.TalentPoolsCombiner = strings.TrimSpace(c.Query("talent_pools_combiner"))
	s.OnStages = stringList(c.Query("on_stage"))
	s.CustomField = c.Query("custom_fields")
	s.CustomFieldCombiner = strings.TrimSpace(c.Query("custom_fields_combiner"))
	return s, nil
}

func pathID(c *fiber.Ctx, field string) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, &domain.InvalidFilterError{Field: field, Reason: "expected an integer id"}
	}
	return id, nil
}

func paging(c *fiber.Ctx) (int, int, error) {
	limit, err := intQuery(c, "limit")
	if err != nil {
		return 0, 0, err
	}
	offset, err := intQuery(c, "offset")
	if err != nil {
		return 0, 0, err
	}
	return limit, offset, nil
}

func intQuery(c *fiber.Ctx, field string) (int, error) {
	raw := strings.TrimSpace(c.Query(field))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &domain.InvalidFilterError{Field: field, Reason: "expected an integer"}
	}
	return n, nil
}

func optionalBool(field, raw string) (*bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, &domain.InvalidFilterError{Field: field, Reason: "expected true or false"}
	}
	return &b, nil
}

func idList(field, raw string) ([]int64, error) {
	var ids []int64
	for _, v := range stringList(raw) {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, &domain.InvalidFilterError{Field: field, Reason: "expected comma separated integer ids"}
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func stringList(raw string) []string {
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
