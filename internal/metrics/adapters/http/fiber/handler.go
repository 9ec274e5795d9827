package fiber

import (
	"context"
	"net/http"
	"strconv"

	"recruitment-metrics-service/internal/metrics/core/catalog"
	"recruitment-metrics-service/internal/metrics/core/domain"
	"recruitment-metrics-service/internal/metrics/core/ports"
	"recruitment-metrics-service/internal/metrics/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type GetMetricsUseCase interface {
	Execute(ctx context.Context, in usecase.GetMetricsInput) (*usecase.GetMetricsOutput, error)
}

type CatalogUseCase interface {
	Version() string
	ListMetrics() []usecase.MetricSummary
	DescribeMetrics(kinds ...string) ([]catalog.Descriptor, error)
}

type LookupUseCase interface {
	ListOffers(ctx context.Context, includeArchived bool) ([]domain.Offer, error)
	OfferStages(ctx context.Context, offerID int64) ([]domain.Stage, error)
	ListTags(ctx context.Context) ([]domain.Tag, error)
	ListDisqualifyReasons(ctx context.Context) ([]domain.DisqualifyReason, error)
	OfferDetails(ctx context.Context, offerID int64) (domain.Record, error)
	ListTalentPools(ctx context.Context, scope domain.TalentPoolScope) ([]domain.TalentPool, error)
	TalentPoolDetails(ctx context.Context, talentPoolID int64) (domain.Record, error)
	SearchCandidates(ctx context.Context, s ports.CandidateSearch) ([]domain.CandidateSummary, error)
	SearchCandidatesByQuery(ctx context.Context, query string, exactName bool, limit, offset int) ([]domain.CandidateSummary, error)
	CandidateDetails(ctx context.Context, candidateIDs []int64, fields []string) ([]domain.Record, error)
	CandidateFields(ctx context.Context) ([]string, error)
	CandidateNotes(ctx context.Context, candidateID int64, limit, offset int) ([]domain.Record, error)
}

type MetricsHandler struct {
	uc      GetMetricsUseCase
	catalog CatalogUseCase
	lookups LookupUseCase
}

func NewMetricsHandler(uc GetMetricsUseCase, catalogUC CatalogUseCase, lookups LookupUseCase) *MetricsHandler {
	return &MetricsHandler{uc: uc, catalog: catalogUC, lookups: lookups}
}

// GetMetrics godoc
// @Summary Query a recruitment metric
// @Description Normalizes the request against the metric catalog, aggregates candidate events and formats the result
// @Tags Metrics
// @Produce json
// @Param metric query string true "Metric kind, see /metrics/catalog"
// @Param primary_group query string false "offer | stage | source | participant | disqualify_reason | period"
// @Param secondary_group query string false "Secondary grouping dimension"
// @Param filters query string false "type:value;type:value, e.g. offer:Backend Engineer;source:LinkedIn,Referral"
// @Param date_range query string false "Preset (today ... last_365_days, all_time) or range"
// @Param date_start query string false "YYYY-MM-DD, with date_range=range"
// @Param date_end query string false "YYYY-MM-DD inclusive, with date_range=range"
// @Param include_archived_jobs query bool false "Include archived offers"
// @Param interval query string false "day | week | month | quarter (trend metrics)"
// @Param start_point query string false "candidate_applied | candidate_hired (custom_time_based)"
// @Param end_point query string false "candidate_hired | candidate_disqualified (custom_time_based)"
// @Param sort_order query string false "asc | desc"
// @Param limit query int false "Maximum rows (1..10000)"
// @Param target query string false "table | bar | column | line | sankey"
// @Param raw query bool false "Include the unformatted result table"
// @Success 200 {object} MetricsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /metrics [get]
func (h *MetricsHandler) GetMetrics(c *fiber.Ctx) error {
	if c.Query("metric", "") == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_metric",
			Message: "metric is required",
		})
	}

	req, err := usecase.BuildMetricRequest(usecase.RequestParams{
		Metric:              c.Query("metric"),
		PrimaryGroup:        c.Query("primary_group"),
		SecondaryGroup:      c.Query("secondary_group"),
		Filters:             c.Query("filters"),
		DateRange:           c.Query("date_range"),
		DateStart:           c.Query("date_start"),
		DateEnd:             c.Query("date_end"),
		IncludeArchivedJobs: c.Query("include_archived_jobs"),
		Interval:            c.Query("interval"),
		StartPoint:          c.Query("start_point"),
		EndPoint:            c.Query("end_point"),
		SortOrder:           c.Query("sort_order"),
		Limit:               c.Query("limit"),
	})
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.Execute(c.UserContext(), usecase.GetMetricsInput{
		Request: req,
		Target:  domain.Target(c.Query("target", "")),
	})
	if err != nil {
		return writeError(c, err)
	}

	resp := MetricsResponse{Query: out.Query, Result: out.Result}
	if c.QueryBool("raw", false) {
		resp.Raw = out.Table
	}
	return c.Status(http.StatusOK).JSON(resp)
}

// ListMetrics godoc
// @Summary List catalog metrics
// @Tags Catalog
// @Produce json
// @Success 200 {object} CatalogResponse
// @Router /metrics/catalog [get]
func (h *MetricsHandler) ListMetrics(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(CatalogResponse{
		Version: h.catalog.Version(),
		Metrics: h.catalog.ListMetrics(),
	})
}

// GetMetricDetails godoc
// @Summary Describe one catalog metric
// @Description Allowed groupings, filters, formula and value columns of a metric
// @Tags Catalog
// @Produce json
// @Param metric path string true "Metric kind"
// @Success 200 {object} MetricDetailsResponse
// @Failure 400 {object} ErrorResponse
// @Router /metrics/catalog/{metric} [get]
func (h *MetricsHandler) GetMetricDetails(c *fiber.Ctx) error {
	ds, err := h.catalog.DescribeMetrics(c.Params("metric"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(MetricDetailsResponse{
		Version: h.catalog.Version(),
		Metric:  ds[0],
	})
}

// ListOffers godoc
// @Summary List job offers
// @Tags Lookups
// @Produce json
// @Param include_archived query bool false "Include archived offers"
// @Success 200 {object} OffersResponse
// @Failure 503 {object} ErrorResponse
// @Router /offers [get]
func (h *MetricsHandler) ListOffers(c *fiber.Ctx) error {
	offers, err := h.lookups.ListOffers(c.UserContext(), c.QueryBool("include_archived", false))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(OffersResponse{Offers: offers})
}

// OfferStages godoc
// @Summary List the pipeline stages of an offer
// @Tags Lookups
// @Produce json
// @Param id path int true "Offer id"
// @Success 200 {object} StagesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /offers/{id}/stages [get]
func (h *MetricsHandler) OfferStages(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_filter",
			Message: "offer id must be an integer",
		})
	}

	stages, err := h.lookups.OfferStages(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(StagesResponse{OfferID: id, Stages: stages})
}

// ListTags godoc
// @Summary List candidate tags
// @Tags Lookups
// @Produce json
// @Success 200 {object} TagsResponse
// @Failure 503 {object} ErrorResponse
// @Router /tags [get]
func (h *MetricsHandler) ListTags(c *fiber.Ctx) error {
	tags, err := h.lookups.ListTags(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(TagsResponse{Tags: tags})
}

// ListDisqualifyReasons godoc
// @Summary List disqualification reasons
// @Tags Lookups
// @Produce json
// @Success 200 {object} DisqualifyReasonsResponse
// @Failure 503 {object} ErrorResponse
// @Router /disqualify-reasons [get]
func (h *MetricsHandler) ListDisqualifyReasons(c *fiber.Ctx) error {
	reasons, err := h.lookups.ListDisqualifyReasons(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(DisqualifyReasonsResponse{DisqualifyReasons: reasons})
}
