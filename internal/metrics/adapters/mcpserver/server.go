// Package mcpserver exposes the metric engine as MCP tools over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"recruitment-metrics-service/internal/metrics/core/catalog"
	"recruitment-metrics-service/internal/metrics/core/domain"
	"recruitment-metrics-service/internal/metrics/core/ports"
	"recruitment-metrics-service/internal/metrics/core/usecase"
)

const serverName = "recruitment-metrics"

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

type Server struct {
	server  *mcp.Server
	metrics GetMetricsUseCase
	catalog CatalogUseCase
	lookups LookupUseCase
	logger  *slog.Logger
}

func New(metrics GetMetricsUseCase, catalogUC CatalogUseCase, lookups LookupUseCase, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		server:  mcp.NewServer(&mcp.Implementation{Name: serverName, Version: version}, nil),
		metrics: metrics,
		catalog: catalogUC,
		lookups: lookups,
		logger:  logger.With("component", "mcp"),
	}
	s.registerCatalogTools()
	s.registerQueryTool()
	s.registerLookupTools()
	s.registerDirectoryTools()
	return s
}

// MCP returns the underlying server, e.g. to connect it to a non-stdio transport.
func (s *Server) MCP() *mcp.Server {
	return s.server
}

// Run serves tools over stdin/stdout until the client disconnects or ctx is done.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("serving MCP tools over stdio", "catalog_version", s.catalog.Version())
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// toolError prefixes err with its code so agents can tell input mistakes from outages.
func toolError(tool string, err error) error {
	return fmt.Errorf("%s: %s: %w", tool, domain.ErrorCode(err), err)
}

// ----------------------------------------------------------------------------
// catalog
// ----------------------------------------------------------------------------

type emptyInput struct{}

type listMetricsOutput struct {
	Version string                  `json:"version"`
	Metrics []usecase.MetricSummary `json:"metrics"`
}

type metricDetailsInput struct {
	Metrics []string `json:"metrics" jsonschema:"metric kinds to describe, e.g. proceed_rate"`
}

type metricDetailsOutput struct {
	Version string               `json:"version"`
	Metrics []catalog.Descriptor `json:"metrics"`
}

func (s *Server) registerCatalogTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_metrics",
		Description: "Return the recruitment metrics this server can compute with their shape (single, breakdown, funnel, trend). Use get_metric_details for groupings and filters.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, any, error) {
		return nil, listMetricsOutput{Version: s.catalog.Version(), Metrics: s.catalog.ListMetrics()}, nil
	})

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_metric_details",
		Description: "Describe metrics: allowed primary and secondary groups, required and optional filters, formula and value columns.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in metricDetailsInput) (*mcp.CallToolResult, any, error) {
		if len(in.Metrics) == 0 {
			return nil, nil, toolError("get_metric_details", &domain.InvalidFilterError{Field: "metrics", Reason: "name at least one metric"})
		}
		ds, err := s.catalog.DescribeMetrics(in.Metrics...)
		if err != nil {
			return nil, nil, toolError("get_metric_details", err)
		}
		return nil, metricDetailsOutput{Version: s.catalog.Version(), Metrics: ds}, nil
	})
}

// ----------------------------------------------------------------------------
// query
// ----------------------------------------------------------------------------

type queryMetricInput struct {
	Metric              string `json:"metric" jsonschema:"metric kind from list_metrics"`
	PrimaryGroup        string `json:"primary_group,omitempty" jsonschema:"offer, stage, source, participant, disqualify_reason or period"`
	SecondaryGroup      string `json:"secondary_group,omitempty" jsonschema:"second grouping dimension, different from primary_group"`
	Filters             string `json:"filters,omitempty" jsonschema:"type:value;type:value, comma separated values, from..to ranges; e.g. offer:Backend Engineer;source:LinkedIn,Referral"`
	DateRange           string `json:"date_range,omitempty" jsonschema:"today, yesterday, this_week, last_week, this_month, last_month, this_quarter, last_quarter, this_year, last_year, last_N_days (7, 14, 30, 60, 90, 365), all_time or range"`
	DateStart           string `json:"date_start,omitempty" jsonschema:"YYYY-MM-DD, with date_range=range"`
	DateEnd             string `json:"date_end,omitempty" jsonschema:"YYYY-MM-DD inclusive, with date_range=range"`
	IncludeArchivedJobs *bool  `json:"include_archived_jobs,omitempty" jsonschema:"include archived offers"`
	Interval            string `json:"interval,omitempty" jsonschema:"day, week, month or quarter for *_over_time metrics"`
	StartPoint          string `json:"start_point,omitempty" jsonschema:"candidate_applied or candidate_hired for custom_time_based"`
	EndPoint            string `json:"end_point,omitempty" jsonschema:"candidate_hired or candidate_disqualified for custom_time_based"`
	SortOrder           string `json:"sort_order,omitempty" jsonschema:"asc or desc, sortable metrics only"`
	Limit               int    `json:"limit,omitempty" jsonschema:"maximum rows, 1 to 10000"`
	Target              string `json:"target,omitempty" jsonschema:"table (default), bar, column, line or sankey"`
}

type queryMetricOutput struct {
	Query  domain.CanonicalQuery   `json:"query"`
	Result *domain.FormattedResult `json:"result"`
}

func (in queryMetricInput) params() usecase.RequestParams {
	p := usecase.RequestParams{
		Metric:         in.Metric,
		PrimaryGroup:   in.PrimaryGroup,
		SecondaryGroup: in.SecondaryGroup,
		Filters:        in.Filters,
		DateRange:      in.DateRange,
		DateStart:      in.DateStart,
		DateEnd:        in.DateEnd,
		Interval:       in.Interval,
		StartPoint:     in.StartPoint,
		EndPoint:       in.EndPoint,
		SortOrder:      in.SortOrder,
	}
	if in.IncludeArchivedJobs != nil {
		p.IncludeArchivedJobs = strconv.FormatBool(*in.IncludeArchivedJobs)
	}
	if in.Limit != 0 {
		p.Limit = strconv.Itoa(in.Limit)
	}
	return p
}

func (s *Server) registerQueryTool() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "query_metric",
		Description: "Compute a recruitment metric. The request is validated against the metric catalog; offer, stage, tag and " +
			"disqualify_reason filters accept ids or names. Returns the canonical query and the result formatted for the target.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in queryMetricInput) (*mcp.CallToolResult, any, error) {
		req, err := usecase.BuildMetricRequest(in.params())
		if err != nil {
			return nil, nil, toolError("query_metric", err)
		}
		out, err := s.metrics.Execute(ctx, usecase.GetMetricsInput{Request: req, Target: domain.Target(in.Target)})
		if err != nil {
			return nil, nil, toolError("query_metric", err)
		}
		return nil, queryMetricOutput{Query: out.Query, Result: out.Result}, nil
	})
}

// ----------------------------------------------------------------------------
// lookups
// ----------------------------------------------------------------------------

type listOffersInput struct {
	IncludeArchived bool `json:"include_archived,omitempty" jsonschema:"also list archived offers"`
}

type offerStagesInput struct {
	OfferID int64 `json:"offer_id" jsonschema:"offer id from list_offers"`
}

func (s *Server) registerLookupTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_offers",
		Description: "List job offers (id, title, status). Archived offers are hidden unless include_archived is set.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in listOffersInput) (*mcp.CallToolResult, any, error) {
		offers, err := s.lookups.ListOffers(ctx, in.IncludeArchived)
		if err != nil {
			return nil, nil, toolError("list_offers", err)
		}
		return nil, map[string]any{"offers": offers}, nil
	})

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_offer_stages",
		Description: "List the pipeline stages of an offer in pipeline order.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in offerStagesInput) (*mcp.CallToolResult, any, error) {
		stages, err := s.lookups.OfferStages(ctx, in.OfferID)
		if err != nil {
			return nil, nil, toolError("get_offer_stages", err)
		}
		return nil, map[string]any{"offer_id": in.OfferID, "stages": stages}, nil
	})

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_tags",
		Description: "List candidate tags with their usage counts.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, any, error) {
		tags, err := s.lookups.ListTags(ctx)
		if err != nil {
			return nil, nil, toolError("list_tags", err)
		}
		return nil, map[string]any{"tags": tags}, nil
	})

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_disqualify_reasons",
		Description: "List the reasons a candidate can be disqualified with.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, any, error) {
		reasons, err := s.lookups.ListDisqualifyReasons(ctx)
		if err != nil {
			return nil, nil, toolError("list_disqualify_reasons", err)
		}
		return nil, map[string]any{"disqualify_reasons": reasons}, nil
	})
}

// ----------------------------------------------------------------------------
// directory
// ----------------------------------------------------------------------------

type offerDetailsInput struct {
	OfferID int64 `json:"offer_id" jsonschema:"offer id from list_offers"`
}

type listTalentPoolsInput struct {
	Scope string `json:"scope,omitempty" jsonschema:"not_archived (default), archived or all"`
}

type talentPoolDetailsInput struct {
	TalentPoolID int64 `json:"talent_pool_id" jsonschema:"talent pool id from list_talent_pools"`
}

type searchCandidatesInput struct {
	OfferIDs             []int64  `json:"offer_ids,omitempty" jsonschema:"offers the candidates applied to, ids from list_offers"`
	DisqualifyReasons    []string `json:"disqualify_reasons,omitempty" jsonschema:"reason names from list_disqualify_reasons"`
	IsDisqualified       *bool    `json:"is_disqualified,omitempty" jsonschema:"only disqualified (true) or only not disqualified (false) candidates"`
	CandidateTagIDs      []int64  `json:"candidate_tag_ids,omitempty" jsonschema:"tag ids from list_tags"`
	Skills               []string `json:"skills,omitempty" jsonschema:"skill keywords"`
	SkillsCombiner       string   `json:"skills_combiner,omitempty" jsonschema:"in (default), not_in, contains, not_contains or has_all_of"`
	TalentPools          []int64  `json:"talent_pools,omitempty" jsonschema:"talent pool ids from list_talent_pools"`
	TalentPoolsCombiner  string   `json:"talent_pools_combiner,omitempty" jsonschema:"in (default), not_in or all_in"`
	HasStage             *bool    `json:"has_stage,omitempty" jsonschema:"candidates with (true) or without (false) a pipeline stage"`
	OnStage              []string `json:"on_stage,omitempty" jsonschema:"stage names from get_offer_stages"`
	GDPRExpiresFrom      string   `json:"gdpr_expires_from,omitempty" jsonschema:"YYYY-MM-DD or RFC 3339"`
	GDPRExpiresTo        string   `json:"gdpr_expires_to,omitempty" jsonschema:"YYYY-MM-DD or RFC 3339"`
	CreatedFrom          string   `json:"created_from,omitempty" jsonschema:"YYYY-MM-DD or RFC 3339"`
	CreatedTo            string   `json:"created_to,omitempty" jsonschema:"YYYY-MM-DD or RFC 3339"`
	CustomFields         string   `json:"custom_fields,omitempty" jsonschema:"custom field search key"`
	CustomFieldsCombiner string   `json:"custom_fields_combiner,omitempty" jsonschema:"has_any or has_none, required with custom_fields"`
	Limit                int      `json:"limit,omitempty" jsonschema:"page size, 1 to 10000, default 100"`
	Offset               int      `json:"offset,omitempty" jsonschema:"paging offset"`
}

func (in searchCandidatesInput) search() (ports.CandidateSearch, error) {
	s := ports.CandidateSearch{
		OfferIDs:            in.OfferIDs,
		DisqualifyReasons:   in.DisqualifyReasons,
		Disqualified:        in.IsDisqualified,
		TagIDs:              in.CandidateTagIDs,
		Skills:              in.Skills,
		SkillsCombiner:      in.SkillsCombiner,
		TalentPoolIDs:       in.TalentPools,
		TalentPoolsCombiner: in.TalentPoolsCombiner,
		HasStage:            in.HasStage,
		OnStages:            in.OnStage,
		CustomField:         in.CustomFields,
		CustomFieldCombiner: in.CustomFieldsCombiner,
		Limit:               in.Limit,
		Offset:              in.Offset,
	}
	bounds := []struct {
		field, value string
		dst          *time.Time
	}{
		{"gdpr_expires_from", in.GDPRExpiresFrom, &s.GDPRExpiresFrom},
		{"gdpr_expires_to", in.GDPRExpiresTo, &s.GDPRExpiresTo},
		{"created_from", in.CreatedFrom, &s.CreatedFrom},
		{"created_to", in.CreatedTo, &s.CreatedTo},
	}
	for _, b := range bounds {
		t, err := usecase.ParseSearchTime(b.field, b.value)
		if err != nil {
			return ports.CandidateSearch{}, err
		}
		*b.dst = t
	}
	return s, nil
}

type searchByQueryInput struct {
	Query     string `json:"query" jsonschema:"full-text query over name, email and other fields"`
	ExactName bool   `json:"exact_name,omitempty" jsonschema:"keep only candidates whose name equals the query"`
	Limit     int    `json:"limit,omitempty" jsonschema:"page size, 1 to 10000, default 100"`
	Offset    int    `json:"offset,omitempty" jsonschema:"paging offset"`
}

type candidatesDetailsInput struct {
	CandidateIDs []int64  `json:"candidate_ids" jsonschema:"candidate ids, at most 100"`
	Fields       []string `json:"fields,omitempty" jsonschema:"fields to return, see list_candidate_fields; empty returns every field"`
}

type candidateNotesInput struct {
	CandidateID int64 `json:"candidate_id" jsonschema:"candidate id"`
	Limit       int   `json:"limit,omitempty" jsonschema:"page size, default 100"`
	Offset      int   `json:"offset,omitempty" jsonschema:"paging offset"`
}

func (s *Server) registerDirectoryTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_offer_details",
		Description: "Return the full profile of a job offer.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in offerDetailsInput) (*mcp.CallToolResult, any, error) {
		offer, err := s.lookups.OfferDetails(ctx, in.OfferID)
		if err != nil {
			return nil, nil, toolError("get_offer_details", err)
		}
		return nil, map[string]any{"offer": offer}, nil
	})

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_talent_pools",
		Description: "List talent pools (id, title, status). Archived pools are hidden unless scope is archived or all.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in listTalentPoolsInput) (*mcp.CallToolResult, any, error) {
		pools, err := s.lookups.ListTalentPools(ctx, domain.TalentPoolScope(in.Scope))
		if err != nil {
			return nil, nil, toolError("list_talent_pools", err)
		}
		return nil, map[string]any{"talent_pools": pools}, nil
	})

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_talent_pool_details",
		Description: "Return the full profile of a talent pool.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in talentPoolDetailsInput) (*mcp.CallToolResult, any, error) {
		pool, err := s.lookups.TalentPoolDetails(ctx, in.TalentPoolID)
		if err != nil {
			return nil, nil, toolError("get_talent_pool_details", err)
		}
		return nil, map[string]any{"talent_pool": pool}, nil
	})

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "search_candidates",
		Description: "Find candidates (id, name, emails) matching a combination of offer, disqualification, tag, skill, " +
			"talent pool, stage, date and custom field filters. Use the list tools to turn names into ids.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in searchCandidatesInput) (*mcp.CallToolResult, any, error) {
		search, err := in.search()
		if err != nil {
			return nil, nil, toolError("search_candidates", err)
		}
		hits, err := s.lookups.SearchCandidates(ctx, search)
		if err != nil {
			return nil, nil, toolError("search_candidates", err)
		}
		return nil, map[string]any{"candidates": hits}, nil
	})

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_candidate_by_query",
		Description: "Full-text candidate search across name, email and other fields. Set exact_name to keep only exact name matches.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in searchByQueryInput) (*mcp.CallToolResult, any, error) {
		hits, err := s.lookups.SearchCandidatesByQuery(ctx, in.Query, in.ExactName, in.Limit, in.Offset)
		if err != nil {
			return nil, nil, toolError("search_candidate_by_query", err)
		}
		return nil, map[string]any{"candidates": hits}, nil
	})

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_candidates_details",
		Description: "Return candidate profiles by id, restricted to the requested fields. Empty fields returns every field.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in candidatesDetailsInput) (*mcp.CallToolResult, any, error) {
		recs, err := s.lookups.CandidateDetails(ctx, in.CandidateIDs, in.Fields)
		if err != nil {
			return nil, nil, toolError("get_candidates_details", err)
		}
		return nil, map[string]any{"candidates": recs}, nil
	})

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_candidate_fields",
		Description: "List the field names of a candidate profile, for get_candidates_details.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, any, error) {
		fields, err := s.lookups.CandidateFields(ctx)
		if err != nil {
			return nil, nil, toolError("list_candidate_fields", err)
		}
		return nil, map[string]any{"fields": fields}, nil
	})

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_candidate_notes",
		Description: "Return the notes attached to a candidate profile.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in candidateNotesInput) (*mcp.CallToolResult, any, error) {
		notes, err := s.lookups.CandidateNotes(ctx, in.CandidateID, in.Limit, in.Offset)
		if err != nil {
			return nil, nil, toolError("get_candidate_notes", err)
		}
		return nil, map[string]any{"candidate_id": in.CandidateID, "notes": notes}, nil
	})
}
