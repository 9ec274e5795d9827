package fiber

import (
	"recruitment-metrics-service/internal/metrics/core/catalog"
	"recruitment-metrics-service/internal/metrics/core/domain"
	"recruitment-metrics-service/internal/metrics/core/usecase"
)

type MetricsResponse struct {
	Query  domain.CanonicalQuery   `json:"query"`
	Result *domain.FormattedResult `json:"result"`
	Raw    *domain.ResultTable     `json:"raw,omitempty"`
}

type CatalogResponse struct {
	Version string                  `json:"version" example:"2025.1"`
	Metrics []usecase.MetricSummary `json:"metrics"`
}

type MetricDetailsResponse struct {
	Version string             `json:"version" example:"2025.1"`
	Metric  catalog.Descriptor `json:"metric"`
}

type OffersResponse struct {
	Offers []domain.Offer `json:"offers"`
}

type StagesResponse struct {
	OfferID int64          `json:"offer_id" example:"10"`
	Stages  []domain.Stage `json:"stages"`
}

type TagsResponse struct {
	Tags []domain.Tag `json:"tags"`
}

type DisqualifyReasonsResponse struct {
	DisqualifyReasons []domain.DisqualifyReason `json:"disqualify_reasons"`
}

type OfferDetailsResponse struct {
	Offer domain.Record `json:"offer"`
}

type TalentPoolsResponse struct {
	TalentPools []domain.TalentPool `json:"talent_pools"`
}

type TalentPoolDetailsResponse struct {
	TalentPool domain.Record `json:"talent_pool"`
}

type CandidatesResponse struct {
	Candidates []domain.CandidateSummary `json:"candidates"`
}

type CandidateDetailsResponse struct {
	Candidates []domain.Record `json:"candidates"`
}

type CandidateFieldsResponse struct {
	Fields []string `json:"fields" example:"emails,id,name"`
}

type CandidateNotesResponse struct {
	CandidateID int64           `json:"candidate_id" example:"1"`
	Notes       []domain.Record `json:"notes"`
}

type ErrorResponse struct {
	Error      string  `json:"error" example:"invalid_filter"`
	Message    string  `json:"message,omitempty" example:"invalid stage: no stage named \"Onsite\""`
	Candidates []int64 `json:"candidates,omitempty"`
}
