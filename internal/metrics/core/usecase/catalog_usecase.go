package usecase

import (
	"recruitment-metrics-service/internal/metrics/core/catalog"
	"recruitment-metrics-service/internal/metrics/core/domain"
)

type MetricSummary struct {
	Metric string       `json:"metric"`
	Name   string       `json:"name"`
	Kind   domain.Shape `json:"kind"`
}

type CatalogUseCase struct {
	catalog *catalog.Catalog
}

func NewCatalogUseCase(c *catalog.Catalog) *CatalogUseCase {
	return &CatalogUseCase{catalog: c}
}

func (uc *CatalogUseCase) Version() string { return uc.catalog.Version() }

func (uc *CatalogUseCase) ListMetrics() []MetricSummary {
	list := uc.catalog.List()
	out := make([]MetricSummary, len(list))
	for i, d := range list {
		out[i] = MetricSummary{Metric: d.Kind, Name: d.Name, Kind: d.Shape}
	}
	return out
}

// DescribeMetrics returns the descriptors of kinds in the order given.
func (uc *CatalogUseCase) DescribeMetrics(kinds ...string) ([]catalog.Descriptor, error) {
	out := make([]catalog.Descriptor, 0, len(kinds))
	for _, k := range kinds {
		d, err := uc.catalog.Describe(k)
		if err != nil {
			return nil, &domain.InvalidMetricError{Metric: k}
		}
		out = append(out, d)
	}
	return out, nil
}
