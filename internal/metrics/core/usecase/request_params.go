package usecase

import (
	"strconv"
	"strings"
	"time"

	"recruitment-metrics-service/internal/metrics/core/domain"
)

// RequestParams is the flat, string-typed request shape shared by the transports.
type RequestParams struct {
	Metric              string
	PrimaryGroup        string
	SecondaryGroup      string
	Filters             string
	DateRange           string
	DateStart           string
	DateEnd             string
	IncludeArchivedJobs string
	Interval            string
	StartPoint          string
	EndPoint            string
	SortOrder           string
	Limit               string
}

// BuildMetricRequest parses transport parameters. Values are only checked for syntax here;
// the normalizer validates them against the catalog.
func BuildMetricRequest(p RequestParams) (domain.MetricRequest, error) {
	req := domain.MetricRequest{
		Metric:         strings.TrimSpace(p.Metric),
		PrimaryGroup:   domain.Dimension(lower(p.PrimaryGroup)),
		SecondaryGroup: domain.Dimension(lower(p.SecondaryGroup)),
		Interval:       domain.Interval(lower(p.Interval)),
		StartPoint:     domain.EventPoint(lower(p.StartPoint)),
		EndPoint:       domain.EventPoint(lower(p.EndPoint)),
		SortOrder:      domain.SortOrder(lower(p.SortOrder)),
	}

	filters, err := ParseFilters(p.Filters)
	if err != nil {
		return domain.MetricRequest{}, err
	}
	req.Filters = filters

	dr, err := ParseDateRange(lower(p.DateRange), p.DateStart, p.DateEnd)
	if err != nil {
		return domain.MetricRequest{}, err
	}
	req.DateRange = dr

	if s := strings.TrimSpace(p.IncludeArchivedJobs); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return domain.MetricRequest{}, &domain.InvalidFilterError{Field: "include_archived_jobs", Reason: "expected true or false"}
		}
		req.IncludeArchivedJobs = &b
	}

	if s := strings.TrimSpace(p.Limit); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return domain.MetricRequest{}, &domain.InvalidFilterError{Field: "limit", Reason: "expected an integer"}
		}
		req.Limit = n
	}
	return req, nil
}

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ParseSearchTime reads a candidate search bound given as YYYY-MM-DD or RFC 3339. Empty is the zero time.
func ParseSearchTime(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, &domain.InvalidFilterError{Field: field, Reason: "expected YYYY-MM-DD or an RFC 3339 timestamp"}
	}
	return t, nil
}
