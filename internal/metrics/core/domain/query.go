package domain

import (
	"sort"
	"time"
)

// Shape tells the engine how a metric is computed.
type Shape string

const (
	ShapeSingle    Shape = "single"
	ShapeBreakdown Shape = "breakdown"
	ShapeFunnel    Shape = "funnel"
	ShapeTrend     Shape = "trend"
)

// DateRange is a half-open [From, To) window. A zero bound is open.
type DateRange struct {
	From time.Time `json:"from,omitempty"`
	To   time.Time `json:"to,omitempty"`
}

func (r DateRange) IsUnbounded() bool {
	return r.From.IsZero() && r.To.IsZero()
}

// Contains reports whether t falls inside the range. A zero t is never contained.
func (r DateRange) Contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && !t.Before(r.To) {
		return false
	}
	return true
}

// ResolvedFilter carries stable IDs (or literal values) for one filter field.
type ResolvedFilter struct {
	Field  string     `json:"field"`
	Values []string   `json:"values,omitempty"`
	Range  *DateRange `json:"range,omitempty"`
}

// CanonicalQuery is a validated, default-applied, ID-resolved MetricRequest.
// The normalizer never shares slices with the request, and nothing mutates a query after it is built.
type CanonicalQuery struct {
	Metric              string           `json:"metric"`
	Shape               Shape            `json:"shape"`
	PrimaryGroup        Dimension        `json:"primary_group,omitempty"`
	SecondaryGroup      Dimension        `json:"secondary_group,omitempty"`
	Filters             []ResolvedFilter `json:"filters,omitempty"`
	DateRange           DateRange        `json:"date_range"`
	IncludeArchivedJobs bool             `json:"include_archived_jobs"`
	Interval            Interval         `json:"interval,omitempty"`
	StartPoint          EventPoint       `json:"start_point,omitempty"`
	EndPoint            EventPoint       `json:"end_point,omitempty"`
	SortOrder           SortOrder        `json:"sort_order,omitempty"`
	Limit               int              `json:"limit,omitempty"`
}

// Filter returns the resolved filter for field, if any.
func (q CanonicalQuery) Filter(field string) (ResolvedFilter, bool) {
	for _, f := range q.Filters {
		if f.Field == field {
			return f, true
		}
	}
	return ResolvedFilter{}, false
}

// AsRequest turns the query back into a request. Normalizing the result yields an equal query.
func (q CanonicalQuery) AsRequest() MetricRequest {
	archived := q.IncludeArchivedJobs
	req := MetricRequest{
		Metric:              q.Metric,
		PrimaryGroup:        q.PrimaryGroup,
		SecondaryGroup:      q.SecondaryGroup,
		IncludeArchivedJobs: &archived,
		Interval:            q.Interval,
		StartPoint:          q.StartPoint,
		EndPoint:            q.EndPoint,
		SortOrder:           q.SortOrder,
		Limit:               q.Limit,
	}
	if !q.DateRange.IsUnbounded() {
		req.DateRange = &DateRangeInput{From: q.DateRange.From, To: q.DateRange.To}
	}
	if len(q.Filters) > 0 {
		req.Filters = make(map[string]FilterValue, len(q.Filters))
		for _, f := range q.Filters {
			fv := FilterValue{Values: append([]string(nil), f.Values...)}
			if f.Range != nil {
				fv.Range = &ValueRange{From: formatBound(f.Range.From), To: formatBound(f.Range.To)}
			}
			req.Filters[f.Field] = fv
		}
	}
	return req
}

func formatBound(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// SortFilters orders filters by field so equal queries compare equal.
func SortFilters(filters []ResolvedFilter) {
	sort.Slice(filters, func(i, j int) bool { return filters[i].Field < filters[j].Field })
}
