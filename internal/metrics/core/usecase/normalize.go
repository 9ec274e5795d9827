package usecase

import (
	"context"
	"errors"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"recruitment-metrics-service/internal/metrics/core/catalog"
	"recruitment-metrics-service/internal/metrics/core/domain"
	"recruitment-metrics-service/internal/metrics/core/ports"
)

var symbolicFilters = map[string]bool{
	domain.FilterOffer:            true,
	domain.FilterStage:            true,
	domain.FilterTag:              true,
	domain.FilterDisqualifyReason: true,
}

// Normalizer validates metric requests against the catalog and resolves symbolic filters to IDs.
type Normalizer struct {
	catalog   *catalog.Catalog
	resources ports.ResourcePort
	now       func() time.Time
}

func NewNormalizer(c *catalog.Catalog, resources ports.ResourcePort, now func() time.Time) *Normalizer {
	if now == nil {
		now = time.Now
	}
	return &Normalizer{catalog: c, resources: resources, now: now}
}

// Normalize builds the canonical form of req. Catalog checks run before any upstream lookup.
func (n *Normalizer) Normalize(ctx context.Context, req domain.MetricRequest) (domain.CanonicalQuery, error) {
	return n.normalize(ctx, req, newLookups(n.resources))
}

func (n *Normalizer) normalize(ctx context.Context, req domain.MetricRequest, lk *lookups) (domain.CanonicalQuery, error) {
	metric := strings.TrimSpace(req.Metric)
	desc, err := n.catalog.Describe(metric)
	if err != nil {
		return domain.CanonicalQuery{}, &domain.InvalidMetricError{Metric: metric}
	}

	q := domain.CanonicalQuery{
		Metric:    desc.Kind,
		Shape:     desc.Shape,
		SortOrder: req.SortOrder,
		Limit:     req.Limit,
	}
	if req.IncludeArchivedJobs != nil {
		q.IncludeArchivedJobs = *req.IncludeArchivedJobs
	}

	if err := applyGroups(desc, req, &q); err != nil {
		return domain.CanonicalQuery{}, err
	}
	if err := applyShapeOptions(desc, req, &q); err != nil {
		return domain.CanonicalQuery{}, err
	}

	q.DateRange, err = resolveDateRange(req.DateRange, n.now())
	if err != nil {
		return domain.CanonicalQuery{}, err
	}

	fields := make([]string, 0, len(req.Filters))
	for field := range req.Filters {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		if !desc.AllowsFilter(field) {
			return domain.CanonicalQuery{}, &domain.InvalidFilterError{Field: field, Reason: "not accepted by metric " + desc.Kind}
		}
	}
	for _, field := range desc.RequiredFilters {
		if _, ok := req.Filters[field]; !ok {
			return domain.CanonicalQuery{}, &domain.InvalidFilterError{Field: field, Reason: "required by metric " + desc.Kind}
		}
	}

	// offer first: stage names resolve inside the offers it selects
	slices.SortStableFunc(fields, func(a, b string) int {
		switch {
		case a == b:
			return 0
		case a == domain.FilterOffer:
			return -1
		case b == domain.FilterOffer:
			return 1
		}
		return 0
	})

	var offerIDs []int64
	for _, field := range fields {
		fv := req.Filters[field]
		rf, err := n.resolveFilter(ctx, lk, field, fv, q.IncludeArchivedJobs, offerIDs)
		if err != nil {
			return domain.CanonicalQuery{}, err
		}
		if field == domain.FilterOffer {
			offerIDs = parseIDs(rf.Values)
		}
		q.Filters = append(q.Filters, rf)
	}
	domain.SortFilters(q.Filters)

	if desc.Shape == domain.ShapeFunnel && len(offerIDs) != 1 {
		return domain.CanonicalQuery{}, &domain.InvalidFilterError{
			Field:  domain.FilterOffer,
			Reason: "funnel metrics need exactly one offer, pipelines differ between offers",
		}
	}
	return q, nil
}

func applyGroups(desc catalog.Descriptor, req domain.MetricRequest, q *domain.CanonicalQuery) error {
	q.PrimaryGroup = req.PrimaryGroup
	if q.PrimaryGroup == domain.DimensionNone {
		q.PrimaryGroup = desc.DefaultPrimary
	}
	if q.PrimaryGroup != domain.DimensionNone && !desc.AllowsPrimary(q.PrimaryGroup) {
		return &domain.InvalidGroupingError{
			Metric: desc.Kind, Field: "primary_group", Dimension: q.PrimaryGroup, Allowed: desc.PrimaryGroups,
		}
	}

	q.SecondaryGroup = req.SecondaryGroup
	if q.SecondaryGroup == domain.DimensionNone {
		return nil
	}
	if !desc.AllowsSecondary(q.SecondaryGroup) || q.SecondaryGroup == q.PrimaryGroup {
		allowed := make([]domain.Dimension, 0, len(desc.SecondaryGroups))
		for _, d := range desc.SecondaryGroups {
			if d != q.PrimaryGroup {
				allowed = append(allowed, d)
			}
		}
		return &domain.InvalidGroupingError{
			Metric: desc.Kind, Field: "secondary_group", Dimension: q.SecondaryGroup, Allowed: allowed,
		}
	}
	return nil
}

func applyShapeOptions(desc catalog.Descriptor, req domain.MetricRequest, q *domain.CanonicalQuery) error {
	switch {
	case desc.Shape == domain.ShapeTrend:
		q.Interval = req.Interval
		if q.Interval == "" {
			q.Interval = domain.IntervalMonth
		}
		switch q.Interval {
		case domain.IntervalDay, domain.IntervalWeek, domain.IntervalMonth, domain.IntervalQuarter:
		default:
			return &domain.InvalidFilterError{Field: "interval", Reason: "expected day, week, month or quarter"}
		}
	case req.Interval != "":
		return &domain.InvalidFilterError{Field: "interval", Reason: "only trend metrics accept an interval"}
	}

	switch {
	case desc.CustomPoints:
		q.StartPoint, q.EndPoint = desc.StartPoint, desc.EndPoint
		if req.StartPoint != "" {
			q.StartPoint = req.StartPoint
		}
		if req.EndPoint != "" {
			q.EndPoint = req.EndPoint
		}
		if q.StartPoint != domain.PointCandidateApplied && q.StartPoint != domain.PointCandidateHired {
			return &domain.InvalidFilterError{Field: "start_point", Reason: "expected candidate_applied or candidate_hired"}
		}
		if q.EndPoint != domain.PointCandidateHired && q.EndPoint != domain.PointCandidateDisqualified {
			return &domain.InvalidFilterError{Field: "end_point", Reason: "expected candidate_hired or candidate_disqualified"}
		}
		if q.StartPoint == q.EndPoint {
			return &domain.InvalidFilterError{Field: "end_point", Reason: "must differ from start_point"}
		}
	case desc.IsTimeBased():
		if (req.StartPoint != "" && req.StartPoint != desc.StartPoint) || (req.EndPoint != "" && req.EndPoint != desc.EndPoint) {
			return &domain.InvalidFilterError{Field: "start_point", Reason: "fixed for metric " + desc.Kind + ", use custom_time_based"}
		}
		q.StartPoint, q.EndPoint = desc.StartPoint, desc.EndPoint
	case req.StartPoint != "" || req.EndPoint != "":
		return &domain.InvalidFilterError{Field: "start_point", Reason: "only time-based metrics accept event points"}
	}

	switch q.SortOrder {
	case "":
	case domain.SortAsc, domain.SortDesc:
		if !desc.Sortable {
			return &domain.InvalidFilterError{Field: "sort_order", Reason: "metric " + desc.Kind + " is not sortable"}
		}
	default:
		return &domain.InvalidFilterError{Field: "sort_order", Reason: "expected asc or desc"}
	}

	if q.Limit < 0 || q.Limit > domain.MaxLimit {
		return &domain.InvalidFilterError{Field: "limit", Reason: "must be between 1 and " + strconv.Itoa(domain.MaxLimit)}
	}
	return nil
}

func (n *Normalizer) resolveFilter(
	ctx context.Context,
	lk *lookups,
	field string,
	fv domain.FilterValue,
	includeArchived bool,
	offerIDs []int64,
) (domain.ResolvedFilter, error) {
	if field == domain.FilterAppliedAt {
		if fv.Range == nil || len(fv.Values) > 0 {
			return domain.ResolvedFilter{}, &domain.InvalidFilterError{Field: field, Reason: "expected a from..to range"}
		}
		from, err := parseBound(field, strings.TrimSpace(fv.Range.From), false)
		if err != nil {
			return domain.ResolvedFilter{}, err
		}
		to, err := parseBound(field, strings.TrimSpace(fv.Range.To), true)
		if err != nil {
			return domain.ResolvedFilter{}, err
		}
		r := domain.DateRange{From: from, To: to}
		if r.IsUnbounded() {
			return domain.ResolvedFilter{}, &domain.InvalidFilterError{Field: field, Reason: "range has no bounds"}
		}
		if !from.IsZero() && !to.IsZero() && !from.Before(to) {
			return domain.ResolvedFilter{}, &domain.InvalidFilterError{Field: field, Reason: "start must be before end"}
		}
		return domain.ResolvedFilter{Field: field, Range: &r}, nil
	}

	if fv.Range != nil {
		return domain.ResolvedFilter{}, &domain.InvalidFilterError{Field: field, Reason: "ranges are only accepted for applied_at"}
	}
	values := cleanValues(fv.Values)
	if len(values) == 0 {
		return domain.ResolvedFilter{}, &domain.InvalidFilterError{Field: field, Reason: "no values given"}
	}
	if !symbolicFilters[field] {
		sort.Strings(values)
		return domain.ResolvedFilter{Field: field, Values: values}, nil
	}

	var ids []int64
	for _, v := range values {
		var (
			matched []int64
			err     error
		)
		switch field {
		case domain.FilterOffer:
			matched, err = resolveOffer(ctx, lk, v, includeArchived)
		case domain.FilterStage:
			matched, err = resolveStage(ctx, lk, v, includeArchived, offerIDs)
		case domain.FilterTag:
			matched, err = resolveTag(ctx, lk, v)
		case domain.FilterDisqualifyReason:
			matched, err = resolveReason(ctx, lk, v)
		}
		if err != nil {
			return domain.ResolvedFilter{}, err
		}
		ids = append(ids, matched...)
	}
	return domain.ResolvedFilter{Field: field, Values: formatIDs(ids)}, nil
}

// resolveOffer matches an offer ID, then a case-insensitive title among offers in scope.
func resolveOffer(ctx context.Context, lk *lookups, v string, includeArchived bool) ([]int64, error) {
	if id, err := strconv.ParseInt(v, 10, 64); err == nil {
		if _, ok, err := lk.offer(ctx, id); err != nil {
			return nil, err
		} else if ok {
			return []int64{id}, nil
		}
	}

	offers, err := lk.offersInScope(ctx, includeArchived)
	if err != nil {
		return nil, err
	}
	var ids []int64
	for _, o := range offers {
		if strings.EqualFold(strings.TrimSpace(o.Title), v) {
			ids = append(ids, o.ID)
		}
	}
	return oneMatch(domain.FilterOffer, v, ids)
}

// resolveStage matches stages of the selected offers (or every offer in scope).
// The same stage name in several pipelines is expected; it is ambiguous only within one pipeline.
func resolveStage(ctx context.Context, lk *lookups, v string, includeArchived bool, offerIDs []int64) ([]int64, error) {
	scope := offerIDs
	if len(scope) == 0 {
		offers, err := lk.offersInScope(ctx, includeArchived)
		if err != nil {
			return nil, err
		}
		for _, o := range offers {
			scope = append(scope, o.ID)
		}
	}

	id, idErr := strconv.ParseInt(v, 10, 64)
	var byName []int64
	for _, offerID := range scope {
		stages, err := lk.stagesOf(ctx, offerID)
		if err != nil {
			return nil, err
		}
		var inPipeline []int64
		for _, s := range stages {
			if idErr == nil && s.ID == id {
				return []int64{id}, nil
			}
			if strings.EqualFold(strings.TrimSpace(s.Name), v) {
				inPipeline = append(inPipeline, s.ID)
			}
		}
		if len(inPipeline) > 1 {
			return nil, &domain.AmbiguousFilterError{Field: domain.FilterStage, Value: v, Candidates: sortedIDs(inPipeline)}
		}
		byName = append(byName, inPipeline...)
	}
	if len(byName) == 0 {
		return nil, &domain.NotFoundError{Field: domain.FilterStage, Value: v}
	}
	return byName, nil
}

func resolveTag(ctx context.Context, lk *lookups, v string) ([]int64, error) {
	tags, err := lk.allTags(ctx)
	if err != nil {
		return nil, err
	}
	id, idErr := strconv.ParseInt(v, 10, 64)
	var ids []int64
	for _, t := range tags {
		if idErr == nil && t.ID == id {
			return []int64{id}, nil
		}
		if strings.EqualFold(strings.TrimSpace(t.Name), v) {
			ids = append(ids, t.ID)
		}
	}
	return oneMatch(domain.FilterTag, v, ids)
}

func resolveReason(ctx context.Context, lk *lookups, v string) ([]int64, error) {
	reasons, err := lk.allReasons(ctx)
	if err != nil {
		return nil, err
	}
	id, idErr := strconv.ParseInt(v, 10, 64)
	var ids []int64
	for _, r := range reasons {
		if idErr == nil && r.ID == id {
			return []int64{id}, nil
		}
		if strings.EqualFold(strings.TrimSpace(r.Name), v) {
			ids = append(ids, r.ID)
		}
	}
	return oneMatch(domain.FilterDisqualifyReason, v, ids)
}

func oneMatch(field, v string, ids []int64) ([]int64, error) {
	switch len(ids) {
	case 0:
		return nil, &domain.NotFoundError{Field: field, Value: v}
	case 1:
		return ids, nil
	}
	return nil, &domain.AmbiguousFilterError{Field: field, Value: v, Candidates: sortedIDs(ids)}
}

func cleanValues(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func sortedIDs(ids []int64) []int64 {
	out := append([]int64(nil), ids...)
	slices.Sort(out)
	return slices.Compact(out)
}

func formatIDs(ids []int64) []string {
	ids = sortedIDs(ids)
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = strconv.FormatInt(id, 10)
	}
	return out
}

func parseIDs(values []string) []int64 {
	out := make([]int64, 0, len(values))
	for _, v := range values {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			out = append(out, id)
		}
	}
	return out
}

// isInputError reports whether err is a caller-input fault.
func isInputError(err error) bool {
	return errors.Is(err, domain.ErrInvalidMetric) ||
		errors.Is(err, domain.ErrInvalidGrouping) ||
		errors.Is(err, domain.ErrInvalidFilter) ||
		errors.Is(err, domain.ErrAmbiguousFilter) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrUnsupportedTarget)
}
