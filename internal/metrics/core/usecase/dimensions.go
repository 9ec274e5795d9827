package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"recruitment-metrics-service/internal/metrics/core/domain"
)

const (
	keyUnknown    = "unknown"
	keyUnassigned = "unassigned"
	keyNoReason   = "none"
)

// dimensions maps events to group values and knows each dimension's canonical order.
type dimensions struct {
	offers     map[int64]domain.Offer
	stages     map[int64]domain.Stage
	reasons    map[int64]string
	interval   domain.Interval
	known      map[domain.Dimension][]string
	stageByKey bool
}

// newDimensions loads only the reference data the query's groups need.
func newDimensions(ctx context.Context, lk *lookups, q domain.CanonicalQuery, offerIDs []int64) (*dimensions, error) {
	d := &dimensions{
		offers:     map[int64]domain.Offer{},
		stages:     map[int64]domain.Stage{},
		reasons:    map[int64]string{},
		interval:   q.Interval,
		known:      map[domain.Dimension][]string{},
		stageByKey: q.Shape != domain.ShapeFunnel,
	}
	uses := func(dim domain.Dimension) bool { return q.PrimaryGroup == dim || q.SecondaryGroup == dim }

	if uses(domain.DimensionOffer) || uses(domain.DimensionStage) {
		all, err := lk.allOffers(ctx)
		if err != nil {
			return nil, err
		}
		inScope := map[int64]bool{}
		for _, id := range offerIDs {
			inScope[id] = true
		}
		for _, o := range all {
			if !inScope[o.ID] {
				continue
			}
			d.offers[o.ID] = o
			d.known[domain.DimensionOffer] = append(d.known[domain.DimensionOffer], strconv.FormatInt(o.ID, 10))
		}
	}

	if uses(domain.DimensionStage) {
		seen := map[string]bool{}
		for _, id := range d.known[domain.DimensionOffer] {
			offerID, _ := strconv.ParseInt(id, 10, 64)
			stages, err := lk.stagesOf(ctx, offerID)
			if err != nil {
				return nil, err
			}
			for _, s := range stages {
				d.stages[s.ID] = s
				k := d.stageKey(s)
				if !seen[k] {
					seen[k] = true
					d.known[domain.DimensionStage] = append(d.known[domain.DimensionStage], k)
				}
			}
		}
	}

	if uses(domain.DimensionDisqualifyReason) {
		reasons, err := lk.allReasons(ctx)
		if err != nil {
			return nil, err
		}
		for _, r := range reasons {
			d.reasons[r.ID] = r.Name
			d.known[domain.DimensionDisqualifyReason] = append(d.known[domain.DimensionDisqualifyReason], strconv.FormatInt(r.ID, 10))
		}
	}
	return d, nil
}

// stageKey groups stages by name across pipelines; funnels keep one pipeline and key by id.
func (d *dimensions) stageKey(s domain.Stage) string {
	if d.stageByKey {
		return strings.ToLower(strings.TrimSpace(s.Name))
	}
	return strconv.FormatInt(s.ID, 10)
}

func (d *dimensions) stageValue(stageID int64) domain.GroupValue {
	if stageID == 0 {
		return domain.GroupValue{Key: keyUnknown, Label: "Unknown stage"}
	}
	if s, ok := d.stages[stageID]; ok {
		return domain.GroupValue{Key: d.stageKey(s), Label: s.Name}
	}
	return domain.GroupValue{Key: "stage-" + strconv.FormatInt(stageID, 10), Label: "Stage " + strconv.FormatInt(stageID, 10)}
}

// value returns the group of e on dim. ok is false when the event cannot be placed, e.g. a period without timestamp.
func (d *dimensions) value(dim domain.Dimension, p *placement, e domain.CandidateEvent) (domain.GroupValue, bool) {
	switch dim {
	case domain.DimensionNone:
		return domain.AllGroup, true
	case domain.DimensionOffer:
		key := strconv.FormatInt(p.offerID, 10)
		if o, ok := d.offers[p.offerID]; ok {
			return domain.GroupValue{Key: key, Label: o.Title}, true
		}
		return domain.GroupValue{Key: key, Label: "Offer " + key}, true
	case domain.DimensionStage:
		return d.stageValue(e.StageID), true
	case domain.DimensionSource:
		if p.source == "" {
			return domain.GroupValue{Key: keyUnknown, Label: "Unknown"}, true
		}
		return domain.GroupValue{Key: strings.ToLower(p.source), Label: p.source}, true
	case domain.DimensionParticipant:
		if e.ParticipantID == 0 {
			return domain.GroupValue{Key: keyUnassigned, Label: "Unassigned"}, true
		}
		key := strconv.FormatInt(e.ParticipantID, 10)
		label := strings.TrimSpace(e.ParticipantName)
		if label == "" {
			label = "Participant " + key
		}
		return domain.GroupValue{Key: key, Label: label}, true
	case domain.DimensionDisqualifyReason:
		if e.DisqualifyReasonID == 0 {
			return domain.GroupValue{Key: keyNoReason, Label: "No reason"}, true
		}
		key := strconv.FormatInt(e.DisqualifyReasonID, 10)
		if name, ok := d.reasons[e.DisqualifyReasonID]; ok {
			return domain.GroupValue{Key: key, Label: name}, true
		}
		return domain.GroupValue{Key: key, Label: "Reason " + key}, true
	case domain.DimensionPeriod:
		if !e.HasTimestamp() {
			return domain.GroupValue{}, false
		}
		return periodValue(bucketStart(e.Timestamp, d.interval), d.interval), true
	}
	return domain.GroupValue{}, false
}

// orderKeys returns keys in the dimension's order: canonical keys first, unknown keys lexically after.
// Source and participant have no canonical order and sort by total, largest first.
func (d *dimensions) orderKeys(dim domain.Dimension, totals map[string]float64, labels map[string]string) []string {
	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}

	if dim == domain.DimensionSource || dim == domain.DimensionParticipant {
		sort.Slice(keys, func(i, j int) bool {
			a, b := keys[i], keys[j]
			if totals[a] != totals[b] {
				return totals[a] > totals[b]
			}
			if labels[a] != labels[b] {
				return labels[a] < labels[b]
			}
			return a < b
		})
		return keys
	}

	pos := map[string]int{}
	for i, k := range d.known[dim] {
		pos[k] = i
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		pa, okA := pos[a]
		pb, okB := pos[b]
		switch {
		case okA && okB:
			return pa < pb
		case okA != okB:
			return okA
		}
		return a < b
	})
	return keys
}

func bucketStart(t time.Time, interval domain.Interval) time.Time {
	t = t.UTC()
	switch interval {
	case domain.IntervalDay:
		return truncateDay(t)
	case domain.IntervalWeek:
		return truncateWeek(t)
	case domain.IntervalQuarter:
		return truncateQuarter(t)
	}
	return truncateMonth(t)
}

func nextBucket(t time.Time, interval domain.Interval) time.Time {
	switch interval {
	case domain.IntervalDay:
		return t.AddDate(0, 0, 1)
	case domain.IntervalWeek:
		return t.AddDate(0, 0, 7)
	case domain.IntervalQuarter:
		return t.AddDate(0, 3, 0)
	}
	return t.AddDate(0, 1, 0)
}

func periodValue(start time.Time, interval domain.Interval) domain.GroupValue {
	key := start.Format(dateLayout)
	var label string
	switch interval {
	case domain.IntervalDay:
		label = key
	case domain.IntervalWeek:
		label = "Week of " + key
	case domain.IntervalQuarter:
		label = fmt.Sprintf("%d-Q%d", start.Year(), (int(start.Month())-1)/3+1)
	default:
		label = start.Format("Jan 2006")
	}
	return domain.GroupValue{Key: key, Label: label}
}

// grid accumulates metric values per (primary, secondary) cell.
type grid struct {
	primary, secondary domain.Dimension
	cells              map[[2]string]map[string]float64
	primaryLabels      map[string]string
	secondaryLabels    map[string]string
	primaryTotals      map[string]float64
	secondaryTotals    map[string]float64
	orderMetric        string
}

// newGrid orders groups by orderMetric totals where a dimension has no canonical order.
func newGrid(primary, secondary domain.Dimension, orderMetric string) *grid {
	return &grid{
		primary:         primary,
		secondary:       secondary,
		cells:           map[[2]string]map[string]float64{},
		primaryLabels:   map[string]string{},
		secondaryLabels: map[string]string{},
		primaryTotals:   map[string]float64{},
		secondaryTotals: map[string]float64{},
		orderMetric:     orderMetric,
	}
}

// cell returns the metrics of a cell, creating it on first use.
func (g *grid) cell(pv, sv domain.GroupValue) map[string]float64 {
	k := [2]string{pv.Key, sv.Key}
	m, ok := g.cells[k]
	if !ok {
		m = map[string]float64{}
		g.cells[k] = m
		g.primaryLabels[pv.Key] = pv.Label
		g.primaryTotals[pv.Key] += 0
		if g.secondary != domain.DimensionNone {
			g.secondaryLabels[sv.Key] = sv.Label
			g.secondaryTotals[sv.Key] += 0
		}
	}
	return m
}

func (g *grid) add(pv, sv domain.GroupValue, metric string, v float64) {
	g.cell(pv, sv)[metric] += v
	if metric == g.orderMetric {
		g.primaryTotals[pv.Key] += v
		if g.secondary != domain.DimensionNone {
			g.secondaryTotals[sv.Key] += v
		}
	}
}

func (g *grid) rows(d *dimensions) []domain.AggregationRow {
	primaryKeys := d.orderKeys(g.primary, g.primaryTotals, g.primaryLabels)
	var secondaryKeys []string
	if g.secondary != domain.DimensionNone {
		secondaryKeys = d.orderKeys(g.secondary, g.secondaryTotals, g.secondaryLabels)
	}

	rows := make([]domain.AggregationRow, 0, len(g.cells))
	for _, pk := range primaryKeys {
		pv := domain.GroupValue{Key: pk, Label: g.primaryLabels[pk]}
		if g.secondary == domain.DimensionNone {
			if m, ok := g.cells[[2]string{pk, domain.AllGroup.Key}]; ok {
				rows = append(rows, domain.AggregationRow{Group: domain.GroupKey{Primary: pv}, Metrics: m})
			}
			continue
		}
		for _, sk := range secondaryKeys {
			m, ok := g.cells[[2]string{pk, sk}]
			if !ok {
				continue
			}
			sv := domain.GroupValue{Key: sk, Label: g.secondaryLabels[sk]}
			rows = append(rows, domain.AggregationRow{Group: domain.GroupKey{Primary: pv, Secondary: &sv}, Metrics: m})
		}
	}
	return rows
}
