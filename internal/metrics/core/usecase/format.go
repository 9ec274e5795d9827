package usecase

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"recruitment-metrics-service/internal/metrics/core/domain"
)

const (
	hoursThreshold = 2 * 3600
	secondsPerHour = 3600.0
	secondsPerDay  = 86400.0
	noData         = "n/a"
)

// Formatter shapes result tables for tables and charts. Rounding happens only here.
type Formatter struct{}

func NewFormatter() *Formatter { return &Formatter{} }

// Format renders table for target.
func (f *Formatter) Format(table *domain.ResultTable, target domain.Target) (*domain.FormattedResult, error) {
	if target == "" {
		target = domain.TargetTable
	}
	if !target.Valid() {
		return nil, &domain.UnsupportedTargetError{Target: target, Reason: "expected table, bar, column, line or sankey"}
	}
	if err := CheckTarget(target, table.SecondaryGroup); err != nil {
		return nil, err
	}

	out := &domain.FormattedResult{Target: target, Metric: table.Metric, Meta: table.Meta}
	switch target {
	case domain.TargetTable:
		out.Table = formatTable(table)
	case domain.TargetSankey:
		out.Sankey = formatSankey(table)
	default:
		out.Chart = formatChart(table)
	}
	return out, nil
}

// CheckTarget reports whether a query grouped by secondary can be drawn as target.
func CheckTarget(target domain.Target, secondary domain.Dimension) error {
	if target == domain.TargetSankey && secondary == domain.DimensionNone {
		return &domain.UnsupportedTargetError{Target: target, Reason: "sankey needs a secondary_group"}
	}
	return nil
}

// FormatDuration renders seconds as hours below two hours and as days from there on.
func FormatDuration(seconds float64) string {
	if seconds < hoursThreshold {
		return strconv.FormatFloat(seconds/secondsPerHour, 'f', 1, 64) + " hours"
	}
	return strconv.FormatFloat(seconds/secondsPerDay, 'f', 1, 64) + " days"
}

// FormatRatio renders 0.6 as "60.0%".
func FormatRatio(r float64) string {
	return strconv.FormatFloat(r*100, 'f', 1, 64) + "%"
}

func FormatCount(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func formatValue(v float64, unit domain.Unit) string {
	switch unit {
	case domain.UnitSeconds:
		return FormatDuration(v)
	case domain.UnitRatio:
		return FormatRatio(v)
	}
	return FormatCount(v)
}

// AbbreviateName turns "Jane Doe" into "Jane D.". Single names are kept.
func AbbreviateName(full string) string {
	parts := strings.Fields(full)
	if len(parts) < 2 {
		return strings.TrimSpace(full)
	}
	last := parts[len(parts)-1]
	r, _ := utf8.DecodeRuneInString(last)
	return parts[0] + " " + strings.ToUpper(string(r)) + "."
}

func dimensionTitle(d domain.Dimension) string {
	switch d {
	case domain.DimensionNone:
		return ""
	case domain.DimensionDisqualifyReason:
		return "Disqualify reason"
	}
	s := string(d)
	return strings.ToUpper(s[:1]) + s[1:]
}

func columnTitle(name string) string {
	s := strings.ReplaceAll(name, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// label abbreviates person names on chart targets.
func label(v domain.GroupValue, dim domain.Dimension, chart bool) string {
	if chart && dim == domain.DimensionParticipant {
		return AbbreviateName(v.Label)
	}
	return v.Label
}

func formatTable(t *domain.ResultTable) *domain.FormattedTable {
	out := &domain.FormattedTable{Rows: [][]string{}}
	grouped := t.Shape != domain.ShapeSingle && t.PrimaryGroup != domain.DimensionNone
	if grouped {
		out.Columns = append(out.Columns, domain.TableColumn{Key: string(t.PrimaryGroup), Title: dimensionTitle(t.PrimaryGroup)})
	}
	if t.SecondaryGroup != domain.DimensionNone {
		out.Columns = append(out.Columns, domain.TableColumn{Key: string(t.SecondaryGroup), Title: dimensionTitle(t.SecondaryGroup)})
	}
	for _, c := range t.Columns {
		out.Columns = append(out.Columns, domain.TableColumn{Key: c.Name, Title: columnTitle(c.Name)})
	}

	for _, r := range t.Rows {
		var cells []string
		if grouped {
			cells = append(cells, label(r.Group.Primary, t.PrimaryGroup, false))
		}
		if r.Group.Secondary != nil {
			cells = append(cells, label(*r.Group.Secondary, t.SecondaryGroup, false))
		}
		for _, c := range t.Columns {
			v, ok := r.Metrics[c.Name]
			if !ok {
				cells = append(cells, noData)
				continue
			}
			cells = append(cells, formatValue(v, c.Unit))
		}
		out.Rows = append(out.Rows, cells)
	}
	return out
}

// chartScale picks the display unit of a value column and the conversion into it.
func chartScale(t *domain.ResultTable) (string, func(float64) float64) {
	switch t.Meta.Units[t.ValueColumn] {
	case domain.UnitRatio:
		return "percent", func(v float64) float64 { return v * 100 }
	case domain.UnitSeconds:
		peak := 0.0
		for _, r := range t.Rows {
			if v, ok := r.Metrics[t.ValueColumn]; ok && v > peak {
				peak = v
			}
		}
		if peak < hoursThreshold {
			return "hours", func(v float64) float64 { return v / secondsPerHour }
		}
		return "days", func(v float64) float64 { return v / secondsPerDay }
	}
	return "count", func(v float64) float64 { return v }
}

func formatChart(t *domain.ResultTable) *domain.ChartData {
	unit, scale := chartScale(t)
	out := &domain.ChartData{Categories: []string{}, Series: []domain.Series{}, Unit: unit}

	catIndex := map[string]int{}
	seriesIndex := map[string]int{}
	for _, r := range t.Rows {
		ci, ok := catIndex[r.Group.Primary.Key]
		if !ok {
			ci = len(out.Categories)
			catIndex[r.Group.Primary.Key] = ci
			name := label(r.Group.Primary, t.PrimaryGroup, true)
			if t.Shape == domain.ShapeSingle {
				name = columnTitle(t.ValueColumn)
			}
			out.Categories = append(out.Categories, name)
		}

		sKey, sName := "", columnTitle(t.ValueColumn)
		if r.Group.Secondary != nil {
			sKey, sName = r.Group.Secondary.Key, label(*r.Group.Secondary, t.SecondaryGroup, true)
		}
		si, ok := seriesIndex[sKey]
		if !ok {
			si = len(out.Series)
			seriesIndex[sKey] = si
			out.Series = append(out.Series, domain.Series{Name: sName})
		}

		s := &out.Series[si]
		for len(s.Values) <= ci {
			s.Values = append(s.Values, nil)
		}
		if v, ok := r.Metrics[t.ValueColumn]; ok {
			scaled := scale(v)
			s.Values[ci] = &scaled
		}
	}
	for i := range out.Series {
		for len(out.Series[i].Values) < len(out.Categories) {
			out.Series[i].Values = append(out.Series[i].Values, nil)
		}
	}
	return out
}

// formatSankey links primary values to secondary values; edge weights are the raw cell values.
func formatSankey(t *domain.ResultTable) *domain.SankeyData {
	out := &domain.SankeyData{Nodes: []domain.SankeyNode{}, Edges: []domain.SankeyEdge{}, Unit: string(t.Meta.Units[t.ValueColumn])}
	seen := map[string]bool{}
	node := func(side string, v domain.GroupValue, dim domain.Dimension) string {
		id := side + ":" + v.Key
		if !seen[id] {
			seen[id] = true
			out.Nodes = append(out.Nodes, domain.SankeyNode{ID: id, Label: label(v, dim, true)})
		}
		return id
	}
	for _, r := range t.Rows {
		if r.Group.Secondary == nil {
			continue
		}
		v, ok := r.Metrics[t.ValueColumn]
		if !ok {
			continue
		}
		src := node("source", r.Group.Primary, t.PrimaryGroup)
		dst := node("target", *r.Group.Secondary, t.SecondaryGroup)
		out.Edges = append(out.Edges, domain.SankeyEdge{Source: src, Target: dst, Weight: v})
	}
	return out
}
