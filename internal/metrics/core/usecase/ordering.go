package usecase

import (
	"sort"

	"recruitment-metrics-service/internal/metrics/core/domain"
)

// sortRows reorders rows by the value column. Rows without a value stay last in their natural order.
func sortRows(rows []domain.AggregationRow, column string, order domain.SortOrder) {
	if order == "" {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, okA := rows[i].Metrics[column]
		b, okB := rows[j].Metrics[column]
		switch {
		case !okA || !okB:
			return okA && !okB
		case order == domain.SortAsc:
			return a < b
		}
		return a > b
	})
}

func limitRows(rows []domain.AggregationRow, limit int) []domain.AggregationRow {
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}

// projectRows keeps only the declared columns.
func projectRows(rows []domain.AggregationRow, columns []domain.MetricColumn) []domain.AggregationRow {
	for i := range rows {
		m := make(map[string]float64, len(columns))
		for _, c := range columns {
			if v, ok := rows[i].Metrics[c.Name]; ok {
				m[c.Name] = v
			}
		}
		rows[i].Metrics = m
	}
	return rows
}
