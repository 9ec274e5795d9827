package usecase

import (
	"strings"
	"time"

	"recruitment-metrics-service/internal/metrics/core/domain"
)

const dateLayout = "2006-01-02"

// Date range presets.
const (
	PresetRange       = "range"
	PresetAllTime     = "all_time"
	PresetToday       = "today"
	PresetYesterday   = "yesterday"
	PresetThisWeek    = "this_week"
	PresetLastWeek    = "last_week"
	PresetThisMonth   = "this_month"
	PresetLastMonth   = "last_month"
	PresetThisQuarter = "this_quarter"
	PresetLastQuarter = "last_quarter"
	PresetThisYear    = "this_year"
	PresetLastYear    = "last_year"
)

var lastNDays = map[string]int{
	"last_7_days":   7,
	"last_14_days":  14,
	"last_30_days":  30,
	"last_60_days":  60,
	"last_90_days":  90,
	"last_365_days": 365,
}

// Presets lists every accepted date range preset.
func Presets() []string {
	return []string{
		PresetRange, PresetToday, PresetYesterday, PresetThisWeek, PresetLastWeek,
		PresetThisMonth, PresetLastMonth, PresetThisQuarter, PresetLastQuarter,
		PresetThisYear, PresetLastYear, "last_7_days", "last_14_days", "last_30_days",
		"last_60_days", "last_90_days", "last_365_days", PresetAllTime,
	}
}

// ParseDateRange builds a DateRangeInput from transport strings.
// start and end are YYYY-MM-DD (end inclusive) or RFC3339 instants (end exclusive).
func ParseDateRange(preset, start, end string) (*domain.DateRangeInput, error) {
	preset = strings.TrimSpace(preset)
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if preset == "" && start == "" && end == "" {
		return nil, nil
	}
	if preset != "" && preset != PresetRange {
		if start != "" || end != "" {
			return nil, &domain.InvalidFilterError{Field: "date_range", Reason: "date_start/date_end need date_range=range"}
		}
		return &domain.DateRangeInput{Preset: preset}, nil
	}

	from, err := parseBound("date_start", start, false)
	if err != nil {
		return nil, err
	}
	to, err := parseBound("date_end", end, true)
	if err != nil {
		return nil, err
	}
	return &domain.DateRangeInput{Preset: PresetRange, From: from, To: to}, nil
}

// parseBound parses a date or an RFC3339 instant. An inclusive date end moves to the next midnight.
func parseBound(field, s string, end bool) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		if end {
			t = t.AddDate(0, 0, 1)
		}
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, &domain.InvalidFilterError{Field: field, Reason: "expected YYYY-MM-DD or RFC3339, got " + s}
	}
	return t.UTC(), nil
}

// resolveDateRange turns the request's date scope into a half-open range. nil means all time.
func resolveDateRange(in *domain.DateRangeInput, now time.Time) (domain.DateRange, error) {
	if in == nil {
		return domain.DateRange{}, nil
	}

	switch in.Preset {
	case "", PresetRange:
		r := domain.DateRange{From: in.From.UTC(), To: in.To.UTC()}
		if !r.From.IsZero() && !r.To.IsZero() && !r.From.Before(r.To) {
			return domain.DateRange{}, &domain.InvalidFilterError{Field: "date_range", Reason: "start must be before end"}
		}
		return r, nil
	case PresetAllTime:
		return domain.DateRange{}, nil
	}

	if !in.From.IsZero() || !in.To.IsZero() {
		return domain.DateRange{}, &domain.InvalidFilterError{Field: "date_range", Reason: "explicit bounds need date_range=range"}
	}

	now = now.UTC()
	today := truncateDay(now)

	switch in.Preset {
	case PresetToday:
		return domain.DateRange{From: today, To: today.AddDate(0, 0, 1)}, nil
	case PresetYesterday:
		return domain.DateRange{From: today.AddDate(0, 0, -1), To: today}, nil
	case PresetThisWeek:
		w := truncateWeek(now)
		return domain.DateRange{From: w, To: w.AddDate(0, 0, 7)}, nil
	case PresetLastWeek:
		w := truncateWeek(now)
		return domain.DateRange{From: w.AddDate(0, 0, -7), To: w}, nil
	case PresetThisMonth:
		m := truncateMonth(now)
		return domain.DateRange{From: m, To: m.AddDate(0, 1, 0)}, nil
	case PresetLastMonth:
		m := truncateMonth(now)
		return domain.DateRange{From: m.AddDate(0, -1, 0), To: m}, nil
	case PresetThisQuarter:
		q := truncateQuarter(now)
		return domain.DateRange{From: q, To: q.AddDate(0, 3, 0)}, nil
	case PresetLastQuarter:
		q := truncateQuarter(now)
		return domain.DateRange{From: q.AddDate(0, -3, 0), To: q}, nil
	case PresetThisYear:
		y := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
		return domain.DateRange{From: y, To: y.AddDate(1, 0, 0)}, nil
	case PresetLastYear:
		y := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
		return domain.DateRange{From: y.AddDate(-1, 0, 0), To: y}, nil
	}

	if n, ok := lastNDays[in.Preset]; ok {
		// today counts as one of the n days
		return domain.DateRange{From: today.AddDate(0, 0, -(n - 1)), To: today.AddDate(0, 0, 1)}, nil
	}
	return domain.DateRange{}, &domain.InvalidFilterError{Field: "date_range", Reason: "unknown preset " + in.Preset}
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// truncateWeek returns the Monday starting t's week.
func truncateWeek(t time.Time) time.Time {
	d := truncateDay(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

func truncateMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func truncateQuarter(t time.Time) time.Time {
	m := ((int(t.Month())-1)/3)*3 + 1
	return time.Date(t.Year(), time.Month(m), 1, 0, 0, 0, 0, time.UTC)
}
