package usecase

import (
	"strings"

	"recruitment-metrics-service/internal/metrics/core/domain"
)

// ParseFilters parses the "type:value;type:value" filter syntax.
// Values are comma separated; "from..to" is a range.
//
//	offer:Backend Engineer;source:LinkedIn,Referral;applied_at:2025-01-01..2025-03-31
func ParseFilters(s string) (map[string]domain.FilterValue, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	out := map[string]domain.FilterValue{}
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		field, raw, ok := strings.Cut(part, ":")
		field = strings.ToLower(strings.TrimSpace(field))
		raw = strings.TrimSpace(raw)
		if !ok || field == "" || raw == "" {
			return nil, &domain.InvalidFilterError{Field: "filters", Reason: "expected type:value, got " + part}
		}
		if _, dup := out[field]; dup {
			return nil, &domain.InvalidFilterError{Field: field, Reason: "given more than once"}
		}

		if from, to, isRange := strings.Cut(raw, ".."); isRange {
			out[field] = domain.FilterValue{Range: &domain.ValueRange{
				From: strings.TrimSpace(from),
				To:   strings.TrimSpace(to),
			}}
			continue
		}

		var values []string
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}
		out[field] = domain.FilterValue{Values: values}
	}
	return out, nil
}
