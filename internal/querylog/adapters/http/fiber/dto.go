package fiber

import "time"

// QueryRecordResponse is one audit log entry.
// @Description Executed metric query
type QueryRecordResponse struct {
	ID             string              `json:"id"`
	Metric         string              `json:"metric" example:"proceed_rate"`
	Shape          string              `json:"shape,omitempty" example:"funnel"`
	Dimensions     []string            `json:"dimensions"`
	Filters        map[string][]string `json:"filters"`
	DateFrom       *time.Time          `json:"date_from,omitempty"`
	DateTo         *time.Time          `json:"date_to,omitempty"`
	Target         string              `json:"target,omitempty" example:"table"`
	Rows           int                 `json:"rows"`
	SkippedRecords int                 `json:"skipped_records"`
	Status         string              `json:"status" example:"succeeded"`
	ErrorCode      string              `json:"error_code,omitempty"`
	ErrorMessage   string              `json:"error_message,omitempty"`
	DurationMS     int64               `json:"duration_ms"`
	ExecutedAt     time.Time           `json:"executed_at"`
}

type ListQueriesResponse struct {
	Queries []QueryRecordResponse `json:"queries"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_limit"`
	Message string `json:"message,omitempty" example:"limit must be between 1 and 500"`
}
