package domain

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// QueryRecord is the audit entry of one executed metric query.
type QueryRecord struct {
	ID             uuid.UUID
	Metric         string
	Shape          string
	Dimensions     []string
	Filters        map[string][]string
	DateFrom       *time.Time
	DateTo         *time.Time
	Target         string
	Rows           int
	SkippedRecords int
	Status         Status
	ErrorCode      string
	ErrorMessage   string
	Duration       time.Duration
	ExecutedAt     time.Time
	DedupeKey      string
}
