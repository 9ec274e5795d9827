package domain

import "time"

// Dimension names a grouping attribute of a metric.
type Dimension string

const (
	DimensionNone             Dimension = ""
	DimensionOffer            Dimension = "offer"
	DimensionStage            Dimension = "stage"
	DimensionSource           Dimension = "source"
	DimensionParticipant      Dimension = "participant"
	DimensionDisqualifyReason Dimension = "disqualify_reason"
	DimensionPeriod           Dimension = "period"
)

// Interval is the bucket width of trend metrics.
type Interval string

const (
	IntervalDay     Interval = "day"
	IntervalWeek    Interval = "week"
	IntervalMonth   Interval = "month"
	IntervalQuarter Interval = "quarter"
)

// EventPoint is an endpoint of a time-based single value.
type EventPoint string

const (
	PointCandidateApplied      EventPoint = "candidate_applied"
	PointCandidateHired        EventPoint = "candidate_hired"
	PointCandidateDisqualified EventPoint = "candidate_disqualified"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Filter fields understood by the normalizer.
const (
	FilterOffer            = "offer"
	FilterStage            = "stage"
	FilterTag              = "tag"
	FilterSource           = "source"
	FilterParticipant      = "participant"
	FilterDisqualifyReason = "disqualify_reason"
	FilterAppliedAt        = "applied_at"
)

// MaxLimit caps the number of rows a caller may ask for.
const MaxLimit = 10_000

// ValueRange is an inclusive-start, exclusive-end textual range as supplied by a caller.
// Dates (YYYY-MM-DD) are whole days with an inclusive end; RFC3339 instants are used as-is.
type ValueRange struct {
	From string
	To   string
}

// FilterValue is either a list of values or a range.
type FilterValue struct {
	Values []string
	Range  *ValueRange
}

// DateRangeInput is the caller's date scope: a named preset or explicit bounds.
// Zero From/To leave that side open.
type DateRangeInput struct {
	Preset string
	From   time.Time
	To     time.Time
}

// MetricRequest is the declarative request an agent issues.
type MetricRequest struct {
	Metric              string
	PrimaryGroup        Dimension
	SecondaryGroup      Dimension
	Filters             map[string]FilterValue
	DateRange           *DateRangeInput
	IncludeArchivedJobs *bool

	Interval   Interval
	StartPoint EventPoint
	EndPoint   EventPoint
	SortOrder  SortOrder
	Limit      int
}
