package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidMetric       = errors.New("invalid metric")
	ErrInvalidGrouping     = errors.New("invalid grouping")
	ErrInvalidFilter       = errors.New("invalid filter")
	ErrAmbiguousFilter     = errors.New("ambiguous filter")
	ErrNotFound            = errors.New("not found")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrMalformedData       = errors.New("malformed upstream data")
	ErrUnsupportedTarget   = errors.New("unsupported target")
)

// InvalidMetricError is returned for a metric kind the catalog does not know.
type InvalidMetricError struct {
	Metric string
}

func (e *InvalidMetricError) Error() string {
	return fmt.Sprintf("invalid metric %q: not in catalog", e.Metric)
}

func (e *InvalidMetricError) Unwrap() error { return ErrInvalidMetric }

type InvalidGroupingError struct {
	Metric    string
	Field     string // primary_group or secondary_group
	Dimension Dimension
	Allowed   []Dimension
}

func (e *InvalidGroupingError) Error() string {
	allowed := make([]string, len(e.Allowed))
	for i, d := range e.Allowed {
		allowed[i] = string(d)
	}
	return fmt.Sprintf("invalid %s %q for metric %q (allowed: %s)",
		e.Field, e.Dimension, e.Metric, strings.Join(allowed, ", "))
}

func (e *InvalidGroupingError) Unwrap() error { return ErrInvalidGrouping }

type InvalidFilterError struct {
	Field  string
	Reason string
}

func (e *InvalidFilterError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *InvalidFilterError) Unwrap() error { return ErrInvalidFilter }

// AmbiguousFilterError lists every ID a symbolic filter value matched.
type AmbiguousFilterError struct {
	Field      string
	Value      string
	Candidates []int64
}

func (e *AmbiguousFilterError) Error() string {
	ids := make([]string, len(e.Candidates))
	for i, id := range e.Candidates {
		ids[i] = strconv.FormatInt(id, 10)
	}
	return fmt.Sprintf("ambiguous %s %q: matches ids %s", e.Field, e.Value, strings.Join(ids, ", "))
}

func (e *AmbiguousFilterError) Unwrap() error { return ErrAmbiguousFilter }

type NotFoundError struct {
	Field string
	Value string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Field, e.Value)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// UpstreamUnavailableError is returned once retries against the recruitment API are exhausted.
type UpstreamUnavailableError struct {
	Endpoint string
	Attempts int
	Cause    error
}

func (e *UpstreamUnavailableError) Error() string {
	msg := fmt.Sprintf("upstream %s unavailable after %d attempt(s)", e.Endpoint, e.Attempts)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *UpstreamUnavailableError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrUpstreamUnavailable}
	}
	return []error{ErrUpstreamUnavailable, e.Cause}
}

type MalformedDataError struct {
	Metric  string
	Skipped int
	Reason  string
}

func (e *MalformedDataError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("malformed upstream data for %s: %s", e.Metric, e.Reason)
	}
	return fmt.Sprintf("malformed upstream data for %s: %d record(s) skipped", e.Metric, e.Skipped)
}

func (e *MalformedDataError) Unwrap() error { return ErrMalformedData }

type UnsupportedTargetError struct {
	Target Target
	Reason string
}

func (e *UnsupportedTargetError) Error() string {
	return fmt.Sprintf("unsupported target %q: %s", e.Target, e.Reason)
}

func (e *UnsupportedTargetError) Unwrap() error { return ErrUnsupportedTarget }

// ErrorCode is the stable machine-readable code of err, "internal" when err is not a domain error.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidMetric):
		return "invalid_metric"
	case errors.Is(err, ErrInvalidGrouping):
		return "invalid_grouping"
	case errors.Is(err, ErrInvalidFilter):
		return "invalid_filter"
	case errors.Is(err, ErrAmbiguousFilter):
		return "ambiguous_filter"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrUnsupportedTarget):
		return "unsupported_target"
	case errors.Is(err, ErrMalformedData):
		return "malformed_data"
	case errors.Is(err, ErrUpstreamUnavailable):
		return "upstream_unavailable"
	default:
		return "internal"
	}
}
