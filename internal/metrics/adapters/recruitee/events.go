package recruitee

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"recruitment-metrics-service/internal/metrics/core/domain"
	"recruitment-metrics-service/internal/metrics/core/ports"
)

type eventPageResponse struct {
	Events []json.RawMessage `json:"events"`
	Meta   *struct {
		Page       int `json:"page"`
		TotalPages int `json:"total_pages"`
	} `json:"meta"`
}

type eventRecord struct {
	CandidateID   int64  `json:"candidate_id"`
	CandidateName string `json:"candidate_name"`
	OfferID       int64  `json:"offer_id"`
	StageID       int64  `json:"stage_id"`
	Type          string `json:"type"`
	CreatedAt     string `json:"created_at"`
	Source        string `json:"source"`
	Participant   *struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"participant"`
	DisqualifyReasonID int64   `json:"disqualify_reason_id"`
	TagIDs             []int64 `json:"tag_ids"`
}

// FetchCandidateEvents returns the paged event history of one offer. Nothing is requested until Page is called.
func (c *Client) FetchCandidateEvents(q ports.EventsQuery) ports.EventSequence {
	return &eventSequence{client: c, query: q}
}

type eventSequence struct {
	client *Client
	query  ports.EventsQuery
}

func (s *eventSequence) Page(ctx context.Context, cursor int) (ports.EventPage, error) {
	if cursor < 1 {
		return ports.EventPage{}, fmt.Errorf("recruitee: invalid page cursor %d", cursor)
	}

	params := s.params(cursor)
	path := fmt.Sprintf("/offers/%d/candidate_events", s.query.OfferID)
	body, err := s.client.get(ctx, "candidate_events", path, params)
	if err != nil {
		if isNotFound(err) {
			return ports.EventPage{}, &domain.NotFoundError{Field: "offer", Value: strconv.FormatInt(s.query.OfferID, 10)}
		}
		return ports.EventPage{}, err
	}
	return decodeEventPage(body, cursor, s.client.cfg.PageSize, s.query.OfferID)
}

func (s *eventSequence) params(cursor int) url.Values {
	p := url.Values{
		"page":             {strconv.Itoa(cursor)},
		"limit":            {strconv.Itoa(s.client.cfg.PageSize)},
		"include_archived": {strconv.FormatBool(s.query.IncludeArchived)},
	}
	if !s.query.DateRange.From.IsZero() {
		p["from"] = []string{s.query.DateRange.From.UTC().Format(time.RFC3339)}
	}
	if !s.query.DateRange.To.IsZero() {
		p["to"] = []string{s.query.DateRange.To.UTC().Format(time.RFC3339)}
	}
	return p
}

// decodeEventPage decodes records one by one. A record that cannot be used is skipped with a reason;
// a missing or unparseable timestamp keeps the event with a zero Timestamp.
func decodeEventPage(body []byte, cursor, pageSize int, offerID int64) (ports.EventPage, error) {
	var resp eventPageResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return ports.EventPage{}, malformed("candidate_events", err)
	}

	page := ports.EventPage{Events: make([]domain.CandidateEvent, 0, len(resp.Events))}
	for i, raw := range resp.Events {
		ev, reason := decodeEvent(raw, offerID)
		if reason != "" {
			page.Skipped++
			page.SkipReasons = append(page.SkipReasons, fmt.Sprintf("page %d record %d: %s", cursor, i, reason))
			continue
		}
		page.Events = append(page.Events, ev)
	}

	switch {
	case resp.Meta != nil:
		if cursor < resp.Meta.TotalPages {
			page.Next = cursor + 1
		}
	case len(resp.Events) >= pageSize:
		page.Next = cursor + 1
	}
	return page, nil
}

func decodeEvent(raw json.RawMessage, offerID int64) (domain.CandidateEvent, string) {
	var rec eventRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.CandidateEvent{}, "undecodable record: " + err.Error()
	}
	if rec.CandidateID <= 0 {
		return domain.CandidateEvent{}, "missing candidate_id"
	}
	typ := domain.EventType(strings.ToLower(strings.TrimSpace(rec.Type)))
	if !typ.Valid() {
		return domain.CandidateEvent{}, fmt.Sprintf("unknown event type %q", rec.Type)
	}
	if rec.StageID <= 0 {
		return domain.CandidateEvent{}, "missing stage_id"
	}

	ev := domain.CandidateEvent{
		CandidateID:        rec.CandidateID,
		CandidateName:      rec.CandidateName,
		OfferID:            rec.OfferID,
		StageID:            rec.StageID,
		Type:               typ,
		Timestamp:          parseTimestamp(rec.CreatedAt),
		SourceTag:          strings.TrimSpace(rec.Source),
		DisqualifyReasonID: rec.DisqualifyReasonID,
		TagIDs:             rec.TagIDs,
	}
	if ev.OfferID == 0 {
		ev.OfferID = offerID
	}
	if rec.Participant != nil {
		ev.ParticipantID = rec.Participant.ID
		ev.ParticipantName = rec.Participant.Name
	}
	return ev, ""
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05 MST",
	"2006-01-02 15:04:05",
}

func parseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
