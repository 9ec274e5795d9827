package recruitee

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"recruitment-metrics-service/internal/metrics/core/domain"
	"recruitment-metrics-service/internal/metrics/core/ports"
)

var _ ports.DirectoryPort = (*Client)(nil)

type searchResponse struct {
	Hits []struct {
		ID     int64    `json:"id"`
		Name   string   `json:"name"`
		Emails []string `json:"emails"`
	} `json:"hits"`
}

type talentPoolsResponse struct {
	TalentPools []struct {
		ID     int64  `json:"id"`
		Title  string `json:"title"`
		Status string `json:"status"`
	} `json:"talent_pools"`
}

// SearchCandidates runs the candidate search with the filters encoded as filters_json.
func (c *Client) SearchCandidates(ctx context.Context, s ports.CandidateSearch) ([]domain.CandidateSummary, error) {
	filters, err := json.Marshal(searchFilters(s))
	if err != nil {
		return nil, malformed("candidate_search", err)
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(s.Limit))
	q.Set("offset", strconv.Itoa(s.Offset))
	q.Set("filters_json", string(filters))

	body, err := c.get(ctx, "candidate_search", "/search/new/candidates", q)
	if err != nil {
		return nil, err
	}
	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, malformed("candidate_search", err)
	}
	out := make([]domain.CandidateSummary, 0, len(resp.Hits))
	for _, h := range resp.Hits {
		emails := h.Emails
		if emails == nil {
			emails = []string{}
		}
		out = append(out, domain.CandidateSummary{ID: h.ID, Name: h.Name, Emails: emails})
	}
	return out, nil
}

// searchFilters builds the filters_json array of the search endpoint. Dates are unix seconds.
func searchFilters(s ports.CandidateSearch) []map[string]any {
	filters := []map[string]any{}
	add := func(f map[string]any) { filters = append(filters, f) }

	if q := strings.TrimSpace(s.Query); q != "" {
		add(map[string]any{"field": "all", "query": q})
	}
	if len(s.OfferIDs) > 0 {
		add(map[string]any{"filter": "jobs", "id": map[string]any{domain.CombineIn: s.OfferIDs}})
	}
	if len(s.DisqualifyReasons) > 0 {
		add(map[string]any{"filter": "disqualifies", "reason": map[string]any{domain.CombineIn: s.DisqualifyReasons}})
	}
	if s.Disqualified != nil {
		add(map[string]any{"filter": "disqualifies", "reason": map[string]any{presence(*s.Disqualified): true}})
	}
	if len(s.TagIDs) > 0 {
		add(map[string]any{"filter": "tags", "id": map[string]any{domain.CombineIn: s.TagIDs}})
	}
	if len(s.Skills) > 0 {
		add(map[string]any{"filter": "skills", "text": map[string]any{s.SkillsCombiner: s.Skills}})
	}
	if len(s.TalentPoolIDs) > 0 {
		add(map[string]any{"filter": "talent_pools", "id": map[string]any{s.TalentPoolsCombiner: s.TalentPoolIDs}})
	}
	if s.HasStage != nil {
		add(map[string]any{"filter": "stages", presence(*s.HasStage): true})
	}
	if len(s.OnStages) > 0 {
		add(map[string]any{"filter": "stages", "name": map[string]any{domain.CombineIn: s.OnStages}})
	}
	if f, ok := unixRange("gdpr_expires_at", s.GDPRExpiresFrom, s.GDPRExpiresTo); ok {
		add(f)
	}
	if f, ok := unixRange("created_at", s.CreatedFrom, s.CreatedTo); ok {
		add(f)
	}
	if s.CustomField != "" {
		add(map[string]any{"filter": s.CustomField, s.CustomFieldCombiner: true})
	}
	return filters
}

func presence(has bool) string {
	if has {
		return domain.CombineHasAny
	}
	return domain.CombineHasNone
}

func unixRange(field string, from, to time.Time) (map[string]any, bool) {
	if from.IsZero() && to.IsZero() {
		return nil, false
	}
	f := map[string]any{"field": field}
	if !from.IsZero() {
		f["gte"] = from.Unix()
	}
	if !to.IsZero() {
		f["lte"] = to.Unix()
	}
	return f, true
}

func (c *Client) GetCandidate(ctx context.Context, candidateID int64) (domain.Record, error) {
	return c.getRecord(ctx, "candidate", fmt.Sprintf("/candidates/%d", candidateID), "candidate", candidateID)
}

// ListCandidateFields samples one candidate profile and returns its field names, sorted.
func (c *Client) ListCandidateFields(ctx context.Context) ([]string, error) {
	fields, err := cached(ctx, c.cache, "candidate_fields", func(ctx context.Context) ([]string, error) {
		hits, err := c.SearchCandidates(ctx, ports.CandidateSearch{Limit: 1})
		if err != nil {
			return nil, err
		}
		if len(hits) == 0 {
			return []string{}, nil
		}
		rec, err := c.GetCandidate(ctx, hits[0].ID)
		if err != nil {
			return nil, err
		}
		fields := make([]string, 0, len(rec))
		for k := range rec {
			fields = append(fields, k)
		}
		sort.Strings(fields)
		return fields, nil
	})
	return slices.Clone(fields), err
}

func (c *Client) ListCandidateNotes(ctx context.Context, candidateID int64, limit, offset int) ([]domain.Record, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	body, err := c.get(ctx, "candidate_notes", fmt.Sprintf("/candidates/%d/notes", candidateID), q)
	if err != nil {
		if isNotFound(err) {
			return nil, &domain.NotFoundError{Field: "candidate", Value: strconv.FormatInt(candidateID, 10)}
		}
		return nil, err
	}
	var resp struct {
		Notes []domain.Record `json:"notes"`
	}
	if err := decodeNumbers(body, &resp); err != nil {
		return nil, malformed("candidate_notes", err)
	}
	if resp.Notes == nil {
		resp.Notes = []domain.Record{}
	}
	return resp.Notes, nil
}

func (c *Client) GetOffer(ctx context.Context, offerID int64) (domain.Record, error) {
	return c.getRecord(ctx, "offer", fmt.Sprintf("/offers/%d", offerID), "offer", offerID)
}

// ListTalentPools returns every talent pool, archived ones included.
func (c *Client) ListTalentPools(ctx context.Context) ([]domain.TalentPool, error) {
	pools, err := cached(ctx, c.cache, "talent_pools", func(ctx context.Context) ([]domain.TalentPool, error) {
		body, err := c.get(ctx, "talent_pools", "/talent_pools", nil)
		if err != nil {
			return nil, err
		}
		var resp talentPoolsResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, malformed("talent_pools", err)
		}
		pools := make([]domain.TalentPool, 0, len(resp.TalentPools))
		for _, p := range resp.TalentPools {
			pools = append(pools, domain.TalentPool{ID: p.ID, Title: p.Title, Status: p.Status})
		}
		return pools, nil
	})
	return slices.Clone(pools), err
}

func (c *Client) GetTalentPool(ctx context.Context, talentPoolID int64) (domain.Record, error) {
	return c.getRecord(ctx, "talent_pool", fmt.Sprintf("/talent_pools/%d", talentPoolID), "talent_pool", talentPoolID)
}

// getRecord fetches one object wrapped under key. A 404 becomes a *domain.NotFoundError on field key.
func (c *Client) getRecord(ctx context.Context, endpoint, path, key string, id int64) (domain.Record, error) {
	body, err := c.get(ctx, endpoint, path, nil)
	if err != nil {
		if isNotFound(err) {
			return nil, &domain.NotFoundError{Field: key, Value: strconv.FormatInt(id, 10)}
		}
		return nil, err
	}
	var resp map[string]domain.Record
	if err := decodeNumbers(body, &resp); err != nil {
		return nil, malformed(endpoint, err)
	}
	rec := resp[key]
	if rec == nil {
		rec = domain.Record{}
	}
	return rec, nil
}

// decodeNumbers keeps numbers as json.Number so large ids survive the round trip.
func decodeNumbers(body []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	return dec.Decode(v)
}
