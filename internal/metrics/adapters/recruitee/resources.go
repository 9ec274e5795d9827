package recruitee

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	"github.com/pkg/errors"

	"recruitment-metrics-service/internal/metrics/core/domain"
	"recruitment-metrics-service/internal/metrics/core/ports"
)

type offersResponse struct {
	Offers []struct {
		ID     int64  `json:"id"`
		Title  string `json:"title"`
		Status string `json:"status"`
	} `json:"offers"`
}

type offerResponse struct {
	Offer struct {
		ID               int64 `json:"id"`
		PipelineTemplate *struct {
			Stages []struct {
				ID       int64  `json:"id"`
				Name     string `json:"name"`
				Category string `json:"category"`
				Group    string `json:"group"`
			} `json:"stages"`
		} `json:"pipeline_template"`
	} `json:"offer"`
}

type tagsResponse struct {
	Tags []struct {
		ID            int64  `json:"id"`
		Name          string `json:"name"`
		TaggingsCount int    `json:"taggings_count"`
	} `json:"tags"`
}

type reasonsResponse struct {
	DisqualifyReasons []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"disqualify_reasons"`
}

// ListOffers returns offers in upstream order. Archived offers are dropped unless requested.
func (c *Client) ListOffers(ctx context.Context, f ports.OfferFilter) ([]domain.Offer, error) {
	all, err := cached(ctx, c.cache, "offers", c.fetchOffers)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Offer, 0, len(all))
	for _, o := range all {
		if o.Archived() && !f.IncludeArchived {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (c *Client) fetchOffers(ctx context.Context) ([]domain.Offer, error) {
	body, err := c.get(ctx, "offers", "/offers", nil)
	if err != nil {
		return nil, err
	}
	var resp offersResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, malformed("offers", err)
	}
	offers := make([]domain.Offer, 0, len(resp.Offers))
	for _, o := range resp.Offers {
		offers = append(offers, domain.Offer{ID: o.ID, Title: o.Title, Status: o.Status})
	}
	return offers, nil
}

// ListStages returns the offer's pipeline stages with Position set to the pipeline index.
func (c *Client) ListStages(ctx context.Context, offerID int64) ([]domain.Stage, error) {
	key := "offer:" + strconv.FormatInt(offerID, 10) + ":stages"
	stages, err := cached(ctx, c.cache, key, func(ctx context.Context) ([]domain.Stage, error) {
		return c.fetchStages(ctx, offerID)
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(stages), nil
}

func (c *Client) fetchStages(ctx context.Context, offerID int64) ([]domain.Stage, error) {
	body, err := c.get(ctx, "offer", fmt.Sprintf("/offers/%d", offerID), nil)
	if err != nil {
		if isNotFound(err) {
			return nil, &domain.NotFoundError{Field: "offer", Value: strconv.FormatInt(offerID, 10)}
		}
		return nil, err
	}
	var resp offerResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, malformed("offer", err)
	}
	if resp.Offer.PipelineTemplate == nil {
		return []domain.Stage{}, nil
	}
	stages := make([]domain.Stage, 0, len(resp.Offer.PipelineTemplate.Stages))
	for i, s := range resp.Offer.PipelineTemplate.Stages {
		stages = append(stages, domain.Stage{
			ID:       s.ID,
			Name:     s.Name,
			Category: s.Category,
			Group:    s.Group,
			Position: i,
		})
	}
	return stages, nil
}

func (c *Client) ListTags(ctx context.Context) ([]domain.Tag, error) {
	tags, err := cached(ctx, c.cache, "tags", func(ctx context.Context) ([]domain.Tag, error) {
		body, err := c.get(ctx, "tags", "/tags", nil)
		if err != nil {
			return nil, err
		}
		var resp tagsResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, malformed("tags", err)
		}
		tags := make([]domain.Tag, 0, len(resp.Tags))
		for _, t := range resp.Tags {
			tags = append(tags, domain.Tag{ID: t.ID, Name: t.Name, Count: t.TaggingsCount})
		}
		return tags, nil
	})
	return slices.Clone(tags), err
}

func (c *Client) ListDisqualifyReasons(ctx context.Context) ([]domain.DisqualifyReason, error) {
	reasons, err := cached(ctx, c.cache, "disqualify_reasons", func(ctx context.Context) ([]domain.DisqualifyReason, error) {
		body, err := c.get(ctx, "disqualify_reasons", "/disqualify_reasons", nil)
		if err != nil {
			return nil, err
		}
		var resp reasonsResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, malformed("disqualify_reasons", err)
		}
		reasons := make([]domain.DisqualifyReason, 0, len(resp.DisqualifyReasons))
		for _, r := range resp.DisqualifyReasons {
			reasons = append(reasons, domain.DisqualifyReason{ID: r.ID, Name: r.Name})
		}
		return reasons, nil
	})
	return slices.Clone(reasons), err
}

func malformed(endpoint string, err error) error {
	return &domain.MalformedDataError{Metric: endpoint, Reason: errors.Wrap(err, "decode response").Error()}
}
