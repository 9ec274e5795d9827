package fiber

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"recruitment-metrics-service/internal/querylog/core/domain"
	"recruitment-metrics-service/internal/querylog/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type ListQueriesUseCase interface {
	ListRecent(ctx context.Context, limit int) ([]domain.QueryRecord, error)
}

type QueryLogHandler struct {
	uc ListQueriesUseCase
}

func NewQueryLogHandler(uc ListQueriesUseCase) *QueryLogHandler {
	return &QueryLogHandler{uc: uc}
}

// ListQueries godoc
// @Summary List recently executed metric queries
// @Description Newest first; failed queries carry their error code
// @Tags QueryLog
// @Produce json
// @Param limit query int false "Maximum entries (1..500, default 50)"
// @Success 200 {object} ListQueriesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /queries [get]
func (h *QueryLogHandler) ListQueries(c *fiber.Ctx) error {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_limit",
				Message: "limit must be an integer",
			})
		}
		limit = n
	}

	records, err := h.uc.ListRecent(c.UserContext(), limit)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidLimit) {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_limit",
				Message: err.Error(),
			})
		}
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}

	resp := ListQueriesResponse{Queries: make([]QueryRecordResponse, 0, len(records))}
	for _, r := range records {
		resp.Queries = append(resp.Queries, QueryRecordResponse{
			ID:             r.ID.String(),
			Metric:         r.Metric,
			Shape:          r.Shape,
			Dimensions:     r.Dimensions,
			Filters:        r.Filters,
			DateFrom:       r.DateFrom,
			DateTo:         r.DateTo,
			Target:         r.Target,
			Rows:           r.Rows,
			SkippedRecords: r.SkippedRecords,
			Status:         string(r.Status),
			ErrorCode:      r.ErrorCode,
			ErrorMessage:   r.ErrorMessage,
			DurationMS:     r.Duration.Milliseconds(),
			ExecutedAt:     r.ExecutedAt,
		})
	}
	return c.Status(http.StatusOK).JSON(resp)
}
