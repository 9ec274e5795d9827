package fiber

import (
	"errors"
	"net/http"

	"recruitment-metrics-service/internal/metrics/core/domain"

	"github.com/gofiber/fiber/v2"
)

func statusFor(code string) int {
	switch code {
	case "invalid_metric", "invalid_grouping", "invalid_filter", "ambiguous_filter", "unsupported_target":
		return http.StatusBadRequest
	case "not_found":
		return http.StatusNotFound
	case "malformed_data":
		return http.StatusBadGateway
	case "upstream_unavailable":
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps a domain error onto a status and an ErrorResponse. Internal errors carry no message.
func writeError(c *fiber.Ctx, err error) error {
	code := domain.ErrorCode(err)
	status := statusFor(code)
	if status == http.StatusInternalServerError {
		return c.Status(status).JSON(ErrorResponse{Error: "internal_server_error"})
	}

	resp := ErrorResponse{Error: code, Message: err.Error()}
	var amb *domain.AmbiguousFilterError
	if errors.As(err, &amb) {
		resp.Candidates = amb.Candidates
	}
	return c.Status(status).JSON(resp)
}
