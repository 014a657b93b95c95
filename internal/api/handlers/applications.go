package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"jobtrail/internal/logging"
	"jobtrail/internal/storage"
	"jobtrail/pkg/models"
)

// ListApplicationsHandler returns the caller's tracked applications,
// newest first.
func ListApplicationsHandler(apps *storage.ApplicationStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqID := requestID(c)
		uid := userID(c)

		stored, err := apps.ListByUser(c.Request().Context(), uid)
		if err != nil {
			logging.Error().Err(err).Str("request_id", reqID).Msg("listing applications failed")
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "list_failed",
				Message:   "Could not list applications",
				RequestID: reqID,
				Timestamp: time.Now(),
			})
		}

		out := make([]models.ApplicationResponse, 0, len(stored))
		for _, app := range stored {
			out = append(out, models.ApplicationResponse{
				ID:          app.ID,
				Company:     app.Company,
				Role:        app.Role,
				Status:      string(app.Status),
				DateApplied: app.DateApplied,
				AIChance:    app.AIChance,
				CreatedAt:   app.CreatedAt,
			})
		}
		return c.JSON(http.StatusOK, models.ApplicationListResponse{
			Applications: out,
			Total:        len(out),
		})
	}
}

// ApplicationStatsHandler returns per-status counts for the dashboard.
func ApplicationStatsHandler(apps *storage.ApplicationStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqID := requestID(c)
		uid := userID(c)

		counts, err := apps.CountByStatus(c.Request().Context(), uid)
		if err != nil {
			logging.Error().Err(err).Str("request_id", reqID).Msg("counting applications failed")
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "stats_failed",
				Message:   "Could not compute application stats",
				RequestID: reqID,
				Timestamp: time.Now(),
			})
		}

		var total int64
		for _, n := range counts {
			total += n
		}
		return c.JSON(http.StatusOK, models.StatsResponse{Counts: counts, Total: total})
	}
}
