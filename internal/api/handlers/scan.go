package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"jobtrail/internal/background"
	"jobtrail/internal/config"
	"jobtrail/internal/logging"
	"jobtrail/internal/mailscan"
	"jobtrail/pkg/models"
	"jobtrail/pkg/utils"
)

var validate = validator.New()

// userID extracts the caller's user ID. Authentication lives in front of this
// service; the gateway injects the header.
func userID(c echo.Context) string {
	return utils.GetStringOrDefault(c.Request().Header.Get("X-User-ID"), "default")
}

func requestID(c echo.Context) string {
	if id, ok := c.Get("request_id").(string); ok {
		return id
	}
	return utils.GenerateRequestID()
}

// ScanHandler triggers a mailbox scan for the calling user, either inline or
// as a background task.
func ScanHandler(cfg *config.Config, scanner *mailscan.Scanner, taskManager *background.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		startTime := time.Now()
		reqID := requestID(c)
		uid := userID(c)
		log := logging.Logger.With().Str("request_id", reqID).Str("user_id", uid).Logger()

		var req models.ScanRequest
		if err := c.Bind(&req); err != nil {
			log.Warn().Err(err).Msg("failed to bind scan request")
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_request",
				Message:   "Invalid request format",
				RequestID: reqID,
				Timestamp: time.Now(),
			})
		}
		if err := validate.Struct(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "validation_failed",
				Message:   utils.NewValidationError(err.Error()).Error(),
				RequestID: reqID,
				Timestamp: time.Now(),
			})
		}

		query := utils.GetStringOrDefault(req.Query, cfg.Scan.Query)

		if req.Async {
			processID, err := taskManager.Submit(background.TaskTypeScan, func(ctx context.Context) (interface{}, error) {
				created, err := scanner.ScanMailbox(ctx, uid, query)
				if err != nil {
					return nil, err
				}
				return background.ScanTaskData{UserID: uid, Query: query, Created: created}, nil
			})
			if err != nil {
				log.Error().Err(err).Msg("failed to submit scan task")
				return c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
					Error:     "task_submission_failed",
					Message:   err.Error(),
					RequestID: reqID,
					Timestamp: time.Now(),
				})
			}
			return c.JSON(http.StatusAccepted, models.AsyncScanResponse{
				ProcessID: processID,
				Status:    string(background.TaskStatusAccepted),
				RequestID: reqID,
			})
		}

		ctx := log.WithContext(c.Request().Context())
		created, err := scanner.ScanMailbox(ctx, uid, query)
		if err != nil {
			log.Error().Err(err).Msg("mailbox scan failed")
			return c.JSON(http.StatusBadGateway, models.ErrorResponse{
				Error:     "scan_failed",
				Message:   utils.NewScanError(err.Error()).Error(),
				RequestID: reqID,
				Timestamp: time.Now(),
			})
		}

		log.Info().Int("created", created).Dur("processing_time", time.Since(startTime)).Msg("scan request completed")
		return c.JSON(http.StatusOK, models.ScanResponse{
			Success:        true,
			Created:        created,
			ProcessingTime: time.Since(startTime),
			RequestID:      reqID,
		})
	}
}

// TaskStatusHandler reports the state of a background scan.
func TaskStatusHandler(taskManager *background.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqID := requestID(c)
		processID := c.Param("id")

		result, err := taskManager.Get(c.Request().Context(), processID)
		if err != nil {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:     "task_not_found",
				Message:   utils.NewTaskNotFoundError(processID).Error(),
				RequestID: reqID,
				Timestamp: time.Now(),
			})
		}
		return c.JSON(http.StatusOK, result)
	}
}
