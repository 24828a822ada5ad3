package handler

import (
	parsing "trackmate/internal/features/parsing/domain"
	prediction "trackmate/internal/features/prediction/service"
	"trackmate/internal/features/tracking/domain"
	tracking "trackmate/internal/features/tracking/service"

	"github.com/gofiber/fiber/v2"
)

// PredictionHandler handles HTTP requests for arrival estimation.
type PredictionHandler struct {
	trackingService   *tracking.TrackingService
	predictionService *prediction.PredictionService
}

// NewPredictionHandler creates a new PredictionHandler.
func NewPredictionHandler(trackingService *tracking.TrackingService, predictionService *prediction.PredictionService) *PredictionHandler {
	return &PredictionHandler{
		trackingService:   trackingService,
		predictionService: predictionService,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// ScheduleCheck reports whether the delivery window overlaps a schedule.
type ScheduleCheck struct {
	// Schedule echoes the user's schedule text.
	Schedule string `json:"schedule"`
	// Conflict is true when the delivery window may overlap it.
	Conflict bool `json:"conflict"`
	// Recommendations suggest workarounds when a conflict exists.
	Recommendations []string `json:"recommendations,omitempty"`
}

// PredictionResponse bundles the tracking result with its arrival estimate.
type PredictionResponse struct {
	// Result is the tracking outcome the estimate is based on.
	Result *domain.TrackingResult `json:"result"`
	// Status is the classified current status. Nil when the lookup failed.
	Status *domain.ClassifiedStatus `json:"status,omitempty"`
	// Prediction is the arrival estimate. Nil when the lookup failed.
	Prediction *prediction.ArrivalPrediction `json:"prediction,omitempty"`
	// Schedule is the conflict check, present when a schedule was given.
	Schedule *ScheduleCheck `json:"schedule,omitempty"`
}

// Predict godoc
// @Summary Estimate arrival time
// @Description Looks up the shipment and estimates arrival from the status classification; an optional schedule is checked for conflicts
// @Tags prediction
// @Accept json
// @Produce json
// @Param number path string true "Tracking Number"
// @Param carrier query string false "Carrier name, code, or auto (default)"
// @Param schedule query string false "User schedule text for conflict checking"
// @Success 200 {object} PredictionResponse
// @Failure 400 {object} ErrorResponse
// @Router /tracking/{number}/arrival [get]
func (h *PredictionHandler) Predict(c *fiber.Ctx) error {
	trackingNumber := parsing.NormalizeNumber(c.Params("number"))
	if trackingNumber == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "tracking number is required",
			RayID:   c.Locals("requestid").(string),
		})
	}

	carrier := c.Query("carrier", "auto")

	carrierCode, err := h.trackingService.ResolveCarrier(carrier)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "carrier not recognized: " + carrier,
			RayID:   c.Locals("requestid").(string),
		})
	}

	var result *domain.TrackingResult
	if carrierCode == "" {
		result = h.trackingService.TrackAutoDetect(c.Context(), trackingNumber)
	} else {
		result = h.trackingService.Track(c.Context(), trackingNumber, carrierCode)
	}

	resp := PredictionResponse{Result: result}
	if result.Success {
		status := domain.Classify(result.CurrentStatus)
		estimate := h.predictionService.EstimateArrival(status, result.CarrierCode)
		resp.Status = &status
		resp.Prediction = &estimate

		if schedule := c.Query("schedule"); schedule != "" {
			check := ScheduleCheck{Schedule: schedule}
			if h.predictionService.ScheduleConflict(estimate.TimeWindow, schedule) {
				check.Conflict = true
				check.Recommendations = prediction.ConflictRecommendations()
			}
			resp.Schedule = &check
		}
	}

	return c.JSON(resp)
}
