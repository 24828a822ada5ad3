package handler

import (
	"errors"

	parsing "trackmate/internal/features/parsing/domain"
	"trackmate/internal/features/tracking/domain"
	"trackmate/internal/features/tracking/service"

	"github.com/gofiber/fiber/v2"
)

// TrackingHandler handles HTTP requests for tracking operations.
type TrackingHandler struct {
	trackingService *service.TrackingService
}

// NewTrackingHandler creates a new TrackingHandler.
func NewTrackingHandler(trackingService *service.TrackingService) *TrackingHandler {
	return &TrackingHandler{
		trackingService: trackingService,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// TrackingResponse bundles a tracking result with its classification.
type TrackingResponse struct {
	// Result is the raw tracking outcome.
	Result *domain.TrackingResult `json:"result"`
	// Status is the classified current status. Nil when the query failed.
	Status *domain.ClassifiedStatus `json:"status,omitempty"`
	// ProgressPercent is the display progress for the current phase.
	ProgressPercent int `json:"progress_percent"`
}

// newTrackingResponse classifies a result for transport.
func newTrackingResponse(result *domain.TrackingResult) TrackingResponse {
	resp := TrackingResponse{Result: result}
	if result.Success {
		classified := domain.Classify(result.CurrentStatus)
		resp.Status = &classified
		resp.ProgressPercent = domain.ProgressPercent(classified.Phase)
	}
	return resp
}

// Track godoc
// @Summary Track a shipment
// @Description Queries the carrier for a tracking number; carrier=auto runs pattern detection plus the fallback cascade
// @Tags tracking
// @Accept json
// @Produce json
// @Param number path string true "Tracking Number"
// @Param carrier query string false "Carrier name, code, or auto (default)"
// @Success 200 {object} TrackingResponse
// @Failure 400 {object} ErrorResponse
// @Router /tracking/{number} [get]
func (h *TrackingHandler) Track(c *fiber.Ctx) error {
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

	return c.JSON(newTrackingResponse(result))
}

// BulkRequest is the bulk tracking request body.
type BulkRequest struct {
	// TrackingNumbers are the numbers to query, at most 10.
	TrackingNumbers []string `json:"tracking_numbers"`
}

// BulkSummary counts results per bucket.
type BulkSummary struct {
	Delivered     int `json:"delivered"`
	ArrivingToday int `json:"arriving_today"`
	InTransit     int `json:"in_transit"`
	Issues        int `json:"issues"`
	Failed        int `json:"failed"`
}

// BulkResponse is the bulk tracking response.
type BulkResponse struct {
	// Summary buckets the results by urgency.
	Summary BulkSummary `json:"summary"`
	// Results holds one entry per requested number, in request order.
	Results []TrackingResponse `json:"results"`
}

// TrackBulk godoc
// @Summary Track several shipments at once
// @Description Queries up to 10 tracking numbers with auto-detection and returns a prioritized summary
// @Tags tracking
// @Accept json
// @Produce json
// @Param request body BulkRequest true "Tracking numbers"
// @Success 200 {object} BulkResponse
// @Failure 400 {object} ErrorResponse
// @Router /tracking/bulk [post]
func (h *TrackingHandler) TrackBulk(c *fiber.Ctx) error {
	var req BulkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   c.Locals("requestid").(string),
		})
	}

	numbers := make([]string, 0, len(req.TrackingNumbers))
	for _, raw := range req.TrackingNumbers {
		if normalized := parsing.NormalizeNumber(raw); normalized != "" {
			numbers = append(numbers, normalized)
		}
	}

	if len(numbers) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "at least one tracking number is required",
			RayID:   c.Locals("requestid").(string),
		})
	}

	results, err := h.trackingService.TrackBulk(c.Context(), numbers)
	if err != nil {
		if errors.Is(err, service.ErrTooManyNumbers) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Message: "at most 10 tracking numbers per request",
				RayID:   c.Locals("requestid").(string),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   c.Locals("requestid").(string),
		})
	}

	resp := BulkResponse{Results: make([]TrackingResponse, 0, len(results))}
	for _, result := range results {
		tr := newTrackingResponse(result)
		resp.Results = append(resp.Results, tr)

		switch {
		case !result.Success:
			resp.Summary.Failed++
		case result.IsDelivered:
			resp.Summary.Delivered++
		case tr.Status != nil && tr.Status.Phase == domain.PhaseIssue:
			resp.Summary.Issues++
		case tr.Status != nil && tr.Status.Phase == domain.PhaseOutForDelivery:
			resp.Summary.ArrivingToday++
		default:
			resp.Summary.InTransit++
		}
	}

	return c.JSON(resp)
}
