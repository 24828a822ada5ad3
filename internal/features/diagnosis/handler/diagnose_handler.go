package handler

import (
	diagnosis "trackmate/internal/features/diagnosis/service"
	parsing "trackmate/internal/features/parsing/domain"
	"trackmate/internal/features/tracking/domain"
	tracking "trackmate/internal/features/tracking/service"

	"github.com/gofiber/fiber/v2"
)

// DiagnosisHandler handles HTTP requests for delivery problem analysis.
type DiagnosisHandler struct {
	trackingService  *tracking.TrackingService
	diagnosisService *diagnosis.DiagnosisService
}

// NewDiagnosisHandler creates a new DiagnosisHandler.
func NewDiagnosisHandler(trackingService *tracking.TrackingService, diagnosisService *diagnosis.DiagnosisService) *DiagnosisHandler {
	return &DiagnosisHandler{
		trackingService:  trackingService,
		diagnosisService: diagnosisService,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// DiagnosisResponse bundles the tracking result with its assessment.
type DiagnosisResponse struct {
	// Result is the tracking outcome the diagnosis is based on.
	Result *domain.TrackingResult `json:"result"`
	// Diagnosis is the problem assessment. Nil when the lookup failed.
	Diagnosis *diagnosis.Diagnosis `json:"diagnosis,omitempty"`
}

// Diagnose godoc
// @Summary Diagnose a delivery problem
// @Description Looks up the shipment, then grades severity, detects stagnation, and recommends next steps
// @Tags diagnosis
// @Accept json
// @Produce json
// @Param number path string true "Tracking Number"
// @Param carrier query string false "Carrier name, code, or auto (default)"
// @Success 200 {object} DiagnosisResponse
// @Failure 400 {object} ErrorResponse
// @Router /tracking/{number}/diagnosis [get]
func (h *DiagnosisHandler) Diagnose(c *fiber.Ctx) error {
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

	resp := DiagnosisResponse{Result: result}
	if result.Success {
		d := h.diagnosisService.Diagnose(result)
		resp.Diagnosis = &d
	}

	return c.JSON(resp)
}
