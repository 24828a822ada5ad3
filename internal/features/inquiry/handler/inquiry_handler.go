package handler

import (
	carriers "trackmate/internal/features/carriers/domain"
	inquiry "trackmate/internal/features/inquiry/service"
	parsing "trackmate/internal/features/parsing/domain"
	"trackmate/internal/features/tracking/domain"
	tracking "trackmate/internal/features/tracking/service"

	"github.com/gofiber/fiber/v2"
)

// InquiryHandler handles HTTP requests for inquiry drafting.
type InquiryHandler struct {
	trackingService *tracking.TrackingService
	inquiryService  *inquiry.InquiryService
}

// NewInquiryHandler creates a new InquiryHandler.
func NewInquiryHandler(trackingService *tracking.TrackingService, inquiryService *inquiry.InquiryService) *InquiryHandler {
	return &InquiryHandler{
		trackingService: trackingService,
		inquiryService:  inquiryService,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// CarrierDraft is the carrier-facing template with contact details.
type CarrierDraft struct {
	// Contact is the carrier's customer service phone, when known.
	Contact string `json:"contact,omitempty"`
	// Website is the carrier's web site, when known.
	Website string `json:"website,omitempty"`
	// Template is the ready-to-copy inquiry text.
	Template string `json:"template"`
}

// InquiryResponse bundles the drafted templates.
type InquiryResponse struct {
	// Result is the tracking outcome the drafts are based on.
	Result *domain.TrackingResult `json:"result"`
	// Issue is the detected situation the templates target.
	Issue inquiry.IssueContext `json:"issue"`
	// Carrier is the carrier-facing draft; nil when audience=seller.
	Carrier *CarrierDraft `json:"carrier,omitempty"`
	// Seller is the seller-facing draft; empty when audience=carrier.
	Seller string `json:"seller,omitempty"`
	// Tips are general guidance bullets.
	Tips []string `json:"tips"`
}

// Draft godoc
// @Summary Draft customer service inquiries
// @Description Looks up the shipment, detects the issue, and drafts ready-to-copy inquiry templates for the carrier and the seller
// @Tags inquiry
// @Accept json
// @Produce json
// @Param number path string true "Tracking Number"
// @Param carrier query string false "Carrier name, code, or auto (default)"
// @Param audience query string false "auto (default), carrier, or seller"
// @Success 200 {object} InquiryResponse
// @Failure 400 {object} ErrorResponse
// @Router /tracking/{number}/inquiry [get]
func (h *InquiryHandler) Draft(c *fiber.Ctx) error {
	trackingNumber := parsing.NormalizeNumber(c.Params("number"))
	if trackingNumber == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "tracking number is required",
			RayID:   c.Locals("requestid").(string),
		})
	}

	carrier := c.Query("carrier", "auto")
	audience := c.Query("audience", "auto")
	if audience != "auto" && audience != "carrier" && audience != "seller" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "audience must be auto, carrier, or seller",
			RayID:   c.Locals("requestid").(string),
		})
	}

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

	// Drafts are produced even when the lookup failed; the user still
	// needs something to send.
	carrierName := "택배사"
	if result.Success {
		carrierName = result.CarrierName
	}

	issue := h.inquiryService.DeriveIssue(result)

	resp := InquiryResponse{
		Result: result,
		Issue:  issue,
		Tips:   inquiry.Tips(),
	}

	if audience == "auto" || audience == "carrier" {
		draft := CarrierDraft{
			Template: h.inquiryService.CarrierTemplate(trackingNumber, carrierName, issue),
		}
		if info, ok := carriers.ByCode(result.CarrierCode); ok {
			draft.Contact = info.Contact
			draft.Website = info.Website
		}
		resp.Carrier = &draft
	}

	if audience == "auto" || audience == "seller" {
		resp.Seller = h.inquiryService.SellerTemplate(trackingNumber, carrierName, issue)
	}

	return c.JSON(resp)
}
