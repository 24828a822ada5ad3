package handler

import (
	carriers "trackmate/internal/features/carriers/domain"
	"trackmate/internal/features/parsing/domain"
	"trackmate/internal/features/parsing/service"

	"github.com/gofiber/fiber/v2"
)

// ParseHandler handles HTTP requests for tracking-number extraction.
type ParseHandler struct {
	parserService *service.ParserService
}

// NewParseHandler creates a new ParseHandler.
func NewParseHandler(parserService *service.ParserService) *ParseHandler {
	return &ParseHandler{
		parserService: parserService,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// ParseRequest is the extraction request body.
type ParseRequest struct {
	// Text is the free text to scan (SMS, chat message, ...).
	Text string `json:"text"`
}

// ParsedCandidate is one extracted candidate with a validity flag.
type ParsedCandidate struct {
	domain.Candidate
	// Valid reports whether the number matches the plausible format.
	Valid bool `json:"valid"`
}

// ParseResponse is the extraction response.
type ParseResponse struct {
	// Candidates are the extracted tracking candidates, may be empty.
	Candidates []ParsedCandidate `json:"candidates"`
}

// Parse godoc
// @Summary Extract tracking numbers from free text
// @Description Scans the input text for tracking numbers and attributes a carrier when possible
// @Tags parsing
// @Accept json
// @Produce json
// @Param request body ParseRequest true "Text to scan"
// @Success 200 {object} ParseResponse
// @Failure 400 {object} ErrorResponse
// @Router /parse [post]
func (h *ParseHandler) Parse(c *fiber.Ctx) error {
	var req ParseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   c.Locals("requestid").(string),
		})
	}

	if req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "text is required",
			RayID:   c.Locals("requestid").(string),
		})
	}

	candidates := h.parserService.Parse(req.Text)

	out := make([]ParsedCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		out = append(out, ParsedCandidate{
			Candidate: candidate,
			Valid:     carriers.ValidNumber(candidate.TrackingNumber),
		})
	}

	return c.JSON(ParseResponse{Candidates: out})
}
