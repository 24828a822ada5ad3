package handler

import (
	"trackmate/internal/features/carriers/domain"
	"trackmate/internal/features/carriers/service"
	"trackmate/internal/features/tracking/ports"

	"github.com/gofiber/fiber/v2"
)

// CarriersHandler handles HTTP requests for carrier information.
type CarriersHandler struct {
	carriersService *service.CarriersService
}

// NewCarriersHandler creates a new CarriersHandler.
func NewCarriersHandler(carriersService *service.CarriersService) *CarriersHandler {
	return &CarriersHandler{
		carriersService: carriersService,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// DirectoryResponse lists the curated carrier directory.
type DirectoryResponse struct {
	// Carriers is the directory in listing order.
	Carriers []domain.Carrier `json:"carriers"`
}

// List godoc
// @Summary List supported carriers
// @Description Returns the curated carrier directory with contacts and tracking URLs
// @Tags carriers
// @Accept json
// @Produce json
// @Success 200 {object} DirectoryResponse
// @Router /carriers [get]
func (h *CarriersHandler) List(c *fiber.Ctx) error {
	return c.JSON(DirectoryResponse{Carriers: h.carriersService.Directory()})
}

// UpstreamResponse lists the upstream-supported companies.
type UpstreamResponse struct {
	// Companies is the upstream roster.
	Companies []ports.Company `json:"companies"`
}

// ListUpstream godoc
// @Summary List upstream-supported companies
// @Description Returns every carrier the upstream tracking source can query; the roster is cached
// @Tags carriers
// @Accept json
// @Produce json
// @Success 200 {object} UpstreamResponse
// @Failure 502 {object} ErrorResponse
// @Router /carriers/upstream [get]
func (h *CarriersHandler) ListUpstream(c *fiber.Ctx) error {
	companies, err := h.carriersService.UpstreamCompanies(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Message: "upstream company list unavailable",
			RayID:   c.Locals("requestid").(string),
		})
	}

	return c.JSON(UpstreamResponse{Companies: companies})
}
