package handler

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"trackmate/internal/features/parsing/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestApp wires a fiber app with the parse route and a fixed ray id.
func newTestApp() *fiber.App {
	h := NewParseHandler(service.NewParserService())

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("requestid", "test-ray-id")
		return c.Next()
	})
	app.Post("/parse", h.Parse)

	return app
}

// TestParseHandler_Success verifies extraction over a carrier SMS.
func TestParseHandler_Success(t *testing.T) {
	app := newTestApp()

	body := strings.NewReader(`{"text":"[CJ대한통운] 운송장번호 640123456789 배송 중"}`)
	req := httptest.NewRequest("POST", "/parse", body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result ParseResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	require.Len(t, result.Candidates, 1)
	assert.Equal(t, "640123456789", result.Candidates[0].TrackingNumber)
	assert.Equal(t, "04", result.Candidates[0].CarrierCode)
	assert.True(t, result.Candidates[0].Valid)
}

// TestParseHandler_NoCandidates verifies an empty candidate list is a
// normal outcome, not an error.
func TestParseHandler_NoCandidates(t *testing.T) {
	app := newTestApp()

	body := strings.NewReader(`{"text":"택배 언제 와?"}`)
	req := httptest.NewRequest("POST", "/parse", body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result ParseResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Empty(t, result.Candidates)
}

// TestParseHandler_MissingText verifies text validation.
func TestParseHandler_MissingText(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("POST", "/parse", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var result ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "test-ray-id", result.RayID)
}

// TestParseHandler_BadBody verifies malformed JSON is rejected.
func TestParseHandler_BadBody(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("POST", "/parse", strings.NewReader(`not-json`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
