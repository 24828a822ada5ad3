package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	diagnosis "trackmate/internal/features/diagnosis/service"
	"trackmate/internal/features/tracking/ports"
	tracking "trackmate/internal/features/tracking/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockFetcher is a scripted Fetcher for handler tests.
type mockFetcher struct {
	records map[string]*ports.RawRecord
}

// Fetch implements ports.Fetcher.
func (m *mockFetcher) Fetch(_ context.Context, _, carrierCode string) (*ports.RawRecord, error) {
	if record, ok := m.records[carrierCode]; ok {
		return record, nil
	}
	return &ports.RawRecord{Status: "false", Msg: "no record"}, nil
}

// CompanyList implements ports.Fetcher.
func (m *mockFetcher) CompanyList(_ context.Context) ([]ports.Company, error) {
	return nil, nil
}

// newTestApp wires a fiber app with the diagnosis route and a fixed ray id.
func newTestApp(fetcher ports.Fetcher) *fiber.App {
	h := NewDiagnosisHandler(tracking.NewTrackingService(fetcher), diagnosis.NewDiagnosisService())

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("requestid", "test-ray-id")
		return c.Next()
	})
	app.Get("/tracking/:number/diagnosis", h.Diagnose)

	return app
}

func stagnantRecord() *ports.RawRecord {
	stale := time.Now().Add(-5 * 24 * time.Hour).Format("2006-01-02 15:04")
	return &ports.RawRecord{
		TrackingDetails: []ports.RawDetail{
			{TimeString: stale, Kind: "간선하차", Where: "대전 허브"},
		},
	}
}

// TestDiagnosisHandler_Stagnant verifies a stalled shipment gets graded
// severe with ranked causes and actions.
func TestDiagnosisHandler_Stagnant(t *testing.T) {
	app := newTestApp(&mockFetcher{records: map[string]*ports.RawRecord{"04": stagnantRecord()}})

	req := httptest.NewRequest("GET", "/tracking/640123456789/diagnosis", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result DiagnosisResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.True(t, result.Result.Success)
	require.NotNil(t, result.Diagnosis)
	assert.Equal(t, "심각", result.Diagnosis.Severity)
	assert.True(t, result.Diagnosis.Stagnation.IsStagnant)
	assert.NotEmpty(t, result.Diagnosis.Stagnation.Causes)
	assert.NotEmpty(t, result.Diagnosis.Actions)
	require.NotNil(t, result.Diagnosis.Carrier)
	assert.Equal(t, "04", result.Diagnosis.Carrier.Code)
}

// TestDiagnosisHandler_FailedLookup verifies a failed lookup returns the
// result without a diagnosis.
func TestDiagnosisHandler_FailedLookup(t *testing.T) {
	app := newTestApp(&mockFetcher{})

	req := httptest.NewRequest("GET", "/tracking/1234567890/diagnosis", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result DiagnosisResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.False(t, result.Result.Success)
	assert.Nil(t, result.Diagnosis)
}

// TestDiagnosisHandler_UnknownCarrier verifies unresolvable carrier names.
func TestDiagnosisHandler_UnknownCarrier(t *testing.T) {
	app := newTestApp(&mockFetcher{})

	req := httptest.NewRequest("GET", "/tracking/640123456789/diagnosis?carrier=외계택배", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var result ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "test-ray-id", result.RayID)
}
