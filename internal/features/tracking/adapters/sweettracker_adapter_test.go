package adapters

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"trackmate/internal/core/cache"
	"trackmate/internal/features/tracking/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSweetTrackerAdapter_Fetch verifies request parameters and payload mapping.
func TestSweetTrackerAdapter_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/trackingInfo", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("t_key"))
		assert.Equal(t, "04", r.URL.Query().Get("t_code"))
		assert.Equal(t, "640123456789", r.URL.Query().Get("t_invoice"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"trackingDetails": [
				{"timeString": "2026-08-30 10:00", "kind": "집화처리", "where": "서울 강남구", "remark": "상품인수"},
				{"timeString": "2026-08-31 08:00", "kind": "간선상차", "where": "서울 HUB"}
			],
			"senderName": "판매자",
			"receiverName": "고객",
			"itemName": "책",
			"completeYN": "N"
		}`))
	}))
	defer srv.Close()

	adapter := NewSweetTrackerAdapter("test-key", srv.URL, srv.Client(), cache.NewMemoryAdapter(), time.Minute)

	record, err := adapter.Fetch(context.Background(), "640123456789", "04")

	require.NoError(t, err)
	assert.False(t, record.Failed())
	require.Len(t, record.TrackingDetails, 2)
	assert.Equal(t, "집화처리", record.TrackingDetails[0].Kind)
	assert.Equal(t, "상품인수", record.TrackingDetails[0].Remark)
	assert.Equal(t, "판매자", record.SenderName)
}

// TestSweetTrackerAdapter_CarrierFailurePayload verifies carrier-side errors
// arrive inside the record on HTTP 200.
func TestSweetTrackerAdapter_CarrierFailurePayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "false", "msg": "유효하지 않은 운송장 번호"}`))
	}))
	defer srv.Close()

	adapter := NewSweetTrackerAdapter("k", srv.URL, srv.Client(), cache.NewMemoryAdapter(), time.Minute)

	record, err := adapter.Fetch(context.Background(), "1234567890", "04")

	require.NoError(t, err)
	assert.True(t, record.Failed())
	assert.Equal(t, "유효하지 않은 운송장 번호", record.Msg)
}

// TestSweetTrackerAdapter_HTTPError verifies non-2xx maps to StatusError.
func TestSweetTrackerAdapter_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	adapter := NewSweetTrackerAdapter("k", srv.URL, srv.Client(), cache.NewMemoryAdapter(), time.Minute)

	_, err := adapter.Fetch(context.Background(), "1234567890", "04")

	require.Error(t, err)
	var statusErr *ports.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
}

// TestSweetTrackerAdapter_CompanyListCached verifies the company list uses
// the cache on repeat calls.
func TestSweetTrackerAdapter_CompanyListCached(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		assert.Equal(t, "/companylist", r.URL.Path)
		w.Write([]byte(`{"Company": [{"Code": "04", "Name": "CJ대한통운"}, {"Code": "08", "Name": "롯데택배"}]}`))
	}))
	defer srv.Close()

	adapter := NewSweetTrackerAdapter("k", srv.URL, srv.Client(), cache.NewMemoryAdapter(), time.Minute)
	ctx := context.Background()

	first, err := adapter.CompanyList(ctx)
	require.NoError(t, err)
	require.Len(t, first, 2)

	second, err := adapter.CompanyList(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, hits)
}

// TestMockAdapter_Deterministic verifies mock scenarios are stable per number.
func TestMockAdapter_Deterministic(t *testing.T) {
	adapter := NewMockAdapter()
	ctx := context.Background()

	first, err := adapter.Fetch(ctx, "640123456789", "04")
	require.NoError(t, err)
	second, err := adapter.Fetch(ctx, "640123456789", "04")
	require.NoError(t, err)

	require.Equal(t, len(first.TrackingDetails), len(second.TrackingDetails))
	for i := range first.TrackingDetails {
		assert.Equal(t, first.TrackingDetails[i].Kind, second.TrackingDetails[i].Kind)
	}
}

// TestMockAdapter_CompanyList verifies the mock serves the static directory.
func TestMockAdapter_CompanyList(t *testing.T) {
	adapter := NewMockAdapter()

	companies, err := adapter.CompanyList(context.Background())

	require.NoError(t, err)
	require.Len(t, companies, 10)
	assert.Equal(t, "04", companies[0].Code)
}
