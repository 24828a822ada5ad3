package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"trackmate/internal/core/cache"
	"trackmate/internal/core/logger"
	"trackmate/internal/features/tracking/ports"

	"go.uber.org/zap"
)

const companyListCacheKey = "sweettracker:company_list"

// SweetTrackerAdapter implements the Fetcher port against the Sweet Tracker API.
type SweetTrackerAdapter struct {
	apiKey         string
	baseURL        string
	client         *http.Client
	cache          cache.Cache
	companyListTTL time.Duration
	logger         *zap.Logger
}

// NewSweetTrackerAdapter creates a Sweet Tracker adapter.
// The company list is served cache-aside through the given cache;
// tracking records themselves are never cached.
func NewSweetTrackerAdapter(apiKey, baseURL string, client *http.Client, c cache.Cache, companyListTTL time.Duration) *SweetTrackerAdapter {
	return &SweetTrackerAdapter{
		apiKey:         apiKey,
		baseURL:        baseURL,
		client:         client,
		cache:          c,
		companyListTTL: companyListTTL,
		logger:         logger.Get(),
	}
}

// Fetch retrieves the raw tracking record for a number/carrier pair.
func (a *SweetTrackerAdapter) Fetch(ctx context.Context, trackingNumber, carrierCode string) (*ports.RawRecord, error) {
	params := url.Values{}
	params.Set("t_key", a.apiKey)
	params.Set("t_code", carrierCode)
	params.Set("t_invoice", trackingNumber)

	body, err := a.get(ctx, "/trackingInfo", params)
	if err != nil {
		return nil, err
	}

	var record ports.RawRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("failed to parse tracking response: %w", err)
	}

	return &record, nil
}

// companyListResponse wraps the upstream company list payload.
type companyListResponse struct {
	Company []ports.Company `json:"Company"`
}

// CompanyList retrieves the carriers the upstream source supports,
// cache-aside with the configured TTL.
func (a *SweetTrackerAdapter) CompanyList(ctx context.Context) ([]ports.Company, error) {
	if cached, err := a.cache.Get(ctx, companyListCacheKey); err == nil {
		var companies []ports.Company
		if err := json.Unmarshal(cached, &companies); err == nil {
			return companies, nil
		}
		// Unreadable cache entry: fall through to the upstream call.
		a.logger.Warn("Discarding corrupt cached company list")
	}

	params := url.Values{}
	params.Set("t_key", a.apiKey)

	body, err := a.get(ctx, "/companylist", params)
	if err != nil {
		return nil, err
	}

	var resp companyListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse company list: %w", err)
	}

	if encoded, err := json.Marshal(resp.Company); err == nil {
		if err := a.cache.Set(ctx, companyListCacheKey, encoded, a.companyListTTL); err != nil {
			a.logger.Warn("Failed to cache company list", zap.Error(err))
		}
	}

	return resp.Company, nil
}

// get performs one GET against the upstream API and returns the body.
func (a *SweetTrackerAdapter) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	reqURL := fmt.Sprintf("%s%s?%s", a.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ports.StatusError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}
