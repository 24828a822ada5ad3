package httpclient

import (
	"net/http"
	"time"

	"trackmate/internal/core/logger"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// LoggingRoundTripper captures request details for debugging and throttles
// outbound requests. The tracking core itself never rate-limits; the policy
// lives here, on the transport.
type LoggingRoundTripper struct {
	// Proxied is the underlying RoundTripper to execute the request.
	Proxied http.RoundTripper
	// Limiter throttles outbound requests. Nil disables throttling.
	Limiter *rate.Limiter
}

// RoundTrip waits for the rate limiter, executes the request and logs details.
func (lrt *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if lrt.Limiter != nil {
		if err := lrt.Limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
	}

	start := time.Now()

	logger.Get().Debug("HTTP Request Started",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
	)

	resp, err := lrt.Proxied.RoundTrip(req)

	duration := time.Since(start)

	if err != nil {
		logger.Get().Error("HTTP Request Failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Get().Debug("HTTP Request Completed",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", duration),
	)

	return resp, nil
}

// NewClient returns an http.Client with logging and rate-limit middleware.
// A non-positive rps disables throttling.
func NewClient(timeout time.Duration, rps float64) *http.Client {
	var limiter *rate.Limiter
	if rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), int(rps)+1)
	}

	return &http.Client{
		Transport: &LoggingRoundTripper{
			Proxied: http.DefaultTransport,
			Limiter: limiter,
		},
		Timeout: timeout,
	}
}
