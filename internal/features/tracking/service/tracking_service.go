package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"trackmate/internal/core/logger"
	carriers "trackmate/internal/features/carriers/domain"
	"trackmate/internal/features/tracking/domain"
	"trackmate/internal/features/tracking/ports"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BulkLimit caps how many numbers one bulk query may carry.
const BulkLimit = 10

// bulkWorkers bounds concurrent fetches during a bulk query.
const bulkWorkers = 5

// ErrTooManyNumbers is returned when a bulk request exceeds BulkLimit.
// Checked before any fetch is issued.
var ErrTooManyNumbers = errors.New("too many tracking numbers")

// ErrCarrierUnresolved is returned when a carrier argument matches neither
// an alias nor a numeric code.
var ErrCarrierUnresolved = errors.New("carrier not recognized")

// allFailedMessage is the fixed error after the fallback cascade exhausts
// every candidate carrier. Individual attempt failures are discarded
// (logged at debug level only).
const allFailedMessage = "택배사를 찾을 수 없습니다. 택배사를 직접 지정해주세요."

// TrackingService orchestrates tracking queries against the upstream source.
// Every failure mode is recovered here into a TrackingResult; nothing
// propagates past this boundary.
type TrackingService struct {
	fetcher ports.Fetcher
	logger  *zap.Logger
}

// NewTrackingService creates a new TrackingService with the given fetcher.
func NewTrackingService(fetcher ports.Fetcher) *TrackingService {
	return &TrackingService{
		fetcher: fetcher,
		logger:  logger.Get(),
	}
}

// carrierDisplayName resolves a display name for a code, falling back to a
// generic label for codes outside the directory.
func carrierDisplayName(code string) string {
	if c, ok := carriers.ByCode(code); ok {
		return c.Name
	}
	return fmt.Sprintf("택배사 %s", code)
}

// failure builds a failed TrackingResult for a number/carrier pair.
func failure(trackingNumber, carrierCode, carrierName, message string) *domain.TrackingResult {
	return &domain.TrackingResult{
		Success:        false,
		TrackingNumber: trackingNumber,
		CarrierCode:    carrierCode,
		CarrierName:    carrierName,
		Events:         []domain.TrackingEvent{},
		CurrentStatus:  domain.LookupFailed,
		ErrorMessage:   message,
	}
}

// errorMessage converts a transport error into a human-readable message.
func errorMessage(err error) string {
	var statusErr *ports.StatusError
	if errors.As(err, &statusErr) {
		return fmt.Sprintf("API 오류: %d", statusErr.StatusCode)
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return "API 응답 시간 초과"
	}

	return fmt.Sprintf("오류 발생: %v", err)
}

// Track queries one carrier for one tracking number. Exactly one upstream
// fetch; no retry at this layer. All failures come back as a TrackingResult
// with Success=false and empty events.
func (s *TrackingService) Track(ctx context.Context, trackingNumber, carrierCode string) *domain.TrackingResult {
	carrierName := carrierDisplayName(carrierCode)

	record, err := s.fetcher.Fetch(ctx, trackingNumber, carrierCode)
	if err != nil {
		s.logger.Debug("Upstream fetch failed",
			zap.String("tracking_number", trackingNumber),
			zap.String("carrier_code", carrierCode),
			zap.Error(err),
		)
		return failure(trackingNumber, carrierCode, carrierName, errorMessage(err))
	}

	if record.Failed() {
		msg := record.Msg
		if msg == "" {
			msg = "조회에 실패했습니다"
		}
		return failure(trackingNumber, carrierCode, carrierName, msg)
	}

	events := make([]domain.TrackingEvent, 0, len(record.TrackingDetails))
	for _, detail := range record.TrackingDetails {
		events = append(events, domain.TrackingEvent{
			Time:     detail.TimeString,
			Status:   detail.Kind,
			Location: detail.Where,
			Detail:   detail.Remark,
		})
	}

	currentStatus := domain.NoInformation
	isDelivered := false

	if len(events) > 0 {
		currentStatus = events[len(events)-1].Status
		last := strings.ToLower(currentStatus)
		// Operand grouping matters: 완료 anywhere, or 배달 without 출발.
		if strings.Contains(last, "완료") || (strings.Contains(last, "배달") && !strings.Contains(last, "출발")) {
			isDelivered = true
		}
	}

	if record.CompleteYN == "Y" {
		isDelivered = true
	}

	return &domain.TrackingResult{
		Success:        true,
		TrackingNumber: trackingNumber,
		CarrierCode:    carrierCode,
		CarrierName:    carrierName,
		Sender:         record.SenderName,
		Receiver:       record.ReceiverName,
		ItemName:       record.ItemName,
		Events:         events,
		CurrentStatus:  currentStatus,
		IsDelivered:    isDelivered,
	}
}

// TrackAutoDetect queries a tracking number with unknown carrier.
// Pattern detection first; on miss or failure, the fixed major-carrier
// cascade, skipping the code already tried. First success wins. When every
// attempt fails a synthetic failure with a fixed message is returned and the
// per-attempt failure reasons are discarded.
func (s *TrackingService) TrackAutoDetect(ctx context.Context, trackingNumber string) *domain.TrackingResult {
	detectedCode, detected := carriers.DetectFromNumber(trackingNumber)
	if detected {
		result := s.Track(ctx, trackingNumber, detectedCode)
		if result.Success {
			return result
		}
	}

	for _, code := range carriers.MajorCodes {
		if detected && code == detectedCode {
			continue // already tried
		}
		result := s.Track(ctx, trackingNumber, code)
		if result.Success {
			return result
		}
	}

	return failure(trackingNumber, "", "알 수 없음", allFailedMessage)
}

// TrackBulk queries up to BulkLimit numbers with auto-detection, issuing
// fetches concurrently with a bounded worker count. The cap is enforced
// before any fetch. Results come back in input order.
func (s *TrackingService) TrackBulk(ctx context.Context, trackingNumbers []string) ([]*domain.TrackingResult, error) {
	if len(trackingNumbers) > BulkLimit {
		return nil, ErrTooManyNumbers
	}

	results := make([]*domain.TrackingResult, len(trackingNumbers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bulkWorkers)

	for i, number := range trackingNumbers {
		g.Go(func() error {
			results[i] = s.TrackAutoDetect(gctx, number)
			return nil
		})
	}

	// Workers never return errors; failures land inside each result.
	_ = g.Wait()

	return results, nil
}

// ResolveCarrier maps a carrier argument to a code. "auto" (any case) maps
// to the empty code meaning auto-detection; otherwise names resolve through
// the alias table, and bare numeric codes up to three digits are accepted
// zero-padded to two.
func (s *TrackingService) ResolveCarrier(carrier string) (string, error) {
	if strings.EqualFold(carrier, "auto") || carrier == "" {
		return "", nil
	}

	if c, ok := carriers.ByName(carrier); ok {
		return c.Code, nil
	}

	if isDigits(carrier) && len(carrier) <= 3 {
		if len(carrier) == 1 {
			return "0" + carrier, nil
		}
		return carrier, nil
	}

	return "", ErrCarrierUnresolved
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
