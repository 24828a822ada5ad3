package service

import (
	"fmt"
	"strings"
	"time"

	"trackmate/internal/features/tracking/domain"
)

// carrierAvgHours is the average pickup-to-delivery time per carrier.
var carrierAvgHours = map[string]int{
	"04": 36,
	"08": 36,
	"05": 36,
	"01": 48,
	"06": 42,
}

// defaultAvgHours applies when the carrier has no recorded average.
const defaultAvgHours = 48

// ArrivalPrediction estimates when a shipment will arrive.
type ArrivalPrediction struct {
	// EstimatedDate is a display date ("오늘", "09월 02일") or a final
	// verdict ("배송 완료", "확인 필요"). Empty when no estimate exists.
	EstimatedDate string `json:"estimated_date,omitempty"`
	// TimeWindow is the expected delivery window within the day.
	TimeWindow string `json:"time_window,omitempty"`
	// Confidence is one of 확정/높음/중간/낮음.
	Confidence string `json:"confidence"`
	// Basis lists the reasons behind the estimate.
	Basis []string `json:"basis"`
}

// PredictionService estimates arrival times from the classified status.
type PredictionService struct {
	now func() time.Time
}

// NewPredictionService creates a new PredictionService.
func NewPredictionService() *PredictionService {
	return &PredictionService{now: time.Now}
}

// EstimateArrival derives an arrival estimate from the status classification
// and the carrier's average delivery time. Delivered and issue states return
// verdicts without an estimate.
func (s *PredictionService) EstimateArrival(status domain.ClassifiedStatus, carrierCode string) ArrivalPrediction {
	now := s.now()

	if status.IsFinal && status.Phase == domain.PhaseDelivered {
		return ArrivalPrediction{
			EstimatedDate: "배송 완료",
			Confidence:    "확정",
			Basis:         []string{"이미 배송이 완료되었습니다"},
		}
	}

	if status.Phase == domain.PhaseIssue {
		return ArrivalPrediction{
			EstimatedDate: "확인 필요",
			Confidence:    "낮음",
			Basis:         []string{"배송에 문제가 발생했습니다. 택배사 문의가 필요합니다."},
		}
	}

	prediction := ArrivalPrediction{Confidence: "낮음"}

	if status.EstimatedHours != nil {
		estHours := *status.EstimatedHours
		switch {
		case estHours <= 3:
			prediction.EstimatedDate = "오늘"
			prediction.TimeWindow = "곧 도착"
			prediction.Confidence = "높음"
			prediction.Basis = append(prediction.Basis, "배송 기사님이 배달 중입니다")
		case estHours <= 6:
			prediction.EstimatedDate = "오늘"
			if now.Hour() < 12 {
				prediction.TimeWindow = "오후 2-6시"
			} else {
				prediction.TimeWindow = "저녁 6-9시"
			}
			prediction.Confidence = "중간"
			prediction.Basis = append(prediction.Basis, "오늘 중 도착 예상")
		case estHours <= 24:
			tomorrow := now.AddDate(0, 0, 1)
			prediction.EstimatedDate = formatKoreanDate(tomorrow)
			prediction.TimeWindow = "오후"
			prediction.Confidence = "중간"
			prediction.Basis = append(prediction.Basis, "내일 도착 예상")
		default:
			days := estHours / 24
			future := now.AddDate(0, 0, days)
			prediction.EstimatedDate = formatKoreanDate(future)
			prediction.TimeWindow = "오후"
			prediction.Confidence = "낮음"
			prediction.Basis = append(prediction.Basis, fmt.Sprintf("약 %d일 후 도착 예상", days))
		}
	}

	avgHours, ok := carrierAvgHours[carrierCode]
	if !ok {
		avgHours = defaultAvgHours
	}
	prediction.Basis = append(prediction.Basis, fmt.Sprintf("이 택배사 평균 배송 시간: %d일", avgHours/24))

	return prediction
}

// formatKoreanDate renders a zero-padded Korean월/일 date.
func formatKoreanDate(t time.Time) string {
	return fmt.Sprintf("%02d월 %02d일", int(t.Month()), t.Day())
}

// ScheduleConflict reports whether the user's schedule may overlap the
// predicted delivery window. Keyword matching only.
func (s *PredictionService) ScheduleConflict(timeWindow, schedule string) bool {
	if timeWindow == "" || schedule == "" {
		return false
	}

	scheduleLower := strings.ToLower(schedule)

	if strings.Contains(timeWindow, "오후") {
		if strings.Contains(scheduleLower, "오후") || strings.Contains(scheduleLower, "3시") || strings.Contains(scheduleLower, "4시") {
			return true
		}
	}
	if strings.Contains(timeWindow, "저녁") {
		if strings.Contains(scheduleLower, "저녁") || strings.Contains(scheduleLower, "6시") || strings.Contains(scheduleLower, "7시") {
			return true
		}
	}

	return false
}

// ConflictRecommendations are the suggested workarounds when the delivery
// window overlaps the user's schedule.
func ConflictRecommendations() []string {
	return []string{
		"경비실/무인택배함 배송 요청",
		"문 앞 배송 요청",
		"택배 기사님께 연락",
	}
}
