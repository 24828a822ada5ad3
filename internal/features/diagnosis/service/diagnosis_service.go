package service

import (
	"strings"
	"time"

	carriers "trackmate/internal/features/carriers/domain"
	"trackmate/internal/features/tracking/domain"
)

// stagnantAfterDays is the idle threshold that marks a shipment stagnant.
const stagnantAfterDays = 2

// eventTimeLayouts are tried in order; the first layout that parses wins.
// Carriers do not agree on a timestamp format.
var eventTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006.01.02 15:04",
}

// Cause is one candidate explanation with an independent heuristic weight.
// Weights are not a probability distribution and never sum to 100.
type Cause struct {
	// Description explains the candidate cause.
	Description string `json:"description"`
	// Percent is the heuristic confidence weight.
	Percent int `json:"percent"`
}

// Cause sets are fixed ordered lists; the location rules below pick one set.
var (
	hubCauses = []Cause{
		{"물량 폭주로 인한 분류 지연", 60},
		{"분류 과정에서 누락", 30},
		{"시스템 오류", 10},
	}
	airportCauses = []Cause{
		{"통관 지연", 70},
		{"세관 검사", 20},
		{"서류 문제", 10},
	}
	genericCauses = []Cause{
		{"물량 폭주로 인한 지연", 50},
		{"배송 경로 변경", 25},
		{"분류 누락 가능성", 25},
	}
)

// StagnationAssessment reports whether a shipment stopped progressing.
type StagnationAssessment struct {
	// IsStagnant is true when the last event is older than the threshold.
	IsStagnant bool `json:"is_stagnant"`
	// IdleDays is the whole days since the last event.
	IdleDays int `json:"idle_days"`
	// LastLocation is the last known location, when available.
	LastLocation string `json:"last_location,omitempty"`
	// Causes are ranked candidate causes, empty when not stagnant.
	Causes []Cause `json:"causes,omitempty"`
}

// Action is one recommended step, ordered by priority.
type Action struct {
	// Priority orders the actions; 1 comes first.
	Priority int `json:"priority"`
	// Action is the recommended step.
	Action string `json:"action"`
	// Detail carries contact info or context for the step.
	Detail string `json:"detail,omitempty"`
}

// DiagnosisService analyzes problematic deliveries.
type DiagnosisService struct {
	now func() time.Time
}

// NewDiagnosisService creates a new DiagnosisService.
func NewDiagnosisService() *DiagnosisService {
	return &DiagnosisService{now: time.Now}
}

// parseEventTime tries the known layouts in order.
func parseEventTime(value string) (time.Time, bool) {
	for _, layout := range eventTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// AssessStagnation computes whether the shipment stopped progressing.
// Unparsable timestamps fail open: they never trigger a stagnation warning.
func (s *DiagnosisService) AssessStagnation(events []domain.TrackingEvent, _ string) StagnationAssessment {
	if len(events) == 0 {
		return StagnationAssessment{}
	}

	last := events[len(events)-1]

	lastTime, ok := parseEventTime(last.Time)
	if !ok {
		return StagnationAssessment{LastLocation: last.Location}
	}

	idleDays := int(s.now().Sub(lastTime).Hours() / 24)
	if idleDays < stagnantAfterDays {
		return StagnationAssessment{LastLocation: last.Location}
	}

	// Location keyword rules, evaluated in order; the first match picks
	// the cause set.
	var causes []Cause
	switch {
	case strings.Contains(last.Location, "허브") || strings.Contains(last.Location, "터미널") || strings.Contains(last.Location, "HUB"):
		causes = hubCauses
	case strings.Contains(last.Location, "공항"):
		causes = airportCauses
	default:
		causes = genericCauses
	}

	return StagnationAssessment{
		IsStagnant:   true,
		IdleDays:     idleDays,
		LastLocation: last.Location,
		Causes:       causes,
	}
}

// Severity grades the situation: issue states are always severe; stagnation
// escalates with idle days (<3 경미, <5 주의, >=5 심각).
func (s *DiagnosisService) Severity(status domain.ClassifiedStatus, stagnation StagnationAssessment) string {
	if status.Phase == domain.PhaseIssue {
		return "심각"
	}
	if stagnation.IsStagnant {
		switch {
		case stagnation.IdleDays >= 5:
			return "심각"
		case stagnation.IdleDays >= 3:
			return "주의"
		default:
			return "경미"
		}
	}
	return "정상"
}

// carrierContact resolves the contact phone for a carrier code.
func carrierContact(carrierCode string) string {
	if c, ok := carriers.ByCode(carrierCode); ok {
		return c.Contact
	}
	return "택배사"
}

// RecommendedActions derives next steps from the diagnosis. Stagnation
// buckets use the same <3 / <5 / >=5 cut points as Severity; specific issue
// states replace the list entirely.
func (s *DiagnosisService) RecommendedActions(result *domain.TrackingResult, status domain.ClassifiedStatus, stagnation StagnationAssessment) []Action {
	var actions []Action
	contact := carrierContact(result.CarrierCode)

	if stagnation.IsStagnant {
		switch {
		case stagnation.IdleDays >= 5:
			actions = append(actions,
				Action{1, "택배사 고객센터에 분실 여부 확인", "전화: " + contact},
				Action{2, "판매자에게 배송 확인 요청", "분실 시 재발송 또는 환불 협의"},
			)
		case stagnation.IdleDays >= 3:
			actions = append(actions,
				Action{1, "택배사 고객센터 문의", "전화: " + contact},
				Action{2, "판매자에게 상황 공유", "배송 지연 상황 알리기"},
			)
		default:
			actions = append(actions,
				Action{1, "1-2일 더 대기", "물량 폭주 시 자연 해소될 수 있음"},
				Action{2, "개선 없으면 택배사 문의", "전화: " + contact},
			)
		}
	}

	if status.Phase == domain.PhaseIssue {
		statusLower := strings.ToLower(status.Original)
		switch {
		case strings.Contains(statusLower, "반송"):
			actions = []Action{{1, "판매자에게 즉시 연락", "반송 사유 확인 및 재발송 요청"}}
		case strings.Contains(statusLower, "주소"):
			actions = []Action{{1, "정확한 주소 확인 후 판매자에게 전달", "주소 수정 요청"}}
		case strings.Contains(statusLower, "부재"):
			actions = []Action{{1, "택배 기사님 연락 또는 재배송 요청", "부재 시 배송 위치 지정 (경비실/문앞 등)"}}
		}
	}

	if len(actions) == 0 {
		actions = append(actions, Action{1, "택배사 고객센터 문의", "전화: " + contact})
	}

	return actions
}

// Diagnosis is the complete problem assessment for one tracking result.
type Diagnosis struct {
	// Status is the classified current status.
	Status domain.ClassifiedStatus `json:"status"`
	// Severity is one of 정상/경미/주의/심각.
	Severity string `json:"severity"`
	// Stagnation is the idle-time assessment.
	Stagnation StagnationAssessment `json:"stagnation"`
	// Actions are recommended next steps, ordered by priority.
	Actions []Action `json:"actions"`
	// Carrier is the carrier directory entry, when known.
	Carrier *carriers.Carrier `json:"carrier,omitempty"`
}

// Diagnose assembles the full assessment for a successful tracking result.
func (s *DiagnosisService) Diagnose(result *domain.TrackingResult) Diagnosis {
	status := domain.Classify(result.CurrentStatus)
	stagnation := s.AssessStagnation(result.Events, result.CarrierCode)

	d := Diagnosis{
		Status:     status,
		Severity:   s.Severity(status, stagnation),
		Stagnation: stagnation,
		Actions:    s.RecommendedActions(result, status, stagnation),
	}

	if c, ok := carriers.ByCode(result.CarrierCode); ok {
		d.Carrier = &c
	}

	return d
}
