package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"trackmate/internal/features/tracking/domain"
)

// IssueType categorizes the delivery problem an inquiry is about.
type IssueType string

const (
	// IssueGeneral is a plain status inquiry without a detected problem.
	IssueGeneral IssueType = "general"
	// IssueStagnant marks a shipment that stopped progressing.
	IssueStagnant IssueType = "stagnant"
	// IssueDelay marks a generic delivery problem.
	IssueDelay IssueType = "delay"
	// IssueReturn marks a returned shipment.
	IssueReturn IssueType = "return"
	// IssueAddress marks an address problem.
	IssueAddress IssueType = "address"
)

// stagnantAfterDays mirrors the diagnosis threshold.
const stagnantAfterDays = 2

// eventTimeLayouts are tried in order; the first layout that parses wins.
var eventTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006.01.02 15:04",
}

// IssueContext is the derived situation an inquiry template is built from.
type IssueContext struct {
	// Type is the detected issue category.
	Type IssueType `json:"type"`
	// DaysStagnant is the idle days, 0 when not stagnant.
	DaysStagnant int `json:"days_stagnant,omitempty"`
	// LastLocation is the last known location, when available.
	LastLocation string `json:"last_location,omitempty"`
}

// InquiryService drafts customer service inquiry templates.
type InquiryService struct {
	now func() time.Time
}

// NewInquiryService creates a new InquiryService.
func NewInquiryService() *InquiryService {
	return &InquiryService{now: time.Now}
}

// DeriveIssue classifies the situation for template selection. Status
// keywords are checked first; a stagnation of two days or more overrides
// the status-based category.
func (s *InquiryService) DeriveIssue(result *domain.TrackingResult) IssueContext {
	ctx := IssueContext{Type: IssueGeneral}

	if !result.Success {
		return ctx
	}

	status := domain.Classify(result.CurrentStatus)
	statusLower := strings.ToLower(result.CurrentStatus)
	switch {
	case strings.Contains(statusLower, "반송"):
		ctx.Type = IssueReturn
	case strings.Contains(statusLower, "주소"):
		ctx.Type = IssueAddress
	case status.Phase == domain.PhaseIssue:
		ctx.Type = IssueDelay
	}

	if len(result.Events) == 0 {
		return ctx
	}

	last := result.Events[len(result.Events)-1]
	ctx.LastLocation = last.Location

	for _, layout := range eventTimeLayouts {
		lastTime, err := time.Parse(layout, last.Time)
		if err != nil {
			continue
		}
		ctx.DaysStagnant = int(s.now().Sub(lastTime).Hours() / 24)
		if ctx.DaysStagnant >= stagnantAfterDays {
			ctx.Type = IssueStagnant
		}
		break
	}

	return ctx
}

// daysLabel renders the idle-day count, with a vague fallback when unknown.
func daysLabel(days int) string {
	if days <= 0 {
		return "며칠"
	}
	return strconv.Itoa(days)
}

// CarrierTemplate drafts an inquiry addressed to the carrier's customer
// service. Templates are ready to copy as-is.
func (s *InquiryService) CarrierTemplate(trackingNumber, carrierName string, issue IssueContext) string {
	location := issue.LastLocation
	if location == "" {
		location = "마지막 위치"
	}

	switch issue.Type {
	case IssueStagnant:
		return fmt.Sprintf(`안녕하세요. 배송 문의드립니다.

운송장 번호: %s
택배사: %s

%s일 전부터 '%s'에서 배송 상태가 업데이트되지 않고 있습니다.

현재 배송 상황 확인 부탁드립니다.
분실이나 누락된 것은 아닌지 확인해주시면 감사하겠습니다.

감사합니다.`, trackingNumber, carrierName, daysLabel(issue.DaysStagnant), location)

	case IssueDelay:
		return fmt.Sprintf(`안녕하세요. 배송 지연 문의드립니다.

운송장 번호: %s
택배사: %s

배송이 예상보다 많이 지연되고 있어 문의드립니다.
현재 정확한 배송 상황과 예상 도착일을 알려주시면 감사하겠습니다.

감사합니다.`, trackingNumber, carrierName)

	case IssueReturn:
		return fmt.Sprintf(`안녕하세요. 반송 관련 문의드립니다.

운송장 번호: %s
택배사: %s

배송 상태가 '반송'으로 확인됩니다.
반송 사유를 알려주시면 감사하겠습니다.

수령 가능한 상황이오니, 재배송이 가능한지 확인 부탁드립니다.

감사합니다.`, trackingNumber, carrierName)

	case IssueAddress:
		return fmt.Sprintf(`안녕하세요. 주소 관련 문의드립니다.

운송장 번호: %s
택배사: %s

주소 불명확으로 배송이 중단된 것으로 확인됩니다.

정확한 주소는 다음과 같습니다:
[여기에 정확한 주소를 입력해주세요]

확인 후 배송 진행 부탁드립니다.

감사합니다.`, trackingNumber, carrierName)

	default:
		return fmt.Sprintf(`안녕하세요. 배송 문의드립니다.

운송장 번호: %s
택배사: %s

배송 현황 확인 부탁드립니다.

감사합니다.`, trackingNumber, carrierName)
	}
}

// SellerTemplate drafts an inquiry addressed to the seller, for shop or
// marketplace inquiry boards. Address problems fall back to the general
// template; the address itself is the seller's to fix.
func (s *InquiryService) SellerTemplate(trackingNumber, carrierName string, issue IssueContext) string {
	switch issue.Type {
	case IssueStagnant:
		return fmt.Sprintf(`안녕하세요. 배송 확인 요청드립니다.

주문하신 상품의 배송이 %s일째 진행되지 않고 있습니다.

운송장 번호: %s
택배사: %s

택배사 확인 후 상황 공유 부탁드립니다.
분실된 경우 재발송 또는 환불 처리 요청드립니다.

감사합니다.`, daysLabel(issue.DaysStagnant), trackingNumber, carrierName)

	case IssueReturn:
		return fmt.Sprintf(`안녕하세요. 반송 관련 문의드립니다.

배송 조회 결과 상품이 반송 처리된 것으로 확인됩니다.

운송장 번호: %s
택배사: %s

반송 사유 확인 후 재발송 부탁드립니다.
제 주소와 연락처는 정확히 입력되어 있습니다.

감사합니다.`, trackingNumber, carrierName)

	case IssueDelay:
		return fmt.Sprintf(`안녕하세요. 배송 지연 문의드립니다.

주문한 상품 배송이 예상보다 많이 지연되고 있습니다.

운송장 번호: %s
택배사: %s

택배사에 확인 요청 부탁드립니다.

감사합니다.`, trackingNumber, carrierName)

	default:
		return fmt.Sprintf(`안녕하세요. 배송 관련 문의드립니다.

운송장 번호: %s
택배사: %s

배송 상황 확인 부탁드립니다.

감사합니다.`, trackingNumber, carrierName)
	}
}

// Tips are general guidance bullets appended to every draft.
func Tips() []string {
	return []string{
		"택배사 문의 시 운송장 번호를 정확히 전달하세요",
		"판매자 문의 시 주문번호도 함께 알려주면 좋아요",
		"5일 이상 지연 시 분실 가능성도 언급하세요",
		"답변이 없으면 다른 채널(전화/채팅)로 재문의하세요",
	}
}
