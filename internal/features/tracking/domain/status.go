package domain

import (
	"fmt"
	"strings"
)

// Phase represents one of the five closed delivery lifecycle states.
type Phase string

const (
	// PhasePickup indicates the carrier is collecting the item.
	PhasePickup Phase = "pickup"
	// PhaseInTransit indicates the item is moving between hubs.
	PhaseInTransit Phase = "transit"
	// PhaseOutForDelivery indicates the courier has the item for final delivery.
	PhaseOutForDelivery Phase = "out"
	// PhaseDelivered indicates the item reached its receiver.
	PhaseDelivered Phase = "delivered"
	// PhaseIssue indicates a delivery problem (return, refusal, loss, ...).
	PhaseIssue Phase = "issue"
)

// ClassifiedStatus is a raw carrier status mapped onto the closed state model.
// Derived per call, never stored.
type ClassifiedStatus struct {
	// Original is the raw carrier status text.
	Original string `json:"original"`
	// Translated is the everyday-Korean reading of the status.
	Translated string `json:"translated"`
	// Short is a compact label for timelines and summaries.
	Short string `json:"short"`
	// Phase is the normalized delivery phase.
	Phase Phase `json:"phase"`
	// Emoji is the display marker for this status.
	Emoji string `json:"emoji"`
	// IsFinal reports whether the shipment will progress no further.
	IsFinal bool `json:"is_final"`
	// EstimatedHours is the heuristic remaining time. Nil when the
	// situation is terminal or no estimate is possible.
	EstimatedHours *int `json:"estimated_hours,omitempty"`
}

// statusEntry fixes the classification for one keyword.
type statusEntry struct {
	keyword    string
	translated string
	short      string
	phase      Phase
	emoji      string
	isFinal    bool
	hours      *int
}

func hoursPtr(h int) *int { return &h }

// statusTable maps carrier status keywords to classifications.
// Order is significant: the partial-match scan takes the first keyword
// contained in the input, so the table must not be turned into a map.
var statusTable = []statusEntry{
	// 접수/수거 단계
	{"접수", "판매자가 택배를 접수했어요", "접수됨", PhasePickup, "📝", false, hoursPtr(72)},
	{"집화처리", "택배사가 물건을 수거했어요", "수거 완료", PhasePickup, "📦", false, hoursPtr(48)},
	{"집하", "택배사가 물건을 수거했어요", "수거 완료", PhasePickup, "📦", false, hoursPtr(48)},
	{"상품인수", "택배사가 물건을 받았어요", "인수 완료", PhasePickup, "📦", false, hoursPtr(48)},

	// 이동 단계
	{"간선상차", "큰 트럭에 실려서 다음 허브로 이동 중이에요", "허브 이동 중", PhaseInTransit, "🚛", false, hoursPtr(24)},
	{"간선하차", "허브에 도착해서 분류 중이에요", "허브 도착", PhaseInTransit, "🏭", false, hoursPtr(18)},
	{"간선", "허브 간 이동 중이에요", "이동 중", PhaseInTransit, "🚛", false, hoursPtr(24)},
	{"행낭포장", "여러 소포를 묶어서 포장 중이에요", "포장 중", PhaseInTransit, "📮", false, hoursPtr(24)},
	{"발송", "발송 처리되었어요", "발송됨", PhaseInTransit, "📤", false, hoursPtr(48)},
	{"출고", "출고 처리되었어요", "출고됨", PhaseInTransit, "📤", false, hoursPtr(48)},
	{"입고", "허브에 도착했어요", "허브 입고", PhaseInTransit, "🏢", false, hoursPtr(18)},
	{"상차", "트럭에 상차되었어요", "상차됨", PhaseInTransit, "🚚", false, hoursPtr(12)},
	{"하차", "도착지에서 하차되었어요", "하차됨", PhaseInTransit, "📥", false, hoursPtr(8)},
	{"터미널", "터미널에서 분류 중이에요", "터미널 분류", PhaseInTransit, "🏭", false, hoursPtr(18)},
	{"이동중", "배송 중이에요", "이동 중", PhaseInTransit, "🚚", false, hoursPtr(12)},

	// 배송 출발 단계
	{"sm입고", "배송 기사님이 물건을 받았어요! 오늘 도착 예정", "기사님 수령", PhaseOutForDelivery, "🙋", false, hoursPtr(6)},
	{"배달출발", "배송 기사님이 출발했어요! 곧 도착해요", "배송 출발", PhaseOutForDelivery, "🚚", false, hoursPtr(3)},
	{"배달준비", "배송 준비 중이에요", "배송 준비", PhaseOutForDelivery, "📋", false, hoursPtr(6)},
	{"배송출발", "배송 기사님이 출발했어요!", "배송 출발", PhaseOutForDelivery, "🚚", false, hoursPtr(3)},
	{"배달중", "배송 중이에요! 조금만 기다려주세요", "배송 중", PhaseOutForDelivery, "🚚", false, hoursPtr(2)},

	// 배송 완료 단계
	{"배달완료", "배송이 완료되었어요! 확인해주세요", "배송 완료", PhaseDelivered, "✅", true, hoursPtr(0)},
	{"배송완료", "배송이 완료되었어요! 확인해주세요", "배송 완료", PhaseDelivered, "✅", true, hoursPtr(0)},
	{"인수확인", "수령이 확인되었어요", "수령 완료", PhaseDelivered, "✅", true, hoursPtr(0)},
	{"수령", "수령이 확인되었어요", "수령 완료", PhaseDelivered, "✅", true, hoursPtr(0)},
	{"완료", "배송이 완료되었어요!", "완료", PhaseDelivered, "✅", true, hoursPtr(0)},

	// 특수 상황
	{"반송", "반송 처리되었어요. 판매자에게 문의해주세요", "반송", PhaseIssue, "↩️", true, nil},
	{"미배달", "배송을 못 했어요. 재배송 예정이에요", "미배달", PhaseIssue, "⚠️", false, hoursPtr(24)},
	{"보관", "물건을 보관 중이에요 (경비실/택배함 등)", "보관 중", PhaseDelivered, "📍", true, hoursPtr(0)},
	{"부재", "부재중이라 배송을 못 했어요", "부재", PhaseIssue, "🏠", false, hoursPtr(24)},
	{"주소불명", "주소가 불명확해요. 판매자에게 확인 요청해주세요", "주소 오류", PhaseIssue, "❓", false, nil},
	{"수취거부", "수취가 거부되었어요", "수취 거부", PhaseIssue, "🚫", true, nil},
	{"분실", "분실 처리되었어요. 판매자에게 문의해주세요", "분실", PhaseIssue, "❌", true, nil},
}

// statusIndex supports the exact-match fast path.
var statusIndex = func() map[string]*statusEntry {
	idx := make(map[string]*statusEntry, len(statusTable))
	for i := range statusTable {
		e := &statusTable[i]
		if _, exists := idx[e.keyword]; !exists {
			idx[e.keyword] = e
		}
	}
	return idx
}()

func (e *statusEntry) classified(original string) ClassifiedStatus {
	return ClassifiedStatus{
		Original:       original,
		Translated:     e.translated,
		Short:          e.short,
		Phase:          e.phase,
		Emoji:          e.emoji,
		IsFinal:        e.isFinal,
		EstimatedHours: e.hours,
	}
}

// truncateRunes cuts s to at most n runes.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// Classify maps a raw carrier status onto the closed state model.
// Total and deterministic: any input yields a classification.
// Lookup order: exact match on the lowercased, space-stripped status,
// then first-match substring scan in table order, then a transit guess
// for texts mentioning 완료/도착, then the unclassifiable default.
func Classify(rawStatus string) ClassifiedStatus {
	key := strings.ReplaceAll(strings.ToLower(rawStatus), " ", "")

	if e, ok := statusIndex[key]; ok {
		return e.classified(rawStatus)
	}

	for i := range statusTable {
		if strings.Contains(key, statusTable[i].keyword) {
			return statusTable[i].classified(rawStatus)
		}
	}

	if strings.Contains(key, "완료") || strings.Contains(key, "도착") {
		return ClassifiedStatus{
			Original:       rawStatus,
			Translated:     fmt.Sprintf("%s - 배송 진행 중인 것 같아요", rawStatus),
			Short:          truncateRunes(rawStatus, 6),
			Phase:          PhaseInTransit,
			Emoji:          "📦",
			IsFinal:        false,
			EstimatedHours: hoursPtr(24),
		}
	}

	return ClassifiedStatus{
		Original:       rawStatus,
		Translated:     fmt.Sprintf("'%s' 상태예요. 배송이 진행 중인 것 같아요", rawStatus),
		Short:          truncateRunes(rawStatus, 6),
		Phase:          PhaseInTransit,
		Emoji:          "📦",
		IsFinal:        false,
		EstimatedHours: nil,
	}
}

// ProgressPercent maps a phase to a display progress percentage.
// Issues share the in-transit percentage: a problem says nothing about
// how far along the shipment is.
func ProgressPercent(phase Phase) int {
	switch phase {
	case PhasePickup:
		return 20
	case PhaseInTransit:
		return 50
	case PhaseOutForDelivery:
		return 80
	case PhaseDelivered:
		return 100
	case PhaseIssue:
		return 50
	default:
		return 0
	}
}
