package adapters

import (
	"context"
	"hash/fnv"
	"time"

	carriers "trackmate/internal/features/carriers/domain"
	"trackmate/internal/features/tracking/ports"
)

const mockTimeLayout = "2006-01-02 15:04"

// MockAdapter implements the Fetcher port with simulated data.
// Used when no Sweet Tracker API key is configured, so the service stays
// explorable without upstream credentials. Scenario selection is a pure
// function of the tracking number, so repeated queries are stable.
type MockAdapter struct {
	now func() time.Time
}

// NewMockAdapter creates a mock Fetcher.
func NewMockAdapter() *MockAdapter {
	return &MockAdapter{now: time.Now}
}

// mockScenario is one canned delivery timeline.
type mockScenario struct {
	details    func(now time.Time) []ports.RawDetail
	completeYN string
}

var mockScenarios = []mockScenario{
	// In transit, handed to the courier.
	{
		details: func(now time.Time) []ports.RawDetail {
			return []ports.RawDetail{
				{TimeString: now.Add(-48 * time.Hour).Format(mockTimeLayout), Kind: "집화처리", Where: "서울 강남구", Remark: "상품인수"},
				{TimeString: now.Add(-42 * time.Hour).Format(mockTimeLayout), Kind: "간선상차", Where: "서울 HUB", Remark: "간선상차"},
				{TimeString: now.Add(-30 * time.Hour).Format(mockTimeLayout), Kind: "간선하차", Where: "부산 HUB", Remark: "간선하차"},
				{TimeString: now.Add(-3 * time.Hour).Format(mockTimeLayout), Kind: "SM입고", Where: "부산 해운대구", Remark: "배송기사인수"},
			}
		},
	},
	// Out for delivery.
	{
		details: func(now time.Time) []ports.RawDetail {
			return []ports.RawDetail{
				{TimeString: now.Add(-24 * time.Hour).Format(mockTimeLayout), Kind: "집화처리", Where: "서울 송파구", Remark: "상품인수"},
				{TimeString: now.Add(-12 * time.Hour).Format(mockTimeLayout), Kind: "간선상차", Where: "서울 HUB", Remark: "간선상차"},
				{TimeString: now.Add(-6 * time.Hour).Format(mockTimeLayout), Kind: "간선하차", Where: "서울 강남 HUB", Remark: "간선하차"},
				{TimeString: now.Add(-2 * time.Hour).Format(mockTimeLayout), Kind: "SM입고", Where: "서울 강남구", Remark: "배송기사인수"},
				{TimeString: now.Add(-1 * time.Hour).Format(mockTimeLayout), Kind: "배달출발", Where: "서울 강남구", Remark: "배달출발"},
			}
		},
	},
	// Delivered.
	{
		details: func(now time.Time) []ports.RawDetail {
			return []ports.RawDetail{
				{TimeString: now.Add(-48 * time.Hour).Format(mockTimeLayout), Kind: "집화처리", Where: "경기 수원시", Remark: "상품인수"},
				{TimeString: now.Add(-24 * time.Hour).Format(mockTimeLayout), Kind: "간선상차", Where: "수원 HUB", Remark: "간선상차"},
				{TimeString: now.Add(-8 * time.Hour).Format(mockTimeLayout), Kind: "SM입고", Where: "서울 마포구", Remark: "배송기사인수"},
				{TimeString: now.Add(-6 * time.Hour).Format(mockTimeLayout), Kind: "배달출발", Where: "서울 마포구", Remark: "배달출발"},
				{TimeString: now.Add(-5 * time.Hour).Format(mockTimeLayout), Kind: "배달완료", Where: "서울 마포구", Remark: "배달완료"},
			}
		},
		completeYN: "Y",
	},
	// Stuck at a hub for days (exercises the stagnation diagnosis).
	{
		details: func(now time.Time) []ports.RawDetail {
			return []ports.RawDetail{
				{TimeString: now.Add(-5 * 24 * time.Hour).Format(mockTimeLayout), Kind: "집화처리", Where: "서울 영등포구", Remark: "상품인수"},
				{TimeString: now.Add(-4 * 24 * time.Hour).Format(mockTimeLayout), Kind: "간선상차", Where: "서울 HUB", Remark: "간선상차"},
				{TimeString: now.Add(-3 * 24 * time.Hour).Format(mockTimeLayout), Kind: "간선하차", Where: "부산 HUB", Remark: "간선하차"},
			}
		},
	},
}

// scenarioIndex picks a stable scenario for a tracking number.
func scenarioIndex(trackingNumber string) int {
	h := fnv.New32a()
	h.Write([]byte(trackingNumber))
	return int(h.Sum32() % uint32(len(mockScenarios)))
}

// Fetch returns a simulated tracking record.
func (m *MockAdapter) Fetch(_ context.Context, trackingNumber, _ string) (*ports.RawRecord, error) {
	scenario := mockScenarios[scenarioIndex(trackingNumber)]

	return &ports.RawRecord{
		TrackingDetails: scenario.details(m.now()),
		SenderName:      "테스트 판매자",
		ReceiverName:    "테스트 고객",
		ItemName:        "테스트 상품",
		CompleteYN:      scenario.completeYN,
	}, nil
}

// CompanyList returns the static carrier directory as the supported list.
func (m *MockAdapter) CompanyList(_ context.Context) ([]ports.Company, error) {
	all := carriers.All()
	out := make([]ports.Company, 0, len(all))
	for _, c := range all {
		out = append(out, ports.Company{Code: c.Code, Name: c.Name})
	}
	return out, nil
}
