package service

import (
	"testing"
	"time"

	"trackmate/internal/features/tracking/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedNow is the reference instant all tests run against.
var fixedNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

// newTestService returns a DiagnosisService pinned to fixedNow.
func newTestService() *DiagnosisService {
	svc := NewDiagnosisService()
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func eventAt(daysAgo int, location string) domain.TrackingEvent {
	return domain.TrackingEvent{
		Time:     fixedNow.Add(-time.Duration(daysAgo) * 24 * time.Hour).Format("2006-01-02 15:04"),
		Status:   "간선하차",
		Location: location,
	}
}

// TestAssessStagnation_EmptyEvents verifies no events means no stagnation.
func TestAssessStagnation_EmptyEvents(t *testing.T) {
	svc := newTestService()

	got := svc.AssessStagnation(nil, "04")

	assert.False(t, got.IsStagnant)
	assert.Zero(t, got.IdleDays)
	assert.Empty(t, got.Causes)
}

// TestAssessStagnation_HubLocation verifies a 5-day-old hub event is
// stagnant with the sorting-delay cause set on top.
func TestAssessStagnation_HubLocation(t *testing.T) {
	svc := newTestService()
	events := []domain.TrackingEvent{eventAt(6, "서울 영등포구"), eventAt(5, "부산 허브 터미널")}

	got := svc.AssessStagnation(events, "04")

	assert.True(t, got.IsStagnant)
	assert.Equal(t, 5, got.IdleDays)
	assert.Equal(t, "부산 허브 터미널", got.LastLocation)
	require.NotEmpty(t, got.Causes)
	assert.Equal(t, "물량 폭주로 인한 분류 지연", got.Causes[0].Description)
	assert.Equal(t, 60, got.Causes[0].Percent)
}

// TestAssessStagnation_AirportLocation verifies the customs cause set.
func TestAssessStagnation_AirportLocation(t *testing.T) {
	svc := newTestService()
	events := []domain.TrackingEvent{eventAt(3, "인천공항")}

	got := svc.AssessStagnation(events, "01")

	assert.True(t, got.IsStagnant)
	require.NotEmpty(t, got.Causes)
	assert.Equal(t, "통관 지연", got.Causes[0].Description)
	assert.Equal(t, 70, got.Causes[0].Percent)
}

// TestAssessStagnation_GenericLocation verifies the fallback cause set and
// that weights stay as independent heuristics (not normalized to 100).
func TestAssessStagnation_GenericLocation(t *testing.T) {
	svc := newTestService()
	events := []domain.TrackingEvent{eventAt(2, "서울 강남구")}

	got := svc.AssessStagnation(events, "04")

	assert.True(t, got.IsStagnant)
	require.Len(t, got.Causes, 3)
	assert.Equal(t, 50, got.Causes[0].Percent)
	assert.Equal(t, 25, got.Causes[1].Percent)
	assert.Equal(t, 25, got.Causes[2].Percent)
}

// TestAssessStagnation_Recent verifies fresh events are not stagnant.
func TestAssessStagnation_Recent(t *testing.T) {
	svc := newTestService()
	events := []domain.TrackingEvent{eventAt(1, "부산 허브")}

	got := svc.AssessStagnation(events, "04")

	assert.False(t, got.IsStagnant)
	assert.Equal(t, "부산 허브", got.LastLocation)
	assert.Empty(t, got.Causes)
}

// TestAssessStagnation_UnparsableTime verifies unparsable timestamps fail
// open: never stagnant, no causes.
func TestAssessStagnation_UnparsableTime(t *testing.T) {
	svc := newTestService()
	events := []domain.TrackingEvent{{Time: "08/20 오전 10시", Status: "간선하차", Location: "대전 허브"}}

	got := svc.AssessStagnation(events, "04")

	assert.False(t, got.IsStagnant)
	assert.Zero(t, got.IdleDays)
	assert.Equal(t, "대전 허브", got.LastLocation)
}

// TestAssessStagnation_LayoutFallback verifies the ordered layout list.
func TestAssessStagnation_LayoutFallback(t *testing.T) {
	svc := newTestService()
	events := []domain.TrackingEvent{{
		Time:     fixedNow.Add(-4 * 24 * time.Hour).Format("2006.01.02 15:04"),
		Status:   "간선하차",
		Location: "구미 터미널",
	}}

	got := svc.AssessStagnation(events, "04")

	assert.True(t, got.IsStagnant)
	assert.Equal(t, 4, got.IdleDays)
}

// TestSeverity verifies the grading rules and their cut points.
func TestSeverity(t *testing.T) {
	svc := newTestService()

	issue := domain.Classify("반송")
	transit := domain.Classify("간선하차")

	assert.Equal(t, "심각", svc.Severity(issue, StagnationAssessment{}))
	assert.Equal(t, "심각", svc.Severity(transit, StagnationAssessment{IsStagnant: true, IdleDays: 5}))
	assert.Equal(t, "주의", svc.Severity(transit, StagnationAssessment{IsStagnant: true, IdleDays: 3}))
	assert.Equal(t, "경미", svc.Severity(transit, StagnationAssessment{IsStagnant: true, IdleDays: 2}))
	assert.Equal(t, "정상", svc.Severity(transit, StagnationAssessment{}))
}

// TestRecommendedActions_StagnationBuckets verifies the idle-day buckets.
func TestRecommendedActions_StagnationBuckets(t *testing.T) {
	svc := newTestService()
	result := &domain.TrackingResult{CarrierCode: "04"}
	transit := domain.Classify("간선하차")

	longActions := svc.RecommendedActions(result, transit, StagnationAssessment{IsStagnant: true, IdleDays: 6})
	require.Len(t, longActions, 2)
	assert.Contains(t, longActions[0].Action, "분실 여부 확인")
	assert.Contains(t, longActions[0].Detail, "1588-1255")

	midActions := svc.RecommendedActions(result, transit, StagnationAssessment{IsStagnant: true, IdleDays: 3})
	require.Len(t, midActions, 2)
	assert.Contains(t, midActions[0].Action, "고객센터 문의")

	shortActions := svc.RecommendedActions(result, transit, StagnationAssessment{IsStagnant: true, IdleDays: 2})
	require.Len(t, shortActions, 2)
	assert.Contains(t, shortActions[0].Action, "대기")
}

// TestRecommendedActions_IssueOverrides verifies issue states replace the list.
func TestRecommendedActions_IssueOverrides(t *testing.T) {
	svc := newTestService()
	result := &domain.TrackingResult{CarrierCode: "04"}

	returned := svc.RecommendedActions(result, domain.Classify("반송"), StagnationAssessment{IsStagnant: true, IdleDays: 6})
	require.Len(t, returned, 1)
	assert.Contains(t, returned[0].Action, "판매자에게 즉시 연락")

	address := svc.RecommendedActions(result, domain.Classify("주소불명"), StagnationAssessment{})
	require.Len(t, address, 1)
	assert.Contains(t, address[0].Action, "주소")

	absent := svc.RecommendedActions(result, domain.Classify("부재"), StagnationAssessment{})
	require.Len(t, absent, 1)
	assert.Contains(t, absent[0].Action, "재배송")
}

// TestRecommendedActions_Default verifies the fallback action.
func TestRecommendedActions_Default(t *testing.T) {
	svc := newTestService()
	result := &domain.TrackingResult{CarrierCode: "05"}

	actions := svc.RecommendedActions(result, domain.Classify("간선하차"), StagnationAssessment{})

	require.Len(t, actions, 1)
	assert.Contains(t, actions[0].Detail, "1588-0011")
}

// TestDiagnose verifies the assembled diagnosis.
func TestDiagnose(t *testing.T) {
	svc := newTestService()
	result := &domain.TrackingResult{
		Success:       true,
		CarrierCode:   "04",
		CurrentStatus: "간선하차",
		Events:        []domain.TrackingEvent{eventAt(5, "부산 허브")},
	}

	got := svc.Diagnose(result)

	assert.Equal(t, "심각", got.Severity)
	assert.True(t, got.Stagnation.IsStagnant)
	require.NotNil(t, got.Carrier)
	assert.Equal(t, "CJ대한통운", got.Carrier.Name)
	assert.NotEmpty(t, got.Actions)
}
