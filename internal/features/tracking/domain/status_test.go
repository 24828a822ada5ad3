package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestClassify_ExactMatch verifies the exact-match path for known keywords.
func TestClassify_ExactMatch(t *testing.T) {
	got := Classify("SM입고")

	assert.Equal(t, PhaseOutForDelivery, got.Phase)
	assert.Equal(t, "기사님 수령", got.Short)
	assert.False(t, got.IsFinal)
	require.NotNil(t, got.EstimatedHours)
	assert.Equal(t, 6, *got.EstimatedHours)
}

// TestClassify_Delivered verifies delivered statuses are final with zero hours.
func TestClassify_Delivered(t *testing.T) {
	got := Classify("배달완료")

	assert.Equal(t, PhaseDelivered, got.Phase)
	assert.True(t, got.IsFinal)
	require.NotNil(t, got.EstimatedHours)
	assert.Equal(t, 0, *got.EstimatedHours)
}

// TestClassify_IssueNoEstimate verifies terminal issues carry no hour estimate.
func TestClassify_IssueNoEstimate(t *testing.T) {
	got := Classify("반송")

	assert.Equal(t, PhaseIssue, got.Phase)
	assert.True(t, got.IsFinal)
	assert.Nil(t, got.EstimatedHours)
}

// TestClassify_SpaceInsensitive verifies spaces are stripped before lookup.
func TestClassify_SpaceInsensitive(t *testing.T) {
	got := Classify("배달 완료")

	assert.Equal(t, PhaseDelivered, got.Phase)
	assert.True(t, got.IsFinal)
}

// TestClassify_PartialMatchOrder verifies the substring scan takes the
// first matching table entry: 간선상차 must win over 상차 for composite text.
func TestClassify_PartialMatchOrder(t *testing.T) {
	got := Classify("대전HUB 간선상차 완료")

	assert.Equal(t, "허브 이동 중", got.Short)
	assert.Equal(t, PhaseInTransit, got.Phase)
}

// TestClassify_ArrivalGuess verifies unmatched texts mentioning 도착 get the
// transit guess with a 24 hour estimate.
func TestClassify_ArrivalGuess(t *testing.T) {
	got := Classify("물류센터도착예정")

	assert.Equal(t, PhaseInTransit, got.Phase)
	assert.False(t, got.IsFinal)
	require.NotNil(t, got.EstimatedHours)
	assert.Equal(t, 24, *got.EstimatedHours)
	assert.Contains(t, got.Translated, "배송 진행 중인 것 같아요")
}

// TestClassify_UnknownDefault verifies the unclassifiable default.
func TestClassify_UnknownDefault(t *testing.T) {
	got := Classify("알수없는상태텍스트입니다")

	assert.Equal(t, PhaseInTransit, got.Phase)
	assert.False(t, got.IsFinal)
	assert.Nil(t, got.EstimatedHours)
	assert.Equal(t, 6, len([]rune(got.Short)))
}

// TestClassify_Total verifies classification never fails on odd inputs.
func TestClassify_Total(t *testing.T) {
	for _, input := range []string{"", " ", "???", "x", "完了", "1234567890"} {
		got := Classify(input)
		assert.NotEmpty(t, got.Phase, "input %q", input)
	}
}

// TestClassify_Idempotent verifies repeated calls return the same result.
func TestClassify_Idempotent(t *testing.T) {
	first := Classify("간선하차")
	second := Classify("간선하차")

	assert.Equal(t, first, second)
}

// TestProgressPercent verifies the phase-to-progress mapping.
func TestProgressPercent(t *testing.T) {
	assert.Equal(t, 20, ProgressPercent(PhasePickup))
	assert.Equal(t, 50, ProgressPercent(PhaseInTransit))
	assert.Equal(t, 80, ProgressPercent(PhaseOutForDelivery))
	assert.Equal(t, 100, ProgressPercent(PhaseDelivered))
	assert.Equal(t, 50, ProgressPercent(PhaseIssue))
	assert.Equal(t, 0, ProgressPercent(Phase("bogus")))
}

// TestTrackingResult_LastEvent verifies last-event access.
func TestTrackingResult_LastEvent(t *testing.T) {
	r := &TrackingResult{}
	_, ok := r.LastEvent()
	assert.False(t, ok)

	r.Events = []TrackingEvent{
		{Status: "집화처리"},
		{Status: "간선상차"},
	}
	last, ok := r.LastEvent()
	require.True(t, ok)
	assert.Equal(t, "간선상차", last.Status)
}
