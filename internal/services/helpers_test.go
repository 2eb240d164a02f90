package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/crzyc98/mega-backdoor-acp-sub002/internal/models"
)

// Shared builders for service tests.

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

// testParticipant builds a participant already past every eligibility
// hurdle for plan year 2025: born 1980, hired 2015, never terminated.
func testParticipant(id string, isHCE bool, compensation, match, afterTax float64) models.Participant {
	return models.Participant{
		EmployeeID:   id,
		DOB:          datePtr(1980, time.June, 15),
		HireDate:     datePtr(2015, time.March, 1),
		Compensation: compensation,
		Match:        match,
		AfterTax:     afterTax,
		IsHCE:        isHCE,
	}
}

// testCensus builds nHCE HCEs and nNHCE NHCEs. NHCEs carry a 3% match so the
// baseline NHCE ACP is exactly 3.00; HCEs carry no contributions.
func testCensus(nHCE, nNHCE int) []models.Participant {
	var participants []models.Participant
	for i := 0; i < nHCE; i++ {
		participants = append(participants, testParticipant(fmt.Sprintf("H%03d", i), true, 200000, 0, 0))
	}
	for i := 0; i < nNHCE; i++ {
		participants = append(participants, testParticipant(fmt.Sprintf("N%03d", i), false, 100000, 3000, 0))
	}
	return participants
}

// deref fails the test when a numeric field that should be populated is nil.
func deref(t *testing.T, v *float64) float64 {
	t.Helper()
	if v == nil {
		t.Fatal("expected non-nil value")
	}
	return *v
}

func almostEqual(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < 1e-9
}
