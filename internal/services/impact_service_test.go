package services

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/crzyc98/mega-backdoor-acp-sub002/internal/models"
)

func newImpactFixture() (*ImpactService, *GridService, *EligibilityService) {
	acpSvc := NewACPService(1.0)
	return NewImpactService(acpSvc, 70000), NewGridService(acpSvc, 70000), NewEligibilityService()
}

func TestComputeImpact_Idempotent(t *testing.T) {
	impactSvc, _, eligibilitySvc := newImpactFixture()
	eval := eligibilitySvc.EvaluateCensus(testCensus(10, 40), 2025)

	first := impactSvc.ComputeImpact(eval, 0.5, 0.06, 42, 1.0)
	second := impactSvc.ComputeImpact(eval, 0.5, 0.06, 42, 1.0)

	a, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("failed to marshal view: %v", err)
	}
	b, err := json.Marshal(second)
	if err != nil {
		t.Fatalf("failed to marshal view: %v", err)
	}
	if string(a) != string(b) {
		t.Error("two identical drill-downs produced different output")
	}
}

// The roster behind a grid cell must reproduce the cell's aggregates exactly.
func TestComputeImpact_MatchesGridCell(t *testing.T) {
	impactSvc, gridSvc, eligibilitySvc := newImpactFixture()
	eval := eligibilitySvc.EvaluateCensus(testCensus(10, 40), 2025)

	params := GridParams{
		AdoptionRates:     []float64{0, 0.5, 1.0},
		ContributionRates: []float64{0.02, 0.06, 0.10},
		BaseSeed:          42,
		RiskThreshold:     1.0,
	}
	result, err := gridSvc.RunGrid(eval, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, sc := range result.Scenarios {
		view := impactSvc.ComputeImpact(eval, sc.AdoptionRate, sc.ContributionRate, params.BaseSeed, params.RiskThreshold)
		if view.SeedUsed != sc.SeedUsed {
			t.Errorf("cell (%g, %g): seed %d != grid seed %d", sc.AdoptionRate, sc.ContributionRate, view.SeedUsed, sc.SeedUsed)
		}
		if !reflect.DeepEqual(view.LimitResult, sc.LimitResult) {
			t.Errorf("cell (%g, %g): drill-down limit result diverges from grid cell", sc.AdoptionRate, sc.ContributionRate)
		}
	}
}

func TestComputeImpact_AdopterCountAndSelection(t *testing.T) {
	impactSvc, _, eligibilitySvc := newImpactFixture()
	eval := eligibilitySvc.EvaluateCensus(testCensus(10, 40), 2025)

	view := impactSvc.ComputeImpact(eval, 0.5, 0.06, 42, 1.0)

	var adopters, notSelected int
	for _, e := range view.Employees {
		if !e.IsHCE {
			if e.ConstraintStatus != models.ConstraintNotSelected {
				t.Errorf("NHCE %s has constraint %s", e.EmployeeID, e.ConstraintStatus)
			}
			if e.MegaAmount != 0 {
				t.Errorf("NHCE %s has mega amount %g", e.EmployeeID, e.MegaAmount)
			}
			continue
		}
		if e.ConstraintStatus == models.ConstraintNotSelected {
			notSelected++
			if e.MegaAmount != 0 {
				t.Errorf("non-adopter %s has mega amount %g", e.EmployeeID, e.MegaAmount)
			}
		} else {
			adopters++
		}
	}
	// round(10 x 0.5) = 5 adopters.
	if adopters != 5 || notSelected != 5 {
		t.Errorf("expected 5 adopters and 5 non-adopters, got %d and %d", adopters, notSelected)
	}
}

func TestComputeImpact_ConstraintStatuses(t *testing.T) {
	impactSvc, _, eligibilitySvc := newImpactFixture()

	// Ceiling 70000, contribution rate 10%.
	// H-AT:   comp 100000, existing 60000 -> room 10000 = desired 10000, AT_LIMIT
	// H-RED:  comp 200000, existing 60000 -> room 10000 < desired 20000, REDUCED
	// H-FREE: comp 100000, existing 0     -> room 70000 > desired 10000, UNCONSTRAINED
	atLimit := testParticipant("H-AT", true, 100000, 0, 0)
	atLimit.PreTax = 60000
	reduced := testParticipant("H-RED", true, 200000, 0, 0)
	reduced.PreTax = 60000
	free := testParticipant("H-FREE", true, 100000, 0, 0)

	participants := append(testCensus(0, 10), atLimit, reduced, free)
	eval := eligibilitySvc.EvaluateCensus(participants, 2025)

	// Adoption 1.0 so selection covers every HCE.
	view := impactSvc.ComputeImpact(eval, 1.0, 0.10, 42, 1.0)

	expected := map[string]struct {
		status models.ConstraintStatus
		mega   float64
		room   float64
	}{
		"H-AT":   {models.ConstraintAtLimit, 10000, 10000},
		"H-RED":  {models.ConstraintReduced, 10000, 10000},
		"H-FREE": {models.ConstraintUnconstrained, 10000, 70000},
	}
	for _, e := range view.Employees {
		want, ok := expected[e.EmployeeID]
		if !ok {
			continue
		}
		if e.ConstraintStatus != want.status {
			t.Errorf("%s: expected %s, got %s", e.EmployeeID, want.status, e.ConstraintStatus)
		}
		if !almostEqual(e.MegaAmount, want.mega) {
			t.Errorf("%s: expected mega %g, got %g", e.EmployeeID, want.mega, e.MegaAmount)
		}
		if !almostEqual(e.AvailableRoom, want.room) {
			t.Errorf("%s: expected room %g, got %g", e.EmployeeID, want.room, e.AvailableRoom)
		}
	}

	if view.HCESummary == nil {
		t.Fatal("expected HCE summary")
	}
	if view.HCESummary.AtLimitCount != 1 || view.HCESummary.ReducedCount != 1 {
		t.Errorf("expected 1 at-limit and 1 reduced, got %d and %d",
			view.HCESummary.AtLimitCount, view.HCESummary.ReducedCount)
	}
	if !almostEqual(view.HCESummary.TotalMegaAmount, 30000) {
		t.Errorf("expected total mega 30000, got %g", view.HCESummary.TotalMegaAmount)
	}
}

func TestComputeImpact_GroupSummaries(t *testing.T) {
	impactSvc, _, eligibilitySvc := newImpactFixture()
	eval := eligibilitySvc.EvaluateCensus(testCensus(4, 10), 2025)

	view := impactSvc.ComputeImpact(eval, 0, 0.06, 42, 1.0)

	if view.NHCESummary == nil {
		t.Fatal("expected NHCE summary")
	}
	if view.NHCESummary.Count != 10 {
		t.Errorf("expected 10 NHCEs, got %d", view.NHCESummary.Count)
	}
	if !almostEqual(view.NHCESummary.AvgACP, 3.0) {
		t.Errorf("expected NHCE avg ACP 3.00, got %g", view.NHCESummary.AvgACP)
	}
	if !almostEqual(view.NHCESummary.TotalMatch, 30000) {
		t.Errorf("expected total match 30000, got %g", view.NHCESummary.TotalMatch)
	}
	if view.HCESummary == nil {
		t.Fatal("expected HCE summary")
	}
	// Zero adoption: no mega amounts anywhere.
	if view.HCESummary.TotalMegaAmount != 0 {
		t.Errorf("expected zero total mega at zero adoption, got %g", view.HCESummary.TotalMegaAmount)
	}
}

func TestComputeImpact_EmptyNHCEsErrorShaped(t *testing.T) {
	impactSvc, _, eligibilitySvc := newImpactFixture()
	eval := eligibilitySvc.EvaluateCensus(testCensus(3, 0), 2025)

	view := impactSvc.ComputeImpact(eval, 0.5, 0.06, 42, 1.0)
	assertErrorShaped(t, view.LimitResult)
	if view.NHCESummary != nil {
		t.Error("expected nil NHCE summary for empty NHCE group")
	}
	if view.HCESummary == nil {
		t.Error("expected HCE summary to still be present")
	}
}

func TestComputeImpact_EmployeesSortedByID(t *testing.T) {
	impactSvc, _, eligibilitySvc := newImpactFixture()
	eval := eligibilitySvc.EvaluateCensus(testCensus(5, 5), 2025)

	view := impactSvc.ComputeImpact(eval, 0.5, 0.06, 42, 1.0)
	for i := 1; i < len(view.Employees); i++ {
		if view.Employees[i-1].EmployeeID >= view.Employees[i].EmployeeID {
			t.Fatalf("employees not sorted: %s before %s",
				view.Employees[i-1].EmployeeID, view.Employees[i].EmployeeID)
		}
	}
}
