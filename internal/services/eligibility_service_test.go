package services

import (
	"testing"
	"time"

	"github.com/crzyc98/mega-backdoor-acp-sub002/internal/models"
	"github.com/crzyc98/mega-backdoor-acp-sub002/internal/util"
)

func TestDetermineInclusion_MissingDOB(t *testing.T) {
	svc := NewEligibilityService()
	start, end := util.PlanYearBounds(2025)

	res := svc.DetermineInclusion(nil, datePtr(2015, time.March, 1), nil, start, end)
	if res.Includable {
		t.Error("expected not includable")
	}
	if res.Reason != models.ExclusionMissingDOB {
		t.Errorf("expected MISSING_DOB, got %s", res.Reason)
	}
	if res.EligibilityDate != nil || res.EntryDate != nil {
		t.Error("expected nil eligibility and entry dates")
	}
}

func TestDetermineInclusion_MissingHireDate(t *testing.T) {
	svc := NewEligibilityService()
	start, end := util.PlanYearBounds(2025)

	res := svc.DetermineInclusion(datePtr(1980, time.June, 15), nil, nil, start, end)
	if res.Includable {
		t.Error("expected not includable")
	}
	if res.Reason != models.ExclusionMissingHireDate {
		t.Errorf("expected MISSING_HIRE_DATE, got %s", res.Reason)
	}
}

func TestDetermineInclusion_ServiceControlsEligibility(t *testing.T) {
	svc := NewEligibilityService()
	start, end := util.PlanYearBounds(2025)

	// Born 1990 (age 21 long past), hired 2024-03-10: one year of service
	// completes 2025-03-10, entry 2025-07-01.
	res := svc.DetermineInclusion(datePtr(1990, time.January, 1), datePtr(2024, time.March, 10), nil, start, end)
	if !res.Includable {
		t.Fatalf("expected includable, got reason %s", res.Reason)
	}
	if !res.EligibilityDate.Equal(date(2025, time.March, 10)) {
		t.Errorf("expected eligibility 2025-03-10, got %s", res.EligibilityDate.Format("2006-01-02"))
	}
	if !res.EntryDate.Equal(date(2025, time.July, 1)) {
		t.Errorf("expected entry 2025-07-01, got %s", res.EntryDate.Format("2006-01-02"))
	}
}

func TestDetermineInclusion_AgeControlsEligibility(t *testing.T) {
	svc := NewEligibilityService()
	start, end := util.PlanYearBounds(2026)

	// Hired young: service year done 2021, but age 21 not reached until
	// 2026-03-10.
	res := svc.DetermineInclusion(datePtr(2005, time.March, 10), datePtr(2020, time.June, 1), nil, start, end)
	if !res.Includable {
		t.Fatalf("expected includable, got reason %s", res.Reason)
	}
	if !res.EligibilityDate.Equal(date(2026, time.March, 10)) {
		t.Errorf("expected eligibility 2026-03-10, got %s", res.EligibilityDate.Format("2006-01-02"))
	}
	if !res.EntryDate.Equal(date(2026, time.July, 1)) {
		t.Errorf("expected entry 2026-07-01, got %s", res.EntryDate.Format("2006-01-02"))
	}
}

func TestDetermineInclusion_LeapDayBirthday(t *testing.T) {
	svc := NewEligibilityService()
	start, end := util.PlanYearBounds(2025)

	// Feb 29 DOB, 21st birthday falls in non-leap 2025: anniversary is
	// Feb 28, not Mar 1.
	res := svc.DetermineInclusion(datePtr(2004, time.February, 29), datePtr(2020, time.January, 15), nil, start, end)
	if !res.EligibilityDate.Equal(date(2025, time.February, 28)) {
		t.Errorf("expected eligibility 2025-02-28, got %s", res.EligibilityDate.Format("2006-01-02"))
	}
}

func TestDetermineInclusion_EntryAfterPlanYearEnd(t *testing.T) {
	svc := NewEligibilityService()
	start, end := util.PlanYearBounds(2025)

	// Service year completes 2025-07-02, so entry rolls to 2026-01-01,
	// past the 2025 plan year end.
	res := svc.DetermineInclusion(datePtr(1980, time.June, 15), datePtr(2024, time.July, 2), nil, start, end)
	if res.Includable {
		t.Error("expected not includable")
	}
	if res.Reason != models.ExclusionNotEligibleDuringYear {
		t.Errorf("expected NOT_ELIGIBLE_DURING_YEAR, got %s", res.Reason)
	}
	if res.EntryDate == nil || !res.EntryDate.Equal(date(2026, time.January, 1)) {
		t.Errorf("expected entry 2026-01-01, got %v", res.EntryDate)
	}
}

func TestDetermineInclusion_Dec31EligibilityRollsToNextYear(t *testing.T) {
	svc := NewEligibilityService()
	start, end := util.PlanYearBounds(2025)

	// One year of service completes exactly Dec 31 2025: entry is Jan 1
	// 2026 and the participant misses the 2025 test population.
	res := svc.DetermineInclusion(datePtr(1980, time.June, 15), datePtr(2024, time.December, 31), nil, start, end)
	if res.Includable {
		t.Error("expected not includable")
	}
	if res.Reason != models.ExclusionNotEligibleDuringYear {
		t.Errorf("expected NOT_ELIGIBLE_DURING_YEAR, got %s", res.Reason)
	}
}

func TestDetermineInclusion_TerminatedBeforeEntry(t *testing.T) {
	svc := NewEligibilityService()
	start, end := util.PlanYearBounds(2025)

	// Entry 2025-07-01; terminated the day before.
	res := svc.DetermineInclusion(datePtr(1980, time.June, 15), datePtr(2024, time.March, 10), datePtr(2025, time.June, 30), start, end)
	if res.Includable {
		t.Error("expected not includable")
	}
	if res.Reason != models.ExclusionTerminatedBeforeEntry {
		t.Errorf("expected TERMINATED_BEFORE_ENTRY, got %s", res.Reason)
	}
}

func TestDetermineInclusion_TerminatedOnEntryDateIncluded(t *testing.T) {
	svc := NewEligibilityService()
	start, end := util.PlanYearBounds(2025)

	res := svc.DetermineInclusion(datePtr(1980, time.June, 15), datePtr(2024, time.March, 10), datePtr(2025, time.July, 1), start, end)
	if !res.Includable {
		t.Errorf("expected includable, got reason %s", res.Reason)
	}
}

func TestDetermineInclusion_LateYearEntryStillInPlanYear(t *testing.T) {
	svc := NewEligibilityService()
	start, end := util.PlanYearBounds(2025)

	// Entry 2025-07-01 is within Jan 1 - Dec 31 2025. A prior-year end
	// bound would wrongly exclude everyone entering during the year.
	res := svc.DetermineInclusion(datePtr(1980, time.June, 15), datePtr(2024, time.May, 20), nil, start, end)
	if !res.Includable {
		t.Errorf("expected includable, got reason %s", res.Reason)
	}
	if !res.EntryDate.Equal(date(2025, time.July, 1)) {
		t.Errorf("expected entry 2025-07-01, got %s", res.EntryDate.Format("2006-01-02"))
	}
}

func TestEvaluateCensus_PartitionInvariant(t *testing.T) {
	svc := NewEligibilityService()

	participants := testCensus(3, 5)
	// One missing DOB, one hired too recently, one terminated before entry.
	noDOB := testParticipant("X001", false, 90000, 0, 0)
	noDOB.DOB = nil
	lateHire := testParticipant("X002", true, 150000, 0, 0)
	lateHire.HireDate = datePtr(2025, time.June, 1)
	termed := testParticipant("X003", false, 80000, 1000, 0)
	termed.HireDate = datePtr(2024, time.March, 10)
	termed.TerminationDate = datePtr(2025, time.May, 1)
	participants = append(participants, noDOB, lateHire, termed)

	eval := svc.EvaluateCensus(participants, 2025)

	if got := len(eval.Includable) + eval.ExcludedCount(); got != len(participants) {
		t.Errorf("includable (%d) + excluded (%d) != total (%d)",
			len(eval.Includable), eval.ExcludedCount(), len(participants))
	}
	if eval.Exclusions.MissingDOB != 1 {
		t.Errorf("expected 1 MISSING_DOB exclusion, got %d", eval.Exclusions.MissingDOB)
	}
	if eval.Exclusions.NotEligibleDuringYear != 1 {
		t.Errorf("expected 1 NOT_ELIGIBLE_DURING_YEAR exclusion, got %d", eval.Exclusions.NotEligibleDuringYear)
	}
	if eval.Exclusions.TerminatedBeforeEntry != 1 {
		t.Errorf("expected 1 TERMINATED_BEFORE_ENTRY exclusion, got %d", eval.Exclusions.TerminatedBeforeEntry)
	}

	hces, nhces := eval.Partition()
	if len(hces) != 3 || len(nhces) != 5 {
		t.Errorf("expected 3 HCEs and 5 NHCEs includable, got %d and %d", len(hces), len(nhces))
	}
}

func TestEvaluateCensus_ZeroContributionIrrelevant(t *testing.T) {
	svc := NewEligibilityService()

	// Identical dates, one contributes nothing: inclusion must match.
	contributor := testParticipant("A", false, 100000, 5000, 2000)
	nonContributor := testParticipant("B", false, 100000, 0, 0)

	eval := svc.EvaluateCensus([]models.Participant{contributor, nonContributor}, 2025)
	if len(eval.Includable) != 2 {
		t.Errorf("expected both participants includable, got %d", len(eval.Includable))
	}
}

func TestEvaluateCensus_DoesNotMutateInput(t *testing.T) {
	svc := NewEligibilityService()

	participants := []models.Participant{testParticipant("A", false, 100000, 0, 0)}
	svc.EvaluateCensus(participants, 2025)

	if participants[0].EntryDate != nil || participants[0].ACPIncludable {
		t.Error("EvaluateCensus mutated its input slice")
	}
}
