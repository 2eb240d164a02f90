package services

import (
	"sort"
	"time"

	"github.com/crzyc98/mega-backdoor-acp-sub002/internal/models"
	"github.com/crzyc98/mega-backdoor-acp-sub002/internal/util"
)

// EligibilityService decides, per participant, whether they count toward the
// ACP test population for a plan year: age 21 plus one year of service
// (elapsed time), semi-annual entry, permissive disaggregation of
// not-yet-entered employees.
type EligibilityService struct{}

// NewEligibilityService creates a new EligibilityService
func NewEligibilityService() *EligibilityService {
	return &EligibilityService{}
}

// CensusEvaluation is the eligibility pass over a full census for one plan
// year. Participants carry their derived fields; Includable is the subset
// that enters the ACP test. Computed once per run and shared read-only by
// every grid cell.
type CensusEvaluation struct {
	PlanYear      int
	PlanYearStart time.Time
	PlanYearEnd   time.Time
	Participants  []models.Participant
	Includable    []models.Participant
	Exclusions    models.ExclusionBreakdown
}

// ExcludedCount returns how many participants the eligibility pass excluded.
func (e *CensusEvaluation) ExcludedCount() int {
	return e.Exclusions.Total
}

// Partition splits the includable population by HCE status.
func (e *CensusEvaluation) Partition() (hces, nhces []models.Participant) {
	for _, p := range e.Includable {
		if p.IsHCE {
			hces = append(hces, p)
		} else {
			nhces = append(nhces, p)
		}
	}
	return hces, nhces
}

// DetermineInclusion applies the eligibility rules to one participant's
// dates. Missing DOB or hire date excludes with a tagged reason rather than
// an error, so one malformed row never aborts a census run.
func (s *EligibilityService) DetermineInclusion(dob, hireDate, terminationDate *time.Time, planYearStart, planYearEnd time.Time) models.InclusionResult {
	if dob == nil {
		return models.InclusionResult{Reason: models.ExclusionMissingDOB}
	}
	if hireDate == nil {
		return models.InclusionResult{Reason: models.ExclusionMissingHireDate}
	}

	age21Date := util.AddYears(*dob, 21)
	yos1Date := util.AddYears(*hireDate, 1)

	eligibilityDate := age21Date
	if yos1Date.After(eligibilityDate) {
		eligibilityDate = yos1Date
	}
	entryDate := util.NextEntryDate(eligibilityDate)

	result := models.InclusionResult{
		EligibilityDate: &eligibilityDate,
		EntryDate:       &entryDate,
	}

	if entryDate.After(planYearEnd) {
		result.Reason = models.ExclusionNotEligibleDuringYear
		return result
	}
	if terminationDate != nil && terminationDate.Before(entryDate) {
		result.Reason = models.ExclusionTerminatedBeforeEntry
		return result
	}

	result.Includable = true
	result.Reason = models.ExclusionNone
	return result
}

// EvaluateCensus runs the eligibility determination over a census and
// returns a fresh evaluation; the input slice is never mutated. The same
// rules apply to HCEs and NHCEs, and contribution amounts (including exactly
// zero) never affect inclusion.
func (s *EligibilityService) EvaluateCensus(participants []models.Participant, planYear int) *CensusEvaluation {
	start, end := util.PlanYearBounds(planYear)

	eval := &CensusEvaluation{
		PlanYear:      planYear,
		PlanYearStart: start,
		PlanYearEnd:   end,
		Participants:  make([]models.Participant, 0, len(participants)),
	}

	for _, p := range participants {
		res := s.DetermineInclusion(p.DOB, p.HireDate, p.TerminationDate, start, end)
		p.EligibilityDate = res.EligibilityDate
		p.EntryDate = res.EntryDate
		p.ACPIncludable = res.Includable
		p.ExclusionReason = res.Reason

		eval.Participants = append(eval.Participants, p)
		if res.Includable {
			eval.Includable = append(eval.Includable, p)
		} else {
			eval.Exclusions.Add(res.Reason)
		}
	}

	// Fixed ordering keeps every downstream seeded selection reproducible
	// regardless of census row order.
	sort.Slice(eval.Includable, func(i, j int) bool {
		return eval.Includable[i].EmployeeID < eval.Includable[j].EmployeeID
	})

	return eval
}
