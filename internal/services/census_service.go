package services

import (
	"context"
	"fmt"

	"github.com/crzyc98/mega-backdoor-acp-sub002/internal/models"
)

// CensusService wraps the eligibility pass with import-time diagnostics:
// data problems that will shape the test population are surfaced as warnings
// at upload, before any grid is run.
type CensusService struct {
	eligibilitySvc *EligibilityService
}

// NewCensusService creates a new CensusService
func NewCensusService(eligibilitySvc *EligibilityService) *CensusService {
	return &CensusService{eligibilitySvc: eligibilitySvc}
}

// Analyze evaluates a census for a plan year and reports, via the warning
// collector in ctx, every condition the user should see before running
// scenarios. Missing data never aborts the analysis; it is tagged, counted,
// and warned about.
func (s *CensusService) Analyze(ctx context.Context, participants []models.Participant, planYear int) *CensusEvaluation {
	for _, p := range participants {
		if p.DOB == nil {
			AddWarning(ctx, models.Warning{
				Code:    models.WarnMissingDOB,
				Message: fmt.Sprintf("participant %s has no date of birth and will be excluded", p.EmployeeID),
			})
		}
		if p.HireDate == nil {
			AddWarning(ctx, models.Warning{
				Code:    models.WarnMissingHireDate,
				Message: fmt.Sprintf("participant %s has no hire date and will be excluded", p.EmployeeID),
			})
		}
		if p.Compensation == 0 {
			AddWarning(ctx, models.Warning{
				Code:    models.WarnZeroCompensation,
				Message: fmt.Sprintf("participant %s has zero compensation; contribution percentage treated as 0%%", p.EmployeeID),
			})
		}
	}

	eval := s.eligibilitySvc.EvaluateCensus(participants, planYear)

	hces, nhces := eval.Partition()
	if len(hces) == 0 {
		AddWarning(ctx, models.Warning{
			Code:    models.WarnNoHCEs,
			Message: fmt.Sprintf("no includable HCEs for plan year %d; every scenario will be ERROR", planYear),
		})
	}
	if len(nhces) == 0 {
		AddWarning(ctx, models.Warning{
			Code:    models.WarnNoNHCEs,
			Message: fmt.Sprintf("no includable NHCEs for plan year %d; every scenario will be ERROR", planYear),
		})
	}

	return eval
}
