package services

import (
	"sort"

	"github.com/crzyc98/mega-backdoor-acp-sub002/internal/models"
)

// ImpactService recomputes the full employee roster behind one grid cell.
// It shares the seed derivation and adoption simulation with GridService, so
// a drill-down always reproduces the adopters, amounts, and constraint
// statuses that produced the cell's aggregate numbers.
type ImpactService struct {
	acpSvc               *ACPService
	annualAdditionsLimit float64
}

// NewImpactService creates a new ImpactService
func NewImpactService(acpSvc *ACPService, annualAdditionsLimit float64) *ImpactService {
	return &ImpactService{
		acpSvc:               acpSvc,
		annualAdditionsLimit: annualAdditionsLimit,
	}
}

// ComputeImpact rebuilds the per-employee outcome of the cell
// (adoptionRate, contributionRate) under baseSeed. Calling it twice with the
// same inputs over the same population yields identical output. An empty HCE
// or NHCE partition produces the same ERROR-shaped limit result the grid
// records, with the corresponding summary nil.
func (s *ImpactService) ComputeImpact(eval *CensusEvaluation, adoptionRate, contributionRate float64, baseSeed int64, riskThreshold float64) models.EmployeeImpactView {
	seed := CellSeed(baseSeed, adoptionRate, contributionRate)
	hces, nhces := eval.Partition()

	outcomes := SimulateAdoption(hces, adoptionRate, contributionRate, seed, s.annualAdditionsLimit)
	limit := s.acpSvc.ApplyACPTestWithThreshold(recombine(outcomes, nhces), riskThreshold)

	view := models.EmployeeImpactView{
		AdoptionRate:     adoptionRate,
		ContributionRate: contributionRate,
		SeedUsed:         seed,
		LimitResult:      limit,
	}

	var hceSummary models.HCEImpactSummary
	for _, out := range outcomes {
		detail := models.EmployeeImpactDetail{
			EmployeeID:       out.Participant.EmployeeID,
			IsHCE:            true,
			Compensation:     out.Participant.Compensation,
			MegaAmount:       out.MegaAmount,
			IndividualACP:    individualACP(out.Participant, out.MegaAmount),
			ConstraintStatus: out.Constraint,
			AvailableRoom:    out.AvailableRoom,
		}
		view.Employees = append(view.Employees, detail)

		hceSummary.Count++
		hceSummary.AvgAvailableRoom += out.AvailableRoom
		hceSummary.TotalMegaAmount += out.MegaAmount
		hceSummary.AvgACP += detail.IndividualACP
		switch out.Constraint {
		case models.ConstraintAtLimit:
			hceSummary.AtLimitCount++
		case models.ConstraintReduced:
			hceSummary.ReducedCount++
		}
	}

	var nhceSummary models.NHCEImpactSummary
	for _, p := range nhces {
		room := s.annualAdditionsLimit - p.TotalAnnualAdditions()
		if room < 0 {
			room = 0
		}
		detail := models.EmployeeImpactDetail{
			EmployeeID:       p.EmployeeID,
			Compensation:     p.Compensation,
			IndividualACP:    individualACP(p, 0),
			ConstraintStatus: models.ConstraintNotSelected,
			AvailableRoom:    room,
		}
		view.Employees = append(view.Employees, detail)

		nhceSummary.Count++
		nhceSummary.AvgACP += detail.IndividualACP
		nhceSummary.TotalMatch += p.Match
		nhceSummary.TotalAfterTax += p.AfterTax
	}

	sort.Slice(view.Employees, func(i, j int) bool {
		return view.Employees[i].EmployeeID < view.Employees[j].EmployeeID
	})

	if hceSummary.Count > 0 {
		hceSummary.AvgAvailableRoom /= float64(hceSummary.Count)
		hceSummary.AvgACP /= float64(hceSummary.Count)
		view.HCESummary = &hceSummary
	}
	if nhceSummary.Count > 0 {
		nhceSummary.AvgACP /= float64(nhceSummary.Count)
		view.NHCESummary = &nhceSummary
	}

	return view
}

// individualACP is the participant's contribution percentage with a
// simulated mega amount folded in, in percentage points.
func individualACP(p models.Participant, megaAmount float64) float64 {
	if p.Compensation <= 0 {
		return 0
	}
	return (p.Match + p.AfterTax + megaAmount) / p.Compensation * 100
}
