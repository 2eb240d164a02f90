package services

import (
	"github.com/crzyc98/mega-backdoor-acp-sub002/internal/models"
)

// ACPService computes the Actual Contribution Percentage test under IRC
// §401(m): group averages, the two statutory limit formulas, and the
// PASS/RISK/FAIL/ERROR classification.
type ACPService struct {
	riskThreshold float64
}

// NewACPService creates a new ACPService. riskThreshold is the margin band,
// in percentage points, below which a passing result is flagged RISK.
func NewACPService(riskThreshold float64) *ACPService {
	return &ACPService{riskThreshold: riskThreshold}
}

// RiskThreshold returns the service's default RISK band in percentage points.
func (s *ACPService) RiskThreshold() float64 {
	return s.riskThreshold
}

// ApplyACPTest runs the ACP test over an includable population using the
// service's default risk threshold.
func (s *ACPService) ApplyACPTest(includable []models.Participant) models.LimitResult {
	return s.ApplyACPTestWithThreshold(includable, s.riskThreshold)
}

// ApplyACPTestWithThreshold runs the ACP test with an explicit risk
// threshold. An empty HCE or NHCE partition yields Status ERROR with every
// numeric field nil; no error is returned. All arithmetic stays in full
// float64 precision; display rounding belongs to presentation boundaries.
func (s *ACPService) ApplyACPTestWithThreshold(includable []models.Participant, riskThreshold float64) models.LimitResult {
	var hcePcts, nhcePcts []float64
	for _, p := range includable {
		pct := contributionPct(p)
		if p.IsHCE {
			hcePcts = append(hcePcts, pct)
		} else {
			nhcePcts = append(nhcePcts, pct)
		}
	}

	if len(hcePcts) == 0 || len(nhcePcts) == 0 {
		return models.LimitResult{Status: models.StatusError}
	}

	nhceACP := mean(nhcePcts)
	hceACP := mean(hcePcts)

	limit125 := nhceACP * 1.25
	limit2PctUncapped := nhceACP + 2.0
	cap2x := nhceACP * 2.0
	limit2PctCapped := limit2PctUncapped
	if cap2x < limit2PctCapped {
		limit2PctCapped = cap2x
	}

	effectiveLimit := limit125
	binding := models.Binding125
	if limit2PctCapped > limit125 {
		effectiveLimit = limit2PctCapped
		binding = models.Binding2Pct2x
	}

	margin := effectiveLimit - hceACP

	status := models.StatusPass
	switch {
	case margin < 0:
		status = models.StatusFail
	case margin < riskThreshold:
		status = models.StatusRisk
	}

	return models.LimitResult{
		NHCEACP:           &nhceACP,
		HCEACP:            &hceACP,
		Limit125:          &limit125,
		Limit2PctUncapped: &limit2PctUncapped,
		Cap2x:             &cap2x,
		Limit2PctCapped:   &limit2PctCapped,
		EffectiveLimit:    &effectiveLimit,
		BindingRule:       &binding,
		Margin:            &margin,
		Status:            status,
	}
}

// contributionPct is the participant's ACP contribution percentage in
// percentage points: (match + after-tax) / compensation x 100. Zero
// compensation counts as 0% rather than dividing by zero.
func contributionPct(p models.Participant) float64 {
	if p.Compensation <= 0 {
		return 0
	}
	return (p.Match + p.AfterTax) / p.Compensation * 100
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
