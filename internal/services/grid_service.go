package services

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/crzyc98/mega-backdoor-acp-sub002/internal/models"
)

// ErrInvalidParams marks a malformed grid configuration. It is the only
// error class surfaced to the caller before computation; everything inside
// the grid recovers locally into ERROR-status cells.
var ErrInvalidParams = errors.New("invalid grid parameters")

// GridParams configures one scenario-grid run.
type GridParams struct {
	AdoptionRates     []float64
	ContributionRates []float64
	BaseSeed          int64
	RiskThreshold     float64
}

// Validate checks the rate lists and seed up front. Rates must be decimal
// fractions in [0, 1] with no duplicates.
func (p GridParams) Validate() error {
	if p.BaseSeed < 0 {
		return fmt.Errorf("%w: seed must be non-negative, got %d", ErrInvalidParams, p.BaseSeed)
	}
	if p.RiskThreshold < 0 {
		return fmt.Errorf("%w: risk threshold must be non-negative, got %g", ErrInvalidParams, p.RiskThreshold)
	}
	if err := validateRates("adoption_rates", p.AdoptionRates); err != nil {
		return err
	}
	return validateRates("contribution_rates", p.ContributionRates)
}

func validateRates(name string, rates []float64) error {
	if len(rates) == 0 {
		return fmt.Errorf("%w: %s must not be empty", ErrInvalidParams, name)
	}
	seen := make(map[float64]bool, len(rates))
	for _, r := range rates {
		if math.IsNaN(r) || r < 0 || r > 1 {
			return fmt.Errorf("%w: %s entry %g is outside [0, 1]", ErrInvalidParams, name, r)
		}
		if seen[r] {
			return fmt.Errorf("%w: %s contains duplicate %g", ErrInvalidParams, name, r)
		}
		seen[r] = true
	}
	return nil
}

// GridService runs the adoption x contribution scenario grid over an
// evaluated census. Cells are independent and side-effect-free, so they run
// in parallel; each owns an RNG seeded from its own coordinates.
type GridService struct {
	acpSvc               *ACPService
	annualAdditionsLimit float64
}

// NewGridService creates a new GridService. annualAdditionsLimit is the
// aggregate IRS contribution ceiling used for per-adopter headroom.
func NewGridService(acpSvc *ACPService, annualAdditionsLimit float64) *GridService {
	return &GridService{
		acpSvc:               acpSvc,
		annualAdditionsLimit: annualAdditionsLimit,
	}
}

// GridResult pairs the scenario list with its summary. Scenarios are ordered
// by ascending adoption rate, then ascending contribution rate.
type GridResult struct {
	Scenarios []models.ScenarioResult
	Summary   models.GridSummary
}

// RunGrid simulates every (adoptionRate, contributionRate) cell over the
// includable population. A cell with an empty HCE or NHCE partition records
// an ERROR result and never aborts the grid.
func (s *GridService) RunGrid(eval *CensusEvaluation, params GridParams) (*GridResult, error) {
	defer TrackTime("RunGrid", time.Now())

	if err := params.Validate(); err != nil {
		return nil, err
	}

	adoptionRates := sortedCopy(params.AdoptionRates)
	contributionRates := sortedCopy(params.ContributionRates)

	hces, nhces := eval.Partition()
	excludedCount := eval.ExcludedCount()

	type cell struct {
		adoptionRate     float64
		contributionRate float64
	}
	cells := make([]cell, 0, len(adoptionRates)*len(contributionRates))
	for _, a := range adoptionRates {
		for _, c := range contributionRates {
			cells = append(cells, cell{adoptionRate: a, contributionRate: c})
		}
	}

	// Results land in a pre-sized slice by index, so the emitted order is
	// the fixed iteration order no matter how cells are scheduled.
	results := make([]models.ScenarioResult, len(cells))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, c := range cells {
		g.Go(func() error {
			results[i] = s.runCell(hces, nhces, c.adoptionRate, c.contributionRate, params, excludedCount)
			return nil
		})
	}
	// Cells recover locally into ERROR results; the group never carries an error.
	_ = g.Wait()

	return &GridResult{
		Scenarios: results,
		Summary:   summarize(results, contributionRates, eval.Exclusions),
	}, nil
}

func (s *GridService) runCell(hces, nhces []models.Participant, adoptionRate, contributionRate float64, params GridParams, excludedCount int) models.ScenarioResult {
	seed := CellSeed(params.BaseSeed, adoptionRate, contributionRate)
	outcomes := SimulateAdoption(hces, adoptionRate, contributionRate, seed, s.annualAdditionsLimit)
	limit := s.acpSvc.ApplyACPTestWithThreshold(recombine(outcomes, nhces), params.RiskThreshold)

	return models.ScenarioResult{
		AdoptionRate:     adoptionRate,
		ContributionRate: contributionRate,
		LimitResult:      limit,
		SeedUsed:         seed,
		ExcludedCount:    excludedCount,
	}
}

// summarize tallies statuses and derives the run-level aggregates. results
// must be in ascending adoption, then ascending contribution order; the
// first-failure search depends on it.
func summarize(results []models.ScenarioResult, contributionRates []float64, exclusions models.ExclusionBreakdown) models.GridSummary {
	summary := models.GridSummary{
		TotalScenarios: len(results),
		Exclusions:     exclusions,
	}

	failsByContribution := make(map[float64]bool, len(contributionRates))
	safeByContribution := make(map[float64]bool, len(contributionRates))

	for _, r := range results {
		switch r.Status {
		case models.StatusPass:
			summary.PassCount++
		case models.StatusRisk:
			summary.RiskCount++
		case models.StatusFail:
			summary.FailCount++
		case models.StatusError:
			summary.ErrorCount++
		}

		if r.Status == models.StatusFail {
			failsByContribution[r.ContributionRate] = true
			if summary.FirstFailure == nil {
				summary.FirstFailure = &models.GridCoordinate{
					AdoptionRate:     r.AdoptionRate,
					ContributionRate: r.ContributionRate,
				}
			}
		}
		if r.Status == models.StatusPass || r.Status == models.StatusRisk {
			safeByContribution[r.ContributionRate] = true
		}

		if r.Margin != nil && (summary.WorstMargin == nil || *r.Margin < *summary.WorstMargin) {
			m := *r.Margin
			summary.WorstMargin = &m
		}
	}

	// A contribution rate is safe when its column holds no FAIL at any
	// adoption rate and at least one cell actually computed.
	for _, c := range contributionRates {
		if failsByContribution[c] || !safeByContribution[c] {
			continue
		}
		if summary.MaxSafeContributionRate == nil || c > *summary.MaxSafeContributionRate {
			rate := c
			summary.MaxSafeContributionRate = &rate
		}
	}

	return summary
}

func sortedCopy(rates []float64) []float64 {
	out := make([]float64, len(rates))
	copy(out, rates)
	sort.Float64s(out)
	return out
}
