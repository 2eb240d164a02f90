package services

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"sort"

	"github.com/crzyc98/mega-backdoor-acp-sub002/internal/models"
)

// This file is the single code path for per-cell randomness and
// mega-backdoor contribution simulation. GridService aggregates its output
// into scenario results; ImpactService exposes it per employee. Drilling
// into a grid cell must reproduce exactly the adopters, amounts, and
// constraint statuses that produced the cell's aggregate numbers, so both
// services call these functions and nothing else.

// CellSeed derives the deterministic RNG seed for one grid cell from the run
// seed and the cell's coordinates. Cells never share a generator, so any
// cell can be recomputed in isolation or in parallel. Rates are fixed at
// four decimals inside the hash; grid coordinates are configured at coarser
// precision than that.
func CellSeed(baseSeed int64, adoptionRate, contributionRate float64) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d|%.4f|%.4f", baseSeed, adoptionRate, contributionRate)
	return int64(h.Sum64() & math.MaxInt64)
}

// AdoptionOutcome is one HCE's simulated mega-backdoor contribution within a
// single cell.
type AdoptionOutcome struct {
	Participant   models.Participant
	MegaAmount    float64
	AvailableRoom float64
	Constraint    models.ConstraintStatus
}

// SimulateAdoption selects round(n x adoptionRate) adopters from the
// includable HCEs without replacement using the cell-seeded RNG, then clamps
// each adopter's desired after-tax contribution (compensation x
// contributionRate) to the room left under the annual-additions ceiling.
// Outcomes are returned in EmployeeID order. The input slice is not mutated.
func SimulateAdoption(hces []models.Participant, adoptionRate, contributionRate float64, cellSeed int64, annualAdditionsLimit float64) []AdoptionOutcome {
	ordered := make([]models.Participant, len(hces))
	copy(ordered, hces)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].EmployeeID < ordered[j].EmployeeID
	})

	adopterCount := int(math.Round(float64(len(ordered)) * adoptionRate))
	rng := rand.New(rand.NewSource(cellSeed))
	selected := make(map[int]bool, adopterCount)
	for _, idx := range rng.Perm(len(ordered))[:adopterCount] {
		selected[idx] = true
	}

	outcomes := make([]AdoptionOutcome, 0, len(ordered))
	for i, p := range ordered {
		room := annualAdditionsLimit - p.TotalAnnualAdditions()
		if room < 0 {
			room = 0
		}

		out := AdoptionOutcome{
			Participant:   p,
			AvailableRoom: room,
			Constraint:    models.ConstraintNotSelected,
		}

		if selected[i] {
			desired := p.Compensation * contributionRate
			switch {
			case desired == room:
				out.MegaAmount = desired
				out.Constraint = models.ConstraintAtLimit
			case desired > room:
				out.MegaAmount = room
				out.Constraint = models.ConstraintReduced
			default:
				out.MegaAmount = desired
				out.Constraint = models.ConstraintUnconstrained
			}
		}

		outcomes = append(outcomes, out)
	}

	return outcomes
}

// recombine builds the per-cell test population: each HCE with the simulated
// mega amount folded into after-tax, plus the unchanged NHCEs. Participants
// are value copies; the shared census is never touched.
func recombine(outcomes []AdoptionOutcome, nhces []models.Participant) []models.Participant {
	combined := make([]models.Participant, 0, len(outcomes)+len(nhces))
	for _, out := range outcomes {
		p := out.Participant
		p.AfterTax += out.MegaAmount
		combined = append(combined, p)
	}
	combined = append(combined, nhces...)
	return combined
}
