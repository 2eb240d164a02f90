package models

import (
	"time"

	"github.com/google/uuid"
)

// Census is an uploaded participant roster, scoped to a workspace.
type Census struct {
	ID               uuid.UUID `json:"id"`
	WorkspaceID      string    `json:"workspace_id"`
	Name             string    `json:"name"`
	ParticipantCount int       `json:"participant_count"`
	CreatedAt        time.Time `json:"created_at"`
}

// Run is one executed scenario grid over a census.
type Run struct {
	ID                uuid.UUID        `json:"id"`
	CensusID          uuid.UUID        `json:"census_id"`
	WorkspaceID       string           `json:"workspace_id"`
	PlanYear          int              `json:"plan_year"`
	AdoptionRates     []float64        `json:"adoption_rates"`
	ContributionRates []float64        `json:"contribution_rates"`
	BaseSeed          int64            `json:"base_seed"`
	RiskThreshold     float64          `json:"risk_threshold"`
	Scenarios         []ScenarioResult `json:"scenarios"`
	Summary           GridSummary      `json:"summary"`
	CreatedAt         time.Time        `json:"created_at"`
}

// HasCell reports whether the rate pair is a coordinate of this run's grid.
func (r *Run) HasCell(adoptionRate, contributionRate float64) bool {
	foundA := false
	for _, a := range r.AdoptionRates {
		if a == adoptionRate {
			foundA = true
			break
		}
	}
	if !foundA {
		return false
	}
	for _, c := range r.ContributionRates {
		if c == contributionRate {
			return true
		}
	}
	return false
}
