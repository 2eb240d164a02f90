package models

import (
	"time"

	"github.com/google/uuid"
)

// UploadCensusResponse is returned after a census CSV is ingested.
// Exclusions previews the eligibility pass for the requested plan year so the
// user sees data problems (missing DOB/hire date) before running a grid.
type UploadCensusResponse struct {
	Census     Census             `json:"census"`
	PlanYear   int                `json:"plan_year"`
	Includable int                `json:"includable"`
	Exclusions ExclusionBreakdown `json:"exclusions"`
	Warnings   []Warning          `json:"warnings,omitempty"`
}

// CensusDetailResponse describes a stored census and its eligibility
// partition for a given plan year.
type CensusDetailResponse struct {
	Census     Census             `json:"census"`
	PlanYear   int                `json:"plan_year"`
	Includable int                `json:"includable"`
	HCECount   int                `json:"hce_count"`
	NHCECount  int                `json:"nhce_count"`
	Exclusions ExclusionBreakdown `json:"exclusions"`
}

// CreateRunRequest configures one scenario-grid run. Zero values fall back
// to the server's configured defaults. Rates are decimal fractions.
type CreateRunRequest struct {
	PlanYear          int       `json:"plan_year"`
	AdoptionRates     []float64 `json:"adoption_rates"`
	ContributionRates []float64 `json:"contribution_rates"`
	Seed              *int64    `json:"seed,omitempty"`
	RiskThreshold     *float64  `json:"risk_threshold,omitempty"`
}

// ImpactRequest selects the grid cell to drill into. Pointer fields so the
// validator distinguishes an absent parameter from a legal rate of 0; the
// zero-adoption column is a real grid coordinate.
type ImpactRequest struct {
	AdoptionRate     *float64 `form:"adoption_rate" binding:"required"`
	ContributionRate *float64 `form:"contribution_rate" binding:"required"`
}

// RunListItem is run metadata without the scenario payload.
type RunListItem struct {
	ID        uuid.UUID `json:"id"`
	CensusID  uuid.UUID `json:"census_id"`
	PlanYear  int       `json:"plan_year"`
	CreatedAt time.Time `json:"created_at"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
