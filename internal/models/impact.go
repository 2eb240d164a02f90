package models

// ConstraintStatus describes how the annual-additions ceiling affected one
// participant's simulated mega-backdoor contribution.
type ConstraintStatus string

const (
	ConstraintUnconstrained ConstraintStatus = "UNCONSTRAINED"
	ConstraintAtLimit       ConstraintStatus = "AT_LIMIT"
	ConstraintReduced       ConstraintStatus = "REDUCED"
	ConstraintNotSelected   ConstraintStatus = "NOT_SELECTED"
)

// EmployeeImpactDetail is one participant's outcome inside a single scenario.
// It is always a fresh recomputation for a (seed, adoption, contribution)
// triple, never persisted state. IndividualACP is percentage points.
type EmployeeImpactDetail struct {
	EmployeeID       string           `json:"employee_id"`
	IsHCE            bool             `json:"is_hce"`
	Compensation     float64          `json:"compensation"`
	MegaAmount       float64          `json:"mega_amount"`
	IndividualACP    float64          `json:"individual_acp"`
	ConstraintStatus ConstraintStatus `json:"constraint_status"`
	AvailableRoom    float64          `json:"available_room"`
}

// HCEImpactSummary aggregates the HCE side of an impact view.
type HCEImpactSummary struct {
	Count            int     `json:"count"`
	AtLimitCount     int     `json:"at_limit_count"`
	ReducedCount     int     `json:"reduced_count"`
	AvgAvailableRoom float64 `json:"avg_available_room"`
	TotalMegaAmount  float64 `json:"total_mega_amount"`
	AvgACP           float64 `json:"avg_acp"`
}

// NHCEImpactSummary aggregates the NHCE side of an impact view.
type NHCEImpactSummary struct {
	Count         int     `json:"count"`
	AvgACP        float64 `json:"avg_acp"`
	TotalMatch    float64 `json:"total_match"`
	TotalAfterTax float64 `json:"total_after_tax"`
}

// EmployeeImpactView is the full drill-down for one grid cell: every
// includable participant's detail plus group summaries and the cell's limit
// result. A missing HCE or NHCE group yields the same ERROR-shaped
// LimitResult the grid records, with the corresponding summary nil.
type EmployeeImpactView struct {
	AdoptionRate     float64                `json:"adoption_rate"`
	ContributionRate float64                `json:"contribution_rate"`
	SeedUsed         int64                  `json:"seed_used"`
	LimitResult
	Employees   []EmployeeImpactDetail `json:"employees"`
	HCESummary  *HCEImpactSummary      `json:"hce_summary,omitempty"`
	NHCESummary *NHCEImpactSummary     `json:"nhce_summary,omitempty"`
}
