package models

// ScenarioStatus classifies one grid cell against the ACP limit.
type ScenarioStatus string

const (
	StatusPass  ScenarioStatus = "PASS"
	StatusRisk  ScenarioStatus = "RISK"
	StatusFail  ScenarioStatus = "FAIL"
	StatusError ScenarioStatus = "ERROR"
)

// BindingRule names which statutory formula produced the controlling limit.
type BindingRule string

const (
	Binding125    BindingRule = "1.25x"
	Binding2Pct2x BindingRule = "2pct/2x"
)

// LimitResult holds the ACP test outcome for one population. Every numeric
// field is nil exactly when Status is ERROR (an empty HCE or NHCE group).
// ACP values and limits are percentage points, not fractions.
type LimitResult struct {
	NHCEACP           *float64       `json:"nhce_acp"`
	HCEACP            *float64       `json:"hce_acp"`
	Limit125          *float64       `json:"limit_125"`
	Limit2PctUncapped *float64       `json:"limit_2pct_uncapped"`
	Cap2x             *float64       `json:"cap_2x"`
	Limit2PctCapped   *float64       `json:"limit_2pct_capped"`
	EffectiveLimit    *float64       `json:"effective_limit"`
	BindingRule       *BindingRule   `json:"binding_rule"`
	Margin            *float64       `json:"margin"`
	Status            ScenarioStatus `json:"status"`
}

// ScenarioResult is one cell of the adoption x contribution grid.
// AdoptionRate and ContributionRate are decimal fractions (0.06 = 6%).
type ScenarioResult struct {
	AdoptionRate     float64 `json:"adoption_rate"`
	ContributionRate float64 `json:"contribution_rate"`
	LimitResult
	SeedUsed      int64 `json:"seed_used"`
	ExcludedCount int   `json:"excluded_count"`
}

// GridCoordinate identifies a cell by its rate pair.
type GridCoordinate struct {
	AdoptionRate     float64 `json:"adoption_rate"`
	ContributionRate float64 `json:"contribution_rate"`
}

// GridSummary aggregates every ScenarioResult of one run. FirstFailure is the
// first FAIL cell in ascending adoption, then ascending contribution order.
// MaxSafeContributionRate is the largest contribution rate whose column holds
// no FAIL at any adoption rate; nil when no such column exists.
type GridSummary struct {
	TotalScenarios          int                `json:"total_scenarios"`
	PassCount               int                `json:"pass_count"`
	RiskCount               int                `json:"risk_count"`
	FailCount               int                `json:"fail_count"`
	ErrorCount              int                `json:"error_count"`
	FirstFailure            *GridCoordinate    `json:"first_failure,omitempty"`
	WorstMargin             *float64           `json:"worst_margin,omitempty"`
	MaxSafeContributionRate *float64           `json:"max_safe_contribution_rate,omitempty"`
	Exclusions              ExclusionBreakdown `json:"exclusions"`
}
