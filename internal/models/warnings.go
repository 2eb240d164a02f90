package models

// WarningCode categorizes warnings by subsystem.
// W1xxx = census import, W2xxx = eligibility, W3xxx = simulation.
type WarningCode string

const (
	WarnMissingDOB       WarningCode = "W1001" // participant has no date of birth; will be excluded
	WarnMissingHireDate  WarningCode = "W1002" // participant has no hire date; will be excluded
	WarnZeroCompensation WarningCode = "W1003" // participant has zero compensation; ACP treated as 0%
	WarnNoHCEs           WarningCode = "W2001" // census has no HCEs; every scenario will be ERROR
	WarnNoNHCEs          WarningCode = "W2002" // census has no NHCEs; every scenario will be ERROR
)

// Warning represents a non-fatal issue encountered during processing.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}
