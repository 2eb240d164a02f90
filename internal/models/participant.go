package models

import "time"

// ExclusionReason explains why a participant is excluded from the ACP test
// population. ExclusionNone marks an includable participant.
type ExclusionReason string

const (
	ExclusionNone                  ExclusionReason = "NONE"
	ExclusionTerminatedBeforeEntry ExclusionReason = "TERMINATED_BEFORE_ENTRY"
	ExclusionNotEligibleDuringYear ExclusionReason = "NOT_ELIGIBLE_DURING_YEAR"
	ExclusionMissingDOB            ExclusionReason = "MISSING_DOB"
	ExclusionMissingHireDate       ExclusionReason = "MISSING_HIRE_DATE"
)

// Participant is one census row plus the eligibility fields derived for a
// plan-year run. A participant is built once per run and never mutated
// afterwards; scenario simulation works on value copies.
type Participant struct {
	EmployeeID      string     `json:"employee_id"`
	DOB             *time.Time `json:"dob,omitempty"`
	HireDate        *time.Time `json:"hire_date,omitempty"`
	TerminationDate *time.Time `json:"termination_date,omitempty"`
	Compensation    float64    `json:"compensation"`
	PreTax          float64    `json:"pre_tax"`
	AfterTax        float64    `json:"after_tax"`
	Roth            float64    `json:"roth"`
	Match           float64    `json:"match"`
	NonElective     float64    `json:"non_elective"`
	IsHCE           bool       `json:"is_hce"`

	// Derived by the eligibility pass.
	EligibilityDate *time.Time      `json:"eligibility_date,omitempty"`
	EntryDate       *time.Time      `json:"entry_date,omitempty"`
	ACPIncludable   bool            `json:"acp_includable"`
	ExclusionReason ExclusionReason `json:"exclusion_reason"`
}

// TotalAnnualAdditions sums every contribution source that counts against the
// aggregate annual-additions ceiling.
func (p *Participant) TotalAnnualAdditions() float64 {
	return p.PreTax + p.AfterTax + p.Roth + p.Match + p.NonElective
}

// InclusionResult is the outcome of the eligibility determination for one
// participant. Missing data is reported through the reason, never by error.
type InclusionResult struct {
	EligibilityDate *time.Time      `json:"eligibility_date,omitempty"`
	EntryDate       *time.Time      `json:"entry_date,omitempty"`
	Includable      bool            `json:"includable"`
	Reason          ExclusionReason `json:"reason"`
}

// ExclusionBreakdown counts excluded participants per reason.
type ExclusionBreakdown struct {
	Total                 int `json:"total"`
	TerminatedBeforeEntry int `json:"terminated_before_entry"`
	NotEligibleDuringYear int `json:"not_eligible_during_year"`
	MissingDOB            int `json:"missing_dob"`
	MissingHireDate       int `json:"missing_hire_date"`
}

// Add counts one exclusion under its reason. ExclusionNone is ignored.
func (b *ExclusionBreakdown) Add(reason ExclusionReason) {
	switch reason {
	case ExclusionTerminatedBeforeEntry:
		b.TerminatedBeforeEntry++
	case ExclusionNotEligibleDuringYear:
		b.NotEligibleDuringYear++
	case ExclusionMissingDOB:
		b.MissingDOB++
	case ExclusionMissingHireDate:
		b.MissingHireDate++
	default:
		return
	}
	b.Total++
}
