package util

import "time"

// PlanYearBounds returns the first and last day of a calendar plan year.
// Both bounds are in the same year: Jan 1 through Dec 31 of planYear. An
// earlier implementation derived the end bound from planYear-1, silently
// shrinking every test population, so the bounds live in this one function.
func PlanYearBounds(planYear int) (start, end time.Time) {
	start = time.Date(planYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	end = time.Date(planYear, time.December, 31, 0, 0, 0, 0, time.UTC)
	return start, end
}

// AddYears adds whole years to a date. A Feb 29 anniversary lands on Feb 28
// when the target year is not a leap year, rather than rolling to Mar 1 the
// way time.AddDate normalizes it.
func AddYears(t time.Time, years int) time.Time {
	y, m, d := t.Date()
	if m == time.February && d == 29 && !isLeapYear(y+years) {
		d = 28
	}
	return time.Date(y+years, m, d, 0, 0, 0, 0, t.Location())
}

// NextEntryDate returns the earliest semi-annual plan entry date (Jan 1 or
// Jul 1) on or after the eligibility date. Same-day entry applies when the
// eligibility date is itself an entry date; a Dec 31 eligibility date rolls
// to Jan 1 of the following year.
func NextEntryDate(eligibility time.Time) time.Time {
	y := eligibility.Year()
	jan1 := time.Date(y, time.January, 1, 0, 0, 0, 0, eligibility.Location())
	jul1 := time.Date(y, time.July, 1, 0, 0, 0, 0, eligibility.Location())
	if !eligibility.After(jan1) {
		return jan1
	}
	if !eligibility.After(jul1) {
		return jul1
	}
	return time.Date(y+1, time.January, 1, 0, 0, 0, 0, eligibility.Location())
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
