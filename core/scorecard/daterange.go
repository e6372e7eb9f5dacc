package scorecard

import (
	"time"

	"github.com/ekta-foundation/casebook/core"
)

// RangeQuery selects the scorecards of an enrollment between two (month, year) bounds.
// A zero year defaults to the current year.
type RangeQuery struct {
	EnrollmentID string `json:"enrollment_id" param:"id" validate:"required"`
	StartMonth   string `json:"start_month" query:"start_month" validate:"required,month"`
	EndMonth     string `json:"end_month" query:"end_month" validate:"required,month"`
	StartYear    int    `json:"start_year" query:"start_year" validate:"omitempty,min=1900,max=9999"`
	EndYear      int    `json:"end_year" query:"end_year" validate:"omitempty,min=1900,max=9999"`
}

func (q *RangeQuery) clean() {
	q.EnrollmentID = core.CleanString(q.EnrollmentID)
	q.StartMonth = core.CleanString(q.StartMonth)
	q.EndMonth = core.CleanString(q.EndMonth)
}

// DateRange returns the range described by q, defaulting missing years to the year of now.
func (q RangeQuery) DateRange(now time.Time) DateRange {
	r := DateRange{
		StartMonth: core.Month(q.StartMonth),
		EndMonth:   core.Month(q.EndMonth),
		StartYear:  q.StartYear,
		EndYear:    q.EndYear,
	}
	if r.StartYear == 0 {
		r.StartYear = now.Year()
	}
	if r.EndYear == 0 {
		r.EndYear = now.Year()
	}
	return r
}

// DateRange is a month/year span that may cross calendar-year boundaries.
//
// A (year, month) pair is inside the range when one of the following holds:
//	(a) year == StartYear and month is in StartYearMonths()
//	(b) year == EndYear and month is in EndYearMonths()
//	(c) StartYear < year < EndYear
type DateRange struct {
	StartMonth core.Month `json:"start_month"`
	EndMonth   core.Month `json:"end_month"`
	StartYear  int        `json:"start_year"`
	EndYear    int        `json:"end_year"`
}

func (r DateRange) sameYear() bool { return r.StartYear == r.EndYear }

// StartYearMonths lists the months matched in StartYear.
func (r DateRange) StartYearMonths() []core.Month {
	end := core.December
	if r.sameYear() {
		end = r.EndMonth
	}
	return core.MonthsBetween(r.StartMonth, end)
}

// EndYearMonths lists the months matched in EndYear.
func (r DateRange) EndYearMonths() []core.Month {
	start := core.January
	if r.sameYear() {
		start = r.StartMonth
	}
	return core.MonthsBetween(start, r.EndMonth)
}

// Contains reports whether (year, month) falls inside the range.
func (r DateRange) Contains(year int, month core.Month) bool {
	if year == r.StartYear && monthIn(month, r.StartYearMonths()) {
		return true
	}
	if year == r.EndYear && monthIn(month, r.EndYearMonths()) {
		return true
	}
	return r.StartYear < year && year < r.EndYear
}

func monthIn(m core.Month, months []core.Month) bool {
	for _, mm := range months {
		if mm == m {
			return true
		}
	}
	return false
}
