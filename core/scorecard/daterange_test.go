package scorecard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ekta-foundation/casebook/core"
)

func TestDateRange_Contains(t *testing.T) {
	tests := []struct {
		name  string
		r     DateRange
		year  int
		month core.Month
		want  bool
	}{
		// Nov 2024 -> Feb 2025
		{"cross start month", DateRange{core.November, core.February, 2024, 2025}, 2024, core.November, true},
		{"cross start year tail", DateRange{core.November, core.February, 2024, 2025}, 2024, core.December, true},
		{"cross end year head", DateRange{core.November, core.February, 2024, 2025}, 2025, core.January, true},
		{"cross end month", DateRange{core.November, core.February, 2024, 2025}, 2025, core.February, true},
		{"cross before start", DateRange{core.November, core.February, 2024, 2025}, 2024, core.March, false},
		{"cross after end", DateRange{core.November, core.February, 2024, 2025}, 2025, core.March, false},
		{"cross other year", DateRange{core.November, core.February, 2024, 2025}, 2023, core.December, false},

		// multi-year spans include every month of the years in between
		{"inner year", DateRange{core.June, core.May, 2020, 2023}, 2021, core.January, true},
		{"inner year end", DateRange{core.June, core.May, 2020, 2023}, 2022, core.December, true},
		{"multi before start", DateRange{core.June, core.May, 2020, 2023}, 2020, core.May, false},
		{"multi after end", DateRange{core.June, core.May, 2020, 2023}, 2023, core.June, false},

		// same year: ordinal, not lexical, comparison
		{"same year inside", DateRange{core.February, core.September, 2024, 2024}, 2024, core.April, true},
		{"same year before", DateRange{core.February, core.September, 2024, 2024}, 2024, core.January, false},
		{"same year after", DateRange{core.February, core.September, 2024, 2024}, 2024, core.October, false},
		{"single month", DateRange{core.June, core.June, 2023, 2023}, 2023, core.June, true},
		{"single month other", DateRange{core.June, core.June, 2023, 2023}, 2023, core.July, false},
		{"single month other year", DateRange{core.June, core.June, 2023, 2023}, 2024, core.June, false},

		// inverted bounds are not rejected: each clause still applies on its own
		{"inverted months", DateRange{core.September, core.February, 2024, 2024}, 2024, core.April, false},
		{"inverted years end clause", DateRange{core.January, core.December, 2025, 2024}, 2024, core.June, true},
		{"inverted years between", DateRange{core.January, core.December, 2025, 2023}, 2024, core.June, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.Contains(tt.year, tt.month))
		})
	}
}

func TestDateRange_Months(t *testing.T) {
	r := DateRange{StartMonth: core.November, EndMonth: core.February, StartYear: 2024, EndYear: 2025}
	assert.Equal(t, []core.Month{core.November, core.December}, r.StartYearMonths())
	assert.Equal(t, []core.Month{core.January, core.February}, r.EndYearMonths())

	r = DateRange{StartMonth: core.March, EndMonth: core.May, StartYear: 2024, EndYear: 2024}
	want := []core.Month{core.March, core.April, core.May}
	assert.Equal(t, want, r.StartYearMonths())
	assert.Equal(t, want, r.EndYearMonths())
}

func TestRangeQuery_DateRange(t *testing.T) {
	now := time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)

	q := RangeQuery{StartMonth: "January", EndMonth: "March"}
	assert.Equal(t, DateRange{core.January, core.March, 2026, 2026}, q.DateRange(now))

	q = RangeQuery{StartMonth: "November", EndMonth: "February", StartYear: 2024, EndYear: 2025}
	assert.Equal(t, DateRange{core.November, core.February, 2024, 2025}, q.DateRange(now))

	// years default independently
	q = RangeQuery{StartMonth: "November", EndMonth: "February", StartYear: 2025}
	assert.Equal(t, DateRange{core.November, core.February, 2025, 2026}, q.DateRange(now))
}

func TestFilter_Match(t *testing.T) {
	sc := ScoreCard{EnrollmentID: "e1", SkillAreaID: "sa1", Year: 2024, Month: core.December}

	assert.True(t, Filter{EnrollmentID: "e1"}.Match(sc))
	assert.False(t, Filter{EnrollmentID: "e2"}.Match(sc))
	assert.True(t, Filter{Taxonomy: &TaxonomyScope{SkillAreaIDs: []string{"sa1"}}}.Match(sc))
	assert.False(t, Filter{Taxonomy: &TaxonomyScope{SubTaskIDs: []string{""}}}.Match(sc))
	assert.False(t, Filter{Taxonomy: &TaxonomyScope{}}.Match(sc))
	assert.True(t, Filter{Range: &DateRange{core.November, core.February, 2024, 2025}}.Match(sc))
	assert.False(t, Filter{Range: &DateRange{core.January, core.February, 2025, 2025}}.Match(sc))
}
