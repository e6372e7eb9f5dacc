package scorecard

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ekta-foundation/casebook/core"
)

func detailed(id, program, skillArea, subTask string, year int, month core.Month, week int, createdAt time.Time) Detailed {
	d := Detailed{ScoreCard: ScoreCard{ID: id, Year: year, Month: month, Week: week, CreatedAt: createdAt}}
	if program != "" {
		d.Program = &Ref{ID: "p-" + program, Name: program}
	}
	if skillArea != "" {
		d.SkillArea = &Ref{ID: "sa-" + skillArea, Name: skillArea}
	}
	if subTask != "" {
		d.SubTask = &Ref{ID: "st-" + subTask, Name: subTask}
	}
	return d
}

func ids(cards []Detailed) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.ID)
	}
	return out
}

func TestSort(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cards := []Detailed{
		detailed("a", "Communication", "Expressive", "Requests", 2024, core.March, 2, t0),
		detailed("b", "Communication", "Expressive", "Requests", 2024, core.November, 1, t0),
		detailed("c", "Communication", "Expressive", "Requests", 2025, core.January, 1, t0),
		detailed("d", "Communication", "Expressive", "Names", 2023, core.May, 1, t0),
		detailed("e", "Communication", "Expressive", "Requests", 2024, core.March, 4, t0),
		detailed("f", "Communication", "Receptive", "Follows", 2024, core.March, 1, t0),
		detailed("g", "Daily Living", "Self Care", "Washes", 2024, core.March, 1, t0),
		detailed("h", "", "", "", 2024, core.March, 1, t0), // unresolved joins
		detailed("i", "Communication", "Expressive", "Requests", 2024, core.March, 2, t0.Add(time.Hour)),
		detailed("j", "Communication", "Expressive", "", 2024, core.March, 2, t0),
	}
	want := []string{"h", "j", "d", "c", "b", "e", "a", "i", "f", "g"}

	Sort(cards)
	assert.Equal(t, want, ids(cards))
}

func TestSort_MonthOrdinal(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	// lexical order would put April before February
	cards := []Detailed{
		detailed("apr", "P", "SA", "ST", 2024, core.April, 1, t0),
		detailed("feb", "P", "SA", "ST", 2024, core.February, 1, t0),
		detailed("dec", "P", "SA", "ST", 2024, core.December, 1, t0),
		detailed("sep", "P", "SA", "ST", 2024, core.September, 1, t0),
	}
	Sort(cards)
	assert.Equal(t, []string{"dec", "sep", "apr", "feb"}, ids(cards))
}

func TestSort_Total(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	base := []Detailed{
		detailed("1", "P", "SA", "ST", 2024, core.June, 3, t0),
		detailed("2", "P", "SA", "ST", 2024, core.June, 3, t0), // exact duplicate but for id
		detailed("3", "P", "SA", "ST", 2024, core.June, 3, t0.Add(-time.Minute)),
		detailed("4", "P", "SA", "", 2024, core.June, 3, t0),
		detailed("5", "", "SA", "ST", 2022, core.July, 5, t0),
		detailed("6", "P", "SB", "ST", 2024, core.June, 3, t0),
		detailed("7", "Q", "SA", "ST", 2030, core.January, 1, t0),
	}
	want := append([]Detailed(nil), base...)
	Sort(want)

	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		shuffled := append([]Detailed(nil), base...)
		rnd.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		Sort(shuffled)
		if !assert.Equal(t, ids(want), ids(shuffled)) {
			return
		}
	}
}

func TestSortChronologically(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cards := []ScoreCard{
		{ID: "feb25", Year: 2025, Month: core.February, Week: 1, CreatedAt: t0},
		{ID: "dec24-2", Year: 2024, Month: core.December, Week: 2, CreatedAt: t0},
		{ID: "nov24", Year: 2024, Month: core.November, Week: 4, CreatedAt: t0},
		{ID: "dec24-1", Year: 2024, Month: core.December, Week: 1, CreatedAt: t0},
		{ID: "jan25", Year: 2025, Month: core.January, Week: 3, CreatedAt: t0},
	}
	SortChronologically(cards)

	got := make([]string, 0, len(cards))
	for _, c := range cards {
		got = append(got, c.ID)
	}
	assert.Equal(t, []string{"nov24", "dec24-1", "dec24-2", "jan25", "feb25"}, got)
}
