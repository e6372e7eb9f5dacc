package scorecard

import "sort"

// Sort orders cards by program name, skill area name and subtask name ascending,
// then by year, month and week descending. Missing names compare as "".
// Creation time and id break the remaining ties so any permutation of a set sorts identically.
func Sort(cards []Detailed) {
	sort.SliceStable(cards, func(i, j int) bool { return lessDetailed(cards[i], cards[j]) })
}

func lessDetailed(a, b Detailed) bool {
	if x, y := a.ProgramName(), b.ProgramName(); x != y {
		return x < y
	}
	if x, y := a.SkillAreaName(), b.SkillAreaName(); x != y {
		return x < y
	}
	if x, y := a.SubTaskName(), b.SubTaskName(); x != y {
		return x < y
	}
	if a.Year != b.Year {
		return a.Year > b.Year
	}
	if x, y := a.Month.Ordinal(), b.Month.Ordinal(); x != y {
		return x > y
	}
	if a.Week != b.Week {
		return a.Week > b.Week
	}
	return lessCreated(a.ScoreCard, b.ScoreCard)
}

// SortChronologically orders cards by year, month and week ascending.
func SortChronologically(cards []ScoreCard) {
	sort.SliceStable(cards, func(i, j int) bool {
		a, b := cards[i], cards[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if x, y := a.Month.Ordinal(), b.Month.Ordinal(); x != y {
			return x < y
		}
		if a.Week != b.Week {
			return a.Week < b.Week
		}
		return lessCreated(a, b)
	})
}

func lessCreated(a, b ScoreCard) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}
