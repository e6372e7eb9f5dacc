package report

// Rating is the qualitative label of an averaged set of scores.
type Rating string

const (
	RatingExcellent        Rating = "Excellent"
	RatingGood             Rating = "Good"
	RatingSatisfactory     Rating = "Satisfactory"
	RatingNeedsImprovement Rating = "Needs Improvement"
)

// RatingFor rates the average totalScore / scored. No scored subtasks rates as RatingNeedsImprovement.
func RatingFor(totalScore, scored int) Rating {
	if scored <= 0 {
		return RatingNeedsImprovement
	}
	avg := float64(totalScore) / float64(scored)
	switch {
	case avg >= 4:
		return RatingExcellent
	case avg >= 3:
		return RatingGood
	case avg >= 2:
		return RatingSatisfactory
	default:
		return RatingNeedsImprovement
	}
}

// Band is the color band of a single score.
type Band string

const (
	BandSuccess Band = "success"
	BandWarning Band = "warning"
	BandDanger  Band = "danger"
)

func BandFor(score int) Band {
	switch {
	case score >= 4:
		return BandSuccess
	case score == 3:
		return BandWarning
	default:
		return BandDanger
	}
}
