package sqlxrepos

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/ekta-foundation/casebook/core"
	"github.com/ekta-foundation/casebook/core/scorecard"
)

var scoreCardColumns = []string{
	"id", "enrollment_id", "student_id", "skill_area_id", "sub_task_id",
	"year", "month", "week", "score", "description", "created_at", "updated_at",
}

type scoreCardRow struct {
	ID           string      `db:"id"`
	EnrollmentID string      `db:"enrollment_id"`
	StudentID    string      `db:"student_id"`
	SkillAreaID  null.String `db:"skill_area_id"`
	SubTaskID    null.String `db:"sub_task_id"`
	Year         int         `db:"year"`
	Month        string      `db:"month"`
	Week         int         `db:"week"`
	Score        null.Int    `db:"score"`
	Description  null.String `db:"description"`
	CreatedAt    time.Time   `db:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at"`
}

func (row scoreCardRow) scoreCard() scorecard.ScoreCard {
	return scorecard.ScoreCard{
		ID:           row.ID,
		EnrollmentID: row.EnrollmentID,
		StudentID:    row.StudentID,
		SkillAreaID:  row.SkillAreaID.String,
		SubTaskID:    row.SubTaskID.String,
		Year:         row.Year,
		Month:        core.Month(row.Month),
		Week:         row.Week,
		Score:        row.Score.Ptr(),
		Description:  row.Description.String,
		CreatedAt:    row.CreatedAt.UTC(),
		UpdatedAt:    row.UpdatedAt.UTC(),
	}
}

type scoreCardRepository struct {
	db core.DBExecutor
}

func NewScoreCardRepository(db core.DBExecutor) scorecard.Repository {
	return &scoreCardRepository{db: db}
}

func (repo *scoreCardRepository) CreateScoreCard(ctx context.Context, sc scorecard.ScoreCard) (scorecard.ScoreCard, error) {
	sc.ID = uuid.NewString()
	q, args, err := psql.
		Insert("score_cards").
		Columns(scoreCardColumns...).
		Values(
			sc.ID,
			sc.EnrollmentID,
			sc.StudentID,
			null.NewString(sc.SkillAreaID, sc.SkillAreaID != ""),
			null.NewString(sc.SubTaskID, sc.SubTaskID != ""),
			sc.Year,
			sc.Month.String(),
			sc.Week,
			null.IntFromPtr(sc.Score),
			null.NewString(sc.Description, sc.Description != ""),
			sc.CreatedAt,
			sc.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return scorecard.ScoreCard{}, errors.Wrap(err, "building score card insert")
	}
	if _, err = repo.db.ExecContext(ctx, q, args...); err != nil {
		return scorecard.ScoreCard{}, errors.Wrap(err, "inserting score card")
	}
	return sc, nil
}

func (repo *scoreCardRepository) QueryScoreCards(ctx context.Context, filter scorecard.Filter) ([]scorecard.ScoreCard, error) {
	if filter.EnrollmentID != "" && !validID(filter.EnrollmentID) {
		return []scorecard.ScoreCard{}, nil
	}
	q, args, err := psql.
		Select(scoreCardColumns...).
		From("score_cards").
		Where(scoreCardWhere(filter)).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building score cards query")
	}

	var rows []scoreCardRow
	if err = repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "selecting score cards")
	}
	cards := make([]scorecard.ScoreCard, 0, len(rows))
	for _, row := range rows {
		cards = append(cards, row.scoreCard())
	}
	return cards, nil
}

// scoreCardWhere renders filter as a WHERE condition.
// Month intervals of a DateRange become explicit IN lists of month names; empty lists never match.
func scoreCardWhere(filter scorecard.Filter) sq.And {
	where := sq.And{}
	if filter.EnrollmentID != "" {
		where = append(where, sq.Eq{"enrollment_id": filter.EnrollmentID})
	}
	if t := filter.Taxonomy; t != nil {
		where = append(where, sq.Or{
			sq.Eq{"skill_area_id": t.SkillAreaIDs},
			sq.Eq{"sub_task_id": t.SubTaskIDs},
		})
	}
	if r := filter.Range; r != nil {
		where = append(where, sq.Or{
			sq.And{sq.Eq{"year": r.StartYear}, sq.Eq{"month": monthNames(r.StartYearMonths())}},
			sq.And{sq.Eq{"year": r.EndYear}, sq.Eq{"month": monthNames(r.EndYearMonths())}},
			sq.And{sq.Gt{"year": r.StartYear}, sq.Lt{"year": r.EndYear}},
		})
	}
	return where
}

func monthNames(months []core.Month) []string {
	names := make([]string, 0, len(months))
	for _, m := range months {
		names = append(names, m.String())
	}
	return names
}
