package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/ekta-foundation/casebook/core"
	"github.com/ekta-foundation/casebook/core/enrollment"
)

type (
	enrollmentRow struct {
		ID                  string      `db:"id"`
		StudentID           string      `db:"student_id"`
		EducatorID          null.String `db:"educator_id"`
		SecondaryEducatorID null.String `db:"secondary_educator_id"`
		Level               string      `db:"level"`
		Status              string      `db:"status"`
		CreatedAt           time.Time   `db:"created_at"`
		UpdatedAt           time.Time   `db:"updated_at"`
	}

	studentRow struct {
		ID      string    `db:"id"`
		Name    string    `db:"name"`
		DOB     null.Time `db:"dob"`
		Gender  string    `db:"gender"`
		Contact string    `db:"contact"`
	}

	employeeRow struct {
		ID          string `db:"id"`
		Name        string `db:"name"`
		Email       string `db:"email"`
		Designation string `db:"designation"`
	}
)

type enrollmentRepository struct {
	db core.DBExecutor
}

func NewEnrollmentRepository(db core.DBExecutor) enrollment.Repository {
	return &enrollmentRepository{db: db}
}

func (repo *enrollmentRepository) GetEnrollment(ctx context.Context, id string) (enrollment.Enrollment, error) {
	if !validID(id) {
		return enrollment.Enrollment{}, enrollment.ErrNotFound
	}
	q, args, err := psql.
		Select("id", "student_id", "educator_id", "secondary_educator_id", "level", "status", "created_at", "updated_at").
		From("enrollments").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return enrollment.Enrollment{}, errors.Wrap(err, "building enrollment query")
	}
	var row enrollmentRow
	if err = repo.db.GetContext(ctx, &row, q, args...); err != nil {
		if errors.Cause(err) == sql.ErrNoRows {
			return enrollment.Enrollment{}, enrollment.ErrNotFound
		}
		return enrollment.Enrollment{}, errors.Wrap(err, "selecting enrollment")
	}

	q, args, err = psql.
		Select("program_id").
		From("enrollment_programs").
		Where(sq.Eq{"enrollment_id": id}).
		OrderBy("position", "program_id").
		ToSql()
	if err != nil {
		return enrollment.Enrollment{}, errors.Wrap(err, "building enrollment programs query")
	}
	programIDs := make([]string, 0)
	if err = repo.db.SelectContext(ctx, &programIDs, q, args...); err != nil {
		return enrollment.Enrollment{}, errors.Wrap(err, "selecting enrollment programs")
	}

	return enrollment.Enrollment{
		ID:                  row.ID,
		StudentID:           row.StudentID,
		ProgramIDs:          programIDs,
		EducatorID:          row.EducatorID.String,
		SecondaryEducatorID: row.SecondaryEducatorID.String,
		Level:               row.Level,
		Status:              row.Status,
		CreatedAt:           row.CreatedAt.UTC(),
		UpdatedAt:           row.UpdatedAt.UTC(),
	}, nil
}

func (repo *enrollmentRepository) GetStudent(ctx context.Context, id string) (enrollment.Student, error) {
	if !validID(id) {
		return enrollment.Student{}, enrollment.ErrStudentNotFound
	}
	q, args, err := psql.
		Select("id", "name", "dob", "gender", "contact").
		From("students").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return enrollment.Student{}, errors.Wrap(err, "building student query")
	}
	var row studentRow
	if err = repo.db.GetContext(ctx, &row, q, args...); err != nil {
		if errors.Cause(err) == sql.ErrNoRows {
			return enrollment.Student{}, enrollment.ErrStudentNotFound
		}
		return enrollment.Student{}, errors.Wrap(err, "selecting student")
	}
	return enrollment.Student{
		ID:      row.ID,
		Name:    row.Name,
		DOB:     row.DOB.Time,
		Gender:  row.Gender,
		Contact: row.Contact,
	}, nil
}

func (repo *enrollmentRepository) GetEmployee(ctx context.Context, id string) (enrollment.Employee, error) {
	if !validID(id) {
		return enrollment.Employee{}, enrollment.ErrEmployeeNotFound
	}
	q, args, err := psql.
		Select("id", "name", "email", "designation").
		From("employees").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return enrollment.Employee{}, errors.Wrap(err, "building employee query")
	}
	var row employeeRow
	if err = repo.db.GetContext(ctx, &row, q, args...); err != nil {
		if errors.Cause(err) == sql.ErrNoRows {
			return enrollment.Employee{}, enrollment.ErrEmployeeNotFound
		}
		return enrollment.Employee{}, errors.Wrap(err, "selecting employee")
	}
	return enrollment.Employee(row), nil
}
