package enrollment

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/ekta-foundation/casebook/core"
	"github.com/ekta-foundation/casebook/core/taxonomy"
)

var (
	// errors
	ErrNotFound         = errors.New("enrollment not found")
	ErrStudentNotFound  = errors.New("student not found")
	ErrEmployeeNotFound = errors.New("employee not found")

	NowFunc = time.Now // mockable
)

type (
	// Repository is the read side of the Enrollment Store.
	// Missing records are reported with ErrNotFound, ErrStudentNotFound and ErrEmployeeNotFound.
	Repository interface {
		GetEnrollment(ctx context.Context, id string) (Enrollment, error)
		GetStudent(ctx context.Context, id string) (Student, error)
		GetEmployee(ctx context.Context, id string) (Employee, error)
	}

	Service struct {
		repo     Repository
		taxonomy *taxonomy.Service
	}
)

func NewService(repo Repository, taxonomySvc *taxonomy.Service) *Service {
	return &Service{repo: repo, taxonomy: taxonomySvc}
}

// Get returns the Enrollment with the given id or a core.NotFoundError.
func (svc *Service) Get(ctx context.Context, id string) (Enrollment, error) {
	if id == "" {
		return Enrollment{}, core.NewNotFoundError("enrollment", id)
	}
	enr, err := svc.repo.GetEnrollment(ctx, id)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return Enrollment{}, core.NewNotFoundError("enrollment", id)
		}
		return Enrollment{}, errors.Wrap(err, "finding enrollment")
	}
	return enr, nil
}

// GetStudent returns the abbreviated projection of the Student with the given id or a core.NotFoundError.
func (svc *Service) GetStudent(ctx context.Context, id string) (StudentSummary, error) {
	if id == "" {
		return StudentSummary{}, core.NewNotFoundError("student", id)
	}
	st, err := svc.repo.GetStudent(ctx, id)
	if err != nil {
		if errors.Cause(err) == ErrStudentNotFound {
			return StudentSummary{}, core.NewNotFoundError("student", id)
		}
		return StudentSummary{}, errors.Wrap(err, "finding student")
	}
	return st.Summarize(NowFunc().UTC()), nil
}

// GetDetail returns the Enrollment with its student, programs and primary educator populated.
// A missing educator leaves Detail.Educator nil.
func (svc *Service) GetDetail(ctx context.Context, id string) (Detail, error) {
	enr, err := svc.Get(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	student, err := svc.GetStudent(ctx, enr.StudentID)
	if err != nil {
		return Detail{}, err
	}

	detail := Detail{Enrollment: enr, Student: student}
	if enr.EducatorID != "" {
		emp, err := svc.repo.GetEmployee(ctx, enr.EducatorID)
		switch {
		case err == nil:
			detail.Educator = &emp
		case errors.Cause(err) != ErrEmployeeNotFound:
			return Detail{}, errors.Wrap(err, "finding educator")
		}
	}

	if detail.Programs, err = svc.taxonomy.Programs(ctx, enr.ProgramIDs); err != nil {
		return Detail{}, err
	}
	return detail, nil
}
