package inmemdb

import (
	"context"

	"github.com/ekta-foundation/casebook/core/enrollment"
)

type enrollmentRepository struct {
	db *enrollmentTables
}

func NewEnrollmentRepository(db *DB) enrollment.Repository {
	return &enrollmentRepository{db: db.enrollment}
}

func (repo *enrollmentRepository) GetEnrollment(_ context.Context, id string) (enrollment.Enrollment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if enr, ok := repo.db.enrollments[id]; ok {
		return enr, nil
	}
	return enrollment.Enrollment{}, enrollment.ErrNotFound
}

func (repo *enrollmentRepository) GetStudent(_ context.Context, id string) (enrollment.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if st, ok := repo.db.students[id]; ok {
		return st, nil
	}
	return enrollment.Student{}, enrollment.ErrStudentNotFound
}

func (repo *enrollmentRepository) GetEmployee(_ context.Context, id string) (enrollment.Employee, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if emp, ok := repo.db.employees[id]; ok {
		return emp, nil
	}
	return enrollment.Employee{}, enrollment.ErrEmployeeNotFound
}
