package enrollment

import (
	"time"

	"github.com/ekta-foundation/casebook/core/taxonomy"
)

// Enrollment statuses
const (
	StatusActive    = "active"
	StatusOnHold    = "on_hold"
	StatusCompleted = "completed"
	StatusDropped   = "dropped"
)

// Enrollment binds a Student to one or more programs with assigned educator(s).
type Enrollment struct {
	ID                  string    `json:"id"`
	StudentID           string    `json:"student_id"`
	ProgramIDs          []string  `json:"program_ids"`
	EducatorID          string    `json:"educator_id"`
	SecondaryEducatorID string    `json:"secondary_educator_id,omitempty"`
	Level               string    `json:"level"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"` // UTC
	UpdatedAt           time.Time `json:"updated_at"` // UTC
}

type Student struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	DOB     time.Time `json:"dob"`
	Gender  string    `json:"gender"`
	Contact string    `json:"contact"`
}

// StudentSummary is the abbreviated student projection attached to reports.
type StudentSummary struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	DOB     time.Time `json:"dob"`
	Age     int       `json:"age"`
	Gender  string    `json:"gender"`
	Contact string    `json:"contact"`
}

// Employee is an educator assigned to enrollments.
type Employee struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Designation string `json:"designation"`
}

// Detail is an Enrollment with its student, programs and educator populated.
type Detail struct {
	Enrollment Enrollment         `json:"enrollment"`
	Student    StudentSummary     `json:"student"`
	Educator   *Employee          `json:"educator"`
	Programs   []taxonomy.Program `json:"programs"`
}

// Summarize projects s as of now.
func (s Student) Summarize(now time.Time) StudentSummary {
	return StudentSummary{
		ID:      s.ID,
		Name:    s.Name,
		DOB:     s.DOB,
		Age:     age(s.DOB, now),
		Gender:  s.Gender,
		Contact: s.Contact,
	}
}

// age returns the number of full years between dob and now.
func age(dob, now time.Time) int {
	if dob.IsZero() || now.Before(dob) {
		return 0
	}
	years := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	return years
}
