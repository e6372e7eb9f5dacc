package testutil

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ekta-foundation/casebook/core"
	"github.com/ekta-foundation/casebook/core/enrollment"
	"github.com/ekta-foundation/casebook/core/taxonomy"
	"github.com/ekta-foundation/casebook/storage/database/inmem"
)

// Fixture is a small taxonomy with one enrolled student.
//
//	Communication
//	  Expressive Language: Requests Objects, Names Pictures
//	  Receptive Language: Follows Instructions
//	Daily Living
//	  Self Care: Washes Hands
type Fixture struct {
	DB *inmemdb.DB

	Communication, DailyLiving            taxonomy.Program
	Expressive, Receptive, SelfCare       taxonomy.SkillArea
	Requests, NamesPictures, Instructions taxonomy.SubTask
	WashesHands                           taxonomy.SubTask

	Student    enrollment.Student
	Educator   enrollment.Employee
	Enrollment enrollment.Enrollment
}

// NewFixture seeds a fresh in-memory DB. The enrollment covers the Communication program only.
func NewFixture(t *testing.T) *Fixture {
	t.Helper()

	db := inmemdb.Open()
	now := time.Now().UTC()
	f := &Fixture{DB: db}

	f.Communication = db.AddProgram(taxonomy.Program{Name: "Communication", CreatedAt: now, UpdatedAt: now})
	f.DailyLiving = db.AddProgram(taxonomy.Program{Name: "Daily Living", CreatedAt: now, UpdatedAt: now})

	f.Expressive = db.AddSkillArea(taxonomy.SkillArea{ProgramID: f.Communication.ID, Name: "Expressive Language"})
	f.Receptive = db.AddSkillArea(taxonomy.SkillArea{ProgramID: f.Communication.ID, Name: "Receptive Language"})
	f.SelfCare = db.AddSkillArea(taxonomy.SkillArea{ProgramID: f.DailyLiving.ID, Name: "Self Care"})

	f.Requests = db.AddSubTask(taxonomy.SubTask{SkillAreaID: f.Expressive.ID, Name: "Requests Objects"})
	f.NamesPictures = db.AddSubTask(taxonomy.SubTask{SkillAreaID: f.Expressive.ID, Name: "Names Pictures"})
	f.Instructions = db.AddSubTask(taxonomy.SubTask{SkillAreaID: f.Receptive.ID, Name: "Follows Instructions"})
	f.WashesHands = db.AddSubTask(taxonomy.SubTask{SkillAreaID: f.SelfCare.ID, Name: "Washes Hands"})

	f.Student = db.AddStudent(enrollment.Student{
		Name:    "Asha Verma",
		DOB:     time.Date(2015, time.March, 4, 0, 0, 0, 0, time.UTC),
		Gender:  "female",
		Contact: "+91 98100 00000",
	})
	f.Educator = db.AddEmployee(enrollment.Employee{Name: "Ravi Kumar", Email: "ravi@example.org", Designation: "Special Educator"})
	f.Enrollment = db.AddEnrollment(enrollment.Enrollment{
		StudentID:  f.Student.ID,
		ProgramIDs: []string{f.Communication.ID},
		EducatorID: f.Educator.ID,
		Level:      "beginner",
		Status:     enrollment.StatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	return f
}

// LogEntry is a message recorded by LoggerMock.
type LogEntry struct {
	Level string
	Msg   string
	Args  []interface{}
}

// LoggerMock records log entries instead of reporting them.
type LoggerMock struct {
	mu      sync.Mutex
	Entries []LogEntry
}

var _ core.Logger = (*LoggerMock)(nil)

func NewLoggerMock() *LoggerMock {
	return &LoggerMock{}
}

func (l *LoggerMock) log(level, msg string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Entries = append(l.Entries, LogEntry{Level: level, Msg: msg, Args: args})
}

func (l *LoggerMock) Debug(msg string, args ...interface{}) { l.log("debug", msg, args) }
func (l *LoggerMock) Info(msg string, args ...interface{})  { l.log("info", msg, args) }
func (l *LoggerMock) Warn(msg string, args ...interface{})  { l.log("warn", msg, args) }
func (l *LoggerMock) Error(msg string, args ...interface{}) { l.log("error", msg, args) }
func (l *LoggerMock) Fatal(msg string, args ...interface{}) { l.log("fatal", msg, args) }

// Count returns the number of entries recorded at level.
func (l *LoggerMock) Count(level string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, e := range l.Entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

// PublisherMock is a DocumentPublisher keeping artifacts in memory. A non-nil Err fails every publish.
type PublisherMock struct {
	mu    sync.Mutex
	Err   error
	Files map[string][]byte
}

var _ core.DocumentPublisher = (*PublisherMock)(nil)

func NewPublisherMock() *PublisherMock {
	return &PublisherMock{Files: make(map[string][]byte)}
}

func (p *PublisherMock) Publish(_ context.Context, data []byte, folder string) (core.PublishedDocument, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return core.PublishedDocument{}, p.Err
	}
	key := fmt.Sprintf("%s/%d.pdf", folder, len(p.Files)+1)
	p.Files[key] = data
	return core.PublishedDocument{URL: "https://files.test/" + key, PublicID: key}, nil
}
