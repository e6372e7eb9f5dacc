package inmemdb

import (
	"sync"

	"github.com/google/uuid"

	"github.com/ekta-foundation/casebook/core/document"
	"github.com/ekta-foundation/casebook/core/enrollment"
	"github.com/ekta-foundation/casebook/core/scorecard"
	"github.com/ekta-foundation/casebook/core/taxonomy"
)

type (
	// DB is an in-memory store serving every repository of the app.
	DB struct {
		taxonomy   *taxonomyTables
		enrollment *enrollmentTables
		scoreCard  *scoreCardTable
		document   *documentTable
	}

	taxonomyTables struct {
		programs   map[string]taxonomy.Program
		skillAreas map[string]taxonomy.SkillArea
		subTasks   map[string]taxonomy.SubTask
		mutex      sync.RWMutex
	}

	enrollmentTables struct {
		enrollments map[string]enrollment.Enrollment
		students    map[string]enrollment.Student
		employees   map[string]enrollment.Employee
		mutex       sync.RWMutex
	}

	scoreCardTable struct {
		t     []scorecard.ScoreCard // insertion order
		mutex sync.RWMutex
	}

	documentTable struct {
		t     []document.Document
		mutex sync.RWMutex
	}
)

func Open() *DB {
	return &DB{
		taxonomy: &taxonomyTables{
			programs:   make(map[string]taxonomy.Program),
			skillAreas: make(map[string]taxonomy.SkillArea),
			subTasks:   make(map[string]taxonomy.SubTask),
		},
		enrollment: &enrollmentTables{
			enrollments: make(map[string]enrollment.Enrollment),
			students:    make(map[string]enrollment.Student),
			employees:   make(map[string]enrollment.Employee),
		},
		scoreCard: &scoreCardTable{},
		document:  &documentTable{},
	}
}

func newID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

// AddProgram inserts p, assigning an id when p has none.
func (db *DB) AddProgram(p taxonomy.Program) taxonomy.Program {
	db.taxonomy.mutex.Lock()
	defer db.taxonomy.mutex.Unlock()
	p.ID = newID(p.ID)
	db.taxonomy.programs[p.ID] = p
	return p
}

func (db *DB) AddSkillArea(sa taxonomy.SkillArea) taxonomy.SkillArea {
	db.taxonomy.mutex.Lock()
	defer db.taxonomy.mutex.Unlock()
	sa.ID = newID(sa.ID)
	db.taxonomy.skillAreas[sa.ID] = sa
	return sa
}

func (db *DB) AddSubTask(st taxonomy.SubTask) taxonomy.SubTask {
	db.taxonomy.mutex.Lock()
	defer db.taxonomy.mutex.Unlock()
	st.ID = newID(st.ID)
	db.taxonomy.subTasks[st.ID] = st
	return st
}

func (db *DB) AddStudent(s enrollment.Student) enrollment.Student {
	db.enrollment.mutex.Lock()
	defer db.enrollment.mutex.Unlock()
	s.ID = newID(s.ID)
	db.enrollment.students[s.ID] = s
	return s
}

func (db *DB) AddEmployee(e enrollment.Employee) enrollment.Employee {
	db.enrollment.mutex.Lock()
	defer db.enrollment.mutex.Unlock()
	e.ID = newID(e.ID)
	db.enrollment.employees[e.ID] = e
	return e
}

func (db *DB) AddEnrollment(e enrollment.Enrollment) enrollment.Enrollment {
	db.enrollment.mutex.Lock()
	defer db.enrollment.mutex.Unlock()
	e.ID = newID(e.ID)
	db.enrollment.enrollments[e.ID] = e
	return e
}

// ScoreCards returns every stored ScoreCard in insertion order.
func (db *DB) ScoreCards() []scorecard.ScoreCard {
	db.scoreCard.mutex.RLock()
	defer db.scoreCard.mutex.RUnlock()
	return append([]scorecard.ScoreCard(nil), db.scoreCard.t...)
}

// Documents returns every stored Document in insertion order.
func (db *DB) Documents() []document.Document {
	db.document.mutex.RLock()
	defer db.document.mutex.RUnlock()
	return append([]document.Document(nil), db.document.t...)
}
