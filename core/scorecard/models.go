package scorecard

import (
	"time"

	"github.com/ekta-foundation/casebook/core"
	"github.com/ekta-foundation/casebook/core/enrollment"
	"github.com/ekta-foundation/casebook/core/taxonomy"
)

const (
	MinWeek  = 1
	MaxWeek  = 5
	MinScore = 0
	MaxScore = 5
)

// ScoreCard is one atomic assessment record for a skill area and/or subtask in a given week.
// ScoreCards are append-only: they are never updated or deleted once written.
type ScoreCard struct {
	ID           string     `json:"id"`
	EnrollmentID string     `json:"enrollment_id"`
	StudentID    string     `json:"student_id"`
	SkillAreaID  string     `json:"skill_area_id,omitempty"`
	SubTaskID    string     `json:"sub_task_id,omitempty"`
	Year         int        `json:"year"`
	Month        core.Month `json:"month"`
	Week         int        `json:"week"`
	Score        *int       `json:"score"`
	Description  string     `json:"description,omitempty"`
	CreatedAt    time.Time  `json:"created_at"` // UTC
	UpdatedAt    time.Time  `json:"updated_at"` // UTC
}

// NewScoreCard contains information needed to record a new ScoreCard.
type NewScoreCard struct {
	EnrollmentID string `json:"enrollment_id" validate:"required"`
	SkillAreaID  string `json:"skill_area_id"`
	SubTaskID    string `json:"sub_task_id"`
	Year         int    `json:"year" validate:"omitempty,min=1900,max=9999"`
	Month        string `json:"month" validate:"required,month"`
	Week         int    `json:"week" validate:"required,min=1,max=5"`
	Score        *int   `json:"score" validate:"omitempty,min=0,max=5"`
	Description  string `json:"description"`
}

func (nsc *NewScoreCard) clean() {
	nsc.EnrollmentID = core.CleanString(nsc.EnrollmentID)
	nsc.SkillAreaID = core.CleanString(nsc.SkillAreaID)
	nsc.SubTaskID = core.CleanString(nsc.SubTaskID)
	nsc.Month = core.CleanString(nsc.Month)
	nsc.Description = core.CleanString(nsc.Description)
}

// Ref is a resolved taxonomy reference.
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Detailed is a ScoreCard joined with its SkillArea, the SkillArea's Program and its SubTask.
// Unresolved references are nil.
type Detailed struct {
	ScoreCard
	Program   *Ref `json:"program"`
	SkillArea *Ref `json:"skill_area"`
	SubTask   *Ref `json:"sub_task"`
}

func refName(r *Ref) string {
	if r == nil {
		return ""
	}
	return r.Name
}

func (d Detailed) ProgramName() string   { return refName(d.Program) }
func (d Detailed) SkillAreaName() string { return refName(d.SkillArea) }
func (d Detailed) SubTaskName() string   { return refName(d.SubTask) }

// EnrollmentScoreCards is the sorted scorecard listing of one enrollment.
type EnrollmentScoreCards struct {
	Student    enrollment.StudentSummary `json:"student"`
	ScoreCards []Detailed                `json:"score_cards"`
}

// RangeReport aggregates the scorecards of one enrollment over a DateRange.
type RangeReport struct {
	Student    enrollment.StudentSummary `json:"student"`
	Employee   *enrollment.Employee      `json:"employee"`
	Programs   []taxonomy.Program        `json:"programs"`
	DateRange  DateRange                 `json:"date_range"`
	SkillAreas []taxonomy.SkillArea      `json:"skill_areas"`
	SubTasks   []taxonomy.SubTask        `json:"sub_tasks"`
	ScoreCards []ScoreCard               `json:"score_cards"`
}

// TaxonomyScope restricts a Filter to scorecards whose skill area OR subtask is listed.
type TaxonomyScope struct {
	SkillAreaIDs []string
	SubTaskIDs   []string
}

// Filter applies AND on the set fields. A nil Taxonomy or Range is not applied.
type Filter struct {
	EnrollmentID string
	Taxonomy     *TaxonomyScope
	Range        *DateRange
}

// Match evaluates the Filter against a single ScoreCard.
func (f Filter) Match(sc ScoreCard) bool {
	if f.EnrollmentID != "" && sc.EnrollmentID != f.EnrollmentID {
		return false
	}
	if f.Taxonomy != nil {
		if !(contains(f.Taxonomy.SkillAreaIDs, sc.SkillAreaID) || contains(f.Taxonomy.SubTaskIDs, sc.SubTaskID)) {
			return false
		}
	}
	if f.Range != nil && !f.Range.Contains(sc.Year, sc.Month) {
		return false
	}
	return true
}

func contains(ids []string, id string) bool {
	if id == "" {
		return false
	}
	for _, i := range ids {
		if i == id {
			return true
		}
	}
	return false
}
