package report

import (
	"fmt"

	"github.com/ekta-foundation/casebook/core"
)

// Submission is a bulk weekly assessment to be recorded and rendered as a progress report.
type Submission struct {
	EnrollmentID string     `json:"enrollment_id" validate:"required"`
	ReportDate   string     `json:"report_date" validate:"required"`
	WeekNumber   int        `json:"week_number" validate:"omitempty,min=1,max=5"`
	Categories   []Category `json:"categories"`
}

// Category groups the subtask entries of one skill area.
type Category struct {
	CategoryID string         `json:"category_id"`
	SubTasks   []SubTaskEntry `json:"sub_tasks"`
}

type SubTaskEntry struct {
	SubTaskID   string `json:"sub_task_id"`
	Score       *int   `json:"score"`
	Description string `json:"description"`
	Week        int    `json:"week"`
	Month       string `json:"month"`
}

// complete reports whether the entry carries enough to be recorded.
func (e SubTaskEntry) complete() bool {
	return e.SubTaskID != "" && e.Score != nil
}

func (s *Submission) clean() {
	s.EnrollmentID = core.CleanString(s.EnrollmentID)
	s.ReportDate = core.CleanString(s.ReportDate)
	for i := range s.Categories {
		cat := &s.Categories[i]
		cat.CategoryID = core.CleanString(cat.CategoryID)
		for j := range cat.SubTasks {
			e := &cat.SubTasks[j]
			e.SubTaskID = core.CleanString(e.SubTaskID)
			e.Description = core.CleanString(e.Description)
			e.Month = core.CleanString(e.Month)
		}
	}
}

// Published is the outcome of a successful report pipeline.
type Published struct {
	URL          string   `json:"url"`
	DocumentID   string   `json:"document_id"`
	Rating       Rating   `json:"rating"`
	Pages        int      `json:"pages"`
	ScoreCardIDs []string `json:"score_card_ids"`
}

// Stage names a step of the report pipeline.
type Stage string

const (
	StageValidate Stage = "validate"
	StagePersist  Stage = "persist"
	StageRender   Stage = "render"
	StagePublish  Stage = "publish"
	StageLink     Stage = "link"
)

// PipelineError reports the stage a report pipeline stopped at.
// Committed lists the ScoreCards written before the failure; they are not rolled back.
type PipelineError struct {
	Stage     Stage
	Committed []string
	Err       error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("report pipeline failed at %s (%d score cards committed): %v", e.Stage, len(e.Committed), e.Err)
}

func (e *PipelineError) Cause() error  { return e.Err }
func (e *PipelineError) Unwrap() error { return e.Err }
