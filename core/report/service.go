package report

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/ekta-foundation/casebook/core"
	"github.com/ekta-foundation/casebook/core/document"
	"github.com/ekta-foundation/casebook/core/enrollment"
	"github.com/ekta-foundation/casebook/core/scorecard"
	"github.com/ekta-foundation/casebook/core/taxonomy"
)

const (
	DefaultDocumentType = "progress_report"
	DefaultFolder       = "progress-reports"
	reportTitle         = "Student Progress Report"
)

var NowFunc = time.Now // mockable

type (
	Deps struct {
		ScoreCards   *scorecard.Service
		Enrollments  *enrollment.Service
		Taxonomy     *taxonomy.Service
		Documents    document.Repository
		Publisher    core.DocumentPublisher
		Renderer     *Renderer
		Validate     *validator.Validate
		Logger       core.Logger
		Folder       string
		DocumentType string
	}

	// Service runs the progress report pipeline: persist, render, publish, link.
	// The pipeline is not atomic. ScoreCards written before a failing stage stay written.
	Service struct {
		Deps
	}
)

func NewService(deps Deps) *Service {
	if deps.Renderer == nil {
		deps.Renderer = NewRenderer("casebook")
	}
	if deps.Folder == "" {
		deps.Folder = DefaultFolder
	}
	if deps.DocumentType == "" {
		deps.DocumentType = DefaultDocumentType
	}
	return &Service{Deps: deps}
}

// Generate records the complete entries of sub, renders them as a progress report,
// publishes the artifact and links it to the student.
// Failures are returned as *PipelineError.
func (svc *Service) Generate(ctx context.Context, sub Submission) (Published, error) {
	sub.clean()

	if err := svc.Validate.Struct(sub); err != nil {
		return Published{}, svc.fail(StageValidate, nil, err)
	}
	enr, err := svc.Enrollments.Get(ctx, sub.EnrollmentID)
	if err != nil {
		return Published{}, svc.fail(StageValidate, nil, err)
	}

	committed, err := svc.persist(ctx, enr, sub)
	if err != nil {
		return Published{}, svc.fail(StagePersist, committed, err)
	}

	student, err := svc.Enrollments.GetStudent(ctx, enr.StudentID)
	if err != nil {
		return Published{}, svc.fail(StageRender, committed, err)
	}
	input, err := svc.renderInput(ctx, sub, student.Name)
	if err != nil {
		return Published{}, svc.fail(StageRender, committed, err)
	}
	artifact, err := svc.Renderer.Render(input)
	if err != nil {
		return Published{}, svc.fail(StageRender, committed, err)
	}

	pub, err := svc.Publisher.Publish(ctx, artifact.Data, svc.Folder)
	if err != nil {
		return Published{}, svc.fail(StagePublish, committed, core.NewPublishError(err))
	}

	doc, err := svc.Documents.CreateDocument(ctx, document.Document{
		StudentID:    student.ID,
		DocumentType: svc.DocumentType,
		URL:          pub.URL,
		PublicID:     pub.PublicID,
		FileName:     FileName(student.Name, sub.ReportDate),
		CreatedAt:    NowFunc().UTC(),
	})
	if err != nil {
		return Published{}, svc.fail(StageLink, committed, errors.Wrap(err, "linking document"))
	}

	return Published{
		URL:          pub.URL,
		DocumentID:   doc.ID,
		Rating:       artifact.Rating,
		Pages:        artifact.Pages,
		ScoreCardIDs: committed,
	}, nil
}

// StudentDocuments lists the documents linked to a student, newest first.
func (svc *Service) StudentDocuments(ctx context.Context, studentID string) ([]document.Document, error) {
	student, err := svc.Enrollments.GetStudent(ctx, core.CleanString(studentID))
	if err != nil {
		return nil, err
	}
	docs, err := svc.Documents.QueryStudentDocuments(ctx, student.ID)
	if err != nil {
		return nil, errors.Wrap(err, "querying documents")
	}
	return docs, nil
}

// FileName is the display name of a published progress report.
func FileName(studentName, reportDate string) string {
	return "Progress Report - " + studentName + " - " + reportDate + ".pdf"
}

// persist writes one ScoreCard per complete entry, one at a time.
// It returns the ids written so far, also on error.
func (svc *Service) persist(ctx context.Context, enr enrollment.Enrollment, sub Submission) ([]string, error) {
	now := NowFunc().UTC()
	committed := make([]string, 0)
	for _, cat := range sub.Categories {
		for _, e := range cat.SubTasks {
			if !e.complete() {
				continue
			}
			month := core.Month(e.Month)
			if e.Month == "" {
				month = core.MonthOf(now)
			}
			week := e.Week
			if week == 0 {
				week = sub.WeekNumber
			}
			if week == 0 {
				week = weekOfMonth(now)
			}
			sc, err := svc.ScoreCards.Append(ctx, scorecard.ScoreCard{
				EnrollmentID: enr.ID,
				StudentID:    enr.StudentID,
				SubTaskID:    e.SubTaskID,
				Year:         now.Year(),
				Month:        month,
				Week:         week,
				Score:        e.Score,
				Description:  e.Description,
			})
			if err != nil {
				return committed, err
			}
			committed = append(committed, sc.ID)
		}
	}
	return committed, nil
}

// renderInput resolves category and subtask names. Unknown ids are printed as-is.
func (svc *Service) renderInput(ctx context.Context, sub Submission, studentName string) (RenderInput, error) {
	var skillAreaIDs, subTaskIDs []string
	for _, cat := range sub.Categories {
		skillAreaIDs = append(skillAreaIDs, cat.CategoryID)
		for _, e := range cat.SubTasks {
			subTaskIDs = append(subTaskIDs, e.SubTaskID)
		}
	}
	lookup, err := svc.Taxonomy.Resolve(ctx, skillAreaIDs, subTaskIDs)
	if err != nil {
		return RenderInput{}, err
	}

	in := RenderInput{
		Title:        reportTitle,
		EnrollmentID: sub.EnrollmentID,
		StudentName:  studentName,
		ReportDate:   sub.ReportDate,
		WeekNumber:   sub.WeekNumber,
	}
	for _, cat := range sub.Categories {
		sec := Section{Title: cat.CategoryID}
		if sa, ok := lookup.SkillArea(cat.CategoryID); ok {
			sec.Title = sa.Name
		}
		for _, e := range cat.SubTasks {
			if e.SubTaskID == "" {
				continue
			}
			row := Row{Name: e.SubTaskID, Score: e.Score, Description: e.Description}
			if st, ok := lookup.SubTask(e.SubTaskID); ok {
				row.Name = st.Name
			}
			sec.Rows = append(sec.Rows, row)
		}
		if len(sec.Rows) > 0 {
			in.Sections = append(in.Sections, sec)
		}
	}
	return in, nil
}

func (svc *Service) fail(stage Stage, committed []string, err error) error {
	perr := &PipelineError{Stage: stage, Committed: committed, Err: err}
	if len(committed) > 0 || stage == StagePublish || stage == StageLink {
		svc.Logger.Error("report pipeline failed", perr, map[string]interface{}{
			"stage":     string(stage),
			"committed": committed,
		})
	}
	return perr
}

func weekOfMonth(t time.Time) int {
	w := (t.Day()-1)/7 + 1
	if w > scorecard.MaxWeek {
		w = scorecard.MaxWeek
	}
	return w
}
