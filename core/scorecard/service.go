package scorecard

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/ekta-foundation/casebook/core"
	"github.com/ekta-foundation/casebook/core/enrollment"
	"github.com/ekta-foundation/casebook/core/taxonomy"
)

var (
	NowFunc = time.Now // mockable

	// errors
	ErrTaxonomyRequired     = errors.New("Skill Area or Sub Task is required")
	ErrSkillAreaNotFound    = errors.New("skill area not found")
	ErrSubTaskNotFound      = errors.New("sub task not found")
	ErrEnrollmentIDRequired = errors.New("enrollment id is required")
)

type (
	// Repository is the ScoreCard Store. It is append-only.
	Repository interface {
		// CreateScoreCard inserts a single ScoreCard and assigns its ID.
		CreateScoreCard(ctx context.Context, sc ScoreCard) (ScoreCard, error)
		// QueryScoreCards returns every ScoreCard matching filter, in no particular order.
		QueryScoreCards(ctx context.Context, filter Filter) ([]ScoreCard, error)
	}

	Service struct {
		repo        Repository
		enrollments *enrollment.Service
		taxonomy    *taxonomy.Service
		validate    *validator.Validate
	}
)

func NewService(
	repo Repository,
	enrollmentSvc *enrollment.Service,
	taxonomySvc *taxonomy.Service,
	validate *validator.Validate,
) *Service {
	return &Service{
		repo:        repo,
		enrollments: enrollmentSvc,
		taxonomy:    taxonomySvc,
		validate:    validate,
	}
}

// Create validates and records a single score entry.
func (svc *Service) Create(ctx context.Context, nsc NewScoreCard) (ScoreCard, error) {
	nsc.clean()

	enr, err := svc.enrollments.Get(ctx, nsc.EnrollmentID)
	if err != nil {
		return ScoreCard{}, err
	}

	if nsc.SkillAreaID == "" && nsc.SubTaskID == "" {
		return ScoreCard{}, core.NewValidationError(
			ErrTaxonomyRequired,
			core.FieldError{Field: "skill_area_id", Error: ErrTaxonomyRequired.Error()},
			core.FieldError{Field: "sub_task_id", Error: ErrTaxonomyRequired.Error()},
		)
	}
	if nsc.SkillAreaID != "" {
		ok, err := svc.taxonomy.SkillAreaExists(ctx, nsc.SkillAreaID)
		if err != nil {
			return ScoreCard{}, err
		}
		if !ok {
			return ScoreCard{}, core.NewValidationError(
				ErrSkillAreaNotFound, core.FieldError{Field: "skill_area_id", Error: ErrSkillAreaNotFound.Error()},
			)
		}
	}
	if nsc.SubTaskID != "" {
		ok, err := svc.taxonomy.SubTaskExists(ctx, nsc.SubTaskID)
		if err != nil {
			return ScoreCard{}, err
		}
		if !ok {
			return ScoreCard{}, core.NewValidationError(
				ErrSubTaskNotFound, core.FieldError{Field: "sub_task_id", Error: ErrSubTaskNotFound.Error()},
			)
		}
	}

	if err = svc.validate.Struct(nsc); err != nil {
		return ScoreCard{}, err
	}

	now := NowFunc().UTC()
	year := nsc.Year
	if year == 0 {
		year = now.Year()
	}
	sc := ScoreCard{
		EnrollmentID: enr.ID,
		StudentID:    enr.StudentID,
		SkillAreaID:  nsc.SkillAreaID,
		SubTaskID:    nsc.SubTaskID,
		Year:         year,
		Month:        core.Month(nsc.Month),
		Week:         nsc.Week,
		Score:        nsc.Score,
		Description:  nsc.Description,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return svc.repo.CreateScoreCard(ctx, sc)
}

// Append writes sc as-is after checking the store invariants. It does not resolve references.
func (svc *Service) Append(ctx context.Context, sc ScoreCard) (ScoreCard, error) {
	if sc.SkillAreaID == "" && sc.SubTaskID == "" {
		return ScoreCard{}, core.NewValidationError(ErrTaxonomyRequired)
	}
	if !sc.Month.Valid() {
		return ScoreCard{}, core.NewValidationError(
			errors.Errorf("invalid month %q", sc.Month), core.FieldError{Field: "month", Error: "invalid month"},
		)
	}
	if sc.Week < MinWeek || sc.Week > MaxWeek {
		return ScoreCard{}, core.NewValidationError(
			errors.Errorf("week must be between %d and %d", MinWeek, MaxWeek),
			core.FieldError{Field: "week", Error: "invalid week"},
		)
	}
	if sc.Score != nil && (*sc.Score < MinScore || *sc.Score > MaxScore) {
		return ScoreCard{}, core.NewValidationError(
			errors.Errorf("score must be between %d and %d", MinScore, MaxScore),
			core.FieldError{Field: "score", Error: "invalid score"},
		)
	}
	now := NowFunc().UTC()
	if sc.Year == 0 {
		sc.Year = now.Year()
	}
	sc.CreatedAt, sc.UpdatedAt = now, now
	return svc.repo.CreateScoreCard(ctx, sc)
}

// ListForEnrollment returns the student and every scorecard of an enrollment, joined and sorted (see Sort).
func (svc *Service) ListForEnrollment(ctx context.Context, enrollmentID string) (EnrollmentScoreCards, error) {
	enrollmentID = core.CleanString(enrollmentID)
	if enrollmentID == "" {
		return EnrollmentScoreCards{}, core.NewValidationError(
			ErrEnrollmentIDRequired, core.FieldError{Field: "enrollment_id", Error: ErrEnrollmentIDRequired.Error()},
		)
	}

	enr, err := svc.enrollments.Get(ctx, enrollmentID)
	if err != nil {
		return EnrollmentScoreCards{}, err
	}
	student, err := svc.enrollments.GetStudent(ctx, enr.StudentID)
	if err != nil {
		return EnrollmentScoreCards{}, err
	}

	cards, err := svc.repo.QueryScoreCards(ctx, Filter{EnrollmentID: enr.ID})
	if err != nil {
		return EnrollmentScoreCards{}, errors.Wrap(err, "querying score cards")
	}
	detailed, err := svc.join(ctx, cards)
	if err != nil {
		return EnrollmentScoreCards{}, err
	}
	Sort(detailed)

	return EnrollmentScoreCards{Student: student, ScoreCards: detailed}, nil
}

// RangeReport returns the scorecards of an enrollment that fall in the requested date range
// and belong to the taxonomy of the enrollment's programs.
func (svc *Service) RangeReport(ctx context.Context, q RangeQuery) (RangeReport, error) {
	q.clean()
	if err := svc.validate.Struct(q); err != nil {
		return RangeReport{}, err
	}
	dateRange := q.DateRange(NowFunc())

	detail, err := svc.enrollments.GetDetail(ctx, q.EnrollmentID)
	if err != nil {
		return RangeReport{}, err
	}
	scope, err := svc.taxonomy.ScopeForPrograms(ctx, detail.Enrollment.ProgramIDs)
	if err != nil {
		return RangeReport{}, err
	}

	cards, err := svc.repo.QueryScoreCards(ctx, Filter{
		EnrollmentID: detail.Enrollment.ID,
		Taxonomy: &TaxonomyScope{
			SkillAreaIDs: scope.SkillAreaIDs(),
			SubTaskIDs:   scope.SubTaskIDs(),
		},
		Range: &dateRange,
	})
	if err != nil {
		return RangeReport{}, errors.Wrap(err, "querying score cards")
	}
	if cards == nil {
		cards = []ScoreCard{}
	}
	SortChronologically(cards)

	return RangeReport{
		Student:    detail.Student,
		Employee:   detail.Educator,
		Programs:   detail.Programs,
		DateRange:  dateRange,
		SkillAreas: scope.SkillAreas,
		SubTasks:   scope.SubTasks,
		ScoreCards: cards,
	}, nil
}

// join resolves the taxonomy references of cards. Unresolved references are left nil.
func (svc *Service) join(ctx context.Context, cards []ScoreCard) ([]Detailed, error) {
	skillAreaIDs := make([]string, 0, len(cards))
	subTaskIDs := make([]string, 0, len(cards))
	for _, sc := range cards {
		skillAreaIDs = append(skillAreaIDs, sc.SkillAreaID)
		subTaskIDs = append(subTaskIDs, sc.SubTaskID)
	}
	lookup, err := svc.taxonomy.Resolve(ctx, skillAreaIDs, subTaskIDs)
	if err != nil {
		return nil, err
	}

	detailed := make([]Detailed, 0, len(cards))
	for _, sc := range cards {
		d := Detailed{ScoreCard: sc}
		if sa, ok := lookup.SkillArea(sc.SkillAreaID); ok {
			d.SkillArea = &Ref{ID: sa.ID, Name: sa.Name}
		}
		if p, ok := lookup.ProgramOf(sc.SkillAreaID); ok {
			d.Program = &Ref{ID: p.ID, Name: p.Name}
		}
		if st, ok := lookup.SubTask(sc.SubTaskID); ok {
			d.SubTask = &Ref{ID: st.ID, Name: st.Name}
		}
		detailed = append(detailed, d)
	}
	return detailed, nil
}
