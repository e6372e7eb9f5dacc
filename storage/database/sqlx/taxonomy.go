package sqlxrepos

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/ekta-foundation/casebook/core"
	"github.com/ekta-foundation/casebook/core/taxonomy"
)

var (
	programColumns   = []string{"id", "name", "description", "created_at", "updated_at"}
	skillAreaColumns = []string{"id", "program_id", "name", "description", "created_at", "updated_at"}
	subTaskColumns   = []string{"id", "skill_area_id", "name", "description", "created_at", "updated_at"}
)

type taxonomyRepository struct {
	db core.DBExecutor
}

func NewTaxonomyRepository(db core.DBExecutor) taxonomy.Repository {
	return &taxonomyRepository{db: db}
}

func (repo *taxonomyRepository) selectWhere(ctx context.Context, dest interface{}, table string, cols []string, where sq.Sqlizer) error {
	q, args, err := psql.Select(cols...).From(table).Where(where).ToSql()
	if err != nil {
		return errors.Wrapf(err, "building %s query", table)
	}
	if err = repo.db.SelectContext(ctx, dest, q, args...); err != nil {
		return errors.Wrapf(err, "querying %s", table)
	}
	return nil
}

func (repo *taxonomyRepository) GetProgramsByIDs(ctx context.Context, ids []string) ([]taxonomy.Program, error) {
	ids = validIDs(ids)
	programs := make([]taxonomy.Program, 0, len(ids))
	if len(ids) == 0 {
		return programs, nil
	}
	err := repo.selectWhere(ctx, &programs, "programs", programColumns, sq.Eq{"id": ids})
	return programs, err
}

func (repo *taxonomyRepository) GetSkillAreasByIDs(ctx context.Context, ids []string) ([]taxonomy.SkillArea, error) {
	ids = validIDs(ids)
	skillAreas := make([]taxonomy.SkillArea, 0, len(ids))
	if len(ids) == 0 {
		return skillAreas, nil
	}
	err := repo.selectWhere(ctx, &skillAreas, "skill_areas", skillAreaColumns, sq.Eq{"id": ids})
	return skillAreas, err
}

func (repo *taxonomyRepository) GetSubTasksByIDs(ctx context.Context, ids []string) ([]taxonomy.SubTask, error) {
	ids = validIDs(ids)
	subTasks := make([]taxonomy.SubTask, 0, len(ids))
	if len(ids) == 0 {
		return subTasks, nil
	}
	err := repo.selectWhere(ctx, &subTasks, "sub_tasks", subTaskColumns, sq.Eq{"id": ids})
	return subTasks, err
}

func (repo *taxonomyRepository) QuerySkillAreasByPrograms(ctx context.Context, programIDs []string) ([]taxonomy.SkillArea, error) {
	programIDs = validIDs(programIDs)
	skillAreas := make([]taxonomy.SkillArea, 0)
	if len(programIDs) == 0 {
		return skillAreas, nil
	}
	err := repo.selectWhere(ctx, &skillAreas, "skill_areas", skillAreaColumns, sq.Eq{"program_id": programIDs})
	return skillAreas, err
}

func (repo *taxonomyRepository) QuerySubTasksBySkillAreas(ctx context.Context, skillAreaIDs []string) ([]taxonomy.SubTask, error) {
	skillAreaIDs = validIDs(skillAreaIDs)
	subTasks := make([]taxonomy.SubTask, 0)
	if len(skillAreaIDs) == 0 {
		return subTasks, nil
	}
	err := repo.selectWhere(ctx, &subTasks, "sub_tasks", subTaskColumns, sq.Eq{"skill_area_id": skillAreaIDs})
	return subTasks, err
}
