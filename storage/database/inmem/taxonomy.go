package inmemdb

import (
	"context"

	"github.com/ekta-foundation/casebook/core/taxonomy"
)

type taxonomyRepository struct {
	db *taxonomyTables
}

func NewTaxonomyRepository(db *DB) taxonomy.Repository {
	return &taxonomyRepository{db: db.taxonomy}
}

func (repo *taxonomyRepository) GetProgramsByIDs(_ context.Context, ids []string) ([]taxonomy.Program, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	programs := make([]taxonomy.Program, 0, len(ids))
	for _, id := range ids {
		if p, ok := repo.db.programs[id]; ok {
			programs = append(programs, p)
		}
	}
	return programs, nil
}

func (repo *taxonomyRepository) GetSkillAreasByIDs(_ context.Context, ids []string) ([]taxonomy.SkillArea, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	skillAreas := make([]taxonomy.SkillArea, 0, len(ids))
	for _, id := range ids {
		if sa, ok := repo.db.skillAreas[id]; ok {
			skillAreas = append(skillAreas, sa)
		}
	}
	return skillAreas, nil
}

func (repo *taxonomyRepository) GetSubTasksByIDs(_ context.Context, ids []string) ([]taxonomy.SubTask, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	subTasks := make([]taxonomy.SubTask, 0, len(ids))
	for _, id := range ids {
		if st, ok := repo.db.subTasks[id]; ok {
			subTasks = append(subTasks, st)
		}
	}
	return subTasks, nil
}

func (repo *taxonomyRepository) QuerySkillAreasByPrograms(_ context.Context, programIDs []string) ([]taxonomy.SkillArea, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	wanted := toSet(programIDs)
	skillAreas := make([]taxonomy.SkillArea, 0)
	for _, sa := range repo.db.skillAreas {
		if _, ok := wanted[sa.ProgramID]; ok {
			skillAreas = append(skillAreas, sa)
		}
	}
	return skillAreas, nil
}

func (repo *taxonomyRepository) QuerySubTasksBySkillAreas(_ context.Context, skillAreaIDs []string) ([]taxonomy.SubTask, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	wanted := toSet(skillAreaIDs)
	subTasks := make([]taxonomy.SubTask, 0)
	for _, st := range repo.db.subTasks {
		if _, ok := wanted[st.SkillAreaID]; ok {
			subTasks = append(subTasks, st)
		}
	}
	return subTasks, nil
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
