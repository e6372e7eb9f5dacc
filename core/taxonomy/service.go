package taxonomy

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

type (
	// Repository is the read side of the Taxonomy Store.
	// The *ByIDs methods return the records that exist and silently omit unknown ids.
	Repository interface {
		GetProgramsByIDs(ctx context.Context, ids []string) ([]Program, error)
		GetSkillAreasByIDs(ctx context.Context, ids []string) ([]SkillArea, error)
		GetSubTasksByIDs(ctx context.Context, ids []string) ([]SubTask, error)
		QuerySkillAreasByPrograms(ctx context.Context, programIDs []string) ([]SkillArea, error)
		QuerySubTasksBySkillAreas(ctx context.Context, skillAreaIDs []string) ([]SubTask, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// SkillAreaExists reports whether a SkillArea with the given id exists.
func (svc *Service) SkillAreaExists(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, nil
	}
	found, err := svc.repo.GetSkillAreasByIDs(ctx, []string{id})
	if err != nil {
		return false, errors.Wrap(err, "finding skill area")
	}
	return len(found) > 0, nil
}

// SubTaskExists reports whether a SubTask with the given id exists.
func (svc *Service) SubTaskExists(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, nil
	}
	found, err := svc.repo.GetSubTasksByIDs(ctx, []string{id})
	if err != nil {
		return false, errors.Wrap(err, "finding sub task")
	}
	return len(found) > 0, nil
}

// Programs returns the programs with the given ids, in the order of ids.
func (svc *Service) Programs(ctx context.Context, ids []string) ([]Program, error) {
	found, err := svc.repo.GetProgramsByIDs(ctx, distinct(ids))
	if err != nil {
		return nil, errors.Wrap(err, "finding programs")
	}
	byID := make(map[string]Program, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	programs := make([]Program, 0, len(found))
	for _, id := range distinct(ids) {
		if p, ok := byID[id]; ok {
			programs = append(programs, p)
		}
	}
	return programs, nil
}

// Resolve looks up the given skill areas (with their programs) and subtasks.
// The two branches are independent and run concurrently.
func (svc *Service) Resolve(ctx context.Context, skillAreaIDs, subTaskIDs []string) (Lookup, error) {
	lookup := newLookup()
	var (
		skillAreas []SkillArea
		programs   []Program
		subTasks   []SubTask
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if skillAreas, err = svc.repo.GetSkillAreasByIDs(gctx, distinct(skillAreaIDs)); err != nil {
			return errors.Wrap(err, "resolving skill areas")
		}
		programIDs := make([]string, 0, len(skillAreas))
		for _, sa := range skillAreas {
			programIDs = append(programIDs, sa.ProgramID)
		}
		if programs, err = svc.repo.GetProgramsByIDs(gctx, distinct(programIDs)); err != nil {
			return errors.Wrap(err, "resolving programs")
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if subTasks, err = svc.repo.GetSubTasksByIDs(gctx, distinct(subTaskIDs)); err != nil {
			return errors.Wrap(err, "resolving sub tasks")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Lookup{}, err
	}

	for _, p := range programs {
		lookup.Programs[p.ID] = p
	}
	for _, sa := range skillAreas {
		lookup.SkillAreas[sa.ID] = sa
	}
	for _, st := range subTasks {
		lookup.SubTasks[st.ID] = st
	}
	return lookup, nil
}

// ScopeForPrograms returns the SkillAreas under the given programs and the SubTasks under those SkillAreas.
func (svc *Service) ScopeForPrograms(ctx context.Context, programIDs []string) (Scope, error) {
	scope := Scope{SkillAreas: []SkillArea{}, SubTasks: []SubTask{}}
	if len(programIDs) == 0 {
		return scope, nil
	}

	skillAreas, err := svc.repo.QuerySkillAreasByPrograms(ctx, distinct(programIDs))
	if err != nil {
		return Scope{}, errors.Wrap(err, "querying skill areas")
	}
	sort.SliceStable(skillAreas, func(i, j int) bool { return skillAreas[i].Name < skillAreas[j].Name })
	scope.SkillAreas = append(scope.SkillAreas, skillAreas...)
	if len(skillAreas) == 0 {
		return scope, nil
	}

	subTasks, err := svc.repo.QuerySubTasksBySkillAreas(ctx, scope.SkillAreaIDs())
	if err != nil {
		return Scope{}, errors.Wrap(err, "querying sub tasks")
	}
	sort.SliceStable(subTasks, func(i, j int) bool { return subTasks[i].Name < subTasks[j].Name })
	scope.SubTasks = append(scope.SubTasks, subTasks...)
	return scope, nil
}

// distinct drops empty and repeated ids, keeping the first occurrence order.
func distinct(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
