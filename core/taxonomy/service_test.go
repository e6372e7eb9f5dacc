package taxonomy_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekta-foundation/casebook/core/taxonomy"
	"github.com/ekta-foundation/casebook/storage/database/inmem"
	"github.com/ekta-foundation/casebook/tests"
)

func setup(t *testing.T) (*taxonomy.Service, *testutil.Fixture) {
	t.Helper()

	f := testutil.NewFixture(t)
	return taxonomy.NewService(inmemdb.NewTaxonomyRepository(f.DB)), f
}

func TestService_Exists(t *testing.T) {
	ctx := context.Background()
	svc, f := setup(t)

	tests := []struct {
		name   string
		exists func(ctx context.Context, id string) (bool, error)
		id     string
		want   bool
	}{
		{name: "skill area", exists: svc.SkillAreaExists, id: f.Expressive.ID, want: true},
		{name: "skill area: unknown", exists: svc.SkillAreaExists, id: "nope"},
		{name: "skill area: empty", exists: svc.SkillAreaExists, id: ""},
		{name: "skill area: sub task id", exists: svc.SkillAreaExists, id: f.Requests.ID},
		{name: "sub task", exists: svc.SubTaskExists, id: f.WashesHands.ID, want: true},
		{name: "sub task: unknown", exists: svc.SubTaskExists, id: "nope"},
		{name: "sub task: empty", exists: svc.SubTaskExists, id: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.exists(ctx, tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_Programs(t *testing.T) {
	svc, f := setup(t)

	programs, err := svc.Programs(context.Background(), []string{f.DailyLiving.ID, "nope", "", f.Communication.ID, f.DailyLiving.ID})
	require.NoError(t, err)
	require.Len(t, programs, 2)
	assert.Equal(t, f.DailyLiving.ID, programs[0].ID)
	assert.Equal(t, f.Communication.ID, programs[1].ID)

	programs, err = svc.Programs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, programs)
}

func TestService_Resolve(t *testing.T) {
	svc, f := setup(t)

	lookup, err := svc.Resolve(context.Background(),
		[]string{f.Receptive.ID, f.SelfCare.ID, "nope", ""},
		[]string{f.Requests.ID, f.Requests.ID, "nope"},
	)
	require.NoError(t, err)

	sa, ok := lookup.SkillArea(f.Receptive.ID)
	require.True(t, ok)
	assert.Equal(t, "Receptive Language", sa.Name)

	p, ok := lookup.ProgramOf(f.SelfCare.ID)
	require.True(t, ok)
	assert.Equal(t, "Daily Living", p.Name)

	st, ok := lookup.SubTask(f.Requests.ID)
	require.True(t, ok)
	assert.Equal(t, "Requests Objects", st.Name)

	_, ok = lookup.SkillArea("nope")
	assert.False(t, ok)
	_, ok = lookup.SubTask("")
	assert.False(t, ok)
	_, ok = lookup.ProgramOf(f.Expressive.ID) // not requested
	assert.False(t, ok)
	assert.Len(t, lookup.SubTasks, 1)
}

type failingRepo struct {
	taxonomy.Repository
}

func (failingRepo) GetSkillAreasByIDs(context.Context, []string) ([]taxonomy.SkillArea, error) {
	return nil, errors.New("connection refused")
}

func (failingRepo) GetSubTasksByIDs(context.Context, []string) ([]taxonomy.SubTask, error) {
	return []taxonomy.SubTask{}, nil
}

func TestService_Resolve_StoreError(t *testing.T) {
	svc := taxonomy.NewService(failingRepo{})

	_, err := svc.Resolve(context.Background(), []string{"sa"}, []string{"st"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolving skill areas")
}

func TestService_ScopeForPrograms(t *testing.T) {
	svc, f := setup(t)

	scope, err := svc.ScopeForPrograms(context.Background(), []string{f.Communication.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{f.Expressive.ID, f.Receptive.ID}, scope.SkillAreaIDs())
	// sorted by name
	assert.Equal(t, []string{f.Instructions.ID, f.NamesPictures.ID, f.Requests.ID}, scope.SubTaskIDs())

	scope, err = svc.ScopeForPrograms(context.Background(), []string{f.Communication.ID, f.DailyLiving.ID})
	require.NoError(t, err)
	assert.Len(t, scope.SkillAreas, 3)
	assert.Len(t, scope.SubTasks, 4)

	for _, ids := range [][]string{nil, {"nope"}} {
		scope, err = svc.ScopeForPrograms(context.Background(), ids)
		require.NoError(t, err)
		assert.NotNil(t, scope.SkillAreas)
		assert.Empty(t, scope.SkillAreas)
		assert.Empty(t, scope.SubTasks)
	}
}
