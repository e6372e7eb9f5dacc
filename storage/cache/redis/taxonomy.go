package rediscache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/ekta-foundation/casebook/core"
	"github.com/ekta-foundation/casebook/core/taxonomy"
)

// Key prefixes
const (
	prefixProgram   = "taxonomy:program:"
	prefixSkillArea = "taxonomy:skill_area:"
	prefixSubTask   = "taxonomy:sub_task:"
)

const DefaultTTL = 10 * time.Minute

// NewClient connects to the redis server described by conf.
func NewClient(ctx context.Context, conf core.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Password: conf.Password,
		DB:       conf.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "pinging redis")
	}
	return client, nil
}

// taxonomyRepository is a read-through cache in front of a taxonomy.Repository.
// Records are cached by id; the by-parent queries always hit the underlying store.
// Cache failures are logged and fall back to the store.
type taxonomyRepository struct {
	next   taxonomy.Repository
	client redis.UniversalClient
	ttl    time.Duration
	logger core.Logger
}

func NewTaxonomyRepository(next taxonomy.Repository, client redis.UniversalClient, ttl time.Duration, logger core.Logger) taxonomy.Repository {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &taxonomyRepository{next: next, client: client, ttl: ttl, logger: logger}
}

func (repo *taxonomyRepository) GetProgramsByIDs(ctx context.Context, ids []string) ([]taxonomy.Program, error) {
	return readThrough(ctx, repo, prefixProgram, ids, repo.next.GetProgramsByIDs, func(p taxonomy.Program) string { return p.ID })
}

func (repo *taxonomyRepository) GetSkillAreasByIDs(ctx context.Context, ids []string) ([]taxonomy.SkillArea, error) {
	return readThrough(ctx, repo, prefixSkillArea, ids, repo.next.GetSkillAreasByIDs, func(sa taxonomy.SkillArea) string { return sa.ID })
}

func (repo *taxonomyRepository) GetSubTasksByIDs(ctx context.Context, ids []string) ([]taxonomy.SubTask, error) {
	return readThrough(ctx, repo, prefixSubTask, ids, repo.next.GetSubTasksByIDs, func(st taxonomy.SubTask) string { return st.ID })
}

func (repo *taxonomyRepository) QuerySkillAreasByPrograms(ctx context.Context, programIDs []string) ([]taxonomy.SkillArea, error) {
	return repo.next.QuerySkillAreasByPrograms(ctx, programIDs)
}

func (repo *taxonomyRepository) QuerySubTasksBySkillAreas(ctx context.Context, skillAreaIDs []string) ([]taxonomy.SubTask, error) {
	return repo.next.QuerySubTasksBySkillAreas(ctx, skillAreaIDs)
}

// readThrough serves ids from the cache and loads the misses from the store, caching what it finds.
// Ids unknown to the store are not cached.
func readThrough[T any](
	ctx context.Context,
	repo *taxonomyRepository,
	prefix string,
	ids []string,
	load func(context.Context, []string) ([]T, error),
	idOf func(T) string,
) ([]T, error) {
	found := make([]T, 0, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, prefix+id)
	}

	missing := ids
	vals, err := repo.client.MGet(ctx, keys...).Result()
	if err != nil {
		repo.logger.Warn("taxonomy cache read failed", err, map[string]interface{}{"prefix": prefix})
	} else {
		missing = make([]string, 0)
		for i, val := range vals {
			s, ok := val.(string)
			if !ok {
				missing = append(missing, ids[i])
				continue
			}
			var rec T
			if err := json.Unmarshal([]byte(s), &rec); err != nil {
				missing = append(missing, ids[i])
				continue
			}
			found = append(found, rec)
		}
	}
	if len(missing) == 0 {
		return found, nil
	}

	loaded, err := load(ctx, missing)
	if err != nil {
		return nil, err
	}
	found = append(found, loaded...)

	pipe := repo.client.Pipeline()
	for _, rec := range loaded {
		data, err := json.Marshal(rec)
		if err != nil {
			return nil, errors.Wrap(err, "encoding cached record")
		}
		pipe.Set(ctx, prefix+idOf(rec), data, repo.ttl)
	}
	if _, err = pipe.Exec(ctx); err != nil {
		repo.logger.Warn("taxonomy cache write failed", err, map[string]interface{}{"prefix": prefix})
	}
	return found, nil
}
