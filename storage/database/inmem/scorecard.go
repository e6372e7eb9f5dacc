package inmemdb

import (
	"context"

	"github.com/ekta-foundation/casebook/core/scorecard"
)

type scoreCardRepository struct {
	db *scoreCardTable
}

func NewScoreCardRepository(db *DB) scorecard.Repository {
	return &scoreCardRepository{db: db.scoreCard}
}

func (repo *scoreCardRepository) CreateScoreCard(_ context.Context, sc scorecard.ScoreCard) (scorecard.ScoreCard, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	sc.ID = newID("")
	repo.db.t = append(repo.db.t, sc)
	return sc, nil
}

func (repo *scoreCardRepository) QueryScoreCards(_ context.Context, filter scorecard.Filter) ([]scorecard.ScoreCard, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	cards := make([]scorecard.ScoreCard, 0)
	for _, sc := range repo.db.t {
		if filter.Match(sc) {
			cards = append(cards, sc)
		}
	}
	return cards, nil
}
