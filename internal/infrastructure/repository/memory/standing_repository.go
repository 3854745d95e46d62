package memory

import (
	"context"

	"github.com/riskibarqy/playoff-pool/internal/domain/standing"
)

type StandingRepository struct {
	store *Store
}

func NewStandingRepository(store *Store) *StandingRepository {
	return &StandingRepository{store: store}
}

func (r *StandingRepository) AddOtherPoints(_ context.Context, points []standing.OtherPoints) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.store.addOtherPoints(points)
}

func (r *StandingRepository) ListOtherPoints(_ context.Context, year int) ([]standing.OtherPoints, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []standing.OtherPoints
	for _, p := range r.store.otherPoints {
		if p.Year == year {
			out = append(out, p)
		}
	}
	return out, nil
}
