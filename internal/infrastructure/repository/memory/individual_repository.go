package memory

import "context"

type IndividualRepository struct {
	store *Store
}

func NewIndividualRepository(store *Store) *IndividualRepository {
	return &IndividualRepository{store: store}
}

func (r *IndividualRepository) Exists(_ context.Context, name string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.store.known(name), nil
}
