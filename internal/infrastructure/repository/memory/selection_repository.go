package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/playoff-pool/internal/domain/playoff"
	"github.com/riskibarqy/playoff-pool/internal/domain/selection"
)

type SelectionRepository struct {
	store *Store
}

func NewSelectionRepository(store *Store) *SelectionRepository {
	return &SelectionRepository{store: store}
}

func (r *SelectionRepository) SaveRoundSelections(_ context.Context, round selection.RoundSelections) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.store.saveRoundSelections(round)
}

func (r *SelectionRepository) SaveRoundResults(_ context.Context, results selection.RoundResults) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.store.saveRoundResults(results)
}

func (r *SelectionRepository) SaveChampionsSelections(_ context.Context, round selection.ChampionsRound) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.store.saveChampionsSelections(round)
}

func (r *SelectionRepository) SaveChampionsResult(_ context.Context, year int, result selection.ChampionsResult) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.saveChampionsResult(year, result)
	return nil
}

func (r *SelectionRepository) ListSeries(_ context.Context, year int, round playoff.Round) ([]playoff.Series, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	data, ok := r.store.rounds[roundKey{year: year, round: round}]
	if !ok {
		return nil, nil
	}
	return append([]playoff.Series(nil), data.series...), nil
}

func (r *SelectionRepository) ListSelections(_ context.Context, year int, round playoff.Round) ([]selection.Selection, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	data, ok := r.store.rounds[roundKey{year: year, round: round}]
	if !ok {
		return nil, nil
	}
	return append([]selection.Selection(nil), data.selections...), nil
}

func (r *SelectionRepository) ListResults(_ context.Context, year int, round playoff.Round) ([]selection.Result, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	data, ok := r.store.rounds[roundKey{year: year, round: round}]
	if !ok {
		return nil, nil
	}
	return append([]selection.Result(nil), data.results...), nil
}

func (r *SelectionRepository) ListOvertimeSelections(_ context.Context, year int, round playoff.Round) (map[string]selection.Overtime, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make(map[string]selection.Overtime)
	if data, ok := r.store.rounds[roundKey{year: year, round: round}]; ok {
		for name, ot := range data.overtime {
			out[name] = ot
		}
	}
	return out, nil
}

func (r *SelectionRepository) GetOvertimeResult(_ context.Context, year int, round playoff.Round) (selection.Overtime, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	data, ok := r.store.rounds[roundKey{year: year, round: round}]
	if !ok || data.overtimeResult == nil {
		return 0, false, nil
	}
	return *data.overtimeResult, true, nil
}

func (r *SelectionRepository) ListChampionsSelections(_ context.Context, year int) ([]selection.ChampionsSelection, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	data := r.store.champions[year]
	if data == nil {
		return nil, nil
	}
	return append([]selection.ChampionsSelection(nil), data.selections...), nil
}

func (r *SelectionRepository) GetChampionsResult(_ context.Context, year int) (selection.ChampionsResult, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	data := r.store.champions[year]
	if data == nil || data.result == nil {
		return selection.ChampionsResult{}, false, nil
	}
	return *data.result, true, nil
}

func (r *SelectionRepository) ListMonikers(_ context.Context, year int) ([]selection.Moniker, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]selection.Moniker, 0, len(r.store.monikers[year]))
	for name, moniker := range r.store.monikers[year] {
		out = append(out, selection.Moniker{Individual: name, Moniker: moniker})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Individual < out[j].Individual })
	return out, nil
}

func (r *SelectionRepository) ListPreferences(_ context.Context, year int) ([]selection.Preference, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]selection.Preference, 0, len(r.store.preferences[year]))
	for _, p := range r.store.preferences[year] {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Individual < out[j].Individual })
	return out, nil
}

func (r *SelectionRepository) ListRounds(_ context.Context, year int) ([]playoff.Round, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []playoff.Round
	for key, data := range r.store.rounds {
		if key.year == year && len(data.selections) > 0 {
			out = append(out, key.round)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// ReplaceSeason restores the previous state of the store when any part of
// season fails to save.
func (r *SelectionRepository) ReplaceSeason(_ context.Context, season selection.Season) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	saved := r.store.snapshot()
	if err := r.store.replaceSeason(season); err != nil {
		r.store.restore(saved)
		return err
	}
	return nil
}
