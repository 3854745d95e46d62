package memory

import (
	"maps"
	"sync"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/playoff-pool/internal/domain/individual"
	"github.com/riskibarqy/playoff-pool/internal/domain/playoff"
	"github.com/riskibarqy/playoff-pool/internal/domain/selection"
	"github.com/riskibarqy/playoff-pool/internal/domain/standing"
)

// Store is the shared state behind the in-memory repositories, so that
// individuals registered by one repository are visible to the others.
type Store struct {
	mu          sync.RWMutex
	individuals map[string]individual.Individual
	rounds      map[roundKey]*roundData
	champions   map[int]*championsData
	otherPoints []standing.OtherPoints
	monikers    map[int]map[string]string
	preferences map[int]map[string]selection.Preference
}

type roundKey struct {
	year  int
	round playoff.Round
}

type roundData struct {
	series         []playoff.Series
	selections     []selection.Selection
	results        []selection.Result
	overtime       map[string]selection.Overtime
	overtimeResult *selection.Overtime
}

type championsData struct {
	selections []selection.ChampionsSelection
	result     *selection.ChampionsResult
}

func NewStore() *Store {
	return &Store{
		individuals: make(map[string]individual.Individual),
		rounds:      make(map[roundKey]*roundData),
		champions:   make(map[int]*championsData),
		monikers:    make(map[int]map[string]string),
		preferences: make(map[int]map[string]selection.Preference),
	}
}

// register must be called with mu held.
func (s *Store) register(people []individual.Individual) {
	for _, p := range people {
		name := p.Name()
		if _, ok := s.individuals[name]; !ok {
			s.individuals[name] = p
		}
	}
}

func (s *Store) known(name string) bool {
	_, ok := s.individuals[name]
	return ok
}

func (s *Store) knownOrPending(name string, pending []individual.Individual) bool {
	if s.known(name) {
		return true
	}
	for _, p := range pending {
		if p.Name() == name {
			return true
		}
	}
	return false
}

// The write helpers below must be called with mu held.

func (s *Store) saveRoundSelections(round selection.RoundSelections) error {
	key := roundKey{year: round.Year, round: round.Round}
	if data, ok := s.rounds[key]; ok && len(data.selections) > 0 {
		return crerr.Wrapf(playoff.ErrDuplicateEntry, "%d round %s already has selections", round.Year, round.Round)
	}

	series := make(map[selection.Key]struct{}, len(round.Series))
	for _, ps := range round.Series {
		series[selection.Key{Conference: ps.Conference, Series: ps.Name()}] = struct{}{}
	}
	for _, sel := range round.Selections {
		if _, ok := series[sel.Key()]; !ok {
			return crerr.Wrapf(playoff.ErrUnknownSeries, "selection of %s for %s %s", sel.Individual, sel.Conference, sel.Series)
		}
	}

	for _, sel := range round.Selections {
		if !s.knownOrPending(sel.Individual, round.Individuals) {
			return crerr.Wrapf(playoff.ErrMissingIndividual, "selection of %q", sel.Individual)
		}
	}
	s.register(round.Individuals)

	overtime := make(map[string]selection.Overtime, len(round.Overtime))
	for name, ot := range round.Overtime {
		overtime[name] = ot
	}
	s.rounds[key] = &roundData{
		series:     append([]playoff.Series(nil), round.Series...),
		selections: append([]selection.Selection(nil), round.Selections...),
		overtime:   overtime,
	}

	if len(round.Monikers) > 0 && s.monikers[round.Year] == nil {
		s.monikers[round.Year] = make(map[string]string)
	}
	for _, m := range round.Monikers {
		s.monikers[round.Year][m.Individual] = m.Moniker
	}
	if len(round.Preferences) > 0 && s.preferences[round.Year] == nil {
		s.preferences[round.Year] = make(map[string]selection.Preference)
	}
	for _, p := range round.Preferences {
		merged := s.preferences[round.Year][p.Individual]
		merged.Individual = p.Individual
		if p.Favourite != "" {
			merged.Favourite = p.Favourite
		}
		if p.Cheering != "" {
			merged.Cheering = p.Cheering
		}
		s.preferences[round.Year][p.Individual] = merged
	}
	return nil
}

func (s *Store) saveRoundResults(results selection.RoundResults) error {
	data, ok := s.rounds[roundKey{year: results.Year, round: results.Round}]
	if !ok && len(results.Results) > 0 {
		return crerr.Wrapf(playoff.ErrUnknownSeries, "no series stored for %d round %s", results.Year, results.Round)
	}
	if !ok {
		data = &roundData{}
		s.rounds[roundKey{year: results.Year, round: results.Round}] = data
	}

	series := make(map[selection.Key]struct{}, len(data.series))
	for _, ps := range data.series {
		series[selection.Key{Conference: ps.Conference, Series: ps.Name()}] = struct{}{}
	}
	for _, res := range results.Results {
		if _, ok := series[res.Key()]; !ok {
			return crerr.Wrapf(playoff.ErrUnknownSeries, "result for %s %s", res.Conference, res.Series)
		}
	}

	data.results = append([]selection.Result(nil), results.Results...)
	data.overtimeResult = nil
	if results.Overtime != nil {
		ot := *results.Overtime
		data.overtimeResult = &ot
	}
	return nil
}

func (s *Store) saveChampionsSelections(round selection.ChampionsRound) error {
	data := s.champions[round.Year]
	if data != nil && len(data.selections) > 0 {
		return crerr.Wrapf(playoff.ErrDuplicateEntry, "%d champions round already has selections", round.Year)
	}

	for _, sel := range round.Selections {
		if !s.knownOrPending(sel.Individual, round.Individuals) {
			return crerr.Wrapf(playoff.ErrMissingIndividual, "champions selection of %q", sel.Individual)
		}
	}
	s.register(round.Individuals)
	if data == nil {
		data = &championsData{}
		s.champions[round.Year] = data
	}
	data.selections = append([]selection.ChampionsSelection(nil), round.Selections...)
	return nil
}

func (s *Store) saveChampionsResult(year int, result selection.ChampionsResult) {
	data := s.champions[year]
	if data == nil {
		data = &championsData{}
		s.champions[year] = data
	}
	data.result = &result
}

func (s *Store) addOtherPoints(points []standing.OtherPoints) error {
	for _, p := range points {
		if !s.known(p.Individual) {
			return crerr.Wrapf(playoff.ErrMissingIndividual, "other points for %q", p.Individual)
		}
	}
	s.otherPoints = append(s.otherPoints, points...)
	return nil
}

func (s *Store) deleteYear(year int) {
	for key := range s.rounds {
		if key.year == year {
			delete(s.rounds, key)
		}
	}
	delete(s.champions, year)
	delete(s.monikers, year)
	delete(s.preferences, year)

	kept := make([]standing.OtherPoints, 0, len(s.otherPoints))
	for _, p := range s.otherPoints {
		if p.Year != year {
			kept = append(kept, p)
		}
	}
	s.otherPoints = kept
}

func (s *Store) replaceSeason(season selection.Season) error {
	s.deleteYear(season.Year)
	for _, round := range season.Rounds {
		if err := s.saveRoundSelections(round); err != nil {
			return err
		}
	}
	for _, results := range season.Results {
		if err := s.saveRoundResults(results); err != nil {
			return err
		}
	}
	if season.Champions != nil {
		if err := s.saveChampionsSelections(*season.Champions); err != nil {
			return err
		}
	}
	if season.ChampionsResult != nil {
		s.saveChampionsResult(season.Year, *season.ChampionsResult)
	}
	return s.addOtherPoints(season.OtherPoints)
}

// storeState is a shallow copy of the store. replaceSeason only mutates
// values it created after deleteYear, so the copy is enough to undo it.
type storeState struct {
	individuals map[string]individual.Individual
	rounds      map[roundKey]*roundData
	champions   map[int]*championsData
	otherPoints []standing.OtherPoints
	monikers    map[int]map[string]string
	preferences map[int]map[string]selection.Preference
}

func (s *Store) snapshot() storeState {
	return storeState{
		individuals: maps.Clone(s.individuals),
		rounds:      maps.Clone(s.rounds),
		champions:   maps.Clone(s.champions),
		otherPoints: append([]standing.OtherPoints(nil), s.otherPoints...),
		monikers:    maps.Clone(s.monikers),
		preferences: maps.Clone(s.preferences),
	}
}

func (s *Store) restore(state storeState) {
	s.individuals = state.individuals
	s.rounds = state.rounds
	s.champions = state.champions
	s.otherPoints = state.otherPoints
	s.monikers = state.monikers
	s.preferences = state.preferences
}
