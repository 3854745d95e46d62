package usecase

import (
	"context"
	"errors"
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc/iter"

	"github.com/riskibarqy/playoff-pool/internal/domain/playoff"
	"github.com/riskibarqy/playoff-pool/internal/domain/rules"
	"github.com/riskibarqy/playoff-pool/internal/domain/scoring"
	"github.com/riskibarqy/playoff-pool/internal/domain/selection"
	"github.com/riskibarqy/playoff-pool/internal/domain/standing"
	"github.com/riskibarqy/playoff-pool/internal/platform/logging"
)

type ScoringService struct {
	selectionRepo selection.Repository
	standingRepo  standing.Repository
	logger        *logging.Logger
}

func NewScoringService(
	selectionRepo selection.Repository,
	standingRepo standing.Repository,
	logger *logging.Logger,
) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScoringService{
		selectionRepo: selectionRepo,
		standingRepo:  standingRepo,
		logger:        logger,
	}
}

func (s *ScoringService) Rules(ctx context.Context, year int) (rules.RuleSet, error) {
	_, span := startUsecaseSpan(ctx, "usecase.ScoringService.Rules")
	defer span.End()

	return rules.RulesFor(year)
}

// RoundPoints scores a series round. Every series must have a complete
// result on record, otherwise ErrIncompleteRound is returned.
func (s *ScoringService) RoundPoints(ctx context.Context, ref RoundRef) (map[string]int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.RoundPoints")
	defer span.End()

	if err := validateInput(ctx, ref); err != nil {
		return nil, err
	}
	if err := playoff.ValidateRound(ref.Year, ref.Round); err != nil {
		return nil, err
	}
	if ref.Round == playoff.RoundChampions {
		return nil, fmt.Errorf("%w: champions round is scored by ChampionsPoints", ErrInvalidInput)
	}
	rs, err := rules.RulesFor(ref.Year)
	if err != nil {
		return nil, err
	}

	series, err := s.selectionRepo.ListSeries(ctx, ref.Year, ref.Round)
	if err != nil {
		return nil, fmt.Errorf("list series: %w", err)
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("%w: no series stored for %d round %s", ErrNotFound, ref.Year, ref.Round)
	}
	results, err := s.selectionRepo.ListResults(ctx, ref.Year, ref.Round)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	if err := requireCompleteResults(series, results); err != nil {
		return nil, err
	}

	picks, err := s.selectionRepo.ListSelections(ctx, ref.Year, ref.Round)
	if err != nil {
		return nil, fmt.Errorf("list selections: %w", err)
	}
	overtime, err := s.selectionRepo.ListOvertimeSelections(ctx, ref.Year, ref.Round)
	if err != nil {
		return nil, fmt.Errorf("list overtime selections: %w", err)
	}
	input := scoring.RoundInput{
		Round:      ref.Round,
		Selections: picks,
		Results:    results,
		Overtime:   overtime,
	}
	actual, ok, err := s.selectionRepo.GetOvertimeResult(ctx, ref.Year, ref.Round)
	if err != nil {
		return nil, fmt.Errorf("get overtime result: %w", err)
	}
	if ok {
		input.OvertimeResult = &actual
	}

	points := scoring.ScoreRound(input, rs)
	s.logger.DebugContext(ctx, "round scored", "year", ref.Year, "round", ref.Round.String(), "individuals", len(points))
	return points, nil
}

// ChampionsPoints scores the champions round. Participants without points
// map to nil.
func (s *ScoringService) ChampionsPoints(ctx context.Context, year int) (map[string]*int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ChampionsPoints")
	defer span.End()

	rs, err := rules.RulesFor(year)
	if err != nil {
		return nil, err
	}
	picks, err := s.selectionRepo.ListChampionsSelections(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("list champions selections: %w", err)
	}
	result, ok, err := s.selectionRepo.GetChampionsResult(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("get champions result: %w", err)
	}
	if !ok {
		result = selection.ChampionsResult{}
	}
	return scoring.ScoreChampions(picks, result, rs), nil
}

// RoundStandings ranks one series round including its manual adjustments.
func (s *ScoringService) RoundStandings(ctx context.Context, ref RoundRef) ([]standing.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.RoundStandings")
	defer span.End()

	points, err := s.RoundPoints(ctx, ref)
	if err != nil {
		return nil, err
	}
	other, err := s.otherPointsByRound(ctx, ref.Year)
	if err != nil {
		return nil, err
	}
	return scoring.TotalPoints(points, other[ref.Round]), nil
}

// SeasonStandings builds the season table from every round with picks on
// record. Rounds still waiting for results are left out.
func (s *ScoringService) SeasonStandings(ctx context.Context, year int) (standing.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.SeasonStandings")
	defer span.End()

	if err := playoff.ValidateYear(year); err != nil {
		return standing.Season{}, err
	}
	if _, err := rules.RulesFor(year); err != nil {
		return standing.Season{}, err
	}

	stored, err := s.selectionRepo.ListRounds(ctx, year)
	if err != nil {
		return standing.Season{}, fmt.Errorf("list rounds: %w", err)
	}

	series := make([]playoff.Round, 0, len(stored))
	for _, round := range stored {
		if round != playoff.RoundChampions {
			series = append(series, round)
		}
	}
	scored, err := iter.MapErr(series, func(round *playoff.Round) (roundScore, error) {
		points, err := s.RoundPoints(ctx, RoundRef{Year: year, Round: *round})
		if errors.Is(err, playoff.ErrIncompleteRound) {
			s.logger.InfoContext(ctx, "skip round without complete results", "year", year, "round", round.String())
			return roundScore{round: *round}, nil
		}
		if err != nil {
			return roundScore{}, err
		}
		return roundScore{round: *round, points: points}, nil
	})
	if err != nil {
		return standing.Season{}, err
	}

	season := standing.Season{Year: year}
	input := scoring.SeasonInput{Rounds: make(map[playoff.Round]map[string]int)}
	for _, score := range scored {
		if score.points == nil {
			continue
		}
		input.Rounds[score.round] = score.points
		season.Rounds = append(season.Rounds, score.round)
	}

	input.Other, err = s.otherPointsByRound(ctx, year)
	if err != nil {
		return standing.Season{}, err
	}
	input.Champions, err = s.ChampionsPoints(ctx, year)
	if err != nil {
		return standing.Season{}, err
	}

	season.Rows = scoring.SeasonTotals(input)
	if err := s.decorateRows(ctx, year, season.Rows); err != nil {
		return standing.Season{}, err
	}

	s.logger.InfoContext(ctx, "season standings computed", "year", year, "rounds", len(season.Rounds), "individuals", len(season.Rows))
	return season, nil
}

type roundScore struct {
	round  playoff.Round
	points map[string]int
}

func (s *ScoringService) otherPointsByRound(ctx context.Context, year int) (map[playoff.Round]map[string]int, error) {
	items, err := s.standingRepo.ListOtherPoints(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("list other points: %w", err)
	}
	out := make(map[playoff.Round]map[string]int)
	for _, item := range items {
		if out[item.Round] == nil {
			out[item.Round] = make(map[string]int)
		}
		out[item.Round][item.Individual] += item.Points
	}
	return out, nil
}

func (s *ScoringService) decorateRows(ctx context.Context, year int, rows []standing.SeasonRow) error {
	monikers, err := s.selectionRepo.ListMonikers(ctx, year)
	if err != nil {
		return fmt.Errorf("list monikers: %w", err)
	}
	preferences, err := s.selectionRepo.ListPreferences(ctx, year)
	if err != nil {
		return fmt.Errorf("list preferences: %w", err)
	}

	byMoniker := make(map[string]string, len(monikers))
	for _, m := range monikers {
		byMoniker[m.Individual] = m.Moniker
	}
	byPreference := make(map[string]selection.Preference, len(preferences))
	for _, p := range preferences {
		byPreference[p.Individual] = p
	}
	for i := range rows {
		rows[i].Moniker = byMoniker[rows[i].Individual]
		rows[i].Favourite = byPreference[rows[i].Individual].Favourite
		rows[i].Cheering = byPreference[rows[i].Individual].Cheering
	}
	return nil
}

func requireCompleteResults(series []playoff.Series, results []selection.Result) error {
	byKey := make(map[selection.Key]selection.Result, len(results))
	for _, res := range results {
		byKey[res.Key()] = res
	}
	for _, s := range series {
		res, ok := byKey[selection.Key{Conference: s.Conference, Series: s.Name()}]
		if !ok || !res.Complete() {
			return crerr.Wrapf(playoff.ErrIncompleteRound, "%d round %s series %s has no result", s.Year, s.Round, s.Name())
		}
	}
	return nil
}
