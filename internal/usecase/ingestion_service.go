package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/playoff-pool/internal/domain/individual"
	"github.com/riskibarqy/playoff-pool/internal/domain/playoff"
	"github.com/riskibarqy/playoff-pool/internal/domain/selection"
	"github.com/riskibarqy/playoff-pool/internal/domain/standing"
	"github.com/riskibarqy/playoff-pool/internal/infrastructure/spreadsheet"
	"github.com/riskibarqy/playoff-pool/internal/platform/logging"
)

const maxRemakeWorkers = 8

// RoundRef names one round sheet of one season.
type RoundRef struct {
	Year  int           `validate:"required"`
	Round playoff.Round `validate:"gte=0,lte=5"`
}

type RemakeInput struct {
	From int `validate:"required"`
	To   int `validate:"required,gtefield=From"`
}

type ImportSummary struct {
	Year        int           `json:"year"`
	Round       playoff.Round `json:"round"`
	Individuals int           `json:"individuals"`
	Selections  int           `json:"selections"`
}

type RemakeSummary struct {
	From        int `json:"from"`
	To          int `json:"to"`
	WorkerCount int `json:"worker_count"`
	SheetCount  int `json:"sheet_count"`
	Rounds      int `json:"rounds"`
	Results     int `json:"results"`
	OtherPoints int `json:"other_points"`
}

type IngestionService struct {
	dataDir        string
	workers        int
	individualRepo individual.Repository
	selectionRepo  selection.Repository
	standingRepo   standing.Repository
	logger         *logging.Logger
}

func NewIngestionService(
	dataDir string,
	workers int,
	individualRepo individual.Repository,
	selectionRepo selection.Repository,
	standingRepo standing.Repository,
	logger *logging.Logger,
) *IngestionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &IngestionService{
		dataDir:        dataDir,
		workers:        workers,
		individualRepo: individualRepo,
		selectionRepo:  selectionRepo,
		standingRepo:   standingRepo,
		logger:         logger,
	}
}

// ImportSelections stores the picks of one round sheet. The Results row, if
// any, is ignored here.
func (s *IngestionService) ImportSelections(ctx context.Context, ref RoundRef) (ImportSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.ImportSelections")
	defer span.End()

	sheet, err := s.loadRoundSheet(ctx, ref)
	if err != nil {
		return ImportSummary{}, err
	}
	summary, err := s.saveSelections(ctx, sheet)
	if err != nil {
		return ImportSummary{}, err
	}

	s.logger.InfoContext(ctx, "selections imported",
		"year", summary.Year,
		"round", summary.Round.String(),
		"individuals", summary.Individuals,
		"selections", summary.Selections,
	)
	return summary, nil
}

// ImportResults stores the Results row of one round sheet, replacing any
// outcome already on record for the round.
func (s *IngestionService) ImportResults(ctx context.Context, ref RoundRef) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.ImportResults")
	defer span.End()

	sheet, err := s.loadRoundSheet(ctx, ref)
	if err != nil {
		return err
	}
	saved, err := s.saveResults(ctx, sheet)
	if err != nil {
		return err
	}
	if !saved {
		return fmt.Errorf("%w: no Results row in %s", ErrNotFound, sheet.task.path)
	}

	s.logger.InfoContext(ctx, "results imported", "year", ref.Year, "round", ref.Round.String())
	return nil
}

// ImportOtherPoints appends the manual adjustments of one season.
func (s *IngestionService) ImportOtherPoints(ctx context.Context, year int) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.ImportOtherPoints")
	defer span.End()

	if err := playoff.ValidateYear(year); err != nil {
		return 0, err
	}
	path := spreadsheet.OtherPointsFile(s.dataDir, year)
	if !spreadsheet.Exists(path) {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	sheet, err := parseSheet(sheetTask{year: year, path: path, otherPoints: true})
	if err != nil {
		return 0, err
	}
	if err := s.requireIndividuals(ctx, sheet.other, nil); err != nil {
		return 0, err
	}
	if err := s.standingRepo.AddOtherPoints(ctx, sheet.other); err != nil {
		return 0, fmt.Errorf("add other points for %d: %w", year, err)
	}

	s.logger.InfoContext(ctx, "other points imported", "year", year, "rows", len(sheet.other))
	return len(sheet.other), nil
}

// Remake rebuilds every season in [From, To] from the data directory. Sheets
// are parsed concurrently and nothing is written until all of them parse and
// every other points row names a known individual. Each season is then
// replaced in a single repository call.
func (s *IngestionService) Remake(ctx context.Context, input RemakeInput) (RemakeSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.Remake")
	defer span.End()

	if err := validateInput(ctx, input); err != nil {
		return RemakeSummary{}, err
	}
	if err := playoff.ValidateYear(input.From); err != nil {
		return RemakeSummary{}, err
	}

	tasks := s.discoverSheets(input.From, input.To)
	summary := RemakeSummary{
		From:        input.From,
		To:          input.To,
		WorkerCount: normalizeWorkerCount(s.workers, len(tasks)),
		SheetCount:  len(tasks),
	}

	sheets, err := parseSheets(tasks, summary.WorkerCount)
	if err != nil {
		return RemakeSummary{}, err
	}

	seasons := make([]selection.Season, 0, input.To-input.From+1)
	for year := input.From; year <= input.To; year++ {
		season, registered := assembleSeason(year, sheets)
		if err := s.requireIndividuals(ctx, season.OtherPoints, registered); err != nil {
			return RemakeSummary{}, fmt.Errorf("check %d other points: %w", year, err)
		}
		seasons = append(seasons, season)
	}

	for _, season := range seasons {
		if err := s.selectionRepo.ReplaceSeason(ctx, season); err != nil {
			return RemakeSummary{}, fmt.Errorf("replace %d: %w", season.Year, err)
		}
		summary.Rounds += len(season.Rounds)
		summary.Results += len(season.Results)
		if season.Champions != nil {
			summary.Rounds++
		}
		if season.ChampionsResult != nil {
			summary.Results++
		}
		summary.OtherPoints += len(season.OtherPoints)
		s.logger.InfoContext(ctx, "season rebuilt", "year", season.Year)
	}

	s.logger.InfoContext(ctx, "remake finished",
		"from", summary.From,
		"to", summary.To,
		"sheets", summary.SheetCount,
		"rounds", summary.Rounds,
		"results", summary.Results,
		"other_points", summary.OtherPoints,
	)
	return summary, nil
}

// requireIndividuals checks that every name in points is stored already or
// registered by the sheets being imported alongside.
func (s *IngestionService) requireIndividuals(ctx context.Context, points []standing.OtherPoints, registered map[string]struct{}) error {
	checked := make(map[string]struct{}, len(points))
	for _, p := range points {
		if _, ok := checked[p.Individual]; ok {
			continue
		}
		checked[p.Individual] = struct{}{}
		if _, ok := registered[p.Individual]; ok {
			continue
		}

		exists, err := s.individualRepo.Exists(ctx, p.Individual)
		if err != nil {
			return fmt.Errorf("check individual %q: %w", p.Individual, err)
		}
		if !exists {
			return fmt.Errorf("%w: %q has no selections on record", playoff.ErrMissingIndividual, p.Individual)
		}
	}
	return nil
}

// assembleSeason collects the parsed sheets of year into one season and
// returns the names its pick sheets register.
func assembleSeason(year int, sheets []parsedSheet) (selection.Season, map[string]struct{}) {
	season := selection.Season{Year: year}
	registered := make(map[string]struct{})
	register := func(people []individual.Individual) {
		for _, p := range people {
			registered[p.Name()] = struct{}{}
		}
	}

	for _, sheet := range sheets {
		if sheet.task.year != year {
			continue
		}
		switch {
		case sheet.task.otherPoints:
			season.OtherPoints = append(season.OtherPoints, sheet.other...)
		case sheet.champions != nil:
			round := sheet.champions.Round
			season.Champions = &round
			season.ChampionsResult = sheet.champions.Result
			register(round.Individuals)
		default:
			season.Rounds = append(season.Rounds, sheet.round.Selections)
			if sheet.round.HasResults {
				season.Results = append(season.Results, sheet.round.Results)
			}
			register(sheet.round.Selections.Individuals)
		}
	}
	return season, registered
}

func (s *IngestionService) loadRoundSheet(ctx context.Context, ref RoundRef) (parsedSheet, error) {
	if err := validateInput(ctx, ref); err != nil {
		return parsedSheet{}, err
	}
	if err := playoff.ValidateRound(ref.Year, ref.Round); err != nil {
		return parsedSheet{}, err
	}
	path := spreadsheet.RoundFile(s.dataDir, ref.Year, ref.Round)
	if !spreadsheet.Exists(path) {
		return parsedSheet{}, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return parseSheet(sheetTask{year: ref.Year, round: ref.Round, path: path})
}

func (s *IngestionService) saveSelections(ctx context.Context, sheet parsedSheet) (ImportSummary, error) {
	summary := ImportSummary{Year: sheet.task.year, Round: sheet.task.round}

	if sheet.champions != nil {
		round := sheet.champions.Round
		if err := s.selectionRepo.SaveChampionsSelections(ctx, round); err != nil {
			return ImportSummary{}, fmt.Errorf("save %d champions selections: %w", summary.Year, err)
		}
		summary.Individuals = len(round.Individuals)
		summary.Selections = len(round.Selections)
		return summary, nil
	}

	round := sheet.round.Selections
	if err := s.selectionRepo.SaveRoundSelections(ctx, round); err != nil {
		return ImportSummary{}, fmt.Errorf("save %d round %s selections: %w", summary.Year, summary.Round, err)
	}
	summary.Individuals = len(round.Individuals)
	summary.Selections = len(round.Selections)
	return summary, nil
}

// saveResults reports false when the sheet carries no Results row.
func (s *IngestionService) saveResults(ctx context.Context, sheet parsedSheet) (bool, error) {
	year, round := sheet.task.year, sheet.task.round

	if sheet.champions != nil {
		if sheet.champions.Result == nil {
			return false, nil
		}
		if err := s.selectionRepo.SaveChampionsResult(ctx, year, *sheet.champions.Result); err != nil {
			return false, fmt.Errorf("save %d champions result: %w", year, err)
		}
		return true, nil
	}

	if !sheet.round.HasResults {
		return false, nil
	}
	if err := s.selectionRepo.SaveRoundResults(ctx, sheet.round.Results); err != nil {
		return false, fmt.Errorf("save %d round %s results: %w", year, round, err)
	}
	return true, nil
}

// discoverSheets lists the sheets present for each year, rounds in play order
// followed by the other points sheet.
func (s *IngestionService) discoverSheets(from, to int) []sheetTask {
	var tasks []sheetTask
	for year := from; year <= to; year++ {
		for _, round := range playoff.Rounds(year) {
			path := spreadsheet.RoundFile(s.dataDir, year, round)
			if spreadsheet.Exists(path) {
				tasks = append(tasks, sheetTask{year: year, round: round, path: path})
			}
		}
		path := spreadsheet.OtherPointsFile(s.dataDir, year)
		if spreadsheet.Exists(path) {
			tasks = append(tasks, sheetTask{year: year, path: path, otherPoints: true})
		}
	}
	return tasks
}

type sheetTask struct {
	year        int
	round       playoff.Round
	path        string
	otherPoints bool
}

// parsedSheet holds exactly one of round, champions or other.
type parsedSheet struct {
	task      sheetTask
	round     *spreadsheet.Normalized
	champions *spreadsheet.ChampionsNormalized
	other     []standing.OtherPoints
}

func parseSheet(task sheetTask) (parsedSheet, error) {
	table, err := spreadsheet.ReadFile(task.path)
	if err != nil {
		return parsedSheet{}, fmt.Errorf("read %s: %w", task.path, err)
	}

	out := parsedSheet{task: task}
	switch {
	case task.otherPoints:
		points, err := spreadsheet.ReadOtherPoints(table, task.year)
		if err != nil {
			return parsedSheet{}, fmt.Errorf("parse %s: %w", task.path, err)
		}
		out.other = points
	case task.round == playoff.RoundChampions:
		normalized, err := spreadsheet.NormalizeChampions(table, task.year)
		if err != nil {
			return parsedSheet{}, fmt.Errorf("parse %s: %w", task.path, err)
		}
		out.champions = &normalized
	default:
		normalized, err := spreadsheet.Normalize(table, spreadsheet.Options{Year: task.year, Round: task.round})
		if err != nil {
			return parsedSheet{}, fmt.Errorf("parse %s: %w", task.path, err)
		}
		out.round = &normalized
	}
	return out, nil
}

// parseSheets keeps the order of tasks and fails with the first parse error
// in that order.
func parseSheets(tasks []sheetTask, workerCount int) ([]parsedSheet, error) {
	if len(tasks) == 0 {
		return nil, nil
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	sheets := make([]parsedSheet, len(tasks))
	errs := make([]error, len(tasks))

	var workers sync.WaitGroup
	for i, task := range tasks {
		i, task := i, task
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			sheets[i], errs[i] = parseSheet(task)
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return sheets, nil
}

func normalizeWorkerCount(value int, taskCount int) int {
	if taskCount <= 0 {
		return 1
	}
	if value <= 0 {
		value = 1
	}
	if value > maxRemakeWorkers {
		value = maxRemakeWorkers
	}
	if value > taskCount {
		value = taskCount
	}
	return value
}
