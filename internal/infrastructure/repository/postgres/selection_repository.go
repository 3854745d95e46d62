package postgres

import (
	"context"
	"fmt"
	"sort"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/playoff-pool/internal/domain/playoff"
	"github.com/riskibarqy/playoff-pool/internal/domain/selection"
	qb "github.com/riskibarqy/playoff-pool/internal/platform/querybuilder"
)

const (
	seriesPicksFrom   = "series_selections ss JOIN series s ON s.id = ss.series_id"
	seriesResultsFrom = "series_results sr JOIN series s ON s.id = sr.series_id"

	// predicate of the partial unique indexes on soft-deleted tables
	activeRow = "deleted_at IS NULL"
)

type SelectionRepository struct {
	db *sqlx.DB
}

func NewSelectionRepository(db *sqlx.DB) *SelectionRepository {
	return &SelectionRepository{db: db}
}

func (r *SelectionRepository) SaveRoundSelections(ctx context.Context, round selection.RoundSelections) error {
	return withTx(ctx, r.db, "save round selections", func(tx *sqlx.Tx) error {
		return saveRoundSelections(ctx, tx, round)
	})
}

func (r *SelectionRepository) SaveRoundResults(ctx context.Context, results selection.RoundResults) error {
	return withTx(ctx, r.db, "save round results", func(tx *sqlx.Tx) error {
		return saveRoundResults(ctx, tx, results)
	})
}

func (r *SelectionRepository) SaveChampionsSelections(ctx context.Context, round selection.ChampionsRound) error {
	return withTx(ctx, r.db, "save champions selections", func(tx *sqlx.Tx) error {
		return saveChampionsSelections(ctx, tx, round)
	})
}

func (r *SelectionRepository) SaveChampionsResult(ctx context.Context, year int, result selection.ChampionsResult) error {
	return withTx(ctx, r.db, "save champions result", func(tx *sqlx.Tx) error {
		return upsertChampionsResult(ctx, tx, year, result)
	})
}

func (r *SelectionRepository) ListSeries(ctx context.Context, year int, round playoff.Round) ([]playoff.Series, error) {
	rows, err := listSeriesRows(ctx, r.db, year, round)
	if err != nil {
		return nil, err
	}
	out := make([]playoff.Series, 0, len(rows))
	for _, row := range rows {
		out = append(out, seriesFromRow(row))
	}
	return out, nil
}

func (r *SelectionRepository) ListSelections(ctx context.Context, year int, round playoff.Round) ([]selection.Selection, error) {
	query, args, err := qb.Select(
		"s.conference", "s.higher_seed", "s.lower_seed", "s.lower_seed_alternate",
		"ss.individual_name", "ss.team", "ss.duration", "ss.player",
	).
		From(seriesPicksFrom).
		Where(
			qb.Eq("s.year", year),
			qb.Eq("s.round", round.String()),
			qb.IsNull("s.deleted_at"),
			qb.IsNull("ss.deleted_at"),
		).
		OrderBy("ss.individual_name", "s.conference", "s.number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list selections query: %w", err)
	}

	var rows []seriesPickRowModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list selections: %w", err)
	}

	out := make([]selection.Selection, 0, len(rows))
	for _, row := range rows {
		s := playoff.Series{HigherSeed: row.HigherSeed, LowerSeed: row.LowerSeed, LowerSeedAlternate: stringFromNull(row.LowerSeedAlternate)}
		out = append(out, selection.Selection{
			Individual: row.IndividualName,
			Conference: playoff.Conference(row.Conference),
			Series:     s.Name(),
			Team:       stringFromNull(row.Team),
			Duration:   intFromNull(row.Duration),
			Player:     stringFromNull(row.Player),
		})
	}
	return out, nil
}

func (r *SelectionRepository) ListResults(ctx context.Context, year int, round playoff.Round) ([]selection.Result, error) {
	query, args, err := qb.Select(
		"s.conference", "s.higher_seed", "s.lower_seed", "s.lower_seed_alternate",
		"sr.team", "sr.duration", "sr.player",
	).
		From(seriesResultsFrom).
		Where(
			qb.Eq("s.year", year),
			qb.Eq("s.round", round.String()),
			qb.IsNull("s.deleted_at"),
			qb.IsNull("sr.deleted_at"),
		).
		OrderBy("s.conference", "s.number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list results query: %w", err)
	}

	var rows []seriesResultRowModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}

	out := make([]selection.Result, 0, len(rows))
	for _, row := range rows {
		s := playoff.Series{HigherSeed: row.HigherSeed, LowerSeed: row.LowerSeed, LowerSeedAlternate: stringFromNull(row.LowerSeedAlternate)}
		out = append(out, selection.Result{
			Conference: playoff.Conference(row.Conference),
			Series:     s.Name(),
			Team:       stringFromNull(row.Team),
			Duration:   intFromNull(row.Duration),
			Player:     stringFromNull(row.Player),
		})
	}
	return out, nil
}

func (r *SelectionRepository) ListOvertimeSelections(ctx context.Context, year int, round playoff.Round) (map[string]selection.Overtime, error) {
	query, args, err := qb.Select("*").
		From("overtime_selections").
		Where(
			qb.Eq("year", year),
			qb.Eq("round", round.String()),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list overtime selections query: %w", err)
	}

	var rows []overtimeSelectionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list overtime selections: %w", err)
	}

	out := make(map[string]selection.Overtime, len(rows))
	for _, row := range rows {
		out[row.IndividualName] = selection.Overtime(row.Overtime)
	}
	return out, nil
}

func (r *SelectionRepository) GetOvertimeResult(ctx context.Context, year int, round playoff.Round) (selection.Overtime, bool, error) {
	query, args, err := qb.Select("overtime").
		From("overtime_results").
		Where(
			qb.Eq("year", year),
			qb.Eq("round", round.String()),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return 0, false, fmt.Errorf("build get overtime result query: %w", err)
	}

	var overtime int
	if err := r.db.GetContext(ctx, &overtime, query, args...); err != nil {
		if isNotFound(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("get overtime result: %w", err)
	}
	return selection.Overtime(overtime), true, nil
}

func (r *SelectionRepository) ListChampionsSelections(ctx context.Context, year int) ([]selection.ChampionsSelection, error) {
	query, args, err := qb.Select("*").
		From("champions_selections").
		Where(qb.Eq("year", year), qb.IsNull("deleted_at")).
		OrderBy("individual_name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list champions selections query: %w", err)
	}

	var rows []championsSelectionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list champions selections: %w", err)
	}

	out := make([]selection.ChampionsSelection, 0, len(rows))
	for _, row := range rows {
		out = append(out, selection.ChampionsSelection{
			Individual: row.IndividualName,
			East:       stringFromNull(row.East),
			West:       stringFromNull(row.West),
			Champion:   stringFromNull(row.Champion),
			Duration:   intFromNull(row.Duration),
		})
	}
	return out, nil
}

func (r *SelectionRepository) GetChampionsResult(ctx context.Context, year int) (selection.ChampionsResult, bool, error) {
	query, args, err := qb.Select("*").
		From("champions_results").
		Where(qb.Eq("year", year), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return selection.ChampionsResult{}, false, fmt.Errorf("build get champions result query: %w", err)
	}

	var row championsResultTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return selection.ChampionsResult{}, false, nil
		}
		return selection.ChampionsResult{}, false, fmt.Errorf("get champions result: %w", err)
	}

	return selection.ChampionsResult{
		East:     stringFromNull(row.East),
		West:     stringFromNull(row.West),
		Champion: stringFromNull(row.Champion),
		Duration: intFromNull(row.Duration),
	}, true, nil
}

func (r *SelectionRepository) ListMonikers(ctx context.Context, year int) ([]selection.Moniker, error) {
	query, args, err := qb.Select("*").
		From("monikers").
		Where(qb.Eq("year", year), qb.IsNull("deleted_at")).
		OrderBy("individual_name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list monikers query: %w", err)
	}

	var rows []monikerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list monikers: %w", err)
	}

	out := make([]selection.Moniker, 0, len(rows))
	for _, row := range rows {
		out = append(out, selection.Moniker{Individual: row.IndividualName, Moniker: row.Moniker})
	}
	return out, nil
}

func (r *SelectionRepository) ListPreferences(ctx context.Context, year int) ([]selection.Preference, error) {
	query, args, err := qb.Select("*").
		From("preferences").
		Where(qb.Eq("year", year), qb.IsNull("deleted_at")).
		OrderBy("individual_name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list preferences query: %w", err)
	}

	var rows []preferenceTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list preferences: %w", err)
	}

	out := make([]selection.Preference, 0, len(rows))
	for _, row := range rows {
		out = append(out, selection.Preference{
			Individual: row.IndividualName,
			Favourite:  stringFromNull(row.FavouriteTeam),
			Cheering:   stringFromNull(row.CheeringTeam),
		})
	}
	return out, nil
}

func (r *SelectionRepository) ListRounds(ctx context.Context, year int) ([]playoff.Round, error) {
	query, args, err := qb.Select("s.round").
		Distinct().
		From(seriesPicksFrom).
		Where(
			qb.Eq("s.year", year),
			qb.IsNull("s.deleted_at"),
			qb.IsNull("ss.deleted_at"),
		).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list rounds query: %w", err)
	}

	var labels []string
	if err := r.db.SelectContext(ctx, &labels, query, args...); err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}

	out := make([]playoff.Round, 0, len(labels))
	for _, label := range labels {
		round, err := playoff.ParseRound(label)
		if err != nil {
			return nil, fmt.Errorf("decode stored round: %w", err)
		}
		out = append(out, round)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// ReplaceSeason soft-deletes every row of season.Year and imports season in
// the same transaction.
func (r *SelectionRepository) ReplaceSeason(ctx context.Context, season selection.Season) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace season: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := deleteYear(ctx, tx, season.Year); err != nil {
		return err
	}
	for _, round := range season.Rounds {
		if err := saveRoundSelections(ctx, tx, round); err != nil {
			return err
		}
	}
	for _, results := range season.Results {
		if err := saveRoundResults(ctx, tx, results); err != nil {
			return err
		}
	}
	if season.Champions != nil {
		if err := saveChampionsSelections(ctx, tx, *season.Champions); err != nil {
			return err
		}
	}
	if season.ChampionsResult != nil {
		if err := upsertChampionsResult(ctx, tx, season.Year, *season.ChampionsResult); err != nil {
			return err
		}
	}
	if err := insertOtherPoints(ctx, tx, season.OtherPoints); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx replace season: %w", err)
	}
	return nil
}

func saveRoundSelections(ctx context.Context, tx *sqlx.Tx, round selection.RoundSelections) error {
	existing, err := countRoundSelections(ctx, tx, round.Year, round.Round)
	if err != nil {
		return err
	}
	if existing > 0 {
		return crerr.Wrapf(playoff.ErrDuplicateEntry, "%d round %s already has selections", round.Year, round.Round)
	}

	if err := registerIndividuals(ctx, tx, round.Individuals); err != nil {
		return err
	}

	seriesIDs := make(map[selection.Key]int64, len(round.Series))
	for _, s := range round.Series {
		id, err := upsertSeries(ctx, tx, s)
		if err != nil {
			return err
		}
		seriesIDs[selection.Key{Conference: s.Conference, Series: s.Name()}] = id
	}

	if len(round.Selections) > 0 {
		insert := qb.InsertInto("series_selections").Columns("series_id", "individual_name", "team", "duration", "player")
		for _, sel := range round.Selections {
			id, ok := seriesIDs[sel.Key()]
			if !ok {
				return crerr.Wrapf(playoff.ErrUnknownSeries, "selection of %s for %s %s", sel.Individual, sel.Conference, sel.Series)
			}
			insert.Values(id, sel.Individual, nullableString(sel.Team), nullableInt(sel.Duration), nullableString(sel.Player))
		}
		query, args, err := insert.ToSQL()
		if err := execBuilt(ctx, tx, "insert series selections", query, args, err); err != nil {
			return err
		}
	}

	if len(round.Overtime) > 0 {
		insert := qb.InsertInto("overtime_selections").Columns("year", "round", "individual_name", "overtime")
		for _, name := range sortedKeys(round.Overtime) {
			insert.Values(round.Year, round.Round.String(), name, int(round.Overtime[name]))
		}
		query, args, err := insert.
			OnConflict(activeRow, "year", "round", "individual_name").
			DoUpdate("overtime").
			DoUpdateExpr("updated_at", "NOW()").
			ToSQL()
		if err := execBuilt(ctx, tx, "insert overtime selections", query, args, err); err != nil {
			return err
		}
	}

	if len(round.Monikers) > 0 {
		insert := qb.InsertInto("monikers").Columns("year", "individual_name", "moniker")
		for _, m := range round.Monikers {
			insert.Values(round.Year, m.Individual, m.Moniker)
		}
		query, args, err := insert.
			OnConflict(activeRow, "year", "individual_name").
			DoUpdate("moniker").
			DoUpdateExpr("updated_at", "NOW()").
			ToSQL()
		if err := execBuilt(ctx, tx, "upsert monikers", query, args, err); err != nil {
			return err
		}
	}

	if len(round.Preferences) > 0 {
		insert := qb.InsertInto("preferences").Columns("year", "individual_name", "favourite_team", "cheering_team")
		for _, p := range round.Preferences {
			insert.Values(round.Year, p.Individual, nullableString(p.Favourite), nullableString(p.Cheering))
		}
		query, args, err := insert.
			OnConflict(activeRow, "year", "individual_name").
			DoUpdateExpr("favourite_team", "COALESCE(EXCLUDED.favourite_team, preferences.favourite_team)").
			DoUpdateExpr("cheering_team", "COALESCE(EXCLUDED.cheering_team, preferences.cheering_team)").
			DoUpdateExpr("updated_at", "NOW()").
			ToSQL()
		if err := execBuilt(ctx, tx, "upsert preferences", query, args, err); err != nil {
			return err
		}
	}

	return nil
}

func saveRoundResults(ctx context.Context, tx *sqlx.Tx, results selection.RoundResults) error {
	seriesRows, err := listSeriesRows(ctx, tx, results.Year, results.Round)
	if err != nil {
		return err
	}
	seriesIDs := make(map[selection.Key]int64, len(seriesRows))
	for _, row := range seriesRows {
		s := seriesFromRow(row)
		seriesIDs[selection.Key{Conference: s.Conference, Series: s.Name()}] = row.ID
	}

	clearQuery, clearArgs, err := qb.Update("series_results").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Expr("series_id IN (SELECT id FROM series WHERE year = ? AND round = ? AND deleted_at IS NULL)", results.Year, results.Round.String()),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err := execBuilt(ctx, tx, "clear series results", clearQuery, clearArgs, err); err != nil {
		return err
	}

	if len(results.Results) > 0 {
		insert := qb.InsertInto("series_results").Columns("series_id", "team", "duration", "player")
		for _, res := range results.Results {
			id, ok := seriesIDs[res.Key()]
			if !ok {
				return crerr.Wrapf(playoff.ErrUnknownSeries, "result for %s %s in %d round %s", res.Conference, res.Series, results.Year, results.Round)
			}
			insert.Values(id, nullableString(res.Team), nullableInt(res.Duration), nullableString(res.Player))
		}
		query, args, err := insert.ToSQL()
		if err := execBuilt(ctx, tx, "insert series results", query, args, err); err != nil {
			return err
		}
	}

	clearOvertimeQuery, clearOvertimeArgs, err := qb.Update("overtime_results").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("year", results.Year),
			qb.Eq("round", results.Round.String()),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err := execBuilt(ctx, tx, "clear overtime result", clearOvertimeQuery, clearOvertimeArgs, err); err != nil {
		return err
	}
	if results.Overtime != nil {
		query, args, err := qb.InsertModel("overtime_results", overtimeResultInsertModel{
			Year:     results.Year,
			Round:    results.Round.String(),
			Overtime: int(*results.Overtime),
		}).ToSQL()
		if err := execBuilt(ctx, tx, "insert overtime result", query, args, err); err != nil {
			return err
		}
	}

	return nil
}

func saveChampionsSelections(ctx context.Context, tx *sqlx.Tx, round selection.ChampionsRound) error {
	countQuery, countArgs, err := qb.Select("COUNT(*)").
		From("champions_selections").
		Where(qb.Eq("year", round.Year), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build count champions selections query: %w", err)
	}
	var existing int
	if err := tx.GetContext(ctx, &existing, countQuery, countArgs...); err != nil {
		return fmt.Errorf("count champions selections: %w", err)
	}
	if existing > 0 {
		return crerr.Wrapf(playoff.ErrDuplicateEntry, "%d champions round already has selections", round.Year)
	}

	if err := registerIndividuals(ctx, tx, round.Individuals); err != nil {
		return err
	}

	if len(round.Selections) > 0 {
		insert := qb.InsertInto("champions_selections").Columns("year", "individual_name", "east", "west", "champion", "duration")
		for _, sel := range round.Selections {
			insert.Values(round.Year, sel.Individual, nullableString(sel.East), nullableString(sel.West), nullableString(sel.Champion), nullableInt(sel.Duration))
		}
		query, args, err := insert.ToSQL()
		if err := execBuilt(ctx, tx, "insert champions selections", query, args, err); err != nil {
			return err
		}
	}

	return nil
}

func upsertChampionsResult(ctx context.Context, tx *sqlx.Tx, year int, result selection.ChampionsResult) error {
	query, args, err := qb.InsertModel("champions_results", championsResultInsertModel{
		Year:     year,
		East:     nullableString(result.East),
		West:     nullableString(result.West),
		Champion: nullableString(result.Champion),
		Duration: nullableInt(result.Duration),
	}).
		OnConflict(activeRow, "year").
		DoUpdate("east", "west", "champion", "duration").
		DoUpdateExpr("updated_at", "NOW()").
		ToSQL()
	return execBuilt(ctx, tx, "upsert champions result", query, args, err)
}

func deleteYear(ctx context.Context, tx *sqlx.Tx, year int) error {
	inYearSeries := qb.Expr("series_id IN (SELECT id FROM series WHERE year = ? AND deleted_at IS NULL)", year)
	for _, table := range []string{"series_selections", "series_results"} {
		query, args, err := qb.Update(table).
			SetExpr("deleted_at", "NOW()").
			Where(inYearSeries, qb.IsNull("deleted_at")).
			ToSQL()
		if err := execBuilt(ctx, tx, "delete "+table, query, args, err); err != nil {
			return err
		}
	}

	for _, table := range []string{
		"series",
		"champions_selections",
		"champions_results",
		"other_points",
		"overtime_selections",
		"overtime_results",
		"monikers",
		"preferences",
	} {
		query, args, err := qb.Update(table).
			SetExpr("deleted_at", "NOW()").
			Where(qb.Eq("year", year), qb.IsNull("deleted_at")).
			ToSQL()
		if err := execBuilt(ctx, tx, "delete "+table, query, args, err); err != nil {
			return err
		}
	}

	return nil
}

func countRoundSelections(ctx context.Context, q sqlx.QueryerContext, year int, round playoff.Round) (int, error) {
	query, args, err := qb.Select("COUNT(*)").
		From(seriesPicksFrom).
		Where(
			qb.Eq("s.year", year),
			qb.Eq("s.round", round.String()),
			qb.IsNull("s.deleted_at"),
			qb.IsNull("ss.deleted_at"),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count round selections query: %w", err)
	}

	var count int
	if err := sqlx.GetContext(ctx, q, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count round selections: %w", err)
	}
	return count, nil
}

func listSeriesRows(ctx context.Context, q sqlx.QueryerContext, year int, round playoff.Round) ([]seriesTableModel, error) {
	query, args, err := qb.Select("*").
		From("series").
		Where(
			qb.Eq("year", year),
			qb.Eq("round", round.String()),
			qb.IsNull("deleted_at"),
		).
		OrderBy("conference", "number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list series query: %w", err)
	}

	var rows []seriesTableModel
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list series: %w", err)
	}
	return rows, nil
}

func upsertSeries(ctx context.Context, tx *sqlx.Tx, s playoff.Series) (int64, error) {
	query, args, err := qb.InsertModel("series", seriesInsertModel{
		Year:               s.Year,
		Round:              s.Round.String(),
		Conference:         string(s.Conference),
		Number:             s.Number,
		HigherSeed:         s.HigherSeed,
		LowerSeed:          s.LowerSeed,
		LowerSeedAlternate: nullableString(s.LowerSeedAlternate),
		HigherPlayer:       nullableString(s.HigherPlayer),
		LowerPlayer:        nullableString(s.LowerPlayer),
	}).
		OnConflict(activeRow, "year", "round", "conference", "number").
		DoUpdate("higher_seed", "lower_seed", "lower_seed_alternate", "higher_player", "lower_player").
		DoUpdateExpr("updated_at", "NOW()").
		Returning("id").
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build upsert series query: %w", err)
	}

	var id int64
	if err := tx.GetContext(ctx, &id, query, args...); err != nil {
		return 0, translateWriteError(err, "upsert series "+s.Name())
	}
	return id, nil
}

func seriesFromRow(row seriesTableModel) playoff.Series {
	round, _ := playoff.ParseRound(row.Round)
	return playoff.Series{
		Year:               row.Year,
		Round:              round,
		Conference:         playoff.Conference(row.Conference),
		Number:             row.Number,
		HigherSeed:         row.HigherSeed,
		LowerSeed:          row.LowerSeed,
		LowerSeedAlternate: stringFromNull(row.LowerSeedAlternate),
		HigherPlayer:       stringFromNull(row.HigherPlayer),
		LowerPlayer:        stringFromNull(row.LowerPlayer),
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
