package selection

import (
	"context"

	"github.com/riskibarqy/playoff-pool/internal/domain/playoff"
)

// Repository describes pick and outcome persistence needs from use cases.
type Repository interface {
	// SaveRoundSelections stores a round's series, picks and side tables in
	// one transaction. A round that already has picks yields ErrDuplicateEntry.
	SaveRoundSelections(ctx context.Context, round RoundSelections) error
	// SaveRoundResults replaces the outcomes of a round.
	SaveRoundResults(ctx context.Context, results RoundResults) error
	SaveChampionsSelections(ctx context.Context, round ChampionsRound) error
	SaveChampionsResult(ctx context.Context, year int, result ChampionsResult) error

	ListSeries(ctx context.Context, year int, round playoff.Round) ([]playoff.Series, error)
	ListSelections(ctx context.Context, year int, round playoff.Round) ([]Selection, error)
	ListResults(ctx context.Context, year int, round playoff.Round) ([]Result, error)
	ListOvertimeSelections(ctx context.Context, year int, round playoff.Round) (map[string]Overtime, error)
	GetOvertimeResult(ctx context.Context, year int, round playoff.Round) (Overtime, bool, error)
	ListChampionsSelections(ctx context.Context, year int) ([]ChampionsSelection, error)
	GetChampionsResult(ctx context.Context, year int) (ChampionsResult, bool, error)
	ListMonikers(ctx context.Context, year int) ([]Moniker, error)
	ListPreferences(ctx context.Context, year int) ([]Preference, error)

	// ListRounds returns the series rounds of year that have picks stored.
	ListRounds(ctx context.Context, year int) ([]playoff.Round, error)
	// ReplaceSeason drops everything stored for season.Year and writes season
	// in its place. On error the year is left as it was.
	ReplaceSeason(ctx context.Context, season Season) error
}
