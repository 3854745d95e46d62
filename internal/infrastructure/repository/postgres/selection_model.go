package postgres

import (
	"database/sql"
	"time"
)

type seriesTableModel struct {
	ID                 int64          `db:"id"`
	Year               int            `db:"year"`
	Round              string         `db:"round"`
	Conference         string         `db:"conference"`
	Number             int            `db:"number"`
	HigherSeed         string         `db:"higher_seed"`
	LowerSeed          string         `db:"lower_seed"`
	LowerSeedAlternate sql.NullString `db:"lower_seed_alternate"`
	HigherPlayer       sql.NullString `db:"higher_player"`
	LowerPlayer        sql.NullString `db:"lower_player"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
	DeletedAt          *time.Time     `db:"deleted_at"`
}

type seriesInsertModel struct {
	Year               int     `db:"year"`
	Round              string  `db:"round"`
	Conference         string  `db:"conference"`
	Number             int     `db:"number"`
	HigherSeed         string  `db:"higher_seed"`
	LowerSeed          string  `db:"lower_seed"`
	LowerSeedAlternate *string `db:"lower_seed_alternate"`
	HigherPlayer       *string `db:"higher_player"`
	LowerPlayer        *string `db:"lower_player"`
}

// seriesPickRowModel is a selection or result joined with its series.
type seriesPickRowModel struct {
	Conference         string         `db:"conference"`
	HigherSeed         string         `db:"higher_seed"`
	LowerSeed          string         `db:"lower_seed"`
	LowerSeedAlternate sql.NullString `db:"lower_seed_alternate"`
	IndividualName     string         `db:"individual_name"`
	Team               sql.NullString `db:"team"`
	Duration           sql.NullInt64  `db:"duration"`
	Player             sql.NullString `db:"player"`
}

type championsSelectionTableModel struct {
	ID             int64          `db:"id"`
	Year           int            `db:"year"`
	IndividualName string         `db:"individual_name"`
	East           sql.NullString `db:"east"`
	West           sql.NullString `db:"west"`
	Champion       sql.NullString `db:"champion"`
	Duration       sql.NullInt64  `db:"duration"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
	DeletedAt      *time.Time     `db:"deleted_at"`
}

type championsResultTableModel struct {
	ID        int64          `db:"id"`
	Year      int            `db:"year"`
	East      sql.NullString `db:"east"`
	West      sql.NullString `db:"west"`
	Champion  sql.NullString `db:"champion"`
	Duration  sql.NullInt64  `db:"duration"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
	DeletedAt *time.Time     `db:"deleted_at"`
}

type championsResultInsertModel struct {
	Year     int     `db:"year"`
	East     *string `db:"east"`
	West     *string `db:"west"`
	Champion *string `db:"champion"`
	Duration *int    `db:"duration"`
}

type overtimeSelectionTableModel struct {
	ID             int64      `db:"id"`
	Year           int        `db:"year"`
	Round          string     `db:"round"`
	IndividualName string     `db:"individual_name"`
	Overtime       int        `db:"overtime"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
	DeletedAt      *time.Time `db:"deleted_at"`
}

type overtimeResultInsertModel struct {
	Year     int    `db:"year"`
	Round    string `db:"round"`
	Overtime int    `db:"overtime"`
}

type monikerTableModel struct {
	ID             int64      `db:"id"`
	Year           int        `db:"year"`
	IndividualName string     `db:"individual_name"`
	Moniker        string     `db:"moniker"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
	DeletedAt      *time.Time `db:"deleted_at"`
}

type preferenceTableModel struct {
	ID             int64          `db:"id"`
	Year           int            `db:"year"`
	IndividualName string         `db:"individual_name"`
	FavouriteTeam  sql.NullString `db:"favourite_team"`
	CheeringTeam   sql.NullString `db:"cheering_team"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
	DeletedAt      *time.Time     `db:"deleted_at"`
}

type seriesResultRowModel struct {
	Conference         string         `db:"conference"`
	HigherSeed         string         `db:"higher_seed"`
	LowerSeed          string         `db:"lower_seed"`
	LowerSeedAlternate sql.NullString `db:"lower_seed_alternate"`
	Team               sql.NullString `db:"team"`
	Duration           sql.NullInt64  `db:"duration"`
	Player             sql.NullString `db:"player"`
}
