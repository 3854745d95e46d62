package postgres

import "time"

type otherPointsTableModel struct {
	ID             int64      `db:"id"`
	Year           int        `db:"year"`
	Round          string     `db:"round"`
	IndividualName string     `db:"individual_name"`
	Points         int        `db:"points"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
	DeletedAt      *time.Time `db:"deleted_at"`
}
