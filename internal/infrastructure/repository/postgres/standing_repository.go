package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/playoff-pool/internal/domain/playoff"
	"github.com/riskibarqy/playoff-pool/internal/domain/standing"
	qb "github.com/riskibarqy/playoff-pool/internal/platform/querybuilder"
)

type StandingRepository struct {
	db *sqlx.DB
}

func NewStandingRepository(db *sqlx.DB) *StandingRepository {
	return &StandingRepository{db: db}
}

func (r *StandingRepository) AddOtherPoints(ctx context.Context, points []standing.OtherPoints) error {
	if len(points) == 0 {
		return nil
	}
	return withTx(ctx, r.db, "add other points", func(tx *sqlx.Tx) error {
		return insertOtherPoints(ctx, tx, points)
	})
}

func (r *StandingRepository) ListOtherPoints(ctx context.Context, year int) ([]standing.OtherPoints, error) {
	query, args, err := qb.Select("*").
		From("other_points").
		Where(qb.Eq("year", year), qb.IsNull("deleted_at")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list other points query: %w", err)
	}

	var rows []otherPointsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list other points: %w", err)
	}

	out := make([]standing.OtherPoints, 0, len(rows))
	for _, row := range rows {
		round, err := playoff.ParseRound(row.Round)
		if err != nil {
			return nil, fmt.Errorf("decode other points round: %w", err)
		}
		out = append(out, standing.OtherPoints{
			Year:       row.Year,
			Round:      round,
			Individual: row.IndividualName,
			Points:     row.Points,
		})
	}
	return out, nil
}

func insertOtherPoints(ctx context.Context, tx *sqlx.Tx, points []standing.OtherPoints) error {
	if len(points) == 0 {
		return nil
	}
	insert := qb.InsertInto("other_points").Columns("year", "round", "individual_name", "points")
	for _, p := range points {
		insert.Values(p.Year, p.Round.String(), p.Individual, p.Points)
	}
	query, args, err := insert.ToSQL()
	return execBuilt(ctx, tx, "insert other points", query, args, err)
}
