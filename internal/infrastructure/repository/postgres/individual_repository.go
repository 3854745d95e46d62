package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/playoff-pool/internal/domain/individual"
	qb "github.com/riskibarqy/playoff-pool/internal/platform/querybuilder"
)

type IndividualRepository struct {
	db *sqlx.DB
}

func NewIndividualRepository(db *sqlx.DB) *IndividualRepository {
	return &IndividualRepository{db: db}
}

func (r *IndividualRepository) Exists(ctx context.Context, name string) (bool, error) {
	query, args, err := qb.Select("id").
		From("individuals").
		Where(qb.Eq("name", name)).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build individual exists query: %w", err)
	}

	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("check individual exists: %w", err)
	}
	return true, nil
}

// registerIndividuals inserts names that are not stored yet.
func registerIndividuals(ctx context.Context, tx *sqlx.Tx, people []individual.Individual) error {
	if len(people) == 0 {
		return nil
	}
	insert := qb.InsertInto("individuals").Columns("name", "first_name", "last_name")
	for _, p := range people {
		insert.Values(p.Name(), p.FirstName, p.LastName)
	}
	query, args, err := insert.OnConflict("", "name").DoNothing().ToSQL()
	return execBuilt(ctx, tx, "register individuals", query, args, err)
}
