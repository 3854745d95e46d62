package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/riskibarqy/playoff-pool/internal/domain/playoff"
)

const (
	pqUniqueViolation     = pq.ErrorCode("23505")
	pqForeignKeyViolation = pq.ErrorCode("23503")
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// translateWriteError maps constraint violations onto the domain sentinels
// and wraps every other error with op.
func translateWriteError(err error, op string) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return fmt.Errorf("%s: %w", op, err)
	}
	switch pqErr.Code {
	case pqUniqueViolation:
		return crerr.Wrapf(playoff.ErrDuplicateEntry, "%s: %s", op, pqErr.Message)
	case pqForeignKeyViolation:
		if pqErr.Constraint == "" || strings.HasSuffix(pqErr.Constraint, "individual_name_fkey") {
			return crerr.Wrapf(playoff.ErrMissingIndividual, "%s: %s", op, pqErr.Detail)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// withTx runs fn in a transaction that is rolled back unless fn succeeds.
func withTx(ctx context.Context, db *sqlx.DB, op string, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx %s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx %s: %w", op, err)
	}
	return nil
}

func execBuilt(ctx context.Context, tx *sqlx.Tx, op, query string, args []any, buildErr error) error {
	if buildErr != nil {
		return crerr.Wrapf(buildErr, "build %s query", op)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return translateWriteError(err, op)
	}
	return nil
}

func nullableString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func nullableInt(value int) *int {
	if value == 0 {
		return nil
	}
	return &value
}

func stringFromNull(value sql.NullString) string {
	if !value.Valid {
		return ""
	}
	return value.String
}

func intFromNull(value sql.NullInt64) int {
	if !value.Valid {
		return 0
	}
	return int(value.Int64)
}
