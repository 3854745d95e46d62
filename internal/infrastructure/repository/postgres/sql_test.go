package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"

	"github.com/riskibarqy/playoff-pool/internal/domain/playoff"
)

func TestTranslateWriteError(t *testing.T) {
	t.Run("maps unique violation", func(t *testing.T) {
		err := translateWriteError(&pq.Error{Code: "23505", Message: "duplicate key"}, "insert selections")
		if !errors.Is(err, playoff.ErrDuplicateEntry) {
			t.Fatalf("expected ErrDuplicateEntry, got %v", err)
		}
	})

	t.Run("maps individual foreign key violation", func(t *testing.T) {
		err := translateWriteError(&pq.Error{Code: "23503", Constraint: "other_points_individual_name_fkey"}, "insert other points")
		if !errors.Is(err, playoff.ErrMissingIndividual) {
			t.Fatalf("expected ErrMissingIndividual, got %v", err)
		}
	})

	t.Run("keeps other foreign key violations", func(t *testing.T) {
		original := &pq.Error{Code: "23503", Constraint: "series_selections_series_id_fkey"}
		err := translateWriteError(original, "insert selections")
		if errors.Is(err, playoff.ErrMissingIndividual) {
			t.Fatalf("series foreign key should not map to ErrMissingIndividual")
		}
	})

	t.Run("keeps unrelated errors", func(t *testing.T) {
		original := fmt.Errorf("connection refused")
		if err := translateWriteError(original, "insert"); !errors.Is(err, original) {
			t.Fatalf("expected original error, got %v", err)
		}
	})
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to be not found")
	}
	if isNotFound(fmt.Errorf("boom")) {
		t.Fatalf("expected false for unrelated error")
	}
}

func TestNullableHelpers(t *testing.T) {
	if nullableString("") != nil || *nullableString("BOS") != "BOS" {
		t.Fatalf("unexpected nullable string")
	}
	if nullableInt(0) != nil || *nullableInt(6) != 6 {
		t.Fatalf("unexpected nullable int")
	}
	if stringFromNull(sql.NullString{}) != "" || intFromNull(sql.NullInt64{Int64: 5, Valid: true}) != 5 {
		t.Fatalf("unexpected null conversion")
	}
}
