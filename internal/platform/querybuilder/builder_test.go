package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("round").
		Distinct().
		From("series").
		Where(Eq("year", 2009), IsNull("deleted_at")).
		OrderBy("round").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT DISTINCT round FROM series WHERE year = $1 AND deleted_at IS NULL ORDER BY round LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != 2009 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_DoNothing(t *testing.T) {
	query, args, err := InsertInto("individuals").
		Columns("name", "first_name").
		Values("Alice B", "Alice").
		Values("Bob", "Bob").
		OnConflict("", "name").
		DoNothing().
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO individuals (name, first_name) VALUES ($1, $2), ($3, $4) ON CONFLICT (name) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[2] != "Bob" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel_Upsert(t *testing.T) {
	type seriesRow struct {
		Year       int    `db:"year"`
		HigherSeed string `db:"higher_seed"`
		Internal   string
		Skipped    string `db:"-"`
	}

	query, args, err := InsertModel("series", seriesRow{Year: 2009, HigherSeed: "WSH"}).
		OnConflict("deleted_at IS NULL", "year").
		DoUpdate("higher_seed").
		DoUpdateExpr("updated_at", "NOW()").
		Returning("id").
		ToSQL()
	if err != nil {
		t.Fatalf("build upsert query: %v", err)
	}

	wantQuery := "INSERT INTO series (year, higher_seed) VALUES ($1, $2) ON CONFLICT (year) WHERE deleted_at IS NULL " +
		"DO UPDATE SET higher_seed = EXCLUDED.higher_seed, updated_at = NOW() RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != 2009 || args[1] != "WSH" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_Errors(t *testing.T) {
	if _, _, err := InsertModel("series", nil).ToSQL(); err == nil {
		t.Fatalf("expected error for non-struct model")
	}
	if _, _, err := InsertInto("t").Columns("a").Values(1, 2).ToSQL(); err == nil {
		t.Fatalf("expected error for row width mismatch")
	}
	if _, _, err := InsertInto("t").Columns("a").Values(1).DoUpdate("a").ToSQL(); err == nil {
		t.Fatalf("expected error for do update without target")
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("series_results").
		Set("duration", 6).
		SetExpr("deleted_at", "NOW()").
		Where(Eq("id", 7), Expr("series_id IN (SELECT id FROM series WHERE year = ?)", 2009)).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE series_results SET duration = $1, deleted_at = NOW() WHERE id = $2 AND series_id IN (SELECT id FROM series WHERE year = $3)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != 6 || args[1] != 7 || args[2] != 2009 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder_RequiresWhere(t *testing.T) {
	if _, _, err := Update("series").SetExpr("deleted_at", "NOW()").ToSQL(); err == nil {
		t.Fatalf("expected error for unconditional update")
	}
}
