package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/playoff-pool/internal/config"
	"github.com/riskibarqy/playoff-pool/internal/domain/individual"
	"github.com/riskibarqy/playoff-pool/internal/domain/selection"
	"github.com/riskibarqy/playoff-pool/internal/domain/standing"
	"github.com/riskibarqy/playoff-pool/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/playoff-pool/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/playoff-pool/internal/platform/logging"
	"github.com/riskibarqy/playoff-pool/internal/usecase"
)

// App holds the wired use cases for one CLI invocation.
type App struct {
	Ingestion *usecase.IngestionService
	Scoring   *usecase.ScoringService

	db *sqlx.DB
}

// OpenDB opens an instrumented PostgreSQL handle and checks connectivity.
func OpenDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := DatabaseURL(cfg)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxOpenConns)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// New wires the use cases over PostgreSQL. With dryRun set everything runs
// against a fresh in-memory store and nothing is persisted.
func New(ctx context.Context, cfg config.Config, logger *logging.Logger, dryRun bool) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var (
		individualRepo individual.Repository
		selectionRepo  selection.Repository
		standingRepo   standing.Repository
		db             *sqlx.DB
	)
	if dryRun {
		store := memory.NewStore()
		individualRepo = memory.NewIndividualRepository(store)
		selectionRepo = memory.NewSelectionRepository(store)
		standingRepo = memory.NewStandingRepository(store)
		logger.InfoContext(ctx, "dry run: using in-memory store")
	} else {
		var err error
		db, err = OpenDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		individualRepo = postgres.NewIndividualRepository(db)
		selectionRepo = postgres.NewSelectionRepository(db)
		standingRepo = postgres.NewStandingRepository(db)
		logger.DebugContext(ctx, "database connected", "db", dbNameFromURL(cfg.DBURL))
	}

	return &App{
		Ingestion: usecase.NewIngestionService(cfg.DataDir, cfg.Workers, individualRepo, selectionRepo, standingRepo, logger),
		Scoring:   usecase.NewScoringService(selectionRepo, standingRepo, logger),
		db:        db,
	}, nil
}

func (a *App) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}
