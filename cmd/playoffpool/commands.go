package main

import (
	"context"
	"fmt"
	"io"

	"github.com/riskibarqy/playoff-pool/internal/app"
	"github.com/riskibarqy/playoff-pool/internal/domain/playoff"
	"github.com/riskibarqy/playoff-pool/internal/platform/logging"
	"github.com/riskibarqy/playoff-pool/internal/report"
	"github.com/riskibarqy/playoff-pool/internal/usecase"
)

type env struct {
	app    *app.App
	opts   options
	format report.Format
	out    io.Writer
	logger *logging.Logger
}

type commandFunc func(ctx context.Context, e *env) error

var commands = map[string]commandFunc{
	"selections":   importSelections,
	"results":      importResults,
	"other-points": importOtherPoints,
	"remake":       remake,
	"standings":    standings,
	"rules":        printRules,
}

func importSelections(ctx context.Context, e *env) error {
	ref, err := e.roundRef()
	if err != nil {
		return err
	}
	summary, err := e.app.Ingestion.ImportSelections(ctx, ref)
	if err != nil {
		return err
	}
	line := fmt.Sprintf("imported %d round %s: %d individuals, %d selections",
		summary.Year, summary.Round, summary.Individuals, summary.Selections)
	return report.WriteSummary(e.out, e.format, line, summary)
}

func importResults(ctx context.Context, e *env) error {
	ref, err := e.roundRef()
	if err != nil {
		return err
	}
	if err := e.app.Ingestion.ImportResults(ctx, ref); err != nil {
		return err
	}
	line := fmt.Sprintf("stored results for %d round %s", ref.Year, ref.Round)
	return report.WriteSummary(e.out, e.format, line, map[string]any{"year": ref.Year, "round": ref.Round.String()})
}

func importOtherPoints(ctx context.Context, e *env) error {
	year, err := e.year()
	if err != nil {
		return err
	}
	count, err := e.app.Ingestion.ImportOtherPoints(ctx, year)
	if err != nil {
		return err
	}
	line := fmt.Sprintf("imported %d other points entries for %d", count, year)
	return report.WriteSummary(e.out, e.format, line, map[string]any{"year": year, "entries": count})
}

func remake(ctx context.Context, e *env) error {
	if e.opts.years == "" {
		return fmt.Errorf("%w: remake requires -years FROM:TO", errUsage)
	}
	from, to, err := parseYears(e.opts.years)
	if err != nil {
		return err
	}
	summary, err := e.app.Ingestion.Remake(ctx, usecase.RemakeInput{From: from, To: to})
	if err != nil {
		return err
	}
	line := fmt.Sprintf("remade %d-%d: %d sheets, %d rounds, %d results, %d other points (%d workers)",
		summary.From, summary.To, summary.SheetCount, summary.Rounds, summary.Results, summary.OtherPoints, summary.WorkerCount)
	return report.WriteSummary(e.out, e.format, line, summary)
}

// standings prints the season table, or one round when -round is set. A dry
// run has an empty store, so the year is imported from the data directory
// first.
func standings(ctx context.Context, e *env) error {
	year, err := e.year()
	if err != nil {
		return err
	}
	if e.opts.dryRun {
		summary, err := e.app.Ingestion.Remake(ctx, usecase.RemakeInput{From: year, To: year})
		if err != nil {
			return fmt.Errorf("load %d into memory: %w", year, err)
		}
		e.logger.Info("dry run loaded sheets", "year", year, "sheets", summary.SheetCount)
	}

	if e.opts.round != "" {
		ref, err := e.roundRef()
		if err != nil {
			return err
		}
		rows, err := e.app.Scoring.RoundStandings(ctx, ref)
		if err != nil {
			return err
		}
		return report.WriteRound(e.out, e.format, ref.Year, ref.Round, rows)
	}

	season, err := e.app.Scoring.SeasonStandings(ctx, year)
	if err != nil {
		return err
	}
	return report.WriteSeason(e.out, e.format, season)
}

func printRules(ctx context.Context, e *env) error {
	year, err := e.year()
	if err != nil {
		return err
	}
	rs, err := e.app.Scoring.Rules(ctx, year)
	if err != nil {
		return err
	}
	return report.WriteRules(e.out, e.format, rs)
}

func (e *env) year() (int, error) {
	if e.opts.year == 0 {
		return 0, fmt.Errorf("%w: -year is required", errUsage)
	}
	return e.opts.year, nil
}

func (e *env) roundRef() (usecase.RoundRef, error) {
	year, err := e.year()
	if err != nil {
		return usecase.RoundRef{}, err
	}
	if e.opts.round == "" {
		return usecase.RoundRef{}, fmt.Errorf("%w: -round is required", errUsage)
	}
	round, err := playoff.ParseRound(e.opts.round)
	if err != nil {
		return usecase.RoundRef{}, err
	}
	return usecase.RoundRef{Year: year, Round: round}, nil
}
