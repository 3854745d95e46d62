package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/playoff-pool/internal/app"
	"github.com/riskibarqy/playoff-pool/internal/config"
	"github.com/riskibarqy/playoff-pool/internal/observability"
	"github.com/riskibarqy/playoff-pool/internal/platform/logging"
	"github.com/riskibarqy/playoff-pool/internal/report"
)

const tracingShutdownTimeout = 5 * time.Second

var (
	errUsage = errors.New("usage")
	tracer   = otel.Tracer("playoff-pool/cmd/playoffpool")
)

type options struct {
	year    int
	round   string
	years   string
	dbURL   string
	dataDir string
	workers int
	format  string
	envFile string
	dryRun  bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout)
	stop()

	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
	case errors.Is(err, errUsage):
		printUsage(os.Stderr)
		os.Exit(2)
	default:
		logging.Default().Error("command failed", "error", err)
		fmt.Fprintf(os.Stderr, "playoffpool: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	command := strings.ToLower(strings.TrimSpace(args[0]))
	if _, ok := commands[command]; !ok {
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}

	var opts options
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	fs.IntVar(&opts.year, "year", 0, "season year")
	fs.StringVar(&opts.round, "round", "", "round label: Q, 1-4 or Champions")
	fs.StringVar(&opts.years, "years", "", "year range FROM:TO for remake")
	fs.StringVar(&opts.dbURL, "db", "", "database URL (overrides DB_URL)")
	fs.StringVar(&opts.dataDir, "data-dir", "", "spreadsheet directory (overrides POOL_DATA_DIR)")
	fs.IntVar(&opts.workers, "workers", 0, "parse workers for remake (overrides POOL_WORKERS)")
	fs.StringVar(&opts.format, "format", "text", "output format: text or json")
	fs.StringVar(&opts.envFile, "env", ".env", "env file loaded before reading the environment")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "use an in-memory store instead of the database")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected arguments %v", errUsage, fs.Args())
	}

	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyOverrides(&cfg, opts)

	logger := logging.ForEnv(cfg.AppEnv, cfg.LogLevel).With("command", command, "service", cfg.ServiceName)
	logging.SetDefault(logger)
	defer func() {
		_ = logger.Sync()
	}()

	format, err := report.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), tracingShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("shutdown tracing", "error", err)
		}
	}()

	ctx, span := tracer.Start(ctx, "playoffpool "+command, trace.WithAttributes(
		attribute.String("command", command),
		attribute.Int("year", opts.year),
		attribute.String("round", opts.round),
		attribute.Bool("dry_run", opts.dryRun),
	))
	defer span.End()

	if err := runCommand(ctx, command, cfg, opts, format, stdout, logger); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func runCommand(ctx context.Context, command string, cfg config.Config, opts options, format report.Format, stdout io.Writer, logger *logging.Logger) error {
	application, err := app.New(ctx, cfg, logger, opts.dryRun)
	if err != nil {
		return fmt.Errorf("build app: %w", err)
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Warn("close app", "error", err)
		}
	}()

	return commands[command](ctx, &env{app: application, opts: opts, format: format, out: stdout, logger: logger})
}

func applyOverrides(cfg *config.Config, opts options) {
	if v := strings.TrimSpace(opts.dbURL); v != "" {
		cfg.DBURL = v
	}
	if v := strings.TrimSpace(opts.dataDir); v != "" {
		cfg.DataDir = v
	}
	if opts.workers > 0 {
		cfg.Workers = opts.workers
	}
}

// parseYears accepts FROM:TO or a single year.
func parseYears(raw string) (int, int, error) {
	fromRaw, toRaw, found := strings.Cut(strings.TrimSpace(raw), ":")
	from, err := strconv.Atoi(strings.TrimSpace(fromRaw))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid -years %q: %w", raw, err)
	}
	if !found {
		return from, from, nil
	}
	to, err := strconv.Atoi(strings.TrimSpace(toRaw))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid -years %q: %w", raw, err)
	}
	return from, to, nil
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: playoffpool <command> [flags]")
	fmt.Fprintln(w, "commands:")
	fmt.Fprintln(w, "  selections    import one round's selections (-year, -round)")
	fmt.Fprintln(w, "  results       import one round's results (-year, -round)")
	fmt.Fprintln(w, "  other-points  import other_points.csv of a year (-year)")
	fmt.Fprintln(w, "  remake        delete and re-import a year range (-years FROM:TO)")
	fmt.Fprintln(w, "  standings     print the season table, or one round with -round")
	fmt.Fprintln(w, "  rules         print the scoring rules of a year (-year)")
	fmt.Fprintln(w, "run 'playoffpool <command> -h' for flags")
}
