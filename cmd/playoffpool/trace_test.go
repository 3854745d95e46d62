package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestRun_TracesCommand(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(provider)
	t.Cleanup(func() {
		_ = provider.Shutdown(context.Background())
	})

	dir := writeSeason(t)
	_, err := runCLI(t, "standings", "-year", "2009", "-data-dir", dir, "-dry-run")
	require.NoError(t, err)

	spans := exporter.GetSpans()
	byName := make(map[string]tracetest.SpanStub, len(spans))
	for _, span := range spans {
		byName[span.Name] = span
	}

	root, ok := byName["playoffpool standings"]
	require.True(t, ok, "root span missing from %v", spanNames(spans))
	for _, name := range []string{"usecase.IngestionService.Remake", "usecase.ScoringService.SeasonStandings"} {
		child, ok := byName[name]
		require.True(t, ok, "%s missing from %v", name, spanNames(spans))
		require.Equal(t, root.SpanContext.TraceID(), child.SpanContext.TraceID())
	}
}

func spanNames(spans tracetest.SpanStubs) []string {
	out := make([]string, 0, len(spans))
	for _, span := range spans {
		out = append(out, span.Name)
	}
	return out
}
