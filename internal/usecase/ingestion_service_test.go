package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/playoff-pool/internal/domain/playoff"
	"github.com/riskibarqy/playoff-pool/internal/infrastructure/repository/memory"
)

const (
	sheet2009RoundOne = `Individual,NYR-WSH,NYR-WSH series length:,PIT-PHI,PIT-PHI series length:
Alice,NYR,4,PHI,6
Bob,Capitals,7,PIT,six
Results,WSH,7,PIT,6
`
	sheet2009RoundTwo = `Individual,WSH-PIT,WSH-PIT series length:
Alice,PIT,7
Bob,WSH,6
`
	sheet2009Champions = `Individual,Who will win the Stanley Cup?,Who will be the Stanley Cup runner-up?
Alice,Penguins,Red Wings
Bob,Capitals,Sharks
Results,PIT,DET
`
	sheet2009OtherPoints = `Round,Individual,Points
1,Bob,-3
Champions,Alice,+5
`
)

func writeSheet(t *testing.T, dir string, year int, name, content string) {
	t.Helper()
	path := filepath.Join(dir, strconv.Itoa(year), name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write sheet: %v", err)
	}
}

func write2009Season(t *testing.T, dir string) {
	t.Helper()
	writeSheet(t, dir, 2009, "1.csv", sheet2009RoundOne)
	writeSheet(t, dir, 2009, "2.csv", sheet2009RoundTwo)
	writeSheet(t, dir, 2009, "Champions.csv", sheet2009Champions)
	writeSheet(t, dir, 2009, "other_points.csv", sheet2009OtherPoints)
}

func newMemoryServices(t *testing.T, workers int) (string, *IngestionService, *ScoringService) {
	t.Helper()
	dir := t.TempDir()
	store := memory.NewStore()
	selections := memory.NewSelectionRepository(store)
	standings := memory.NewStandingRepository(store)
	return dir,
		NewIngestionService(dir, workers, memory.NewIndividualRepository(store), selections, standings, nil),
		NewScoringService(selections, standings, nil)
}

func TestIngestionService_ImportRoundAndScore(t *testing.T) {
	t.Parallel()

	dir, ingest, scorer := newMemoryServices(t, 1)
	write2009Season(t, dir)
	ctx := context.Background()
	ref := RoundRef{Year: 2009, Round: playoff.RoundOne}

	summary, err := ingest.ImportSelections(ctx, ref)
	if err != nil {
		t.Fatalf("import selections: %v", err)
	}
	if summary.Individuals != 2 || summary.Selections != 4 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if err := ingest.ImportResults(ctx, ref); err != nil {
		t.Fatalf("import results: %v", err)
	}

	points, err := scorer.RoundPoints(ctx, ref)
	if err != nil {
		t.Fatalf("round points: %v", err)
	}
	if points["Alice"] != 5 || points["Bob"] != 25 {
		t.Fatalf("unexpected points: %+v", points)
	}

	if _, err := ingest.ImportSelections(ctx, ref); !errors.Is(err, playoff.ErrDuplicateEntry) {
		t.Fatalf("expected ErrDuplicateEntry on re-import, got %v", err)
	}
	// results can be imported again and replace the previous outcome
	if err := ingest.ImportResults(ctx, ref); err != nil {
		t.Fatalf("re-import results: %v", err)
	}
}

func TestIngestionService_RoundWithoutResults(t *testing.T) {
	t.Parallel()

	dir, ingest, scorer := newMemoryServices(t, 1)
	write2009Season(t, dir)
	ctx := context.Background()
	ref := RoundRef{Year: 2009, Round: playoff.RoundTwo}

	if _, err := ingest.ImportSelections(ctx, ref); err != nil {
		t.Fatalf("import selections: %v", err)
	}
	if err := ingest.ImportResults(ctx, ref); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for sheet without Results row, got %v", err)
	}
	if _, err := scorer.RoundPoints(ctx, ref); !errors.Is(err, playoff.ErrIncompleteRound) {
		t.Fatalf("expected ErrIncompleteRound, got %v", err)
	}
}

func TestIngestionService_InvalidInput(t *testing.T) {
	t.Parallel()

	_, ingest, _ := newMemoryServices(t, 1)
	ctx := context.Background()

	if _, err := ingest.ImportSelections(ctx, RoundRef{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty ref, got %v", err)
	}
	if _, err := ingest.ImportSelections(ctx, RoundRef{Year: 2009, Round: playoff.RoundQualification}); !errors.Is(err, playoff.ErrInvalidRound) {
		t.Fatalf("expected ErrInvalidRound, got %v", err)
	}
	if _, err := ingest.ImportSelections(ctx, RoundRef{Year: 2009, Round: playoff.RoundThree}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing sheet, got %v", err)
	}
	if _, err := ingest.Remake(ctx, RemakeInput{From: 2010, To: 2009}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for reversed range, got %v", err)
	}
	if _, err := ingest.ImportOtherPoints(ctx, 2001); !errors.Is(err, playoff.ErrInvalidYear) {
		t.Fatalf("expected ErrInvalidYear, got %v", err)
	}
}

func TestIngestionService_ImportOtherPointsRequiresIndividuals(t *testing.T) {
	t.Parallel()

	dir, ingest, _ := newMemoryServices(t, 1)
	write2009Season(t, dir)

	if _, err := ingest.ImportOtherPoints(context.Background(), 2009); !errors.Is(err, playoff.ErrMissingIndividual) {
		t.Fatalf("expected ErrMissingIndividual before any selections, got %v", err)
	}
}

func TestIngestionService_Remake(t *testing.T) {
	t.Parallel()

	dir, ingest, scorer := newMemoryServices(t, 4)
	write2009Season(t, dir)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		summary, err := ingest.Remake(ctx, RemakeInput{From: 2009, To: 2009})
		require.NoError(t, err)
		require.Equal(t, 4, summary.SheetCount)
		require.Equal(t, 4, summary.WorkerCount)
		require.Equal(t, 3, summary.Rounds)
		require.Equal(t, 2, summary.Results)
		require.Equal(t, 2, summary.OtherPoints)
	}

	season, err := scorer.SeasonStandings(ctx, 2009)
	require.NoError(t, err)
	require.Equal(t, []playoff.Round{playoff.RoundOne}, season.Rounds)
	require.Len(t, season.Rows, 2)

	alice, bob := season.Rows[0], season.Rows[1]
	require.Equal(t, "Alice", alice.Individual)
	require.Equal(t, 5, alice.RoundPoints[playoff.RoundOne])
	require.Equal(t, 5, alice.OtherPoints)
	require.NotNil(t, alice.Champions)
	require.Equal(t, 75, *alice.Champions)
	require.Equal(t, 85, alice.Total)

	require.Equal(t, "Bob", bob.Individual)
	require.Nil(t, bob.Champions)
	require.Equal(t, 22, bob.Total)
}

func TestIngestionService_RemakeKeepsDataWhenParsingFails(t *testing.T) {
	t.Parallel()

	dir, ingest, scorer := newMemoryServices(t, 2)
	write2009Season(t, dir)
	ctx := context.Background()

	_, err := ingest.Remake(ctx, RemakeInput{From: 2009, To: 2009})
	require.NoError(t, err)

	writeSheet(t, dir, 2009, "2.csv", "Individual,Foo\nAlice,x\n")
	_, err = ingest.Remake(ctx, RemakeInput{From: 2009, To: 2009})
	require.Error(t, err)

	season, err := scorer.SeasonStandings(ctx, 2009)
	require.NoError(t, err)
	require.Len(t, season.Rows, 2)
	require.Equal(t, 85, season.Rows[0].Total)
}

func TestIngestionService_RemakeRejectsUnknownOtherPointsIndividual(t *testing.T) {
	t.Parallel()

	dir, ingest, scorer := newMemoryServices(t, 2)
	write2009Season(t, dir)
	ctx := context.Background()

	_, err := ingest.Remake(ctx, RemakeInput{From: 2009, To: 2009})
	require.NoError(t, err)

	writeSheet(t, dir, 2009, "other_points.csv", sheet2009OtherPoints+"1,Zed Q,4\n")
	_, err = ingest.Remake(ctx, RemakeInput{From: 2009, To: 2009})
	require.ErrorIs(t, err, playoff.ErrMissingIndividual)
	require.ErrorContains(t, err, "Zed Q")

	season, err := scorer.SeasonStandings(ctx, 2009)
	require.NoError(t, err)
	require.Len(t, season.Rows, 2)

	alice, bob := season.Rows[0], season.Rows[1]
	require.Equal(t, "Alice", alice.Individual)
	require.Equal(t, 5, alice.OtherPoints)
	require.Equal(t, 85, alice.Total)
	require.Equal(t, "Bob", bob.Individual)
	require.Equal(t, -3, bob.OtherPoints)
}

func TestIngestionService_RemakeAcceptsIndividualsFromSameSeason(t *testing.T) {
	t.Parallel()

	dir, ingest, _ := newMemoryServices(t, 1)
	write2009Season(t, dir)

	// nothing is stored yet, Alice and Bob come from the 2009 pick sheets
	summary, err := ingest.Remake(context.Background(), RemakeInput{From: 2009, To: 2009})
	require.NoError(t, err)
	require.Equal(t, 2, summary.OtherPoints)
}

func TestNormalizeWorkerCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value, tasks, want int
	}{
		{value: 0, tasks: 5, want: 1},
		{value: 4, tasks: 2, want: 2},
		{value: 32, tasks: 40, want: maxRemakeWorkers},
		{value: 3, tasks: 0, want: 1},
	}
	for _, tc := range tests {
		if got := normalizeWorkerCount(tc.value, tc.tasks); got != tc.want {
			t.Fatalf("normalizeWorkerCount(%d, %d)=%d want %d", tc.value, tc.tasks, got, tc.want)
		}
	}
}
