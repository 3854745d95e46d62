package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/playoff-pool/internal/domain/individual"
	"github.com/riskibarqy/playoff-pool/internal/domain/playoff"
	"github.com/riskibarqy/playoff-pool/internal/domain/selection"
	"github.com/riskibarqy/playoff-pool/internal/domain/standing"
)

func sampleRound() selection.RoundSelections {
	series := playoff.Series{Year: 2023, Round: playoff.RoundOne, Conference: playoff.ConferenceEast, Number: 1, HigherSeed: "BOS", LowerSeed: "FLA"}
	return selection.RoundSelections{
		Year:        2023,
		Round:       playoff.RoundOne,
		Individuals: []individual.Individual{{FirstName: "Alice", LastName: "B"}},
		Series:      []playoff.Series{series},
		Selections: []selection.Selection{
			{Individual: "Alice B", Conference: playoff.ConferenceEast, Series: "BOS-FLA", Team: "BOS", Duration: 5},
		},
		Overtime: map[string]selection.Overtime{"Alice B": 2},
		Monikers: []selection.Moniker{{Individual: "Alice B", Moniker: "Oracle"}},
	}
}

func TestSelectionRepository_RoundLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := NewSelectionRepository(store)

	if err := repo.SaveRoundSelections(ctx, sampleRound()); err != nil {
		t.Fatalf("save selections: %v", err)
	}
	if err := repo.SaveRoundSelections(ctx, sampleRound()); !errors.Is(err, playoff.ErrDuplicateEntry) {
		t.Fatalf("expected ErrDuplicateEntry, got %v", err)
	}

	exists, err := NewIndividualRepository(store).Exists(ctx, "Alice B")
	if err != nil || !exists {
		t.Fatalf("individual should be registered: exists=%v err=%v", exists, err)
	}

	overtime := selection.Overtime(3)
	err = repo.SaveRoundResults(ctx, selection.RoundResults{
		Year:     2023,
		Round:    playoff.RoundOne,
		Results:  []selection.Result{{Conference: playoff.ConferenceEast, Series: "BOS-FLA", Team: "FLA", Duration: 7}},
		Overtime: &overtime,
	})
	if err != nil {
		t.Fatalf("save results: %v", err)
	}

	results, _ := repo.ListResults(ctx, 2023, playoff.RoundOne)
	if len(results) != 1 || results[0].Team != "FLA" {
		t.Fatalf("unexpected results: %+v", results)
	}
	ot, ok, _ := repo.GetOvertimeResult(ctx, 2023, playoff.RoundOne)
	if !ok || ot != 3 {
		t.Fatalf("unexpected overtime result: %v %v", ot, ok)
	}
	rounds, _ := repo.ListRounds(ctx, 2023)
	if len(rounds) != 1 || rounds[0] != playoff.RoundOne {
		t.Fatalf("unexpected rounds: %+v", rounds)
	}

	if err := repo.ReplaceSeason(ctx, selection.Season{Year: 2023}); err != nil {
		t.Fatalf("replace with empty season: %v", err)
	}
	if rounds, _ := repo.ListRounds(ctx, 2023); len(rounds) != 0 {
		t.Fatalf("rounds should be gone: %+v", rounds)
	}
	if err := repo.SaveRoundSelections(ctx, sampleRound()); err != nil {
		t.Fatalf("re-import after delete: %v", err)
	}
}

func TestSelectionRepository_ReplaceSeason(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := NewSelectionRepository(store)
	standings := NewStandingRepository(store)

	season := selection.Season{
		Year:        2023,
		Rounds:      []selection.RoundSelections{sampleRound()},
		OtherPoints: []standing.OtherPoints{{Year: 2023, Round: playoff.RoundOne, Individual: "Alice B", Points: 4}},
	}
	if err := repo.ReplaceSeason(ctx, season); err != nil {
		t.Fatalf("replace season: %v", err)
	}
	if err := repo.ReplaceSeason(ctx, season); err != nil {
		t.Fatalf("replace season again: %v", err)
	}
	if points, _ := standings.ListOtherPoints(ctx, 2023); len(points) != 1 {
		t.Fatalf("other points should be replaced, got %+v", points)
	}

	broken := season
	broken.OtherPoints = append(append([]standing.OtherPoints(nil), season.OtherPoints...),
		standing.OtherPoints{Year: 2023, Round: playoff.RoundOne, Individual: "Zed Q", Points: 4})
	if err := repo.ReplaceSeason(ctx, broken); !errors.Is(err, playoff.ErrMissingIndividual) {
		t.Fatalf("expected ErrMissingIndividual, got %v", err)
	}

	points, _ := standings.ListOtherPoints(ctx, 2023)
	if len(points) != 1 || points[0].Individual != "Alice B" || points[0].Points != 4 {
		t.Fatalf("failed replace must keep the stored season, got %+v", points)
	}
	selections, _ := repo.ListSelections(ctx, 2023, playoff.RoundOne)
	if len(selections) != 1 {
		t.Fatalf("failed replace must keep the stored selections, got %+v", selections)
	}
	monikers, _ := repo.ListMonikers(ctx, 2023)
	if len(monikers) != 1 || monikers[0].Moniker != "Oracle" {
		t.Fatalf("failed replace must keep monikers, got %+v", monikers)
	}
}

func TestSelectionRepository_UnknownSeriesResult(t *testing.T) {
	repo := NewSelectionRepository(NewStore())
	err := repo.SaveRoundResults(context.Background(), selection.RoundResults{
		Year:    2023,
		Round:   playoff.RoundTwo,
		Results: []selection.Result{{Conference: playoff.ConferenceEast, Series: "BOS-FLA", Team: "FLA", Duration: 7}},
	})
	if !errors.Is(err, playoff.ErrUnknownSeries) {
		t.Fatalf("expected ErrUnknownSeries, got %v", err)
	}
}

func TestStandingRepository_MissingIndividual(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := NewStandingRepository(store)

	err := repo.AddOtherPoints(ctx, []standing.OtherPoints{{Year: 2023, Round: playoff.RoundOne, Individual: "Nobody", Points: 3}})
	if !errors.Is(err, playoff.ErrMissingIndividual) {
		t.Fatalf("expected ErrMissingIndividual, got %v", err)
	}

	if err := NewSelectionRepository(store).SaveRoundSelections(ctx, sampleRound()); err != nil {
		t.Fatalf("save selections: %v", err)
	}
	if err := repo.AddOtherPoints(ctx, []standing.OtherPoints{{Year: 2023, Round: playoff.RoundOne, Individual: "Alice B", Points: 3}}); err != nil {
		t.Fatalf("add other points: %v", err)
	}
	points, _ := repo.ListOtherPoints(ctx, 2023)
	if len(points) != 1 || points[0].Points != 3 {
		t.Fatalf("unexpected other points: %+v", points)
	}
}
