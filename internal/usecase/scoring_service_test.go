package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/playoff-pool/internal/domain/individual"
	"github.com/riskibarqy/playoff-pool/internal/domain/playoff"
	"github.com/riskibarqy/playoff-pool/internal/domain/rules"
	"github.com/riskibarqy/playoff-pool/internal/domain/selection"
	"github.com/riskibarqy/playoff-pool/internal/domain/standing"
	"github.com/riskibarqy/playoff-pool/internal/infrastructure/repository/memory"
	standingmock "github.com/riskibarqy/playoff-pool/internal/mocks/domain/standing"
)

func seedRoundOne2009(t *testing.T, repo *memory.SelectionRepository) {
	t.Helper()
	ctx := context.Background()
	series := playoff.Series{
		Year:       2009,
		Round:      playoff.RoundOne,
		Conference: playoff.ConferenceEast,
		Number:     1,
		HigherSeed: "WSH",
		LowerSeed:  "NYR",
	}
	round := selection.RoundSelections{
		Year:        2009,
		Round:       playoff.RoundOne,
		Individuals: []individual.Individual{{FirstName: "Alice"}, {FirstName: "Bob"}},
		Series:      []playoff.Series{series},
		Selections: []selection.Selection{
			{Individual: "Alice", Conference: playoff.ConferenceEast, Series: "WSH-NYR", Team: "WSH", Duration: 7},
			{Individual: "Bob", Conference: playoff.ConferenceEast, Series: "WSH-NYR", Team: "NYR", Duration: 6},
		},
		Monikers:    []selection.Moniker{{Individual: "Alice", Moniker: "The Oracle"}},
		Preferences: []selection.Preference{{Individual: "Bob", Favourite: "WSH", Cheering: "NYR"}},
	}
	if err := repo.SaveRoundSelections(ctx, round); err != nil {
		t.Fatalf("save selections: %v", err)
	}
	results := selection.RoundResults{
		Year:    2009,
		Round:   playoff.RoundOne,
		Results: []selection.Result{{Conference: playoff.ConferenceEast, Series: "WSH-NYR", Team: "WSH", Duration: 7}},
	}
	if err := repo.SaveRoundResults(ctx, results); err != nil {
		t.Fatalf("save results: %v", err)
	}
}

func otherPoints2009() []standing.OtherPoints {
	return []standing.OtherPoints{
		{Year: 2009, Round: playoff.RoundOne, Individual: "Alice", Points: 2},
		{Year: 2009, Round: playoff.RoundOne, Individual: "Bob", Points: 4},
		{Year: 2009, Round: playoff.RoundTwo, Individual: "Bob", Points: 100},
	}
}

func TestScoringService_RoundStandings_UsingMockery(t *testing.T) {
	t.Parallel()

	selections := memory.NewSelectionRepository(memory.NewStore())
	seedRoundOne2009(t, selections)
	standingRepo := standingmock.NewRepository(t)
	standingRepo.
		On("ListOtherPoints", mock.Anything, 2009).
		Return(otherPoints2009(), nil).
		Once()

	service := NewScoringService(selections, standingRepo, nil)
	rows, err := service.RoundStandings(context.Background(), RoundRef{Year: 2009, Round: playoff.RoundOne})
	require.NoError(t, err)
	assert.Equal(t, []standing.Row{
		{Individual: "Alice", Points: 17},
		{Individual: "Bob", Points: 4},
	}, rows)
}

func TestScoringService_SeasonStandings_UsingMockery(t *testing.T) {
	t.Parallel()

	selections := memory.NewSelectionRepository(memory.NewStore())
	seedRoundOne2009(t, selections)
	standingRepo := standingmock.NewRepository(t)
	standingRepo.
		On("ListOtherPoints", mock.Anything, 2009).
		Return(otherPoints2009(), nil).
		Once()

	service := NewScoringService(selections, standingRepo, nil)
	season, err := service.SeasonStandings(context.Background(), 2009)
	require.NoError(t, err)
	require.Equal(t, []playoff.Round{playoff.RoundOne}, season.Rounds)
	require.Len(t, season.Rows, 2)

	bob, alice := season.Rows[0], season.Rows[1]
	assert.Equal(t, "Bob", bob.Individual)
	assert.Equal(t, 104, bob.Total)
	assert.Equal(t, "WSH", bob.Favourite)
	assert.Equal(t, "NYR", bob.Cheering)
	assert.Nil(t, bob.Champions)

	assert.Equal(t, "Alice", alice.Individual)
	assert.Equal(t, 15, alice.RoundPoints[playoff.RoundOne])
	assert.Equal(t, 17, alice.Total)
	assert.Equal(t, "The Oracle", alice.Moniker)
}

func TestScoringService_OtherPointsFailure(t *testing.T) {
	t.Parallel()

	selections := memory.NewSelectionRepository(memory.NewStore())
	seedRoundOne2009(t, selections)
	standingRepo := standingmock.NewRepository(t)
	storeErr := errors.New("connection reset")
	standingRepo.
		On("ListOtherPoints", mock.Anything, 2009).
		Return(nil, storeErr).
		Once()

	service := NewScoringService(selections, standingRepo, nil)
	_, err := service.RoundStandings(context.Background(), RoundRef{Year: 2009, Round: playoff.RoundOne})
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestScoringService_RoundPointsErrors(t *testing.T) {
	t.Parallel()

	service := NewScoringService(memory.NewSelectionRepository(memory.NewStore()), standingmock.NewRepository(t), nil)
	ctx := context.Background()

	if _, err := service.RoundPoints(ctx, RoundRef{Year: 2009, Round: playoff.RoundChampions}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for champions round, got %v", err)
	}
	if _, err := service.RoundPoints(ctx, RoundRef{Year: 2009, Round: playoff.RoundOne}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty round, got %v", err)
	}
	if _, err := service.RoundPoints(ctx, RoundRef{Year: 2030, Round: playoff.RoundOne}); !errors.Is(err, playoff.ErrUnsupportedYear) {
		t.Fatalf("expected ErrUnsupportedYear, got %v", err)
	}
}

func TestScoringService_Rules(t *testing.T) {
	t.Parallel()

	service := NewScoringService(nil, nil, nil)
	ctx := context.Background()

	rs, err := service.Rules(ctx, 2021)
	if err != nil {
		t.Fatalf("rules: %v", err)
	}
	if _, ok := rs.(rules.Continuous); !ok {
		t.Fatalf("expected continuous rules for 2021, got %T", rs)
	}
	if _, err := service.Rules(ctx, 2005); !errors.Is(err, playoff.ErrInvalidYear) {
		t.Fatalf("expected ErrInvalidYear, got %v", err)
	}
}
