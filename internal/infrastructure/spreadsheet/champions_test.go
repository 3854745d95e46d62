package spreadsheet

import (
	"errors"
	"testing"

	"github.com/riskibarqy/playoff-pool/internal/domain/playoff"
)

func TestNormalizeChampions_Finalists(t *testing.T) {
	const sheet = `Individual,Who will win the Western Conference?,Who will win the Eastern Conference?,Who will win the Stanley Cup?,Length of Stanley Cup Final
Alice B,Oilers,Panthers,Florida Panthers,7
Bob,Rangers,Stars,Dallas,9
Results,Edmonton Oilers,Florida Panthers,Panthers,7
`
	got, err := NormalizeChampions(mustTable(t, sheet), 2024)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(got.Round.Selections) != 2 {
		t.Fatalf("expected 2 selections, got %+v", got.Round.Selections)
	}

	alice := got.Round.Selections[0]
	if alice.Individual != "Alice B" || alice.East != "FLA" || alice.West != "EDM" || alice.Champion != "FLA" || alice.Duration != 7 {
		t.Fatalf("unexpected Alice pick: %+v", alice)
	}
	bob := got.Round.Selections[1]
	if bob.East != "NYR" || bob.West != "DAL" || bob.Champion != "DAL" || bob.Duration != 0 {
		t.Fatalf("picks should be filed by conference: %+v", bob)
	}

	if got.Result == nil || got.Result.Champion != "FLA" || got.Result.West != "EDM" || got.Result.Duration != 7 {
		t.Fatalf("unexpected result: %+v", got.Result)
	}
}

func TestNormalizeChampions_ConferenceColumnKeepsOwnPick(t *testing.T) {
	const sheet = `Individual,Who will win the Eastern Conference?,Who will win the Western Conference?,Who will win the Stanley Cup?
Alice,Stars,Oilers,Panthers
`
	got, err := NormalizeChampions(mustTable(t, sheet), 2024)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	pick := got.Round.Selections[0]
	if pick.West != "EDM" || pick.East != "FLA" || pick.Champion != "FLA" {
		t.Fatalf("west column pick should win over a misplaced east pick: %+v", pick)
	}
}

func TestNormalizeChampions_RunnerUp(t *testing.T) {
	const sheet = `Individual,Who will win the Stanley Cup?,Who will be the Stanley Cup runner-up?
Alice,Hurricanes,Oilers
Results,CAR,EDM
`
	got, err := NormalizeChampions(mustTable(t, sheet), 2006)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	pick := got.Round.Selections[0]
	if pick.Champion != "CAR" || pick.East != "CAR" || pick.West != "EDM" {
		t.Fatalf("unexpected pick: %+v", pick)
	}
	if got.Result.RunnerUp() != "EDM" {
		t.Fatalf("unexpected runner-up: %q", got.Result.RunnerUp())
	}
}

func TestNormalizeChampions_Errors(t *testing.T) {
	if _, err := NormalizeChampions(mustTable(t, "Individual,Foo\nAlice,x\n"), 2019); err == nil {
		t.Fatalf("expected error for sheet without champions columns")
	}
	if _, err := NormalizeChampions(mustTable(t, "Individual,Who will win the Stanley Cup?\n"), 2001); !errors.Is(err, playoff.ErrInvalidYear) {
		t.Fatalf("expected ErrInvalidYear, got %v", err)
	}
}

func TestReadOtherPoints(t *testing.T) {
	const sheet = `Round,Individual,Points
1,Alice B.,5
Champions,Bob,-3
2,,4
`
	got, err := ReadOtherPoints(mustTable(t, sheet), 2019)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %+v", got)
	}
	if got[0].Individual != "Alice B" || got[0].Round != playoff.RoundOne || got[0].Points != 5 {
		t.Fatalf("unexpected row: %+v", got[0])
	}
	if got[1].Round != playoff.RoundChampions || got[1].Points != -3 {
		t.Fatalf("unexpected row: %+v", got[1])
	}

	if _, err := ReadOtherPoints(mustTable(t, "Round,Individual,Points\nQ,Alice,1\n"), 2019); !errors.Is(err, playoff.ErrInvalidRound) {
		t.Fatalf("expected ErrInvalidRound, got %v", err)
	}
	if _, err := ReadOtherPoints(mustTable(t, "Round,Individual\n1,Alice\n"), 2019); err == nil {
		t.Fatalf("expected error for missing points column")
	}
	if _, err := ReadOtherPoints(mustTable(t, "Round,Individual,Points\n1,results,2\n"), 2019); err == nil {
		t.Fatalf("expected error for reserved Results name")
	}
}

func TestParseIndividual(t *testing.T) {
	person, err := parseIndividual("  Alice  b. ")
	if err != nil || person.Name() != "Alice B" {
		t.Fatalf("parse=%+v,%v want Alice B", person, err)
	}
	for _, raw := range []string{"", "RESULTS"} {
		if _, err := parseIndividual(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestRoundFile(t *testing.T) {
	if got := RoundFile("/data", 2020, playoff.RoundQualification); got != "/data/2020/Q.csv" {
		t.Fatalf("unexpected path: %q", got)
	}
	if got := OtherPointsFile("/data", 2020); got != "/data/2020/other_points.csv" {
		t.Fatalf("unexpected path: %q", got)
	}
}
