package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"
)

const (
	roundOneSheet = `Individual,NYR-WSH,NYR-WSH series length:,PIT-PHI,PIT-PHI series length:
Alice,NYR,4,PHI,6
Bob,Capitals,7,PIT,six
Results,WSH,7,PIT,6
`
	championsSheet = `Individual,Who will win the Stanley Cup?,Who will be the Stanley Cup runner-up?
Alice,Penguins,Red Wings
Bob,Capitals,Sharks
Results,PIT,DET
`
	otherPointsSheet = `Round,Individual,Points
1,Bob,-3
Champions,Alice,+5
`
)

func writeSeason(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"1.csv":            roundOneSheet,
		"Champions.csv":    championsSheet,
		"other_points.csv": otherPointsSheet,
	}
	yearDir := filepath.Join(dir, "2009")
	require.NoError(t, os.MkdirAll(yearDir, 0o755))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(yearDir, name), []byte(content), 0o644))
	}
	return dir
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("APP_ENV", "stage")
	t.Setenv("APP_LOG_LEVEL", "error")
	t.Setenv("UPTRACE_DSN", "")
	args = append(args, "-env", filepath.Join(t.TempDir(), "absent.env"))

	var out bytes.Buffer
	err := run(context.Background(), args, &out)
	return out.String(), err
}

func TestRun_Usage(t *testing.T) {
	if err := run(context.Background(), nil, &bytes.Buffer{}); !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if _, err := runCLI(t, "plot"); !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error for unknown command, got %v", err)
	}
	if _, err := runCLI(t, "rules", "-dry-run"); !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error without -year, got %v", err)
	}
	if _, err := runCLI(t, "selections", "-year", "2009", "-dry-run"); !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error without -round, got %v", err)
	}
}

func TestRun_RulesJSON(t *testing.T) {
	out, err := runCLI(t, "rules", "-year", "2021", "-format", "json", "-dry-run")
	require.NoError(t, err)

	var got struct {
		Year  int    `json:"year"`
		Shape string `json:"shape"`
	}
	require.NoError(t, sonic.UnmarshalString(out, &got))
	require.Equal(t, 2021, got.Year)
	require.Equal(t, "continuous", got.Shape)
}

func TestRun_SeasonStandingsDryRun(t *testing.T) {
	dir := writeSeason(t)

	out, err := runCLI(t, "standings", "-year", "2009", "-data-dir", dir, "-dry-run", "-format", "json")
	require.NoError(t, err)

	var got struct {
		Rounds []string `json:"rounds"`
		Rows   []struct {
			Individual string `json:"individual"`
			Champions  *int   `json:"champions"`
			Total      int    `json:"total"`
		} `json:"rows"`
	}
	require.NoError(t, sonic.UnmarshalString(out, &got))
	require.Equal(t, []string{"1"}, got.Rounds)
	require.Len(t, got.Rows, 2)
	require.Equal(t, "Alice", got.Rows[0].Individual)
	require.Equal(t, 85, got.Rows[0].Total)
	require.Equal(t, "Bob", got.Rows[1].Individual)
	require.Equal(t, 22, got.Rows[1].Total)
	require.Nil(t, got.Rows[1].Champions)
}

func TestRun_RoundStandingsDryRun(t *testing.T) {
	dir := writeSeason(t)

	out, err := runCLI(t, "standings", "-year", "2009", "-round", "1", "-data-dir", dir, "-dry-run")
	require.NoError(t, err)
	require.Contains(t, out, "2009 round 1")
	require.Contains(t, out, "Bob")
}

func TestRun_RemakeDryRun(t *testing.T) {
	dir := writeSeason(t)

	out, err := runCLI(t, "remake", "-years", "2009:2009", "-data-dir", dir, "-dry-run", "-workers", "2")
	require.NoError(t, err)
	require.Contains(t, out, "remade 2009-2009: 3 sheets")
}

func TestParseYears(t *testing.T) {
	cases := []struct {
		raw      string
		from, to int
		wantErr  bool
	}{
		{raw: "2009:2012", from: 2009, to: 2012},
		{raw: " 2015 ", from: 2015, to: 2015},
		{raw: "2009:", wantErr: true},
		{raw: "last:2012", wantErr: true},
	}
	for _, tc := range cases {
		from, to, err := parseYears(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("parseYears(%q) expected error", tc.raw)
			}
			continue
		}
		if err != nil || from != tc.from || to != tc.to {
			t.Fatalf("parseYears(%q)=%d,%d,%v want %d,%d", tc.raw, from, to, err, tc.from, tc.to)
		}
	}
}
