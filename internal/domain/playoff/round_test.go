package playoff

import (
	"errors"
	"testing"
)

func TestParseRound(t *testing.T) {
	tests := map[string]Round{
		"Q":         RoundQualification,
		"1":         RoundOne,
		" 4 ":       RoundFour,
		"Champions": RoundChampions,
		"cup":       RoundChampions,
	}
	for raw, want := range tests {
		got, err := ParseRound(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got != want {
			t.Fatalf("parse %q: got=%s want=%s", raw, got, want)
		}
	}

	if _, err := ParseRound("5"); !errors.Is(err, ErrInvalidRound) {
		t.Fatalf("expected ErrInvalidRound, got %v", err)
	}
}

func TestValidateRound(t *testing.T) {
	if err := ValidateRound(2020, RoundQualification); err != nil {
		t.Fatalf("qualification round should exist in 2020: %v", err)
	}
	if err := ValidateRound(2019, RoundQualification); !errors.Is(err, ErrInvalidRound) {
		t.Fatalf("expected ErrInvalidRound, got %v", err)
	}
	if err := ValidateRound(2005, RoundOne); !errors.Is(err, ErrInvalidYear) {
		t.Fatalf("expected ErrInvalidYear, got %v", err)
	}
	if err := ValidateRound(2012, RoundChampions); err != nil {
		t.Fatalf("champions round should always exist: %v", err)
	}
}

func TestDurationDomain(t *testing.T) {
	if got := RoundOne.MaxDuration(); got != 7 {
		t.Fatalf("unexpected max duration: got=%d want=7", got)
	}
	if got := RoundQualification.MaxDuration(); got != 5 {
		t.Fatalf("unexpected qualification max duration: got=%d want=5", got)
	}
	if RoundQualification.ValidDuration(6) {
		t.Fatalf("6 games is not a valid best-of-5 length")
	}
	if !RoundFour.ValidDuration(4) {
		t.Fatalf("4 games is a valid final length")
	}
}
