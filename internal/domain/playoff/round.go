package playoff

import (
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

type Round int

const (
	RoundQualification Round = iota
	RoundOne
	RoundTwo
	RoundThree
	RoundFour
	RoundChampions
)

var (
	standardDurations      = []int{4, 5, 6, 7}
	qualificationDurations = []int{3, 4, 5}
)

func (r Round) String() string {
	switch r {
	case RoundQualification:
		return "Q"
	case RoundChampions:
		return "Champions"
	default:
		return strconv.Itoa(int(r))
	}
}

// ParseRound accepts the labels produced by String plus a few spellings used
// in file names and on the command line.
func ParseRound(raw string) (Round, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case "q", "0", "qualification", "qualifying":
		return RoundQualification, nil
	case "1", "2", "3", "4":
		n, _ := strconv.Atoi(value)
		return Round(n), nil
	case "c", "champions", "championship", "cup":
		return RoundChampions, nil
	default:
		return 0, crerr.Wrapf(ErrInvalidRound, "round %q", raw)
	}
}

// ValidateRound checks that r exists in year.
func ValidateRound(year int, r Round) error {
	if err := ValidateYear(year); err != nil {
		return err
	}
	if r == RoundChampions {
		return nil
	}
	for _, candidate := range SeriesRounds(year) {
		if candidate == r {
			return nil
		}
	}
	return crerr.Wrapf(ErrInvalidRound, "round %s is not played in %d", r, year)
}

// DurationDomain returns the valid series lengths of r, shortest first.
func (r Round) DurationDomain() []int {
	if r == RoundQualification {
		return qualificationDurations
	}
	return standardDurations
}

func (r Round) MaxDuration() int {
	domain := r.DurationDomain()
	return domain[len(domain)-1]
}

func (r Round) ValidDuration(d int) bool {
	for _, candidate := range r.DurationDomain() {
		if candidate == d {
			return true
		}
	}
	return false
}

// IsFinal reports whether r is the East-versus-West final series round.
func (r Round) IsFinal() bool {
	return r == RoundFour
}
