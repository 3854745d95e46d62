package playoff

import crerr "github.com/cockroachdb/errors"

// FirstYear is the first season the pool ran.
const FirstYear = 2006

// yearWithoutConferences is the realigned season played in four divisions;
// every series that year is filed under ConferenceNone.
const yearWithoutConferences = 2021

// yearWithQualification is the only season with a best-of-5 qualification round.
const yearWithQualification = 2020

func ValidateYear(year int) error {
	if year < FirstYear {
		return crerr.Wrapf(ErrInvalidYear, "year %d is before the first season %d", year, FirstYear)
	}
	return nil
}

// HasConferenceSplit reports whether series in the early rounds of year are
// grouped by conference.
func HasConferenceSplit(year int) bool {
	return year != yearWithoutConferences
}

// SeriesRounds lists the rounds of year that are made of series, in play order.
func SeriesRounds(year int) []Round {
	if year == yearWithQualification {
		return []Round{RoundQualification, RoundOne, RoundTwo, RoundThree, RoundFour}
	}
	return []Round{RoundOne, RoundTwo, RoundThree, RoundFour}
}

// Rounds lists every round of year including the champions round.
func Rounds(year int) []Round {
	return append(SeriesRounds(year), RoundChampions)
}
