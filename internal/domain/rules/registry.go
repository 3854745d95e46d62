package rules

import (
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/playoff-pool/internal/domain/playoff"
)

// LastSupportedYear is the most recent season with a known rule shape.
const LastSupportedYear = 2026

type era struct {
	from  int
	to    int
	build func(year int) RuleSet
}

var (
	runnerUp50x25 = Champions{Variant: WinnerRunnerUp, ChampionBonus: 50, RunnerUpBonus: 25}
	runnerUp50x30 = Champions{Variant: WinnerRunnerUp, ChampionBonus: 50, RunnerUpBonus: 30}
	finalist25    = Champions{Variant: WinnerFinalist, FinalistBonus: 25, ChampionBonus: 50, KeepChampionBonus: true}
	finalist30    = Champions{Variant: WinnerFinalist, FinalistBonus: 30, ChampionBonus: 50, KeepChampionBonus: true}
)

var eras = []era{
	{from: 2006, to: 2007, build: func(year int) RuleSet {
		return FlatBonus{
			Season:          year,
			CorrectTeam:     RoundPoints{Early: 10, Final: 10},
			CorrectLength:   RoundPoints{Early: 7, Final: 7},
			LongSeriesBonus: 2,
			ChampionsRules:  runnerUp50x25,
		}
	}},
	{from: 2008, to: 2009, build: func(year int) RuleSet {
		return FlatBonus{
			Season:         year,
			CorrectTeam:    RoundPoints{Early: 10, Final: 15},
			CorrectLength:  RoundPoints{Early: 5, Final: 10},
			ChampionsRules: runnerUp50x25,
		}
	}},
	{from: 2010, to: 2012, build: func(year int) RuleSet {
		return FlatBonus{
			Season:         year,
			CorrectTeam:    RoundPoints{Early: 10, Final: 20},
			CorrectLength:  RoundPoints{Early: 5, Final: 10},
			ChampionsRules: runnerUp50x30,
		}
	}},
	{from: 2013, to: 2013, build: func(year int) RuleSet {
		return FlatBonus{
			Season:         year,
			CorrectTeam:    RoundPoints{Early: 15, Final: 20},
			CorrectLength:  RoundPoints{Early: 7, Final: 10},
			ChampionsRules: finalist25,
		}
	}},
	{from: 2014, to: 2016, build: func(year int) RuleSet {
		return FlatBonus{
			Season:         year,
			CorrectTeam:    RoundPoints{Early: 10, Final: 20},
			CorrectLength:  RoundPoints{Early: 5, Final: 10},
			ChampionsRules: finalist25,
		}
	}},
	{from: 2017, to: 2019, build: func(year int) RuleSet {
		return FlatBonus{
			Season:         year,
			CorrectTeam:    RoundPoints{Early: 10, Final: 15},
			CorrectLength:  RoundPoints{Early: 7, Final: 10},
			ChampionsRules: finalist30,
		}
	}},
	{from: 2020, to: 2020, build: func(year int) RuleSet {
		return Continuous{
			Season:                 year,
			WhenCorrect:            distance(9),
			WhenIncorrect:          sum(8),
			QualificationCorrect:   distance(7),
			QualificationIncorrect: sum(6),
			ChampionsRules:         finalist30,
		}
	}},
	{from: 2021, to: 2021, build: func(year int) RuleSet {
		return Continuous{
			Season:         year,
			WhenCorrect:    distance(9),
			WhenIncorrect:  sum(8),
			ChampionsRules: finalist30,
		}
	}},
	{from: 2022, to: 2022, build: func(year int) RuleSet {
		champions := finalist30
		champions.FinalsLengthBonus = 10
		return Continuous{
			Season:         year,
			WhenCorrect:    distance(9),
			WhenIncorrect:  sum(8),
			PlayerBonus:    3,
			ChampionsRules: champions,
		}
	}},
	{from: 2023, to: LastSupportedYear, build: func(year int) RuleSet {
		champions := finalist30
		champions.KeepChampionBonus = false
		champions.FinalsLengthBonus = 10
		return Continuous{
			Season:           year,
			WhenCorrect:      distance(9),
			WhenIncorrect:    sum(8),
			PlayerBonus:      3,
			OvertimeExact:    5,
			OvertimeOffByOne: 2,
			ChampionsRules:   champions,
		}
	}},
}

// RulesFor returns the rule shape used in year.
func RulesFor(year int) (RuleSet, error) {
	if err := playoff.ValidateYear(year); err != nil {
		return nil, err
	}
	for _, e := range eras {
		if year >= e.from && year <= e.to {
			return e.build(year), nil
		}
	}
	return nil, crerr.Wrapf(playoff.ErrUnsupportedYear, "no scoring rules for %d", year)
}
