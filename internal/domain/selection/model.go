package selection

import (
	"github.com/riskibarqy/playoff-pool/internal/domain/individual"
	"github.com/riskibarqy/playoff-pool/internal/domain/playoff"
	"github.com/riskibarqy/playoff-pool/internal/domain/standing"
)

// Key identifies a series inside one round.
type Key struct {
	Conference playoff.Conference
	Series     string
}

// Selection is one participant's pick for one series. Empty Team or Player
// and zero Duration mean the pick was left blank or could not be read.
type Selection struct {
	Individual string
	Conference playoff.Conference
	Series     string
	Team       string
	Duration   int
	Player     string
}

func (s Selection) Key() Key {
	return Key{Conference: s.Conference, Series: s.Series}
}

// Result is the actual outcome of one series.
type Result struct {
	Conference playoff.Conference
	Series     string
	Team       string
	Duration   int
	Player     string
}

func (r Result) Key() Key {
	return Key{Conference: r.Conference, Series: r.Series}
}

// Complete reports whether the series has a winner and a length on record.
func (r Result) Complete() bool {
	return r.Team != "" && r.Duration > 0
}

// ChampionsSelection holds the conference winners and Cup winner picked
// before the playoffs start. Duration is the predicted length of the final.
type ChampionsSelection struct {
	Individual string
	East       string
	West       string
	Champion   string
	Duration   int
}

type ChampionsResult struct {
	East     string
	West     string
	Champion string
	Duration int
}

// RunnerUp returns the finalist that lost the final, or "" while the
// champion is unknown.
func (r ChampionsResult) RunnerUp() string {
	switch r.Champion {
	case "":
		return ""
	case r.East:
		return r.West
	case r.West:
		return r.East
	default:
		return ""
	}
}

type Moniker struct {
	Individual string
	Moniker    string
}

type Preference struct {
	Individual string
	Favourite  string
	Cheering   string
}

// RoundSelections is everything read from one round's pick sheet. It is
// stored atomically.
type RoundSelections struct {
	Year        int
	Round       playoff.Round
	Individuals []individual.Individual
	Series      []playoff.Series
	Selections  []Selection
	Overtime    map[string]Overtime
	Monikers    []Moniker
	Preferences []Preference
}

type RoundResults struct {
	Year     int
	Round    playoff.Round
	Results  []Result
	Overtime *Overtime
}

type ChampionsRound struct {
	Year        int
	Individuals []individual.Individual
	Selections  []ChampionsSelection
}

// Season is one year rebuilt from its sheets.
type Season struct {
	Year            int
	Rounds          []RoundSelections
	Results         []RoundResults
	Champions       *ChampionsRound
	ChampionsResult *ChampionsResult
	OtherPoints     []standing.OtherPoints
}
