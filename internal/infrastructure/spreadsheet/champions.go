package spreadsheet

import (
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/playoff-pool/internal/domain/individual"
	"github.com/riskibarqy/playoff-pool/internal/domain/playoff"
	"github.com/riskibarqy/playoff-pool/internal/domain/selection"
)

type championsLayout struct {
	individual int
	east       int
	west       int
	champion   int
	runnerUp   int
	length     int
}

// ChampionsNormalized is a champions sheet in canonical form. Result is nil
// when the sheet has no Results row.
type ChampionsNormalized struct {
	Round  selection.ChampionsRound
	Result *selection.ChampionsResult
}

func classifyChampionsHeader(header []string) (championsLayout, error) {
	l := championsLayout{individual: -1, east: -1, west: -1, champion: -1, runnerUp: -1, length: -1}
	for i, raw := range header {
		h := strings.ToLower(strings.TrimSpace(raw))
		switch {
		case h == "individual" || h == "name":
			l.individual = i
		case strings.Contains(h, "western conference"):
			l.west = i
		case strings.Contains(h, "eastern conference"):
			l.east = i
		case strings.Contains(h, "runner-up") || strings.Contains(h, "runner up"):
			l.runnerUp = i
		case strings.HasPrefix(h, "length of"):
			l.length = i
		case strings.Contains(h, "stanley cup"):
			l.champion = i
		}
	}
	if l.individual < 0 {
		return championsLayout{}, crerr.New("no individual column")
	}
	if l.champion < 0 && l.east < 0 && l.west < 0 {
		return championsLayout{}, crerr.New("no champions columns")
	}
	return l, nil
}

// NormalizeChampions reshapes the champions sheet. Conference picks are filed
// under the conference the picked team played in that year.
func NormalizeChampions(t Table, year int) (ChampionsNormalized, error) {
	if err := playoff.ValidateYear(year); err != nil {
		return ChampionsNormalized{}, err
	}
	l, err := classifyChampionsHeader(t.Header)
	if err != nil {
		return ChampionsNormalized{}, crerr.Wrapf(err, "classify %d champions header", year)
	}

	teams := playoff.TeamsIn(year)
	out := ChampionsNormalized{Round: selection.ChampionsRound{Year: year}}
	seen := make(map[string]struct{})

	for _, row := range t.Rows {
		rawName := t.Cell(row, l.individual)
		if rawName == "" {
			continue
		}
		pick := readChampionsRow(t, row, l, year, teams)

		if strings.EqualFold(rawName, individual.ResultsName) {
			out.Result = &selection.ChampionsResult{
				East:     pick.East,
				West:     pick.West,
				Champion: pick.Champion,
				Duration: pick.Duration,
			}
			continue
		}

		person, err := parseIndividual(rawName)
		if err != nil {
			return ChampionsNormalized{}, crerr.Wrapf(err, "row for %q", rawName)
		}
		pick.Individual = person.Name()
		if _, dup := seen[pick.Individual]; dup {
			return ChampionsNormalized{}, crerr.Wrapf(playoff.ErrDuplicateEntry, "individual %q appears twice", pick.Individual)
		}
		seen[pick.Individual] = struct{}{}

		out.Round.Individuals = append(out.Round.Individuals, person)
		out.Round.Selections = append(out.Round.Selections, pick)
	}
	return out, nil
}

// readChampionsRow files picks by the conference of the team. A conference
// column fills its own slot first, so a misplaced pick in the other column
// cannot push it out.
func readChampionsRow(t Table, row []string, l championsLayout, year int, teams []playoff.Team) selection.ChampionsSelection {
	var pick selection.ChampionsSelection
	pick.Champion = resolveTeam(t.Cell(row, l.champion), teams)
	pick.Duration = ParseDuration(t.Cell(row, l.length), playoff.RoundFour.DurationDomain())

	teamIn := func(col int) (string, playoff.Conference) {
		acr := resolveTeam(t.Cell(row, col), teams)
		if acr == "" {
			return "", ""
		}
		conference, err := playoff.ConferenceOf(year, acr)
		if err != nil {
			return "", ""
		}
		return acr, conference
	}

	if acr, conference := teamIn(l.east); conference == playoff.ConferenceEast {
		pick.East = acr
	}
	if acr, conference := teamIn(l.west); conference == playoff.ConferenceWest {
		pick.West = acr
	}

	for _, col := range []int{l.east, l.west, l.runnerUp, l.champion} {
		acr, conference := teamIn(col)
		switch {
		case conference == playoff.ConferenceEast && pick.East == "":
			pick.East = acr
		case conference == playoff.ConferenceWest && pick.West == "":
			pick.West = acr
		}
	}
	return pick
}
