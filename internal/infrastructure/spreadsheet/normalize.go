package spreadsheet

import (
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/playoff-pool/internal/domain/individual"
	"github.com/riskibarqy/playoff-pool/internal/domain/playoff"
	"github.com/riskibarqy/playoff-pool/internal/domain/selection"
)

type Options struct {
	Year  int
	Round playoff.Round
	// IncludeResultsRow also emits the Results row as a participant's picks.
	IncludeResultsRow bool
}

// Normalized is one round sheet in canonical form. Results is only
// meaningful when HasResults is set.
type Normalized struct {
	Selections selection.RoundSelections
	Results    selection.RoundResults
	HasResults bool
}

// Normalize reshapes a series round sheet. Unreadable cells become blank
// picks; structural problems in the header fail the whole sheet.
func Normalize(t Table, opts Options) (Normalized, error) {
	if err := playoff.ValidateRound(opts.Year, opts.Round); err != nil {
		return Normalized{}, err
	}
	if opts.Round == playoff.RoundChampions {
		return Normalized{}, crerr.Wrap(playoff.ErrInvalidRound, "champions sheets use NormalizeChampions")
	}

	l, err := classifyHeader(t.Header, opts.Year, opts.Round)
	if err != nil {
		return Normalized{}, crerr.Wrapf(err, "classify %d round %s header", opts.Year, opts.Round)
	}

	out := Normalized{
		Selections: selection.RoundSelections{
			Year:     opts.Year,
			Round:    opts.Round,
			Overtime: make(map[string]selection.Overtime),
		},
		Results: selection.RoundResults{Year: opts.Year, Round: opts.Round},
	}
	for _, cols := range l.series {
		out.Selections.Series = append(out.Selections.Series, cols.series)
	}

	seen := make(map[string]struct{})
	for _, row := range t.Rows {
		rawName := t.Cell(row, l.individual)
		if rawName == "" {
			continue
		}

		if strings.EqualFold(rawName, individual.ResultsName) {
			out.HasResults = true
			out.Results.Results = readResults(t, row, l, opts.Round)
			if l.overtime >= 0 {
				if ot, ok := selection.ParseOvertime(t.Cell(row, l.overtime)); ok {
					out.Results.Overtime = &ot
				}
			}
			if opts.IncludeResultsRow {
				out.Selections.Selections = append(out.Selections.Selections, readPicks(t, row, l, opts.Round, individual.ResultsName)...)
			}
			continue
		}

		person, err := parseIndividual(rawName)
		if err != nil {
			return Normalized{}, crerr.Wrapf(err, "row for %q", rawName)
		}
		name := person.Name()
		if _, dup := seen[name]; dup {
			return Normalized{}, crerr.Wrapf(playoff.ErrDuplicateEntry, "individual %q appears twice", name)
		}
		seen[name] = struct{}{}

		out.Selections.Individuals = append(out.Selections.Individuals, person)
		out.Selections.Selections = append(out.Selections.Selections, readPicks(t, row, l, opts.Round, name)...)
		readSideTables(t, row, l, opts.Year, name, &out.Selections)
	}
	return out, nil
}

func readPicks(t Table, row []string, l layout, round playoff.Round, name string) []selection.Selection {
	out := make([]selection.Selection, 0, len(l.series))
	for _, cols := range l.series {
		out = append(out, selection.Selection{
			Individual: name,
			Conference: cols.series.Conference,
			Series:     cols.series.Name(),
			Team:       resolveTeam(t.Cell(row, cols.team), seriesTeams(cols.series)),
			Duration:   ParseDuration(t.Cell(row, cols.length), round.DurationDomain()),
			Player:     resolvePlayer(t.Cell(row, cols.player), cols.players),
		})
	}
	return out
}

func parseIndividual(raw string) (individual.Individual, error) {
	person, err := individual.Parse(raw)
	if err != nil {
		return individual.Individual{}, err
	}
	if err := person.Validate(); err != nil {
		return individual.Individual{}, err
	}
	return person, nil
}

func readResults(t Table, row []string, l layout, round playoff.Round) []selection.Result {
	picks := readPicks(t, row, l, round, individual.ResultsName)
	out := make([]selection.Result, 0, len(picks))
	for _, p := range picks {
		out = append(out, selection.Result{
			Conference: p.Conference,
			Series:     p.Series,
			Team:       p.Team,
			Duration:   p.Duration,
			Player:     p.Player,
		})
	}
	return out
}

func readSideTables(t Table, row []string, l layout, year int, name string, out *selection.RoundSelections) {
	if moniker := t.Cell(row, l.moniker); moniker != "" {
		out.Monikers = append(out.Monikers, selection.Moniker{Individual: name, Moniker: moniker})
	}
	if l.overtime >= 0 {
		if ot, ok := selection.ParseOvertime(t.Cell(row, l.overtime)); ok {
			out.Overtime[name] = ot
		}
	}

	favourite := preferenceTeam(t.Cell(row, l.favourite), year)
	cheering := preferenceTeam(t.Cell(row, l.cheering), year)
	if favourite != "" || cheering != "" {
		out.Preferences = append(out.Preferences, selection.Preference{Individual: name, Favourite: favourite, Cheering: cheering})
	}
}

// preferenceTeam stores the acronym when the answer names a known team and
// the answer itself otherwise.
func preferenceTeam(raw string, year int) string {
	if raw == "" {
		return ""
	}
	if acr := matchTeam(raw, playoff.TeamsIn(year)); acr != "" {
		return acr
	}
	return raw
}
