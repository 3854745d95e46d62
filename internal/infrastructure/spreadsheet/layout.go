package spreadsheet

import (
	"regexp"
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/playoff-pool/internal/domain/playoff"
)

const seriesPattern = `([A-Z]{3})-([A-Z]{3})(?:-([A-Z]{3}))?`

var (
	teamHeaderRe   = regexp.MustCompile(`^` + seriesPattern + `$`)
	lengthHeaderRe = regexp.MustCompile(`^` + seriesPattern + `\s+(?i:series length)\s*:?\s*$`)
	playerHeaderRe = regexp.MustCompile(`^` + seriesPattern + `\s+(?i:who will score more points\?)\s*(?:\((.+)\))?\s*$`)
	playerPairRe   = regexp.MustCompile(`(?i)\s*(?:/|\bvs\.?|\bor\b)\s*`)
)

type seriesColumns struct {
	series  playoff.Series
	team    int
	length  int
	player  int
	players []string
}

// layout is the result of the first pass over the header row.
type layout struct {
	individual int
	moniker    int
	overtime   int
	favourite  int
	cheering   int
	series     []*seriesColumns
}

func classifyHeader(header []string, year int, round playoff.Round) (layout, error) {
	l := layout{individual: -1, moniker: -1, overtime: -1, favourite: -1, cheering: -1}
	byName := make(map[string]*seriesColumns)

	for i, raw := range header {
		h := strings.TrimSpace(raw)
		lower := strings.ToLower(h)

		switch {
		case lower == "individual" || lower == "name":
			l.individual = i
		case lower == "moniker":
			l.moniker = i
		case strings.HasPrefix(lower, "how many overtime games"):
			l.overtime = i
		case strings.HasPrefix(lower, "favourite team") || strings.HasPrefix(lower, "favorite team"):
			l.favourite = i
		case strings.HasPrefix(lower, "current team cheering for"):
			l.cheering = i
		case teamHeaderRe.MatchString(h):
			m := teamHeaderRe.FindStringSubmatch(h)
			s := playoff.Series{Year: year, Round: round, HigherSeed: m[1], LowerSeed: m[2], LowerSeedAlternate: m[3]}
			cols := &seriesColumns{series: s, team: i, length: -1, player: -1}
			byName[s.Name()] = cols
			l.series = append(l.series, cols)
		}
	}

	// Length and player columns may appear before or after their team column.
	for i, raw := range header {
		h := strings.TrimSpace(raw)
		if m := lengthHeaderRe.FindStringSubmatch(h); m != nil {
			if cols, ok := byName[seriesName(m[1:4])]; ok {
				cols.length = i
			}
			continue
		}
		if m := playerHeaderRe.FindStringSubmatch(h); m != nil {
			cols, ok := byName[seriesName(m[1:4])]
			if !ok {
				continue
			}
			cols.player = i
			if pair := splitPlayers(m[4]); len(pair) == 2 {
				cols.players = pair
				cols.series.HigherPlayer = pair[0]
				cols.series.LowerPlayer = pair[1]
			}
		}
	}

	if l.individual < 0 {
		return layout{}, crerr.New("no individual column")
	}
	if len(l.series) == 0 {
		return layout{}, crerr.New("no series columns")
	}
	if err := assignConferences(l.series, year, round); err != nil {
		return layout{}, err
	}
	return l, nil
}

func seriesName(parts []string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "-")
}

func splitPlayers(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var out []string
	for _, p := range playerPairRe.Split(raw, -1) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// assignConferences sets conference and per-conference number on every
// series in column order.
func assignConferences(series []*seriesColumns, year int, round playoff.Round) error {
	split := playoff.HasConferenceSplit(year) && !round.IsFinal()
	numbers := make(map[playoff.Conference]int)

	for _, cols := range series {
		conference := playoff.ConferenceNone
		for _, acr := range cols.series.Teams() {
			c, err := playoff.ConferenceOf(year, acr)
			if err != nil {
				return crerr.Wrapf(err, "series %s", cols.series.Name())
			}
			if !split {
				continue
			}
			if conference == playoff.ConferenceNone {
				conference = c
				continue
			}
			if c != conference {
				return crerr.Wrapf(playoff.ErrInvalidConference, "series %s mixes %s and %s", cols.series.Name(), conference, c)
			}
		}
		numbers[conference]++
		cols.series.Conference = conference
		cols.series.Number = numbers[conference]
	}
	return nil
}
