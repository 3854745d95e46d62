package report

import (
	"fmt"
	"io"
	"strings"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/playoff-pool/internal/domain/playoff"
	"github.com/riskibarqy/playoff-pool/internal/domain/rules"
	"github.com/riskibarqy/playoff-pool/internal/domain/standing"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

var ErrUnknownFormat = crerr.New("unknown report format")

func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", crerr.Wrapf(ErrUnknownFormat, "format %q", raw)
	}
}

type seasonView struct {
	Year   int             `json:"year"`
	Rounds []string        `json:"rounds"`
	Rows   []seasonRowView `json:"rows"`
}

type seasonRowView struct {
	Rank        int            `json:"rank"`
	Individual  string         `json:"individual"`
	Moniker     string         `json:"moniker,omitempty"`
	Favourite   string         `json:"favourite,omitempty"`
	Cheering    string         `json:"cheering,omitempty"`
	RoundPoints map[string]int `json:"round_points"`
	OtherPoints int            `json:"other_points"`
	Champions   *int           `json:"champions"`
	Total       int            `json:"total"`
}

type roundView struct {
	Year  int            `json:"year"`
	Round string         `json:"round"`
	Rows  []roundRowView `json:"rows"`
}

type roundRowView struct {
	Rank       int    `json:"rank"`
	Individual string `json:"individual"`
	Points     int    `json:"points"`
}

type rulesView struct {
	Year       int            `json:"year"`
	Shape      string         `json:"shape"`
	Champions  string         `json:"champions"`
	Categories []categoryView `json:"categories"`
}

type categoryView struct {
	Name    string `json:"name"`
	Points  int    `json:"points,omitempty"`
	Formula string `json:"formula,omitempty"`
}

// WriteSeason renders the season table. A participant without a champions
// score shows "-" in text and null in JSON.
func WriteSeason(w io.Writer, format Format, season standing.Season) error {
	totals := make([]int, len(season.Rows))
	for i, row := range season.Rows {
		totals[i] = row.Total
	}
	ranks := rank(totals)

	if format == FormatJSON {
		view := seasonView{Year: season.Year, Rounds: roundLabels(season.Rounds), Rows: make([]seasonRowView, 0, len(season.Rows))}
		for i, row := range season.Rows {
			points := make(map[string]int, len(row.RoundPoints))
			for round, p := range row.RoundPoints {
				points[round.String()] = p
			}
			view.Rows = append(view.Rows, seasonRowView{
				Rank:        ranks[i],
				Individual:  row.Individual,
				Moniker:     row.Moniker,
				Favourite:   row.Favourite,
				Cheering:    row.Cheering,
				RoundPoints: points,
				OtherPoints: row.OtherPoints,
				Champions:   row.Champions,
				Total:       row.Total,
			})
		}
		return writeJSON(w, view)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	width := nameWidth(len("Individual"), len(season.Rows), func(i int) string { return displayName(season.Rows[i]) })
	fmt.Fprintf(buf, "%d standings\n", season.Year)
	fmt.Fprintf(buf, "%-4s  %-*s", "Rank", width, "Individual")
	for _, round := range season.Rounds {
		fmt.Fprintf(buf, "  %5s", "R"+round.String())
	}
	fmt.Fprintf(buf, "  %5s  %9s  %5s\n", "Other", "Champions", "Total")

	for i, row := range season.Rows {
		fmt.Fprintf(buf, "%-4d  %-*s", ranks[i], width, displayName(row))
		for _, round := range season.Rounds {
			fmt.Fprintf(buf, "  %5d", row.RoundPoints[round])
		}
		champions := "-"
		if row.Champions != nil {
			champions = fmt.Sprint(*row.Champions)
		}
		fmt.Fprintf(buf, "  %5d  %9s  %5d\n", row.OtherPoints, champions, row.Total)
	}
	_, err := w.Write(buf.B)
	return err
}

func WriteRound(w io.Writer, format Format, year int, round playoff.Round, rows []standing.Row) error {
	points := make([]int, len(rows))
	for i, row := range rows {
		points[i] = row.Points
	}
	ranks := rank(points)

	if format == FormatJSON {
		view := roundView{Year: year, Round: round.String(), Rows: make([]roundRowView, 0, len(rows))}
		for i, row := range rows {
			view.Rows = append(view.Rows, roundRowView{Rank: ranks[i], Individual: row.Individual, Points: row.Points})
		}
		return writeJSON(w, view)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	width := nameWidth(len("Individual"), len(rows), func(i int) string { return rows[i].Individual })
	fmt.Fprintf(buf, "%d round %s\n", year, round)
	fmt.Fprintf(buf, "%-4s  %-*s  %6s\n", "Rank", width, "Individual", "Points")
	for i, row := range rows {
		fmt.Fprintf(buf, "%-4d  %-*s  %6d\n", ranks[i], width, row.Individual, row.Points)
	}
	_, err := w.Write(buf.B)
	return err
}

func WriteRules(w io.Writer, format Format, rs rules.RuleSet) error {
	shape := "flat bonus"
	if _, ok := rs.(rules.Continuous); ok {
		shape = "continuous"
	}
	categories := rs.Categories()

	if format == FormatJSON {
		view := rulesView{
			Year:       rs.Year(),
			Shape:      shape,
			Champions:  rs.Champions().Variant.String(),
			Categories: make([]categoryView, 0, len(categories)),
		}
		for _, c := range categories {
			view.Categories = append(view.Categories, categoryView{Name: c.Name, Points: c.Points, Formula: c.Formula})
		}
		return writeJSON(w, view)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	fmt.Fprintf(buf, "%d rules (%s, champions %s)\n", rs.Year(), shape, rs.Champions().Variant)
	for _, c := range categories {
		buf.WriteString(c.String())
		buf.WriteByte('\n')
	}
	_, err := w.Write(buf.B)
	return err
}

// WriteSummary reports the outcome of an import: line in text mode,
// payload in JSON mode.
func WriteSummary(w io.Writer, format Format, line string, payload any) error {
	if format == FormatJSON {
		return writeJSON(w, payload)
	}
	_, err := io.WriteString(w, line+"\n")
	return err
}

func writeJSON(w io.Writer, payload any) error {
	if err := sonic.ConfigDefault.NewEncoder(w).Encode(payload); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// rank assigns competition ranks to values already sorted descending:
// equal values share a rank and the next rank skips ahead.
func rank(values []int) []int {
	out := make([]int, len(values))
	for i, v := range values {
		if i > 0 && v == values[i-1] {
			out[i] = out[i-1]
			continue
		}
		out[i] = i + 1
	}
	return out
}

func roundLabels(rounds []playoff.Round) []string {
	out := make([]string, len(rounds))
	for i, r := range rounds {
		out[i] = r.String()
	}
	return out
}

func displayName(row standing.SeasonRow) string {
	if row.Moniker == "" {
		return row.Individual
	}
	return row.Individual + " (" + row.Moniker + ")"
}

func nameWidth(floor, n int, name func(int) string) int {
	width := floor
	for i := 0; i < n; i++ {
		if l := len([]rune(name(i))); l > width {
			width = l
		}
	}
	return width
}
