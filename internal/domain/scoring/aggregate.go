package scoring

import (
	"github.com/riskibarqy/playoff-pool/internal/domain/playoff"
	"github.com/riskibarqy/playoff-pool/internal/domain/standing"
)

// TotalPoints adds the sparse adjustments to the scored points. A name missing
// from either side counts as zero there.
func TotalPoints(selectionPoints, otherPoints map[string]int) []standing.Row {
	totals := make(map[string]int, len(selectionPoints))
	for name, points := range selectionPoints {
		totals[name] += points
	}
	for name, points := range otherPoints {
		totals[name] += points
	}

	rows := make([]standing.Row, 0, len(totals))
	for name, points := range totals {
		rows = append(rows, standing.Row{Individual: name, Points: points})
	}
	standing.SortRows(rows)
	return rows
}

// SeasonInput carries the per-round points of one season. Other holds the
// adjustments by round, including the champions round.
type SeasonInput struct {
	Rounds    map[playoff.Round]map[string]int
	Other     map[playoff.Round]map[string]int
	Champions map[string]*int
}

// SeasonTotals builds the season table. A nil champions score is reported as
// nil but counts as zero in the total.
func SeasonTotals(in SeasonInput) []standing.SeasonRow {
	byName := make(map[string]*standing.SeasonRow)
	row := func(name string) *standing.SeasonRow {
		r, ok := byName[name]
		if !ok {
			r = &standing.SeasonRow{Individual: name, RoundPoints: make(map[playoff.Round]int)}
			byName[name] = r
		}
		return r
	}

	for round, points := range in.Rounds {
		for name, p := range points {
			r := row(name)
			r.RoundPoints[round] += p
			r.Total += p
		}
	}
	for _, points := range in.Other {
		for name, p := range points {
			r := row(name)
			r.OtherPoints += p
			r.Total += p
		}
	}
	for name, p := range in.Champions {
		r := row(name)
		if p == nil {
			continue
		}
		value := *p
		r.Champions = &value
		r.Total += value
	}

	rows := make([]standing.SeasonRow, 0, len(byName))
	for _, r := range byName {
		rows = append(rows, *r)
	}
	sortSeasonRows(rows)
	return rows
}

func sortSeasonRows(rows []standing.SeasonRow) {
	flat := make([]standing.Row, len(rows))
	index := make(map[string]standing.SeasonRow, len(rows))
	for i, r := range rows {
		flat[i] = standing.Row{Individual: r.Individual, Points: r.Total}
		index[r.Individual] = r
	}
	standing.SortRows(flat)
	for i, r := range flat {
		rows[i] = index[r.Individual]
	}
}
