package standing

import (
	"sort"

	"github.com/riskibarqy/playoff-pool/internal/domain/playoff"
)

// OtherPoints is a manual adjustment granted outside the scoring rules.
type OtherPoints struct {
	Year       int
	Round      playoff.Round
	Individual string
	Points     int
}

// Row is one participant's points in a ranking.
type Row struct {
	Individual string
	Points     int
}

// SortRows orders by points descending then name.
func SortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		return rows[i].Individual < rows[j].Individual
	})
}

// SeasonRow is one participant's line in the season table. Champions stays
// nil when the participant has no champions score.
type SeasonRow struct {
	Individual  string
	Moniker     string
	Favourite   string
	Cheering    string
	RoundPoints map[playoff.Round]int
	OtherPoints int
	Champions   *int
	Total       int
}

type Season struct {
	Year   int
	Rounds []playoff.Round
	Rows   []SeasonRow
}
