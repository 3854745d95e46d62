package spreadsheet

import (
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/playoff-pool/internal/domain/playoff"
	"github.com/riskibarqy/playoff-pool/internal/domain/standing"
)

// ReadOtherPoints parses a Round,Individual,Points sheet.
func ReadOtherPoints(t Table, year int) ([]standing.OtherPoints, error) {
	roundCol, nameCol, pointsCol := -1, -1, -1
	for i, h := range t.Header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "round":
			roundCol = i
		case "individual", "name":
			nameCol = i
		case "points":
			pointsCol = i
		}
	}
	if roundCol < 0 || nameCol < 0 || pointsCol < 0 {
		return nil, crerr.New("other points sheet needs Round, Individual and Points columns")
	}

	out := make([]standing.OtherPoints, 0, len(t.Rows))
	for i, row := range t.Rows {
		line := i + 2
		rawName := t.Cell(row, nameCol)
		if rawName == "" {
			continue
		}
		round, err := playoff.ParseRound(t.Cell(row, roundCol))
		if err != nil {
			return nil, crerr.Wrapf(err, "line %d", line)
		}
		if err := playoff.ValidateRound(year, round); err != nil {
			return nil, crerr.Wrapf(err, "line %d", line)
		}
		person, err := parseIndividual(rawName)
		if err != nil {
			return nil, crerr.Wrapf(err, "line %d", line)
		}
		points, err := strconv.Atoi(strings.TrimPrefix(t.Cell(row, pointsCol), "+"))
		if err != nil {
			return nil, crerr.Wrapf(err, "line %d points", line)
		}
		out = append(out, standing.OtherPoints{Year: year, Round: round, Individual: person.Name(), Points: points})
	}
	return out, nil
}
