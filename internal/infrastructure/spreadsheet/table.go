package spreadsheet

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

// Table is a raw sheet export: one header row and the data rows below it.
type Table struct {
	Header []string
	Rows   [][]string
}

// Cell returns the trimmed value at col, or "" when the row is short.
func (t Table) Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func ReadTable(r io.Reader) (Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return Table{}, crerr.Wrap(err, "read csv")
	}
	if len(records) == 0 {
		return Table{}, crerr.New("csv has no header row")
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	return Table{Header: header, Rows: records[1:]}, nil
}

func ReadFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, crerr.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	t, err := ReadTable(f)
	if err != nil {
		return Table{}, crerr.Wrapf(err, "parse %s", path)
	}
	return t, nil
}
