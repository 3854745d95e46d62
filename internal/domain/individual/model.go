package individual

import (
	"strings"
	"unicode/utf8"

	crerr "github.com/cockroachdb/errors"
)

// ResultsName is the literal row label carrying actual outcomes in raw sheets.
const ResultsName = "Results"

// Individual is a pool participant. Names are unique across the pool and
// built from the first name plus an optional one-letter last initial.
type Individual struct {
	FirstName string
	LastName  string
}

// Parse splits "First L" (or "First L.") into its parts. A trailing token
// longer than one letter is treated as part of the first name.
func Parse(raw string) (Individual, error) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return Individual{}, crerr.New("individual name is required")
	}
	if len(fields) > 1 {
		last := strings.TrimSuffix(fields[len(fields)-1], ".")
		if utf8.RuneCountInString(last) == 1 {
			return Individual{
				FirstName: strings.Join(fields[:len(fields)-1], " "),
				LastName:  strings.ToUpper(last),
			}, nil
		}
	}
	return Individual{FirstName: strings.Join(fields, " ")}, nil
}

func (i Individual) Name() string {
	if i.LastName == "" {
		return i.FirstName
	}
	return i.FirstName + " " + i.LastName
}

func (i Individual) Validate() error {
	if strings.TrimSpace(i.FirstName) == "" {
		return crerr.New("first name is required")
	}
	if utf8.RuneCountInString(i.LastName) > 1 {
		return crerr.Newf("last name %q must be at most one character", i.LastName)
	}
	if strings.EqualFold(i.Name(), ResultsName) {
		return crerr.Newf("%q is reserved", ResultsName)
	}
	return nil
}
