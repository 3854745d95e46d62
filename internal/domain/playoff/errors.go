package playoff

import crerr "github.com/cockroachdb/errors"

var (
	ErrInvalidYear       = crerr.New("invalid year")
	ErrInvalidRound      = crerr.New("invalid round")
	ErrInvalidConference = crerr.New("invalid conference")
	ErrUnknownTeam       = crerr.New("unknown team")
	ErrDuplicateEntry    = crerr.New("duplicate entry")
	ErrMissingIndividual = crerr.New("missing individual")
	ErrUnsupportedYear   = crerr.New("unsupported year")
	ErrIncompleteRound   = crerr.New("incomplete round")
	ErrUnknownSeries     = crerr.New("unknown series")
)
