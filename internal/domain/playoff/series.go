package playoff

import "strings"

// Series is one best-of-N matchup. LowerSeedAlternate is only set for the
// three-team header variant where the lower seed was still undecided when
// picks were collected. Empty player fields mean no notable-player question.
type Series struct {
	Year               int
	Round              Round
	Conference         Conference
	Number             int
	HigherSeed         string
	LowerSeed          string
	LowerSeedAlternate string
	HigherPlayer       string
	LowerPlayer        string
}

// Name renders the acronym label used as series identity inside a round.
func (s Series) Name() string {
	return strings.Join(s.Teams(), "-")
}

func (s Series) Teams() []string {
	out := []string{s.HigherSeed, s.LowerSeed}
	if s.LowerSeedAlternate != "" {
		out = append(out, s.LowerSeedAlternate)
	}
	return out
}

func (s Series) HasTeam(acronym string) bool {
	for _, t := range s.Teams() {
		if t == acronym {
			return true
		}
	}
	return false
}
