package spreadsheet

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/riskibarqy/playoff-pool/internal/domain/playoff"
)

// ParseDuration keeps the leading digit of raw when it is a valid length in
// domain and returns 0 otherwise.
func ParseDuration(raw string, domain []int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw[0] < '0' || raw[0] > '9' {
		return 0
	}
	n := int(raw[0] - '0')
	for _, d := range domain {
		if d == n {
			return n
		}
	}
	return 0
}

// resolveTeam maps a free-text cell onto one of teams. Exact acronym or name
// matches win, then a containing full name, then the closest fuzzy match when
// it points at a single team.
func resolveTeam(raw string, teams []playoff.Team) string {
	if acr := matchTeam(raw, teams); acr != "" {
		return acr
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	owner := make(map[string]string)
	targets := make([]string, 0, len(teams)*3)
	for _, t := range teams {
		for _, name := range t.Names() {
			owner[name] = t.Acronym
			targets = append(targets, name)
		}
	}
	return uniqueBest(fuzzy.RankFindNormalizedFold(raw, targets), owner)
}

// matchTeam is resolveTeam without the fuzzy fallback.
func matchTeam(raw string, teams []playoff.Team) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	for _, t := range teams {
		if t.Matches(raw) {
			return t.Acronym
		}
	}

	lower := strings.ToLower(raw)
	for _, t := range teams {
		if strings.Contains(lower, strings.ToLower(t.Name)) {
			return t.Acronym
		}
	}
	return ""
}

// resolvePlayer maps raw onto one of the designated players. With no
// designated pair the trimmed text is kept as is.
func resolvePlayer(raw string, choices []string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(choices) == 0 {
		return raw
	}
	owner := make(map[string]string, len(choices))
	for _, c := range choices {
		if strings.EqualFold(raw, c) {
			return c
		}
		owner[c] = c
	}
	return uniqueBest(fuzzy.RankFindNormalizedFold(raw, choices), owner)
}

func uniqueBest(ranks fuzzy.Ranks, owner map[string]string) string {
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)

	best := ranks[0].Distance
	found := ""
	for _, r := range ranks {
		if r.Distance != best {
			break
		}
		candidate := owner[r.Target]
		if found != "" && found != candidate {
			return ""
		}
		found = candidate
	}
	return found
}

func seriesTeams(s playoff.Series) []playoff.Team {
	out := make([]playoff.Team, 0, 3)
	for _, acr := range s.Teams() {
		if t, ok := playoff.LookupTeam(acr); ok {
			out = append(out, t)
		}
	}
	return out
}
