package playoff

import (
	"sort"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

// Team is a franchise identified by its three-letter acronym. Conference
// membership is kept per season range because of realignments.
type Team struct {
	Acronym    string
	Name       string
	OtherNames []string
	spans      []conferenceSpan
}

type conferenceSpan struct {
	from       int
	to         int // inclusive, 0 while the span is open
	conference Conference
}

func (s conferenceSpan) contains(year int) bool {
	return year >= s.from && (s.to == 0 || year <= s.to)
}

func east(from, to int) conferenceSpan { return conferenceSpan{from: from, to: to, conference: ConferenceEast} }
func west(from, to int) conferenceSpan { return conferenceSpan{from: from, to: to, conference: ConferenceWest} }

var teams = []Team{
	{Acronym: "ANA", Name: "Anaheim Ducks", OtherNames: []string{"Ducks", "Anaheim"}, spans: []conferenceSpan{west(FirstYear, 0)}},
	{Acronym: "ARI", Name: "Arizona Coyotes", OtherNames: []string{"Coyotes", "Arizona"}, spans: []conferenceSpan{west(2015, 2024)}},
	{Acronym: "ATL", Name: "Atlanta Thrashers", OtherNames: []string{"Thrashers", "Atlanta"}, spans: []conferenceSpan{east(FirstYear, 2011)}},
	{Acronym: "BOS", Name: "Boston Bruins", OtherNames: []string{"Bruins", "Boston"}, spans: []conferenceSpan{east(FirstYear, 0)}},
	{Acronym: "BUF", Name: "Buffalo Sabres", OtherNames: []string{"Sabres", "Buffalo"}, spans: []conferenceSpan{east(FirstYear, 0)}},
	{Acronym: "CAR", Name: "Carolina Hurricanes", OtherNames: []string{"Hurricanes", "Carolina", "Canes"}, spans: []conferenceSpan{east(FirstYear, 0)}},
	{Acronym: "CBJ", Name: "Columbus Blue Jackets", OtherNames: []string{"Blue Jackets", "Columbus"}, spans: []conferenceSpan{west(FirstYear, 2013), east(2014, 0)}},
	{Acronym: "CGY", Name: "Calgary Flames", OtherNames: []string{"Flames", "Calgary"}, spans: []conferenceSpan{west(FirstYear, 0)}},
	{Acronym: "CHI", Name: "Chicago Blackhawks", OtherNames: []string{"Blackhawks", "Chicago", "Hawks"}, spans: []conferenceSpan{west(FirstYear, 0)}},
	{Acronym: "COL", Name: "Colorado Avalanche", OtherNames: []string{"Avalanche", "Colorado", "Avs"}, spans: []conferenceSpan{west(FirstYear, 0)}},
	{Acronym: "DAL", Name: "Dallas Stars", OtherNames: []string{"Stars", "Dallas"}, spans: []conferenceSpan{west(FirstYear, 0)}},
	{Acronym: "DET", Name: "Detroit Red Wings", OtherNames: []string{"Red Wings", "Detroit", "Wings"}, spans: []conferenceSpan{west(FirstYear, 2013), east(2014, 0)}},
	{Acronym: "EDM", Name: "Edmonton Oilers", OtherNames: []string{"Oilers", "Edmonton"}, spans: []conferenceSpan{west(FirstYear, 0)}},
	{Acronym: "FLA", Name: "Florida Panthers", OtherNames: []string{"Panthers", "Florida"}, spans: []conferenceSpan{east(FirstYear, 0)}},
	{Acronym: "LAK", Name: "Los Angeles Kings", OtherNames: []string{"Kings", "Los Angeles", "LA Kings"}, spans: []conferenceSpan{west(FirstYear, 0)}},
	{Acronym: "MIN", Name: "Minnesota Wild", OtherNames: []string{"Wild", "Minnesota"}, spans: []conferenceSpan{west(FirstYear, 0)}},
	{Acronym: "MTL", Name: "Montreal Canadiens", OtherNames: []string{"Canadiens", "Montreal", "Habs", "Montréal Canadiens"}, spans: []conferenceSpan{east(FirstYear, 0)}},
	{Acronym: "NJD", Name: "New Jersey Devils", OtherNames: []string{"Devils", "New Jersey"}, spans: []conferenceSpan{east(FirstYear, 0)}},
	{Acronym: "NSH", Name: "Nashville Predators", OtherNames: []string{"Predators", "Nashville", "Preds"}, spans: []conferenceSpan{west(FirstYear, 0)}},
	{Acronym: "NYI", Name: "New York Islanders", OtherNames: []string{"Islanders"}, spans: []conferenceSpan{east(FirstYear, 0)}},
	{Acronym: "NYR", Name: "New York Rangers", OtherNames: []string{"Rangers"}, spans: []conferenceSpan{east(FirstYear, 0)}},
	{Acronym: "OTT", Name: "Ottawa Senators", OtherNames: []string{"Senators", "Ottawa", "Sens"}, spans: []conferenceSpan{east(FirstYear, 0)}},
	{Acronym: "PHI", Name: "Philadelphia Flyers", OtherNames: []string{"Flyers", "Philadelphia"}, spans: []conferenceSpan{east(FirstYear, 0)}},
	{Acronym: "PHX", Name: "Phoenix Coyotes", OtherNames: []string{"Phoenix"}, spans: []conferenceSpan{west(FirstYear, 2014)}},
	{Acronym: "PIT", Name: "Pittsburgh Penguins", OtherNames: []string{"Penguins", "Pittsburgh", "Pens"}, spans: []conferenceSpan{east(FirstYear, 0)}},
	{Acronym: "SEA", Name: "Seattle Kraken", OtherNames: []string{"Kraken", "Seattle"}, spans: []conferenceSpan{west(2022, 0)}},
	{Acronym: "SJS", Name: "San Jose Sharks", OtherNames: []string{"Sharks", "San Jose"}, spans: []conferenceSpan{west(FirstYear, 0)}},
	{Acronym: "STL", Name: "St. Louis Blues", OtherNames: []string{"Blues", "St Louis", "Saint Louis"}, spans: []conferenceSpan{west(FirstYear, 0)}},
	{Acronym: "TBL", Name: "Tampa Bay Lightning", OtherNames: []string{"Lightning", "Tampa Bay", "Tampa"}, spans: []conferenceSpan{east(FirstYear, 0)}},
	{Acronym: "TOR", Name: "Toronto Maple Leafs", OtherNames: []string{"Maple Leafs", "Toronto", "Leafs"}, spans: []conferenceSpan{east(FirstYear, 0)}},
	{Acronym: "UTA", Name: "Utah Hockey Club", OtherNames: []string{"Utah Mammoth", "Utah"}, spans: []conferenceSpan{west(2025, 0)}},
	{Acronym: "VAN", Name: "Vancouver Canucks", OtherNames: []string{"Canucks", "Vancouver"}, spans: []conferenceSpan{west(FirstYear, 0)}},
	{Acronym: "VGK", Name: "Vegas Golden Knights", OtherNames: []string{"Golden Knights", "Vegas", "Knights"}, spans: []conferenceSpan{west(2018, 0)}},
	{Acronym: "WPG", Name: "Winnipeg Jets", OtherNames: []string{"Jets", "Winnipeg"}, spans: []conferenceSpan{east(2012, 2013), west(2014, 0)}},
	{Acronym: "WSH", Name: "Washington Capitals", OtherNames: []string{"Capitals", "Washington", "Caps"}, spans: []conferenceSpan{east(FirstYear, 0)}},
}

var teamByAcronym = func() map[string]Team {
	out := make(map[string]Team, len(teams))
	for _, t := range teams {
		out[t.Acronym] = t
	}
	return out
}()

func LookupTeam(acronym string) (Team, bool) {
	t, ok := teamByAcronym[strings.ToUpper(strings.TrimSpace(acronym))]
	return t, ok
}

// ConferenceOf returns the conference the team played in during year.
func ConferenceOf(year int, acronym string) (Conference, error) {
	t, ok := LookupTeam(acronym)
	if !ok {
		return "", crerr.Wrapf(ErrUnknownTeam, "team %q", acronym)
	}
	for _, span := range t.spans {
		if span.contains(year) {
			return span.conference, nil
		}
	}
	return "", crerr.Wrapf(ErrUnknownTeam, "team %s has no conference in %d", t.Acronym, year)
}

// Active reports whether the franchise existed under this acronym in year.
func (t Team) Active(year int) bool {
	for _, span := range t.spans {
		if span.contains(year) {
			return true
		}
	}
	return false
}

// Names returns the full name followed by the alternative spellings.
func (t Team) Names() []string {
	return append([]string{t.Name}, t.OtherNames...)
}

// Matches compares raw against the acronym and every known name, ignoring case.
func (t Team) Matches(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	if strings.EqualFold(raw, t.Acronym) {
		return true
	}
	for _, name := range t.Names() {
		if strings.EqualFold(raw, name) {
			return true
		}
	}
	return false
}

// TeamsIn lists the franchises active in year sorted by acronym.
func TeamsIn(year int) []Team {
	out := make([]Team, 0, len(teams))
	for _, t := range teams {
		if t.Active(year) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Acronym < out[j].Acronym })
	return out
}
