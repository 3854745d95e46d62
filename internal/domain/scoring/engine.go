package scoring

import (
	"github.com/riskibarqy/playoff-pool/internal/domain/playoff"
	"github.com/riskibarqy/playoff-pool/internal/domain/rules"
	"github.com/riskibarqy/playoff-pool/internal/domain/selection"
)

// seriesScorer returns the points of one pick against its series outcome.
type seriesScorer func(pick selection.Selection, res selection.Result) int

// ScoreRound returns the points of every participant that made at least one
// pick (or answered the overtime question) in the round. Picks on series
// without a result score zero.
func ScoreRound(in RoundInput, rs rules.RuleSet) map[string]int {
	score := scorerFor(in.Round, rs)

	results := make(map[selection.Key]selection.Result, len(in.Results))
	for _, res := range in.Results {
		results[res.Key()] = res
	}

	points := make(map[string]int)
	for _, pick := range in.Selections {
		if _, ok := points[pick.Individual]; !ok {
			points[pick.Individual] = 0
		}
		res, ok := results[pick.Key()]
		if !ok {
			continue
		}
		points[pick.Individual] += score(pick, res)
	}

	if cont, ok := rs.(rules.Continuous); ok && cont.OvertimeExact > 0 {
		for name, predicted := range in.Overtime {
			points[name] += overtimePoints(cont, predicted, in.OvertimeResult)
		}
	}
	return points
}

func scorerFor(round playoff.Round, rs rules.RuleSet) seriesScorer {
	switch r := rs.(type) {
	case rules.FlatBonus:
		return flatBonusScorer(round, r)
	case rules.Continuous:
		return continuousScorer(round, r)
	default:
		return func(selection.Selection, selection.Result) int { return 0 }
	}
}

func flatBonusScorer(round playoff.Round, r rules.FlatBonus) seriesScorer {
	teamPoints := r.CorrectTeam.For(round)
	lengthPoints := r.CorrectLength.For(round)
	longest := round.MaxDuration()

	return func(pick selection.Selection, res selection.Result) int {
		total := 0
		if pick.Team != "" && pick.Team == res.Team {
			total += teamPoints
		}
		if pick.Duration > 0 && pick.Duration == res.Duration {
			total += lengthPoints
			if res.Duration == longest {
				total += r.LongSeriesBonus
			}
		}
		return total
	}
}

func continuousScorer(round playoff.Round, r rules.Continuous) seriesScorer {
	whenCorrect, whenIncorrect := r.Formulas(round)

	// A blank team never matches, so a readable length still earns the
	// incorrect-team formula.
	return func(pick selection.Selection, res selection.Result) int {
		total := 0
		if pick.Duration > 0 && res.Duration > 0 {
			if pick.Team != "" && pick.Team == res.Team {
				total += whenCorrect.Eval(res.Duration, pick.Duration)
			} else {
				total += whenIncorrect.Eval(res.Duration, pick.Duration)
			}
		}
		if r.PlayerBonus > 0 && pick.Player != "" && pick.Player == res.Player {
			total += r.PlayerBonus
		}
		return total
	}
}

func overtimePoints(r rules.Continuous, predicted selection.Overtime, actual *selection.Overtime) int {
	if actual == nil {
		return 0
	}
	switch predicted.Steps(*actual) {
	case 0:
		return r.OvertimeExact
	case 1:
		return r.OvertimeOffByOne
	default:
		return 0
	}
}

// ScoreChampions scores the champions round. Participants that earn nothing
// map to nil so a missed round stays distinguishable from zero until the
// season total.
func ScoreChampions(picks []selection.ChampionsSelection, res selection.ChampionsResult, rs rules.RuleSet) map[string]*int {
	c := rs.Champions()
	out := make(map[string]*int, len(picks))
	for _, pick := range picks {
		var total int
		switch c.Variant {
		case rules.WinnerRunnerUp:
			total = winnerRunnerUp(c, pick, res)
		case rules.WinnerFinalist:
			total = winnerFinalist(c, pick, res)
		}
		if c.FinalsLengthBonus > 0 && pick.Duration > 0 && pick.Duration == res.Duration {
			total += c.FinalsLengthBonus
		}
		if total == 0 {
			out[pick.Individual] = nil
			continue
		}
		points := total
		out[pick.Individual] = &points
	}
	return out
}

func winnerRunnerUp(c rules.Champions, pick selection.ChampionsSelection, res selection.ChampionsResult) int {
	total := 0
	if pick.Champion != "" && pick.Champion == res.Champion {
		total += c.ChampionBonus
	}
	runnerUp := res.RunnerUp()
	if runnerUp != "" && (pick.East == runnerUp || pick.West == runnerUp) {
		total += c.RunnerUpBonus
	}
	return total
}

func winnerFinalist(c rules.Champions, pick selection.ChampionsSelection, res selection.ChampionsResult) int {
	total := 0
	if pick.East != "" && pick.East == res.East {
		total += c.FinalistBonus
	}
	if pick.West != "" && pick.West == res.West {
		total += c.FinalistBonus
	}
	if c.KeepChampionBonus && pick.Champion != "" && pick.Champion == res.Champion {
		total += c.ChampionBonus
	}
	return total
}
