package rules

type ChampionsVariant int

const (
	// WinnerRunnerUp pays for the champion and, separately, for naming the
	// losing finalist among the two conference picks.
	WinnerRunnerUp ChampionsVariant = iota + 1
	// WinnerFinalist pays per correct conference finalist plus the champion.
	WinnerFinalist
)

func (v ChampionsVariant) String() string {
	switch v {
	case WinnerRunnerUp:
		return "winner/runner-up"
	case WinnerFinalist:
		return "winner/finalist"
	default:
		return "unknown"
	}
}

type Champions struct {
	Variant       ChampionsVariant
	ChampionBonus int
	RunnerUpBonus int
	FinalistBonus int
	// KeepChampionBonus is only read by WinnerFinalist; when false the
	// champion pick earns nothing on top of the finalist bonuses.
	KeepChampionBonus bool
	FinalsLengthBonus int
}

func (c Champions) categories() []Category {
	var out []Category
	switch c.Variant {
	case WinnerRunnerUp:
		out = append(out,
			Category{Name: "stanley_cup_winner", Points: c.ChampionBonus},
			Category{Name: "stanley_cup_runner_up", Points: c.RunnerUpBonus},
		)
	case WinnerFinalist:
		out = append(out, Category{Name: "stanley_cup_finalist", Points: c.FinalistBonus})
		if c.KeepChampionBonus {
			out = append(out, Category{Name: "stanley_cup_winner", Points: c.ChampionBonus})
		}
	}
	if c.FinalsLengthBonus > 0 {
		out = append(out, Category{Name: "stanley_cup_length", Points: c.FinalsLengthBonus})
	}
	return out
}
