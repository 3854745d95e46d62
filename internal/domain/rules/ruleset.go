package rules

import (
	"fmt"

	"github.com/riskibarqy/playoff-pool/internal/domain/playoff"
)

// RuleSet is one historical scoring shape. The implementations are closed:
// FlatBonus and Continuous.
type RuleSet interface {
	Year() int
	Champions() Champions
	// Categories lists the named outcome categories with their point value
	// or formula label, in a stable order for reports.
	Categories() []Category
	ruleSet()
}

// Category is a named outcome with either a flat value or a formula label.
type Category struct {
	Name    string
	Points  int
	Formula string
}

func (c Category) IsFormula() bool {
	return c.Formula != ""
}

func (c Category) String() string {
	if c.IsFormula() {
		return fmt.Sprintf("%s: %s", c.Name, c.Formula)
	}
	return fmt.Sprintf("%s: %d", c.Name, c.Points)
}

// RoundPoints splits a flat value between rounds 1-3 and the final.
type RoundPoints struct {
	Early int
	Final int
}

func (p RoundPoints) For(round playoff.Round) int {
	if round.IsFinal() {
		return p.Final
	}
	return p.Early
}

// FlatBonus awards fixed points for a correct team and, independently, for a
// correct series length.
type FlatBonus struct {
	Season          int
	CorrectTeam     RoundPoints
	CorrectLength   RoundPoints
	LongSeriesBonus int
	ChampionsRules  Champions
}

func (r FlatBonus) Year() int            { return r.Season }
func (r FlatBonus) Champions() Champions { return r.ChampionsRules }
func (FlatBonus) ruleSet()               {}

func (r FlatBonus) Categories() []Category {
	out := []Category{
		{Name: "correct_team", Points: r.CorrectTeam.Early},
		{Name: "correct_length", Points: r.CorrectLength.Early},
	}
	if r.CorrectTeam.Final != r.CorrectTeam.Early || r.CorrectLength.Final != r.CorrectLength.Early {
		out = append(out,
			Category{Name: "correct_team_final", Points: r.CorrectTeam.Final},
			Category{Name: "correct_length_final", Points: r.CorrectLength.Final},
		)
	}
	if r.LongSeriesBonus > 0 {
		out = append(out, Category{Name: "correct_7game_series", Points: r.LongSeriesBonus})
	}
	return append(out, r.ChampionsRules.categories()...)
}

// Continuous scores each series with a formula of the actual (C) and
// predicted (P) lengths, chosen by whether the team pick was right.
type Continuous struct {
	Season                 int
	WhenCorrect            Formula
	WhenIncorrect          Formula
	QualificationCorrect   Formula
	QualificationIncorrect Formula
	PlayerBonus            int
	OvertimeExact          int
	OvertimeOffByOne       int
	ChampionsRules         Champions
}

func (r Continuous) Year() int            { return r.Season }
func (r Continuous) Champions() Champions { return r.ChampionsRules }
func (Continuous) ruleSet()               {}

// Formulas returns the pair used in round.
func (r Continuous) Formulas(round playoff.Round) (correct, incorrect Formula) {
	if round == playoff.RoundQualification && !r.QualificationCorrect.IsZero() {
		return r.QualificationCorrect, r.QualificationIncorrect
	}
	return r.WhenCorrect, r.WhenIncorrect
}

func (r Continuous) Categories() []Category {
	out := []Category{
		{Name: "correct_team", Formula: r.WhenCorrect.Label},
		{Name: "incorrect_team", Formula: r.WhenIncorrect.Label},
	}
	if !r.QualificationCorrect.IsZero() {
		out = append(out,
			Category{Name: "qualification_correct_team", Formula: r.QualificationCorrect.Label},
			Category{Name: "qualification_incorrect_team", Formula: r.QualificationIncorrect.Label},
		)
	}
	if r.PlayerBonus > 0 {
		out = append(out, Category{Name: "correct_player", Points: r.PlayerBonus})
	}
	if r.OvertimeExact > 0 {
		out = append(out,
			Category{Name: "correct_overtime", Points: r.OvertimeExact},
			Category{Name: "overtime_off_by_one", Points: r.OvertimeOffByOne},
		)
	}
	return append(out, r.ChampionsRules.categories()...)
}
