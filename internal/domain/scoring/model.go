package scoring

import (
	"github.com/riskibarqy/playoff-pool/internal/domain/playoff"
	"github.com/riskibarqy/playoff-pool/internal/domain/selection"
)

// RoundInput is one series round ready to be scored. Overtime and
// OvertimeResult are empty in seasons without the overtime question.
type RoundInput struct {
	Round          playoff.Round
	Selections     []selection.Selection
	Results        []selection.Result
	Overtime       map[string]selection.Overtime
	OvertimeResult *selection.Overtime
}
