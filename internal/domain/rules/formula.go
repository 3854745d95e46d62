package rules

import "fmt"

// Formula maps (correct, predicted) series lengths to points. Label keeps the
// human-readable form for reports.
type Formula struct {
	Label string
	eval  func(correct, predicted int) int
}

func (f Formula) IsZero() bool {
	return f.eval == nil
}

func (f Formula) Eval(correct, predicted int) int {
	if f.eval == nil {
		return 0
	}
	return f.eval(correct, predicted)
}

// distance rewards closeness: base - |P - C|.
func distance(base int) Formula {
	return Formula{
		Label: fmt.Sprintf("%d - |P - C|", base),
		eval: func(correct, predicted int) int {
			diff := predicted - correct
			if diff < 0 {
				diff = -diff
			}
			return base - diff
		},
	}
}

// sum rewards long predictions for long series: P + C - offset.
func sum(offset int) Formula {
	return Formula{
		Label: fmt.Sprintf("P + C - %d", offset),
		eval: func(correct, predicted int) int {
			return predicted + correct - offset
		},
	}
}
