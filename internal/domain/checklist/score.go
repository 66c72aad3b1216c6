package checklist

import "github.com/google/uuid"

// CeilingScore is the fixed daily score before deductions.
const CeilingScore = 110

// ComputeScore returns the daily score and the violated item ids for the
// given outcomes. An item absent from outcomes counts as passed. The score
// is CeilingScore minus the summed deductions of violated items and is not
// floored at zero: deductions exceeding the ceiling produce a negative score.
func ComputeScore(items []Item, outcomes map[uuid.UUID]bool) (int, []uuid.UUID) {
	violated := []uuid.UUID{}
	totalDeduction := 0
	for _, item := range items {
		passed, submitted := outcomes[item.ID]
		if submitted && !passed {
			violated = append(violated, item.ID)
			totalDeduction += item.DeductionPoints
		}
	}
	return CeilingScore - totalDeduction, violated
}
