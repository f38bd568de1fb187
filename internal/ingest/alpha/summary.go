package alpha

import (
	"cmp"
	"slices"

	"github.com/claude/liftcalc/internal/ingest"
	"github.com/claude/liftcalc/internal/models"
	"github.com/claude/liftcalc/internal/rpe"
)

// Summarize estimates a 1RM for every working set and keeps the best per
// exercise. Warmups are not counted. Bodyweight-plus sets and sets outside the
// RPE table (reps above 30, RIR that maps off the half-step grid) are counted
// as skipped. Exercises are ordered by e1RM, heaviest first.
func Summarize(sessions []models.AlphaSession, b rpe.Bias) *ingest.Result {
	result := &ingest.Result{
		SessionsReceived: len(sessions),
		Bias:             b.String(),
		Exercises:        []models.ExerciseBest{},
	}
	best := make(map[string]*models.ExerciseBest)

	for _, s := range sessions {
		for _, ex := range s.Exercises {
			for _, set := range ex.Sets {
				if set.IsWarmup {
					continue
				}
				result.SetsReceived++
				if set.IsBodyweightPlus {
					result.SetsSkipped++
					continue
				}
				setRPE := rpe.RPEFromRIR(set.RIR)
				e1rm, err := rpe.Estimate(rpe.Request{
					Weight: set.WeightKg,
					Reps:   float64(set.Reps),
					RPE:    setRPE,
					Bias:   b,
				})
				if err != nil {
					result.SetsSkipped++
					continue
				}
				result.SetsEstimated++

				cur, ok := best[ex.Name]
				if !ok {
					cur = &models.ExerciseBest{Exercise: ex.Name, Equipment: ex.Equipment}
					best[ex.Name] = cur
				}
				cur.Sets++
				if e1rm > cur.E1RM {
					cur.E1RM = e1rm
					cur.WeightKg = set.WeightKg
					cur.Reps = set.Reps
					cur.RPE = setRPE
					cur.Date = s.Date
				}
			}
		}
	}

	for _, e := range best {
		result.Exercises = append(result.Exercises, *e)
	}
	slices.SortFunc(result.Exercises, func(a, b models.ExerciseBest) int {
		if c := cmp.Compare(b.E1RM, a.E1RM); c != 0 {
			return c
		}
		return cmp.Compare(a.Exercise, b.Exercise)
	})
	return result
}
