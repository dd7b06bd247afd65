package analytics

// step is one rung of a ladder: the first rung whose predicate holds
// contributes its delta and the rest are skipped.
type step struct {
	when  func(v float64) bool
	delta int
}

type ladder []step

func (l ladder) apply(v float64) int {
	for _, s := range l {
		if s.when(v) {
			return s.delta
		}
	}
	return 0
}

func atLeast(threshold float64) func(float64) bool {
	return func(v float64) bool { return v >= threshold }
}

func otherwise(float64) bool { return true }

const healthBase = 50

var (
	// savingsRateLadder scores the share of income retained.
	savingsRateLadder = ladder{
		{atLeast(20), 30},
		{atLeast(10), 20},
		{atLeast(0), 10},
		{otherwise, -20},
	}

	// runwayLadder scores the days left before the balance runs out.
	runwayLadder = ladder{
		{atLeast(180), 20},
		{atLeast(90), 15},
		{atLeast(30), 5},
		{otherwise, -15},
	}
)

// healthScore evaluates the savings ladder, then the runway ladder when the
// runway is known, and clamps the result to [0, 100].
func healthScore(savings float64, daysUntilBroke *int) int {
	score := healthBase + savingsRateLadder.apply(savings)
	if daysUntilBroke != nil {
		score += runwayLadder.apply(float64(*daysUntilBroke))
	}
	return clamp(score, 0, 100)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
