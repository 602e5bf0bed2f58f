package quality

// TrendDirection classifies the movement between two chronologically
// ordered scores.
type TrendDirection string

const (
	TrendImproving TrendDirection = "improving"
	TrendStable    TrendDirection = "stable"
	TrendDeclining TrendDirection = "declining"
)

// trendThreshold is the total-score delta below which movement counts as
// stable.
const trendThreshold = 2.0

// Trend compares the current score against the previous one and returns
// the direction plus the raw delta.
func Trend(current, previous *ScoreRecord) (TrendDirection, float64) {
	delta := current.TotalScore - previous.TotalScore
	switch {
	case delta > trendThreshold:
		return TrendImproving, delta
	case delta < -trendThreshold:
		return TrendDeclining, delta
	default:
		return TrendStable, delta
	}
}
