package quality

// Scorer maps a wardrobe snapshot to a scored dimension. Scorers are
// stateless and never fail: thin snapshots degrade to explicit
// low-confidence defaults instead of errors so callers always get a usable
// score.
type Scorer interface {
	Dimension() Dimension
	Score(s *Snapshot) DimensionResult
}

// Dimension weights. Must sum to 1.0.
const (
	WeightVersatility  = 0.30
	WeightUtilization  = 0.25
	WeightCompleteness = 0.20
	WeightBalance      = 0.15
	WeightDiversity    = 0.10
)

// Tuning constants. Values are empirically chosen and carried as-is; do not
// re-derive them.
const (
	versatilityMinItems      = 5
	versatilityDensityTarget = 3.0 // outfits per used item for full density credit

	utilizationMinItems        = 3
	utilizationNeglectDays     = 30
	utilizationSingleItemDistr = 15.0 // distribution points when only one item worn

	completenessVarietyTarget = 3 // items per core category for full variety credit
	completenessEventTarget   = 4 // distinct event tags for full event credit

	balanceMinItems = 5

	diversityMinItems      = 3
	diversityColorsTarget  = 8
	diversityPatternTarget = 4
	diversitySeasonTarget  = 4 // fixed four-season universe
	diversityStyleTarget   = 5
	diversityLowColors     = 4
	diversityLowStyles     = 3
)

// Scorers returns the static scorer table in weight order.
func Scorers() []struct {
	Scorer Scorer
	Weight float64
} {
	return []struct {
		Scorer Scorer
		Weight float64
	}{
		{VersatilityScorer{}, WeightVersatility},
		{UtilizationScorer{}, WeightUtilization},
		{CompletenessScorer{}, WeightCompleteness},
		{BalanceScorer{}, WeightBalance},
		{DiversityScorer{}, WeightDiversity},
	}
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
