package quality

import (
	"fmt"
	"strings"

	"wardrobe/internal/wardrobe"
)

// BalanceScorer measures category proportions: the tops-to-bottoms ratio
// (onepiece counted as both) and the outerwear and footwear shares of the
// wardrobe.
type BalanceScorer struct{}

func (BalanceScorer) Dimension() Dimension { return DimBalance }

func (BalanceScorer) Score(s *Snapshot) DimensionResult {
	// a onepiece covers two roles, so it counts twice toward the minimum
	effectiveSize := s.ItemsCount() + s.rawCategoryCounts()[wardrobe.CategoryOnepiece]
	if effectiveSize < balanceMinItems {
		return DimensionResult{
			Score:      50,
			Confidence: 0.3,
			Why:        "Need more items to assess balance",
			Factors:    []Factor{FactorInsufficientItems},
		}
	}

	effective := s.effectiveCategoryCounts()
	raw := s.rawCategoryCounts()

	tops := effective[wardrobe.CategoryTop]
	bottoms := effective[wardrobe.CategoryBottom]
	onepieceCount := raw[wardrobe.CategoryOnepiece]
	outerwear := raw[wardrobe.CategoryOuterwear]
	footwear := raw[wardrobe.CategoryFootwear]

	// tops:bottoms banding, ideal 1:1 to 2:1
	var tbScore float64
	if bottoms > 0 {
		ratio := float64(tops) / float64(bottoms)
		switch {
		case ratio >= 1.0 && ratio <= 2.0:
			tbScore = 40
		case ratio >= 0.5 && ratio <= 3.0:
			tbScore = 25
		default:
			tbScore = 10
		}
	} else if tops > 0 {
		tbScore = 5
	}

	// outerwear share, ideal 10-25%
	owRatio := float64(outerwear) / float64(s.ItemsCount())
	var owScore float64
	switch {
	case owRatio >= 0.10 && owRatio <= 0.25:
		owScore = 30
	case owRatio >= 0.05 && owRatio <= 0.35:
		owScore = 20
	case outerwear > 0:
		owScore = 10
	default:
		owScore = 5
	}

	// footwear share, ideal 8-20%
	fwRatio := float64(footwear) / float64(s.ItemsCount())
	var fwScore float64
	switch {
	case fwRatio >= 0.08 && fwRatio <= 0.20:
		fwScore = 30
	case footwear > 0:
		fwScore = 15
	default:
		fwScore = 5
	}

	score := clampScore(tbScore + owScore + fwScore)

	// the imbalance factor looks at raw counts: a onepiece-heavy wardrobe
	// is not imbalanced just because the effective ratio is
	var factors []Factor
	rawTops := raw[wardrobe.CategoryTop]
	rawBottoms := raw[wardrobe.CategoryBottom]
	if rawBottoms > 0 {
		r := float64(rawTops) / float64(rawBottoms)
		if r > 3 || r < 0.5 {
			factors = append(factors, FactorImbalancedTopsBottoms)
		}
	}

	var why strings.Builder
	fmt.Fprintf(&why, "Tops:Bottoms ratio is %d:%d", tops, bottoms)
	if onepieceCount > 0 {
		fmt.Fprintf(&why, " (including %d onepiece)", onepieceCount)
	}
	fmt.Fprintf(&why, ". Outerwear %d items (%.0f%%), Footwear %d items (%.0f%%).",
		outerwear, owRatio*100, footwear, fwRatio*100)

	return DimensionResult{
		Score:      score,
		Confidence: 0.85,
		Why:        why.String(),
		Factors:    factors,
	}
}
