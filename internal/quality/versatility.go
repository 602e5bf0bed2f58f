package quality

import (
	"fmt"

	"github.com/google/uuid"
)

// VersatilityScorer measures item reuse across outfits: how much of the
// wardrobe appears in outfits, how many items are reused in several, and
// how dense the outfit-per-item ratio is.
type VersatilityScorer struct{}

func (VersatilityScorer) Dimension() Dimension { return DimVersatility }

func (VersatilityScorer) Score(s *Snapshot) DimensionResult {
	if s.ItemsCount() < versatilityMinItems {
		return DimensionResult{
			Score:      0,
			Confidence: 0.3,
			Why:        "Need at least 5 items to assess versatility",
			Factors:    []Factor{FactorInsufficientItems},
		}
	}

	outfitsPerItem := make(map[uuid.UUID]int)
	for _, outfit := range s.Outfits {
		for _, oi := range outfit.Items {
			outfitsPerItem[oi.ItemID]++
		}
	}

	if len(outfitsPerItem) == 0 {
		return DimensionResult{
			Score:      30,
			Confidence: 0.5,
			Why:        "No outfits created yet. Create outfits to see item versatility.",
			Factors:    []Factor{FactorNoOutfits},
		}
	}

	itemsInOutfits := len(outfitsPerItem)
	totalPlacements := 0
	itemsInMultiple := 0
	for _, n := range outfitsPerItem {
		totalPlacements += n
		if n > 1 {
			itemsInMultiple++
		}
	}
	avgOutfitsPerItem := float64(totalPlacements) / float64(itemsInOutfits)

	usageRatio := float64(itemsInOutfits) / float64(s.ItemsCount())
	reuseRatio := float64(itemsInMultiple) / float64(itemsInOutfits)
	density := avgOutfitsPerItem / versatilityDensityTarget
	if density > 1 {
		density = 1
	}

	score := clampScore(usageRatio*40 + reuseRatio*40 + density*20)

	var factors []Factor
	if reuseRatio > 0.5 {
		factors = append(factors, FactorHighReuse)
	}
	if usageRatio < 0.3 {
		factors = append(factors, FactorManyUnusedItems)
	}

	why := fmt.Sprintf("%d of %d items appear in multiple outfits. Average %.1f outfits per item.",
		itemsInMultiple, itemsInOutfits, avgOutfitsPerItem)

	confidence := 0.5 + float64(s.OutfitsCount())/20
	if confidence > 0.9 {
		confidence = 0.9
	}

	return DimensionResult{
		Score:      score,
		Confidence: confidence,
		Why:        why,
		Factors:    factors,
	}
}
