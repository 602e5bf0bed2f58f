package quality

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// UtilizationScorer measures active wear: how much of the wardrobe gets
// worn at all, how much was worn recently, and how evenly wear is spread
// across items (Gini coefficient of the per-item wear distribution).
type UtilizationScorer struct{}

func (UtilizationScorer) Dimension() Dimension { return DimUtilization }

func (UtilizationScorer) Score(s *Snapshot) DimensionResult {
	if s.ItemsCount() < utilizationMinItems {
		return DimensionResult{
			Score:      0,
			Confidence: 0.2,
			Why:        "Need at least 3 items to assess utilization",
			Factors:    []Factor{FactorInsufficientItems},
		}
	}

	stats := s.wearStats()
	itemsWorn := len(stats.counts)
	neverWorn := s.ItemsCount() - itemsWorn

	if stats.totalWear == 0 {
		return DimensionResult{
			Score:      20,
			Confidence: 0.4,
			Why:        "No wear logs recorded yet. Start logging what you wear!",
			Factors:    []Factor{FactorNoWearLogs},
		}
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -utilizationNeglectDays)
	neglected := 0
	for _, last := range stats.lastWorn {
		if last.Before(cutoff) {
			neglected++
		}
	}

	wornRatio := float64(itemsWorn) / float64(s.ItemsCount())
	activeRatio := float64(itemsWorn-neglected) / float64(s.ItemsCount())

	var distributionScore float64
	if itemsWorn > 1 {
		distributionScore = (1 - wearGini(stats.counts)) * 30
	} else {
		distributionScore = utilizationSingleItemDistr
	}

	score := clampScore(wornRatio*35 + activeRatio*35 + distributionScore)

	var factors []Factor
	if float64(neverWorn) > float64(s.ItemsCount())*0.3 {
		factors = append(factors, FactorManyUnwornItems)
	}
	if float64(neglected) > float64(itemsWorn)*0.5 {
		factors = append(factors, FactorManyNeglectedItems)
	}

	why := fmt.Sprintf("%d of %d items worn. %d never worn, %d neglected (30+ days).",
		itemsWorn, s.ItemsCount(), neverWorn, neglected)

	confidence := 0.4 + float64(stats.totalWear)/50
	if confidence > 0.95 {
		confidence = 0.95
	}

	return DimensionResult{
		Score:      score,
		Confidence: confidence,
		Why:        why,
		Factors:    factors,
	}
}

// wearGini computes the Gini coefficient of the wear-count distribution:
// 0 is perfectly even, 1 is all wear on one item. Standard discrete
// formula over sorted counts.
func wearGini(counts map[uuid.UUID]int) float64 {
	sorted := make([]int, 0, len(counts))
	total := 0
	for _, c := range counts {
		sorted = append(sorted, c)
		total += c
	}
	sort.Ints(sorted)

	n := len(sorted)
	if n == 0 || total == 0 {
		return 0
	}

	cumulative := 0
	for i, c := range sorted {
		cumulative += (i + 1) * c
	}
	return float64(2*cumulative)/(float64(n)*float64(total)) - float64(n+1)/float64(n)
}
