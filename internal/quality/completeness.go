package quality

import (
	"fmt"
	"strings"

	"wardrobe/internal/wardrobe"
)

// coreCategories are the categories a functional wardrobe needs covered.
// Order matters: it fixes which missing_<category> factor wins and keeps
// explanations deterministic.
var coreCategories = []wardrobe.Category{
	wardrobe.CategoryTop,
	wardrobe.CategoryBottom,
	wardrobe.CategoryFootwear,
	wardrobe.CategoryOuterwear,
}

// CompletenessScorer measures coverage of the core categories, variety
// within them, and event-tag coverage. A onepiece counts toward both the
// top and bottom categories.
type CompletenessScorer struct{}

func (CompletenessScorer) Dimension() Dimension { return DimCompleteness }

func (CompletenessScorer) Score(s *Snapshot) DimensionResult {
	if s.ItemsCount() == 0 {
		return DimensionResult{
			Score:      0,
			Confidence: 0.5,
			Why:        "No items in wardrobe yet",
			Factors:    []Factor{FactorEmptyWardrobe},
		}
	}

	effective := s.effectiveCategoryCounts()
	onepieceCount := 0
	for _, item := range s.Items {
		if item.Category == wardrobe.CategoryOnepiece {
			onepieceCount++
		}
	}

	events := make(map[string]struct{})
	for _, item := range s.Items {
		for _, tag := range item.EventTags {
			events[strings.ToLower(tag)] = struct{}{}
		}
	}

	corePresent := 0
	variety := 0.0
	var missing []wardrobe.Category
	for _, c := range coreCategories {
		n := effective[c]
		if n > 0 {
			corePresent++
		} else {
			missing = append(missing, c)
		}
		v := float64(n) / completenessVarietyTarget
		if v > 1 {
			v = 1
		}
		variety += v
	}
	coreRatio := float64(corePresent) / float64(len(coreCategories))
	variety /= float64(len(coreCategories))

	eventScore := float64(len(events)) / completenessEventTarget
	if eventScore > 1 {
		eventScore = 1
	}

	score := clampScore(coreRatio*50 + variety*30 + eventScore*20)

	var factors []Factor
	if len(missing) > 0 {
		factors = append(factors, missingFactor(missing[0]))
	}

	var why strings.Builder
	fmt.Fprintf(&why, "%d/%d core categories covered", corePresent, len(coreCategories))
	if onepieceCount > 0 {
		fmt.Fprintf(&why, " (including %d onepiece)", onepieceCount)
	}
	why.WriteString(". ")
	if len(missing) > 0 {
		names := make([]string, len(missing))
		for i, c := range missing {
			names[i] = string(c)
		}
		fmt.Fprintf(&why, "Missing: %s. ", strings.Join(names, ", "))
	}
	fmt.Fprintf(&why, "Event types: %d.", len(events))

	// deterministic calculation, so confidence is fixed high
	return DimensionResult{
		Score:      score,
		Confidence: 0.9,
		Why:        why.String(),
		Factors:    factors,
	}
}
