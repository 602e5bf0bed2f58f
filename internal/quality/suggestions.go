package quality

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"wardrobe/internal/wardrobe"
)

const maxSuggestions = 10

// suggestionSkipScore: dimensions at or above this score need no action.
const suggestionSkipScore = 80.0

// scoredDimension pairs a dimension result with its weight for the
// generator.
type scoredDimension struct {
	Dimension Dimension
	Result    DimensionResult
	Weight    float64
}

// SuggestionGenerator turns dimension results into a ranked list of
// actionable suggestions.
type SuggestionGenerator struct{}

// Generate inspects the contributing factors of every dimension scoring
// below the skip threshold, lowest score first, and emits suggestions per
// factor. The merged list is ordered by priority ascending then expected
// impact descending and capped at maxSuggestions.
func (g SuggestionGenerator) Generate(s *Snapshot, dims []scoredDimension) []Suggestion {
	sorted := make([]scoredDimension, len(dims))
	copy(sorted, dims)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Result.Score < sorted[j].Result.Score
	})

	var out []Suggestion
	for _, d := range sorted {
		if d.Result.Score >= suggestionSkipScore {
			continue
		}
		switch d.Dimension {
		case DimVersatility:
			out = append(out, g.versatility(s, d)...)
		case DimUtilization:
			out = append(out, g.utilization(s, d)...)
		case DimCompleteness:
			out = append(out, g.completeness(d)...)
		case DimBalance:
			out = append(out, g.balance(s, d)...)
		case DimDiversity:
			out = append(out, g.diversity(d)...)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].ExpectedImpact > out[j].ExpectedImpact
	})

	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

func (SuggestionGenerator) versatility(s *Snapshot, d scoredDimension) []Suggestion {
	var out []Suggestion

	if d.Result.hasFactor(FactorNoOutfits) {
		out = append(out, Suggestion{
			Type:           SuggestionCreateOutfit,
			Dimension:      DimVersatility,
			Priority:       1,
			Title:          "Create your first outfit",
			Description:    "Combine your items into outfits to track versatility.",
			Why:            "Creating outfits helps you see which items work well together and identifies pieces that could be styled more ways.",
			Confidence:     0.95,
			ExpectedImpact: d.Weight * 20,
		})
	}

	if d.Result.hasFactor(FactorManyUnusedItems) {
		used := make(map[uuid.UUID]struct{})
		for _, outfit := range s.Outfits {
			for _, oi := range outfit.Items {
				used[oi.ItemID] = struct{}{}
			}
		}
		var unused []uuid.UUID
		for _, item := range s.Items {
			if _, ok := used[item.ID]; !ok {
				unused = append(unused, item.ID)
			}
		}
		if len(unused) > 0 {
			out = append(out, Suggestion{
				Type:           SuggestionUseInOutfit,
				Dimension:      DimVersatility,
				Priority:       2,
				Title:          fmt.Sprintf("Style %d unused items", len(unused)),
				Description:    "These items haven't been added to any outfit yet.",
				Why:            "Adding unused items to outfits increases your wardrobe's versatility score and helps you get more value from your clothes.",
				Confidence:     0.9,
				ExpectedImpact: d.Weight * 15,
				RelatedItemIDs: capIDs(unused),
			})
		}
	}

	return out
}

func (SuggestionGenerator) utilization(s *Snapshot, d scoredDimension) []Suggestion {
	var out []Suggestion

	if d.Result.hasFactor(FactorNoWearLogs) {
		out = append(out, Suggestion{
			Type:           SuggestionLogWear,
			Dimension:      DimUtilization,
			Priority:       1,
			Title:          "Start logging what you wear",
			Description:    "Track your outfits to see utilization patterns.",
			Why:            "Wear logging reveals which items you actually use versus which sit unworn, helping you make better wardrobe decisions.",
			Confidence:     0.95,
			ExpectedImpact: d.Weight * 25,
		})
	}

	if d.Result.hasFactor(FactorManyUnwornItems) {
		// worn set follows the same dedup rule as the scorer
		stats := s.wearStats()
		var neverWorn []uuid.UUID
		for _, item := range s.Items {
			if _, ok := stats.counts[item.ID]; !ok {
				neverWorn = append(neverWorn, item.ID)
			}
		}
		if len(neverWorn) > 0 {
			out = append(out, Suggestion{
				Type:           SuggestionWearMore,
				Dimension:      DimUtilization,
				Priority:       2,
				Title:          fmt.Sprintf("Wear %d neglected items", len(neverWorn)),
				Description:    "These items have never been logged as worn.",
				Why:            "Regularly wearing all your items improves utilization. Consider whether items you never wear should be donated or styled differently.",
				Confidence:     0.85,
				ExpectedImpact: d.Weight * 15,
				RelatedItemIDs: capIDs(neverWorn),
			})
		}
	}

	return out
}

func (SuggestionGenerator) completeness(d scoredDimension) []Suggestion {
	var out []Suggestion

	for _, f := range d.Result.Factors {
		if category, ok := missingCategory(f); ok {
			out = append(out, Suggestion{
				Type:           SuggestionAddItem,
				Dimension:      DimCompleteness,
				Priority:       1,
				Title:          fmt.Sprintf("Add %s to your wardrobe", category),
				Description:    fmt.Sprintf("You're missing items in the %s category.", category),
				Why:            fmt.Sprintf("A complete wardrobe needs %s. Adding this category will improve outfit options and completeness score.", category),
				Confidence:     0.95,
				ExpectedImpact: d.Weight * 12,
			})
		}
	}

	if d.Result.hasFactor(FactorEmptyWardrobe) {
		out = append(out, Suggestion{
			Type:           SuggestionAddItem,
			Dimension:      DimCompleteness,
			Priority:       1,
			Title:          "Add items to your wardrobe",
			Description:    "Start by adding your essential clothing items.",
			Why:            "Building a wardrobe starts with the basics. Add tops, bottoms, and footwear to begin tracking your style.",
			Confidence:     0.95,
			ExpectedImpact: d.Weight * 25,
		})
	}

	return out
}

func (SuggestionGenerator) balance(s *Snapshot, d scoredDimension) []Suggestion {
	if !d.Result.hasFactor(FactorImbalancedTopsBottoms) {
		return nil
	}

	// the recommendation targets the raw minority side, not the effective
	// counts: the factor itself was raised on raw counts
	raw := s.rawCategoryCounts()
	tops := raw[wardrobe.CategoryTop]
	bottoms := raw[wardrobe.CategoryBottom]

	if tops > bottoms {
		return []Suggestion{{
			Type:           SuggestionAddItem,
			Dimension:      DimBalance,
			Priority:       2,
			Title:          "Add more bottoms",
			Description:    fmt.Sprintf("You have %d tops but only %d bottoms.", tops, bottoms),
			Why:            "A balanced wardrobe has roughly 1-2 tops per bottom. Adding bottoms will create more outfit combinations.",
			Confidence:     0.9,
			ExpectedImpact: d.Weight * 10,
		}}
	}
	return []Suggestion{{
		Type:           SuggestionAddItem,
		Dimension:      DimBalance,
		Priority:       2,
		Title:          "Add more tops",
		Description:    fmt.Sprintf("You have %d bottoms but only %d tops.", bottoms, tops),
		Why:            "You need more tops to pair with your bottoms. Consider versatile pieces that match multiple bottoms.",
		Confidence:     0.9,
		ExpectedImpact: d.Weight * 10,
	}}
}

func (SuggestionGenerator) diversity(d scoredDimension) []Suggestion {
	var out []Suggestion

	if d.Result.hasFactor(FactorLowColorDiversity) {
		out = append(out, Suggestion{
			Type:           SuggestionAddItem,
			Dimension:      DimDiversity,
			Priority:       3,
			Title:          "Add more color variety",
			Description:    "Your wardrobe has limited color diversity.",
			Why:            "A diverse color palette enables more outfit combinations and helps you dress for different moods and occasions.",
			Confidence:     0.8,
			ExpectedImpact: d.Weight * 8,
		})
	}

	if d.Result.hasFactor(FactorLowStyleDiversity) {
		out = append(out, Suggestion{
			Type:           SuggestionAddItem,
			Dimension:      DimDiversity,
			Priority:       3,
			Title:          "Explore different styles",
			Description:    "Your wardrobe style variety is limited.",
			Why:            "Different style items help you adapt to various occasions from casual to formal settings.",
			Confidence:     0.8,
			ExpectedImpact: d.Weight * 8,
		})
	}

	return out
}

const maxRelatedItems = 5

func capIDs(ids []uuid.UUID) []uuid.UUID {
	if len(ids) > maxRelatedItems {
		return ids[:maxRelatedItems]
	}
	return ids
}
