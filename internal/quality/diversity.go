package quality

import (
	"fmt"
	"strings"
)

// DiversityScorer measures variety across a user-configurable set of item
// attributes. Each enabled attribute yields a 0-100 sub-score of distinct
// values observed against a target; the dimension score is the average of
// the sub-scores that had any data.
type DiversityScorer struct{}

func (DiversityScorer) Dimension() Dimension { return DimDiversity }

func (DiversityScorer) Score(s *Snapshot) DimensionResult {
	if s.ItemsCount() < diversityMinItems {
		return DimensionResult{
			Score:      50,
			Confidence: 0.3,
			Why:        "Need more items to assess diversity",
			Factors:    []Factor{FactorInsufficientItems},
		}
	}

	cfg := s.Diversity
	if cfg.EnabledAttributes() == 0 {
		return DimensionResult{
			Score:      50,
			Confidence: 0.8,
			Why:        "No diversity attributes enabled in preferences",
			Factors:    []Factor{FactorNoAttributesEnabled},
		}
	}

	var subScores []float64
	var factors []Factor

	if cfg.Colors {
		colors := make(map[string]struct{})
		for _, item := range s.Items {
			if item.BaseColor != nil && *item.BaseColor != "" {
				colors[strings.ToLower(*item.BaseColor)] = struct{}{}
			}
		}
		if len(colors) > 0 {
			subScores = append(subScores, subScore(len(colors), diversityColorsTarget))
			if len(colors) < diversityLowColors {
				factors = append(factors, FactorLowColorDiversity)
			}
		}
	}

	if cfg.Patterns {
		patterns := make(map[string]struct{})
		for _, item := range s.Items {
			if item.Pattern != nil && *item.Pattern != "" {
				patterns[strings.ToLower(*item.Pattern)] = struct{}{}
			}
		}
		if len(patterns) > 0 {
			subScores = append(subScores, subScore(len(patterns), diversityPatternTarget))
		}
	}

	if cfg.Seasons {
		seasons := make(map[string]struct{})
		for _, item := range s.Items {
			for _, tag := range item.SeasonTags {
				seasons[strings.ToLower(tag)] = struct{}{}
			}
		}
		if len(seasons) > 0 {
			subScores = append(subScores, subScore(len(seasons), diversitySeasonTarget))
		}
	}

	if cfg.Styles {
		styles := make(map[string]struct{})
		for _, item := range s.Items {
			for _, tag := range item.StyleTags {
				styles[strings.ToLower(tag)] = struct{}{}
			}
		}
		if len(styles) > 0 {
			subScores = append(subScores, subScore(len(styles), diversityStyleTarget))
			if len(styles) < diversityLowStyles {
				factors = append(factors, FactorLowStyleDiversity)
			}
		}
	}

	if len(subScores) == 0 {
		return DimensionResult{
			Score:      50,
			Confidence: 0.4,
			Why:        "Not enough attribute data to calculate diversity",
			Factors:    []Factor{FactorMissingAttributeData},
		}
	}

	sum := 0.0
	for _, v := range subScores {
		sum += v
	}
	score := clampScore(sum / float64(len(subScores)))

	why := fmt.Sprintf("Diversity across %d enabled attributes. Scored on: %s.",
		cfg.EnabledAttributes(), strings.Join(cfg.EnabledNames(), ", "))

	return DimensionResult{
		Score:      score,
		Confidence: 0.7,
		Why:        why,
		Factors:    factors,
	}
}

func subScore(distinct, target int) float64 {
	v := float64(distinct) / float64(target)
	if v > 1 {
		v = 1
	}
	return v * 100
}
