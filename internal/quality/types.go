package quality

import (
	"time"

	"github.com/google/uuid"

	"wardrobe/internal/wardrobe"
)

// Dimension is one of the five weighted axes of wardrobe quality.
type Dimension string

const (
	DimVersatility  Dimension = "versatility"
	DimUtilization  Dimension = "utilization"
	DimCompleteness Dimension = "completeness"
	DimBalance      Dimension = "balance"
	DimDiversity    Dimension = "diversity"
)

// Factor is a machine-readable tag explaining part of a dimension's score.
// The suggestion generator matches on these, so the set is closed.
type Factor string

const (
	FactorInsufficientItems Factor = "insufficient_items"

	// versatility
	FactorNoOutfits       Factor = "no_outfits"
	FactorHighReuse       Factor = "high_reuse"
	FactorManyUnusedItems Factor = "many_unused_items"

	// utilization
	FactorNoWearLogs         Factor = "no_wear_logs"
	FactorManyUnwornItems    Factor = "many_unworn_items"
	FactorManyNeglectedItems Factor = "many_neglected_items"

	// completeness
	FactorEmptyWardrobe    Factor = "empty_wardrobe"
	FactorMissingTop       Factor = "missing_top"
	FactorMissingBottom    Factor = "missing_bottom"
	FactorMissingFootwear  Factor = "missing_footwear"
	FactorMissingOuterwear Factor = "missing_outerwear"

	// balance
	FactorImbalancedTopsBottoms Factor = "imbalanced_tops_bottoms"

	// diversity
	FactorNoAttributesEnabled  Factor = "no_attributes_enabled"
	FactorMissingAttributeData Factor = "missing_attribute_data"
	FactorLowColorDiversity    Factor = "low_color_diversity"
	FactorLowStyleDiversity    Factor = "low_style_diversity"
)

// missingFactor maps a core category to its missing_<category> factor.
func missingFactor(c wardrobe.Category) Factor {
	switch c {
	case wardrobe.CategoryTop:
		return FactorMissingTop
	case wardrobe.CategoryBottom:
		return FactorMissingBottom
	case wardrobe.CategoryFootwear:
		return FactorMissingFootwear
	default:
		return FactorMissingOuterwear
	}
}

// missingCategory is the inverse of missingFactor; ok is false for factors
// that are not missing_<category>.
func missingCategory(f Factor) (wardrobe.Category, bool) {
	switch f {
	case FactorMissingTop:
		return wardrobe.CategoryTop, true
	case FactorMissingBottom:
		return wardrobe.CategoryBottom, true
	case FactorMissingFootwear:
		return wardrobe.CategoryFootwear, true
	case FactorMissingOuterwear:
		return wardrobe.CategoryOuterwear, true
	}
	return "", false
}

// DimensionResult is the outcome of scoring a single dimension.
type DimensionResult struct {
	Score      float64 // 0-100
	Confidence float64 // 0-1
	Why        string
	Factors    []Factor
}

func (r DimensionResult) hasFactor(f Factor) bool {
	for _, x := range r.Factors {
		if x == f {
			return true
		}
	}
	return false
}

// Snapshot is a read-only view of a user's wardrobe at scoring time.
// Wear logs are pre-filtered to non-deleted rows.
type Snapshot struct {
	UserID             uuid.UUID
	Items              []wardrobe.Item
	Outfits            []wardrobe.Outfit
	OutfitWearLogs     []wardrobe.OutfitWearLog
	OutfitWearLogItems []wardrobe.OutfitWearLogItem
	ItemWearLogs       []wardrobe.ItemWearLog
	Diversity          DiversityConfig
}

func (s *Snapshot) ItemsCount() int   { return len(s.Items) }
func (s *Snapshot) OutfitsCount() int { return len(s.Outfits) }

// WearLogsCount counts recorded wear events across both sources, before
// dedup. Stored on the score record as snapshot metadata.
func (s *Snapshot) WearLogsCount() int {
	return len(s.OutfitWearLogs) + len(s.ItemWearLogs)
}

// wearStats is the deduplicated per-item wear history.
type wearStats struct {
	counts    map[uuid.UUID]int
	lastWorn  map[uuid.UUID]time.Time
	totalWear int
}

// wearStats merges the two wear-event sources into per-item counts and
// last-worn dates. An outfit wear contributes one event per
// OutfitWearLogItem row; a standalone ItemWearLog contributes one event
// unless it carries a back-reference to an outfit wear log, in which case
// it describes the same physical event and is skipped.
func (s *Snapshot) wearStats() wearStats {
	st := wearStats{
		counts:   make(map[uuid.UUID]int),
		lastWorn: make(map[uuid.UUID]time.Time),
	}

	wornAtByLog := make(map[uuid.UUID]time.Time, len(s.OutfitWearLogs))
	for _, log := range s.OutfitWearLogs {
		wornAtByLog[log.ID] = log.WornAt
	}

	for _, owli := range s.OutfitWearLogItems {
		st.counts[owli.ItemID]++
		st.totalWear++
		if at, ok := wornAtByLog[owli.WearLogID]; ok {
			if last, seen := st.lastWorn[owli.ItemID]; !seen || at.After(last) {
				st.lastWorn[owli.ItemID] = at
			}
		}
	}

	for _, log := range s.ItemWearLogs {
		if log.SourceOutfitLogID != nil {
			continue
		}
		st.counts[log.ItemID]++
		st.totalWear++
		if last, seen := st.lastWorn[log.ItemID]; !seen || log.WornAt.After(last) {
			st.lastWorn[log.ItemID] = log.WornAt
		}
	}

	return st
}

// effectiveCategoryCounts returns per-category item counts where a onepiece
// adds to both the top and bottom counts: a dress or jumpsuit functionally
// covers both roles.
func (s *Snapshot) effectiveCategoryCounts() map[wardrobe.Category]int {
	counts := make(map[wardrobe.Category]int)
	for _, item := range s.Items {
		counts[item.Category]++
	}
	if n := counts[wardrobe.CategoryOnepiece]; n > 0 {
		counts[wardrobe.CategoryTop] += n
		counts[wardrobe.CategoryBottom] += n
	}
	return counts
}

// rawCategoryCounts returns per-category item counts without the onepiece
// adjustment.
func (s *Snapshot) rawCategoryCounts() map[wardrobe.Category]int {
	counts := make(map[wardrobe.Category]int)
	for _, item := range s.Items {
		counts[item.Category]++
	}
	return counts
}

// Suggestion is a generated suggestion before it is persisted.
type Suggestion struct {
	Type           SuggestionType
	Dimension      Dimension
	Priority       int // 1 = highest, 5 = lowest
	Title          string
	Description    string
	Why            string
	Confidence     float64
	ExpectedImpact float64
	RelatedItemIDs []uuid.UUID
}

// SuggestionType categorizes the action a suggestion asks for.
type SuggestionType string

const (
	SuggestionCreateOutfit SuggestionType = "create_outfit"
	SuggestionUseInOutfit  SuggestionType = "use_in_outfit"
	SuggestionLogWear      SuggestionType = "log_wear"
	SuggestionWearMore     SuggestionType = "wear_more"
	SuggestionAddItem      SuggestionType = "add_item"
)
