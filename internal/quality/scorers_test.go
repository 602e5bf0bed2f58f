package quality

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wardrobe/internal/wardrobe"
)

func newItem(cat wardrobe.Category) wardrobe.Item {
	return wardrobe.Item{ID: uuid.New(), Category: cat, IsActive: true}
}

func newItems(cat wardrobe.Category, n int) []wardrobe.Item {
	out := make([]wardrobe.Item, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, newItem(cat))
	}
	return out
}

func outfitOf(items ...wardrobe.Item) wardrobe.Outfit {
	o := wardrobe.Outfit{ID: uuid.New()}
	for i, it := range items {
		o.Items = append(o.Items, wardrobe.OutfitItem{
			ID:       uuid.New(),
			OutfitID: o.ID,
			ItemID:   it.ID,
			Slot:     string(it.Category),
			Position: i,
		})
	}
	return o
}

func TestWeightsSumToOne(t *testing.T) {
	sum := 0.0
	for _, entry := range Scorers() {
		sum += entry.Weight
	}
	assert.InDelta(t, 1.0, sum, 0.01)
}

func TestScorersCoverAllDimensions(t *testing.T) {
	want := []Dimension{DimVersatility, DimUtilization, DimCompleteness, DimBalance, DimDiversity}
	table := Scorers()
	require.Len(t, table, len(want))
	for i, entry := range table {
		assert.Equal(t, want[i], entry.Scorer.Dimension())
	}
}

func TestScoreAndConfidenceRanges(t *testing.T) {
	snaps := map[string]*Snapshot{
		"empty": {},
		"items only": {
			Items: append(newItems(wardrobe.CategoryTop, 4), newItems(wardrobe.CategoryBottom, 3)...),
		},
		"with outfits": func() *Snapshot {
			tops := newItems(wardrobe.CategoryTop, 3)
			bottoms := newItems(wardrobe.CategoryBottom, 3)
			return &Snapshot{
				Items: append(tops, bottoms...),
				Outfits: []wardrobe.Outfit{
					outfitOf(tops[0], bottoms[0]),
					outfitOf(tops[0], bottoms[1]),
				},
				Diversity: DefaultPreferences().Diversity,
			}
		}(),
	}

	for name, snap := range snaps {
		t.Run(name, func(t *testing.T) {
			for _, entry := range Scorers() {
				r := entry.Scorer.Score(snap)
				assert.GreaterOrEqual(t, r.Score, 0.0, "%s score", entry.Scorer.Dimension())
				assert.LessOrEqual(t, r.Score, 100.0, "%s score", entry.Scorer.Dimension())
				assert.GreaterOrEqual(t, r.Confidence, 0.0, "%s confidence", entry.Scorer.Dimension())
				assert.LessOrEqual(t, r.Confidence, 1.0, "%s confidence", entry.Scorer.Dimension())
				assert.NotEmpty(t, r.Why)
			}
		})
	}
}

func TestVersatilityInsufficientItems(t *testing.T) {
	snap := &Snapshot{Items: newItems(wardrobe.CategoryTop, 4)}
	r := VersatilityScorer{}.Score(snap)

	assert.Equal(t, 0.0, r.Score)
	assert.Equal(t, 0.3, r.Confidence)
	assert.True(t, r.hasFactor(FactorInsufficientItems))
}

func TestVersatilityNoOutfits(t *testing.T) {
	snap := &Snapshot{Items: newItems(wardrobe.CategoryTop, 5)}
	r := VersatilityScorer{}.Score(snap)

	assert.Equal(t, 30.0, r.Score)
	assert.Equal(t, 0.5, r.Confidence)
	assert.True(t, r.hasFactor(FactorNoOutfits))
}

func TestVersatilityReuse(t *testing.T) {
	items := append(newItems(wardrobe.CategoryTop, 3), newItems(wardrobe.CategoryBottom, 2)...)
	snap := &Snapshot{
		Items: items,
		Outfits: []wardrobe.Outfit{
			outfitOf(items[0], items[3]),
			outfitOf(items[0], items[4]),
			outfitOf(items[1], items[3]),
		},
	}
	r := VersatilityScorer{}.Score(snap)

	// 4 of 5 items placed, 2 reused, 6 placements over 4 items
	assert.InDelta(t, 62.0, r.Score, 0.01)
	assert.InDelta(t, 0.65, r.Confidence, 0.001)
	assert.Contains(t, r.Why, "2 of 4 items appear in multiple outfits")
	assert.False(t, r.hasFactor(FactorHighReuse))
	assert.False(t, r.hasFactor(FactorManyUnusedItems))
}

func TestVersatilityManyUnusedItems(t *testing.T) {
	items := newItems(wardrobe.CategoryTop, 10)
	snap := &Snapshot{
		Items:   items,
		Outfits: []wardrobe.Outfit{outfitOf(items[0]), outfitOf(items[0])},
	}
	r := VersatilityScorer{}.Score(snap)

	assert.True(t, r.hasFactor(FactorManyUnusedItems))
	assert.True(t, r.hasFactor(FactorHighReuse))
}

func TestUtilizationInsufficientItems(t *testing.T) {
	snap := &Snapshot{Items: newItems(wardrobe.CategoryTop, 2)}
	r := UtilizationScorer{}.Score(snap)

	assert.Equal(t, 0.0, r.Score)
	assert.Equal(t, 0.2, r.Confidence)
	assert.True(t, r.hasFactor(FactorInsufficientItems))
}

func TestUtilizationNoWearLogs(t *testing.T) {
	snap := &Snapshot{Items: newItems(wardrobe.CategoryTop, 3)}
	r := UtilizationScorer{}.Score(snap)

	assert.Equal(t, 20.0, r.Score)
	assert.Equal(t, 0.4, r.Confidence)
	assert.True(t, r.hasFactor(FactorNoWearLogs))
}

func TestUtilizationManyUnwornItems(t *testing.T) {
	items := newItems(wardrobe.CategoryTop, 10)
	now := time.Now().UTC()
	snap := &Snapshot{
		Items: items,
		ItemWearLogs: []wardrobe.ItemWearLog{
			{ID: uuid.New(), ItemID: items[0].ID, WornAt: now},
			{ID: uuid.New(), ItemID: items[1].ID, WornAt: now},
		},
	}
	r := UtilizationScorer{}.Score(snap)

	// 2 of 10 worn, even distribution: 7 + 7 + 30
	assert.InDelta(t, 44.0, r.Score, 0.01)
	assert.True(t, r.hasFactor(FactorManyUnwornItems))
	assert.False(t, r.hasFactor(FactorManyNeglectedItems))
	assert.Contains(t, r.Why, "2 of 10 items worn")
}

func TestUtilizationNeglectedItems(t *testing.T) {
	items := newItems(wardrobe.CategoryTop, 3)
	old := time.Now().UTC().AddDate(0, 0, -90)
	snap := &Snapshot{
		Items: items,
		ItemWearLogs: []wardrobe.ItemWearLog{
			{ID: uuid.New(), ItemID: items[0].ID, WornAt: old},
			{ID: uuid.New(), ItemID: items[1].ID, WornAt: old},
		},
	}
	r := UtilizationScorer{}.Score(snap)

	assert.True(t, r.hasFactor(FactorManyNeglectedItems))
	assert.Contains(t, r.Why, "2 neglected")
}

// An outfit wear generates item-level rows back-referencing the outfit log.
// They describe the same physical event and must not double the counts.
func TestWearStatsDedup(t *testing.T) {
	items := newItems(wardrobe.CategoryTop, 3)
	logID := uuid.New()
	now := time.Now().UTC()

	snap := &Snapshot{
		Items: items,
		OutfitWearLogs: []wardrobe.OutfitWearLog{
			{ID: logID, OutfitID: uuid.New(), WornAt: now},
		},
	}
	for _, it := range items {
		snap.OutfitWearLogItems = append(snap.OutfitWearLogItems, wardrobe.OutfitWearLogItem{
			WearLogID: logID, ItemID: it.ID, Slot: "top",
		})
		snap.ItemWearLogs = append(snap.ItemWearLogs, wardrobe.ItemWearLog{
			ID: uuid.New(), ItemID: it.ID, WornAt: now, SourceOutfitLogID: &logID,
		})
	}

	stats := snap.wearStats()
	assert.Equal(t, 3, stats.totalWear)
	for _, it := range items {
		assert.Equal(t, 1, stats.counts[it.ID])
	}
}

func TestWearStatsCountsStandaloneLogs(t *testing.T) {
	item := newItem(wardrobe.CategoryTop)
	now := time.Now().UTC()
	snap := &Snapshot{
		Items: []wardrobe.Item{item},
		ItemWearLogs: []wardrobe.ItemWearLog{
			{ID: uuid.New(), ItemID: item.ID, WornAt: now.AddDate(0, 0, -1)},
			{ID: uuid.New(), ItemID: item.ID, WornAt: now},
		},
	}

	stats := snap.wearStats()
	assert.Equal(t, 2, stats.totalWear)
	assert.Equal(t, 2, stats.counts[item.ID])
	assert.Equal(t, now, stats.lastWorn[item.ID])
}

func TestWearGini(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	tests := []struct {
		name   string
		counts map[uuid.UUID]int
		want   float64
	}{
		{"empty", map[uuid.UUID]int{}, 0},
		{"even", map[uuid.UUID]int{a: 4, b: 4, c: 4}, 0},
		{"single item", map[uuid.UUID]int{a: 7}, 0},
		{"skewed", map[uuid.UUID]int{a: 10, b: 1, c: 1}, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, wearGini(tt.counts), 0.001)
		})
	}
}

func TestCompletenessEmptyWardrobe(t *testing.T) {
	r := CompletenessScorer{}.Score(&Snapshot{})

	assert.Equal(t, 0.0, r.Score)
	assert.True(t, r.hasFactor(FactorEmptyWardrobe))
	assert.Contains(t, r.Why, "No items")
}

func TestCompletenessOnepieceCoversTopAndBottom(t *testing.T) {
	snap := &Snapshot{Items: []wardrobe.Item{
		newItem(wardrobe.CategoryOnepiece),
		newItem(wardrobe.CategoryFootwear),
		newItem(wardrobe.CategoryOuterwear),
	}}
	r := CompletenessScorer{}.Score(snap)

	assert.Contains(t, r.Why, "4/4 core categories covered")
	assert.Contains(t, r.Why, "(including 1 onepiece)")
	assert.NotContains(t, r.Why, "Missing")
	assert.Empty(t, r.Factors)
}

func TestCompletenessMissingCategoryFactor(t *testing.T) {
	snap := &Snapshot{Items: []wardrobe.Item{
		newItem(wardrobe.CategoryTop),
		newItem(wardrobe.CategoryBottom),
	}}
	r := CompletenessScorer{}.Score(snap)

	// footwear comes first in the core category order
	assert.True(t, r.hasFactor(FactorMissingFootwear))
	assert.Contains(t, r.Why, "Missing: footwear, outerwear")
}

func TestCompletenessAddingCoverageNeverLowersScore(t *testing.T) {
	items := []wardrobe.Item{
		newItem(wardrobe.CategoryTop),
		newItem(wardrobe.CategoryBottom),
	}
	before := CompletenessScorer{}.Score(&Snapshot{Items: items}).Score

	items = append(items, newItem(wardrobe.CategoryFootwear))
	after := CompletenessScorer{}.Score(&Snapshot{Items: items}).Score

	assert.Greater(t, after, before)
}

func TestBalanceInsufficientItems(t *testing.T) {
	snap := &Snapshot{Items: newItems(wardrobe.CategoryTop, 4)}
	r := BalanceScorer{}.Score(snap)

	assert.Equal(t, 50.0, r.Score)
	assert.True(t, r.hasFactor(FactorInsufficientItems))
}

func TestBalanceOnepieceEffectiveRatio(t *testing.T) {
	items := newItems(wardrobe.CategoryOnepiece, 3)
	items = append(items, newItem(wardrobe.CategoryFootwear), newItem(wardrobe.CategoryOuterwear))
	r := BalanceScorer{}.Score(&Snapshot{Items: items})

	assert.Contains(t, r.Why, "Tops:Bottoms ratio is 3:3")
	assert.Contains(t, r.Why, "(including 3 onepiece)")
	// effective ratio is 1:1 and raw bottoms is zero: no imbalance
	assert.False(t, r.hasFactor(FactorImbalancedTopsBottoms))
	assert.Equal(t, 100.0, r.Score)
}

func TestBalanceOnepieceOnlyWardrobe(t *testing.T) {
	r := BalanceScorer{}.Score(&Snapshot{Items: newItems(wardrobe.CategoryOnepiece, 3)})

	assert.Contains(t, r.Why, "Tops:Bottoms ratio is 3:3")
	assert.False(t, r.hasFactor(FactorInsufficientItems))
}

func TestBalanceTopHeavyWardrobe(t *testing.T) {
	items := newItems(wardrobe.CategoryTop, 10)
	items = append(items, newItem(wardrobe.CategoryBottom), newItem(wardrobe.CategoryFootwear))
	r := BalanceScorer{}.Score(&Snapshot{Items: items})

	assert.Less(t, r.Score, 70.0)
	assert.True(t, r.hasFactor(FactorImbalancedTopsBottoms))
	assert.Contains(t, r.Why, "Tops:Bottoms ratio is 10:1")
}

func TestDiversityInsufficientItems(t *testing.T) {
	snap := &Snapshot{Items: newItems(wardrobe.CategoryTop, 2)}
	r := DiversityScorer{}.Score(snap)

	assert.Equal(t, 50.0, r.Score)
	assert.True(t, r.hasFactor(FactorInsufficientItems))
}

func TestDiversityNoAttributesEnabled(t *testing.T) {
	snap := &Snapshot{Items: newItems(wardrobe.CategoryTop, 3)}
	r := DiversityScorer{}.Score(snap)

	assert.Equal(t, 50.0, r.Score)
	assert.Equal(t, 0.8, r.Confidence)
	assert.True(t, r.hasFactor(FactorNoAttributesEnabled))
}

func TestDiversityMissingAttributeData(t *testing.T) {
	snap := &Snapshot{
		Items:     newItems(wardrobe.CategoryTop, 3),
		Diversity: DefaultPreferences().Diversity,
	}
	r := DiversityScorer{}.Score(snap)

	assert.Equal(t, 50.0, r.Score)
	assert.Equal(t, 0.4, r.Confidence)
	assert.True(t, r.hasFactor(FactorMissingAttributeData))
}

// Colors are off by default, so color variety must not move the score.
func TestDiversityColorsDisabledByDefault(t *testing.T) {
	style := func(tags ...string) wardrobe.Item {
		it := newItem(wardrobe.CategoryTop)
		it.StyleTags = tags
		return it
	}
	colored := func(color string, tags ...string) wardrobe.Item {
		it := style(tags...)
		it.BaseColor = &color
		return it
	}

	plain := &Snapshot{
		Items:     []wardrobe.Item{style("casual"), style("formal"), style("casual")},
		Diversity: DefaultPreferences().Diversity,
	}
	vivid := &Snapshot{
		Items:     []wardrobe.Item{colored("red", "casual"), colored("blue", "formal"), colored("green", "casual")},
		Diversity: DefaultPreferences().Diversity,
	}

	a := DiversityScorer{}.Score(plain)
	b := DiversityScorer{}.Score(vivid)
	assert.Equal(t, a.Score, b.Score)
	assert.Contains(t, a.Why, "Scored on: patterns, seasons, styles")
}

func TestDiversityLowStyleFactor(t *testing.T) {
	style := func(tag string) wardrobe.Item {
		it := newItem(wardrobe.CategoryTop)
		it.StyleTags = []string{tag}
		return it
	}
	snap := &Snapshot{
		Items:     []wardrobe.Item{style("casual"), style("casual"), style("formal")},
		Diversity: DefaultPreferences().Diversity,
	}
	r := DiversityScorer{}.Score(snap)

	// 2 distinct styles against a target of 5
	assert.InDelta(t, 40.0, r.Score, 0.01)
	assert.True(t, r.hasFactor(FactorLowStyleDiversity))
}

func TestBuildScoreEmptySnapshot(t *testing.T) {
	snap := &Snapshot{UserID: uuid.New()}
	score, suggestions := BuildScore(snap)

	assert.InDelta(t, 12.5, score.TotalScore, 0.01)
	assert.InDelta(t, 0.315, score.Confidence, 0.001)
	assert.Equal(t, 0, score.ItemsCount)

	require.Len(t, suggestions, 1)
	assert.Equal(t, SuggestionAddItem, suggestions[0].Type)
	assert.Equal(t, "Add items to your wardrobe", suggestions[0].Title)
}

func TestBuildScoreTopHeavyWardrobe(t *testing.T) {
	items := newItems(wardrobe.CategoryTop, 10)
	items = append(items, newItem(wardrobe.CategoryBottom), newItem(wardrobe.CategoryFootwear))
	score, suggestions := BuildScore(&Snapshot{UserID: uuid.New(), Items: items})

	assert.Less(t, score.BalanceScore, 70.0)

	found := false
	for _, sug := range suggestions {
		if sug.Type == SuggestionAddItem && strings.Contains(strings.ToLower(sug.Title), "bottom") {
			found = true
		}
	}
	assert.True(t, found, "expected an add_item suggestion about bottoms")
}

func TestBuildScoreDeterministic(t *testing.T) {
	tops := newItems(wardrobe.CategoryTop, 3)
	bottoms := newItems(wardrobe.CategoryBottom, 3)
	snap := &Snapshot{
		UserID: uuid.New(),
		Items:  append(tops, bottoms...),
		Outfits: []wardrobe.Outfit{
			outfitOf(tops[0], bottoms[0]),
			outfitOf(tops[0], bottoms[1]),
		},
		Diversity: DefaultPreferences().Diversity,
	}

	a, sugsA := BuildScore(snap)
	b, sugsB := BuildScore(snap)

	assert.Equal(t, a.TotalScore, b.TotalScore)
	assert.Equal(t, a.VersatilityScore, b.VersatilityScore)
	assert.Equal(t, a.UtilizationScore, b.UtilizationScore)
	assert.Equal(t, a.CompletenessScore, b.CompletenessScore)
	assert.Equal(t, a.BalanceScore, b.BalanceScore)
	assert.Equal(t, a.DiversityScore, b.DiversityScore)
	assert.Equal(t, a.Confidence, b.Confidence)
	assert.Equal(t, len(sugsA), len(sugsB))
}
