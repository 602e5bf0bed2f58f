package quality

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wardrobe/internal/wardrobe"
)

func TestGenerateSkipsHealthyDimensions(t *testing.T) {
	snap := &Snapshot{Items: newItems(wardrobe.CategoryTop, 5)}
	dims := []scoredDimension{
		{
			Dimension: DimVersatility,
			Weight:    WeightVersatility,
			Result:    DimensionResult{Score: 85, Factors: []Factor{FactorNoOutfits}},
		},
		{
			Dimension: DimUtilization,
			Weight:    WeightUtilization,
			Result:    DimensionResult{Score: 40, Factors: []Factor{FactorNoWearLogs}},
		},
	}

	out := SuggestionGenerator{}.Generate(snap, dims)

	require.Len(t, out, 1)
	assert.Equal(t, DimUtilization, out[0].Dimension)
	assert.Equal(t, SuggestionLogWear, out[0].Type)
}

func TestGenerateCapsAndOrders(t *testing.T) {
	items := newItems(wardrobe.CategoryTop, 10)
	items = append(items, newItem(wardrobe.CategoryBottom))
	snap := &Snapshot{Items: items}

	// every factor that can emit, from every dimension: 11 candidates
	dims := []scoredDimension{
		{DimVersatility, DimensionResult{Score: 10, Factors: []Factor{FactorNoOutfits, FactorManyUnusedItems}}, WeightVersatility},
		{DimUtilization, DimensionResult{Score: 10, Factors: []Factor{FactorNoWearLogs, FactorManyUnwornItems}}, WeightUtilization},
		{DimCompleteness, DimensionResult{Score: 10, Factors: []Factor{
			FactorMissingTop, FactorMissingBottom, FactorMissingFootwear, FactorMissingOuterwear,
		}}, WeightCompleteness},
		{DimBalance, DimensionResult{Score: 10, Factors: []Factor{FactorImbalancedTopsBottoms}}, WeightBalance},
		{DimDiversity, DimensionResult{Score: 10, Factors: []Factor{FactorLowColorDiversity, FactorLowStyleDiversity}}, WeightDiversity},
	}

	out := SuggestionGenerator{}.Generate(snap, dims)

	assert.Len(t, out, maxSuggestions)
	assert.True(t, sort.SliceIsSorted(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].ExpectedImpact > out[j].ExpectedImpact
	}))
}

func TestGenerateCapsRelatedItems(t *testing.T) {
	snap := &Snapshot{Items: newItems(wardrobe.CategoryTop, 8)}
	dims := []scoredDimension{
		{
			Dimension: DimVersatility,
			Weight:    WeightVersatility,
			Result:    DimensionResult{Score: 10, Factors: []Factor{FactorManyUnusedItems}},
		},
	}

	out := SuggestionGenerator{}.Generate(snap, dims)

	require.Len(t, out, 1)
	assert.Len(t, out[0].RelatedItemIDs, maxRelatedItems)
	assert.Equal(t, "Style 8 unused items", out[0].Title)
}

func TestGenerateBalanceTargetsRawMinority(t *testing.T) {
	items := newItems(wardrobe.CategoryTop, 10)
	items = append(items, newItem(wardrobe.CategoryBottom))
	snap := &Snapshot{Items: items}
	dims := []scoredDimension{
		{
			Dimension: DimBalance,
			Weight:    WeightBalance,
			Result:    DimensionResult{Score: 45, Factors: []Factor{FactorImbalancedTopsBottoms}},
		},
	}

	out := SuggestionGenerator{}.Generate(snap, dims)

	require.Len(t, out, 1)
	assert.Equal(t, "Add more bottoms", out[0].Title)
	assert.Contains(t, out[0].Description, "You have 10 tops but only 1 bottoms.")
}

func TestGenerateBalanceBottomHeavy(t *testing.T) {
	items := newItems(wardrobe.CategoryBottom, 6)
	items = append(items, newItem(wardrobe.CategoryTop))
	snap := &Snapshot{Items: items}
	dims := []scoredDimension{
		{
			Dimension: DimBalance,
			Weight:    WeightBalance,
			Result:    DimensionResult{Score: 45, Factors: []Factor{FactorImbalancedTopsBottoms}},
		},
	}

	out := SuggestionGenerator{}.Generate(snap, dims)

	require.Len(t, out, 1)
	assert.Equal(t, "Add more tops", out[0].Title)
}

func TestGenerateMissingCategorySuggestions(t *testing.T) {
	snap := &Snapshot{Items: newItems(wardrobe.CategoryTop, 3)}
	dims := []scoredDimension{
		{
			Dimension: DimCompleteness,
			Weight:    WeightCompleteness,
			Result:    DimensionResult{Score: 30, Factors: []Factor{FactorMissingFootwear}},
		},
	}

	out := SuggestionGenerator{}.Generate(snap, dims)

	require.Len(t, out, 1)
	assert.Equal(t, SuggestionAddItem, out[0].Type)
	assert.Equal(t, "Add footwear to your wardrobe", out[0].Title)
	assert.Equal(t, 1, out[0].Priority)
}
