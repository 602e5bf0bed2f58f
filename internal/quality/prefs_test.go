package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestParsePreferencesEmpty(t *testing.T) {
	prefs := ParsePreferences(nil)

	assert.Equal(t, DefaultPreferences(), prefs)
	assert.False(t, prefs.Diversity.Colors)
	assert.True(t, prefs.Diversity.Patterns)
	assert.Equal(t, 7, prefs.RefreshIntervalDays)
	assert.Equal(t, 180, prefs.HistoryRetentionDays)
}

func TestParsePreferencesInvalidJSON(t *testing.T) {
	prefs := ParsePreferences(datatypes.JSON(`{not json`))
	assert.Equal(t, DefaultPreferences(), prefs)
}

func TestParsePreferencesOverrides(t *testing.T) {
	raw := datatypes.JSON(`{
		"diversity": {"colors": true, "patterns": false, "seasons": true, "styles": true},
		"refresh_interval_days": 14,
		"history_retention_days": 365
	}`)
	prefs := ParsePreferences(raw)

	assert.True(t, prefs.Diversity.Colors)
	assert.False(t, prefs.Diversity.Patterns)
	assert.Equal(t, 14, prefs.RefreshIntervalDays)
	assert.Equal(t, 365, prefs.HistoryRetentionDays)
}

func TestParsePreferencesClampsRanges(t *testing.T) {
	raw := datatypes.JSON(`{"refresh_interval_days": 90, "history_retention_days": 5}`)
	prefs := ParsePreferences(raw)

	assert.Equal(t, 30, prefs.RefreshIntervalDays)
	assert.Equal(t, 30, prefs.HistoryRetentionDays)
}

func TestEnabledNames(t *testing.T) {
	cfg := DiversityConfig{Colors: true, Styles: true}
	assert.Equal(t, []string{"colors", "styles"}, cfg.EnabledNames())
	assert.Equal(t, 2, cfg.EnabledAttributes())

	assert.Nil(t, DiversityConfig{}.EnabledNames())
	assert.Equal(t, 0, DiversityConfig{}.EnabledAttributes())
}
