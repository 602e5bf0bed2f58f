package quality

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// DiversityConfig selects which attributes the diversity scorer looks at.
type DiversityConfig struct {
	Colors   bool `json:"colors"`
	Patterns bool `json:"patterns"`
	Seasons  bool `json:"seasons"`
	Styles   bool `json:"styles"`
}

// Preferences are a user's quality scoring preferences.
type Preferences struct {
	Diversity            DiversityConfig `json:"diversity"`
	RefreshIntervalDays  int             `json:"refresh_interval_days"`
	HistoryRetentionDays int             `json:"history_retention_days"`
}

// DefaultPreferences returns the stock configuration: colors off, the other
// diversity attributes on, weekly refresh, 180-day history retention.
func DefaultPreferences() Preferences {
	return Preferences{
		Diversity: DiversityConfig{
			Colors:   false,
			Patterns: true,
			Seasons:  true,
			Styles:   true,
		},
		RefreshIntervalDays:  7,
		HistoryRetentionDays: 180,
	}
}

// ParsePreferences decodes stored preferences json, falling back to
// defaults when the blob is empty. Stored values outside the allowed ranges
// are clamped rather than rejected so old rows keep working.
func ParsePreferences(raw datatypes.JSON) Preferences {
	prefs := DefaultPreferences()
	if len(raw) == 0 {
		return prefs
	}
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return DefaultPreferences()
	}
	prefs.Clamp()
	return prefs
}

// Clamp forces interval fields into their allowed ranges.
func (p *Preferences) Clamp() {
	if p.RefreshIntervalDays < 1 {
		p.RefreshIntervalDays = 1
	}
	if p.RefreshIntervalDays > 30 {
		p.RefreshIntervalDays = 30
	}
	if p.HistoryRetentionDays < 30 {
		p.HistoryRetentionDays = 30
	}
	if p.HistoryRetentionDays > 730 {
		p.HistoryRetentionDays = 730
	}
}

func prefsJSON(p Preferences) (datatypes.JSON, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

// EnabledAttributes counts the diversity attributes switched on.
func (c DiversityConfig) EnabledAttributes() int {
	n := 0
	for _, on := range []bool{c.Colors, c.Patterns, c.Seasons, c.Styles} {
		if on {
			n++
		}
	}
	return n
}

// EnabledNames lists the enabled attribute names in a fixed order, used in
// explanations.
func (c DiversityConfig) EnabledNames() []string {
	var names []string
	if c.Colors {
		names = append(names, "colors")
	}
	if c.Patterns {
		names = append(names, "patterns")
	}
	if c.Seasons {
		names = append(names, "seasons")
	}
	if c.Styles {
		names = append(names, "styles")
	}
	return names
}
