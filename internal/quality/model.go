package quality

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// ScoreRecord is one computed quality score. Rows are append-only: once
// written they are never mutated, only aged out by retention cleanup.
type ScoreRecord struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`

	TotalScore        float64 `gorm:"not null" json:"total_score"`
	VersatilityScore  float64 `gorm:"not null" json:"versatility_score"`
	UtilizationScore  float64 `gorm:"not null" json:"utilization_score"`
	CompletenessScore float64 `gorm:"not null" json:"completeness_score"`
	BalanceScore      float64 `gorm:"not null" json:"balance_score"`
	DiversityScore    float64 `gorm:"not null" json:"diversity_score"`

	// Confidence is the weighted aggregate of per-dimension confidences.
	Confidence float64 `gorm:"not null" json:"confidence"`

	// Explanations holds the per-dimension why/confidence/factors map,
	// json-encoded from map[Dimension]Explanation.
	Explanations datatypes.JSON `gorm:"type:jsonb" json:"explanations"`

	ItemsCount    int `gorm:"not null" json:"items_count"`
	OutfitsCount  int `gorm:"not null" json:"outfits_count"`
	WearLogsCount int `gorm:"not null" json:"wear_logs_count"`

	DiversityConfigSnapshot datatypes.JSON `gorm:"type:jsonb" json:"diversity_config_snapshot"`

	ComputedAt time.Time `gorm:"type:timestamptz;not null;default:now()" json:"computed_at"`
}

func (ScoreRecord) TableName() string { return "wardrobe_quality_scores" }

// Explanation is the stored per-dimension explanation payload.
type Explanation struct {
	Why                 string   `json:"why"`
	Confidence          float64  `json:"confidence"`
	ContributingFactors []Factor `json:"contributing_factors"`
}

// Suggestion lifecycle statuses.
const (
	StatusPending   = "pending"
	StatusDismissed = "dismissed"
	StatusCompleted = "completed"
)

// SuggestionRecord is a persisted suggestion from a score's batch. Only
// Status is mutable after creation.
type SuggestionRecord struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	ScoreID uuid.UUID `gorm:"type:uuid;index;not null" json:"score_id"`

	Type      SuggestionType `gorm:"type:text;not null" json:"suggestion_type"`
	Dimension Dimension      `gorm:"type:text;not null" json:"dimension"`
	Priority  int            `gorm:"not null" json:"priority"`

	Title       string  `gorm:"type:text;not null" json:"title"`
	Description string  `gorm:"type:text;not null" json:"description"`
	Why         string  `gorm:"type:text;not null" json:"why"`
	Confidence  float64 `gorm:"not null" json:"confidence"`

	ExpectedImpact float64        `gorm:"not null" json:"expected_impact"`
	RelatedItemIDs pq.StringArray `gorm:"type:text[]" json:"related_item_ids"`

	Status string `gorm:"type:text;not null;default:'pending'" json:"status"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (SuggestionRecord) TableName() string { return "wardrobe_quality_suggestions" }
