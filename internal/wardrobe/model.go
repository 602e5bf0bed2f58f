package wardrobe

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Category is the closed set of item categories.
type Category string

const (
	CategoryTop        Category = "top"
	CategoryBottom     Category = "bottom"
	CategoryOnepiece   Category = "onepiece"
	CategoryOuterwear  Category = "outerwear"
	CategoryFootwear   Category = "footwear"
	CategoryAccessory  Category = "accessory"
	CategoryUnderlayer Category = "underlayer"
)

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryTop, CategoryBottom, CategoryOnepiece, CategoryOuterwear,
		CategoryFootwear, CategoryAccessory, CategoryUnderlayer:
		return true
	}
	return false
}

type Item struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null"`

	Category  Category `gorm:"type:text;not null"`
	Name      *string  `gorm:"type:text"`
	BaseColor *string  `gorm:"type:text"`
	Pattern   *string  `gorm:"type:text"`

	StyleTags  pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	EventTags  pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	SeasonTags pq.StringArray `gorm:"type:text[];not null;default:'{}'"`

	Warmth    *int     `gorm:"type:integer"`
	Formality *float64 `gorm:"type:double precision"`

	IsActive bool `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

type Outfit struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name *string `gorm:"type:text"`

	Items []OutfitItem `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

// OutfitItem places an item into an outfit slot. Position preserves the
// order the outfit was composed in.
type OutfitItem struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OutfitID uuid.UUID `gorm:"type:uuid;index;not null"`
	ItemID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Slot     string    `gorm:"type:text;not null"`
	Position int       `gorm:"not null;default:0"`
}

type OutfitWearLog struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID   uuid.UUID `gorm:"type:uuid;index;not null"`
	OutfitID uuid.UUID `gorm:"type:uuid;index;not null"`

	WornAt   time.Time  `gorm:"type:timestamptz;not null;default:now()"`
	WornDate *time.Time `gorm:"type:date"`

	DeletedAt *time.Time `gorm:"type:timestamptz"`
	CreatedAt time.Time  `gorm:"not null;default:now()"`
}

// OutfitWearLogItem is the denormalized per-item record of an outfit-level
// wear event: one row per item that was part of the outfit when worn.
type OutfitWearLogItem struct {
	WearLogID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Slot      string    `gorm:"type:text;not null"`
}

// ItemWearLog records a single item worn on a date. When the record was
// generated as a byproduct of logging an outfit wear, SourceOutfitLogID
// points at that OutfitWearLog: it is the same physical event and must not
// be counted on top of the outfit's own per-item rows.
type ItemWearLog struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null"`
	ItemID uuid.UUID `gorm:"type:uuid;index;not null"`

	WornAt   time.Time  `gorm:"type:timestamptz;not null;default:now()"`
	WornDate *time.Time `gorm:"type:date"`

	SourceOutfitLogID *uuid.UUID `gorm:"type:uuid;index"`

	DeletedAt *time.Time `gorm:"type:timestamptz"`
	CreatedAt time.Time  `gorm:"not null;default:now()"`
}
