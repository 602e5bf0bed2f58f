package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"uniqueIndex;not null"`
	Name         *string   `gorm:"type:text"`
	PasswordHash string    `gorm:"not null"`

	// QualityPreferences holds the user's quality scoring preferences as
	// stored json; empty means defaults.
	QualityPreferences datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
}
