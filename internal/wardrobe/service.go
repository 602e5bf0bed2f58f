package wardrobe

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("not found")
var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	DB *gorm.DB
}

type CreateItemInput struct {
	Category   Category
	Name       *string
	BaseColor  *string
	Pattern    *string
	StyleTags  []string
	EventTags  []string
	SeasonTags []string
	Warmth     *int
	Formality  *float64
}

func (s *Service) CreateItem(ctx context.Context, userID uuid.UUID, in CreateItemInput) (*Item, error) {
	if !ValidCategory(in.Category) {
		return nil, ErrInvalidInput
	}
	if in.Formality != nil && (*in.Formality < 0 || *in.Formality > 1) {
		return nil, ErrInvalidInput
	}

	item := Item{
		UserID:     userID,
		Category:   in.Category,
		Name:       in.Name,
		BaseColor:  in.BaseColor,
		Pattern:    in.Pattern,
		StyleTags:  normalizeTags(in.StyleTags),
		EventTags:  normalizeTags(in.EventTags),
		SeasonTags: normalizeTags(in.SeasonTags),
		Warmth:     in.Warmth,
		Formality:  in.Formality,
		IsActive:   true,
	}
	if err := s.DB.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Service) ListItems(ctx context.Context, userID uuid.UUID) ([]Item, error) {
	var items []Item
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND is_active = true", userID).
		Order("created_at desc").
		Find(&items).Error
	return items, err
}

type OutfitSlotInput struct {
	ItemID uuid.UUID
	Slot   string
}

type CreateOutfitInput struct {
	Name  *string
	Items []OutfitSlotInput
}

func (s *Service) CreateOutfit(ctx context.Context, userID uuid.UUID, in CreateOutfitInput) (*Outfit, error) {
	if len(in.Items) == 0 {
		return nil, ErrInvalidInput
	}

	outfit := Outfit{UserID: userID, Name: in.Name}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// all referenced items must exist and belong to the user
		ids := make([]uuid.UUID, 0, len(in.Items))
		for _, oi := range in.Items {
			ids = append(ids, oi.ItemID)
		}
		var count int64
		if err := tx.Model(&Item{}).
			Where("user_id = ? AND id IN ?", userID, ids).
			Count(&count).Error; err != nil {
			return err
		}
		if int(count) != len(uniqueIDs(ids)) {
			return ErrNotFound
		}

		if err := tx.Create(&outfit).Error; err != nil {
			return err
		}
		for i, oi := range in.Items {
			row := OutfitItem{
				OutfitID: outfit.ID,
				ItemID:   oi.ItemID,
				Slot:     oi.Slot,
				Position: i,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			outfit.Items = append(outfit.Items, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &outfit, nil
}

func (s *Service) ListOutfits(ctx context.Context, userID uuid.UUID) ([]Outfit, error) {
	var outfits []Outfit
	err := s.DB.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&outfits).Error
	return outfits, err
}

// LogOutfitWear records an outfit being worn. It atomically creates the
// outfit wear log, one OutfitWearLogItem per outfit item, and one
// back-referenced ItemWearLog per item so per-item history stays queryable
// without double counting the event.
func (s *Service) LogOutfitWear(ctx context.Context, userID, outfitID uuid.UUID, wornAt time.Time) (*OutfitWearLog, error) {
	var log OutfitWearLog

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var outfit Outfit
		if err := tx.Preload("Items").
			Where("id = ? AND user_id = ?", outfitID, userID).
			First(&outfit).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		wornDate := dateOf(wornAt)
		log = OutfitWearLog{
			UserID:   userID,
			OutfitID: outfitID,
			WornAt:   wornAt,
			WornDate: &wornDate,
		}
		if err := tx.Create(&log).Error; err != nil {
			return err
		}

		for _, oi := range outfit.Items {
			if err := tx.Create(&OutfitWearLogItem{
				WearLogID: log.ID,
				ItemID:    oi.ItemID,
				Slot:      oi.Slot,
			}).Error; err != nil {
				return err
			}
			src := log.ID
			if err := tx.Create(&ItemWearLog{
				UserID:            userID,
				ItemID:            oi.ItemID,
				WornAt:            wornAt,
				WornDate:          &wornDate,
				SourceOutfitLogID: &src,
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// LogItemWear records a standalone item wear (no outfit back-reference).
func (s *Service) LogItemWear(ctx context.Context, userID, itemID uuid.UUID, wornAt time.Time) (*ItemWearLog, error) {
	var item Item
	if err := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	wornDate := dateOf(wornAt)
	log := ItemWearLog{
		UserID:   userID,
		ItemID:   itemID,
		WornAt:   wornAt,
		WornDate: &wornDate,
	}
	if err := s.DB.WithContext(ctx).Create(&log).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

// DeleteOutfitWearLog soft-deletes an outfit wear log and the item wear
// logs it generated.
func (s *Service) DeleteOutfitWearLog(ctx context.Context, userID, logID uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		res := tx.Model(&OutfitWearLog{}).
			Where("id = ? AND user_id = ? AND deleted_at IS NULL", logID, userID).
			Update("deleted_at", now)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Model(&ItemWearLog{}).
			Where("source_outfit_log_id = ? AND user_id = ? AND deleted_at IS NULL", logID, userID).
			Update("deleted_at", now).Error
	})
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := map[uuid.UUID]struct{}{}
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
