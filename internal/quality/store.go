package quality

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wardrobe/internal/auth"
)

var ErrNotFound = errors.New("not found")

// Store is the persistence the engine needs: snapshot reads and
// score-batch writes. Kept narrow so tests can swap in a fake.
type Store interface {
	LoadPreferences(ctx context.Context, userID uuid.UUID) (Preferences, error)
	LoadSnapshot(ctx context.Context, userID uuid.UUID, cfg DiversityConfig) (*Snapshot, error)

	// SaveScore writes a score and its suggestion batch atomically:
	// either both land or neither does.
	SaveScore(ctx context.Context, score *ScoreRecord, suggestions []SuggestionRecord) error

	Latest(ctx context.Context, userID uuid.UUID) (*ScoreRecord, error)
	History(ctx context.Context, userID uuid.UUID, limit int) ([]ScoreRecord, error)
	DeleteOlderThan(ctx context.Context, userID uuid.UUID, cutoff time.Time) (int64, error)
}

// GormStore is the Postgres-backed Store. It also carries the suggestion
// and preference operations the HTTP layer uses.
type GormStore struct {
	DB *gorm.DB
}

func (s *GormStore) LoadPreferences(ctx context.Context, userID uuid.UUID) (Preferences, error) {
	var user auth.User
	if err := s.DB.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Preferences{}, ErrNotFound
		}
		return Preferences{}, err
	}
	return ParsePreferences(user.QualityPreferences), nil
}

func (s *GormStore) SavePreferences(ctx context.Context, userID uuid.UUID, prefs Preferences) error {
	raw, err := prefsJSON(prefs)
	if err != nil {
		return err
	}
	res := s.DB.WithContext(ctx).Model(&auth.User{}).
		Where("id = ?", userID).
		Update("quality_preferences", raw)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) LoadSnapshot(ctx context.Context, userID uuid.UUID, cfg DiversityConfig) (*Snapshot, error) {
	db := s.DB.WithContext(ctx)
	snap := &Snapshot{UserID: userID, Diversity: cfg}

	if err := db.Where("user_id = ? AND is_active = true", userID).
		Find(&snap.Items).Error; err != nil {
		return nil, err
	}

	if err := db.Preload("Items").
		Where("user_id = ?", userID).
		Find(&snap.Outfits).Error; err != nil {
		return nil, err
	}

	if err := db.Where("user_id = ? AND deleted_at IS NULL", userID).
		Find(&snap.OutfitWearLogs).Error; err != nil {
		return nil, err
	}

	if len(snap.OutfitWearLogs) > 0 {
		logIDs := make([]uuid.UUID, 0, len(snap.OutfitWearLogs))
		for _, log := range snap.OutfitWearLogs {
			logIDs = append(logIDs, log.ID)
		}
		if err := db.Where("wear_log_id IN ?", logIDs).
			Find(&snap.OutfitWearLogItems).Error; err != nil {
			return nil, err
		}
	}

	if err := db.Where("user_id = ? AND deleted_at IS NULL", userID).
		Find(&snap.ItemWearLogs).Error; err != nil {
		return nil, err
	}

	return snap, nil
}

func (s *GormStore) SaveScore(ctx context.Context, score *ScoreRecord, suggestions []SuggestionRecord) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(score).Error; err != nil {
			return err
		}
		for i := range suggestions {
			suggestions[i].ScoreID = score.ID
			if err := tx.Create(&suggestions[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *GormStore) Latest(ctx context.Context, userID uuid.UUID) (*ScoreRecord, error) {
	var score ScoreRecord
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("computed_at desc").
		First(&score).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &score, nil
}

func (s *GormStore) History(ctx context.Context, userID uuid.UUID, limit int) ([]ScoreRecord, error) {
	var scores []ScoreRecord
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("computed_at desc").
		Limit(limit).
		Find(&scores).Error
	return scores, err
}

// DeleteOlderThan removes score rows (and their suggestion batches) older
// than cutoff. Range-bounded, so safe to run concurrently with new score
// creation.
func (s *GormStore) DeleteOlderThan(ctx context.Context, userID uuid.UUID, cutoff time.Time) (int64, error) {
	var deleted int64
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`
delete from wardrobe_quality_suggestions
where user_id = ?
  and score_id in (
    select id from wardrobe_quality_scores
    where user_id = ? and computed_at < ?
  )`, userID, userID, cutoff).Error; err != nil {
			return err
		}

		res := tx.Where("user_id = ? AND computed_at < ?", userID, cutoff).
			Delete(&ScoreRecord{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return nil
	})
	return deleted, err
}

func (s *GormStore) Suggestions(ctx context.Context, userID uuid.UUID, status string, limit int) ([]SuggestionRecord, error) {
	q := s.DB.WithContext(ctx).Where("user_id = ?", userID)
	if status != "" && status != "all" {
		q = q.Where("status = ?", status)
	}
	var out []SuggestionRecord
	err := q.Order("priority asc, created_at desc").Limit(limit).Find(&out).Error
	return out, err
}

func (s *GormStore) UpdateSuggestionStatus(ctx context.Context, userID, suggestionID uuid.UUID, status string) (*SuggestionRecord, error) {
	var sug SuggestionRecord
	err := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", suggestionID, userID).
		First(&sug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	sug.Status = status
	if err := s.DB.WithContext(ctx).Model(&SuggestionRecord{}).
		Where("id = ?", sug.ID).
		Update("status", status).Error; err != nil {
		return nil, err
	}
	return &sug, nil
}

// AllUserIDs lists every user id; the scheduler iterates it to enqueue
// refresh and cleanup jobs.
func (s *GormStore) AllUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.DB.WithContext(ctx).Model(&auth.User{}).Pluck("id", &ids).Error
	return ids, err
}
