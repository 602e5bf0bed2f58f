package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"wardrobe/internal/auth"
	"wardrobe/internal/jobs"
	"wardrobe/internal/quality"
	"wardrobe/internal/wardrobe"
)

func Connect(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return gdb, nil
}

func AutoMigrateAndIndexes(gdb *gorm.DB) error {
	// uuid defaults use gen_random_uuid()
	if err := gdb.Exec(`create extension if not exists pgcrypto;`).Error; err != nil {
		return err
	}

	// Tables
	if err := gdb.AutoMigrate(
		&auth.User{},
		&wardrobe.Item{},
		&wardrobe.Outfit{},
		&wardrobe.OutfitItem{},
		&wardrobe.OutfitWearLog{},
		&wardrobe.OutfitWearLogItem{},
		&wardrobe.ItemWearLog{},
		&quality.ScoreRecord{},
		&quality.SuggestionRecord{},
		&jobs.Job{},
	); err != nil {
		return err
	}

	// Tag filters (GIN for text[])
	if err := gdb.Exec(`create index if not exists idx_items_style_tags on items using gin (style_tags);`).Error; err != nil {
		return err
	}
	if err := gdb.Exec(`create index if not exists idx_items_event_tags on items using gin (event_tags);`).Error; err != nil {
		return err
	}

	// Helpful indexes
	stmts := []string{
		`create index if not exists idx_items_user_active on items(user_id, is_active);`,
		`create index if not exists idx_outfit_items_outfit on outfit_items(outfit_id, position);`,
		`create index if not exists idx_outfit_wear_logs_user on outfit_wear_logs(user_id, worn_at desc) where deleted_at is null;`,
		`create index if not exists idx_item_wear_logs_user on item_wear_logs(user_id, worn_at desc) where deleted_at is null;`,
		`create index if not exists idx_item_wear_logs_source on item_wear_logs(source_outfit_log_id) where source_outfit_log_id is not null;`,
		`create index if not exists idx_quality_scores_user_computed on wardrobe_quality_scores(user_id, computed_at desc);`,
		`create index if not exists idx_quality_suggestions_user_status on wardrobe_quality_suggestions(user_id, status, priority);`,
		`create index if not exists idx_quality_suggestions_score on wardrobe_quality_suggestions(score_id);`,
		`create index if not exists idx_jobs_due on jobs(status, run_at);`,
		`create index if not exists idx_jobs_lock on jobs(status, locked_at);`,
	}
	for _, s := range stmts {
		if err := gdb.Exec(s).Error; err != nil {
			return fmt.Errorf("index exec failed: %w (sql=%s)", err, s)
		}
	}

	return nil
}
