package repositories

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tropicaldog17/oraclewatch/internal/db"
	"github.com/tropicaldog17/oraclewatch/internal/models"
)

type tokenConfigRepository struct {
	db *db.DB
}

func NewTokenConfigRepository(database *db.DB) TokenConfigRepository {
	return &tokenConfigRepository{db: database}
}

func (r *tokenConfigRepository) Get(ctx context.Context, ids []string) ([]models.TokenConfigEntry, error) {
	entries := make([]models.TokenConfigEntry, 0, len(ids))
	if len(ids) == 0 {
		return entries, nil
	}

	unique := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	var found []*models.TokenConfig
	if err := r.db.WithContext(ctx).Where("asset_id IN ?", unique).Find(&found).Error; err != nil {
		return nil, fmt.Errorf("failed to get token configs: %w", err)
	}

	byID := make(map[string]*models.TokenConfig, len(found))
	for _, cfg := range found {
		byID[cfg.AssetID] = cfg
	}
	for _, id := range ids {
		entry := models.TokenConfigEntry{AssetID: id}
		if cfg, ok := byID[id]; ok {
			c := *cfg
			entry.Config = &c
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r *tokenConfigRepository) Upsert(ctx context.Context, cfg *models.TokenConfig) error {
	if err := upsert(r.db.WithContext(ctx), cfg); err != nil {
		return fmt.Errorf("failed to save token config %s: %w", cfg.AssetID, err)
	}
	return nil
}

func (r *tokenConfigRepository) UpsertMany(ctx context.Context, cfgs []*models.TokenConfig) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, cfg := range cfgs {
			if err := upsert(tx, cfg); err != nil {
				return fmt.Errorf("failed to save token config %s: %w", cfg.AssetID, err)
			}
		}
		return nil
	})
}

func upsert(tx *gorm.DB, cfg *models.TokenConfig) error {
	now := time.Now().UTC()
	if cfg.CreatedAt.IsZero() {
		cfg.CreatedAt = now
	}
	cfg.UpdatedAt = now
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "asset_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"token_name", "decimals", "updated_at"}),
	}).Create(cfg).Error
}
