package repositories

import (
	"context"

	"github.com/tropicaldog17/oraclewatch/internal/models"
)

// TokenConfigRepository defines the interface for registry data operations
type TokenConfigRepository interface {
	// Get returns one entry per requested id, in request order, duplicates included.
	// Unknown ids carry a nil Config.
	Get(ctx context.Context, ids []string) ([]models.TokenConfigEntry, error)
	Upsert(ctx context.Context, cfg *models.TokenConfig) error
	// UpsertMany writes all configs in one transaction; a later config for the same asset wins.
	UpsertMany(ctx context.Context, cfgs []*models.TokenConfig) error
}
