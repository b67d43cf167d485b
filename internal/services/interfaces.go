package services

import (
	"context"

	"github.com/tropicaldog17/oraclewatch/internal/models"
)

// RegistryService defines the interface for token registry operations
type RegistryService interface {
	Get(ctx context.Context, ids []string) ([]models.TokenConfigEntry, error)
	Lookup(ctx context.Context, ids []string) (map[string]*models.TokenConfig, error)
	Put(ctx context.Context, assetID string, cfg models.TokenConfig) error
	PutMany(ctx context.Context, entries []models.TokenConfigEntry) error
}

// Web4Service answers web4 requests for the dashboard
type Web4Service interface {
	Handle(ctx context.Context, req *models.Web4Request) (*models.Web4Response, error)
	PreloadURLs() []string
}

// Web4Observer receives per-request outcomes. Implemented by the metrics registry.
type Web4Observer interface {
	ObserveWeb4Outcome(outcome string)
	ObserveRenderedRows(table string, rows int)
}
