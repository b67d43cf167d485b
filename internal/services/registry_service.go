package services

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	apperrors "github.com/tropicaldog17/oraclewatch/internal/errors"
	"github.com/tropicaldog17/oraclewatch/internal/models"
	"github.com/tropicaldog17/oraclewatch/internal/repositories"
)

type registryService struct {
	repo   repositories.TokenConfigRepository
	logger *zap.Logger
}

func NewRegistryService(repo repositories.TokenConfigRepository, logger *zap.Logger) RegistryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &registryService{repo: repo, logger: logger}
}

func (s *registryService) Get(ctx context.Context, ids []string) ([]models.TokenConfigEntry, error) {
	entries, err := s.repo.Get(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get token configs: %w", err)
	}
	return entries, nil
}

// Lookup returns the registered configs for ids keyed by asset id. Unknown ids are absent.
func (s *registryService) Lookup(ctx context.Context, ids []string) (map[string]*models.TokenConfig, error) {
	entries, err := s.Get(ctx, ids)
	if err != nil {
		return nil, err
	}
	configs := make(map[string]*models.TokenConfig, len(entries))
	for _, e := range entries {
		if e.Config != nil {
			configs[e.AssetID] = e.Config
		}
	}
	return configs, nil
}

func (s *registryService) Put(ctx context.Context, assetID string, cfg models.TokenConfig) error {
	cfg.AssetID = assetID
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := s.repo.Upsert(ctx, &cfg); err != nil {
		return fmt.Errorf("failed to store token config %s: %w", assetID, err)
	}
	s.logger.Info("Token config stored",
		zap.String("asset_id", assetID),
		zap.String("token_name", cfg.TokenName),
		zap.Uint8("decimals", cfg.Decimals))
	return nil
}

// PutMany validates every entry before writing any of them, then stores the batch atomically.
func (s *registryService) PutMany(ctx context.Context, entries []models.TokenConfigEntry) error {
	var errs error
	cfgs := make([]*models.TokenConfig, 0, len(entries))
	for i, e := range entries {
		if e.Config == nil {
			errs = multierr.Append(errs, &apperrors.ErrValidation{
				Field:   fmt.Sprintf("configs[%d]", i),
				Message: "config is required",
			})
			continue
		}
		cfg := *e.Config
		cfg.AssetID = e.AssetID
		if err := cfg.Validate(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("configs[%d]: %w", i, err))
			continue
		}
		cfgs = append(cfgs, &cfg)
	}
	if errs != nil {
		return errs
	}
	if len(cfgs) == 0 {
		return nil
	}
	if err := s.repo.UpsertMany(ctx, cfgs); err != nil {
		return fmt.Errorf("failed to store token configs: %w", err)
	}
	s.logger.Info("Token configs stored", zap.Int("count", len(cfgs)))
	return nil
}
