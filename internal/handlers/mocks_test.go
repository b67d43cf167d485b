package handlers

import (
	"context"

	"github.com/tropicaldog17/oraclewatch/internal/models"
	"github.com/tropicaldog17/oraclewatch/internal/services"
)

type mockWeb4Service struct {
	resp *models.Web4Response
	err  error
	got  *models.Web4Request
}

func (m *mockWeb4Service) Handle(_ context.Context, req *models.Web4Request) (*models.Web4Response, error) {
	m.got = req
	return m.resp, m.err
}

func (m *mockWeb4Service) PreloadURLs() []string { return nil }

type mockRegistryService struct {
	configs  map[string]models.TokenConfig
	err      error
	putMany  [][]models.TokenConfigEntry
	putCalls int
}

func newMockRegistryService() *mockRegistryService {
	return &mockRegistryService{configs: make(map[string]models.TokenConfig)}
}

func (m *mockRegistryService) Get(_ context.Context, ids []string) ([]models.TokenConfigEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]models.TokenConfigEntry, 0, len(ids))
	for _, id := range ids {
		e := models.TokenConfigEntry{AssetID: id}
		if c, ok := m.configs[id]; ok {
			c := c
			e.Config = &c
		}
		out = append(out, e)
	}
	return out, nil
}

func (m *mockRegistryService) Lookup(ctx context.Context, ids []string) (map[string]*models.TokenConfig, error) {
	entries, err := m.Get(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*models.TokenConfig)
	for _, e := range entries {
		if e.Config != nil {
			out[e.AssetID] = e.Config
		}
	}
	return out, nil
}

func (m *mockRegistryService) Put(_ context.Context, assetID string, cfg models.TokenConfig) error {
	m.putCalls++
	if m.err != nil {
		return m.err
	}
	cfg.AssetID = assetID
	m.configs[assetID] = cfg
	return nil
}

func (m *mockRegistryService) PutMany(_ context.Context, entries []models.TokenConfigEntry) error {
	m.putMany = append(m.putMany, entries)
	if m.err != nil {
		return m.err
	}
	for _, e := range entries {
		m.configs[e.AssetID] = *e.Config
	}
	return nil
}

type stubHealth struct{ err error }

func (s stubHealth) Health() error { return s.err }

// compile-time checks that mocks satisfy interfaces
var _ services.Web4Service = (*mockWeb4Service)(nil)
var _ services.RegistryService = (*mockRegistryService)(nil)
var _ HealthChecker = stubHealth{}
