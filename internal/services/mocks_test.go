package services

import (
	"context"
	"sync"

	"github.com/tropicaldog17/oraclewatch/internal/models"
	"github.com/tropicaldog17/oraclewatch/internal/repositories"
)

// mockTokenConfigRepo is an in-memory TokenConfigRepository.
type mockTokenConfigRepo struct {
	mu              sync.Mutex
	configs         map[string]models.TokenConfig
	err             error
	getCalls        [][]string
	upsertManyCalls int
}

func newMockTokenConfigRepo(cfgs ...models.TokenConfig) *mockTokenConfigRepo {
	r := &mockTokenConfigRepo{configs: make(map[string]models.TokenConfig)}
	for _, c := range cfgs {
		r.configs[c.AssetID] = c
	}
	return r
}

func (r *mockTokenConfigRepo) Get(ctx context.Context, ids []string) ([]models.TokenConfigEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.getCalls = append(r.getCalls, append([]string(nil), ids...))
	if r.err != nil {
		return nil, r.err
	}
	out := make([]models.TokenConfigEntry, 0, len(ids))
	for _, id := range ids {
		entry := models.TokenConfigEntry{AssetID: id}
		if c, ok := r.configs[id]; ok {
			c := c
			entry.Config = &c
		}
		out = append(out, entry)
	}
	return out, nil
}

func (r *mockTokenConfigRepo) Upsert(ctx context.Context, cfg *models.TokenConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.configs[cfg.AssetID] = *cfg
	return nil
}

func (r *mockTokenConfigRepo) UpsertMany(ctx context.Context, cfgs []*models.TokenConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upsertManyCalls++
	if r.err != nil {
		return r.err
	}
	for _, c := range cfgs {
		r.configs[c.AssetID] = *c
	}
	return nil
}

type recordingObserver struct {
	outcomes []string
	rows     map[string]int
}

func (o *recordingObserver) ObserveWeb4Outcome(outcome string) {
	o.outcomes = append(o.outcomes, outcome)
}

func (o *recordingObserver) ObserveRenderedRows(table string, rows int) {
	if o.rows == nil {
		o.rows = make(map[string]int)
	}
	o.rows[table] = rows
}

// compile-time checks that mocks satisfy interfaces
var _ repositories.TokenConfigRepository = (*mockTokenConfigRepo)(nil)
var _ Web4Observer = (*recordingObserver)(nil)
