package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tropicaldog17/oraclewatch/internal/db"
	"github.com/tropicaldog17/oraclewatch/internal/models"
)

func newSQLiteRepo(t *testing.T) TokenConfigRepository {
	t.Helper()
	database, err := db.Connect(&db.Config{Driver: db.DriverSQLite, SQLitePath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return NewTokenConfigRepository(database)
}

func TestTokenConfigRepository_GetPreservesOrderAndDuplicates(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &models.TokenConfig{AssetID: "wrap.near", TokenName: "wNEAR", Decimals: 24}))
	require.NoError(t, repo.Upsert(ctx, &models.TokenConfig{AssetID: "usdt.tether-token.near", TokenName: "USDt", Decimals: 6}))

	entries, err := repo.Get(ctx, []string{"usdt.tether-token.near", "unknown.near", "wrap.near", "usdt.tether-token.near"})
	require.NoError(t, err)
	require.Len(t, entries, 4)

	assert.Equal(t, "usdt.tether-token.near", entries[0].AssetID)
	require.NotNil(t, entries[0].Config)
	assert.Equal(t, "USDt", entries[0].Config.TokenName)
	assert.Equal(t, uint8(6), entries[0].Config.Decimals)

	assert.Equal(t, "unknown.near", entries[1].AssetID)
	assert.Nil(t, entries[1].Config)

	require.NotNil(t, entries[2].Config)
	assert.Equal(t, "wNEAR", entries[2].Config.TokenName)
	assert.Equal(t, uint8(24), entries[2].Config.Decimals)

	require.NotNil(t, entries[3].Config)
	assert.Equal(t, entries[0].Config.TokenName, entries[3].Config.TokenName)
}

func TestTokenConfigRepository_GetEmpty(t *testing.T) {
	repo := newSQLiteRepo(t)
	entries, err := repo.Get(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestTokenConfigRepository_UpsertLastWriteWins(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &models.TokenConfig{AssetID: "aurora", TokenName: "ETH", Decimals: 18}))
	require.NoError(t, repo.Upsert(ctx, &models.TokenConfig{AssetID: "aurora", TokenName: "Aurora ETH", Decimals: 16}))

	entries, err := repo.Get(ctx, []string{"aurora"})
	require.NoError(t, err)
	require.NotNil(t, entries[0].Config)
	assert.Equal(t, "Aurora ETH", entries[0].Config.TokenName)
	assert.Equal(t, uint8(16), entries[0].Config.Decimals)
}

func TestTokenConfigRepository_UpsertManyLaterDuplicateWins(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	err := repo.UpsertMany(ctx, []*models.TokenConfig{
		{AssetID: "wrap.near", TokenName: "NEAR", Decimals: 24},
		{AssetID: "meta-pool.near", TokenName: "stNEAR", Decimals: 24},
		{AssetID: "wrap.near", TokenName: "wNEAR", Decimals: 24},
	})
	require.NoError(t, err)

	entries, err := repo.Get(ctx, []string{"wrap.near", "meta-pool.near"})
	require.NoError(t, err)
	require.NotNil(t, entries[0].Config)
	require.NotNil(t, entries[1].Config)
	assert.Equal(t, "wNEAR", entries[0].Config.TokenName)
	assert.Equal(t, "stNEAR", entries[1].Config.TokenName)
}
