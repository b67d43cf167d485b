package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tropicaldog17/oraclewatch/internal/models"
)

func reportsFor(assetID string, reports ...models.ValidatorReport) models.AssetReportEntry {
	return models.AssetReportEntry{AssetID: assetID, Bundle: models.AssetReportBundle{Reports: reports}}
}

func report(oracleID string, ts uint64) models.ValidatorReport {
	return models.ValidatorReport{OracleID: oracleID, Timestamp: ts, Price: quote("1", 24)}
}

func TestAggregateValidators_KeepsMostRecentAcrossAssets(t *testing.T) {
	entries := []models.AssetReportEntry{
		reportsFor("wrap.near", report("a.near", 100), report("b.near", 50)),
		reportsFor("aurora", report("a.near", 200), report("b.near", 40)),
		reportsFor("usdt.tether-token.near", report("a.near", 150)),
	}

	lastSeen := AggregateValidators(entries)

	assert.Equal(t, map[string]uint64{"a.near": 200, "b.near": 50}, lastSeen)
}

func TestAggregateValidators_Empty(t *testing.T) {
	assert.Empty(t, AggregateValidators(nil))
	assert.Empty(t, AggregateValidators([]models.AssetReportEntry{reportsFor("wrap.near")}))
}

func TestValidatorAges(t *testing.T) {
	now := time.Unix(0, 300)
	ages := ValidatorAges(map[string]uint64{"b.near": 50, "a.near": 200}, now)

	require.Len(t, ages, 2)
	assert.Equal(t, "a.near", ages[0].OracleID)
	assert.Equal(t, uint64(200), ages[0].LastTimestamp)
	assert.Equal(t, float64(300-200)/1e9, ages[0].AgeSeconds)
	assert.Equal(t, "b.near", ages[1].OracleID)
	assert.Equal(t, float64(300-50)/1e9, ages[1].AgeSeconds)
}

func TestValidatorAges_FutureTimestampClampsToZero(t *testing.T) {
	ages := ValidatorAges(map[string]uint64{"a.near": 500}, time.Unix(0, 300))
	require.Len(t, ages, 1)
	assert.Equal(t, float64(0), ages[0].AgeSeconds)
}

func TestValidatorAges_Seconds(t *testing.T) {
	ts := uint64(1700000000000000000)
	now := time.Unix(0, int64(ts)+2500*int64(time.Millisecond))

	ages := ValidatorAges(map[string]uint64{"a.near": ts}, now)

	require.Len(t, ages, 1)
	assert.Equal(t, 2.5, ages[0].AgeSeconds)
	assert.Equal(t, "2.50", FormatAge(ages[0].AgeSeconds))
}
