package services

import (
	"sort"
	"time"

	"github.com/tropicaldog17/oraclewatch/internal/models"
)

// ValidatorAge is how long ago a validator last reported, as of the render time.
type ValidatorAge struct {
	OracleID      string
	LastTimestamp uint64 // ns
	AgeSeconds    float64
}

// AggregateValidators folds every report of every asset into the most recent timestamp seen
// per oracle id.
func AggregateValidators(entries []models.AssetReportEntry) map[string]uint64 {
	lastSeen := make(map[string]uint64)
	for _, entry := range entries {
		for _, report := range entry.Bundle.Reports {
			if current, ok := lastSeen[report.OracleID]; !ok || report.Timestamp > current {
				lastSeen[report.OracleID] = report.Timestamp
			}
		}
	}
	return lastSeen
}

// ValidatorAges converts last-seen timestamps into ages relative to now, sorted by oracle id.
// A timestamp ahead of now yields an age of zero.
func ValidatorAges(lastSeen map[string]uint64, now time.Time) []ValidatorAge {
	nowNs := uint64(0)
	if n := now.UnixNano(); n > 0 {
		nowNs = uint64(n)
	}

	ages := make([]ValidatorAge, 0, len(lastSeen))
	for oracleID, ts := range lastSeen {
		var diff uint64
		if nowNs > ts {
			diff = nowNs - ts
		}
		ages = append(ages, ValidatorAge{
			OracleID:      oracleID,
			LastTimestamp: ts,
			AgeSeconds:    float64(diff) / float64(time.Second),
		})
	}
	sort.Slice(ages, func(i, j int) bool {
		return ages[i].OracleID < ages[j].OracleID
	})
	return ages
}
