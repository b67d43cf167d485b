package services

import (
	"html"
	"strconv"
	"strings"

	"github.com/tropicaldog17/oraclewatch/internal/models"
)

// LegacySuppressedAssetID is never listed among unregistered assets.
const LegacySuppressedAssetID = "c02aaa39b223fe8d0a0e5c4f27ead9083c756cc2.factory.bridge.near"

// TableRow is one two-cell row of a dashboard table.
type TableRow struct {
	Label string
	Value string
}

// BuildPriceRows assembles the price table: snapshot rows in snapshot order, then EMA rows in
// report-feed order. configs maps asset ids to their registry entry; a missing key is an
// unregistered asset.
func BuildPriceRows(snapshot *models.PriceSnapshot, assets []models.AssetReportEntry, configs map[string]*models.TokenConfig) ([]TableRow, error) {
	rows := make([]TableRow, 0, len(snapshot.Prices))

	for _, p := range snapshot.Prices {
		cfg, registered := configs[p.AssetID]
		if !registered {
			if p.AssetID != LegacySuppressedAssetID {
				rows = append(rows, TableRow{Label: p.AssetID, Value: p.RawPrice()})
			}
			continue
		}
		if p.Price == nil {
			continue
		}
		price, err := NormalizePrice(p.AssetID, *p.Price, cfg.Decimals)
		if err != nil {
			return nil, err
		}
		rows = append(rows, TableRow{Label: cfg.TokenName, Value: FormatPrice(price)})
	}

	for _, entry := range assets {
		cfg, registered := configs[entry.AssetID]
		if !registered {
			continue
		}
		for _, ema := range entry.Bundle.Emas {
			if ema.Price == nil {
				continue
			}
			price, err := NormalizePrice(entry.AssetID, *ema.Price, cfg.Decimals)
			if err != nil {
				return nil, err
			}
			rows = append(rows, TableRow{
				Label: cfg.TokenName + " EMA#" + strconv.FormatUint(uint64(ema.PeriodSec), 10),
				Value: FormatPrice(FloorEMA(price)),
			})
		}
	}
	return rows, nil
}

// BuildValidatorRows renders one row per validator with its age in seconds.
func BuildValidatorRows(ages []ValidatorAge) []TableRow {
	rows := make([]TableRow, 0, len(ages))
	for _, a := range ages {
		rows = append(rows, TableRow{Label: a.OracleID, Value: FormatAge(a.AgeSeconds)})
	}
	return rows
}

// RenderRows concatenates rows into <tr> fragments. Cell text is HTML-escaped.
func RenderRows(rows []TableRow) string {
	var b strings.Builder
	for _, r := range rows {
		b.WriteString("<tr><td>")
		b.WriteString(html.EscapeString(r.Label))
		b.WriteString("</td><td>")
		b.WriteString(html.EscapeString(r.Value))
		b.WriteString("</td></tr>")
	}
	return b.String()
}
