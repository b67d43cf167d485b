package models

import (
	"github.com/shopspring/decimal"
)

// AssetPriceQuote is a fixed-point price: the real value is Multiplier / 10^Decimals.
// Multiplier always holds a non-negative integer that fits in 128 bits.
type AssetPriceQuote struct {
	Multiplier decimal.Decimal
	Decimals   uint8
}

// AssetOptionalPrice is one row of the price snapshot. Price is nil when the oracle has no quote.
type AssetOptionalPrice struct {
	AssetID string
	Price   *AssetPriceQuote
}

// RawPrice is the multiplier as the oracle sent it, or "Not found" when there is no quote.
func (p AssetOptionalPrice) RawPrice() string {
	if p.Price == nil {
		return "Not found"
	}
	return p.Price.Multiplier.String()
}

// PriceSnapshot is the decoded get_price_data response.
type PriceSnapshot struct {
	Timestamp          uint64 // ns
	RecencyDurationSec uint32
	Prices             []AssetOptionalPrice
}

// ValidatorReport is a single validator's submitted price for an asset.
type ValidatorReport struct {
	OracleID  string
	Timestamp uint64 // ns
	Price     AssetPriceQuote
}

// AssetEma is the exponential moving average quote for one smoothing period.
type AssetEma struct {
	PeriodSec uint32
	Timestamp uint64 // ns
	Price     *AssetPriceQuote
}

type AssetReportBundle struct {
	Reports []ValidatorReport
	Emas    []AssetEma
}

// AssetReportEntry is one (asset id, bundle) pair of the get_assets response, in feed order.
type AssetReportEntry struct {
	AssetID string
	Bundle  AssetReportBundle
}
