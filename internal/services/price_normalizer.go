package services

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	apperrors "github.com/tropicaldog17/oraclewatch/internal/errors"
	"github.com/tropicaldog17/oraclewatch/internal/models"
)

// maxDecimalExponent is the largest power of ten representable in 128 bits.
const maxDecimalExponent = 38

const emaScale = 10000

// NormalizePrice rescales a quote to the registry's display decimals:
// multiplier / 10^(quote.Decimals - displayDecimals), computed in float64.
func NormalizePrice(assetID string, quote models.AssetPriceQuote, displayDecimals uint8) (float64, error) {
	if quote.Decimals < displayDecimals || quote.Decimals-displayDecimals > maxDecimalExponent {
		return 0, &apperrors.NormalizationError{
			AssetID:         assetID,
			FeedDecimals:    quote.Decimals,
			DisplayDecimals: displayDecimals,
		}
	}
	exp := int32(quote.Decimals - displayDecimals)
	divisor := decimal.New(1, exp).InexactFloat64()
	return quote.Multiplier.InexactFloat64() / divisor, nil
}

// FloorEMA rounds an EMA value down to 4 decimal places.
func FloorEMA(value float64) float64 {
	return math.Floor(value*emaScale) / emaScale
}

// FormatPrice prints the shortest decimal form that round-trips, never in exponent notation.
func FormatPrice(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// FormatAge prints a validator age in seconds with two decimals.
func FormatAge(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 2, 64)
}
