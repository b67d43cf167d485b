package services

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	apperrors "github.com/tropicaldog17/oraclewatch/internal/errors"
	"github.com/tropicaldog17/oraclewatch/internal/models"
)

const (
	sourcePriceData = "price data"
	sourceAssets    = "assets"
)

var unsignedPattern = regexp.MustCompile(`^\+?[0-9]+$`)

// Wire shapes of the oracle views. Pointers mark required fields so that a missing key is a
// decode failure instead of a zero value.
type wireQuote struct {
	Multiplier *string `json:"multiplier" validate:"required,u128"`
	Decimals   *uint8  `json:"decimals" validate:"required"`
}

type wirePriceRow struct {
	AssetID *string    `json:"asset_id" validate:"required,account_id"`
	Price   *wireQuote `json:"price"`
}

type wirePriceData struct {
	Timestamp          *string         `json:"timestamp" validate:"required,u64"`
	RecencyDurationSec *uint32         `json:"recency_duration_sec" validate:"required"`
	Prices             []*wirePriceRow `json:"prices" validate:"required,dive,required"`
}

type wireReport struct {
	OracleID  *string    `json:"oracle_id" validate:"required,account_id"`
	Timestamp *string    `json:"timestamp" validate:"required,u64"`
	Price     *wireQuote `json:"price" validate:"required"`
}

type wireEma struct {
	PeriodSec *uint32    `json:"period_sec" validate:"required"`
	Timestamp *string    `json:"timestamp" validate:"required,u64"`
	Price     *wireQuote `json:"price"`
}

type wireBundle struct {
	Reports []*wireReport `json:"reports" validate:"required,dive,required"`
	Emas    []*wireEma    `json:"emas" validate:"required,dive,required"`
}

// wireAssetEntry is a [asset_id, bundle] tuple.
type wireAssetEntry struct {
	AssetID string
	Bundle  *wireBundle
}

func (e *wireAssetEntry) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return err
	}
	if len(tuple) != 2 {
		return fmt.Errorf("expected [asset_id, asset], got %d elements", len(tuple))
	}
	if err := json.Unmarshal(tuple[0], &e.AssetID); err != nil {
		return fmt.Errorf("asset id: %w", err)
	}
	if err := json.Unmarshal(tuple[1], &e.Bundle); err != nil {
		return fmt.Errorf("asset %s: %w", e.AssetID, err)
	}
	if e.Bundle == nil {
		return fmt.Errorf("asset %s: null bundle", e.AssetID)
	}
	return nil
}

// FeedParser decodes the raw bytes of the oracle views
type FeedParser interface {
	ParsePriceSnapshot(data []byte) (*models.PriceSnapshot, error)
	ParseAssetReports(data []byte) ([]models.AssetReportEntry, error)
}

type feedParser struct {
	validate *validator.Validate
}

func NewFeedParser() FeedParser {
	v := validator.New()
	_ = v.RegisterValidation("u64", func(fl validator.FieldLevel) bool {
		_, err := parseU64(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("u128", func(fl validator.FieldLevel) bool {
		_, err := parseU128(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("account_id", func(fl validator.FieldLevel) bool {
		return models.IsValidAccountID(fl.Field().String())
	})
	return &feedParser{validate: v}
}

func (p *feedParser) ParsePriceSnapshot(data []byte) (*models.PriceSnapshot, error) {
	var raw wirePriceData
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &apperrors.DecodeError{Source: sourcePriceData, Err: err}
	}
	if err := p.validate.Struct(&raw); err != nil {
		return nil, &apperrors.DecodeError{Source: sourcePriceData, Err: err}
	}

	ts, _ := parseU64(*raw.Timestamp)
	snapshot := &models.PriceSnapshot{
		Timestamp:          ts,
		RecencyDurationSec: *raw.RecencyDurationSec,
		Prices:             make([]models.AssetOptionalPrice, 0, len(raw.Prices)),
	}
	for _, row := range raw.Prices {
		snapshot.Prices = append(snapshot.Prices, models.AssetOptionalPrice{
			AssetID: *row.AssetID,
			Price:   row.Price.toModel(),
		})
	}
	return snapshot, nil
}

func (p *feedParser) ParseAssetReports(data []byte) ([]models.AssetReportEntry, error) {
	var raw []*wireAssetEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &apperrors.DecodeError{Source: sourceAssets, Err: err}
	}
	if raw == nil {
		return nil, &apperrors.DecodeError{Source: sourceAssets, Err: fmt.Errorf("expected an array of assets, got null")}
	}

	entries := make([]models.AssetReportEntry, 0, len(raw))
	for i, e := range raw {
		if e == nil {
			return nil, &apperrors.DecodeError{Source: sourceAssets, Err: fmt.Errorf("entry %d is null", i)}
		}
		if err := models.ValidateAccountID(e.AssetID); err != nil {
			return nil, &apperrors.DecodeError{Source: sourceAssets, Err: fmt.Errorf("asset id %q: %w", e.AssetID, err)}
		}
		if err := p.validate.Struct(e.Bundle); err != nil {
			return nil, &apperrors.DecodeError{Source: sourceAssets, Err: fmt.Errorf("asset %s: %w", e.AssetID, err)}
		}
		entries = append(entries, models.AssetReportEntry{AssetID: e.AssetID, Bundle: e.Bundle.toModel()})
	}
	return entries, nil
}

func (b *wireBundle) toModel() models.AssetReportBundle {
	bundle := models.AssetReportBundle{
		Reports: make([]models.ValidatorReport, 0, len(b.Reports)),
		Emas:    make([]models.AssetEma, 0, len(b.Emas)),
	}
	for _, r := range b.Reports {
		ts, _ := parseU64(*r.Timestamp)
		bundle.Reports = append(bundle.Reports, models.ValidatorReport{
			OracleID:  *r.OracleID,
			Timestamp: ts,
			Price:     *r.Price.toModel(),
		})
	}
	for _, e := range b.Emas {
		ts, _ := parseU64(*e.Timestamp)
		bundle.Emas = append(bundle.Emas, models.AssetEma{
			PeriodSec: *e.PeriodSec,
			Timestamp: ts,
			Price:     e.Price.toModel(),
		})
	}
	return bundle
}

// toModel is only called after validation, so the multiplier is known to parse.
func (q *wireQuote) toModel() *models.AssetPriceQuote {
	if q == nil {
		return nil
	}
	m, _ := parseU128(*q.Multiplier)
	return &models.AssetPriceQuote{Multiplier: m, Decimals: *q.Decimals}
}

func parseU64(s string) (uint64, error) {
	if !unsignedPattern.MatchString(s) {
		return 0, fmt.Errorf("invalid digit found in %q", s)
	}
	return strconv.ParseUint(strings.TrimPrefix(s, "+"), 10, 64)
}

func parseU128(s string) (decimal.Decimal, error) {
	if !unsignedPattern.MatchString(s) {
		return decimal.Zero, fmt.Errorf("invalid digit found in %q", s)
	}
	d, err := decimal.NewFromString(strings.TrimPrefix(s, "+"))
	if err != nil {
		return decimal.Zero, err
	}
	if d.BigInt().BitLen() > 128 {
		return decimal.Zero, fmt.Errorf("number too large to fit in target type: %s", s)
	}
	return d, nil
}
