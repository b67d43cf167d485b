package models

import (
	"encoding/json"
	"fmt"
	"time"

	apperrors "github.com/tropicaldog17/oraclewatch/internal/errors"
)

// TokenConfig is the display metadata registered for an asset
type TokenConfig struct {
	AssetID   string    `json:"-" gorm:"column:asset_id;primaryKey"`
	TokenName string    `json:"token_name" gorm:"column:token_name;not null"`
	Decimals  uint8     `json:"decimals" gorm:"column:decimals;not null"`
	CreatedAt time.Time `json:"-" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"-" gorm:"column:updated_at"`
}

func (TokenConfig) TableName() string {
	return "token_configs"
}

// Validate validates the token config. Names and decimals are stored as given.
func (c *TokenConfig) Validate() error {
	if err := ValidateAccountID(c.AssetID); err != nil {
		return &apperrors.ErrValidation{Field: "account_id", Message: err.Error()}
	}
	return nil
}

// TokenConfigEntry pairs an asset id with its config. Config is nil when the asset is not
// registered. It is encoded as a two element array: [asset_id, config|null].
type TokenConfigEntry struct {
	AssetID string
	Config  *TokenConfig
}

func (e TokenConfigEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{e.AssetID, e.Config})
}

func (e *TokenConfigEntry) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return err
	}
	if len(tuple) != 2 {
		return fmt.Errorf("expected [account_id, config], got %d elements", len(tuple))
	}
	if err := json.Unmarshal(tuple[0], &e.AssetID); err != nil {
		return fmt.Errorf("account_id: %w", err)
	}
	e.Config = nil
	if err := json.Unmarshal(tuple[1], &e.Config); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if e.Config != nil {
		e.Config.AssetID = e.AssetID
	}
	return nil
}
