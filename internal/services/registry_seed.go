package services

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tropicaldog17/oraclewatch/internal/models"
)

// SeedFile is the YAML bootstrap document for the registry:
//
//	tokens:
//	  - account_id: wrap.near
//	    token_name: NEAR
//	    decimals: 24
type SeedFile struct {
	Tokens []SeedToken `yaml:"tokens"`
}

type SeedToken struct {
	AccountID string `yaml:"account_id"`
	TokenName string `yaml:"token_name"`
	Decimals  uint8  `yaml:"decimals"`
}

// ParseSeed decodes a seed document into registry entries, in file order. Unknown keys are rejected.
func ParseSeed(data []byte) ([]models.TokenConfigEntry, error) {
	var seed SeedFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse seed: %w", err)
	}

	entries := make([]models.TokenConfigEntry, 0, len(seed.Tokens))
	for _, t := range seed.Tokens {
		entries = append(entries, models.TokenConfigEntry{
			AssetID: t.AccountID,
			Config: &models.TokenConfig{
				AssetID:   t.AccountID,
				TokenName: t.TokenName,
				Decimals:  t.Decimals,
			},
		})
	}
	return entries, nil
}

func LoadSeedFile(path string) ([]models.TokenConfigEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseSeed(data)
}
