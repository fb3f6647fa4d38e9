package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/jonathan/career-compass/internal/types"
)

// fingerprintInput is marshaled to canonical JSON; encoding/json sorts map keys.
type fingerprintInput struct {
	Profile        types.StudentProfile `json:"profile"`
	CatalogVersion string               `json:"catalog_version"`
	WeightsVersion string               `json:"weights_version"`
	TopN           int                  `json:"top_n"`
}

// Fingerprint returns the hex sha256 of the inputs that determine a match result set.
func Fingerprint(profile types.StudentProfile, catalogVersion, weightsVersion string, topN int) (string, error) {
	data, err := json.Marshal(fingerprintInput{
		Profile:        profile,
		CatalogVersion: catalogVersion,
		WeightsVersion: weightsVersion,
		TopN:           topN,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode fingerprint input: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
