package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/jonathan/career-compass/internal/types"
)

// Metadata describes where a posting came from and how it was read.
type Metadata struct {
	URL       string `json:"url,omitempty"`
	Source    string `json:"source,omitempty"`
	Platform  string `json:"platform,omitempty"`
	Title     string `json:"title,omitempty"`
	Timestamp string `json:"timestamp"` // RFC3339
	Hash      string `json:"hash"`      // sha256 hex of the cleaned text
	Tokens    int    `json:"tokens"`
	Rendered  bool   `json:"rendered,omitempty"` // text came from the headless browser
	FromCache bool   `json:"from_cache,omitempty"`
}

// NewMetadata records the posting's hash and token count at now.
func NewMetadata(posting types.JobPosting, url string, now time.Time) *Metadata {
	return &Metadata{
		URL:       url,
		Source:    posting.Source,
		Timestamp: now.UTC().Format(time.RFC3339),
		Hash:      computeHash(posting.Text),
		Tokens:    len(strings.Fields(posting.Text)),
	}
}

func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
