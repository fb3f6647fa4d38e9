package db

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/career-compass/internal/types"
)

// -----------------------------------------------------------------------------
// Report Archive Methods
// -----------------------------------------------------------------------------

// ReportSummary is a listing entry of an archived report
type ReportSummary struct {
	ID             uuid.UUID `json:"id"`
	CatalogVersion string    `json:"catalog_version"`
	WeightsVersion string    `json:"weights_version"`
	TopCareerID    *int      `json:"top_career_id,omitempty"`
	GeneratedAt    time.Time `json:"generated_at"`
}

// SaveReport archives a report; saving the same report id twice replaces it
func (db *DB) SaveReport(ctx context.Context, report *types.CareerReport) error {
	content, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	var topCareer *int
	if len(report.Matches) > 0 {
		id := report.Matches[0].Match.CareerID
		topCareer = &id
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO career_reports (id, catalog_version, weights_version, top_career_id, content, generated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE SET catalog_version = $2, weights_version = $3,
		        top_career_id = $4, content = $5, generated_at = $6`,
		report.ID, report.CatalogVersion, report.WeightsVersion, topCareer, content, report.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save report %s: %w", report.ID, err)
	}
	return nil
}

// GetReport loads an archived report; a missing id is a NotFoundError
func (db *DB) GetReport(ctx context.Context, id uuid.UUID) (*types.CareerReport, error) {
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT content FROM career_reports WHERE id = $1`, id,
	).Scan(&content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &types.NotFoundError{Kind: "report", ID: id.String()}
		}
		return nil, fmt.Errorf("failed to get report %s: %w", id, err)
	}

	var report types.CareerReport
	if err := json.Unmarshal(content, &report); err != nil {
		return nil, fmt.Errorf("failed to decode report %s: %w", id, err)
	}
	return &report, nil
}

// ListReports returns the most recent report summaries, newest first
func (db *DB) ListReports(ctx context.Context, limit int) ([]ReportSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, catalog_version, weights_version, top_career_id, generated_at
		 FROM career_reports ORDER BY generated_at DESC, id LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var out []ReportSummary
	for rows.Next() {
		var s ReportSummary
		if err := rows.Scan(&s.ID, &s.CatalogVersion, &s.WeightsVersion, &s.TopCareerID, &s.GeneratedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report summary: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// SaveAssessment archives a posting assessment and returns its id
func (db *DB) SaveAssessment(ctx context.Context, posting types.JobPosting, assessment types.ScamAssessment) (uuid.UUID, error) {
	content, err := json.Marshal(assessment)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal assessment: %w", err)
	}

	id := uuid.New()
	_, err = db.pool.Exec(ctx,
		`INSERT INTO posting_assessments (id, source, content_hash, verdict, risk_score, signatures_version, content)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, posting.Source, ContentHash(posting.Text), string(assessment.Verdict),
		assessment.RiskScore, assessment.SignaturesVersion, content,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save assessment: %w", err)
	}
	return id, nil
}

// ContentHash is the hex sha256 used to find repeated postings
func ContentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
