//go:build integration

package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-compass/internal/catalog"
	"github.com/jonathan/career-compass/internal/types"
)

// =============================================================================
// Catalog and Archive Integration Tests
// =============================================================================

func getTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	db, err := Connect(ctx, dsn)
	require.NoError(t, err, "failed to connect to test database")
	require.NoError(t, db.EnsureSchema(ctx))

	// Clean up test data before each test
	_, _ = db.pool.Exec(ctx, "DELETE FROM careers WHERE id >= 9000")
	return db
}

func TestIntegration_CareerCatalog(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	a := sampleCareer()
	a.ID = 9001
	b := sampleCareer()
	b.ID = 9002
	b.Name = "Analytics Engineer"

	require.NoError(t, db.ImportCareers(ctx, []types.CareerProfile{b, a}))

	careers, err := db.ListCareers(ctx)
	require.NoError(t, err)
	var ids []int
	for _, c := range careers {
		if c.ID >= 9000 {
			ids = append(ids, c.ID)
		}
	}
	assert.Equal(t, []int{9001, 9002}, ids)

	b.Name = "Analytics Lead"
	require.NoError(t, db.UpsertCareer(ctx, b))

	cat, err := catalog.Load(ctx, CatalogSource{DB: db}, "postgres")
	require.NoError(t, err)
	got, err := cat.Get(9002)
	require.NoError(t, err)
	assert.Equal(t, "Analytics Lead", got.Name)

	require.NoError(t, db.DeleteCareer(ctx, 9001))
	assert.True(t, types.IsNotFound(db.DeleteCareer(ctx, 9001)))
}

func TestIntegration_ImportRejectsInvalid(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	good := sampleCareer()
	good.ID = 9003
	bad := sampleCareer()
	bad.ID = 9004
	bad.AutomationRiskBase = 2

	err := db.ImportCareers(ctx, []types.CareerProfile{good, bad})
	require.Error(t, err)
	assert.True(t, types.IsValidation(err))

	careers, err := db.ListCareers(ctx)
	require.NoError(t, err)
	for _, c := range careers {
		assert.NotEqual(t, 9003, c.ID)
	}
}

func TestIntegration_ReportArchive(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	report := &types.CareerReport{
		ID:             uuid.New(),
		GeneratedAt:    time.Now().UTC().Truncate(time.Second),
		CatalogVersion: "abc123",
		WeightsVersion: "v1",
		Horizon:        5,
		Matches: []types.CareerMatchReport{
			{Match: types.MatchResult{CareerID: 1, CareerName: "Data Scientist", CompositeScore: 81.2}},
		},
	}
	require.NoError(t, db.SaveReport(ctx, report))
	defer func() { _, _ = db.pool.Exec(ctx, "DELETE FROM career_reports WHERE id = $1", report.ID) }()

	got, err := db.GetReport(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, report.CatalogVersion, got.CatalogVersion)
	assert.Equal(t, 81.2, got.Matches[0].Match.CompositeScore)
	assert.True(t, report.GeneratedAt.Equal(got.GeneratedAt))

	summaries, err := db.ListReports(ctx, 50)
	require.NoError(t, err)
	assert.NotEmpty(t, summaries)

	_, err = db.GetReport(ctx, uuid.New())
	assert.True(t, types.IsNotFound(err))
}

func TestIntegration_SaveAssessment(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	id, err := db.SaveAssessment(ctx,
		types.JobPosting{Text: "integration test posting", Source: "example.com"},
		types.ScamAssessment{RiskScore: 12.5, Verdict: types.VerdictSafe, SignaturesVersion: "v1"},
	)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)
	_, _ = db.pool.Exec(ctx, "DELETE FROM posting_assessments WHERE id = $1", id)
}
