package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/career-compass/internal/types"
)

// -----------------------------------------------------------------------------
// Career Catalog Methods
// -----------------------------------------------------------------------------

const upsertCareerSQL = `INSERT INTO careers (id, name, category, required_skills, academic_affinity,
        personality_archetype, preferred_mbti, salary_min, salary_max, salary_currency,
        base_growth_rate, automation_risk_base, historical_demand_index)
 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
 ON CONFLICT (id) DO UPDATE SET
        name = $2, category = $3, required_skills = $4, academic_affinity = $5,
        personality_archetype = $6, preferred_mbti = $7, salary_min = $8, salary_max = $9,
        salary_currency = $10, base_growth_rate = $11, automation_risk_base = $12,
        historical_demand_index = $13, updated_at = NOW()`

// UpsertCareer inserts or replaces one career record
func (db *DB) UpsertCareer(ctx context.Context, career types.CareerProfile) error {
	row, err := newCareerRow(career)
	if err != nil {
		return err
	}
	if _, err := db.pool.Exec(ctx, upsertCareerSQL, row.args()...); err != nil {
		return fmt.Errorf("failed to upsert career %d: %w", career.ID, err)
	}
	return nil
}

// ImportCareers upserts all careers in one transaction. Every record is validated first, so an
// invalid record leaves the table untouched.
func (db *DB) ImportCareers(ctx context.Context, careers []types.CareerProfile) error {
	rows := make([]careerRow, 0, len(careers))
	for i := range careers {
		if err := careers[i].Validate(); err != nil {
			return err
		}
		row, err := newCareerRow(careers[i])
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	return pgx.BeginFunc(ctx, db.pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, row := range rows {
			batch.Queue(upsertCareerSQL, row.args()...)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to import careers: %w", err)
		}
		return nil
	})
}

// ListCareers returns every career ordered by id
func (db *DB) ListCareers(ctx context.Context) ([]types.CareerProfile, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, name, category, required_skills, academic_affinity, personality_archetype,
		        preferred_mbti, salary_min, salary_max, salary_currency, base_growth_rate,
		        automation_risk_base, historical_demand_index
		 FROM careers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list careers: %w", err)
	}
	defer rows.Close()

	var careers []types.CareerProfile
	for rows.Next() {
		var r careerRow
		if err := rows.Scan(&r.ID, &r.Name, &r.Category, &r.RequiredSkills, &r.AcademicAffinity,
			&r.PersonalityArchetype, &r.PreferredMBTI, &r.SalaryMin, &r.SalaryMax, &r.SalaryCurrency,
			&r.BaseGrowthRate, &r.AutomationRiskBase, &r.HistoricalDemandIndex); err != nil {
			return nil, fmt.Errorf("failed to scan career: %w", err)
		}
		career, err := r.career()
		if err != nil {
			return nil, err
		}
		careers = append(careers, career)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate careers: %w", err)
	}
	return careers, nil
}

// DeleteCareer removes a career; a missing id is a NotFoundError
func (db *DB) DeleteCareer(ctx context.Context, id int) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM careers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete career %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return &types.NotFoundError{Kind: "career", ID: fmt.Sprint(id)}
	}
	return nil
}

// CatalogSource loads the catalog from the careers table
type CatalogSource struct {
	DB *DB
}

// Load implements catalog.Source
func (s CatalogSource) Load(ctx context.Context) ([]types.CareerProfile, error) {
	return s.DB.ListCareers(ctx)
}

// careerRow is the column layout of the careers table; map and slice fields are JSONB
type careerRow struct {
	ID                    int
	Name                  string
	Category              string
	RequiredSkills        []byte
	AcademicAffinity      []byte
	PersonalityArchetype  []byte
	PreferredMBTI         string
	SalaryMin             float64
	SalaryMax             float64
	SalaryCurrency        string
	BaseGrowthRate        float64
	AutomationRiskBase    float64
	HistoricalDemandIndex []byte
}

func newCareerRow(c types.CareerProfile) (careerRow, error) {
	row := careerRow{
		ID:                 c.ID,
		Name:               c.Name,
		Category:           c.Category,
		PreferredMBTI:      c.PreferredMBTI,
		SalaryMin:          c.SalaryRange.Min,
		SalaryMax:          c.SalaryRange.Max,
		SalaryCurrency:     c.SalaryRange.Currency,
		BaseGrowthRate:     c.BaseGrowthRate,
		AutomationRiskBase: c.AutomationRiskBase,
	}

	var err error
	if row.RequiredSkills, err = marshalJSONB(c.RequiredSkills, "{}"); err != nil {
		return careerRow{}, err
	}
	if row.AcademicAffinity, err = marshalJSONB(c.AcademicAffinity, "{}"); err != nil {
		return careerRow{}, err
	}
	if row.PersonalityArchetype, err = marshalJSONB(c.PersonalityArchetype, "{}"); err != nil {
		return careerRow{}, err
	}
	if row.HistoricalDemandIndex, err = marshalJSONB(c.HistoricalDemandIndex, "[]"); err != nil {
		return careerRow{}, err
	}
	return row, nil
}

func (r careerRow) args() []any {
	return []any{
		r.ID, r.Name, r.Category, r.RequiredSkills, r.AcademicAffinity, r.PersonalityArchetype,
		r.PreferredMBTI, r.SalaryMin, r.SalaryMax, r.SalaryCurrency, r.BaseGrowthRate,
		r.AutomationRiskBase, r.HistoricalDemandIndex,
	}
}

func (r careerRow) career() (types.CareerProfile, error) {
	c := types.CareerProfile{
		ID:            r.ID,
		Name:          r.Name,
		Category:      r.Category,
		PreferredMBTI: r.PreferredMBTI,
		SalaryRange: types.SalaryRange{
			Min:      r.SalaryMin,
			Max:      r.SalaryMax,
			Currency: r.SalaryCurrency,
		},
		BaseGrowthRate:     r.BaseGrowthRate,
		AutomationRiskBase: r.AutomationRiskBase,
	}

	fields := []struct {
		name string
		data []byte
		dst  any
	}{
		{"required_skills", r.RequiredSkills, &c.RequiredSkills},
		{"academic_affinity", r.AcademicAffinity, &c.AcademicAffinity},
		{"personality_archetype", r.PersonalityArchetype, &c.PersonalityArchetype},
		{"historical_demand_index", r.HistoricalDemandIndex, &c.HistoricalDemandIndex},
	}
	for _, f := range fields {
		if len(f.data) == 0 {
			continue
		}
		if err := json.Unmarshal(f.data, f.dst); err != nil {
			return types.CareerProfile{}, fmt.Errorf("failed to decode %s of career %d: %w", f.name, r.ID, err)
		}
	}
	return c, nil
}

// marshalJSONB encodes v, writing empty instead of null for nil maps and slices
func marshalJSONB(v any, empty string) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal jsonb value: %w", err)
	}
	if string(data) == "null" {
		return []byte(empty), nil
	}
	return data, nil
}
