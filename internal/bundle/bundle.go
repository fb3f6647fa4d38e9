// Package bundle runs the offline fitting phase and holds its immutable result.
package bundle

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/career-compass/internal/aptitude"
	"github.com/jonathan/career-compass/internal/catalog"
	"github.com/jonathan/career-compass/internal/config"
	"github.com/jonathan/career-compass/internal/forecast"
	"github.com/jonathan/career-compass/internal/logging"
	"github.com/jonathan/career-compass/internal/parsing"
	"github.com/jonathan/career-compass/internal/profile"
	"github.com/jonathan/career-compass/internal/ranking"
	"github.com/jonathan/career-compass/internal/roadmap"
	"github.com/jonathan/career-compass/internal/scam"
	"github.com/jonathan/career-compass/internal/schemas"
)

// Settings are the request defaults carried with the bundle
type Settings struct {
	TopN              int
	MinCompositeScore float64
	Horizon           int
}

// Bundle is the catalog plus every fitted model. Nothing in it changes after Fit returns, so one
// Bundle can serve any number of concurrent analyses.
type Bundle struct {
	catalog  *catalog.Catalog
	profiles *profile.Builder
	engine   *ranking.Engine
	roadmaps *roadmap.Generator
	aptitude *aptitude.Model
	salary   *forecast.SalaryModel
	market   *forecast.MarketModel
	detector *scam.Detector
	settings Settings
	fittedAt time.Time
}

// Fit loads the catalog from src and fits every model from cfg.
func Fit(ctx context.Context, cfg config.Config, src catalog.Source, logger *zap.Logger) (*Bundle, error) {
	logger = logging.OrNop(logger)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	started := time.Now()
	cat, err := catalog.Load(ctx, src, cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	logger.Info("catalog loaded",
		zap.Int("careers", cat.Len()),
		zap.String("catalog_version", cat.Version()),
	)

	engine, err := ranking.NewEngine(cfg.Matching.Weights, cfg.Matching.Precision)
	if err != nil {
		return nil, err
	}

	difficulty := parsing.NormalizeVector(cfg.Roadmap.Difficulty, parsing.NormalizeName)
	roadmaps, err := roadmap.NewGenerator(cfg.Roadmap.DefaultMonths, difficulty)
	if err != nil {
		return nil, err
	}
	courses := cfg.Roadmap.Courses
	courses.BySkill = normalizeKeys(courses.BySkill)
	roadmaps, err = roadmaps.WithCourses(courses)
	if err != nil {
		return nil, err
	}

	aptitudeStarted := time.Now()
	aptitudes, err := aptitude.Fit(cfg.Aptitude)
	if err != nil {
		return nil, fmt.Errorf("failed to fit aptitude model: %w", err)
	}
	logger.Debug("aptitude model fitted",
		zap.String("model", aptitudes.Name()),
		zap.Int("categories", len(aptitude.Categories)),
		zap.Duration("duration", time.Since(aptitudeStarted)),
	)

	salaryStarted := time.Now()
	salary, err := forecast.FitSalaryModel(nil, cfg.Salary)
	if err != nil {
		return nil, fmt.Errorf("failed to fit salary model: %w", err)
	}
	logger.Debug("salary model fitted",
		zap.String("model", salary.Name()),
		zap.Duration("duration", time.Since(salaryStarted)),
	)

	market, err := forecast.NewMarketModel(cfg.Market, cat.All())
	if err != nil {
		return nil, fmt.Errorf("failed to fit market model: %w", err)
	}
	logger.Debug("market trends fitted",
		zap.Int("trends", market.Trends()),
		zap.Int("fallbacks", cat.Len()-market.Trends()),
	)

	detector, err := FitDetector(cfg.Scam)
	if err != nil {
		return nil, err
	}

	b := &Bundle{
		catalog:  cat,
		profiles: profile.NewBuilder(cfg.Roadmap.DefaultPace),
		engine:   engine,
		roadmaps: roadmaps,
		aptitude: aptitudes,
		salary:   salary,
		market:   market,
		detector: detector,
		settings: Settings{
			TopN:              cfg.Matching.TopN,
			MinCompositeScore: cfg.Matching.MinCompositeScore,
			Horizon:           cfg.Matching.Horizon,
		},
		fittedAt: time.Now(),
	}
	logger.Info("model bundle ready",
		zap.String("weights_version", engine.Weights().Version),
		zap.String("signatures_version", detector.Version()),
		zap.Duration("duration", time.Since(started)),
	)
	return b, nil
}

// normalizeKeys re-keys a course table with the skill normalizer, keeping the default entry.
// Lists whose keys collapse into one are concatenated in key order.
func normalizeKeys(in map[string][]string) map[string][]string {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make(map[string][]string, len(in))
	for _, k := range keys {
		key := k
		if k != roadmap.DefaultKey {
			key = parsing.NormalizeName(k)
		}
		if key == "" {
			continue
		}
		out[key] = append(out[key], in[k]...)
	}
	return out
}

// FitDetector builds the scam detector alone, loading the signature table from
// cfg.SignaturesFile when set.
func FitDetector(cfg config.ScamConfig) (*scam.Detector, error) {
	table := cfg.Signatures
	if cfg.SignaturesFile != "" {
		loaded, err := LoadSignatures(cfg.SignaturesFile)
		if err != nil {
			return nil, err
		}
		table = loaded
	}
	detector, err := scam.NewDetector(table, cfg.Options)
	if err != nil {
		return nil, fmt.Errorf("failed to build scam detector: %w", err)
	}
	return detector, nil
}

// LoadSignatures reads and schema-validates a signature table file.
func LoadSignatures(path string) (scam.SignatureTable, error) {
	data, err := schemas.ValidateFile(schemas.Signatures, path)
	if err != nil {
		return scam.SignatureTable{}, err
	}
	var table scam.SignatureTable
	if err := json.Unmarshal(data, &table); err != nil {
		return scam.SignatureTable{}, fmt.Errorf("failed to parse signature table %s: %w", path, err)
	}
	return table, nil
}

// Catalog returns the immutable career catalog.
func (b *Bundle) Catalog() *catalog.Catalog { return b.catalog }

// Profiles returns the profile builder.
func (b *Bundle) Profiles() *profile.Builder { return b.profiles }

// Engine returns the match engine.
func (b *Bundle) Engine() *ranking.Engine { return b.engine }

// Roadmaps returns the roadmap generator.
func (b *Bundle) Roadmaps() *roadmap.Generator { return b.roadmaps }

// Aptitude returns the fitted aptitude model.
func (b *Bundle) Aptitude() *aptitude.Model { return b.aptitude }

// Salary returns the fitted salary model.
func (b *Bundle) Salary() *forecast.SalaryModel { return b.salary }

// Market returns the fitted market model.
func (b *Bundle) Market() *forecast.MarketModel { return b.market }

// Detector returns the scam detector.
func (b *Bundle) Detector() *scam.Detector { return b.detector }

// Settings returns the request defaults.
func (b *Bundle) Settings() Settings { return b.settings }

// FittedAt returns when fitting finished.
func (b *Bundle) FittedAt() time.Time { return b.fittedAt }
