// Package pipeline orchestrates profile analysis and job posting assessment over a fitted bundle.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/career-compass/internal/bundle"
	"github.com/jonathan/career-compass/internal/cache"
	"github.com/jonathan/career-compass/internal/logging"
	"github.com/jonathan/career-compass/internal/metrics"
	"github.com/jonathan/career-compass/internal/parsing"
	"github.com/jonathan/career-compass/internal/types"
)

// Operation names used in metrics, logs and ServiceError
const (
	OpAnalyzeProfile    = "analyze_profile"
	OpAnalyzeStudent    = "analyze_student"
	OpAnalyzeJobPosting = "analyze_job_posting"
	OpLookupCareer      = "lookup_career"
	OpForecastCareer    = "forecast_career"
)

// Steps reported through ProgressCallback
const (
	StepProfile  = "build_profile"
	StepMatch    = "match"
	StepPlan     = "plan"
	StepReport   = "report"
	StepScamScan = "scam_scan"
)

// ProgressEvent represents a progress update during an analysis
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when analysis progress occurs
type ProgressCallback func(event ProgressEvent)

// Options holds the optional collaborators of an Analyzer
type Options struct {
	Cache      *cache.MatchCache
	Metrics    *metrics.Recorder
	Logger     *zap.Logger
	OnProgress ProgressCallback
	// Clock stamps reports; defaults to time.Now
	Clock func() time.Time
}

// AnalyzeOptions tunes one analysis. Zero values select the bundle defaults.
type AnalyzeOptions struct {
	TopN    int
	Horizon int
}

// Analyzer runs analyses against an immutable bundle. It keeps no per-request state, so a single
// Analyzer serves concurrent calls.
type Analyzer struct {
	bundle     *bundle.Bundle
	cache      *cache.MatchCache
	metrics    *metrics.Recorder
	logger     *zap.Logger
	onProgress ProgressCallback
	clock      func() time.Time
}

// New creates an Analyzer over b.
func New(b *bundle.Bundle, opts Options) (*Analyzer, error) {
	if b == nil {
		return nil, errors.New("pipeline: bundle is required")
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	opts.Metrics.CatalogSize(b.Catalog().Len())
	return &Analyzer{
		bundle:     b,
		cache:      opts.Cache,
		metrics:    opts.Metrics,
		logger:     logging.OrNop(opts.Logger),
		onProgress: opts.OnProgress,
		clock:      clock,
	}, nil
}

func (a *Analyzer) emit(step, message string, content any) {
	if a.onProgress != nil {
		a.onProgress(ProgressEvent{Step: step, Message: message, Content: content})
	}
}

// AnalyzeProfile builds a profile from raw answers and analyzes it.
func (a *Analyzer) AnalyzeProfile(ctx context.Context, req types.AnalysisRequest, opts AnalyzeOptions) (report *types.CareerReport, err error) {
	started := time.Now()
	defer func() { a.metrics.ObserveOperation(OpAnalyzeProfile, started, err) }()

	profile, err := a.bundle.Profiles().Build(req)
	if err != nil {
		a.logger.Debug("rejected analysis request", zap.Error(err))
		return nil, err
	}
	a.emit(StepProfile, fmt.Sprintf("Built profile with %d skills and %d subjects", len(profile.Skills), len(profile.Academics)), nil)

	return a.analyze(ctx, profile, opts)
}

// AnalyzeStudent analyzes an already built profile. The profile is validated again, so callers
// may construct it by hand.
func (a *Analyzer) AnalyzeStudent(ctx context.Context, profile types.StudentProfile, opts AnalyzeOptions) (report *types.CareerReport, err error) {
	started := time.Now()
	defer func() { a.metrics.ObserveOperation(OpAnalyzeStudent, started, err) }()

	profile, err = types.NewStudentProfile(profile)
	if err != nil {
		return nil, err
	}
	return a.analyze(ctx, profile, opts)
}

func (a *Analyzer) analyze(ctx context.Context, profile types.StudentProfile, opts AnalyzeOptions) (*types.CareerReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	started := time.Now()
	settings := a.bundle.Settings()

	topN := opts.TopN
	if topN == 0 {
		topN = settings.TopN
	}
	horizon := opts.Horizon
	if horizon == 0 {
		horizon = settings.Horizon
	}
	if horizon < 1 {
		return nil, &types.ValidationError{Field: "horizon", Message: fmt.Sprintf("must be at least 1, got %d", horizon)}
	}

	matches, cacheHit, err := a.match(ctx, profile, topN)
	if err != nil {
		return nil, classify(StepMatch, err)
	}
	a.emit(StepMatch, fmt.Sprintf("Ranked %d careers", len(matches)), matches)

	cat := a.bundle.Catalog()
	entries := make([]types.CareerMatchReport, 0, len(matches))
	for _, m := range matches {
		if m.CompositeScore < settings.MinCompositeScore {
			continue
		}
		career, err := cat.Get(m.CareerID)
		if err != nil {
			return nil, classify(StepPlan, err)
		}
		entry, err := a.plan(m, career, profile, horizon)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	a.emit(StepPlan, fmt.Sprintf("Planned %d careers above score %.1f", len(entries), settings.MinCompositeScore), nil)

	aptitudes := a.bundle.Aptitude().Predict(profile.Academics)

	report := &types.CareerReport{
		ID:             uuid.New(),
		GeneratedAt:    a.clock().UTC(),
		CatalogVersion: cat.Version(),
		WeightsVersion: a.bundle.Engine().Weights().Version,
		Horizon:        horizon,
		Profile: types.ProfileSummary{
			MBTIType:        profile.MBTIType,
			Interests:       profile.Interests,
			ExperienceLevel: profile.Preferences.ExperienceLevel,
			Location:        profile.Preferences.Location,
			Pace:            profile.Preferences.Pace,
			Aptitudes:       aptitudes,
		},
		Summary: summarize(profile, aptitudes, entries),
		Matches: entries,
	}
	a.emit(StepReport, "Report assembled", report)

	a.logger.Info("analysis complete",
		zap.String("report_id", report.ID.String()),
		zap.Int("matches", len(entries)),
		zap.Int("filtered", len(matches)-len(entries)),
		zap.Bool("cache_hit", cacheHit),
		zap.Duration("duration", time.Since(started)),
	)
	return report, nil
}

// match ranks the catalog, through the cache when one is configured
func (a *Analyzer) match(ctx context.Context, profile types.StudentProfile, topN int) ([]types.MatchResult, bool, error) {
	cat := a.bundle.Catalog()
	engine := a.bundle.Engine()
	compute := func() ([]types.MatchResult, error) {
		results, err := engine.Match(profile, cat, topN)
		if err == nil {
			a.metrics.MatchesScored(cat.Len())
		}
		return results, err
	}

	if a.cache == nil {
		results, err := compute()
		return results, false, err
	}

	fingerprint, err := cache.Fingerprint(profile, cat.Version(), engine.Weights().Version, topN)
	if err != nil {
		a.logger.Warn("bypassing match cache", zap.Error(err))
		results, err := compute()
		return results, false, err
	}
	results, hit, err := a.cache.GetOrCompute(ctx, fingerprint, compute)
	if err != nil {
		return nil, false, err
	}
	a.metrics.CacheResult(hit)
	return results, hit, nil
}

// plan derives the roadmap and forecasts of one match
func (a *Analyzer) plan(m types.MatchResult, career types.CareerProfile, profile types.StudentProfile, horizon int) (types.CareerMatchReport, error) {
	prefs := profile.Preferences

	roadmaps := a.bundle.Roadmaps()
	roadmap, err := roadmaps.BuildRoadmap(m.SkillGaps, prefs.Pace)
	if err != nil {
		return types.CareerMatchReport{}, classify(StepPlan, err)
	}
	roadmap.AdvancedCourses = roadmaps.AdvancedCourses(career.Category)

	salaryModel := a.bundle.Salary()
	salary, err := salaryModel.Project(career.SalaryRange, prefs.ExperienceLevel, prefs.Location, horizon, salaryModel.GrowthRate(career.Category))
	if err != nil {
		return types.CareerMatchReport{}, classify(StepPlan, err)
	}

	demand, err := a.bundle.Market().Forecast(career, horizon)
	if err != nil {
		return types.CareerMatchReport{}, classify(StepPlan, err)
	}

	return types.CareerMatchReport{Match: m, Roadmap: roadmap, Salary: salary, Demand: demand}, nil
}

// AnalyzeJobPosting scores a posting for fraud signals. It never fails: ambiguous input yields
// an indeterminate verdict.
func (a *Analyzer) AnalyzeJobPosting(_ context.Context, posting types.JobPosting) types.ScamAssessment {
	started := time.Now()
	assessment := a.bundle.Detector().AssessPosting(posting)

	a.metrics.Verdict(string(assessment.Verdict))
	a.metrics.ObserveOperation(OpAnalyzeJobPosting, started, nil)
	a.emit(StepScamScan, fmt.Sprintf("Verdict %s (%.1f)", assessment.Verdict, assessment.RiskScore), assessment)
	a.logger.Debug("posting assessed",
		zap.String("verdict", string(assessment.Verdict)),
		zap.Float64("risk_score", assessment.RiskScore),
		zap.Strings("flags", assessment.TriggeredFlags),
		zap.String("source", posting.Source),
	)
	return assessment
}

// LookupCareer returns one catalog career, or a NotFoundError.
func (a *Analyzer) LookupCareer(id int) (career types.CareerProfile, err error) {
	started := time.Now()
	defer func() { a.metrics.ObserveOperation(OpLookupCareer, started, err) }()
	return a.bundle.Catalog().Get(id)
}

// ForecastCareer projects salary and demand for one career. Empty experience and location
// select entry level and the default location.
func (a *Analyzer) ForecastCareer(ctx context.Context, id, horizon int, experience, location string) (forecast types.CareerForecast, err error) {
	started := time.Now()
	defer func() { a.metrics.ObserveOperation(OpForecastCareer, started, err) }()

	if err := ctx.Err(); err != nil {
		return types.CareerForecast{}, err
	}
	career, err := a.bundle.Catalog().Get(id)
	if err != nil {
		return types.CareerForecast{}, err
	}
	if horizon == 0 {
		horizon = a.bundle.Settings().Horizon
	}
	experience = strings.ToLower(strings.TrimSpace(experience))
	if experience == "" {
		experience = types.ExperienceEntry
	}
	location = parsing.NormalizeName(location)
	if location == "" {
		location = types.DefaultLocation
	}

	salaryModel := a.bundle.Salary()
	salary, err := salaryModel.Project(career.SalaryRange, experience, location, horizon, salaryModel.GrowthRate(career.Category))
	if err != nil {
		return types.CareerForecast{}, classify(OpForecastCareer, err)
	}
	demand, err := a.bundle.Market().Forecast(career, horizon)
	if err != nil {
		return types.CareerForecast{}, classify(OpForecastCareer, err)
	}

	return types.CareerForecast{
		CareerID:        career.ID,
		CareerName:      career.Name,
		Category:        career.Category,
		Horizon:         horizon,
		ExperienceLevel: experience,
		Location:        location,
		Salary:          salary,
		Demand:          demand,
	}, nil
}
