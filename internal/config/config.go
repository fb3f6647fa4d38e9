// Package config provides configuration loading and validation for the CLI.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/jonathan/career-compass/internal/aptitude"
	"github.com/jonathan/career-compass/internal/forecast"
	"github.com/jonathan/career-compass/internal/ranking"
	"github.com/jonathan/career-compass/internal/roadmap"
	"github.com/jonathan/career-compass/internal/scam"
)

// EnvPrefix prefixes environment overrides, e.g. CAREER_CACHE_REDIS_ADDR
const EnvPrefix = "CAREER"

// DefaultFileName is looked up in the working directory when no config path is given
const DefaultFileName = "career_agent"

// Cache backends
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// Config is the full application configuration.
type Config struct {
	Matching MatchingConfig          `mapstructure:"matching" json:"matching"`
	Roadmap  RoadmapConfig           `mapstructure:"roadmap" json:"roadmap"`
	Aptitude aptitude.TrainingConfig `mapstructure:"aptitude" json:"aptitude"`
	Salary   forecast.SalaryConfig   `mapstructure:"salary" json:"salary"`
	Market   forecast.MarketConfig   `mapstructure:"market" json:"market"`
	Scam     ScamConfig              `mapstructure:"scam" json:"scam"`
	Cache    CacheConfig             `mapstructure:"cache" json:"cache"`
	Catalog  CatalogConfig           `mapstructure:"catalog" json:"catalog"`
	LLM      LLMConfig               `mapstructure:"llm" json:"llm"`
	Log      LogConfig               `mapstructure:"log" json:"log"`
}

// MatchingConfig controls the match engine and report assembly.
type MatchingConfig struct {
	Weights           ranking.Weights `mapstructure:"weights" json:"weights"`
	TopN              int             `mapstructure:"top_n" json:"top_n"`
	MinCompositeScore float64         `mapstructure:"min_composite_score" json:"min_composite_score"`
	Precision         int             `mapstructure:"precision" json:"precision"`
	Horizon           int             `mapstructure:"horizon" json:"horizon"`
}

// RoadmapConfig controls milestone time estimates and course suggestions.
type RoadmapConfig struct {
	DefaultMonths float64             `mapstructure:"default_months" json:"default_months"`
	Difficulty    map[string]float64  `mapstructure:"difficulty" json:"difficulty"`
	DefaultPace   float64             `mapstructure:"default_pace" json:"default_pace"`
	Courses       roadmap.CourseTable `mapstructure:"courses" json:"courses"`
}

// ScamConfig holds the detector thresholds and its signature table. A non-empty
// SignaturesFile replaces Signatures when the bundle is fitted.
type ScamConfig struct {
	scam.Options   `mapstructure:",squash"`
	Signatures     scam.SignatureTable `mapstructure:"signatures" json:"signatures"`
	SignaturesFile string              `mapstructure:"signatures_file" json:"signatures_file,omitempty"`
}

// CacheConfig controls the optional match result cache.
type CacheConfig struct {
	Enabled       bool          `mapstructure:"enabled" json:"enabled"`
	Backend       string        `mapstructure:"backend" json:"backend"`
	RedisAddr     string        `mapstructure:"redis_addr" json:"redis_addr,omitempty"`
	RedisPassword string        `mapstructure:"redis_password" json:"-"`
	RedisDB       int           `mapstructure:"redis_db" json:"redis_db"`
	TTL           time.Duration `mapstructure:"ttl" json:"ttl"`
	KeyPrefix     string        `mapstructure:"key_prefix" json:"key_prefix"`
}

// CatalogConfig selects where careers are loaded from. With neither set, the embedded
// sample catalog is used.
type CatalogConfig struct {
	Path        string `mapstructure:"path" json:"path,omitempty"`
	DatabaseURL string `mapstructure:"database_url" json:"-"`
}

// LLMConfig configures the mentoring text service.
type LLMConfig struct {
	APIKey string `mapstructure:"api_key" json:"-"`
	Model  string `mapstructure:"model" json:"model,omitempty"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	JSON  bool `mapstructure:"json" json:"json"`
	Debug bool `mapstructure:"debug" json:"debug"`
}

// envKeys are the settings that can be overridden from the environment
var envKeys = []string{
	"matching.top_n",
	"matching.min_composite_score",
	"matching.horizon",
	"roadmap.default_pace",
	"scam.signatures_file",
	"cache.enabled",
	"cache.backend",
	"cache.redis_addr",
	"cache.redis_password",
	"cache.redis_db",
	"cache.ttl",
	"catalog.path",
	"catalog.database_url",
	"llm.api_key",
	"llm.model",
	"log.json",
	"log.debug",
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Matching: MatchingConfig{
			Weights:           ranking.DefaultWeights(),
			TopN:              5,
			MinCompositeScore: 0,
			Precision:         ranking.DefaultPrecision,
			Horizon:           5,
		},
		Roadmap: RoadmapConfig{
			DefaultMonths: 12,
			Difficulty: map[string]float64{
				"machine_learning":    18,
				"deep_learning":       20,
				"statistics":          14,
				"structural_analysis": 18,
				"legal_research":      16,
				"patient_care":        15,
				"communication":       8,
				"teamwork":            6,
				"excel":               4,
				"writing":             10,
			},
			DefaultPace: 1.0,
			Courses:     roadmap.DefaultCourses(),
		},
		Aptitude: aptitude.DefaultTrainingConfig(),
		Salary:   forecast.DefaultSalaryConfig(),
		Market:   forecast.DefaultMarketConfig(),
		Scam: ScamConfig{
			Options:    scam.DefaultOptions(),
			Signatures: scam.DefaultSignatures(),
		},
		Cache: CacheConfig{
			Enabled:   false,
			Backend:   CacheBackendMemory,
			RedisAddr: "localhost:6379",
			TTL:       time.Hour,
			KeyPrefix: "career:match:",
		},
		LLM: LLMConfig{
			Model: "gemini-2.0-flash",
		},
	}
}

// Load merges the config file at path (YAML or JSON) and CAREER_* environment variables over
// Default. An empty path looks for career_agent.{yaml,json} in the working directory and
// silently uses defaults when none exists.
func Load(path string) (Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(DefaultFileName)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := Default()
	// Lists and tables given in the file replace the defaults instead of merging into them
	zeroFields := func(dc *mapstructure.DecoderConfig) { dc.ZeroFields = true }
	if err := v.Unmarshal(&cfg, zeroFields); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every section has usable values.
func (c Config) Validate() error {
	if err := c.Matching.Weights.Validate(); err != nil {
		return wrap(err)
	}
	if c.Matching.TopN < 1 {
		return &Error{Field: "matching.top_n", Message: "must be at least 1"}
	}
	if c.Matching.MinCompositeScore < 0 || c.Matching.MinCompositeScore > 100 {
		return &Error{Field: "matching.min_composite_score", Message: "must be between 0 and 100"}
	}
	if c.Matching.Precision < 0 || c.Matching.Precision > 6 {
		return &Error{Field: "matching.precision", Message: "must be between 0 and 6"}
	}

	if c.Roadmap.DefaultMonths <= 0 {
		return &Error{Field: "roadmap.default_months", Message: "must be positive"}
	}
	if c.Roadmap.DefaultPace <= 0 {
		return &Error{Field: "roadmap.default_pace", Message: "must be positive"}
	}
	for skill, months := range c.Roadmap.Difficulty {
		if months <= 0 {
			return &Error{Field: "roadmap.difficulty." + skill, Message: "must be positive"}
		}
	}
	if err := c.Roadmap.Courses.Validate(); err != nil {
		return wrap(err)
	}
	if err := c.Aptitude.Validate(); err != nil {
		return wrap(err)
	}

	if err := c.Salary.Validate(); err != nil {
		return wrap(err)
	}
	if err := c.Market.Validate(); err != nil {
		return wrap(err)
	}
	if c.Matching.Horizon < 1 || c.Matching.Horizon > c.Salary.MaxHorizon || c.Matching.Horizon > c.Market.MaxHorizon {
		return &Error{Field: "matching.horizon", Message: "must be between 1 and the salary and market max horizons"}
	}
	if err := c.Scam.Options.Validate(); err != nil {
		return wrap(err)
	}
	if c.Scam.SignaturesFile == "" {
		if err := c.Scam.Signatures.Validate(); err != nil {
			return wrap(err)
		}
	}

	switch c.Cache.Backend {
	case CacheBackendMemory:
	case CacheBackendRedis:
		if c.Cache.Enabled && c.Cache.RedisAddr == "" {
			return &Error{Field: "cache.redis_addr", Message: "required for the redis backend"}
		}
	default:
		return &Error{Field: "cache.backend", Message: fmt.Sprintf("unknown backend %q", c.Cache.Backend)}
	}
	if c.Cache.TTL < 0 {
		return &Error{Field: "cache.ttl", Message: "must be non-negative"}
	}

	if c.Catalog.Path != "" && c.Catalog.DatabaseURL != "" {
		return &Error{Field: "catalog", Message: "'path' and 'database_url' are mutually exclusive"}
	}
	return nil
}
