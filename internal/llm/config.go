// Package llm is the client boundary for the external mentoring-text service.
package llm

import "maps"

// ModelTier represents the capability level of a model
type ModelTier string

// Model tiers
const (
	// TierLite is for short answers and classification
	TierLite ModelTier = "lite"
	// TierStandard is the default tier for mentoring answers
	TierStandard ModelTier = "standard"
	// TierAdvanced is for long-form plans
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the only supported provider
const ProviderGemini Provider = "gemini"

// DefaultTemperature keeps answers close to the grounding context
const DefaultTemperature float32 = 0.2

// Config holds the model selection of the client
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32
}

// DefaultConfig returns the default Gemini configuration
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.0-flash-lite",
			TierStandard: "gemini-2.0-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature: DefaultTemperature,
	}
}

// GetModel returns the model name for a tier, falling back to standard then lite.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a copy of c using model for tier. An empty model returns an unchanged copy.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	out := &Config{Provider: c.Provider, Models: maps.Clone(c.Models), Temperature: c.Temperature}
	if out.Models == nil {
		out.Models = make(map[ModelTier]string)
	}
	if model != "" {
		out.Models[tier] = model
	}
	return out
}
