package config

import (
	"fmt"
	"os"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

const (
	EnvInsightProvider    = "CONSILIUM_INSIGHT_PROVIDER"
	EnvInsightOpenAIKey   = "CONSILIUM_INSIGHT_OPENAI_API_KEY"
	EnvInsightOpenAIModel = "CONSILIUM_INSIGHT_OPENAI_MODEL"
)

// Insight collaborator providers.
const (
	ProviderAgent  = "agent"
	ProviderOpenAI = "openai"
)

// InsightConfig selects and configures the insight collaborator. The
// agent provider uses the nested go-agents config; the openai provider
// talks to the OpenAI API directly.
type InsightConfig struct {
	Provider    string               `toml:"provider"`
	OpenAIKey   string               `toml:"openai_api_key"`
	OpenAIModel string               `toml:"openai_model"`
	Agent       gaconfig.AgentConfig `toml:"agent"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *InsightConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	switch c.Provider {
	case ProviderAgent:
		if err := FinalizeAgent(&c.Agent); err != nil {
			return fmt.Errorf("agent: %w", err)
		}
	case ProviderOpenAI:
		if c.OpenAIKey == "" {
			return fmt.Errorf("openai provider requires an api key")
		}
	default:
		return fmt.Errorf("unknown insight provider: %s", c.Provider)
	}

	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *InsightConfig) Merge(overlay *InsightConfig) {
	if overlay.Provider != "" {
		c.Provider = overlay.Provider
	}
	if overlay.OpenAIKey != "" {
		c.OpenAIKey = overlay.OpenAIKey
	}
	if overlay.OpenAIModel != "" {
		c.OpenAIModel = overlay.OpenAIModel
	}
	c.Agent.Merge(&overlay.Agent)
}

func (c *InsightConfig) loadDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderAgent
	}
}

func (c *InsightConfig) loadEnv() {
	if v := os.Getenv(EnvInsightProvider); v != "" {
		c.Provider = v
	}
	if v := os.Getenv(EnvInsightOpenAIKey); v != "" {
		c.OpenAIKey = v
	}
	if v := os.Getenv(EnvInsightOpenAIModel); v != "" {
		c.OpenAIModel = v
	}
}
