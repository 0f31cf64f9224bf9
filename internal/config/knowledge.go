package config

import (
	"fmt"
	"os"
)

const EnvKnowledgeSeedPath = "CONSILIUM_KNOWLEDGE_SEED_PATH"

// KnowledgeConfig controls how the knowledge source registry is seeded.
// An empty SeedPath uses the built-in source catalog.
type KnowledgeConfig struct {
	SeedPath string `toml:"seed_path"`
}

// Finalize applies environment variable overrides and validation.
func (c *KnowledgeConfig) Finalize() error {
	c.loadEnv()

	if c.SeedPath != "" {
		if _, err := os.Stat(c.SeedPath); err != nil {
			return fmt.Errorf("seed_path %s: %w", c.SeedPath, err)
		}
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *KnowledgeConfig) Merge(overlay *KnowledgeConfig) {
	if overlay.SeedPath != "" {
		c.SeedPath = overlay.SeedPath
	}
}

func (c *KnowledgeConfig) loadEnv() {
	if v := os.Getenv(EnvKnowledgeSeedPath); v != "" {
		c.SeedPath = v
	}
}
