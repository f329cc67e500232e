// Package ai turns free-text scouting notes into candidate attributes.
package ai

import (
	"context"

	"github.com/spigell/scout-profile/internal/candidate"
)

const ProviderGemini = "gemini"

// Extractor reads candidate attributes out of scouting notes. Values the notes
// do not state stay absent.
type Extractor interface {
	Extract(ctx context.Context, notes string) (*candidate.Attributes, error)
}

// Config is the ai section of the configuration file.
type Config struct {
	Enabled  bool         `mapstructure:"enabled"`
	Provider string       `mapstructure:"provider"`
	Gemini   GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	Model        string `mapstructure:"model"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}
