package config

import (
	"errors"
	"fmt"

	"github.com/abhisek/promptcoach/internal/feedback"
	"github.com/abhisek/promptcoach/internal/llm"
)

// DefaultCoachModel is the OpenAI model used when none is configured.
const DefaultCoachModel = "gpt-4o-mini"

// CoachStyles are the accepted coach feedback styles.
var CoachStyles = []string{"detailed", "concise", "beginner"}

// CoachConfig holds the learning coach settings.
type CoachConfig struct {
	APIKey        string
	Model         string
	FeedbackStyle string
	AutoAdvance   bool
	SaveHistory   bool
}

// NewCoachConfig returns a validated coach configuration. An empty model
// or style takes the default.
func NewCoachConfig(apiKey, model, style string, autoAdvance, saveHistory bool) (*CoachConfig, error) {
	c := &CoachConfig{
		APIKey:        apiKey,
		Model:         model,
		FeedbackStyle: style,
		AutoAdvance:   autoAdvance,
		SaveHistory:   saveHistory,
	}
	if c.Model == "" {
		c.Model = DefaultCoachModel
	}
	if c.FeedbackStyle == "" {
		c.FeedbackStyle = "detailed"
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the key and style.
func (c *CoachConfig) Validate() error {
	if c.APIKey == "" {
		return errors.New("API key cannot be empty")
	}
	for _, s := range CoachStyles {
		if c.FeedbackStyle == s {
			return nil
		}
	}
	return fmt.Errorf("feedback style must be one of %v, got %q", CoachStyles, c.FeedbackStyle)
}

// GeneratorStyle maps the coach style onto a feedback renderer.
func (c *CoachConfig) GeneratorStyle() feedback.Style {
	switch c.FeedbackStyle {
	case "concise":
		return feedback.StyleDirect
	case "beginner":
		return feedback.StyleSocratic
	default:
		return feedback.StyleEncouraging
	}
}

// LLM is the provider the coach runs on: OpenAI with the coach's key and
// model, keeping the default retry and timeout.
func (c *CoachConfig) LLM() llm.Config {
	cfg := llm.DefaultConfig()
	cfg.Provider = "openai"
	cfg.OpenAI.APIKey = c.APIKey
	cfg.OpenAI.Model = c.Model
	return cfg
}
