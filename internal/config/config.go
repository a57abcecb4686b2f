// Package config provides application configuration for the CLI, TUI and
// HTTP server.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/abhisek/promptcoach/internal/feedback"
)

// Config holds all application configuration.
type Config struct {
	DBPath          string
	UserID          string
	SkillLevel      int
	FeedbackStyle   feedback.Style
	LessonsFile     string
	Addr            string
	AllowedOrigins  []string
	LogLevel        string
	SessionTTL      time.Duration
	LeaderboardSize int

	// Coach is nil when no OpenAI key is configured.
	Coach *CoachConfig
}

// LoadDotEnv loads .env files into the environment without overriding
// variables that are already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		DBPath:          getEnv("PROMPTCOACH_DB", ""),
		UserID:          getEnv("PROMPTCOACH_USER", defaultUser()),
		SkillLevel:      getEnvInt("PROMPTCOACH_SKILL_LEVEL", 1),
		FeedbackStyle:   feedback.Style(getEnv("PROMPTCOACH_FEEDBACK_STYLE", string(feedback.StyleEncouraging))),
		LessonsFile:     getEnv("PROMPTCOACH_LESSONS_FILE", ""),
		Addr:            getEnv("PROMPTCOACH_ADDR", ":8080"),
		AllowedOrigins:  splitList(getEnv("PROMPTCOACH_CORS_ORIGINS", "*")),
		LogLevel:        getEnv("PROMPTCOACH_LOG_LEVEL", "info"),
		SessionTTL:      time.Duration(getEnvInt("PROMPTCOACH_SESSION_TTL_MINUTES", 60)) * time.Minute,
		LeaderboardSize: getEnvInt("PROMPTCOACH_LEADERBOARD_SIZE", 10),
	}

	if key := getEnv("OPENAI_API_KEY", ""); key != "" {
		coach, err := NewCoachConfig(key,
			getEnv("OPENAI_MODEL", DefaultCoachModel),
			getEnv("PROMPTCOACH_COACH_STYLE", "detailed"),
			getEnvBool("PROMPTCOACH_AUTO_ADVANCE", false),
			getEnvBool("PROMPTCOACH_SAVE_HISTORY", true),
		)
		if err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		cfg.Coach = coach
		if _, ok := os.LookupEnv("PROMPTCOACH_FEEDBACK_STYLE"); !ok {
			cfg.FeedbackStyle = coach.GeneratorStyle()
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that all configuration values are usable.
func (c *Config) Validate() error {
	if c.UserID == "" {
		return fmt.Errorf("PROMPTCOACH_USER cannot be empty")
	}
	if c.SkillLevel < 1 || c.SkillLevel > 5 {
		return fmt.Errorf("PROMPTCOACH_SKILL_LEVEL must be between 1 and 5, got %d", c.SkillLevel)
	}
	if !slices.Contains(feedback.Styles, c.FeedbackStyle) {
		return fmt.Errorf("PROMPTCOACH_FEEDBACK_STYLE must be one of encouraging, direct, socratic, got %q", c.FeedbackStyle)
	}
	if c.Addr == "" {
		return fmt.Errorf("PROMPTCOACH_ADDR cannot be empty")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("PROMPTCOACH_SESSION_TTL_MINUTES must be > 0")
	}
	if c.LeaderboardSize <= 0 {
		return fmt.Errorf("PROMPTCOACH_LEADERBOARD_SIZE must be > 0")
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// SlogLevel returns the configured log level.
func (c *Config) SlogLevel() slog.Level {
	lvl, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("PROMPTCOACH_LOG_LEVEL: %w", err)
	}
	return lvl, nil
}

func defaultUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "anonymous"
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}
