package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/promptcoach/internal/feedback"
)

var envKeys = []string{
	"PROMPTCOACH_DB", "PROMPTCOACH_USER", "PROMPTCOACH_SKILL_LEVEL",
	"PROMPTCOACH_FEEDBACK_STYLE", "PROMPTCOACH_LESSONS_FILE", "PROMPTCOACH_ADDR",
	"PROMPTCOACH_CORS_ORIGINS", "PROMPTCOACH_LOG_LEVEL", "PROMPTCOACH_SESSION_TTL_MINUTES",
	"PROMPTCOACH_LEADERBOARD_SIZE", "PROMPTCOACH_COACH_STYLE", "PROMPTCOACH_AUTO_ADVANCE",
	"PROMPTCOACH_SAVE_HISTORY", "OPENAI_API_KEY", "OPENAI_MODEL", "USER",
}

// clearEnv unsets every variable Load reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.UserID != "anonymous" || cfg.SkillLevel != 1 || cfg.Addr != ":8080" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.FeedbackStyle != feedback.StyleEncouraging {
		t.Fatalf("style = %s", cfg.FeedbackStyle)
	}
	if cfg.SessionTTL != time.Hour || cfg.LeaderboardSize != 10 {
		t.Fatalf("ttl = %v, board = %d", cfg.SessionTTL, cfg.LeaderboardSize)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Fatalf("origins = %v", cfg.AllowedOrigins)
	}
	if cfg.Coach != nil {
		t.Fatal("coach should be nil without an API key")
	}
	if cfg.SlogLevel() != slog.LevelInfo {
		t.Fatalf("level = %v", cfg.SlogLevel())
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROMPTCOACH_USER", "alice")
	t.Setenv("PROMPTCOACH_SKILL_LEVEL", "3")
	t.Setenv("PROMPTCOACH_FEEDBACK_STYLE", "socratic")
	t.Setenv("PROMPTCOACH_CORS_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("PROMPTCOACH_LOG_LEVEL", "debug")
	t.Setenv("PROMPTCOACH_SESSION_TTL_MINUTES", "5")
	t.Setenv("PROMPTCOACH_LEADERBOARD_SIZE", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.UserID != "alice" || cfg.SkillLevel != 3 || cfg.FeedbackStyle != feedback.StyleSocratic {
		t.Fatalf("overrides ignored: %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b.test" {
		t.Fatalf("origins = %v", cfg.AllowedOrigins)
	}
	if cfg.SlogLevel() != slog.LevelDebug || cfg.SessionTTL != 5*time.Minute {
		t.Fatalf("level = %v, ttl = %v", cfg.SlogLevel(), cfg.SessionTTL)
	}
	if cfg.LeaderboardSize != 10 {
		t.Fatalf("bad integer should keep the default, got %d", cfg.LeaderboardSize)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"PROMPTCOACH_SKILL_LEVEL", "6"},
		{"PROMPTCOACH_FEEDBACK_STYLE", "sarcastic"},
		{"PROMPTCOACH_LOG_LEVEL", "loud"},
		{"PROMPTCOACH_SESSION_TTL_MINUTES", "0"},
		{"PROMPTCOACH_ADDR", ""},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Fatalf("%s=%q accepted", tt.key, tt.value)
			}
		})
	}
}

func TestLoadCoach(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("PROMPTCOACH_COACH_STYLE", "concise")
	t.Setenv("PROMPTCOACH_AUTO_ADVANCE", "yes")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Coach == nil {
		t.Fatal("expected coach config")
	}
	if cfg.Coach.Model != DefaultCoachModel || !cfg.Coach.AutoAdvance || !cfg.Coach.SaveHistory {
		t.Fatalf("coach = %+v", cfg.Coach)
	}
	if cfg.FeedbackStyle != feedback.StyleDirect {
		t.Fatalf("coach style should pick the renderer, got %s", cfg.FeedbackStyle)
	}

	llmCfg := cfg.Coach.LLM()
	if llmCfg.Provider != "openai" || llmCfg.OpenAI.APIKey != "sk-test" || llmCfg.OpenAI.Model != DefaultCoachModel {
		t.Fatalf("coach llm config = %+v", llmCfg.OpenAI)
	}
	if err := llmCfg.Validate(); err != nil {
		t.Fatalf("coach llm config invalid: %v", err)
	}

	t.Setenv("OPENAI_MODEL", "gpt-4o")
	if cfg, _ = Load(); cfg.Coach.LLM().OpenAI.Model != "gpt-4o" {
		t.Fatalf("OPENAI_MODEL not carried into the coach provider")
	}

	t.Setenv("PROMPTCOACH_COACH_STYLE", "verbose")
	if _, err := Load(); err == nil {
		t.Fatal("invalid coach style accepted")
	}
}

func TestCoachConfig(t *testing.T) {
	if _, err := NewCoachConfig("", "", "", false, true); err == nil {
		t.Fatal("empty key accepted")
	}
	c, err := NewCoachConfig("k", "", "", false, true)
	if err != nil {
		t.Fatalf("NewCoachConfig: %v", err)
	}
	if c.Model != "gpt-4o-mini" || c.FeedbackStyle != "detailed" {
		t.Fatalf("defaults not applied: %+v", c)
	}

	styles := map[string]feedback.Style{
		"detailed": feedback.StyleEncouraging,
		"concise":  feedback.StyleDirect,
		"beginner": feedback.StyleSocratic,
	}
	for name, want := range styles {
		c.FeedbackStyle = name
		if got := c.GeneratorStyle(); got != want {
			t.Errorf("%s -> %s, want %s", name, got, want)
		}
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("PROMPTCOACH_USER=dotenv\nPROMPTCOACH_SKILL_LEVEL=2\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PROMPTCOACH_SKILL_LEVEL", "4")

	if err := LoadDotEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("PROMPTCOACH_USER") })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.UserID != "dotenv" {
		t.Fatalf("user = %q, want dotenv", cfg.UserID)
	}
	if cfg.SkillLevel != 4 {
		t.Fatalf("existing variable was overridden: %d", cfg.SkillLevel)
	}
}
