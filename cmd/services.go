package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/promptcoach/internal/analysis"
	"github.com/abhisek/promptcoach/internal/assistant"
	"github.com/abhisek/promptcoach/internal/coach"
	"github.com/abhisek/promptcoach/internal/config"
	"github.com/abhisek/promptcoach/internal/demo"
	"github.com/abhisek/promptcoach/internal/lessons"
	"github.com/abhisek/promptcoach/internal/llm"
	"github.com/abhisek/promptcoach/internal/scoring"
	"github.com/abhisek/promptcoach/internal/store"
)

// services is everything a command needs, built once from config.
type services struct {
	cfg       *config.Config
	store     *store.Store
	provider  llm.Provider // nil without an AI collaborator
	assistant *assistant.Assistant
	coach     *coach.Service
	demo      *demo.Demonstrator
	catalog   *lessons.Catalog
	tutor     *lessons.Tutor
}

// buildServices opens the store and wires the coach stack. The LLM
// provider is optional; when it is missing the AI features fall back to
// canned content.
func buildServices(ctx context.Context, cmd *cobra.Command) (*services, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	st, err := openStore(cmd)
	if err != nil {
		return nil, err
	}

	svc := &services{cfg: cfg, store: st}

	catalog, err := loadCatalog(cfg.LessonsFile)
	if err != nil {
		st.Close()
		return nil, err
	}
	svc.catalog = catalog

	var coachLLM llm.Config
	if cfg.Coach != nil {
		coachLLM = cfg.Coach.LLM()
	}
	provider, _, err := llm.NewProviderFromEnv(ctx, st.EventRepo(), coachLLM)
	switch {
	case err != nil:
		fmt.Fprintln(os.Stderr, "warning: LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI features will use canned content.")
	case provider != nil:
		svc.provider = provider
		svc.assistant = assistant.New(provider, assistant.DefaultConfig())
		svc.tutor = lessons.NewTutor(provider, lessons.DefaultConfig())
	}

	var scorer scoring.Scorer = scoring.DefaultRubric()
	var chat demo.Chatter
	if svc.assistant != nil {
		scorer = scoring.NewAssistedScorer(scoring.DefaultRubric(), svc.assistant)
		chat = svc.assistant
	}

	var evals store.EvaluationRepo
	if cfg.Coach == nil || cfg.Coach.SaveHistory {
		evals = st.EvaluationRepo()
	}
	svc.coach = coach.NewService(analysis.New(scorer), cfg.FeedbackStyle, evals)
	svc.demo = demo.New(chat)
	return svc, nil
}

// loadCatalog returns the built-in lessons merged with file, if set.
func loadCatalog(file string) (*lessons.Catalog, error) {
	catalog := lessons.MustDefault()
	if file != "" {
		if err := catalog.LoadFile(file); err != nil {
			return nil, fmt.Errorf("load lessons: %w", err)
		}
	}
	return catalog, nil
}

func (s *services) Close() error {
	return s.store.Close()
}

func (s *services) autoAdvance() bool {
	return s.cfg.Coach != nil && s.cfg.Coach.AutoAdvance
}
