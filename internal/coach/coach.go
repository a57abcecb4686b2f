// Package coach ties prompt analysis, feedback rendering and evaluation
// history together for the CLI, TUI and HTTP surfaces.
package coach

import (
	"context"
	"fmt"

	"github.com/abhisek/promptcoach/internal/analysis"
	"github.com/abhisek/promptcoach/internal/feedback"
	"github.com/abhisek/promptcoach/internal/store"
)

// Request is one prompt to evaluate.
type Request struct {
	UserID     string
	Prompt     string
	Style      feedback.Style // empty uses the service default
	LessonID   string
	ExerciseID string
}

// Result is an analysis with its rendered feedback.
type Result struct {
	Analysis analysis.Analysis `json:"analysis"`
	Style    feedback.Style    `json:"style"`
	Feedback string            `json:"feedback"`
}

// Service evaluates prompts and records them.
type Service struct {
	analyzer *analysis.Analyzer
	style    feedback.Style
	evals    store.EvaluationRepo
}

// NewService creates a coach service. A nil evals repo disables history.
func NewService(analyzer *analysis.Analyzer, style feedback.Style, evals store.EvaluationRepo) *Service {
	if analyzer == nil {
		analyzer = analysis.New(nil)
	}
	return &Service{analyzer: analyzer, style: feedback.ParseStyle(string(style)), evals: evals}
}

// Evaluate analyzes the prompt and renders feedback. The result is always
// usable; a non-nil error only reports that history could not be saved.
func (s *Service) Evaluate(ctx context.Context, req Request) (Result, error) {
	a := s.analyzer.Evaluate(ctx, req.Prompt)

	style := s.style
	if req.Style != "" {
		style = feedback.ParseStyle(string(req.Style))
	}
	res := Result{
		Analysis: a,
		Style:    style,
		Feedback: feedback.NewGenerator(style).Generate(a),
	}

	if s.evals == nil {
		return res, nil
	}
	err := s.evals.AppendEvaluation(ctx, store.EvaluationData{
		UserID:      req.UserID,
		Prompt:      req.Prompt,
		Intent:      string(a.Score.Intent),
		Total:       a.Score.Total,
		Learning:    a.Score.Learning,
		Specificity: a.Score.Specificity,
		Engagement:  a.Score.Engagement,
		Passing:     a.Score.Passing(),
		LessonID:    req.LessonID,
		ExerciseID:  req.ExerciseID,
	})
	if err != nil {
		return res, fmt.Errorf("record evaluation: %w", err)
	}
	return res, nil
}
